package main

import (
	"context"
	"database/sql"
	"errors"
	"flag"
	"log/slog"
	"os"
	"time"

	"github.com/technikcrew-dev/crew-manager/backend/internal/config"
	"github.com/technikcrew-dev/crew-manager/backend/internal/repository"
	"github.com/technikcrew-dev/crew-manager/backend/internal/seed"
	"github.com/technikcrew-dev/crew-manager/backend/internal/utils"

	_ "github.com/jackc/pgx/v5/stdlib"
)

func main() {
	var op int
	var n int
	var pollID int64

	flag.IntVar(&op, "op", 0, "operation (1: insert random users, 2: insert random polls, 3: insert random responses, 4: insert demo data)")
	flag.IntVar(&n, "n", 5, "number of records to insert")
	flag.Int64Var(&pollID, "poll-id", 0, "poll ID to insert random responses for")
	flag.Parse()

	logger := slog.New(slog.NewTextHandler(os.Stdout, nil))

	cfg, err := config.LoadConfig()
	if err != nil {
		logger.Error("cannot load configuration", slog.String("error", err.Error()))
		os.Exit(1)
	}

	dbpool, err := sql.Open("pgx", cfg.Database.DSN)
	if err != nil {
		logger.Error("cannot create database pool", "error", err)
		return
	}
	defer dbpool.Close()

	dbpool.SetMaxOpenConns(cfg.Database.MaxOpenConns)
	dbpool.SetMaxIdleConns(cfg.Database.MaxIdleConns)
	dbpool.SetConnMaxIdleTime(time.Duration(cfg.Database.MaxIdleTime) * time.Second)

	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(cfg.Database.ConnectTimeout)*time.Second)
	defer cancel()

	// sql.Open does not connect, so ping explicitly
	if err := dbpool.PingContext(ctx); err != nil {
		logger.Error("cannot connect to database", "error", err)
		return
	}

	repo := repository.NewRepository(cfg, dbpool)

	switch op {
	case 0:
		slog.Error("no operation given")
	case 1:
		if n <= 0 {
			slog.Error("please give a valid user count")
		} else {
			cnt := n
			for i := 0; i < n; i++ {
				user, err := utils.GenerateRandomUser(cfg.Seed.User.Password)
				if err != nil {
					slog.Error("cannot generate random user", slog.String("error", err.Error()))
					continue
				}

				if err := repo.CreateUser(user); err != nil {
					slog.Error("cannot insert user", slog.String("error", err.Error()))
					continue
				}

				cnt--
			}

			slog.Info("users inserted", slog.Int("count", n-cnt))
		}
	case 2:
		if n <= 0 {
			slog.Error("please give a valid poll count")
		} else {
			admin, err := repo.GetUserByUsername(cfg.InitialAdmin.Username)
			if err != nil {
				slog.Error("cannot load initial admin", slog.String("error", err.Error()))
				return
			}

			cnt := n
			for i := 0; i < n; i++ {
				poll := utils.GenerateRandomPoll(admin.ID)
				if err := repo.CreatePoll(poll); err != nil {
					slog.Error("cannot insert poll", slog.String("error", err.Error()))
					continue
				}

				cnt--
			}

			slog.Info("polls inserted", slog.Int("count", n-cnt))
		}
	case 3:
		if pollID <= 0 {
			slog.Error("please give a valid poll ID")
			return
		}

		poll, err := repo.GetPollByID(pollID)
		if err != nil {
			switch {
			case errors.Is(err, sql.ErrNoRows):
				slog.Error("poll does not exist", slog.Int64("poll_id", pollID))
			default:
				slog.Error("cannot load poll", slog.String("error", err.Error()))
			}
			return
		}

		cnt := seed.SeedResponses(repo, poll, n)
		slog.Info("responses inserted", slog.Int("count", cnt))
	case 4:
		seed.SeedDemoData(cfg, repo)
	default:
		slog.Error("invalid operation")
	}
}
