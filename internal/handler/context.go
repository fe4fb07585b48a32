package handler

type ContextKey string

var (
	RoleCtxKey    ContextKey = "role"
	SubCtxKey     ContextKey = "sub"
	MyInfoCtx      ContextKey = "myInfo"
	AdminPollCtx   ContextKey = "adminPoll"
	PublicPollCtx  ContextKey = "publicPoll"
	SessionUserCtx ContextKey = "sessionUser"
)
