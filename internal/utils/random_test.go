package utils

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func TestGenerateRandomPassword(t *testing.T) {
	password := GenerateRandomPassword(16)
	assert.Len(t, password, 16)
	for _, r := range password {
		assert.True(t, strings.ContainsRune(string(letters), r))
	}
}

func TestGenerateRandomUserFallsBackToRandomPassword(t *testing.T) {
	user, err := GenerateRandomUser("")
	require.NoError(t, err)

	// an unconfigured seed password must not produce an empty one
	assert.Error(t, bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte("")))
}
