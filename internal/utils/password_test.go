package utils_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/sovarares/standup-tickets/internal/utils"
)

func TestPasswordHashAndVerify(t *testing.T) {
	hash, err := utils.HashPassword("hunter2", bcrypt.MinCost)
	require.NoError(t, err)
	require.NotEqual(t, "hunter2", hash)

	assert.True(t, utils.VerifyPassword(hash, "hunter2"))
	assert.False(t, utils.VerifyPassword(hash, "hunter3"))
}
