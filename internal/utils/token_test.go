package utils_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sovarares/standup-tickets/internal/utils"
)

func TestSessionTokenRoundTrip(t *testing.T) {
	sid, err := utils.NewSessionID()
	require.NoError(t, err)
	require.Len(t, sid, 64)

	token, err := utils.SignSessionToken("secret", sid, time.Hour)
	require.NoError(t, err)

	got, err := utils.ParseSessionToken("secret", token)
	require.NoError(t, err)
	assert.Equal(t, sid, got)
}

func TestSessionTokenWrongSecret(t *testing.T) {
	token, err := utils.SignSessionToken("secret", "abc", time.Hour)
	require.NoError(t, err)

	_, err = utils.ParseSessionToken("other", token)
	assert.Error(t, err)
}

func TestSessionTokenExpired(t *testing.T) {
	token, err := utils.SignSessionToken("secret", "abc", -time.Minute)
	require.NoError(t, err)

	_, err = utils.ParseSessionToken("secret", token)
	assert.Error(t, err)
}

func TestSessionTokenGarbage(t *testing.T) {
	_, err := utils.ParseSessionToken("secret", "not-a-token")
	assert.ErrorIs(t, err, utils.ErrInvalidSessionToken)
}
