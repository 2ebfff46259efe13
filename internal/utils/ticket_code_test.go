package utils_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/sovarares/standup-tickets/internal/utils"
)

func TestNewTicketCode(t *testing.T) {
	seen := make(map[string]bool)
	for i := 0; i < 50; i++ {
		code := utils.NewTicketCode()
		assert.Len(t, code, 8)
		assert.Equal(t, strings.ToUpper(code), code)
		assert.False(t, seen[code], "duplicate code %s", code)
		seen[code] = true
	}
}
