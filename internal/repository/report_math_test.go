package repository_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/sovarares/standup-tickets/internal/repository"
)

func TestOccupancyPercent(t *testing.T) {
	// 100-seat venue hosting 2 shows that sold 70 tickets total: 70/200.
	assert.InDelta(t, 35.0, repository.OccupancyPercent(100, 2, 70), 0.0001)

	assert.InDelta(t, 100.0, repository.OccupancyPercent(50, 1, 50), 0.0001)
	assert.InDelta(t, 0.0, repository.OccupancyPercent(50, 1, 0), 0.0001)

	// degenerate inputs must not divide by zero
	assert.Equal(t, 0.0, repository.OccupancyPercent(0, 3, 10))
	assert.Equal(t, 0.0, repository.OccupancyPercent(100, 0, 10))
	assert.Equal(t, 0.0, repository.OccupancyPercent(-1, 1, 10))
}
