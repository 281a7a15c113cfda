package health

import (
	"context"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
)

func TestRunAllAndHealthy(t *testing.T) {
	c := NewChecker(zerolog.Nop())
	c.Register("store", func(context.Context) Status { return StatusOK })
	c.Register("github", func(context.Context) Status { return StatusDegraded })

	results := c.RunAll(context.Background())
	assert.Equal(t, StatusOK, results["store"])
	assert.Equal(t, StatusDegraded, results["github"])
	assert.True(t, c.Healthy(context.Background()))

	c.Register("feishu", func(context.Context) Status { return StatusDown })
	assert.False(t, c.Healthy(context.Background()))
}

func TestRunAllEmpty(t *testing.T) {
	c := NewChecker(zerolog.Nop())
	assert.Empty(t, c.RunAll(context.Background()))
	assert.True(t, c.Healthy(context.Background()))
}
