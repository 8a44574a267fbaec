package pricing

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestService_Price_DelegatesToSPSolver(t *testing.T) {
	svc := NewService(DefaultProgramParams())
	pool := NewColumnPool()

	resp, err := svc.Price(context.Background(), PriceRequest{
		ProblemReference: uuid.New(),
		Graphs:           []VesselClassGraph{{ID: "vc2", Graph: buildNegativeColumnGraph()}},
		Pool:             pool,
	})

	require.NoError(t, err)
	assert.True(t, resp.Accepted)
	require.Len(t, resp.Reports, 1)
	assert.Equal(t, 1, pool.Len())
}

func TestService_Health_ReflectsContext(t *testing.T) {
	svc := NewService(DefaultProgramParams())

	assert.NoError(t, svc.Health(context.Background()))

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	assert.Error(t, svc.Health(ctx))
}
