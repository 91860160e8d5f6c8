package chaos

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"bookstall/internal/checkout"
	"bookstall/internal/config"
)

type countingNotifier struct {
	calls int
}

func (n *countingNotifier) Notify(ctx context.Context, order checkout.OrderRequest) error {
	n.calls++
	return nil
}

func TestPassThroughWithoutFaults(t *testing.T) {
	next := &countingNotifier{}
	n := WrapNotifier(next, config.ChaosConfig{}, nil)

	require.NoError(t, n.Notify(context.Background(), checkout.OrderRequest{OrderID: "ORD-1"}))
	assert.Equal(t, 1, next.calls)
}

func TestFailureInjection(t *testing.T) {
	next := &countingNotifier{}
	n := WrapNotifier(next, config.ChaosConfig{NotifierFailureRate: 0.5}, nil)

	n.roll = func() float64 { return 0.2 }
	assert.ErrorIs(t, n.Notify(context.Background(), checkout.OrderRequest{}), ErrInjectedFailure)
	assert.Equal(t, 0, next.calls)

	n.roll = func() float64 { return 0.7 }
	assert.NoError(t, n.Notify(context.Background(), checkout.OrderRequest{}))
	assert.Equal(t, 1, next.calls)
}

func TestLatencyInjection(t *testing.T) {
	next := &countingNotifier{}
	n := WrapNotifier(next, config.ChaosConfig{NotifierLatency: 20 * time.Millisecond}, nil)

	start := time.Now()
	require.NoError(t, n.Notify(context.Background(), checkout.OrderRequest{}))
	assert.GreaterOrEqual(t, time.Since(start), 20*time.Millisecond)
	assert.Equal(t, 1, next.calls)
}

func TestLatencyHonoursCancellation(t *testing.T) {
	next := &countingNotifier{}
	n := WrapNotifier(next, config.ChaosConfig{NotifierLatency: time.Minute}, nil)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	assert.ErrorIs(t, n.Notify(ctx, checkout.OrderRequest{}), context.Canceled)
	assert.Equal(t, 0, next.calls)
}
