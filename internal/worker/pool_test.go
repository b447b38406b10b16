package worker

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSubmitBackpressure(t *testing.T) {
	// Workers are never started, so the queue fills up.
	pool := NewPool(1, 2, nil)

	require.NoError(t, pool.Submit(RankSyncTask{Username: "a", TotalPoints: 1}))
	require.NoError(t, pool.Submit(RankSyncTask{Username: "b", TotalPoints: 2}))

	err := pool.Submit(RankSyncTask{Username: "c", TotalPoints: 3})
	assert.Error(t, err)

	_, _, backpressure := pool.Stats()
	assert.Equal(t, int64(1), backpressure)
}
