package ratings

import (
	"context"
	"testing"

	"github.com/openshelf/openshelf/pkg/csvstore"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestService(t *testing.T) *Service {
	t.Helper()
	return NewService(csvstore.New(), t.TempDir())
}

func TestServiceUpsert(t *testing.T) {
	t.Parallel()

	svc := newTestService(t)
	ctx := context.Background()

	rating, err := svc.Upsert(ctx, 1, "1111111111", 7)
	require.NoError(t, err)
	assert.Equal(t, 7, rating.Rating)

	// A second submission for the same key overwrites, leaving one row.
	rating, err = svc.Upsert(ctx, 1, "1111111111", 3)
	require.NoError(t, err)
	assert.Equal(t, 3, rating.Rating)

	stored, err := svc.Get(ctx, 1, "1111111111")
	require.NoError(t, err)
	require.NotNil(t, stored)
	assert.Equal(t, 3, stored.Rating)

	result, err := svc.Average(ctx, "1111111111")
	require.NoError(t, err)
	assert.Equal(t, 1, result.Count)
}

func TestServiceGet_Absent(t *testing.T) {
	t.Parallel()

	svc := newTestService(t)

	rating, err := svc.Get(context.Background(), 1, "1111111111")
	require.NoError(t, err)
	assert.Nil(t, rating)
}

func TestServiceAverage(t *testing.T) {
	t.Parallel()

	svc := newTestService(t)
	ctx := context.Background()

	for userID, value := range map[int]int{1: 4, 2: 8, 3: 6} {
		_, err := svc.Upsert(ctx, userID, "1111111111", value)
		require.NoError(t, err)
	}
	_, err := svc.Upsert(ctx, 1, "2222222222", 10)
	require.NoError(t, err)

	result, err := svc.Average(ctx, "1111111111")
	require.NoError(t, err)
	assert.Equal(t, AverageResult{Average: 6.0, Count: 3}, result)

	// No ratings is a zero aggregate, not an error.
	empty, err := svc.Average(ctx, "no-such-isbn")
	require.NoError(t, err)
	assert.Equal(t, AverageResult{Average: 0, Count: 0}, empty)
}

func TestServiceAverage_Rounding(t *testing.T) {
	t.Parallel()

	svc := newTestService(t)
	ctx := context.Background()

	_, err := svc.Upsert(ctx, 1, "1111111111", 5)
	require.NoError(t, err)
	_, err = svc.Upsert(ctx, 2, "1111111111", 4)
	require.NoError(t, err)
	_, err = svc.Upsert(ctx, 3, "1111111111", 4)
	require.NoError(t, err)

	result, err := svc.Average(ctx, "1111111111")
	require.NoError(t, err)
	assert.Equal(t, 4.33, result.Average)
	assert.Equal(t, 3, result.Count)
}

func TestServiceDelete(t *testing.T) {
	t.Parallel()

	svc := newTestService(t)
	ctx := context.Background()

	_, err := svc.Upsert(ctx, 1, "1111111111", 7)
	require.NoError(t, err)

	deleted, err := svc.Delete(ctx, 1, "1111111111")
	require.NoError(t, err)
	assert.True(t, deleted)

	rating, err := svc.Get(ctx, 1, "1111111111")
	require.NoError(t, err)
	assert.Nil(t, rating)

	deleted, err = svc.Delete(ctx, 1, "1111111111")
	require.NoError(t, err)
	assert.False(t, deleted)
}
