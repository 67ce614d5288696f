package salon

import (
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"testing"
)

func TestFilterByStatus_Partition(t *testing.T) {
	sets := map[string][]Order{
		"empty":         nil,
		"all pending":   {{ID: 1}, {ID: 2}},
		"all delivered": {{ID: 1, Delivered: true}},
		"mixed": {
			{ID: 1},
			{ID: 2, Delivered: true},
			{ID: 3},
			{ID: 4, Delivered: true},
			{ID: 5, Delivered: true},
		},
	}

	for name, orders := range sets {
		t.Run(name, func(t *testing.T) {
			pending := FilterByStatus(orders, StatusPending)
			delivered := FilterByStatus(orders, StatusDelivered)

			seen := map[int64]int{}
			for _, o := range pending {
				assert.False(t, o.Delivered)
				seen[o.ID]++
			}
			for _, o := range delivered {
				assert.True(t, o.Delivered)
				seen[o.ID]++
			}

			assert.Len(t, seen, len(orders))
			for id, n := range seen {
				assert.Equalf(t, 1, n, "order %d in both subsets", id)
			}
		})
	}
}

func TestFilterByStatus_KeepsOrder(t *testing.T) {
	orders := []Order{{ID: 3}, {ID: 1, Delivered: true}, {ID: 2}}
	got := FilterByStatus(orders, StatusPending)
	require.Len(t, got, 2)
	assert.Equal(t, int64(3), got[0].ID)
	assert.Equal(t, int64(2), got[1].ID)
}

func TestParseStatus(t *testing.T) {
	s, err := ParseStatus("")
	require.NoError(t, err)
	assert.Equal(t, StatusPending, s)

	s, err = ParseStatus("delivered")
	require.NoError(t, err)
	assert.Equal(t, StatusDelivered, s)

	_, err = ParseStatus("shipped")
	assert.ErrorIs(t, err, ErrInvalidInput)
}
