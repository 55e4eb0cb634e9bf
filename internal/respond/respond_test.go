package respond

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNewPagination(t *testing.T) {
	cases := []struct {
		total, limit, wantPages int
	}{
		{0, 10, 0},
		{1, 10, 1},
		{10, 10, 1},
		{11, 10, 2},
		{95, 10, 10},
		{100, 10, 10},
		{7, 3, 3},
	}
	for _, tc := range cases {
		p := NewPagination(1, tc.limit, tc.total)
		assert.Equal(t, tc.wantPages, p.TotalPages, "total=%d limit=%d", tc.total, tc.limit)
		assert.Equal(t, tc.total, p.Total)
		assert.Equal(t, tc.limit, p.Limit)
	}
}

func TestNewPaginationZeroLimit(t *testing.T) {
	p := NewPagination(1, 0, 50)
	assert.Equal(t, 0, p.TotalPages)
}
