package api

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPaginate(t *testing.T) {
	list := []int{1, 2, 3, 4, 5}

	tests := []struct {
		name         string
		page, size   int
		want         []int
		wantPage     int
		wantPageSize int
	}{
		{"默认参数", 0, 0, []int{1, 2, 3, 4, 5}, 1, 20},
		{"第一页", 1, 2, []int{1, 2}, 1, 2},
		{"最后一页不满", 3, 2, []int{5}, 3, 2},
		{"刚好越界", 4, 2, []int{}, 4, 2},
		{"每页上限 100", 1, 1000, []int{1, 2, 3, 4, 5}, 1, 100},
		{"超大页码", math.MaxInt / 10, 100, []int{}, math.MaxInt / 10, 100},
		{"最大页码", math.MaxInt, 100, []int{}, math.MaxInt, 100},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp := paginate(list, tt.page, tt.size)
			assert.Equal(t, int64(5), resp.Total)
			assert.Equal(t, tt.wantPage, resp.Page)
			assert.Equal(t, tt.wantPageSize, resp.PageSize)
			assert.Equal(t, tt.want, resp.List)
		})
	}

	empty := paginate([]int{}, 3, 10)
	assert.Equal(t, []int{}, empty.List)
}
