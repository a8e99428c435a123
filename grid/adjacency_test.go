package grid

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCommonIndexSearch(t *testing.T) {
	{ // First match scanning from a start position
		a, b := [3]uint32{5, 6, 7}, [3]uint32{7, 5, 9}
		i, j, ok := firstCommonIndexPair(a, b, 0)
		assert.True(t, ok)
		assert.Equal(t, [2]int{0, 1}, [2]int{i, j})
		i, j, ok = firstCommonIndexPair(a, b, 1)
		assert.True(t, ok)
		assert.Equal(t, [2]int{2, 0}, [2]int{i, j})
		_, _, ok = firstCommonIndexPair(a, [3]uint32{1, 2, 3}, 0)
		assert.False(t, ok)
	}
	{ // The second edge match resumes past the first one
		local, ok := twoCommonIndexPairs([3]uint32{5, 6, 7}, [3]uint32{7, 5, 9})
		assert.True(t, ok)
		assert.Equal(t, [2][2]int{{0, 2}, {1, 0}}, local)

		local, ok = twoCommonIndexPairs([3]uint32{1, 2, 3}, [3]uint32{4, 3, 2})
		assert.True(t, ok)
		assert.Equal(t, [2][2]int{{1, 2}, {2, 1}}, local)
	}
	{ // Only one shared vertex
		_, ok := twoCommonIndexPairs([3]uint32{1, 2, 3}, [3]uint32{3, 8, 9})
		assert.False(t, ok)
	}
}

func TestSharedVertexCounts(t *testing.T) {
	in, err := normalizeInput(
		[]float64{0, 0, 0, 1, 0, 0, 0, 1, 0, 1, 1, 0, 2, 2, 0},
		[]uint32{0, 1, 2, 1, 3, 2, 3, 4, 2},
		nil)
	assert.NoError(t, err)
	assert.Equal(t, [][]int{{0}, {0, 1}, {0, 1, 2}, {1, 2}, {2}}, vertexToElements(in))
	counts := countSharedVertices(in)
	assert.Equal(t, [][]sharedCount{
		{{element: 1, count: 2}, {element: 2, count: 1}},
		{{element: 0, count: 2}, {element: 2, count: 2}},
		{{element: 0, count: 1}, {element: 1, count: 2}},
	}, counts)
	adj, err := classifyAdjacency(in, counts)
	assert.NoError(t, err)
	assert.Equal(t, []VertexAdjacency{{Elements: [2]int{0, 2}, Local: [2]int{2, 2}}}, adj.vertex)
	assert.Equal(t, []EdgeAdjacency{
		{Elements: [2]int{0, 1}, Local: [2][2]int{{1, 2}, {0, 2}}},
		{Elements: [2]int{1, 2}, Local: [2][2]int{{1, 2}, {0, 2}}},
	}, adj.edge)
	assert.Equal(t, [][]int{{1, 2}, {0, 2}, {0, 1}}, elementNeighbors(counts))
}
