package grid

// elementNeighbors is the sparsity pattern of the shared vertex counts, self excluded
func elementNeighbors(counts [][]sharedCount) (neighbors [][]int) {
	neighbors = make([][]int, len(counts))
	for k, row := range counts {
		neighbors[k] = make([]int, len(row))
		for i, sc := range row {
			neighbors[k][i] = sc.element
		}
	}
	return
}
