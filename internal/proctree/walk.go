package proctree

import "actiowatch/internal/domain"

// Walk visits every node of forest depth-first, parents before children.
func Walk(forest []domain.ProcessNode, visit func(n *domain.ProcessNode, depth int)) {
	walk(forest, 0, visit)
}

func walk(nodes []domain.ProcessNode, depth int, visit func(*domain.ProcessNode, int)) {
	for i := range nodes {
		visit(&nodes[i], depth)
		walk(nodes[i].Children, depth+1, visit)
	}
}

// Count returns the number of nodes in forest.
func Count(forest []domain.ProcessNode) int {
	total := 0
	Walk(forest, func(*domain.ProcessNode, int) { total++ })
	return total
}
