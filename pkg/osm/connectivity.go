package osm

import (
	da "github.com/gabrielsantosba/caminho/pkg/datastructure"
)

// ConnectivityReport summarizes how fragmented an acquired graph is. A
// multi-component graph is legal (rivers, unfinished extracts); the search
// reports RouteNotFound when the endpoints land in different components.
type ConnectivityReport struct {
	Components  int
	LargestSize int
}

// Connectivity runs an undirected BFS over the graph and counts weakly
// connected components.
func Connectivity(g *da.Graph) ConnectivityReport {
	n := g.NumberOfNodes()
	if n == 0 {
		return ConnectivityReport{}
	}

	// undirected adjacency: out edges plus their reversals
	adj := make([][]da.Index, n)
	g.ForEdges(func(e *da.Edge) {
		adj[e.From] = append(adj[e.From], e.To)
		adj[e.To] = append(adj[e.To], e.From)
	})

	visited := make([]bool, n)
	report := ConnectivityReport{}
	queue := make([]da.Index, 0, n)

	for start := 0; start < n; start++ {
		if visited[start] {
			continue
		}
		report.Components++
		size := 0

		queue = append(queue[:0], da.Index(start))
		visited[start] = true
		for len(queue) > 0 {
			u := queue[0]
			queue = queue[1:]
			size++
			for _, v := range adj[u] {
				if !visited[v] {
					visited[v] = true
					queue = append(queue, v)
				}
			}
		}
		if size > report.LargestSize {
			report.LargestSize = size
		}
	}
	return report
}
