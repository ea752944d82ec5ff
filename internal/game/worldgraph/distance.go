package worldgraph

import "fmt"

// Distances runs an unweighted breadth-first search over areas starting at
// from. The result maps each reachable area to its hop count.
func (g *Graph) Distances(from AreaID, conn Connections) (map[AreaID]int, error) {
	if _, ok := g.areas[from]; !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnknownArea, from)
	}
	dist := map[AreaID]int{from: 0}
	queue := make([]AreaID, 0, len(g.areas))
	queue = append(queue, from)
	for head := 0; head < len(queue); head++ {
		cur := queue[head]
		for _, next := range g.Neighbors(cur, conn) {
			if _, seen := dist[next]; seen {
				continue
			}
			dist[next] = dist[cur] + 1
			queue = append(queue, next)
		}
	}
	return dist, nil
}

// DistanceBetween returns the hop count from one area to another. Same area is 0.
func (g *Graph) DistanceBetween(from, to AreaID, conn Connections) (int, error) {
	if _, ok := g.areas[to]; !ok {
		return 0, fmt.Errorf("%w: %s", ErrUnknownArea, to)
	}
	if from == to {
		if _, ok := g.areas[from]; !ok {
			return 0, fmt.Errorf("%w: %s", ErrUnknownArea, from)
		}
		return 0, nil
	}
	dist, err := g.Distances(from, conn)
	if err != nil {
		return 0, err
	}
	d, ok := dist[to]
	if !ok {
		return 0, fmt.Errorf("%w: %s from %s", ErrUnreachable, to, from)
	}
	return d, nil
}
