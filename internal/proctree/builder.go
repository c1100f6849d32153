// Package proctree turns one tick's flat process table into a forest of
// parent/child nodes.
//
// Parent pids reported by the OS are claims, not facts: a parent may have
// exited and its pid been handed to an unrelated process. Every claimed edge
// is checked against process start times before it is used, and anything
// that cannot be confirmed becomes a root.
package proctree

import (
	"cmp"
	"slices"

	"actiowatch/internal/domain"
)

type Aggregation int

const (
	// AggregateSelf leaves every Total field equal to the node's own value.
	AggregateSelf Aggregation = iota
	// AggregateSubtree sums every validated descendant into the Total fields.
	AggregateSubtree
)

func (a Aggregation) String() string {
	switch a {
	case AggregateSubtree:
		return "subtree"
	default:
		return "self"
	}
}

type Options struct {
	// CoreCount divides raw per-process CPU so that values stay in 0-100.
	// Values below 1 are treated as 1.
	CoreCount   int
	Aggregation Aggregation
}

type builder struct {
	samples     []domain.ProcessSample
	index       map[int32]int
	children    map[int32][]int32
	cores       float64
	aggregation Aggregation
}

// Build returns the process forest for samples. Every distinct pid in
// samples appears exactly once in the result; when a pid is repeated only
// its first sample is used. Roots and each node's children are ordered by
// TotalCPUPercent, highest first, keeping input order on ties.
func Build(samples []domain.ProcessSample, opts Options) []domain.ProcessNode {
	index := make(map[int32]int, len(samples))
	order := make([]int32, 0, len(samples))
	for i, s := range samples {
		if _, seen := index[s.PID]; seen {
			continue
		}
		index[s.PID] = i
		order = append(order, s.PID)
	}

	parents := make(map[int32]int32, len(order))
	for _, pid := range order {
		child := samples[index[pid]]
		ppid, ok := child.Parent()
		if !ok {
			continue
		}
		pi, ok := index[ppid]
		if !ok {
			continue
		}
		if ValidEdge(child, samples[pi]) {
			parents[pid] = ppid
		}
	}

	breakCycles(order, parents)

	children := make(map[int32][]int32, len(parents))
	roots := make([]int32, 0, len(order)-len(parents))
	for _, pid := range order {
		if ppid, ok := parents[pid]; ok {
			children[ppid] = append(children[ppid], pid)
			continue
		}
		roots = append(roots, pid)
	}

	cores := float64(opts.CoreCount)
	if cores < 1 {
		cores = 1
	}

	b := &builder{
		samples:     samples,
		index:       index,
		children:    children,
		cores:       cores,
		aggregation: opts.Aggregation,
	}

	forest := make([]domain.ProcessNode, 0, len(roots))
	for _, pid := range roots {
		forest = append(forest, b.node(pid))
	}
	sortByCPU(forest)

	return forest
}

// ValidEdge reports whether child may be attached under parent.
//
// A child cannot start before its parent. When both start times are unknown
// the edge is rejected: the pair is usually two access-denied system
// processes and guessing wrong grafts unrelated subtrees together.
func ValidEdge(child, parent domain.ProcessSample) bool {
	if child.PID == parent.PID {
		return false
	}

	cStart, pStart := child.StartTime, parent.StartTime
	switch {
	case cStart < pStart:
		return false
	case cStart == 0 && pStart == 0:
		return false
	default:
		return true
	}
}

// breakCycles removes accepted edges that close a loop. The start-time rule
// only lets a loop through when every member reports the same non-zero
// start time; the member whose edge closes the loop becomes a root.
func breakCycles(order []int32, parents map[int32]int32) {
	const (
		unseen uint8 = iota
		visiting
		done
	)

	state := make(map[int32]uint8, len(order))
	path := make([]int32, 0, 16)

	for _, start := range order {
		if state[start] == done {
			continue
		}

		path = path[:0]
		pid := start
		for {
			st := state[pid]
			if st == done {
				break
			}
			if st == visiting {
				delete(parents, path[len(path)-1])
				break
			}

			state[pid] = visiting
			path = append(path, pid)

			next, ok := parents[pid]
			if !ok {
				break
			}
			pid = next
		}

		for _, p := range path {
			state[p] = done
		}
	}
}

func (b *builder) node(pid int32) domain.ProcessNode {
	s := b.samples[b.index[pid]]
	cpu := s.CPUPercent / b.cores

	n := domain.ProcessNode{
		PID:            s.PID,
		Name:           s.Name,
		StartTime:      s.StartTime,
		CPUPercent:     cpu,
		MemoryBytes:    s.MemoryBytes,
		DiskReadBytes:  s.DiskReadBytes,
		DiskWriteBytes: s.DiskWriteBytes,
		ThreadCount:    s.ThreadCount,

		TotalCPUPercent:     cpu,
		TotalMemoryBytes:    s.MemoryBytes,
		TotalDiskReadBytes:  s.DiskReadBytes,
		TotalDiskWriteBytes: s.DiskWriteBytes,
	}

	kids := b.children[pid]
	n.Children = make([]domain.ProcessNode, 0, len(kids))
	for _, c := range kids {
		child := b.node(c)
		if b.aggregation == AggregateSubtree {
			n.TotalCPUPercent += child.TotalCPUPercent
			n.TotalMemoryBytes += child.TotalMemoryBytes
			n.TotalDiskReadBytes += child.TotalDiskReadBytes
			n.TotalDiskWriteBytes += child.TotalDiskWriteBytes
		}
		n.Children = append(n.Children, child)
	}
	sortByCPU(n.Children)

	return n
}

func sortByCPU(nodes []domain.ProcessNode) {
	slices.SortStableFunc(nodes, func(a, b domain.ProcessNode) int {
		return cmp.Compare(b.TotalCPUPercent, a.TotalCPUPercent)
	})
}
