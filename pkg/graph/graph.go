// Package graph explores the reachable (block, DP, CC) state space and
// produces a dense control-flow graph, command-annotated, for the IR
// lowerer to consume.
package graph

import (
	"fmt"

	"github.com/emirpasic/gods/queues/linkedlistqueue"

	"pietc/pkg/block"
	"pietc/pkg/grid"
	"pietc/pkg/palette"
	"pietc/pkg/sim"
)

// Edge is a single control-flow transition: the target node id and the
// command executed while taking it.
type Edge struct {
	Target  int
	Command palette.Command
}

// Node is a program state: (block id, DP, CC), the source block's size (for
// Push), and its outgoing edges. Two nodes never share the same
// (BlockID, DP, CC) triple.
type Node struct {
	ID        int
	BlockID   int
	DP        sim.DP
	CC        sim.CC
	BlockSize int
	Edges     []Edge
}

// Graph is a dense vector of nodes, referenced only by integer id so that
// the freely cyclic control flow is expressed purely as edges, never as
// owning pointers.
type Graph struct {
	Nodes []Node
}

type stateKey struct {
	blockID int
	dp      sim.DP
	cc      sim.CC
}

// Build explores the state space reachable from the block containing
// (0,0) with DP=Right, CC=Left. If that cell doesn't exist or is Black or
// White, the returned graph has zero nodes.
func Build(g *grid.Grid, bs *block.Set) *Graph {
	gr := &Graph{}

	if g.Empty() {
		return gr
	}
	startBlock, ok := bs.At(0, 0)
	if !ok {
		return gr
	}
	if startColor := g.At(0, 0); startColor == palette.White || startColor == palette.Black || startColor == palette.Undefined {
		return gr
	}

	interned := make(map[stateKey]int)
	q := linkedlistqueue.New()

	intern := func(key stateKey) int {
		if id, ok := interned[key]; ok {
			return id
		}
		id := len(gr.Nodes)
		interned[key] = id
		gr.Nodes = append(gr.Nodes, Node{
			ID:        id,
			BlockID:   key.blockID,
			DP:        key.dp,
			CC:        key.cc,
			BlockSize: bs.ByID(key.blockID).Size(),
		})
		q.Enqueue(key)
		return id
	}

	intern(stateKey{startBlock.ID, sim.Right, sim.CCLeft})

	for !q.Empty() {
		v, _ := q.Dequeue()
		key := v.(stateKey)
		nodeID := interned[key]

		res := sim.Step(g, bs, key.blockID, key.dp, key.cc)
		if !res.Ok {
			continue
		}

		switch res.Command {
		case palette.Pointer:
			for k := 0; k < 4; k++ {
				target := intern(stateKey{res.TargetBlockID, res.DP.Rotate(k), res.CC})
				addEdge(gr, nodeID, target, palette.Pointer)
			}
		case palette.Switch:
			for j := 0; j < 2; j++ {
				cc := res.CC
				if j == 1 {
					cc = cc.Toggle()
				}
				target := intern(stateKey{res.TargetBlockID, res.DP, cc})
				addEdge(gr, nodeID, target, palette.Switch)
			}
		default:
			target := intern(stateKey{res.TargetBlockID, res.DP, res.CC})
			addEdge(gr, nodeID, target, res.Command)
		}
	}

	return gr
}

func addEdge(gr *Graph, from, to int, cmd palette.Command) {
	gr.Nodes[from].Edges = append(gr.Nodes[from].Edges, Edge{Target: to, Command: cmd})
}

// Command returns the command shared by every edge of n, or None if n has
// no outgoing edges.
func (n Node) Command() palette.Command {
	if len(n.Edges) == 0 {
		return palette.None
	}
	return n.Edges[0].Command
}

// Reachable returns the set of node ids reachable from node 0, for testing
// the reachability invariant.
func (gr *Graph) Reachable() []int {
	if len(gr.Nodes) == 0 {
		return nil
	}
	seen := make([]bool, len(gr.Nodes))
	q := linkedlistqueue.New()
	seen[0] = true
	q.Enqueue(0)

	var order []int
	for !q.Empty() {
		v, _ := q.Dequeue()
		id := v.(int)
		order = append(order, id)
		for _, e := range gr.Nodes[id].Edges {
			if !seen[e.Target] {
				seen[e.Target] = true
				q.Enqueue(e.Target)
			}
		}
	}
	return order
}

func (gr *Graph) String() string {
	return fmt.Sprintf("graph.Graph{nodes=%d}", len(gr.Nodes))
}
