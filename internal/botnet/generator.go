// Package botnet builds the mock interaction graph shown on the network panel:
// one target account, a few bot hubs with clusters of bots around them, and a
// handful of genuine followers.
package botnet

import (
	"math"
	"math/rand"

	"github.com/xkilldash9x/prahari/api/schemas"
)

const (
	TargetID = 0

	centerX = 50.0
	centerY = 50.0

	minBotsPerHub = 3
	maxBotsPerHub = 6
	minBotRadius  = 5.0
	maxBotRadius  = 15.0

	safeNodeCount = 5
	safeMin       = 10.0
	safeMax       = 90.0
)

// BotNote is the detail shown for a selected bot node.
const BotNote = "High correlation with known bot farm signatures."

type hubSeed struct {
	id   int
	x, y float64
}

var hubSeeds = []hubSeed{
	{id: 1, x: 30, y: 30},
	{id: 2, x: 70, y: 60},
	{id: 3, x: 40, y: 70},
}

// Graph is a generated interaction graph. Nodes are ordered by ID.
type Graph struct {
	Nodes []schemas.GraphNode `json:"nodes"`
}

// Generate builds a fresh graph. All randomness comes from rng, so a seeded
// source reproduces the same layout.
func Generate(rng *rand.Rand) Graph {
	nodes := make([]schemas.GraphNode, 0, 1+len(hubSeeds)*(maxBotsPerHub+1)+safeNodeCount)

	nodes = append(nodes, schemas.GraphNode{
		ID:          TargetID,
		X:           centerX,
		Y:           centerY,
		Kind:        schemas.NodeTarget,
		Connections: []int{},
	})

	for _, h := range hubSeeds {
		nodes = append(nodes, schemas.GraphNode{
			ID:          h.id,
			X:           h.x,
			Y:           h.y,
			Kind:        schemas.NodeHub,
			Connections: []int{TargetID},
		})
	}

	nextID := len(hubSeeds) + 1
	for _, h := range hubSeeds {
		count := minBotsPerHub + rng.Intn(maxBotsPerHub-minBotsPerHub+1)
		for i := 0; i < count; i++ {
			angle := rng.Float64() * 2 * math.Pi
			radius := minBotRadius + rng.Float64()*(maxBotRadius-minBotRadius)
			nodes = append(nodes, schemas.GraphNode{
				ID:          nextID,
				X:           h.x + math.Cos(angle)*radius,
				Y:           h.y + math.Sin(angle)*radius,
				Kind:        schemas.NodeBot,
				Connections: []int{h.id},
			})
			nextID++
		}
	}

	for i := 0; i < safeNodeCount; i++ {
		nodes = append(nodes, schemas.GraphNode{
			ID:          nextID,
			X:           safeMin + rng.Float64()*(safeMax-safeMin),
			Y:           safeMin + rng.Float64()*(safeMax-safeMin),
			Kind:        schemas.NodeSafe,
			Connections: []int{TargetID},
		})
		nextID++
	}

	return Graph{Nodes: nodes}
}

// Node looks a node up by ID.
func (g Graph) Node(id int) (schemas.GraphNode, bool) {
	if id >= 0 && id < len(g.Nodes) && g.Nodes[id].ID == id {
		return g.Nodes[id], true
	}
	for _, n := range g.Nodes {
		if n.ID == id {
			return n, true
		}
	}
	return schemas.GraphNode{}, false
}

// Edges derives the drawn lines from node connections. A line leaving a bot is
// malicious. Connections to unknown nodes are skipped.
func (g Graph) Edges() []schemas.GraphEdge {
	var edges []schemas.GraphEdge
	for _, n := range g.Nodes {
		for _, target := range n.Connections {
			if _, ok := g.Node(target); !ok {
				continue
			}
			edges = append(edges, schemas.GraphEdge{
				Source:    n.ID,
				Target:    target,
				Malicious: n.Kind == schemas.NodeBot,
			})
		}
	}
	return edges
}

// Count returns the number of nodes of each kind.
func (g Graph) Count() map[schemas.NodeKind]int {
	counts := make(map[schemas.NodeKind]int, 4)
	for _, n := range g.Nodes {
		counts[n.Kind]++
	}
	return counts
}

// NodeNote is the detail text for a selected node; only bots carry one.
func NodeNote(n schemas.GraphNode) string {
	if n.Kind == schemas.NodeBot {
		return BotNote
	}
	return ""
}
