package botnet

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/xkilldash9x/prahari/api/schemas"
)

func TestGenerate_StructuralInvariants(t *testing.T) {
	for seed := int64(0); seed < 200; seed++ {
		g := Generate(rand.New(rand.NewSource(seed)))
		byID := make(map[int]schemas.GraphNode, len(g.Nodes))
		for i, n := range g.Nodes {
			require.Equal(t, i, n.ID, "seed %d: ids must be sequential", seed)
			byID[n.ID] = n
		}

		counts := g.Count()
		require.Equal(t, 1, counts[schemas.NodeTarget], "seed %d", seed)
		require.Equal(t, 3, counts[schemas.NodeHub], "seed %d", seed)
		require.Equal(t, 5, counts[schemas.NodeSafe], "seed %d", seed)
		require.GreaterOrEqual(t, counts[schemas.NodeBot], 9, "seed %d", seed)
		require.LessOrEqual(t, counts[schemas.NodeBot], 18, "seed %d", seed)

		botsPerHub := map[int]int{}
		for _, n := range g.Nodes {
			assert.True(t, n.X >= 0 && n.X <= 100, "seed %d node %d x=%f", seed, n.ID, n.X)
			assert.True(t, n.Y >= 0 && n.Y <= 100, "seed %d node %d y=%f", seed, n.ID, n.Y)

			switch n.Kind {
			case schemas.NodeTarget:
				assert.Equal(t, TargetID, n.ID)
				assert.Equal(t, 50.0, n.X)
				assert.Equal(t, 50.0, n.Y)
			case schemas.NodeHub:
				assert.Equal(t, []int{TargetID}, n.Connections)
			case schemas.NodeBot:
				require.Len(t, n.Connections, 1)
				hub := byID[n.Connections[0]]
				assert.Equal(t, schemas.NodeHub, hub.Kind, "seed %d: bot %d must connect to a hub", seed, n.ID)
				botsPerHub[hub.ID]++
			case schemas.NodeSafe:
				assert.Equal(t, []int{TargetID}, n.Connections)
				assert.True(t, n.X >= 10 && n.X <= 90)
				assert.True(t, n.Y >= 10 && n.Y <= 90)
			}
		}

		for hubID := 1; hubID <= 3; hubID++ {
			assert.GreaterOrEqual(t, botsPerHub[hubID], 3, "seed %d hub %d", seed, hubID)
			assert.LessOrEqual(t, botsPerHub[hubID], 6, "seed %d hub %d", seed, hubID)
		}
	}
}

func TestGenerate_HubPositions(t *testing.T) {
	g := Generate(rand.New(rand.NewSource(7)))
	want := map[int][2]float64{1: {30, 30}, 2: {70, 60}, 3: {40, 70}}
	for id, pos := range want {
		n, ok := g.Node(id)
		require.True(t, ok)
		assert.Equal(t, schemas.NodeHub, n.Kind)
		assert.Equal(t, pos[0], n.X)
		assert.Equal(t, pos[1], n.Y)
	}
}

func TestGenerate_BotsStayNearHub(t *testing.T) {
	g := Generate(rand.New(rand.NewSource(42)))
	for _, n := range g.Nodes {
		if n.Kind != schemas.NodeBot {
			continue
		}
		hub, _ := g.Node(n.Connections[0])
		dx, dy := n.X-hub.X, n.Y-hub.Y
		dist2 := dx*dx + dy*dy
		assert.True(t, dist2 >= 5*5-1e-9 && dist2 <= 15*15+1e-9, "bot %d at distance^2 %f", n.ID, dist2)
	}
}

func TestGenerate_Deterministic(t *testing.T) {
	a := Generate(rand.New(rand.NewSource(99)))
	b := Generate(rand.New(rand.NewSource(99)))
	assert.Equal(t, a, b)
}

func TestEdges(t *testing.T) {
	g := Generate(rand.New(rand.NewSource(3)))
	edges := g.Edges()

	// Every node except the target contributes exactly one edge.
	assert.Len(t, edges, len(g.Nodes)-1)
	for _, e := range edges {
		src, ok := g.Node(e.Source)
		require.True(t, ok)
		assert.Equal(t, src.Kind == schemas.NodeBot, e.Malicious)
	}
}

func TestEdges_SkipsDanglingConnections(t *testing.T) {
	g := Graph{Nodes: []schemas.GraphNode{
		{ID: 0, Kind: schemas.NodeTarget},
		{ID: 1, Kind: schemas.NodeBot, Connections: []int{0, 42}},
	}}
	assert.Equal(t, []schemas.GraphEdge{{Source: 1, Target: 0, Malicious: true}}, g.Edges())
}

func TestNode_NotFound(t *testing.T) {
	g := Generate(rand.New(rand.NewSource(1)))
	_, ok := g.Node(1000)
	assert.False(t, ok)
	_, ok = g.Node(-1)
	assert.False(t, ok)
}

func TestNodeNote(t *testing.T) {
	assert.Equal(t, BotNote, NodeNote(schemas.GraphNode{Kind: schemas.NodeBot}))
	assert.Empty(t, NodeNote(schemas.GraphNode{Kind: schemas.NodeHub}))
	assert.Empty(t, NodeNote(schemas.GraphNode{Kind: schemas.NodeSafe}))
}
