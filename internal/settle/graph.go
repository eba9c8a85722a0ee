package settle

// DebtNode is one participant in a rendered debt graph, with a running
// balance across the settlements and a suggested layout position.
type DebtNode struct {
	ID      string
	Name    string
	Balance float64 // positive = owed, negative = owes
	X       int
	Y       int
}

// DebtEdge is one directed payment in a rendered debt graph.
type DebtEdge struct {
	From   string
	To     string
	Amount float64
}

// DebtGraph is a visualization-friendly view of a settlement plan.
type DebtGraph struct {
	Nodes []DebtNode
	Edges []DebtEdge
}

// BuildDebtGraph lays out a settlement plan as a graph for client-side
// rendering: payers on the top row, receivers on the bottom, one edge per
// settlement. Node balances accumulate across all settlements touching the
// participant. Node order follows first appearance in the plan.
func BuildDebtGraph(settlements []Settlement) DebtGraph {
	position := make(map[string]int)
	nodes := make([]DebtNode, 0)
	edges := make([]DebtEdge, 0, len(settlements))

	xPos := 0
	node := func(id, name string, y int) *DebtNode {
		if pos, ok := position[id]; ok {
			return &nodes[pos]
		}
		position[id] = len(nodes)
		nodes = append(nodes, DebtNode{ID: id, Name: name, X: xPos, Y: y})
		xPos += 100
		return &nodes[len(nodes)-1]
	}

	for _, s := range settlements {
		node(s.From.ID, s.From.Name, 0).Balance -= s.Amount
		node(s.To.ID, s.To.Name, 100).Balance += s.Amount
		edges = append(edges, DebtEdge{From: s.From.ID, To: s.To.ID, Amount: s.Amount})
	}

	return DebtGraph{Nodes: nodes, Edges: edges}
}
