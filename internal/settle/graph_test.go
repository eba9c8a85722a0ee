package settle

import (
	"math"
	"testing"

	"github.com/mmynk/settleup/internal/models"
)

func TestBuildDebtGraph(t *testing.T) {
	alice := models.Participant{ID: "p1", Name: "Alice"}
	bob := models.Participant{ID: "p2", Name: "Bob"}
	charlie := models.Participant{ID: "p3", Name: "Charlie"}

	settlements := []Settlement{
		{From: bob, To: alice, Amount: 30},
		{From: charlie, To: alice, Amount: 20},
	}

	graph := BuildDebtGraph(settlements)

	if len(graph.Nodes) != 3 {
		t.Fatalf("expected 3 nodes, got %d", len(graph.Nodes))
	}
	if len(graph.Edges) != 2 {
		t.Fatalf("expected 2 edges, got %d", len(graph.Edges))
	}

	balances := make(map[string]float64)
	for _, n := range graph.Nodes {
		balances[n.ID] = n.Balance
	}
	for id, want := range map[string]float64{"p1": 50, "p2": -30, "p3": -20} {
		if math.Abs(balances[id]-want) > 0.01 {
			t.Errorf("node %s balance = %v, want %v", id, balances[id], want)
		}
	}

	// First appearance fixes the layout: Bob at x=0 (payer row), Alice next.
	if graph.Nodes[0].ID != "p2" || graph.Nodes[0].X != 0 || graph.Nodes[0].Y != 0 {
		t.Errorf("unexpected first node %+v", graph.Nodes[0])
	}
	if graph.Nodes[1].ID != "p1" || graph.Nodes[1].X != 100 || graph.Nodes[1].Y != 100 {
		t.Errorf("unexpected second node %+v", graph.Nodes[1])
	}

	if graph.Edges[0] != (DebtEdge{From: "p2", To: "p1", Amount: 30}) {
		t.Errorf("unexpected first edge %+v", graph.Edges[0])
	}
}

func TestBuildDebtGraph_Empty(t *testing.T) {
	graph := BuildDebtGraph(nil)
	if len(graph.Nodes) != 0 || len(graph.Edges) != 0 {
		t.Errorf("expected empty graph, got %+v", graph)
	}
}
