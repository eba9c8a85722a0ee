package service

import (
	"fmt"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/mmynk/settleup/internal/models"
	"github.com/mmynk/settleup/internal/settle"
	"github.com/mmynk/settleup/internal/storage"
)

var settlementRuns = promauto.NewCounter(prometheus.CounterOpts{
	Name: "settleup_settlement_runs_total",
	Help: "Total settlement computations across all groups.",
})

// SettlementService handles expenses, balances, and settlement plans.
type SettlementService struct {
	store storage.Store
}

// NewSettlementService creates a new SettlementService with the given
// storage backend.
func NewSettlementService(store storage.Store) *SettlementService {
	return &SettlementService{store: store}
}

// Routes mounts the expense and settlement endpoints on the given router.
func (s *SettlementService) Routes(r chi.Router) {
	r.Post("/groups/{groupID}/expenses", s.CreateExpense)
	r.Get("/groups/{groupID}/expenses", s.ListExpenses)
	r.Delete("/groups/{groupID}/expenses/{expenseID}", s.DeleteExpense)
	r.Get("/groups/{groupID}/balances", s.GetBalances)
	r.Get("/groups/{groupID}/settlements", s.GetSettlements)
}

type expenseItemPayload struct {
	Description string   `json:"description"`
	Price       float64  `json:"price"`
	AssignedTo  []string `json:"assigned_to"`
}

type createExpenseRequest struct {
	Name             string               `json:"name"`
	Amount           float64              `json:"amount"`
	PaidBy           string               `json:"paid_by"`
	Beneficiaries    []string             `json:"beneficiaries"`
	SplitType        string               `json:"split_type"`
	CustomSplits     map[string]float64   `json:"custom_splits,omitempty"`
	PercentageSplits map[string]float64   `json:"percentage_splits,omitempty"`
	Items            []expenseItemPayload `json:"items,omitempty"`
	Category         string               `json:"category,omitempty"`
}

func (req *createExpenseRequest) split() (models.Split, error) {
	switch models.SplitType(req.SplitType) {
	case models.SplitEqual:
		return models.EqualSplit{}, nil
	case models.SplitPercentage:
		return models.PercentageSplit{Percentages: req.PercentageSplits}, nil
	case models.SplitCustom:
		return models.CustomSplit{Amounts: req.CustomSplits}, nil
	case models.SplitItems:
		items := make([]models.ExpenseItem, len(req.Items))
		for i, item := range req.Items {
			items[i] = models.ExpenseItem{
				Description: item.Description,
				Price:       item.Price,
				AssignedTo:  item.AssignedTo,
			}
		}
		return models.ItemsSplit{Items: items}, nil
	default:
		return nil, fmt.Errorf("unknown split_type %q", req.SplitType)
	}
}

type expenseResponse struct {
	ID            string   `json:"id"`
	Name          string   `json:"name"`
	Amount        float64  `json:"amount"`
	PaidBy        string   `json:"paid_by"`
	Beneficiaries []string `json:"beneficiaries"`
	SplitType     string   `json:"split_type"`
	Category      string   `json:"category,omitempty"`
	CreatedAt     int64    `json:"created_at"`
}

func toExpenseResponse(e *models.Expense) expenseResponse {
	return expenseResponse{
		ID:            e.ID,
		Name:          e.Name,
		Amount:        e.Amount,
		PaidBy:        e.PaidBy,
		Beneficiaries: e.Beneficiaries,
		SplitType:     string(e.Split.Type()),
		Category:      e.Category,
		CreatedAt:     e.CreatedAt,
	}
}

// CreateExpense records a new expense in a group.
func (s *SettlementService) CreateExpense(w http.ResponseWriter, r *http.Request) {
	groupID := chi.URLParam(r, "groupID")

	var req createExpenseRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	group, err := s.store.GetGroup(r.Context(), groupID)
	if err != nil {
		slog.Error("CreateExpense: failed to get group", "group_id", groupID, "error", err)
		writeStoreError(w, err)
		return
	}

	split, err := req.split()
	if err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}

	expense := &models.Expense{
		GroupID:       groupID,
		Name:          req.Name,
		Amount:        req.Amount,
		PaidBy:        req.PaidBy,
		Beneficiaries: req.Beneficiaries,
		Split:         split,
		Category:      req.Category,
	}

	if err := expense.Validate(); err != nil {
		slog.Warn("CreateExpense validation failed", "group_id", groupID, "error", err)
		writeError(w, http.StatusBadRequest, err)
		return
	}
	if _, ok := group.Participant(expense.PaidBy); !ok {
		writeError(w, http.StatusBadRequest,
			fmt.Errorf("payer %q is not a participant of this group", expense.PaidBy))
		return
	}

	// Split inconsistencies don't block creation; the calculators trust the
	// caller. Log them so mismatched totals are traceable.
	for _, warning := range expense.Warnings() {
		slog.Warn("Expense split inconsistency", "group_id", groupID, "expense", expense.Name, "detail", warning)
	}

	if err := s.store.CreateExpense(r.Context(), expense); err != nil {
		slog.Error("CreateExpense failed", "group_id", groupID, "error", err)
		writeStoreError(w, err)
		return
	}

	slog.Info("Expense created", "group_id", groupID, "expense_id", expense.ID, "amount", expense.Amount)
	writeJSON(w, http.StatusCreated, toExpenseResponse(expense))
}

// ListExpenses retrieves all expenses of a group.
func (s *SettlementService) ListExpenses(w http.ResponseWriter, r *http.Request) {
	groupID := chi.URLParam(r, "groupID")

	if _, err := s.store.GetGroup(r.Context(), groupID); err != nil {
		writeStoreError(w, err)
		return
	}

	expenses, err := s.store.ListExpensesByGroup(r.Context(), groupID)
	if err != nil {
		slog.Error("ListExpenses failed", "group_id", groupID, "error", err)
		writeStoreError(w, err)
		return
	}

	out := make([]expenseResponse, len(expenses))
	for i := range expenses {
		out[i] = toExpenseResponse(&expenses[i])
	}
	writeJSON(w, http.StatusOK, out)
}

// DeleteExpense removes an expense from a group.
func (s *SettlementService) DeleteExpense(w http.ResponseWriter, r *http.Request) {
	expenseID := chi.URLParam(r, "expenseID")

	if err := s.store.DeleteExpense(r.Context(), expenseID); err != nil {
		slog.Error("DeleteExpense failed", "expense_id", expenseID, "error", err)
		writeStoreError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

type balanceResponse struct {
	ParticipantID string  `json:"participant_id"`
	Name          string  `json:"name"`
	Balance       float64 `json:"balance"`
}

// GetBalances computes net balances across all expenses of a group.
func (s *SettlementService) GetBalances(w http.ResponseWriter, r *http.Request) {
	groupID := chi.URLParam(r, "groupID")

	group, err := s.store.GetGroup(r.Context(), groupID)
	if err != nil {
		writeStoreError(w, err)
		return
	}

	expenses, err := s.store.ListExpensesByGroup(r.Context(), groupID)
	if err != nil {
		slog.Error("GetBalances failed", "group_id", groupID, "error", err)
		writeStoreError(w, err)
		return
	}

	balances := settle.CalculateBalances(expenses)

	out := make([]balanceResponse, 0, len(group.Participants))
	for _, p := range group.Participants {
		out = append(out, balanceResponse{
			ParticipantID: p.ID,
			Name:          p.Name,
			Balance:       balances[p.ID],
		})
	}
	writeJSON(w, http.StatusOK, out)
}

type settlementResponse struct {
	From   participantResponse `json:"from"`
	To     participantResponse `json:"to"`
	Amount float64             `json:"amount"`
}

type savingsResponse struct {
	TransactionsSaved   int     `json:"transactions_saved"`
	PercentageReduction float64 `json:"percentage_reduction"`
}

type debtNodeResponse struct {
	ID      string  `json:"id"`
	Name    string  `json:"name"`
	Balance float64 `json:"balance"`
	X       int     `json:"x"`
	Y       int     `json:"y"`
}

type debtEdgeResponse struct {
	From   string  `json:"from"`
	To     string  `json:"to"`
	Amount float64 `json:"amount"`
}

type debtGraphResponse struct {
	Nodes []debtNodeResponse `json:"nodes"`
	Edges []debtEdgeResponse `json:"edges"`
}

type settlementsResponse struct {
	Traditional  []settlementResponse `json:"traditional"`
	Optimized    []settlementResponse `json:"optimized"`
	Savings      savingsResponse      `json:"savings"`
	Instructions []string             `json:"instructions"`
	Graph        debtGraphResponse    `json:"graph"`
}

func toSettlementResponses(settlements []settle.Settlement) []settlementResponse {
	out := make([]settlementResponse, len(settlements))
	for i, s := range settlements {
		out[i] = settlementResponse{
			From:   participantResponse{ID: s.From.ID, Name: s.From.Name},
			To:     participantResponse{ID: s.To.ID, Name: s.To.Name},
			Amount: s.Amount,
		}
	}
	return out
}

func toGraphResponse(graph settle.DebtGraph) debtGraphResponse {
	nodes := make([]debtNodeResponse, len(graph.Nodes))
	for i, n := range graph.Nodes {
		nodes[i] = debtNodeResponse{ID: n.ID, Name: n.Name, Balance: n.Balance, X: n.X, Y: n.Y}
	}
	edges := make([]debtEdgeResponse, len(graph.Edges))
	for i, e := range graph.Edges {
		edges[i] = debtEdgeResponse{From: e.From, To: e.To, Amount: e.Amount}
	}
	return debtGraphResponse{Nodes: nodes, Edges: edges}
}

// GetSettlements runs both settlement plans over the group's expenses and
// returns them with savings, rendered instructions, and the debt graph.
// The lang query parameter selects the instruction language (es or en).
func (s *SettlementService) GetSettlements(w http.ResponseWriter, r *http.Request) {
	groupID := chi.URLParam(r, "groupID")

	group, err := s.store.GetGroup(r.Context(), groupID)
	if err != nil {
		writeStoreError(w, err)
		return
	}

	expenses, err := s.store.ListExpensesByGroup(r.Context(), groupID)
	if err != nil {
		slog.Error("GetSettlements failed", "group_id", groupID, "error", err)
		writeStoreError(w, err)
		return
	}

	locale := settle.LocaleEN
	if r.URL.Query().Get("lang") == string(settle.LocaleES) {
		locale = settle.LocaleES
	}

	result := settle.OptimizeSettlements(expenses, group.Participants)
	settlementRuns.Inc()

	instructions := make([]string, len(result.Optimized))
	for i, settlement := range result.Optimized {
		instructions[i] = settle.DescribeIn(settlement, locale, group.Currency)
	}

	slog.Info("Settlements computed",
		"group_id", groupID,
		"expenses", len(expenses),
		"traditional", len(result.Traditional),
		"optimized", len(result.Optimized),
		"saved", result.Savings.TransactionsSaved,
	)

	writeJSON(w, http.StatusOK, settlementsResponse{
		Traditional:  toSettlementResponses(result.Traditional),
		Optimized:    toSettlementResponses(result.Optimized),
		Savings: savingsResponse{
			TransactionsSaved:   result.Savings.TransactionsSaved,
			PercentageReduction: result.Savings.PercentageReduction,
		},
		Instructions: instructions,
		Graph:        toGraphResponse(settle.BuildDebtGraph(result.Optimized)),
	})
}
