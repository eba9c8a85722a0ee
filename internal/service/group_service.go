package service

import (
	"fmt"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/mmynk/settleup/internal/models"
	"github.com/mmynk/settleup/internal/storage"
)

// GroupService handles group and participant management.
type GroupService struct {
	store storage.Store
}

// NewGroupService creates a new GroupService with the given storage backend.
func NewGroupService(store storage.Store) *GroupService {
	return &GroupService{store: store}
}

// Routes mounts the group endpoints on the given router.
func (s *GroupService) Routes(r chi.Router) {
	r.Post("/groups", s.CreateGroup)
	r.Get("/groups", s.ListGroups)
	r.Get("/groups/{groupID}", s.GetGroup)
	r.Post("/groups/{groupID}/participants", s.AddParticipants)
}

type participantResponse struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

type groupResponse struct {
	ID           string                `json:"id"`
	Name         string                `json:"name"`
	Currency     string                `json:"currency"`
	Participants []participantResponse `json:"participants"`
	CreatedAt    int64                 `json:"created_at"`
}

func toGroupResponse(group *models.Group) groupResponse {
	participants := make([]participantResponse, len(group.Participants))
	for i, p := range group.Participants {
		participants[i] = participantResponse{ID: p.ID, Name: p.Name}
	}
	return groupResponse{
		ID:           group.ID,
		Name:         group.Name,
		Currency:     group.Currency,
		Participants: participants,
		CreatedAt:    group.CreatedAt,
	}
}

type createGroupRequest struct {
	Name         string   `json:"name"`
	Currency     string   `json:"currency"`
	Participants []string `json:"participants"`
}

// CreateGroup creates a new group with its initial participants.
func (s *GroupService) CreateGroup(w http.ResponseWriter, r *http.Request) {
	var req createGroupRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	if req.Name == "" {
		writeError(w, http.StatusBadRequest, fmt.Errorf("group name required"))
		return
	}

	participants := make([]models.Participant, len(req.Participants))
	for i, name := range req.Participants {
		participants[i] = models.Participant{Name: name}
	}

	group := &models.Group{
		Name:         req.Name,
		Currency:     req.Currency,
		Participants: participants,
	}

	if err := s.store.CreateGroup(r.Context(), group); err != nil {
		slog.Error("CreateGroup failed", "error", err)
		writeStoreError(w, err)
		return
	}

	slog.Info("Group created", "group_id", group.ID, "participants", len(group.Participants))
	writeJSON(w, http.StatusCreated, toGroupResponse(group))
}

// GetGroup retrieves a group by ID.
func (s *GroupService) GetGroup(w http.ResponseWriter, r *http.Request) {
	groupID := chi.URLParam(r, "groupID")

	group, err := s.store.GetGroup(r.Context(), groupID)
	if err != nil {
		slog.Error("GetGroup failed", "group_id", groupID, "error", err)
		writeStoreError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, toGroupResponse(group))
}

// ListGroups retrieves all groups.
func (s *GroupService) ListGroups(w http.ResponseWriter, r *http.Request) {
	groups, err := s.store.ListGroups(r.Context())
	if err != nil {
		slog.Error("ListGroups failed", "error", err)
		writeStoreError(w, err)
		return
	}

	out := make([]groupResponse, len(groups))
	for i, g := range groups {
		out[i] = toGroupResponse(g)
	}
	writeJSON(w, http.StatusOK, out)
}

type addParticipantsRequest struct {
	Names []string `json:"names"`
}

// AddParticipants appends new members to an existing group.
func (s *GroupService) AddParticipants(w http.ResponseWriter, r *http.Request) {
	groupID := chi.URLParam(r, "groupID")

	var req addParticipantsRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	if len(req.Names) == 0 {
		writeError(w, http.StatusBadRequest, fmt.Errorf("at least one participant name required"))
		return
	}

	participants := make([]models.Participant, len(req.Names))
	for i, name := range req.Names {
		participants[i] = models.Participant{Name: name}
	}

	if err := s.store.AddParticipants(r.Context(), groupID, participants); err != nil {
		slog.Error("AddParticipants failed", "group_id", groupID, "error", err)
		writeStoreError(w, err)
		return
	}

	group, err := s.store.GetGroup(r.Context(), groupID)
	if err != nil {
		slog.Error("AddParticipants: failed to reload group", "group_id", groupID, "error", err)
		writeStoreError(w, err)
		return
	}

	slog.Info("Participants added", "group_id", groupID, "added", len(participants))
	writeJSON(w, http.StatusOK, toGroupResponse(group))
}
