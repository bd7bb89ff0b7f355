package rest

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"time"

	"github.com/google/uuid"

	"github.com/dailystart/messages-backend/internal/domain"
	"github.com/dailystart/messages-backend/internal/service/goal"
)

// goalService defines the minimal interface needed by GoalHandler.
type goalService interface {
	Create(ctx context.Context, input goal.CreateInput) (*domain.Goal, error)
	Get(ctx context.Context, goalID uuid.UUID) (*domain.Goal, error)
	List(ctx context.Context) ([]domain.Goal, error)
	Update(ctx context.Context, goalID uuid.UUID, input goal.UpdateInput) (*domain.Goal, error)
	Advance(ctx context.Context, goalID uuid.UUID) (*domain.Goal, error)
	Delete(ctx context.Context, goalID uuid.UUID) error
}

// GoalHandler serves the personal goals endpoints.
type GoalHandler struct {
	svc goalService
	log *slog.Logger
}

// NewGoalHandler creates a GoalHandler.
func NewGoalHandler(svc goalService, logger *slog.Logger) *GoalHandler {
	return &GoalHandler{svc: svc, log: logger.With("handler", "goal")}
}

type createGoalRequest struct {
	Title       string     `json:"title"`
	Description *string    `json:"description"`
	Category    string     `json:"category"`
	Type        string     `json:"type"`
	TargetCount int        `json:"targetCount"`
	StartDate   *time.Time `json:"startDate"`
	TargetDate  *time.Time `json:"targetDate"`
}

type updateGoalRequest struct {
	Title       *string    `json:"title"`
	Description *string    `json:"description"`
	Category    *string    `json:"category"`
	Type        *string    `json:"type"`
	TargetCount *int       `json:"targetCount"`
	TargetDate  *time.Time `json:"targetDate"`
}

type goalResponse struct {
	ID           string     `json:"id"`
	Title        string     `json:"title"`
	Description  *string    `json:"description,omitempty"`
	Category     string     `json:"category"`
	Type         string     `json:"type"`
	TargetCount  int        `json:"targetCount"`
	CurrentCount int        `json:"currentCount"`
	IsCompleted  bool       `json:"isCompleted"`
	StartDate    time.Time  `json:"startDate"`
	TargetDate   *time.Time `json:"targetDate,omitempty"`
	CompletedAt  *time.Time `json:"completedAt,omitempty"`
	CreatedAt    time.Time  `json:"createdAt"`
}

// Create handles POST /api/me/goals.
func (h *GoalHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req createGoalRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	g, err := h.svc.Create(r.Context(), goal.CreateInput{
		Title:       req.Title,
		Description: req.Description,
		Category:    req.Category,
		Type:        req.Type,
		TargetCount: req.TargetCount,
		StartDate:   req.StartDate,
		TargetDate:  req.TargetDate,
	})
	if err != nil {
		handleError(h.log, w, r, err)
		return
	}

	writeJSON(w, http.StatusCreated, toGoalResponse(g))
}

// Get handles GET /api/me/goals/{id}.
func (h *GoalHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "goal id must be a UUID")
		return
	}

	g, err := h.svc.Get(r.Context(), id)
	if err != nil {
		handleError(h.log, w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, toGoalResponse(g))
}

// List handles GET /api/me/goals.
func (h *GoalHandler) List(w http.ResponseWriter, r *http.Request) {
	goals, err := h.svc.List(r.Context())
	if err != nil {
		handleError(h.log, w, r, err)
		return
	}

	resp := make([]goalResponse, 0, len(goals))
	for i := range goals {
		resp = append(resp, toGoalResponse(&goals[i]))
	}
	writeJSON(w, http.StatusOK, map[string]any{"goals": resp})
}

// Update handles PUT /api/me/goals/{id}.
func (h *GoalHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "goal id must be a UUID")
		return
	}

	var req updateGoalRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	g, err := h.svc.Update(r.Context(), id, goal.UpdateInput{
		Title:       req.Title,
		Description: req.Description,
		Category:    req.Category,
		Type:        req.Type,
		TargetCount: req.TargetCount,
		TargetDate:  req.TargetDate,
	})
	if err != nil {
		handleError(h.log, w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, toGoalResponse(g))
}

// Advance handles POST /api/me/goals/{id}/progress.
func (h *GoalHandler) Advance(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "goal id must be a UUID")
		return
	}

	g, err := h.svc.Advance(r.Context(), id)
	if err != nil {
		handleError(h.log, w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, toGoalResponse(g))
}

// Delete handles DELETE /api/me/goals/{id}.
func (h *GoalHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "goal id must be a UUID")
		return
	}

	if err := h.svc.Delete(r.Context(), id); err != nil {
		handleError(h.log, w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func toGoalResponse(g *domain.Goal) goalResponse {
	return goalResponse{
		ID:           g.ID.String(),
		Title:        g.Title,
		Description:  g.Description,
		Category:     g.Category.String(),
		Type:         g.Type.String(),
		TargetCount:  g.TargetCount,
		CurrentCount: g.CurrentCount,
		IsCompleted:  g.IsCompleted,
		StartDate:    g.StartDate,
		TargetDate:   g.TargetDate,
		CompletedAt:  g.CompletedAt,
		CreatedAt:    g.CreatedAt,
	}
}
