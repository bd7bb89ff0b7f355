package rest

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/dailystart/messages-backend/internal/domain"
	"github.com/dailystart/messages-backend/internal/service/user"
)

// userService defines the minimal interface needed by UserHandler.
type userService interface {
	Profile(ctx context.Context) (*domain.User, error)
	UpdateProfile(ctx context.Context, input user.UpdateProfileInput) (*domain.User, error)
	Stats(ctx context.Context) (*domain.UserStats, error)
}

// UserHandler serves the authenticated user's profile endpoints.
type UserHandler struct {
	svc userService
	log *slog.Logger
}

// NewUserHandler creates a UserHandler.
func NewUserHandler(svc userService, logger *slog.Logger) *UserHandler {
	return &UserHandler{svc: svc, log: logger.With("handler", "user")}
}

type updateProfileRequest struct {
	DisplayName *string        `json:"displayName"`
	Email       *string        `json:"email"`
	Settings    map[string]any `json:"settings"`
}

type userStatsResponse struct {
	TotalFavorites      int `json:"totalFavorites"`
	TotalHistory        int `json:"totalHistory"`
	TotalJournalEntries int `json:"totalJournalEntries"`
	TotalGoals          int `json:"totalGoals"`
	CompletedGoals      int `json:"completedGoals"`
}

// Me handles GET /api/me.
func (h *UserHandler) Me(w http.ResponseWriter, r *http.Request) {
	u, err := h.svc.Profile(r.Context())
	if err != nil {
		handleError(h.log, w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, toUserResponse(u))
}

// UpdateMe handles PUT /api/me.
func (h *UserHandler) UpdateMe(w http.ResponseWriter, r *http.Request) {
	var req updateProfileRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	u, err := h.svc.UpdateProfile(r.Context(), user.UpdateProfileInput{
		DisplayName: req.DisplayName,
		Email:       req.Email,
		Settings:    req.Settings,
	})
	if err != nil {
		handleError(h.log, w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, toUserResponse(u))
}

// MyStats handles GET /api/me/stats.
func (h *UserHandler) MyStats(w http.ResponseWriter, r *http.Request) {
	stats, err := h.svc.Stats(r.Context())
	if err != nil {
		handleError(h.log, w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, userStatsResponse{
		TotalFavorites:      stats.TotalFavorites,
		TotalHistory:        stats.TotalHistory,
		TotalJournalEntries: stats.TotalJournalEntries,
		TotalGoals:          stats.TotalGoals,
		CompletedGoals:      stats.CompletedGoals,
	})
}
