package rest

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/google/uuid"

	"github.com/dailystart/messages-backend/internal/domain"
	"github.com/dailystart/messages-backend/internal/service/favorite"
	"github.com/dailystart/messages-backend/internal/service/history"
)

// favoriteService defines the minimal interface needed by FavoriteHandler.
type favoriteService interface {
	Add(ctx context.Context, input favorite.AddInput) (*domain.Favorite, error)
	List(ctx context.Context) ([]domain.Favorite, error)
	Remove(ctx context.Context, favoriteID uuid.UUID) error
}

// historyService defines the minimal interface needed by FavoriteHandler.
type historyService interface {
	Record(ctx context.Context, input history.RecordInput) (*domain.HistoryItem, error)
	List(ctx context.Context, limit int) ([]domain.HistoryItem, error)
	Clear(ctx context.Context) (int, error)
}

// FavoriteHandler serves the favorites and view history endpoints.
type FavoriteHandler struct {
	favorites favoriteService
	history   historyService
	log       *slog.Logger
}

// NewFavoriteHandler creates a FavoriteHandler.
func NewFavoriteHandler(favorites favoriteService, history historyService, logger *slog.Logger) *FavoriteHandler {
	return &FavoriteHandler{
		favorites: favorites,
		history:   history,
		log:       logger.With("handler", "favorite"),
	}
}

type snapshotRequest struct {
	MessageID   string         `json:"messageId"`
	MessageData map[string]any `json:"messageData"`
}

type favoriteResponse struct {
	ID          string         `json:"id"`
	MessageID   string         `json:"messageId"`
	MessageData map[string]any `json:"messageData"`
	AddedAt     time.Time      `json:"addedAt"`
}

type historyItemResponse struct {
	ID          string         `json:"id"`
	MessageID   string         `json:"messageId"`
	MessageData map[string]any `json:"messageData"`
	ViewedAt    time.Time      `json:"viewedAt"`
}

// AddFavorite handles POST /api/me/favorites.
func (h *FavoriteHandler) AddFavorite(w http.ResponseWriter, r *http.Request) {
	var req snapshotRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	fav, err := h.favorites.Add(r.Context(), favorite.AddInput{
		MessageID:   req.MessageID,
		MessageData: req.MessageData,
	})
	if err != nil {
		handleError(h.log, w, r, err)
		return
	}

	writeJSON(w, http.StatusCreated, toFavoriteResponse(fav))
}

// ListFavorites handles GET /api/me/favorites.
func (h *FavoriteHandler) ListFavorites(w http.ResponseWriter, r *http.Request) {
	favs, err := h.favorites.List(r.Context())
	if err != nil {
		handleError(h.log, w, r, err)
		return
	}

	resp := make([]favoriteResponse, 0, len(favs))
	for i := range favs {
		resp = append(resp, toFavoriteResponse(&favs[i]))
	}
	writeJSON(w, http.StatusOK, map[string]any{"favorites": resp})
}

// RemoveFavorite handles DELETE /api/me/favorites/{id}.
func (h *FavoriteHandler) RemoveFavorite(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "favorite id must be a UUID")
		return
	}

	if err := h.favorites.Remove(r.Context(), id); err != nil {
		handleError(h.log, w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// RecordHistory handles POST /api/me/history.
func (h *FavoriteHandler) RecordHistory(w http.ResponseWriter, r *http.Request) {
	var req snapshotRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	item, err := h.history.Record(r.Context(), history.RecordInput{
		MessageID:   req.MessageID,
		MessageData: req.MessageData,
	})
	if err != nil {
		handleError(h.log, w, r, err)
		return
	}

	writeJSON(w, http.StatusCreated, toHistoryItemResponse(item))
}

// ListHistory handles GET /api/me/history.
func (h *FavoriteHandler) ListHistory(w http.ResponseWriter, r *http.Request) {
	var limit int
	if raw := r.URL.Query().Get("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil {
			writeError(w, http.StatusBadRequest, "limit must be an integer")
			return
		}
		limit = n
	}

	items, err := h.history.List(r.Context(), limit)
	if err != nil {
		handleError(h.log, w, r, err)
		return
	}

	resp := make([]historyItemResponse, 0, len(items))
	for i := range items {
		resp = append(resp, toHistoryItemResponse(&items[i]))
	}
	writeJSON(w, http.StatusOK, map[string]any{"history": resp})
}

// ClearHistory handles DELETE /api/me/history.
func (h *FavoriteHandler) ClearHistory(w http.ResponseWriter, r *http.Request) {
	n, err := h.history.Clear(r.Context())
	if err != nil {
		handleError(h.log, w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{"status": "ok", "removed": n})
}

func toFavoriteResponse(f *domain.Favorite) favoriteResponse {
	return favoriteResponse{
		ID:          f.ID.String(),
		MessageID:   f.MessageID,
		MessageData: f.MessageData,
		AddedAt:     f.AddedAt,
	}
}

func toHistoryItemResponse(item *domain.HistoryItem) historyItemResponse {
	return historyItemResponse{
		ID:          item.ID.String(),
		MessageID:   item.MessageID,
		MessageData: item.MessageData,
		ViewedAt:    item.ViewedAt,
	}
}
