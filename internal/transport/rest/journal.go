package rest

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/dailystart/messages-backend/internal/domain"
	"github.com/dailystart/messages-backend/internal/service/journal"
)

// journalService defines the minimal interface needed by JournalHandler.
type journalService interface {
	Create(ctx context.Context, input journal.CreateInput) (*domain.JournalEntry, error)
	Get(ctx context.Context, date string) (*domain.JournalEntry, error)
	List(ctx context.Context, limit int) ([]domain.JournalEntry, error)
	Update(ctx context.Context, date string, input journal.UpdateInput) (*domain.JournalEntry, error)
}

// JournalHandler serves the daily journal endpoints.
type JournalHandler struct {
	svc journalService
	log *slog.Logger
}

// NewJournalHandler creates a JournalHandler.
func NewJournalHandler(svc journalService, logger *slog.Logger) *JournalHandler {
	return &JournalHandler{svc: svc, log: logger.With("handler", "journal")}
}

type createJournalRequest struct {
	EntryDate string  `json:"entryDate"`
	Content   *string `json:"content"`
	Mood      *string `json:"mood"`
}

type updateJournalRequest struct {
	Content *string `json:"content"`
	Mood    *string `json:"mood"`
}

type journalEntryResponse struct {
	ID        string    `json:"id"`
	EntryDate string    `json:"entryDate"`
	Content   *string   `json:"content"`
	Mood      *string   `json:"mood"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// Create handles POST /api/me/journal.
func (h *JournalHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req createJournalRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	entry, err := h.svc.Create(r.Context(), journal.CreateInput{
		EntryDate: req.EntryDate,
		Content:   req.Content,
		Mood:      req.Mood,
	})
	if err != nil {
		handleError(h.log, w, r, err)
		return
	}

	writeJSON(w, http.StatusCreated, toJournalEntryResponse(entry))
}

// Get handles GET /api/me/journal/{date}.
func (h *JournalHandler) Get(w http.ResponseWriter, r *http.Request) {
	entry, err := h.svc.Get(r.Context(), r.PathValue("date"))
	if err != nil {
		handleError(h.log, w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, toJournalEntryResponse(entry))
}

// List handles GET /api/me/journal.
func (h *JournalHandler) List(w http.ResponseWriter, r *http.Request) {
	var limit int
	if raw := r.URL.Query().Get("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil {
			writeError(w, http.StatusBadRequest, "limit must be an integer")
			return
		}
		limit = n
	}

	entries, err := h.svc.List(r.Context(), limit)
	if err != nil {
		handleError(h.log, w, r, err)
		return
	}

	resp := make([]journalEntryResponse, 0, len(entries))
	for i := range entries {
		resp = append(resp, toJournalEntryResponse(&entries[i]))
	}
	writeJSON(w, http.StatusOK, map[string]any{"entries": resp})
}

// Update handles PUT /api/me/journal/{date}.
func (h *JournalHandler) Update(w http.ResponseWriter, r *http.Request) {
	var req updateJournalRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	entry, err := h.svc.Update(r.Context(), r.PathValue("date"), journal.UpdateInput{
		Content: req.Content,
		Mood:    req.Mood,
	})
	if err != nil {
		handleError(h.log, w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, toJournalEntryResponse(entry))
}

func toJournalEntryResponse(e *domain.JournalEntry) journalEntryResponse {
	var mood *string
	if e.Mood != nil {
		s := e.Mood.String()
		mood = &s
	}
	return journalEntryResponse{
		ID:        e.ID.String(),
		EntryDate: e.EntryDate,
		Content:   e.Content,
		Mood:      mood,
		CreatedAt: e.CreatedAt,
		UpdatedAt: e.UpdatedAt,
	}
}
