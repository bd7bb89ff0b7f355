package rest

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/dailystart/messages-backend/internal/domain"
	"github.com/dailystart/messages-backend/internal/service/message"
	"github.com/dailystart/messages-backend/internal/transport/middleware"
)

// messageService defines the minimal interface needed by MessageHandler.
type messageService interface {
	List(ctx context.Context, input message.ListInput) (*message.ListResult, error)
	PickRandom(ctx context.Context, input message.RandomInput) (*message.RandomResult, error)
	AddReaction(ctx context.Context, input message.ReactionInput) (*domain.Message, error)
	Categories(ctx context.Context) ([]domain.CategoryCount, error)
	Stats(ctx context.Context) (*domain.Stats, error)
}

// MessageHandler serves the public message endpoints.
type MessageHandler struct {
	svc messageService
	log *slog.Logger
}

// NewMessageHandler creates a MessageHandler.
func NewMessageHandler(svc messageService, logger *slog.Logger) *MessageHandler {
	return &MessageHandler{svc: svc, log: logger.With("handler", "message")}
}

type messageResponse struct {
	ID        int64      `json:"id"`
	Text      string     `json:"text"`
	Author    string     `json:"author"`
	Category  string     `json:"category"`
	TimeOfDay *string    `json:"timeOfDay"`
	Season    string     `json:"season"`
	IsActive  bool       `json:"isActive"`
	Priority  int        `json:"priority"`
	Tags      []string   `json:"tags"`
	CreatedAt time.Time  `json:"createdAt"`
	UpdatedAt *time.Time `json:"updatedAt"`
	CreatedBy string     `json:"createdBy"`
}

type appliedFilters struct {
	Category          string `json:"category"`
	TimeOfDay         string `json:"timeOfDay"`
	CurrentTimePeriod string `json:"currentTimePeriod,omitempty"`
}

type listResponse struct {
	Messages []messageResponse `json:"messages"`
	Total    int               `json:"total"`
	Filters  appliedFilters    `json:"filters"`
}

type randomMetadata struct {
	SelectedFrom      int            `json:"selectedFrom"`
	CurrentTimePeriod string         `json:"currentTimePeriod"`
	Filters           appliedFilters `json:"filters"`
}

type randomResponse struct {
	Message  messageResponse `json:"message"`
	Metadata randomMetadata  `json:"metadata"`
}

type reactionRequest struct {
	Reaction string `json:"reaction"`
}

type reactionResponse struct {
	Message  messageResponse `json:"message"`
	Reaction string          `json:"reaction"`
}

type categoryResponse struct {
	Name        string  `json:"name"`
	Count       int     `json:"count"`
	DisplayName string  `json:"displayName"`
	Color       *string `json:"color,omitempty"`
	Icon        *string `json:"icon,omitempty"`
}

type statsResponse struct {
	TotalMessages     int                     `json:"totalMessages"`
	TotalViews        int                     `json:"totalViews"`
	TodayViews        int                     `json:"todayViews"`
	PopularCategories []categoryViewsResponse `json:"popularCategories"`
}

type categoryViewsResponse struct {
	Category string `json:"category"`
	Views    int    `json:"views"`
}

// List handles GET /api/messages.
func (h *MessageHandler) List(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()

	input := message.ListInput{
		Category:   optionalQuery(q.Get("category")),
		TimePeriod: optionalQuery(q.Get("time_of_day")),
		Random:     q.Get("random_order") == "true",
	}
	if raw := q.Get("limit"); raw != "" {
		limit, err := strconv.Atoi(raw)
		if err != nil {
			writeError(w, http.StatusBadRequest, "limit must be an integer")
			return
		}
		input.Limit = limit
	}

	result, err := h.svc.List(r.Context(), input)
	if err != nil {
		handleError(h.log, w, r, err)
		return
	}

	msgs := make([]messageResponse, 0, len(result.Messages))
	for _, m := range result.Messages {
		msgs = append(msgs, toMessageResponse(m))
	}

	writeJSON(w, http.StatusOK, listResponse{
		Messages: msgs,
		Total:    result.Count,
		Filters: appliedFilters{
			Category:          result.Category,
			TimeOfDay:         result.TimePeriod,
			CurrentTimePeriod: result.CurrentTimePeriod.String(),
		},
	})
}

// Random handles GET /api/messages/random.
func (h *MessageHandler) Random(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()

	result, err := h.svc.PickRandom(r.Context(), message.RandomInput{
		Category:   optionalQuery(q.Get("category")),
		TimePeriod: optionalQuery(q.Get("time_of_day")),
		Client:     clientInfo(r),
	})
	if err != nil {
		handleError(h.log, w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, randomResponse{
		Message: toMessageResponse(result.Message),
		Metadata: randomMetadata{
			SelectedFrom:      result.SelectedFrom,
			CurrentTimePeriod: result.CurrentTimePeriod.String(),
			Filters: appliedFilters{
				Category:  result.Category,
				TimeOfDay: result.TimePeriod,
			},
		},
	})
}

// React handles POST /api/messages/{id}/reaction.
func (h *MessageHandler) React(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	if err != nil {
		writeError(w, http.StatusBadRequest, "message id must be an integer")
		return
	}

	var req reactionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	msg, err := h.svc.AddReaction(r.Context(), message.ReactionInput{
		MessageID: id,
		Reaction:  req.Reaction,
		Client:    clientInfo(r),
	})
	if err != nil {
		handleError(h.log, w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, reactionResponse{
		Message:  toMessageResponse(*msg),
		Reaction: req.Reaction,
	})
}

// Categories handles GET /api/categories.
func (h *MessageHandler) Categories(w http.ResponseWriter, r *http.Request) {
	cats, err := h.svc.Categories(r.Context())
	if err != nil {
		handleError(h.log, w, r, err)
		return
	}

	resp := make([]categoryResponse, 0, len(cats))
	for _, c := range cats {
		resp = append(resp, categoryResponse{
			Name:        c.Name,
			Count:       c.Count,
			DisplayName: c.DisplayName,
			Color:       c.Color,
			Icon:        c.Icon,
		})
	}

	writeJSON(w, http.StatusOK, map[string]any{"categories": resp, "total": len(resp)})
}

// Stats handles GET /api/stats.
func (h *MessageHandler) Stats(w http.ResponseWriter, r *http.Request) {
	stats, err := h.svc.Stats(r.Context())
	if err != nil {
		handleError(h.log, w, r, err)
		return
	}

	popular := make([]categoryViewsResponse, 0, len(stats.PopularCategories))
	for _, p := range stats.PopularCategories {
		popular = append(popular, categoryViewsResponse{Category: p.Category, Views: p.Views})
	}

	writeJSON(w, http.StatusOK, statsResponse{
		TotalMessages:     stats.TotalMessages,
		TotalViews:        stats.TotalViews,
		TodayViews:        stats.TodayViews,
		PopularCategories: popular,
	})
}

func toMessageResponse(m domain.Message) messageResponse {
	var timeOfDay *string
	if m.TimeOfDay != nil {
		s := m.TimeOfDay.String()
		timeOfDay = &s
	}
	return messageResponse{
		ID:        m.ID,
		Text:      m.Text,
		Author:    m.Author,
		Category:  m.Category,
		TimeOfDay: timeOfDay,
		Season:    m.Season.String(),
		IsActive:  m.IsActive,
		Priority:  m.Priority,
		Tags:      m.Tags,
		CreatedAt: m.CreatedAt,
		UpdatedAt: m.UpdatedAt,
		CreatedBy: m.CreatedBy,
	}
}

// optionalQuery turns an absent query parameter into nil.
func optionalQuery(v string) *string {
	if v == "" {
		return nil
	}
	return &v
}

func clientInfo(r *http.Request) domain.ClientInfo {
	return domain.ClientInfo{
		IP:        middleware.ClientIP(r),
		UserAgent: r.UserAgent(),
	}
}
