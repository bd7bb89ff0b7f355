package rest

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"log/slog"

	"github.com/dailystart/messages-backend/internal/domain"
	"github.com/dailystart/messages-backend/internal/service/message"
)

type messageServiceMock struct {
	ListFunc        func(ctx context.Context, input message.ListInput) (*message.ListResult, error)
	PickRandomFunc  func(ctx context.Context, input message.RandomInput) (*message.RandomResult, error)
	AddReactionFunc func(ctx context.Context, input message.ReactionInput) (*domain.Message, error)
	CategoriesFunc  func(ctx context.Context) ([]domain.CategoryCount, error)
	StatsFunc       func(ctx context.Context) (*domain.Stats, error)
}

func (m *messageServiceMock) List(ctx context.Context, input message.ListInput) (*message.ListResult, error) {
	return m.ListFunc(ctx, input)
}

func (m *messageServiceMock) PickRandom(ctx context.Context, input message.RandomInput) (*message.RandomResult, error) {
	return m.PickRandomFunc(ctx, input)
}

func (m *messageServiceMock) AddReaction(ctx context.Context, input message.ReactionInput) (*domain.Message, error) {
	return m.AddReactionFunc(ctx, input)
}

func (m *messageServiceMock) Categories(ctx context.Context) ([]domain.CategoryCount, error) {
	return m.CategoriesFunc(ctx)
}

func (m *messageServiceMock) Stats(ctx context.Context) (*domain.Stats, error) {
	return m.StatsFunc(ctx)
}

func TestMessageList(t *testing.T) {
	t.Parallel()

	svc := &messageServiceMock{
		ListFunc: func(ctx context.Context, input message.ListInput) (*message.ListResult, error) {
			if input.Category == nil || *input.Category != "motivation" {
				t.Errorf("category input = %v, want motivation", input.Category)
			}
			if input.Limit != 5 {
				t.Errorf("limit input = %d, want 5", input.Limit)
			}
			if input.TimePeriod == nil || *input.TimePeriod != "morning" {
				t.Errorf("time period input = %v, want morning", input.TimePeriod)
			}
			if !input.Random {
				t.Error("random_order=true must request random order")
			}
			return &message.ListResult{
				Messages: []domain.Message{{
					ID:        1,
					Text:      "keep going",
					Category:  "motivation",
					Season:    domain.SeasonAll,
					Tags:      []string{"grit"},
					CreatedAt: time.Now(),
				}},
				Count:             1,
				Category:          "motivation",
				TimePeriod:        "all",
				CurrentTimePeriod: domain.TimePeriodAfternoon,
			}, nil
		},
	}
	h := NewMessageHandler(svc, slog.Default())

	req := httptest.NewRequest(http.MethodGet, "/api/messages?category=motivation&time_of_day=morning&limit=5&random_order=true", nil)
	rec := httptest.NewRecorder()
	h.List(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}

	body := rec.Body.Bytes()

	var resp listResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if resp.Total != 1 || len(resp.Messages) != 1 {
		t.Errorf("response = %+v", resp)
	}
	if resp.Filters.Category != "motivation" || resp.Filters.CurrentTimePeriod != "afternoon" {
		t.Errorf("filters = %+v", resp.Filters)
	}
	if resp.Messages[0].TimeOfDay != nil {
		t.Error("nil time of day must serialize as null")
	}

	// Every message field is serialized, even when empty.
	var raw struct {
		Messages []map[string]any `json:"messages"`
	}
	if err := json.Unmarshal(body, &raw); err != nil {
		t.Fatalf("decode raw response: %v", err)
	}
	for _, key := range []string{"author", "timeOfDay", "updatedAt", "createdBy"} {
		if _, ok := raw.Messages[0][key]; !ok {
			t.Errorf("message serialization missing %q", key)
		}
	}
}

func TestMessageList_BadLimit(t *testing.T) {
	t.Parallel()

	h := NewMessageHandler(&messageServiceMock{}, slog.Default())

	req := httptest.NewRequest(http.MethodGet, "/api/messages?limit=ten", nil)
	rec := httptest.NewRecorder()
	h.List(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", rec.Code)
	}
}

func TestMessageRandom(t *testing.T) {
	t.Parallel()

	svc := &messageServiceMock{
		PickRandomFunc: func(ctx context.Context, input message.RandomInput) (*message.RandomResult, error) {
			if input.Client.IP == "" {
				t.Error("client ip must be populated")
			}
			return &message.RandomResult{
				Message:           domain.Message{ID: 7, Text: "rise"},
				SelectedFrom:      3,
				Category:          "all",
				TimePeriod:        "morning",
				CurrentTimePeriod: domain.TimePeriodMorning,
			}, nil
		},
	}
	h := NewMessageHandler(svc, slog.Default())

	req := httptest.NewRequest(http.MethodGet, "/api/messages/random", nil)
	req.RemoteAddr = "192.0.2.4:999"
	rec := httptest.NewRecorder()
	h.Random(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}

	var resp randomResponse
	if err := json.NewDecoder(rec.Body).Decode(&resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if resp.Message.ID != 7 || resp.Metadata.SelectedFrom != 3 || resp.Metadata.CurrentTimePeriod != "morning" {
		t.Errorf("response = %+v", resp)
	}
	if resp.Metadata.Filters.Category != "all" || resp.Metadata.Filters.TimeOfDay != "morning" {
		t.Errorf("filters = %+v", resp.Metadata.Filters)
	}
}

func TestMessageRandom_NotFound(t *testing.T) {
	t.Parallel()

	svc := &messageServiceMock{
		PickRandomFunc: func(ctx context.Context, input message.RandomInput) (*message.RandomResult, error) {
			return nil, domain.ErrNotFound
		},
	}
	h := NewMessageHandler(svc, slog.Default())

	rec := httptest.NewRecorder()
	h.Random(rec, httptest.NewRequest(http.MethodGet, "/api/messages/random", nil))

	if rec.Code != http.StatusNotFound {
		t.Errorf("status = %d, want 404", rec.Code)
	}
}

func TestMessageReact(t *testing.T) {
	t.Parallel()

	var got message.ReactionInput
	svc := &messageServiceMock{
		AddReactionFunc: func(ctx context.Context, input message.ReactionInput) (*domain.Message, error) {
			got = input
			return &domain.Message{ID: input.MessageID, Text: "rise"}, nil
		},
	}
	h := NewMessageHandler(svc, slog.Default())

	req := httptest.NewRequest(http.MethodPost, "/api/messages/42/reaction", strings.NewReader(`{"reaction":"fire"}`))
	req.SetPathValue("id", "42")
	rec := httptest.NewRecorder()
	h.React(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	if got.MessageID != 42 || got.Reaction != "fire" {
		t.Errorf("input = %+v", got)
	}

	var resp reactionResponse
	if err := json.NewDecoder(rec.Body).Decode(&resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if resp.Message.ID != 42 || resp.Reaction != "fire" {
		t.Errorf("response = %+v", resp)
	}
}

func TestMessageReact_BadID(t *testing.T) {
	t.Parallel()

	h := NewMessageHandler(&messageServiceMock{}, slog.Default())

	req := httptest.NewRequest(http.MethodPost, "/api/messages/abc/reaction", strings.NewReader(`{"reaction":"like"}`))
	req.SetPathValue("id", "abc")
	rec := httptest.NewRecorder()
	h.React(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", rec.Code)
	}
}

func TestMessageReact_InvalidReaction(t *testing.T) {
	t.Parallel()

	svc := &messageServiceMock{
		AddReactionFunc: func(ctx context.Context, input message.ReactionInput) (*domain.Message, error) {
			return nil, domain.NewValidationError("reaction", "must be one of: like, love, fire")
		},
	}
	h := NewMessageHandler(svc, slog.Default())

	req := httptest.NewRequest(http.MethodPost, "/api/messages/1/reaction", strings.NewReader(`{"reaction":"meh"}`))
	req.SetPathValue("id", "1")
	rec := httptest.NewRecorder()
	h.React(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", rec.Code)
	}
}

func TestMessageStats(t *testing.T) {
	t.Parallel()

	svc := &messageServiceMock{
		StatsFunc: func(ctx context.Context) (*domain.Stats, error) {
			return &domain.Stats{
				TotalMessages: 10,
				TotalViews:    200,
				TodayViews:    5,
				PopularCategories: []domain.CategoryViews{
					{Category: "motivation", Views: 120},
				},
			}, nil
		},
	}
	h := NewMessageHandler(svc, slog.Default())

	rec := httptest.NewRecorder()
	h.Stats(rec, httptest.NewRequest(http.MethodGet, "/api/stats", nil))

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}

	var resp statsResponse
	if err := json.NewDecoder(rec.Body).Decode(&resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if resp.TotalMessages != 10 || resp.TodayViews != 5 || len(resp.PopularCategories) != 1 {
		t.Errorf("response = %+v", resp)
	}
}

func TestMessageCategories(t *testing.T) {
	t.Parallel()

	svc := &messageServiceMock{
		CategoriesFunc: func(ctx context.Context) ([]domain.CategoryCount, error) {
			return []domain.CategoryCount{{Name: "wisdom", Count: 4, DisplayName: "Wisdom"}}, nil
		},
	}
	h := NewMessageHandler(svc, slog.Default())

	rec := httptest.NewRecorder()
	h.Categories(rec, httptest.NewRequest(http.MethodGet, "/api/categories", nil))

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}

	var resp struct {
		Categories []categoryResponse `json:"categories"`
		Total      int                `json:"total"`
	}
	if err := json.NewDecoder(rec.Body).Decode(&resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if len(resp.Categories) != 1 || resp.Categories[0].Name != "wisdom" || resp.Total != 1 {
		t.Errorf("response = %+v", resp)
	}
}
