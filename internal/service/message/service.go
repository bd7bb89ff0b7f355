package message

import (
	"context"
	"log/slog"
	"time"

	"github.com/dailystart/messages-backend/internal/domain"
)

type messageRepo interface {
	List(ctx context.Context, f domain.MessageFilter) ([]domain.Message, error)
	Count(ctx context.Context, f domain.MessageFilter) (int, error)
	PickRandom(ctx context.Context, f domain.MessageFilter) (*domain.Message, error)
	GetByID(ctx context.Context, id int64) (*domain.Message, error)
	ListCategories(ctx context.Context) ([]domain.CategoryCount, error)
	CountActive(ctx context.Context) (int, error)
}

type accessRepo interface {
	Insert(ctx context.Context, rec domain.AccessRecord) error
	CountAll(ctx context.Context) (int, error)
	CountToday(ctx context.Context) (int, error)
	PopularCategories(ctx context.Context, limit int) ([]domain.CategoryViews, error)
}

const accessLogTimeout = 5 * time.Second

// Service provides message retrieval, random selection, reactions,
// and usage aggregation.
type Service struct {
	messages     messageRepo
	access       accessRepo
	popularLimit int
	log          *slog.Logger

	// now is swappable in tests to pin the current time period.
	now func() time.Time
}

// NewService creates a new message service. popularLimit caps the
// popular-categories list in Stats.
func NewService(log *slog.Logger, messages messageRepo, access accessRepo, popularLimit int) *Service {
	if popularLimit <= 0 {
		popularLimit = 5
	}
	return &Service{
		messages:     messages,
		access:       access,
		popularLimit: popularLimit,
		log:          log.With("service", "message"),
		now:          time.Now,
	}
}

// currentTimePeriod resolves the time period for the service's current time.
func (s *Service) currentTimePeriod() domain.TimePeriod {
	return domain.ResolveTimePeriod(s.now().Hour())
}

// logAccess records a message view without blocking the caller. The write
// runs on a detached context; a failure is logged and never surfaces.
func (s *Service) logAccess(ctx context.Context, messageID int64, client domain.ClientInfo) {
	rec := domain.AccessRecord{
		MessageID: messageID,
		ClientIP:  client.IP,
		UserAgent: client.UserAgent,
	}

	go func() {
		logCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), accessLogTimeout)
		defer cancel()

		if err := s.access.Insert(logCtx, rec); err != nil {
			s.log.WarnContext(logCtx, "log message access",
				slog.Int64("message_id", messageID),
				slog.String("error", err.Error()),
			)
		}
	}()
}
