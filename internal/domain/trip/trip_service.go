package trip

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/tripweaver/tripweaver-api/internal/types"
)

var _ Service = (*ServiceImpl)(nil)

// Service wraps the repository with validation and instrumentation.
type Service interface {
	SaveItinerary(ctx context.Context, userID uuid.UUID, title string, document types.Itinerary) (uuid.UUID, error)
	GetItinerary(ctx context.Context, id uuid.UUID) (*types.SavedItinerary, error)
	UpdateItinerary(ctx context.Context, id uuid.UUID, document types.Itinerary) error
	ListItineraries(ctx context.Context, userID uuid.UUID, page, limit int) ([]types.SavedItinerary, error)
	DeleteItinerary(ctx context.Context, id uuid.UUID) error
}

type ServiceImpl struct {
	logger *slog.Logger
	repo   Repository
}

func NewService(repo Repository, logger *slog.Logger) *ServiceImpl {
	return &ServiceImpl{
		logger: logger,
		repo:   repo,
	}
}

func (s *ServiceImpl) SaveItinerary(ctx context.Context, userID uuid.UUID, title string, document types.Itinerary) (uuid.UUID, error) {
	ctx, span := otel.Tracer("TripService").Start(ctx, "SaveItinerary", trace.WithAttributes(
		attribute.String("user.id", userID.String()),
	))
	defer span.End()

	if title == "" {
		return uuid.Nil, fmt.Errorf("title is required: %w", types.ErrBadRequest)
	}

	id, err := s.repo.SaveItinerary(ctx, userID, title, document)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "failed to save itinerary")
		return uuid.Nil, err
	}

	s.logger.InfoContext(ctx, "itinerary saved",
		slog.String("id", id.String()),
		slog.String("user_id", userID.String()),
		slog.Int("days", len(document.Schedule.Days)))
	return id, nil
}

func (s *ServiceImpl) GetItinerary(ctx context.Context, id uuid.UUID) (*types.SavedItinerary, error) {
	ctx, span := otel.Tracer("TripService").Start(ctx, "GetItinerary")
	defer span.End()

	return s.repo.GetItinerary(ctx, id)
}

func (s *ServiceImpl) UpdateItinerary(ctx context.Context, id uuid.UUID, document types.Itinerary) error {
	ctx, span := otel.Tracer("TripService").Start(ctx, "UpdateItinerary", trace.WithAttributes(
		attribute.String("itinerary.id", id.String()),
	))
	defer span.End()

	if err := s.repo.UpdateItinerary(ctx, id, document); err != nil {
		span.RecordError(err)
		return err
	}

	s.logger.InfoContext(ctx, "itinerary updated", slog.String("id", id.String()))
	return nil
}

func (s *ServiceImpl) ListItineraries(ctx context.Context, userID uuid.UUID, page, limit int) ([]types.SavedItinerary, error) {
	ctx, span := otel.Tracer("TripService").Start(ctx, "ListItineraries")
	defer span.End()

	if page < 1 {
		page = 1
	}
	if limit < 1 || limit > 100 {
		limit = 20
	}
	return s.repo.ListItineraries(ctx, userID, limit, (page-1)*limit)
}

func (s *ServiceImpl) DeleteItinerary(ctx context.Context, id uuid.UUID) error {
	ctx, span := otel.Tracer("TripService").Start(ctx, "DeleteItinerary")
	defer span.End()

	return s.repo.DeleteItinerary(ctx, id)
}
