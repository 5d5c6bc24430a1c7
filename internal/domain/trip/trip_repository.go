package trip

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"

	sq "github.com/Masterminds/squirrel"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/tripweaver/tripweaver-api/internal/types"
)

var _ Repository = (*RepositoryImpl)(nil)

// Repository persists itineraries as JSONB documents.
type Repository interface {
	SaveItinerary(ctx context.Context, userID uuid.UUID, title string, document types.Itinerary) (uuid.UUID, error)
	GetItinerary(ctx context.Context, id uuid.UUID) (*types.SavedItinerary, error)
	UpdateItinerary(ctx context.Context, id uuid.UUID, document types.Itinerary) error
	ListItineraries(ctx context.Context, userID uuid.UUID, limit, offset int) ([]types.SavedItinerary, error)
	DeleteItinerary(ctx context.Context, id uuid.UUID) error
}

// DBTX is the subset of pgxpool.Pool the repository needs; pgxmock satisfies
// it in tests.
type DBTX interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

type RepositoryImpl struct {
	logger *slog.Logger
	db     DBTX
}

func NewRepository(db DBTX, logger *slog.Logger) *RepositoryImpl {
	return &RepositoryImpl{
		logger: logger,
		db:     db,
	}
}

var psql = sq.StatementBuilder.PlaceholderFormat(sq.Dollar)

func (r *RepositoryImpl) SaveItinerary(ctx context.Context, userID uuid.UUID, title string, document types.Itinerary) (uuid.UUID, error) {
	raw, err := json.Marshal(document)
	if err != nil {
		return uuid.Nil, fmt.Errorf("failed to marshal itinerary: %w", err)
	}

	query, args, err := psql.Insert("trip_itineraries").
		Columns("user_id", "title", "document").
		Values(userID, title, raw).
		Suffix("RETURNING id").
		ToSql()
	if err != nil {
		return uuid.Nil, fmt.Errorf("failed to build insert: %w", err)
	}

	var id uuid.UUID
	if err := r.db.QueryRow(ctx, query, args...).Scan(&id); err != nil {
		return uuid.Nil, fmt.Errorf("failed to insert itinerary: %w", err)
	}
	return id, nil
}

func (r *RepositoryImpl) GetItinerary(ctx context.Context, id uuid.UUID) (*types.SavedItinerary, error) {
	query, args, err := psql.Select("id", "user_id", "title", "document", "created_at", "updated_at").
		From("trip_itineraries").
		Where(sq.Eq{"id": id}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build select: %w", err)
	}

	var saved types.SavedItinerary
	var raw []byte
	err = r.db.QueryRow(ctx, query, args...).Scan(
		&saved.ID, &saved.UserID, &saved.Title, &raw, &saved.CreatedAt, &saved.UpdatedAt,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, types.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to fetch itinerary %s: %w", id, err)
	}

	if err := json.Unmarshal(raw, &saved.Document); err != nil {
		return nil, fmt.Errorf("failed to unmarshal itinerary %s: %w", id, err)
	}
	return &saved, nil
}

func (r *RepositoryImpl) UpdateItinerary(ctx context.Context, id uuid.UUID, document types.Itinerary) error {
	raw, err := json.Marshal(document)
	if err != nil {
		return fmt.Errorf("failed to marshal itinerary: %w", err)
	}

	query, args, err := psql.Update("trip_itineraries").
		Set("document", raw).
		Set("updated_at", sq.Expr("NOW()")).
		Where(sq.Eq{"id": id}).
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build update: %w", err)
	}

	tag, err := r.db.Exec(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("failed to update itinerary %s: %w", id, err)
	}
	if tag.RowsAffected() == 0 {
		return types.ErrNotFound
	}
	return nil
}

func (r *RepositoryImpl) ListItineraries(ctx context.Context, userID uuid.UUID, limit, offset int) ([]types.SavedItinerary, error) {
	query, args, err := psql.Select("id", "user_id", "title", "document", "created_at", "updated_at").
		From("trip_itineraries").
		Where(sq.Eq{"user_id": userID}).
		OrderBy("updated_at DESC").
		Limit(uint64(limit)).
		Offset(uint64(offset)).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build list query: %w", err)
	}

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list itineraries: %w", err)
	}
	defer rows.Close()

	var results []types.SavedItinerary
	for rows.Next() {
		var saved types.SavedItinerary
		var raw []byte
		if err := rows.Scan(&saved.ID, &saved.UserID, &saved.Title, &raw, &saved.CreatedAt, &saved.UpdatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan itinerary row: %w", err)
		}
		if err := json.Unmarshal(raw, &saved.Document); err != nil {
			r.logger.WarnContext(ctx, "skipping itinerary with malformed document",
				slog.String("id", saved.ID.String()), slog.Any("error", err))
			continue
		}
		results = append(results, saved)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate itineraries: %w", err)
	}
	return results, nil
}

func (r *RepositoryImpl) DeleteItinerary(ctx context.Context, id uuid.UUID) error {
	query, args, err := psql.Delete("trip_itineraries").
		Where(sq.Eq{"id": id}).
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build delete: %w", err)
	}

	tag, err := r.db.Exec(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("failed to delete itinerary %s: %w", id, err)
	}
	if tag.RowsAffected() == 0 {
		return types.ErrNotFound
	}
	return nil
}
