package booking

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/wanderhost/concierge-agent/internal/types"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

var _ Repository = (*PostgresBookingRepository)(nil)

// Repository is the read-only booking store the concierge pipeline consumes.
type Repository interface {
	// GetBookingContext returns the booking joined with its property, or
	// (nil, nil) when no booking exists for the id.
	GetBookingContext(ctx context.Context, bookingID uuid.UUID) (*types.BookingContext, error)
	// Ping reports whether the store is reachable; used by the readiness probe.
	Ping(ctx context.Context) error
}

// PgxPool is the subset of pgxpool.Pool the repository needs. Narrowed to an
// interface so pgxmock can stand in during tests.
type PgxPool interface {
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
	Ping(ctx context.Context) error
}

type PostgresBookingRepository struct {
	logger *slog.Logger
	pgpool PgxPool
}

func NewPostgresBookingRepository(pgpool PgxPool, logger *slog.Logger) *PostgresBookingRepository {
	return &PostgresBookingRepository{
		logger: logger,
		pgpool: pgpool,
	}
}

func (r *PostgresBookingRepository) GetBookingContext(ctx context.Context, bookingID uuid.UUID) (*types.BookingContext, error) {
	query := `
        SELECT b.id, b.start_date, b.end_date, b.guests,
               COALESCE(p.city, ''), COALESCE(p.country, ''), COALESCE(p.title, '')
        FROM bookings b
        LEFT JOIN properties p ON p.id = b.property_id
        WHERE b.id = $1
    `
	var bc types.BookingContext
	if err := r.pgpool.QueryRow(ctx, query, bookingID).Scan(
		&bc.ID, &bc.StartDate, &bc.EndDate, &bc.Guests,
		&bc.City, &bc.Country, &bc.Title,
	); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		r.logger.ErrorContext(ctx, "Failed to fetch booking context",
			slog.String("booking_id", bookingID.String()), slog.Any("error", err))
		return nil, fmt.Errorf("failed to fetch booking %s: %w", bookingID, err)
	}
	return &bc, nil
}

func (r *PostgresBookingRepository) Ping(ctx context.Context) error {
	return r.pgpool.Ping(ctx)
}
