package booking

import (
	"context"
	"errors"
	"log/slog"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/pashagolub/pgxmock/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetBookingContext(t *testing.T) {
	mockPool, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mockPool.Close()

	repo := NewPostgresBookingRepository(mockPool, slog.Default())
	bookingID := uuid.New()

	t.Run("Found", func(t *testing.T) {
		start := time.Date(2026, 9, 10, 0, 0, 0, 0, time.UTC)
		end := start.AddDate(0, 0, 4)
		guests := 3

		rows := pgxmock.NewRows([]string{"id", "start_date", "end_date", "guests", "city", "country", "title"}).
			AddRow(bookingID, &start, &end, &guests, "Lisbon", "Portugal", "Alfama Loft")
		mockPool.ExpectQuery("SELECT b.id, b.start_date").
			WithArgs(bookingID).
			WillReturnRows(rows)

		bc, err := repo.GetBookingContext(context.Background(), bookingID)
		require.NoError(t, err)
		require.NotNil(t, bc)
		assert.Equal(t, "Lisbon", bc.City)
		assert.Equal(t, "Portugal", bc.Country)
		assert.Equal(t, "Alfama Loft", bc.Title)
		require.NotNil(t, bc.Guests)
		assert.Equal(t, 3, *bc.Guests)
		assert.NoError(t, mockPool.ExpectationsWereMet())
	})

	t.Run("NotFound", func(t *testing.T) {
		mockPool.ExpectQuery("SELECT b.id, b.start_date").
			WithArgs(bookingID).
			WillReturnRows(pgxmock.NewRows([]string{"id", "start_date", "end_date", "guests", "city", "country", "title"}))

		bc, err := repo.GetBookingContext(context.Background(), bookingID)
		assert.NoError(t, err)
		assert.Nil(t, bc)
		assert.NoError(t, mockPool.ExpectationsWereMet())
	})

	t.Run("QueryError", func(t *testing.T) {
		mockPool.ExpectQuery("SELECT b.id, b.start_date").
			WithArgs(bookingID).
			WillReturnError(errors.New("connection refused"))

		bc, err := repo.GetBookingContext(context.Background(), bookingID)
		assert.Error(t, err)
		assert.Nil(t, bc)
		assert.NoError(t, mockPool.ExpectationsWereMet())
	})
}

func TestPing(t *testing.T) {
	mockPool, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mockPool.Close()

	repo := NewPostgresBookingRepository(mockPool, slog.Default())

	mockPool.ExpectPing()
	assert.NoError(t, repo.Ping(context.Background()))
	assert.NoError(t, mockPool.ExpectationsWereMet())
}
