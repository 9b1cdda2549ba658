package postgres

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"sync"
	"testing"
	"time"

	"fleetrent-backend/internal/domain"

	_ "github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// openIntegrationDB connects to the database named by TEST_DATABASE_URL
// (schema from db/schema.sql applied). Without it the test is skipped, so
// the unit suite stays runnable offline.
func openIntegrationDB(t *testing.T) *sql.DB {
	dsn := os.Getenv("TEST_DATABASE_URL")
	if dsn == "" {
		t.Skip("TEST_DATABASE_URL not set; skipping integration test")
	}
	db, err := sql.Open("postgres", dsn)
	require.NoError(t, err)
	require.NoError(t, db.Ping())
	return db
}

func TestBookingRepository_CreateInWindow_ConcurrentCommits(t *testing.T) {
	db := openIntegrationDB(t)
	defer db.Close()
	ctx := context.Background()

	var vehicleID int32
	require.NoError(t, db.QueryRowContext(ctx,
		`INSERT INTO vehicles (make, model, year, category, daily_price_cents) VALUES ('Toyota', 'Corolla', 2024, 'compact', 5000) RETURNING id`).
		Scan(&vehicleID))
	defer db.ExecContext(ctx, `DELETE FROM vehicles WHERE id = $1`, vehicleID)

	var subunitID int32
	require.NoError(t, db.QueryRowContext(ctx,
		`INSERT INTO subunits (vehicle_id, license_plate) VALUES ($1, 'AA-001-TEST') RETURNING id`, vehicleID).
		Scan(&subunitID))

	var customerID int32
	email := fmt.Sprintf("race-%d@example.com", time.Now().UnixNano())
	require.NoError(t, db.QueryRowContext(ctx,
		`INSERT INTO customers (name, email) VALUES ('Race Tester', $1) RETURNING id`, email).
		Scan(&customerID))
	defer db.ExecContext(ctx, `DELETE FROM customers WHERE id = $1`, customerID)

	repo := NewBookingRepository(db)
	pickup := time.Date(2026, time.June, 12, 0, 0, 0, 0, time.UTC)
	dropoff := time.Date(2026, time.June, 13, 0, 0, 0, 0, time.UTC)

	// Two commits race for the single subunit. The subunit row lock
	// serializes them: exactly one booking lands, the loser gets a
	// conflict and writes nothing.
	results := make([]error, 2)
	var wg sync.WaitGroup
	for i := 0; i < 2; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			b := &domain.Booking{
				Reference:   fmt.Sprintf("RACE-%d-%d", time.Now().UnixNano(), i),
				VehicleID:   vehicleID,
				CustomerID:  customerID,
				PickupDate:  pickup,
				DropoffDate: dropoff,
			}
			results[i] = repo.CreateInWindow(ctx, b)
		}(i)
	}
	wg.Wait()
	defer db.ExecContext(ctx, `DELETE FROM bookings WHERE vehicle_id = $1`, vehicleID)

	wins, conflicts := 0, 0
	for _, err := range results {
		switch {
		case err == nil:
			wins++
		case domain.IsConflict(err):
			conflicts++
		default:
			t.Fatalf("unexpected error from concurrent commit: %v", err)
		}
	}
	assert.Equal(t, 1, wins, "exactly one commit must win the subunit")
	assert.Equal(t, 1, conflicts, "the loser must see a conflict, not an error")

	var committed int
	require.NoError(t, db.QueryRowContext(ctx,
		`SELECT count(*) FROM bookings WHERE vehicle_id = $1 AND status = 'pending'`, vehicleID).
		Scan(&committed))
	assert.Equal(t, 1, committed, "the losing transaction must not leave a row behind")
}
