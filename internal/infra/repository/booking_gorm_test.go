package repository

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	dbpkg "github.com/fleetops/fleet-scheduler/internal/db"
	domain "github.com/fleetops/fleet-scheduler/internal/domain/booking"
	"github.com/fleetops/fleet-scheduler/internal/models"
)

func setupDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, dbpkg.Migrate(db))
	return db
}

func seedBooking(t *testing.T, db *gorm.DB, b *models.Booking) *models.Booking {
	t.Helper()
	require.NoError(t, db.Create(b).Error)
	return b
}

func at(hour, min int) time.Time {
	return time.Date(2026, 3, 10, hour, min, 0, 0, time.UTC)
}

func ptr[T any](v T) *T { return &v }

func TestFindConflicts_DriverWindow(t *testing.T) {
	db := setupDB(t)
	repo := NewBookingGormRepository(db)
	ctx := context.Background()

	seedBooking(t, db, &models.Booking{
		ServiceTypeID: 1,
		DriverID:      ptr(uint(5)),
		StartTime:     at(9, 0),
		EndTime:       at(10, 0),
		Status:        "scheduled",
		Source:        "web",
	})

	conflicts, err := repo.FindConflicts(ctx, domain.ResourceDriver, 5, at(9, 30), at(10, 30), 0)
	require.NoError(t, err)
	assert.Len(t, conflicts, 1)
	assert.Equal(t, domain.ResourceDriver, conflicts[0].Resource)

	// Back-to-back is not a conflict.
	conflicts, err = repo.FindConflicts(ctx, domain.ResourceDriver, 5, at(10, 0), at(11, 0), 0)
	require.NoError(t, err)
	assert.Empty(t, conflicts)

	// A different driver is free.
	conflicts, err = repo.FindConflicts(ctx, domain.ResourceDriver, 6, at(9, 30), at(10, 30), 0)
	require.NoError(t, err)
	assert.Empty(t, conflicts)
}

func TestFindConflicts_IgnoresTerminalStatuses(t *testing.T) {
	db := setupDB(t)
	repo := NewBookingGormRepository(db)
	ctx := context.Background()

	for _, status := range []string{"cancelled", "completed", "no_show"} {
		seedBooking(t, db, &models.Booking{
			ServiceTypeID: 1,
			DriverID:      ptr(uint(5)),
			StartTime:     at(9, 0),
			EndTime:       at(10, 0),
			Status:        status,
			Source:        "web",
		})
	}

	conflicts, err := repo.FindConflicts(ctx, domain.ResourceDriver, 5, at(9, 0), at(10, 0), 0)
	require.NoError(t, err)
	assert.Empty(t, conflicts)
}

func TestFindConflicts_IgnoresDeleted(t *testing.T) {
	db := setupDB(t)
	repo := NewBookingGormRepository(db)
	ctx := context.Background()

	seedBooking(t, db, &models.Booking{
		ServiceTypeID: 1,
		VehicleID:     ptr(uint(2)),
		StartTime:     at(9, 0),
		EndTime:       at(10, 0),
		Status:        "confirmed",
		Source:        "phone",
		Deleted:       true,
	})

	conflicts, err := repo.FindConflicts(ctx, domain.ResourceVehicle, 2, at(9, 0), at(10, 0), 0)
	require.NoError(t, err)
	assert.Empty(t, conflicts)
}

func TestFindConflicts_ExcludesSelf(t *testing.T) {
	db := setupDB(t)
	repo := NewBookingGormRepository(db)
	ctx := context.Background()

	b := seedBooking(t, db, &models.Booking{
		ServiceTypeID: 1,
		DriverID:      ptr(uint(5)),
		StartTime:     at(9, 0),
		EndTime:       at(10, 0),
		Status:        "scheduled",
		Source:        "web",
	})

	conflicts, err := repo.FindConflicts(ctx, domain.ResourceDriver, 5, at(9, 0), at(10, 0), b.ID)
	require.NoError(t, err)
	assert.Empty(t, conflicts)
}

func TestCreateBooking_OverlapsAreAllowedAtTheStore(t *testing.T) {
	// Double-booking prevention is advisory. The store accepts overlapping
	// rows; the availability check is how callers avoid them.
	db := setupDB(t)
	repo := NewBookingGormRepository(db)
	ctx := context.Background()

	first := &models.Booking{
		ServiceTypeID: 1,
		DriverID:      ptr(uint(5)),
		StartTime:     at(9, 0),
		EndTime:       at(10, 0),
		Status:        "scheduled",
		Source:        "web",
	}
	second := &models.Booking{
		ServiceTypeID: 1,
		DriverID:      ptr(uint(5)),
		StartTime:     at(9, 30),
		EndTime:       at(10, 30),
		Status:        "scheduled",
		Source:        "phone",
	}

	require.NoError(t, repo.CreateBooking(ctx, first))
	require.NoError(t, repo.CreateBooking(ctx, second))

	conflicts, err := repo.FindConflicts(ctx, domain.ResourceDriver, 5, at(9, 30), at(10, 30), second.ID)
	require.NoError(t, err)
	assert.Len(t, conflicts, 1)
	assert.Equal(t, first.ID, conflicts[0].BookingID)
}

func TestUpdateBookingFields_PartialUpdate(t *testing.T) {
	db := setupDB(t)
	repo := NewBookingGormRepository(db)
	ctx := context.Background()

	b := seedBooking(t, db, &models.Booking{
		ServiceTypeID: 1,
		StartTime:     at(9, 0),
		EndTime:       at(10, 0),
		Status:        "scheduled",
		Source:        "web",
		ContactName:   "Bea",
		FareCents:     2500,
	})

	err := repo.UpdateBookingFields(ctx, b.ID, map[string]any{
		"fare_cents": int64(3000),
	})
	require.NoError(t, err)

	got, err := repo.GetBooking(ctx, b.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(3000), got.FareCents)
	assert.Equal(t, "Bea", got.ContactName)
	assert.Equal(t, "scheduled", got.Status)
}

func TestGetBooking_HidesDeleted(t *testing.T) {
	db := setupDB(t)
	repo := NewBookingGormRepository(db)
	ctx := context.Background()

	b := seedBooking(t, db, &models.Booking{
		ServiceTypeID: 1,
		StartTime:     at(9, 0),
		EndTime:       at(10, 0),
		Status:        "scheduled",
		Source:        "web",
		Deleted:       true,
	})

	_, err := repo.GetBooking(ctx, b.ID)
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
}

func TestListBookings_Filters(t *testing.T) {
	db := setupDB(t)
	repo := NewBookingGormRepository(db)
	ctx := context.Background()

	seedBooking(t, db, &models.Booking{ServiceTypeID: 1, StartTime: at(9, 0), EndTime: at(10, 0), Status: "scheduled", Source: "web"})
	seedBooking(t, db, &models.Booking{ServiceTypeID: 1, StartTime: at(11, 0), EndTime: at(12, 0), Status: "confirmed", Source: "web"})
	seedBooking(t, db, &models.Booking{ServiceTypeID: 1, StartTime: at(13, 0), EndTime: at(14, 0), Status: "scheduled", Source: "phone"})

	all, err := repo.ListBookings(ctx, domain.ListFilter{})
	require.NoError(t, err)
	assert.Len(t, all, 3)

	scheduled, err := repo.ListBookings(ctx, domain.ListFilter{Status: "scheduled"})
	require.NoError(t, err)
	assert.Len(t, scheduled, 2)

	phoneScheduled, err := repo.ListBookings(ctx, domain.ListFilter{Status: "scheduled", Source: "phone"})
	require.NoError(t, err)
	assert.Len(t, phoneScheduled, 1)
}

func TestGetActiveDriver_RoleAndStatusChecked(t *testing.T) {
	db := setupDB(t)
	repo := NewBookingGormRepository(db)
	ctx := context.Background()

	require.NoError(t, db.Create(&models.User{
		Name: "Active", Email: "d1@fleet.test", PasswordHash: "x", Role: "driver", Status: "active",
	}).Error)
	require.NoError(t, db.Create(&models.User{
		Name: "Suspended", Email: "d2@fleet.test", PasswordHash: "x", Role: "driver", Status: "suspended",
	}).Error)
	require.NoError(t, db.Create(&models.User{
		Name: "NotADriver", Email: "c1@fleet.test", PasswordHash: "x", Role: "customer", Status: "active",
	}).Error)

	_, err := repo.GetActiveDriver(ctx, 1)
	assert.NoError(t, err)

	_, err = repo.GetActiveDriver(ctx, 2)
	assert.Error(t, err)

	_, err = repo.GetActiveDriver(ctx, 3)
	assert.Error(t, err)
}

func TestGetOrCreateCustomer_ReusesByPhone(t *testing.T) {
	db := setupDB(t)
	repo := NewBookingGormRepository(db)
	ctx := context.Background()

	first, err := repo.GetOrCreateCustomer(ctx, "Bea", "+351911222333", "bea@fleet.test")
	require.NoError(t, err)

	second, err := repo.GetOrCreateCustomer(ctx, "Beatriz", "+351911222333", "")
	require.NoError(t, err)
	assert.Equal(t, first.ID, second.ID)
	assert.Equal(t, "Bea", second.Name)
}

func TestGetOrCreateCustomer_PhoneOnlyCustomersDoNotCollide(t *testing.T) {
	db := setupDB(t)
	repo := NewBookingGormRepository(db)
	ctx := context.Background()

	a, err := repo.GetOrCreateCustomer(ctx, "A", "+351911111111", "")
	require.NoError(t, err)

	b, err := repo.GetOrCreateCustomer(ctx, "B", "+351922222222", "")
	require.NoError(t, err)

	assert.NotEqual(t, a.ID, b.ID)
	assert.NotEqual(t, a.Email, b.Email)
}
