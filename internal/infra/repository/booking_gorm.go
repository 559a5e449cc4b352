package repository

import (
	"context"
	"time"

	"gorm.io/gorm"

	domain "github.com/fleetops/fleet-scheduler/internal/domain/booking"
	"github.com/fleetops/fleet-scheduler/internal/models"
)

type BookingGormRepository struct {
	db *gorm.DB
}

func NewBookingGormRepository(db *gorm.DB) *BookingGormRepository {
	return &BookingGormRepository{db: db}
}

// --------------------------------------------------
// Booking
// --------------------------------------------------

func (r *BookingGormRepository) CreateBooking(
	ctx context.Context,
	b *models.Booking,
) error {
	return r.db.WithContext(ctx).Create(b).Error
}

func (r *BookingGormRepository) GetBooking(
	ctx context.Context,
	id uint,
) (*models.Booking, error) {

	var b models.Booking
	if err := r.db.WithContext(ctx).
		Where("id = ? AND deleted = ?", id, false).
		First(&b).Error; err != nil {
		return nil, err
	}
	return &b, nil
}

func (r *BookingGormRepository) UpdateBookingFields(
	ctx context.Context,
	id uint,
	fields map[string]any,
) error {
	if len(fields) == 0 {
		return nil
	}
	return r.db.WithContext(ctx).
		Model(&models.Booking{}).
		Where("id = ?", id).
		Updates(fields).Error
}

func (r *BookingGormRepository) ListBookings(
	ctx context.Context,
	f domain.ListFilter,
) ([]models.Booking, error) {

	q := r.db.WithContext(ctx).Where("deleted = ?", false)

	if f.Status != "" {
		q = q.Where("status = ?", f.Status)
	}
	if f.Source != "" {
		q = q.Where("source = ?", f.Source)
	}

	var bookings []models.Booking
	if err := q.
		Order("created_at DESC").
		Find(&bookings).Error; err != nil {
		return nil, err
	}

	return bookings, nil
}

// --------------------------------------------------
// Conflicts
// --------------------------------------------------

func (r *BookingGormRepository) FindConflicts(
	ctx context.Context,
	kind domain.ResourceKind,
	resourceID uint,
	start time.Time,
	end time.Time,
	excludeID uint,
) ([]domain.Conflict, error) {

	column := "driver_id"
	if kind == domain.ResourceVehicle {
		column = "vehicle_id"
	}

	// Half-open windows: start_time < end AND end_time > start, so a
	// booking ending exactly when another starts does not conflict.
	q := r.db.WithContext(ctx).
		Model(&models.Booking{}).
		Where(column+" = ?", resourceID).
		Where("status IN ?", domain.ActiveStatuses()).
		Where("deleted = ?", false).
		Where("start_time < ? AND end_time > ?", end, start)

	if excludeID != 0 {
		q = q.Where("id <> ?", excludeID)
	}

	var rows []models.Booking
	if err := q.
		Select("id", "start_time", "end_time", "status").
		Order("start_time ASC").
		Find(&rows).Error; err != nil {
		return nil, err
	}

	conflicts := make([]domain.Conflict, 0, len(rows))
	for _, b := range rows {
		conflicts = append(conflicts, domain.Conflict{
			Resource:  kind,
			BookingID: b.ID,
			StartTime: b.StartTime,
			EndTime:   b.EndTime,
			Status:    domain.Status(b.Status),
		})
	}

	return conflicts, nil
}

// --------------------------------------------------
// References
// --------------------------------------------------

func (r *BookingGormRepository) GetActiveDriver(
	ctx context.Context,
	id uint,
) (*models.User, error) {

	var user models.User
	if err := r.db.WithContext(ctx).
		Where("id = ? AND role = ? AND status = ?", id, "driver", "active").
		First(&user).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *BookingGormRepository) GetActiveVehicle(
	ctx context.Context,
	id uint,
) (*models.Vehicle, error) {

	var vehicle models.Vehicle
	if err := r.db.WithContext(ctx).
		Where("id = ? AND status = ?", id, "active").
		First(&vehicle).Error; err != nil {
		return nil, err
	}
	return &vehicle, nil
}

func (r *BookingGormRepository) GetActiveServiceType(
	ctx context.Context,
	id uint,
) (*models.ServiceType, error) {

	var st models.ServiceType
	if err := r.db.WithContext(ctx).
		Where("id = ? AND active = ?", id, true).
		First(&st).Error; err != nil {
		return nil, err
	}
	return &st, nil
}

func (r *BookingGormRepository) GetOrCreateCustomer(
	ctx context.Context,
	name string,
	phone string,
	email string,
) (*models.User, error) {

	var customer models.User
	err := r.db.WithContext(ctx).
		Where("role = ? AND phone = ?", "customer", phone).
		First(&customer).Error

	if err == nil {
		return &customer, nil
	}

	// Email is unique across users; phone-only customers get a synthetic
	// address so repeated blank emails cannot collide.
	if email == "" {
		email = phone + "@customers.invalid"
	}

	customer = models.User{
		Name:   name,
		Phone:  phone,
		Email:  email,
		Role:   "customer",
		Status: "active",
	}

	if err := r.db.WithContext(ctx).Create(&customer).Error; err != nil {
		return nil, err
	}

	return &customer, nil
}

// Compile-time check
var _ domain.Repository = (*BookingGormRepository)(nil)
