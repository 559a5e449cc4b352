package routes

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/fleetops/fleet-scheduler/internal/config"
	dbpkg "github.com/fleetops/fleet-scheduler/internal/db"
	"github.com/fleetops/fleet-scheduler/internal/middleware"
	"github.com/fleetops/fleet-scheduler/internal/models"
)

type env struct {
	router *gin.Engine
	db     *gorm.DB
	cfg    *config.Config
}

func setupEnv(t *testing.T) *env {
	t.Helper()
	gin.SetMode(gin.TestMode)

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, dbpkg.Migrate(db))

	cfg := &config.Config{
		JWTSecret:     "test-secret",
		AdminToken:    "admin-secret",
		StaffToken:    "staff-secret",
		FleetTimezone: "UTC",
	}

	r := gin.New()
	RegisterRoutes(r, db, cfg, zerolog.Nop(), nil)

	return &env{router: r, db: db, cfg: cfg}
}

func (e *env) seedFleet(t *testing.T) (driverID, vehicleID, serviceTypeID uint) {
	t.Helper()

	driver := models.User{
		Name: "Miguel", Email: "miguel@fleet.test", PasswordHash: "x",
		Role: "driver", Status: "active",
	}
	require.NoError(t, e.db.Create(&driver).Error)

	vehicle := models.Vehicle{Make: "Toyota", Model: "Prius", Plate: "AA-01-BB", Status: "active"}
	require.NoError(t, e.db.Create(&vehicle).Error)

	st := models.ServiceType{Name: "Airport transfer", DurationMin: 60, PriceCents: 3500, Active: true}
	require.NoError(t, e.db.Create(&st).Error)

	return driver.ID, vehicle.ID, st.ID
}

func (e *env) bearer(t *testing.T, role, name string) string {
	t.Helper()
	claims := jwt.MapClaims{
		"sub": 1, "role": role, "name": name,
		"exp": time.Now().Add(time.Hour).Unix(),
		"iat": time.Now().Unix(),
	}
	s, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(e.cfg.JWTSecret))
	require.NoError(t, err)
	return "Bearer " + s
}

func (e *env) do(method, path string, body any, headers map[string]string) *httptest.ResponseRecorder {
	var buf bytes.Buffer
	if body != nil {
		_ = json.NewEncoder(&buf).Encode(body)
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	for k, v := range headers {
		req.Header.Set(k, v)
	}
	w := httptest.NewRecorder()
	e.router.ServeHTTP(w, req)
	return w
}

func decode(t *testing.T, w *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var out map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &out))
	return out
}

func TestBookingLifecycleOverHTTP(t *testing.T) {
	e := setupEnv(t)
	driverID, _, serviceTypeID := e.seedFleet(t)
	bearer := e.bearer(t, "staff", "Ana")

	// Create
	w := e.do("POST", "/api/bookings", gin.H{
		"service_type_id": serviceTypeID,
		"start_time":      "2026-03-10T09:00",
		"end_time":        "2026-03-10T10:00",
		"source":          "phone",
		"driver_id":       driverID,
		"contact_name":    "Bea",
		"contact_phone":   "+351911222333",
	}, map[string]string{"Authorization": bearer})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	body := decode(t, w)
	assert.Equal(t, true, body["ok"])
	id := uint(body["id"].(float64))
	require.NotZero(t, id)

	var created models.Booking
	require.NoError(t, e.db.First(&created, id).Error)
	assert.Equal(t, "scheduled", created.Status)
	assert.Equal(t, "staff", created.CreatedByRole)
	assert.Equal(t, "Ana", created.CreatedByName)

	// Availability: overlapping window for the same driver must report busy.
	w = e.do("GET", "/api/availability?start_time=2026-03-10T09:30&end_time=2026-03-10T10:30&driver_id=1", nil, nil)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	body = decode(t, w)
	assert.Equal(t, false, body["driver_available"])
	conflicts := body["conflicts"].([]any)
	require.Len(t, conflicts, 1)
	assert.Equal(t, float64(id), conflicts[0].(map[string]any)["booking_id"])

	// Back-to-back window is free.
	w = e.do("GET", "/api/availability?start_time=2026-03-10T10:00&end_time=2026-03-10T11:00&driver_id=1", nil, nil)
	require.Equal(t, http.StatusOK, w.Code)
	body = decode(t, w)
	assert.Equal(t, true, body["driver_available"])

	// Patch with the staff token.
	w = e.do("PATCH", "/api/bookings/1", gin.H{"fare_cents": 4200},
		map[string]string{middleware.HeaderStaffToken: "staff-secret"})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var patched models.Booking
	require.NoError(t, e.db.First(&patched, id).Error)
	assert.Equal(t, int64(4200), patched.FareCents)

	// Confirm with the admin token, empty body.
	w = e.do("POST", "/api/bookings/1/confirm", nil,
		map[string]string{middleware.HeaderAdminToken: "admin-secret"})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var confirmed models.Booking
	require.NoError(t, e.db.First(&confirmed, id).Error)
	assert.Equal(t, "confirmed", confirmed.Status)
	assert.NotNil(t, confirmed.ConfirmedAt)

	// The audit trail lands asynchronously.
	require.Eventually(t, func() bool {
		var n int64
		e.db.Model(&models.BookingAudit{}).Where("booking_id = ?", id).Count(&n)
		return n >= 3
	}, 2*time.Second, 20*time.Millisecond)
}

func TestDecisionDecline(t *testing.T) {
	e := setupEnv(t)
	_, _, serviceTypeID := e.seedFleet(t)
	bearer := e.bearer(t, "admin", "Rui")

	w := e.do("POST", "/api/bookings", gin.H{
		"service_type_id": serviceTypeID,
		"start_time":      "2026-03-10T14:00",
		"end_time":        "2026-03-10T15:00",
		"source":          "email",
	}, map[string]string{"Authorization": bearer})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	id := uint(decode(t, w)["id"].(float64))

	w = e.do("POST", "/api/bookings/1/decision", gin.H{
		"action": "decline",
		"reason": "no drivers available",
	}, map[string]string{middleware.HeaderAdminToken: "admin-secret"})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var b models.Booking
	require.NoError(t, e.db.First(&b, id).Error)
	assert.Equal(t, "cancelled", b.Status)
	assert.NotNil(t, b.CancelledAt)

	require.Eventually(t, func() bool {
		var n int64
		e.db.Model(&models.BookingAudit{}).
			Where("booking_id = ? AND action = ?", id, "cancel").Count(&n)
		return n == 1
	}, 2*time.Second, 20*time.Millisecond)
}

func TestAuthBoundaries(t *testing.T) {
	e := setupEnv(t)
	e.seedFleet(t)

	t.Run("create requires bearer", func(t *testing.T) {
		w := e.do("POST", "/api/bookings", gin.H{}, nil)
		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})

	t.Run("confirm rejects staff token", func(t *testing.T) {
		w := e.do("POST", "/api/bookings/1/confirm", nil,
			map[string]string{middleware.HeaderStaffToken: "staff-secret"})
		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})

	t.Run("patch rejects bearer", func(t *testing.T) {
		w := e.do("PATCH", "/api/bookings/1", gin.H{},
			map[string]string{"Authorization": e.bearer(t, "admin", "Rui")})
		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})

	t.Run("availability is public", func(t *testing.T) {
		w := e.do("GET", "/api/availability?start_time=2026-03-10T09:00&end_time=2026-03-10T10:00", nil, nil)
		assert.Equal(t, http.StatusOK, w.Code)
	})
}

func TestCreateBookingValidationOverHTTP(t *testing.T) {
	e := setupEnv(t)
	_, _, serviceTypeID := e.seedFleet(t)
	bearer := e.bearer(t, "staff", "Ana")

	t.Run("inverted window", func(t *testing.T) {
		w := e.do("POST", "/api/bookings", gin.H{
			"service_type_id": serviceTypeID,
			"start_time":      "2026-03-10T10:00",
			"end_time":        "2026-03-10T09:00",
			"source":          "web",
		}, map[string]string{"Authorization": bearer})
		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Equal(t, "invalid_window", decode(t, w)["error_code"])
	})

	t.Run("unknown driver", func(t *testing.T) {
		w := e.do("POST", "/api/bookings", gin.H{
			"service_type_id": serviceTypeID,
			"start_time":      "2026-03-10T09:00",
			"end_time":        "2026-03-10T10:00",
			"source":          "web",
			"driver_id":       999,
		}, map[string]string{"Authorization": bearer})
		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Equal(t, "driver_not_found", decode(t, w)["error_code"])

		var n int64
		e.db.Model(&models.Booking{}).Count(&n)
		assert.Zero(t, n)
	})

	t.Run("unknown booking returns 404", func(t *testing.T) {
		w := e.do("POST", "/api/bookings/777/confirm", nil,
			map[string]string{middleware.HeaderAdminToken: "admin-secret"})
		assert.Equal(t, http.StatusNotFound, w.Code)
		assert.Equal(t, "booking_not_found", decode(t, w)["error_code"])
	})
}

func TestVehicleDeactivationOverHTTP(t *testing.T) {
	e := setupEnv(t)
	_, vehicleID, serviceTypeID := e.seedFleet(t)
	admin := map[string]string{middleware.HeaderAdminToken: "admin-secret"}

	w := e.do("PATCH", "/api/vehicles/1", gin.H{"status": "inactive"}, admin)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var v models.Vehicle
	require.NoError(t, e.db.First(&v, vehicleID).Error)
	assert.Equal(t, "inactive", v.Status)

	// An inactive vehicle cannot be assigned to a booking.
	w = e.do("POST", "/api/bookings", gin.H{
		"service_type_id": serviceTypeID,
		"start_time":      "2026-03-10T09:00",
		"end_time":        "2026-03-10T10:00",
		"source":          "phone",
		"vehicle_id":      vehicleID,
	}, map[string]string{"Authorization": e.bearer(t, "staff", "Ana")})
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "vehicle_not_found", decode(t, w)["error_code"])

	// Only the two vehicle statuses exist.
	w = e.do("PATCH", "/api/vehicles/1", gin.H{"status": "maintenance"}, admin)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = e.do("PATCH", "/api/vehicles/1", gin.H{"status": "active"}, admin)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	require.NoError(t, e.db.First(&v, vehicleID).Error)
	assert.Equal(t, "active", v.Status)
}

func TestListBookingsOverHTTP(t *testing.T) {
	e := setupEnv(t)
	_, _, serviceTypeID := e.seedFleet(t)
	bearer := e.bearer(t, "customer", "Bea")

	for _, src := range []string{"web", "phone"} {
		w := e.do("POST", "/api/bookings", gin.H{
			"service_type_id": serviceTypeID,
			"start_time":      "2026-03-10T09:00",
			"end_time":        "2026-03-10T10:00",
			"source":          src,
		}, map[string]string{"Authorization": bearer})
		require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	}

	w := e.do("GET", "/api/bookings?source=phone", nil, map[string]string{"Authorization": bearer})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	body := decode(t, w)
	assert.Equal(t, float64(1), body["total"])

	// Admin-only columns stay out of the list payload.
	assert.NotContains(t, w.Body.String(), "admin_note")
	assert.NotContains(t, w.Body.String(), "verify_token")
}
