package routes

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/BruksfildServices01/barber-agenda/internal/audit"
	"github.com/BruksfildServices01/barber-agenda/internal/config"
	"github.com/BruksfildServices01/barber-agenda/internal/infra/lock"
	"github.com/BruksfildServices01/barber-agenda/internal/models"
	"github.com/BruksfildServices01/barber-agenda/internal/testutil"
	"github.com/BruksfildServices01/barber-agenda/internal/timezone"
)

const jwtSecret = "routes-test"

type revenueSink struct{ records []models.RevenueRecord }

func (s *revenueSink) Emit(r []models.RevenueRecord) { s.records = append(s.records, r...) }

type server struct {
	t       *testing.T
	router  *gin.Engine
	fixture testutil.Fixture
	token   string
	revenue *revenueSink
}

func newServer(t *testing.T) *server {
	t.Helper()
	gin.SetMode(gin.TestMode)

	gdb := testutil.NewDB(t)
	f := testutil.Seed(t, gdb)

	log := zerolog.Nop()
	recorder := audit.NewRecorder(gdb)
	dispatcher := audit.NewDispatcher(recorder, &log)
	t.Cleanup(dispatcher.Close)

	cfg := &config.Config{}
	cfg.JWT.Secret = jwtSecret
	cfg.Booking.GranularityMinutes = 15
	cfg.RateLimit.PerMinute = 6000
	cfg.RateLimit.Burst = 1000

	sunday := time.Date(2030, 6, 2, 12, 0, 0, 0, timezone.Location(timezone.DefaultTimezone))
	sink := &revenueSink{}

	r := gin.New()
	RegisterRoutes(r, Deps{
		DB:       gdb,
		Config:   cfg,
		Log:      &log,
		Locker:   lock.NewMemoryLocker(),
		Audit:    dispatcher,
		Recorder: recorder,
		Revenue:  sink,
		Clock:    func() time.Time { return sunday },
	})

	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"sub":          f.Barber.ID,
		"barbershopId": f.Shop.ID,
		"role":         "owner",
	}).SignedString([]byte(jwtSecret))
	require.NoError(t, err)

	return &server{t: t, router: r, fixture: f, token: token, revenue: sink}
}

func (s *server) do(method, path string, body any, auth bool) *httptest.ResponseRecorder {
	s.t.Helper()

	var buf bytes.Buffer
	if body != nil {
		require.NoError(s.t, json.NewEncoder(&buf).Encode(body))
	}

	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if auth {
		req.Header.Set("Authorization", "Bearer "+s.token)
	}

	w := httptest.NewRecorder()
	s.router.ServeHTTP(w, req)
	return w
}

func decode[T any](t *testing.T, w *httptest.ResponseRecorder) T {
	t.Helper()
	var out T
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &out), w.Body.String())
	return out
}

type errorBody struct {
	Code    string `json:"error_code"`
	Message string `json:"message"`
}

type slotsBody struct {
	Date   string   `json:"date"`
	Slots  []string `json:"slots"`
	Reason string   `json:"reason"`
}

func (s *server) syncMonday() {
	s.t.Helper()
	w := s.do(http.MethodPut, "/api/me/schedule/weekly", gin.H{
		"entries": []gin.H{{
			"day_of_week": 1,
			"start_time":  "09:00",
			"end_time":    "18:00",
			"lunch_start": "12:00",
			"lunch_end":   "13:00",
		}},
	}, true)
	require.Equal(s.t, http.StatusOK, w.Code, w.Body.String())
}

// ======================================================
// Ops
// ======================================================

func TestHealthAndMetrics(t *testing.T) {
	s := newServer(t)

	w := s.do(http.MethodGet, "/health", nil, false)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.NotEmpty(t, w.Header().Get("X-Request-ID"))

	w = s.do(http.MethodGet, "/metrics", nil, false)
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestPrivateRoutesRequireToken(t *testing.T) {
	s := newServer(t)

	w := s.do(http.MethodGet, "/api/me/schedule", nil, false)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Equal(t, "missing_authorization_header", decode[errorBody](t, w).Code)
}

// ======================================================
// Booking flow
// ======================================================

func TestPublicBookingFlow(t *testing.T) {
	s := newServer(t)
	s.syncMonday()

	slug := s.fixture.Shop.Slug
	availability := fmt.Sprintf("/api/public/%s/availability?date=2030-06-03&service_id=%d", slug, s.fixture.Haircut.ID)

	w := s.do(http.MethodGet, availability, nil, false)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	before := decode[slotsBody](t, w)
	assert.Contains(t, before.Slots, "10:00")
	assert.NotContains(t, before.Slots, "12:00")

	booking := gin.H{
		"service_ids":  []uint{s.fixture.Haircut.ID},
		"date":         "2030-06-03T10:00",
		"client_name":  "Ana",
		"client_phone": "11999990000",
	}

	w = s.do(http.MethodPost, "/api/public/"+slug+"/appointments", booking, false)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	created := decode[models.Appointment](t, w)
	assert.Equal(t, "pending", created.Status)

	w = s.do(http.MethodGet, availability, nil, false)
	after := decode[slotsBody](t, w)
	assert.NotContains(t, after.Slots, "10:00")

	w = s.do(http.MethodPost, "/api/public/"+slug+"/appointments", booking, false)
	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
	body := decode[errorBody](t, w)
	assert.Equal(t, "SLOT_UNAVAILABLE", body.Code)
	assert.Equal(t, "Este horário já está ocupado.", body.Message)

	// confirmar, concluir e receber
	base := fmt.Sprintf("/api/me/appointments/%d", created.ID)
	for _, step := range []string{"confirm", "complete", "payment"} {
		w = s.do(http.MethodPatch, base+"/"+step, nil, true)
		require.Equal(t, http.StatusOK, w.Code, step+": "+w.Body.String())
	}
	assert.Len(t, s.revenue.records, 1)

	w = s.do(http.MethodDelete, base, nil, true)
	assert.Equal(t, http.StatusConflict, w.Code)
	assert.Equal(t, "invalid_state", decode[errorBody](t, w).Code)
}

func TestPublicBooking_ValidationAndPolicy(t *testing.T) {
	s := newServer(t)
	s.syncMonday()
	slug := s.fixture.Shop.Slug

	w := s.do(http.MethodPost, "/api/public/"+slug+"/appointments", gin.H{
		"service_ids": []uint{s.fixture.Haircut.ID},
		"date":        "2030-06-03T10:00",
	}, false)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	body := decode[errorBody](t, w)
	assert.Equal(t, "invalid_request", body.Code)
	assert.Contains(t, body.Message, "client_name")

	w = s.do(http.MethodPost, "/api/public/"+slug+"/appointments", gin.H{
		"service_ids": []uint{s.fixture.Haircut.ID},
		"date":        "2030-06-03T12:15",
		"client_name": "Ana",
	}, false)
	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
	assert.Equal(t, "LUNCH_BREAK", decode[errorBody](t, w).Code)

	// observação acima do tamanho da coluna volta 400, não erro de banco
	w = s.do(http.MethodPost, "/api/public/"+slug+"/appointments", gin.H{
		"service_ids": []uint{s.fixture.Haircut.ID},
		"date":        "2030-06-03T09:00",
		"client_name": "Ana",
		"notes":       strings.Repeat("a", 256),
	}, false)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	body = decode[errorBody](t, w)
	assert.Equal(t, "invalid_request", body.Code)
	assert.Contains(t, body.Message, "notes")

	w = s.do(http.MethodPost, "/api/public/"+slug+"/appointments", gin.H{
		"service_ids": []uint{s.fixture.Haircut.ID},
		"date":        "2030-06-03T09:00",
		"client_name": "Ana",
		"notes":       strings.Repeat("a", 255),
	}, false)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	assert.Len(t, decode[models.Appointment](t, w).Notes, 255)

	w = s.do(http.MethodGet, "/api/public/nao-existe/availability?date=2030-06-03&service_id=1", nil, false)
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, "barbershop_not_found", decode[errorBody](t, w).Code)
}

func TestManualEntryRetract(t *testing.T) {
	s := newServer(t)
	s.syncMonday()

	w := s.do(http.MethodPost, "/api/me/appointments", gin.H{
		"service_ids": []uint{s.fixture.Beard.ID},
		"date":        "2030-06-03T19:00",
		"client_name": "Bruno",
		"is_override": true,
	}, true)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	ap := decode[models.Appointment](t, w)
	assert.Equal(t, "confirmed", ap.Status)

	w = s.do(http.MethodDelete, fmt.Sprintf("/api/me/appointments/%d?retract=true", ap.ID), nil, true)
	assert.Equal(t, http.StatusNoContent, w.Code)

	w = s.do(http.MethodPatch, fmt.Sprintf("/api/me/appointments/%d/confirm", ap.ID), nil, true)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

// ======================================================
// Schedule
// ======================================================

func TestScheduleSync_OverlapRejected(t *testing.T) {
	s := newServer(t)
	s.syncMonday()

	w := s.do(http.MethodPut, "/api/me/schedule/weekly", gin.H{
		"entries": []gin.H{
			{"day_of_week": 2, "start_time": "09:00", "end_time": "12:00"},
			{"day_of_week": 2, "start_time": "11:00", "end_time": "15:00"},
		},
	}, true)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "overlapping_interval", decode[errorBody](t, w).Code)

	w = s.do(http.MethodGet, "/api/me/schedule?from=2030-06-01", nil, true)
	require.Equal(t, http.StatusOK, w.Code)
	view := decode[struct {
		Weekly []models.WeeklyAvailability `json:"weekly"`
	}](t, w)
	require.Len(t, view.Weekly, 1)
	assert.Equal(t, 1, view.Weekly[0].DayOfWeek)
}

func TestScheduleBlockedWithOverride(t *testing.T) {
	s := newServer(t)
	s.syncMonday()

	w := s.do(http.MethodPut, "/api/me/schedule/daily/2030-12-24", gin.H{
		"entries": []gin.H{{"start_time": "09:00", "end_time": "13:00"}},
	}, true)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	w = s.do(http.MethodPost, "/api/me/schedule/exceptions", gin.H{
		"date":   "2030-12-24",
		"type":   "blocked",
		"reason": "Véspera de Natal",
	}, true)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	ex := decode[models.ScheduleException](t, w)

	w = s.do(http.MethodPost, "/api/me/schedule/exceptions", gin.H{
		"date": "2030-12-24",
		"type": "blocked",
	}, true)
	assert.Equal(t, http.StatusConflict, w.Code)

	path := fmt.Sprintf("/api/me/availability?date=2030-12-24&service_id=%d", s.fixture.Haircut.ID)
	w = s.do(http.MethodGet, path, nil, true)
	require.Equal(t, http.StatusOK, w.Code)
	body := decode[slotsBody](t, w)
	assert.Empty(t, body.Slots)
	assert.Equal(t, "DATE_BLOCKED", body.Reason)

	w = s.do(http.MethodDelete, fmt.Sprintf("/api/me/schedule/exceptions/%d", ex.ID), nil, true)
	assert.Equal(t, http.StatusNoContent, w.Code)

	w = s.do(http.MethodGet, path, nil, true)
	body = decode[slotsBody](t, w)
	assert.Contains(t, body.Slots, "09:00")
	assert.NotContains(t, body.Slots, "13:00")
}

func TestBarbershopSettings(t *testing.T) {
	s := newServer(t)

	w := s.do(http.MethodPatch, "/api/me/barbershop", gin.H{"timezone": "Mars/Olympus"}, true)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "invalid_timezone", decode[errorBody](t, w).Code)

	w = s.do(http.MethodPatch, "/api/me/barbershop", gin.H{
		"timezone":                 "America/Manaus",
		"slot_granularity_minutes": 30,
	}, true)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	shop := decode[models.Barbershop](t, w)
	assert.Equal(t, "America/Manaus", shop.Timezone)
	assert.Equal(t, 30, shop.SlotGranularityMinutes)
}
