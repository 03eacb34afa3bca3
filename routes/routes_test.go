package routes

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"sort"
	"strings"
	"sync"
	"testing"
	"time"

	"nailart/handlers"
	"nailart/middleware"
	"nailart/models"
	"nailart/services/admin"
	"nailart/services/appointment"
	"nailart/services/session"
	"nailart/utils"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"
)

type memoryRepo struct {
	mu      sync.Mutex
	items   []models.Appointment
	clock   time.Time
	failAll error
}

func (r *memoryRepo) Insert(_ context.Context, appt *models.Appointment) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.failAll != nil {
		return r.failAll
	}
	r.clock = r.clock.Add(time.Minute)
	appt.ID = primitive.NewObjectID()
	appt.CreatedAt = r.clock
	r.items = append(r.items, *appt)
	return nil
}

func (r *memoryRepo) ListAll(context.Context) ([]models.Appointment, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.failAll != nil {
		return nil, r.failAll
	}
	out := append([]models.Appointment{}, r.items...)
	sort.SliceStable(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out, nil
}

func (r *memoryRepo) EnsureIndexes(context.Context) error { return nil }

func (r *memoryRepo) count() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.items)
}

type stubNotifier struct{ err error }

func (n *stubNotifier) SendAppointmentEmails(context.Context, models.AppointmentInput) error {
	return n.err
}

type stubPinger struct{ err error }

func (p stubPinger) Ping(context.Context) error { return p.err }

type testServer struct {
	engine   *gin.Engine
	repo     *memoryRepo
	notifier *stubNotifier
	tokens   *session.Service
}

func newTestServer(t *testing.T, secret string) *testServer {
	t.Helper()
	gin.SetMode(gin.TestMode)
	utils.Logger = zap.NewNop()

	repo := &memoryRepo{clock: time.Date(2025, 3, 1, 8, 0, 0, 0, time.UTC)}
	notifier := &stubNotifier{}
	tokens := session.NewService(secret, session.DefaultTTL)

	appts := appointment.NewAppointmentService(repo, notifier, zap.NewNop())
	auth := admin.NewAdminService([]string{"admin@studio.com", "owner@studio.com"}, "secret", tokens)
	adminHandler := handlers.NewAdminHandler(auth, appts, tokens.TTL(), false)
	apptHandler := handlers.NewAppointmentHandler(appts)

	hb := &handlers.HandlerBundle{
		CreateAppointmentHandler:     apptHandler.CreateAppointmentHandler,
		CatalogHandler:               handlers.CatalogHandler,
		HealthHandler:                handlers.HealthHandler(utils.NewHealthMonitor(stubPinger{})),
		AdminLoginHandler:            adminHandler.LoginHandler,
		AdminLogoutHandler:           adminHandler.LogoutHandler,
		AdminListAppointmentsHandler: adminHandler.ListAppointmentsHandler,
		AdminSession:                 middleware.AdminSessionMiddleware(tokens),
	}

	r := gin.New()
	r.Use(utils.ErrorHandler())
	r.Use(middleware.RequestLogger())
	RegisterRoutes(r, hb, nil)

	return &testServer{engine: r, repo: repo, notifier: notifier, tokens: tokens}
}

func (s *testServer) do(method, path, body string, cookies ...string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	if len(cookies) > 0 {
		req.Header.Set("Cookie", strings.Join(cookies, "; "))
	}
	w := httptest.NewRecorder()
	s.engine.ServeHTTP(w, req)
	return w
}

func decode(t *testing.T, w *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()
	var out map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &out))
	return out
}

func sessionCookie(w *httptest.ResponseRecorder) *http.Cookie {
	for _, c := range w.Result().Cookies() {
		if c.Name == session.CookieName {
			return c
		}
	}
	return nil
}

const ayseBooking = `{
	"first_name": "Ayşe",
	"last_name": "Demir",
	"email": "Ayse@Example.com",
	"service_type": "gel",
	"appointment_date": "2025-03-10",
	"appointment_time": "10:00",
	"addons": ["french"]
}`

func TestBookingThenAdminListing(t *testing.T) {
	s := newTestServer(t, "test-secret")

	w := s.do(http.MethodPost, "/api/appointments",
		`{"first_name":"Elif","last_name":"Kaya","email":"elif@example.com","service_type":"nail-art","appointment_date":"2025-03-09","appointment_time":"09:30"}`)
	require.Equal(t, http.StatusCreated, w.Code)

	w = s.do(http.MethodPost, "/api/appointments", ayseBooking)
	require.Equal(t, http.StatusCreated, w.Code)
	assert.JSONEq(t, `{"ok":true,"email_sent":true}`, w.Body.String())
	assert.NotEmpty(t, w.Header().Get(middleware.RequestIDHeader))

	w = s.do(http.MethodPost, "/api/admin/login", `{"email":"  ADMIN@Studio.com ","password":" secret "}`)
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"ok":true}`, w.Body.String())

	setCookie := w.Header().Get("Set-Cookie")
	assert.Contains(t, setCookie, "Path=/")
	assert.Contains(t, setCookie, "Max-Age=43200")
	assert.Contains(t, setCookie, "HttpOnly")
	assert.Contains(t, setCookie, "SameSite=Lax")
	assert.NotContains(t, setCookie, "Secure")

	cookie := sessionCookie(w)
	require.NotNil(t, cookie)
	assert.True(t, s.tokens.Verify(cookie.Value))

	w = s.do(http.MethodGet, "/api/admin/appointments", "", "theme=dark", cookie.Name+"="+cookie.Value)
	require.Equal(t, http.StatusOK, w.Code)

	var body struct {
		Data []models.AppointmentView `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	require.Len(t, body.Data, 2)

	first := body.Data[0]
	assert.Equal(t, "Ayşe", first.FirstName)
	assert.Equal(t, "Demir", first.LastName)
	assert.Equal(t, "ayse@example.com", first.Email)
	assert.Equal(t, "2025-03-10", first.AppointmentDate)
	assert.Equal(t, "10:00", first.AppointmentTime)
	assert.Equal(t, []string{"french"}, first.Addons)
	assert.NotEmpty(t, first.ID)

	assert.Equal(t, "Elif", body.Data[1].FirstName)
	assert.Equal(t, []string{}, body.Data[1].Addons)
}

func TestCreateAppointment_InvalidPayloads(t *testing.T) {
	cases := map[string]string{
		"malformed json":  `{"first_name":`,
		"empty body":      ``,
		"json array":      `[]`,
		"missing email":   `{"first_name":"Ayşe","last_name":"Demir","service_type":"gel","appointment_date":"2025-03-10","appointment_time":"10:00"}`,
		"too many addons": `{"first_name":"Ayşe","last_name":"Demir","email":"a@b.co","service_type":"gel","appointment_date":"2025-03-10","appointment_time":"10:00","addons":["a","b","c","d","e","f","g","h","i","j","k"]}`,
		"null addons":     `{"first_name":"Ayşe","last_name":"Demir","email":"a@b.co","service_type":"gel","appointment_date":"2025-03-10","appointment_time":"10:00","addons":null}`,
	}
	for name, body := range cases {
		t.Run(name, func(t *testing.T) {
			s := newTestServer(t, "test-secret")

			w := s.do(http.MethodPost, "/api/appointments", body)

			assert.Equal(t, http.StatusBadRequest, w.Code)
			assert.JSONEq(t, `{"error":"Invalid appointment payload"}`, w.Body.String())
			assert.Zero(t, s.repo.count())
		})
	}
}

func TestCreateAppointment_EmailFailureStillCreates(t *testing.T) {
	s := newTestServer(t, "test-secret")
	s.notifier.err = errors.New("smtp: 535 authentication failed")

	w := s.do(http.MethodPost, "/api/appointments", ayseBooking)

	assert.Equal(t, http.StatusCreated, w.Code)
	assert.JSONEq(t, `{"ok":true,"email_sent":false}`, w.Body.String())
	assert.Equal(t, 1, s.repo.count())
}

func TestCreateAppointment_StorageFailure(t *testing.T) {
	s := newTestServer(t, "test-secret")
	s.repo.failAll = errors.New("no reachable servers")

	w := s.do(http.MethodPost, "/api/appointments", ayseBooking)

	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.JSONEq(t, `{"error":"Failed to create appointment"}`, w.Body.String())
}

func TestAdminList_RequiresValidSession(t *testing.T) {
	s := newTestServer(t, "test-secret")
	valid, err := s.tokens.Create()
	require.NoError(t, err)
	other, err := session.NewService("other-secret", 0).Create()
	require.NoError(t, err)

	cases := map[string][]string{
		"no cookie":      nil,
		"empty cookie":   {session.CookieName + "="},
		"garbage":        {session.CookieName + "=not-a-token"},
		"foreign secret": {session.CookieName + "=" + other},
		"tampered":       {session.CookieName + "=" + valid + "x"},
		"wrong name":     {"admin_sessionx=" + valid},
	}
	for name, cookies := range cases {
		t.Run(name, func(t *testing.T) {
			w := s.do(http.MethodGet, "/api/admin/appointments", "", cookies...)

			assert.Equal(t, http.StatusUnauthorized, w.Code)
			assert.JSONEq(t, `{"error":"Unauthorized"}`, w.Body.String())
		})
	}
}

func TestAdminList_MissingSecret(t *testing.T) {
	s := newTestServer(t, "")

	w := s.do(http.MethodGet, "/api/admin/appointments", "", session.CookieName+"=a.b")

	assert.Equal(t, http.StatusInternalServerError, w.Code)
}

func TestAdminList_EmptyStore(t *testing.T) {
	s := newTestServer(t, "test-secret")
	token, err := s.tokens.Create()
	require.NoError(t, err)

	w := s.do(http.MethodGet, "/api/admin/appointments", "", session.CookieName+"="+token)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"data":[]}`, w.Body.String())
}

func TestAdminList_StoreFailure(t *testing.T) {
	s := newTestServer(t, "test-secret")
	s.repo.failAll = errors.New("cursor killed")
	token, err := s.tokens.Create()
	require.NoError(t, err)

	w := s.do(http.MethodGet, "/api/admin/appointments", "", session.CookieName+"="+token)

	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.JSONEq(t, `{"error":"Failed to fetch appointments"}`, w.Body.String())
}

func TestLogin_Rejections(t *testing.T) {
	cases := []struct {
		name   string
		body   string
		status int
		error  string
	}{
		{"unknown email", `{"email":"intruder@studio.com","password":"secret"}`, http.StatusUnauthorized, "Invalid credentials"},
		{"wrong password", `{"email":"admin@studio.com","password":"Secret"}`, http.StatusUnauthorized, "Invalid credentials"},
		{"blank password", `{"email":"admin@studio.com","password":"   "}`, http.StatusBadRequest, "Email and password are required"},
		{"no body", ``, http.StatusBadRequest, "Email and password are required"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			s := newTestServer(t, "test-secret")

			w := s.do(http.MethodPost, "/api/admin/login", tc.body)

			assert.Equal(t, tc.status, w.Code)
			assert.Equal(t, tc.error, decode(t, w)["error"])
			assert.Empty(t, w.Header().Values("Set-Cookie"))
		})
	}
}

func TestLogin_SecondAllowListedEmail(t *testing.T) {
	s := newTestServer(t, "test-secret")

	w := s.do(http.MethodPost, "/api/admin/login", `{"email":"Owner@studio.com","password":"secret"}`)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.NotNil(t, sessionCookie(w))
}

func TestLogin_MissingSecret(t *testing.T) {
	s := newTestServer(t, "")

	w := s.do(http.MethodPost, "/api/admin/login", `{"email":"admin@studio.com","password":"secret"}`)

	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.JSONEq(t, `{"error":"Failed to create session"}`, w.Body.String())
	assert.Empty(t, w.Header().Values("Set-Cookie"))
}

func TestLogout_ClearsCookie(t *testing.T) {
	s := newTestServer(t, "test-secret")

	w := s.do(http.MethodPost, "/api/admin/logout", "")

	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"ok":true}`, w.Body.String())
	setCookie := w.Header().Get("Set-Cookie")
	assert.True(t, strings.HasPrefix(setCookie, session.CookieName+"=;"))
	assert.Contains(t, setCookie, "Max-Age=0")
	assert.Contains(t, setCookie, "HttpOnly")
}

func TestMethodNotAllowed(t *testing.T) {
	cases := []struct {
		method, path, allow string
	}{
		{http.MethodGet, "/api/appointments", "POST"},
		{http.MethodDelete, "/api/appointments", "POST"},
		{http.MethodGet, "/api/admin/login", "POST"},
		{http.MethodPut, "/api/admin/logout", "POST"},
		{http.MethodPost, "/api/admin/appointments", "GET"},
		{http.MethodPost, "/api/catalog", "GET"},
	}
	s := newTestServer(t, "test-secret")
	for _, tc := range cases {
		t.Run(tc.method+" "+tc.path, func(t *testing.T) {
			w := s.do(tc.method, tc.path, "")

			assert.Equal(t, http.StatusMethodNotAllowed, w.Code)
			assert.Equal(t, tc.allow, w.Header().Get("Allow"))
			assert.JSONEq(t, `{"error":"Method not allowed"}`, w.Body.String())
		})
	}
}

func TestCatalog(t *testing.T) {
	s := newTestServer(t, "test-secret")

	w := s.do(http.MethodGet, "/api/catalog", "")

	require.Equal(t, http.StatusOK, w.Code)
	var c models.Catalog
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &c))
	assert.Len(t, c.TimeSlots, 18)
	assert.NotEmpty(t, c.Services)
	assert.NotEmpty(t, c.Addons)
}

func TestHealth(t *testing.T) {
	s := newTestServer(t, "test-secret")

	w := s.do(http.MethodGet, "/health", "")

	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"status":"ok"}`, w.Body.String())
}

func TestCorsConfig(t *testing.T) {
	cfg := corsConfig(nil)
	assert.True(t, cfg.AllowAllOrigins)
	assert.NoError(t, cfg.Validate())

	cfg = corsConfig([]string{"https://yusufnailart.com"})
	assert.False(t, cfg.AllowAllOrigins)
	assert.Equal(t, []string{"https://yusufnailart.com"}, cfg.AllowOrigins)
	assert.True(t, cfg.AllowCredentials)
	assert.NoError(t, cfg.Validate())

	assert.True(t, corsConfig([]string{"*"}).AllowAllOrigins)
}
