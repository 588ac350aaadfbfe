package router

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iliyamo/movitour/internal/config"
	"github.com/iliyamo/movitour/internal/handler"
	"github.com/iliyamo/movitour/internal/logger"
	"github.com/iliyamo/movitour/internal/model"
	"github.com/iliyamo/movitour/internal/notify"
	"github.com/iliyamo/movitour/internal/repository"
	"github.com/iliyamo/movitour/internal/service"
)

type memUsers struct {
	mu    sync.Mutex
	users map[string]model.User
}

func (m *memUsers) Create(_ context.Context, name, email, hash string) (model.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.users[email]; ok {
		return model.User{}, repository.ErrEmailExists
	}
	u := model.User{ID: int64(len(m.users) + 1), Name: name, Email: email, PasswordHash: hash, Active: true}
	m.users[email] = u
	return u, nil
}

func (m *memUsers) GetActiveByEmail(_ context.Context, email string) (model.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	u, ok := m.users[email]
	if !ok {
		return model.User{}, repository.ErrNotFound
	}
	return u, nil
}

type memCatalog struct{}

func (memCatalog) ListActive(context.Context) ([]model.City, error) {
	return []model.City{{ID: 1, Name: "Bogotá"}}, nil
}

func (memCatalog) GetActive(context.Context, int64) (model.City, error) {
	return model.City{}, repository.ErrNotFound
}

func (memCatalog) List(context.Context, model.OfferFilter) ([]model.Offer, error) {
	return []model.Offer{}, nil
}

func (memCatalog) GetVisible(context.Context, int64) (model.Offer, error) {
	return model.Offer{}, repository.ErrNotFound
}

type memReservations struct {
	mu   sync.Mutex
	rows []model.Reservation
}

func (m *memReservations) Create(_ context.Context, userID, offerID int64, n int) (model.Reservation, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	r := model.Reservation{ID: int64(len(m.rows) + 1), UserID: userID, OfferID: offerID, PartySize: n, Total: 10 * float64(n), Status: model.StatusPending}
	m.rows = append(m.rows, r)
	return r, nil
}

func (m *memReservations) ListByUser(_ context.Context, userID int64) ([]model.ReservationDetail, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]model.ReservationDetail, 0)
	for _, r := range m.rows {
		if r.UserID == userID {
			out = append(out, model.ReservationDetail{ID: r.ID, PartySize: r.PartySize, Total: r.Total, Status: r.Status})
		}
	}
	return out, nil
}

type nopSender struct{}

func (nopSender) SendSupportMessage(context.Context, notify.SupportMessage) error { return nil }

func newTestRouter(t *testing.T) *echo.Echo {
	t.Helper()
	auth, err := service.NewAuthService(&memUsers{users: map[string]model.User{}}, config.Auth{
		JWTSecret: "router-secret", TokenTTL: time.Hour, BcryptCost: 4,
	})
	require.NoError(t, err)

	log := logger.Nop()
	return New(log, Handlers{
		Auth:         handler.NewAuthHandler(auth),
		Catalog:      handler.NewCatalogHandler(service.NewCatalogService(memCatalog{}, memCatalog{})),
		Reservations: handler.NewReservationHandler(service.NewReservationService(&memReservations{}, nil, log)),
		Support:      handler.NewSupportHandler(service.NewSupportService(nopSender{})),
	}, auth)
}

func send(e *echo.Echo, method, target, body, token string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, target, strings.NewReader(body))
	if body != "" {
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	}
	if token != "" {
		req.Header.Set(echo.HeaderAuthorization, "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	return rec
}

func TestRegisterLoginAndBook(t *testing.T) {
	e := newTestRouter(t)

	rec := send(e, http.MethodPost, "/api/auth/register", `{"nombre":"Ana","email":"ana@x.com","password":"1234"}`, "")
	require.Equal(t, http.StatusCreated, rec.Code)

	rec = send(e, http.MethodPost, "/api/auth/register", `{"nombre":"Ana","email":"ana@x.com","password":"1234"}`, "")
	require.Equal(t, http.StatusConflict, rec.Code)
	assert.JSONEq(t, `{"error":"El usuario ya existe"}`, rec.Body.String())

	rec = send(e, http.MethodPost, "/api/auth/login", `{"email":"ana@x.com","password":"1234"}`, "")
	require.Equal(t, http.StatusOK, rec.Code)
	var login struct {
		Token string `json:"token"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &login))
	require.NotEmpty(t, login.Token)

	rec = send(e, http.MethodPost, "/api/reservas", `{"oferta_id":1,"cantidad_personas":2}`, login.Token)
	require.Equal(t, http.StatusCreated, rec.Code)

	rec = send(e, http.MethodGet, "/api/reservas", "", login.Token)
	require.Equal(t, http.StatusOK, rec.Code)
	var list struct {
		Reservas []model.ReservationDetail `json:"reservas"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &list))
	require.Len(t, list.Reservas, 1)
	assert.Equal(t, 2, list.Reservas[0].PartySize)
}

func TestReservas_RequiresToken(t *testing.T) {
	e := newTestRouter(t)

	rec := send(e, http.MethodGet, "/api/reservas", "", "")
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.JSONEq(t, `{"error":"Token de acceso requerido"}`, rec.Body.String())

	rec = send(e, http.MethodGet, "/api/reservas", "", "garbage")
	assert.Equal(t, http.StatusForbidden, rec.Code)
	assert.JSONEq(t, `{"error":"Token inválido"}`, rec.Body.String())
}

func TestLogin_UnknownEmailAndWrongPasswordLookAlike(t *testing.T) {
	e := newTestRouter(t)
	require.Equal(t, http.StatusCreated,
		send(e, http.MethodPost, "/api/auth/register", `{"nombre":"Ana","email":"ana@x.com","password":"1234"}`, "").Code)

	unknown := send(e, http.MethodPost, "/api/auth/login", `{"email":"x@x.com","password":"1234"}`, "")
	wrong := send(e, http.MethodPost, "/api/auth/login", `{"email":"ana@x.com","password":"0000"}`, "")

	assert.Equal(t, http.StatusUnauthorized, unknown.Code)
	assert.Equal(t, unknown.Code, wrong.Code)
	assert.Equal(t, unknown.Body.String(), wrong.Body.String())
}

func TestPublicRoutes(t *testing.T) {
	e := newTestRouter(t)

	first := send(e, http.MethodGet, "/api/ciudades", "", "")
	second := send(e, http.MethodGet, "/api/ciudades", "", "")
	assert.Equal(t, http.StatusOK, first.Code)
	assert.Equal(t, first.Body.String(), second.Body.String())

	assert.Equal(t, http.StatusOK, send(e, http.MethodGet, "/api/ofertas/buscar?ciudad=bog", "", "").Code)
	assert.Equal(t, http.StatusNotFound, send(e, http.MethodGet, "/api/ofertas/5", "", "").Code)
	assert.Equal(t, http.StatusOK, send(e, http.MethodGet, "/api/health", "", "").Code)
	assert.Equal(t, http.StatusOK,
		send(e, http.MethodPost, "/api/soporte", `{"nombre":"Ana","email":"ana@x.com","mensaje":"Hola"}`, "").Code)

	rec := send(e, http.MethodGet, "/api/unknown", "", "")
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.JSONEq(t, `{"error":"Ruta no encontrada"}`, rec.Body.String())
	assert.NotEmpty(t, rec.Header().Get(echo.HeaderXRequestID))
}
