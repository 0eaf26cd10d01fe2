package handler

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"medicamp_api/internal/api/middleware"
	"medicamp_api/internal/app/service"
	"medicamp_api/internal/common/security"
	"medicamp_api/internal/domain/model"
	"medicamp_api/internal/platform/payment"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/jwtauth/v5"
	"github.com/stretchr/testify/require"
)

// --- Mock services ---

type mockUserService struct {
	createFn  func(ctx context.Context, email string, req service.CreateUserRequest) (*model.User, bool, error)
	listFn    func(ctx context.Context) ([]model.User, error)
	getFn     func(ctx context.Context, email string) (*model.User, error)
	updateFn  func(ctx context.Context, email string, update model.UserUpdate) error
	isAdminFn func(ctx context.Context, email string) (bool, error)
}

func (m *mockUserService) CreateUser(ctx context.Context, email string, req service.CreateUserRequest) (*model.User, bool, error) {
	return m.createFn(ctx, email, req)
}
func (m *mockUserService) ListUsers(ctx context.Context) ([]model.User, error) {
	return m.listFn(ctx)
}
func (m *mockUserService) GetUser(ctx context.Context, email string) (*model.User, error) {
	return m.getFn(ctx, email)
}
func (m *mockUserService) UpdateUser(ctx context.Context, email string, update model.UserUpdate) error {
	return m.updateFn(ctx, email, update)
}
func (m *mockUserService) IsAdmin(ctx context.Context, email string) (bool, error) {
	return m.isAdminFn(ctx, email)
}

type mockCampService struct {
	listFn   func(ctx context.Context, q model.CampListQuery) ([]model.Camp, int64, error)
	getFn    func(ctx context.Context, idOrSlug string) (*model.Camp, error)
	recentFn func(ctx context.Context) ([]model.Camp, error)
	createFn func(ctx context.Context, req service.CreateCampRequest) (*model.Camp, error)
	updateFn func(ctx context.Context, idHex string, update model.CampUpdate) error
	deleteFn func(ctx context.Context, idHex string) error
}

func (m *mockCampService) ListCamps(ctx context.Context, q model.CampListQuery) ([]model.Camp, int64, error) {
	return m.listFn(ctx, q)
}
func (m *mockCampService) GetCamp(ctx context.Context, idOrSlug string) (*model.Camp, error) {
	return m.getFn(ctx, idOrSlug)
}
func (m *mockCampService) RecentCamps(ctx context.Context) ([]model.Camp, error) {
	return m.recentFn(ctx)
}
func (m *mockCampService) CreateCamp(ctx context.Context, req service.CreateCampRequest) (*model.Camp, error) {
	return m.createFn(ctx, req)
}
func (m *mockCampService) UpdateCamp(ctx context.Context, idHex string, update model.CampUpdate) error {
	return m.updateFn(ctx, idHex, update)
}
func (m *mockCampService) DeleteCamp(ctx context.Context, idHex string) error {
	return m.deleteFn(ctx, idHex)
}

type mockParticipantService struct {
	registerFn func(ctx context.Context, campIDHex, callerEmail string, req service.RegisterRequest) (*model.Registration, error)
	cancelFn   func(ctx context.Context, participantIDHex, campIDHex string) (*model.Cancellation, error)
	confirmFn  func(ctx context.Context, participantIDHex string) error
	listFn     func(ctx context.Context, q model.PageQuery) (*model.Page[model.ParticipantView], error)
}

func (m *mockParticipantService) RegisterParticipant(ctx context.Context, campIDHex, callerEmail string, req service.RegisterRequest) (*model.Registration, error) {
	return m.registerFn(ctx, campIDHex, callerEmail, req)
}
func (m *mockParticipantService) CancelParticipant(ctx context.Context, participantIDHex, campIDHex string) (*model.Cancellation, error) {
	return m.cancelFn(ctx, participantIDHex, campIDHex)
}
func (m *mockParticipantService) ConfirmParticipant(ctx context.Context, participantIDHex string) error {
	return m.confirmFn(ctx, participantIDHex)
}
func (m *mockParticipantService) ListParticipants(ctx context.Context, q model.PageQuery) (*model.Page[model.ParticipantView], error) {
	return m.listFn(ctx, q)
}

type mockPaymentService struct {
	intentFn  func(ctx context.Context, req service.IntentRequest) (*payment.Intent, error)
	recordFn  func(ctx context.Context, participantIDHex, callerEmail string, req service.RecordPaymentRequest) (*model.PaymentRecord, error)
	historyFn func(ctx context.Context, q model.PageQuery) (*model.Page[model.PaymentView], error)
}

func (m *mockPaymentService) CreatePaymentIntent(ctx context.Context, req service.IntentRequest) (*payment.Intent, error) {
	return m.intentFn(ctx, req)
}
func (m *mockPaymentService) RecordPayment(ctx context.Context, participantIDHex, callerEmail string, req service.RecordPaymentRequest) (*model.PaymentRecord, error) {
	return m.recordFn(ctx, participantIDHex, callerEmail, req)
}
func (m *mockPaymentService) PaymentHistory(ctx context.Context, q model.PageQuery) (*model.Page[model.PaymentView], error) {
	return m.historyFn(ctx, q)
}

// --- Helpers ---

var testTokens = security.NewTokenAuth("handler-test-secret", time.Minute)

type registrar interface {
	RegisterRoutes(r chi.Router)
}

func newTestMux(h registrar) *chi.Mux {
	r := chi.NewRouter()
	r.Use(jwtauth.Verifier(testTokens.JWTAuth()))
	h.RegisterRoutes(r)
	return r
}

// allowAdmins treats the listed emails as admins.
func allowAdmins(emails ...string) func(http.Handler) http.Handler {
	return middleware.AdminOnly(roleResolver(func(_ context.Context, email string) (string, error) {
		for _, e := range emails {
			if e == email {
				return model.RoleAdmin, nil
			}
		}
		return model.RoleUser, nil
	}))
}

type roleResolver func(ctx context.Context, email string) (string, error)

func (f roleResolver) RoleOf(ctx context.Context, email string) (string, error) {
	return f(ctx, email)
}

func doRequest(t *testing.T, h http.Handler, method, path, body, asEmail string) *httptest.ResponseRecorder {
	t.Helper()
	var reader io.Reader
	if body != "" {
		reader = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	if asEmail != "" {
		tok, err := testTokens.Sign(asEmail)
		require.NoError(t, err)
		req.Header.Set("Authorization", "Bearer "+tok)
	}
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func decodeJSON(t *testing.T, rec *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()
	var body map[string]interface{}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	return body
}
