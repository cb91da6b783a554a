package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"dealerdesk/internal/dto"
	"dealerdesk/internal/entity"
	"dealerdesk/internal/guard"
	"dealerdesk/internal/service"
	"dealerdesk/internal/utils"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
)

type memoryUsers struct {
	byEmail map[string]*entity.User
}

func (r *memoryUsers) Create(_ context.Context, user *entity.User) error {
	user.ID = uuid.New()
	r.byEmail[user.Email] = user
	return nil
}

func (r *memoryUsers) FindByID(_ context.Context, id uuid.UUID) (*entity.User, error) {
	for _, user := range r.byEmail {
		if user.ID == id {
			return user, nil
		}
	}
	return nil, nil
}

func (r *memoryUsers) FindByEmail(_ context.Context, email string) (*entity.User, error) {
	return r.byEmail[email], nil
}

func (r *memoryUsers) Update(_ context.Context, user *entity.User) error {
	r.byEmail[user.Email] = user
	return nil
}

func (r *memoryUsers) MarkVerified(_ context.Context, userID uuid.UUID) error {
	user, _ := r.FindByID(context.Background(), userID)
	if user != nil {
		user.EmailVerified = true
		user.Status = entity.UserStatusActive
	}
	return nil
}

func (r *memoryUsers) UpdateRole(_ context.Context, userID uuid.UUID, role entity.UserRole) error {
	user, _ := r.FindByID(context.Background(), userID)
	if user != nil {
		user.Role = role
	}
	return nil
}

func (r *memoryUsers) List(_ context.Context, _, _ int) ([]entity.User, error) {
	return nil, nil
}

type memoryVerifications struct {
	byHash map[string]*entity.EmailVerification
}

func (r *memoryVerifications) Create(_ context.Context, verification *entity.EmailVerification) error {
	verification.ID = uuid.New()
	r.byHash[verification.TokenHash] = verification
	return nil
}

func (r *memoryVerifications) FindValid(_ context.Context, tokenHash string) (*entity.EmailVerification, error) {
	verification, ok := r.byHash[tokenHash]
	if !ok || verification.ConsumedAt != nil {
		return nil, nil
	}
	return verification, nil
}

func (r *memoryVerifications) Consume(_ context.Context, id uuid.UUID) (bool, error) {
	for _, verification := range r.byHash {
		if verification.ID == id && verification.ConsumedAt == nil {
			now := time.Now()
			verification.ConsumedAt = &now
			return true, nil
		}
	}
	return false, nil
}

type discardAudit struct{}

func (discardAudit) Log(_ context.Context, _ *entity.AuditLog) error { return nil }

type capturingSender struct {
	token string
}

func (s *capturingSender) SendVerificationEmail(_ context.Context, _ string, _ string, token string) error {
	s.token = token
	return nil
}

type plainHasher struct{}

func (plainHasher) Hash(password string) (string, error) { return "h:" + password, nil }
func (plainHasher) Verify(hash string, password string) bool {
	return hash == "h:"+password
}

type denyAllLimiter struct {
	resetAt time.Time
}

func (l denyAllLimiter) Allow(_ context.Context, _ string) (guard.Result, error) {
	return guard.Result{Allowed: false, ResetAt: l.resetAt}, nil
}

type authTestServer struct {
	handler *AuthHandler
	sender  *capturingSender
	echo    *echo.Echo
}

func newAuthTestServer(registrationGuard *guard.Guard) *authTestServer {
	sender := &capturingSender{}
	svc := service.NewAuthService(
		&memoryUsers{byEmail: make(map[string]*entity.User)},
		&memoryVerifications{byHash: make(map[string]*entity.EmailVerification)},
		discardAudit{},
		registrationGuard,
		dto.NewValidator(),
		sender,
		plainHasher{},
		&utils.JWTManager{Secret: []byte("test-secret")},
		service.RealClock{},
		nil,
		service.Config{VerificationTokenTTL: 24 * time.Hour},
	)
	return &authTestServer{
		handler: NewAuthHandler(svc),
		sender:  sender,
		echo:    echo.New(),
	}
}

func (s *authTestServer) post(t *testing.T, path string, body string, clientIP string, route func(echo.Context) error) *httptest.ResponseRecorder {
	t.Helper()
	request := httptest.NewRequest(http.MethodPost, path, strings.NewReader(body))
	request.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	if clientIP != "" {
		request.Header.Set(echo.HeaderXRealIP, clientIP)
	}
	recorder := httptest.NewRecorder()
	c := s.echo.NewContext(request, recorder)
	if err := route(c); err != nil {
		s.echo.HTTPErrorHandler(err, c)
	}
	return recorder
}

func decodeBody(t *testing.T, recorder *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var payload map[string]any
	if err := json.Unmarshal(recorder.Body.Bytes(), &payload); err != nil {
		t.Fatalf("response is not JSON: %v\n%s", err, recorder.Body.String())
	}
	return payload
}

const registerBody = `{"name":"Ana Torres","email":"ana@example.com","password":"Sup3rSecret"}`

func TestRegisterEndpointCreated(t *testing.T) {
	server := newAuthTestServer(nil)

	recorder := server.post(t, "/api/auth/register", registerBody, "203.0.113.9", server.handler.Register)
	if recorder.Code != http.StatusCreated {
		t.Fatalf("status = %d, want 201\n%s", recorder.Code, recorder.Body.String())
	}
	payload := decodeBody(t, recorder)
	if payload["email"] != "ana@example.com" {
		t.Errorf("email = %v, want ana@example.com", payload["email"])
	}
	if server.sender.token == "" {
		t.Error("no verification token dispatched")
	}
}

func TestRegisterEndpointValidation(t *testing.T) {
	server := newAuthTestServer(nil)

	body := `{"name":"A","email":"not-an-email","password":"weak"}`
	recorder := server.post(t, "/api/auth/register", body, "203.0.113.9", server.handler.Register)
	if recorder.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", recorder.Code)
	}
	payload := decodeBody(t, recorder)
	fields, ok := payload["fields"].(map[string]any)
	if !ok {
		t.Fatalf("no fields object in %v", payload)
	}
	for _, field := range []string{"name", "email", "password"} {
		if _, present := fields[field]; !present {
			t.Errorf("fields missing %q: %v", field, fields)
		}
	}
}

func TestRegisterEndpointBlacklisted(t *testing.T) {
	blocked := guard.New(nil, guard.NewStaticBlacklist([]string{"198.51.100.7"}))
	server := newAuthTestServer(blocked)

	recorder := server.post(t, "/api/auth/register", registerBody, "198.51.100.7", server.handler.Register)
	if recorder.Code != http.StatusForbidden {
		t.Fatalf("status = %d, want 403", recorder.Code)
	}
}

func TestRegisterEndpointDuplicate(t *testing.T) {
	server := newAuthTestServer(nil)

	first := server.post(t, "/api/auth/register", registerBody, "203.0.113.9", server.handler.Register)
	if first.Code != http.StatusCreated {
		t.Fatalf("first register status = %d", first.Code)
	}
	second := server.post(t, "/api/auth/register", registerBody, "203.0.113.9", server.handler.Register)
	if second.Code != http.StatusConflict {
		t.Fatalf("status = %d, want 409", second.Code)
	}
}

func TestRegisterEndpointRateLimited(t *testing.T) {
	resetAt := time.Now().Add(30 * time.Minute).Truncate(time.Second)
	server := newAuthTestServer(guard.New(denyAllLimiter{resetAt: resetAt}))

	recorder := server.post(t, "/api/auth/register", registerBody, "203.0.113.9", server.handler.Register)
	if recorder.Code != http.StatusTooManyRequests {
		t.Fatalf("status = %d, want 429", recorder.Code)
	}
	payload := decodeBody(t, recorder)
	raw, ok := payload["reset_at"].(string)
	if !ok {
		t.Fatalf("no reset_at in %v", payload)
	}
	parsed, err := time.Parse(time.RFC3339, raw)
	if err != nil {
		t.Fatalf("reset_at %q is not RFC3339: %v", raw, err)
	}
	if !parsed.Equal(resetAt) {
		t.Errorf("reset_at = %v, want %v", parsed, resetAt)
	}
}

func TestVerifyEmailEndpoint(t *testing.T) {
	server := newAuthTestServer(nil)
	server.post(t, "/api/auth/register", registerBody, "203.0.113.9", server.handler.Register)

	body := `{"token":"` + server.sender.token + `"}`
	recorder := server.post(t, "/api/auth/verify-email", body, "203.0.113.9", server.handler.VerifyEmail)
	if recorder.Code != http.StatusNoContent {
		t.Fatalf("status = %d, want 204\n%s", recorder.Code, recorder.Body.String())
	}

	replay := server.post(t, "/api/auth/verify-email", body, "203.0.113.9", server.handler.VerifyEmail)
	if replay.Code != http.StatusUnauthorized {
		t.Fatalf("replayed token status = %d, want 401", replay.Code)
	}
}

func TestLoginEndpoint(t *testing.T) {
	server := newAuthTestServer(nil)
	server.post(t, "/api/auth/register", registerBody, "203.0.113.9", server.handler.Register)
	server.post(t, "/api/auth/verify-email", `{"token":"`+server.sender.token+`"}`, "203.0.113.9", server.handler.VerifyEmail)

	recorder := server.post(t, "/api/auth/login", `{"email":"ana@example.com","password":"Sup3rSecret"}`, "203.0.113.9", server.handler.Login)
	if recorder.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200\n%s", recorder.Code, recorder.Body.String())
	}
	payload := decodeBody(t, recorder)
	if payload["access_token"] == "" || payload["access_token"] == nil {
		t.Error("no access_token in response")
	}

	wrong := server.post(t, "/api/auth/login", `{"email":"ana@example.com","password":"Nope12345"}`, "203.0.113.9", server.handler.Login)
	if wrong.Code != http.StatusUnauthorized {
		t.Fatalf("wrong password status = %d, want 401", wrong.Code)
	}
}

func TestLoginEndpointUnverified(t *testing.T) {
	server := newAuthTestServer(nil)
	server.post(t, "/api/auth/register", registerBody, "203.0.113.9", server.handler.Register)

	recorder := server.post(t, "/api/auth/login", `{"email":"ana@example.com","password":"Sup3rSecret"}`, "203.0.113.9", server.handler.Login)
	if recorder.Code != http.StatusForbidden {
		t.Fatalf("status = %d, want 403 for unverified account", recorder.Code)
	}
}
