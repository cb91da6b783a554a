package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"dealerdesk/internal/entity"
	"dealerdesk/internal/permission"
	"dealerdesk/internal/utils"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
)

func invokeWithRole(t *testing.T, role entity.UserRole, capability permission.Capability) (int, bool) {
	t.Helper()
	e := echo.New()
	request := httptest.NewRequest(http.MethodDelete, "/vehicles/123", nil)
	recorder := httptest.NewRecorder()
	c := e.NewContext(request, recorder)
	SetAuthContext(c, uuid.New(), role)

	reached := false
	handler := RequirePermission(capability)(func(c echo.Context) error {
		reached = true
		return c.NoContent(http.StatusNoContent)
	})

	err := handler(c)
	if err == nil {
		return recorder.Code, reached
	}
	httpError, ok := err.(*echo.HTTPError)
	if !ok {
		t.Fatalf("unexpected error type: %v", err)
	}
	return httpError.Code, reached
}

func TestRequirePermissionMatrix(t *testing.T) {
	cases := []struct {
		name       string
		role       entity.UserRole
		capability permission.Capability
		wantStatus int
	}{
		{"admin deletes vehicles", entity.UserRoleAdmin, permission.CanDeleteVehicles, http.StatusNoContent},
		{"employee cannot delete vehicles", entity.UserRoleEmployee, permission.CanDeleteVehicles, http.StatusForbidden},
		{"employee creates vehicles", entity.UserRoleEmployee, permission.CanCreateVehicles, http.StatusNoContent},
		{"viewer cannot create vehicles", entity.UserRoleViewer, permission.CanCreateVehicles, http.StatusForbidden},
		{"viewer cannot manage users", entity.UserRoleViewer, permission.CanManageUsers, http.StatusForbidden},
		{"unknown role denied", entity.UserRole("emprendedores"), permission.CanViewVehicles, http.StatusForbidden},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			status, reached := invokeWithRole(t, tc.role, tc.capability)
			if status != tc.wantStatus {
				t.Fatalf("status = %d, want %d", status, tc.wantStatus)
			}
			if tc.wantStatus == http.StatusForbidden && reached {
				t.Error("handler ran despite missing capability")
			}
		})
	}
}

func TestRequirePermissionWithoutAuthContext(t *testing.T) {
	e := echo.New()
	request := httptest.NewRequest(http.MethodPost, "/vehicles", nil)
	c := e.NewContext(request, httptest.NewRecorder())

	handler := RequirePermission(permission.CanCreateVehicles)(func(c echo.Context) error {
		t.Fatal("handler must not run without an authenticated role")
		return nil
	})

	err := handler(c)
	httpError, ok := err.(*echo.HTTPError)
	if !ok || httpError.Code != http.StatusForbidden {
		t.Fatalf("err = %v, want 403", err)
	}
}

func TestRequireAuthRoundTrip(t *testing.T) {
	manager := &utils.JWTManager{Secret: []byte("test-secret"), AccessTokenTTL: time.Hour}
	userID := uuid.New()
	token, _, err := manager.IssueAccessToken(userID.String(), string(entity.UserRoleEmployee))
	if err != nil {
		t.Fatalf("IssueAccessToken: %v", err)
	}

	e := echo.New()
	request := httptest.NewRequest(http.MethodGet, "/me", nil)
	request.Header.Set("Authorization", "Bearer "+token)
	c := e.NewContext(request, httptest.NewRecorder())

	handler := RequireAuth(manager)(func(c echo.Context) error {
		gotID, ok := UserIDFromContext(c)
		if !ok || gotID != userID {
			t.Errorf("user id in context = %v, want %v", gotID, userID)
		}
		role, ok := RoleFromContext(c)
		if !ok || role != entity.UserRoleEmployee {
			t.Errorf("role in context = %v, want employee", role)
		}
		return c.NoContent(http.StatusOK)
	})
	if err := handler(c); err != nil {
		t.Fatalf("RequireAuth: %v", err)
	}
}

func TestRequireAuthRejects(t *testing.T) {
	manager := &utils.JWTManager{Secret: []byte("test-secret")}
	forged, _, err := (&utils.JWTManager{Secret: []byte("other-secret")}).
		IssueAccessToken(uuid.NewString(), "admin")
	if err != nil {
		t.Fatalf("IssueAccessToken: %v", err)
	}

	cases := []struct {
		name   string
		header string
	}{
		{"missing header", ""},
		{"not bearer", "Basic abc123"},
		{"garbage token", "Bearer not.a.jwt"},
		{"wrong signature", "Bearer " + forged},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			e := echo.New()
			request := httptest.NewRequest(http.MethodGet, "/me", nil)
			if tc.header != "" {
				request.Header.Set("Authorization", tc.header)
			}
			c := e.NewContext(request, httptest.NewRecorder())

			handler := RequireAuth(manager)(func(c echo.Context) error {
				t.Fatal("handler must not run for a rejected token")
				return nil
			})
			err := handler(c)
			httpError, ok := err.(*echo.HTTPError)
			if !ok || httpError.Code != http.StatusUnauthorized {
				t.Fatalf("err = %v, want 401", err)
			}
		})
	}
}
