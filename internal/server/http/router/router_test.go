package router

import (
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/returnhelper/returnsvc/internal/domain/model"
	testhelpers "github.com/returnhelper/returnsvc/internal/test"
)

func newTestRouter(stub testhelpers.ReturnHelperFacadeStub) http.Handler {
	logger := slog.New(slog.NewJSONHandler(io.Discard, nil))
	return Setup(stub, logger)
}

func serve(t *testing.T, handler http.Handler, method, path string, authed bool) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(method, path, nil)
	if authed {
		req.Header.Set("Authorization", "Bearer token")
	}
	resp := httptest.NewRecorder()
	handler.ServeHTTP(resp, req)
	return resp
}

func TestRouterRejectsUnauthenticated(t *testing.T) {
	router := newTestRouter(testhelpers.ReturnHelperFacadeStub{})

	for _, path := range []string{"/api/returns", "/api/profile", "/api/addresses", "/api/pickups"} {
		resp := serve(t, router, http.MethodGet, path, false)
		if resp.Code != http.StatusUnauthorized {
			t.Fatalf("expected 401 for %s without token, got %d", path, resp.Code)
		}
	}
}

func TestRouterPublicAuthRoutes(t *testing.T) {
	router := newTestRouter(testhelpers.ReturnHelperFacadeStub{})

	resp := serve(t, router, http.MethodPost, "/api/auth/register", false)
	if resp.Code == http.StatusUnauthorized {
		t.Fatal("register must not require authentication")
	}
	resp = serve(t, router, http.MethodPost, "/api/auth/login", false)
	if resp.Code == http.StatusUnauthorized {
		t.Fatal("login must not require authentication")
	}
}

func TestRouterCustomerRoutes(t *testing.T) {
	router := newTestRouter(testhelpers.ReturnHelperFacadeStub{})

	resp := serve(t, router, http.MethodGet, "/api/returns", true)
	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200 for authenticated list, got %d", resp.Code)
	}
	resp = serve(t, router, http.MethodGet, "/api/returns/stats", true)
	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200 for stats, got %d", resp.Code)
	}
	resp = serve(t, router, http.MethodGet, "/api/profile", true)
	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200 for profile, got %d", resp.Code)
	}
}

func TestRouterDriverRoutesRequireDriverRole(t *testing.T) {
	customer := testhelpers.ReturnHelperFacadeStub{}
	router := newTestRouter(customer)

	resp := serve(t, router, http.MethodGet, "/api/pickups", true)
	if resp.Code != http.StatusForbidden {
		t.Fatalf("expected 403 for customer on driver route, got %d", resp.Code)
	}

	driver := testhelpers.ReturnHelperFacadeStub{}
	driver.AuthFacadeStub.ParseFn = func(string) (string, model.UserRole, error) {
		return "driver-1", model.RoleDriver, nil
	}
	router = newTestRouter(driver)

	resp = serve(t, router, http.MethodGet, "/api/pickups", true)
	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200 for driver, got %d", resp.Code)
	}
	resp = serve(t, router, http.MethodGet, "/api/pickups/mine", true)
	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200 for driver pickups, got %d", resp.Code)
	}
}

func TestRouterCompressesResponses(t *testing.T) {
	router := newTestRouter(testhelpers.ReturnHelperFacadeStub{})

	req := httptest.NewRequest(http.MethodGet, "/api/returns", nil)
	req.Header.Set("Authorization", "Bearer token")
	req.Header.Set("Accept-Encoding", "gzip")
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)

	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.Code)
	}
	if resp.Header().Get("Content-Encoding") != "gzip" {
		t.Fatal("expected gzip encoded response")
	}
}
