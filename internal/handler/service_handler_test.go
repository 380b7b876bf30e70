package handler

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"

	"event-crm/internal/models"
)

type fakeCatalogService struct {
	lastIncludeInactive bool
	listCalls           int
}

func (f *fakeCatalogService) Create(_ context.Context, service *models.Service, _ *int, _ *models.Principal) (*models.Service, error) {
	return service, nil
}

func (f *fakeCatalogService) Get(_ context.Context, _ string) (*models.Service, error) {
	return &models.Service{}, nil
}

func (f *fakeCatalogService) List(_ context.Context, _ string, includeInactive bool) ([]models.Service, error) {
	f.listCalls++
	f.lastIncludeInactive = includeInactive
	return nil, nil
}

func (f *fakeCatalogService) Update(_ context.Context, _ string, updated *models.Service, _ *models.Principal) (*models.Service, error) {
	return updated, nil
}

func (f *fakeCatalogService) Delete(_ context.Context, _ string) error { return nil }

func (f *fakeCatalogService) Reorder(_ context.Context, _ string, _ []string) error { return nil }

func (f *fakeCatalogService) Categories(_ context.Context) ([]string, error) { return nil, nil }

// The list route runs behind an auth middleware that resolves a
// principal when a token is present; these routers mirror the two
// outcomes of that resolution.
func newServiceListRouter(svc *fakeCatalogService, principal *models.Principal) *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	h := NewServiceHandler(svc)
	router.GET("/services", func(c *gin.Context) {
		if principal != nil {
			c.Set("principal", principal)
		}
		c.Next()
	}, h.List)
	return router
}

func getServices(router *gin.Engine, path string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, path, nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func TestServiceList_IncludeInactiveForPrincipal(t *testing.T) {
	fake := &fakeCatalogService{}
	router := newServiceListRouter(fake, &models.Principal{ID: "staff-1", Role: "admin"})

	w := getServices(router, "/services?includeInactive=true")

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want %d", w.Code, http.StatusOK)
	}
	if fake.listCalls != 1 {
		t.Fatalf("listCalls = %d, want 1", fake.listCalls)
	}
	if !fake.lastIncludeInactive {
		t.Error("includeInactive = false for an authenticated caller, want true")
	}
}

func TestServiceList_AnonymousNeverSeesInactive(t *testing.T) {
	fake := &fakeCatalogService{}
	router := newServiceListRouter(fake, nil)

	w := getServices(router, "/services?includeInactive=true")

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want %d", w.Code, http.StatusOK)
	}
	if fake.lastIncludeInactive {
		t.Error("includeInactive = true for an anonymous caller, want false")
	}
}
