package handler

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"

	"event-crm/internal/models"
	"event-crm/internal/repository"
	"event-crm/internal/services"
)

type fakeInquiryService struct {
	lastComm *models.Communication
}

func (f *fakeInquiryService) Create(_ context.Context, inquiry *models.Inquiry, _ services.IntakeMeta, _ *models.Principal) (*models.Inquiry, error) {
	return inquiry, nil
}

func (f *fakeInquiryService) List(_ context.Context, _ repository.InquiryFilter) ([]models.Inquiry, *services.Pagination, error) {
	return nil, &services.Pagination{}, nil
}

func (f *fakeInquiryService) Get(_ context.Context, _ string) (*models.Inquiry, error) {
	return &models.Inquiry{}, nil
}

func (f *fakeInquiryService) Update(_ context.Context, _ string, updated *models.Inquiry, _ *models.Principal) (*models.Inquiry, error) {
	return updated, nil
}

func (f *fakeInquiryService) Delete(_ context.Context, _ string) error { return nil }

func (f *fakeInquiryService) Stats(_ context.Context) (*services.InquiryStats, error) {
	return &services.InquiryStats{}, nil
}

func (f *fakeInquiryService) AddCommunication(_ context.Context, _ string, comm models.Communication, _ *models.Principal) (*models.Inquiry, error) {
	f.lastComm = &comm
	return &models.Inquiry{}, nil
}

func (f *fakeInquiryService) MarkAsLost(_ context.Context, _ string, _ string, _ *models.Principal) (*models.Inquiry, error) {
	return &models.Inquiry{}, nil
}

func newCommunicationRouter(svc services.InquiryService) *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	h := NewInquiryHandler(svc, nil)
	router.POST("/inquiries/:id/communications", h.AddCommunication)
	return router
}

func postJSON(router *gin.Engine, path, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func TestAddCommunication_ContentIsOptional(t *testing.T) {
	fake := &fakeInquiryService{}
	router := newCommunicationRouter(fake)

	w := postJSON(router, "/inquiries/64a000000000000000000001/communications",
		`{"type":"phone","direction":"outbound","subject":"Follow up call"}`)

	if w.Code != http.StatusCreated {
		t.Fatalf("status = %d, want %d (body %s)", w.Code, http.StatusCreated, w.Body.String())
	}
	if fake.lastComm == nil {
		t.Fatal("service was never reached")
	}
	if fake.lastComm.Subject != "Follow up call" {
		t.Errorf("Subject = %q, want %q", fake.lastComm.Subject, "Follow up call")
	}
	if fake.lastComm.Content != "" {
		t.Errorf("Content = %q, want empty", fake.lastComm.Content)
	}
}

func TestAddCommunication_RequiresSubject(t *testing.T) {
	fake := &fakeInquiryService{}
	router := newCommunicationRouter(fake)

	w := postJSON(router, "/inquiries/64a000000000000000000001/communications",
		`{"type":"phone","direction":"outbound","content":"left a voicemail"}`)

	if w.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want %d", w.Code, http.StatusBadRequest)
	}
	if fake.lastComm != nil {
		t.Error("service was called despite missing subject")
	}
}
