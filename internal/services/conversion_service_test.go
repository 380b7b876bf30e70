package services

import (
	"context"
	"testing"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"event-crm/internal/models"
	"event-crm/internal/repository"
	"event-crm/pkg/apperrors"
)

type fakeInquiryStore struct {
	inquiry       *models.Inquiry
	beginCalls    int
	completeFails bool
}

func (f *fakeInquiryStore) Create(_ context.Context, _ *models.Inquiry) error { return nil }

func (f *fakeInquiryStore) GetByID(_ context.Context, id primitive.ObjectID) (*models.Inquiry, error) {
	if f.inquiry == nil || f.inquiry.ID != id {
		return nil, mongo.ErrNoDocuments
	}
	copied := *f.inquiry
	return &copied, nil
}

func (f *fakeInquiryStore) Update(_ context.Context, inquiry *models.Inquiry) error {
	f.inquiry = inquiry
	return nil
}

func (f *fakeInquiryStore) Delete(_ context.Context, _ primitive.ObjectID) error { return nil }

func (f *fakeInquiryStore) Find(_ context.Context, _ repository.InquiryFilter) ([]models.Inquiry, int64, error) {
	return nil, 0, nil
}

func (f *fakeInquiryStore) Recent(_ context.Context, _ int64) ([]models.Inquiry, error) {
	return nil, nil
}

func (f *fakeInquiryStore) AddCommunication(_ context.Context, _ primitive.ObjectID, _ models.Communication, _ string, _ time.Time) (*models.Inquiry, error) {
	return f.inquiry, nil
}

func (f *fakeInquiryStore) BeginConversion(_ context.Context, id primitive.ObjectID, actor string, now time.Time) (bool, error) {
	f.beginCalls++
	if f.inquiry == nil || f.inquiry.ID != id || f.inquiry.IsConverted() {
		return false, nil
	}
	f.inquiry.Status = models.InquiryConverted
	f.inquiry.ConversionDate = &now
	f.inquiry.UpdatedBy = actor
	return true, nil
}

func (f *fakeInquiryStore) CompleteConversion(_ context.Context, _ primitive.ObjectID, clientID, eventID *primitive.ObjectID) (*models.Inquiry, error) {
	if f.completeFails {
		return nil, mongo.ErrClientDisconnected
	}
	f.inquiry.ConvertedToClient = clientID
	f.inquiry.ConvertedToEvent = eventID
	copied := *f.inquiry
	return &copied, nil
}

func (f *fakeInquiryStore) RevertConversion(_ context.Context, _ primitive.ObjectID, previous models.InquiryStatus) error {
	f.inquiry.Status = previous
	f.inquiry.ConversionDate = nil
	return nil
}

func (f *fakeInquiryStore) CountAll(_ context.Context) (int64, error) { return 0, nil }

func (f *fakeInquiryStore) CountByStatus(_ context.Context, _ models.InquiryStatus) (int64, error) {
	return 0, nil
}

func (f *fakeInquiryStore) CountCreatedSince(_ context.Context, _ time.Time) (int64, error) {
	return 0, nil
}

type fakeClientStore struct {
	created []*models.Client
	failing bool
}

func (f *fakeClientStore) Create(_ context.Context, client *models.Client) error {
	if f.failing {
		return mongo.ErrClientDisconnected
	}
	client.ID = primitive.NewObjectID()
	f.created = append(f.created, client)
	return nil
}

func (f *fakeClientStore) GetByID(_ context.Context, _ primitive.ObjectID) (*models.Client, error) {
	return nil, mongo.ErrNoDocuments
}

type fakeEventStore struct {
	created []*models.Event
}

func (f *fakeEventStore) Create(_ context.Context, event *models.Event) error {
	event.ID = primitive.NewObjectID()
	f.created = append(f.created, event)
	return nil
}

func (f *fakeEventStore) GetByID(_ context.Context, _ primitive.ObjectID) (*models.Event, error) {
	return nil, mongo.ErrNoDocuments
}

func testInquiry() *models.Inquiry {
	return &models.Inquiry{
		ID:         primitive.NewObjectID(),
		FullName:   "Jane Doe",
		Email:      "jane@example.com",
		Phone:      "+1 555 0100",
		EventType:  "wedding",
		EventDate:  time.Date(2025, 9, 20, 0, 0, 0, 0, time.UTC),
		GuestCount: 120,
		Message:    "Outdoor ceremony if possible",
		Status:     models.InquiryQualified,
		Priority:   models.PriorityMedium,
		LeadSource: "website",
	}
}

func newTestConversionService(inquiries *fakeInquiryStore, clients *fakeClientStore, events *fakeEventStore) ConversionService {
	return &conversionService{
		inquiries: inquiries,
		clients:   clients,
		events:    events,
		now:       func() time.Time { return time.Date(2025, 7, 15, 12, 0, 0, 0, time.UTC) },
	}
}

var testActor = &models.Principal{ID: "staff-1", Role: "admin"}

func TestConvert_ClientOnly(t *testing.T) {
	inquiries := &fakeInquiryStore{inquiry: testInquiry()}
	clients := &fakeClientStore{}
	events := &fakeEventStore{}
	svc := newTestConversionService(inquiries, clients, events)

	result, err := svc.Convert(context.Background(), inquiries.inquiry.ID.Hex(), true, false, testActor)
	if err != nil {
		t.Fatalf("Convert returned %v", err)
	}

	if result.Client == nil {
		t.Fatal("Client is nil")
	}
	if result.Event != nil {
		t.Error("Event created without being requested")
	}
	if result.Inquiry.Status != models.InquiryConverted {
		t.Errorf("Status = %q, want converted", result.Inquiry.Status)
	}
	if result.Inquiry.ConvertedToClient == nil || *result.Inquiry.ConvertedToClient != result.Client.ID {
		t.Error("ConvertedToClient does not reference the created client")
	}
	if result.Inquiry.ConversionDate == nil {
		t.Error("ConversionDate is not set")
	}
	if len(events.created) != 0 {
		t.Errorf("%d events created, want 0", len(events.created))
	}
}

func TestConvert_WithEvent(t *testing.T) {
	inquiries := &fakeInquiryStore{inquiry: testInquiry()}
	clients := &fakeClientStore{}
	events := &fakeEventStore{}
	svc := newTestConversionService(inquiries, clients, events)

	result, err := svc.Convert(context.Background(), inquiries.inquiry.ID.Hex(), true, true, testActor)
	if err != nil {
		t.Fatalf("Convert returned %v", err)
	}

	if result.Event == nil {
		t.Fatal("Event is nil")
	}
	if result.Event.Title != "Jane Doe - wedding" {
		t.Errorf("Event title = %q, want %q", result.Event.Title, "Jane Doe - wedding")
	}
	if result.Event.Client != result.Client.ID {
		t.Error("Event is not linked to the created client")
	}
	if result.Inquiry.ConvertedToEvent == nil || *result.Inquiry.ConvertedToEvent != result.Event.ID {
		t.Error("ConvertedToEvent does not reference the created event")
	}
}

func TestConvert_AlreadyConverted(t *testing.T) {
	inq := testInquiry()
	inq.Status = models.InquiryConverted
	inquiries := &fakeInquiryStore{inquiry: inq}
	clients := &fakeClientStore{}
	events := &fakeEventStore{}
	svc := newTestConversionService(inquiries, clients, events)

	_, err := svc.Convert(context.Background(), inq.ID.Hex(), true, true, testActor)
	if !apperrors.IsConflict(err) {
		t.Errorf("Convert(converted) = %v, want conflict", err)
	}
	if len(clients.created) != 0 {
		t.Errorf("%d clients created for an already converted inquiry, want 0", len(clients.created))
	}
}

func TestConvert_SecondCallCreatesNothing(t *testing.T) {
	inquiries := &fakeInquiryStore{inquiry: testInquiry()}
	clients := &fakeClientStore{}
	events := &fakeEventStore{}
	svc := newTestConversionService(inquiries, clients, events)

	if _, err := svc.Convert(context.Background(), inquiries.inquiry.ID.Hex(), true, true, testActor); err != nil {
		t.Fatalf("first Convert returned %v", err)
	}
	_, err := svc.Convert(context.Background(), inquiries.inquiry.ID.Hex(), true, true, testActor)
	if !apperrors.IsConflict(err) {
		t.Errorf("second Convert = %v, want conflict", err)
	}

	if len(clients.created) != 1 {
		t.Errorf("%d clients created, want 1", len(clients.created))
	}
	if len(events.created) != 1 {
		t.Errorf("%d events created, want 1", len(events.created))
	}
}

func TestConvert_EventRequiresClient(t *testing.T) {
	inquiries := &fakeInquiryStore{inquiry: testInquiry()}
	clients := &fakeClientStore{}
	events := &fakeEventStore{}
	svc := newTestConversionService(inquiries, clients, events)

	result, err := svc.Convert(context.Background(), inquiries.inquiry.ID.Hex(), false, true, testActor)
	if err != nil {
		t.Fatalf("Convert returned %v", err)
	}

	if result.Client != nil {
		t.Error("Client created without being requested")
	}
	if result.Event != nil || len(events.created) != 0 {
		t.Error("Event created without a client to link it to")
	}
	if result.Inquiry.Status != models.InquiryConverted {
		t.Errorf("Status = %q, want converted", result.Inquiry.Status)
	}
}

func TestConvert_RollsBackWhenClientInsertFails(t *testing.T) {
	inquiries := &fakeInquiryStore{inquiry: testInquiry()}
	clients := &fakeClientStore{failing: true}
	events := &fakeEventStore{}
	svc := newTestConversionService(inquiries, clients, events)

	_, err := svc.Convert(context.Background(), inquiries.inquiry.ID.Hex(), true, false, testActor)
	if err == nil {
		t.Fatal("Convert succeeded despite client insert failure")
	}
	if inquiries.inquiry.Status != models.InquiryQualified {
		t.Errorf("Status = %q after rollback, want qualified", inquiries.inquiry.Status)
	}
	if inquiries.inquiry.ConversionDate != nil {
		t.Error("ConversionDate still set after rollback")
	}
}

func TestConvert_RollsBackWhenReferenceWriteFails(t *testing.T) {
	inquiries := &fakeInquiryStore{inquiry: testInquiry(), completeFails: true}
	clients := &fakeClientStore{}
	events := &fakeEventStore{}
	svc := newTestConversionService(inquiries, clients, events)

	_, err := svc.Convert(context.Background(), inquiries.inquiry.ID.Hex(), true, false, testActor)
	if err == nil {
		t.Fatal("Convert succeeded despite failing reference write")
	}
	if inquiries.inquiry.Status != models.InquiryQualified {
		t.Errorf("Status = %q after rollback, want qualified", inquiries.inquiry.Status)
	}
	if inquiries.inquiry.ConversionDate != nil {
		t.Error("ConversionDate still set after rollback")
	}
	if inquiries.inquiry.ConvertedToClient != nil {
		t.Error("ConvertedToClient set despite failed reference write")
	}
}

func TestConvert_NotFound(t *testing.T) {
	inquiries := &fakeInquiryStore{}
	svc := newTestConversionService(inquiries, &fakeClientStore{}, &fakeEventStore{})

	_, err := svc.Convert(context.Background(), primitive.NewObjectID().Hex(), true, false, testActor)
	if !apperrors.IsNotFound(err) {
		t.Errorf("Convert(missing) = %v, want not found", err)
	}
}
