package services

import (
	"context"
	"testing"
	"time"

	"event-crm/internal/models"
	"event-crm/pkg/apperrors"
)

func newTestInquiryService(repo *fakeInquiryStore) InquiryService {
	return &inquiryService{
		repo: repo,
		now:  func() time.Time { return time.Date(2025, 7, 15, 12, 0, 0, 0, time.UTC) },
	}
}

func intakePayload() *models.Inquiry {
	return &models.Inquiry{
		FullName:   "Jane Doe",
		Email:      "jane@example.com",
		Phone:      "+1 555 0100",
		EventType:  "wedding",
		EventDate:  time.Date(2025, 9, 20, 0, 0, 0, 0, time.UTC),
		GuestCount: 120,
	}
}

func TestCreate_ForcesIntakeDefaults(t *testing.T) {
	repo := &fakeInquiryStore{}
	svc := newTestInquiryService(repo)

	payload := intakePayload()
	// A caller cannot smuggle pipeline state through the intake form.
	payload.Status = models.InquiryConverted
	payload.LeadSource = "referral"
	payload.FollowUpCount = 7
	payload.CreatedBy = "spoofed"

	meta := IntakeMeta{IPAddress: "203.0.113.9", UserAgent: "test-agent"}
	created, err := svc.Create(context.Background(), payload, meta, nil)
	if err != nil {
		t.Fatalf("Create returned %v", err)
	}

	if created.Status != models.InquiryNew {
		t.Errorf("Status = %q, want new", created.Status)
	}
	if created.LeadSource != "website" {
		t.Errorf("LeadSource = %q, want website", created.LeadSource)
	}
	if created.FollowUpCount != 0 {
		t.Errorf("FollowUpCount = %d, want 0", created.FollowUpCount)
	}
	if created.CreatedBy != "" {
		t.Errorf("CreatedBy = %q, want empty for anonymous intake", created.CreatedBy)
	}
	if created.IPAddress != "203.0.113.9" || created.UserAgent != "test-agent" {
		t.Errorf("request meta = (%q, %q), not captured", created.IPAddress, created.UserAgent)
	}
	if created.Priority != models.PriorityMedium {
		t.Errorf("Priority = %q, want medium default", created.Priority)
	}
}

func TestCreate_SetsCreatedByForStoredUser(t *testing.T) {
	repo := &fakeInquiryStore{}
	svc := newTestInquiryService(repo)

	actor := &models.Principal{ID: "64a000000000000000000001", Role: "staff"}
	created, err := svc.Create(context.Background(), intakePayload(), IntakeMeta{}, actor)
	if err != nil {
		t.Fatalf("Create returned %v", err)
	}
	if created.CreatedBy != actor.ID {
		t.Errorf("CreatedBy = %q, want %q", created.CreatedBy, actor.ID)
	}
}

func TestCreate_EnvAdminLeavesCreatedByEmpty(t *testing.T) {
	repo := &fakeInquiryStore{}
	svc := newTestInquiryService(repo)

	actor := &models.Principal{ID: models.EnvAdminID, Role: "admin"}
	created, err := svc.Create(context.Background(), intakePayload(), IntakeMeta{}, actor)
	if err != nil {
		t.Fatalf("Create returned %v", err)
	}
	if created.CreatedBy != "" {
		t.Errorf("CreatedBy = %q, want empty for the environment admin", created.CreatedBy)
	}
}

func TestCreate_InvalidPayload(t *testing.T) {
	repo := &fakeInquiryStore{}
	svc := newTestInquiryService(repo)

	payload := intakePayload()
	payload.Email = "not-an-email"
	payload.GuestCount = 0

	_, err := svc.Create(context.Background(), payload, IntakeMeta{}, nil)
	if !apperrors.IsValidation(err) {
		t.Errorf("Create(invalid) = %v, want validation error", err)
	}
}

func TestUpdate_RejectsManualConversion(t *testing.T) {
	existing := testInquiry()
	repo := &fakeInquiryStore{inquiry: existing}
	svc := newTestInquiryService(repo)

	updated := testInquiry()
	updated.Status = models.InquiryConverted

	_, err := svc.Update(context.Background(), existing.ID.Hex(), updated, testActor)
	if !apperrors.IsConflict(err) {
		t.Errorf("Update(status=converted) = %v, want conflict", err)
	}
}

func TestUpdate_ChangesStatus(t *testing.T) {
	existing := testInquiry()
	repo := &fakeInquiryStore{inquiry: existing}
	svc := newTestInquiryService(repo)

	updated := testInquiry()
	updated.Status = models.InquiryContacted
	updated.Priority = models.PriorityHigh

	result, err := svc.Update(context.Background(), existing.ID.Hex(), updated, testActor)
	if err != nil {
		t.Fatalf("Update returned %v", err)
	}
	if result.Status != models.InquiryContacted {
		t.Errorf("Status = %q, want contacted", result.Status)
	}
	if result.Priority != models.PriorityHigh {
		t.Errorf("Priority = %q, want high", result.Priority)
	}
	if result.UpdatedBy != testActor.ID {
		t.Errorf("UpdatedBy = %q, want %q", result.UpdatedBy, testActor.ID)
	}
}

func TestMarkAsLost_AppendsReason(t *testing.T) {
	existing := testInquiry()
	existing.Notes = "Initial call done"
	repo := &fakeInquiryStore{inquiry: existing}
	svc := newTestInquiryService(repo)

	result, err := svc.MarkAsLost(context.Background(), existing.ID.Hex(), "Chose another caterer", testActor)
	if err != nil {
		t.Fatalf("MarkAsLost returned %v", err)
	}
	if result.Status != models.InquiryLost {
		t.Errorf("Status = %q, want lost", result.Status)
	}
	want := "Initial call done\n\nLost Reason: Chose another caterer"
	if result.Notes != want {
		t.Errorf("Notes = %q, want %q", result.Notes, want)
	}
}

func TestGet_NotFound(t *testing.T) {
	repo := &fakeInquiryStore{}
	svc := newTestInquiryService(repo)

	_, err := svc.Get(context.Background(), "not-a-valid-id")
	if !apperrors.IsNotFound(err) {
		t.Errorf("Get(bad id) = %v, want not found", err)
	}
}
