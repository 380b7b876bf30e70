package models

import (
	"testing"
	"time"
)

func TestApplyDefaults(t *testing.T) {
	inq := &Inquiry{}
	inq.ApplyDefaults()

	if inq.Status != InquiryNew {
		t.Errorf("Status = %q, want %q", inq.Status, InquiryNew)
	}
	if inq.Priority != PriorityMedium {
		t.Errorf("Priority = %q, want %q", inq.Priority, PriorityMedium)
	}
	if inq.LeadSource != "website" {
		t.Errorf("LeadSource = %q, want %q", inq.LeadSource, "website")
	}
	if inq.PreferredContactMethod != "email" {
		t.Errorf("PreferredContactMethod = %q, want %q", inq.PreferredContactMethod, "email")
	}
}

func TestApplyDefaults_KeepsExisting(t *testing.T) {
	inq := &Inquiry{Status: InquiryContacted, Priority: PriorityHigh}
	inq.ApplyDefaults()

	if inq.Status != InquiryContacted {
		t.Errorf("Status = %q, want %q", inq.Status, InquiryContacted)
	}
	if inq.Priority != PriorityHigh {
		t.Errorf("Priority = %q, want %q", inq.Priority, PriorityHigh)
	}
}

func TestAddCommunication(t *testing.T) {
	inq := &Inquiry{FollowUpCount: 2}
	now := time.Date(2025, 7, 15, 10, 30, 0, 0, time.UTC)

	inq.AddCommunication(Communication{Type: "phone", Direction: "outbound", Subject: "Follow up"}, now)

	if len(inq.Communications) != 1 {
		t.Fatalf("len(Communications) = %d, want 1", len(inq.Communications))
	}
	if inq.Communications[0].CreatedAt != now {
		t.Errorf("CreatedAt = %v, want %v", inq.Communications[0].CreatedAt, now)
	}
	if inq.LastContactDate == nil || !inq.LastContactDate.Equal(now) {
		t.Errorf("LastContactDate = %v, want %v", inq.LastContactDate, now)
	}
	if inq.FollowUpCount != 3 {
		t.Errorf("FollowUpCount = %d, want 3", inq.FollowUpCount)
	}
	if inq.Status != "" {
		t.Errorf("Status changed to %q, want unchanged", inq.Status)
	}
}

func TestMarkAsLost(t *testing.T) {
	inq := &Inquiry{Status: InquiryQualified}
	inq.MarkAsLost("Went with a competitor")

	if inq.Status != InquiryLost {
		t.Errorf("Status = %q, want %q", inq.Status, InquiryLost)
	}
	if inq.Notes != "Lost Reason: Went with a competitor" {
		t.Errorf("Notes = %q", inq.Notes)
	}
}

func TestMarkAsLost_AppendsToNotes(t *testing.T) {
	inq := &Inquiry{Status: InquiryContacted, Notes: "Called twice"}
	inq.MarkAsLost("Budget too low")

	want := "Called twice\n\nLost Reason: Budget too low"
	if inq.Notes != want {
		t.Errorf("Notes = %q, want %q", inq.Notes, want)
	}
}

func TestMarkAsLost_NoReason(t *testing.T) {
	inq := &Inquiry{Status: InquiryNew, Notes: "Existing"}
	inq.MarkAsLost("")

	if inq.Status != InquiryLost {
		t.Errorf("Status = %q, want %q", inq.Status, InquiryLost)
	}
	if inq.Notes != "Existing" {
		t.Errorf("Notes = %q, want unchanged", inq.Notes)
	}
}

func TestDaysSinceInquiry(t *testing.T) {
	inq := &Inquiry{CreatedAt: time.Date(2025, 7, 1, 12, 0, 0, 0, time.UTC)}
	now := time.Date(2025, 7, 8, 6, 0, 0, 0, time.UTC)

	if got := inq.DaysSinceInquiry(now); got != 6 {
		t.Errorf("DaysSinceInquiry = %d, want 6", got)
	}
}

func TestDaysUntilEvent(t *testing.T) {
	inq := &Inquiry{EventDate: time.Date(2025, 8, 1, 0, 0, 0, 0, time.UTC)}

	now := time.Date(2025, 7, 30, 18, 0, 0, 0, time.UTC)
	if got := inq.DaysUntilEvent(now); got != 2 {
		t.Errorf("DaysUntilEvent = %d, want 2", got)
	}

	past := time.Date(2025, 8, 4, 0, 0, 0, 0, time.UTC)
	if got := inq.DaysUntilEvent(past); got != -3 {
		t.Errorf("DaysUntilEvent after event = %d, want -3", got)
	}
}

func TestIsConverted(t *testing.T) {
	inq := &Inquiry{Status: InquiryQualified}
	if inq.IsConverted() {
		t.Error("IsConverted = true for qualified inquiry")
	}
	inq.Status = InquiryConverted
	if !inq.IsConverted() {
		t.Error("IsConverted = false for converted inquiry")
	}
}
