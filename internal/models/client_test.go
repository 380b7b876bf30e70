package models

import (
	"testing"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

func TestSplitFullName(t *testing.T) {
	tests := []struct {
		name  string
		in    string
		first string
		last  string
	}{
		{"two parts", "Jane Doe", "Jane", "Doe"},
		{"single name", "Madonna", "Madonna", ""},
		{"three parts", "Mary Jane Watson", "Mary", "Jane Watson"},
		{"extra spaces", "  Jane   Doe  ", "Jane", "Doe"},
		{"empty", "", "", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			first, last := SplitFullName(tt.in)
			if first != tt.first || last != tt.last {
				t.Errorf("SplitFullName(%q) = (%q, %q), want (%q, %q)", tt.in, first, last, tt.first, tt.last)
			}
		})
	}
}

func TestNewClientFromInquiry(t *testing.T) {
	inq := &Inquiry{
		FullName:   "Jane Doe",
		Email:      "jane@example.com",
		Phone:      "+15550100",
		LeadSource: "website",
		EventDate:  time.Date(2025, 9, 20, 0, 0, 0, 0, time.UTC),
	}
	actor := &Principal{ID: "staff-1", Role: "staff"}

	client := NewClientFromInquiry(inq, actor)

	if client.FirstName != "Jane" || client.LastName != "Doe" {
		t.Errorf("name = (%q, %q), want (Jane, Doe)", client.FirstName, client.LastName)
	}
	if client.Email != inq.Email {
		t.Errorf("Email = %q, want %q", client.Email, inq.Email)
	}
	if client.Status != "prospect" {
		t.Errorf("Status = %q, want prospect", client.Status)
	}
	if client.LeadSource != "website" {
		t.Errorf("LeadSource = %q, want website", client.LeadSource)
	}
	if client.CreatedBy != "staff-1" {
		t.Errorf("CreatedBy = %q, want staff-1", client.CreatedBy)
	}
}

func TestNewEventFromInquiry(t *testing.T) {
	inq := &Inquiry{
		FullName:   "Jane Doe",
		EventType:  "wedding",
		EventDate:  time.Date(2025, 9, 20, 0, 0, 0, 0, time.UTC),
		GuestCount: 120,
		Message:    "Outdoor ceremony if possible",
	}
	actor := &Principal{ID: EnvAdminID, Role: "admin"}
	clientID := primitive.ObjectID{1, 2, 3}

	event := NewEventFromInquiry(inq, clientID, actor)

	if event.Title != "Jane Doe - wedding" {
		t.Errorf("Title = %q, want %q", event.Title, "Jane Doe - wedding")
	}
	if event.Status != "planning" {
		t.Errorf("Status = %q, want planning", event.Status)
	}
	if event.GuestCount != 120 {
		t.Errorf("GuestCount = %d, want 120", event.GuestCount)
	}
	if event.Description != inq.Message {
		t.Errorf("Description = %q, want %q", event.Description, inq.Message)
	}
}
