package repository

import (
	"testing"
	"time"

	"go.mongodb.org/mongo-driver/bson"

	"event-crm/internal/models"
)

// Update persists with a full replace, so the marshaled document is
// exactly what ends up stored. Cleared optional fields must be absent
// from it; under the old partial $set they would silently keep their
// previous values.
func TestUpdateDocumentDropsClearedFields(t *testing.T) {
	inq := models.Inquiry{
		FullName:   "Jane Doe",
		Email:      "jane@example.com",
		Phone:      "+1 555 0100",
		EventType:  "wedding",
		EventDate:  time.Date(2025, 9, 20, 0, 0, 0, 0, time.UTC),
		GuestCount: 120,
		Status:     models.InquiryContacted,
		Priority:   models.PriorityMedium,
		LeadSource: "website",

		// Previously set, now cleared by the caller.
		AssignedTo:       "",
		NextFollowUpDate: nil,
		Notes:            "",
		Tags:             nil,
	}

	raw, err := bson.Marshal(&inq)
	if err != nil {
		t.Fatalf("Marshal returned %v", err)
	}
	var doc bson.M
	if err := bson.Unmarshal(raw, &doc); err != nil {
		t.Fatalf("Unmarshal returned %v", err)
	}

	for _, key := range []string{"assigned_to", "next_follow_up_date", "notes", "tags"} {
		if _, ok := doc[key]; ok {
			t.Errorf("%s present in replacement document, want omitted so the replace clears it", key)
		}
	}
	for _, key := range []string{"status", "full_name", "follow_up_count"} {
		if _, ok := doc[key]; !ok {
			t.Errorf("%s missing from replacement document", key)
		}
	}
}
