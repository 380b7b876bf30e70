package models

import (
	"fmt"
	"math"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type InquiryStatus string

const (
	InquiryNew          InquiryStatus = "new"
	InquiryContacted    InquiryStatus = "contacted"
	InquiryQualified    InquiryStatus = "qualified"
	InquiryProposalSent InquiryStatus = "proposal_sent"
	InquiryConverted    InquiryStatus = "converted"
	InquiryLost         InquiryStatus = "lost"
	InquirySpam         InquiryStatus = "spam"
)

type Priority string

const (
	PriorityLow    Priority = "low"
	PriorityMedium Priority = "medium"
	PriorityHigh   Priority = "high"
	PriorityUrgent Priority = "urgent"
)

// Communication is one entry of the append-only contact log. Entries are
// never reordered or deleted through the normal workflow.
type Communication struct {
	Type      string    `bson:"type" json:"type" validate:"required,oneof=email phone meeting text note"`
	Direction string    `bson:"direction" json:"direction" validate:"required,oneof=inbound outbound"`
	Subject   string    `bson:"subject" json:"subject" validate:"required,max=200"`
	Content   string    `bson:"content,omitempty" json:"content,omitempty" validate:"omitempty,max=5000"`
	CreatedBy string    `bson:"created_by" json:"createdBy" validate:"required"`
	CreatedAt time.Time `bson:"created_at" json:"createdAt"`
}

type BudgetRange struct {
	Min float64 `bson:"min,omitempty" json:"min,omitempty" validate:"min=0"`
	Max float64 `bson:"max,omitempty" json:"max,omitempty" validate:"min=0"`
}

type VenuePreferences struct {
	IndoorOutdoor string `bson:"indoor_outdoor,omitempty" json:"indoorOutdoor,omitempty" validate:"omitempty,oneof=indoor outdoor both no_preference"`
	Location      string `bson:"location,omitempty" json:"location,omitempty" validate:"omitempty,max=100"`
	Accessibility bool   `bson:"accessibility" json:"accessibility"`
}

type MarketingConsent struct {
	Email bool `bson:"email" json:"email"`
	SMS   bool `bson:"sms" json:"sms"`
	Phone bool `bson:"phone" json:"phone"`
}

// Inquiry is a prospective customer's event-planning lead captured from
// public intake and worked by staff until it is converted or closed.
type Inquiry struct {
	ID primitive.ObjectID `bson:"_id,omitempty" json:"id"`

	// Lead fields
	FullName string `bson:"full_name" json:"fullName" validate:"required,max=100"`
	Email    string `bson:"email" json:"email" validate:"required,email"`
	Phone    string `bson:"phone" json:"phone" validate:"required,phone"`
	Message  string `bson:"message,omitempty" json:"message,omitempty" validate:"omitempty,max=2000"`

	// Event fields
	EventType           string            `bson:"event_type" json:"eventType" validate:"required,oneof=wedding engagement corporate_event private_celebration bar_mitzvah nonprofits birthday_party anniversary other"`
	EventDate           time.Time         `bson:"event_date" json:"eventDate" validate:"required"`
	GuestCount          int               `bson:"guest_count" json:"guestCount" validate:"required,min=1"`
	BudgetRange         *BudgetRange      `bson:"budget_range,omitempty" json:"budgetRange,omitempty"`
	VenuePreferences    *VenuePreferences `bson:"venue_preferences,omitempty" json:"venuePreferences,omitempty"`
	DietaryRequirements []string          `bson:"dietary_requirements,omitempty" json:"dietaryRequirements,omitempty" validate:"dive,oneof=vegetarian vegan gluten_free dairy_free nut_allergy kosher halal other"`
	ServicesInterested  []string          `bson:"services_interested,omitempty" json:"servicesInterested,omitempty" validate:"dive,oneof=catering venue_rental audio_visual decoration entertainment photography transportation full_service"`
	SpecialRequests     string            `bson:"special_requests,omitempty" json:"specialRequests,omitempty" validate:"omitempty,max=1000"`

	// Contact preferences
	PreferredContactMethod string `bson:"preferred_contact_method,omitempty" json:"preferredContactMethod,omitempty" validate:"omitempty,oneof=email phone text any"`
	BestTimeToContact      string `bson:"best_time_to_contact,omitempty" json:"bestTimeToContact,omitempty" validate:"omitempty,oneof=morning afternoon evening any"`

	// Pipeline fields
	Status     InquiryStatus `bson:"status" json:"status" validate:"required,oneof=new contacted qualified proposal_sent converted lost spam"`
	Priority   Priority      `bson:"priority" json:"priority" validate:"required,oneof=low medium high urgent"`
	AssignedTo string        `bson:"assigned_to,omitempty" json:"assignedTo,omitempty"`

	// Follow-up fields
	LastContactDate  *time.Time `bson:"last_contact_date,omitempty" json:"lastContactDate,omitempty"`
	NextFollowUpDate *time.Time `bson:"next_follow_up_date,omitempty" json:"nextFollowUpDate,omitempty"`
	FollowUpCount    int        `bson:"follow_up_count" json:"followUpCount" validate:"min=0"`

	Communications []Communication `bson:"communications,omitempty" json:"communications,omitempty"`

	// Conversion fields, set together exactly once by the conversion
	// workflow. Invariant: status == converted iff ConvertedToClient is
	// set, and ConversionDate is set iff status == converted.
	ConvertedToClient *primitive.ObjectID `bson:"converted_to_client,omitempty" json:"convertedToClient,omitempty"`
	ConvertedToEvent  *primitive.ObjectID `bson:"converted_to_event,omitempty" json:"convertedToEvent,omitempty"`
	ConversionDate    *time.Time          `bson:"conversion_date,omitempty" json:"conversionDate,omitempty"`

	// Tracking
	LeadSource       string            `bson:"lead_source" json:"leadSource" validate:"required,oneof=website referral social_media google_ads facebook_ads email_campaign phone_call walk_in event other"`
	ReferredBy       string            `bson:"referred_by,omitempty" json:"referredBy,omitempty" validate:"omitempty,max=100"`
	IPAddress        string            `bson:"ip_address,omitempty" json:"ipAddress,omitempty"`
	UserAgent        string            `bson:"user_agent,omitempty" json:"userAgent,omitempty"`
	MarketingConsent *MarketingConsent `bson:"marketing_consent,omitempty" json:"marketingConsent,omitempty"`

	// Internal notes
	Notes string   `bson:"notes,omitempty" json:"notes,omitempty" validate:"omitempty,max=2000"`
	Tags  []string `bson:"tags,omitempty" json:"tags,omitempty" validate:"dive,max=50"`

	CreatedBy string    `bson:"created_by,omitempty" json:"createdBy,omitempty"`
	UpdatedBy string    `bson:"updated_by,omitempty" json:"updatedBy,omitempty"`
	CreatedAt time.Time `bson:"created_at" json:"createdAt"`
	UpdatedAt time.Time `bson:"updated_at" json:"updatedAt"`
}

// ApplyDefaults fills the pipeline defaults for a fresh record.
func (i *Inquiry) ApplyDefaults() {
	if i.Status == "" {
		i.Status = InquiryNew
	}
	if i.Priority == "" {
		i.Priority = PriorityMedium
	}
	if i.LeadSource == "" {
		i.LeadSource = "website"
	}
	if i.PreferredContactMethod == "" {
		i.PreferredContactMethod = "email"
	}
	if i.BestTimeToContact == "" {
		i.BestTimeToContact = "any"
	}
}

// AddCommunication appends an entry to the contact log and bumps the
// follow-up counters. It never touches Status.
func (i *Inquiry) AddCommunication(comm Communication, now time.Time) {
	comm.CreatedAt = now
	i.Communications = append(i.Communications, comm)
	i.LastContactDate = &now
	i.FollowUpCount++
}

// MarkAsLost moves the inquiry to lost and, when a reason is given,
// appends it to the internal notes without overwriting prior notes.
func (i *Inquiry) MarkAsLost(reason string) {
	i.Status = InquiryLost
	if reason == "" {
		return
	}
	if i.Notes != "" {
		i.Notes = fmt.Sprintf("%s\n\nLost Reason: %s", i.Notes, reason)
	} else {
		i.Notes = fmt.Sprintf("Lost Reason: %s", reason)
	}
}

// DaysSinceInquiry is the number of whole days elapsed since creation.
func (i *Inquiry) DaysSinceInquiry(now time.Time) int {
	return int(math.Floor(now.Sub(i.CreatedAt).Hours() / 24))
}

// DaysUntilEvent is the signed number of days until the event date;
// negative once the event has passed.
func (i *Inquiry) DaysUntilEvent(now time.Time) int {
	return int(math.Ceil(i.EventDate.Sub(now).Hours() / 24))
}

// IsConverted reports whether the inquiry already went through the
// conversion workflow.
func (i *Inquiry) IsConverted() bool {
	return i.Status == InquiryConverted
}
