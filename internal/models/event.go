package models

import (
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Event is a booked engagement for a client, optionally created by the
// conversion workflow.
type Event struct {
	ID          primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Title       string             `bson:"title" json:"title" validate:"required,max=150"`
	EventType   string             `bson:"event_type" json:"eventType" validate:"required,oneof=wedding engagement corporate_event private_celebration bar_mitzvah nonprofits birthday_party anniversary other"`
	EventDate   time.Time          `bson:"event_date" json:"eventDate" validate:"required"`
	GuestCount  int                `bson:"guest_count" json:"guestCount" validate:"required,min=1"`
	Client      primitive.ObjectID `bson:"client" json:"client" validate:"required"`
	Status      string             `bson:"status" json:"status" validate:"required,oneof=planning confirmed completed cancelled"`
	Description string             `bson:"description,omitempty" json:"description,omitempty" validate:"omitempty,max=2000"`
	CreatedBy   string             `bson:"created_by,omitempty" json:"createdBy,omitempty"`
	CreatedAt   time.Time          `bson:"created_at" json:"createdAt"`
	UpdatedAt   time.Time          `bson:"updated_at" json:"updatedAt"`
}

// NewEventFromInquiry derives the planning event linked to the client
// created during conversion.
func NewEventFromInquiry(inq *Inquiry, clientID primitive.ObjectID, actor *Principal) *Event {
	return &Event{
		Title:       fmt.Sprintf("%s - %s", inq.FullName, inq.EventType),
		EventType:   inq.EventType,
		EventDate:   inq.EventDate,
		GuestCount:  inq.GuestCount,
		Client:      clientID,
		Status:      "planning",
		Description: inq.Message,
		CreatedBy:   actor.ID,
	}
}
