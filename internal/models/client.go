package models

import (
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Client is a qualified customer record, usually created by converting
// an inquiry.
type Client struct {
	ID         primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	FirstName  string             `bson:"first_name" json:"firstName" validate:"required,max=50"`
	LastName   string             `bson:"last_name,omitempty" json:"lastName,omitempty" validate:"omitempty,max=50"`
	Email      string             `bson:"email" json:"email" validate:"required,email"`
	Phone      string             `bson:"phone" json:"phone" validate:"required,phone"`
	Status     string             `bson:"status" json:"status" validate:"required,oneof=prospect active inactive"`
	LeadSource string             `bson:"lead_source,omitempty" json:"leadSource,omitempty"`
	CreatedBy  string             `bson:"created_by,omitempty" json:"createdBy,omitempty"`
	CreatedAt  time.Time          `bson:"created_at" json:"createdAt"`
	UpdatedAt  time.Time          `bson:"updated_at" json:"updatedAt"`
}

// SplitFullName splits a full name on the first whitespace run into a
// first name and the remainder as last name. The remainder may be empty.
func SplitFullName(fullName string) (string, string) {
	parts := strings.Fields(fullName)
	if len(parts) == 0 {
		return "", ""
	}
	return parts[0], strings.Join(parts[1:], " ")
}

// NewClientFromInquiry derives the prospect record the conversion
// workflow persists.
func NewClientFromInquiry(inq *Inquiry, actor *Principal) *Client {
	first, last := SplitFullName(inq.FullName)
	return &Client{
		FirstName:  first,
		LastName:   last,
		Email:      inq.Email,
		Phone:      inq.Phone,
		Status:     "prospect",
		LeadSource: inq.LeadSource,
		CreatedBy:  actor.ID,
	}
}
