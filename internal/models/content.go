package models

import (
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// NormalizeCategory trims and upper-cases a category name so that
// scoped ordering and grouping compare categories consistently.
func NormalizeCategory(category string) string {
	return strings.ToUpper(strings.TrimSpace(category))
}

// Service is a marketing catalog entry, ordered within its category.
type Service struct {
	ID          primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Title       string             `bson:"title" json:"title" validate:"required,max=100"`
	Description string             `bson:"description" json:"description" validate:"required,max=500"`
	Category    string             `bson:"category" json:"category" validate:"required,max=50"`
	Price       float64            `bson:"price,omitempty" json:"price,omitempty" validate:"min=0"`
	Icon        string             `bson:"icon" json:"icon" validate:"required"`
	IsActive    bool               `bson:"is_active" json:"isActive"`
	Order       int                `bson:"order" json:"order" validate:"min=0"`
	CreatedBy   string             `bson:"created_by,omitempty" json:"createdBy,omitempty"`
	UpdatedBy   string             `bson:"updated_by,omitempty" json:"updatedBy,omitempty"`
	CreatedAt   time.Time          `bson:"created_at" json:"createdAt"`
	UpdatedAt   time.Time          `bson:"updated_at" json:"updatedAt"`
}

// GalleryItem is a portfolio image, globally ordered.
type GalleryItem struct {
	ID        primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Title     string             `bson:"title,omitempty" json:"title,omitempty" validate:"omitempty,max=100"`
	ImageURL  string             `bson:"image_url" json:"imageUrl" validate:"required,url"`
	Size      string             `bson:"size" json:"size" validate:"required,oneof=square landscape"`
	IsActive  bool               `bson:"is_active" json:"isActive"`
	Order     int                `bson:"order" json:"order" validate:"min=0"`
	CreatedBy string             `bson:"created_by,omitempty" json:"createdBy,omitempty"`
	UpdatedBy string             `bson:"updated_by,omitempty" json:"updatedBy,omitempty"`
	CreatedAt time.Time          `bson:"created_at" json:"createdAt"`
	UpdatedAt time.Time          `bson:"updated_at" json:"updatedAt"`
}

// AboutItem is an "about us" content entry, ordered within its category.
type AboutItem struct {
	ID        primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Title     string             `bson:"title" json:"title" validate:"required,max=100"`
	Category  string             `bson:"category" json:"category" validate:"required,max=50"`
	Icon      string             `bson:"icon" json:"icon" validate:"required"`
	IsActive  bool               `bson:"is_active" json:"isActive"`
	Order     int                `bson:"order" json:"order" validate:"min=0"`
	CreatedBy string             `bson:"created_by,omitempty" json:"createdBy,omitempty"`
	UpdatedBy string             `bson:"updated_by,omitempty" json:"updatedBy,omitempty"`
	CreatedAt time.Time          `bson:"created_at" json:"createdAt"`
	UpdatedAt time.Time          `bson:"updated_at" json:"updatedAt"`
}

// Testimonial is a customer quote, globally ordered.
type Testimonial struct {
	ID        primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Quote     string             `bson:"quote" json:"quote" validate:"required,max=1000"`
	Author    string             `bson:"author" json:"author" validate:"required,max=100"`
	Role      string             `bson:"role" json:"role" validate:"required,max=100"`
	Event     string             `bson:"event" json:"event" validate:"required,max=50"`
	IsActive  bool               `bson:"is_active" json:"isActive"`
	Order     int                `bson:"order" json:"order" validate:"min=0"`
	CreatedBy string             `bson:"created_by,omitempty" json:"createdBy,omitempty"`
	UpdatedBy string             `bson:"updated_by,omitempty" json:"updatedBy,omitempty"`
	CreatedAt time.Time          `bson:"created_at" json:"createdAt"`
	UpdatedAt time.Time          `bson:"updated_at" json:"updatedAt"`
}
