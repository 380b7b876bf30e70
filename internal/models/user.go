package models

import (
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
	"golang.org/x/crypto/bcrypt"
)

// User is a stored staff account. The environment admin is not stored
// here; see Principal.
type User struct {
	ID            primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Username      string             `bson:"username" json:"username" validate:"required,min=3,max=50"`
	Email         string             `bson:"email" json:"email" validate:"required,email"`
	Password      string             `bson:"password" json:"-" validate:"required,min=6"`
	Role          string             `bson:"role" json:"role" validate:"required,oneof=admin staff"`
	FirstName     string             `bson:"first_name,omitempty" json:"firstName" validate:"omitempty,max=50"`
	LastName      string             `bson:"last_name,omitempty" json:"lastName" validate:"omitempty,max=50"`
	IsActive      bool               `bson:"is_active" json:"isActive"`
	ResetRequired bool               `bson:"reset_required" json:"resetRequired"`
	CreatedAt     time.Time          `bson:"created_at" json:"createdAt"`
	UpdatedAt     time.Time          `bson:"updated_at" json:"updatedAt"`
}

func (u *User) HashPassword() error {
	hashed, err := bcrypt.GenerateFromPassword([]byte(u.Password), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	u.Password = string(hashed)
	return nil
}

func (u *User) ComparePassword(password string) error {
	return bcrypt.CompareHashAndPassword([]byte(u.Password), []byte(password))
}

// Principal converts the stored user into the request actor shape.
func (u *User) Principal() *Principal {
	display := strings.TrimSpace(u.FirstName + " " + u.LastName)
	if display == "" {
		display = u.Username
	}
	return &Principal{
		ID:          u.ID.Hex(),
		Username:    u.Username,
		Role:        u.Role,
		Email:       u.Email,
		DisplayName: display,
	}
}
