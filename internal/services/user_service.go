package services

import (
	"context"
	"errors"
	"log"

	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"event-crm/internal/models"
	"event-crm/internal/repository"
	"event-crm/internal/utils"
	"event-crm/pkg/apperrors"
)

// UserService manages stored staff accounts. Only admins reach these
// operations; the route layer enforces that.
type UserService interface {
	List(ctx context.Context) ([]models.User, error)
	Create(ctx context.Context, user *models.User) (*models.User, error)
	Update(ctx context.Context, id string, updated *models.User) (*models.User, error)
	Deactivate(ctx context.Context, id string) error
}

type userService struct {
	repo   repository.UserRepository
	mailer Mailer
}

func NewUserService(repo repository.UserRepository, mailer Mailer) UserService {
	return &userService{repo: repo, mailer: mailer}
}

func (s *userService) List(ctx context.Context) ([]models.User, error) {
	users, err := s.repo.List(ctx)
	if err != nil {
		return nil, apperrors.Internal(err)
	}
	for i := range users {
		users[i].Password = ""
	}
	return users, nil
}

// Create provisions an account with a generated temporary password and
// mails it to the new user. The caller never chooses the password.
func (s *userService) Create(ctx context.Context, user *models.User) (*models.User, error) {
	if _, err := s.repo.FindByUsername(ctx, user.Username); err == nil {
		return nil, apperrors.Conflict("Username is already taken")
	} else if !errors.Is(err, mongo.ErrNoDocuments) {
		return nil, apperrors.Internal(err)
	}
	if _, err := s.repo.FindByEmail(ctx, user.Email); err == nil {
		return nil, apperrors.Conflict("Email is already registered")
	} else if !errors.Is(err, mongo.ErrNoDocuments) {
		return nil, apperrors.Internal(err)
	}

	tempPassword := utils.GenerateCode(12)
	user.Password = tempPassword
	if user.Role == "" {
		user.Role = "staff"
	}
	user.IsActive = true
	user.ResetRequired = true

	if err := utils.ValidateStruct(user); err != nil {
		return nil, err
	}
	if err := user.HashPassword(); err != nil {
		return nil, apperrors.Internal(err)
	}
	if err := s.repo.Create(ctx, user); err != nil {
		return nil, apperrors.Internal(err)
	}

	if s.mailer != nil {
		email := user.Email
		name := user.Principal().DisplayName
		go func() {
			if err := s.mailer.SendWelcome(email, name, tempPassword); err != nil {
				log.Printf("Failed to send welcome email to %s: %v", email, err)
			}
		}()
	}

	created := *user
	created.Password = ""
	return &created, nil
}

func (s *userService) Update(ctx context.Context, id string, updated *models.User) (*models.User, error) {
	existing, err := s.load(ctx, id)
	if err != nil {
		return nil, err
	}

	existing.FirstName = updated.FirstName
	existing.LastName = updated.LastName
	if updated.Email != "" {
		existing.Email = updated.Email
	}
	if updated.Role != "" {
		existing.Role = updated.Role
	}
	existing.IsActive = updated.IsActive

	if err := utils.ValidateStruct(existing); err != nil {
		return nil, err
	}
	if err := s.repo.Update(ctx, existing); err != nil {
		return nil, apperrors.Internal(err)
	}

	result := *existing
	result.Password = ""
	return &result, nil
}

// Deactivate disables the account instead of deleting it, so audit
// references to the user stay resolvable.
func (s *userService) Deactivate(ctx context.Context, id string) error {
	existing, err := s.load(ctx, id)
	if err != nil {
		return err
	}
	existing.IsActive = false
	if err := s.repo.Update(ctx, existing); err != nil {
		return apperrors.Internal(err)
	}
	return nil
}

func (s *userService) load(ctx context.Context, id string) (*models.User, error) {
	objID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, apperrors.NotFound("User")
	}
	user, err := s.repo.GetByID(ctx, objID)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, apperrors.NotFound("User")
		}
		return nil, apperrors.Internal(err)
	}
	return user, nil
}
