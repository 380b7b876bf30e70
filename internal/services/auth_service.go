package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"event-crm/internal/config"
	"event-crm/internal/models"
	"event-crm/internal/repository"
	"event-crm/internal/utils"
	"event-crm/pkg/apperrors"
)

// LoginResult is the token pair plus the authenticated identity.
type LoginResult struct {
	Token        string            `json:"token"`
	RefreshToken string            `json:"refreshToken"`
	User         *models.Principal `json:"user"`
}

// AuthService authenticates the environment-configured admin and stored
// staff users behind one principal shape. Authorization never depends
// on which provider resolved the principal.
type AuthService struct {
	userRepo repository.UserRepository
	jwtUtil  *utils.JWTUtil
	redis    *utils.RedisClient
	cfg      config.AuthConfig
}

func NewAuthService(userRepo repository.UserRepository, jwtUtil *utils.JWTUtil, redis *utils.RedisClient, cfg config.AuthConfig) *AuthService {
	return &AuthService{userRepo: userRepo, jwtUtil: jwtUtil, redis: redis, cfg: cfg}
}

func (s *AuthService) envAdminPrincipal() *models.Principal {
	return &models.Principal{
		ID:          models.EnvAdminID,
		Username:    s.cfg.AdminUsername,
		Role:        "admin",
		Email:       s.cfg.AdminEmail,
		DisplayName: "Admin",
	}
}

// Login checks the environment admin credential first, then stored
// users by username. Both failures collapse to the same error so the
// response does not reveal which accounts exist.
func (s *AuthService) Login(ctx context.Context, username, password string) (*LoginResult, error) {
	if username == s.cfg.AdminUsername && password == s.cfg.AdminPassword {
		return s.issueTokens(s.envAdminPrincipal())
	}

	user, err := s.userRepo.FindByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, apperrors.Unauthorized("Invalid credentials")
		}
		return nil, apperrors.Internal(err)
	}
	if !user.IsActive {
		return nil, apperrors.Unauthorized("Invalid credentials")
	}
	if err := user.ComparePassword(password); err != nil {
		return nil, apperrors.Unauthorized("Invalid credentials")
	}

	return s.issueTokens(user.Principal())
}

func (s *AuthService) issueTokens(principal *models.Principal) (*LoginResult, error) {
	token, err := s.jwtUtil.GenerateAccessToken(principal.ID, principal.Role)
	if err != nil {
		return nil, apperrors.Internal(err)
	}
	refresh, err := s.jwtUtil.GenerateRefreshToken(principal.ID, principal.Role)
	if err != nil {
		return nil, apperrors.Internal(err)
	}
	return &LoginResult{Token: token, RefreshToken: refresh, User: principal}, nil
}

// Refresh exchanges a valid refresh token for a fresh access token.
func (s *AuthService) Refresh(ctx context.Context, refreshToken string) (string, error) {
	claims, err := s.jwtUtil.ValidateRefreshToken(refreshToken)
	if err != nil {
		return "", apperrors.Unauthorized("Invalid refresh token")
	}
	principal, err := s.ResolvePrincipal(ctx, claims.Subject)
	if err != nil {
		return "", apperrors.Unauthorized("Invalid refresh token")
	}
	token, err := s.jwtUtil.GenerateAccessToken(principal.ID, principal.Role)
	if err != nil {
		return "", apperrors.Internal(err)
	}
	return token, nil
}

// Logout blacklists the access token in Redis until it would have
// expired anyway.
func (s *AuthService) Logout(ctx context.Context, accessToken string) error {
	claims, err := s.jwtUtil.ValidateAccessToken(accessToken)
	if err != nil {
		// Already invalid; nothing to revoke.
		return nil
	}
	ttl := time.Until(claims.ExpiresAt)
	if ttl <= 0 {
		return nil
	}
	if s.redis == nil {
		return nil
	}
	key := fmt.Sprintf("blacklist:%s", accessToken)
	if err := s.redis.Set(ctx, key, true, ttl); err != nil {
		return apperrors.Internal(err)
	}
	return nil
}

// ResolvePrincipal turns a token subject into the acting principal,
// using the environment provider for the synthetic admin subject and
// the user store for everything else.
func (s *AuthService) ResolvePrincipal(ctx context.Context, subject string) (*models.Principal, error) {
	if subject == models.EnvAdminID {
		return s.envAdminPrincipal(), nil
	}

	objID, err := primitive.ObjectIDFromHex(subject)
	if err != nil {
		return nil, apperrors.Unauthorized("Invalid token subject")
	}
	user, err := s.userRepo.GetByID(ctx, objID)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, apperrors.Unauthorized("Unknown user")
		}
		return nil, apperrors.Internal(err)
	}
	if !user.IsActive {
		return nil, apperrors.Unauthorized("Account is disabled")
	}
	return user.Principal(), nil
}

// Profile returns the display profile for the current principal.
func (s *AuthService) Profile(ctx context.Context, principal *models.Principal) (*models.Principal, error) {
	return s.ResolvePrincipal(ctx, principal.ID)
}

// ChangePassword updates a stored user's password. The environment
// admin has no stored record to update.
func (s *AuthService) ChangePassword(ctx context.Context, principal *models.Principal, oldPassword, newPassword string) error {
	if principal.IsEnvAdmin() {
		return apperrors.Forbidden("The environment admin credential is managed outside the application")
	}
	if len(newPassword) < 6 {
		return apperrors.ValidationField("newPassword", "must be at least 6 characters")
	}

	objID, err := primitive.ObjectIDFromHex(principal.ID)
	if err != nil {
		return apperrors.Unauthorized("Invalid token subject")
	}
	user, err := s.userRepo.GetByID(ctx, objID)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return apperrors.NotFound("User")
		}
		return apperrors.Internal(err)
	}
	if err := user.ComparePassword(oldPassword); err != nil {
		return apperrors.Unauthorized("Invalid old password")
	}

	user.Password = newPassword
	if err := user.HashPassword(); err != nil {
		return apperrors.Internal(err)
	}
	user.ResetRequired = false
	if err := s.userRepo.Update(ctx, user); err != nil {
		return apperrors.Internal(err)
	}
	return nil
}

// UpdateProfile applies the allowed profile fields for a stored user.
func (s *AuthService) UpdateProfile(ctx context.Context, principal *models.Principal, firstName, lastName, email string) error {
	if principal.IsEnvAdmin() {
		return apperrors.Forbidden("The environment admin profile cannot be updated")
	}

	objID, err := primitive.ObjectIDFromHex(principal.ID)
	if err != nil {
		return apperrors.Unauthorized("Invalid token subject")
	}
	fields := bson.M{}
	if firstName != "" {
		fields["first_name"] = firstName
	}
	if lastName != "" {
		fields["last_name"] = lastName
	}
	if email != "" {
		fields["email"] = email
	}
	if len(fields) == 0 {
		return nil
	}
	if err := s.userRepo.UpdateFields(ctx, objID, fields); err != nil {
		return apperrors.Internal(err)
	}
	return nil
}
