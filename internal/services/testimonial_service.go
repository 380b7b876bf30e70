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

const testimonialCacheKey = "content:testimonials"

type TestimonialService interface {
	Create(ctx context.Context, testimonial *models.Testimonial, order *int, actor *models.Principal) (*models.Testimonial, error)
	Get(ctx context.Context, id string) (*models.Testimonial, error)
	List(ctx context.Context, includeInactive bool) ([]models.Testimonial, error)
	Update(ctx context.Context, id string, updated *models.Testimonial, actor *models.Principal) (*models.Testimonial, error)
	Delete(ctx context.Context, id string) error
	Reorder(ctx context.Context, ids []string) error
}

type testimonialService struct {
	repo  repository.TestimonialRepository
	redis *utils.RedisClient
}

func NewTestimonialService(repo repository.TestimonialRepository, redis *utils.RedisClient) TestimonialService {
	return &testimonialService{repo: repo, redis: redis}
}

func (s *testimonialService) Create(ctx context.Context, testimonial *models.Testimonial, order *int, actor *models.Principal) (*models.Testimonial, error) {
	testimonial.IsActive = true
	testimonial.CreatedBy = ""
	testimonial.UpdatedBy = ""
	if !actor.IsEnvAdmin() {
		testimonial.CreatedBy = actor.ID
	}

	next, err := NextOrder(ctx, s.repo, "", order)
	if err != nil {
		return nil, err
	}
	testimonial.Order = next

	if err := utils.ValidateStruct(testimonial); err != nil {
		return nil, err
	}
	if err := s.repo.Create(ctx, testimonial); err != nil {
		return nil, apperrors.Internal(err)
	}

	s.invalidate(ctx)
	return testimonial, nil
}

func (s *testimonialService) Get(ctx context.Context, id string) (*models.Testimonial, error) {
	objID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, apperrors.NotFound("Testimonial")
	}
	testimonial, err := s.repo.GetByID(ctx, objID)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, apperrors.NotFound("Testimonial")
		}
		return nil, apperrors.Internal(err)
	}
	return testimonial, nil
}

func (s *testimonialService) List(ctx context.Context, includeInactive bool) ([]models.Testimonial, error) {
	cacheable := !includeInactive && s.redis != nil

	if cacheable {
		var cached []models.Testimonial
		if err := s.redis.Get(ctx, testimonialCacheKey, &cached); err == nil {
			return cached, nil
		}
	}

	testimonials, err := s.repo.Find(ctx, includeInactive)
	if err != nil {
		return nil, apperrors.Internal(err)
	}

	if cacheable {
		_ = s.redis.Set(ctx, testimonialCacheKey, testimonials, contentCacheTTL)
	}
	return testimonials, nil
}

func (s *testimonialService) Update(ctx context.Context, id string, updated *models.Testimonial, actor *models.Principal) (*models.Testimonial, error) {
	existing, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	existing.Quote = updated.Quote
	existing.Author = updated.Author
	existing.Role = updated.Role
	existing.Event = updated.Event
	existing.IsActive = updated.IsActive
	existing.Order = updated.Order
	existing.UpdatedBy = ""
	if !actor.IsEnvAdmin() {
		existing.UpdatedBy = actor.ID
	}

	if err := utils.ValidateStruct(existing); err != nil {
		return nil, err
	}
	if err := s.repo.Update(ctx, existing); err != nil {
		return nil, apperrors.Internal(err)
	}

	s.invalidate(ctx)
	return existing, nil
}

func (s *testimonialService) Delete(ctx context.Context, id string) error {
	objID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return apperrors.NotFound("Testimonial")
	}
	if err := s.repo.Delete(ctx, objID); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return apperrors.NotFound("Testimonial")
		}
		return apperrors.Internal(err)
	}
	s.invalidate(ctx)
	return nil
}

func (s *testimonialService) Reorder(ctx context.Context, ids []string) error {
	if err := ReorderScope(ctx, s.repo, "", ids); err != nil {
		return err
	}
	s.invalidate(ctx)
	return nil
}

func (s *testimonialService) invalidate(ctx context.Context) {
	if s.redis == nil {
		return
	}
	if err := s.redis.Delete(ctx, testimonialCacheKey); err != nil {
		log.Printf("Failed to invalidate testimonial cache: %v", err)
	}
}
