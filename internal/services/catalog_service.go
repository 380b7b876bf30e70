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

const (
	catalogCacheKey = "content:services"

	// Shared TTL for cached public content listings.
	contentCacheTTL = dashboardCacheTTL
)

type CatalogService interface {
	Create(ctx context.Context, service *models.Service, order *int, actor *models.Principal) (*models.Service, error)
	Get(ctx context.Context, id string) (*models.Service, error)
	List(ctx context.Context, category string, includeInactive bool) ([]models.Service, error)
	Update(ctx context.Context, id string, updated *models.Service, actor *models.Principal) (*models.Service, error)
	Delete(ctx context.Context, id string) error
	Reorder(ctx context.Context, category string, ids []string) error
	Categories(ctx context.Context) ([]string, error)
}

type catalogService struct {
	repo  repository.ServiceRepository
	redis *utils.RedisClient
}

func NewCatalogService(repo repository.ServiceRepository, redis *utils.RedisClient) CatalogService {
	return &catalogService{repo: repo, redis: redis}
}

// Create appends the entry at the end of its category unless an
// explicit order was supplied.
func (s *catalogService) Create(ctx context.Context, service *models.Service, order *int, actor *models.Principal) (*models.Service, error) {
	service.Category = models.NormalizeCategory(service.Category)
	service.IsActive = true
	service.CreatedBy = ""
	service.UpdatedBy = ""
	if !actor.IsEnvAdmin() {
		service.CreatedBy = actor.ID
	}

	next, err := NextOrder(ctx, s.repo, service.Category, order)
	if err != nil {
		return nil, err
	}
	service.Order = next

	if err := utils.ValidateStruct(service); err != nil {
		return nil, err
	}
	if err := s.repo.Create(ctx, service); err != nil {
		return nil, apperrors.Internal(err)
	}

	s.invalidate(ctx)
	return service, nil
}

func (s *catalogService) Get(ctx context.Context, id string) (*models.Service, error) {
	objID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, apperrors.NotFound("Service")
	}
	service, err := s.repo.GetByID(ctx, objID)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, apperrors.NotFound("Service")
		}
		return nil, apperrors.Internal(err)
	}
	return service, nil
}

// List caches the unfiltered public view; filtered and admin listings
// always hit the database.
func (s *catalogService) List(ctx context.Context, category string, includeInactive bool) ([]models.Service, error) {
	category = models.NormalizeCategory(category)
	cacheable := category == "" && !includeInactive && s.redis != nil

	if cacheable {
		var cached []models.Service
		if err := s.redis.Get(ctx, catalogCacheKey, &cached); err == nil {
			return cached, nil
		}
	}

	services, err := s.repo.Find(ctx, category, includeInactive)
	if err != nil {
		return nil, apperrors.Internal(err)
	}

	if cacheable {
		_ = s.redis.Set(ctx, catalogCacheKey, services, contentCacheTTL)
	}
	return services, nil
}

func (s *catalogService) Update(ctx context.Context, id string, updated *models.Service, actor *models.Principal) (*models.Service, error) {
	existing, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	existing.Title = updated.Title
	existing.Description = updated.Description
	existing.Category = models.NormalizeCategory(updated.Category)
	existing.Price = updated.Price
	existing.Icon = updated.Icon
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

func (s *catalogService) Delete(ctx context.Context, id string) error {
	objID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return apperrors.NotFound("Service")
	}
	if err := s.repo.Delete(ctx, objID); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return apperrors.NotFound("Service")
		}
		return apperrors.Internal(err)
	}
	s.invalidate(ctx)
	return nil
}

// Reorder ranks the submitted ids within one category.
func (s *catalogService) Reorder(ctx context.Context, category string, ids []string) error {
	category = models.NormalizeCategory(category)
	if category == "" {
		return apperrors.ValidationField("category", "is required")
	}
	if err := ReorderScope(ctx, s.repo, category, ids); err != nil {
		return err
	}
	s.invalidate(ctx)
	return nil
}

func (s *catalogService) Categories(ctx context.Context) ([]string, error) {
	categories, err := s.repo.DistinctCategories(ctx)
	if err != nil {
		return nil, apperrors.Internal(err)
	}
	return categories, nil
}

func (s *catalogService) invalidate(ctx context.Context) {
	if s.redis == nil {
		return
	}
	if err := s.redis.Delete(ctx, catalogCacheKey); err != nil {
		log.Printf("Failed to invalidate services cache: %v", err)
	}
}
