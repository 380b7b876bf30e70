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

const aboutCacheKey = "content:about"

type AboutService interface {
	Create(ctx context.Context, item *models.AboutItem, order *int, actor *models.Principal) (*models.AboutItem, error)
	Get(ctx context.Context, id string) (*models.AboutItem, error)
	List(ctx context.Context, category string, includeInactive bool) ([]models.AboutItem, error)
	Update(ctx context.Context, id string, updated *models.AboutItem, actor *models.Principal) (*models.AboutItem, error)
	Delete(ctx context.Context, id string) error
	Reorder(ctx context.Context, category string, ids []string) error
	Categories(ctx context.Context) ([]string, error)
}

type aboutService struct {
	repo  repository.AboutItemRepository
	redis *utils.RedisClient
}

func NewAboutService(repo repository.AboutItemRepository, redis *utils.RedisClient) AboutService {
	return &aboutService{repo: repo, redis: redis}
}

func (s *aboutService) Create(ctx context.Context, item *models.AboutItem, order *int, actor *models.Principal) (*models.AboutItem, error) {
	item.Category = models.NormalizeCategory(item.Category)
	item.IsActive = true
	item.CreatedBy = ""
	item.UpdatedBy = ""
	if !actor.IsEnvAdmin() {
		item.CreatedBy = actor.ID
	}

	next, err := NextOrder(ctx, s.repo, item.Category, order)
	if err != nil {
		return nil, err
	}
	item.Order = next

	if err := utils.ValidateStruct(item); err != nil {
		return nil, err
	}
	if err := s.repo.Create(ctx, item); err != nil {
		return nil, apperrors.Internal(err)
	}

	s.invalidate(ctx)
	return item, nil
}

func (s *aboutService) Get(ctx context.Context, id string) (*models.AboutItem, error) {
	objID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, apperrors.NotFound("About item")
	}
	item, err := s.repo.GetByID(ctx, objID)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, apperrors.NotFound("About item")
		}
		return nil, apperrors.Internal(err)
	}
	return item, nil
}

func (s *aboutService) List(ctx context.Context, category string, includeInactive bool) ([]models.AboutItem, error) {
	category = models.NormalizeCategory(category)
	cacheable := category == "" && !includeInactive && s.redis != nil

	if cacheable {
		var cached []models.AboutItem
		if err := s.redis.Get(ctx, aboutCacheKey, &cached); err == nil {
			return cached, nil
		}
	}

	items, err := s.repo.Find(ctx, category, includeInactive)
	if err != nil {
		return nil, apperrors.Internal(err)
	}

	if cacheable {
		_ = s.redis.Set(ctx, aboutCacheKey, items, contentCacheTTL)
	}
	return items, nil
}

func (s *aboutService) Update(ctx context.Context, id string, updated *models.AboutItem, actor *models.Principal) (*models.AboutItem, error) {
	existing, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	existing.Title = updated.Title
	existing.Category = models.NormalizeCategory(updated.Category)
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

func (s *aboutService) Delete(ctx context.Context, id string) error {
	objID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return apperrors.NotFound("About item")
	}
	if err := s.repo.Delete(ctx, objID); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return apperrors.NotFound("About item")
		}
		return apperrors.Internal(err)
	}
	s.invalidate(ctx)
	return nil
}

func (s *aboutService) Reorder(ctx context.Context, category string, ids []string) error {
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

func (s *aboutService) Categories(ctx context.Context) ([]string, error) {
	categories, err := s.repo.DistinctCategories(ctx)
	if err != nil {
		return nil, apperrors.Internal(err)
	}
	return categories, nil
}

func (s *aboutService) invalidate(ctx context.Context) {
	if s.redis == nil {
		return
	}
	if err := s.redis.Delete(ctx, aboutCacheKey); err != nil {
		log.Printf("Failed to invalidate about cache: %v", err)
	}
}
