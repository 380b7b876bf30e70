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

const galleryCacheKey = "content:gallery"

type GalleryService interface {
	Create(ctx context.Context, item *models.GalleryItem, order *int, actor *models.Principal) (*models.GalleryItem, error)
	Get(ctx context.Context, id string) (*models.GalleryItem, error)
	List(ctx context.Context, size string, includeInactive bool) ([]models.GalleryItem, error)
	Update(ctx context.Context, id string, updated *models.GalleryItem, actor *models.Principal) (*models.GalleryItem, error)
	Delete(ctx context.Context, id string) error
	Reorder(ctx context.Context, ids []string) error
}

type galleryService struct {
	repo  repository.GalleryRepository
	redis *utils.RedisClient
}

func NewGalleryService(repo repository.GalleryRepository, redis *utils.RedisClient) GalleryService {
	return &galleryService{repo: repo, redis: redis}
}

func (s *galleryService) Create(ctx context.Context, item *models.GalleryItem, order *int, actor *models.Principal) (*models.GalleryItem, error) {
	item.IsActive = true
	item.CreatedBy = ""
	item.UpdatedBy = ""
	if !actor.IsEnvAdmin() {
		item.CreatedBy = actor.ID
	}

	// Gallery ordering is a single global sequence.
	next, err := NextOrder(ctx, s.repo, "", order)
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

func (s *galleryService) Get(ctx context.Context, id string) (*models.GalleryItem, error) {
	objID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, apperrors.NotFound("Gallery item")
	}
	item, err := s.repo.GetByID(ctx, objID)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, apperrors.NotFound("Gallery item")
		}
		return nil, apperrors.Internal(err)
	}
	return item, nil
}

func (s *galleryService) List(ctx context.Context, size string, includeInactive bool) ([]models.GalleryItem, error) {
	cacheable := size == "" && !includeInactive && s.redis != nil

	if cacheable {
		var cached []models.GalleryItem
		if err := s.redis.Get(ctx, galleryCacheKey, &cached); err == nil {
			return cached, nil
		}
	}

	items, err := s.repo.Find(ctx, size, includeInactive)
	if err != nil {
		return nil, apperrors.Internal(err)
	}

	if cacheable {
		_ = s.redis.Set(ctx, galleryCacheKey, items, contentCacheTTL)
	}
	return items, nil
}

func (s *galleryService) Update(ctx context.Context, id string, updated *models.GalleryItem, actor *models.Principal) (*models.GalleryItem, error) {
	existing, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	existing.Title = updated.Title
	existing.ImageURL = updated.ImageURL
	existing.Size = updated.Size
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

func (s *galleryService) Delete(ctx context.Context, id string) error {
	objID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return apperrors.NotFound("Gallery item")
	}
	if err := s.repo.Delete(ctx, objID); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return apperrors.NotFound("Gallery item")
		}
		return apperrors.Internal(err)
	}
	s.invalidate(ctx)
	return nil
}

func (s *galleryService) Reorder(ctx context.Context, ids []string) error {
	if err := ReorderScope(ctx, s.repo, "", ids); err != nil {
		return err
	}
	s.invalidate(ctx)
	return nil
}

func (s *galleryService) invalidate(ctx context.Context) {
	if s.redis == nil {
		return
	}
	if err := s.redis.Delete(ctx, galleryCacheKey); err != nil {
		log.Printf("Failed to invalidate gallery cache: %v", err)
	}
}
