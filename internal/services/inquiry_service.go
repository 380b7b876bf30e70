package services

import (
	"context"
	"errors"
	"log"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"event-crm/internal/models"
	"event-crm/internal/repository"
	"event-crm/internal/utils"
	"event-crm/pkg/apperrors"
)

// IntakeMeta is what the transport layer knows about the requester.
type IntakeMeta struct {
	IPAddress string
	UserAgent string
}

// Pagination is the listing metadata returned next to a page of results.
type Pagination struct {
	Page  int64 `json:"page"`
	Limit int64 `json:"limit"`
	Total int64 `json:"total"`
	Pages int64 `json:"pages"`
}

// InquiryStats summarizes the pipeline by status.
type InquiryStats struct {
	Total          int64   `json:"total"`
	New            int64   `json:"new"`
	Contacted      int64   `json:"contacted"`
	Qualified      int64   `json:"qualified"`
	Converted      int64   `json:"converted"`
	ConversionRate float64 `json:"conversionRate"`
}

type InquiryService interface {
	Create(ctx context.Context, inquiry *models.Inquiry, meta IntakeMeta, actor *models.Principal) (*models.Inquiry, error)
	List(ctx context.Context, filter repository.InquiryFilter) ([]models.Inquiry, *Pagination, error)
	Get(ctx context.Context, id string) (*models.Inquiry, error)
	Update(ctx context.Context, id string, updated *models.Inquiry, actor *models.Principal) (*models.Inquiry, error)
	Delete(ctx context.Context, id string) error
	Stats(ctx context.Context) (*InquiryStats, error)
	AddCommunication(ctx context.Context, id string, comm models.Communication, actor *models.Principal) (*models.Inquiry, error)
	MarkAsLost(ctx context.Context, id string, reason string, actor *models.Principal) (*models.Inquiry, error)
}

type inquiryService struct {
	repo   repository.InquiryRepository
	redis  *utils.RedisClient
	mailer Mailer
	now    func() time.Time
}

func NewInquiryService(repo repository.InquiryRepository, redis *utils.RedisClient, mailer Mailer) InquiryService {
	return &inquiryService{repo: repo, redis: redis, mailer: mailer, now: time.Now}
}

// Create handles the public intake path. The lead source is forced to
// "website" and the requester's IP and user agent are captured for
// audit. createdBy is never caller-supplied: it is set only when the
// request was made by an authenticated stored user, and stays empty for
// anonymous submissions and for the environment admin.
func (s *inquiryService) Create(ctx context.Context, inquiry *models.Inquiry, meta IntakeMeta, actor *models.Principal) (*models.Inquiry, error) {
	inquiry.ApplyDefaults()
	inquiry.Status = models.InquiryNew
	inquiry.LeadSource = "website"
	inquiry.IPAddress = meta.IPAddress
	inquiry.UserAgent = meta.UserAgent
	inquiry.FollowUpCount = 0
	inquiry.Communications = nil
	inquiry.ConvertedToClient = nil
	inquiry.ConvertedToEvent = nil
	inquiry.ConversionDate = nil
	inquiry.CreatedBy = ""
	inquiry.UpdatedBy = ""
	if actor != nil && !actor.IsEnvAdmin() {
		inquiry.CreatedBy = actor.ID
	}

	if err := utils.ValidateStruct(inquiry); err != nil {
		return nil, err
	}

	if err := s.repo.Create(ctx, inquiry); err != nil {
		return nil, apperrors.Internal(err)
	}

	s.invalidateDashboard(ctx)

	if s.mailer != nil {
		saved := *inquiry
		go func() {
			if err := s.mailer.SendInquiryNotification(&saved); err != nil {
				log.Printf("Failed to send inquiry notification: %v", err)
			}
		}()
	}

	return inquiry, nil
}

func (s *inquiryService) List(ctx context.Context, filter repository.InquiryFilter) ([]models.Inquiry, *Pagination, error) {
	inquiries, total, err := s.repo.Find(ctx, filter)
	if err != nil {
		return nil, nil, apperrors.Internal(err)
	}

	page := filter.Page
	if page < 1 {
		page = 1
	}
	limit := filter.Limit
	if limit < 1 {
		limit = 10
	}
	pages := total / limit
	if total%limit != 0 {
		pages++
	}

	return inquiries, &Pagination{Page: page, Limit: limit, Total: total, Pages: pages}, nil
}

func (s *inquiryService) Get(ctx context.Context, id string) (*models.Inquiry, error) {
	return s.load(ctx, id)
}

// Update re-validates the whole document before committing; it allows
// any status except converted, which only the conversion workflow may
// set so the conversion invariants hold.
func (s *inquiryService) Update(ctx context.Context, id string, updated *models.Inquiry, actor *models.Principal) (*models.Inquiry, error) {
	existing, err := s.load(ctx, id)
	if err != nil {
		return nil, err
	}

	if updated.Status == models.InquiryConverted && !existing.IsConverted() {
		return nil, apperrors.Conflict("Use the convert operation to mark an inquiry as converted")
	}

	existing.FullName = updated.FullName
	existing.Email = updated.Email
	existing.Phone = updated.Phone
	existing.Message = updated.Message
	existing.EventType = updated.EventType
	existing.EventDate = updated.EventDate
	existing.GuestCount = updated.GuestCount
	existing.BudgetRange = updated.BudgetRange
	existing.VenuePreferences = updated.VenuePreferences
	existing.DietaryRequirements = updated.DietaryRequirements
	existing.ServicesInterested = updated.ServicesInterested
	existing.SpecialRequests = updated.SpecialRequests
	existing.PreferredContactMethod = updated.PreferredContactMethod
	existing.BestTimeToContact = updated.BestTimeToContact
	if updated.Status != "" {
		existing.Status = updated.Status
	}
	if updated.Priority != "" {
		existing.Priority = updated.Priority
	}
	existing.AssignedTo = updated.AssignedTo
	existing.NextFollowUpDate = updated.NextFollowUpDate
	existing.LeadSource = updated.LeadSource
	existing.ReferredBy = updated.ReferredBy
	existing.MarketingConsent = updated.MarketingConsent
	existing.Notes = updated.Notes
	existing.Tags = updated.Tags
	existing.UpdatedBy = actor.ID
	existing.ApplyDefaults()

	if err := utils.ValidateStruct(existing); err != nil {
		return nil, err
	}

	if err := s.repo.Update(ctx, existing); err != nil {
		return nil, apperrors.Internal(err)
	}

	s.invalidateDashboard(ctx)
	return existing, nil
}

func (s *inquiryService) Delete(ctx context.Context, id string) error {
	objID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return apperrors.NotFound("Inquiry")
	}
	if err := s.repo.Delete(ctx, objID); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return apperrors.NotFound("Inquiry")
		}
		return apperrors.Internal(err)
	}
	s.invalidateDashboard(ctx)
	return nil
}

func (s *inquiryService) Stats(ctx context.Context) (*InquiryStats, error) {
	total, err := s.repo.CountAll(ctx)
	if err != nil {
		return nil, apperrors.Internal(err)
	}

	stats := &InquiryStats{Total: total}
	counts := []struct {
		status models.InquiryStatus
		dest   *int64
	}{
		{models.InquiryNew, &stats.New},
		{models.InquiryContacted, &stats.Contacted},
		{models.InquiryQualified, &stats.Qualified},
		{models.InquiryConverted, &stats.Converted},
	}
	for _, c := range counts {
		n, err := s.repo.CountByStatus(ctx, c.status)
		if err != nil {
			return nil, apperrors.Internal(err)
		}
		*c.dest = n
	}

	if total > 0 {
		stats.ConversionRate = float64(stats.Converted) / float64(total) * 100
	}
	return stats, nil
}

// AddCommunication appends to the contact log and bumps the follow-up
// counters in one atomic update. It never changes the status.
func (s *inquiryService) AddCommunication(ctx context.Context, id string, comm models.Communication, actor *models.Principal) (*models.Inquiry, error) {
	objID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, apperrors.NotFound("Inquiry")
	}

	now := s.now()
	comm.CreatedBy = actor.ID
	comm.CreatedAt = now
	if err := utils.ValidateStruct(&comm); err != nil {
		return nil, err
	}

	updated, err := s.repo.AddCommunication(ctx, objID, comm, actor.ID, now)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, apperrors.NotFound("Inquiry")
		}
		return nil, apperrors.Internal(err)
	}
	return updated, nil
}

// MarkAsLost closes the inquiry; a supplied reason is appended to the
// internal notes, never overwriting earlier ones.
func (s *inquiryService) MarkAsLost(ctx context.Context, id string, reason string, actor *models.Principal) (*models.Inquiry, error) {
	existing, err := s.load(ctx, id)
	if err != nil {
		return nil, err
	}

	existing.MarkAsLost(reason)
	existing.UpdatedBy = actor.ID

	if err := utils.ValidateStruct(existing); err != nil {
		return nil, err
	}
	if err := s.repo.Update(ctx, existing); err != nil {
		return nil, apperrors.Internal(err)
	}

	s.invalidateDashboard(ctx)
	return existing, nil
}

func (s *inquiryService) load(ctx context.Context, id string) (*models.Inquiry, error) {
	objID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, apperrors.NotFound("Inquiry")
	}
	inquiry, err := s.repo.GetByID(ctx, objID)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, apperrors.NotFound("Inquiry")
		}
		return nil, apperrors.Internal(err)
	}
	return inquiry, nil
}

func (s *inquiryService) invalidateDashboard(ctx context.Context) {
	if s.redis == nil {
		return
	}
	if err := s.redis.Delete(ctx, dashboardStatsKey, dashboardRecentKey); err != nil {
		log.Printf("Failed to invalidate dashboard cache: %v", err)
	}
}
