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

// ConversionResult is the converted inquiry with the created records
// resolved for display.
type ConversionResult struct {
	Inquiry *models.Inquiry `json:"inquiry"`
	Client  *models.Client  `json:"client,omitempty"`
	Event   *models.Event   `json:"event,omitempty"`
}

type ConversionService interface {
	Convert(ctx context.Context, id string, createClient, createEvent bool, actor *models.Principal) (*ConversionResult, error)
}

type conversionService struct {
	inquiries repository.InquiryRepository
	clients   repository.ClientRepository
	events    repository.EventRepository
	now       func() time.Time
}

func NewConversionService(inquiries repository.InquiryRepository, clients repository.ClientRepository, events repository.EventRepository) ConversionService {
	return &conversionService{
		inquiries: inquiries,
		clients:   clients,
		events:    events,
		now:       time.Now,
	}
}

// Convert turns an inquiry into a Client (and optionally an Event).
// The idempotency guard is an atomic conditional status flip performed
// before any entity is persisted: only the caller that wins the flip
// creates records, so two racing converts cannot both create a client.
// Event creation depends on a client created in the same call.
func (s *conversionService) Convert(ctx context.Context, id string, createClient, createEvent bool, actor *models.Principal) (*ConversionResult, error) {
	objID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, apperrors.NotFound("Inquiry")
	}

	inquiry, err := s.inquiries.GetByID(ctx, objID)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, apperrors.NotFound("Inquiry")
		}
		return nil, apperrors.Internal(err)
	}
	if inquiry.IsConverted() {
		return nil, apperrors.Conflict("Inquiry is already converted")
	}

	// Derive and validate the client before mutating anything, so a
	// bad payload aborts with no side effects.
	var client *models.Client
	if createClient {
		client = models.NewClientFromInquiry(inquiry, actor)
		if err := utils.ValidateStruct(client); err != nil {
			return nil, err
		}
	}

	won, err := s.inquiries.BeginConversion(ctx, objID, actor.ID, s.now())
	if err != nil {
		return nil, apperrors.Internal(err)
	}
	if !won {
		return nil, apperrors.Conflict("Inquiry is already converted")
	}

	var clientID, eventID *primitive.ObjectID
	var event *models.Event

	if client != nil {
		if err := s.clients.Create(ctx, client); err != nil {
			s.rollback(ctx, objID, inquiry.Status)
			return nil, apperrors.Internal(err)
		}
		clientID = &client.ID
	}

	// Hard dependency: an event is only created when this call also
	// created a client to link it to.
	if createEvent && clientID != nil {
		event = models.NewEventFromInquiry(inquiry, *clientID, actor)
		if err := utils.ValidateStruct(event); err != nil {
			// The client already exists and stays; the inquiry is not
			// left converted.
			s.rollback(ctx, objID, inquiry.Status)
			return nil, err
		}
		if err := s.events.Create(ctx, event); err != nil {
			s.rollback(ctx, objID, inquiry.Status)
			return nil, apperrors.Internal(err)
		}
		eventID = &event.ID
	}

	updated, err := s.inquiries.CompleteConversion(ctx, objID, clientID, eventID)
	if err != nil {
		// Without the references stored the inquiry must not stay
		// converted; the created entities remain.
		s.rollback(ctx, objID, inquiry.Status)
		return nil, apperrors.Internal(err)
	}

	return &ConversionResult{Inquiry: updated, Client: client, Event: event}, nil
}

func (s *conversionService) rollback(ctx context.Context, id primitive.ObjectID, previous models.InquiryStatus) {
	if err := s.inquiries.RevertConversion(ctx, id, previous); err != nil {
		log.Printf("Failed to revert conversion for inquiry %s: %v", id.Hex(), err)
	}
}
