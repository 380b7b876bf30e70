package services

import (
	"context"
	"time"

	"event-crm/internal/models"
	"event-crm/internal/repository"
	"event-crm/internal/utils"
	"event-crm/pkg/apperrors"
)

const (
	dashboardStatsKey  = "dashboard:stats"
	dashboardRecentKey = "dashboard:recent"
	dashboardCacheTTL  = 5 * time.Minute
)

// DashboardStats is the headline view of the pipeline.
type DashboardStats struct {
	Inquiries struct {
		Total     int64 `json:"total"`
		New       int64 `json:"new"`
		ThisMonth int64 `json:"thisMonth"`
	} `json:"inquiries"`
}

// RecentActivity is the latest inquiries for the dashboard feed.
type RecentActivity struct {
	RecentInquiries []models.Inquiry `json:"recentInquiries"`
}

type DashboardService interface {
	Stats(ctx context.Context) (*DashboardStats, error)
	Recent(ctx context.Context) (*RecentActivity, error)
}

type dashboardService struct {
	inquiries repository.InquiryRepository
	redis     *utils.RedisClient
	now       func() time.Time
}

func NewDashboardService(inquiries repository.InquiryRepository, redis *utils.RedisClient) DashboardService {
	return &dashboardService{inquiries: inquiries, redis: redis, now: time.Now}
}

func (s *dashboardService) Stats(ctx context.Context) (*DashboardStats, error) {
	if s.redis != nil {
		var cached DashboardStats
		if err := s.redis.Get(ctx, dashboardStatsKey, &cached); err == nil {
			return &cached, nil
		}
	}

	stats := &DashboardStats{}
	var err error
	if stats.Inquiries.Total, err = s.inquiries.CountAll(ctx); err != nil {
		return nil, apperrors.Internal(err)
	}
	if stats.Inquiries.New, err = s.inquiries.CountByStatus(ctx, models.InquiryNew); err != nil {
		return nil, apperrors.Internal(err)
	}

	now := s.now()
	monthStart := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location())
	if stats.Inquiries.ThisMonth, err = s.inquiries.CountCreatedSince(ctx, monthStart); err != nil {
		return nil, apperrors.Internal(err)
	}

	if s.redis != nil {
		_ = s.redis.Set(ctx, dashboardStatsKey, stats, dashboardCacheTTL)
	}
	return stats, nil
}

func (s *dashboardService) Recent(ctx context.Context) (*RecentActivity, error) {
	if s.redis != nil {
		var cached RecentActivity
		if err := s.redis.Get(ctx, dashboardRecentKey, &cached); err == nil {
			return &cached, nil
		}
	}

	inquiries, err := s.inquiries.Recent(ctx, 5)
	if err != nil {
		return nil, apperrors.Internal(err)
	}
	activity := &RecentActivity{RecentInquiries: inquiries}

	if s.redis != nil {
		_ = s.redis.Set(ctx, dashboardRecentKey, activity, dashboardCacheTTL)
	}
	return activity, nil
}
