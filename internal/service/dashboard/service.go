package dashboard

import (
	"context"
	"encoding/json"
	"time"

	"github.com/redis/go-redis/v9"

	"clubhub/internal/domain"
	"clubhub/internal/repository"
)

type Service interface {
	GetStats(ctx context.Context, actor *domain.Member) (*domain.DashboardStats, error)
}

type service struct {
	memberRepo       repository.MemberRepository
	eventRepo        repository.EventRepository
	announcementRepo repository.AnnouncementRepository
	donationRepo     repository.DonationRepository
	redis            *redis.Client
}

func NewService(
	memberRepo repository.MemberRepository,
	eventRepo repository.EventRepository,
	announcementRepo repository.AnnouncementRepository,
	donationRepo repository.DonationRepository,
	redis *redis.Client,
) Service {
	return &service{
		memberRepo:       memberRepo,
		eventRepo:        eventRepo,
		announcementRepo: announcementRepo,
		donationRepo:     donationRepo,
		redis:            redis,
	}
}

const statsCacheKey = "dashboard:stats"

func (s *service) GetStats(ctx context.Context, actor *domain.Member) (*domain.DashboardStats, error) {
	if !actor.HasRole(domain.RoleOfficer) {
		return nil, domain.ErrForbidden
	}

	if s.redis != nil {
		if cached, err := s.redis.Get(ctx, statsCacheKey).Result(); err == nil {
			var stats domain.DashboardStats
			if json.Unmarshal([]byte(cached), &stats) == nil {
				return &stats, nil
			}
		}
	}

	membersByRole, err := s.memberRepo.CountByRole(ctx)
	if err != nil {
		return nil, err
	}

	pendingApprovals, err := s.memberRepo.CountPendingApproval(ctx)
	if err != nil {
		return nil, err
	}

	eventsByStatus, err := s.eventRepo.CountByStatus(ctx)
	if err != nil {
		return nil, err
	}

	announcementsPublished, err := s.announcementRepo.CountPublished(ctx)
	if err != nil {
		return nil, err
	}

	donationsTotal, err := s.donationRepo.SumVerified(ctx)
	if err != nil {
		return nil, err
	}

	donationsPending, err := s.donationRepo.CountPending(ctx)
	if err != nil {
		return nil, err
	}

	monthlyDonations, err := s.donationRepo.MonthlyTotals(ctx, 12)
	if err != nil {
		return nil, err
	}

	stats := &domain.DashboardStats{
		MembersByRole:          membersByRole,
		PendingApprovals:       pendingApprovals,
		EventsByStatus:         eventsByStatus,
		AnnouncementsPublished: announcementsPublished,
		DonationsVerifiedTotal: donationsTotal,
		DonationsPending:       donationsPending,
		MonthlyDonations:       monthlyDonations,
	}

	if s.redis != nil {
		if statsJSON, err := json.Marshal(stats); err == nil {
			_ = s.redis.Set(ctx, statsCacheKey, statsJSON, 5*time.Minute).Err()
		}
	}

	return stats, nil
}
