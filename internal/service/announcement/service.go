package announcement

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"github.com/redis/go-redis/v9"

	"clubhub/internal/domain"
	"clubhub/internal/repository"
	"clubhub/internal/service/engagement"
)

type Service interface {
	Create(ctx context.Context, actor *domain.Member, input domain.CreateAnnouncementInput) (*domain.Announcement, error)
	Get(ctx context.Context, id uuid.UUID, actor *domain.Member, ip string) (*domain.Announcement, error)
	Update(ctx context.Context, id uuid.UUID, actor *domain.Member, input domain.UpdateAnnouncementInput) (*domain.Announcement, error)
	Publish(ctx context.Context, id uuid.UUID, actor *domain.Member) error
	Archive(ctx context.Context, id uuid.UUID, actor *domain.Member) error
	Delete(ctx context.Context, id uuid.UUID, actor *domain.Member) error
	List(ctx context.Context, actor *domain.Member, filter domain.ListFilter) (domain.PaginatedResponse[domain.Announcement], error)

	ToggleLike(ctx context.Context, id uuid.UUID, actor *domain.Member) (bool, error)
	AddComment(ctx context.Context, id uuid.UUID, actor *domain.Member, input domain.CreateCommentInput) (*domain.Comment, error)
	ListComments(ctx context.Context, id uuid.UUID, actor *domain.Member, params domain.PaginationParams) (domain.PaginatedResponse[domain.Comment], error)
	ListLikes(ctx context.Context, id uuid.UUID, actor *domain.Member, params domain.PaginationParams) (domain.PaginatedResponse[domain.Like], error)
}

type service struct {
	announcementRepo repository.AnnouncementRepository
	engagementSvc    engagement.Service
	redis            *redis.Client
}

func NewService(announcementRepo repository.AnnouncementRepository, engagementSvc engagement.Service, redis *redis.Client) Service {
	return &service{
		announcementRepo: announcementRepo,
		engagementSvc:    engagementSvc,
		redis:            redis,
	}
}

func (s *service) Create(ctx context.Context, actor *domain.Member, input domain.CreateAnnouncementInput) (*domain.Announcement, error) {
	if !actor.HasRole(domain.RoleOfficer) {
		return nil, domain.ErrForbidden
	}
	if !input.Type.IsValid() || !input.Visibility.IsValid() {
		return nil, domain.ErrInvalidInput
	}

	publishAt := time.Now()
	if input.PublishAt != nil {
		publishAt = *input.PublishAt
	}
	priority := input.Priority
	if priority == "" {
		priority = "normal"
	}

	a := &domain.Announcement{
		ID:         uuid.New(),
		Title:      input.Title,
		Content:    input.Content,
		Type:       input.Type,
		Priority:   priority,
		Visibility: input.Visibility,
		Status:     domain.StatusDraft,
		Tags:       pq.StringArray(input.Tags),
		PublishAt:  publishAt,
		ExpireAt:   input.ExpireAt,
		AuthorID:   actor.ID,
		BranchID:   input.BranchID,
	}

	if err := s.announcementRepo.Create(ctx, a); err != nil {
		return nil, err
	}

	s.invalidateListCache(ctx)
	return a, nil
}

// Get applies the visibility rule, records the view (idempotent per
// actor) and attaches engagement counts. Expired announcements stay
// fetchable by id; only list queries filter on expiry.
func (s *service) Get(ctx context.Context, id uuid.UUID, actor *domain.Member, ip string) (*domain.Announcement, error) {
	a, err := s.announcementRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if !domain.CanView(a.Engageable(), actor) {
		if actor == nil {
			return nil, domain.ErrUnauthenticated
		}
		return nil, domain.ErrForbidden
	}

	if err := s.engagementSvc.RecordView(ctx, domain.KindAnnouncement, a.ID, actor, ip); err != nil {
		return nil, err
	}

	summary, err := s.engagementSvc.Summary(ctx, domain.KindAnnouncement, a.ID, actor)
	if err != nil {
		return nil, err
	}
	a.Engagement = &summary

	return a, nil
}

func (s *service) Update(ctx context.Context, id uuid.UUID, actor *domain.Member, input domain.UpdateAnnouncementInput) (*domain.Announcement, error) {
	a, err := s.announcementRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if !s.canManage(a, actor) {
		return nil, domain.ErrForbidden
	}

	if input.Title != nil {
		a.Title = *input.Title
	}
	if input.Content != nil {
		a.Content = *input.Content
	}
	if input.Type != nil {
		if !input.Type.IsValid() {
			return nil, domain.ErrInvalidInput
		}
		a.Type = *input.Type
	}
	if input.Priority != nil {
		a.Priority = *input.Priority
	}
	if input.Visibility != nil {
		if !input.Visibility.IsValid() {
			return nil, domain.ErrInvalidInput
		}
		a.Visibility = *input.Visibility
	}
	if input.Tags != nil {
		a.Tags = pq.StringArray(input.Tags)
	}
	if input.ExpireAt != nil {
		a.ExpireAt = *input.ExpireAt
	}

	if err := s.announcementRepo.Update(ctx, a); err != nil {
		return nil, err
	}

	s.invalidateListCache(ctx)
	return a, nil
}

func (s *service) Publish(ctx context.Context, id uuid.UUID, actor *domain.Member) error {
	return s.transition(ctx, id, actor, domain.StatusDraft, domain.StatusPublished)
}

func (s *service) Archive(ctx context.Context, id uuid.UUID, actor *domain.Member) error {
	return s.transition(ctx, id, actor, domain.StatusPublished, domain.StatusArchived)
}

func (s *service) transition(ctx context.Context, id uuid.UUID, actor *domain.Member, from, to domain.EntityStatus) error {
	a, err := s.announcementRepo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if !s.canManage(a, actor) {
		return domain.ErrForbidden
	}
	if a.Status != from {
		return domain.ErrInvalidTransition
	}

	if err := s.announcementRepo.UpdateStatus(ctx, id, to); err != nil {
		return err
	}

	s.invalidateListCache(ctx)
	return nil
}

func (s *service) Delete(ctx context.Context, id uuid.UUID, actor *domain.Member) error {
	a, err := s.announcementRepo.GetByID(ctx, id)
	if err != nil {
		return err
	}

	if actor.EffectiveRole() != domain.RoleAdmin && a.AuthorID != actorID(actor) {
		return domain.ErrForbidden
	}

	if err := s.announcementRepo.Delete(ctx, id); err != nil {
		return err
	}

	s.invalidateListCache(ctx)
	return nil
}

func (s *service) List(ctx context.Context, actor *domain.Member, filter domain.ListFilter) (domain.PaginatedResponse[domain.Announcement], error) {
	// Decide cacheability from the request as it came in, before defaults
	// are applied below.
	cacheKey := s.listCacheKey(actor, filter)

	filter.Visibilities = intersectTiers(filter.Visibilities, actor)

	// Non-officers browse published announcements only.
	if !actor.HasRole(domain.RoleOfficer) {
		published := domain.StatusPublished
		filter.Status = &published
	}
	if s.redis != nil && cacheKey != "" {
		if cached, err := s.redis.Get(ctx, cacheKey).Result(); err == nil {
			var result domain.PaginatedResponse[domain.Announcement]
			if json.Unmarshal([]byte(cached), &result) == nil {
				return result, nil
			}
		}
	}

	announcements, total, err := s.announcementRepo.List(ctx, filter)
	if err != nil {
		return domain.PaginatedResponse[domain.Announcement]{}, err
	}

	result := domain.NewPaginatedResponse(announcements, filter.Pagination.Page, filter.Pagination.PageSize, total)

	if s.redis != nil && cacheKey != "" {
		if resultJSON, err := json.Marshal(result); err == nil {
			_ = s.redis.Set(ctx, cacheKey, resultJSON, 2*time.Minute).Err()
		}
	}

	return result, nil
}

func (s *service) ToggleLike(ctx context.Context, id uuid.UUID, actor *domain.Member) (bool, error) {
	a, err := s.announcementRepo.GetByID(ctx, id)
	if err != nil {
		return false, err
	}
	return s.engagementSvc.ToggleLike(ctx, domain.KindAnnouncement, a.Engageable(), actor)
}

func (s *service) AddComment(ctx context.Context, id uuid.UUID, actor *domain.Member, input domain.CreateCommentInput) (*domain.Comment, error) {
	a, err := s.announcementRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return s.engagementSvc.AddComment(ctx, domain.KindAnnouncement, a.Engageable(), actor, input.Content)
}

func (s *service) ListComments(ctx context.Context, id uuid.UUID, actor *domain.Member, params domain.PaginationParams) (domain.PaginatedResponse[domain.Comment], error) {
	a, err := s.announcementRepo.GetByID(ctx, id)
	if err != nil {
		return domain.PaginatedResponse[domain.Comment]{}, err
	}
	return s.engagementSvc.ListComments(ctx, domain.KindAnnouncement, a.Engageable(), actor, params)
}

func (s *service) ListLikes(ctx context.Context, id uuid.UUID, actor *domain.Member, params domain.PaginationParams) (domain.PaginatedResponse[domain.Like], error) {
	a, err := s.announcementRepo.GetByID(ctx, id)
	if err != nil {
		return domain.PaginatedResponse[domain.Like]{}, err
	}
	return s.engagementSvc.ListLikes(ctx, domain.KindAnnouncement, a.Engageable(), actor, params)
}

func (s *service) canManage(a *domain.Announcement, actor *domain.Member) bool {
	if actor == nil {
		return false
	}
	return actor.HasRole(domain.RoleOfficer) || a.AuthorID == actor.ID
}

func (s *service) listCacheKey(actor *domain.Member, filter domain.ListFilter) string {
	// Only the common unfiltered pages are worth caching.
	if filter.Search != "" || filter.Type != nil || filter.Priority != nil || filter.DateFrom != nil || filter.DateTo != nil {
		return ""
	}
	if filter.Status != nil || filter.BranchID != nil {
		return ""
	}
	if len(filter.Visibilities) != len(domain.VisibleTiers(actor)) {
		return ""
	}
	return fmt.Sprintf("announcements:%s:page:%d:size:%d", actor.EffectiveRole(), filter.Pagination.Page, filter.Pagination.PageSize)
}

func (s *service) invalidateListCache(ctx context.Context) {
	if s.redis == nil {
		return
	}
	keys, _ := s.redis.Keys(ctx, "announcements:*").Result()
	if len(keys) > 0 {
		_ = s.redis.Del(ctx, keys...).Err()
	}
}

func actorID(actor *domain.Member) uuid.UUID {
	if actor == nil {
		return uuid.Nil
	}
	return actor.ID
}

// intersectTiers clamps a caller-requested visibility set to the tiers
// the actor may see; an empty request falls back to the actor default.
func intersectTiers(requested []domain.Visibility, actor *domain.Member) []domain.Visibility {
	allowed := domain.VisibleTiers(actor)
	if len(requested) == 0 {
		return allowed
	}

	allowedSet := make(map[domain.Visibility]bool, len(allowed))
	for _, v := range allowed {
		allowedSet[v] = true
	}

	var out []domain.Visibility
	for _, v := range requested {
		if allowedSet[v] {
			out = append(out, v)
		}
	}
	if len(out) == 0 {
		return allowed
	}
	return out
}
