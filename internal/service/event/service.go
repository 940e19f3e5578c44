package event

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"github.com/redis/go-redis/v9"

	"clubhub/internal/domain"
	"clubhub/internal/repository"
	"clubhub/internal/service/email"
	"clubhub/internal/service/engagement"
)

type Service interface {
	Create(ctx context.Context, actor *domain.Member, input domain.CreateEventInput) (*domain.Event, error)
	Get(ctx context.Context, id uuid.UUID, actor *domain.Member, ip string) (*domain.Event, error)
	Update(ctx context.Context, id uuid.UUID, actor *domain.Member, input domain.UpdateEventInput) (*domain.Event, error)
	Publish(ctx context.Context, id uuid.UUID, actor *domain.Member) error
	Cancel(ctx context.Context, id uuid.UUID, actor *domain.Member) error
	Complete(ctx context.Context, id uuid.UUID, actor *domain.Member) error
	Delete(ctx context.Context, id uuid.UUID, actor *domain.Member) error
	List(ctx context.Context, actor *domain.Member, filter domain.ListFilter) (domain.PaginatedResponse[domain.Event], error)

	Register(ctx context.Context, id uuid.UUID, actor *domain.Member, input domain.RegisterEventInput) (*domain.Participation, error)
	Unregister(ctx context.Context, id uuid.UUID, actor *domain.Member) error
	ListParticipants(ctx context.Context, id uuid.UUID, actor *domain.Member, params domain.PaginationParams) (domain.PaginatedResponse[domain.Participation], error)
	UpdateParticipation(ctx context.Context, id, memberID uuid.UUID, actor *domain.Member, input domain.UpdateParticipationInput) error

	AddFeedback(ctx context.Context, id uuid.UUID, actor *domain.Member, input domain.EventFeedbackInput) (*domain.EventFeedback, error)
	ListFeedback(ctx context.Context, id uuid.UUID, actor *domain.Member, params domain.PaginationParams) (domain.PaginatedResponse[domain.EventFeedback], error)

	ToggleLike(ctx context.Context, id uuid.UUID, actor *domain.Member) (bool, error)
	AddComment(ctx context.Context, id uuid.UUID, actor *domain.Member, input domain.CreateCommentInput) (*domain.Comment, error)
	ListComments(ctx context.Context, id uuid.UUID, actor *domain.Member, params domain.PaginationParams) (domain.PaginatedResponse[domain.Comment], error)
}

type service struct {
	eventRepo     repository.EventRepository
	engagementSvc engagement.Service
	emailSvc      email.Service
	redis         *redis.Client
	now           func() time.Time
}

func NewService(eventRepo repository.EventRepository, engagementSvc engagement.Service, emailSvc email.Service, redis *redis.Client) Service {
	return &service{
		eventRepo:     eventRepo,
		engagementSvc: engagementSvc,
		emailSvc:      emailSvc,
		redis:         redis,
		now:           time.Now,
	}
}

func (s *service) Create(ctx context.Context, actor *domain.Member, input domain.CreateEventInput) (*domain.Event, error) {
	if !actor.HasRole(domain.RoleOfficer) {
		return nil, domain.ErrForbidden
	}
	if !input.Visibility.IsValid() {
		return nil, domain.ErrInvalidInput
	}
	if !input.RegistrationDeadline.Before(input.StartDate) {
		return nil, domain.ErrInvalidInput
	}
	if input.MaxParticipants < 1 {
		return nil, domain.ErrInvalidInput
	}

	e := &domain.Event{
		ID:                   uuid.New(),
		Title:                input.Title,
		Description:          input.Description,
		Location:             input.Location,
		StartDate:            input.StartDate,
		EndDate:              input.EndDate,
		RegistrationDeadline: input.RegistrationDeadline,
		MaxParticipants:      input.MaxParticipants,
		Visibility:           input.Visibility,
		Status:               domain.StatusDraft,
		Tags:                 pq.StringArray(input.Tags),
		OrganizerID:          actor.ID,
		BranchID:             input.BranchID,
	}

	if err := s.eventRepo.Create(ctx, e); err != nil {
		return nil, err
	}

	s.invalidateListCache(ctx)
	e.AvailableSpots = int64(e.MaxParticipants)
	return e, nil
}

func (s *service) Get(ctx context.Context, id uuid.UUID, actor *domain.Member, ip string) (*domain.Event, error) {
	e, err := s.eventRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if !domain.CanView(e.Engageable(), actor) {
		if actor == nil {
			return nil, domain.ErrUnauthenticated
		}
		return nil, domain.ErrForbidden
	}

	if err := s.engagementSvc.RecordView(ctx, domain.KindEvent, e.ID, actor, ip); err != nil {
		return nil, err
	}

	if err := s.attachDerived(ctx, e, actor); err != nil {
		return nil, err
	}

	return e, nil
}

func (s *service) attachDerived(ctx context.Context, e *domain.Event, actor *domain.Member) error {
	count, err := s.eventRepo.CountParticipants(ctx, e.ID)
	if err != nil {
		return err
	}
	e.ParticipantCount = count
	e.AvailableSpots = int64(e.MaxParticipants) - count
	if e.AvailableSpots < 0 {
		e.AvailableSpots = 0
	}

	avg, err := s.eventRepo.AverageRating(ctx, e.ID)
	if err != nil {
		return err
	}
	e.AverageRating = avg

	summary, err := s.engagementSvc.Summary(ctx, domain.KindEvent, e.ID, actor)
	if err != nil {
		return err
	}
	e.Engagement = &summary

	return nil
}

func (s *service) Update(ctx context.Context, id uuid.UUID, actor *domain.Member, input domain.UpdateEventInput) (*domain.Event, error) {
	e, err := s.eventRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if !s.canManage(e, actor) {
		return nil, domain.ErrForbidden
	}

	if input.Title != nil {
		e.Title = *input.Title
	}
	if input.Description != nil {
		e.Description = *input.Description
	}
	if input.Location != nil {
		e.Location = *input.Location
	}
	if input.StartDate != nil {
		e.StartDate = *input.StartDate
	}
	if input.EndDate != nil {
		e.EndDate = *input.EndDate
	}
	if input.RegistrationDeadline != nil {
		e.RegistrationDeadline = *input.RegistrationDeadline
	}
	if input.MaxParticipants != nil {
		if *input.MaxParticipants < 1 {
			return nil, domain.ErrInvalidInput
		}
		e.MaxParticipants = *input.MaxParticipants
	}
	if input.Visibility != nil {
		if !input.Visibility.IsValid() {
			return nil, domain.ErrInvalidInput
		}
		e.Visibility = *input.Visibility
	}
	if input.Tags != nil {
		e.Tags = pq.StringArray(input.Tags)
	}

	if !e.RegistrationDeadline.Before(e.StartDate) {
		return nil, domain.ErrInvalidInput
	}

	if err := s.eventRepo.Update(ctx, e); err != nil {
		return nil, err
	}

	s.invalidateListCache(ctx)
	return e, nil
}

func (s *service) Publish(ctx context.Context, id uuid.UUID, actor *domain.Member) error {
	return s.transition(ctx, id, actor, []domain.EntityStatus{domain.StatusDraft}, domain.StatusPublished)
}

func (s *service) Cancel(ctx context.Context, id uuid.UUID, actor *domain.Member) error {
	return s.transition(ctx, id, actor, []domain.EntityStatus{domain.StatusDraft, domain.StatusPublished}, domain.StatusCancelled)
}

func (s *service) Complete(ctx context.Context, id uuid.UUID, actor *domain.Member) error {
	return s.transition(ctx, id, actor, []domain.EntityStatus{domain.StatusPublished}, domain.StatusCompleted)
}

func (s *service) transition(ctx context.Context, id uuid.UUID, actor *domain.Member, from []domain.EntityStatus, to domain.EntityStatus) error {
	e, err := s.eventRepo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if !s.canManage(e, actor) {
		return domain.ErrForbidden
	}

	allowed := false
	for _, status := range from {
		if e.Status == status {
			allowed = true
			break
		}
	}
	if !allowed {
		return domain.ErrInvalidTransition
	}

	if err := s.eventRepo.UpdateStatus(ctx, id, to); err != nil {
		return err
	}

	s.invalidateListCache(ctx)
	return nil
}

func (s *service) Delete(ctx context.Context, id uuid.UUID, actor *domain.Member) error {
	e, err := s.eventRepo.GetByID(ctx, id)
	if err != nil {
		return err
	}

	if actor.EffectiveRole() != domain.RoleAdmin && (actor == nil || e.OrganizerID != actor.ID) {
		return domain.ErrForbidden
	}

	if err := s.eventRepo.Delete(ctx, id); err != nil {
		return err
	}

	s.invalidateListCache(ctx)
	return nil
}

func (s *service) List(ctx context.Context, actor *domain.Member, filter domain.ListFilter) (domain.PaginatedResponse[domain.Event], error) {
	// Decide cacheability from the request as it came in, before defaults
	// are applied below.
	cacheKey := s.listCacheKey(actor, filter)

	filter.Visibilities = intersectTiers(filter.Visibilities, actor)

	// Non-officers browse published events only.
	if !actor.HasRole(domain.RoleOfficer) {
		published := domain.StatusPublished
		filter.Status = &published
	}
	if s.redis != nil && cacheKey != "" {
		if cached, err := s.redis.Get(ctx, cacheKey).Result(); err == nil {
			var result domain.PaginatedResponse[domain.Event]
			if json.Unmarshal([]byte(cached), &result) == nil {
				return result, nil
			}
		}
	}

	events, total, err := s.eventRepo.List(ctx, filter)
	if err != nil {
		return domain.PaginatedResponse[domain.Event]{}, err
	}

	result := domain.NewPaginatedResponse(events, filter.Pagination.Page, filter.Pagination.PageSize, total)

	if s.redis != nil && cacheKey != "" {
		if resultJSON, err := json.Marshal(result); err == nil {
			_ = s.redis.Set(ctx, cacheKey, resultJSON, 2*time.Minute).Err()
		}
	}

	return result, nil
}

// Register enforces the registration window: published event, deadline
// not passed, no duplicate, free capacity. The final capacity check
// happens inside the insert statement, so racing registrations cannot
// exceed max_participants.
func (s *service) Register(ctx context.Context, id uuid.UUID, actor *domain.Member, input domain.RegisterEventInput) (*domain.Participation, error) {
	if actor == nil {
		return nil, domain.ErrUnauthenticated
	}

	e, err := s.eventRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if !domain.CanView(e.Engageable(), actor) {
		return nil, domain.ErrForbidden
	}
	if e.Status != domain.StatusPublished {
		return nil, domain.ErrEventNotOpen
	}
	if s.now().After(e.RegistrationDeadline) {
		return nil, domain.ErrDeadlinePassed
	}

	if _, err := s.eventRepo.GetParticipation(ctx, id, actor.ID); err == nil {
		return nil, domain.ErrAlreadyRegistered
	} else if !errors.Is(err, domain.ErrNotRegistered) {
		return nil, err
	}

	p := &domain.Participation{
		EventID:  id,
		MemberID: actor.ID,
		Status:   domain.ParticipationRegistered,
		Notes:    input.Notes,
	}

	inserted, err := s.eventRepo.Register(ctx, p)
	if err != nil {
		return nil, err
	}
	if !inserted {
		// Either the event filled up or a concurrent duplicate won;
		// distinguish by re-reading the participation.
		if _, err := s.eventRepo.GetParticipation(ctx, id, actor.ID); err == nil {
			return nil, domain.ErrAlreadyRegistered
		}
		return nil, domain.ErrEventFull
	}

	if s.emailSvc != nil {
		go func(toEmail, firstName, eventTitle string) {
			ctx := context.Background()
			if err := s.emailSvc.SendEventRegistrationEmail(ctx, toEmail, firstName, eventTitle); err != nil {
				log.Printf("Failed to send registration email to %s: %v", toEmail, err)
			}
		}(actor.Email, actor.FirstName, e.Title)
	}

	return p, nil
}

func (s *service) Unregister(ctx context.Context, id uuid.UUID, actor *domain.Member) error {
	if actor == nil {
		return domain.ErrUnauthenticated
	}

	p, err := s.eventRepo.GetParticipation(ctx, id, actor.ID)
	if err != nil {
		return err
	}
	if !p.Status.Withdrawable() {
		return domain.ErrParticipationLocked
	}

	return s.eventRepo.DeleteParticipation(ctx, id, actor.ID)
}

func (s *service) ListParticipants(ctx context.Context, id uuid.UUID, actor *domain.Member, params domain.PaginationParams) (domain.PaginatedResponse[domain.Participation], error) {
	if !actor.HasRole(domain.RoleOfficer) {
		return domain.PaginatedResponse[domain.Participation]{}, domain.ErrForbidden
	}

	if _, err := s.eventRepo.GetByID(ctx, id); err != nil {
		return domain.PaginatedResponse[domain.Participation]{}, err
	}

	participants, total, err := s.eventRepo.ListParticipants(ctx, id, params)
	if err != nil {
		return domain.PaginatedResponse[domain.Participation]{}, err
	}

	return domain.NewPaginatedResponse(participants, params.Page, params.PageSize, total), nil
}

func (s *service) UpdateParticipation(ctx context.Context, id, memberID uuid.UUID, actor *domain.Member, input domain.UpdateParticipationInput) error {
	if !actor.HasRole(domain.RoleOfficer) {
		return domain.ErrForbidden
	}
	if !input.Status.IsValid() {
		return domain.ErrInvalidInput
	}

	if _, err := s.eventRepo.GetByID(ctx, id); err != nil {
		return err
	}

	return s.eventRepo.UpdateParticipation(ctx, id, memberID, input.Status, input.Notes)
}

// AddFeedback is open only after the event completed, only to actors
// whose participation is marked attended, and at most once per actor.
func (s *service) AddFeedback(ctx context.Context, id uuid.UUID, actor *domain.Member, input domain.EventFeedbackInput) (*domain.EventFeedback, error) {
	if actor == nil {
		return nil, domain.ErrUnauthenticated
	}
	if input.Rating < 1 || input.Rating > 5 {
		return nil, domain.ErrInvalidInput
	}

	e, err := s.eventRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if e.Status != domain.StatusCompleted {
		return nil, domain.ErrEventNotCompleted
	}

	p, err := s.eventRepo.GetParticipation(ctx, id, actor.ID)
	if err != nil {
		return nil, domain.ErrFeedbackNotAllowed
	}
	if p.Status != domain.ParticipationAttended {
		return nil, domain.ErrFeedbackNotAllowed
	}

	f := &domain.EventFeedback{
		EventID:  id,
		MemberID: actor.ID,
		Rating:   input.Rating,
		Comment:  input.Comment,
	}

	inserted, err := s.eventRepo.AddFeedback(ctx, f)
	if err != nil {
		return nil, err
	}
	if !inserted {
		return nil, domain.ErrFeedbackExists
	}

	return f, nil
}

func (s *service) ListFeedback(ctx context.Context, id uuid.UUID, actor *domain.Member, params domain.PaginationParams) (domain.PaginatedResponse[domain.EventFeedback], error) {
	e, err := s.eventRepo.GetByID(ctx, id)
	if err != nil {
		return domain.PaginatedResponse[domain.EventFeedback]{}, err
	}

	if !domain.CanView(e.Engageable(), actor) {
		return domain.PaginatedResponse[domain.EventFeedback]{}, domain.ErrForbidden
	}

	feedback, total, err := s.eventRepo.ListFeedback(ctx, id, params)
	if err != nil {
		return domain.PaginatedResponse[domain.EventFeedback]{}, err
	}

	return domain.NewPaginatedResponse(feedback, params.Page, params.PageSize, total), nil
}

func (s *service) ToggleLike(ctx context.Context, id uuid.UUID, actor *domain.Member) (bool, error) {
	e, err := s.eventRepo.GetByID(ctx, id)
	if err != nil {
		return false, err
	}
	return s.engagementSvc.ToggleLike(ctx, domain.KindEvent, e.Engageable(), actor)
}

func (s *service) AddComment(ctx context.Context, id uuid.UUID, actor *domain.Member, input domain.CreateCommentInput) (*domain.Comment, error) {
	e, err := s.eventRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return s.engagementSvc.AddComment(ctx, domain.KindEvent, e.Engageable(), actor, input.Content)
}

func (s *service) ListComments(ctx context.Context, id uuid.UUID, actor *domain.Member, params domain.PaginationParams) (domain.PaginatedResponse[domain.Comment], error) {
	e, err := s.eventRepo.GetByID(ctx, id)
	if err != nil {
		return domain.PaginatedResponse[domain.Comment]{}, err
	}
	return s.engagementSvc.ListComments(ctx, domain.KindEvent, e.Engageable(), actor, params)
}

func (s *service) canManage(e *domain.Event, actor *domain.Member) bool {
	if actor == nil {
		return false
	}
	return actor.HasRole(domain.RoleOfficer) || e.OrganizerID == actor.ID
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
	return fmt.Sprintf("events:%s:page:%d:size:%d", actor.EffectiveRole(), filter.Pagination.Page, filter.Pagination.PageSize)
}

func (s *service) invalidateListCache(ctx context.Context) {
	if s.redis == nil {
		return
	}
	keys, _ := s.redis.Keys(ctx, "events:*").Result()
	if len(keys) > 0 {
		_ = s.redis.Del(ctx, keys...).Err()
	}
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
