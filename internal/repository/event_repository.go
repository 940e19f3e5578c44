package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"clubhub/internal/domain"
)

type EventRepository interface {
	Create(ctx context.Context, e *domain.Event) error
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Event, error)
	Update(ctx context.Context, e *domain.Event) error
	UpdateStatus(ctx context.Context, id uuid.UUID, status domain.EntityStatus) error
	Delete(ctx context.Context, id uuid.UUID) error
	List(ctx context.Context, filter domain.ListFilter) ([]domain.Event, int64, error)
	CountByStatus(ctx context.Context) (map[string]int64, error)

	Register(ctx context.Context, p *domain.Participation) (bool, error)
	GetParticipation(ctx context.Context, eventID, memberID uuid.UUID) (*domain.Participation, error)
	DeleteParticipation(ctx context.Context, eventID, memberID uuid.UUID) error
	UpdateParticipation(ctx context.Context, eventID, memberID uuid.UUID, status domain.ParticipationStatus, notes *string) error
	ListParticipants(ctx context.Context, eventID uuid.UUID, params domain.PaginationParams) ([]domain.Participation, int64, error)
	CountParticipants(ctx context.Context, eventID uuid.UUID) (int64, error)

	AddFeedback(ctx context.Context, f *domain.EventFeedback) (bool, error)
	ListFeedback(ctx context.Context, eventID uuid.UUID, params domain.PaginationParams) ([]domain.EventFeedback, int64, error)
	AverageRating(ctx context.Context, eventID uuid.UUID) (float64, error)
}

type eventRepository struct {
	db *sqlx.DB
}

func NewEventRepository(db *sqlx.DB) EventRepository {
	return &eventRepository{db: db}
}

var eventFilterColumns = filterColumns{
	DateColumn:    "start_date",
	SearchColumns: []string{"title", "description", "location"},
}

func (r *eventRepository) Create(ctx context.Context, e *domain.Event) error {
	query := `
		INSERT INTO events (event_id, title, description, location, start_date, end_date, registration_deadline,
			max_participants, visibility, status, tags, expire_at, organizer_id, branch_id)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14)
		RETURNING created_at, updated_at`

	return r.db.QueryRowxContext(ctx, query,
		e.ID, e.Title, e.Description, e.Location, e.StartDate, e.EndDate, e.RegistrationDeadline,
		e.MaxParticipants, e.Visibility, e.Status, e.Tags, e.ExpireAt, e.OrganizerID, e.BranchID,
	).Scan(&e.CreatedAt, &e.UpdatedAt)
}

func (r *eventRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.Event, error) {
	var e domain.Event
	query := `SELECT * FROM events WHERE event_id = $1`
	err := r.db.GetContext(ctx, &e, query, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.ErrEventNotFound
	}
	return &e, err
}

func (r *eventRepository) Update(ctx context.Context, e *domain.Event) error {
	query := `
		UPDATE events
		SET title = $2, description = $3, location = $4, start_date = $5, end_date = $6,
			registration_deadline = $7, max_participants = $8, visibility = $9, tags = $10, updated_at = NOW()
		WHERE event_id = $1
		RETURNING updated_at`

	err := r.db.QueryRowxContext(ctx, query,
		e.ID, e.Title, e.Description, e.Location, e.StartDate, e.EndDate,
		e.RegistrationDeadline, e.MaxParticipants, e.Visibility, e.Tags,
	).Scan(&e.UpdatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return domain.ErrEventNotFound
	}
	return err
}

func (r *eventRepository) UpdateStatus(ctx context.Context, id uuid.UUID, status domain.EntityStatus) error {
	query := `UPDATE events SET status = $2, updated_at = NOW() WHERE event_id = $1`
	res, err := r.db.ExecContext(ctx, query, id, status)
	if err != nil {
		return err
	}
	return requireAffected(res, domain.ErrEventNotFound)
}

func (r *eventRepository) Delete(ctx context.Context, id uuid.UUID) error {
	query := `DELETE FROM events WHERE event_id = $1`
	res, err := r.db.ExecContext(ctx, query, id)
	if err != nil {
		return err
	}
	return requireAffected(res, domain.ErrEventNotFound)
}

func (r *eventRepository) List(ctx context.Context, filter domain.ListFilter) ([]domain.Event, int64, error) {
	filter.Pagination.Validate()

	where, args := buildFilterWhere(filter, eventFilterColumns)

	var total int64
	countQuery := `SELECT COUNT(*) FROM events WHERE ` + where
	if err := r.db.GetContext(ctx, &total, countQuery, args...); err != nil {
		return nil, 0, err
	}

	args = append(args, filter.Pagination.PageSize, filter.Pagination.Offset())
	query := fmt.Sprintf(`
		SELECT * FROM events
		WHERE %s
		ORDER BY start_date ASC
		LIMIT $%d OFFSET $%d`, where, len(args)-1, len(args))

	var events []domain.Event
	err := r.db.SelectContext(ctx, &events, query, args...)
	return events, total, err
}

func (r *eventRepository) CountByStatus(ctx context.Context) (map[string]int64, error) {
	query := `SELECT status, COUNT(*) AS count FROM events GROUP BY status`

	rows, err := r.db.QueryxContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	counts := make(map[string]int64)
	for rows.Next() {
		var status string
		var count int64
		if err := rows.Scan(&status, &count); err != nil {
			return nil, err
		}
		counts[status] = count
	}
	return counts, rows.Err()
}

// Register inserts the participation only while the event still has
// room; the capacity check lives inside the same statement so
// concurrent registrations cannot overbook. A false return with no
// error means the event was full at insert time.
func (r *eventRepository) Register(ctx context.Context, p *domain.Participation) (bool, error) {
	query := `
		INSERT INTO event_participants (event_id, member_id, status, notes)
		SELECT $1, $2, $3, $4
		WHERE (SELECT COUNT(*) FROM event_participants WHERE event_id = $1) <
			(SELECT max_participants FROM events WHERE event_id = $1)
		ON CONFLICT (event_id, member_id) DO NOTHING
		RETURNING registered_at`

	err := r.db.QueryRowxContext(ctx, query, p.EventID, p.MemberID, p.Status, p.Notes).Scan(&p.RegisteredAt)
	if errors.Is(err, sql.ErrNoRows) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}

func (r *eventRepository) GetParticipation(ctx context.Context, eventID, memberID uuid.UUID) (*domain.Participation, error) {
	var p domain.Participation
	query := `SELECT event_id, member_id, status, notes, registered_at FROM event_participants WHERE event_id = $1 AND member_id = $2`
	err := r.db.GetContext(ctx, &p, query, eventID, memberID)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.ErrNotRegistered
	}
	return &p, err
}

// DeleteParticipation removes the row entirely; capacity is freed
// immediately. Withdrawals from attended/absent are rejected by the
// status guard in the statement.
func (r *eventRepository) DeleteParticipation(ctx context.Context, eventID, memberID uuid.UUID) error {
	query := `
		DELETE FROM event_participants
		WHERE event_id = $1 AND member_id = $2 AND status IN ('registered', 'confirmed')`
	res, err := r.db.ExecContext(ctx, query, eventID, memberID)
	if err != nil {
		return err
	}
	return requireAffected(res, domain.ErrNotRegistered)
}

func (r *eventRepository) UpdateParticipation(ctx context.Context, eventID, memberID uuid.UUID, status domain.ParticipationStatus, notes *string) error {
	query := `
		UPDATE event_participants
		SET status = $3, notes = COALESCE($4, notes)
		WHERE event_id = $1 AND member_id = $2`
	res, err := r.db.ExecContext(ctx, query, eventID, memberID, status, notes)
	if err != nil {
		return err
	}
	return requireAffected(res, domain.ErrNotRegistered)
}

func (r *eventRepository) ListParticipants(ctx context.Context, eventID uuid.UUID, params domain.PaginationParams) ([]domain.Participation, int64, error) {
	params.Validate()

	var total int64
	countQuery := `SELECT COUNT(*) FROM event_participants WHERE event_id = $1`
	if err := r.db.GetContext(ctx, &total, countQuery, eventID); err != nil {
		return nil, 0, err
	}

	query := `
		SELECT
			p.event_id, p.member_id, p.status, p.notes, p.registered_at,
			m.member_id AS ref_id, m.first_name, m.last_name, m.avatar_url
		FROM event_participants p
		LEFT JOIN members m ON p.member_id = m.member_id AND m.deleted_at IS NULL
		WHERE p.event_id = $1
		ORDER BY p.registered_at ASC
		LIMIT $2 OFFSET $3`

	rows, err := r.db.QueryxContext(ctx, query, eventID, params.PageSize, params.Offset())
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	var participants []domain.Participation
	for rows.Next() {
		var p domain.Participation
		var refID *uuid.UUID
		var firstName, lastName *string
		var avatarURL *string
		err := rows.Scan(
			&p.EventID, &p.MemberID, &p.Status, &p.Notes, &p.RegisteredAt,
			&refID, &firstName, &lastName, &avatarURL,
		)
		if err != nil {
			return nil, 0, err
		}
		ref := memberRefOrDefault(refID, firstName, lastName, avatarURL, domain.UnknownUser())
		p.Member = &ref
		participants = append(participants, p)
	}

	return participants, total, rows.Err()
}

func (r *eventRepository) CountParticipants(ctx context.Context, eventID uuid.UUID) (int64, error) {
	var count int64
	query := `SELECT COUNT(*) FROM event_participants WHERE event_id = $1`
	err := r.db.GetContext(ctx, &count, query, eventID)
	return count, err
}

// AddFeedback reports false when the member already left feedback; the
// unique key makes the duplicate check atomic.
func (r *eventRepository) AddFeedback(ctx context.Context, f *domain.EventFeedback) (bool, error) {
	query := `
		INSERT INTO event_feedback (event_id, member_id, rating, comment)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (event_id, member_id) DO NOTHING
		RETURNING created_at`

	err := r.db.QueryRowxContext(ctx, query, f.EventID, f.MemberID, f.Rating, f.Comment).Scan(&f.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}

func (r *eventRepository) ListFeedback(ctx context.Context, eventID uuid.UUID, params domain.PaginationParams) ([]domain.EventFeedback, int64, error) {
	params.Validate()

	var total int64
	countQuery := `SELECT COUNT(*) FROM event_feedback WHERE event_id = $1`
	if err := r.db.GetContext(ctx, &total, countQuery, eventID); err != nil {
		return nil, 0, err
	}

	query := `
		SELECT
			f.event_id, f.member_id, f.rating, f.comment, f.created_at,
			m.member_id AS ref_id, m.first_name, m.last_name, m.avatar_url
		FROM event_feedback f
		LEFT JOIN members m ON f.member_id = m.member_id AND m.deleted_at IS NULL
		WHERE f.event_id = $1
		ORDER BY f.created_at DESC
		LIMIT $2 OFFSET $3`

	rows, err := r.db.QueryxContext(ctx, query, eventID, params.PageSize, params.Offset())
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	var feedback []domain.EventFeedback
	for rows.Next() {
		var f domain.EventFeedback
		var refID *uuid.UUID
		var firstName, lastName *string
		var avatarURL *string
		err := rows.Scan(
			&f.EventID, &f.MemberID, &f.Rating, &f.Comment, &f.CreatedAt,
			&refID, &firstName, &lastName, &avatarURL,
		)
		if err != nil {
			return nil, 0, err
		}
		ref := memberRefOrDefault(refID, firstName, lastName, avatarURL, domain.UnknownUser())
		f.Member = &ref
		feedback = append(feedback, f)
	}

	return feedback, total, rows.Err()
}

func (r *eventRepository) AverageRating(ctx context.Context, eventID uuid.UUID) (float64, error) {
	var avg float64
	query := `SELECT COALESCE(ROUND(AVG(rating)::numeric, 1), 0) FROM event_feedback WHERE event_id = $1`
	err := r.db.GetContext(ctx, &avg, query, eventID)
	return avg, err
}
