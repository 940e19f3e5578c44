package repository

import (
	"context"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"clubhub/internal/domain"
)

// EngagementRepository tracks views, likes and comments for both
// announcements and events, keyed by (kind, entity_id, member_id).
// Every mutation is a single conditional statement so concurrent
// requests from the same actor cannot produce duplicate records.
type EngagementRepository interface {
	AddView(ctx context.Context, kind domain.EntityKind, entityID, memberID uuid.UUID, ip *string) error
	ToggleLike(ctx context.Context, kind domain.EntityKind, entityID, memberID uuid.UUID) (bool, error)
	AddComment(ctx context.Context, kind domain.EntityKind, comment *domain.Comment) error
	GetComment(ctx context.Context, id uuid.UUID) (*domain.Comment, error)
	DeleteComment(ctx context.Context, id uuid.UUID) error
	ListComments(ctx context.Context, kind domain.EntityKind, entityID uuid.UUID, params domain.PaginationParams) ([]domain.Comment, int64, error)
	ListLikes(ctx context.Context, kind domain.EntityKind, entityID uuid.UUID, params domain.PaginationParams) ([]domain.Like, int64, error)
	Summary(ctx context.Context, kind domain.EntityKind, entityID, viewerID uuid.UUID) (domain.EngagementSummary, error)
}

type engagementRepository struct {
	db *sqlx.DB
}

func NewEngagementRepository(db *sqlx.DB) EngagementRepository {
	return &engagementRepository{db: db}
}

func (r *engagementRepository) AddView(ctx context.Context, kind domain.EntityKind, entityID, memberID uuid.UUID, ip *string) error {
	query := `
		INSERT INTO engagement_views (kind, entity_id, member_id, ip_address)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (kind, entity_id, member_id) DO NOTHING`

	_, err := r.db.ExecContext(ctx, query, kind, entityID, memberID, ip)
	return err
}

// ToggleLike inserts the like if absent, deletes it otherwise, and
// returns whether the entity is liked afterwards. Each branch is a
// single atomic statement; the unique key absorbs concurrent toggles.
func (r *engagementRepository) ToggleLike(ctx context.Context, kind domain.EntityKind, entityID, memberID uuid.UUID) (bool, error) {
	insert := `
		INSERT INTO engagement_likes (kind, entity_id, member_id)
		VALUES ($1, $2, $3)
		ON CONFLICT (kind, entity_id, member_id) DO NOTHING`

	res, err := r.db.ExecContext(ctx, insert, kind, entityID, memberID)
	if err != nil {
		return false, err
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return false, err
	}
	if affected > 0 {
		return true, nil
	}

	del := `DELETE FROM engagement_likes WHERE kind = $1 AND entity_id = $2 AND member_id = $3`
	if _, err := r.db.ExecContext(ctx, del, kind, entityID, memberID); err != nil {
		return false, err
	}
	return false, nil
}

func (r *engagementRepository) AddComment(ctx context.Context, kind domain.EntityKind, comment *domain.Comment) error {
	query := `
		INSERT INTO engagement_comments (comment_id, kind, entity_id, member_id, content)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING created_at`

	return r.db.QueryRowxContext(ctx, query,
		comment.ID, kind, comment.EntityID, comment.MemberID, comment.Content,
	).Scan(&comment.CreatedAt)
}

func (r *engagementRepository) GetComment(ctx context.Context, id uuid.UUID) (*domain.Comment, error) {
	var c domain.Comment
	query := `SELECT comment_id, entity_id, member_id, content, created_at FROM engagement_comments WHERE comment_id = $1`
	err := r.db.GetContext(ctx, &c, query, id)
	return &c, err
}

func (r *engagementRepository) DeleteComment(ctx context.Context, id uuid.UUID) error {
	query := `DELETE FROM engagement_comments WHERE comment_id = $1`
	res, err := r.db.ExecContext(ctx, query, id)
	if err != nil {
		return err
	}
	return requireAffected(res, domain.ErrCommentNotFound)
}

// ListComments keeps insertion order and left-joins authors so a
// comment by a deleted member still renders with a placeholder author.
func (r *engagementRepository) ListComments(ctx context.Context, kind domain.EntityKind, entityID uuid.UUID, params domain.PaginationParams) ([]domain.Comment, int64, error) {
	params.Validate()

	var total int64
	countQuery := `SELECT COUNT(*) FROM engagement_comments WHERE kind = $1 AND entity_id = $2`
	if err := r.db.GetContext(ctx, &total, countQuery, kind, entityID); err != nil {
		return nil, 0, err
	}

	query := `
		SELECT
			c.comment_id, c.entity_id, c.member_id, c.content, c.created_at,
			m.member_id AS author_id, m.first_name, m.last_name, m.avatar_url
		FROM engagement_comments c
		LEFT JOIN members m ON c.member_id = m.member_id AND m.deleted_at IS NULL
		WHERE c.kind = $1 AND c.entity_id = $2
		ORDER BY c.created_at ASC
		LIMIT $3 OFFSET $4`

	rows, err := r.db.QueryxContext(ctx, query, kind, entityID, params.PageSize, params.Offset())
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	var comments []domain.Comment
	for rows.Next() {
		var c domain.Comment
		var authorID *uuid.UUID
		var firstName, lastName *string
		var avatarURL *string
		err := rows.Scan(
			&c.ID, &c.EntityID, &c.MemberID, &c.Content, &c.CreatedAt,
			&authorID, &firstName, &lastName, &avatarURL,
		)
		if err != nil {
			return nil, 0, err
		}
		c.Author = memberRefOrDefault(authorID, firstName, lastName, avatarURL, domain.UnknownAuthor())
		comments = append(comments, c)
	}

	return comments, total, rows.Err()
}

// ListLikes inner-joins members, silently dropping likes whose member
// has been deleted.
func (r *engagementRepository) ListLikes(ctx context.Context, kind domain.EntityKind, entityID uuid.UUID, params domain.PaginationParams) ([]domain.Like, int64, error) {
	params.Validate()

	var total int64
	countQuery := `
		SELECT COUNT(*)
		FROM engagement_likes l
		INNER JOIN members m ON l.member_id = m.member_id AND m.deleted_at IS NULL
		WHERE l.kind = $1 AND l.entity_id = $2`
	if err := r.db.GetContext(ctx, &total, countQuery, kind, entityID); err != nil {
		return nil, 0, err
	}

	query := `
		SELECT
			l.entity_id, l.member_id, l.liked_at,
			m.member_id AS ref_id, m.first_name, m.last_name, m.avatar_url
		FROM engagement_likes l
		INNER JOIN members m ON l.member_id = m.member_id AND m.deleted_at IS NULL
		WHERE l.kind = $1 AND l.entity_id = $2
		ORDER BY l.liked_at DESC
		LIMIT $3 OFFSET $4`

	rows, err := r.db.QueryxContext(ctx, query, kind, entityID, params.PageSize, params.Offset())
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	var likes []domain.Like
	for rows.Next() {
		var l domain.Like
		var ref domain.MemberRef
		err := rows.Scan(
			&l.EntityID, &l.MemberID, &l.LikedAt,
			&ref.ID, &ref.FirstName, &ref.LastName, &ref.AvatarURL,
		)
		if err != nil {
			return nil, 0, err
		}
		l.Member = &ref
		likes = append(likes, l)
	}

	return likes, total, rows.Err()
}

func (r *engagementRepository) Summary(ctx context.Context, kind domain.EntityKind, entityID, viewerID uuid.UUID) (domain.EngagementSummary, error) {
	var summary domain.EngagementSummary
	query := `
		SELECT
			(SELECT COUNT(*) FROM engagement_views WHERE kind = $1 AND entity_id = $2) AS views,
			(SELECT COUNT(*) FROM engagement_likes WHERE kind = $1 AND entity_id = $2) AS likes,
			(SELECT COUNT(*) FROM engagement_comments WHERE kind = $1 AND entity_id = $2) AS comments,
			EXISTS (SELECT 1 FROM engagement_likes WHERE kind = $1 AND entity_id = $2 AND member_id = $3) AS liked`

	err := r.db.QueryRowxContext(ctx, query, kind, entityID, viewerID).
		Scan(&summary.Views, &summary.Likes, &summary.Comments, &summary.Liked)
	return summary, err
}
