package repository

import (
	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"clubhub/internal/domain"
)

type Repositories struct {
	Member       MemberRepository
	Announcement AnnouncementRepository
	Event        EventRepository
	Engagement   EngagementRepository
	Donation     DonationRepository
	Gallery      GalleryRepository
	Contact      ContactRepository
}

func NewRepositories(db *sqlx.DB) *Repositories {
	return &Repositories{
		Member:       NewMemberRepository(db),
		Announcement: NewAnnouncementRepository(db),
		Event:        NewEventRepository(db),
		Engagement:   NewEngagementRepository(db),
		Donation:     NewDonationRepository(db),
		Gallery:      NewGalleryRepository(db),
		Contact:      NewContactRepository(db),
	}
}

// memberRefOrDefault builds a MemberRef from the nullable columns of a
// left-joined members row. When the join came back empty (the member
// was deleted) it returns the given placeholder instead.
func memberRefOrDefault(id *uuid.UUID, firstName, lastName, avatarURL *string, fallback domain.MemberRef) domain.MemberRef {
	if id == nil {
		return fallback
	}
	return domain.MemberRef{ID: *id, FirstName: *firstName, LastName: *lastName, AvatarURL: avatarURL}
}
