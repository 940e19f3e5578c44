package handler

import "clubhub/internal/service"

type Handlers struct {
	Auth         *AuthHandler
	Member       *MemberHandler
	Announcement *AnnouncementHandler
	Event        *EventHandler
	Comment      *CommentHandler
	Donation     *DonationHandler
	Gallery      *GalleryHandler
	Contact      *ContactHandler
	Dashboard    *DashboardHandler
}

func NewHandlers(services *service.Services) *Handlers {
	return &Handlers{
		Auth:         NewAuthHandler(services.Auth),
		Member:       NewMemberHandler(services.Member),
		Announcement: NewAnnouncementHandler(services.Announcement),
		Event:        NewEventHandler(services.Event),
		Comment:      NewCommentHandler(services.Engagement),
		Donation:     NewDonationHandler(services.Donation),
		Gallery:      NewGalleryHandler(services.Gallery),
		Contact:      NewContactHandler(services.Contact),
		Dashboard:    NewDashboardHandler(services.Dashboard),
	}
}
