package service

import (
	"github.com/minio/minio-go/v7"
	"github.com/redis/go-redis/v9"

	"clubhub/internal/config"
	"clubhub/internal/repository"
	"clubhub/internal/service/announcement"
	"clubhub/internal/service/auth"
	"clubhub/internal/service/contact"
	"clubhub/internal/service/dashboard"
	"clubhub/internal/service/donation"
	"clubhub/internal/service/email"
	"clubhub/internal/service/engagement"
	"clubhub/internal/service/event"
	"clubhub/internal/service/gallery"
	"clubhub/internal/service/member"
)

type Services struct {
	Auth         auth.Service
	Member       member.Service
	Announcement announcement.Service
	Event        event.Service
	Engagement   engagement.Service
	Donation     donation.Service
	Gallery      gallery.Service
	Contact      contact.Service
	Dashboard    dashboard.Service
	Email        email.Service
}

func NewServices(repos *repository.Repositories, redis *redis.Client, minioClient *minio.Client, cfg *config.Config) *Services {
	emailService := email.NewService(cfg)
	authService := auth.NewService(repos.Member, emailService, redis, cfg)
	memberService := member.NewService(repos.Member, emailService)
	engagementService := engagement.NewService(repos.Engagement)
	announcementService := announcement.NewService(repos.Announcement, engagementService, redis)
	eventService := event.NewService(repos.Event, engagementService, emailService, redis)
	donationService := donation.NewService(repos.Donation)
	galleryService := gallery.NewService(repos.Gallery, minioClient, cfg)
	contactService := contact.NewService(repos.Contact, emailService)
	dashboardService := dashboard.NewService(repos.Member, repos.Event, repos.Announcement, repos.Donation, redis)

	return &Services{
		Auth:         authService,
		Member:       memberService,
		Announcement: announcementService,
		Event:        eventService,
		Engagement:   engagementService,
		Donation:     donationService,
		Gallery:      galleryService,
		Contact:      contactService,
		Dashboard:    dashboardService,
		Email:        emailService,
	}
}
