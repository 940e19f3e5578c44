package domain

type DashboardStats struct {
	MembersByRole          map[string]int64       `json:"members_by_role"`
	PendingApprovals       int64                  `json:"pending_approvals"`
	EventsByStatus         map[string]int64       `json:"events_by_status"`
	AnnouncementsPublished int64                  `json:"announcements_published"`
	DonationsVerifiedTotal float64                `json:"donations_verified_total"`
	DonationsPending       int64                  `json:"donations_pending"`
	MonthlyDonations       []MonthlyDonationTotal `json:"monthly_donations"`
}
