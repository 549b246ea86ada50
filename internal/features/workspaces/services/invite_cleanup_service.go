package workspaces_services

import (
	"time"

	workspaces_repositories "flowboard-backend/internal/features/workspaces/repositories"

	"github.com/robfig/cron/v3"
)

// invites stay queryable for a month past expiry so the landing page can
// still explain why a stale link stopped working
const expiredInviteRetention = 30 * 24 * time.Hour

// InviteCleanupService purges long-expired invites on a nightly schedule.
type InviteCleanupService struct {
	inviteRepository *workspaces_repositories.InviteRepository
	scheduler        *cron.Cron
}

func (s *InviteCleanupService) Start() {
	s.scheduler = cron.New()

	if _, err := s.scheduler.AddFunc("0 3 * * *", s.RunCleanup); err != nil {
		log.Error("Failed to schedule invite cleanup", "error", err)
		return
	}

	s.scheduler.Start()
	log.Info("Invite cleanup scheduled")
}

func (s *InviteCleanupService) Stop() {
	if s.scheduler != nil {
		s.scheduler.Stop()
	}
}

func (s *InviteCleanupService) RunCleanup() {
	cutoff := time.Now().UTC().Add(-expiredInviteRetention)

	removed, err := s.inviteRepository.DeleteInvitesExpiredBefore(cutoff)
	if err != nil {
		log.Error("Failed to purge expired invites", "error", err)
		return
	}

	if removed > 0 {
		log.Info("Purged expired invites", "count", removed)
	}
}
