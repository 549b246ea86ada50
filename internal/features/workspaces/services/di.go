package workspaces_services

import (
	users_repositories "flowboard-backend/internal/features/users/repositories"
	workspaces_repositories "flowboard-backend/internal/features/workspaces/repositories"
	"flowboard-backend/internal/util/logger"
)

var log = logger.GetLogger()

var workspaceService = &WorkspaceService{
	workspaceRepository:  workspaces_repositories.GetWorkspaceRepository(),
	membershipRepository: workspaces_repositories.GetMembershipRepository(),
	userRepository:       users_repositories.GetUserRepository(),
	profileRepository:    users_repositories.GetProfileRepository(),
}

var inviteService = &InviteService{
	inviteRepository:     workspaces_repositories.GetInviteRepository(),
	workspaceRepository:  workspaces_repositories.GetWorkspaceRepository(),
	membershipRepository: workspaces_repositories.GetMembershipRepository(),
	profileRepository:    users_repositories.GetProfileRepository(),
}

var inviteCleanupService = &InviteCleanupService{
	inviteRepository: workspaces_repositories.GetInviteRepository(),
}

func GetWorkspaceService() *WorkspaceService {
	return workspaceService
}

func GetInviteService() *InviteService {
	return inviteService
}

func GetInviteCleanupService() *InviteCleanupService {
	return inviteCleanupService
}
