package workspaces_controllers

import (
	workspaces_services "flowboard-backend/internal/features/workspaces/services"
)

var workspaceController = &WorkspaceController{
	workspaces_services.GetWorkspaceService(),
}

var inviteController = &InviteController{
	workspaces_services.GetInviteService(),
}

func GetWorkspaceController() *WorkspaceController {
	return workspaceController
}

func GetInviteController() *InviteController {
	return inviteController
}
