package workspaces_models

import "flowboard-backend/internal/storage"

func init() {
	storage.RegisterModels(
		&Workspace{},
		&WorkspaceMember{},
		&WorkspaceInvite{},
	)
}
