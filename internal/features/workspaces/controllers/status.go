package workspaces_controllers

import (
	"errors"
	"net/http"

	workspaces_services "flowboard-backend/internal/features/workspaces/services"
)

// statusForError maps service sentinels onto HTTP statuses; anything
// unrecognized is treated as a validation failure.
func statusForError(err error) int {
	switch {
	case errors.Is(err, workspaces_services.ErrWorkspaceNotFound),
		errors.Is(err, workspaces_services.ErrInviteNotFound),
		errors.Is(err, workspaces_services.ErrUserNotFound):
		return http.StatusNotFound

	case errors.Is(err, workspaces_services.ErrNotMember),
		errors.Is(err, workspaces_services.ErrNotAuthorized):
		return http.StatusForbidden

	case errors.Is(err, workspaces_services.ErrSlugTaken),
		errors.Is(err, workspaces_services.ErrAlreadyMember):
		return http.StatusConflict

	case errors.Is(err, workspaces_services.ErrInviteExpired),
		errors.Is(err, workspaces_services.ErrInviteAlreadyUsed):
		return http.StatusGone

	default:
		return http.StatusBadRequest
	}
}
