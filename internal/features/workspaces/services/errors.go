package workspaces_services

import "errors"

var (
	ErrWorkspaceNotFound = errors.New("workspace not found")
	ErrSlugInvalid       = errors.New(
		"slug must contain only lowercase letters, numbers and hyphens",
	)
	ErrSlugTaken = errors.New("a workspace with this slug already exists")

	ErrNotMember     = errors.New("you are not a member of this workspace")
	ErrNotAuthorized = errors.New("you do not have permission to perform this action")

	ErrInvalidRole        = errors.New("invalid role")
	ErrOwnerRoleImmutable = errors.New("the workspace owner's role cannot be changed")
	ErrCannotGrantOwner   = errors.New("the owner role cannot be granted")
	ErrCannotRemoveOwner  = errors.New("the workspace owner cannot be removed")

	ErrUserNotFound  = errors.New("no account exists for this email")
	ErrAlreadyMember = errors.New("user is already a member of this workspace")

	ErrInviteNotFound    = errors.New("invite not found")
	ErrInviteExpired     = errors.New("this invite has expired")
	ErrInviteAlreadyUsed = errors.New("this invite has already been used")
	ErrInviteCodeClash   = errors.New("failed to generate a unique invite code")
)
