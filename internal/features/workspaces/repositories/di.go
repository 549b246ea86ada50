package workspaces_repositories

var workspaceRepository = &WorkspaceRepository{}
var membershipRepository = &MembershipRepository{}
var inviteRepository = &InviteRepository{}

func GetWorkspaceRepository() *WorkspaceRepository {
	return workspaceRepository
}

func GetMembershipRepository() *MembershipRepository {
	return membershipRepository
}

func GetInviteRepository() *InviteRepository {
	return inviteRepository
}
