package users_services

import (
	users_repositories "flowboard-backend/internal/features/users/repositories"
	"flowboard-backend/internal/util/logger"
)

var log = logger.GetLogger()

var userService = &UserService{
	users_repositories.GetUserRepository(),
	users_repositories.GetProfileRepository(),
	users_repositories.GetConfirmationRepository(),
	nil,
}

var profileService = &ProfileService{
	users_repositories.GetProfileRepository(),
	nil,
}

func GetUserService() *UserService {
	return userService
}

func GetProfileService() *ProfileService {
	return profileService
}
