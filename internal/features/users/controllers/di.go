package users_controllers

import (
	users_services "flowboard-backend/internal/features/users/services"

	"golang.org/x/time/rate"
)

var userController = &UserController{
	users_services.GetUserService(),
	users_services.GetProfileService(),
	rate.NewLimiter(rate.Limit(3), 3), // 3 rps with 3 burst
}

var profileController = &ProfileController{
	users_services.GetProfileService(),
}

func GetUserController() *UserController {
	return userController
}

func GetProfileController() *ProfileController {
	return profileController
}
