package users_repositories

var userRepository = &UserRepository{}
var profileRepository = &ProfileRepository{}
var confirmationRepository = &ConfirmationRepository{}

func GetUserRepository() *UserRepository {
	return userRepository
}

func GetProfileRepository() *ProfileRepository {
	return profileRepository
}

func GetConfirmationRepository() *ConfirmationRepository {
	return confirmationRepository
}
