package users_services

import (
	"testing"

	users_dto "flowboard-backend/internal/features/users/dto"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func Test_BootstrapProfile_IsIdempotent(t *testing.T) {
	userService := GetUserService()
	profileService := GetProfileService()

	response, err := userService.SignUp(&users_dto.SignUpRequestDTO{
		Email:    uniqueEmail(),
		Password: "password123",
		FullName: "Bootstrap User",
	})
	require.NoError(t, err)

	user, err := userService.GetUserByID(response.UserID)
	require.NoError(t, err)

	// signup already created the profile; bootstrapping again must hit the
	// unique constraint and report success anyway
	require.NoError(t, profileService.BootstrapProfile(user, "Bootstrap User"))
	require.NoError(t, profileService.BootstrapProfile(user, "Bootstrap User"))

	profile, err := profileService.GetProfile(user)
	require.NoError(t, err)
	require.NotNil(t, profile)
	assert.Equal(t, user.Email, profile.Email)
}

func Test_UpdateProfile_ChangesFields(t *testing.T) {
	userService := GetUserService()
	profileService := GetProfileService()

	response, err := userService.SignUp(&users_dto.SignUpRequestDTO{
		Email:    uniqueEmail(),
		Password: "password123",
		FullName: "Before Rename",
	})
	require.NoError(t, err)

	user, err := userService.GetUserByID(response.UserID)
	require.NoError(t, err)

	newName := "After Rename"
	avatarURL := "https://cdn.test.local/avatar.png"
	require.NoError(t, profileService.UpdateProfile(user, &users_dto.UpdateProfileRequestDTO{
		FullName:  &newName,
		AvatarURL: &avatarURL,
	}))

	profile, err := profileService.GetProfile(user)
	require.NoError(t, err)
	require.NotNil(t, profile)
	require.NotNil(t, profile.FullName)
	assert.Equal(t, newName, *profile.FullName)
	require.NotNil(t, profile.AvatarURL)
	assert.Equal(t, avatarURL, *profile.AvatarURL)
}

func Test_CompleteOnboarding_SetsFlag(t *testing.T) {
	userService := GetUserService()
	profileService := GetProfileService()

	response, err := userService.SignUp(&users_dto.SignUpRequestDTO{
		Email:    uniqueEmail(),
		Password: "password123",
		FullName: "Onboarding User",
	})
	require.NoError(t, err)

	user, err := userService.GetUserByID(response.UserID)
	require.NoError(t, err)

	require.NoError(t, profileService.CompleteOnboarding(user))

	currentUser, err := profileService.GetCurrentUser(user)
	require.NoError(t, err)
	assert.True(t, currentUser.OnboardingComplete)
}
