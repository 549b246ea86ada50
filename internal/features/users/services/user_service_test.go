package users_services

import (
	"fmt"
	"testing"
	"time"

	users_dto "flowboard-backend/internal/features/users/dto"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func uniqueEmail() string {
	return fmt.Sprintf("user-%s@test.local", uuid.NewString()[:8])
}

func Test_SignUp_CreatesUserAndProfile(t *testing.T) {
	service := GetUserService()
	profileService := GetProfileService()
	email := uniqueEmail()

	response, err := service.SignUp(&users_dto.SignUpRequestDTO{
		Email:    email,
		Password: "password123",
		FullName: "Ada Lovelace",
	})
	require.NoError(t, err)
	assert.Equal(t, email, response.Email)
	assert.NotEmpty(t, response.Token)
	assert.False(t, response.EmailConfirmation)

	user, err := service.GetUserByID(response.UserID)
	require.NoError(t, err)

	profile, err := profileService.GetProfile(user)
	require.NoError(t, err)
	require.NotNil(t, profile)
	require.NotNil(t, profile.FullName)
	assert.Equal(t, "Ada Lovelace", *profile.FullName)
	assert.False(t, profile.OnboardingComplete)
}

func Test_SignUp_DuplicateEmail_Fails(t *testing.T) {
	service := GetUserService()
	email := uniqueEmail()

	_, err := service.SignUp(&users_dto.SignUpRequestDTO{
		Email:    email,
		Password: "password123",
		FullName: "First User",
	})
	require.NoError(t, err)

	_, err = service.SignUp(&users_dto.SignUpRequestDTO{
		Email:    email,
		Password: "password456",
		FullName: "Second User",
	})
	require.Error(t, err)
	assert.Equal(t, "user with this email already exists", err.Error())
}

func Test_SignIn_WrongPassword_Fails(t *testing.T) {
	service := GetUserService()
	email := uniqueEmail()

	_, err := service.SignUp(&users_dto.SignUpRequestDTO{
		Email:    email,
		Password: "password123",
		FullName: "Some User",
	})
	require.NoError(t, err)

	_, err = service.SignIn(&users_dto.SignInRequestDTO{
		Email:    email,
		Password: "wrong-password",
	})
	require.Error(t, err)
	assert.Equal(t, "password is incorrect", err.Error())
}

func Test_SignIn_UnknownEmail_Fails(t *testing.T) {
	service := GetUserService()

	_, err := service.SignIn(&users_dto.SignInRequestDTO{
		Email:    uniqueEmail(),
		Password: "whatever",
	})
	require.Error(t, err)
	assert.Equal(t, "user with this email does not exist", err.Error())
}

func Test_GetUserFromToken_RoundTrip(t *testing.T) {
	service := GetUserService()
	email := uniqueEmail()

	response, err := service.SignUp(&users_dto.SignUpRequestDTO{
		Email:    email,
		Password: "password123",
		FullName: "Token User",
	})
	require.NoError(t, err)

	user, err := service.GetUserFromToken(response.Token)
	require.NoError(t, err)
	assert.Equal(t, response.UserID, user.ID)

	expiry, err := service.TokenExpiry(response.Token)
	require.NoError(t, err)
	assert.WithinDuration(
		t,
		time.Now().UTC().Add(service.SessionTTL()),
		expiry,
		time.Minute,
	)
}

func Test_GetUserFromToken_GarbageToken_Fails(t *testing.T) {
	service := GetUserService()

	_, err := service.GetUserFromToken("garbage")
	assert.Error(t, err)
}
