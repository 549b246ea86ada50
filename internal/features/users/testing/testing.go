package users_testing

import (
	"fmt"

	users_dto "flowboard-backend/internal/features/users/dto"
	users_models "flowboard-backend/internal/features/users/models"
	users_services "flowboard-backend/internal/features/users/services"

	"github.com/google/uuid"
)

// TestUser bundles the created account with a ready-to-use session token.
type TestUser struct {
	User  *users_models.User
	Token string
}

// CreateTestUser registers a user with a unique email through the real
// signup flow and returns it together with a session token.
func CreateTestUser() *TestUser {
	return CreateTestUserWithName("Test User")
}

func CreateTestUserWithName(fullName string) *TestUser {
	userService := users_services.GetUserService()

	email := fmt.Sprintf("user-%s@test.local", uuid.NewString()[:8])

	response, err := userService.SignUp(&users_dto.SignUpRequestDTO{
		Email:    email,
		Password: "test-password-123",
		FullName: fullName,
	})
	if err != nil {
		panic(fmt.Sprintf("failed to create test user: %v", err))
	}

	user, err := userService.GetUserByID(response.UserID)
	if err != nil {
		panic(fmt.Sprintf("failed to load test user: %v", err))
	}

	return &TestUser{User: user, Token: response.Token}
}
