package users_services

import (
	"context"
	"crypto/rand"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"math/big"
	"net/http"
	"time"

	"github.com/golang-jwt/jwt/v4"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"

	"flowboard-backend/internal/config"
	users_dto "flowboard-backend/internal/features/users/dto"
	users_interfaces "flowboard-backend/internal/features/users/interfaces"
	users_models "flowboard-backend/internal/features/users/models"
	users_repositories "flowboard-backend/internal/features/users/repositories"
)

const confirmationCodeLength = 32
const confirmationTTL = 24 * time.Hour

type UserService struct {
	userRepository         *users_repositories.UserRepository
	profileRepository      *users_repositories.ProfileRepository
	confirmationRepository *users_repositories.ConfirmationRepository
	auditLogWriter         users_interfaces.AuditLogWriter
}

func (s *UserService) SetAuditLogWriter(writer users_interfaces.AuditLogWriter) {
	s.auditLogWriter = writer
}

func (s *UserService) SignUp(
	request *users_dto.SignUpRequestDTO,
) (*users_dto.SignUpResponseDTO, error) {
	existingUser, err := s.userRepository.GetUserByEmail(request.Email)
	if err != nil {
		return nil, fmt.Errorf("failed to check existing user: %w", err)
	}

	if existingUser != nil {
		return nil, errors.New("user with this email already exists")
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(request.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	hashedPasswordStr := string(hashedPassword)
	requireConfirmation := config.GetEnv().RequireEmailConfirmation

	user := &users_models.User{
		ID:                   uuid.New(),
		Email:                request.Email,
		HashedPassword:       &hashedPasswordStr,
		PasswordCreationTime: time.Now().UTC(),
		EmailConfirmed:       !requireConfirmation,
		CreatedAt:            time.Now().UTC(),
	}

	if err := s.userRepository.CreateUser(user); err != nil {
		return nil, fmt.Errorf("failed to create user: %w", err)
	}

	// the automatic profile-creation path; the bootstrap endpoint covers
	// the case where this insert failed
	fullName := request.FullName
	profile := &users_models.Profile{
		ID:       user.ID,
		Email:    user.Email,
		FullName: &fullName,
	}

	if err := s.profileRepository.CreateProfile(profile); err != nil {
		log.Error("Failed to create profile at signup", "error", err, "userId", user.ID)
	}

	s.writeAuditLog(fmt.Sprintf("User registered with email: %s", user.Email), &user.ID, nil)

	if requireConfirmation {
		code, err := generateConfirmationCode()
		if err != nil {
			return nil, fmt.Errorf("failed to generate confirmation code: %w", err)
		}

		confirmation := &users_models.EmailConfirmation{
			UserID:    user.ID,
			Code:      code,
			ExpiresAt: time.Now().UTC().Add(confirmationTTL),
		}

		if err := s.confirmationRepository.CreateConfirmation(confirmation); err != nil {
			return nil, fmt.Errorf("failed to create confirmation: %w", err)
		}

		return &users_dto.SignUpResponseDTO{
			EmailConfirmation: true,
			UserID:            user.ID,
			Email:             user.Email,
		}, nil
	}

	token, err := s.GenerateAccessToken(user)
	if err != nil {
		return nil, err
	}

	return &users_dto.SignUpResponseDTO{
		UserID: user.ID,
		Email:  user.Email,
		Token:  token.Token,
	}, nil
}

func (s *UserService) SignIn(
	request *users_dto.SignInRequestDTO,
) (*users_dto.SignInResponseDTO, error) {
	user, err := s.userRepository.GetUserByEmail(request.Email)
	if err != nil {
		return nil, fmt.Errorf("failed to check user: %w", err)
	}

	if user == nil {
		return nil, errors.New("user with this email does not exist")
	}

	if !user.HasPassword() {
		return nil, errors.New("this account uses OAuth sign-in")
	}

	if !user.EmailConfirmed {
		return nil, errors.New(
			"please check your email and confirm your account before logging in",
		)
	}

	err = bcrypt.CompareHashAndPassword([]byte(*user.HashedPassword), []byte(request.Password))
	if err != nil {
		return nil, errors.New("password is incorrect")
	}

	response, err := s.GenerateAccessToken(user)
	if err != nil {
		return nil, err
	}

	s.writeAuditLog(fmt.Sprintf("User signed in with email: %s", user.Email), &user.ID, nil)

	return response, nil
}

// ExchangeConfirmationCode converts a one-time signup confirmation code
// into a session, marking the account's email as confirmed.
func (s *UserService) ExchangeConfirmationCode(
	code string,
) (*users_dto.SignInResponseDTO, error) {
	confirmation, err := s.confirmationRepository.GetConfirmationByCode(code)
	if err != nil {
		return nil, fmt.Errorf("failed to look up confirmation: %w", err)
	}

	if confirmation == nil {
		return nil, errors.New("confirmation code not found")
	}

	if confirmation.UsedAt != nil {
		return nil, errors.New("confirmation code already used")
	}

	if time.Now().UTC().After(confirmation.ExpiresAt) {
		return nil, errors.New("confirmation code expired")
	}

	if err := s.confirmationRepository.MarkConfirmationUsed(confirmation.ID); err != nil {
		return nil, fmt.Errorf("failed to consume confirmation: %w", err)
	}

	if err := s.userRepository.MarkEmailConfirmed(confirmation.UserID); err != nil {
		return nil, fmt.Errorf("failed to confirm email: %w", err)
	}

	user, err := s.userRepository.GetUserByID(confirmation.UserID)
	if err != nil {
		return nil, fmt.Errorf("failed to get user: %w", err)
	}

	s.writeAuditLog("Email confirmed", &user.ID, nil)

	return s.GenerateAccessToken(user)
}

func (s *UserService) GetUserFromToken(token string) (*users_models.User, error) {
	parsedToken, err := jwt.Parse(token, func(token *jwt.Token) (any, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return []byte(config.GetEnv().JwtSecret), nil
	})

	if err != nil {
		return nil, fmt.Errorf("invalid token: %w", err)
	}

	claims, ok := parsedToken.Claims.(jwt.MapClaims)
	if !ok || !parsedToken.Valid {
		return nil, errors.New("invalid token")
	}

	userIDStr, ok := claims["sub"].(string)
	if !ok {
		return nil, errors.New("invalid token claims")
	}

	userID, err := uuid.Parse(userIDStr)
	if err != nil {
		return nil, errors.New("invalid token claims")
	}

	user, err := s.userRepository.GetUserByID(userID)
	if err != nil {
		return nil, err
	}

	if passwordCreationTimeUnix, ok := claims["passwordCreationTime"].(float64); ok {
		tokenPasswordTime := time.Unix(int64(passwordCreationTimeUnix), 0)

		tokenTimeSeconds := tokenPasswordTime.Truncate(time.Second)
		userTimeSeconds := user.PasswordCreationTime.Truncate(time.Second)

		if !tokenTimeSeconds.Equal(userTimeSeconds) {
			return nil, errors.New("password has been changed, please sign in again")
		}
	} else {
		return nil, errors.New("invalid token claims: missing password creation time")
	}

	return user, nil
}

// TokenExpiry returns when the given (already validated) token expires.
func (s *UserService) TokenExpiry(token string) (time.Time, error) {
	parsedToken, err := jwt.Parse(token, func(token *jwt.Token) (any, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return []byte(config.GetEnv().JwtSecret), nil
	})
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid token: %w", err)
	}

	claims, ok := parsedToken.Claims.(jwt.MapClaims)
	if !ok {
		return time.Time{}, errors.New("invalid token claims")
	}

	expUnix, ok := claims["exp"].(float64)
	if !ok {
		return time.Time{}, errors.New("invalid token claims: missing expiry")
	}

	return time.Unix(int64(expUnix), 0), nil
}

func (s *UserService) SessionTTL() time.Duration {
	return time.Duration(config.GetEnv().SessionTTLHours) * time.Hour
}

func (s *UserService) GenerateAccessToken(
	user *users_models.User,
) (*users_dto.SignInResponseDTO, error) {
	expiration := time.Now().UTC().Add(s.SessionTTL())

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"sub":                  user.ID.String(),
		"exp":                  expiration.Unix(),
		"iat":                  time.Now().UTC().Unix(),
		"passwordCreationTime": user.PasswordCreationTime.Unix(),
	})

	tokenString, err := token.SignedString([]byte(config.GetEnv().JwtSecret))
	if err != nil {
		return nil, fmt.Errorf("failed to generate token: %w", err)
	}

	return &users_dto.SignInResponseDTO{
		UserID: user.ID,
		Email:  user.Email,
		Token:  tokenString,
	}, nil
}

func (s *UserService) GetUserByID(userID uuid.UUID) (*users_models.User, error) {
	return s.userRepository.GetUserByID(userID)
}

func (s *UserService) GetUserByEmail(email string) (*users_models.User, error) {
	return s.userRepository.GetUserByEmail(email)
}

func (s *UserService) HandleGoogleOAuth(
	code, redirectUri string,
) (*users_dto.OAuthCallbackResponseDTO, error) {
	return s.handleGoogleOAuthWithEndpoint(
		code,
		redirectUri,
		google.Endpoint,
		"https://www.googleapis.com/oauth2/v2/userinfo",
	)
}

func (s *UserService) handleGoogleOAuthWithEndpoint(
	code, redirectUri string,
	endpoint oauth2.Endpoint,
	userAPIURL string,
) (*users_dto.OAuthCallbackResponseDTO, error) {
	env := config.GetEnv()

	oauthConfig := &oauth2.Config{
		ClientID:     env.GoogleClientID,
		ClientSecret: env.GoogleClientSecret,
		RedirectURL:  redirectUri,
		Endpoint:     endpoint,
		Scopes: []string{
			"https://www.googleapis.com/auth/userinfo.email",
			"https://www.googleapis.com/auth/userinfo.profile",
		},
	}

	token, err := oauthConfig.Exchange(context.Background(), code)
	if err != nil {
		return nil, fmt.Errorf("failed to exchange code: %w", err)
	}

	client := oauthConfig.Client(context.Background(), token)
	resp, err := client.Get(userAPIURL)
	if err != nil {
		return nil, fmt.Errorf("failed to get user info: %w", err)
	}
	defer func() {
		_ = resp.Body.Close()
	}()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("google API returned status %d", resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response body: %w", err)
	}

	var googleUser struct {
		ID    string `json:"id"`
		Email string `json:"email"`
		Name  string `json:"name"`
	}

	if err := json.Unmarshal(body, &googleUser); err != nil {
		return nil, fmt.Errorf("failed to parse user info: %w", err)
	}

	if googleUser.Email == "" {
		return nil, errors.New("google account has no email")
	}

	name := googleUser.Name
	if name == "" {
		name = "User"
	}

	return s.getOrCreateUserFromOAuth(googleUser.ID, googleUser.Email, name)
}

func (s *UserService) getOrCreateUserFromOAuth(
	oauthID, email, name string,
) (*users_dto.OAuthCallbackResponseDTO, error) {
	existingUser, err := s.userRepository.GetUserByGoogleOAuthID(oauthID)
	if err != nil {
		return nil, fmt.Errorf("failed to check OAuth ID: %w", err)
	}

	if existingUser != nil {
		tokenResponse, err := s.GenerateAccessToken(existingUser)
		if err != nil {
			return nil, err
		}

		s.writeAuditLog("User signed in via google", &existingUser.ID, nil)

		return &users_dto.OAuthCallbackResponseDTO{
			UserID:    tokenResponse.UserID,
			Email:     existingUser.Email,
			Token:     tokenResponse.Token,
			IsNewUser: false,
		}, nil
	}

	userByEmail, err := s.userRepository.GetUserByEmail(email)
	if err != nil {
		return nil, fmt.Errorf("failed to check email: %w", err)
	}

	if userByEmail != nil {
		if err := s.userRepository.LinkGoogleOAuthID(userByEmail.ID, oauthID); err != nil {
			return nil, fmt.Errorf("failed to link OAuth ID: %w", err)
		}

		tokenResponse, err := s.GenerateAccessToken(userByEmail)
		if err != nil {
			return nil, err
		}

		s.writeAuditLog("Google OAuth linked to existing account", &userByEmail.ID, nil)

		return &users_dto.OAuthCallbackResponseDTO{
			UserID:    tokenResponse.UserID,
			Email:     userByEmail.Email,
			Token:     tokenResponse.Token,
			IsNewUser: false,
		}, nil
	}

	newUser := &users_models.User{
		ID:                   uuid.New(),
		Email:                email,
		HashedPassword:       nil,
		GoogleOAuthID:        &oauthID,
		PasswordCreationTime: time.Now().UTC(),
		EmailConfirmed:       true,
		CreatedAt:            time.Now().UTC(),
	}

	if err := s.userRepository.CreateUser(newUser); err != nil {
		return nil, fmt.Errorf("failed to create user: %w", err)
	}

	profile := &users_models.Profile{
		ID:       newUser.ID,
		Email:    newUser.Email,
		FullName: &name,
	}
	if err := s.profileRepository.CreateProfile(profile); err != nil {
		log.Error("Failed to create profile for OAuth user", "error", err, "userId", newUser.ID)
	}

	tokenResponse, err := s.GenerateAccessToken(newUser)
	if err != nil {
		return nil, err
	}

	s.writeAuditLog(fmt.Sprintf("User registered via google OAuth: %s", email), &newUser.ID, nil)

	return &users_dto.OAuthCallbackResponseDTO{
		UserID:    tokenResponse.UserID,
		Email:     newUser.Email,
		Token:     tokenResponse.Token,
		IsNewUser: true,
	}, nil
}

func (s *UserService) writeAuditLog(message string, userID, workspaceID *uuid.UUID) {
	if s.auditLogWriter != nil {
		s.auditLogWriter.WriteAuditLog(message, userID, workspaceID)
	}
}

func generateConfirmationCode() (string, error) {
	const chars = "ABCDEFGHIJKLMNOPQRSTUVWXYZabcdefghijklmnopqrstuvwxyz0123456789"

	code := make([]byte, confirmationCodeLength)
	for i := range code {
		idx, err := rand.Int(rand.Reader, big.NewInt(int64(len(chars))))
		if err != nil {
			return "", err
		}
		code[i] = chars[idx.Int64()]
	}

	return string(code), nil
}
