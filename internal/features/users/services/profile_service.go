package users_services

import (
	"errors"
	"fmt"

	users_dto "flowboard-backend/internal/features/users/dto"
	users_interfaces "flowboard-backend/internal/features/users/interfaces"
	users_models "flowboard-backend/internal/features/users/models"
	users_repositories "flowboard-backend/internal/features/users/repositories"
	"flowboard-backend/internal/storage"
)

type ProfileService struct {
	profileRepository *users_repositories.ProfileRepository
	auditLogWriter    users_interfaces.AuditLogWriter
}

func (s *ProfileService) SetAuditLogWriter(writer users_interfaces.AuditLogWriter) {
	s.auditLogWriter = writer
}

func (s *ProfileService) GetProfile(user *users_models.User) (*users_models.Profile, error) {
	return s.profileRepository.GetProfileByID(user.ID)
}

func (s *ProfileService) GetCurrentUser(
	user *users_models.User,
) (*users_dto.CurrentUserResponseDTO, error) {
	profile, err := s.profileRepository.GetProfileByID(user.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to get profile: %w", err)
	}

	response := &users_dto.CurrentUserResponseDTO{
		ID:        user.ID,
		Email:     user.Email,
		CreatedAt: user.CreatedAt,
	}

	if profile != nil {
		response.FullName = profile.FullName
		response.AvatarURL = profile.AvatarURL
		response.OnboardingComplete = profile.OnboardingComplete
	}

	return response, nil
}

func (s *ProfileService) UpdateProfile(
	user *users_models.User,
	request *users_dto.UpdateProfileRequestDTO,
) error {
	profile, err := s.profileRepository.GetProfileByID(user.ID)
	if err != nil {
		return fmt.Errorf("failed to get profile: %w", err)
	}

	if profile == nil {
		return errors.New("profile not found")
	}

	if err := s.profileRepository.UpdateProfileInfo(
		user.ID,
		request.FullName,
		request.AvatarURL,
	); err != nil {
		return fmt.Errorf("failed to update profile: %w", err)
	}

	if s.auditLogWriter != nil {
		s.auditLogWriter.WriteAuditLog("Profile updated", &user.ID, nil)
	}

	return nil
}

func (s *ProfileService) CompleteOnboarding(user *users_models.User) error {
	if err := s.profileRepository.SetOnboardingComplete(user.ID); err != nil {
		return fmt.Errorf("failed to complete onboarding: %w", err)
	}

	return nil
}

// BootstrapProfile is the fail-safe manual profile creation used when the
// automatic creation at signup did not run. A uniqueness conflict means the
// automatic path won the race, which counts as success.
func (s *ProfileService) BootstrapProfile(
	user *users_models.User,
	fullName string,
) error {
	profile := &users_models.Profile{
		ID:       user.ID,
		Email:    user.Email,
		FullName: &fullName,
	}

	if err := s.profileRepository.CreateProfile(profile); err != nil {
		if storage.IsUniqueViolation(err) {
			return nil
		}

		return fmt.Errorf("failed to create profile: %w", err)
	}

	if s.auditLogWriter != nil {
		s.auditLogWriter.WriteAuditLog("Profile bootstrapped manually", &user.ID, nil)
	}

	return nil
}
