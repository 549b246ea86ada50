package users_models

import "flowboard-backend/internal/storage"

func init() {
	storage.RegisterModels(&User{}, &Profile{}, &EmailConfirmation{})
}
