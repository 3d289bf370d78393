package contracts

import (
	"context"
	"vetcare-service/internal/app/models"
)

type UserRepository interface {
	FindByID(ctx context.Context, userID string) (*models.User, error)
}
