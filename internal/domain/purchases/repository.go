package purchases

import (
	"context"

	"github.com/barkprotocol/blinkshare-platform-sub000/internal/gateways/database/models"
)

//go:generate mockgen -source=repository.go -destination=mock/repository.go -package=mock

type Repository interface {
	Create(ctx context.Context, purchase *models.RolePurchase) error
}
