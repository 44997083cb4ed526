package packages

import (
	"context"

	"github.com/lumesistemas/clinic-manager/internal/models"
)

type Repository interface {
	ListActiveForClient(
		ctx context.Context,
		clinicID uint,
		clientID uint,
		serviceID *uint,
	) ([]models.Package, error)
}
