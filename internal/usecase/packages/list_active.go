package packages

import (
	"context"

	domain "github.com/lumesistemas/clinic-manager/internal/domain/packages"
	"github.com/lumesistemas/clinic-manager/internal/models"
)

// ListActiveForClient é a consulta que a tela de agendamento usa para
// oferecer "usar sessão do pacote" no lugar de um item pago.
type ListActiveForClient struct {
	repo domain.Repository
}

func NewListActiveForClient(repo domain.Repository) *ListActiveForClient {
	return &ListActiveForClient{repo: repo}
}

func (uc *ListActiveForClient) Execute(
	ctx context.Context,
	clinicID uint,
	clientID uint,
	serviceID *uint,
) ([]models.Package, error) {
	return uc.repo.ListActiveForClient(ctx, clinicID, clientID, serviceID)
}
