package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/lumesistemas/clinic-manager/internal/domain/packages"
	"github.com/lumesistemas/clinic-manager/internal/models"
)

type PackageGormRepository struct {
	db *gorm.DB
}

func NewPackageGormRepository(db *gorm.DB) *PackageGormRepository {
	return &PackageGormRepository{db: db}
}

func (r *PackageGormRepository) ListActiveForClient(
	ctx context.Context,
	clinicID uint,
	clientID uint,
	serviceID *uint,
) ([]models.Package, error) {

	q := r.db.WithContext(ctx).
		Preload("Service").
		Where(
			"clinic_id = ? AND client_id = ? AND status = ? AND remaining_sessions > 0",
			clinicID, clientID, string(packages.StatusActive),
		)

	if serviceID != nil {
		q = q.Where("service_id = ?", *serviceID)
	}

	var pkgs []models.Package
	if err := q.Order("created_at DESC").Find(&pkgs).Error; err != nil {
		return nil, err
	}

	return pkgs, nil
}
