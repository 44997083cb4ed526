package appointment

import (
	"context"
	"time"

	domain "github.com/lumesistemas/clinic-manager/internal/domain/appointment"
	"github.com/lumesistemas/clinic-manager/internal/httperr"
	"github.com/lumesistemas/clinic-manager/internal/models"
)

// Bloqueios de agenda são faixas decorativas no calendário: não são
// validados contra agendamentos existentes nem contra novas criações.

type CreateCalendarBlockInput struct {
	ClinicID       uint
	ProfessionalID *uint

	Start  time.Time
	End    time.Time
	Reason string
}

type ManageCalendarBlocks struct {
	repo domain.Repository
}

func NewManageCalendarBlocks(repo domain.Repository) *ManageCalendarBlocks {
	return &ManageCalendarBlocks{repo: repo}
}

func (uc *ManageCalendarBlocks) Create(
	ctx context.Context,
	in CreateCalendarBlockInput,
) (*models.CalendarBlock, error) {

	if !in.End.After(in.Start) {
		return nil, httperr.ErrBusiness("invalid_time_range")
	}

	block := &models.CalendarBlock{
		ClinicID:       in.ClinicID,
		ProfessionalID: in.ProfessionalID,
		StartTime:      in.Start,
		EndTime:        in.End,
		Reason:         in.Reason,
	}

	if err := uc.repo.CreateCalendarBlock(ctx, block); err != nil {
		return nil, err
	}

	return block, nil
}

func (uc *ManageCalendarBlocks) List(
	ctx context.Context,
	clinicID uint,
	start time.Time,
	end time.Time,
) ([]models.CalendarBlock, error) {
	return uc.repo.ListCalendarBlocks(ctx, clinicID, start, end)
}

func (uc *ManageCalendarBlocks) Delete(
	ctx context.Context,
	clinicID uint,
	blockID uint,
) error {
	if err := uc.repo.DeleteCalendarBlock(ctx, clinicID, blockID); err != nil {
		return httperr.ErrBusiness("block_not_found")
	}
	return nil
}
