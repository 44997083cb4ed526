package appointment

import (
	"context"

	"github.com/lumesistemas/clinic-manager/internal/audit"
	domain "github.com/lumesistemas/clinic-manager/internal/domain/appointment"
	"github.com/lumesistemas/clinic-manager/internal/domain/packages"
	"github.com/lumesistemas/clinic-manager/internal/httperr"
	"github.com/lumesistemas/clinic-manager/internal/models"
	"github.com/lumesistemas/clinic-manager/internal/timezone"
)

// UpdateAppointmentStatus propaga a mudança de status para todos os
// agendamentos do mesmo cliente no mesmo dia: a visita do dia é tratada
// como um bloco único, mesmo com vários serviços em sequência.
type UpdateAppointmentStatus struct {
	repo  domain.Repository
	cache CalendarCache
	audit *audit.Dispatcher
}

func NewUpdateAppointmentStatus(
	repo domain.Repository,
	cache CalendarCache,
	audit *audit.Dispatcher,
) *UpdateAppointmentStatus {
	return &UpdateAppointmentStatus{
		repo:  repo,
		cache: cache,
		audit: audit,
	}
}

func (uc *UpdateAppointmentStatus) Execute(
	ctx context.Context,
	clinicID uint,
	userID uint,
	appointmentID uint,
	newStatus domain.Status,
) error {

	if !domain.IsValid(newStatus) {
		return httperr.ErrBusiness("invalid_status")
	}

	clinic, err := uc.repo.GetClinicByID(ctx, clinicID)
	if err != nil {
		return err
	}

	target, err := uc.repo.GetAppointment(ctx, clinicID, appointmentID)
	if err != nil {
		return httperr.ErrBusiness("appointment_not_found")
	}

	loc := timezone.Location(clinic.Timezone)
	dayStart, dayEnd := domain.DayWindow(target.StartTime.In(loc))

	sameDay, err := uc.repo.ListClientAppointmentsBetween(
		ctx,
		clinicID,
		target.ClientID,
		dayStart,
		dayEnd,
	)
	if err != nil {
		return err
	}

	now := timezone.NowIn(clinic.Timezone)

	// Ledger e cascata andam juntos: um update que falha no meio não pode
	// deixar sessões devolvidas (ou debitadas) sem o status correspondente.
	err = uc.repo.Atomically(ctx, func(repo domain.Repository) error {
		for i := range sameDay {
			ap := &sameDay[i]

			// Já está no status pedido: nada a escrever, nada a debitar.
			if ap.Status == string(newStatus) {
				continue
			}

			if err := applyPackageEffect(ctx, repo, clinicID, ap, newStatus); err != nil {
				return err
			}

			domain.SetStatus(ap, newStatus, now)

			if err := repo.UpdateAppointment(ctx, ap); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return err
	}

	for i := range sameDay {
		uc.cache.InvalidateDay(ctx, sameDay[i].ProfessionalID, sameDay[i].StartTime.In(loc))
	}

	uc.audit.Dispatch(audit.Event{
		ClinicID: clinicID,
		UserID:   &userID,
		Action:   "appointment_status_" + string(newStatus),
		Entity:   "appointment",
		EntityID: &appointmentID,
		Metadata: map[string]any{"same_day": len(sameDay)},
	})

	return nil
}

// applyPackageEffect mantém o ledger do pacote nas bordas do CANCELLED:
// entrar devolve a sessão, sair volta a consumir.
func applyPackageEffect(
	ctx context.Context,
	repo domain.Repository,
	clinicID uint,
	ap *models.Appointment,
	newStatus domain.Status,
) error {

	if ap.PackageID == nil {
		return nil
	}

	entering := newStatus == domain.StatusCancelled &&
		ap.Status != string(domain.StatusCancelled)
	leaving := newStatus != domain.StatusCancelled &&
		ap.Status == string(domain.StatusCancelled)

	if !entering && !leaving {
		return nil
	}

	pkg, err := repo.GetPackage(ctx, clinicID, *ap.PackageID)
	if err != nil {
		return httperr.ErrBusiness("package_not_found")
	}

	if entering {
		packages.Refund(pkg)
	}

	if leaving {
		// Sem saldo restante a reativação segue sem debitar.
		if pkg.RemainingSessions > 0 {
			if err := packages.Consume(pkg); err != nil {
				return err
			}
		} else {
			return nil
		}
	}

	return repo.UpdatePackage(ctx, pkg)
}
