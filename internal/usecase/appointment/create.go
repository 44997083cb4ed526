package appointment

import (
	"context"
	"time"

	"github.com/lumesistemas/clinic-manager/internal/audit"
	domain "github.com/lumesistemas/clinic-manager/internal/domain/appointment"
	"github.com/lumesistemas/clinic-manager/internal/domain/packages"
	"github.com/lumesistemas/clinic-manager/internal/httperr"
	"github.com/lumesistemas/clinic-manager/internal/models"
	"github.com/lumesistemas/clinic-manager/internal/timezone"
)

// ======================================================
// INPUT
// ======================================================

type CreateAppointmentInput struct {
	ClinicID       uint
	ProfessionalID uint

	ClientID  uint
	ServiceID uint

	RoomID    *uint
	PackageID *uint

	Date  string
	Time  string
	Notes string
}

// ======================================================
// USE CASE
// ======================================================

type CreateAppointment struct {
	repo  domain.Repository
	cache CalendarCache
	audit *audit.Dispatcher
}

func NewCreateAppointment(
	repo domain.Repository,
	cache CalendarCache,
	audit *audit.Dispatcher,
) *CreateAppointment {
	return &CreateAppointment{
		repo:  repo,
		cache: cache,
		audit: audit,
	}
}

// ======================================================
// EXECUTE
// ======================================================

func (uc *CreateAppointment) Execute(
	ctx context.Context,
	in CreateAppointmentInput,
) (*models.Appointment, error) {

	if in.ClientID == 0 {
		return nil, httperr.ErrBusiness("missing_client")
	}

	clinic, err := uc.repo.GetClinicByID(ctx, in.ClinicID)
	if err != nil {
		return nil, err
	}

	start, err := time.ParseInLocation(
		"2006-01-02 15:04",
		in.Date+" "+in.Time,
		timezone.Location(clinic.Timezone),
	)
	if err != nil {
		return nil, httperr.ErrBusiness("invalid_date_or_time")
	}

	if _, err := uc.repo.GetClient(ctx, in.ClinicID, in.ClientID); err != nil {
		return nil, httperr.ErrBusiness("client_not_found")
	}

	service, err := uc.repo.GetService(ctx, in.ClinicID, in.ServiceID)
	if err != nil {
		return nil, httperr.ErrBusiness("service_not_found")
	}

	end := start.Add(time.Duration(service.DurationMin) * time.Minute)

	ap := &models.Appointment{
		ClinicID:       in.ClinicID,
		ProfessionalID: in.ProfessionalID,
		ClientID:       in.ClientID,
		ServiceID:      in.ServiceID,
		RoomID:         in.RoomID,
		PackageID:      in.PackageID,
		StartTime:      start,
		EndTime:        end,
		Status:         string(domain.InitialStatus()),
		Notes:          in.Notes,
	}

	// Checagem de conflito, débito da sessão e insert em uma transação só:
	// um insert que falha não pode deixar a sessão do pacote consumida.
	err = uc.repo.Atomically(ctx, func(repo domain.Repository) error {

		// Conflito do profissional: statuses cancelados e falta não bloqueiam.
		if err := repo.AssertNoProfessionalConflict(
			ctx,
			in.ProfessionalID,
			start,
			end,
		); err != nil {
			return err
		}

		// Conflito de sala, só quando uma sala foi escolhida.
		if in.RoomID != nil {
			if err := repo.AssertNoRoomConflict(
				ctx,
				*in.RoomID,
				start,
				end,
			); err != nil {
				return err
			}
		}

		// Sessão de pacote, quando o agendamento veio de um pacote pré-pago.
		if in.PackageID != nil {
			pkg, err := repo.GetPackage(ctx, in.ClinicID, *in.PackageID)
			if err != nil {
				return httperr.ErrBusiness("package_not_found")
			}

			if err := packages.Consume(pkg); err != nil {
				return err
			}

			if err := repo.UpdatePackage(ctx, pkg); err != nil {
				return err
			}
		}

		return repo.CreateAppointment(ctx, ap)
	})
	if err != nil {
		return nil, err
	}

	uc.cache.InvalidateDay(ctx, in.ProfessionalID, start)

	uc.audit.Dispatch(audit.Event{
		ClinicID: in.ClinicID,
		UserID:   &in.ProfessionalID,
		Action:   "appointment_created",
		Entity:   "appointment",
		EntityID: &ap.ID,
	})

	return ap, nil
}
