package appointment

import (
	"context"
	"time"

	"github.com/lumesistemas/clinic-manager/internal/audit"
	domain "github.com/lumesistemas/clinic-manager/internal/domain/appointment"
	"github.com/lumesistemas/clinic-manager/internal/httperr"
	"github.com/lumesistemas/clinic-manager/internal/models"
	"github.com/lumesistemas/clinic-manager/internal/timezone"
)

type RescheduleAppointmentInput struct {
	ClinicID      uint
	AppointmentID uint

	NewStart time.Time
	NewEnd   time.Time

	// CascadeSameDay arrasta junto os demais agendamentos do cliente no
	// mesmo dia, aplicando os mesmos deltas de início e fim.
	CascadeSameDay bool
}

type RescheduleAppointment struct {
	repo  domain.Repository
	cache CalendarCache
	audit *audit.Dispatcher
}

func NewRescheduleAppointment(
	repo domain.Repository,
	cache CalendarCache,
	audit *audit.Dispatcher,
) *RescheduleAppointment {
	return &RescheduleAppointment{
		repo:  repo,
		cache: cache,
		audit: audit,
	}
}

func (uc *RescheduleAppointment) Execute(
	ctx context.Context,
	userID uint,
	in RescheduleAppointmentInput,
) (*models.Appointment, error) {

	if !in.NewEnd.After(in.NewStart) {
		return nil, httperr.ErrBusiness("invalid_time_range")
	}

	clinic, err := uc.repo.GetClinicByID(ctx, in.ClinicID)
	if err != nil {
		return nil, err
	}

	ap, err := uc.repo.GetAppointment(ctx, in.ClinicID, in.AppointmentID)
	if err != nil {
		return nil, httperr.ErrBusiness("appointment_not_found")
	}

	oldStart := ap.StartTime
	startDelta := in.NewStart.Sub(ap.StartTime)
	endDelta := in.NewEnd.Sub(ap.EndTime)

	// O arrasto confia no alvo escolhido na interface: o conflito não é
	// revalidado aqui, diferente da criação.
	ap.StartTime = in.NewStart
	ap.EndTime = in.NewEnd

	if err := uc.repo.UpdateAppointment(ctx, ap); err != nil {
		return nil, err
	}

	loc := timezone.Location(clinic.Timezone)

	if in.CascadeSameDay {
		dayStart, dayEnd := domain.DayWindow(oldStart.In(loc))

		sameDay, err := uc.repo.ListClientAppointmentsBetween(
			ctx,
			in.ClinicID,
			ap.ClientID,
			dayStart,
			dayEnd,
		)
		if err != nil {
			return nil, err
		}

		for i := range sameDay {
			other := &sameDay[i]
			if other.ID == ap.ID {
				continue
			}

			domain.Shift(other, startDelta, endDelta)

			if err := uc.repo.UpdateAppointment(ctx, other); err != nil {
				return nil, err
			}

			uc.cache.InvalidateDay(ctx, other.ProfessionalID, other.StartTime.In(loc))
		}
	}

	uc.cache.InvalidateDay(ctx, ap.ProfessionalID, oldStart.In(loc))
	uc.cache.InvalidateDay(ctx, ap.ProfessionalID, ap.StartTime.In(loc))

	uc.audit.Dispatch(audit.Event{
		ClinicID: in.ClinicID,
		UserID:   &userID,
		Action:   "appointment_rescheduled",
		Entity:   "appointment",
		EntityID: &ap.ID,
		Metadata: map[string]any{
			"cascade": in.CascadeSameDay,
		},
	})

	return ap, nil
}
