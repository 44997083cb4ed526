package appointment

import (
	"context"
	"encoding/json"
	"time"

	domain "github.com/lumesistemas/clinic-manager/internal/domain/appointment"
	"github.com/lumesistemas/clinic-manager/internal/dto"
	"github.com/lumesistemas/clinic-manager/internal/timezone"
)

type ListAppointmentsByDate struct {
	repo  domain.Repository
	cache CalendarCache
}

func NewListAppointmentsByDate(
	repo domain.Repository,
	cache CalendarCache,
) *ListAppointmentsByDate {
	return &ListAppointmentsByDate{
		repo:  repo,
		cache: cache,
	}
}

func (uc *ListAppointmentsByDate) Execute(
	ctx context.Context,
	professionalID uint,
	clinicID uint,
	date time.Time,
) ([]dto.AppointmentListDTO, error) {

	clinic, err := uc.repo.GetClinicByID(ctx, clinicID)
	if err != nil {
		return nil, err
	}

	loc := timezone.Location(clinic.Timezone)

	start := time.Date(
		date.Year(),
		date.Month(),
		date.Day(),
		0, 0, 0, 0,
		loc,
	)
	end := start.Add(24 * time.Hour)

	if payload, ok := uc.cache.GetDay(ctx, professionalID, start); ok {
		var cached []dto.AppointmentListDTO
		if err := json.Unmarshal(payload, &cached); err == nil {
			return cached, nil
		}
	}

	appointments, err := uc.repo.ListAppointmentsForPeriod(
		ctx,
		professionalID,
		start,
		end,
	)
	if err != nil {
		return nil, err
	}

	out := make([]dto.AppointmentListDTO, 0, len(appointments))
	for _, ap := range appointments {
		out = append(out, dto.AppointmentListDTO{
			ID:          ap.ID,
			StartTime:   ap.StartTime,
			EndTime:     ap.EndTime,
			Status:      ap.Status,
			ClientName:  ap.Client.Name,
			ServiceName: ap.Service.Name,
			RoomID:      ap.RoomID,
			PackageID:   ap.PackageID,
		})
	}

	if payload, err := json.Marshal(out); err == nil {
		uc.cache.SetDay(ctx, professionalID, start, payload)
	}

	return out, nil
}
