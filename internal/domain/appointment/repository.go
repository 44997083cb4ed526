package appointment

import (
	"context"
	"time"

	"github.com/lumesistemas/clinic-manager/internal/models"
)

type Repository interface {
	// -------- Transação --------
	// Atomically executa fn sobre uma visão transacional do repositório;
	// erro de fn desfaz todas as escritas. Checagem de conflito, débito de
	// sessão e insert do agendamento vivem dentro dela.
	Atomically(
		ctx context.Context,
		fn func(Repository) error,
	) error

	// -------- Clinic --------
	GetClinicByID(
		ctx context.Context,
		id uint,
	) (*models.Clinic, error)

	// -------- Client --------
	GetClient(
		ctx context.Context,
		clinicID uint,
		clientID uint,
	) (*models.Client, error)

	// -------- Service --------
	GetService(
		ctx context.Context,
		clinicID uint,
		serviceID uint,
	) (*models.Service, error)

	// -------- Appointment (create / conflict) --------
	CreateAppointment(
		ctx context.Context,
		ap *models.Appointment,
	) error

	AssertNoProfessionalConflict(
		ctx context.Context,
		professionalID uint,
		start time.Time,
		end time.Time,
	) error

	AssertNoRoomConflict(
		ctx context.Context,
		roomID uint,
		start time.Time,
		end time.Time,
	) error

	// -------- Appointment (state change) --------
	GetAppointment(
		ctx context.Context,
		clinicID uint,
		appointmentID uint,
	) (*models.Appointment, error)

	UpdateAppointment(
		ctx context.Context,
		ap *models.Appointment,
	) error

	// -------- Cascade (same client, same day) --------
	ListClientAppointmentsBetween(
		ctx context.Context,
		clinicID uint,
		clientID uint,
		start time.Time,
		end time.Time,
	) ([]models.Appointment, error)

	// -------- Listing --------
	ListAppointmentsForPeriod(
		ctx context.Context,
		professionalID uint,
		start time.Time,
		end time.Time,
	) ([]models.Appointment, error)

	// -------- Package ledger --------
	GetPackage(
		ctx context.Context,
		clinicID uint,
		packageID uint,
	) (*models.Package, error)

	UpdatePackage(
		ctx context.Context,
		pkg *models.Package,
	) error

	// -------- Calendar blocks --------
	CreateCalendarBlock(
		ctx context.Context,
		block *models.CalendarBlock,
	) error

	ListCalendarBlocks(
		ctx context.Context,
		clinicID uint,
		start time.Time,
		end time.Time,
	) ([]models.CalendarBlock, error)

	DeleteCalendarBlock(
		ctx context.Context,
		clinicID uint,
		blockID uint,
	) error
}
