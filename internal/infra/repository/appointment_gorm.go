package repository

import (
	"context"
	"time"

	"gorm.io/gorm"

	domain "github.com/lumesistemas/clinic-manager/internal/domain/appointment"
	"github.com/lumesistemas/clinic-manager/internal/httperr"
	"github.com/lumesistemas/clinic-manager/internal/models"
)

type AppointmentGormRepository struct {
	db *gorm.DB
}

func NewAppointmentGormRepository(db *gorm.DB) *AppointmentGormRepository {
	return &AppointmentGormRepository{db: db}
}

// Atomically roda fn com um repositório preso a uma transação; o retorno
// de erro desfaz tudo que fn escreveu.
func (r *AppointmentGormRepository) Atomically(
	ctx context.Context,
	fn func(domain.Repository) error,
) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(&AppointmentGormRepository{db: tx})
	})
}

// --------------------------------------------------
// Clinic / Client / Service
// --------------------------------------------------

func (r *AppointmentGormRepository) GetClinicByID(
	ctx context.Context,
	id uint,
) (*models.Clinic, error) {

	var clinic models.Clinic
	if err := r.db.WithContext(ctx).First(&clinic, id).Error; err != nil {
		return nil, err
	}
	return &clinic, nil
}

func (r *AppointmentGormRepository) GetClient(
	ctx context.Context,
	clinicID uint,
	clientID uint,
) (*models.Client, error) {

	var client models.Client
	if err := r.db.WithContext(ctx).
		Where("id = ? AND clinic_id = ?", clientID, clinicID).
		First(&client).Error; err != nil {
		return nil, err
	}
	return &client, nil
}

func (r *AppointmentGormRepository) GetService(
	ctx context.Context,
	clinicID uint,
	serviceID uint,
) (*models.Service, error) {

	var service models.Service
	if err := r.db.WithContext(ctx).
		Where("id = ? AND clinic_id = ?", serviceID, clinicID).
		First(&service).Error; err != nil {
		return nil, err
	}
	return &service, nil
}

// --------------------------------------------------
// Appointment (create / conflict)
// --------------------------------------------------

func (r *AppointmentGormRepository) CreateAppointment(
	ctx context.Context,
	ap *models.Appointment,
) error {
	return r.db.WithContext(ctx).Create(ap).Error
}

func (r *AppointmentGormRepository) AssertNoProfessionalConflict(
	ctx context.Context,
	professionalID uint,
	start time.Time,
	end time.Time,
) error {

	var count int64
	if err := r.db.WithContext(ctx).
		Model(&models.Appointment{}).
		Where(
			"professional_id = ? AND status IN ? AND start_time < ? AND end_time > ?",
			professionalID,
			domain.BlockingStatuses(),
			end,
			start,
		).
		Count(&count).Error; err != nil {
		return err
	}

	if count > 0 {
		return httperr.ErrBusiness("time_conflict")
	}

	return nil
}

func (r *AppointmentGormRepository) AssertNoRoomConflict(
	ctx context.Context,
	roomID uint,
	start time.Time,
	end time.Time,
) error {

	var count int64
	if err := r.db.WithContext(ctx).
		Model(&models.Appointment{}).
		Where(
			"room_id = ? AND status IN ? AND start_time < ? AND end_time > ?",
			roomID,
			domain.BlockingStatuses(),
			end,
			start,
		).
		Count(&count).Error; err != nil {
		return err
	}

	if count > 0 {
		return httperr.ErrBusiness("room_conflict")
	}

	return nil
}

// --------------------------------------------------
// Appointment (state change / cascade)
// --------------------------------------------------

func (r *AppointmentGormRepository) GetAppointment(
	ctx context.Context,
	clinicID uint,
	appointmentID uint,
) (*models.Appointment, error) {

	var ap models.Appointment
	if err := r.db.WithContext(ctx).
		Where("id = ? AND clinic_id = ?", appointmentID, clinicID).
		First(&ap).Error; err != nil {
		return nil, err
	}

	return &ap, nil
}

func (r *AppointmentGormRepository) UpdateAppointment(
	ctx context.Context,
	ap *models.Appointment,
) error {
	return r.db.WithContext(ctx).Save(ap).Error
}

func (r *AppointmentGormRepository) ListClientAppointmentsBetween(
	ctx context.Context,
	clinicID uint,
	clientID uint,
	start time.Time,
	end time.Time,
) ([]models.Appointment, error) {

	var apps []models.Appointment
	if err := r.db.WithContext(ctx).
		Where(
			"clinic_id = ? AND client_id = ? AND start_time >= ? AND start_time <= ?",
			clinicID, clientID, start, end,
		).
		Order("start_time ASC").
		Find(&apps).Error; err != nil {
		return nil, err
	}

	return apps, nil
}

func (r *AppointmentGormRepository) ListAppointmentsForPeriod(
	ctx context.Context,
	professionalID uint,
	start time.Time,
	end time.Time,
) ([]models.Appointment, error) {

	var appointments []models.Appointment
	if err := r.db.WithContext(ctx).
		Preload("Client").
		Preload("Service").
		Where(
			"professional_id = ? AND start_time >= ? AND start_time < ?",
			professionalID, start, end,
		).
		Order("start_time ASC").
		Find(&appointments).Error; err != nil {
		return nil, err
	}

	return appointments, nil
}

// --------------------------------------------------
// Package ledger
// --------------------------------------------------

func (r *AppointmentGormRepository) GetPackage(
	ctx context.Context,
	clinicID uint,
	packageID uint,
) (*models.Package, error) {

	var pkg models.Package
	if err := r.db.WithContext(ctx).
		Where("id = ? AND clinic_id = ?", packageID, clinicID).
		First(&pkg).Error; err != nil {
		return nil, err
	}

	return &pkg, nil
}

func (r *AppointmentGormRepository) UpdatePackage(
	ctx context.Context,
	pkg *models.Package,
) error {
	return r.db.WithContext(ctx).Save(pkg).Error
}

// --------------------------------------------------
// Calendar blocks
// --------------------------------------------------

func (r *AppointmentGormRepository) CreateCalendarBlock(
	ctx context.Context,
	block *models.CalendarBlock,
) error {
	return r.db.WithContext(ctx).Create(block).Error
}

func (r *AppointmentGormRepository) ListCalendarBlocks(
	ctx context.Context,
	clinicID uint,
	start time.Time,
	end time.Time,
) ([]models.CalendarBlock, error) {

	var blocks []models.CalendarBlock
	if err := r.db.WithContext(ctx).
		Where(
			"clinic_id = ? AND start_time < ? AND end_time > ?",
			clinicID, end, start,
		).
		Order("start_time ASC").
		Find(&blocks).Error; err != nil {
		return nil, err
	}

	return blocks, nil
}

func (r *AppointmentGormRepository) DeleteCalendarBlock(
	ctx context.Context,
	clinicID uint,
	blockID uint,
) error {

	res := r.db.WithContext(ctx).
		Where("id = ? AND clinic_id = ?", blockID, clinicID).
		Delete(&models.CalendarBlock{})

	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}

	return nil
}
