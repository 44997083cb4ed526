package appointment

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lumesistemas/clinic-manager/internal/audit"
	domain "github.com/lumesistemas/clinic-manager/internal/domain/appointment"
	"github.com/lumesistemas/clinic-manager/internal/httperr"
	"github.com/lumesistemas/clinic-manager/internal/models"
)

func seedAppointment(repo *fakeRepo, clientID uint, start time.Time, status domain.Status, pkgID *uint) *models.Appointment {
	ap := &models.Appointment{
		ClinicID:       1,
		ProfessionalID: 5,
		ClientID:       clientID,
		ServiceID:      20,
		PackageID:      pkgID,
		StartTime:      start,
		EndTime:        start.Add(time.Hour),
		Status:         string(status),
	}
	_ = repo.CreateAppointment(context.Background(), ap)
	return ap
}

func setupStatus(t *testing.T) (*fakeRepo, *UpdateAppointmentStatus, *time.Location) {
	t.Helper()

	repo := newFakeRepo()
	repo.seedClinic(1, "America/Sao_Paulo")
	repo.seedClient(10, 1)
	repo.seedClient(11, 1)
	repo.seedService(20, 1, 60)

	uc := NewUpdateAppointmentStatus(repo, newFakeCache(), audit.NewDispatcher(nil))

	loc, err := time.LoadLocation("America/Sao_Paulo")
	require.NoError(t, err)

	return repo, uc, loc
}

func TestUpdateAppointmentStatus(t *testing.T) {
	ctx := context.Background()

	t.Run("cascades to the whole same day visit", func(t *testing.T) {
		repo, uc, loc := setupStatus(t)

		day := time.Date(2026, 3, 10, 9, 0, 0, 0, loc)
		first := seedAppointment(repo, 10, day, domain.StatusScheduled, nil)
		second := seedAppointment(repo, 10, day.Add(2*time.Hour), domain.StatusScheduled, nil)

		// Mesmo cliente em outro dia e outro cliente no mesmo dia ficam fora.
		otherDay := seedAppointment(repo, 10, day.AddDate(0, 0, 1), domain.StatusScheduled, nil)
		otherClient := seedAppointment(repo, 11, day.Add(time.Hour), domain.StatusScheduled, nil)

		require.NoError(t, uc.Execute(ctx, 1, 99, first.ID, domain.StatusConfirmed))

		got := func(id uint) string {
			ap, err := repo.GetAppointment(ctx, 1, id)
			require.NoError(t, err)
			return ap.Status
		}

		assert.Equal(t, string(domain.StatusConfirmed), got(first.ID))
		assert.Equal(t, string(domain.StatusConfirmed), got(second.ID))
		assert.Equal(t, string(domain.StatusScheduled), got(otherDay.ID))
		assert.Equal(t, string(domain.StatusScheduled), got(otherClient.ID))
	})

	t.Run("rejects unknown status and appointment", func(t *testing.T) {
		repo, uc, loc := setupStatus(t)
		ap := seedAppointment(repo, 10, time.Date(2026, 3, 10, 9, 0, 0, 0, loc), domain.StatusScheduled, nil)

		err := uc.Execute(ctx, 1, 99, ap.ID, domain.Status("partying"))
		assert.True(t, httperr.IsBusiness(err, "invalid_status"))

		err = uc.Execute(ctx, 1, 99, 777, domain.StatusConfirmed)
		assert.True(t, httperr.IsBusiness(err, "appointment_not_found"))
	})

	t.Run("idempotent when already in the target status", func(t *testing.T) {
		repo, uc, loc := setupStatus(t)
		repo.seedPackage(40, 1, 10, 5, 2)

		pkgID := uint(40)
		day := time.Date(2026, 3, 10, 9, 0, 0, 0, loc)
		ap := seedAppointment(repo, 10, day, domain.StatusCancelled, &pkgID)

		// Cancelar de novo não devolve outra sessão.
		require.NoError(t, uc.Execute(ctx, 1, 99, ap.ID, domain.StatusCancelled))
		assert.Equal(t, 2, repo.packages[40].RemainingSessions)
	})

	t.Run("cancel refunds the package session", func(t *testing.T) {
		repo, uc, loc := setupStatus(t)
		repo.seedPackage(40, 1, 10, 5, 1)

		pkgID := uint(40)
		day := time.Date(2026, 3, 10, 9, 0, 0, 0, loc)
		ap := seedAppointment(repo, 10, day, domain.StatusScheduled, &pkgID)

		require.NoError(t, uc.Execute(ctx, 1, 99, ap.ID, domain.StatusCancelled))

		assert.Equal(t, 2, repo.packages[40].RemainingSessions)

		got, err := repo.GetAppointment(ctx, 1, ap.ID)
		require.NoError(t, err)
		assert.NotNil(t, got.CancelledAt)
	})

	t.Run("reactivating consumes the session back", func(t *testing.T) {
		repo, uc, loc := setupStatus(t)
		repo.seedPackage(40, 1, 10, 5, 1)

		pkgID := uint(40)
		day := time.Date(2026, 3, 10, 9, 0, 0, 0, loc)
		ap := seedAppointment(repo, 10, day, domain.StatusScheduled, &pkgID)

		require.NoError(t, uc.Execute(ctx, 1, 99, ap.ID, domain.StatusCancelled))
		assert.Equal(t, 2, repo.packages[40].RemainingSessions)

		require.NoError(t, uc.Execute(ctx, 1, 99, ap.ID, domain.StatusScheduled))
		assert.Equal(t, 1, repo.packages[40].RemainingSessions)

		got, err := repo.GetAppointment(ctx, 1, ap.ID)
		require.NoError(t, err)
		assert.Nil(t, got.CancelledAt)
	})

	t.Run("reactivating an empty package proceeds without debit", func(t *testing.T) {
		repo, uc, loc := setupStatus(t)
		repo.seedPackage(40, 1, 10, 5, 0)

		pkgID := uint(40)
		day := time.Date(2026, 3, 10, 9, 0, 0, 0, loc)
		ap := seedAppointment(repo, 10, day, domain.StatusCancelled, &pkgID)

		// Esvazia o pacote por fora antes da reativação.
		repo.packages[40].RemainingSessions = 0

		require.NoError(t, uc.Execute(ctx, 1, 99, ap.ID, domain.StatusConfirmed))

		got, err := repo.GetAppointment(ctx, 1, ap.ID)
		require.NoError(t, err)
		assert.Equal(t, string(domain.StatusConfirmed), got.Status)
		assert.Equal(t, 0, repo.packages[40].RemainingSessions)
	})

	t.Run("failed update rolls back the refund", func(t *testing.T) {
		repo, uc, loc := setupStatus(t)
		repo.seedPackage(40, 1, 10, 5, 1)

		pkgID := uint(40)
		day := time.Date(2026, 3, 10, 9, 0, 0, 0, loc)
		ap := seedAppointment(repo, 10, day, domain.StatusScheduled, &pkgID)

		repo.failUpdate = errors.New("update falhou")

		err := uc.Execute(ctx, 1, 99, ap.ID, domain.StatusCancelled)
		require.Error(t, err)

		// A devolução da sessão foi desfeita junto com a cascata.
		assert.Equal(t, 1, repo.packages[40].RemainingSessions)

		repo.failUpdate = nil
		got, err := repo.GetAppointment(ctx, 1, ap.ID)
		require.NoError(t, err)
		assert.Equal(t, string(domain.StatusScheduled), got.Status)
	})

	t.Run("status transitions only touch edges of cancelled", func(t *testing.T) {
		repo, uc, loc := setupStatus(t)
		repo.seedPackage(40, 1, 10, 5, 2)

		pkgID := uint(40)
		day := time.Date(2026, 3, 10, 9, 0, 0, 0, loc)
		ap := seedAppointment(repo, 10, day, domain.StatusScheduled, &pkgID)

		// scheduled -> confirmed -> completed: ledger intocado.
		require.NoError(t, uc.Execute(ctx, 1, 99, ap.ID, domain.StatusConfirmed))
		require.NoError(t, uc.Execute(ctx, 1, 99, ap.ID, domain.StatusCompleted))

		assert.Equal(t, 2, repo.packages[40].RemainingSessions)
	})
}
