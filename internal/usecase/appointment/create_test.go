package appointment

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lumesistemas/clinic-manager/internal/audit"
	domain "github.com/lumesistemas/clinic-manager/internal/domain/appointment"
	"github.com/lumesistemas/clinic-manager/internal/httperr"
)

func setupCreate(t *testing.T) (*fakeRepo, *fakeCache, *CreateAppointment) {
	t.Helper()

	repo := newFakeRepo()
	repo.seedClinic(1, "America/Sao_Paulo")
	repo.seedClient(10, 1)
	repo.seedService(20, 1, 60)

	cache := newFakeCache()
	uc := NewCreateAppointment(repo, cache, audit.NewDispatcher(nil))
	return repo, cache, uc
}

func baseInput() CreateAppointmentInput {
	return CreateAppointmentInput{
		ClinicID:       1,
		ProfessionalID: 5,
		ClientID:       10,
		ServiceID:      20,
		Date:           "2026-03-10",
		Time:           "09:00",
	}
}

func TestCreateAppointment(t *testing.T) {
	ctx := context.Background()

	t.Run("creates scheduled appointment with service duration", func(t *testing.T) {
		repo, cache, uc := setupCreate(t)

		ap, err := uc.Execute(ctx, baseInput())
		require.NoError(t, err)

		assert.Equal(t, string(domain.StatusScheduled), ap.Status)
		assert.Equal(t, 60, int(ap.EndTime.Sub(ap.StartTime).Minutes()))
		assert.Len(t, repo.appointments, 1)
		assert.NotEmpty(t, cache.invalidated)
	})

	t.Run("requires client", func(t *testing.T) {
		_, _, uc := setupCreate(t)

		in := baseInput()
		in.ClientID = 0

		_, err := uc.Execute(ctx, in)
		assert.True(t, httperr.IsBusiness(err, "missing_client"))
	})

	t.Run("rejects unknown client and service", func(t *testing.T) {
		_, _, uc := setupCreate(t)

		in := baseInput()
		in.ClientID = 999
		_, err := uc.Execute(ctx, in)
		assert.True(t, httperr.IsBusiness(err, "client_not_found"))

		in = baseInput()
		in.ServiceID = 999
		_, err = uc.Execute(ctx, in)
		assert.True(t, httperr.IsBusiness(err, "service_not_found"))
	})

	t.Run("rejects malformed date", func(t *testing.T) {
		_, _, uc := setupCreate(t)

		in := baseInput()
		in.Date = "10/03/2026"

		_, err := uc.Execute(ctx, in)
		assert.True(t, httperr.IsBusiness(err, "invalid_date_or_time"))
	})

	t.Run("professional conflict blocks overlapping slot", func(t *testing.T) {
		_, _, uc := setupCreate(t)

		_, err := uc.Execute(ctx, baseInput())
		require.NoError(t, err)

		in := baseInput()
		in.Time = "09:30"

		_, err = uc.Execute(ctx, in)
		assert.True(t, httperr.IsBusiness(err, "time_conflict"))
	})

	t.Run("cancelled and no_show slots do not block", func(t *testing.T) {
		repo, _, uc := setupCreate(t)

		first, err := uc.Execute(ctx, baseInput())
		require.NoError(t, err)

		first.Status = string(domain.StatusNoShow)
		require.NoError(t, repo.UpdateAppointment(ctx, first))

		in := baseInput()
		in.Time = "09:30"

		_, err = uc.Execute(ctx, in)
		assert.NoError(t, err)
	})

	t.Run("back to back slots coexist", func(t *testing.T) {
		_, _, uc := setupCreate(t)

		_, err := uc.Execute(ctx, baseInput())
		require.NoError(t, err)

		in := baseInput()
		in.Time = "10:00"

		_, err = uc.Execute(ctx, in)
		assert.NoError(t, err)
	})

	t.Run("room conflict only when room is set", func(t *testing.T) {
		_, _, uc := setupCreate(t)

		room := uint(3)
		in := baseInput()
		in.RoomID = &room
		_, err := uc.Execute(ctx, in)
		require.NoError(t, err)

		// Mesmo horário, outro profissional, mesma sala: conflito.
		in2 := baseInput()
		in2.ProfessionalID = 6
		in2.RoomID = &room
		_, err = uc.Execute(ctx, in2)
		assert.True(t, httperr.IsBusiness(err, "room_conflict"))

		// Sem sala escolhida o mesmo horário passa.
		in3 := baseInput()
		in3.ProfessionalID = 6
		_, err = uc.Execute(ctx, in3)
		assert.NoError(t, err)
	})

	t.Run("package session is consumed on booking", func(t *testing.T) {
		repo, _, uc := setupCreate(t)
		repo.seedPackage(40, 1, 10, 5, 2)

		pkgID := uint(40)
		in := baseInput()
		in.PackageID = &pkgID

		_, err := uc.Execute(ctx, in)
		require.NoError(t, err)

		assert.Equal(t, 1, repo.packages[40].RemainingSessions)
	})

	t.Run("failed insert does not consume package session", func(t *testing.T) {
		repo, _, uc := setupCreate(t)
		repo.seedPackage(42, 1, 10, 5, 2)
		repo.failCreate = errors.New("insert falhou")

		pkgID := uint(42)
		in := baseInput()
		in.PackageID = &pkgID

		_, err := uc.Execute(ctx, in)
		require.Error(t, err)

		// A transação desfez o débito: o saldo de sessões fica intacto.
		assert.Equal(t, 2, repo.packages[42].RemainingSessions)
		assert.Equal(t, "active", repo.packages[42].Status)
		assert.Empty(t, repo.appointments)
	})

	t.Run("exhausted package refuses booking", func(t *testing.T) {
		repo, _, uc := setupCreate(t)
		repo.seedPackage(41, 1, 10, 5, 0)

		pkgID := uint(41)
		in := baseInput()
		in.PackageID = &pkgID

		_, err := uc.Execute(ctx, in)
		assert.True(t, httperr.IsBusiness(err, "no_sessions_left"))
		assert.Empty(t, repo.appointments)
	})
}
