package packages

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lumesistemas/clinic-manager/internal/httperr"
	"github.com/lumesistemas/clinic-manager/internal/models"
)

func newPackage(total, remaining int) *models.Package {
	pkg := &models.Package{
		TotalSessions:     total,
		RemainingSessions: remaining,
	}
	RecomputeStatus(pkg)
	return pkg
}

func TestConsume(t *testing.T) {
	t.Run("decrements and keeps active", func(t *testing.T) {
		pkg := newPackage(10, 5)

		require.NoError(t, Consume(pkg))

		assert.Equal(t, 4, pkg.RemainingSessions)
		assert.Equal(t, string(StatusActive), pkg.Status)
	})

	t.Run("last session completes the package", func(t *testing.T) {
		pkg := newPackage(10, 1)

		require.NoError(t, Consume(pkg))

		assert.Equal(t, 0, pkg.RemainingSessions)
		assert.Equal(t, string(StatusCompleted), pkg.Status)
	})

	t.Run("empty package refuses", func(t *testing.T) {
		pkg := newPackage(10, 0)

		err := Consume(pkg)

		require.Error(t, err)
		assert.True(t, httperr.IsBusiness(err, "no_sessions_left"))
		assert.Equal(t, 0, pkg.RemainingSessions)
	})
}

func TestRefund(t *testing.T) {
	t.Run("returns a session and reactivates", func(t *testing.T) {
		pkg := newPackage(10, 0)

		Refund(pkg)

		assert.Equal(t, 1, pkg.RemainingSessions)
		assert.Equal(t, string(StatusActive), pkg.Status)
	})

	t.Run("clamps at total sessions", func(t *testing.T) {
		pkg := newPackage(10, 10)

		Refund(pkg)

		assert.Equal(t, 10, pkg.RemainingSessions)
	})
}

func TestConsumeRefundRoundTrip(t *testing.T) {
	// Cancelar e reativar em sequência deve sempre voltar ao mesmo saldo.
	pkg := newPackage(3, 1)

	require.NoError(t, Consume(pkg))
	assert.Equal(t, string(StatusCompleted), pkg.Status)

	Refund(pkg)
	assert.Equal(t, 1, pkg.RemainingSessions)
	assert.Equal(t, string(StatusActive), pkg.Status)

	require.NoError(t, Consume(pkg))
	assert.Equal(t, 0, pkg.RemainingSessions)
	assert.Equal(t, string(StatusCompleted), pkg.Status)
}
