package packages

import (
	"github.com/lumesistemas/clinic-manager/internal/httperr"
	"github.com/lumesistemas/clinic-manager/internal/models"
)

// ===============================
// Package Status
// ===============================

type Status string

const (
	StatusActive    Status = "active"
	StatusCompleted Status = "completed"
)

// RecomputeStatus: o status é função pura das sessões restantes.
func RecomputeStatus(pkg *models.Package) {
	if pkg.RemainingSessions == 0 {
		pkg.Status = string(StatusCompleted)
		return
	}
	pkg.Status = string(StatusActive)
}

// ===============================
// Ledger
// ===============================

// Consume debita uma sessão do pacote.
func Consume(pkg *models.Package) error {
	if pkg.RemainingSessions <= 0 {
		return httperr.ErrBusiness("no_sessions_left")
	}

	pkg.RemainingSessions--
	RecomputeStatus(pkg)
	return nil
}

// Refund devolve uma sessão ao pacote (cancelamento de agendamento).
func Refund(pkg *models.Package) {
	if pkg.RemainingSessions < pkg.TotalSessions {
		pkg.RemainingSessions++
	}
	RecomputeStatus(pkg)
}
