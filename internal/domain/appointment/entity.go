package appointment

import (
	"time"

	"github.com/lumesistemas/clinic-manager/internal/models"
)

// ===============================
// Domain Helpers
// ===============================

// Overlaps aplica o teste de intervalo meio-aberto [start, end).
func Overlaps(aStart, aEnd, bStart, bEnd time.Time) bool {
	return aStart.Before(bEnd) && aEnd.After(bStart)
}

// DayWindow devolve os limites do dia local de t: 00:00:00.000 até
// o último instante antes da meia-noite seguinte. A meia-noite seguinte
// vem do calendário, não de somar 24h: em dias de virada de horário de
// verão o dia local tem 23h ou 25h.
func DayWindow(t time.Time) (time.Time, time.Time) {
	start := time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
	end := time.Date(t.Year(), t.Month(), t.Day()+1, 0, 0, 0, 0, t.Location()).Add(-time.Nanosecond)
	return start, end
}

// Shift move o agendamento pelos deltas calculados no arrasto.
func Shift(ap *models.Appointment, startDelta, endDelta time.Duration) {
	ap.StartTime = ap.StartTime.Add(startDelta)
	ap.EndTime = ap.EndTime.Add(endDelta)
}

// SetStatus aplica o novo status e mantém os carimbos de cancelamento
// e conclusão coerentes.
func SetStatus(ap *models.Appointment, s Status, now time.Time) {
	ap.Status = string(s)

	switch s {
	case StatusCancelled:
		ap.CancelledAt = &now
	case StatusCompleted:
		ap.CompletedAt = &now
	}

	if s != StatusCancelled {
		ap.CancelledAt = nil
	}
	if s != StatusCompleted {
		ap.CompletedAt = nil
	}
}
