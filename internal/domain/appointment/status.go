package appointment

// ===============================
// Appointment Status
// ===============================

type Status string

const (
	StatusScheduled Status = "scheduled"
	StatusConfirmed Status = "confirmed"
	StatusWaiting   Status = "waiting"
	StatusCompleted Status = "completed"
	StatusLate      Status = "late"
	StatusNoShow    Status = "no_show"
	StatusCancelled Status = "cancelled"
)

func InitialStatus() Status {
	return StatusScheduled
}

func IsValid(s Status) bool {
	switch s {
	case StatusScheduled, StatusConfirmed, StatusWaiting,
		StatusCompleted, StatusLate, StatusNoShow, StatusCancelled:
		return true
	}
	return false
}

// Blocks diz se um agendamento neste status ainda ocupa o horário.
// Cancelados e faltas liberam a agenda.
func Blocks(s Status) bool {
	return s != StatusCancelled && s != StatusNoShow
}

// BlockingStatuses é a lista usada nas queries de conflito.
func BlockingStatuses() []string {
	return []string{
		string(StatusScheduled),
		string(StatusConfirmed),
		string(StatusWaiting),
		string(StatusCompleted),
		string(StatusLate),
	}
}
