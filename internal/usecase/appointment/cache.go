package appointment

import (
	"context"
	"time"
)

// CalendarCache é a visão de agenda em cache; a implementação Redis vive em
// internal/cache. A interface fica aqui para os testes rodarem sem Redis.
type CalendarCache interface {
	GetDay(ctx context.Context, professionalID uint, day time.Time) ([]byte, bool)
	SetDay(ctx context.Context, professionalID uint, day time.Time, payload []byte)
	InvalidateDay(ctx context.Context, professionalID uint, day time.Time)
}
