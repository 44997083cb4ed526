package cache

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/go-redis/redis/v8"
)

const dayTTL = 5 * time.Minute

// Calendar guarda a visão diária da agenda em Redis. Falha de cache nunca
// falha a operação: lemos como miss e escrevemos em melhor esforço.
type Calendar struct {
	rdb *redis.Client
}

func NewCalendar(rdb *redis.Client) *Calendar {
	return &Calendar{rdb: rdb}
}

func dayKey(professionalID uint, day time.Time) string {
	return fmt.Sprintf("calendar:%d:%s", professionalID, day.Format("2006-01-02"))
}

func (c *Calendar) GetDay(
	ctx context.Context,
	professionalID uint,
	day time.Time,
) ([]byte, bool) {

	if c == nil || c.rdb == nil {
		return nil, false
	}

	b, err := c.rdb.Get(ctx, dayKey(professionalID, day)).Bytes()
	if err != nil {
		return nil, false
	}
	return b, true
}

func (c *Calendar) SetDay(
	ctx context.Context,
	professionalID uint,
	day time.Time,
	payload []byte,
) {
	if c == nil || c.rdb == nil {
		return
	}

	if err := c.rdb.Set(ctx, dayKey(professionalID, day), payload, dayTTL).Err(); err != nil {
		log.Println("calendar cache set:", err)
	}
}

func (c *Calendar) InvalidateDay(
	ctx context.Context,
	professionalID uint,
	day time.Time,
) {
	if c == nil || c.rdb == nil {
		return
	}

	if err := c.rdb.Del(ctx, dayKey(professionalID, day)).Err(); err != nil {
		log.Println("calendar cache del:", err)
	}
}
