package slotcache

import (
	"context"
	"time"

	"github.com/m04kA/SMC-BikeService/pkg/types"
)

// Noop заглушка кэша, когда Redis выключен в конфигурации
type Noop struct{}

// NewNoop создает заглушку кэша
func NewNoop() *Noop {
	return &Noop{}
}

func (n *Noop) Get(ctx context.Context, date time.Time) ([]types.TimeString, bool) {
	return nil, false
}

func (n *Noop) Set(ctx context.Context, date time.Time, slots []types.TimeString) error {
	return nil
}

func (n *Noop) InvalidateDate(ctx context.Context, date time.Time) error {
	return nil
}
