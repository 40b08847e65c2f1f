package service

import (
	"context"
	"fmt"
	"time"

	"github.com/ridloal/storefront/internal/platform/logger"
	"github.com/ridloal/storefront/internal/session/repository"
	"github.com/robfig/cron/v3"
)

// StatePurger membersihkan state visitor yang sudah lama tidak dipakai.
// localStorage browser tidak pernah kedaluwarsa, tapi store di server harus dibatasi.
type StatePurger interface {
	PurgeIdleState(ctx context.Context) int64
	Start()
	Stop() context.Context
}

type statePurger struct {
	store     repository.StateStore
	idle      time.Duration
	scheduler *cron.Cron
	spec      string
}

func NewStatePurger(store repository.StateStore, idle time.Duration) StatePurger {
	return &statePurger{
		store:     store,
		idle:      idle,
		scheduler: cron.New(),
		spec:      "@every 1h",
	}
}

func (p *statePurger) Start() {
	_, err := p.scheduler.AddFunc(p.spec, func() {
		logger.Info("Scheduler: Running PurgeIdleState job...")
		// Gunakan context.Background() karena ini adalah background job
		p.PurgeIdleState(context.Background())
	})
	if err != nil {
		logger.Error("StatePurger: failed to schedule purge job", err, nil)
		return
	}
	p.scheduler.Start()
	logger.Info(fmt.Sprintf("Visitor state purge scheduled with spec '%s' and idle TTL %v", p.spec, p.idle))
}

func (p *statePurger) Stop() context.Context {
	return p.scheduler.Stop()
}

func (p *statePurger) PurgeIdleState(ctx context.Context) int64 {
	purged, err := p.store.PurgeIdle(ctx, p.idle)
	if err != nil {
		logger.Error("PurgeIdleState: failed to purge idle visitor state", err, nil)
		return 0
	}
	if purged > 0 {
		logger.Info(fmt.Sprintf("PurgeIdleState: removed %d idle state entries", purged))
	}
	return purged
}
