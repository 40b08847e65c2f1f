package service

import (
	"context"
	"fmt"
	"math/rand"
	"sync"
	"time"

	"github.com/ridloal/storefront/internal/platform/logger"
	"github.com/ridloal/storefront/internal/telemetry/domain"
	"github.com/robfig/cron/v3"
)

const (
	fluctuationSpec = "@every 10s"
	detectionSpec   = "@every 5m"
)

// Simulator menghasilkan angka visitor/customer palsu untuk ditampilkan di UI
type Simulator interface {
	PageVisitors() domain.PageVisitors
	Snapshot() domain.Snapshot
	// Detect menghitung ulang base visitor sesuai jam, lalu broadcast
	Detect() domain.Snapshot
	// Fluctuate menggeser visitor sebesar [-3, +6], tidak pernah di bawah 0
	Fluctuate() domain.Snapshot
	// Subscribe mengembalikan channel snapshot baru dan fungsi untuk berhenti
	Subscribe() (<-chan domain.Snapshot, func())
	Start() error
	Stop() context.Context
}

type SimulatorOption func(*simulator)

func WithRand(r *rand.Rand) SimulatorOption {
	return func(s *simulator) { s.rng = r }
}

func WithClock(now func() time.Time) SimulatorOption {
	return func(s *simulator) { s.now = now }
}

type simulator struct {
	mu      sync.Mutex
	rng     *rand.Rand
	now     func() time.Time
	current domain.Snapshot

	subsMu sync.Mutex
	subs   map[int]chan domain.Snapshot
	nextID int

	scheduler *cron.Cron
}

func NewSimulator(opts ...SimulatorOption) Simulator {
	s := &simulator{
		rng:       rand.New(rand.NewSource(time.Now().UnixNano())),
		now:       time.Now,
		subs:      make(map[int]chan domain.Snapshot),
		scheduler: cron.New(),
	}
	for _, opt := range opts {
		opt(s)
	}
	s.current = s.detectLocked()
	return s
}

// BaseVisitorRange: jam kerja 09-17 paling ramai, 18-22 sedang, sisanya sepi
func BaseVisitorRange(hour int) (lowest, span int) {
	switch {
	case hour >= 9 && hour <= 17:
		return 2000, 1000
	case hour >= 18 && hour <= 22:
		return 1500, 800
	default:
		return 800, 500
	}
}

func CustomersFor(visitors int) int {
	return visitors*domain.ConversionPercent/100 + domain.BaseCustomers
}

func (s *simulator) PageVisitors() domain.PageVisitors {
	s.mu.Lock()
	defer s.mu.Unlock()
	return domain.PageVisitors{
		Visitors:  domain.PageVisitorsMin + s.rng.Intn(domain.PageVisitorsSpan),
		Simulated: true,
	}
}

func (s *simulator) Snapshot() domain.Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.current
}

func (s *simulator) Detect() domain.Snapshot {
	s.mu.Lock()
	s.current = s.detectLocked()
	snap := s.current
	s.mu.Unlock()

	s.broadcast(snap)
	return snap
}

func (s *simulator) detectLocked() domain.Snapshot {
	now := s.now()
	lowest, span := BaseVisitorRange(now.Hour())
	base := lowest + s.rng.Intn(span)
	return domain.Snapshot{
		Visitors:   base,
		Customers:  CustomersFor(base),
		DetectedAt: now,
		UpdatedAt:  now,
		Simulated:  true,
	}
}

func (s *simulator) Fluctuate() domain.Snapshot {
	s.mu.Lock()
	delta := domain.FluctuationMin + s.rng.Intn(domain.FluctuationSpan)
	visitors := s.current.Visitors + delta
	if visitors < 0 {
		visitors = 0
	}
	s.current.Visitors = visitors
	s.current.UpdatedAt = s.now()
	snap := s.current
	s.mu.Unlock()

	s.broadcast(snap)
	return snap
}

func (s *simulator) Subscribe() (<-chan domain.Snapshot, func()) {
	ch := make(chan domain.Snapshot, 1)

	s.subsMu.Lock()
	id := s.nextID
	s.nextID++
	s.subs[id] = ch
	s.subsMu.Unlock()

	var once sync.Once
	return ch, func() {
		once.Do(func() {
			s.subsMu.Lock()
			delete(s.subs, id)
			s.subsMu.Unlock()
			close(ch)
		})
	}
}

// broadcast tidak pernah blocking: subscriber yang lambat kehilangan update
func (s *simulator) broadcast(snap domain.Snapshot) {
	s.subsMu.Lock()
	defer s.subsMu.Unlock()
	for _, ch := range s.subs {
		select {
		case ch <- snap:
		default:
		}
	}
}

func (s *simulator) Start() error {
	if _, err := s.scheduler.AddFunc(fluctuationSpec, func() { s.Fluctuate() }); err != nil {
		return fmt.Errorf("schedule visitor fluctuation: %w", err)
	}
	if _, err := s.scheduler.AddFunc(detectionSpec, func() {
		snap := s.Detect()
		logger.Info("Telemetry: re-detected %d simulated visitors", snap.Visitors)
	}); err != nil {
		return fmt.Errorf("schedule visitor detection: %w", err)
	}
	s.scheduler.Start()
	logger.Info("Telemetry simulator started ('%s' fluctuation, '%s' detection)", fluctuationSpec, detectionSpec)
	return nil
}

func (s *simulator) Stop() context.Context {
	return s.scheduler.Stop()
}
