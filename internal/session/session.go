package session

import (
	"context"
	"fmt"
	"log/slog"
	"math/rand/v2"
	"sync"
	"time"

	"starmap/internal/galaxy"
	"starmap/internal/metrics"
	"starmap/internal/shared/errors"
	"starmap/internal/storage"
	"starmap/internal/system"
	"starmap/internal/vmath"
)

// NoSystem marks an empty focus or hover slot
const NoSystem = -1

type Options struct {
	// Key is where Save writes the galaxy
	Key string
	// Drift enables the idle wobble of every system
	Drift bool
	Seed  uint64
}

// Session owns the live galaxy for the lifetime of the process. The
// simulation step and every reader share one mutex.
type Session struct {
	mu      sync.RWMutex
	galaxy  *galaxy.Galaxy
	focused int
	hovered int
	rng     *rand.Rand

	service *galaxy.Service
	repo    *storage.Repository
	options Options
	metrics *metrics.Collector
	logger  *slog.Logger
}

func New(g *galaxy.Galaxy, service *galaxy.Service, repo *storage.Repository, options Options, collector *metrics.Collector, logger *slog.Logger) *Session {
	logger.Debug("Initializing session", "key", options.Key, "systems", g.Len(), "drift", options.Drift)

	collector.SetScanned(g.ScannedCount())

	return &Session{
		galaxy:  g,
		focused: NoSystem,
		hovered: NoSystem,
		rng:     rand.New(rand.NewPCG(options.Seed, options.Seed^0x9e3779b97f4a7c15)),
		service: service,
		repo:    repo,
		options: options,
		metrics: collector,
		logger:  logger,
	}
}

// Run advances the simulation every interval until ctx is done
func (s *Session) Run(ctx context.Context, interval time.Duration) error {
	logger := s.logger.With("component", "session", "operation", "run")
	logger.Info("Simulation started", "interval", interval)

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	dt := interval.Seconds()
	for {
		select {
		case <-ctx.Done():
			logger.Info("Simulation stopped")
			return nil
		case <-ticker.C:
			s.Step(dt)
		}
	}
}

// Step drifts every system and moves the bodies of the focused one
func (s *Session) Step(dt float64) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.options.Drift {
		s.galaxy.Drift(dt, s.rng)
	}
	if s.focused != NoSystem {
		if sys := s.galaxy.Systems[s.focused]; sys.Scanned() {
			system.Tick(sys.Data)
		}
	}
	s.metrics.RecordTick()
}

// Focus selects system i, scanning it first if needed
func (s *Session) Focus(ctx context.Context, i int) (SystemView, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	sys, err := s.service.SelectSystem(ctx, s.galaxy, i)
	if err != nil {
		return SystemView{}, err
	}

	s.focused = i
	s.metrics.SetScanned(s.galaxy.ScannedCount())
	s.logger.Debug("System focused",
		"component", "session",
		"operation", "focus",
		"index", i,
	)
	return newSystemView(i, sys), nil
}

// Hover marks system i as hovered and returns its summary. NoSystem clears the hover.
func (s *Session) Hover(i int) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if i == NoSystem {
		s.hovered = NoSystem
		return "", nil
	}
	if !s.galaxy.InRange(i) {
		return "", errors.NotFoundf("system %d not found", i)
	}

	s.hovered = i
	return s.galaxy.Systems[i].Describe(), nil
}

// Pick hovers the system under the ray, clearing the hover on a miss
func (s *Session) Pick(origin, dir vmath.Vec3) (int, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	i, ok := s.galaxy.Pick(origin, dir, galaxy.PickRadius)
	s.hovered = i
	return i, ok
}

func (s *Session) Describe(i int) (string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if !s.galaxy.InRange(i) {
		return "", errors.NotFoundf("system %d not found", i)
	}
	return s.galaxy.Systems[i].Describe(), nil
}

func (s *Session) System(i int) (SystemView, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if !s.galaxy.InRange(i) {
		return SystemView{}, errors.NotFoundf("system %d not found", i)
	}
	return newSystemView(i, s.galaxy.Systems[i]), nil
}

// Bodies returns the current planet and moon positions of scanned system i
func (s *Session) Bodies(i int) ([]system.BodyPosition, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if !s.galaxy.InRange(i) {
		return nil, errors.NotFoundf("system %d not found", i)
	}
	sys := s.galaxy.Systems[i]
	if !sys.Scanned() {
		return nil, errors.Validationf("system %d has not been scanned", i)
	}
	return system.Positions(sys.Data), nil
}

func (s *Session) Overview() GalaxyView {
	s.mu.RLock()
	defer s.mu.RUnlock()

	view := GalaxyView{
		Focused: s.focused,
		Hovered: s.hovered,
		Scanned: s.galaxy.ScannedCount(),
		Systems: make([]SystemSummary, 0, s.galaxy.Len()),
	}
	for i, sys := range s.galaxy.Systems {
		view.Systems = append(view.Systems, newSystemSummary(i, sys))
	}
	return view
}

// Focused returns the focused system index, or NoSystem
func (s *Session) Focused() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.focused
}

// Save persists the galaxy under the session key
func (s *Session) Save(ctx context.Context) error {
	s.mu.RLock()
	defer s.mu.RUnlock()

	err := s.repo.SaveGalaxy(ctx, s.options.Key, s.galaxy)
	s.metrics.RecordSave(err)
	if err != nil {
		return errors.WrapExternal(fmt.Sprintf("failed to save galaxy to %s", s.options.Key), err)
	}
	return nil
}

func (s *Session) Key() string {
	return s.options.Key
}
