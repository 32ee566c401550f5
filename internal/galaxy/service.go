package galaxy

import (
	"context"
	"fmt"
	"log/slog"

	"starmap/internal/shared/errors"
)

type Service struct {
	generator *Generator
	scanner   Scanner
	logger    *slog.Logger
}

func NewService(generator *Generator, scanner Scanner, logger *slog.Logger) *Service {
	logger.Debug("Initializing galaxy service")

	return &Service{
		generator: generator,
		scanner:   scanner,
		logger:    logger,
	}
}

// CreateGalaxy generates a fresh galaxy from params
func (s *Service) CreateGalaxy(ctx context.Context, params Params) (*Galaxy, error) {
	return s.generator.Generate(ctx, params)
}

// SelectSystem scans system i on first selection and marks it explored
func (s *Service) SelectSystem(ctx context.Context, g *Galaxy, i int) (*StarSystem, error) {
	logger := s.logger.With("component", "galaxy_service", "operation", "select_system", "index", i)

	if !g.InRange(i) {
		return nil, errors.NotFoundf("system %d not found", i)
	}

	sys := g.Systems[i]
	if sys.Data == nil {
		logger.Debug("Scanning system on first selection", "name", fmt.Sprintf("%X", sys.Name))
		data, err := s.scanner.Generate(ctx)
		if err != nil {
			logger.Error("Failed to scan system", "error", err)
			return nil, errors.WrapInternal(fmt.Sprintf("failed to scan system %d", i), err)
		}
		sys.Data = data
	}

	if !sys.Explored {
		sys.Explored = true
		logger.Info("System explored", "name", fmt.Sprintf("%X", sys.Name), "planets", len(sys.Data.Planets))
	}
	return sys, nil
}
