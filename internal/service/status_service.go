package service

import (
	"context"

	"kuse-store/internal/store"

	"github.com/rs/zerolog"
)

// Connection statuses reported by StatusService.
const (
	ConnectionOK          = "ok"
	ConnectionUnavailable = "unavailable"
)

type statusService struct {
	store      store.Store
	driver     string
	configured bool
	logger     zerolog.Logger
}

// NewStatusService creates a status service for st. driver names the
// database technology; configured tells whether a connection URL was given.
func NewStatusService(st store.Store, driver string, configured bool, logger zerolog.Logger) StatusService {
	return &statusService{
		store:      st,
		driver:     driver,
		configured: configured,
		logger:     logger.With().Str("service", "status").Logger(),
	}
}

// Status lists the store's collections. Failures are reported in the
// returned report, never as an error.
func (s *statusService) Status(ctx context.Context) *StatusReport {
	report := &StatusReport{
		Backend:          "go",
		Database:         s.driver,
		DatabaseURL:      "missing",
		ConnectionStatus: ConnectionUnavailable,
		Collections:      []string{},
	}

	if !s.configured {
		return report
	}

	report.DatabaseURL = "configured"
	name := s.store.Name()
	report.DatabaseName = &name

	collections, err := s.store.Collections(ctx)
	if err != nil {
		s.logger.Warn().Err(err).Msg("document store unreachable")
		report.Status = "error"
		report.Message = err.Error()
		return report
	}

	if collections != nil {
		report.Collections = collections
	}
	report.ConnectionStatus = ConnectionOK

	return report
}
