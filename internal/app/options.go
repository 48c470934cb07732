package service

import (
	"time"

	"github.com/okian/judgeboard/internal/adapters/repository"
	"github.com/okian/judgeboard/internal/domain/model"
	"github.com/okian/judgeboard/pkg/logger"
)

// Option applies a configuration option to the Service.
type Option func(*Service)

// WithDataFile sets the JSON document the service opens on Start.
func WithDataFile(path string) Option {
	return func(s *Service) {
		if path != "" {
			s.dataFile = path
		}
	}
}

// WithStore injects a ready store; Start then skips opening the data file.
func WithStore(store repository.Store) Option {
	return func(s *Service) {
		if store != nil {
			s.store = store
		}
	}
}

// WithJudges sets the judge panel. Empty input keeps the default panel.
func WithJudges(judges []string) Option {
	return func(s *Service) {
		if len(judges) == 0 {
			return
		}
		roles := make([]model.JudgeRole, 0, len(judges))
		for _, j := range judges {
			roles = append(roles, model.JudgeRole(j))
		}
		s.judges = roles
	}
}

// WithLogger sets a custom logger for the service.
func WithLogger(l logger.Logger) Option {
	return func(s *Service) {
		if l != nil {
			s.logger = l
		}
	}
}

// WithClock sets the time source used to stamp submissions.
func WithClock(now func() time.Time) Option {
	return func(s *Service) {
		if now != nil {
			s.now = now
		}
	}
}
