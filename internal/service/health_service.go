package service

import (
	"context"
	"log/slog"
	"time"

	"pulsewatch/internal/storage"
)

type HealthService interface {
	Liveness(ctx context.Context) error
	Readiness(ctx context.Context) error
}

type healthService struct {
	store  storage.MonitorStorage
	logger *slog.Logger
}

func NewHealthService(store storage.MonitorStorage, logger *slog.Logger) HealthService {
	l := logger.With("layer", "service", "component", "healthService")
	return &healthService{store: store, logger: l}
}

func (s *healthService) Liveness(ctx context.Context) error {
	s.logger.Debug("liveness check passed")
	return nil
}

func (s *healthService) Readiness(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 2*time.Second)
	defer cancel()

	if err := s.store.Ping(ctx); err != nil {
		s.logger.Error("readiness check failed", slog.String("error", err.Error()))
		return err
	}
	return nil
}
