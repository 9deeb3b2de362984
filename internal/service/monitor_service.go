package service

import (
	"context"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	appErr "pulsewatch/internal/apperrors"
	"pulsewatch/internal/metrics"
	"pulsewatch/internal/model"
	"pulsewatch/internal/storage"
)

// recentTickLimit caps the tick history attached to status views.
const recentTickLimit = 10

// MonitorService carries the business rules of the uptime API: ownership
// checks, soft-delete filtering and the single local validator.
type MonitorService interface {
	RegisterWebsite(ctx context.Context, userID, url string) (model.Website, error)
	RecordTick(ctx context.Context, userID, websiteID string, status model.TickStatus, latency float64) (model.WebsiteTick, error)
	GetWebsiteStatus(ctx context.Context, userID, websiteID string) (model.Website, error)
	ListWebsites(ctx context.Context, userID string) ([]model.Website, error)
	SoftDeleteWebsite(ctx context.Context, userID, websiteID string) error
	// EnsureLocalValidator creates the shared "local" validator if absent.
	// Run once at startup so the request path never races on first use.
	EnsureLocalValidator(ctx context.Context) (model.Validator, error)
}

type monitorService struct {
	store  storage.MonitorStorage
	logger *slog.Logger
	tracer trace.Tracer
}

func NewMonitorService(store storage.MonitorStorage, logger *slog.Logger) MonitorService {
	l := logger.With("layer", "service", "component", "monitorService")
	return &monitorService{
		store:  store,
		logger: l,
		tracer: otel.Tracer("monitor-service"),
	}
}

func (s *monitorService) RegisterWebsite(ctx context.Context, userID, url string) (model.Website, error) {
	ctx, span := s.tracer.Start(ctx, "RegisterWebsite")
	defer span.End()
	span.SetAttributes(attribute.String("website.url", url))

	website := model.Website{
		ID:       uuid.New().String(),
		URL:      url,
		UserID:   userID,
		Disabled: false,
	}
	if err := s.store.CreateWebsite(ctx, website); err != nil {
		s.logger.Error("failed to register website",
			slog.String("url", url),
			slog.String("user_id", userID),
			slog.String("error", err.Error()))
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return model.Website{}, appErr.NewInternal("failed to register website: %v", err)
	}

	s.logger.Info("website registered",
		slog.String("id", website.ID),
		slog.String("user_id", userID))
	return website, nil
}

func (s *monitorService) RecordTick(ctx context.Context, userID, websiteID string, status model.TickStatus, latency float64) (model.WebsiteTick, error) {
	ctx, span := s.tracer.Start(ctx, "RecordTick")
	defer span.End()
	span.SetAttributes(
		attribute.String("website.id", websiteID),
		attribute.String("tick.status", string(status)),
	)

	// Absent, foreign and disabled websites are indistinguishable to the
	// caller so existence of other users' resources never leaks.
	website, err := s.store.FindWebsite(ctx, websiteID, userID)
	if err != nil {
		if appErr.IsNotFound(err) {
			s.logger.Warn("website not found for tick",
				slog.String("id", websiteID),
				slog.String("user_id", userID))
			return model.WebsiteTick{}, err
		}
		s.logger.Error("failed to load website for tick",
			slog.String("id", websiteID),
			slog.String("error", err.Error()))
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return model.WebsiteTick{}, appErr.NewInternal("failed to load website: %v", err)
	}

	validator, err := s.localValidator(ctx)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return model.WebsiteTick{}, err
	}

	tick := model.WebsiteTick{
		ID:          uuid.New().String(),
		WebsiteID:   website.ID,
		ValidatorID: validator.ID,
		Status:      status,
		Latency:     latency,
		CreatedAt:   time.Now().UTC(),
	}
	if err := s.store.CreateTick(ctx, tick); err != nil {
		s.logger.Error("failed to record tick",
			slog.String("website_id", website.ID),
			slog.String("error", err.Error()))
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return model.WebsiteTick{}, appErr.NewInternal("failed to record tick: %v", err)
	}

	metrics.TicksRecorded.WithLabelValues(string(status)).Inc()
	s.logger.Info("tick recorded",
		slog.String("tick_id", tick.ID),
		slog.String("website_id", website.ID),
		slog.String("status", string(status)))
	return tick, nil
}

func (s *monitorService) GetWebsiteStatus(ctx context.Context, userID, websiteID string) (model.Website, error) {
	ctx, span := s.tracer.Start(ctx, "GetWebsiteStatus")
	defer span.End()
	span.SetAttributes(attribute.String("website.id", websiteID))

	website, err := s.store.FindWebsite(ctx, websiteID, userID)
	if err != nil {
		if appErr.IsNotFound(err) {
			s.logger.Warn("website not found",
				slog.String("id", websiteID),
				slog.String("user_id", userID))
			return model.Website{}, err
		}
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return model.Website{}, appErr.NewInternal("failed to load website: %v", err)
	}

	ticks, err := s.store.ListRecentTicks(ctx, website.ID, recentTickLimit)
	if err != nil {
		s.logger.Error("failed to load ticks",
			slog.String("website_id", website.ID),
			slog.String("error", err.Error()))
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return model.Website{}, appErr.NewInternal("failed to load ticks: %v", err)
	}
	website.Ticks = ticks
	return website, nil
}

func (s *monitorService) ListWebsites(ctx context.Context, userID string) ([]model.Website, error) {
	ctx, span := s.tracer.Start(ctx, "ListWebsites")
	defer span.End()

	websites, err := s.store.ListWebsites(ctx, userID)
	if err != nil {
		s.logger.Error("failed to list websites",
			slog.String("user_id", userID),
			slog.String("error", err.Error()))
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return nil, appErr.NewInternal("failed to list websites: %v", err)
	}

	for i := range websites {
		ticks, err := s.store.ListRecentTicks(ctx, websites[i].ID, recentTickLimit)
		if err != nil {
			span.RecordError(err)
			span.SetStatus(codes.Error, err.Error())
			return nil, appErr.NewInternal("failed to load ticks: %v", err)
		}
		websites[i].Ticks = ticks
	}

	span.SetAttributes(attribute.Int("website.count", len(websites)))
	return websites, nil
}

func (s *monitorService) SoftDeleteWebsite(ctx context.Context, userID, websiteID string) error {
	ctx, span := s.tracer.Start(ctx, "SoftDeleteWebsite")
	defer span.End()
	span.SetAttributes(attribute.String("website.id", websiteID))

	if err := s.store.DisableWebsite(ctx, websiteID, userID); err != nil {
		if appErr.IsNotFound(err) {
			s.logger.Warn("website not found for delete",
				slog.String("id", websiteID),
				slog.String("user_id", userID))
			return err
		}
		s.logger.Error("failed to delete website",
			slog.String("id", websiteID),
			slog.String("error", err.Error()))
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return appErr.NewInternal("failed to delete website: %v", err)
	}

	s.logger.Info("website soft-deleted",
		slog.String("id", websiteID),
		slog.String("user_id", userID))
	return nil
}

func (s *monitorService) EnsureLocalValidator(ctx context.Context) (model.Validator, error) {
	return s.localValidator(ctx)
}

func (s *monitorService) localValidator(ctx context.Context) (model.Validator, error) {
	validator, err := s.store.FindOrCreateValidator(ctx, model.Validator{
		ID:        uuid.New().String(),
		PublicKey: model.LocalValidatorKey,
		Location:  model.LocalValidatorLocation,
		IP:        model.LocalValidatorIP,
	})
	if err != nil {
		s.logger.Error("failed to resolve local validator", slog.String("error", err.Error()))
		return model.Validator{}, appErr.NewInternal("failed to resolve local validator: %v", err)
	}
	return validator, nil
}
