package storage

import (
	"context"

	"pulsewatch/internal/model"
)

// MonitorStorage is the persistence boundary for websites, validators and
// ticks. Lookups scoped by userID never see other users' rows, and website
// reads exclude soft-deleted rows.
type MonitorStorage interface {
	Ping(ctx context.Context) error

	CreateWebsite(ctx context.Context, w model.Website) error
	// FindWebsite returns the active (non-disabled) website with the given
	// id owned by userID, or apperrors.ErrWebsiteNotFound.
	FindWebsite(ctx context.Context, websiteID, userID string) (model.Website, error)
	ListWebsites(ctx context.Context, userID string) ([]model.Website, error)
	// DisableWebsite soft-deletes the website matching both id and owner.
	// apperrors.ErrWebsiteNotFound when no row matched.
	DisableWebsite(ctx context.Context, websiteID, userID string) error

	// FindOrCreateValidator resolves the validator keyed by v.IP, creating
	// it from v if absent. Concurrent callers converge on a single row.
	FindOrCreateValidator(ctx context.Context, v model.Validator) (model.Validator, error)

	CreateTick(ctx context.Context, t model.WebsiteTick) error
	// ListRecentTicks returns up to limit ticks for the website, most
	// recent first.
	ListRecentTicks(ctx context.Context, websiteID string, limit int) ([]model.WebsiteTick, error)
}
