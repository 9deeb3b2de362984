// Command seed loads development fixtures: a few websites for two test
// users, three regional validators and a backdated tick history. Intended
// for local environments only.
package main

import (
	"context"
	"log/slog"
	"os"
	"time"

	"github.com/google/uuid"
	"github.com/joho/godotenv"

	"pulsewatch/internal/logger"
	"pulsewatch/internal/model"
	"pulsewatch/internal/storage"
)

func main() {
	l := logger.NewJSONLogger()
	slog.SetDefault(l)

	if err := godotenv.Load(); err != nil {
		l.Debug("no .env file loaded", "err", err)
	}

	dsn := os.Getenv("DATABASE_URL")
	if dsn == "" {
		l.Error("DATABASE_URL not set in environment")
		os.Exit(1)
	}

	ctx := context.Background()
	pool, err := storage.NewPostgresPool(ctx, dsn)
	if err != nil {
		l.Error("failed to connect to database", slog.Any("error", err))
		os.Exit(1)
	}
	defer pool.Close()

	store, err := storage.NewPostgresStorage(ctx, pool)
	if err != nil {
		l.Error("failed to initialize storage", slog.Any("error", err))
		os.Exit(1)
	}

	if err := seed(ctx, store, l); err != nil {
		l.Error("seed failed", slog.Any("error", err))
		os.Exit(1)
	}
	l.Info("database seeded")
}

func seed(ctx context.Context, store storage.MonitorStorage, l *slog.Logger) error {
	const (
		userA = "1"
		userB = "2"
	)

	websites := []model.Website{
		{ID: uuid.New().String(), URL: "https://www.google.com", UserID: userA},
		{ID: uuid.New().String(), URL: "https://github.com", UserID: userA},
		{ID: uuid.New().String(), URL: "https://stackoverflow.com", UserID: userA},
		{ID: uuid.New().String(), URL: "https://www.reddit.com", UserID: userB},
	}
	for _, w := range websites {
		if err := store.CreateWebsite(ctx, w); err != nil {
			return err
		}
	}
	l.Info("created websites", slog.Int("count", len(websites)))

	validators := make([]model.Validator, 0, 3)
	for _, v := range []model.Validator{
		{ID: uuid.New().String(), PublicKey: "validator-us-east-001", Location: "US-East", IP: "192.168.1.100"},
		{ID: uuid.New().String(), PublicKey: "validator-eu-west-001", Location: "EU-West", IP: "192.168.2.200"},
		{ID: uuid.New().String(), PublicKey: "validator-ap-001", Location: "Asia-Pacific", IP: "192.168.3.300"},
	} {
		created, err := store.FindOrCreateValidator(ctx, v)
		if err != nil {
			return err
		}
		validators = append(validators, created)
	}
	l.Info("created validators", slog.Int("count", len(validators)))

	tick := func(websiteIdx, validatorIdx int, status model.TickStatus, latency float64, minutesAgo int) model.WebsiteTick {
		return model.WebsiteTick{
			ID:          uuid.New().String(),
			WebsiteID:   websites[websiteIdx].ID,
			ValidatorID: validators[validatorIdx].ID,
			Status:      status,
			Latency:     latency,
			CreatedAt:   time.Now().UTC().Add(-time.Duration(minutesAgo) * time.Minute),
		}
	}

	ticks := []model.WebsiteTick{
		// google: mostly good, one recent outage, plus history past the
		// ten-tick window
		tick(0, 0, model.StatusGood, 120.5, 0),
		tick(0, 1, model.StatusGood, 98.2, 3),
		tick(0, 0, model.StatusGood, 145.8, 6),
		tick(0, 2, model.StatusBad, 0, 9),
		tick(0, 0, model.StatusGood, 132.1, 12),
		tick(0, 1, model.StatusGood, 115.3, 15),
		tick(0, 0, model.StatusGood, 108.7, 18),
		tick(0, 2, model.StatusGood, 125.4, 21),
		tick(0, 1, model.StatusGood, 142.9, 24),
		tick(0, 0, model.StatusGood, 118.6, 27),
		tick(0, 0, model.StatusGood, 110.2, 35),
		tick(0, 1, model.StatusGood, 105.8, 40),
		tick(0, 0, model.StatusBad, 0, 45),
		tick(0, 2, model.StatusGood, 128.3, 50),

		// github: all good
		tick(1, 0, model.StatusGood, 95.4, 2),
		tick(1, 1, model.StatusGood, 88.7, 5),
		tick(1, 0, model.StatusGood, 92.1, 8),
		tick(1, 2, model.StatusGood, 89.5, 11),
		tick(1, 0, model.StatusGood, 94.3, 14),

		// stackoverflow: all good
		tick(2, 0, model.StatusGood, 156.3, 1),
		tick(2, 1, model.StatusGood, 148.9, 4),
		tick(2, 0, model.StatusGood, 162.1, 7),

		// reddit (user B): flapping, with an unknown
		tick(3, 0, model.StatusGood, 178.5, 0),
		tick(3, 1, model.StatusBad, 0, 3),
		tick(3, 0, model.StatusBad, 0, 6),
		tick(3, 2, model.StatusGood, 185.2, 9),
		tick(3, 0, model.StatusUnknown, 0, 18),
	}
	for _, t := range ticks {
		if err := store.CreateTick(ctx, t); err != nil {
			return err
		}
	}
	l.Info("created ticks", slog.Int("count", len(ticks)))
	return nil
}
