package main

import (
	"context"
	"fmt"

	"github.com/okian/sdc-standings/internal/adapters/history"
	"github.com/okian/sdc-standings/internal/adapters/render"
	app "github.com/okian/sdc-standings/internal/app"
	"github.com/okian/sdc-standings/internal/config"
	"github.com/okian/sdc-standings/internal/domain/scoring"
	"github.com/okian/sdc-standings/internal/domain/types"
	"github.com/okian/sdc-standings/pkg/logger"
	"github.com/okian/sdc-standings/pkg/metrics"
	"github.com/urfave/cli/v2"
)

// loadConfig loads the configuration named by --config and applies its log
// level.
func loadConfig(cCtx *cli.Context) (*config.Config, error) {
	ctx := cCtx.Context
	cfg, err := config.Load(ctx, cCtx.String(configFlag))
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	// Apply configured log level (fallback to info on invalid input)
	if err := logger.SetLevelString(cfg.LogLevel); err != nil {
		logger.Get().Warn(ctx, "invalid log_level; falling back to info", logger.String("log_level", cfg.LogLevel), logger.Error(err))
		_ = logger.SetLevelString("info")
	}
	return cfg, nil
}

// newService wires the fetcher, roster and scorer described by cfg. Builds
// made by Service.Run are written to disk.
func newService(cfg *config.Config) (*app.Service, error) {
	roster, err := cfg.Roster()
	if err != nil {
		return nil, err
	}
	start, err := cfg.SeasonStartTime()
	if err != nil {
		return nil, err
	}
	log := logger.Get()
	writer := newWriter(cfg)
	fetcher := history.NewClient(
		history.WithBaseURL(cfg.APIURL),
		history.WithTimeout(cfg.RequestTimeout),
		history.WithUserAgent(cfg.UserAgent),
		history.WithLogger(log.Named("history")),
	)
	return app.New(
		app.WithLogger(log.Named("service")),
		app.WithFetcher(fetcher),
		app.WithRoster(roster),
		app.WithSeasonStart(start),
		app.WithLeagueMode(cfg.LeagueMode),
		app.WithPlatform(cfg.Platform),
		app.WithPublisher(func(ctx context.Context, p types.Payload) error {
			return publish(ctx, cfg, writer, p)
		}),
		app.WithScorer(scoring.New(
			scoring.WithScheduled(cfg.Scheduled),
			scoring.WithAdjustments(cfg.Adjustments),
		)),
	), nil
}

func newWriter(cfg *config.Config) *render.Writer {
	return render.NewWriter(
		render.WithDir(cfg.OutputDir),
		render.WithHTMLFile(cfg.HTMLFile),
		render.WithJSONFile(cfg.JSONFile),
		render.WithJSFile(cfg.JSFile),
		render.WithVariable(cfg.JSVariable),
		render.WithCutoff(cfg.Cutoff),
	)
}

// publish writes the output files and, when configured, the metrics textfile.
func publish(ctx context.Context, cfg *config.Config, w *render.Writer, payload types.Payload) error {
	if err := w.Write(payload); err != nil {
		return err
	}
	htmlPath, jsonPath, jsPath := w.Paths()
	logger.Get().Info(ctx, "standings written",
		logger.String("html", htmlPath),
		logger.String("json", jsonPath),
		logger.String("js", jsPath),
	)
	return metrics.WriteTextfile(cfg.MetricsTextfile)
}
