package app

import (
	"context"
	"log/slog"

	"BrowseLens/internal/analyzer"
	"BrowseLens/internal/config"
	"BrowseLens/internal/domain"
	"BrowseLens/internal/infrastructure/llm"
	"BrowseLens/internal/infrastructure/ml"
	"BrowseLens/internal/infrastructure/scheduler"
	"BrowseLens/internal/infrastructure/scraper"
	"BrowseLens/internal/infrastructure/storage"
	"BrowseLens/internal/infrastructure/telegram"
	"BrowseLens/internal/logging"
	"BrowseLens/internal/ports"
	"BrowseLens/internal/usecase"
)

// Application wires configs to use cases and lifecycle orchestration.
type Application struct {
	cfg    config.Config
	Logger *slog.Logger

	Analyzer  *analyzer.Analyzer
	Tracker   *usecase.Tracker
	Reporter  *usecase.Reporter
	Extractor ports.PageExtractor
	Prefs     ports.PreferenceStore

	digest *usecase.Digest
	closer func() error
}

// New builds a runnable application instance. With an empty database DSN
// everything lives in process memory; otherwise records and preferences go
// through the SQL store.
func New(cfg config.Config, baseLogger *slog.Logger) (*Application, error) {
	if baseLogger == nil {
		baseLogger = logging.New(cfg.Logging.Level)
	}

	var (
		activityStore ports.ActivityStore
		prefStore     ports.PreferenceStore
		closer        func() error
	)
	if cfg.Database.DSN != "" {
		sqlStore, err := storage.Open(cfg.Database.DSN)
		if err != nil {
			return nil, err
		}
		activityStore, prefStore, closer = sqlStore, sqlStore, sqlStore.Close
	} else {
		memStore := storage.NewMemoryStore()
		activityStore, prefStore = memStore, memStore
	}

	sentiment, emotions, categories := capabilities(cfg)

	contentAnalyzer := analyzer.New(analyzer.Deps{
		Sentiment: sentiment,
		Emotions:  emotions,
		Category:  categories,
		Logger:    logging.Component(baseLogger, "analyzer"),
	})

	tracker := usecase.NewTracker(usecase.TrackerDeps{
		Analyzer: contentAnalyzer,
		Store:    activityStore,
		Logger:   logging.Component(baseLogger, "tracker"),
	})

	reporter := usecase.NewReporter(usecase.ReporterDeps{
		Store:  activityStore,
		Prefs:  prefStore,
		Logger: logging.Component(baseLogger, "reporter"),
	})

	application := &Application{
		cfg:       cfg,
		Logger:    baseLogger,
		Analyzer:  contentAnalyzer,
		Tracker:   tracker,
		Reporter:  reporter,
		Extractor: scraper.NewExtractor(nil, logging.Component(baseLogger, "scraper")),
		Prefs:     prefStore,
		closer:    closer,
	}

	if tg := cfg.Notifications.Telegram; tg.BotToken != "" && tg.ChatID != "" {
		period, err := domain.ParsePeriod(cfg.Digest.Period)
		if err != nil {
			return nil, err
		}
		application.digest = usecase.NewDigest(usecase.DigestDeps{
			Reporter: reporter,
			Notifier: telegram.NewNotifier(tg.BotToken, tg.ChatID),
			Driver:   scheduler.NewIntervalScheduler(cfg.Digest.Interval),
			UserIDs:  cfg.Digest.UserIDs,
			Period:   period,
			Logger:   logging.Component(baseLogger, "digest"),
		})
	}

	return application, nil
}

// capabilities picks the model backends: the inference service when
// configured, with the LLM classifier covering categories otherwise.
// Capabilities left nil degrade per field at analysis time.
func capabilities(cfg config.Config) (sentiment, emotions, categories ports.TextClassifier) {
	if cfg.ML.InferenceURL != "" {
		client := ml.NewClient(cfg.ML.InferenceURL, cfg.ML.APIKey)
		return client.Sentiment(), client.Emotions(), client.Categories()
	}
	if cfg.OpenAI.APIKey != "" {
		return nil, nil, llm.NewClassifier(cfg.OpenAI.APIKey, cfg.OpenAI.Model)
	}
	return nil, nil, nil
}

// Digest returns the configured digest job, or nil when notifications are
// not set up.
func (a *Application) Digest() *usecase.Digest {
	return a.digest
}

// StartDigest launches the recurring digest delivery if configured.
func (a *Application) StartDigest(ctx context.Context) error {
	if a.digest == nil {
		return nil
	}
	return a.digest.Start(ctx)
}

// Close releases held resources.
func (a *Application) Close() error {
	if a.closer == nil {
		return nil
	}
	return a.closer()
}
