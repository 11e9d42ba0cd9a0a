package bootstrap

import (
	"context"
	"errors"
	"fmt"
	"io"

	tea "github.com/charmbracelet/bubbletea"

	accountinadapter "kex/internal/modules/account/adapter/in"
	accountoutadapter "kex/internal/modules/account/adapter/out"
	accountusecase "kex/internal/modules/account/usecase"
	"kex/internal/modules/explorer/domain"
	explorerin "kex/internal/modules/explorer/port/in"
	explorerout "kex/internal/modules/explorer/port/out"
	explorerservice "kex/internal/modules/explorer/service"
	historyinadapter "kex/internal/modules/history/adapter/in"
	historyoutadapter "kex/internal/modules/history/adapter/out"
	historyusecase "kex/internal/modules/history/usecase"
	prefsinadapter "kex/internal/modules/prefs/adapter/in"
	prefsoutadapter "kex/internal/modules/prefs/adapter/out"
	prefsdto "kex/internal/modules/prefs/dto"
	prefsusecase "kex/internal/modules/prefs/usecase"
	topicsinadapter "kex/internal/modules/topics/adapter/in"
	topicsoutadapter "kex/internal/modules/topics/adapter/out"
	topicsservice "kex/internal/modules/topics/service"
	topicsusecase "kex/internal/modules/topics/usecase"
	"kex/internal/platform/clock"
	"kex/internal/platform/config"
	"kex/internal/platform/id"
	"kex/internal/platform/kv"
	"kex/internal/platform/logger"
	uiapp "kex/internal/ui/app"
	explorerview "kex/internal/ui/views/explorer"
)

type App struct {
	Config     config.Config
	Log        *logger.Logger
	TopicsCLI  topicsinadapter.CLIHandler
	AccountCLI accountinadapter.CLIHandler
	HistoryCLI historyinadapter.CLIHandler
	PrefsCLI   prefsinadapter.CLIHandler

	closers []io.Closer
}

func New(cfg config.Config, log *logger.Logger) (*App, error) {
	if log == nil {
		log = logger.Nop()
	}
	clk := clock.SystemClock{}
	ids := id.UUID{}
	store := kv.Open(cfg.PrefsPath())
	app := &App{Config: cfg, Log: log}

	cache, err := topicsoutadapter.NewSQLiteCache(cfg.DBPath(), cfg.Cache.TTL, clk)
	if err != nil {
		return nil, fmt.Errorf("new response cache: %w", err)
	}
	app.closers = append(app.closers, cache)
	source := topicsoutadapter.NewHTTPSource(cfg.API.URL, cfg.API.Timeout, cfg.API.Retries, ids, log.With("component", "topics"))
	notes := topicsoutadapter.NewMarkdownNotes(cfg.NotesPath())
	topicsUC := topicsusecase.NewInteractor(topicsservice.NewTopicService(source, cache, log.With("component", "topics")), notes, clk)

	historyStore, err := historyoutadapter.NewSQLiteStore(cfg.DBPath())
	if err != nil {
		_ = app.Close()
		return nil, fmt.Errorf("new history store: %w", err)
	}
	app.closers = append(app.closers, historyStore)
	historyUC := historyusecase.NewInteractor(historyStore, clk)

	jar, err := accountoutadapter.NewPersistentJar(store, log.With("component", "account"))
	if err != nil {
		_ = app.Close()
		return nil, err
	}
	gateway := accountoutadapter.NewHTTPGateway(cfg.API.URL, cfg.API.Timeout, jar, ids, log.With("component", "account"))
	accountUC := accountusecase.NewInteractor(gateway, log.With("component", "account"))

	prefsUC := prefsusecase.NewInteractor(prefsoutadapter.NewKVStore(store))

	app.TopicsCLI = topicsinadapter.NewCLIHandler(topicsUC)
	app.HistoryCLI = historyinadapter.NewCLIHandler(historyUC)
	app.AccountCLI = accountinadapter.NewCLIHandler(accountUC)
	app.PrefsCLI = prefsinadapter.NewCLIHandler(prefsUC)
	return app, nil
}

func (a *App) Close() error {
	var errs []error
	for _, c := range a.closers {
		errs = append(errs, c.Close())
	}
	a.closers = nil
	return errors.Join(errs...)
}

// ExplorerFactory builds explorer controllers with the configured timings.
func (a *App) ExplorerFactory(level string) explorerview.ControllerFactory {
	timings := domain.Timings{
		ExitDelay: a.Config.Explorer.ExitDelay,
		Debounce:  a.Config.Explorer.Debounce,
		EnterHold: a.Config.Explorer.EnterHold,
	}
	log := a.Log.With("component", "explorer")
	return func(sched explorerout.Scheduler, fetch explorerout.Fetcher) explorerin.Explorer {
		return explorerservice.NewController(sched, fetch, timings, level, log)
	}
}

// RunTUI starts the terminal UI. A non-empty level overrides the saved one.
func RunTUI(app *App, level string) error {
	prefs, err := app.PrefsCLI.Load(context.Background())
	if err != nil {
		app.Log.Warn("load preferences", "error", err)
		prefs = prefsdto.Preferences{DarkMode: true, Level: app.Config.Level}
	}
	if level != "" {
		if prefs, err = app.PrefsCLI.SetLevel(context.Background(), level); err != nil {
			return err
		}
	}
	model := uiapp.NewModel(
		app.ExplorerFactory(prefs.Level),
		app.TopicsCLI,
		app.HistoryCLI,
		app.AccountCLI,
		app.PrefsCLI,
		prefs,
	)
	program := tea.NewProgram(model, tea.WithAltScreen())
	_, err = program.Run()
	return err
}
