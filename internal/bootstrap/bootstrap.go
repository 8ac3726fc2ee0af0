package bootstrap

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"

	cataloginadapter "questlog/internal/modules/catalog/adapter/in"
	catalogoutadapter "questlog/internal/modules/catalog/adapter/out"
	catalogservice "questlog/internal/modules/catalog/service"
	catalogusecase "questlog/internal/modules/catalog/usecase"
	ledgerinadapter "questlog/internal/modules/ledger/adapter/in"
	ledgeroutadapter "questlog/internal/modules/ledger/adapter/out"
	ledgerservice "questlog/internal/modules/ledger/service"
	ledgerusecase "questlog/internal/modules/ledger/usecase"
	notifyinadapter "questlog/internal/modules/notify/adapter/in"
	notifyoutadapter "questlog/internal/modules/notify/adapter/out"
	notifyservice "questlog/internal/modules/notify/service"
	notifyusecase "questlog/internal/modules/notify/usecase"
	sessioninadapter "questlog/internal/modules/session/adapter/in"
	sessionoutadapter "questlog/internal/modules/session/adapter/out"
	sessionservice "questlog/internal/modules/session/service"
	sessionusecase "questlog/internal/modules/session/usecase"
	"questlog/internal/platform/clock"
	"questlog/internal/platform/config"
	"questlog/internal/platform/id"
	uiapp "questlog/internal/ui/app"
)

type App struct {
	CatalogCLI cataloginadapter.CLIHandler
	LedgerCLI  ledgerinadapter.CLIHandler
	SessionCLI sessioninadapter.CLIHandler
	NotifyCLI  notifyinadapter.CLIHandler
}

func New(cfg config.Config) (*App, error) {
	clk := clock.SystemClock{}
	ids := id.RandomHex{}

	definitionStore := catalogoutadapter.NewYAMLDefinitionStore(cfg.TasksPath, cfg.RewardsPath)
	catalogUC := catalogusecase.NewInteractor(catalogservice.NewCatalogService(definitionStore))

	ledgerStore, err := ledgeroutadapter.NewSQLiteLedgerStore(cfg.DBPath)
	if err != nil {
		return nil, fmt.Errorf("new ledger store: %w", err)
	}
	ledgerUC := ledgerusecase.NewInteractor(ledgerservice.NewLedgerService(ledgerStore))

	notifyUC := notifyusecase.NewInteractor(notifyservice.NewNotifyService(
		notifyoutadapter.NewFileManifestStore(cfg.DataDir, cfg.NotifiersPath),
		notifyoutadapter.NewGRPCHost(),
	))

	activeStore := sessionoutadapter.NewFileActiveSessionStore(cfg.ActivePath)
	sessionUC := sessionusecase.NewInteractor(
		sessionservice.NewSessionService(clk, ids),
		catalogUC,
		ledgerUC,
		notifyUC,
		activeStore,
	)

	return &App{
		CatalogCLI: cataloginadapter.NewCLIHandler(catalogUC),
		LedgerCLI:  ledgerinadapter.NewCLIHandler(ledgerUC),
		SessionCLI: sessioninadapter.NewCLIHandler(sessionUC),
		NotifyCLI:  notifyinadapter.NewCLIHandler(notifyUC),
	}, nil
}

func RunTUI(app *App) error {
	model := uiapp.NewModel(app.CatalogCLI, app.LedgerCLI, app.SessionCLI)
	program := tea.NewProgram(model, tea.WithAltScreen())
	_, err := program.Run()
	return err
}
