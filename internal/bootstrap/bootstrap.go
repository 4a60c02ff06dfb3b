package bootstrap

import (
	"fmt"
	"log/slog"

	tea "github.com/charmbracelet/bubbletea"

	analyticsinadapter "focusflow/internal/modules/analytics/adapter/in"
	analyticsoutadapter "focusflow/internal/modules/analytics/adapter/out"
	analyticsservice "focusflow/internal/modules/analytics/service"
	analyticsusecase "focusflow/internal/modules/analytics/usecase"
	goalinadapter "focusflow/internal/modules/goal/adapter/in"
	goaloutadapter "focusflow/internal/modules/goal/adapter/out"
	goalservice "focusflow/internal/modules/goal/service"
	goalusecase "focusflow/internal/modules/goal/usecase"
	sessioninadapter "focusflow/internal/modules/session/adapter/in"
	sessionoutadapter "focusflow/internal/modules/session/adapter/out"
	sessionservice "focusflow/internal/modules/session/service"
	sessionusecase "focusflow/internal/modules/session/usecase"
	"focusflow/internal/platform/clock"
	"focusflow/internal/platform/config"
	"focusflow/internal/platform/id"
	uiapp "focusflow/internal/ui/app"
)

type App struct {
	SessionCLI   sessioninadapter.CLIHandler
	AnalyticsCLI analyticsinadapter.CLIHandler
	GoalCLI      goalinadapter.CLIHandler
	Config       config.Config
	Log          *slog.Logger
}

func New(cfg config.Config, log *slog.Logger) (*App, error) {
	if log == nil {
		log = slog.Default()
	}
	clk := clock.SystemClock{}
	ids := id.UUID{}

	projector, err := sessionoutadapter.NewSQLiteSessionProjector(cfg.DBPath)
	if err != nil {
		return nil, fmt.Errorf("new session projector: %w", err)
	}
	sessionUC := sessionusecase.NewInteractor(sessionservice.NewSessionService(
		clk,
		ids,
		sessionoutadapter.NewCSVSessionStore(cfg.SessionLogPath),
		projector,
		log.With("module", "session"),
	))

	analyticsUC := analyticsusecase.NewInteractor(analyticsservice.NewAnalyticsService(
		clk,
		analyticsoutadapter.NewSessionLogSource(sessionUC),
		analyticsoutadapter.NewMarkdownReportWriter(cfg.ReportsPath, cfg.ReportTemplate),
		log.With("module", "analytics"),
	))

	goalUC := goalusecase.NewInteractor(goalservice.NewGoalService(
		clk,
		goaloutadapter.NewCSVGoalStore(cfg.GoalsPath),
		goaloutadapter.NewAnalyticsActuals(analyticsUC),
		log.With("module", "goal"),
	))

	return &App{
		SessionCLI:   sessioninadapter.NewCLIHandler(sessionUC),
		AnalyticsCLI: analyticsinadapter.NewCLIHandler(analyticsUC),
		GoalCLI:      goalinadapter.NewCLIHandler(goalUC),
		Config:       cfg,
		Log:          log,
	}, nil
}

func RunTUI(app *App) error {
	model := uiapp.NewModel(app.SessionCLI, app.AnalyticsCLI, app.GoalCLI, app.Config.Subjects, app.Config.Moods)
	program := tea.NewProgram(model, tea.WithAltScreen())
	_, err := program.Run()
	return err
}
