package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/alexanderramin/lichhen/internal/advisor"
	"github.com/alexanderramin/lichhen/internal/cli"
	"github.com/alexanderramin/lichhen/internal/config"
	"github.com/alexanderramin/lichhen/internal/db"
	"github.com/alexanderramin/lichhen/internal/intelligence"
	"github.com/alexanderramin/lichhen/internal/llm"
	"github.com/alexanderramin/lichhen/internal/reminder"
	"github.com/alexanderramin/lichhen/internal/repository"
	"github.com/alexanderramin/lichhen/internal/service"
	"github.com/alexanderramin/lichhen/internal/timeparse"
	"github.com/mattn/go-isatty"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.Load("")
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: logLevel(cfg.LogLevel)}))
	slog.SetDefault(logger)
	loc := cfg.Location()

	database, err := db.OpenDB(cfg.DBPath)
	if err != nil {
		return fmt.Errorf("opening database: %w", err)
	}
	defer database.Close()

	entries := repository.NewSQLiteEntryRepo(database, loc)
	uow := db.NewSQLiteUnitOfWork(database)

	adviceOpts := []advisor.Option{advisor.WithLogger(logger)}

	// The clarifying-question generator is only wired when the LLM is enabled.
	llmCfg := llm.LoadConfig()
	if llmCfg.Enabled {
		var observer llm.Observer = llm.NoopObserver{}
		if llmCfg.LogCalls {
			observer = llm.NewLogObserver(logger)
		}
		client := llm.NewClient(llmCfg, observer)
		adviceOpts = append(adviceOpts, advisor.WithQuestionGenerator(intelligence.NewClarifyService(client)))
	}
	adv := advisor.NewFromConfig(cfg, service.NewCalendar(entries, loc), adviceOpts...)

	// Use-case records are info level; only surface them when debugging.
	var observer service.UseCaseObserver = service.NoopUseCaseObserver{}
	if logger.Enabled(context.Background(), slog.LevelDebug) {
		observer = service.NewSlogUseCaseObserver(logger)
	}
	schedule := service.NewScheduleService(entries, uow, adv, loc, observer)

	watcher := reminder.NewWatcher(schedule, repository.NewSQLiteReminderLogRepo(database),
		reminder.NewLogNotifier(logger),
		reminder.WithLead(time.Duration(cfg.Reminder.LeadMinutes)*time.Minute),
		reminder.WithSchedule(cfg.Reminder.Schedule),
		reminder.WithLocation(loc),
		reminder.WithLogger(logger),
	)

	app := &cli.App{
		Schedule:  schedule,
		Advisor:   adv,
		Reminders: watcher,
		Parser:    timeparse.New(loc),
	}
	// Follow-up questions need a terminal on both ends.
	app.IsInteractive = func() bool {
		return (isatty.IsTerminal(os.Stdin.Fd()) || isatty.IsCygwinTerminal(os.Stdin.Fd())) &&
			(isatty.IsTerminal(os.Stdout.Fd()) || isatty.IsCygwinTerminal(os.Stdout.Fd()))
	}
	app.FollowUp = cli.AskFollowUp(app)

	return cli.NewRootCmd(app).Execute()
}

func logLevel(s string) slog.Level {
	var level slog.Level
	if err := level.UnmarshalText([]byte(strings.ToUpper(strings.TrimSpace(s)))); err != nil {
		return slog.LevelInfo
	}
	return level
}
