package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-telegram/bot"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/motomotoph/mc1lovecamerabot/internal/app"
	"github.com/motomotoph/mc1lovecamerabot/internal/config"
	"github.com/motomotoph/mc1lovecamerabot/internal/controller"
	"github.com/motomotoph/mc1lovecamerabot/internal/controller/intake"
	"github.com/motomotoph/mc1lovecamerabot/internal/controller/state"
	"github.com/motomotoph/mc1lovecamerabot/internal/notifier"
	"github.com/motomotoph/mc1lovecamerabot/internal/repository"
	"github.com/motomotoph/mc1lovecamerabot/internal/service"
	"github.com/motomotoph/mc1lovecamerabot/migrations"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

// Сколько ждать завершения начатых диалогов при остановке
const shutdownTimeout = 30 * time.Second

// newRootCmd корневая команда: запуск бота
func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:          "mc1lovecamerabot",
		Short:        "Telegram bot for camera equipment requests",
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runBot(cmd.Context())
		},
	}

	rootCmd.AddCommand(newMigrateCmd())

	return rootCmd
}

// newMigrateCmd применяет схему PostgreSQL и выходит
func newMigrateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Apply PostgreSQL schema for the request ledger",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, logger, err := bootstrap()
			if err != nil {
				return err
			}
			defer logger.Sync()

			if cfg.DBDSN == "" {
				return errors.New("DB_DSN is required for migrate")
			}

			ctx := cmd.Context()
			if ctx == nil {
				ctx = context.Background()
			}

			pool, err := pgxpool.New(ctx, cfg.DBDSN)
			if err != nil {
				return fmt.Errorf("connect to database: %w", err)
			}
			defer pool.Close()

			return migrate(ctx, pool, logger)
		},
	}
}

func bootstrap() (*config.Config, *zap.Logger, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, nil, fmt.Errorf("load config: %w", err)
	}

	logger, err := app.NewLogger(cfg.Environment)
	if err != nil {
		return nil, nil, err
	}
	return cfg, logger, nil
}

func migrate(ctx context.Context, pool *pgxpool.Pool, logger *zap.Logger) error {
	migrator, err := app.NewMigrator(pool, migrations.FS, logger)
	if err != nil {
		return err
	}
	defer migrator.Close()

	return migrator.Run(ctx)
}

func runBot(parent context.Context) error {
	if parent == nil {
		parent = context.Background()
	}

	cfg, logger, err := bootstrap()
	if err != nil {
		return err
	}
	defer logger.Sync()

	logger.Info("Starting equipment request bot",
		zap.String("environment", cfg.Environment),
		zap.String("record_store", cfg.RecordStore),
		zap.Int("admins", len(cfg.AdminChatIDs)),
		zap.String("timezone", cfg.Location.String()))

	if len(cfg.AdminChatIDs) == 0 {
		logger.Warn("ADMIN_CHAT_IDS is empty, requests will not be forwarded")
	}

	ctx, stop := signal.NotifyContext(parent, os.Interrupt, syscall.SIGTERM)
	defer stop()

	store, closeStore := openStore(ctx, cfg, logger)
	defer closeStore()

	// Задачи в очереди доживают до конца при остановке
	dispatcher := app.NewDispatcher(context.WithoutCancel(ctx), logger)

	b, err := bot.New(cfg.TelegramToken, bot.WithNotAsyncHandlers())
	if err != nil {
		return fmt.Errorf("create bot: %w", err)
	}

	sessions := state.NewManager()
	planner := service.NewDatePlanner(cfg.LeadHours, cfg.HorizonDays, cfg.Location)
	numbers := service.NewNumberService(store, cfg.ApplicationPrefix, cfg.ExternalTimeout, logger)
	submissions := service.NewSubmissionService(
		store,
		notifier.NewTelegram(b, cfg.NotifyRate, logger),
		cfg.AdminChatIDs,
		cfg.ExternalTimeout,
		logger,
	)
	engine := intake.NewEngine(sessions, planner, numbers, submissions, logger)

	botController := controller.NewBotController(b, engine, dispatcher, logger)
	if err := botController.RegisterHandlers(ctx); err != nil {
		// Без меню команд бот всё равно работает
		logger.Warn("Bot started without command menu", zap.Error(err))
	}

	scheduler := app.NewScheduler(sessions, cfg.SessionIdleTTL, logger)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		scheduler.Start(gctx)
		<-gctx.Done()
		scheduler.Stop()
		return nil
	})
	g.Go(func() error {
		return botController.Start(gctx)
	})

	runErr := g.Wait()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := dispatcher.Shutdown(shutdownCtx); err != nil {
		logger.Error("Dispatcher did not stop in time", zap.Error(err))
	}

	logger.Info("Bot stopped", zap.Int("active_sessions", sessions.Len()))
	return runErr
}

// openStore выбирает журнал заявок. Без настроек бот работает без сохранения.
func openStore(ctx context.Context, cfg *config.Config, logger *zap.Logger) (service.RecordStore, func()) {
	noop := func() {}

	switch cfg.RecordStore {
	case config.StorePostgres:
		pool, err := pgxpool.New(ctx, cfg.DBDSN)
		if err != nil {
			logger.Error("Failed to connect to database, requests will not be saved", zap.Error(err))
			return repository.NewUnavailableRepository("database connection failed"), noop
		}
		if err := migrate(ctx, pool, logger); err != nil {
			logger.Error("Failed to migrate database, requests will not be saved", zap.Error(err))
			pool.Close()
			return repository.NewUnavailableRepository("database migration failed"), noop
		}
		logger.Info("✅ Using PostgreSQL request ledger")
		return repository.NewRequestRepository(pool), pool.Close

	case config.StoreSheets:
		if !cfg.SheetsConfigured() {
			logger.Error("GOOGLE_CREDENTIALS or SPREADSHEET_ID not set, requests will not be saved")
			return repository.NewUnavailableRepository("sheets not configured"), noop
		}
		repo, err := repository.NewSheetsRepository(ctx, cfg.GoogleCredentials, cfg.SpreadsheetID, cfg.SheetName, logger)
		if err != nil {
			logger.Error("Failed to connect to Google Sheets, requests will not be saved", zap.Error(err))
			return repository.NewUnavailableRepository("sheets connection failed"), noop
		}

		headerCtx, cancel := context.WithTimeout(ctx, cfg.ExternalTimeout)
		defer cancel()
		if err := repo.EnsureHeader(headerCtx); err != nil {
			// Таблица может быть временно недоступна, журнал остаётся подключённым
			logger.Warn("Failed to check sheet header", zap.Error(err))
		}
		logger.Info("✅ Using Google Sheets request ledger", zap.String("sheet", cfg.SheetName))
		return repo, noop

	default:
		logger.Warn("Record store disabled, requests will not be saved")
		return repository.NewUnavailableRepository("record store disabled"), noop
	}
}
