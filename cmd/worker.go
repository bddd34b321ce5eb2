package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	gormpostgres "gorm.io/driver/postgres"
	"gorm.io/gorm"

	"github.com/ScottHCollier/inntrac-app/internal/core/events"
	emailpg "github.com/ScottHCollier/inntrac-app/internal/email/postgres"
	"github.com/ScottHCollier/inntrac-app/internal/mailer"
	"github.com/ScottHCollier/inntrac-app/pkg/logger"
)

var workerCmd = &cobra.Command{
	Use:   "worker",
	Short: "Start worker pools for various services",
	Long:  `Start and manage worker pools for background services like email delivery.`,
}

var mailerWorkerCmd = &cobra.Command{
	Use:   "mailer",
	Short: "Start mailer worker pool",
	Long:  `Start the mailer worker pool that drains the email queue and delivers messages`,
	Run: func(cmd *cobra.Command, args []string) {
		startMailerWorker()
	},
}

var eventWorkerCmd = &cobra.Command{
	Use:   "events",
	Short: "Start event bus worker",
	Long:  `Start the event bus`,
	Run: func(cmd *cobra.Command, args []string) {
		startEventWorker()
	},
}

var (
	maxWorkers   int
	jobQueueSize int
	apiURL       string
	apiKey       string
)

func startMailerWorker() {
	config, err := loadConfig(".")
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load config: %v\n", err)
		os.Exit(1)
	}

	logger.Init(os.Getenv("APP_ENV"))
	log := logger.L()

	db, err := initDB(config.Database)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize database: %v\n", err)
		os.Exit(1)
	}
	defer db.Close()

	gormDB, err := gorm.Open(gormpostgres.New(gormpostgres.Config{Conn: db.DB}), &gorm.Config{})
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize orm: %v\n", err)
		os.Exit(1)
	}

	mailerConfig := mailer.Config{
		APIURL:       getStringFlag(apiURL, config.Mailer.APIURL),
		APIKey:       getStringFlag(apiKey, config.Mailer.APIKey),
		FromAddress:  config.Mailer.FromAddress,
		SendTimeout:  config.Mailer.SendTimeout,
		MaxWorkers:   getIntFlag(maxWorkers, config.Mailer.MaxWorkers),
		JobQueueSize: getIntFlag(jobQueueSize, config.Mailer.JobQueueSize),
	}

	log.Info("starting mailer worker",
		"max_workers", mailerConfig.MaxWorkers,
		"job_queue_size", mailerConfig.JobQueueSize,
		"api_url", mailerConfig.APIURL,
		"poll_interval", config.Mailer.PollInterval)

	client := mailer.NewClient(mailerConfig, emailpg.NewEmailRepository(gormDB), log)

	pollCtx, stopPolling := context.WithCancel(context.Background())
	go client.Poll(pollCtx, config.Mailer.PollInterval)

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

	log.Info("mailer worker is running. Press Ctrl+C to stop.")

	sig := <-sigChan
	log.Info("received signal, shutting down mailer worker", "signal", sig)
	stopPolling()

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	shutdownDone := make(chan struct{})
	go func() {
		client.Shutdown()
		close(shutdownDone)
	}()

	select {
	case <-shutdownDone:
		log.Info("mailer worker pool shutdown complete")
	case <-ctx.Done():
		log.Warn("shutdown timeout reached, forcing exit")
	}
}

func startEventWorker() {
	_, err := loadConfig(".")
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load config: %v\n", err)
		os.Exit(1)
	}

	logger.Init(os.Getenv("APP_ENV"))
	log := logger.L()

	eventBus := events.NewEventBus(log)

	eventBus.Subscribe(events.EventTypeTimeOffRequested, func(ctx context.Context, event events.Event) error {
		log.Info("received time off event",
			"event_id", event.EventID(),
			"event_type", event.EventType(),
			"payload", event.Payload())
		return nil
	})

	log.Info("event bus worker started. Waiting for events...")

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

	log.Info("event bus is running. Press Ctrl+C to stop.")

	sig := <-sigChan
	log.Info("received signal, shutting down event bus", "signal", sig)
	log.Info("event bus shutdown complete")
}

func getStringFlag(flagValue, configValue string) string {
	if flagValue != "" {
		return flagValue
	}
	return configValue
}

func getIntFlag(flagValue, configValue int) int {
	if flagValue > 0 {
		return flagValue
	}
	return configValue
}

func init() {
	mailerWorkerCmd.Flags().IntVar(&maxWorkers, "max-workers", 0, "Maximum number of workers (overrides config)")
	mailerWorkerCmd.Flags().IntVar(&jobQueueSize, "job-queue-size", 0, "Job queue buffer size (overrides config)")
	mailerWorkerCmd.Flags().StringVar(&apiURL, "api-url", "", "Mail API URL (overrides config)")
	mailerWorkerCmd.Flags().StringVar(&apiKey, "api-key", "", "Mail API key (overrides config)")

	workerCmd.AddCommand(mailerWorkerCmd)
	workerCmd.AddCommand(eventWorkerCmd)

	rootCmd.AddCommand(workerCmd)
}
