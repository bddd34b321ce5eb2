package mailer

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"sync"
	"time"

	"github.com/ScottHCollier/inntrac-app/internal/email"
)

// MailJob carries one queued email record to a delivery worker.
type MailJob struct {
	EmailID  string
	From     string
	To       string
	Template string
	Subject  string
	Body     string
}

type Worker struct {
	ID         int
	WorkerPool chan chan MailJob
	JobChannel chan MailJob
	Logger     *slog.Logger
}

func NewWorker(id int, workerPool chan chan MailJob, logger *slog.Logger) *Worker {
	return &Worker{
		ID:         id,
		WorkerPool: workerPool,
		JobChannel: make(chan MailJob),
		Logger:     logger,
	}
}

func (w *Worker) Start(ctx context.Context, wg *sync.WaitGroup, processFunc func(MailJob)) {
	wg.Add(1)
	go func() {
		defer wg.Done()

		for {

			w.WorkerPool <- w.JobChannel

			select {
			case job := <-w.JobChannel:
				w.Logger.Debug("worker processing job", "worker_id", w.ID, "email_id", job.EmailID)
				processFunc(job)
			case <-ctx.Done():
				w.Logger.Debug("worker shutting down", "worker_id", w.ID)
				return
			}
		}
	}()
}

// Client drains the email queue through a worker pool and delivers each
// record to the mail API.
type Client struct {
	apiURL      string
	apiKey      string
	fromAddress string
	sendTimeout time.Duration
	logger      *slog.Logger
	repo        email.Repository

	jobQueue   chan MailJob
	workerPool chan chan MailJob
	maxWorkers int
	ctx        context.Context
	cancel     context.CancelFunc
	wg         sync.WaitGroup
	once       sync.Once
}

type Config struct {
	APIURL       string
	APIKey       string
	FromAddress  string
	SendTimeout  time.Duration
	MaxWorkers   int
	JobQueueSize int
}

func NewClient(config Config, repo email.Repository, logger *slog.Logger) *Client {
	ctx, cancel := context.WithCancel(context.Background())

	maxWorkers := config.MaxWorkers
	if maxWorkers <= 0 {
		maxWorkers = 5
	}

	jobQueueSize := config.JobQueueSize
	if jobQueueSize <= 0 {
		jobQueueSize = 100
	}

	client := &Client{
		apiURL:      config.APIURL,
		apiKey:      config.APIKey,
		fromAddress: config.FromAddress,
		sendTimeout: config.SendTimeout,
		logger:      logger,
		repo:        repo,

		maxWorkers: maxWorkers,
		jobQueue:   make(chan MailJob, jobQueueSize),
		workerPool: make(chan chan MailJob, maxWorkers),
		ctx:        ctx,
		cancel:     cancel,
	}

	client.startWorkerPool()

	return client
}

func (c *Client) startWorkerPool() {
	c.once.Do(func() {

		for i := 0; i < c.maxWorkers; i++ {
			worker := NewWorker(i, c.workerPool, c.logger)
			worker.Start(c.ctx, &c.wg, c.processMailJob)
		}

		go c.dispatch()

		c.logger.Info("mailer worker pool started",
			"max_workers", c.maxWorkers,
			"queue_size", cap(c.jobQueue))
	})
}

func (c *Client) dispatch() {
	c.wg.Add(1)
	defer c.wg.Done()

	for {
		select {
		case job := <-c.jobQueue:

			select {
			case jobChannel := <-c.workerPool:

				select {
				case jobChannel <- job:

				case <-c.ctx.Done():
					c.logger.Info("dispatcher shutting down")
					return
				}
			case <-c.ctx.Done():
				c.logger.Info("dispatcher shutting down")
				return
			}
		case <-c.ctx.Done():
			c.logger.Info("dispatcher shutting down")
			return
		}
	}
}

func (c *Client) Shutdown() {
	c.logger.Info("shutting down mailer client")
	c.cancel()
	c.wg.Wait()
	c.logger.Info("mailer client shutdown complete")
}

// Poll drains queued email records on the given interval until the context
// is cancelled. Records already in flight are skipped because a batch is
// only fetched after the previous one is queued.
func (c *Client) Poll(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			if err := c.drainQueue(); err != nil {
				c.logger.Error("failed to drain email queue", "error", err)
			}
		case <-ctx.Done():
			c.logger.Info("mailer poll loop stopped")
			return
		case <-c.ctx.Done():
			return
		}
	}
}

func (c *Client) drainQueue() error {
	batch, err := c.repo.NextBatch(cap(c.jobQueue) - len(c.jobQueue))
	if err != nil {
		return err
	}

	for _, record := range batch {
		job := MailJob{
			EmailID:  record.ID,
			From:     record.From,
			To:       record.To,
			Template: record.Template,
			Subject:  record.Subject,
			Body:     record.Body,
		}

		select {
		case c.jobQueue <- job:
		default:
			c.logger.Warn("mail job queue full, deferring record", "email_id", record.ID)
			return nil
		}
	}

	if len(batch) > 0 {
		c.logger.Info("email batch queued", "count", len(batch))
	}

	return nil
}

func (c *Client) processMailJob(job MailJob) {
	c.logger.Info("delivering email", "email_id", job.EmailID, "template", job.Template)

	if err := c.deliver(job); err != nil {
		c.logger.Error("email delivery failed", "email_id", job.EmailID, "error", err)
		if markErr := c.repo.MarkFailed(job.EmailID); markErr != nil {
			c.logger.Error("failed to mark email failed", "email_id", job.EmailID, "error", markErr)
		}
		return
	}

	if err := c.repo.MarkSent(job.EmailID); err != nil {
		c.logger.Error("failed to mark email sent", "email_id", job.EmailID, "error", err)
	}
}

func (c *Client) deliver(job MailJob) error {
	from := job.From
	if from == "" {
		from = c.fromAddress
	}

	payload := map[string]interface{}{
		"from":     from,
		"to":       job.To,
		"template": job.Template,
		"subject":  job.Subject,
		"body":     job.Body,
	}

	jsonData, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("failed to marshal mail request: %w", err)
	}

	ctx, cancel := context.WithTimeout(c.ctx, c.sendTimeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, "POST", c.apiURL+"/messages", bytes.NewBuffer(jsonData))
	if err != nil {
		return fmt.Errorf("failed to create HTTP request: %w", err)
	}

	req.Header.Set("Content-Type", "application/json")
	if c.apiKey != "" {
		req.Header.Set("Authorization", "Bearer "+c.apiKey)
	}

	client := &http.Client{Timeout: c.sendTimeout}
	resp, err := client.Do(req)
	if err != nil {
		return fmt.Errorf("HTTP request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK && resp.StatusCode != http.StatusAccepted {
		return fmt.Errorf("mail API returned status %d", resp.StatusCode)
	}

	return nil
}
