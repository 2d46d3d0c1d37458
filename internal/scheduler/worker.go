package scheduler

import (
	"context"
	"fmt"

	"designhub_backend/internal/notification/inapp"
	projectrepo "designhub_backend/internal/projects/repository"
	reviewrepo "designhub_backend/internal/reviews/repository"
	"designhub_backend/platform/apperr"
	"designhub_backend/platform/config"
	"designhub_backend/platform/logger"

	"github.com/google/uuid"
	"github.com/hibiken/asynq"
	"github.com/jackc/pgx/v5/pgxpool"
)

const workerConcurrency = 10

// Worker consumes delayed jobs. It runs in its own process (cmd/worker)
// with direct repository access; there is no HTTP surface here.
type Worker struct {
	server   *asynq.Server
	mux      *asynq.ServeMux
	projects *projectrepo.Repository
	reviews  *reviewrepo.Repository
	inapp    *inapp.Service
	log      *logger.Logger
}

// NewWorker creates the asynq worker and registers its handlers.
func NewWorker(cfg config.SchedulerConfig, pool *pgxpool.Pool, log *logger.Logger) (*Worker, error) {
	redisURL := cfg.GetRedisURL()
	if redisURL == "" {
		return nil, fmt.Errorf("redis url not configured")
	}

	opt, err := redisClientOpt(redisURL, cfg.GetRedisTLSInsecure())
	if err != nil {
		return nil, err
	}

	queue := cfg.GetAsynqQueueName()
	if queue == "" {
		queue = "default"
	}

	server := asynq.NewServer(opt, asynq.Config{
		Concurrency: workerConcurrency,
		Queues: map[string]int{
			queue: 1,
		},
	})

	mux := asynq.NewServeMux()
	w := &Worker{
		server:   server,
		mux:      mux,
		projects: projectrepo.New(pool),
		reviews:  reviewrepo.New(pool),
		inapp:    inapp.NewService(inapp.NewRepository(pool), log),
		log:      log,
	}

	mux.HandleFunc(TaskReviewReminder, w.handleReviewReminder)

	return w, nil
}

// Run serves jobs until the context is cancelled.
func (w *Worker) Run(ctx context.Context) {
	if w == nil || w.server == nil {
		return
	}

	go func() {
		<-ctx.Done()
		w.server.Shutdown()
	}()

	if err := w.server.Run(w.mux); err != nil {
		w.log.Error("scheduler worker stopped", "error", err)
	}
}

// handleReviewReminder nudges the client to review a completed
// project. The reminder is skipped when the project left the
// completed state or a review already exists.
func (w *Worker) handleReviewReminder(ctx context.Context, task *asynq.Task) error {
	payload, err := ParseReviewReminderPayload(task)
	if err != nil {
		return err
	}

	projectID, err := uuid.Parse(payload.ProjectID)
	if err != nil {
		return err
	}
	clientID, err := uuid.Parse(payload.ClientID)
	if err != nil {
		return err
	}

	project, err := w.projects.GetByID(ctx, projectID)
	if err != nil {
		if apperr.GetKind(err) == apperr.KindNotFound {
			return nil
		}
		return err
	}
	if project.Status != "completed" {
		return nil
	}

	if _, err := w.reviews.GetByProject(ctx, projectID); err == nil {
		// Already reviewed, nothing to remind about.
		return nil
	} else if apperr.GetKind(err) != apperr.KindNotFound {
		return err
	}

	entityType := "project"
	_, err = w.inapp.Send(ctx, inapp.CreateParams{
		UserID:     clientID,
		Title:      "How did it go?",
		Message:    fmt.Sprintf("Your project %q is complete. Leave a review for your designer.", project.Title),
		Type:       inapp.TypeReview,
		EntityType: &entityType,
		EntityID:   &projectID,
	})
	return err
}
