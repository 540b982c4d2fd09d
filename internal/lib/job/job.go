// Package job provides background job processing using Asynq.
//
// Asynq is a Redis-backed job queue:
//   - You enqueue tasks (producer) using asynq.Client.
//   - A server runs workers that process those tasks (consumer) using asynq.Server.
//
// The only task today removes images from blob storage once no dish or
// setmeal points at them any more.
package job

import (
	"context"
	"errors"
	"fmt"

	"github.com/deppfellow/sky-takeout/internal/config"
	"github.com/hibiken/asynq"
	"github.com/rs/zerolog"
)

// BlobDeleter removes a stored object by its public URL.
type BlobDeleter interface {
	Delete(ctx context.Context, rawURL string) error
	Owns(rawURL string) bool
}

// ImageRefs reports whether a dish or setmeal still points at an image.
type ImageRefs interface {
	ImageInUse(ctx context.Context, url string) (bool, error)
}

// JobService holds the Asynq client (enqueue) and server (worker execution).
type JobService struct {
	Client *asynq.Client
	server *asynq.Server
	logger *zerolog.Logger
	blobs  BlobDeleter
	refs   ImageRefs
}

// NewJobService creates a JobService configured to use Redis from cfg.
//
// Queue weights give "critical" tasks the larger share of the 10 workers.
func NewJobService(logger *zerolog.Logger, cfg *config.Config, blobs BlobDeleter) *JobService {
	redisOpt := asynq.RedisClientOpt{
		Addr:     cfg.Redis.Address,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	}

	server := asynq.NewServer(
		redisOpt,
		asynq.Config{
			Concurrency: 10,
			Queues: map[string]int{
				"critical": 6,
				"default":  3,
				"low":      1,
			},
			Logger: newAsynqLogger(logger),
		},
	)

	return &JobService{
		Client: asynq.NewClient(redisOpt),
		server: server,
		logger: logger,
		blobs:  blobs,
	}
}

// Mux routes task types to their handlers.
func (j *JobService) Mux() *asynq.ServeMux {
	mux := asynq.NewServeMux()
	mux.HandleFunc(TaskDeleteBlob, j.handleDeleteBlobTask)
	return mux
}

// UseImageRefs sets the lookup the blob worker consults before deleting.
// It must be called before Start.
func (j *JobService) UseImageRefs(refs ImageRefs) {
	j.refs = refs
}

// Start starts the worker server in the background and returns.
func (j *JobService) Start() error {
	if j.refs == nil {
		return errors.New("job: image references not configured")
	}
	j.logger.Info().Msg("Starting background job server")
	return j.server.Start(j.Mux())
}

// Stop gracefully stops the job server and closes client resources.
func (j *JobService) Stop() {
	j.logger.Info().Msg("Stopping background job server")
	j.server.Shutdown()
	if err := j.Client.Close(); err != nil {
		j.logger.Error().Err(err).Msg("closing job client")
	}
}

// asynqLogger routes asynq's internal logs into zerolog.
type asynqLogger struct {
	log zerolog.Logger
}

func newAsynqLogger(l *zerolog.Logger) *asynqLogger {
	return &asynqLogger{log: l.With().Str("component", "asynq").Logger()}
}

func (a *asynqLogger) Debug(args ...any) { a.log.Debug().Msg(fmt.Sprint(args...)) }
func (a *asynqLogger) Info(args ...any)  { a.log.Info().Msg(fmt.Sprint(args...)) }
func (a *asynqLogger) Warn(args ...any)  { a.log.Warn().Msg(fmt.Sprint(args...)) }
func (a *asynqLogger) Error(args ...any) { a.log.Error().Msg(fmt.Sprint(args...)) }
func (a *asynqLogger) Fatal(args ...any) { a.log.Fatal().Msg(fmt.Sprint(args...)) }
