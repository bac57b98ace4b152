// Package runner sequences the end-to-end job flow: fetch the queue, pick
// the first job, acknowledge it, download the payload, drive the import
// pipeline, and report the outcome back to the server.
//
// A Runner processes exactly one job per Run invocation and is strictly
// run-to-completion; repeated polling is the caller's responsibility.
// Callers must also serialize invocations (the panel disables the import
// action while a run is in flight) since concurrent runs would race on the
// same job and temp payload.
package runner

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/soul-abducter-glitch/Store-3D/internal/bridge"
	"github.com/soul-abducter-glitch/Store-3D/internal/config"
	"github.com/soul-abducter-glitch/Store-3D/internal/importer"
	"github.com/soul-abducter-glitch/Store-3D/internal/state"
)

// ErrInvalidJob indicates a job descriptor missing the fields the client
// needs to act on it. Raised before any acknowledgement is sent.
var ErrInvalidJob = errors.New("invalid job")

// maxAckMessageLen bounds the error text forwarded to the server.
const maxAckMessageLen = 220

const (
	pickedMessage   = "Picked by Store-3D bridge."
	importedMessage = "Imported into the scene."
)

// Outcome reports how a run ended. Exactly one of the three terminal shapes
// applies: NoJobs, success (Imported set), or an error returned alongside.
type Outcome struct {
	NoJobs   bool
	JobID    string
	Imported int
}

// Runner owns the job lifecycle. Config is re-read at the start of every
// operation so settings edits take effect immediately; the Runner itself
// never mutates config except when pairing persists a fresh token.
type Runner struct {
	configPath string
	store      *state.Store
	pipeline   *importer.Pipeline
	logger     *slog.Logger
}

// New builds a Runner. store caches the last poll for display; pipeline
// wraps the host tool's import and scene capabilities.
func New(configPath string, store *state.Store, pipeline *importer.Pipeline, logger *slog.Logger) *Runner {
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return &Runner{
		configPath: configPath,
		store:      store,
		pipeline:   pipeline,
		logger:     logger,
	}
}

// Pair exchanges the configured pair code for an API token, persists the
// token, and clears the code. An explicit code argument overrides the
// configured one.
func (r *Runner) Pair(ctx context.Context, code string) error {
	cfg, err := config.Load(r.configPath)
	if err != nil {
		return err
	}
	if strings.TrimSpace(code) == "" {
		code = cfg.PairCode
	}

	client, err := r.client(cfg)
	if err != nil {
		return err
	}

	token, err := client.Pair(ctx, code)
	if err != nil {
		return err
	}

	cfg.APIToken = token
	cfg.PairCode = ""
	if err := config.Save(r.configPath, cfg); err != nil {
		return fmt.Errorf("persist token: %w", err)
	}
	r.logger.Info("paired with server", "server", cfg.ServerURL)
	return nil
}

// TestConnection validates the configured URL and token by listing queued
// jobs. It returns the queued count.
func (r *Runner) TestConnection(ctx context.Context) (int, error) {
	jobs, err := r.FetchJobs(ctx)
	if err != nil {
		return 0, err
	}
	return len(jobs), nil
}

// FetchJobs polls the queue and refreshes the display cache. The cached
// list is for display only; Run always re-polls before acting.
func (r *Runner) FetchJobs(ctx context.Context) ([]bridge.Job, error) {
	cfg, err := config.Load(r.configPath)
	if err != nil {
		return nil, err
	}
	client, err := r.client(cfg)
	if err != nil {
		return nil, err
	}

	jobs, err := client.FetchQueuedJobs(ctx)
	if r.store != nil {
		r.store.Update(jobs, err)
	}
	if err != nil {
		return nil, err
	}
	return jobs, nil
}

// Run executes one complete job: list, pick the first job in server order,
// ack picked, download, import, ack imported. On failure after a job has
// been selected, a best-effort error acknowledgement is sent for that job
// and the original error is returned. The downloaded payload is removed on
// every exit path.
func (r *Runner) Run(ctx context.Context) (Outcome, error) {
	cfg, err := config.Load(r.configPath)
	if err != nil {
		return Outcome{}, err
	}
	client, err := r.client(cfg)
	if err != nil {
		return Outcome{}, err
	}

	jobs, err := client.FetchQueuedJobs(ctx)
	if r.store != nil {
		r.store.Update(jobs, err)
	}
	if err != nil {
		return Outcome{}, err
	}
	if len(jobs) == 0 {
		return Outcome{NoJobs: true}, nil
	}

	// Server ordering is authoritative; no client-side reordering.
	job := jobs[0]
	jobID := strings.TrimSpace(job.JobID)
	downloadURL := strings.TrimSpace(job.DownloadURL)
	if jobID == "" || downloadURL == "" {
		return Outcome{}, fmt.Errorf("%w: jobId or downloadUrl is missing", ErrInvalidJob)
	}

	if err := client.AckJob(ctx, jobID, bridge.StatusPicked, pickedMessage); err != nil {
		return r.fail(ctx, client, jobID, err)
	}

	payload, err := client.Download(ctx, downloadURL, job.Suffix())
	if err != nil {
		return r.fail(ctx, client, jobID, err)
	}
	defer payload.Cleanup()

	result, err := r.pipeline.ImportAndGroup(ctx, payload.Path, cfg.ImportCollection)
	if err != nil {
		return r.fail(ctx, client, jobID, err)
	}

	if err := client.AckJob(ctx, jobID, bridge.StatusImported, importedMessage); err != nil {
		return r.fail(ctx, client, jobID, err)
	}

	r.logger.Info("job imported", "job", jobID, "objects", result.Count())
	return Outcome{JobID: jobID, Imported: result.Count()}, nil
}

func (r *Runner) client(cfg config.Config) (*bridge.Client, error) {
	return bridge.NewClient(bridge.Options{
		BaseURL:          cfg.ServerURL,
		Token:            cfg.APIToken,
		Timeout:          cfg.Timeout(),
		AllowInsecureTLS: cfg.AllowInsecureTLS,
	})
}

// fail reports the selected job as errored and surfaces the original cause.
// Both the fresh poll and the error acknowledgement are best-effort: their
// own failures are logged, never returned, so they cannot mask cause.
func (r *Runner) fail(ctx context.Context, client *bridge.Client, jobID string, cause error) (Outcome, error) {
	// Fresh poll: server state may have advanced while we worked. The
	// result only refreshes the display cache; the acknowledgement below
	// always targets the job this run selected, not whatever is queued now.
	if jobs, err := client.FetchQueuedJobs(ctx); err == nil && r.store != nil {
		r.store.Update(jobs, nil)
	}

	if err := client.AckJob(ctx, jobID, bridge.StatusError, truncate(cause.Error(), maxAckMessageLen)); err != nil {
		r.logger.Warn("error acknowledgement failed", "job", jobID, "error", err)
	}
	return Outcome{JobID: jobID}, cause
}

func truncate(s string, limit int) string {
	runes := []rune(s)
	if len(runes) <= limit {
		return s
	}
	return string(runes[:limit])
}
