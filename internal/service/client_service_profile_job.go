package service

import (
	"context"
	"sync"
	"time"

	"github.com/MKhiriev/go-applicant-desk/internal/logger"
)

const defaultProfileRefreshInterval = 5 * time.Minute

type profileRefreshJob struct {
	authService AuthService
	logger      *logger.Logger

	mu     sync.Mutex
	cancel context.CancelFunc
	wg     sync.WaitGroup
}

// NewProfileRefreshJob creates a profileRefreshJob that calls
// authService.RefreshProfile on a ticker. The job is idle until Start is
// called.
func NewProfileRefreshJob(authService AuthService, logger *logger.Logger) ProfileRefreshJob {
	return &profileRefreshJob{authService: authService, logger: logger}
}

// Start implements ProfileRefreshJob. Ticks that find no active session are
// skipped. Refresh failures are logged and never end the session; an
// irrecoverable token failure is handled by the session manager itself.
func (j *profileRefreshJob) Start(ctx context.Context, interval time.Duration) {
	if interval <= 0 {
		interval = defaultProfileRefreshInterval
	}

	j.Stop()

	j.mu.Lock()
	jobCtx, cancel := context.WithCancel(ctx)
	j.cancel = cancel
	j.wg.Add(1)
	j.mu.Unlock()

	go func() {
		defer j.wg.Done()
		t := time.NewTicker(interval)
		defer t.Stop()

		for {
			select {
			case <-jobCtx.Done():
				return
			case <-t.C:
				if !j.authService.IsAuthenticated() {
					continue
				}
				if _, err := j.authService.RefreshProfile(jobCtx); err != nil {
					j.logger.Warn().Err(err).Str("func", "profileRefreshJob.Start").Msg("profile refresh failed")
				}
			}
		}
	}()
}

// Stop implements ProfileRefreshJob. Safe to call when the job is not
// running.
func (j *profileRefreshJob) Stop() {
	j.mu.Lock()
	cancel := j.cancel
	j.cancel = nil
	j.mu.Unlock()

	if cancel != nil {
		cancel()
	}
	j.wg.Wait()
}
