package service

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/MKhiriev/ai-interviewer/internal/logger"
	"github.com/MKhiriev/ai-interviewer/internal/store"
)

const defaultRefreshInterval = time.Minute

type clientRefreshJob struct {
	sessions    ClientSessionService
	credentials store.CredentialStore
	logger      *logger.Logger

	mu     sync.Mutex
	cancel context.CancelFunc
	wg     sync.WaitGroup
}

// NewClientRefreshJob creates a clientRefreshJob that re-fetches the session
// list on a ticker while a credential is stored. The job is idle until Start
// is called.
func NewClientRefreshJob(sessions ClientSessionService, credentials store.CredentialStore, logger *logger.Logger) ClientRefreshJob {
	return &clientRefreshJob{sessions: sessions, credentials: credentials, logger: logger}
}

// Start implements ClientRefreshJob. The goroutine exits when ctx is
// cancelled or Stop is called.
func (j *clientRefreshJob) Start(ctx context.Context, interval time.Duration) {
	if interval <= 0 {
		interval = defaultRefreshInterval
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
				j.refresh(jobCtx)
			}
		}
	}()
}

// refresh re-fetches the session list. Without a stored credential there is
// nothing to refresh; failures are logged and the next tick tries again.
func (j *clientRefreshJob) refresh(ctx context.Context) {
	if _, err := j.credentials.Load(ctx); err != nil {
		if !errors.Is(err, store.ErrCredentialNotFound) {
			j.logger.Err(err).Str("func", "clientRefreshJob.refresh").Msg("error loading credential")
		}
		return
	}

	sessions, err := j.sessions.RefreshSessions(ctx)
	if err != nil {
		if ctx.Err() == nil {
			j.logger.Err(err).Str("func", "clientRefreshJob.refresh").Msg("error refreshing sessions")
		}
		return
	}

	j.logger.Debug().Int("sessions", len(sessions)).Msg("session list refreshed")
}

// Stop implements ClientRefreshJob. Safe to call when the job is not
// running.
func (j *clientRefreshJob) Stop() {
	j.mu.Lock()
	cancel := j.cancel
	j.cancel = nil
	j.mu.Unlock()

	if cancel != nil {
		cancel()
	}
	j.wg.Wait()
}
