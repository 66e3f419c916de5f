package service

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/MKhiriev/zonesync/internal/logger"
)

// defaultSyncInterval is the job tick when no interval is configured.
const defaultSyncInterval = 5 * time.Minute

// maxThrottleFactor caps the per-zone backoff at interval * factor.
const maxThrottleFactor = 16

// zoneThrottle is the per-zone pacing state: no operation runs before
// nextAllowed, and delay grows on failure and shrinks back on success.
type zoneThrottle struct {
	nextAllowed time.Time
	delay       time.Duration
}

// clientSyncJob periodically syncs every eligible zone. Failing zones back
// off exponentially and recover gradually, so one broken zone cannot starve
// the healthy ones or hammer the server.
type clientSyncJob struct {
	syncService ClientSyncService
	logger      *logger.Logger

	mu        sync.Mutex
	cancel    context.CancelFunc
	wg        sync.WaitGroup
	throttles map[string]*zoneThrottle
}

// NewClientSyncJob creates a clientSyncJob driving the given engine. The job
// is idle until Start is called.
func NewClientSyncJob(syncService ClientSyncService, logger *logger.Logger) ClientSyncJob {
	return &clientSyncJob{
		syncService: syncService,
		logger:      logger,
		throttles:   make(map[string]*zoneThrottle),
	}
}

// Start implements ClientSyncJob. It stops any previously running job, then
// launches a background goroutine that walks the zone set every interval.
// The goroutine exits when ctx is cancelled or Stop is called.
func (j *clientSyncJob) Start(ctx context.Context, interval time.Duration) {
	if interval <= 0 {
		interval = defaultSyncInterval
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
				j.tick(jobCtx, interval)
			}
		}
	}()
}

// tick syncs every zone whose throttle allows an operation now.
func (j *clientSyncJob) tick(ctx context.Context, interval time.Duration) {
	zones, err := j.syncService.Zones(ctx)
	if err != nil {
		j.logger.Err(err).Str("func", "clientSyncJob.tick").Msg("zone listing failed")
		return
	}

	now := time.Now()
	for _, zone := range zones {
		if ctx.Err() != nil {
			return
		}

		throttle := j.throttleFor(zone, interval)
		if now.Before(throttle.nextAllowed) {
			continue
		}

		err := j.syncService.Sync(ctx, zone)
		switch {
		case err == nil:
			// recover gradually toward the base interval
			throttle.delay = max(interval, throttle.delay/2)
		case errors.Is(err, ErrZoneBusy):
			// a manual sync owns the zone right now; try again next tick
			continue
		default:
			j.logger.Err(err).Str("func", "clientSyncJob.tick").Str("zone", zone).Msg("zone sync failed")
			throttle.delay = min(throttle.delay*2, interval*maxThrottleFactor)
		}
		throttle.nextAllowed = time.Now().Add(throttle.delay)
	}
}

func (j *clientSyncJob) throttleFor(zone string, interval time.Duration) *zoneThrottle {
	j.mu.Lock()
	defer j.mu.Unlock()

	throttle, ok := j.throttles[zone]
	if !ok {
		throttle = &zoneThrottle{delay: interval}
		j.throttles[zone] = throttle
	}
	return throttle
}

// Stop implements ClientSyncJob. It cancels the background goroutine's
// context and blocks until the goroutine has fully exited. Safe to call when
// the job is not running.
func (j *clientSyncJob) Stop() {
	j.mu.Lock()
	cancel := j.cancel
	j.cancel = nil
	j.mu.Unlock()

	if cancel != nil {
		cancel()
	}
	j.wg.Wait()
}
