package scheduler

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/idesignres/iisim/pkg/observability"
	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"
)

var (
	// ErrElectorStopped is returned when the elector is stopped while waiting for leadership
	ErrElectorStopped = errors.New("elector stopped while waiting for leadership")
)

// LeaderElector decides which worker instance owns the rebuild schedule
type LeaderElector interface {
	Start(ctx context.Context) error
	Stop() error
	IsLeader() bool
	WaitForLeadership(ctx context.Context) error
}

type elector struct {
	log        logrus.FieldLogger
	redis      *redis.Client
	cfg        *Config
	instanceID string
	key        string

	isLeader bool
	mu       sync.RWMutex

	done     chan struct{}
	stopOnce sync.Once
	wg       sync.WaitGroup

	promoted chan struct{}
}

// NewLeaderElector creates a leader elector holding its lease under key. The client
// stays owned by the caller.
func NewLeaderElector(log logrus.FieldLogger, client *redis.Client, key string, cfg *Config) LeaderElector {
	instanceID := uuid.New().String()

	return &elector{
		log:        log.WithFields(logrus.Fields{"component": "election", "instance_id": instanceID}),
		redis:      client,
		cfg:        cfg,
		instanceID: instanceID,
		key:        key,
		done:       make(chan struct{}),
		promoted:   make(chan struct{}, 1),
	}
}

func (e *elector) Start(ctx context.Context) error {
	e.log.Info("Starting leader election")

	e.wg.Add(1)
	go e.run(ctx)

	return nil
}

func (e *elector) Stop() error {
	e.stopOnce.Do(func() {
		close(e.done)
		e.wg.Wait()
		e.relinquish(context.Background())
		e.log.Info("Leader election stopped")
	})

	return nil
}

func (e *elector) run(ctx context.Context) {
	defer e.wg.Done()

	e.elect(ctx)

	ticker := time.NewTicker(e.cfg.RenewInterval)
	defer ticker.Stop()

	for {
		select {
		case <-e.done:
			return
		case <-ctx.Done():
			return
		case <-ticker.C:
			e.elect(ctx)
		}
	}
}

func (e *elector) elect(ctx context.Context) {
	wasLeader := e.IsLeader()
	acquired := e.tryAcquire(ctx)

	switch {
	case acquired && !wasLeader:
		e.setLeader(true)
		e.log.Info("Promoted to leader")

		select {
		case e.promoted <- struct{}{}:
		default:
		}
	case !acquired && wasLeader:
		e.setLeader(false)
		e.log.Info("Demoted from leader")
	}
}

func (e *elector) tryAcquire(ctx context.Context) bool {
	acquired, err := e.redis.SetNX(ctx, e.key, e.instanceID, e.cfg.LeaseTTL).Result()
	if err != nil {
		e.log.WithError(err).Debug("Failed to acquire leader lock")
		return false
	}

	if acquired {
		return true
	}

	owner, err := e.redis.Get(ctx, e.key).Result()
	if err != nil {
		if !errors.Is(err, redis.Nil) {
			e.log.WithError(err).Debug("Failed to check lock owner")
		}
		return false
	}

	if owner != e.instanceID {
		e.log.WithField("current_leader", owner).Debug("Another instance holds leadership")
		return false
	}

	if err := e.redis.Expire(ctx, e.key, e.cfg.LeaseTTL).Err(); err != nil {
		e.log.WithError(err).Warn("Failed to renew leader lease")
		return false
	}

	return true
}

func (e *elector) relinquish(ctx context.Context) {
	if !e.IsLeader() {
		return
	}

	owner, err := e.redis.Get(ctx, e.key).Result()
	if err == nil && owner == e.instanceID {
		if err := e.redis.Del(ctx, e.key).Err(); err != nil {
			e.log.WithError(err).Warn("Failed to delete leader lock")
		} else {
			e.log.Info("Relinquished leader lock")
		}
	}

	e.setLeader(false)
}

func (e *elector) setLeader(isLeader bool) {
	e.mu.Lock()
	defer e.mu.Unlock()

	e.isLeader = isLeader
	observability.RecordSchedulerLeader(isLeader)
}

func (e *elector) IsLeader() bool {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.isLeader
}

func (e *elector) WaitForLeadership(ctx context.Context) error {
	if e.IsLeader() {
		return nil
	}

	select {
	case <-e.promoted:
		return nil
	case <-ctx.Done():
		return fmt.Errorf("context canceled while waiting for leadership: %w", ctx.Err())
	case <-e.done:
		return ErrElectorStopped
	}
}

var _ LeaderElector = (*elector)(nil)
