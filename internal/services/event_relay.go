package services

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"

	"github.com/fastygo/taskboard/domain"
	"github.com/fastygo/taskboard/internal/infrastructure/buffer"
	"github.com/fastygo/taskboard/pkg/metrics"
	"github.com/fastygo/taskboard/repository"
)

// ConnectionHealth reports whether the event publisher is reachable.
type ConnectionHealth interface {
	RedisOnline() bool
}

// RelayConfig controls how frequently the outbox is drained.
type RelayConfig struct {
	Interval   time.Duration
	BatchSize  int
	MaxRetries int
	Retention  time.Duration
}

// EventRelay delivers task events to the publisher and parks them in the
// BoltDB outbox while the publisher is unreachable.
type EventRelay struct {
	store     *buffer.Store
	monitor   ConnectionHealth
	publisher repository.EventPublisher
	logger    *zap.Logger
	cron      *cron.Cron
	cfg       RelayConfig
}

func NewEventRelay(
	store *buffer.Store,
	monitor ConnectionHealth,
	publisher repository.EventPublisher,
	logger *zap.Logger,
	cfg RelayConfig,
) *EventRelay {
	if cfg.Interval <= 0 {
		cfg.Interval = 30 * time.Second
	}
	if cfg.BatchSize <= 0 {
		cfg.BatchSize = 50
	}
	if cfg.MaxRetries <= 0 {
		cfg.MaxRetries = 3
	}
	if logger == nil {
		logger = zap.NewNop()
	}

	r := &EventRelay{
		store:     store,
		monitor:   monitor,
		publisher: publisher,
		logger:    logger,
		cfg:       cfg,
		cron:      cron.New(cron.WithSeconds()),
	}

	schedule := fmt.Sprintf("@every %ds", max(1, int(cfg.Interval.Seconds())))
	_, _ = r.cron.AddFunc(schedule, func() {
		ctx, cancel := context.WithTimeout(context.Background(), cfg.Interval)
		defer cancel()
		if err := r.Drain(ctx); err != nil {
			r.logger.Error("event outbox drain failed", zap.Error(err))
		}
	})
	if cfg.Retention > 0 {
		_, _ = r.cron.AddFunc("@hourly", r.cleanup)
	}

	return r
}

// Start launches the cron scheduler.
func (r *EventRelay) Start() {
	if r == nil || r.cron == nil {
		return
	}
	r.cron.Start()
	r.logger.Info("event relay started")
}

// Stop waits for a running drain to finish or ctx to expire.
func (r *EventRelay) Stop(ctx context.Context) {
	if r == nil || r.cron == nil {
		return
	}
	stopCtx := r.cron.Stop()
	select {
	case <-stopCtx.Done():
	case <-ctx.Done():
	}
	r.logger.Info("event relay stopped")
}

// Deliver publishes item right away when the publisher looks reachable and the
// outbox is empty. Otherwise it queues behind the backlog so Drain keeps order.
func (r *EventRelay) Deliver(ctx context.Context, item buffer.Item) error {
	if r == nil || r.store == nil {
		return fmt.Errorf("event relay not configured")
	}

	backlog, err := r.store.Size()
	if err != nil {
		r.logger.Warn("outbox size unavailable, buffering", zap.String("item_id", item.ID), zap.Error(err))
		backlog = 1
	}

	if backlog == 0 && (r.monitor == nil || r.monitor.RedisOnline()) {
		err := r.publish(ctx, item)
		if err == nil {
			metrics.IncrementTaskEvent("published")
			return nil
		}
		r.logger.Warn("event publish failed, buffering", zap.String("item_id", item.ID), zap.Error(err))
	}

	if err := r.store.Enqueue(item); err != nil {
		metrics.IncrementTaskEvent("dropped")
		return err
	}
	metrics.IncrementTaskEvent("buffered")
	return nil
}

// Drain publishes buffered events in order. It stops at the first failure so
// later events are not delivered ahead of an earlier one.
func (r *EventRelay) Drain(ctx context.Context) error {
	if r == nil || r.store == nil {
		return nil
	}
	defer r.reportSize()

	if r.monitor != nil && !r.monitor.RedisOnline() {
		r.logger.Debug("skipping event drain (publisher offline)")
		return nil
	}

	items, err := r.store.GetBatch(r.cfg.BatchSize)
	if err != nil {
		return err
	}

	for _, item := range items {
		if err := r.publish(ctx, item); err != nil {
			item.Retries++
			r.logger.Error("failed to publish buffered event",
				zap.String("item_id", item.ID),
				zap.Int("retries", item.Retries),
				zap.Error(err))

			if item.Retries >= r.cfg.MaxRetries {
				r.logger.Warn("dropping buffered event (max retries reached)", zap.String("item_id", item.ID))
				metrics.IncrementTaskEvent("dropped")
				if err := r.store.Remove(item); err != nil {
					r.logger.Warn("failed to remove buffered event", zap.Error(err))
				}
				continue
			}
			if err := r.store.Requeue(item); err != nil {
				r.logger.Error("failed to requeue buffered event", zap.Error(err))
			}
			return nil
		}

		metrics.IncrementTaskEvent("published")
		if err := r.store.Remove(item); err != nil {
			r.logger.Warn("failed to purge delivered event", zap.Error(err))
		}
	}
	return nil
}

// Size returns the number of buffered events.
func (r *EventRelay) Size() int {
	if r == nil || r.store == nil {
		return 0
	}
	size, err := r.store.Size()
	if err != nil {
		return 0
	}
	return size
}

func (r *EventRelay) publish(ctx context.Context, item buffer.Item) error {
	if item.Entity != buffer.EntityTaskEvent {
		return fmt.Errorf("unsupported entity %s", item.Entity)
	}
	var event domain.TaskEvent
	if err := json.Unmarshal(item.Data, &event); err != nil {
		return err
	}
	return r.publisher.Publish(ctx, event)
}

func (r *EventRelay) cleanup() {
	removed, err := r.store.Cleanup(time.Now().Add(-r.cfg.Retention))
	if err != nil {
		r.logger.Error("event outbox cleanup failed", zap.Error(err))
		return
	}
	if removed > 0 {
		r.logger.Warn("expired buffered events", zap.Int("count", removed))
	}
}

func (r *EventRelay) reportSize() {
	metrics.SetEventBufferSize(r.Size())
}
