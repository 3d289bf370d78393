package appointments

import (
	"context"
	"time"
	"vetcare-service/internal/app/config"
	"vetcare-service/internal/app/contracts"
	"vetcare-service/internal/pkg/constvars"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"
)

const defaultExpiryCronSpec = "@every 1m"

// ExpiryWorker periodically cancels overdue appointments. Only the instance that
// holds the leader lock sweeps on a given tick.
type ExpiryWorker struct {
	log     *zap.Logger
	cfg     *config.InternalConfig
	locker  contracts.LockerService
	usecase contracts.AppointmentUsecase
	now     func() time.Time
	stop    chan struct{}
	cron    *cron.Cron
	runCtx  context.Context
	cancel  context.CancelFunc
}

func NewExpiryWorker(log *zap.Logger, cfg *config.InternalConfig, lockerSvc contracts.LockerService, usecase contracts.AppointmentUsecase) *ExpiryWorker {
	return &ExpiryWorker{log: log, cfg: cfg, locker: lockerSvc, usecase: usecase, now: time.Now, stop: make(chan struct{})}
}

func (w *ExpiryWorker) Start(ctx context.Context) {
	w.runCtx, w.cancel = context.WithCancel(ctx)
	c := cron.New()
	spec := w.cfg.Scheduling.ExpiryWorkerCronSpec
	_, err := c.AddFunc(spec, func() { w.runOnce(w.runCtx) })
	if err != nil {
		w.log.Warn("appointments.worker: invalid cron spec, falling back",
			zap.String("spec", spec),
			zap.String("fallback", defaultExpiryCronSpec),
			zap.Error(err),
		)
		c = cron.New()
		_, _ = c.AddFunc(defaultExpiryCronSpec, func() { w.runOnce(w.runCtx) })
	}
	c.Start()
	w.cron = c
}

// Stop waits for an in-flight sweep to finish.
func (w *ExpiryWorker) Stop() {
	select {
	case <-w.stop:
	default:
		close(w.stop)
	}
	if w.cancel != nil {
		w.cancel()
	}
	if w.cron != nil {
		<-w.cron.Stop().Done()
	}
}

func (w *ExpiryWorker) runOnce(ctx context.Context) {
	ttl := w.cfg.Scheduling.ExpiryWorkerLockTTL()
	acquired, token, err := w.locker.TryLock(ctx, constvars.RedisKeyExpiryWorkerLeader, ttl)
	if err != nil {
		w.log.Warn("appointments.worker: leader lock attempt failed", zap.Error(err))
		return
	}
	if !acquired {
		w.log.Debug("appointments.worker: another instance holds the leader lock")
		return
	}
	defer func() {
		err := w.locker.Unlock(context.WithoutCancel(ctx), constvars.RedisKeyExpiryWorkerLeader, token)
		if err != nil {
			w.log.Warn("appointments.worker: failed to release leader lock", zap.Error(err))
		}
	}()

	refreshCtx, cancelRefresh := context.WithCancel(ctx)
	defer cancelRefresh()
	go w.refreshLeaderLock(refreshCtx, token, ttl)

	expired, err := w.usecase.SweepExpired(ctx, w.now())
	if err != nil {
		w.log.Error("appointments.worker: sweep failed",
			zap.Int(constvars.LoggingCountKey, expired),
			zap.Error(err),
		)
		return
	}
	if expired > 0 {
		w.log.Info("appointments.worker: expired overdue appointments", zap.Int(constvars.LoggingCountKey, expired))
	}
}

func (w *ExpiryWorker) refreshLeaderLock(ctx context.Context, token string, ttl time.Duration) {
	tick := time.NewTicker(ttl / 2)
	defer tick.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-w.stop:
			return
		case <-tick.C:
			err := w.locker.Refresh(ctx, constvars.RedisKeyExpiryWorkerLeader, token, ttl)
			if err != nil {
				w.log.Warn("appointments.worker: failed to refresh leader lock", zap.Error(err))
			}
		}
	}
}
