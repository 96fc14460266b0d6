package referencepurgeworker

import (
	"context"
	"runtime/debug"
	"time"

	log "github.com/sirupsen/logrus"
	"refdesk-backend/db"
	referencestore "refdesk-backend/lib/reference/store"
	settingshandler "refdesk-backend/lib/settings"
)

// Hard-deletes archived references once the purge retention window is over.
func StartWorker(ctx context.Context) {
	i := &impl{
		store: referencestore.NewInstance(db.DB),
	}
	go i.run(ctx)
}

const (
	handlePeriod = 24 * time.Hour
)

type impl struct {
	store referencestore.Provider
}

func (i impl) getLogger() *log.Entry {
	logger := log.
		WithField("worker_name", "ReferencePurgeWorker")
	return logger
}

func (i impl) run(ctx context.Context) {
	defer func() {
		if r := recover(); r != nil {
			i.getLogger().
				WithField("panic_stack", string(debug.Stack())).
				Errorf("panic: (%v)", r)
		}
	}()
	period := 30 * time.Second
	logger := i.getLogger()
	for {
		select {
		case <-ctx.Done():
			logger.Info("worker stopped")
			return
		case <-time.After(period):
			logger.Info("worker run started")
			i.handle()
			logger.Info("worker run finished")
		}
		period = handlePeriod
	}
}

func (i impl) handle() {
	logger := i.getLogger()
	snapshot, err := settingshandler.Instance.Snapshot()
	if err != nil {
		logger.WithError(err).Error("failed to load system settings")
		return
	}
	cutoff := time.Now().AddDate(0, 0, -snapshot.PurgeAfterDays)
	purged, err := i.store.PurgeArchivedBefore(cutoff)
	if err != nil {
		logger.WithError(err).Error("failed to purge archived references")
		return
	}
	if purged > 0 {
		logger.WithField("purged", purged).Info("references purged")
	}
}
