package referenceoverdueworker

import (
	"context"
	"runtime/debug"
	"time"

	log "github.com/sirupsen/logrus"
	"refdesk-backend/db"
	notificationhandler "refdesk-backend/lib/notification"
	referencestore "refdesk-backend/lib/reference/store"
	"refdesk-backend/models"
)

// Reminds holders about open references past their due date.
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
		WithField("worker_name", "ReferenceOverdueWorker")
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
	period := time.Minute
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
	recList, err := i.store.ListOverdue(time.Now())
	if err != nil {
		logger.WithError(err).Error("failed to list overdue references")
		return
	}
	for _, rec := range recList {
		notificationhandler.Instance.Send(rec.HeldBy, models.NotifyReferenceOverdue,
			"Reference overdue",
			"Reference "+rec.RefNumber+" is past its due date.", rec.ID)
	}
	if len(recList) > 0 {
		logger.WithField("overdue", len(recList)).Info("overdue reminders sent")
	}
}
