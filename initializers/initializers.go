package initializers

import (
	"context"
	"refdesk-backend/config"
	"refdesk-backend/fiberlog"
	audithandler "refdesk-backend/lib/audit"
	authhandler "refdesk-backend/lib/auth"
	exporthandler "refdesk-backend/lib/export"
	xlsexport "refdesk-backend/lib/export/xls"
	templatehandler "refdesk-backend/lib/form-template"
	notificationhandler "refdesk-backend/lib/notification"
	"refdesk-backend/lib/rbac"
	referencehandler "refdesk-backend/lib/reference"
	archiveworker "refdesk-backend/lib/reference/archive-worker"
	overdueworker "refdesk-backend/lib/reference/overdue-worker"
	purgeworker "refdesk-backend/lib/reference/purge-worker"
	settingshandler "refdesk-backend/lib/settings"
	usershandler "refdesk-backend/lib/users"
	workflowhandler "refdesk-backend/lib/workflow"
	"time"
)

var LoggerConfig *fiberlog.Config

func InitAllServices(ctx context.Context) {
	LoggerConfig = InitLogger()
	config.InitConfig()
	InitDBConnection()
	InitS3(ctx)
	InitSmtp()
	settingshandler.NewHandler()
	usershandler.NewHandler()
	authhandler.NewHandler()
	audithandler.NewHandler()
	notificationhandler.NewHandler()
	templatehandler.NewHandler()
	workflowhandler.NewHandler()
	referencehandler.NewHandler()
	xlsexport.NewHandler()
	exporthandler.NewHandler()
	rbac.NewHandler()
	go initWorkers(ctx)
}

// workers start with a gap to spread the load
func initWorkers(ctx context.Context) {
	// move closed references to the archive
	archiveworker.StartWorker(ctx)

	if makeTimeGap(ctx) {
		// purge archived references past the retention window
		purgeworker.StartWorker(ctx)
	}
	if makeTimeGap(ctx) {
		// remind holders about overdue references
		overdueworker.StartWorker(ctx)
	}
}

func makeTimeGap(ctx context.Context) bool {
	select {
	case <-ctx.Done():
		return false
	case <-time.After(time.Second * 10):
		return true
	}
}
