package initializers

import (
	"context"
	"home-task-tracker/config"
	"home-task-tracker/fiberlog"
	accounthandler "home-task-tracker/lib/account"
	tokencleanupworker "home-task-tracker/lib/account/token-cleanup-worker"
	completionhandler "home-task-tracker/lib/completion"
	paymenthandler "home-task-tracker/lib/payment"
	taskhandler "home-task-tracker/lib/task"
	weeklyresethandler "home-task-tracker/lib/weekly-reset"
)

var LoggerConfig *fiberlog.Config

func InitAllServices(ctx context.Context) {
	LoggerConfig = InitLogger()
	config.InitConfig()
	InitDBConnection()
	InitSmtp()
	accounthandler.NewHandler()
	taskhandler.NewHandler()
	completionhandler.NewHandler()
	paymenthandler.NewHandler()
	weeklyresethandler.NewHandler()
	go initWorkers(ctx)
}

func initWorkers(ctx context.Context) {
	tokencleanupworker.StartWorker(ctx)
}
