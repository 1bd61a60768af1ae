package application

import (
	"homework-watchdog/services/health"
	"homework-watchdog/services/telegram"
	"homework-watchdog/services/watcher"
	databases "homework-watchdog/utils/databases"

	"github.com/go-co-op/gocron/v2"
)

type Application interface {
	Run()
	Shutdown()
}

type Impl struct {
	scheduler       gocron.Scheduler
	watcherService  watcher.Service
	telegramService telegram.Service
	healthService   health.Service
	db              databases.SqlConnection
}
