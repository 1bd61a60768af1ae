package application

import (
	"homework-watchdog/models/constants"
	"homework-watchdog/models/entities"
	historyRepo "homework-watchdog/repositories/history"
	"homework-watchdog/services/health"
	"homework-watchdog/services/practicum"
	"homework-watchdog/services/recorder"
	"homework-watchdog/services/telegram"
	"homework-watchdog/services/watcher"
	databases "homework-watchdog/utils/databases"

	"github.com/go-co-op/gocron/v2"
	"github.com/rs/zerolog/log"
	"github.com/spf13/viper"
)

func New() (*Impl, error) {
	// A missing credential is the one unrecoverable condition; refuse to
	// start before touching the network or the database.
	if errTokens := watcher.CheckTokens(); errTokens != nil {
		return nil, errTokens
	}

	db := databases.New()
	if errDB := db.Run(); errDB != nil {
		return nil, errDB
	}

	errMigration := db.GetDB().AutoMigrate(&entities.StatusEvent{})
	if errMigration != nil {
		return nil, errMigration
	}

	scheduler, errScheduler := gocron.NewScheduler()
	if errScheduler != nil {
		return nil, errScheduler
	}

	// Repositories
	histRepo := historyRepo.New(db)

	telegramService, errTg := telegram.New(viper.GetString(constants.TelegramToken), viper.GetInt64(constants.TelegramChatID), histRepo)
	if errTg != nil {
		return nil, errTg
	}

	practicumClient := practicum.New(viper.GetString(constants.PracticumToken))

	watcherService, errWatcher := watcher.New(scheduler, practicumClient, telegramService)
	if errWatcher != nil {
		return nil, errWatcher
	}

	healthService, errHealth := health.New(scheduler)
	if errHealth != nil {
		return nil, errHealth
	}

	watcherService.RegisterObserver(telegramService)
	watcherService.RegisterObserver(recorder.New(histRepo))

	return &Impl{
		scheduler:       scheduler,
		watcherService:  watcherService,
		telegramService: telegramService,
		healthService:   healthService,
		db:              db,
	}, nil
}

func (app *Impl) Run() {
	app.scheduler.Start()
	go app.telegramService.ListenAndDispatch()
	for _, job := range app.scheduler.Jobs() {
		scheduledTime, err := job.NextRun()
		if err == nil {
			log.Info().Msgf("%v scheduled at %v", job.Name(), scheduledTime)
		}
	}
}

func (app *Impl) Shutdown() {
	if err := app.scheduler.Shutdown(); err != nil {
		log.Error().Err(err).Msg("Cannot shutdown scheduler, continuing...")
	}
	app.db.Shutdown()
	log.Info().Msgf("Application is no longer running")
}
