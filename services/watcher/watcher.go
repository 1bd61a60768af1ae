package watcher

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"homework-watchdog/models/constants"
	"homework-watchdog/pkg/observer"
	"homework-watchdog/services/practicum"

	"github.com/go-co-op/gocron/v2"
	"github.com/rs/zerolog/log"
	"github.com/spf13/viper"
)

func New(scheduler gocron.Scheduler, client practicum.Client, messenger Messenger) (*Impl, error) {
	service := &Impl{
		client:    client,
		messenger: messenger,
		observers: map[observer.Observer]struct{}{},
		cursor:    time.Now().Unix(),
		halt: func(reason string) {
			log.Fatal().Msg(reason)
		},
	}

	_, errJob := scheduler.NewJob(
		gocron.DurationJob(viper.GetDuration(constants.PollInterval)),
		gocron.NewTask(func() { service.RunCycle() }),
		gocron.WithName("Poll homework statuses"),
		gocron.WithSingletonMode(gocron.LimitModeReschedule),
	)
	if errJob != nil {
		return nil, errJob
	}

	return service, nil
}

func (service *Impl) RegisterObserver(o observer.Observer) {
	service.observers[o] = struct{}{}
}

func (service *Impl) notify(e observer.Event) {
	for o := range service.observers {
		o.OnNotify(e)
	}
}

// CheckTokens verifies that every required credential is configured and
// that the chat id is a usable integer.
func CheckTokens() error {
	required := []string{constants.PracticumToken, constants.TelegramToken, constants.TelegramChatID}
	for _, key := range required {
		if viper.GetString(key) == "" {
			return fmt.Errorf("%w: %s", ErrMissingCredential, key)
		}
	}

	if _, err := strconv.ParseInt(viper.GetString(constants.TelegramChatID), 10, 64); err != nil {
		return fmt.Errorf("%w: %s must be an integer", ErrInvalidCredential, constants.TelegramChatID)
	}

	return nil
}

// RunCycle executes one poll: validate credentials, fetch, inspect the most
// recent homework, notify, advance the cursor. Every failure except the
// credential check is recoverable and retried on the next tick.
func (service *Impl) RunCycle() {
	if err := CheckTokens(); err != nil {
		service.halt(err.Error())
		return
	}

	page, err := service.client.HomeworkStatuses(context.Background(), service.cursor)
	if err != nil {
		service.reportFailure(err)
		return
	}

	if len(page.Homeworks) == 0 {
		log.Debug().Int64(constants.LogCursor, service.cursor).Msg("No new status")
	} else {
		current := page.Homeworks[0]
		message, errStatus := practicum.StatusMessage(current)
		if errStatus != nil {
			service.reportFailure(errStatus)
			return
		}

		// StatusMessage succeeded, both keys are present
		log.Info().
			Str(constants.LogHomeworkName, *current.Name).
			Str(constants.LogStatus, *current.Status).
			Msg("Homework status changed")

		if errSend := service.messenger.SendMessage(message); errSend != nil {
			log.Error().Err(errSend).Msg("Failed to deliver status notification")
		}

		verdict, _ := practicum.Verdict(*current.Status)
		service.notify(observer.NewStatusChangeEvent(*current.Name, *current.Status, verdict, page.CurrentDate))
	}

	service.cursor = page.CurrentDate
	service.lastError = ""
}

// reportFailure logs every failure but notifies the chat only when the
// message differs from the previously reported one.
func (service *Impl) reportFailure(err error) {
	message := fmt.Sprintf(failureTemplate, err)
	log.Error().Msg(message)

	if message == service.lastError {
		return
	}

	if errSend := service.messenger.SendMessage(message); errSend != nil {
		log.Error().Err(errSend).Msg("Failed to deliver failure notification")
	}
	service.lastError = message
}
