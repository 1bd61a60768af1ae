package recorder

import (
	"homework-watchdog/models/constants"
	"homework-watchdog/models/entities"
	"homework-watchdog/pkg/observer"
	historyRepo "homework-watchdog/repositories/history"

	"github.com/rs/zerolog/log"
)

func New(historyRepo historyRepo.Repository) *Impl {
	return &Impl{historyRepo: historyRepo}
}

// OnNotify persists every status change so /status can answer from history.
func (service *Impl) OnNotify(e observer.Event) {
	if e.E != observer.StatusChangeEvent {
		return
	}

	event := entities.StatusEvent{Homework: e.Homework, Status: e.Status, Verdict: e.Verdict, SeenAt: e.SeenAt}
	if err := service.historyRepo.Save(event); err != nil {
		log.Error().Err(err).Str(constants.LogHomeworkName, e.Homework).Msg("error on saved")
	}
}
