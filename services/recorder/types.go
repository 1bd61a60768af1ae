package recorder

import (
	"homework-watchdog/pkg/observer"
	historyRepo "homework-watchdog/repositories/history"
)

type Service interface {
	observer.Observer
}

type Impl struct {
	historyRepo historyRepo.Repository
}
