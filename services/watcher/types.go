package watcher

import (
	"errors"

	"homework-watchdog/pkg/observer"
	"homework-watchdog/services/practicum"
)

const failureTemplate = "Сбой в работе программы: %s"

// ErrMissingCredential and ErrInvalidCredential are fatal; the cycle
// never reaches the network after either is raised.
var (
	ErrMissingCredential = errors.New("missing required environment variable")
	ErrInvalidCredential = errors.New("invalid environment variable")
)

// Messenger delivers one text message to the configured chat.
// Delivery is best effort, the watcher never retries a send.
type Messenger interface {
	SendMessage(text string) error
}

type Service interface {
	RunCycle()
	RegisterObserver(observer.Observer)
}

type Impl struct {
	client    practicum.Client
	messenger Messenger
	observers map[observer.Observer]struct{}

	// cursor is the from_date watermark; lives only in memory and is
	// advanced after every successful cycle.
	cursor int64
	// lastError suppresses repeated notifications for the same failure.
	lastError string

	halt func(reason string)
}
