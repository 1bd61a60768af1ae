package telegram

import (
	"errors"

	historyRepo "homework-watchdog/repositories/history"

	"github.com/PaulSonOfLars/gotgbot/v2"
	"github.com/PaulSonOfLars/gotgbot/v2/ext"
	"github.com/patrickmn/go-cache"
)

type MessageType int

const (
	MessageTypeUnknown MessageType = -1
	MessageTypeWelcome MessageType = 1
	MessageTypeHelp    MessageType = 2
)

const lastReportKey = "last_report"

var (
	ErrTokenIsMissing         = errors.New("telegram token is missing")
	ErrBotNotInitialized      = errors.New("telegram bot is not ready yet")
	ErrFailedToStartListening = errors.New("telegram bot can't start to listen command")
)

type Service interface {
	ListenAndDispatch() error
	SendMessage(text string) error
}

type Impl struct {
	bot         *gotgbot.Bot
	updater     *ext.Updater
	chatID      int64
	historyRepo historyRepo.Repository
	cache       *cache.Cache
}
