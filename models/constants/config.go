package constants

import (
	"time"

	"github.com/rs/zerolog"
)

const (
	ConfigFileName = ".env"

	//nolint:gosec // False positive.
	// OAuth token for the Practicum homework API.
	PracticumToken = "PRACTICUM_TOKEN"

	//nolint:gosec // False positive.
	// Telegram bot token.
	TelegramToken = "TELEGRAM_TOKEN"

	// Chat receiving every notification the watchdog produces.
	TelegramChatID = "TELEGRAM_CHAT_ID"

	// Interval between two polls of the homework API. Duration type.
	PollInterval = "POLL_INTERVAL"

	// SQLITE_URL URL.
	SqliteURL = "SQLITE_URL"

	// Zerolog values from [trace, debug, info, warn, error, fatal, panic].
	LogLevel = "LOG_LEVEL"

	// Cron tab to health.
	HealthCronTab = "HEALTH_CRON_TAB"

	defaultPracticumToken = ""
	defaultTelegramToken  = ""
	defaultTelegramChatID = ""
	defaultPollInterval   = 10 * time.Minute
	defaultSqliteURL      = "homework-watchdog.db"
	defaultHealthCrontab  = "* * * * *"
	defaultLogLevel       = zerolog.InfoLevel
)

func GetDefaultConfigValues() map[string]any {
	return map[string]any{
		PracticumToken: defaultPracticumToken,
		TelegramToken:  defaultTelegramToken,
		TelegramChatID: defaultTelegramChatID,
		PollInterval:   defaultPollInterval,
		SqliteURL:      defaultSqliteURL,
		LogLevel:       defaultLogLevel.String(),
		HealthCronTab:  defaultHealthCrontab,
	}
}
