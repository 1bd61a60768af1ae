package constants

import "github.com/rs/zerolog"

const (
	LogFileName      = "fileName"
	LogHomeworkName  = "homeworkName"
	LogStatus        = "status"
	LogChatID        = "chatID"
	LogCursor        = "cursor"
	LogStatusCode    = "statusCode"
	LogLevelFallback = zerolog.InfoLevel
)
