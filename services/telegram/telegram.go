package telegram

import (
	"fmt"
	"time"

	"homework-watchdog/models/constants"
	"homework-watchdog/models/entities"
	"homework-watchdog/pkg/observer"
	historyRepo "homework-watchdog/repositories/history"

	"github.com/PaulSonOfLars/gotgbot/v2"
	"github.com/PaulSonOfLars/gotgbot/v2/ext"
	"github.com/PaulSonOfLars/gotgbot/v2/ext/handlers"
	"github.com/dustin/go-humanize"
	"github.com/patrickmn/go-cache"
	"github.com/rs/zerolog/log"
)

func New(token string, chatID int64, historyRepo historyRepo.Repository) (*Impl, error) {
	if token == "" {
		return &Impl{}, ErrTokenIsMissing
	}

	b, err := gotgbot.NewBot(token, nil)
	if err != nil {
		return &Impl{}, ErrBotNotInitialized
	}

	dispatcher := ext.NewDispatcher(&ext.DispatcherOpts{
		Error: func(b *gotgbot.Bot, ctx *ext.Context, err error) ext.DispatcherAction {
			log.Warn().Msg("an error occurred while handling update")
			return ext.DispatcherActionNoop
		},
		MaxRoutines: ext.DefaultMaxRoutines,
	})

	service := Impl{bot: b, chatID: chatID, historyRepo: historyRepo, cache: cache.New(24*time.Hour, 48*time.Hour)}
	dispatcher.AddHandler(handlers.NewCommand("start", service.startCmd))
	dispatcher.AddHandler(handlers.NewCommand("help", service.helpCmd))
	dispatcher.AddHandler(handlers.NewCommand("status", service.statusCmd))
	dispatcher.AddHandler(handlers.NewCommand("ping", service.pingCmd))
	dispatcher.AddHandler(handlers.NewCommand("", service.unknownCmd))

	service.updater = ext.NewUpdater(dispatcher, nil)

	return &service, nil
}

func (service *Impl) ListenAndDispatch() error {
	err := service.updater.StartPolling(service.bot, &ext.PollingOpts{
		DropPendingUpdates: true,
		GetUpdatesOpts: &gotgbot.GetUpdatesOpts{
			Timeout: 9,
			RequestOpts: &gotgbot.RequestOpts{
				Timeout: time.Second * 10,
			},
		},
	})
	if err != nil {
		return ErrFailedToStartListening
	}

	service.updater.Idle()

	return nil
}

// SendMessage delivers a plain text message to the configured chat.
func (service *Impl) SendMessage(text string) error {
	_, err := service.bot.SendMessage(service.chatID, text, nil)
	if err != nil {
		return err
	}

	log.Debug().Int64(constants.LogChatID, service.chatID).Msg("message delivered")
	return nil
}

// OnNotify refreshes the cached report so /status answers instantly.
func (service *Impl) OnNotify(e observer.Event) {
	if e.E != observer.StatusChangeEvent {
		return
	}

	event := entities.StatusEvent{Homework: e.Homework, Status: e.Status, Verdict: e.Verdict, SeenAt: e.SeenAt}
	service.cache.Set(lastReportKey, formatStatusReport([]entities.StatusEvent{event}), cache.NoExpiration)
}

func (service *Impl) allowed(ctx *ext.Context) bool {
	if ctx.EffectiveChat.Id != service.chatID {
		log.Warn().Int64(constants.LogChatID, ctx.EffectiveChat.Id).Msg("forbidden usage")
		return false
	}

	return true
}

func (service *Impl) startCmd(b *gotgbot.Bot, ctx *ext.Context) error {
	log.Info().Str("cmd", "start").Int64(constants.LogChatID, ctx.EffectiveChat.Id).Msg("command received")
	if !service.allowed(ctx) {
		return nil
	}
	service.bot.SendMessage(ctx.EffectiveChat.Id, getMessageFromMessageType(MessageTypeWelcome), &gotgbot.SendMessageOpts{ParseMode: "Markdown"})
	return nil
}

func (service *Impl) helpCmd(b *gotgbot.Bot, ctx *ext.Context) error {
	log.Info().Str("cmd", "help").Int64(constants.LogChatID, ctx.EffectiveChat.Id).Msg("command received")
	if !service.allowed(ctx) {
		return nil
	}
	service.bot.SendMessage(ctx.EffectiveChat.Id, getMessageFromMessageType(MessageTypeHelp), &gotgbot.SendMessageOpts{ParseMode: "Markdown"})
	return nil
}

func (service *Impl) pingCmd(b *gotgbot.Bot, ctx *ext.Context) error {
	log.Info().Str("cmd", "ping").Int64(constants.LogChatID, ctx.EffectiveChat.Id).Msg("command received")
	if !service.allowed(ctx) {
		return nil
	}
	service.bot.SendMessage(ctx.EffectiveChat.Id, "🏓 Pong! The watchdog is alive.", nil)
	return nil
}

func (service *Impl) statusCmd(b *gotgbot.Bot, ctx *ext.Context) error {
	log.Info().Str("cmd", "status").Int64(constants.LogChatID, ctx.EffectiveChat.Id).Msg("command received")
	if !service.allowed(ctx) {
		return nil
	}

	service.bot.SendMessage(ctx.EffectiveChat.Id, service.statusReport(), &gotgbot.SendMessageOpts{ParseMode: "Markdown"})
	return nil
}

// statusReport picks the freshest answer for /status: the cached report,
// then recorded history, then a "nothing yet" fallback.
func (service *Impl) statusReport() string {
	if x, found := service.cache.Get(lastReportKey); found {
		return x.(string)
	}

	events, err := service.historyRepo.FetchLast(5)
	if err != nil || len(events) == 0 {
		return "🤷 No review activity recorded yet. I'll shout as soon as something changes!"
	}

	return formatStatusReport(events)
}

func (service *Impl) unknownCmd(b *gotgbot.Bot, ctx *ext.Context) error {
	log.Info().Str("cmd", "unknown").Int64(constants.LogChatID, ctx.EffectiveChat.Id).Msg("command received")
	if !service.allowed(ctx) {
		return nil
	}
	service.bot.SendMessage(ctx.EffectiveChat.Id, getGenericErrorMessage(), &gotgbot.SendMessageOpts{ParseMode: "Markdown"})
	return nil
}

func formatStatusReport(events []entities.StatusEvent) string {
	msg := "📋 *Review history* 📬\n\n"
	for _, event := range events {
		msg += fmt.Sprintf("🔹 *%s* — `%s` (%s)\n", event.Homework, event.Status, humanize.Time(time.Unix(event.SeenAt, 0)))
		msg += event.Verdict + "\n\n"
	}

	return msg
}

func getGenericErrorMessage() string {
	msg := "😔 *Oops! Something Went Wrong*\n\n"
	msg += "I don't know that command. Here's what you can try:\n"
	msg += "1️⃣ Type `/help` to see everything I understand.\n"
	msg += "2️⃣ Wait a moment and try again.\n\n"
	msg += "Thanks for your patience! 🤖✨"

	return msg
}

func getMessageFromMessageType(messageType MessageType) string {
	switch messageType {
	case MessageTypeHelp:
		msg := "🤖 *Homework Watchdog* – Help Guide 📢\n\n"
		msg += "I poll the Practicum review API and ping you whenever your latest homework changes status 📈.\n\n"
		msg += "📝 *Commands available:*\n"
		msg += "📊 `/status` – Show the most recent review events.\n"
		msg += "🏓 `/ping` – Check that I'm still running.\n"
		msg += "💡 `/help` – Show this help message.\n\n"
		msg += "🚀 No need to ask for updates, they come to you!\n"

		return msg

	case MessageTypeWelcome:
		fallthrough
	default:
		msg := "👋 Hi! I'm *Homework Watchdog* 🤖\n\n"
		msg += "I keep an eye on your homework reviews 📚 and message you the moment a reviewer picks up, approves or rejects your work.\n\n"
		msg += "No need to do anything! Notifications arrive automatically 📨.\n\n"
		msg += "💬 *Need help?* Type `/help` for a list of commands."

		return msg
	}
}
