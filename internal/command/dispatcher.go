// Package command routes inbound Telegram commands to their handlers. The
// dispatcher owns privilege checks for admin commands; usage enforcement
// itself lives in the ledger's gatekeeper.
package command

import (
	"context"
	"strconv"

	"codeberg.org/surferbot/server/internal/config"
	"codeberg.org/surferbot/server/internal/imagegen"
	"codeberg.org/surferbot/server/internal/ledger"
	"codeberg.org/surferbot/server/internal/logger"
	"codeberg.org/surferbot/server/internal/metrics"
	"codeberg.org/surferbot/server/internal/telegram"
)

// Sender delivers replies back to the chat.
type Sender interface {
	SendMessage(ctx context.Context, chatID int64, text string) error
	SendPhoto(ctx context.Context, chatID int64, photo []byte, caption string) error
}

// Generator produces image bytes for a prompt.
type Generator interface {
	Generate(ctx context.Context, req imagegen.Request) ([]byte, error)
}

type Dispatcher struct {
	config *config.Config
	gate   *ledger.Gatekeeper
	images Generator
	bot    Sender
}

// creates a dispatcher wired to the gatekeeper, image generator, and bot
func NewDispatcher(cfg *config.Config, gate *ledger.Gatekeeper, images Generator, bot Sender) *Dispatcher {
	return &Dispatcher{
		config: cfg,
		gate:   gate,
		images: images,
		bot:    bot,
	}
}

// Dispatch handles one webhook update. Non-command messages are ignored.
// Errors from one user's handling never affect another update; everything is
// handled and logged here.
func (d *Dispatcher) Dispatch(ctx context.Context, update *telegram.Update) {
	msg := update.Message
	if msg == nil || msg.From == nil || msg.Chat == nil {
		return
	}

	name, args, ok := parseCommand(msg.Text)
	if !ok {
		return
	}

	userID := strconv.FormatInt(msg.From.ID, 10)
	chatID := msg.Chat.ID

	metrics.Commands.WithLabelValues(name).Inc()

	log := logger.FromContext(ctx).With("command", name, "user_id", userID)
	log.Debug("dispatching command")

	var err error

	switch name {
	case "help", "start":
		err = d.handleHelp(ctx, chatID)
	case "image":
		err = d.handleImage(ctx, chatID, userID, args)
	case "quota":
		err = d.handleQuota(ctx, chatID, userID)
	case "checkquota":
		err = d.handleCheckQuota(ctx, chatID, args)
	case "resetquota":
		err = d.handleResetQuota(ctx, chatID, userID, args)
	case "setlimit":
		err = d.handleSetLimit(ctx, chatID, userID, args)
	case "resetmonth":
		err = d.handleResetMonth(ctx, chatID, userID)
	case "stats":
		err = d.handleStats(ctx, chatID, userID)
	default:
		err = d.bot.SendMessage(ctx, chatID, "Unknown command. Try /help.")
	}

	if err != nil {
		log.Error("command handling failed", "error", err)
	}
}

const helpText = "✨ *Surfer Bot — Help* ✨\n\n" +
	"• /image `<prompt>` [--size 512|768|1024 --seed <n> --no <neg>] — generate an image\n" +
	"• /quota — your daily usage\n" +
	"• /checkquota `<user_id>` — usage for any user\n" +
	"• /resetquota `<user_id>` — admin only\n" +
	"• /setlimit `<user_id> <n>` — admin only\n" +
	"• /resetmonth — admin only\n" +
	"• /stats — admin only"

func (d *Dispatcher) handleHelp(ctx context.Context, chatID int64) error {
	return d.bot.SendMessage(ctx, chatID, helpText)
}

// returns the command menu registered with Telegram at startup
func Menu() []telegram.BotCommand {
	return []telegram.BotCommand{
		{Command: "help", Description: "Show help"},
		{Command: "image", Description: "Generate AI image"},
		{Command: "quota", Description: "Show usage"},
	}
}
