package command

import (
	"context"
	"fmt"
)

func (d *Dispatcher) handleQuota(ctx context.Context, chatID int64, userID string) error {
	l := d.gate.Ledger()

	usage := l.GetUsage(ctx, userID)
	limit := l.GetDailyLimit(ctx, userID)

	return d.bot.SendMessage(ctx, chatID,
		fmt.Sprintf("📊 You've used *%d/%d* images today.", usage.Count, limit))
}

// shows usage for an arbitrary user id; open to everyone
func (d *Dispatcher) handleCheckQuota(ctx context.Context, chatID int64, args []string) error {
	if len(args) != 1 {
		return d.bot.SendMessage(ctx, chatID, "Usage: /checkquota `<user_id>`")
	}

	target := args[0]
	l := d.gate.Ledger()

	usage := l.GetUsage(ctx, target)
	limit := l.GetDailyLimit(ctx, target)

	return d.bot.SendMessage(ctx, chatID,
		fmt.Sprintf("📊 User `%s`: *%d/%d* images today.", target, usage.Count, limit))
}
