package command

import (
	"context"
	"fmt"
	"strconv"
)

// Admin commands are unconditional overwrites on the ledger; no audit trail
// beyond the confirmation reply. Privilege is membership in the configured
// admin-id set.

// replies and reports false when the user is not an admin
func (d *Dispatcher) requireAdmin(ctx context.Context, chatID int64, userID string) bool {
	if d.config.IsAdmin(userID) {
		return true
	}

	// reply errors are not worth separate handling on the rejection path
	_ = d.bot.SendMessage(ctx, chatID, "⛔ Admin only.")

	return false
}

func (d *Dispatcher) handleResetQuota(ctx context.Context, chatID int64, userID string, args []string) error {
	if !d.requireAdmin(ctx, chatID, userID) {
		return nil
	}

	if len(args) != 1 {
		return d.bot.SendMessage(ctx, chatID, "Usage: /resetquota `<user_id>`")
	}

	target := args[0]

	if err := d.gate.Ledger().ResetUserDaily(ctx, target); err != nil {
		return d.bot.SendMessage(ctx, chatID, fmt.Sprintf("⚠️ Failed to reset quota for `%s`.", target))
	}

	return d.bot.SendMessage(ctx, chatID, fmt.Sprintf("✅ Daily quota reset for `%s`.", target))
}

func (d *Dispatcher) handleSetLimit(ctx context.Context, chatID int64, userID string, args []string) error {
	if !d.requireAdmin(ctx, chatID, userID) {
		return nil
	}

	if len(args) != 2 {
		return d.bot.SendMessage(ctx, chatID, "Usage: /setlimit `<user_id> <n>`")
	}

	target := args[0]

	limit, err := strconv.Atoi(args[1])
	if err != nil || limit <= 0 {
		return d.bot.SendMessage(ctx, chatID, "Limit must be a positive integer.")
	}

	if err := d.gate.Ledger().SetDailyLimit(ctx, target, limit); err != nil {
		return d.bot.SendMessage(ctx, chatID, fmt.Sprintf("⚠️ Failed to set limit for `%s`.", target))
	}

	return d.bot.SendMessage(ctx, chatID, fmt.Sprintf("✅ Daily limit for `%s` set to %d.", target, limit))
}

func (d *Dispatcher) handleResetMonth(ctx context.Context, chatID int64, userID string) error {
	if !d.requireAdmin(ctx, chatID, userID) {
		return nil
	}

	if err := d.gate.Ledger().ResetMonthlyTotal(ctx); err != nil {
		return d.bot.SendMessage(ctx, chatID, "⚠️ Failed to reset the monthly total.")
	}

	return d.bot.SendMessage(ctx, chatID, "✅ Monthly total reset.")
}

func (d *Dispatcher) handleStats(ctx context.Context, chatID int64, userID string) error {
	if !d.requireAdmin(ctx, chatID, userID) {
		return nil
	}

	total := d.gate.Ledger().GetMonthlyTotal(ctx)

	return d.bot.SendMessage(ctx, chatID,
		fmt.Sprintf("📈 Monthly images: *%d/%d*.", total, d.config.MonthlyGlobalCap))
}
