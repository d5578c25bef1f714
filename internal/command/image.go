package command

import (
	"context"
	"fmt"

	"codeberg.org/surferbot/server/internal/imagegen"
	"codeberg.org/surferbot/server/internal/ledger"
	"codeberg.org/surferbot/server/internal/logger"
	"codeberg.org/surferbot/server/internal/metrics"
)

// handleImage runs the full admission pipeline for one generation request:
// cooldown, quota, generation, and only then the usage increment. A failed
// generation consumes no quota.
func (d *Dispatcher) handleImage(ctx context.Context, chatID int64, userID string, args []string) error {
	parsed := parseImageArgs(args)
	if parsed.Prompt == "" {
		return d.bot.SendMessage(ctx, chatID,
			"Usage: /image `<prompt>` [--size 512|768|1024 --seed <n> --no <negative>]")
	}

	decision := d.gate.AdmitAndRecord(ctx, userID)
	metrics.Decisions.WithLabelValues(decision.String()).Inc()

	switch decision {
	case ledger.CooldownRejected:
		return d.bot.SendMessage(ctx, chatID,
			fmt.Sprintf("⏳ Slow down! Wait %d seconds between requests.", int(d.config.Cooldown.Seconds())))
	case ledger.DailyQuotaExceeded:
		return d.bot.SendMessage(ctx, chatID,
			"🚫 You've reached your daily image limit. Try again tomorrow.")
	case ledger.MonthlyQuotaExceeded:
		return d.bot.SendMessage(ctx, chatID,
			"🚫 The bot's monthly image budget is used up. Try again next month.")
	}

	img, err := d.images.Generate(ctx, imagegen.Request{
		Prompt:   parsed.Prompt,
		Size:     parsed.Size,
		Seed:     parsed.Seed,
		Negative: parsed.Negative,
	})

	if err != nil {
		metrics.Generations.WithLabelValues("error").Inc()
		logger.FromContext(ctx).Error("image generation failed", "user_id", userID, "error", err)

		// quota untouched: the user got nothing
		return d.bot.SendMessage(ctx, chatID, "⚠️ Image generation failed. Your quota was not charged.")
	}

	metrics.Generations.WithLabelValues("ok").Inc()

	// charge quota only for delivered work
	d.gate.RecordSuccess(ctx, userID)

	return d.bot.SendPhoto(ctx, chatID, img, parsed.Prompt)
}
