// Package telegram sends dashboard summaries via the Telegram Bot API.
// It formats the pie and scatter figures of a selection into a MarkdownV2
// message and delivers it with retry logic for reliability.
package telegram

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"github.com/rewired-gh/launchdash/internal/models"
)

// sender is the subset of tgbotapi.BotAPI the client needs
type sender interface {
	Send(c tgbotapi.Chattable) (tgbotapi.Message, error)
}

// Client handles Telegram notifications
type Client struct {
	bot            sender
	chatID         int64
	maxRetries     int
	retryDelayBase time.Duration
}

// NewClient creates a new Telegram client
func NewClient(botToken, chatID string, maxRetries int, retryDelayBase time.Duration) (*Client, error) {
	bot, err := tgbotapi.NewBotAPI(botToken)
	if err != nil {
		return nil, fmt.Errorf("failed to create Telegram bot: %w", err)
	}

	return newClient(bot, chatID, maxRetries, retryDelayBase)
}

func newClient(bot sender, chatID string, maxRetries int, retryDelayBase time.Duration) (*Client, error) {
	chatIDInt, err := strconv.ParseInt(chatID, 10, 64)
	if err != nil {
		return nil, fmt.Errorf("invalid chat ID: %w", err)
	}

	if maxRetries <= 0 {
		maxRetries = 3
	}
	if retryDelayBase < 0 {
		retryDelayBase = time.Second
	}

	return &Client{
		bot:            bot,
		chatID:         chatIDInt,
		maxRetries:     maxRetries,
		retryDelayBase: retryDelayBase,
	}, nil
}

// SendReport sends a summary of the given figures. pie may be nil when the
// selected site is not in the catalog.
func (c *Client) SendReport(pie *models.PieFigure, scatter *models.ScatterFigure) error {
	msg := tgbotapi.NewMessage(c.chatID, formatReport(pie, scatter))
	msg.ParseMode = tgbotapi.ModeMarkdownV2

	// Send with retry
	var lastErr error

	for i := 0; i < c.maxRetries; i++ {
		_, err := c.bot.Send(msg)
		if err == nil {
			return nil
		}
		lastErr = err
		if i < c.maxRetries-1 {
			time.Sleep(c.retryDelayBase * time.Duration(i+1))
		}
	}

	return fmt.Errorf("failed to send message after %d retries: %w", c.maxRetries, lastErr)
}

// formatReport formats the figures into a Telegram message
func formatReport(pie *models.PieFigure, scatter *models.ScatterFigure) string {
	var b strings.Builder
	b.WriteString("🚀 *Launch Records Summary*\n\n")

	if pie == nil {
		b.WriteString("No pie chart for this selection\\.\n\n")
	} else {
		b.WriteString("*" + escapeMarkdownV2(pie.Title) + "*\n")
		total := pie.Total()
		for _, s := range pie.Slices {
			pct := 0.0
			if total > 0 {
				pct = 100 * float64(s.Value) / float64(total)
			}
			b.WriteString(fmt.Sprintf("• %s: %d \\(%s\\)\n",
				escapeMarkdownV2(sliceLabel(s)), s.Value, escapeMarkdownV2(fmt.Sprintf("%.1f%%", pct))))
		}
		b.WriteString("\n")
	}

	if scatter != nil {
		successes := 0
		for _, p := range scatter.Points {
			if p.Y == models.OutcomeSuccess {
				successes++
			}
		}
		b.WriteString("*" + escapeMarkdownV2(scatter.Title) + "*\n")
		b.WriteString(escapeMarkdownV2(fmt.Sprintf("Payload %.0f–%.0f kg: %d launches, %d successful",
			scatter.Range.Lo, scatter.Range.Hi, len(scatter.Points), successes)))
		b.WriteString("\n")
	}

	return b.String()
}

// sliceLabel names per-site slices by outcome rather than by class digit
func sliceLabel(s models.Slice) string {
	if s.OutcomeClass == nil {
		return s.Label
	}
	if *s.OutcomeClass == models.OutcomeSuccess {
		return "Success"
	}
	return "Failure"
}

// escapeMarkdownV2 escapes special characters for Telegram MarkdownV2
func escapeMarkdownV2(text string) string {
	// Characters that need escaping in MarkdownV2:
	// _ * [ ] ( ) ~ ` > # + - = | { } . !
	var b strings.Builder
	for _, char := range text {
		switch char {
		case '_', '*', '[', ']', '(', ')', '~', '`', '>', '#', '+', '-', '=', '|', '{', '}', '.', '!':
			b.WriteString("\\" + string(char))
		default:
			b.WriteRune(char)
		}
	}
	return b.String()
}
