// Package notify sends batch run summaries to Telegram.
package notify

import (
	"context"
	"fmt"
	"strings"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"github.com/honeycarbs/jobsync/internal/batch"
)

// maxListed caps how many skipped rows are spelled out in one message.
const maxListed = 10

type sender interface {
	Send(c tgbotapi.Chattable) (tgbotapi.Message, error)
}

type Telegram struct {
	api    sender
	chatID int64
}

func NewTelegram(token string, chatID int64) (*Telegram, error) {
	api, err := tgbotapi.NewBotAPI(token)
	if err != nil {
		return nil, fmt.Errorf("telegram: %w", err)
	}
	return &Telegram{api: api, chatID: chatID}, nil
}

// NotifyBatch posts a run summary.
func (t *Telegram) NotifyBatch(ctx context.Context, r batch.Report) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	msg := tgbotapi.NewMessage(t.chatID, FormatBatch(r))
	msg.ParseMode = tgbotapi.ModeMarkdownV2
	msg.DisableWebPagePreview = true

	if _, err := t.api.Send(msg); err != nil {
		return fmt.Errorf("telegram: send: %w", err)
	}
	return nil
}

// FormatBatch renders a report as MarkdownV2.
func FormatBatch(r batch.Report) string {
	var b strings.Builder

	fmt.Fprintf(&b, "*Job scrape finished*\n")
	fmt.Fprintf(&b, "Run: `%s`\n", r.RunID)
	fmt.Fprintf(&b, "Written: %d\n", r.Written())
	fmt.Fprintf(&b, "Skipped: %d\n", r.Skipped())
	fmt.Fprintf(&b, "Took: %s\n", escape(r.FinishedAt.Sub(r.StartedAt).Round(time.Second).String()))

	listed := 0
	for _, o := range r.Outcomes {
		if o.State != batch.StateSkipped {
			continue
		}
		if listed == maxListed {
			fmt.Fprintf(&b, "…and %d more\n", r.Skipped()-maxListed)
			break
		}
		if listed == 0 {
			b.WriteString("\n*Skipped rows*\n")
		}
		fmt.Fprintf(&b, "row %d \\(%s\\): %s\n", o.Row, escape(o.Kind), escape(o.Err))
		listed++
	}

	return strings.TrimRight(b.String(), "\n")
}

var markdownEscaper = strings.NewReplacer(
	"_", "\\_", "*", "\\*", "[", "\\[", "]", "\\]", "(", "\\(",
	")", "\\)", "~", "\\~", "`", "\\`", ">", "\\>", "#", "\\#",
	"+", "\\+", "-", "\\-", "=", "\\=", "|", "\\|", "{", "\\{",
	"}", "\\}", ".", "\\.", "!", "\\!", "\\", "\\\\",
)

func escape(s string) string {
	return markdownEscaper.Replace(s)
}
