package notify

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/honeycarbs/jobsync/internal/batch"
)

type fakeSender struct {
	sent []tgbotapi.Chattable
	err  error
}

func (f *fakeSender) Send(c tgbotapi.Chattable) (tgbotapi.Message, error) {
	f.sent = append(f.sent, c)
	return tgbotapi.Message{}, f.err
}

func report() batch.Report {
	start := time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC)
	return batch.Report{
		RunID:      "run-1",
		StartedAt:  start,
		FinishedAt: start.Add(90 * time.Second),
		Outcomes: []batch.Outcome{
			{Row: 2, State: batch.StateWritten},
			{Row: 3, State: batch.StateSkipped, Kind: "transport", Err: "navigate: net::ERR_TIMED_OUT"},
		},
	}
}

func TestFormatBatch(t *testing.T) {
	got := FormatBatch(report())

	assert.Equal(t, "*Job scrape finished*\n"+
		"Run: `run-1`\n"+
		"Written: 1\n"+
		"Skipped: 1\n"+
		"Took: 1m30s\n"+
		"\n*Skipped rows*\n"+
		"row 3 \\(transport\\): navigate: net::ERR\\_TIMED\\_OUT", got)
}

func TestFormatBatch_CapsSkippedList(t *testing.T) {
	r := batch.Report{RunID: "r"}
	for i := 0; i < maxListed+3; i++ {
		r.Outcomes = append(r.Outcomes, batch.Outcome{Row: i + 2, State: batch.StateSkipped, Kind: "content", Err: fmt.Sprint("e", i)})
	}

	got := FormatBatch(r)
	assert.Contains(t, got, "…and 3 more")
	assert.NotContains(t, got, fmt.Sprintf("row %d ", maxListed+2))
}

func TestNotifyBatch(t *testing.T) {
	s := &fakeSender{}
	tg := &Telegram{api: s, chatID: 77}

	require.NoError(t, tg.NotifyBatch(context.Background(), report()))
	require.Len(t, s.sent, 1)

	msg, ok := s.sent[0].(tgbotapi.MessageConfig)
	require.True(t, ok)
	assert.Equal(t, int64(77), msg.ChatID)
	assert.Equal(t, tgbotapi.ModeMarkdownV2, msg.ParseMode)

	s.err = errors.New("chat not found")
	assert.EqualError(t, tg.NotifyBatch(context.Background(), report()), "telegram: send: chat not found")
}
