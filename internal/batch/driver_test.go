package batch

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/honeycarbs/jobsync/internal/domain"
)

type mockSource struct{ mock.Mock }

func (m *mockSource) ReadPending(ctx context.Context) ([]domain.QueueRow, error) {
	args := m.Called(ctx)
	rows, _ := args.Get(0).([]domain.QueueRow)
	return rows, args.Error(1)
}

type mockSink struct{ mock.Mock }

func (m *mockSink) Write(ctx context.Context, row int, p domain.JobPosting) error {
	return m.Called(ctx, row, p).Error(0)
}

type mockScraper struct{ mock.Mock }

func (m *mockScraper) Scrape(ctx context.Context, url string) (domain.JobPosting, error) {
	args := m.Called(ctx, url)
	return args.Get(0).(domain.JobPosting), args.Error(1)
}

type countingPacer struct {
	calls  int
	cancel context.CancelFunc
	after  int
}

func (p *countingPacer) Wait(ctx context.Context) error {
	p.calls++
	if p.cancel != nil && p.calls == p.after {
		p.cancel()
	}
	return ctx.Err()
}

func posting(url string) domain.JobPosting {
	return domain.JobPosting{URL: url, JobTitle: "Engineer", CompanyName: "Acme", Location: "Remote", JobDescription: "desc"}
}

func rows(urls ...string) []domain.QueueRow {
	out := make([]domain.QueueRow, len(urls))
	for i, u := range urls {
		out[i] = domain.QueueRow{RowIndex: i + domain.FirstDataRow, URL: u}
	}
	return out
}

func TestRun_AllRowsWritten(t *testing.T) {
	src := &mockSource{}
	src.On("ReadPending", mock.Anything).Return(rows("u1", "u2"), nil)

	scr := &mockScraper{}
	scr.On("Scrape", mock.Anything, "u1").Return(posting("u1"), nil)
	scr.On("Scrape", mock.Anything, "u2").Return(posting("u2"), nil)

	sink := &mockSink{}
	sink.On("Write", mock.Anything, 2, posting("u1")).Return(nil).Once()
	sink.On("Write", mock.Anything, 3, posting("u2")).Return(nil).Once()

	pacer := &countingPacer{}
	d := NewDriver(src, sink, scr, WithPacer(pacer))

	report, err := d.Run(context.Background())
	require.NoError(t, err)

	assert.NotEmpty(t, report.RunID)
	assert.Equal(t, 2, report.Written())
	assert.Equal(t, 0, report.Skipped())
	assert.Equal(t, 2, pacer.calls)
	sink.AssertExpectations(t)
}

func TestRun_FailureIsolation(t *testing.T) {
	src := &mockSource{}
	src.On("ReadPending", mock.Anything).Return(rows("ok1", "transport", "content", "store", "ok2"), nil)

	scr := &mockScraper{}
	scr.On("Scrape", mock.Anything, "ok1").Return(posting("ok1"), nil)
	scr.On("Scrape", mock.Anything, "transport").
		Return(domain.NewJobPosting("transport"), domain.TransportError("navigate", errors.New("timeout 30000ms exceeded")))
	scr.On("Scrape", mock.Anything, "content").Return(domain.NewJobPosting("content"), nil)
	scr.On("Scrape", mock.Anything, "store").Return(posting("store"), nil)
	scr.On("Scrape", mock.Anything, "ok2").Return(posting("ok2"), nil)

	sink := &mockSink{}
	sink.On("Write", mock.Anything, 2, mock.Anything).Return(nil)
	sink.On("Write", mock.Anything, 5, mock.Anything).Return(domain.StoreError("sheets write", errors.New("quota")))
	sink.On("Write", mock.Anything, 6, mock.Anything).Return(nil)

	pacer := &countingPacer{}
	d := NewDriver(src, sink, scr, WithPacer(pacer))

	report, err := d.Run(context.Background())
	require.NoError(t, err)
	require.Len(t, report.Outcomes, 5)

	want := []struct {
		state State
		kind  string
	}{
		{StateWritten, ""},
		{StateSkipped, "transport"},
		{StateSkipped, "content"},
		{StateSkipped, "store"},
		{StateWritten, ""},
	}
	for i, w := range want {
		assert.Equal(t, w.state, report.Outcomes[i].State, "row %d", report.Outcomes[i].Row)
		assert.Equal(t, w.kind, report.Outcomes[i].Kind, "row %d", report.Outcomes[i].Row)
	}

	assert.Equal(t, 5, pacer.calls, "pacer runs after every row regardless of outcome")
	sink.AssertNotCalled(t, "Write", mock.Anything, 3, mock.Anything)
	sink.AssertNotCalled(t, "Write", mock.Anything, 4, mock.Anything)
}

func TestRun_EmptyQueue(t *testing.T) {
	src := &mockSource{}
	src.On("ReadPending", mock.Anything).Return(nil, nil)

	pacer := &countingPacer{}
	d := NewDriver(src, &mockSink{}, &mockScraper{}, WithPacer(pacer))

	report, err := d.Run(context.Background())
	require.NoError(t, err)
	assert.Empty(t, report.Outcomes)
	assert.Zero(t, pacer.calls)
}

func TestRun_ReadFailure(t *testing.T) {
	src := &mockSource{}
	src.On("ReadPending", mock.Anything).Return(nil, domain.StoreError("sheets read queue", errors.New("401")))

	d := NewDriver(src, &mockSink{}, &mockScraper{}, WithPacer(&countingPacer{}))

	_, err := d.Run(context.Background())
	require.Error(t, err)
	assert.True(t, domain.IsKind(err, domain.KindStore))
}

func TestRun_CancelStopsWithPartialReport(t *testing.T) {
	src := &mockSource{}
	src.On("ReadPending", mock.Anything).Return(rows("u1", "u2", "u3"), nil)

	scr := &mockScraper{}
	scr.On("Scrape", mock.Anything, mock.Anything).Return(posting("u"), nil)

	sink := &mockSink{}
	sink.On("Write", mock.Anything, mock.Anything, mock.Anything).Return(nil)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	pacer := &countingPacer{cancel: cancel, after: 1}

	d := NewDriver(src, sink, scr, WithPacer(pacer))
	report, err := d.Run(ctx)

	assert.ErrorIs(t, err, context.Canceled)
	assert.Len(t, report.Outcomes, 1)
	scr.AssertNumberOfCalls(t, "Scrape", 1)
}
