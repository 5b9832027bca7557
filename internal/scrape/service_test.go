package scrape

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/honeycarbs/jobsync/internal/domain"
	"github.com/honeycarbs/jobsync/internal/extract"
)

type fakeVisitor struct {
	html    string
	err     error
	timeout time.Duration
	urls    []string
}

func (f *fakeVisitor) Visit(_ context.Context, url string, timeout time.Duration, fn func(extract.Document) error) error {
	f.urls = append(f.urls, url)
	f.timeout = timeout
	if f.err != nil {
		return f.err
	}
	doc, err := extract.ParseHTMLString(f.html)
	if err != nil {
		return err
	}
	return fn(doc)
}

func fixture(t *testing.T, name string) string {
	t.Helper()
	b, err := os.ReadFile(filepath.Join("..", "extract", "testdata", name))
	require.NoError(t, err)
	return string(b)
}

func newService(t *testing.T, v Visitor, opts ...Option) *Service {
	t.Helper()
	e, err := extract.NewDefault()
	require.NoError(t, err)
	return NewService(v, e, opts...)
}

func TestScrape_Success(t *testing.T) {
	v := &fakeVisitor{html: fixture(t, "guest_posting.html")}
	s := newService(t, v, WithTimeout(5*time.Second))

	p, err := s.Scrape(context.Background(), "https://www.linkedin.com/jobs/view/42")
	require.NoError(t, err)

	assert.Equal(t, "Senior Go Engineer", p.JobTitle)
	assert.Equal(t, "Acme Corp", p.CompanyName)
	assert.Equal(t, "https://www.linkedin.com/jobs/view/42", p.URL)
	assert.Equal(t, 5*time.Second, v.timeout)
}

func TestScrape_EmptyPageIsNotAnError(t *testing.T) {
	v := &fakeVisitor{html: fixture(t, "auth_wall.html")}
	s := newService(t, v)

	p, err := s.Scrape(context.Background(), "u")
	require.NoError(t, err)
	assert.Equal(t, domain.NewJobPosting("u"), p)
	assert.Equal(t, DefaultNavigationTimeout, v.timeout)
}

func TestScrape_VisitFailure(t *testing.T) {
	tests := []struct {
		name string
		err  error
	}{
		{"classified", domain.TransportError("navigate", errors.New("net::ERR_NAME_NOT_RESOLVED"))},
		{"unclassified", errors.New("boom")},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := newService(t, &fakeVisitor{err: tt.err})

			p, err := s.Scrape(context.Background(), "u")
			require.Error(t, err)
			assert.True(t, domain.IsKind(err, domain.KindTransport))
			assert.Equal(t, domain.NotFound, p.JobTitle)
		})
	}
}
