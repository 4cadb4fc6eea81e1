package currency

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func referenceServer(t *testing.T, status *atomic.Int32) *httptest.Server {
	return countingReferenceServer(t, status, new(atomic.Int32))
}

func countingReferenceServer(t *testing.T, status, hits *atomic.Int32) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits.Add(1)
		code := int(status.Load())
		if code != http.StatusOK {
			w.WriteHeader(code)
			return
		}
		_, _ = io.WriteString(w, `{"usd":"United States Dollar","EUR":"Euro","AUD":"Australian Dollar"}`)
	}))
	t.Cleanup(srv.Close)
	return srv
}

func TestListSortsByCode(t *testing.T) {
	var status atomic.Int32
	status.Store(http.StatusOK)
	srv := referenceServer(t, &status)

	p := NewProvider(Options{URL: srv.URL, Timeout: time.Second, Logger: zap.NewNop()})
	require.NoError(t, p.Refresh(context.Background()))
	list, err := p.List(context.Background())
	require.NoError(t, err)
	require.Len(t, list, 3)
	assert.Equal(t, []string{"AUD", "EUR", "USD"}, []string{list[0].Code, list[1].Code, list[2].Code})
	assert.Equal(t, "United States Dollar", list[2].Name)
	assert.False(t, p.FetchedAt().IsZero())
}

func TestFailedRefreshKeepsLastTable(t *testing.T) {
	var status atomic.Int32
	status.Store(http.StatusOK)
	srv := referenceServer(t, &status)

	p := NewProvider(Options{URL: srv.URL, Timeout: time.Second})
	require.NoError(t, p.Refresh(context.Background()))

	status.Store(http.StatusServiceUnavailable)
	assert.Error(t, p.Refresh(context.Background()))
	assert.Contains(t, p.Table(context.Background()), "EUR")
}

func TestUnavailableReferenceYieldsNilTable(t *testing.T) {
	var status atomic.Int32
	status.Store(http.StatusInternalServerError)
	srv := referenceServer(t, &status)

	p := NewProvider(Options{URL: srv.URL, Timeout: time.Second})
	assert.ErrorIs(t, p.Refresh(context.Background()), ErrUnavailable)
	assert.Nil(t, p.Table(context.Background()))

	_, err := p.List(context.Background())
	assert.ErrorIs(t, err, ErrUnavailable)
}

func TestMissingURLIsUnavailable(t *testing.T) {
	p := NewProvider(Options{})
	assert.ErrorIs(t, p.Refresh(context.Background()), ErrUnavailable)
}

func TestTableNeverFetches(t *testing.T) {
	var status, hits atomic.Int32
	status.Store(http.StatusOK)
	srv := countingReferenceServer(t, &status, &hits)

	p := NewProvider(Options{URL: srv.URL, Timeout: time.Second})
	for i := 0; i < 5; i++ {
		assert.Nil(t, p.Table(context.Background()))
		_, err := p.List(context.Background())
		assert.ErrorIs(t, err, ErrUnavailable)
	}
	assert.Zero(t, hits.Load())

	require.NoError(t, p.Refresh(context.Background()))
	assert.Len(t, p.Table(context.Background()), 3)
	assert.Equal(t, int32(1), hits.Load())
}
