package apifootball

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/riskibarqy/weekendbets/internal/domain/odds"
	"github.com/riskibarqy/weekendbets/internal/platform/resilience"
	"github.com/riskibarqy/weekendbets/internal/usecase"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testProfile = odds.Profile{Season: "2024", Bookmaker: "8", Bet: "1"}

const oddsPageBody = `{
  "get": "odds",
  "errors": [],
  "results": 1,
  "paging": {"current": 1, "total": 1},
  "response": [{
    "league": {"id": 39, "season": 2024},
    "fixture": {"id": 1208021},
    "update": "2024-08-16T08:00:05+00:00",
    "bookmakers": [{
      "id": 8, "name": "Bet365",
      "bets": [{"id": 1, "name": "Match Winner", "values": [
        {"value": "Away", "odd": "4.20"},
        {"value": "Home", "odd": "1.80"},
        {"value": "Draw", "odd": "3.60"}
      ]}]
    }]
  }]
}`

func newTestClient(t *testing.T, handler http.HandlerFunc, mutate func(*ClientConfig)) *Client {
	t.Helper()

	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	cfg := ClientConfig{
		BaseURL:    srv.URL,
		APIKey:     "secret-key",
		Timeout:    2 * time.Second,
		MaxRetries: 2,
		RetryStep:  time.Millisecond,
		CircuitBreaker: resilience.CircuitBreakerConfig{
			Enabled:          true,
			FailureThreshold: 2,
			OpenTimeout:      time.Minute,
			HalfOpenMaxReq:   1,
		},
	}
	if mutate != nil {
		mutate(&cfg)
	}
	return NewClient(cfg)
}

func TestFetchOddsPage_DecodesRows(t *testing.T) {
	t.Parallel()

	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/odds", r.URL.Path)
		assert.Equal(t, "2024-08-17", r.URL.Query().Get("date"))
		assert.Equal(t, "2024", r.URL.Query().Get("season"))
		assert.Equal(t, "8", r.URL.Query().Get("bookmaker"))
		assert.Equal(t, "1", r.URL.Query().Get("bet"))
		assert.Equal(t, "2", r.URL.Query().Get("page"))
		assert.Equal(t, "secret-key", r.Header.Get("x-apisports-key"))
		_, _ = w.Write([]byte(oddsPageBody))
	}, nil)

	rows, err := client.FetchOddsPage(context.Background(), odds.PageQuery{Date: "2024-08-17", Profile: testProfile, Page: 2})
	require.NoError(t, err)
	require.Len(t, rows, 1)

	row := rows[0]
	assert.Equal(t, int64(1208021), row.FixtureID)
	assert.Equal(t, int64(39), row.LeagueID)
	assert.Equal(t, 2024, row.Season)
	require.Len(t, row.Bookmakers, 1)
	require.Len(t, row.Bookmakers[0].Markets, 1)
	assert.Equal(t, odds.Outcome{Label: "Away", Odd: "4.20"}, row.Bookmakers[0].Markets[0].Outcomes[0])

	quote, err := odds.Extract(row, testProfile)
	require.NoError(t, err)
	assert.Equal(t, "1.8", quote.Home.String())
	assert.Equal(t, "3.6", quote.Draw.String())
	assert.Equal(t, "4.2", quote.Away.String())
}

func TestFetchOddsPage_EndOfPages(t *testing.T) {
	t.Parallel()

	t.Run("empty response", func(t *testing.T) {
		client := newTestClient(t, func(w http.ResponseWriter, _ *http.Request) {
			_, _ = w.Write([]byte(`{"errors":[],"results":0,"paging":{"current":3,"total":2},"response":[]}`))
		}, nil)

		rows, err := client.FetchOddsPage(context.Background(), odds.PageQuery{Date: "2024-08-17", Profile: testProfile, Page: 3})
		require.NoError(t, err)
		require.Empty(t, rows)
	})

	t.Run("page overflow error", func(t *testing.T) {
		client := newTestClient(t, func(w http.ResponseWriter, _ *http.Request) {
			_, _ = w.Write([]byte(`{"errors":{"page":"The Page field must not be greater than 2."},"results":0,"response":[]}`))
		}, nil)

		rows, err := client.FetchOddsPage(context.Background(), odds.PageQuery{Date: "2024-08-17", Profile: testProfile, Page: 3})
		require.NoError(t, err)
		require.Empty(t, rows)
	})
}

func TestFetchOddsPage_ProviderErrors(t *testing.T) {
	t.Parallel()

	client := newTestClient(t, func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(`{"errors":{"token":"Error/Missing application key."},"response":[]}`))
	}, nil)

	_, err := client.FetchOddsPage(context.Background(), odds.PageQuery{Date: "2024-08-17", Profile: testProfile, Page: 1})
	if !errors.Is(err, usecase.ErrDependencyUnavailable) {
		t.Fatalf("expected ErrDependencyUnavailable, got %v", err)
	}
	if !strings.Contains(err.Error(), "token") {
		t.Fatalf("expected provider error text, got %v", err)
	}
}

func TestFetchOddsPage_RejectsZeroPage(t *testing.T) {
	t.Parallel()

	client := NewClient(ClientConfig{BaseURL: "http://127.0.0.1:0"})
	_, err := client.FetchOddsPage(context.Background(), odds.PageQuery{Date: "2024-08-17", Profile: testProfile})
	if !errors.Is(err, usecase.ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput, got %v", err)
	}
}

func TestClient_RapidAPIHeaders(t *testing.T) {
	t.Parallel()

	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "secret-key", r.Header.Get("x-rapidapi-key"))
		assert.Equal(t, "api-football-v1.p.rapidapi.com", r.Header.Get("x-rapidapi-host"))
		assert.Empty(t, r.Header.Get("x-apisports-key"))
		_, _ = w.Write([]byte(`{"errors":[],"response":[]}`))
	}, func(cfg *ClientConfig) {
		cfg.APIHost = "api-football-v1.p.rapidapi.com"
	})

	_, err := client.FetchFixturesByDate(context.Background(), "2024-08-17")
	require.NoError(t, err)
}

func TestClient_RetriesTransientStatus(t *testing.T) {
	t.Parallel()

	var calls atomic.Int32
	client := newTestClient(t, func(w http.ResponseWriter, _ *http.Request) {
		if calls.Add(1) < 3 {
			w.WriteHeader(http.StatusTooManyRequests)
			return
		}
		_, _ = w.Write([]byte(`{"errors":[],"response":[]}`))
	}, nil)

	_, err := client.FetchFixturesByDate(context.Background(), "2024-08-17")
	require.NoError(t, err)
	require.Equal(t, int32(3), calls.Load())
}

func TestClient_DoesNotRetryClientErrors(t *testing.T) {
	t.Parallel()

	var calls atomic.Int32
	client := newTestClient(t, func(w http.ResponseWriter, _ *http.Request) {
		calls.Add(1)
		w.WriteHeader(http.StatusForbidden)
		_, _ = w.Write([]byte(`{"message":"bad key secret-key"}`))
	}, nil)

	_, err := client.FetchFixturesByDate(context.Background(), "2024-08-17")
	require.Error(t, err)
	require.Equal(t, int32(1), calls.Load())
	require.NotContains(t, err.Error(), "secret-key")
}

func TestClient_CircuitOpensAfterTransientFailures(t *testing.T) {
	t.Parallel()

	var calls atomic.Int32
	client := newTestClient(t, func(w http.ResponseWriter, _ *http.Request) {
		calls.Add(1)
		w.WriteHeader(http.StatusBadGateway)
	}, func(cfg *ClientConfig) {
		cfg.MaxRetries = 0
	})

	for i := 0; i < 2; i++ {
		_, err := client.FetchFixturesByDate(context.Background(), "2024-08-17")
		require.Error(t, err)
	}

	_, err := client.FetchFixturesByDate(context.Background(), "2024-08-17")
	if !errors.Is(err, usecase.ErrDependencyUnavailable) {
		t.Fatalf("expected open circuit to map to ErrDependencyUnavailable, got %v", err)
	}
	require.Equal(t, int32(2), calls.Load())
}

func TestClient_MalformedBody(t *testing.T) {
	t.Parallel()

	client := newTestClient(t, func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(`{"response": [`))
	}, nil)

	_, err := client.FetchFixturesByDate(context.Background(), "2024-08-17")
	if !errors.Is(err, usecase.ErrMalformedFeed) {
		t.Fatalf("expected ErrMalformedFeed, got %v", err)
	}
}

func TestSanitizeSensitiveText(t *testing.T) {
	got := sanitizeSensitiveText(" Get \"https://x?key=abc123\": dial tcp abc123 ", "abc123")
	if strings.Contains(got, "abc123") {
		t.Fatalf("expected key to be redacted, got %q", got)
	}
}
