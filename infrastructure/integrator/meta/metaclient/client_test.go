package metaclient

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vfg2006/ads-sync-engine/internal/config"
	"github.com/vfg2006/ads-sync-engine/internal/domain"
	"github.com/vfg2006/ads-sync-engine/pkg/secret"
)

const testToken = secret.Token("EAAB-test-token")

func newTestClient(serverURL string) (*MetaClient, *[]time.Duration) {
	sleeps := make([]time.Duration, 0)

	cfg := &config.Config{}
	cfg.Meta.URL = serverURL + "/v22.0"
	cfg.Meta.RequestTimeout = 100 * time.Millisecond
	cfg.Meta.PageLimit = 2
	cfg.Retry = config.Retry{
		MaxAttempts:    3,
		BaseDelay:      time.Second,
		RateLimitDelay: 10 * time.Second,
	}

	client := NewClient(cfg, WithSleeper(func(ctx context.Context, d time.Duration) error {
		sleeps = append(sleeps, d)
		return nil
	}))

	return client, &sleeps
}

func writeGraphError(w http.ResponseWriter, status, code, subcode int, errType string) {
	w.WriteHeader(status)
	fmt.Fprintf(w, `{"error":{"message":"falha simulada","type":"%s","code":%d,"error_subcode":%d,"fbtrace_id":"trace"}}`, errType, code, subcode)
}

func TestMetaClient_ListCampaigns_Retry(t *testing.T) {
	tests := []struct {
		name          string
		handler       func(attempt int32, w http.ResponseWriter)
		wantAttempts  int32
		wantSleeps    []time.Duration
		wantCampaigns int
		validateErr   func(t *testing.T, err error)
	}{
		{
			name: "falha duas vezes e sucesso na terceira - espera 1s e 2s",
			handler: func(attempt int32, w http.ResponseWriter) {
				if attempt < 3 {
					writeGraphError(w, http.StatusInternalServerError, 2, 0, "OAuthException")
					return
				}
				fmt.Fprint(w, `{"data":[{"id":"c1","name":"Campanha 1","status":"ACTIVE"}],"paging":{}}`)
			},
			wantAttempts:  3,
			wantSleeps:    []time.Duration{time.Second, 2 * time.Second},
			wantCampaigns: 1,
		},
		{
			name: "erro de autenticação - exatamente uma tentativa",
			handler: func(attempt int32, w http.ResponseWriter) {
				writeGraphError(w, http.StatusBadRequest, 190, 463, "OAuthException")
			},
			wantAttempts: 1,
			wantSleeps:   []time.Duration{},
			validateErr: func(t *testing.T, err error) {
				assert.ErrorIs(t, err, domain.ErrRemoteAuth)

				var reqErr *RequestError
				require.True(t, errors.As(err, &reqErr))
				assert.Equal(t, 1, reqErr.Attempts)
				assert.Equal(t, "/v22.0/act_123/campaigns", reqErr.Endpoint)
			},
		},
		{
			name: "falha sempre - três tentativas sem espera após a última",
			handler: func(attempt int32, w http.ResponseWriter) {
				writeGraphError(w, http.StatusServiceUnavailable, 2, 0, "")
			},
			wantAttempts: 3,
			wantSleeps:   []time.Duration{time.Second, 2 * time.Second},
			validateErr: func(t *testing.T, err error) {
				assert.NotErrorIs(t, err, domain.ErrRemoteAuth)

				var reqErr *RequestError
				require.True(t, errors.As(err, &reqErr))
				assert.Equal(t, 3, reqErr.Attempts)
				assert.Equal(t, "list_campaigns", reqErr.Operation)

				var apiErr *APIError
				require.True(t, errors.As(err, &apiErr))
				assert.Equal(t, http.StatusServiceUnavailable, apiErr.StatusCode)
			},
		},
		{
			name: "limite de requisições - backoff mais longo",
			handler: func(attempt int32, w http.ResponseWriter) {
				if attempt < 3 {
					writeGraphError(w, http.StatusBadRequest, 17, 2446079, "OAuthException")
					return
				}
				fmt.Fprint(w, `{"data":[],"paging":{}}`)
			},
			wantAttempts: 3,
			wantSleeps:   []time.Duration{10 * time.Second, 20 * time.Second},
		},
		{
			name: "limite de requisições esgotado - erro classificado",
			handler: func(attempt int32, w http.ResponseWriter) {
				writeGraphError(w, http.StatusTooManyRequests, 80004, 0, "")
			},
			wantAttempts: 3,
			wantSleeps:   []time.Duration{10 * time.Second, 20 * time.Second},
			validateErr: func(t *testing.T, err error) {
				assert.ErrorIs(t, err, domain.ErrRemoteRateLimit)
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var attempts atomic.Int32

			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				assert.Equal(t, "Bearer "+testToken.Reveal(), r.Header.Get("Authorization"))
				assert.Empty(t, r.URL.Query().Get("access_token"))
				tt.handler(attempts.Add(1), w)
			}))
			defer server.Close()

			client, sleeps := newTestClient(server.URL)

			campaigns, err := client.ListCampaigns(context.Background(), testToken, "act_123")

			assert.Equal(t, tt.wantAttempts, attempts.Load())
			assert.Equal(t, tt.wantSleeps, *sleeps)

			if tt.validateErr != nil {
				require.Error(t, err)
				assert.NotContains(t, err.Error(), testToken.Reveal())
				tt.validateErr(t, err)
				return
			}

			require.NoError(t, err)
			assert.Len(t, campaigns, tt.wantCampaigns)
		})
	}
}

func TestMetaClient_Timeout(t *testing.T) {
	var attempts atomic.Int32

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		attempts.Add(1)
		select {
		case <-r.Context().Done():
		case <-time.After(2 * time.Second):
		}
	}))
	defer server.Close()

	client, sleeps := newTestClient(server.URL)

	_, err := client.ListAdSets(context.Background(), testToken, "c1")

	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrRemoteTimeout)
	assert.Equal(t, int32(3), attempts.Load())
	assert.Equal(t, []time.Duration{time.Second, 2 * time.Second}, *sleeps)

	var timeoutErr *TimeoutError
	assert.True(t, errors.As(err, &timeoutErr))
}

func TestMetaClient_CanceledContext(t *testing.T) {
	var attempts atomic.Int32

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		attempts.Add(1)
	}))
	defer server.Close()

	client, sleeps := newTestClient(server.URL)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := client.ListAds(ctx, testToken, "as1")

	require.Error(t, err)
	assert.ErrorIs(t, err, context.Canceled)
	assert.Equal(t, int32(0), attempts.Load())
	assert.Empty(t, *sleeps)
}

func TestMetaClient_ListCampaigns_Pagination(t *testing.T) {
	var serverURL string

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/v22.0/act_123/campaigns", r.URL.Path)

		if r.URL.Query().Get("after") == "" {
			fmt.Fprintf(w, `{"data":[{"id":"c1"},{"id":"c2"}],"paging":{"cursors":{"after":"abc"},"next":"%s/v22.0/act_123/campaigns?after=abc"}}`, serverURL)
			return
		}

		fmt.Fprint(w, `{"data":[{"id":"c3"}],"paging":{"cursors":{"before":"abc"}}}`)
	}))
	defer server.Close()
	serverURL = server.URL

	client, _ := newTestClient(server.URL)

	campaigns, err := client.ListCampaigns(context.Background(), testToken, "123")

	require.NoError(t, err)
	require.Len(t, campaigns, 3)
	assert.Equal(t, "c3", campaigns[2].ID)
}

func TestMetaClient_ListCampaigns_NextWithAccessToken(t *testing.T) {
	const leakedToken = "EAAB-SECRET"

	tests := []struct {
		name     string
		lastPage func(w http.ResponseWriter)
		validate func(t *testing.T, campaigns int, err error)
	}{
		{
			name: "segue o next sem repetir o access_token na query",
			lastPage: func(w http.ResponseWriter) {
				fmt.Fprint(w, `{"data":[{"id":"c2"}],"paging":{}}`)
			},
			validate: func(t *testing.T, campaigns int, err error) {
				require.NoError(t, err)
				assert.Equal(t, 2, campaigns)
			},
		},
		{
			name: "conexão derrubada na segunda página não expõe o token no erro",
			lastPage: func(w http.ResponseWriter) {
				conn, _, err := w.(http.Hijacker).Hijack()
				if err != nil {
					return
				}
				conn.Close()
			},
			validate: func(t *testing.T, campaigns int, err error) {
				require.Error(t, err)
				assert.NotContains(t, err.Error(), leakedToken)
				assert.NotContains(t, err.Error(), "access_token")
				assert.NotContains(t, fmt.Sprintf("%+v", err), leakedToken)
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var serverURL string

			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				if r.URL.Query().Get("after") == "" {
					fmt.Fprintf(w, `{"data":[{"id":"c1"}],"paging":{"cursors":{"after":"X"},"next":"%s/v22.0/act_123/campaigns?access_token=%s&after=X"}}`, serverURL, leakedToken)
					return
				}

				assert.Empty(t, r.URL.Query().Get("access_token"))
				assert.Equal(t, "X", r.URL.Query().Get("after"))
				tt.lastPage(w)
			}))
			defer server.Close()
			serverURL = server.URL

			client, _ := newTestClient(server.URL)

			campaigns, err := client.ListCampaigns(context.Background(), testToken, "123")

			tt.validate(t, len(campaigns), err)
		})
	}
}

func TestWithoutAccessToken(t *testing.T) {
	assert.Equal(t, "", withoutAccessToken(""))
	assert.Equal(t, "https://graph.facebook.com/v22.0/act_1/ads?after=X&limit=2",
		withoutAccessToken("https://graph.facebook.com/v22.0/act_1/ads?access_token=EAAB-SECRET&after=X&limit=2"))
}

func TestMetaClient_GetInsights(t *testing.T) {
	dateRange := domain.DateRange{
		Since: time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC),
		Until: time.Date(2024, 1, 7, 0, 0, 0, 0, time.UTC),
	}

	t.Run("sem linha de insight retorna nil sem erro", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, `{"since":"2024-01-01","until":"2024-01-07"}`, r.URL.Query().Get("time_range"))
			assert.Empty(t, r.URL.Query().Get("time_increment"))
			fmt.Fprint(w, `{"data":[],"paging":{}}`)
		}))
		defer server.Close()

		client, _ := newTestClient(server.URL)

		insight, err := client.GetInsights(context.Background(), testToken, "ad1", dateRange)

		require.NoError(t, err)
		assert.Nil(t, insight)
	})

	t.Run("insights diários com ações", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, "1", r.URL.Query().Get("time_increment"))
			fmt.Fprint(w, `{"data":[
				{"ad_id":"ad1","date_start":"2024-01-01","date_stop":"2024-01-01","spend":"100","impressions":"1000","clicks":"10",
				 "actions":[{"action_type":"purchase","value":"1"}],"action_values":[{"action_type":"purchase","value":"300"}]},
				{"ad_id":"ad1","date_start":"2024-01-02","date_stop":"2024-01-02","spend":"50"}
			],"paging":{}}`)
		}))
		defer server.Close()

		client, _ := newTestClient(server.URL)

		rows, err := client.GetDailyInsights(context.Background(), testToken, "ad1", dateRange)

		require.NoError(t, err)
		require.Len(t, rows, 2)
		assert.Equal(t, "2024-01-01", rows[0].DateStart)
		assert.Equal(t, "300", rows[0].ActionValues[0].Value)
		assert.Empty(t, rows[1].Actions)
	})
}
