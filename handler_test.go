package steamauth

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/cccteam/steamauth/config"
	"github.com/cccteam/steamauth/mock/mock_steamauth"
	"github.com/cccteam/steamauth/openid"
	"github.com/cccteam/steamauth/steamapi"
	"github.com/go-playground/errors/v5"
	"github.com/google/go-cmp/cmp"
	gomock "go.uber.org/mock/gomock"
)

// discardErrors is a LogHandler for tests which drops returned errors
func discardErrors(handler func(w http.ResponseWriter, r *http.Request) error) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		_ = handler(w, r)
	}
}

func callbackTarget(claim string) string {
	q := url.Values{}
	q.Set("action", "verify")
	q.Set(openid.ParamMode, "id_res")
	q.Set(openid.ParamClaimedID, claim)
	q.Set(openid.ParamIdentity, claim)

	return "/?" + q.Encode()
}

func TestHandler_ServeHTTP(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name       string
		method     string
		target     string
		apiKey     string
		prepare    func(*mock_steamauth.MockPlayerFetcher)
		wantStatus int
		wantBody   map[string]string
	}{
		{
			name:   "callback resolves profile",
			method: http.MethodGet,
			target: callbackTarget(testClaim),
			apiKey: "testKey",
			prepare: func(p *mock_steamauth.MockPlayerFetcher) {
				p.EXPECT().PlayerSummaries(gomock.Any(), "testKey", []string{testSteamID}).Return([]steamapi.Player{testPlayer}, nil).Times(1)
			},
			wantStatus: http.StatusOK,
			wantBody: map[string]string{
				"steamId":    "76561198000000000",
				"name":       "Alice",
				"avatar":     "https://x/a.jpg",
				"profileUrl": "https://steamcommunity.com/id/alice",
			},
		},
		{
			name:       "callback without api key",
			method:     http.MethodGet,
			target:     callbackTarget(testClaim),
			wantStatus: http.StatusInternalServerError,
			wantBody:   map[string]string{"error": "STEAM_API_KEY not configured"},
		},
		{
			name:       "callback with malformed claim",
			method:     http.MethodGet,
			target:     callbackTarget("https://steamcommunity.com/openid/id/"),
			apiKey:     "testKey",
			wantStatus: http.StatusBadRequest,
			wantBody:   map[string]string{"error": "malformed openid.claimed_id"},
		},
		{
			name:   "callback for unknown profile",
			method: http.MethodGet,
			target: callbackTarget(testClaim),
			apiKey: "testKey",
			prepare: func(p *mock_steamauth.MockPlayerFetcher) {
				p.EXPECT().PlayerSummaries(gomock.Any(), "testKey", []string{testSteamID}).Return([]steamapi.Player{}, nil).Times(1)
			},
			wantStatus: http.StatusNotFound,
			wantBody:   map[string]string{"error": "Steam profile not found"},
		},
		{
			name:   "callback with steam failure",
			method: http.MethodGet,
			target: callbackTarget(testClaim),
			apiKey: "testKey",
			prepare: func(p *mock_steamauth.MockPlayerFetcher) {
				p.EXPECT().PlayerSummaries(gomock.Any(), "testKey", []string{testSteamID}).Return(nil, errors.New("connection refused")).Times(1)
			},
			wantStatus: http.StatusInternalServerError,
			wantBody:   map[string]string{"error": "Steam API error: connection refused"},
		},
		{
			name:       "put is not allowed",
			method:     http.MethodPut,
			target:     "/",
			apiKey:     "testKey",
			wantStatus: http.StatusMethodNotAllowed,
			wantBody:   map[string]string{"error": "Method not allowed"},
		},
		{
			name:       "post is not allowed",
			method:     http.MethodPost,
			target:     callbackTarget(testClaim),
			apiKey:     "testKey",
			wantStatus: http.StatusMethodNotAllowed,
			wantBody:   map[string]string{"error": "Method not allowed"},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			ctrl := gomock.NewController(t)

			players := mock_steamauth.NewMockPlayerFetcher(ctrl)
			if tt.prepare != nil {
				tt.prepare(players)
			}
			h := New(NewResolver(players, tt.apiKey), openid.NewBuilder(""), "https://example.com", WithLogHandler(discardErrors))

			rr := httptest.NewRecorder()
			h.ServeHTTP(rr, httptest.NewRequest(tt.method, tt.target, http.NoBody))

			if got := rr.Code; got != tt.wantStatus {
				t.Errorf("response.Code = %v, want %v", got, tt.wantStatus)
			}
			assertJSONHeaders(t, rr)

			var got map[string]string
			if err := json.Unmarshal(rr.Body.Bytes(), &got); err != nil {
				t.Fatalf("json.Unmarshal() error = %v, body = %s", err, rr.Body.String())
			}
			if diff := cmp.Diff(tt.wantBody, got); diff != "" {
				t.Errorf("response body mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestHandler_Login(t *testing.T) {
	t.Parallel()

	ctrl := gomock.NewController(t)
	players := mock_steamauth.NewMockPlayerFetcher(ctrl)
	h := New(NewResolver(players, ""), openid.NewBuilder(""), "https://example.com", WithLogHandler(discardErrors))

	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/?foo=bar", http.NoBody))

	if got := rr.Code; got != http.StatusOK {
		t.Fatalf("response.Code = %v, want %v", got, http.StatusOK)
	}
	assertJSONHeaders(t, rr)

	var got loginResponse
	if err := json.Unmarshal(rr.Body.Bytes(), &got); err != nil {
		t.Fatalf("json.Unmarshal() error = %v", err)
	}
	if !strings.HasPrefix(got.LoginURL, "https://steamcommunity.com/openid/login?") {
		t.Errorf("loginUrl = %v, want steam login endpoint", got.LoginURL)
	}
	if want := "openid.realm=" + url.QueryEscape("https://example.com"); !strings.Contains(got.LoginURL, want) {
		t.Errorf("loginUrl = %v, want to contain %v", got.LoginURL, want)
	}
	if want := "openid.return_to=" + url.QueryEscape("https://example.com?action=verify"); !strings.Contains(got.LoginURL, want) {
		t.Errorf("loginUrl = %v, want to contain %v", got.LoginURL, want)
	}
}

func TestHandler_Preflight(t *testing.T) {
	t.Parallel()

	h := New(nil, openid.NewBuilder(""), "https://example.com")

	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, httptest.NewRequest(http.MethodOptions, "/", http.NoBody))

	if got := rr.Code; got != http.StatusOK {
		t.Errorf("response.Code = %v, want %v", got, http.StatusOK)
	}
	want := map[string]string{
		"Access-Control-Allow-Origin":  "*",
		"Access-Control-Allow-Methods": "GET, POST, OPTIONS",
		"Access-Control-Allow-Headers": "Content-Type, X-Session-Id",
		"Access-Control-Max-Age":       "86400",
	}
	for k, v := range want {
		if got := rr.Header().Get(k); got != v {
			t.Errorf("header %s = %v, want %v", k, got, v)
		}
	}
	if rr.Body.Len() != 0 {
		t.Errorf("response body = %q, want empty", rr.Body.String())
	}
}

func TestNewFromConfig(t *testing.T) {
	t.Parallel()

	var calls atomic.Int32
	steam := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		if got := r.URL.Query().Get("steamids"); got != testSteamID {
			t.Errorf("steamids = %v, want %v", got, testSteamID)
		}
		_, _ = io.WriteString(w, `{"response":{"players":[{"steamid":"76561198000000000","personaname":"Alice",`+
			`"avatarfull":"https://x/a.jpg","profileurl":"https://steamcommunity.com/id/alice"}]}}`)
	}))
	defer steam.Close()

	tests := []struct {
		name       string
		apiKey     string
		target     string
		wantStatus int
		wantCalls  int32
	}{
		{
			name:       "login request",
			target:     "/",
			wantStatus: http.StatusOK,
		},
		{
			name:       "callback without api key",
			target:     callbackTarget(testClaim),
			wantStatus: http.StatusInternalServerError,
		},
		{
			name:       "callback",
			apiKey:     "testKey",
			target:     callbackTarget(testClaim),
			wantStatus: http.StatusOK,
			wantCalls:  1,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			before := calls.Load()

			h := NewFromConfig(config.Config{
				APIKey:        tt.apiKey,
				BaseURL:       "https://example.com",
				APIBaseURL:    steam.URL,
				LoginEndpoint: openid.DefaultEndpoint,
				APITimeout:    time.Second,
			}, WithLogHandler(discardErrors))

			rr := httptest.NewRecorder()
			h.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, tt.target, http.NoBody))

			if got := rr.Code; got != tt.wantStatus {
				t.Errorf("response.Code = %v, want %v, body = %s", got, tt.wantStatus, rr.Body.String())
			}
			if got := calls.Load() - before; got != tt.wantCalls {
				t.Errorf("steam api calls = %d, want %d", got, tt.wantCalls)
			}
		})
	}
}

// failingWriter accepts headers but fails every body write
type failingWriter struct {
	*httptest.ResponseRecorder
}

func (failingWriter) Write([]byte) (int, error) {
	return 0, errors.New("connection reset by peer")
}

func TestHandler_writeFailures(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name         string
		method       string
		target       string
		wantStatus   int
		wantContains []string
	}{
		{
			name:         "method not allowed",
			method:       http.MethodPut,
			target:       "/",
			wantStatus:   http.StatusMethodNotAllowed,
			wantContains: []string{"connection reset by peer"},
		},
		{
			name:         "callback error keeps the resolver error",
			method:       http.MethodGet,
			target:       callbackTarget(testClaim),
			wantStatus:   http.StatusInternalServerError,
			wantContains: []string{"connection reset by peer", "STEAM_API_KEY not configured"},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			ctrl := gomock.NewController(t)

			var logged error
			capture := func(handler func(w http.ResponseWriter, r *http.Request) error) http.HandlerFunc {
				return func(w http.ResponseWriter, r *http.Request) {
					logged = handler(w, r)
				}
			}

			players := mock_steamauth.NewMockPlayerFetcher(ctrl)
			h := New(NewResolver(players, ""), openid.NewBuilder(""), "https://example.com", WithLogHandler(capture))

			w := failingWriter{httptest.NewRecorder()}
			h.ServeHTTP(w, httptest.NewRequest(tt.method, tt.target, http.NoBody))

			if got := w.Code; got != tt.wantStatus {
				t.Errorf("response.Code = %v, want %v", got, tt.wantStatus)
			}
			if logged == nil {
				t.Fatalf("handler error = nil, want write failure")
			}
			for _, want := range tt.wantContains {
				if !strings.Contains(logged.Error(), want) {
					t.Errorf("handler error = %v, want to contain %q", logged, want)
				}
			}
		})
	}
}

func assertJSONHeaders(t *testing.T, rr *httptest.ResponseRecorder) {
	t.Helper()

	if got := rr.Header().Get("Access-Control-Allow-Origin"); got != "*" {
		t.Errorf("Access-Control-Allow-Origin = %v, want *", got)
	}
	if got := rr.Header().Get("Content-Type"); !strings.HasPrefix(got, "application/json") {
		t.Errorf("Content-Type = %v, want application/json", got)
	}
}
