// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0
// no-cloc

package command

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"os"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/staranto/storectl/internal/api"
	"github.com/staranto/storectl/internal/dashboard"
	"github.com/staranto/storectl/internal/profile"
	"github.com/staranto/storectl/internal/session"
)

// storefront is a small in-memory API with a magic link sign-in.
type storefront struct {
	mu      sync.Mutex
	emails  []string
	puts    []map[string]any
	current profile.Profile
	failPut bool
	params  url.Values
}

func (s *storefront) handler(t *testing.T) http.Handler {
	t.Helper()
	mux := http.NewServeMux()

	authed := func(w http.ResponseWriter, r *http.Request) bool {
		if c, err := r.Cookie("auth"); err != nil || c.Value != "tok" {
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(http.StatusUnauthorized)
			_, _ = w.Write([]byte(`{"message":"Unauthorized."}`))
			return false
		}
		return true
	}

	mux.HandleFunc("POST /authenticate", func(w http.ResponseWriter, r *http.Request) {
		var body struct{ Email string }
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		s.mu.Lock()
		s.emails = append(s.emails, body.Email)
		s.mu.Unlock()
	})
	mux.HandleFunc("GET /auth-links/authenticate", func(w http.ResponseWriter, r *http.Request) {
		http.SetCookie(w, &http.Cookie{Name: "auth", Value: "tok", Path: "/", HttpOnly: true})
		http.Redirect(w, r, "http://web.example/", http.StatusFound)
	})
	mux.HandleFunc("POST /sign-out", func(w http.ResponseWriter, r *http.Request) {
		http.SetCookie(w, &http.Cookie{Name: "auth", Value: "", Path: "/", MaxAge: -1})
	})
	mux.HandleFunc("GET /managed-restaurant", func(w http.ResponseWriter, r *http.Request) {
		if !authed(w, r) {
			return
		}
		s.mu.Lock()
		defer s.mu.Unlock()
		w.Header().Set("Content-Type", "application/json")
		require.NoError(t, json.NewEncoder(w).Encode(s.current))
	})
	mux.HandleFunc("PUT /profile", func(w http.ResponseWriter, r *http.Request) {
		if !authed(w, r) {
			return
		}
		var body map[string]any
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		s.mu.Lock()
		defer s.mu.Unlock()
		s.puts = append(s.puts, body)
		if s.failPut {
			w.WriteHeader(http.StatusInternalServerError)
			return
		}
		if name, ok := body["name"].(string); ok {
			s.current.Name = name
		}
		if d, ok := body["description"]; ok {
			if d == nil {
				s.current.Description = nil
			} else {
				ds := d.(string)
				s.current.Description = &ds
			}
		}
		w.WriteHeader(http.StatusNoContent)
	})
	mux.HandleFunc("GET /metrics/{name}", func(w http.ResponseWriter, r *http.Request) {
		if !authed(w, r) {
			return
		}
		w.Header().Set("Content-Type", "application/json")
		var doc string
		switch r.PathValue("name") {
		case api.MonthRevenue:
			doc = `{"receipt":123456,"diffFromLastMonth":12.5}`
		case api.MonthOrdersAmount:
			doc = `{"amount":1520,"diffFromLastMonth":-3}`
		case api.DayOrdersAmount:
			doc = `{"amount":48,"diffFromYesterday":0}`
		case api.MonthCanceledOrdersAmount:
			doc = `{"amount":7,"diffFromLastMonth":-40}`
		case api.PopularProducts:
			doc = `[{"product":"Pepperoni","amount":30},{"product":"Margherita","amount":12}]`
		case api.DailyReceiptInPeriod:
			s.mu.Lock()
			s.params = r.URL.Query()
			s.mu.Unlock()
			doc = `[{"date":"01/03","receipt":9950}]`
		default:
			w.WriteHeader(http.StatusNotFound)
			return
		}
		_, _ = w.Write([]byte(doc))
	})
	return mux
}

func desc(s string) *string { return &s }

// setup starts a storefront and points storectl at it with an isolated
// session directory.
func setup(t *testing.T) (*storefront, *httptest.Server) {
	t.Helper()
	sf := &storefront{current: profile.Profile{
		ID: "r1", Name: "Bob's Diner", Description: desc("Burgers"), ManagerID: "m1",
	}}
	srv := httptest.NewServer(sf.handler(t))
	t.Cleanup(srv.Close)

	t.Setenv("STORECTL_API_URL", srv.URL)
	t.Setenv("STORECTL_ENABLE_API_DELAY", "false")
	t.Setenv("STORECTL_CACHE_DIR", t.TempDir())
	for _, k := range []string{"STORECTL_CACHE", "STORECTL_OUTPUT", "STORECTL_COLOR", "STORECTL_EMAIL"} {
		t.Setenv(k, "")
		require.NoError(t, os.Unsetenv(k))
	}
	return sf, srv
}

func run(t *testing.T, args ...string) (string, string, error) {
	t.Helper()
	args = append([]string{"storectl"}, args...)
	app, err := InitApp(context.Background(), args)
	require.NoError(t, err)

	var out, errOut bytes.Buffer
	app.Writer = &out
	app.ErrWriter = &errOut
	err = app.Run(context.Background(), args)
	return out.String(), errOut.String(), err
}

func signIn(t *testing.T, srv *httptest.Server) {
	t.Helper()
	out, _, err := run(t, "signin", "--link", srv.URL+"/auth-links/authenticate?code=abc")
	require.NoError(t, err)
	require.Contains(t, out, "Signed in to")
}

func TestSignin_Email(t *testing.T) {
	sf, _ := setup(t)

	out, _, err := run(t, "signin", "--email", "bob@example.com")
	require.NoError(t, err)
	assert.Equal(t, "A sign-in link was sent to bob@example.com.\n", out)
	assert.Equal(t, []string{"bob@example.com"}, sf.emails)
}

func TestSignin_RequiresExactlyOne(t *testing.T) {
	_, srv := setup(t)

	_, _, err := run(t, "signin")
	assert.ErrorContains(t, err, "exactly one of --email or --link")

	_, _, err = run(t, "signin", "--email", "bob@example.com", "--link", srv.URL+"/auth-links/authenticate")
	assert.ErrorContains(t, err, "exactly one of --email or --link")
}

func TestSignin_BadEmail(t *testing.T) {
	sf, _ := setup(t)

	_, _, err := run(t, "signin", "--email", "bob")
	assert.ErrorContains(t, err, "must be a valid e-mail address")
	assert.Empty(t, sf.emails)
}

func TestSigninAndOut_Session(t *testing.T) {
	_, srv := setup(t)

	_, _, err := run(t, "profile", "show")
	assert.ErrorIs(t, err, api.ErrUnauthorized)

	signIn(t, srv)
	host := apiHost(srv.URL)
	cookies, err := session.Read(host)
	require.NoError(t, err)
	require.Len(t, cookies, 1)
	assert.Equal(t, "tok", cookies[0].Value)

	out, _, err := run(t, "signout")
	require.NoError(t, err)
	assert.Equal(t, "Signed out.\n", out)

	_, err = session.Read(host)
	assert.ErrorIs(t, err, session.ErrNoSession)
}

func TestProfileShow_JSON(t *testing.T) {
	_, srv := setup(t)
	signIn(t, srv)

	out, _, err := run(t, "profile", "show", "-o", "json")
	require.NoError(t, err)
	assert.JSONEq(t, `[{"id":"r1","name":"Bob's Diner","description":"Burgers","managerId":"m1"}]`, out)
}

func TestProfileUpdate_Success(t *testing.T) {
	sf, srv := setup(t)
	signIn(t, srv)

	out, errOut, err := run(t, "profile", "update", "--name", "Bob's Grill", "-o", "json")
	require.NoError(t, err)
	assert.JSONEq(t, `[{"id":"r1","name":"Bob's Grill","description":"Burgers","managerId":"m1"}]`, out)
	assert.Contains(t, errOut, "✔ "+profile.SuccessMessage)

	require.Len(t, sf.puts, 1)
	assert.Equal(t, map[string]any{"name": "Bob's Grill"}, sf.puts[0], "only set flags are sent")
}

func TestProfileUpdate_NoDescription(t *testing.T) {
	sf, srv := setup(t)
	signIn(t, srv)

	_, _, err := run(t, "profile", "update", "--no-description")
	require.NoError(t, err)
	require.Len(t, sf.puts, 1)
	assert.Equal(t, map[string]any{"description": nil}, sf.puts[0])
	assert.Nil(t, sf.current.Description)
}

func TestProfileUpdate_Failure(t *testing.T) {
	sf, srv := setup(t)
	signIn(t, srv)
	sf.failPut = true

	out, errOut, err := run(t, "profile", "update", "--name", "Bob's Grill")
	require.Error(t, err)
	assert.Empty(t, out)
	assert.Contains(t, errOut, "✖ "+profile.FailureMessage)
	assert.Equal(t, "Bob's Diner", sf.current.Name)
}

func TestProfileUpdate_Rejected(t *testing.T) {
	tests := []struct {
		name string
		args []string
		want string
	}{
		{"nothing", []string{"profile", "update"}, profile.ErrNothingToUpdate.Error()},
		{"short name", []string{"profile", "update", "--name", "ab"}, "at least 3 characters"},
		{"exclusive", []string{"profile", "update", "--description", "x", "--no-description"}, "mutually exclusive"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sf, srv := setup(t)
			signIn(t, srv)

			_, _, err := run(t, tt.args...)
			assert.ErrorContains(t, err, tt.want)
			assert.Empty(t, sf.puts)
		})
	}
}

func TestProfileUpdate_DryRun(t *testing.T) {
	sf, srv := setup(t)
	signIn(t, srv)

	out, _, err := run(t, "profile", "update", "--name", "Bob's Grill", "--dry-run")
	require.NoError(t, err)
	assert.Contains(t, out, `-  "name": "Bob's Diner"`)
	assert.Contains(t, out, `+  "name": "Bob's Grill"`)
	assert.Empty(t, sf.puts)

	out, _, err = run(t, "profile", "update", "--name", "Bob's Diner", "--dry-run")
	require.NoError(t, err)
	assert.Equal(t, "No changes.\n", out)
}

func TestDashboard(t *testing.T) {
	sf, srv := setup(t)
	signIn(t, srv)

	out, _, err := run(t, "dashboard", "--widget", "popular", "-o", "json")
	require.NoError(t, err)
	assert.JSONEq(t, `[{"product":"Pepperoni","amount":30},{"product":"Margherita","amount":12}]`, out)

	out, _, err = run(t, "dashboard", "--from", "2026-03-01", "--to", "2026-03-08", "--widget", "revenue", "-o", "raw")
	require.NoError(t, err)
	assert.JSONEq(t, `[{"date":"01/03","receipt":9950}]`, out)
	assert.Contains(t, sf.params.Get("from"), "2026-03-01T00:00:00")
	assert.Contains(t, sf.params.Get("to"), "2026-03-08T00:00:00")

	out, _, err = run(t, "dashboard")
	require.NoError(t, err)
	for _, want := range []string{"Overview", "Revenue in period", "Popular products", "$1,234.56", "+12.5%", "Pepperoni"} {
		assert.Contains(t, out, want)
	}
}

func TestDashboard_BadPeriod(t *testing.T) {
	_, srv := setup(t)
	signIn(t, srv)

	_, _, err := run(t, "dashboard", "--from", "2026-03-08", "--to", "2026-03-01")
	assert.ErrorIs(t, err, dashboard.ErrInvalidPeriod)

	_, _, err = run(t, "dashboard", "--from", "March")
	assert.ErrorContains(t, err, "must be a date like")
}

func TestCompletion(t *testing.T) {
	out, _, err := run(t, "completion", "bash")
	require.NoError(t, err)
	assert.Contains(t, out, "complete -F _storectl storectl")

	out, _, err = run(t, "completion", "zsh")
	require.NoError(t, err)
	assert.Contains(t, out, "#compdef storectl")
}
