package handler_test

import (
	"context"
	"io"
	"net/http"
	"net/http/cookiejar"
	"net/http/httptest"
	"net/url"
	"path/filepath"
	"strings"
	"testing"

	"github.com/msomdec/auction-house/internal/handler"
	"github.com/msomdec/auction-house/internal/metrics"
	"github.com/msomdec/auction-house/internal/repository/sqlite"
	"github.com/msomdec/auction-house/internal/service"
)

const testJWTSecret = "test-secret-for-handler-tests-0123456789"

func newTestDeps(t *testing.T) handler.Deps {
	t.Helper()
	dbPath := filepath.Join(t.TempDir(), "test.db")
	db, err := sqlite.New(dbPath)
	if err != nil {
		t.Fatalf("New DB: %v", err)
	}
	if err := db.Migrate(context.Background()); err != nil {
		t.Fatalf("Migrate: %v", err)
	}
	t.Cleanup(func() { db.Close() })

	return handler.Deps{
		DB:        db,
		Auth:      service.NewAuthService(db.Users(), testJWTSecret, 4),
		Listings:  service.NewListingService(db.Listings(), db.Bids(), db.Comments(), db.Watchlist()),
		Bids:      service.NewBidService(db.Bids(), db.Listings()),
		Watchlist: service.NewWatchlistService(db.Watchlist(), db.Listings()),
		Comments:  service.NewCommentService(db.Comments(), db.Listings()),
		Closer:    service.NewAuctionCloser(db.Listings(), db.Bids()),
		Metrics:   metrics.New(),
	}
}

func newTestServer(t *testing.T, deps handler.Deps) *httptest.Server {
	t.Helper()
	mux := http.NewServeMux()
	handler.RegisterRoutes(mux, deps)
	srv := httptest.NewServer(handler.Wrap(deps.Metrics, mux))
	t.Cleanup(srv.Close)
	return srv
}

// newClient returns a client with its own cookie jar that does not follow
// redirects.
func newClient(t *testing.T) *http.Client {
	t.Helper()
	jar, err := cookiejar.New(nil)
	if err != nil {
		t.Fatalf("create cookie jar: %v", err)
	}
	return &http.Client{
		Jar: jar,
		CheckRedirect: func(req *http.Request, via []*http.Request) error {
			return http.ErrUseLastResponse // don't follow redirects automatically
		},
	}
}

// registerClient registers username with password "password123" and returns
// a client logged in as that user.
func registerClient(t *testing.T, srv *httptest.Server, username string) *http.Client {
	t.Helper()
	client := newClient(t)
	resp := postForm(t, client, srv.URL+"/register", url.Values{
		"username":     {username},
		"email":        {username + "@example.com"},
		"password":     {"password123"},
		"confirmation": {"password123"},
	})
	resp.Body.Close()
	if resp.StatusCode != http.StatusSeeOther {
		t.Fatalf("register %s: expected 303, got %d", username, resp.StatusCode)
	}
	return client
}

// createListing posts the create form and returns the listing's display path.
func createListing(t *testing.T, client *http.Client, srv *httptest.Server, title, startBid string) string {
	t.Helper()
	resp := postForm(t, client, srv.URL+"/create", url.Values{
		"title":       {title},
		"description": {"Test item"},
		"startBid":    {startBid},
	})
	resp.Body.Close()
	if resp.StatusCode != http.StatusSeeOther {
		t.Fatalf("create listing: expected 303, got %d", resp.StatusCode)
	}
	loc := resp.Header.Get("Location")
	if !strings.HasPrefix(loc, "/display/") {
		t.Fatalf("create listing: unexpected redirect %q", loc)
	}
	return loc
}

func postForm(t *testing.T, client *http.Client, target string, form url.Values) *http.Response {
	t.Helper()
	resp, err := client.PostForm(target, form)
	if err != nil {
		t.Fatalf("POST %s: %v", target, err)
	}
	return resp
}

func get(t *testing.T, client *http.Client, target string) *http.Response {
	t.Helper()
	resp, err := client.Get(target)
	if err != nil {
		t.Fatalf("GET %s: %v", target, err)
	}
	return resp
}

// getBody fetches target and returns the status and body.
func getBody(t *testing.T, client *http.Client, target string) (int, string) {
	t.Helper()
	resp := get(t, client, target)
	defer resp.Body.Close()
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		t.Fatalf("read body: %v", err)
	}
	return resp.StatusCode, string(body)
}

func readBody(t *testing.T, resp *http.Response) string {
	t.Helper()
	defer resp.Body.Close()
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		t.Fatalf("read body: %v", err)
	}
	return string(body)
}

// idFromPath returns the trailing id of a /display/{id} path.
func idFromPath(path string) string {
	return path[strings.LastIndex(path, "/")+1:]
}
