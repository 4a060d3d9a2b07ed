package bots

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"net/url"
	"slices"
	"strconv"
	"sync"
	"testing"
	"time"

	"github.com/tavern-social/tavern/mastodon"
)

// In-memory Mastodon instance, just enough for the bot workflows.
type fakeInstance struct {
	mu sync.Mutex

	self          mastodon.Account
	notifications []mastodon.Notification // newest first
	timeline      []mastodon.Status       // newest first
	ancestors     map[string][]mastodon.Status

	// fail status creation once this many statuses were created; negative never fails
	failCreateAfter int

	created      []createdStatus
	reblogged    []string
	dismissed    []string
	excludeTypes [][]string
	localParam   []string

	srv *httptest.Server
}

type createdStatus struct {
	ID             string
	Req            mastodon.PostRequest
	IdempotencyKey string
}

func newFakeInstance(t *testing.T) *fakeInstance {
	f := &fakeInstance{
		self:            mastodon.Account{ID: "1", Acct: "barmaid", Username: "barmaid"},
		ancestors:       make(map[string][]mastodon.Status),
		failCreateAfter: -1,
	}

	mux := http.NewServeMux()
	mux.HandleFunc("GET /api/v1/accounts/verify_credentials", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, f.self)
	})
	mux.HandleFunc("GET /api/v1/notifications", f.listNotifications)
	mux.HandleFunc("GET /api/v1/timelines/public", f.listTimeline)
	mux.HandleFunc("GET /api/v1/statuses/{id}/context", func(w http.ResponseWriter, r *http.Request) {
		f.mu.Lock()
		defer f.mu.Unlock()
		writeJSON(w, mastodon.Context{
			Ancestors:   append([]mastodon.Status{}, f.ancestors[r.PathValue("id")]...),
			Descendants: []mastodon.Status{},
		})
	})
	mux.HandleFunc("POST /api/v1/statuses", f.createStatus)
	mux.HandleFunc("POST /api/v1/statuses/{id}/reblog", func(w http.ResponseWriter, r *http.Request) {
		f.mu.Lock()
		defer f.mu.Unlock()
		f.reblogged = append(f.reblogged, r.PathValue("id"))
		writeJSON(w, map[string]any{"id": "r" + r.PathValue("id"), "reblogged": true})
	})
	mux.HandleFunc("POST /api/v1/notifications/{id}/dismiss", func(w http.ResponseWriter, r *http.Request) {
		f.mu.Lock()
		defer f.mu.Unlock()
		f.dismissed = append(f.dismissed, r.PathValue("id"))
		writeJSON(w, map[string]any{})
	})

	f.srv = httptest.NewServer(mux)
	t.Cleanup(f.srv.Close)
	return f
}

func (f *fakeInstance) client() *mastodon.APIClient {
	return mastodon.NewBearerClient(f.srv.URL, "token1")
}

func writeJSON(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(v)
}

// Writes the page of items following max_id, with a 'Link' header when more remain.
func writePage[T any](w http.ResponseWriter, r *http.Request, items []T, id func(T) string) {
	q := r.URL.Query()
	limit, err := strconv.Atoi(q.Get("limit"))
	if err != nil || limit <= 0 {
		limit = mastodon.MaxPageSize
	}
	start := 0
	if maxID := q.Get("max_id"); maxID != "" {
		start = len(items)
		for i, it := range items {
			if id(it) == maxID {
				start = i + 1
				break
			}
		}
	}
	end := min(start+limit, len(items))
	page := items[start:end]
	if end < len(items) {
		next := url.URL{Scheme: "http", Host: r.Host, Path: r.URL.Path}
		nq := url.Values{}
		nq.Set("max_id", id(page[len(page)-1]))
		next.RawQuery = nq.Encode()
		w.Header().Set("Link", fmt.Sprintf(`<%s>; rel="next"`, next.String()))
	}
	writeJSON(w, page)
}

func (f *fakeInstance) listNotifications(w http.ResponseWriter, r *http.Request) {
	f.mu.Lock()
	defer f.mu.Unlock()

	exclude := r.URL.Query()["exclude_types[]"]
	f.excludeTypes = append(f.excludeTypes, exclude)
	var items []mastodon.Notification
	for _, n := range f.notifications {
		if !slices.Contains(exclude, string(n.Type)) {
			items = append(items, n)
		}
	}
	writePage(w, r, items, func(n mastodon.Notification) string { return n.ID })
}

func (f *fakeInstance) listTimeline(w http.ResponseWriter, r *http.Request) {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.localParam = append(f.localParam, r.URL.Query().Get("local"))
	writePage(w, r, f.timeline, func(s mastodon.Status) string { return s.ID })
}

func (f *fakeInstance) createStatus(w http.ResponseWriter, r *http.Request) {
	f.mu.Lock()
	defer f.mu.Unlock()

	var req mastodon.PostRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Bad Request", http.StatusBadRequest)
		return
	}
	if f.failCreateAfter >= 0 && len(f.created) >= f.failCreateAfter {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusInternalServerError)
		fmt.Fprintln(w, `{"error":"Something went wrong"}`)
		return
	}

	id := fmt.Sprintf("p%d", len(f.created)+1)
	f.created = append(f.created, createdStatus{
		ID:             id,
		Req:            req,
		IdempotencyKey: r.Header.Get("Idempotency-Key"),
	})
	st := mastodon.Status{
		ID:          id,
		CreatedAt:   time.Now(),
		Account:     f.self,
		Content:     req.Text,
		Visibility:  req.Visibility,
		SpoilerText: req.SpoilerText,
	}
	if req.InReplyToID != "" {
		st.InReplyToID = &req.InReplyToID
	}
	writeJSON(w, st)
}

func (f *fakeInstance) createdStatuses() []createdStatus {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]createdStatus{}, f.created...)
}

func mention(id, acct string, vis mastodon.Visibility, content string, age time.Duration) mastodon.Notification {
	acc := mastodon.Account{ID: "a-" + acct, Acct: acct}
	created := time.Now().Add(-age)
	return mastodon.Notification{
		ID:        id,
		Type:      mastodon.NotificationMention,
		CreatedAt: created,
		Account:   acc,
		Status: &mastodon.Status{
			ID:         "s" + id,
			CreatedAt:  created,
			Account:    acc,
			Content:    content,
			Visibility: vis,
		},
	}
}

func follow(id, acct string, age time.Duration) mastodon.Notification {
	return mastodon.Notification{
		ID:        id,
		Type:      mastodon.NotificationFollow,
		CreatedAt: time.Now().Add(-age),
		Account:   mastodon.Account{ID: "a-" + acct, Acct: acct},
	}
}
