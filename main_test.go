package main

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"net/url"
	"os"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/klauspost/compress/zstd"

	"github.com/Zachkp/portfolio/internal/config"
	"github.com/Zachkp/portfolio/internal/contact"
	"github.com/Zachkp/portfolio/internal/skills"
	"github.com/Zachkp/portfolio/internal/store"
)

func TestMain(m *testing.M) {
	gin.SetMode(gin.TestMode)
	os.Exit(m.Run())
}

type fakeRelay struct {
	sent []contact.Form
	err  error
}

func (f *fakeRelay) Send(form contact.Form) error {
	if f.err != nil {
		return f.err
	}
	f.sent = append(f.sent, form)
	return nil
}

func newTestSite(t *testing.T, relay contact.Relay) (*site, *gin.Engine) {
	t.Helper()
	db, err := store.Open(":memory:")
	if err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { _ = db.Close() })

	cfg := config.Config{FrameHz: 60, AdminUsername: "root", AdminPassword: "hunter2"}
	s := newSite(cfg, db, skills.Default(), relay)
	return s, setupRouter(s)
}

func do(r http.Handler, req *http.Request) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func postForm(path string, form url.Values) *http.Request {
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	return req
}

func TestIndexRendersPlaceholderGrid(t *testing.T) {
	s, r := newTestSite(t, &fakeRelay{})

	w := do(r, httptest.NewRequest(http.MethodGet, "/", nil))
	if w.Code != http.StatusOK {
		t.Fatalf("GET / = %d", w.Code)
	}
	body := w.Body.String()
	for _, want := range []string{`data-id="0"`, `data-id="28"`, `title="React"`, `data-ws="/ws/bubbles"`, "width: 48px", "<h3>Backend</h3>", "<li>Problem Solving</li>"} {
		if !strings.Contains(body, want) {
			t.Errorf("index missing %q", want)
		}
	}
	if strings.Contains(body, "translate(") {
		t.Error("placeholder grid should not be positioned")
	}

	deadline := time.Now().Add(2 * time.Second)
	for {
		visits, _ := s.db.RecentVisitors(context.Background(), 10)
		if len(visits) == 1 && visits[0].Path == "/" && len(visits[0].HashedIP) == 16 {
			break
		}
		if time.Now().After(deadline) {
			t.Fatalf("visit not recorded: %+v", visits)
		}
		time.Sleep(10 * time.Millisecond)
	}
}

func TestDoNotTrackSkipsVisit(t *testing.T) {
	s, r := newTestSite(t, &fakeRelay{})
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("DNT", "1")
	do(r, req)
	do(r, httptest.NewRequest(http.MethodGet, "/healthz", nil))

	time.Sleep(50 * time.Millisecond)
	visits, _ := s.db.RecentVisitors(context.Background(), 10)
	if len(visits) != 0 {
		t.Errorf("recorded %d visits, want 0", len(visits))
	}
}

func TestTimelineFragments(t *testing.T) {
	_, r := newTestSite(t, &fakeRelay{})
	tests := map[string]string{
		"/work-content":      "Presentation Expert",
		"/education-content": "Western Governors University",
		"/contact-form":      `name="fullName"`,
	}
	for path, want := range tests {
		w := do(r, httptest.NewRequest(http.MethodGet, path, nil))
		if w.Code != http.StatusOK || !strings.Contains(w.Body.String(), want) {
			t.Errorf("GET %s = %d, missing %q", path, w.Code, want)
		}
	}
}

func TestHealthz(t *testing.T) {
	_, r := newTestSite(t, &fakeRelay{})
	w := do(r, httptest.NewRequest(http.MethodGet, "/healthz", nil))
	var body struct {
		Status string `json:"status"`
		Skills int    `json:"skills"`
		Live   int64  `json:"live_sessions"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
		t.Fatal(err)
	}
	if body.Status != "ok" || body.Skills != 29 || body.Live != 0 {
		t.Errorf("healthz = %+v", body)
	}
}

func TestContactDelivers(t *testing.T) {
	relay := &fakeRelay{}
	s, r := newTestSite(t, relay)

	w := do(r, postForm("/contact", url.Values{
		"fullName": {"Ada Lovelace"},
		"email":    {"ada@example.com"},
		"message":  {"Nice bubbles"},
	}))
	if !strings.Contains(w.Body.String(), "Thank you for your message") {
		t.Fatalf("body = %s", w.Body.String())
	}
	if len(relay.sent) != 1 || relay.sent[0].FullName != "Ada Lovelace" {
		t.Errorf("relay got %+v", relay.sent)
	}
	msgs, _ := s.db.RecentMessages(context.Background(), 10)
	if len(msgs) != 1 || !msgs[0].Delivered {
		t.Errorf("stored messages = %+v", msgs)
	}
}

func TestContactRelayFailureKeepsMessage(t *testing.T) {
	s, r := newTestSite(t, &fakeRelay{err: errors.New("smtp down")})

	w := do(r, postForm("/contact", url.Values{
		"fullName": {"Bob"},
		"email":    {"bob@example.com"},
		"message":  {"hello"},
	}))
	if !strings.Contains(w.Body.String(), "error sending your message") {
		t.Fatalf("body = %s", w.Body.String())
	}
	msgs, _ := s.db.RecentMessages(context.Background(), 10)
	if len(msgs) != 1 || msgs[0].Delivered {
		t.Errorf("stored messages = %+v", msgs)
	}
}

func TestContactRejectsInvalidForm(t *testing.T) {
	relay := &fakeRelay{}
	s, r := newTestSite(t, relay)

	w := do(r, postForm("/contact", url.Values{
		"fullName": {"Eve"},
		"email":    {"not-an-email"},
		"message":  {"hi"},
	}))
	if !strings.Contains(w.Body.String(), "valid email") {
		t.Fatalf("body = %s", w.Body.String())
	}
	if len(relay.sent) != 0 {
		t.Error("invalid form was relayed")
	}
	msgs, _ := s.db.RecentMessages(context.Background(), 10)
	if len(msgs) != 0 {
		t.Error("invalid form was stored")
	}
}

func login(t *testing.T, r http.Handler, user, pass string) *httptest.ResponseRecorder {
	t.Helper()
	return do(r, postForm("/admin/login", url.Values{"username": {user}, "password": {pass}}))
}

func TestAdminLoginAndDashboard(t *testing.T) {
	_, r := newTestSite(t, &fakeRelay{})

	if w := login(t, r, "root", "wrong"); w.Code != http.StatusUnauthorized {
		t.Errorf("bad login = %d", w.Code)
	}

	w := do(r, httptest.NewRequest(http.MethodGet, "/admin/dashboard", nil))
	if w.Code != http.StatusFound || w.Header().Get("Location") != "/admin/login" {
		t.Errorf("unauthenticated dashboard = %d %q", w.Code, w.Header().Get("Location"))
	}

	w = login(t, r, "root", "hunter2")
	if w.Code != http.StatusFound {
		t.Fatalf("login = %d", w.Code)
	}
	cookies := w.Result().Cookies()
	if len(cookies) == 0 || cookies[0].Name != "admin_token" {
		t.Fatalf("no admin cookie: %v", cookies)
	}

	req := httptest.NewRequest(http.MethodGet, "/admin/dashboard", nil)
	req.AddCookie(cookies[0])
	w = do(r, req)
	if w.Code != http.StatusOK || !strings.Contains(w.Body.String(), "Bubble sessions") {
		t.Errorf("dashboard = %d", w.Code)
	}

	for _, path := range []string{"/admin/visitors", "/admin/messages", "/admin/api/stats"} {
		req := httptest.NewRequest(http.MethodGet, path, nil)
		req.AddCookie(cookies[0])
		if w := do(r, req); w.Code != http.StatusOK {
			t.Errorf("GET %s = %d", path, w.Code)
		}
	}
}

func TestAdminExportZstd(t *testing.T) {
	s, r := newTestSite(t, &fakeRelay{})
	_, _ = s.db.RecordMessage(context.Background(), store.Message{Name: "Ada", Email: "ada@example.com", Body: "hi"})

	cookie := &http.Cookie{Name: "admin_token", Value: s.admin.token}
	req := httptest.NewRequest(http.MethodGet, "/admin/export/stats?format=zst", nil)
	req.AddCookie(cookie)
	w := do(r, req)
	if w.Code != http.StatusOK {
		t.Fatalf("export = %d", w.Code)
	}

	dec, err := zstd.NewReader(nil)
	if err != nil {
		t.Fatal(err)
	}
	defer dec.Close()
	raw, err := dec.DecodeAll(w.Body.Bytes(), nil)
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	var stats store.Stats
	if err := json.Unmarshal(raw, &stats); err != nil {
		t.Fatal(err)
	}
	if stats.Messages != 1 {
		t.Errorf("exported messages = %d", stats.Messages)
	}
}

func TestHashIPIsStableAndSalted(t *testing.T) {
	a := newAdmin("u", "p")
	b := newAdmin("u", "p")
	if a.hashIP("10.0.0.1") != a.hashIP("10.0.0.1") {
		t.Error("hash not stable within a process")
	}
	if a.hashIP("10.0.0.1") == b.hashIP("10.0.0.1") {
		t.Error("different salts produced the same hash")
	}
	if strings.Contains(a.hashIP("10.0.0.1"), "10.0.0.1") || len(a.hashIP("10.0.0.1")) != 16 {
		t.Error("hash leaks or has wrong length")
	}
}
