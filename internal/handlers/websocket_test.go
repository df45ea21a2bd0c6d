package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"
	"time"

	"travelfy/internal/models"
	"travelfy/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
)

// --- parseInterval unit tests ---

func TestParseInterval(t *testing.T) {
	h := NewHandler(&service.Service{}, nil)

	cases := []struct {
		name string
		u    string
		want time.Duration
	}{
		{"default_when_missing", "/ws", 2 * time.Second},
		{"interval_string_valid", "/ws?interval=200ms", 200 * time.Millisecond},
		{"interval_ms_valid", "/ws?interval_ms=150", 150 * time.Millisecond},
		{"interval_too_large", "/ws?interval=60s", 2 * time.Second},
		{"interval_ms_too_large", "/ws?interval_ms=60000", 2 * time.Second},
		{"interval_invalid_string", "/ws?interval=bogus", 2 * time.Second},
		{"both_present_interval_wins", "/ws?interval=3s&interval_ms=150", 3 * time.Second},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			w := httptest.NewRecorder()
			req := httptest.NewRequest(http.MethodGet, tc.u, nil)
			c, _ := gin.CreateTestContext(w)
			c.Request = req
			got := h.parseInterval(c)
			if got != tc.want {
				t.Fatalf("got %v, want %v for %s", got, tc.want, tc.u)
			}
		})
	}
}

// --- websocket integration tests ---

func newWSServer(s *service.Service) *httptest.Server {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	h := NewHandler(s, nil)
	r.GET("/ws", h.wsFeed)
	return httptest.NewServer(r)
}

func wsURL(srv *httptest.Server, rawQuery string) string {
	u, _ := url.Parse(srv.URL)
	u.Scheme = "ws"
	u.Path = "/ws"
	u.RawQuery = rawQuery
	return u.String()
}

func TestWebSocket_PostFeed_InitialAndPeriodic(t *testing.T) {
	session := &mockSession{parseUser: "alice"}
	posts := &mockPosts{list: []models.Post{
		{ID: "p1", UserID: "alice", Title: "Lisbon", Pinned: true},
	}}
	s := &service.Service{Session: session, Posts: posts}

	srv := newWSServer(s)
	defer srv.Close()

	dialer := websocket.Dialer{HandshakeTimeout: 2 * time.Second}
	conn, _, err := dialer.Dial(wsURL(srv, "token=tok&interval_ms=20"), nil)
	if err != nil {
		t.Fatalf("dial error: %v", err)
	}
	defer conn.Close()

	type envelope struct {
		Type  string          `json:"type"`
		Data  json.RawMessage `json:"data"`
		Error string          `json:"error"`
	}

	// Read the initial list
	_ = conn.SetReadDeadline(time.Now().Add(1 * time.Second))
	var env envelope
	if err := conn.ReadJSON(&env); err != nil {
		t.Fatalf("read initial: %v", err)
	}
	if env.Type != "posts" || len(env.Data) == 0 {
		t.Fatalf("bad envelope: %+v", env)
	}
	var list []models.Post
	if err := json.Unmarshal(env.Data, &list); err != nil {
		t.Fatalf("unmarshal posts: %v", err)
	}
	if len(list) != 1 || list[0].ID != "p1" || !list[0].Pinned {
		t.Fatalf("unexpected posts: %+v", list)
	}

	// Read a subsequent tick
	_ = conn.SetReadDeadline(time.Now().Add(1 * time.Second))
	env = envelope{}
	if err := conn.ReadJSON(&env); err != nil {
		t.Fatalf("read second: %v", err)
	}
	if env.Type != "posts" {
		t.Fatalf("expected type=posts, got %+v", env)
	}
}

func TestWebSocket_RejectsMissingToken(t *testing.T) {
	session := &mockSession{parseErr: errors.New("bad token")}
	s := &service.Service{Session: session, Posts: &mockPosts{}}

	srv := newWSServer(s)
	defer srv.Close()

	dialer := websocket.Dialer{HandshakeTimeout: 2 * time.Second}
	_, resp, err := dialer.Dial(wsURL(srv, ""), nil)
	if err == nil {
		t.Fatal("expected dial to fail without a session token")
	}
	if resp == nil || resp.StatusCode != http.StatusUnauthorized {
		t.Fatalf("expected 401 handshake response, got %+v", resp)
	}
}

func TestWebSocket_InitialListError_Closes(t *testing.T) {
	session := &mockSession{parseUser: "alice"}
	posts := &mockPosts{listErr: errors.New("boom")}
	s := &service.Service{Session: session, Posts: posts}

	srv := newWSServer(s)
	defer srv.Close()

	dialer := websocket.Dialer{HandshakeTimeout: 2 * time.Second}
	conn, _, err := dialer.Dial(wsURL(srv, "token=tok"), nil)
	if err != nil {
		t.Fatalf("dial error: %v", err)
	}
	defer conn.Close()

	// The server should close immediately after the initial list fails
	_ = conn.SetReadDeadline(time.Now().Add(500 * time.Millisecond))
	var raw json.RawMessage
	if err := conn.ReadJSON(&raw); err == nil {
		t.Fatalf("expected read error (closed), got message: %s", string(raw))
	}
}
