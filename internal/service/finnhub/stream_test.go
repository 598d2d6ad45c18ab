package finnhub

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	applogger "SignalPull/pkg/logger"

	"github.com/gorilla/websocket"
)

func streamLogger(t *testing.T) *applogger.Logger {
	t.Helper()
	l, err := applogger.New(&applogger.Config{Level: "error", Format: "json", Output: "stderr"})
	if err != nil {
		t.Fatalf("logger: %v", err)
	}
	return l
}

// pingCounts tallies keepalive pings per accepted connection.
type pingCounts struct {
	mu     sync.Mutex
	counts []int
}

func (p *pingCounts) newConn() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.counts = append(p.counts, 0)
	return len(p.counts) - 1
}

func (p *pingCounts) inc(i int) {
	p.mu.Lock()
	p.counts[i]++
	p.mu.Unlock()
}

func (p *pingCounts) get(i int) int {
	p.mu.Lock()
	defer p.mu.Unlock()
	if i >= len(p.counts) {
		return 0
	}
	return p.counts[i]
}

func (p *pingCounts) conns() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return len(p.counts)
}

// wsTestServer accepts connections and counts pings; it reads until the
// peer goes away so control frames keep being processed.
func wsTestServer(t *testing.T, pc *pingCounts) *httptest.Server {
	t.Helper()
	up := websocket.Upgrader{}
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		c, err := up.Upgrade(w, r, nil)
		if err != nil {
			return
		}
		defer c.Close()
		idx := pc.newConn()
		c.SetPingHandler(func(string) error {
			pc.inc(idx)
			return nil
		})
		for {
			if _, _, err := c.ReadMessage(); err != nil {
				return
			}
		}
	}))
}

func TestReconnectDoesNotStackPingers(t *testing.T) {
	pc := &pingCounts{}
	srv := wsTestServer(t, pc)
	defer srv.Close()
	wsURL := "ws" + strings.TrimPrefix(srv.URL, "http")

	const interval = 20 * time.Millisecond
	const window = 150 * time.Millisecond

	s := NewStream("key", wsURL, []string{"AAPL"}, time.Millisecond, interval, streamLogger(t)).(*Stream)
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	defer s.Close()

	if err := s.Connect(ctx); err != nil {
		t.Fatalf("connect: %v", err)
	}
	if err := s.Subscribe(ctx); err != nil {
		t.Fatalf("subscribe: %v", err)
	}
	_, errs := s.Read(ctx)
	time.Sleep(window)

	// end the first session and wait for its reader to report
	_ = s.Close()
	select {
	case <-errs:
	case <-time.After(time.Second):
		t.Fatalf("first read session did not end")
	}

	if err := s.Reconnect(ctx); err != nil {
		t.Fatalf("reconnect: %v", err)
	}
	_, _ = s.Read(ctx)
	time.Sleep(window)

	if pc.conns() != 2 {
		t.Fatalf("expected 2 server connections, got %d", pc.conns())
	}
	if got := pc.get(0); got < 2 {
		t.Fatalf("first session sent too few pings: %d", got)
	}
	// a stale pinger surviving the reconnect would roughly double the
	// rate on the second connection
	if got := pc.get(1); got < 2 || got > 10 {
		t.Fatalf("second session ping count out of single-pinger range: %d", got)
	}
}

func TestReadPingerStopsWithSession(t *testing.T) {
	pc := &pingCounts{}
	srv := wsTestServer(t, pc)
	defer srv.Close()
	wsURL := "ws" + strings.TrimPrefix(srv.URL, "http")

	s := NewStream("key", wsURL, nil, time.Millisecond, 20*time.Millisecond, streamLogger(t)).(*Stream)
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	if err := s.Connect(ctx); err != nil {
		t.Fatalf("connect: %v", err)
	}
	_, errs := s.Read(ctx)
	time.Sleep(50 * time.Millisecond)

	_ = s.Close()
	select {
	case <-errs:
	case <-time.After(time.Second):
		t.Fatalf("read session did not end")
	}

	settled := pc.get(0)
	time.Sleep(100 * time.Millisecond)
	if got := pc.get(0); got != settled {
		t.Fatalf("pinger kept writing after the session ended: %d -> %d", settled, got)
	}
}

func TestNewStreamDefaults(t *testing.T) {
	s := NewStream("key", "ws://example", nil, 0, 0, streamLogger(t)).(*Stream)
	if s.pingInterval != 30*time.Second {
		t.Fatalf("ping interval default = %s", s.pingInterval)
	}
	if s.reconnectDelay != 5*time.Second {
		t.Fatalf("reconnect delay default = %s", s.reconnectDelay)
	}
}
