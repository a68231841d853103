package frontend

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gorilla/websocket"
)

func TestSocketURL(t *testing.T) {
	cases := []struct{ in, want string }{
		{"https://my-messenger-9g2n.onrender.com", "wss://my-messenger-9g2n.onrender.com/socket.io/?EIO=4&transport=websocket"},
		{"http://127.0.0.1:3000/", "ws://127.0.0.1:3000/socket.io/?EIO=4&transport=websocket"},
		{"https://chat.example.org/app?x=1#frag", "wss://chat.example.org/app/socket.io/?EIO=4&transport=websocket"},
	}
	for _, c := range cases {
		got, err := SocketURL(c.in)
		if err != nil {
			t.Fatalf("%s: %v", c.in, err)
		}
		if got != c.want {
			t.Fatalf("SocketURL(%q) = %q, want %q", c.in, got, c.want)
		}
	}

	if _, err := SocketURL("ftp://example.com"); err == nil {
		t.Fatal("expected error for ftp scheme")
	}
}

func socketServer(t *testing.T, open string) *httptest.Server {
	t.Helper()
	up := websocket.Upgrader{CheckOrigin: func(*http.Request) bool { return true }}
	mux := http.NewServeMux()
	mux.HandleFunc("/socket.io/", func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Query().Get("EIO") != "4" {
			http.Error(w, "bad EIO", http.StatusBadRequest)
			return
		}
		c, err := up.Upgrade(w, r, nil)
		if err != nil {
			return
		}
		defer c.Close()
		c.WriteMessage(websocket.TextMessage, []byte(open))
		c.ReadMessage()
	})
	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)
	return srv
}

func TestProbeOK(t *testing.T) {
	srv := socketServer(t, `0{"sid":"abc","upgrades":[],"pingInterval":25000}`)
	if err := Probe(context.Background(), srv.URL, 2*time.Second); err != nil {
		t.Fatal(err)
	}
}

func TestProbeUnexpectedPacket(t *testing.T) {
	srv := socketServer(t, "hello")
	if err := Probe(context.Background(), srv.URL, 2*time.Second); err == nil {
		t.Fatal("expected error for non-open packet")
	}
}

func TestProbeNoWebsocket(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	defer srv.Close()
	if err := Probe(context.Background(), srv.URL, 2*time.Second); err == nil {
		t.Fatal("expected error when endpoint is not a websocket")
	}
}
