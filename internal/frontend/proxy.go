// Package frontend serves the remote web front-end inside the Wails webview.
//
// Every asset request the webview makes is reverse-proxied to the configured
// front-end origin. The page keeps the Wails origin, so the runtime and the
// bound App methods stay reachable from script while the HTML, JS and CSS
// come from the remote server.
package frontend

import (
	"fmt"
	"net/http"
	"net/http/httputil"
	"net/url"
	"sync/atomic"

	logging "github.com/ipfs/go-log/v2"

	"github.com/my-messenger/desktop/internal/config"
)

var log = logging.Logger("frontend")

// SessionHeader carries the per-launch session ID on proxied requests.
const SessionHeader = "X-Shell-Session"

type Proxy struct {
	target  atomic.Pointer[url.URL]
	session string
	rp      *httputil.ReverseProxy
}

// NewProxy returns a handler forwarding to target, which must be an absolute
// http(s) URL.
func NewProxy(target string, session string) (*Proxy, error) {
	p := &Proxy{session: session}
	if err := p.SetTarget(target); err != nil {
		return nil, err
	}
	p.rp = &httputil.ReverseProxy{
		Rewrite:      p.rewrite,
		ErrorHandler: p.upstreamError,
	}
	return p, nil
}

// SetTarget swaps the upstream origin. In-flight requests finish against the
// old one.
func (p *Proxy) SetTarget(raw string) error {
	if err := config.ValidateServerURL(raw); err != nil {
		return fmt.Errorf("frontend target: %w", err)
	}
	u, err := url.Parse(raw)
	if err != nil {
		return err
	}
	p.target.Store(u)
	return nil
}

func (p *Proxy) Target() string {
	return p.target.Load().String()
}

func (p *Proxy) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	p.rp.ServeHTTP(w, r)
}

func (p *Proxy) rewrite(pr *httputil.ProxyRequest) {
	pr.SetURL(p.target.Load())
	pr.SetXForwarded()

	// Wails injects its runtime into HTML responses and cannot do that
	// through a compressed body.
	pr.Out.Header.Del("Accept-Encoding")
	if p.session != "" {
		pr.Out.Header.Set(SessionHeader, p.session)
	}
}

func (p *Proxy) upstreamError(w http.ResponseWriter, r *http.Request, err error) {
	origin := p.target.Load()
	log.Warnf("upstream %s%s: %v", origin.Host, r.URL.Path, err)

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.Header().Set("Cache-Control", "no-store")
	w.WriteHeader(http.StatusBadGateway)
	_, _ = w.Write(OfflinePage(origin.Scheme + "://" + origin.Host))
}
