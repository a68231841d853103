// app.go
package main

import (
	"context"
	"io"
	"strconv"
	"sync"
	"time"

	"github.com/google/uuid"
	logging "github.com/ipfs/go-log/v2"

	"github.com/my-messenger/desktop/internal/config"
	"github.com/my-messenger/desktop/internal/frontend"
	"github.com/my-messenger/desktop/internal/logbuf"
	"github.com/my-messenger/desktop/internal/shell"

	"github.com/wailsapp/wails/v2/pkg/options"
	"github.com/wailsapp/wails/v2/pkg/runtime"
)

var log = logging.Logger("shell")

// App is bound to the webview; its exported methods are callable from the
// front-end as window.go.main.App.<Method>().
type App struct {
	// mu guards ctx, cancel and cfg. Wails calls startup, the second-instance
	// hook and the bound methods from different goroutines.
	mu      sync.RWMutex
	ctx     context.Context
	cancel  context.CancelFunc
	cfgPath string
	cfg     config.Config

	// serverPinned is set when -server overrides server.url; reloads then
	// leave the URL alone.
	serverPinned bool

	session string
	shell   *shell.Shell
	proxy   *frontend.Proxy
	logs    *logbuf.Buffer
	pipe    *logging.PipeReader

	// fatal ends the process; replaced in tests.
	fatal func(error)
}

func NewApp(cfgPath string, cfg config.Config, serverPinned bool) (*App, error) {
	session := uuid.NewString()

	proxy, err := frontend.NewProxy(cfg.Server.Frontend(), session)
	if err != nil {
		return nil, err
	}

	a := &App{
		cfgPath:      cfgPath,
		cfg:          cfg,
		serverPinned: serverPinned,
		session:      session,
		proxy:        proxy,
		logs:         logbuf.New(cfg.Debug.LogBuffer),
		pipe:         logging.NewPipeReader(logging.PipeFormat(logging.PlaintextOutput)),
		fatal:        fatal,
		shell: shell.New(shell.Options{
			Title:     cfg.Window.Title,
			ServerURL: cfg.Server.URL,
			Version:   appVersion,
			Session:   session,
			DevTools:  devtoolsEnabled,
		}),
	}
	go func() {
		if _, err := io.Copy(a.logs, a.pipe); err != nil {
			log.Debugf("log capture stopped: %v", err)
		}
	}()
	return a, nil
}

func (a *App) startup(ctx context.Context) {
	runCtx, cancel := context.WithCancel(ctx)

	a.mu.Lock()
	a.ctx, a.cancel = runCtx, cancel
	srv := a.cfg.Server
	a.mu.Unlock()

	if err := a.shell.Start(shell.NewWailsHost(ctx)); err != nil {
		a.fatal(err)
		return
	}

	go a.forwardLogs(runCtx)

	if a.cfgPath != "" {
		if err := config.Watch(runCtx, a.cfgPath, a.applyConfig); err != nil {
			log.Warnf("config watch: %v", err)
		}
	}

	if srv.ProbeOnStartup {
		go a.probe(runCtx, a.shell.ServerURL(), time.Duration(srv.ProbeTimeoutSec)*time.Second)
	}
}

func (a *App) shutdown(ctx context.Context) {
	a.mu.RLock()
	cancel := a.cancel
	a.mu.RUnlock()
	if cancel != nil {
		cancel()
	}
	_ = a.pipe.Close()
	log.Infof("shutdown (session %s)", a.session)
}

// runContext returns the context set by startup, or nil before it ran.
func (a *App) runContext() context.Context {
	a.mu.RLock()
	defer a.mu.RUnlock()
	return a.ctx
}

// onSecondInstance brings the running window forward when the app is
// launched again.
func (a *App) onSecondInstance(data options.SecondInstanceData) {
	log.Infof("second instance launched (args %v)", data.Args)
	ctx := a.runContext()
	if ctx == nil {
		return
	}
	runtime.WindowUnminimise(ctx)
	runtime.WindowShow(ctx)
}

// -------------------------
// Frontend API
// -------------------------

// GetServerURL returns the chat server base URL.
func (a *App) GetServerURL() string {
	return a.shell.ServerURL()
}

func (a *App) GetStatus() map[string]string {
	return map[string]string{
		"state":     a.shell.State().String(),
		"session":   a.session,
		"version":   appVersion,
		"serverURL": a.shell.ServerURL(),
		"frontend":  a.proxy.Target(),
		"devtools":  strconv.FormatBool(devtoolsEnabled),
	}
}

func (a *App) GetLogs() []logbuf.Entry {
	return a.logs.Snapshot()
}

// -------------------------
// Background work
// -------------------------

func (a *App) applyConfig(cfg config.Config) {
	a.mu.Lock()
	a.cfg = cfg
	pinned := a.serverPinned
	a.mu.Unlock()

	if !pinned && cfg.Server.URL != a.shell.ServerURL() {
		a.shell.SetServerURL(cfg.Server.URL)
		log.Infof("server url now %s", cfg.Server.URL)
	}
	if err := a.proxy.SetTarget(cfg.Server.Frontend()); err != nil {
		log.Warnf("frontend target: %v", err)
	}

	if ctx := a.runContext(); ctx != nil {
		runtime.EventsEmit(ctx, "config:changed", map[string]string{
			"serverURL": a.shell.ServerURL(),
			"frontend":  a.proxy.Target(),
		})
	}
}

func (a *App) forwardLogs(ctx context.Context) {
	ch, cancel := a.logs.Subscribe()
	defer cancel()
	for {
		select {
		case <-ctx.Done():
			return
		case e, ok := <-ch:
			if !ok {
				return
			}
			runtime.EventsEmit(ctx, "log:entry", e)
		}
	}
}

func (a *App) probe(ctx context.Context, serverURL string, timeout time.Duration) {
	if err := frontend.Probe(ctx, serverURL, timeout); err != nil {
		log.Warnf("server %s not reachable yet: %v", serverURL, err)
		return
	}
	log.Infof("server %s reachable", serverURL)
}
