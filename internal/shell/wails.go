package shell

import (
	"context"
	"fmt"

	"github.com/wailsapp/wails/v2/pkg/runtime"
)

// WailsHost adapts the context Wails passes to OnStartup. Wails v2 has a
// single window, reachable only through that context.
type WailsHost struct {
	ctx context.Context
}

func NewWailsHost(ctx context.Context) *WailsHost {
	return &WailsHost{ctx: ctx}
}

// Window returns the Wails window for MainWindow. The runtime stores its
// frontend under the "frontend" key; without it every runtime call would
// abort the process, so its absence counts as a missing window.
func (h *WailsHost) Window(name string) (Window, error) {
	if name != MainWindow {
		return nil, fmt.Errorf("%q: %w", name, ErrWindowNotFound)
	}
	if h.ctx == nil || h.ctx.Value("frontend") == nil {
		return nil, fmt.Errorf("%q: no frontend in startup context: %w", name, ErrWindowNotFound)
	}
	return &wailsWindow{ctx: h.ctx}, nil
}

type wailsWindow struct {
	ctx context.Context
}

func (w *wailsWindow) SetTitle(title string) {
	runtime.WindowSetTitle(w.ctx, title)
}

// OpenDevTools is a no-op at runtime: Wails v2 opens the inspector from
// options.Debug.OpenInspectorOnStartup, which main sets from the same flag.
func (w *wailsWindow) OpenDevTools() {
	log.Info("web inspector enabled for this build")
}
