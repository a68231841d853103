// Package shell runs the desktop shell's one-time startup sequence: find the
// main window, title it, open devtools in debug builds and announce where the
// front-end is pointed. It also owns the server URL handed to the webview.
package shell

import (
	"errors"
	"fmt"
	"io"
	"os"
	"sync"
	"sync/atomic"

	logging "github.com/ipfs/go-log/v2"
)

var log = logging.Logger("shell")

// MainWindow is the name of the application's primary window.
const MainWindow = "main"

var (
	ErrWindowNotFound = errors.New("window not found")
	ErrAlreadyStarted = errors.New("shell already started")
)

type State int32

const (
	Starting State = iota
	Running
)

func (s State) String() string {
	switch s {
	case Starting:
		return "starting"
	case Running:
		return "running"
	default:
		return fmt.Sprintf("State(%d)", int32(s))
	}
}

// Window is the slice of a native window the shell drives.
type Window interface {
	SetTitle(title string)
	OpenDevTools()
}

// Host resolves windows by name. Window returns an error wrapping
// ErrWindowNotFound when no such window exists.
type Host interface {
	Window(name string) (Window, error)
}

type Options struct {
	Title     string
	ServerURL string
	Version   string
	Session   string
	DevTools  bool

	// Banner receives the startup lines. Nil means os.Stdout.
	Banner io.Writer
}

type Shell struct {
	opts Options

	mu    sync.Mutex
	state atomic.Int32

	serverURL atomic.Pointer[string]
}

func New(opts Options) *Shell {
	if opts.Banner == nil {
		opts.Banner = os.Stdout
	}
	s := &Shell{opts: opts}
	s.SetServerURL(opts.ServerURL)
	return s
}

// Start runs the startup sequence once. On error nothing has been changed on
// the window and the shell stays in Starting; callers treat that as fatal.
func (s *Shell) Start(host Host) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.State() == Running {
		return ErrAlreadyStarted
	}

	win, err := host.Window(MainWindow)
	if err != nil {
		return fmt.Errorf("resolve %q window: %w", MainWindow, err)
	}
	if win == nil {
		return fmt.Errorf("resolve %q window: %w", MainWindow, ErrWindowNotFound)
	}

	win.SetTitle(s.opts.Title)

	if s.opts.DevTools {
		win.OpenDevTools()
		log.Debug("devtools opened")
	}

	s.printBanner()

	s.state.Store(int32(Running))
	log.Infof("started (session %s)", s.opts.Session)
	return nil
}

func (s *Shell) printBanner() {
	fmt.Fprintf(s.opts.Banner, "🚀 %s %s starting (session %s)\n", s.opts.Title, s.opts.Version, s.opts.Session)
	fmt.Fprintf(s.opts.Banner, "📡 Connecting to: %s\n", s.ServerURL())
}

func (s *Shell) State() State { return State(s.state.Load()) }

// ServerURL is what the front-end receives from GetServerURL.
func (s *Shell) ServerURL() string {
	if p := s.serverURL.Load(); p != nil {
		return *p
	}
	return ""
}

func (s *Shell) SetServerURL(u string) {
	s.serverURL.Store(&u)
}
