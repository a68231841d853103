// Package logbuf wires the shell's subsystem loggers and keeps the most
// recent log lines in memory so the web front-end can show them.
package logbuf

import (
	"bytes"
	"strings"
	"sync"
	"time"

	logging "github.com/ipfs/go-log/v2"

	"github.com/my-messenger/desktop/internal/util"
)

// Subsystems owned by the shell. Their level follows debug.log_level.
var Subsystems = []string{"shell", "config", "frontend", "wails"}

// Setup configures go-log for plaintext output on stderr at the given level
// ("debug", "info", "warn" or "error").
func Setup(level string) error {
	lvl, err := logging.LevelFromString(level)
	if err != nil {
		return err
	}
	subs := make(map[string]logging.LogLevel, len(Subsystems))
	for _, s := range Subsystems {
		subs[s] = lvl
	}
	logging.SetupLogging(logging.Config{
		Format:          logging.PlaintextOutput,
		Stderr:          true,
		Level:           logging.LevelError,
		SubsystemLevels: subs,
	})
	return nil
}

type Entry struct {
	TS  time.Time `json:"ts"`
	Msg string    `json:"msg"`
}

type Buffer struct {
	mu      sync.Mutex
	entries *util.RingBuffer[Entry] // nil when no history is kept
	subs    map[chan Entry]struct{}
	partial bytes.Buffer
}

// New returns a buffer keeping the last max lines. max <= 0 keeps no
// history; subscribers still receive new lines.
func New(max int) *Buffer {
	b := &Buffer{subs: make(map[chan Entry]struct{})}
	if max > 0 {
		b.entries = util.NewRingBuffer[Entry](max)
	}
	return b
}

// Write implements io.Writer, so a logging.PipeReader can be drained into it
// with io.Copy. Input is split on newlines; a trailing partial line is held
// until its newline arrives. Blank lines are dropped.
func (b *Buffer) Write(p []byte) (int, error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.partial.Write(p)
	for {
		data := b.partial.Bytes()
		i := bytes.IndexByte(data, '\n')
		if i < 0 {
			break
		}
		line := strings.TrimRight(string(data[:i]), "\r")
		b.partial.Next(i + 1)
		if strings.TrimSpace(line) == "" {
			continue
		}
		b.addLocked(Entry{TS: time.Now(), Msg: line})
	}
	return len(p), nil
}

func (b *Buffer) addLocked(e Entry) {
	if b.entries != nil {
		b.entries.Push(e)
	}
	for ch := range b.subs {
		select {
		case ch <- e:
		default:
			// slow subscriber, drop
		}
	}
}

func (b *Buffer) Snapshot() []Entry {
	if b.entries == nil {
		return []Entry{}
	}
	return b.entries.Snapshot()
}

// Subscribe returns a channel of new entries. cancel closes it.
func (b *Buffer) Subscribe() (ch chan Entry, cancel func()) {
	ch = make(chan Entry, 64)

	b.mu.Lock()
	b.subs[ch] = struct{}{}
	b.mu.Unlock()

	cancel = func() {
		b.mu.Lock()
		if _, ok := b.subs[ch]; ok {
			delete(b.subs, ch)
			close(ch)
		}
		b.mu.Unlock()
	}
	return ch, cancel
}
