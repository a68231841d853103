package logbuf

import (
	logging "github.com/ipfs/go-log/v2"
	"github.com/wailsapp/wails/v2/pkg/logger"
)

// WailsLogger routes the framework's own log output into the "wails"
// subsystem so it lands next to the shell's lines.
type WailsLogger struct {
	l *logging.ZapEventLogger
}

var _ logger.Logger = (*WailsLogger)(nil)

func NewWailsLogger() *WailsLogger {
	return &WailsLogger{l: logging.Logger("wails")}
}

func (w *WailsLogger) Print(message string)   { w.l.Info(message) }
func (w *WailsLogger) Trace(message string)   { w.l.Debug(message) }
func (w *WailsLogger) Debug(message string)   { w.l.Debug(message) }
func (w *WailsLogger) Info(message string)    { w.l.Info(message) }
func (w *WailsLogger) Warning(message string) { w.l.Warn(message) }
func (w *WailsLogger) Error(message string)   { w.l.Error(message) }
func (w *WailsLogger) Fatal(message string)   { w.l.Fatal(message) }
