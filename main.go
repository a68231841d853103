// main.go
package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/my-messenger/desktop/internal/config"
	"github.com/my-messenger/desktop/internal/logbuf"

	"github.com/wailsapp/wails/v2"
	"github.com/wailsapp/wails/v2/pkg/options"
	"github.com/wailsapp/wails/v2/pkg/options/assetserver"
	"github.com/wailsapp/wails/v2/pkg/options/linux"
)

var (
	showHelp   = flag.Bool("h", false, "Show help")
	version    = flag.Bool("version", false, "Show version")
	cfgFlag    = flag.String("config", "", "Path to shell.json (default: user config dir)")
	serverFlag = flag.String("server", "", "Server URL for this launch only")
)

// appVersion is set at build time via -ldflags "-X main.appVersion=x.y.z"
var appVersion = "dev"

func main() {
	flag.Parse()

	if *version {
		fmt.Printf("My Messenger desktop v%s\n", appVersion)
		return
	}

	if *showHelp {
		showUsage()
		return
	}

	if flag.NArg() > 0 {
		fmt.Fprintf(os.Stderr, "Error: unexpected argument '%s'\n", flag.Arg(0))
		fmt.Fprintln(os.Stderr)
		showUsage()
		os.Exit(1)
	}

	runDesktopApp()
}

func runDesktopApp() {
	cfgPath, cfg, err := resolveConfig(*cfgFlag, *serverFlag)
	if err != nil {
		fatal(err)
	}

	if err := logbuf.Setup(cfg.Debug.LogLevel); err != nil {
		fatal(fmt.Errorf("logging: %w", err))
	}

	app, err := NewApp(cfgPath, cfg, *serverFlag != "")
	if err != nil {
		fatal(err)
	}

	if err := wails.Run(appOptions(app, cfg)); err != nil {
		fatal(fmt.Errorf("run loop: %w", err))
	}
}

// resolveConfig loads (or creates) the config file and applies the -server
// override, which is never written back.
func resolveConfig(cfgPath, serverOverride string) (string, config.Config, error) {
	if cfgPath == "" {
		p, err := config.DefaultPath()
		if err != nil {
			return "", config.Config{}, fmt.Errorf("locate config dir: %w", err)
		}
		cfgPath = p
	}

	cfg, _, err := config.Ensure(cfgPath)
	if err != nil {
		return "", config.Config{}, fmt.Errorf("config %s: %w", cfgPath, err)
	}

	if serverOverride != "" {
		if err := config.ValidateServerURL(serverOverride); err != nil {
			return "", config.Config{}, fmt.Errorf("-server: %w", err)
		}
		cfg.Server.URL = serverOverride
	}
	return cfgPath, cfg, nil
}

func appOptions(app *App, cfg config.Config) *options.App {
	return &options.App{
		Title:     cfg.Window.Title,
		Width:     cfg.Window.Width,
		Height:    cfg.Window.Height,
		MinWidth:  cfg.Window.MinWidth,
		MinHeight: cfg.Window.MinHeight,

		AssetServer: &assetserver.Options{
			Handler: app.proxy,
		},

		BackgroundColour: options.NewRGB(15, 17, 21),

		Linux: &linux.Options{
			ProgramName: "my-messenger",
		},

		SingleInstanceLock: &options.SingleInstanceLock{
			UniqueId:               "com.mymessenger.desktop",
			OnSecondInstanceLaunch: app.onSecondInstance,
		},

		Debug: options.Debug{
			OpenInspectorOnStartup: devtoolsEnabled,
		},

		Logger: logbuf.NewWailsLogger(),

		OnStartup:  app.startup,
		OnShutdown: app.shutdown,
		Bind:       []any{app},
	}
}

// fatal reports an unrecoverable startup error and exits non-zero.
func fatal(err error) {
	fmt.Fprintf(os.Stderr, "my-messenger: fatal: %v\n", err)
	os.Exit(1)
}

func showUsage() {
	fmt.Println("My Messenger - desktop client")
	fmt.Println()
	fmt.Println("Usage:")
	fmt.Println("  my-messenger [options]")
	fmt.Println()
	fmt.Println("Options:")
	fmt.Println("  -config <path>  Shell config file (default: <user config dir>/my-messenger/shell.json)")
	fmt.Println("  -server <url>   Use this server URL for this launch only")
	fmt.Println("  -h              Show this help message")
	fmt.Println("  -version        Show version information")
	fmt.Println()
	fmt.Println("Developer tools open automatically in debug builds (wails dev, wails build -debug).")
}
