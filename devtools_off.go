//go:build !dev && !debug

package main

// Release build: the web inspector is never opened.
// Build with -tags debug (or run `wails dev`) to enable it.
const devtoolsEnabled = false
