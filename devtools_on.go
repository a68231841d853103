//go:build dev || debug

package main

// devtoolsEnabled is true for `wails dev` and `wails build -debug`, which set
// the dev and debug build tags respectively.
const devtoolsEnabled = true
