// Package app wires a validated Config into a running program: logging,
// the board session, optional metrics and relay endpoints, audio cues, and
// either the terminal UI or a headless run that prints the result.
package app
