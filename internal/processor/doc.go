// Package processor starts an interactive board session. It loads the
// system, opens the speech backend and hands the board to either the
// window or the terminal presentation layer.
package processor
