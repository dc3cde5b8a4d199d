// Package cli provides command-line interface setup and configuration
// for the sgs application. It handles flag parsing, command creation and
// configuration management using cobra and viper, and implements the
// non-interactive subcommands.
package cli
