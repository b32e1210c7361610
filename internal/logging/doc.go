// Package logging configures slog for htmldicts. By default structured logs go
// to stderr at the configured level; with --debug they also go to a
// size-rotated JSON file under ~/.htmldicts/logs/ that `htmldicts logs` can
// tail.
package logging
