// Package logging constructs the application's slog loggers.
//
// Two output formats are supported: a human console format for interactive
// use and JSON for machine consumption. Components attach a standardized
// "component" attribute via NewComponentLogger so log lines can be traced
// back to the subsystem that emitted them.
package logging
