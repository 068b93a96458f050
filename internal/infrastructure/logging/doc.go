// Package logging builds the structured logger homesim passes to its
// packages.
//
// It configures log/slog from the logging section of config.yaml:
//
//	logging:
//	  level: "info"      # debug, info, warn, error
//	  format: "json"     # json, text
//	  output: "stderr"   # stderr, stdout, discard
//
// Every entry carries service and version attributes. Logs default to
// stderr because the CLI prints its JSON results on stdout.
//
//	logger := logging.New(cfg.Logging, version)
//	svc.SetLogger(logger.With("component", "home"))
//
// Attributes named password, token or secret are replaced with
// [REDACTED]. Prefer not logging credentials at all.
package logging
