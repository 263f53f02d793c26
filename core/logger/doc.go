// Package logger builds the application's zap logger.
//
// New picks the development or production zap configuration from the configured
// level and encodes entries as json or console.
//
// # Scoped Loggers
//
// WithRayID attaches the request's ray id (set by the rayid middleware) so every
// line logged while serving one request can be correlated. ForSync attaches the
// user and platform of a library synchronization.
//
// # Usage
//
//	log, _ := logger.New(&logger.Config{Level: "info"})
//	l := logger.ForSync(log, "u1", "steam")
//	l.Info("Library fetched", zap.Int("games", n))
package logger
