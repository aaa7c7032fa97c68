// Package log provides the leveled, printf-style logger used by reactloop.
//
// The default implementation wraps github.com/kataras/golog:
//
//	logger := log.NewDefaultLogger(log.LogLevelInfo)
//	logger.Info("run %s started", runID)
//
// Wrap a configured golog logger to control output and formatting:
//
//	glogger := golog.New()
//	glogger.SetPrefix("[agent] ")
//	logger := log.NewGologLogger(glogger)
//	logger.SetLevel(log.LogLevelDebug)
//
// Use [NewNopLogger] to silence logging in tests.
package log
