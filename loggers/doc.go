// Package loggers provides hooks that write run events to a log.Logger.
//
//	logger := log.NewDefaultLogger(log.LogLevelDebug)
//	exec := executor.New(agent, executor.DefaultConfig()).
//	    RegisterHook(loggers.NewLoggerHook(logger))
//
// At debug level every prompt and raw model response is logged in full.
package loggers
