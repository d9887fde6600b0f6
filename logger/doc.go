// Package logger provides a small factory over log/slog plus attribute
// helpers with consistent keys for idpkit components.
//
//	log := logger.New(
//		logger.WithFormat(logger.FormatJSON),
//		logger.WithLevel(slog.LevelDebug),
//		logger.WithAttr(logger.Component("auth")),
//	)
package logger
