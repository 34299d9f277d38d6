// Package logger builds structured loggers on top of log/slog.
//
// New assembles a *slog.Logger from options: output format, level, static
// attributes and context extractors that copy request-scoped values (request
// id, user id) onto every record logged with a *Context method.
//
//	log := logger.New(
//		logger.WithProduction("authkit"),
//		logger.WithContextExtractors(requestIDExtractor),
//	)
//
//	log.InfoContext(ctx, "user logged in",
//		logger.Component("auth"),
//		logger.UserID(u.ID),
//	)
//
// Attribute helpers return the zero slog.Attr for empty input, so calls like
// log.Warn("msg", logger.Error(err)) need no nil checks: slog drops empty attrs.
//
// Never log raw secrets. Passwords, remember tokens and cookie payloads must not
// reach any attribute helper.
package logger
