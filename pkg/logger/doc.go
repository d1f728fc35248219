// Package logger builds the service's *slog.Logger and keeps attribute names
// consistent across packages.
//
// New applies functional options on top of production defaults (JSON, INFO)
// and wraps the handler with LogHandlerDecorator, which pulls request-scoped
// values such as the request id out of context.Context on every record:
//
//	log := logger.New(
//	    logger.WithEnvironment("production", "attendance-report"),
//	    logger.WithContextExtractors(requestid.LoggerExtractor()),
//	)
//	log.InfoContext(ctx, "report sent",
//	    logger.Component("dispatcher"),
//	    logger.Recipients(addrs),
//	    logger.Duration(time.Since(start)),
//	)
//
// Attribute helpers return an empty slog.Attr for nil input, so
// logger.Error(err) can be passed without a nil check.
package logger
