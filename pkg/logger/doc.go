// Package logger builds *slog.Logger values with functional options and
// injects request-scoped values from context.Context into every record.
//
// New selects a text or JSON handler and wraps it in LogHandlerDecorator,
// which runs the registered ContextExtractor callbacks on each Handle call.
// Environment presets set level, format and the service/env attributes:
//
//	log := logger.New(
//	    logger.WithEnvironment(environment.Parse(cfg.AppEnv), "commitment"),
//	    logger.WithContextExtractors(requestid.LoggerExtractor()),
//	)
//	logger.SetAsDefault(log)
//
// Attribute helpers in attr.go keep key names consistent across packages:
//
//	log.InfoContext(ctx, "email sent",
//	    logger.Provider("resend"),
//	    logger.MessageID(res.ID),
//	    logger.ClientIP(ip),
//	)
//
// Error, Errors, RequestID, ClientIP and MessageID return an empty Attr for
// nil or empty input, so callers need no guard:
//
//	log.Info("operation finished", logger.Error(err))
package logger
