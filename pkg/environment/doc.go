// Package environment names the deployment environment (development,
// staging, production) and carries it through context.Context.
//
// Parse turns an APP_ENV value into an Environment. Middleware stores it on
// every request, FromContext reads it back, and LoggerExtractor adds it to
// slog records:
//
//	env := environment.Parse(os.Getenv("APP_ENV"))
//	r.Use(environment.Middleware(env))
//
//	log := logger.New(
//	    logger.WithEnvironment(env, "commitment"),
//	    logger.WithContextExtractors(environment.LoggerExtractor()),
//	)
//
// Missing values are the zero value ("") and never an error.
package environment
