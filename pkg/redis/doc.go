// Package redis connects to Redis with retries and exposes a readiness probe.
//
// Redis is optional: when REDIS_URL is empty Config.Enabled reports false and
// the application keeps its rate limiting state in memory.
//
//	var cfg redis.Config
//	config.MustLoad(&cfg)
//
//	if cfg.Enabled() {
//	    client, err := redis.Connect(ctx, cfg)
//	    if err != nil {
//	        return err
//	    }
//	    defer client.Close()
//	    checks = append(checks, httpserver.HealthCheck{Name: "redis", Check: redis.Healthcheck(client)})
//	}
//
// Connect returns ErrEmptyConnectionURL, ErrFailedToParseRedisConnString or
// ErrRedisNotReady; Healthcheck failures wrap ErrHealthcheckFailed.
package redis
