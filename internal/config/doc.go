// Package config defines the configuration structure for the taskrunner.
//
// Configuration is organized into logical sections. Defaults come from the
// `default` struct tags (creasty/defaults). The command line binds every
// field to a flag and to a TASKRUNNER_* environment variable. An optional
// config file, read with viper, uses the flag names as keys.
//
// Precedence: flag, then environment, then config file, then default.
//
// # Configuration Structure
//
//	Configuration
//	├── Server         - HTTP server settings
//	├── Runner         - Queue and Cargo sizing
//	├── Target         - Where dispatched items are posted
//	├── Auth           - API authentication
//	├── Store          - Dispatch journal location
//	├── LogFormat      - Logging format
//	└── LogLevel       - Logging verbosity
//
// # Server Configuration
//
//	┌──────────────────┬─────────┬────────────────────────────────────────┐
//	│ Field            │ Default │ Description                            │
//	├──────────────────┼─────────┼────────────────────────────────────────┤
//	│ ServerMode       │ "dev"   │ Server mode: "prod" or "dev"           │
//	│ HTTPPort         │ 8000    │ HTTP server listen port                │
//	│ ShutdownTimeout  │ 10s     │ Grace period for in-flight requests    │
//	└──────────────────┴─────────┴────────────────────────────────────────┘
//
// # Runner Configuration
//
//	┌──────────────────┬─────────┬────────────────────────────────────────┐
//	│ Field            │ Default │ Description                            │
//	├──────────────────┼─────────┼────────────────────────────────────────┤
//	│ QueueConcurrency │ 10      │ Items the queue sends at once          │
//	│ CargoBatchSize   │ 10      │ Items per cargo request                │
//	│ CargoConcurrency │ 1       │ Cargo requests in flight at once       │
//	└──────────────────┴─────────┴────────────────────────────────────────┘
//
// # Target Configuration
//
//	┌───────────────┬─────────┬───────────────────────────────────────────┐
//	│ Field         │ Default │ Description                               │
//	├───────────────┼─────────┼───────────────────────────────────────────┤
//	│ URL           │ ""      │ Target endpoint (required)                │
//	│ JWTFilePath   │ ""      │ File holding a bearer token for the target│
//	│ MaxTries      │ 3       │ Attempts per request                      │
//	│ RetryInterval │ 200ms   │ First backoff interval                    │
//	│ Timeout       │ 30s     │ Per-attempt HTTP timeout                  │
//	└───────────────┴─────────┴───────────────────────────────────────────┘
//
// # Authentication Configuration
//
//	┌────────────────┬─────────┬──────────────────────────────────────────┐
//	│ Field          │ Default │ Description                              │
//	├────────────────┼─────────┼──────────────────────────────────────────┤
//	│ Enabled        │ false   │ Require an HS256 bearer token on the API │
//	│ SecretFilePath │ ""      │ File holding the HMAC secret             │
//	└────────────────┴─────────┴──────────────────────────────────────────┘
//
// # Store Configuration
//
//	┌────────────┬─────────┬──────────────────────────────────────────────┐
//	│ Field      │ Default │ Description                                  │
//	├────────────┼─────────┼──────────────────────────────────────────────┤
//	│ DataFolder │ ""      │ DuckDB folder, in-memory when empty          │
//	│ Retention  │ 168h    │ Journal entries older than this are pruned   │
//	└────────────┴─────────┴──────────────────────────────────────────────┘
//
// # Code Generation
//
// Functional option helpers are generated with optgen:
//
//	//go:generate go run github.com/ecordell/optgen -output zz_generated.configuration.go . Configuration Server Runner Target Authentication Store
//
// Each section gets New<Section>WithOptions, New<Section>WithOptionsAndDefaults,
// a With<Field> option per field, ToOption and DebugMap:
//
//	runner := config.NewRunnerWithOptionsAndDefaults(
//	    config.WithCargoBatchSize(50),
//	)
//	cfg.WithOptions(config.WithRunner(*runner))
//
// Every field carries a debugmap tag, so the whole configuration can be
// logged at startup:
//
//	zap.S().Infow("configuration loaded", "config", cfg.DebugMap())
package config
