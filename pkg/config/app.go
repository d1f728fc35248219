package config

// App holds process-wide settings shared by every command.
type App struct {
	Env         string `env:"APP_ENV" envDefault:"development"`
	ServiceName string `env:"SERVICE_NAME" envDefault:"attendance-report"`
	LogLevel    string `env:"LOG_LEVEL"` // empty: per-environment default
	LogFormat   string `env:"LOG_FORMAT"`
}
