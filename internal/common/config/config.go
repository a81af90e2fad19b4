package config

import "fmt"

// Config is the main application configuration struct.
type Config struct {
	App           AppConfig          `mapstructure:"app"`
	Server        ServerConfig       `mapstructure:"server"`
	Database      DatabaseConfig     `mapstructure:"database"`
	LLM           LLMConfig          `mapstructure:"llm"`
	Browser       BrowserConfig      `mapstructure:"browser"`
	Analysis      AnalysisConfig     `mapstructure:"analysis"`
	Workflow      WorkflowConfig     `mapstructure:"workflow"`
	Notifications NotificationConfig `mapstructure:"notifications"`
	Tracing       TracingConfig      `mapstructure:"tracing"`
	Logging       LoggingConfig      `mapstructure:"logging"`
}

// --- Core App/Infrastructure Config ---

type AppConfig struct {
	Name        string `mapstructure:"name"`
	Version     string `mapstructure:"version"`
	Environment string `mapstructure:"environment"`
}

type ServerConfig struct {
	Address         string `mapstructure:"address"`
	ReadTimeout     int    `mapstructure:"read_timeout"`     // milliseconds
	WriteTimeout    int    `mapstructure:"write_timeout"`    // milliseconds
	ShutdownTimeout int    `mapstructure:"shutdown_timeout"` // milliseconds
}

type DatabaseConfig struct {
	Postgres      PostgresConfig      `mapstructure:"postgres"`
	Elasticsearch ElasticsearchConfig `mapstructure:"elasticsearch"`
	Redis         RedisConfig         `mapstructure:"redis"`
}

type PostgresConfig struct {
	Host           string `mapstructure:"host"`
	Port           int    `mapstructure:"port"`
	Database       string `mapstructure:"database"`
	User           string `mapstructure:"user"`
	Password       string `mapstructure:"password"`
	MaxConnections int    `mapstructure:"max_connections"`
	MaxIdle        int    `mapstructure:"max_idle"`
	SSLMode        string `mapstructure:"sslmode"`
}

// GetDSN returns the PostgreSQL connection string.
func (p PostgresConfig) GetDSN() string {
	return fmt.Sprintf(
		"host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		p.Host, p.Port, p.User, p.Password, p.Database, p.SSLMode,
	)
}

type ElasticsearchConfig struct {
	Addresses []string `mapstructure:"addresses"`
	Username  string   `mapstructure:"username"`
	Password  string   `mapstructure:"password"`
	LeadIndex string   `mapstructure:"lead_index"`
}

type RedisConfig struct {
	Address  string `mapstructure:"address"`
	Password string `mapstructure:"password"`
	DB       int    `mapstructure:"db"`
}

// --- Specific Configuration Sections ---

// LLMConfig holds settings for the remote narrative model.
type LLMConfig struct {
	BaseURL        string   `mapstructure:"base_url"`
	APIKey         string   `mapstructure:"api_key"`
	Models         []string `mapstructure:"models"`          // tried in priority order
	AttemptTimeout int      `mapstructure:"attempt_timeout"` // milliseconds, per model
	MaxTokens      int      `mapstructure:"max_tokens"`
	Temperature    float64  `mapstructure:"temperature"`
}

// BrowserConfig holds settings for the headless rendering engine.
type BrowserConfig struct {
	Bin           string `mapstructure:"bin"`            // optional Chromium binary path
	DebuggerURL   string `mapstructure:"debugger_url"`   // connect instead of launch
	RenderTimeout int    `mapstructure:"render_timeout"` // milliseconds
}

// AnalysisConfig holds settings for the analysis pipeline around the LLM call.
type AnalysisConfig struct {
	CacheEnabled bool `mapstructure:"cache_enabled"`
	CacheTTL     int  `mapstructure:"cache_ttl"` // seconds
}

// WorkflowConfig holds settings for the Zeebe follow-up process integration.
type WorkflowConfig struct {
	Enabled        bool   `mapstructure:"enabled"`
	BrokerAddress  string `mapstructure:"broker_address"`
	MessageName    string `mapstructure:"message_name"`
	RequestTimeout int    `mapstructure:"request_timeout"` // milliseconds
}

// NotificationConfig holds settings for report email and lead SMS alerts.
type NotificationConfig struct {
	Email struct {
		Enabled   bool   `mapstructure:"enabled"`
		FromEmail string `mapstructure:"from_email"`
	} `mapstructure:"email"`
	SMS struct {
		Enabled     bool   `mapstructure:"enabled"`
		DeskNumber  string `mapstructure:"desk_number"`
		SMSSenderID string `mapstructure:"sms_sender_id"`
	} `mapstructure:"sms"`
	AWS struct {
		Region string `mapstructure:"region"`
	} `mapstructure:"aws"`
}

// TracingConfig holds settings for the Jaeger exporter.
type TracingConfig struct {
	Enabled     bool    `mapstructure:"enabled"`
	JaegerURL   string  `mapstructure:"jaeger_url"`
	SampleRatio float64 `mapstructure:"sample_ratio"`
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
	Output string `mapstructure:"output"`
}
