package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config representa a configuração completa da aplicação
type Config struct {
	Server   ServerConfig
	Database DatabaseConfig
	Cache    CacheConfig
	Auth     AuthConfig
	Chat     ChatConfig
	Locale   LocaleConfig
	Logging  LoggingConfig
	Metrics  MetricsConfig
	Tracing  TracingConfig
}

// ServerConfig contém configurações do servidor HTTP
type ServerConfig struct {
	Port           int
	Host           string
	ReadTimeout    time.Duration
	WriteTimeout   time.Duration
	IdleTimeout    time.Duration
	MaxHeaderBytes int
	TLS            bool
	CertFile       string
	KeyFile        string
}

// DatabaseConfig contém configurações do banco de dados
type DatabaseConfig struct {
	Driver          string
	DSN             string
	MaxIdleConns    int
	MaxOpenConns    int
	ConnMaxLifetime time.Duration
	LogLevel        string
	SlowThreshold   time.Duration
}

// RedisOptions contém configurações específicas para Redis
type RedisOptions struct {
	Address  string
	Password string
	DB       int
}

// CacheConfig contém configurações do cache de leituras do calendário
type CacheConfig struct {
	Enabled bool
	Type    string // redis, memory
	TTL     time.Duration
	Redis   RedisOptions
}

// AuthConfig contém configurações de autenticação por token.
// Enabled controla apenas a exigência de token nas rotas; o login sempre
// emite um token.
type AuthConfig struct {
	Enabled         bool
	TokenExpiration time.Duration
}

// ChatConfig contém configurações do chat
type ChatConfig struct {
	RespostaPadrao string
}

// LocaleConfig define o fuso fixo usado para resolver o dia lógico
type LocaleConfig struct {
	Timezone string
}

// LoggingConfig contém configurações de logging
type LoggingConfig struct {
	Level      string
	Production bool
}

// MetricsConfig contém configurações de métricas
type MetricsConfig struct {
	Enabled        bool
	PrometheusPath string
}

// TracingConfig contém configurações de rastreamento
type TracingConfig struct {
	Enabled     bool
	Endpoint    string
	ServiceName string
}

// LoadConfig carrega a configuração de diversas fontes (arquivos, env, defaults)
func LoadConfig(configPath string) (*Config, error) {
	v := viper.New()

	setDefaults(v)

	v.SetConfigName("config")
	v.SetConfigType("yaml")

	if configPath != "" {
		v.AddConfigPath(configPath)
	}
	v.AddConfigPath(".")
	v.AddConfigPath("./config")
	v.AddConfigPath("/etc/sereno")

	if err := v.ReadInConfig(); err != nil {
		// Ignorar se o arquivo não for encontrado; defaults + env bastam
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("erro ao ler arquivo de configuração: %w", err)
		}
	}

	v.SetEnvPrefix("SERENO")
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("erro ao mapear configuração: %w", err)
	}

	if err := validateConfig(&config); err != nil {
		return nil, err
	}

	return &config, nil
}

// setDefaults define valores padrão para a configuração
func setDefaults(v *viper.Viper) {
	// Servidor
	v.SetDefault("server.port", 8080)
	v.SetDefault("server.host", "0.0.0.0")
	v.SetDefault("server.readTimeout", "5s")
	v.SetDefault("server.writeTimeout", "10s")
	v.SetDefault("server.idleTimeout", "30s")
	v.SetDefault("server.maxHeaderBytes", 1<<20)
	v.SetDefault("server.tls", false)

	// Banco de dados
	v.SetDefault("database.driver", "sqlite")
	v.SetDefault("database.dsn", "./sereno.db")
	v.SetDefault("database.maxIdleConns", 10)
	v.SetDefault("database.maxOpenConns", 50)
	v.SetDefault("database.connMaxLifetime", "1h")
	v.SetDefault("database.logLevel", "warn")
	v.SetDefault("database.slowThreshold", "200ms")

	// Cache
	v.SetDefault("cache.enabled", true)
	v.SetDefault("cache.type", "memory")
	v.SetDefault("cache.ttl", "5m")
	v.SetDefault("cache.redis.address", "")
	v.SetDefault("cache.redis.db", 0)

	// Autenticação
	v.SetDefault("auth.enabled", false)
	v.SetDefault("auth.tokenExpiration", "24h")

	// Chat
	v.SetDefault("chat.respostaPadrao", "Olá! Esta é uma mensagem automática de resposta.")

	// Fuso fixo da aplicação
	v.SetDefault("locale.timezone", "America/Sao_Paulo")

	// Logging
	v.SetDefault("logging.level", "info")
	v.SetDefault("logging.production", true)

	// Métricas
	v.SetDefault("metrics.enabled", true)
	v.SetDefault("metrics.prometheusPath", "/metrics")

	// Tracing
	v.SetDefault("tracing.enabled", false)
	v.SetDefault("tracing.endpoint", "localhost:4317")
	v.SetDefault("tracing.serviceName", "sereno-api")
}

// validateConfig valida valores críticos da configuração
func validateConfig(config *Config) error {
	if config.Server.Port <= 0 || config.Server.Port > 65535 {
		return fmt.Errorf("porta do servidor inválida: %d", config.Server.Port)
	}

	switch config.Database.Driver {
	case "sqlite", "mysql", "postgres":
	default:
		return fmt.Errorf("driver de banco de dados inválido: %s", config.Database.Driver)
	}

	if config.Database.DSN == "" {
		return fmt.Errorf("DSN do banco de dados não configurado")
	}

	if config.Locale.Timezone == "" {
		return fmt.Errorf("fuso horário não configurado")
	}

	if config.Cache.Enabled && config.Cache.Type == "redis" && config.Cache.Redis.Address == "" {
		return fmt.Errorf("cache redis habilitado sem endereço configurado")
	}

	return nil
}
