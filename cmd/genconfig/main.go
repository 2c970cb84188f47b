package main

import (
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/serenoapp/sereno-api/pkg/config"
	"gopkg.in/yaml.v3"
)

// Gera um config.yaml inicial com os valores padrão da aplicação.
func main() {
	var (
		outputPath string
		force      bool
	)

	flag.StringVar(&outputPath, "output", "config.yaml", "Caminho para o arquivo de configuração de saída")
	flag.BoolVar(&force, "force", false, "Sobrescrever arquivo se existir")
	flag.Parse()

	if _, err := os.Stat(outputPath); err == nil && !force {
		fmt.Printf("Erro: arquivo %s já existe. Use --force para sobrescrever.\n", outputPath)
		os.Exit(1)
	}

	cfg := &config.Config{
		Server: config.ServerConfig{
			Port:           8080,
			Host:           "0.0.0.0",
			ReadTimeout:    5 * time.Second,
			WriteTimeout:   10 * time.Second,
			IdleTimeout:    30 * time.Second,
			MaxHeaderBytes: 1 << 20,
			TLS:            false,
		},
		Database: config.DatabaseConfig{
			Driver:          "sqlite",
			DSN:             "./sereno.db",
			MaxIdleConns:    10,
			MaxOpenConns:    50,
			ConnMaxLifetime: time.Hour,
			LogLevel:        "warn",
			SlowThreshold:   200 * time.Millisecond,
		},
		Cache: config.CacheConfig{
			Enabled: true,
			Type:    "memory",
			TTL:     5 * time.Minute,
		},
		Auth: config.AuthConfig{
			Enabled:         false,
			TokenExpiration: 24 * time.Hour,
		},
		Chat: config.ChatConfig{
			RespostaPadrao: "Olá! Esta é uma mensagem automática de resposta.",
		},
		Locale: config.LocaleConfig{
			Timezone: "America/Sao_Paulo",
		},
		Logging: config.LoggingConfig{
			Level:      "info",
			Production: true,
		},
		Metrics: config.MetricsConfig{
			Enabled:        true,
			PrometheusPath: "/metrics",
		},
		Tracing: config.TracingConfig{
			Enabled:     false,
			Endpoint:    "localhost:4317",
			ServiceName: "sereno-api",
		},
	}

	data, err := yaml.Marshal(cfg)
	if err != nil {
		fmt.Printf("Erro ao serializar configuração: %v\n", err)
		os.Exit(1)
	}

	if err := os.WriteFile(outputPath, data, 0o644); err != nil {
		fmt.Printf("Erro ao gravar %s: %v\n", outputPath, err)
		os.Exit(1)
	}

	fmt.Printf("Configuração padrão gravada em %s\n", outputPath)
}
