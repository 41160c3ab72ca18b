package config

import (
	"bufio"
	"fmt"
	"os"
	"strconv"
	"strings"
)

// Config holds every parameter of the service. It is read once at startup
// from a small YAML file; see config.yaml for the expected shape.
type Config struct {
	Database DatabaseConfig
	RabbitMQ RabbitMQConfig
	Server   ServerConfig
	Service  ServiceConfig
	Tables   TablesConfig
}

type DatabaseConfig struct {
	Host       string
	Port       int
	User       string
	Password   string
	Database   string
	SSLMode    string
	Migrations string
}

type RabbitMQConfig struct {
	Host     string
	Port     int
	User     string
	Password string
	VHost    string
	Enabled  bool
}

type ServerConfig struct {
	Port int
}

type ServiceConfig struct {
	// EmptyResults is "strict" (empty list operations report an error) or
	// "lenient" (empty lists are a normal success).
	EmptyResults string
}

type TablesConfig struct {
	Numbers []string
}

// Load parses the YAML config with a small purpose-built reader: top-level
// sections, k: v pairs and "- item" list entries, two levels deep at most.
func Load(path string) (*Config, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open config file: %w", err)
	}
	defer file.Close()

	cfg := &Config{}
	cfg.Database.Port = 5432
	cfg.Database.SSLMode = "disable"
	cfg.Database.Migrations = "migrations"
	cfg.RabbitMQ.Port = 5672
	cfg.RabbitMQ.VHost = "/"
	cfg.Server.Port = 3000
	cfg.Service.EmptyResults = "strict"

	scanner := bufio.NewScanner(file)
	var section string
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}

		if strings.HasSuffix(line, ":") && !strings.Contains(line, " ") {
			section = strings.TrimSuffix(line, ":")
			continue
		}

		if strings.HasPrefix(line, "- ") {
			value := strings.Trim(strings.TrimPrefix(line, "- "), `"'`)
			if section == "tables" && value != "" {
				cfg.Tables.Numbers = append(cfg.Tables.Numbers, value)
			}
			continue
		}

		parts := strings.SplitN(line, ":", 2)
		if len(parts) != 2 {
			continue
		}
		key := strings.TrimSpace(parts[0])
		value := strings.Trim(strings.TrimSpace(parts[1]), `"'`)

		switch section {
		case "database":
			switch key {
			case "host":
				cfg.Database.Host = value
			case "port":
				cfg.Database.Port = atoi(value, 5432)
			case "user":
				cfg.Database.User = value
			case "password":
				cfg.Database.Password = value
			case "database":
				cfg.Database.Database = value
			case "sslmode":
				cfg.Database.SSLMode = value
			case "migrations":
				cfg.Database.Migrations = value
			}
		case "rabbitmq":
			switch key {
			case "host":
				cfg.RabbitMQ.Host = value
			case "port":
				cfg.RabbitMQ.Port = atoi(value, 5672)
			case "user":
				cfg.RabbitMQ.User = value
			case "password":
				cfg.RabbitMQ.Password = value
			case "vhost":
				if value != "" {
					cfg.RabbitMQ.VHost = value
				}
			case "enabled":
				cfg.RabbitMQ.Enabled = value == "true"
			}
		case "server":
			if key == "port" {
				cfg.Server.Port = atoi(value, 3000)
			}
		case "service":
			if key == "empty_results" {
				cfg.Service.EmptyResults = value
			}
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	if cfg.Database.Host == "" || cfg.Database.User == "" || cfg.Database.Database == "" {
		return nil, fmt.Errorf("database config incomplete")
	}
	if cfg.RabbitMQ.Enabled && (cfg.RabbitMQ.Host == "" || cfg.RabbitMQ.User == "") {
		return nil, fmt.Errorf("rabbitmq config incomplete")
	}
	if cfg.Service.EmptyResults != "strict" && cfg.Service.EmptyResults != "lenient" {
		return nil, fmt.Errorf("service.empty_results must be strict or lenient, got %q", cfg.Service.EmptyResults)
	}

	return cfg, nil
}

// DatabaseURL returns a PostgreSQL connection URL.
func (c *Config) DatabaseURL() string {
	return fmt.Sprintf("postgres://%s:%s@%s:%d/%s?sslmode=%s",
		c.Database.User, c.Database.Password, c.Database.Host, c.Database.Port,
		c.Database.Database, c.Database.SSLMode)
}

func atoi(s string, def int) int {
	if s == "" {
		return def
	}
	n, err := strconv.Atoi(s)
	if err != nil {
		return def
	}
	return n
}
