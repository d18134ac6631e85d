package config

import (
	"log"
	"os"
	"strconv"
	"strings"
	"time"
)

type Config struct {
	Server   ServerConfig
	Store    StoreConfig
	MongoDB  MongoDBConfig
	Redis    RedisConfig
	RabbitMQ RabbitMQConfig
	Consul   ConsulConfig
	Session  SessionConfig
	Mail     MailConfig
	Log      LogConfig
	CORS     CORSConfig
	Academy  AcademyConfig
}

type ServerConfig struct {
	Port           string
	Host           string
	ServiceName    string
	ServiceAddress string
	ServiceID      string
	ReadTimeout    time.Duration
	WriteTimeout   time.Duration
	Mode           string
}

type StoreConfig struct {
	// Driver is one of sqlite, postgres or mongo.
	Driver string
	DSN    string
}

type MongoDBConfig struct {
	URI      string
	Database string
	PoolSize uint64
	Timeout  time.Duration
}

type RedisConfig struct {
	Address  string
	Password string
	DB       int
}

type RabbitMQConfig struct {
	URI       string
	Exchange  string
	MailQueue string
}

type ConsulConfig struct {
	ConsulAddress string
}

type SessionConfig struct {
	Secret     string
	TTL        time.Duration
	CookieName string
	Secure     bool
}

type MailConfig struct {
	// Transport is one of log, smtp or queue.
	Transport string
	SMTP      SMTPConfig
}

type SMTPConfig struct {
	Host     string
	Port     string
	Username string
	Password string
	From     string
}

type LogConfig struct {
	Level string
	Dir   string
	JSON  bool
}

type CORSConfig struct {
	AllowOrigins []string
}

type AcademyConfig struct {
	RegistrationOrderCode int
	PageSize              int
	PadawanLimit          int
}

func Load() *Config {
	serviceName := getEnv("ACADEMY_SERVICE_NAME", "academy-service")
	return &Config{
		Server: ServerConfig{
			Port:           getEnv("PORT", "8000"),
			Host:           getEnv("HOST", "0.0.0.0"),
			ServiceName:    serviceName,
			ServiceAddress: getEnv("ACADEMY_SERVICE_ADDRESS", "academy-service"),
			ServiceID:      serviceName + "-" + getEnv("HOSTNAME", "academy"),
			ReadTimeout:    getEnvAsDuration("READ_TIMEOUT", 15*time.Second),
			WriteTimeout:   getEnvAsDuration("WRITE_TIMEOUT", 15*time.Second),
			Mode:           getEnv("GIN_MODE", "release"),
		},
		Store: StoreConfig{
			Driver: getEnv("STORE_DRIVER", "sqlite"),
			DSN:    getEnv("SQL_DSN", "file:academy.db"),
		},
		MongoDB: MongoDBConfig{
			URI:      getEnv("MONGODB_URI", "mongodb://localhost:27017/?replicaSet=rs0"),
			Database: getEnv("MONGODB_DATABASE", "academy_service"),
			PoolSize: getEnvAsUint64("MONGODB_POOL_SIZE", 100),
			Timeout:  getEnvAsDuration("MONGODB_TIMEOUT", 10*time.Second),
		},
		Redis: RedisConfig{
			Address:  getEnv("REDIS_ADDR", "localhost:6379"),
			Password: getEnv("REDIS_PASSWORD", ""),
			DB:       getEnvAsInt("REDIS_DB", 0),
		},
		RabbitMQ: RabbitMQConfig{
			URI:       getEnv("RABBITMQ_URI", ""),
			Exchange:  getEnv("RABBITMQ_EXCHANGE", "academy.events"),
			MailQueue: getEnv("RABBITMQ_MAIL_QUEUE", "academy.mail"),
		},
		Consul: ConsulConfig{
			ConsulAddress: getEnv("CONSUL_ADDRESS", ""),
		},
		Session: SessionConfig{
			Secret:     getEnv("SESSION_SECRET", "change-me"),
			TTL:        getEnvAsDuration("SESSION_TTL", 14*24*time.Hour),
			CookieName: getEnv("SESSION_COOKIE", "academy_session"),
			Secure:     getEnvAsBool("SESSION_COOKIE_SECURE", false),
		},
		Mail: MailConfig{
			Transport: getEnv("MAIL_TRANSPORT", "log"),
			SMTP: SMTPConfig{
				Host:     getEnv("SMTP_HOST", ""),
				Port:     getEnv("SMTP_PORT", "587"),
				Username: getEnv("SMTP_USERNAME", ""),
				Password: getEnv("SMTP_PASSWORD", ""),
				From:     getEnv("SMTP_FROM", "academy@jedi.example"),
			},
		},
		Log: LogConfig{
			Level: getEnv("LOG_LEVEL", "info"),
			Dir:   getEnv("LOG_DIR", ""),
			JSON:  getEnvAsBool("LOG_JSON", true),
		},
		CORS: CORSConfig{
			AllowOrigins: getEnvAsSlice("CORS_ORIGINS", []string{"http://localhost:3000"}),
		},
		Academy: AcademyConfig{
			RegistrationOrderCode: getEnvAsInt("REGISTRATION_ORDER_CODE", 123),
			PageSize:              getEnvAsPositiveInt("PAGE_SIZE", 10),
			PadawanLimit:          getEnvAsPositiveInt("PADAWAN_LIMIT", 3),
		},
	}
}

// Addr is the listen address of the HTTP server.
func (s ServerConfig) Addr() string {
	return s.Host + ":" + s.Port
}

func getEnv(key, defaultValue string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) int {
	if value, exists := os.LookupEnv(key); exists {
		intVal, err := strconv.Atoi(value)
		if err != nil {
			log.Printf("error retrieve int env var %s: %s", key, err)
			return defaultValue
		}
		return intVal
	}
	return defaultValue
}

func getEnvAsPositiveInt(key string, defaultValue int) int {
	intVal := getEnvAsInt(key, defaultValue)
	if intVal < 1 {
		log.Printf("env var %s must be at least 1, got %d", key, intVal)
		return defaultValue
	}
	return intVal
}

func getEnvAsUint64(key string, defaultValue uint64) uint64 {
	if value, exists := os.LookupEnv(key); exists {
		uintVal, err := strconv.ParseUint(value, 10, 64)
		if err != nil {
			log.Printf("error retrieve uint env var %s: %s", key, err)
			return defaultValue
		}
		return uintVal
	}
	return defaultValue
}

func getEnvAsBool(key string, defaultValue bool) bool {
	if value, exists := os.LookupEnv(key); exists {
		boolVal, err := strconv.ParseBool(value)
		if err != nil {
			log.Printf("error retrieve bool env var %s: %s", key, err)
			return defaultValue
		}
		return boolVal
	}
	return defaultValue
}

func getEnvAsDuration(key string, defaultValue time.Duration) time.Duration {
	if value, exists := os.LookupEnv(key); exists {
		d, err := time.ParseDuration(value)
		if err != nil {
			log.Printf("error retrieve duration env var %s: %s", key, err)
			return defaultValue
		}
		return d
	}
	return defaultValue
}

func getEnvAsSlice(key string, defaultValue []string) []string {
	value, exists := os.LookupEnv(key)
	if !exists || strings.TrimSpace(value) == "" {
		return defaultValue
	}
	var out []string
	for _, part := range strings.Split(value, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
