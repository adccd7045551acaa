package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

type Config struct {
	// PostgreSQL
	DBHost      string
	DBPort      int
	DBUser      string
	DBPassword  string
	DBName      string
	DBSSLMode   string
	DBMaxConns  int
	DBIdleConns int

	// Kafka
	KafkaBrokers []string
	KafkaTopic   string
	KafkaGroupID string

	// S3-compatible object storage
	S3Endpoint     string
	S3Region       string
	S3AccessKey    string
	S3SecretKey    string
	S3UsePathStyle bool
	BlobBucket     string
	DocsBucket     string

	// HTTP Server
	ServerPort int

	// Logging
	LogLevel string

	// Bound on every outbound storage/queue call
	StorageTimeout time.Duration
}

func NewConfig() (*Config, error) {
	config := &Config{
		// PostgreSQL defaults
		DBHost:      getEnv("DB_HOST", "localhost"),
		DBUser:      getEnv("DB_USER", "my_user"),
		DBPassword:  getEnv("DB_PASSWORD", "1"),
		DBName:      getEnv("DB_NAME", "storefront"),
		DBSSLMode:   getEnv("DB_SSL_MODE", "disable"),
		DBMaxConns:  getEnvAsInt("DB_MAX_CONNS", 25),
		DBIdleConns: getEnvAsInt("DB_IDLE_CONNS", 5),

		// Kafka defaults
		KafkaTopic:   getEnv("KAFKA_TOPIC", "orders"),
		KafkaGroupID: getEnv("KAFKA_GROUP_ID", "order-consumer-group"),

		// Object storage defaults
		S3Endpoint:     getEnv("S3_ENDPOINT", "http://localhost:9000"),
		S3Region:       getEnv("S3_REGION", "us-east-1"),
		S3AccessKey:    getEnv("S3_ACCESS_KEY", "minioadmin"),
		S3SecretKey:    getEnv("S3_SECRET_KEY", "minioadmin"),
		S3UsePathStyle: getEnvAsBool("S3_USE_PATH_STYLE", true),
		BlobBucket:     getEnv("BLOB_BUCKET", "image"),
		DocsBucket:     getEnv("DOCS_BUCKET", "orderdoc"),

		// HTTP Server defaults
		ServerPort: getEnvAsInt("SERVER_PORT", 8081),

		// Logging defaults
		LogLevel: getEnv("LOG_LEVEL", "info"),

		// Storage call timeout defaults
		StorageTimeout: getEnvAsDuration("STORAGE_TIMEOUT", 30*time.Second),
	}

	var err error
	config.DBPort, err = strconv.Atoi(getEnv("DB_PORT", "5432"))
	if err != nil {
		return nil, fmt.Errorf("invalid DB_PORT: %v", err)
	}

	brokersStr := getEnv("KAFKA_BROKERS", "localhost:9092")
	config.KafkaBrokers = strings.Split(brokersStr, ",")

	return config, nil
}

func (c *Config) GetDBConnString() string {
	return fmt.Sprintf(
		"host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		c.DBHost, c.DBPort, c.DBUser, c.DBPassword, c.DBName, c.DBSSLMode,
	)
}

func getEnv(key, defaultValue string) string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	return value
}

func getEnvAsInt(key string, defaultValue int) int {
	valueStr := getEnv(key, "")
	if valueStr == "" {
		return defaultValue
	}
	value, err := strconv.Atoi(valueStr)
	if err != nil {
		return defaultValue
	}
	return value
}

func getEnvAsBool(key string, defaultValue bool) bool {
	valueStr := getEnv(key, "")
	if valueStr == "" {
		return defaultValue
	}
	value, err := strconv.ParseBool(valueStr)
	if err != nil {
		return defaultValue
	}
	return value
}

func getEnvAsDuration(key string, defaultValue time.Duration) time.Duration {
	valueStr := getEnv(key, "")
	if valueStr == "" {
		return defaultValue
	}
	value, err := time.ParseDuration(valueStr)
	if err != nil {
		return defaultValue
	}
	return value
}
