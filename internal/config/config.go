package config

import (
	"fmt"
	"sync"
	"time"

	"github.com/spf13/viper"
)

type Config struct {
	Server   ServerConfig
	Database DatabaseConfig
	Redis    RedisConfig
	JWT      JWTConfig
	Kafka    KafkaConfig
	Minio    MinioConfig
	Swipe    SwipeConfig
}

type ServerConfig struct {
	Host         string
	Port         string
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
	IdleTimeout  time.Duration
}

type DatabaseConfig struct {
	Host     string
	Port     string
	User     string
	Password string
	DBName   string
	SSLMode  string
}

// DSN renders the postgres connection string.
func (d DatabaseConfig) DSN() string {
	return fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		d.Host, d.Port, d.User, d.Password, d.DBName, d.SSLMode)
}

type RedisConfig struct {
	URI string
}

type JWTConfig struct {
	Secret         string
	ExpirationTime time.Duration
}

type KafkaConfig struct {
	Brokers   []string
	PushTopic string
}

type MinioConfig struct {
	Endpoint  string
	AccessKey string
	SecretKey string
	Bucket    string
	UseSSL    bool
}

type SwipeConfig struct {
	DailyLimit int64
}

var (
	configInstance *Config
	once           sync.Once
)

// LoadConfig reads configuration from the environment with sane local
// defaults. Subsequent calls return the same instance.
func LoadConfig() (*Config, error) {
	once.Do(func() {
		viper.SetDefault("TEAMUP_HOST", "")
		viper.SetDefault("TEAMUP_PORT", "8080")
		viper.SetDefault("TEAMUP_READ_TIMEOUT", 30*time.Second)
		viper.SetDefault("TEAMUP_WRITE_TIMEOUT", 30*time.Second)
		viper.SetDefault("TEAMUP_IDLE_TIMEOUT", 60*time.Second)
		viper.SetDefault("TEAMUP_JWT_SECRET", "secret")
		viper.SetDefault("TEAMUP_JWT_EXPIRE", "168h")
		viper.SetDefault("TEAMUP_SWIPE_DAILY_LIMIT", 20)
		viper.SetDefault("REDIS_URL", "redis://127.0.0.1:6379/0")
		viper.SetDefault("POSTGRES_USER", "postgres")
		viper.SetDefault("POSTGRES_PASSWORD", "password")
		viper.SetDefault("POSTGRES_HOST", "localhost")
		viper.SetDefault("POSTGRES_PORT", "5432")
		viper.SetDefault("POSTGRES_DB", "teamup")
		viper.SetDefault("POSTGRES_SSLMODE", "disable")
		viper.SetDefault("KAFKA_BROKERS", []string{"localhost:9092"})
		viper.SetDefault("KAFKA_PUSH_TOPIC", "push-notifications")
		viper.SetDefault("MINIO_ENDPOINT", "localhost:9000")
		viper.SetDefault("MINIO_ACCESS_KEY", "minioadmin")
		viper.SetDefault("MINIO_SECRET_KEY", "minioadmin")
		viper.SetDefault("MINIO_BUCKET", "teamup-avatars")
		viper.SetDefault("MINIO_USE_SSL", false)
		viper.AutomaticEnv()

		configInstance = &Config{
			Server: ServerConfig{
				Host:         viper.GetString("TEAMUP_HOST"),
				Port:         viper.GetString("TEAMUP_PORT"),
				ReadTimeout:  viper.GetDuration("TEAMUP_READ_TIMEOUT"),
				WriteTimeout: viper.GetDuration("TEAMUP_WRITE_TIMEOUT"),
				IdleTimeout:  viper.GetDuration("TEAMUP_IDLE_TIMEOUT"),
			},
			Database: DatabaseConfig{
				Host:     viper.GetString("POSTGRES_HOST"),
				Port:     viper.GetString("POSTGRES_PORT"),
				User:     viper.GetString("POSTGRES_USER"),
				Password: viper.GetString("POSTGRES_PASSWORD"),
				DBName:   viper.GetString("POSTGRES_DB"),
				SSLMode:  viper.GetString("POSTGRES_SSLMODE"),
			},
			Redis: RedisConfig{
				URI: viper.GetString("REDIS_URL"),
			},
			JWT: JWTConfig{
				Secret:         viper.GetString("TEAMUP_JWT_SECRET"),
				ExpirationTime: viper.GetDuration("TEAMUP_JWT_EXPIRE"),
			},
			Kafka: KafkaConfig{
				Brokers:   viper.GetStringSlice("KAFKA_BROKERS"),
				PushTopic: viper.GetString("KAFKA_PUSH_TOPIC"),
			},
			Minio: MinioConfig{
				Endpoint:  viper.GetString("MINIO_ENDPOINT"),
				AccessKey: viper.GetString("MINIO_ACCESS_KEY"),
				SecretKey: viper.GetString("MINIO_SECRET_KEY"),
				Bucket:    viper.GetString("MINIO_BUCKET"),
				UseSSL:    viper.GetBool("MINIO_USE_SSL"),
			},
			Swipe: SwipeConfig{
				DailyLimit: viper.GetInt64("TEAMUP_SWIPE_DAILY_LIMIT"),
			},
		}
	})

	return configInstance, nil
}
