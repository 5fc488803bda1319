package config

import (
	"time"

	"github.com/spf13/viper"
)

type Config struct {
	// App mode & server
	Mode        string
	ServerAddr  string
	TLSCertFile string
	TLSKeyFile  string
	JWTSecret   string
	TokenTTL    time.Duration
	LogLevel    string

	// Feed client
	FeedURL         string
	FeedToken       string
	FetchTimeout    time.Duration
	RefreshInterval time.Duration
	SubmitDelay     time.Duration
	AuthorID        int64
	DraftTitle      string
	DraftContent    string

	// Kafka feed events
	KafkaBroker     string
	FeedEventsTopic string
	KafkaWriteTO    time.Duration

	// Cassandra
	CassandraHost     string
	CassandraKeyspace string
	CassandraUsername string
	CassandraPassword string
	CassandraTimeout  time.Duration
	CassandraDC       string
	MigrationsPath    string
}

var cfg *Config

// Init loads the config using Viper and returns it
func Init() *Config {
	v := viper.New()

	v.SetDefault("MODE", "client")
	v.SetDefault("SERVER_ADDR", ":8080")
	v.SetDefault("TOKEN_TTL", "24h")
	v.SetDefault("LOG_LEVEL", "info")

	v.SetDefault("FEED_URL", "http://localhost:8080")
	v.SetDefault("FETCH_TIMEOUT", "10s")
	v.SetDefault("REFRESH_INTERVAL", "30s")
	v.SetDefault("SUBMIT_DELAY", "1s")
	v.SetDefault("AUTHOR_ID", 1)

	v.SetDefault("FEED_EVENTS_TOPIC", "feed-events")
	v.SetDefault("KAFKA_WRITE_TIMEOUT", "10s")

	v.SetDefault("CASSANDRA_HOST", "localhost")
	v.SetDefault("CASSANDRA_KEYSPACE", "feedcore")
	v.SetDefault("CASSANDRA_TIMEOUT", "10s")
	v.SetDefault("MIGRATIONS_PATH", "./migrations/cassandra")
	// KAFKA_BROKER, TLS files, Cassandra credentials and DC may stay empty

	v.AutomaticEnv()

	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")
	v.AddConfigPath("./config")
	_ = v.ReadInConfig() // ignore error if no file

	cfg = fromViper(v)
	return cfg
}

func fromViper(v *viper.Viper) *Config {
	return &Config{
		Mode:        v.GetString("MODE"),
		ServerAddr:  v.GetString("SERVER_ADDR"),
		TLSCertFile: v.GetString("TLS_CERT_FILE"),
		TLSKeyFile:  v.GetString("TLS_KEY_FILE"),
		JWTSecret:   v.GetString("JWT_SECRET"),
		TokenTTL:    parseDuration(v.GetString("TOKEN_TTL"), 24*time.Hour),
		LogLevel:    v.GetString("LOG_LEVEL"),

		FeedURL:         v.GetString("FEED_URL"),
		FeedToken:       v.GetString("FEED_TOKEN"),
		FetchTimeout:    parseDuration(v.GetString("FETCH_TIMEOUT"), 10*time.Second),
		RefreshInterval: parseDuration(v.GetString("REFRESH_INTERVAL"), 30*time.Second),
		SubmitDelay:     parseDuration(v.GetString("SUBMIT_DELAY"), time.Second),
		AuthorID:        v.GetInt64("AUTHOR_ID"),
		DraftTitle:      v.GetString("DRAFT_TITLE"),
		DraftContent:    v.GetString("DRAFT_CONTENT"),

		KafkaBroker:     v.GetString("KAFKA_BROKER"),
		FeedEventsTopic: v.GetString("FEED_EVENTS_TOPIC"),
		KafkaWriteTO:    parseDuration(v.GetString("KAFKA_WRITE_TIMEOUT"), 10*time.Second),

		CassandraHost:     v.GetString("CASSANDRA_HOST"),
		CassandraKeyspace: v.GetString("CASSANDRA_KEYSPACE"),
		CassandraUsername: v.GetString("CASSANDRA_USERNAME"),
		CassandraPassword: v.GetString("CASSANDRA_PASSWORD"),
		CassandraTimeout:  parseDuration(v.GetString("CASSANDRA_TIMEOUT"), 10*time.Second),
		CassandraDC:       v.GetString("CASSANDRA_DC"),
		MigrationsPath:    v.GetString("MIGRATIONS_PATH"),
	}
}

func parseDuration(s string, def time.Duration) time.Duration {
	if d, err := time.ParseDuration(s); err == nil {
		return d
	}
	return def
}

// Get returns the loaded config instance
func Get() *Config {
	return cfg
}
