package main

import (
	"context"
	"log"
	"os/signal"
	"syscall"

	"example.com/feedcore/cmd/client"
	"example.com/feedcore/cmd/server"
	appkafka "example.com/feedcore/internal/broker"
	"example.com/feedcore/internal/feedsync"
	config "example.com/feedcore/internal/init"
	"example.com/feedcore/internal/logger"
	"example.com/feedcore/internal/middleware"
	"example.com/feedcore/internal/remote"
	"example.com/feedcore/internal/store"
)

func main() {
	cfg := config.Init()
	logger.SetLevel(cfg.LogLevel)

	// Setup OS signal handling for graceful shutdown (SIGINT, SIGTERM)
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	switch cfg.Mode {
	case "server":
		runServer(ctx, cfg)
	case "client":
		runClient(ctx, cfg)
	default:
		log.Fatalf("unknown mode: %s", cfg.Mode)
	}

	log.Println("Shutdown completed")
}

// runServer serves the posts API backed by Cassandra.
func runServer(ctx context.Context, cfg *config.Config) {
	if cfg.JWTSecret == "" {
		log.Fatalf("JWT_SECRET is required in server mode")
	}

	st, err := store.New(cfg)
	if err != nil {
		log.Fatalf("Cassandra connection failed: %v", err)
	}
	defer st.Close()

	server.Run(ctx, st, server.Options{
		Addr:        cfg.ServerAddr,
		JWTSecret:   cfg.JWTSecret,
		TokenTTL:    cfg.TokenTTL,
		TLSCertFile: cfg.TLSCertFile,
		TLSKeyFile:  cfg.TLSKeyFile,
	})
}

// runClient runs the feed core against FEED_URL.
func runClient(ctx context.Context, cfg *config.Config) {
	token := cfg.FeedToken
	if token == "" && cfg.JWTSecret != "" {
		t, err := middleware.IssueToken([]byte(cfg.JWTSecret), cfg.AuthorID, cfg.TokenTTL)
		if err != nil {
			log.Fatalf("Token signing failed: %v", err)
		}
		token = t
	}

	fetcher := remote.NewHTTPFetcher(cfg.FeedURL,
		remote.WithToken(token),
		remote.WithTimeout(cfg.FetchTimeout),
	)
	svc := feedsync.New(fetcher, feedsync.WithSubmitDelay(cfg.SubmitDelay))

	// Feed events go to Kafka only when a broker is configured
	if cfg.KafkaBroker != "" {
		writer, err := appkafka.NewKafkaWriter(appkafka.KafkaConfig{
			Brokers:      []string{cfg.KafkaBroker},
			Topic:        cfg.FeedEventsTopic,
			WriteTimeout: cfg.KafkaWriteTO,
		})
		if err != nil {
			log.Fatalf("Kafka writer init failed: %v", err)
		}
		defer writer.Close()

		pub := appkafka.NewEventPublisher(writer, 0)
		defer svc.Subscribe(pub.Listener())()
		go pub.Run(ctx)
	}

	client.Run(ctx, svc, client.Options{
		RefreshInterval: cfg.RefreshInterval,
		AuthorID:        cfg.AuthorID,
		DraftTitle:      cfg.DraftTitle,
		DraftContent:    cfg.DraftContent,
	})
}
