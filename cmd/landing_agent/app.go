package main

import (
	"context"
	"fmt"
	"log"

	"github.com/jonathan/landing-generator/internal/catalog"
	"github.com/jonathan/landing-generator/internal/config"
	"github.com/jonathan/landing-generator/internal/db"
	"github.com/jonathan/landing-generator/internal/session"
	"github.com/jonathan/landing-generator/internal/types"
	"github.com/jonathan/landing-generator/internal/webhook"
)

// loadConfig reads the config file (if any) over the environment and validates it.
func loadConfig() (config.Config, error) {
	cfg, err := config.Load(configPath)
	if err != nil {
		return config.Config{}, err
	}
	if err := cfg.Validate(); err != nil {
		return config.Config{}, err
	}
	return cfg, nil
}

// openStore opens the configured session store. fallback is used when no store is configured.
// The returned function releases the store.
func openStore(ctx context.Context, cfg config.Config, fallback string) (session.Store, func(), error) {
	kind := cfg.Store
	if kind == "" {
		kind = fallback
	}

	switch kind {
	case config.StoreMemory:
		return session.NewMemoryStore(), func() {}, nil
	case config.StoreFile:
		store, err := session.NewFileStore(cfg.SessionDir)
		if err != nil {
			return nil, nil, err
		}
		return store, func() {}, nil
	case config.StorePostgres:
		database, err := openDatabase(ctx, cfg)
		if err != nil {
			return nil, nil, err
		}
		return database, database.Close, nil
	default:
		return nil, nil, fmt.Errorf("unknown store %q", kind)
	}
}

// openDatabase connects to PostgreSQL and makes sure the sessions table exists.
func openDatabase(ctx context.Context, cfg config.Config) (*db.DB, error) {
	if cfg.DatabaseURL == "" {
		return nil, fmt.Errorf("DATABASE_URL is required for the postgres store")
	}
	database, err := db.Connect(ctx, cfg.DatabaseURL)
	if err != nil {
		return nil, err
	}
	if err := database.EnsureSchema(ctx); err != nil {
		database.Close()
		return nil, err
	}
	return database, nil
}

// newWebhookClient builds the webhook client from the configuration.
func newWebhookClient(cfg config.Config) (*webhook.Client, error) {
	timeout, err := cfg.Timeout()
	if err != nil {
		return nil, err
	}
	return webhook.NewClient(cfg.GenerateWebhookURL, cfg.RegenerateWebhookURL, &webhook.Options{
		Timeout:   timeout,
		UserAgent: webhook.DefaultUserAgent,
		Headers:   cfg.WebhookHeaders,
	}), nil
}

// openService wires the store and the webhooks into a session service.
func openService(ctx context.Context, cfg config.Config, fallbackStore string) (*session.Service, func(), error) {
	client, err := newWebhookClient(cfg)
	if err != nil {
		return nil, nil, err
	}
	store, closeStore, err := openStore(ctx, cfg, fallbackStore)
	if err != nil {
		return nil, nil, err
	}
	log.Printf("[store] using %s store", storeName(cfg, fallbackStore))
	return session.NewService(store, client), closeStore, nil
}

func storeName(cfg config.Config, fallback string) string {
	if cfg.Store != "" {
		return cfg.Store
	}
	return fallback
}

// catalogFor returns the catalog of a document's type, or an empty one for an unknown type.
func catalogFor(doc *types.Document) *catalog.Catalog {
	cat, err := catalog.Get(doc.TipoLanding)
	if err != nil {
		return &catalog.Catalog{Type: doc.TipoLanding}
	}
	return cat
}
