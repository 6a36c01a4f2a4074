package repository

import (
	"context"
	"encoding/json"
	"time"

	"bitlink/config"
	"bitlink/internal/core"
	"bitlink/internal/database/client"
	"bitlink/internal/database/fluentd/model"
)

// LogRepository 負責發送 Lookup Log 到 Fluentd
type LogRepository struct {
	fluentdClient client.Client
	version       string
	now           func() time.Time
}

func NewLogRepository(config *config.Configuration, client client.Client) *LogRepository {
	version := "1.0.0"
	if config.App.Version != "" {
		version = config.App.Version
	}
	return &LogRepository{fluentdClient: client, version: version, now: time.Now}
}

func (repository *LogRepository) LogLookup(ctx context.Context, lookup model.LookupLog) error {
	if lookup.LoggedAt == "" {
		lookup.LoggedAt = repository.now().UTC().Format("2006-01-02 15:04:05.999999 UTC")
	}
	if lookup.Version == "" {
		lookup.Version = repository.version
	}
	b, err := json.Marshal(lookup)
	if err != nil {
		return err
	}
	var fluentdMessage map[string]any
	if err := json.Unmarshal(b, &fluentdMessage); err != nil {
		return err
	}
	return repository.fluentdClient.Post(ctx, string(core.FluentdLookup), fluentdMessage)
}
