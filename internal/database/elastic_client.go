package database

import (
	"fmt"

	"github.com/olivere/elastic/v7"
)

// ElasticConfig holds the Elasticsearch 7.x connection settings.
type ElasticConfig struct {
	URL   string
	Sniff bool
}

// NewElasticClient creates a client for Elasticsearch 7.x. Sniffing stays off
// unless asked for; it breaks behind Docker and most cloud load balancers.
func NewElasticClient(cfg ElasticConfig) (*elastic.Client, error) {
	client, err := elastic.NewClient(
		elastic.SetURL(cfg.URL),
		elastic.SetSniff(cfg.Sniff),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create Elasticsearch client: %w", err)
	}
	return client, nil
}
