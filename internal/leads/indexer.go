package leads

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"readiness-service/internal/common/database"
	apperrors "readiness-service/internal/common/errors"
	"readiness-service/internal/common/logger"
)

const defaultLeadIndex = "leads"

// Indexer mirrors leads into Elasticsearch for counselor free-text search.
// Indexing is best-effort: Postgres is the system of record and a missing or
// unreachable cluster never blocks lead capture.
type Indexer struct {
	es    *database.ElasticsearchClient
	index string
	log   logger.Logger
}

// NewIndexer builds an indexer. es may be nil when search is disabled.
func NewIndexer(es *database.ElasticsearchClient, index string, log logger.Logger) *Indexer {
	if index == "" {
		index = defaultLeadIndex
	}
	return &Indexer{es: es, index: index, log: log}
}

// Index stores the lead document under its ID, replacing any prior version.
// Failures are logged and swallowed.
func (i *Indexer) Index(ctx context.Context, lead Lead) {
	if i == nil || i.es == nil {
		return
	}

	doc, err := json.Marshal(lead)
	if err != nil {
		i.log.Warn("lead document encode failed", map[string]interface{}{"error": err.Error()})
		return
	}

	res, err := i.es.Client.Index(
		i.index,
		bytes.NewReader(doc),
		i.es.Client.Index.WithDocumentID(lead.ID),
		i.es.Client.Index.WithContext(ctx),
	)
	if err != nil {
		i.log.Warn("lead indexing failed", map[string]interface{}{"leadId": lead.ID, "error": err.Error()})
		return
	}
	defer res.Body.Close()

	if res.IsError() {
		i.log.Warn("lead indexing rejected", map[string]interface{}{"leadId": lead.ID, "status": res.Status()})
	}
}

// Search runs a free-text match over lead names and contact fields, returning
// up to size hits.
func (i *Indexer) Search(ctx context.Context, query string, size int) ([]Lead, error) {
	if i == nil || i.es == nil {
		return nil, apperrors.NewSearchQueryFailedError(fmt.Errorf("lead search is not configured"))
	}
	if size <= 0 || size > 50 {
		size = 20
	}

	body := map[string]interface{}{
		"size": size,
		"query": map[string]interface{}{
			"multi_match": map[string]interface{}{
				"query":  query,
				"fields": []string{"name^2", "email", "phone", "band"},
				"type":   "best_fields",
			},
		},
		"sort": []map[string]interface{}{
			{"_score": map[string]interface{}{"order": "desc"}},
		},
	}

	raw, err := json.Marshal(body)
	if err != nil {
		return nil, apperrors.NewSearchQueryFailedError(err)
	}

	res, err := i.es.Client.Search(
		i.es.Client.Search.WithContext(ctx),
		i.es.Client.Search.WithIndex(i.index),
		i.es.Client.Search.WithBody(strings.NewReader(string(raw))),
	)
	if err != nil {
		return nil, apperrors.NewSearchQueryFailedError(err)
	}
	defer res.Body.Close()

	if res.IsError() {
		return nil, apperrors.NewSearchQueryFailedError(fmt.Errorf("search returned status %s", res.Status()))
	}

	var parsed struct {
		Hits struct {
			Hits []struct {
				Source Lead `json:"_source"`
			} `json:"hits"`
		} `json:"hits"`
	}
	if err := json.NewDecoder(res.Body).Decode(&parsed); err != nil {
		return nil, apperrors.NewSearchQueryFailedError(fmt.Errorf("failed to decode search response: %w", err))
	}

	hits := make([]Lead, 0, len(parsed.Hits.Hits))
	for _, h := range parsed.Hits.Hits {
		hits = append(hits, h.Source)
	}
	return hits, nil
}
