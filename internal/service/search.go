package service

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/elastic/go-elasticsearch/v9"

	"github.com/Skotchmaster/coffee_shop/internal/catalog"
	"github.com/Skotchmaster/coffee_shop/internal/es"
	"github.com/Skotchmaster/coffee_shop/internal/util"
)

const productMapping = `{
  "mappings": {
    "properties": {
      "id":          {"type": "integer"},
      "name":        {"type": "text"},
      "temperature": {"type": "keyword"},
      "price":       {"type": "scaled_float", "scaling_factor": 100},
      "rating":      {"type": "float"}
    }
  }
}`

type SearchResult struct {
	Total int64
	Items []catalog.Product
}

type productDoc struct {
	ID          int     `json:"id"`
	Name        string  `json:"name"`
	Temperature string  `json:"temperature"`
	Price       float64 `json:"price"`
	Rating      float32 `json:"rating"`
}

// SearchService queries Elasticsearch when a client is configured and falls
// back to substring matching over the catalog otherwise.
type SearchService struct {
	ES      *elasticsearch.Client
	Index   string
	Catalog *catalog.Provider
}

func (s *SearchService) IndexCatalog(ctx context.Context) error {
	if s.ES == nil {
		return nil
	}
	if err := es.EnsureIndex(ctx, s.ES, s.Index, productMapping); err != nil {
		return err
	}

	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	for _, p := range s.Catalog.ListAll() {
		price, _ := p.Price.Float64()
		meta := map[string]any{"index": map[string]any{"_index": s.Index, "_id": strconv.Itoa(p.ID)}}
		doc := productDoc{ID: p.ID, Name: p.Name, Temperature: p.Temperature.String(), Price: price, Rating: p.Rating}
		if err := enc.Encode(meta); err != nil {
			return err
		}
		if err := enc.Encode(doc); err != nil {
			return err
		}
	}

	res, err := s.ES.Bulk(&buf,
		s.ES.Bulk.WithContext(ctx),
		s.ES.Bulk.WithRefresh("true"),
	)
	if err != nil {
		return fmt.Errorf("es: bulk: %w", err)
	}
	defer res.Body.Close()
	if res.IsError() {
		body, _ := io.ReadAll(res.Body)
		return fmt.Errorf("es: bulk: %s: %s", res.Status(), body)
	}

	var r struct {
		Errors bool `json:"errors"`
	}
	if err := json.NewDecoder(res.Body).Decode(&r); err != nil {
		return fmt.Errorf("es: bulk response: %w", err)
	}
	if r.Errors {
		return fmt.Errorf("es: bulk: some documents were rejected")
	}
	return nil
}

func (s *SearchService) Search(ctx context.Context, query string, page, size int) (*SearchResult, error) {
	q := strings.TrimSpace(query)
	if q == "" {
		return nil, fmt.Errorf("query required: %w", ErrValidation)
	}
	from, limit := util.Calculate(page, size)

	if s.ES == nil {
		return s.fallback(q, from, limit), nil
	}
	return s.searchES(ctx, q, from, limit)
}

func (s *SearchService) searchES(ctx context.Context, q string, from, size int) (*SearchResult, error) {
	body := map[string]any{
		"query": map[string]any{
			"multi_match": map[string]any{
				"query":     q,
				"fields":    []string{"name^2", "temperature"},
				"fuzziness": "AUTO",
			},
		},
		"from": from,
		"size": size,
	}

	var buf bytes.Buffer
	if err := json.NewEncoder(&buf).Encode(body); err != nil {
		return nil, fmt.Errorf("es: encode query: %w", err)
	}

	res, err := s.ES.Search(
		s.ES.Search.WithContext(ctx),
		s.ES.Search.WithIndex(s.Index),
		s.ES.Search.WithBody(&buf),
	)
	if err != nil {
		return nil, fmt.Errorf("es: search: %w", err)
	}
	defer res.Body.Close()
	if res.IsError() {
		b, _ := io.ReadAll(res.Body)
		return nil, fmt.Errorf("es: search: %s: %s", res.Status(), b)
	}

	var r struct {
		Hits struct {
			Total struct {
				Value int64 `json:"value"`
			} `json:"total"`
			Hits []struct {
				Source productDoc `json:"_source"`
			} `json:"hits"`
		} `json:"hits"`
	}
	if err := json.NewDecoder(res.Body).Decode(&r); err != nil {
		return nil, fmt.Errorf("es: decode: %w", err)
	}

	out := &SearchResult{Total: r.Hits.Total.Value, Items: make([]catalog.Product, 0, len(r.Hits.Hits))}
	for _, hit := range r.Hits.Hits {
		if p, ok := s.Catalog.Get(hit.Source.ID); ok {
			out.Items = append(out.Items, p)
		}
	}
	return out, nil
}

func (s *SearchService) fallback(q string, from, size int) *SearchResult {
	needle := strings.ToLower(q)
	var matched []catalog.Product
	for _, p := range s.Catalog.ListAll() {
		if strings.Contains(strings.ToLower(p.Name), needle) {
			matched = append(matched, p)
		}
	}

	out := &SearchResult{Total: int64(len(matched)), Items: []catalog.Product{}}
	if from < len(matched) {
		end := min(from+size, len(matched))
		out.Items = matched[from:end]
	}
	return out
}
