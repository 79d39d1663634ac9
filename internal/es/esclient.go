package es

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/elastic/go-elasticsearch/v9"

	"github.com/Skotchmaster/coffee_shop/internal/logging"
)

type Options struct {
	URL      string
	User     string
	Password string

	// Transport is swapped in tests.
	Transport http.RoundTripper
}

func NewClient(ctx context.Context, opts Options) (*elasticsearch.Client, error) {
	l := logging.FromContext(ctx).With("component", "es")
	l.Info("es_connecting", "url", opts.URL)

	client, err := elasticsearch.NewClient(elasticsearch.Config{
		Addresses: []string{opts.URL},
		Username:  opts.User,
		Password:  opts.Password,
		Transport: opts.Transport,
	})
	if err != nil {
		return nil, fmt.Errorf("es: create client: %w", err)
	}

	res, err := client.Info(client.Info.WithContext(ctx))
	if err != nil {
		return nil, fmt.Errorf("es: info: %w", err)
	}
	defer res.Body.Close()
	if res.IsError() {
		body, _ := io.ReadAll(res.Body)
		return nil, fmt.Errorf("es: info: %s: %s", res.Status(), body)
	}

	l.Info("es_connected")
	return client, nil
}

// EnsureIndex creates index with mapping unless it already exists.
func EnsureIndex(ctx context.Context, client *elasticsearch.Client, index, mapping string) error {
	res, err := client.Indices.Exists([]string{index}, client.Indices.Exists.WithContext(ctx))
	if err != nil {
		return fmt.Errorf("es: index exists: %w", err)
	}
	res.Body.Close()
	if res.StatusCode == http.StatusOK {
		return nil
	}

	res, err = client.Indices.Create(index,
		client.Indices.Create.WithContext(ctx),
		client.Indices.Create.WithBody(strings.NewReader(mapping)),
	)
	if err != nil {
		return fmt.Errorf("es: create index: %w", err)
	}
	defer res.Body.Close()
	if res.IsError() {
		body, _ := io.ReadAll(res.Body)
		if strings.Contains(string(body), "resource_already_exists_exception") {
			return nil
		}
		return fmt.Errorf("es: create index: %s: %s", res.Status(), body)
	}
	return nil
}
