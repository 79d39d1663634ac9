package service

import (
	"context"
	"sync"
	"testing"

	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/Skotchmaster/coffee_shop/internal/repo"
)

type publishedEvent struct {
	Topic string
	Key   string
	Event map[string]any
}

type recordingPublisher struct {
	mu     sync.Mutex
	events []publishedEvent
}

func (p *recordingPublisher) PublishEvent(_ context.Context, topic, key string, event any) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	m, _ := event.(map[string]any)
	p.events = append(p.events, publishedEvent{Topic: topic, Key: key, Event: m})
	return nil
}

func (p *recordingPublisher) types(topic string) []string {
	p.mu.Lock()
	defer p.mu.Unlock()
	var out []string
	for _, e := range p.events {
		if e.Topic == topic {
			out = append(out, e.Event["type"].(string))
		}
	}
	return out
}

func newTestRepo(t *testing.T) *repo.GormRepo {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = sqlDB.Close() })

	require.NoError(t, repo.Migrate(db))
	return repo.New(db)
}
