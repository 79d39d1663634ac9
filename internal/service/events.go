package service

import (
	"context"
	"strconv"

	"github.com/Skotchmaster/coffee_shop/internal/logging"
	"github.com/Skotchmaster/coffee_shop/internal/mykafka"
)

// publish never fails the caller; a lost event is logged.
func publish(ctx context.Context, p mykafka.Publisher, topic string, userID uint, event map[string]any) {
	if p == nil {
		return
	}
	event["userID"] = userID
	if err := p.PublishEvent(ctx, topic, strconv.FormatUint(uint64(userID), 10), event); err != nil {
		logging.FromContext(ctx).Error("kafka_publish_error", "topic", topic, "type", event["type"], "error", err)
	}
}
