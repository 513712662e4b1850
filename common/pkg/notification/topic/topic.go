/*
 * Copyright (C) 2025-2026, YourCFP. All rights reserved.
 * See LICENSE for license information.
 */

package topic

import (
	"context"

	"github.com/YourCFP/we-mp-rss/common/pkg/notification/model"
	"github.com/YourCFP/we-mp-rss/common/pkg/notification/topic/allocation"
	"github.com/YourCFP/we-mp-rss/common/pkg/notification/topic/node"
)

type Topic interface {
	Name() string
	BuildMessage(ctx context.Context, data map[string]interface{}) ([]*model.Message, error)
	Filter(data map[string]interface{}) bool
}

// NewTopics creates and returns all supported notification topics.
func NewTopics() map[string]Topic {
	topics := make(map[string]Topic)
	allocationTopic := &allocation.Topic{}
	topics[allocationTopic.Name()] = allocationTopic
	nodeTopic := &node.Topic{}
	topics[nodeTopic.Name()] = nodeTopic

	return topics
}
