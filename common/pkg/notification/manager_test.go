/*
 * Copyright (C) 2025-2026, YourCFP. All rights reserved.
 * See LICENSE for license information.
 */

package notification

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"gotest.tools/assert"

	"github.com/YourCFP/we-mp-rss/common/pkg/notification/model"
	"github.com/YourCFP/we-mp-rss/common/pkg/notification/topic"
)

func TestInitNotificationManager(t *testing.T) {
	configFile := filepath.Join(t.TempDir(), "notification.json")
	content := `{"email": {"smtp_host": "smtp.example.com", "smtp_port": 587, "from": "rss@example.com", "to": ["ops@example.com"]}}`
	err := os.WriteFile(configFile, []byte(content), 0o600)
	assert.NilError(t, err)

	err = InitNotificationManager(context.Background(), configFile)
	assert.NilError(t, err)

	m := GetNotificationManager()
	assert.Assert(t, m != nil)
	assert.Equal(t, len(m.channels), 1)
	_, ok := m.topics[model.TopicAllocationTimeout]
	assert.Assert(t, ok)
	_, ok = m.topics[model.TopicNodeOffline]
	assert.Assert(t, ok)
}

func TestInitNotificationManagerMissingFile(t *testing.T) {
	err := InitNotificationManager(context.Background(), "/nonexistent/notification.json")
	assert.Assert(t, err != nil)
}

func TestSubmitNotificationUnknownTopic(t *testing.T) {
	m := &Manager{topics: topic.NewTopics()}

	// Unknown topics and filtered events are dropped without error.
	err := m.SubmitNotification(context.Background(), "no_such_topic", nil)
	assert.NilError(t, err)

	err = m.SubmitNotification(context.Background(), model.TopicAllocationTimeout,
		map[string]interface{}{"swept_count": 0})
	assert.NilError(t, err)
}
