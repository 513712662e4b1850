/*
 * Copyright (C) 2025-2026, YourCFP. All rights reserved.
 * See LICENSE for license information.
 */

package node

import (
	"context"
	"strings"
	"testing"

	"gotest.tools/assert"
)

func TestFilter(t *testing.T) {
	topic := &Topic{}

	assert.Assert(t, topic.Filter(map[string]interface{}{"nodes": []string{"branch-1"}}))
	assert.Assert(t, topic.Filter(map[string]interface{}{"nodes": []interface{}{"branch-1"}}))
	assert.Assert(t, !topic.Filter(map[string]interface{}{"nodes": []string{}}))
	assert.Assert(t, !topic.Filter(map[string]interface{}{}))
}

func TestBuildMessage(t *testing.T) {
	topic := &Topic{}

	data := map[string]interface{}{
		"nodes":  []string{"branch-1", "branch-2"},
		"window": "180s",
	}
	messages, err := topic.BuildMessage(context.Background(), data)
	assert.NilError(t, err)
	assert.Equal(t, len(messages), 1)

	email := messages[0].Email
	assert.Equal(t, email.Title, "Cascade: 2 worker node(s) went offline")
	assert.Assert(t, strings.Contains(email.Content, "branch-1"))
	assert.Assert(t, strings.Contains(email.Content, "180s"))
	// No per-event recipients: the channel falls back to its configured list.
	assert.Equal(t, len(email.To), 0)
}
