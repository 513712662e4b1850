/*
 * Copyright (C) 2025-2026, YourCFP. All rights reserved.
 * See LICENSE for license information.
 */

package node

import (
	"bytes"
	"context"
	"fmt"
	"html/template"

	"k8s.io/klog/v2"

	"github.com/YourCFP/we-mp-rss/common/pkg/notification/model"
	jsonutil "github.com/YourCFP/we-mp-rss/utils/pkg/json"
)

type Topic struct {
}

func (t *Topic) Name() string {
	return model.TopicNodeOffline
}

func (t *Topic) Filter(data map[string]interface{}) bool {
	if nodes, ok := data["nodes"].([]string); ok {
		return len(nodes) > 0
	}
	if nodes, ok := data["nodes"].([]interface{}); ok {
		return len(nodes) > 0
	}
	klog.Infof("Topic %s: no nodes found in data", t.Name())
	return false
}

func (t *Topic) BuildMessage(ctx context.Context, data map[string]interface{}) ([]*model.Message, error) {
	topicData := &TopicData{}
	err := jsonutil.DecodeFromMapWithJson(data, topicData)
	if err != nil {
		return nil, fmt.Errorf("failed to convert data to TopicData: %w", err)
	}
	if len(topicData.Nodes) == 0 {
		return nil, nil
	}
	emailContent, err := renderEmailTemplate(EmailData{
		Nodes:  topicData.Nodes,
		Window: topicData.Window,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to render email template: %w", err)
	}

	message := &model.Message{
		Email: &model.EmailMessage{
			Title:   fmt.Sprintf("Cascade: %d worker node(s) went offline", len(topicData.Nodes)),
			Content: emailContent,
			To:      topicData.Recipients,
		},
	}
	return []*model.Message{message}, nil
}

type TopicData struct {
	Nodes      []string `json:"nodes,omitempty"`
	Window     string   `json:"window,omitempty"`
	Recipients []string `json:"recipients,omitempty"`
}

type EmailData struct {
	Nodes  []string
	Window string
}

// renderEmailTemplate renders the HTML email template using Go's html/template.
func renderEmailTemplate(data EmailData) (string, error) {
	tmpl, err := template.New("email_template").Parse(emailTemplate)
	if err != nil {
		return "", fmt.Errorf("failed to parse email template: %w", err)
	}

	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, data); err != nil {
		return "", fmt.Errorf("failed to render email template: %w", err)
	}

	return buf.String(), nil
}

const emailTemplate = `<!DOCTYPE html>
<html>
<body style="font-family: Arial, sans-serif; color: #1a202c;">
  <h2 style="color: #d69e2e;">Worker nodes went offline</h2>
  <p>The following nodes missed every heartbeat within the {{.Window}}
  liveness window and were marked offline:</p>
  <ul>
    {{range .Nodes}}<li><b>{{.}}</b></li>{{end}}
  </ul>
  <p style="color: #4a5568;">Offline nodes stop receiving new allocations.
  Their unfinished work will be reclaimed by the timeout sweep.</p>
</body>
</html>`
