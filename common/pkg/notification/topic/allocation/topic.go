/*
 * Copyright (C) 2025-2026, YourCFP. All rights reserved.
 * See LICENSE for license information.
 */

package allocation

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
	return model.TopicAllocationTimeout
}

func (t *Topic) Filter(data map[string]interface{}) bool {
	if count, ok := data["swept_count"].(int); ok {
		return count > 0
	}
	// The reclaimer always fills swept_count; a float arrives when the data
	// went through a JSON round trip.
	if count, ok := data["swept_count"].(float64); ok {
		return count > 0
	}
	klog.Infof("Topic %s: no swept_count found in data", t.Name())
	return false
}

func (t *Topic) BuildMessage(ctx context.Context, data map[string]interface{}) ([]*model.Message, error) {
	topicData := &TopicData{}
	err := jsonutil.DecodeFromMapWithJson(data, topicData)
	if err != nil {
		return nil, fmt.Errorf("failed to convert data to TopicData: %w", err)
	}
	if topicData.SweptCount == 0 {
		return nil, nil
	}
	emailContent, err := renderEmailTemplate(EmailData{
		SweptCount: topicData.SweptCount,
		Cutoff:     topicData.Cutoff,
		TaskNames:  topicData.TaskNames,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to render email template: %w", err)
	}

	message := &model.Message{
		Email: &model.EmailMessage{
			Title:   fmt.Sprintf("Cascade: %d task allocation(s) timed out", topicData.SweptCount),
			Content: emailContent,
			To:      topicData.Recipients,
		},
	}
	return []*model.Message{message}, nil
}

type TopicData struct {
	SweptCount int      `json:"swept_count,omitempty"`
	Cutoff     string   `json:"cutoff,omitempty"`
	TaskNames  []string `json:"task_names,omitempty"`
	Recipients []string `json:"recipients,omitempty"`
}

type EmailData struct {
	SweptCount int
	Cutoff     string
	TaskNames  []string
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
  <h2 style="color: #c53030;">Task allocations timed out</h2>
  <p>The coordinator reclaimed <b>{{.SweptCount}}</b> allocation(s) that were
  dispatched before <b>{{.Cutoff}}</b> and never reported a result.</p>
  {{if .TaskNames}}
  <p>Affected tasks:</p>
  <ul>
    {{range .TaskNames}}<li>{{.}}</li>{{end}}
  </ul>
  {{end}}
  <p style="color: #4a5568;">The allocations were marked as timed out and will
  be dispatched again on the next schedule run.</p>
</body>
</html>`
