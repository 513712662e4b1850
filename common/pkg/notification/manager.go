/*
 * Copyright (C) 2025-2026, YourCFP. All rights reserved.
 * See LICENSE for license information.
 */

package notification

import (
	"context"
	"os"

	"k8s.io/klog/v2"

	"github.com/YourCFP/we-mp-rss/common/pkg/notification/channel"
	"github.com/YourCFP/we-mp-rss/common/pkg/notification/topic"
)

var (
	singleton *Manager
)

// GetNotificationManager returns the singleton notification manager instance.
// It is nil until InitNotificationManager has run; callers treat a nil
// manager as notifications disabled.
func GetNotificationManager() *Manager {
	return singleton
}

// InitNotificationManager initializes the notification manager with configuration.
func InitNotificationManager(ctx context.Context, configFile string) error {
	klog.Infof("Notification manager initializing with config file: %s", configFile)
	content, err := os.ReadFile(configFile)
	if err != nil {
		return err
	}
	conf, err := channel.ReadConfigFromFile(string(content))
	if err != nil {
		return err
	}
	channels, err := channel.InitChannels(ctx, conf)
	if err != nil {
		return err
	}
	topics := topic.NewTopics()
	singleton = &Manager{
		channels: channels,
		topics:   topics,
	}
	return nil
}

type Manager struct {
	channels map[string]channel.Channel
	topics   map[string]topic.Topic
}

// SubmitNotification hands an event to the matching topic and delivers the
// built messages in the background. Delivery failures are logged, never
// surfaced: a slow SMTP server must not stall the caller.
func (m *Manager) SubmitNotification(ctx context.Context, topicName string, data map[string]interface{}) error {
	t, ok := m.topics[topicName]
	if !ok {
		return nil
	}
	if !t.Filter(data) {
		return nil
	}
	go func() {
		if err := m.SubmitMessage(context.Background(), topicName, data); err != nil {
			klog.Errorf("failed to deliver notification for topic %s: %v", topicName, err)
		}
	}()
	return nil
}

// SubmitMessage builds and sends the messages for one event synchronously.
func (m *Manager) SubmitMessage(ctx context.Context, topicName string, data map[string]interface{}) error {
	t, exists := m.topics[topicName]
	if !exists {
		return nil
	}
	messages, err := t.BuildMessage(ctx, data)
	if err != nil {
		klog.Errorf("failed to build message for topic %s: %v", topicName, err)
		return err
	}
	for _, msg := range messages {
		channelNames := msg.GetChannels()
		for _, chName := range channelNames {
			ch, exists := m.channels[chName]
			if !exists {
				klog.Warningf("channel %s does not exist", chName)
				continue
			}
			if err := ch.Send(ctx, msg); err != nil {
				klog.Errorf("failed to send message to channel %s: %v", chName, err)
				return err
			}
		}
	}
	return nil
}
