/*
 * Copyright (C) 2025-2026, YourCFP. All rights reserved.
 * See LICENSE for license information.
 */

package worker

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"k8s.io/klog/v2"

	"github.com/YourCFP/we-mp-rss/agent/pkg/client"
	commonconfig "github.com/YourCFP/we-mp-rss/common/pkg/config"
	"github.com/YourCFP/we-mp-rss/utils/pkg/httpclient"
)

// Executor runs the actual content-gathering job for one task package. The
// concrete work (scraping, browser automation, formatting) lives behind this
// boundary.
type Executor interface {
	Execute(ctx context.Context, pkg *client.TaskPackage) ([]client.Article, []client.FeedResult, error)
}

// SyncServiceExecutor delegates each feed to a local sync service over HTTP.
// Feeds are processed sequentially with an individual wall-clock timeout; a
// feed that times out or errors is marked failed without aborting the rest.
type SyncServiceExecutor struct {
	httpClient  httpclient.Interface
	serviceUrl  string
	feedTimeout time.Duration
}

func NewSyncServiceExecutor(serviceUrl string) (*SyncServiceExecutor, error) {
	if serviceUrl == "" {
		return nil, fmt.Errorf("the sync service url is empty")
	}
	return &SyncServiceExecutor{
		httpClient:  httpclient.NewHttpClient(),
		serviceUrl:  serviceUrl,
		feedTimeout: time.Duration(commonconfig.GetFeedTimeoutSecond()) * time.Second,
	}, nil
}

type syncFeedRequest struct {
	FeedId     string `json:"feed_id"`
	FakerId    string `json:"faker_id,omitempty"`
	MpName     string `json:"mp_name,omitempty"`
	TaskId     string `json:"task_id"`
	WebHookUrl string `json:"web_hook_url,omitempty"`
	Headers    string `json:"headers,omitempty"`
	Cookies    string `json:"cookies,omitempty"`
}

type syncFeedResponse struct {
	Articles        []client.Article `json:"articles"`
	ArticleCount    int              `json:"article_count"`
	NewArticleCount int              `json:"new_article_count"`
	Error           string           `json:"error,omitempty"`
}

func (e *SyncServiceExecutor) Execute(ctx context.Context, pkg *client.TaskPackage) ([]client.Article, []client.FeedResult, error) {
	if pkg == nil {
		return nil, nil, fmt.Errorf("the task package is empty")
	}
	var articles []client.Article
	results := make([]client.FeedResult, 0, len(pkg.Feeds))
	for _, feed := range pkg.Feeds {
		result := e.executeFeed(ctx, pkg, feed)
		if result.Status == client.FeedResultSuccess {
			klog.Infof("feed %s synced %d article(s)", feed.Id, result.ArticleCount)
		} else {
			klog.Warningf("feed %s failed: %s", feed.Id, result.Error)
		}
		articles = append(articles, result.articles...)
		results = append(results, result.FeedResult)
	}
	return articles, results, nil
}

type feedOutcome struct {
	client.FeedResult
	articles []client.Article
}

func (e *SyncServiceExecutor) executeFeed(ctx context.Context, pkg *client.TaskPackage, feed client.FeedInfo) feedOutcome {
	outcome := feedOutcome{FeedResult: client.FeedResult{
		MpId:   feed.Id,
		MpName: feed.MpName,
		Status: client.FeedResultFailed,
	}}

	feedCtx, cancel := context.WithTimeout(ctx, e.feedTimeout)
	defer cancel()
	req, err := httpclient.BuildRequest(e.serviceUrl, http.MethodPost, &syncFeedRequest{
		FeedId:     feed.Id,
		FakerId:    feed.FakerId,
		MpName:     feed.MpName,
		TaskId:     pkg.TaskId,
		WebHookUrl: pkg.WebHookUrl,
		Headers:    pkg.Headers,
		Cookies:    pkg.Cookies,
	})
	if err != nil {
		outcome.Error = err.Error()
		return outcome
	}
	rsp, err := e.httpClient.Do(req.WithContext(feedCtx))
	if err != nil {
		if feedCtx.Err() == context.DeadlineExceeded {
			outcome.Error = fmt.Sprintf("feed sync timeout (>%ds)", int(e.feedTimeout.Seconds()))
		} else {
			outcome.Error = err.Error()
		}
		return outcome
	}
	if rsp.StatusCode != http.StatusOK {
		outcome.Error = fmt.Sprintf("sync service returned status %d", rsp.StatusCode)
		return outcome
	}
	var body syncFeedResponse
	if err = json.Unmarshal(rsp.Body, &body); err != nil {
		outcome.Error = fmt.Sprintf("invalid sync service response: %v", err)
		return outcome
	}
	if body.Error != "" {
		outcome.Error = body.Error
		return outcome
	}

	outcome.Status = client.FeedResultSuccess
	outcome.ArticleCount = body.ArticleCount
	if outcome.ArticleCount == 0 {
		outcome.ArticleCount = len(body.Articles)
	}
	outcome.NewArticleCount = body.NewArticleCount
	outcome.articles = body.Articles
	return outcome
}
