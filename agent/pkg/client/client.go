/*
 * Copyright (C) 2025-2026, YourCFP. All rights reserved.
 * See LICENSE for license information.
 */

package client

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"k8s.io/klog/v2"

	"github.com/YourCFP/we-mp-rss/common/pkg/common"
	"github.com/YourCFP/we-mp-rss/utils/pkg/backoff"
	"github.com/YourCFP/we-mp-rss/utils/pkg/httpclient"
)

const (
	uploadMaxWait  = 15 * time.Second
	uploadInterval = 2 * time.Second
)

// Client talks to the coordinator's cascade API with AK-SK authentication.
// Credentials and the base URL are sanitized on construction; both usually
// arrive from a hand-edited config file.
type Client struct {
	httpClient httpclient.Interface
	baseUrl    string
	apiKey     string
	apiSecret  string
}

func NewClient(baseUrl, apiKey, apiSecret string) (*Client, error) {
	baseUrl = strings.TrimRight(common.Sanitize(baseUrl), "/")
	apiKey = common.Sanitize(apiKey)
	apiSecret = common.Sanitize(apiSecret)
	if baseUrl == "" {
		return nil, fmt.Errorf("the coordinator url is empty")
	}
	if apiKey == "" || apiSecret == "" {
		return nil, fmt.Errorf("the node credentials are empty")
	}
	return &Client{
		httpClient: httpclient.NewHttpClient(),
		baseUrl:    baseUrl,
		apiKey:     apiKey,
		apiSecret:  apiSecret,
	}, nil
}

// envelope is the coordinator's uniform response shape.
type envelope struct {
	Code    int             `json:"code"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
}

func (c *Client) url(path string) string {
	return fmt.Sprintf("%s/%s/cascade/%s", c.baseUrl, common.WeRssRouterRootPath, path)
}

func (c *Client) authHeader() (string, string) {
	return common.AuthorizationHeader, common.AkSkScheme + c.apiKey + ":" + c.apiSecret
}

// call runs one authenticated round trip and unmarshals the envelope data
// into out (when out is non-nil and data is present).
func (c *Client) call(method, path string, body, out interface{}) error {
	headerKey, headerVal := c.authHeader()
	var rsp *httpclient.Result
	var err error
	url := c.url(path)
	switch method {
	case http.MethodGet:
		rsp, err = c.httpClient.Get(url, headerKey, headerVal)
	case http.MethodPut:
		rsp, err = c.httpClient.Put(url, body, headerKey, headerVal)
	default:
		rsp, err = c.httpClient.Post(url, body, headerKey, headerVal)
	}
	if err != nil {
		return err
	}
	var env envelope
	if err = json.Unmarshal(rsp.Body, &env); err != nil {
		return fmt.Errorf("invalid response from %s (status %d): %v", path, rsp.StatusCode, err)
	}
	if rsp.StatusCode != http.StatusOK || env.Code != 0 {
		return fmt.Errorf("%s returned status %d code %d: %s", path, rsp.StatusCode, env.Code, env.Message)
	}
	if out != nil && len(env.Data) > 0 && string(env.Data) != "null" {
		if err = json.Unmarshal(env.Data, out); err != nil {
			return fmt.Errorf("invalid data from %s: %v", path, err)
		}
	}
	return nil
}

func (c *Client) Heartbeat() error {
	return c.call(http.MethodPost, "heartbeat", nil, nil)
}

// ClaimTask asks for work. A nil package with nil error means the queue is
// empty.
func (c *Client) ClaimTask() (*TaskPackage, error) {
	pkg := &TaskPackage{}
	if err := c.call(http.MethodPost, "claim-task", nil, pkg); err != nil {
		return nil, err
	}
	if pkg.AllocationId == "" {
		return nil, nil
	}
	return pkg, nil
}

func (c *Client) UpdateTaskStatus(allocationId, status, errorMessage string) error {
	body := map[string]string{
		"allocation_id": allocationId,
		"status":        status,
	}
	if errorMessage != "" {
		body["error_message"] = errorMessage
	}
	return c.call(http.MethodPut, "task-status", body, nil)
}

// UploadArticles pushes one batch; transient failures are retried with
// bounded exponential backoff. Re-uploading the same articles is harmless,
// the coordinator only counts fresh rows.
func (c *Client) UploadArticles(allocationId string, articles []Article) error {
	if len(articles) == 0 {
		return nil
	}
	body := map[string]interface{}{
		"allocation_id": allocationId,
		"articles":      articles,
	}
	err := backoff.Retry(func() error {
		return c.call(http.MethodPost, "upload-articles", body, nil)
	}, uploadMaxWait, uploadInterval)
	if err != nil {
		klog.ErrorS(err, "failed to upload articles", "allocation", allocationId, "count", len(articles))
	}
	return err
}

func (c *Client) ReportCompletion(allocationId, taskId string, results []FeedResult, articleCount int) error {
	body := map[string]interface{}{
		"allocation_id": allocationId,
		"task_id":       taskId,
		"results":       results,
		"article_count": articleCount,
	}
	err := backoff.Retry(func() error {
		return c.call(http.MethodPost, "report-completion", body, nil)
	}, uploadMaxWait, uploadInterval)
	if err != nil {
		klog.ErrorS(err, "failed to report completion", "allocation", allocationId)
	}
	return err
}

// SyncFeeds pulls the full feed catalog from the coordinator.
func (c *Client) SyncFeeds() ([]WorkerFeed, error) {
	rsp := &struct {
		List  []WorkerFeed `json:"list"`
		Total int          `json:"total"`
	}{}
	if err := c.call(http.MethodGet, "feeds", nil, rsp); err != nil {
		return nil, err
	}
	return rsp.List, nil
}
