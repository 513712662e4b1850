/*
 * Copyright (C) 2025-2026, YourCFP. All rights reserved.
 * See LICENSE for license information.
 */

package client

import (
	"context"
	"fmt"

	sqrl "github.com/Masterminds/squirrel"
)

const (
	TFeed = "feeds"
)

// SelectFeeds retrieves feeds based on query conditions.
func (c *Client) SelectFeeds(ctx context.Context, query sqrl.Sqlizer, orderBy []string, limit, offset int) ([]*Feed, error) {
	db, err := c.getDB()
	if err != nil {
		return nil, err
	}

	builder := sqrl.StatementBuilder.PlaceholderFormat(sqrl.Dollar).
		Select("*").From(TFeed)

	if query != nil {
		builder = builder.Where(query)
	}
	for _, order := range orderBy {
		builder = builder.OrderBy(order)
	}
	if limit > 0 {
		builder = builder.Limit(uint64(limit))
	}
	if offset > 0 {
		builder = builder.Offset(uint64(offset))
	}

	sql, args, err := builder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build select feeds query: %v", err)
	}

	var feeds []*Feed
	err = db.SelectContext(ctx, &feeds, sql, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to select feeds from db: %v", err)
	}
	return feeds, nil
}

// CountFeeds counts feeds based on query conditions.
func (c *Client) CountFeeds(ctx context.Context, query sqrl.Sqlizer) (int, error) {
	db, err := c.getDB()
	if err != nil {
		return 0, err
	}

	builder := sqrl.StatementBuilder.PlaceholderFormat(sqrl.Dollar).
		Select("COUNT(*)").From(TFeed)

	if query != nil {
		builder = builder.Where(query)
	}

	sql, args, err := builder.ToSql()
	if err != nil {
		return 0, fmt.Errorf("failed to build count feeds query: %v", err)
	}

	var count int
	err = db.GetContext(ctx, &count, sql, args...)
	if err != nil {
		return 0, fmt.Errorf("failed to count feeds from db: %v", err)
	}
	return count, nil
}

// GetFeedsByIds loads the given feeds preserving the input order; ids with
// no matching row are silently dropped (the task package carries what the
// catalog still knows).
func (c *Client) GetFeedsByIds(ctx context.Context, feedIds []string) ([]*Feed, error) {
	if len(feedIds) == 0 {
		return nil, nil
	}
	dbTags := GetFeedFieldTags()
	feeds, err := c.SelectFeeds(ctx, sqrl.Eq{GetFieldTag(dbTags, "Id"): feedIds}, nil, 0, 0)
	if err != nil {
		return nil, err
	}
	byId := make(map[string]*Feed, len(feeds))
	for _, feed := range feeds {
		byId[feed.Id] = feed
	}
	ordered := make([]*Feed, 0, len(feedIds))
	for _, id := range feedIds {
		if feed, ok := byId[id]; ok {
			ordered = append(ordered, feed)
		}
	}
	return ordered, nil
}
