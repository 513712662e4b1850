/*
 * Copyright (C) 2025-2026, YourCFP. All rights reserved.
 * See LICENSE for license information.
 */

package client

import (
	"context"

	"gorm.io/gorm/clause"

	"github.com/YourCFP/we-mp-rss/common/pkg/database/model"
)

// UpsertArticles inserts the uploaded batch with ON CONFLICT DO NOTHING and
// reports how many rows were genuinely new; rows already present keep their
// stored content.
func (c *Client) UpsertArticles(ctx context.Context, articles []*model.Article) (int64, error) {
	if len(articles) == 0 {
		return 0, nil
	}
	db, err := c.getGorm()
	if err != nil {
		return 0, err
	}

	result := db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "id"}},
		DoNothing: true,
	}).Create(&articles)
	if result.Error != nil {
		return 0, result.Error
	}
	return result.RowsAffected, nil
}
