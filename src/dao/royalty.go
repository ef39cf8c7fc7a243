package dao

import (
	"context"

	"github.com/pkg/errors"
	"gorm.io/gorm"

	"github.com/ProjectsTask/EasySwapAuction/src/dao/model"
)

// RoyaltyRegistry 集合版税查询, 语义对齐 royaltyInfo
// 未配置版税的集合返回零金额
type RoyaltyRegistry struct {
	dao *Dao
}

func NewRoyaltyRegistry(dao *Dao) *RoyaltyRegistry {
	return &RoyaltyRegistry{dao: dao}
}

func (r *RoyaltyRegistry) RoyaltyFor(ctx context.Context, collection, tokenID string, saleAmount uint64) (string, uint64, error) {
	var config model.RoyaltyConfig
	err := r.dao.DB.WithContext(ctx).Table(model.RoyaltyConfigTableName()).
		Where("collection_addr = ?", collection).First(&config).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return "", 0, nil
	}
	if err != nil {
		return "", 0, errors.Wrap(err, "failed on query royalty config")
	}
	if config.FeePct > 100 {
		return "", 0, errors.New("royalty pct out of range")
	}
	if saleAmount > 0 && config.FeePct > 0 && saleAmount > (^uint64(0))/config.FeePct {
		return "", 0, errors.New("royalty amount overflow")
	}
	return config.Recipient, saleAmount * config.FeePct / 100, nil
}
