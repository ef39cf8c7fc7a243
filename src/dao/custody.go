package dao

import (
	"context"
	"time"

	"github.com/pkg/errors"
	"gorm.io/gorm"

	"github.com/ProjectsTask/EasySwapAuction/src/dao/model"
)

// CustodyRegistry 资产托管登记实现
// 持有人与授权关系均以数据库登记为准
type CustodyRegistry struct {
	dao *Dao
}

func NewCustodyRegistry(dao *Dao) *CustodyRegistry {
	return &CustodyRegistry{dao: dao}
}

// OwnerOf 查询资产当前持有人
func (c *CustodyRegistry) OwnerOf(ctx context.Context, collection, tokenID string) (string, error) {
	var holder model.CustodyHolder
	err := c.dao.DB.WithContext(ctx).Table(model.CustodyHolderTableName()).
		Where("collection_addr = ? and token_id = ?", collection, tokenID).
		First(&holder).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return "", errors.New("asset not registered")
	}
	if err != nil {
		return "", errors.Wrap(err, "failed on query custody holder")
	}
	return holder.Owner, nil
}

// IsApprovedForAll 查询 owner 是否已授权 operator
func (c *CustodyRegistry) IsApprovedForAll(ctx context.Context, owner, operator string) (bool, error) {
	var approval model.CustodyApproval
	err := c.dao.DB.WithContext(ctx).Table(model.CustodyApprovalTableName()).
		Where("owner = ? and operator = ?", owner, operator).
		First(&approval).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return false, nil
	}
	if err != nil {
		return false, errors.Wrap(err, "failed on query custody approval")
	}
	return approval.Approved, nil
}

// TransferFrom 转移资产持有权, from 不是当前持有人时拒绝
func (c *CustodyRegistry) TransferFrom(ctx context.Context, from, to, collection, tokenID string) error {
	result := c.dao.DB.WithContext(ctx).Table(model.CustodyHolderTableName()).
		Where("collection_addr = ? and token_id = ? and owner = ?", collection, tokenID, from).
		Updates(map[string]interface{}{
			"owner":       to,
			"update_time": time.Now().UnixMilli(),
		})
	if result.Error != nil {
		return errors.Wrap(result.Error, "failed on transfer custody")
	}
	if result.RowsAffected == 0 {
		return errors.New("from is not current holder")
	}
	return nil
}
