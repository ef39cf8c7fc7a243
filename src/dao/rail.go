package dao

import (
	"context"
	"time"

	"github.com/pkg/errors"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/ProjectsTask/EasySwapAuction/src/dao/model"
)

// AccountRail 基于账户表的支付通道实现
// 冻结账户拒收转账, 由调用方 (PaymentDispatcher) 负责转入托管
type AccountRail struct {
	dao *Dao
}

func NewAccountRail(dao *Dao) *AccountRail {
	return &AccountRail{dao: dao}
}

// Transfer 给目标账户入账
func (r *AccountRail) Transfer(ctx context.Context, to string, amount uint64) error {
	return r.dao.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var account model.Account
		err := tx.Table(model.AccountTableName()).
			Where("address = ?", to).First(&account).Error
		if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
			return errors.Wrap(err, "failed on query account")
		}
		if account.Frozen {
			return errors.New("account is frozen")
		}

		now := time.Now().UnixMilli()
		row := model.Account{
			Address:    to,
			Balance:    account.Balance + amount,
			UpdateTime: now,
		}
		if err := tx.Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "address"}},
			DoUpdates: clause.AssignmentColumns([]string{"balance", "update_time"}),
		}).Create(&row).Error; err != nil {
			return errors.Wrap(err, "failed on credit account")
		}
		return nil
	})
}
