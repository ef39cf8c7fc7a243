package dao

import (
	"context"
	"time"

	"github.com/pkg/errors"
	"gorm.io/gorm/clause"

	"github.com/ProjectsTask/EasySwapAuction/src/auction"
	"github.com/ProjectsTask/EasySwapAuction/src/dao/model"
)

// EngineStore 引擎状态落库实现
// 内存状态为权威, 这里负责 write-through 与启动恢复
type EngineStore struct {
	dao *Dao
}

// NewEngineStore 创建引擎持久化存储
func NewEngineStore(dao *Dao) *EngineStore {
	return &EngineStore{dao: dao}
}

// Load 加载全量引擎状态快照
func (s *EngineStore) Load(ctx context.Context) (*auction.Snapshot, error) {
	snap := &auction.Snapshot{
		CollectionFeePct:  make(map[string]uint64),
		Sold:              make(map[auction.AssetRef]bool),
		EscrowCredits:     make(map[string]uint64),
		ReserveAuctions:   make(map[auction.AssetRef]auction.ReserveAuction),
		ScheduledAuctions: make(map[auction.AssetRef]auction.ScheduledAuction),
		Bids:              make(map[auction.AssetRef]auction.ActiveBid),
	}

	var setting model.MarketplaceSetting
	if err := s.dao.DB.WithContext(ctx).Table(model.MarketplaceSettingTableName()).
		Where("id = ?", 1).Find(&setting).Error; err != nil {
		return nil, errors.Wrap(err, "failed on load marketplace setting")
	}
	snap.MarketplaceFeePct = setting.MarketplaceFeePct

	var fees []model.CollectionFee
	if err := s.dao.DB.WithContext(ctx).Table(model.CollectionFeeTableName()).
		Find(&fees).Error; err != nil {
		return nil, errors.Wrap(err, "failed on load collection fees")
	}
	for _, fee := range fees {
		snap.CollectionFeePct[fee.CollectionAddr] = fee.FeePct
	}

	var soldFlags []model.SoldFlag
	if err := s.dao.DB.WithContext(ctx).Table(model.SoldFlagTableName()).
		Where("sold = ?", true).Find(&soldFlags).Error; err != nil {
		return nil, errors.Wrap(err, "failed on load sold flags")
	}
	for _, flag := range soldFlags {
		snap.Sold[auction.AssetRef{CollectionAddr: flag.CollectionAddr, TokenID: flag.TokenId}] = true
	}

	var credits []model.EscrowCredit
	if err := s.dao.DB.WithContext(ctx).Table(model.EscrowCreditTableName()).
		Where("balance > 0").Find(&credits).Error; err != nil {
		return nil, errors.Wrap(err, "failed on load escrow credits")
	}
	for _, credit := range credits {
		snap.EscrowCredits[credit.Payee] = credit.Balance
	}

	var reserves []model.ReserveAuction
	if err := s.dao.DB.WithContext(ctx).Table(model.ReserveAuctionTableName()).
		Find(&reserves).Error; err != nil {
		return nil, errors.Wrap(err, "failed on load reserve auctions")
	}
	for _, rec := range reserves {
		snap.ReserveAuctions[auction.AssetRef{CollectionAddr: rec.CollectionAddr, TokenID: rec.TokenId}] = auction.ReserveAuction{
			Creator:         rec.Creator,
			Length:          rec.Length,
			StartedAtHeight: rec.StartedAtHeight,
			ReservePrice:    rec.ReservePrice,
		}
	}

	var scheduled []model.ScheduledAuction
	if err := s.dao.DB.WithContext(ctx).Table(model.ScheduledAuctionTableName()).
		Find(&scheduled).Error; err != nil {
		return nil, errors.Wrap(err, "failed on load scheduled auctions")
	}
	for _, rec := range scheduled {
		snap.ScheduledAuctions[auction.AssetRef{CollectionAddr: rec.CollectionAddr, TokenID: rec.TokenId}] = auction.ScheduledAuction{
			Creator:        rec.Creator,
			Length:         rec.Length,
			StartingHeight: rec.StartingHeight,
			MinimumBid:     rec.MinimumBid,
		}
	}

	var bids []model.ActiveBid
	if err := s.dao.DB.WithContext(ctx).Table(model.ActiveBidTableName()).
		Find(&bids).Error; err != nil {
		return nil, errors.Wrap(err, "failed on load active bids")
	}
	for _, bid := range bids {
		snap.Bids[auction.AssetRef{CollectionAddr: bid.CollectionAddr, TokenID: bid.TokenId}] = auction.ActiveBid{
			Bidder:         bid.Bidder,
			FeePctSnapshot: bid.FeePctSnapshot,
			Amount:         bid.Amount,
		}
	}

	return snap, nil
}

// SaveMarketplaceFeePct 保存全局平台费率 (单行 upsert)
func (s *EngineStore) SaveMarketplaceFeePct(ctx context.Context, pct uint64) error {
	setting := model.MarketplaceSetting{
		Id:                1,
		MarketplaceFeePct: pct,
		UpdateTime:        time.Now().UnixMilli(),
	}
	if err := s.dao.DB.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "id"}},
			DoUpdates: clause.AssignmentColumns([]string{"marketplace_fee_pct", "update_time"}),
		}).Create(&setting).Error; err != nil {
		return errors.Wrap(err, "failed on save marketplace fee pct")
	}
	return nil
}

// SaveCollectionFeePct 保存集合首次销售费率
func (s *EngineStore) SaveCollectionFeePct(ctx context.Context, collection string, pct uint64) error {
	fee := model.CollectionFee{
		CollectionAddr: collection,
		FeePct:         pct,
		UpdateTime:     time.Now().UnixMilli(),
	}
	if err := s.dao.DB.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "collection_addr"}},
			DoUpdates: clause.AssignmentColumns([]string{"fee_pct", "update_time"}),
		}).Create(&fee).Error; err != nil {
		return errors.Wrap(err, "failed on save collection fee pct")
	}
	return nil
}

// SaveSoldFlags 批量保存已售标记
func (s *EngineStore) SaveSoldFlags(ctx context.Context, collection string, tokenIDs []string, sold bool) error {
	now := time.Now().UnixMilli()
	flags := make([]model.SoldFlag, 0, len(tokenIDs))
	for _, tokenID := range tokenIDs {
		flags = append(flags, model.SoldFlag{
			CollectionAddr: collection,
			TokenId:        tokenID,
			Sold:           sold,
			UpdateTime:     now,
		})
	}
	if len(flags) == 0 {
		return nil
	}
	if err := s.dao.DB.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "collection_addr"}, {Name: "token_id"}},
			DoUpdates: clause.AssignmentColumns([]string{"sold", "update_time"}),
		}).Create(&flags).Error; err != nil {
		return errors.Wrap(err, "failed on save sold flags")
	}
	return nil
}

// SaveReserveAuction 保存保留价拍卖记录
func (s *EngineStore) SaveReserveAuction(ctx context.Context, ref auction.AssetRef, rec auction.ReserveAuction) error {
	now := time.Now().UnixMilli()
	row := model.ReserveAuction{
		CollectionAddr:  ref.CollectionAddr,
		TokenId:         ref.TokenID,
		Creator:         rec.Creator,
		Length:          rec.Length,
		StartedAtHeight: rec.StartedAtHeight,
		ReservePrice:    rec.ReservePrice,
		CreateTime:      now,
		UpdateTime:      now,
	}
	if err := s.dao.DB.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "collection_addr"}, {Name: "token_id"}},
			DoUpdates: clause.AssignmentColumns([]string{"creator", "length", "started_at_height", "reserve_price", "update_time"}),
		}).Create(&row).Error; err != nil {
		return errors.Wrap(err, "failed on save reserve auction")
	}
	return nil
}

// DeleteReserveAuction 删除保留价拍卖记录
func (s *EngineStore) DeleteReserveAuction(ctx context.Context, ref auction.AssetRef) error {
	if err := s.dao.DB.WithContext(ctx).Table(model.ReserveAuctionTableName()).
		Where("collection_addr = ? and token_id = ?", ref.CollectionAddr, ref.TokenID).
		Delete(&model.ReserveAuction{}).Error; err != nil {
		return errors.Wrap(err, "failed on delete reserve auction")
	}
	return nil
}

// SaveScheduledAuction 保存定时拍卖记录
func (s *EngineStore) SaveScheduledAuction(ctx context.Context, ref auction.AssetRef, rec auction.ScheduledAuction) error {
	now := time.Now().UnixMilli()
	row := model.ScheduledAuction{
		CollectionAddr: ref.CollectionAddr,
		TokenId:        ref.TokenID,
		Creator:        rec.Creator,
		Length:         rec.Length,
		StartingHeight: rec.StartingHeight,
		MinimumBid:     rec.MinimumBid,
		CreateTime:     now,
		UpdateTime:     now,
	}
	if err := s.dao.DB.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "collection_addr"}, {Name: "token_id"}},
			DoUpdates: clause.AssignmentColumns([]string{"creator", "length", "starting_height", "minimum_bid", "update_time"}),
		}).Create(&row).Error; err != nil {
		return errors.Wrap(err, "failed on save scheduled auction")
	}
	return nil
}

// DeleteScheduledAuction 删除定时拍卖记录
func (s *EngineStore) DeleteScheduledAuction(ctx context.Context, ref auction.AssetRef) error {
	if err := s.dao.DB.WithContext(ctx).Table(model.ScheduledAuctionTableName()).
		Where("collection_addr = ? and token_id = ?", ref.CollectionAddr, ref.TokenID).
		Delete(&model.ScheduledAuction{}).Error; err != nil {
		return errors.Wrap(err, "failed on delete scheduled auction")
	}
	return nil
}

// SaveBid 保存有效出价
func (s *EngineStore) SaveBid(ctx context.Context, ref auction.AssetRef, bid auction.ActiveBid) error {
	now := time.Now().UnixMilli()
	row := model.ActiveBid{
		CollectionAddr: ref.CollectionAddr,
		TokenId:        ref.TokenID,
		Bidder:         bid.Bidder,
		FeePctSnapshot: bid.FeePctSnapshot,
		Amount:         bid.Amount,
		CreateTime:     now,
		UpdateTime:     now,
	}
	if err := s.dao.DB.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "collection_addr"}, {Name: "token_id"}},
			DoUpdates: clause.AssignmentColumns([]string{"bidder", "fee_pct_snapshot", "amount", "update_time"}),
		}).Create(&row).Error; err != nil {
		return errors.Wrap(err, "failed on save bid")
	}
	return nil
}

// DeleteBid 删除有效出价
func (s *EngineStore) DeleteBid(ctx context.Context, ref auction.AssetRef) error {
	if err := s.dao.DB.WithContext(ctx).Table(model.ActiveBidTableName()).
		Where("collection_addr = ? and token_id = ?", ref.CollectionAddr, ref.TokenID).
		Delete(&model.ActiveBid{}).Error; err != nil {
		return errors.Wrap(err, "failed on delete bid")
	}
	return nil
}

// SaveEscrowCredit 保存托管余额
func (s *EngineStore) SaveEscrowCredit(ctx context.Context, payee string, balance uint64) error {
	credit := model.EscrowCredit{
		Payee:      payee,
		Balance:    balance,
		UpdateTime: time.Now().UnixMilli(),
	}
	if err := s.dao.DB.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "payee"}},
			DoUpdates: clause.AssignmentColumns([]string{"balance", "update_time"}),
		}).Create(&credit).Error; err != nil {
		return errors.Wrap(err, "failed on save escrow credit")
	}
	return nil
}
