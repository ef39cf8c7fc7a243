package model

// 拍卖引擎持久化表结构
// 金额列统一使用无符号 bigint, 以最小计价单位存储

// ReserveAuction 保留价拍卖表
type ReserveAuction struct {
	Id              int64  `gorm:"column:id;primaryKey;autoIncrement"`
	CollectionAddr  string `gorm:"column:collection_addr;uniqueIndex:uk_asset;size:64"`
	TokenId         string `gorm:"column:token_id;uniqueIndex:uk_asset;size:128"`
	Creator         string `gorm:"column:creator;size:64"`
	Length          uint64 `gorm:"column:length"`
	StartedAtHeight uint64 `gorm:"column:started_at_height"`
	ReservePrice    uint64 `gorm:"column:reserve_price"`
	CreateTime      int64  `gorm:"column:create_time"`
	UpdateTime      int64  `gorm:"column:update_time"`
}

func ReserveAuctionTableName() string { return "ea_reserve_auction" }

func (ReserveAuction) TableName() string { return ReserveAuctionTableName() }

// ScheduledAuction 定时拍卖表
type ScheduledAuction struct {
	Id             int64  `gorm:"column:id;primaryKey;autoIncrement"`
	CollectionAddr string `gorm:"column:collection_addr;uniqueIndex:uk_asset;size:64"`
	TokenId        string `gorm:"column:token_id;uniqueIndex:uk_asset;size:128"`
	Creator        string `gorm:"column:creator;size:64"`
	Length         uint64 `gorm:"column:length"`
	StartingHeight uint64 `gorm:"column:starting_height"`
	MinimumBid     uint64 `gorm:"column:minimum_bid"`
	CreateTime     int64  `gorm:"column:create_time"`
	UpdateTime     int64  `gorm:"column:update_time"`
}

func ScheduledAuctionTableName() string { return "ea_scheduled_auction" }

func (ScheduledAuction) TableName() string { return ScheduledAuctionTableName() }

// ActiveBid 有效出价表, 每个资产至多一行
type ActiveBid struct {
	Id             int64  `gorm:"column:id;primaryKey;autoIncrement"`
	CollectionAddr string `gorm:"column:collection_addr;uniqueIndex:uk_asset;size:64"`
	TokenId        string `gorm:"column:token_id;uniqueIndex:uk_asset;size:128"`
	Bidder         string `gorm:"column:bidder;size:64"`
	FeePctSnapshot uint64 `gorm:"column:fee_pct_snapshot"`
	Amount         uint64 `gorm:"column:amount"`
	CreateTime     int64  `gorm:"column:create_time"`
	UpdateTime     int64  `gorm:"column:update_time"`
}

func ActiveBidTableName() string { return "ea_active_bid" }

func (ActiveBid) TableName() string { return ActiveBidTableName() }

// EscrowCredit 托管余额表
type EscrowCredit struct {
	Id         int64  `gorm:"column:id;primaryKey;autoIncrement"`
	Payee      string `gorm:"column:payee;uniqueIndex:uk_payee;size:64"`
	Balance    uint64 `gorm:"column:balance"`
	UpdateTime int64  `gorm:"column:update_time"`
}

func EscrowCreditTableName() string { return "ea_escrow_credit" }

func (EscrowCredit) TableName() string { return EscrowCreditTableName() }

// MarketplaceSetting 全局配置表 (单行)
type MarketplaceSetting struct {
	Id                int64  `gorm:"column:id;primaryKey"`
	MarketplaceFeePct uint64 `gorm:"column:marketplace_fee_pct"`
	UpdateTime        int64  `gorm:"column:update_time"`
}

func MarketplaceSettingTableName() string { return "ea_marketplace_setting" }

func (MarketplaceSetting) TableName() string { return MarketplaceSettingTableName() }

// CollectionFee 集合首次销售费率表
type CollectionFee struct {
	Id             int64  `gorm:"column:id;primaryKey;autoIncrement"`
	CollectionAddr string `gorm:"column:collection_addr;uniqueIndex:uk_collection;size:64"`
	FeePct         uint64 `gorm:"column:fee_pct"`
	UpdateTime     int64  `gorm:"column:update_time"`
}

func CollectionFeeTableName() string { return "ea_collection_fee" }

func (CollectionFee) TableName() string { return CollectionFeeTableName() }

// SoldFlag 首次销售完成标记表
type SoldFlag struct {
	Id             int64  `gorm:"column:id;primaryKey;autoIncrement"`
	CollectionAddr string `gorm:"column:collection_addr;uniqueIndex:uk_asset;size:64"`
	TokenId        string `gorm:"column:token_id;uniqueIndex:uk_asset;size:128"`
	Sold           bool   `gorm:"column:sold"`
	UpdateTime     int64  `gorm:"column:update_time"`
}

func SoldFlagTableName() string { return "ea_sold_flag" }

func (SoldFlag) TableName() string { return SoldFlagTableName() }

// Account 支付通道账户表
// Frozen 账户拒收直接转账, 对应支付会落入托管余额
type Account struct {
	Id         int64  `gorm:"column:id;primaryKey;autoIncrement"`
	Address    string `gorm:"column:address;uniqueIndex:uk_address;size:64"`
	Balance    uint64 `gorm:"column:balance"`
	Frozen     bool   `gorm:"column:frozen"`
	UpdateTime int64  `gorm:"column:update_time"`
}

func AccountTableName() string { return "ea_account" }

func (Account) TableName() string { return AccountTableName() }

// RoyaltyConfig 集合版税配置表
type RoyaltyConfig struct {
	Id             int64  `gorm:"column:id;primaryKey;autoIncrement"`
	CollectionAddr string `gorm:"column:collection_addr;uniqueIndex:uk_collection;size:64"`
	Recipient      string `gorm:"column:recipient;size:64"`
	FeePct         uint64 `gorm:"column:fee_pct"`
	UpdateTime     int64  `gorm:"column:update_time"`
}

func RoyaltyConfigTableName() string { return "ea_royalty_config" }

func (RoyaltyConfig) TableName() string { return RoyaltyConfigTableName() }

// CustodyHolder 资产持有登记表
type CustodyHolder struct {
	Id             int64  `gorm:"column:id;primaryKey;autoIncrement"`
	CollectionAddr string `gorm:"column:collection_addr;uniqueIndex:uk_asset;size:64"`
	TokenId        string `gorm:"column:token_id;uniqueIndex:uk_asset;size:128"`
	Owner          string `gorm:"column:owner;size:64"`
	UpdateTime     int64  `gorm:"column:update_time"`
}

func CustodyHolderTableName() string { return "ea_custody_holder" }

func (CustodyHolder) TableName() string { return CustodyHolderTableName() }

// CustodyApproval 转移授权登记表
type CustodyApproval struct {
	Id         int64  `gorm:"column:id;primaryKey;autoIncrement"`
	Owner      string `gorm:"column:owner;uniqueIndex:uk_owner_operator;size:64"`
	Operator   string `gorm:"column:operator;uniqueIndex:uk_owner_operator;size:64"`
	Approved   bool   `gorm:"column:approved"`
	UpdateTime int64  `gorm:"column:update_time"`
}

func CustodyApprovalTableName() string { return "ea_custody_approval" }

func (CustodyApproval) TableName() string { return CustodyApprovalTableName() }
