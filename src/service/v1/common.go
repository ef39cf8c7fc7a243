package service

import (
	"fmt"
	"strings"

	"github.com/pkg/errors"
	"github.com/shopspring/decimal"

	"github.com/ProjectsTask/EasySwapAuction/src/pkg/errcode"
)

// CacheAuctionDetailsKeyPrefix 拍卖详情缓存键
const CacheAuctionDetailsKeyPrefix = "cache:%s:%s:auction:%s:%s"

// CacheAuctionDetailsPeriod 缓存过期时间 (秒)
const CacheAuctionDetailsPeriod = 60

func getAuctionDetailsCacheKey(project, chain, collectionAddr, tokenID string) string {
	return fmt.Sprintf(CacheAuctionDetailsKeyPrefix,
		strings.ToLower(project), strings.ToLower(chain), strings.ToLower(collectionAddr), tokenID)
}

// toAmount 将十进制金额转换为最小计价单位的无符号整数
// 拒绝负数, 小数和超出 uint64 范围的值
func toAmount(d decimal.Decimal) (uint64, error) {
	if d.IsNegative() {
		return 0, errcode.NewCustomErr("amount must not be negative")
	}
	if !d.IsInteger() {
		return 0, errcode.NewCustomErr("amount must be an integer of minimal units")
	}
	bi := d.BigInt()
	if !bi.IsUint64() {
		return 0, errcode.NewCustomErr("amount out of range")
	}
	return bi.Uint64(), nil
}

// asBusinessErr 将引擎前置条件错误转换为业务错误返回给前端
// 根因消息透出, 调用栈不透出
func asBusinessErr(err error) error {
	if err == nil {
		return nil
	}
	if e, ok := err.(*errcode.Err); ok {
		return e
	}
	return errcode.NewCustomErr(errors.Cause(err).Error())
}
