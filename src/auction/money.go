package auction

import "math"

// 金额运算工具
// 金额使用 uint64 最小计价单位表示, 所有运算显式检查溢出:
// 溢出属于致命缺陷, 绝不允许静默回绕

// addAmount 检查加法
func addAmount(a, b uint64) (uint64, error) {
	if a > math.MaxUint64-b {
		return 0, ErrAmountOverflow
	}
	return a + b, nil
}

// subAmount 检查减法
func subAmount(a, b uint64) (uint64, error) {
	if b > a {
		return 0, ErrAmountOverflow
	}
	return a - b, nil
}

// pctAmount 计算 amount * pct / 100, 整数除法向零取整
// pct 已由 SettingsRegistry 约束在 [0,100], 这里仍做乘法溢出检查
func pctAmount(amount, pct uint64) (uint64, error) {
	if pct > 100 {
		return 0, ErrPctOutOfRange
	}
	if pct != 0 && amount > math.MaxUint64/pct {
		return 0, ErrAmountOverflow
	}
	return amount * pct / 100, nil
}
