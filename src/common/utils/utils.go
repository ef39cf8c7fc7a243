package utils

import (
	"regexp"

	"github.com/ethereum/go-ethereum/common"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
	"github.com/pkg/errors"
)

var (
	// validatorM 存储自定义的验证器函数映射
	// key: 验证规则名称 ("symbol", "address")
	// value: 验证函数实现
	validatorM map[string]validator.Func
	// patternM 存储正则表达式模式映射
	patternM map[string]string
)

// init 初始化验证器和正则模式
func init() {
	validatorM = map[string]validator.Func{
		"symbol":  rightSymbol,     // 验证代币符号长度
		"address": regexpValidator, // 使用正则验证地址格式
	}
	patternM = map[string]string{
		// 以太坊地址正则: 0x开头,后接40位16进制字符
		"address": `^0x[a-fA-F0-9]{40}$`,
	}
}

var (
	// rightSymbol 验证代币符号(Symbol)是否合法: 必须是字符串且长度小于 10
	rightSymbol validator.Func = func(fl validator.FieldLevel) bool {
		symbol, ok := fl.Field().Interface().(string)
		if ok {
			return len(symbol) < 10
		}
		return false
	}

	// regexpValidator 通用正则验证器
	// 根据 tag 中指定的模式名称(如 "address")查找对应的正则表达式并进行匹配
	regexpValidator validator.Func = func(fl validator.FieldLevel) bool {
		key, _ := fl.Field().Interface().(string)
		pattern, ok := patternM[fl.GetTag()]
		if ok {
			match, _ := regexp.MatchString(pattern, key)
			return match
		}
		return false
	}
)

// RegisterValidators 将自定义验证规则注册到 gin 的 binding 校验器
// 在路由装配前调用一次
func RegisterValidators() error {
	v, ok := binding.Validator.Engine().(*validator.Validate)
	if !ok {
		return errors.New("unexpected binding validator engine")
	}
	for name, fn := range validatorM {
		if err := v.RegisterValidation(name, fn); err != nil {
			return errors.Wrap(err, "failed on register validator "+name)
		}
	}
	return nil
}

// ToValidateAddress 将以太坊地址转换为 EIP-55 校验和格式 (Checksum Address)
func ToValidateAddress(address string) string {
	return common.HexToAddress(address).Hex()
}

// IsHexAddress 校验字符串是否为合法的十六进制地址
func IsHexAddress(address string) bool {
	return common.IsHexAddress(address)
}
