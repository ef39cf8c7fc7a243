package xkv

import (
	"github.com/zeromicro/go-zero/core/stores/kv"
)

// Store 键值存储 (Redis)
// 直接嵌入 go-zero 的 kv.Store, 对外暴露 Get/Setex/Sadd/Del 等能力
type Store struct {
	kv.Store
}

// NewStore 创建 KV 存储实例
func NewStore(c kv.KvConf) *Store {
	return &Store{
		Store: kv.NewStore(c),
	}
}
