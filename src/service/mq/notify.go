package mq

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"go.uber.org/zap"

	"github.com/ProjectsTask/EasySwapAuction/src/auction"
	"github.com/ProjectsTask/EasySwapAuction/src/pkg/logger/xzap"
	"github.com/ProjectsTask/EasySwapAuction/src/pkg/stores/xkv"
)

const CacheAuctionLifecycleQueueKey = "cache:%s:%s:auction:lifecycle:events"

func GetAuctionLifecycleQueueKey(project, chain string) string {
	return fmt.Sprintf(CacheAuctionLifecycleQueueKey, strings.ToLower(project), strings.ToLower(chain))
}

// QueuedEvent 入队的生命周期事件
// EventID 用于消费端去重
type QueuedEvent struct {
	EventID   string        `json:"event_id"`
	EmittedAt int64         `json:"emitted_at"`
	Payload   auction.Event `json:"payload"`
}

// LifecycleNotifier 生命周期事件发布器
// 将引擎状态迁移事件序列化后推送到 Redis Set 队列, 供索引器/推送服务消费
// 发布失败只记录日志, 不反向影响引擎状态迁移
type LifecycleNotifier struct {
	kvStore *xkv.Store
	queue   string
}

// NewLifecycleNotifier 创建事件发布器
func NewLifecycleNotifier(kvStore *xkv.Store, project, chain string) *LifecycleNotifier {
	return &LifecycleNotifier{
		kvStore: kvStore,
		queue:   GetAuctionLifecycleQueueKey(project, chain),
	}
}

// Notify 实现 auction.Notifier
func (n *LifecycleNotifier) Notify(event auction.Event) {
	if err := n.publish(event); err != nil {
		xzap.WithContext(context.Background()).Warn("failed on publish lifecycle event",
			zap.String("kind", event.Kind),
			zap.String("collection_addr", event.CollectionAddr),
			zap.String("token_id", event.TokenID),
			zap.Error(err))
	}
}

func (n *LifecycleNotifier) publish(event auction.Event) error {
	queued := QueuedEvent{
		EventID:   uuid.NewString(),
		EmittedAt: time.Now().UnixMilli(),
		Payload:   event,
	}

	rawInfo, err := json.Marshal(&queued)
	if err != nil {
		return errors.Wrap(err, "failed on marshal lifecycle event")
	}

	if _, err := n.kvStore.Sadd(n.queue, string(rawInfo)); err != nil {
		return errors.Wrap(err, "failed on push event to lifecycle queue")
	}
	return nil
}
