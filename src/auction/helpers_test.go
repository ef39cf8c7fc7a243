package auction

import (
	"context"
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/require"
)

const (
	testEngineAccount = "0x000000000000000000000000000000000000e001"
	testMarketplace   = "0x000000000000000000000000000000000000f001"
	testAdmin         = "0x000000000000000000000000000000000000a001"
	testSeller        = "0x0000000000000000000000000000000000000001"
	testBidderA       = "0x0000000000000000000000000000000000000002"
	testBidderB       = "0x0000000000000000000000000000000000000003"
	testCreatorAddr   = "0x0000000000000000000000000000000000000004"
	testCollection    = "0x00000000000000000000000000000000000000c1"
)

// fakeCustody 内存托管注册表
type fakeCustody struct {
	owners    map[AssetRef]string
	approvals map[string]map[string]bool
	failNext  bool
}

func newFakeCustody() *fakeCustody {
	return &fakeCustody{
		owners:    make(map[AssetRef]string),
		approvals: make(map[string]map[string]bool),
	}
}

func (c *fakeCustody) setOwner(collection, tokenID, owner string) {
	c.owners[AssetRef{CollectionAddr: collection, TokenID: tokenID}] = owner
}

func (c *fakeCustody) approve(owner, operator string) {
	if c.approvals[owner] == nil {
		c.approvals[owner] = make(map[string]bool)
	}
	c.approvals[owner][operator] = true
}

func (c *fakeCustody) OwnerOf(_ context.Context, collection, tokenID string) (string, error) {
	return c.owners[AssetRef{CollectionAddr: collection, TokenID: tokenID}], nil
}

func (c *fakeCustody) IsApprovedForAll(_ context.Context, owner, operator string) (bool, error) {
	return c.approvals[owner][operator], nil
}

func (c *fakeCustody) TransferFrom(_ context.Context, from, to, collection, tokenID string) error {
	if c.failNext {
		c.failNext = false
		return errors.New("custody transfer refused")
	}
	ref := AssetRef{CollectionAddr: collection, TokenID: tokenID}
	if c.owners[ref] != from {
		return errors.New("transfer from non-owner")
	}
	c.owners[ref] = to
	return nil
}

// fakeRail 内存支付通道
// rejects 中的地址拒收直接转账, 用于验证托管兜底路径
type fakeRail struct {
	received map[string]uint64
	rejects  map[string]bool
}

func newFakeRail() *fakeRail {
	return &fakeRail{
		received: make(map[string]uint64),
		rejects:  make(map[string]bool),
	}
}

func (r *fakeRail) Transfer(_ context.Context, to string, amount uint64) error {
	if r.rejects[to] {
		return errors.New("recipient refused transfer")
	}
	r.received[to] += amount
	return nil
}

// fakeRoyalty 固定费率的版税提供方
type fakeRoyalty struct {
	recipient string
	pct       uint64
}

func (r *fakeRoyalty) RoyaltyFor(_ context.Context, _, _ string, saleAmount uint64) (string, uint64, error) {
	return r.recipient, saleAmount * r.pct / 100, nil
}

// fakeHeight 可手动推进的账本高度
type fakeHeight struct {
	height uint64
}

func (h *fakeHeight) CurrentHeight(context.Context) (uint64, error) {
	return h.height, nil
}

// fakeAdmin 固定管理员集合
type fakeAdmin struct {
	admins map[string]bool
}

func (a *fakeAdmin) IsAdministrator(caller string) bool {
	return a.admins[caller]
}

// recordNotifier 记录全部通知事件
type recordNotifier struct {
	events []Event
}

func (n *recordNotifier) Notify(event Event) {
	n.events = append(n.events, event)
}

func (n *recordNotifier) lastKind() string {
	if len(n.events) == 0 {
		return ""
	}
	return n.events[len(n.events)-1].Kind
}

// testEnv 单测引擎环境
type testEnv struct {
	engine   *Engine
	custody  *fakeCustody
	rail     *fakeRail
	royalty  *fakeRoyalty
	height   *fakeHeight
	notifier *recordNotifier
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	custody := newFakeCustody()
	rail := newFakeRail()
	royalty := &fakeRoyalty{recipient: testCreatorAddr, pct: 10}
	height := &fakeHeight{height: 100}
	notifier := &recordNotifier{}

	engine, err := New(context.Background(), Config{
		EngineAccount:        testEngineAccount,
		MarketplaceRecipient: testMarketplace,
		MaxSoldBatch:         DefaultMaxSoldBatch,
	}, Deps{
		Custody:  custody,
		Royalty:  royalty,
		Rail:     rail,
		Height:   height,
		Admin:    &fakeAdmin{admins: map[string]bool{testAdmin: true}},
		Notifier: notifier,
		Store:    NewMemoryStore(),
	})
	require.NoError(t, err)

	return &testEnv{
		engine:   engine,
		custody:  custody,
		rail:     rail,
		royalty:  royalty,
		height:   height,
		notifier: notifier,
	}
}

// giveAsset 让 seller 持有资产并授权引擎
func (env *testEnv) giveAsset(tokenID string) {
	env.custody.setOwner(testCollection, tokenID, testSeller)
	env.custody.approve(testSeller, testEngineAccount)
}
