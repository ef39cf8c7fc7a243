package v1_test

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ProjectsTask/EasySwapAuction/src/api/router"
	"github.com/ProjectsTask/EasySwapAuction/src/auction"
	"github.com/ProjectsTask/EasySwapAuction/src/config"
	"github.com/ProjectsTask/EasySwapAuction/src/pkg/errcode"
	"github.com/ProjectsTask/EasySwapAuction/src/service/svc"
)

// 测试地址全部使用数字地址, EIP-55 规范化后保持不变
const (
	testEngineAccount = "0x1000000000000000000000000000000000000001"
	testMarketplace   = "0x2000000000000000000000000000000000000002"
	testAdmin         = "0x3000000000000000000000000000000000000003"
	testSeller        = "0x4000000000000000000000000000000000000004"
	testBidder        = "0x5000000000000000000000000000000000000005"
	testCreator       = "0x6000000000000000000000000000000000000006"
	testCollection    = "0x7000000000000000000000000000000000000007"
)

type fakeCustody struct {
	owners    map[string]string
	approvals map[string]bool
}

func newFakeCustody() *fakeCustody {
	return &fakeCustody{owners: make(map[string]string), approvals: make(map[string]bool)}
}

func assetKey(collection, tokenID string) string { return collection + "/" + tokenID }

func (f *fakeCustody) OwnerOf(ctx context.Context, collection, tokenID string) (string, error) {
	owner, ok := f.owners[assetKey(collection, tokenID)]
	if !ok {
		return "", errors.New("asset not registered")
	}
	return owner, nil
}

func (f *fakeCustody) IsApprovedForAll(ctx context.Context, owner, operator string) (bool, error) {
	return f.approvals[owner+"/"+operator], nil
}

func (f *fakeCustody) TransferFrom(ctx context.Context, from, to, collection, tokenID string) error {
	if f.owners[assetKey(collection, tokenID)] != from {
		return errors.New("from is not current holder")
	}
	f.owners[assetKey(collection, tokenID)] = to
	return nil
}

type fakeRail struct {
	received map[string]uint64
}

func (f *fakeRail) Transfer(ctx context.Context, to string, amount uint64) error {
	f.received[to] += amount
	return nil
}

type fakeRoyalty struct {
	recipient string
	pct       uint64
}

func (f *fakeRoyalty) RoyaltyFor(ctx context.Context, collection, tokenID string, saleAmount uint64) (string, uint64, error) {
	return f.recipient, saleAmount * f.pct / 100, nil
}

type fakeHeight struct{ height uint64 }

func (f *fakeHeight) CurrentHeight(ctx context.Context) (uint64, error) { return f.height, nil }

type fakeAdmin struct{ admin string }

func (f *fakeAdmin) IsAdministrator(caller string) bool { return caller == f.admin }

type testEnv struct {
	router  *gin.Engine
	custody *fakeCustody
	rail    *fakeRail
	height  *fakeHeight
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	gin.SetMode(gin.TestMode)

	custody := newFakeCustody()
	rail := &fakeRail{received: make(map[string]uint64)}
	height := &fakeHeight{height: 100}

	engine, err := auction.New(context.Background(),
		auction.Config{
			EngineAccount:        testEngineAccount,
			MarketplaceRecipient: testMarketplace,
		},
		auction.Deps{
			Custody: custody,
			Royalty: &fakeRoyalty{recipient: testCreator, pct: 10},
			Rail:    rail,
			Height:  height,
			Admin:   &fakeAdmin{admin: testAdmin},
		})
	require.NoError(t, err)

	svcCtx := svc.NewServerCtx(svc.WithEngine(engine))
	svcCtx.C = &config.Config{
		ProjectCfg: config.ProjectCfg{Name: "easyswap"},
		ChainCfg:   config.ChainCfg{Name: "eth"},
	}

	return &testEnv{
		router:  router.NewRouter(svcCtx),
		custody: custody,
		rail:    rail,
		height:  height,
	}
}

// giveAsset 登记资产归属并授权引擎
func (e *testEnv) giveAsset(owner, tokenID string) {
	e.custody.owners[assetKey(testCollection, tokenID)] = owner
	e.custody.approvals[owner+"/"+testEngineAccount] = true
}

type apiResp struct {
	Code int             `json:"code"`
	Msg  string          `json:"msg"`
	Data json.RawMessage `json:"data"`
}

func (e *testEnv) do(t *testing.T, method, path string, body interface{}) apiResp {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	e.router.ServeHTTP(w, req)

	var resp apiResp
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp), "body: %s", w.Body.String())
	return resp
}

func TestCreateReserveAuctionValidatesAddress(t *testing.T) {
	env := newTestEnv(t)

	resp := env.do(t, http.MethodPost, "/api/v1/auctions/reserve", gin.H{
		"caller":          "not-an-address",
		"collection_addr": testCollection,
		"token_id":        "1",
		"reserve_price":   "1000",
		"length":          10,
	})
	assert.Equal(t, errcode.CodeInvalidParams, resp.Code)
}

func TestReserveAuctionLifecycle(t *testing.T) {
	env := newTestEnv(t)
	env.giveAsset(testSeller, "1")

	resp := env.do(t, http.MethodPost, "/api/v1/auctions/reserve", gin.H{
		"caller":          testSeller,
		"collection_addr": testCollection,
		"token_id":        "1",
		"reserve_price":   "1000",
		"length":          10,
	})
	require.Equal(t, errcode.CodeOK, resp.Code, resp.Msg)

	// 详情返回保留价拍卖
	resp = env.do(t, http.MethodGet, fmt.Sprintf("/api/v1/auctions/%s/1", testCollection), nil)
	require.Equal(t, errcode.CodeOK, resp.Code)
	var details struct {
		Result struct {
			Kind         int    `json:"kind"`
			Creator      string `json:"creator"`
			ReservePrice string `json:"reserve_price"`
		} `json:"result"`
	}
	require.NoError(t, json.Unmarshal(resp.Data, &details))
	assert.Equal(t, auction.AuctionKindReserve, details.Result.Kind)
	assert.Equal(t, testSeller, details.Result.Creator)
	assert.Equal(t, "1000", details.Result.ReservePrice)

	// 低于保留价的出价被拒绝
	resp = env.do(t, http.MethodPost, "/api/v1/auctions/bids", gin.H{
		"caller":          testBidder,
		"collection_addr": testCollection,
		"token_id":        "1",
		"amount":          "500",
	})
	assert.Equal(t, errcode.CodeCustom, resp.Code)

	// 达到保留价的出价开始拍卖
	resp = env.do(t, http.MethodPost, "/api/v1/auctions/bids", gin.H{
		"caller":          testBidder,
		"collection_addr": testCollection,
		"token_id":        "1",
		"amount":          "1000",
	})
	require.Equal(t, errcode.CodeOK, resp.Code, resp.Msg)

	// 届满前结算被拒绝
	resp = env.do(t, http.MethodPost, "/api/v1/auctions/settle", gin.H{
		"caller":          testSeller,
		"collection_addr": testCollection,
		"token_id":        "1",
	})
	assert.Equal(t, errcode.CodeCustom, resp.Code)

	// 时长届满后结算: 资产归出价人, 卖家收款, 资产标记已售
	env.height.height = 110
	resp = env.do(t, http.MethodPost, "/api/v1/auctions/settle", gin.H{
		"caller":          testSeller,
		"collection_addr": testCollection,
		"token_id":        "1",
	})
	require.Equal(t, errcode.CodeOK, resp.Code, resp.Msg)
	assert.Equal(t, testBidder, env.custody.owners[assetKey(testCollection, "1")])
	assert.Equal(t, uint64(1000), env.rail.received[testSeller])

	resp = env.do(t, http.MethodGet, fmt.Sprintf("/api/v1/admin/items/sold/%s/1", testCollection), nil)
	require.Equal(t, errcode.CodeOK, resp.Code)
	var sold struct {
		Sold bool `json:"sold"`
	}
	require.NoError(t, json.Unmarshal(resp.Data, &sold))
	assert.True(t, sold.Sold)
}

func TestScheduledAuctionEscrowsAsset(t *testing.T) {
	env := newTestEnv(t)
	env.giveAsset(testSeller, "2")

	resp := env.do(t, http.MethodPost, "/api/v1/auctions/scheduled", gin.H{
		"caller":          testSeller,
		"collection_addr": testCollection,
		"token_id":        "2",
		"minimum_bid":     "100",
		"length":          10,
		"starting_height": 200,
	})
	require.Equal(t, errcode.CodeOK, resp.Code, resp.Msg)

	// 资产在创建时即转入引擎托管账户
	assert.Equal(t, testEngineAccount, env.custody.owners[assetKey(testCollection, "2")])

	// 开始高度之前不接受出价
	resp = env.do(t, http.MethodPost, "/api/v1/auctions/bids", gin.H{
		"caller":          testBidder,
		"collection_addr": testCollection,
		"token_id":        "2",
		"amount":          "100",
	})
	assert.Equal(t, errcode.CodeCustom, resp.Code)
}

func TestAdminFeeEndpoints(t *testing.T) {
	env := newTestEnv(t)

	// 非管理员被拒绝
	resp := env.do(t, http.MethodPost, "/api/v1/admin/fees/marketplace", gin.H{
		"caller": testSeller,
		"pct":    5,
	})
	assert.Equal(t, errcode.CodeCustom, resp.Code)

	resp = env.do(t, http.MethodPost, "/api/v1/admin/fees/marketplace", gin.H{
		"caller": testAdmin,
		"pct":    5,
	})
	require.Equal(t, errcode.CodeOK, resp.Code, resp.Msg)

	resp = env.do(t, http.MethodGet, "/api/v1/admin/fees/marketplace", nil)
	require.Equal(t, errcode.CodeOK, resp.Code)
	var fee struct {
		Pct uint64 `json:"pct"`
	}
	require.NoError(t, json.Unmarshal(resp.Data, &fee))
	assert.Equal(t, uint64(5), fee.Pct)

	// 超出范围的费率被拒绝
	resp = env.do(t, http.MethodPost, "/api/v1/admin/fees/marketplace", gin.H{
		"caller": testAdmin,
		"pct":    101,
	})
	assert.Equal(t, errcode.CodeCustom, resp.Code)
}

func TestWithdrawWithoutBalance(t *testing.T) {
	env := newTestEnv(t)

	resp := env.do(t, http.MethodPost, "/api/v1/payments/withdraw", gin.H{
		"caller": testBidder,
	})
	assert.Equal(t, errcode.CodeCustom, resp.Code)

	resp = env.do(t, http.MethodGet, fmt.Sprintf("/api/v1/payments/escrow/%s", testBidder), nil)
	require.Equal(t, errcode.CodeOK, resp.Code)
	var balance struct {
		Balance string `json:"balance"`
	}
	require.NoError(t, json.Unmarshal(resp.Data, &balance))
	assert.Equal(t, "0", balance.Balance)
}
