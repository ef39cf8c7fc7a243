package auction

import "github.com/pkg/errors"

// 前置条件错误
// 所有校验在任何状态变更之前完成, 返回错误即表示操作无任何副作用
var (
	ErrAuctionExists     = errors.New("auction already exists for asset")
	ErrAuctionNotFound   = errors.New("auction not found")
	ErrAuctionStarted    = errors.New("auction already started")
	ErrAuctionNotStarted = errors.New("auction not started")
	ErrAuctionNotEnded   = errors.New("auction length not yet elapsed")
	ErrNotCreator        = errors.New("caller is not auction creator")
	ErrNotOwner          = errors.New("caller does not own asset")
	ErrNotApproved       = errors.New("engine is not approved to transfer asset")
	ErrInvalidLength     = errors.New("auction length must be positive")
	ErrStartNotFuture    = errors.New("starting height must be in the future")
	ErrBidTooLow         = errors.New("bid does not exceed current bid")
	ErrBelowReserve      = errors.New("bid below reserve price")
	ErrBelowMinimum      = errors.New("bid below minimum bid")
	ErrSelfBid           = errors.New("creator cannot bid on own auction")
	ErrNotBidder         = errors.New("caller is not current bidder")
	ErrNoBid             = errors.New("no active bid")
	ErrNotAdmin          = errors.New("caller is not administrator")
	ErrPctOutOfRange     = errors.New("percentage exceeds 100")
	ErrEmptyCollection   = errors.New("collection address is empty")
	ErrBatchTooLarge     = errors.New("sold batch exceeds maximum size")
	ErrNoEscrowBalance   = errors.New("no escrow balance to withdraw")
	ErrAmountOverflow    = errors.New("amount arithmetic overflow")
	ErrZeroAmount        = errors.New("amount must be positive")
	ErrBiddingNotOpen    = errors.New("auction is not accepting bids")
	ErrHeightUnavailable = errors.New("ledger height unavailable")
)
