package kraken

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
)

func (c *Client) private(ctx context.Context, method string, params Params, result interface{}) error {
	res, err := c.PrivateRequest(ctx, method, params)
	if err != nil {
		return err
	}
	return res.Decode(result)
}

// Balance returns the cash balance of every asset held.
func (c *Client) Balance(ctx context.Context) (map[string]decimal.Decimal, error) {
	var res map[string]decimal.Decimal
	if err := c.private(ctx, "Balance", Params{}, &res); err != nil {
		return nil, err
	}
	return res, nil
}

// TradeBalance reports margin balances in asset, ZUSD when empty.
func (c *Client) TradeBalance(ctx context.Context, asset string) (b TradeBalance, err error) {
	var p Params
	if asset != "" {
		p.Set("asset", asset)
	}
	err = c.private(ctx, "TradeBalance", p, &b)
	return
}

func (c *Client) OpenOrders(ctx context.Context, trades bool, userref int64) (map[string]OrderInfo, error) {
	var p Params
	if trades {
		p.Set("trades", true)
	}
	if userref != 0 {
		p.Set("userref", userref)
	}
	var res OpenOrders
	if err := c.private(ctx, "OpenOrders", p, &res); err != nil {
		return nil, err
	}
	return res.Open, nil
}

type ClosedOrdersRequest struct {
	Trades    bool
	UserRef   int64
	Start     string // unix timestamp or txid, exclusive
	End       string
	Offset    int
	CloseTime string // one of CloseTimes, both when empty
}

func (c *Client) ClosedOrders(ctx context.Context, r ClosedOrdersRequest) (*ClosedOrders, error) {
	var p Params
	if r.CloseTime != "" {
		if err := checkString("ClosedOrders", "closetime", r.CloseTime, CloseTimes); err != nil {
			return nil, err
		}
	}
	if r.Trades {
		p.Set("trades", true)
	}
	if r.UserRef != 0 {
		p.Set("userref", r.UserRef)
	}
	if r.Start != "" {
		p.Set("start", r.Start)
	}
	if r.End != "" {
		p.Set("end", r.End)
	}
	if r.Offset > 0 {
		p.Set("ofs", r.Offset)
	}
	if r.CloseTime != "" {
		p.Set("closetime", r.CloseTime)
	}
	var res ClosedOrders
	if err := c.private(ctx, "ClosedOrders", p, &res); err != nil {
		return nil, err
	}
	return &res, nil
}

// QueryOrders looks up at most 50 orders by transaction id.
func (c *Client) QueryOrders(ctx context.Context, trades bool, txids ...string) (map[string]OrderInfo, error) {
	if len(txids) == 0 || len(txids) > 50 {
		return nil, validationError("QueryOrders", "between 1 and 50 txids are required, got %d", len(txids))
	}
	var p Params
	if trades {
		p.Set("trades", true)
	}
	p.Set("txid", txids)
	var res map[string]OrderInfo
	if err := c.private(ctx, "QueryOrders", p, &res); err != nil {
		return nil, err
	}
	return res, nil
}

// TradesHistory pages through the account's trades. tradeType may be empty
// or one of TradeTypes; zero start/end mean unbounded.
func (c *Client) TradesHistory(ctx context.Context, tradeType string, trades bool, start, end time.Time, offset int) (*TradesHistory, error) {
	var p Params
	if tradeType != "" {
		if err := checkString("TradesHistory", "type", tradeType, TradeTypes); err != nil {
			return nil, err
		}
		p.Set("type", tradeType)
	}
	if trades {
		p.Set("trades", true)
	}
	p.Set("start", start)
	p.Set("end", end)
	if offset > 0 {
		p.Set("ofs", offset)
	}
	var res TradesHistory
	if err := c.private(ctx, "TradesHistory", p, &res); err != nil {
		return nil, err
	}
	return &res, nil
}

func (c *Client) QueryTrades(ctx context.Context, trades bool, txids ...string) (map[string]TradeInfo, error) {
	if len(txids) == 0 || len(txids) > 20 {
		return nil, validationError("QueryTrades", "between 1 and 20 txids are required, got %d", len(txids))
	}
	var p Params
	p.Set("txid", txids)
	if trades {
		p.Set("trades", true)
	}
	var res map[string]TradeInfo
	if err := c.private(ctx, "QueryTrades", p, &res); err != nil {
		return nil, err
	}
	return res, nil
}

func (c *Client) OpenPositions(ctx context.Context, docalcs bool, txids ...string) (map[string]PositionInfo, error) {
	var p Params
	p.Set("txid", txids)
	if docalcs {
		p.Set("docalcs", true)
	}
	var res map[string]PositionInfo
	if err := c.private(ctx, "OpenPositions", p, &res); err != nil {
		return nil, err
	}
	return res, nil
}

type LedgersRequest struct {
	Assets []string
	Type   string // one of LedgerTypes, all when empty
	Start  time.Time
	End    time.Time
	Offset int
}

func (c *Client) Ledgers(ctx context.Context, r LedgersRequest) (*Ledgers, error) {
	var p Params
	if r.Type != "" {
		if err := checkString("Ledgers", "type", r.Type, LedgerTypes); err != nil {
			return nil, err
		}
	}
	p.Set("asset", r.Assets)
	if r.Type != "" {
		p.Set("type", r.Type)
	}
	p.Set("start", r.Start)
	p.Set("end", r.End)
	if r.Offset > 0 {
		p.Set("ofs", r.Offset)
	}
	var res Ledgers
	if err := c.private(ctx, "Ledgers", p, &res); err != nil {
		return nil, err
	}
	return &res, nil
}

func (c *Client) QueryLedgers(ctx context.Context, ids ...string) (map[string]LedgerInfo, error) {
	if len(ids) == 0 || len(ids) > 20 {
		return nil, validationError("QueryLedgers", "between 1 and 20 ledger ids are required, got %d", len(ids))
	}
	var p Params
	p.Set("id", ids)
	var res map[string]LedgerInfo
	if err := c.private(ctx, "QueryLedgers", p, &res); err != nil {
		return nil, err
	}
	return res, nil
}

func (c *Client) TradeVolume(ctx context.Context, pairs ...string) (v TradeVolume, err error) {
	var p Params
	p.Set("pair", pairs)
	err = c.private(ctx, "TradeVolume", p, &v)
	return
}

// OrderRequest describes a new order. Price and Price2 meanings depend on OrderType.
type OrderRequest struct {
	Pair      string
	Side      string // SideBuy or SideSell
	OrderType string // one of OrderTypes
	Volume    decimal.Decimal
	Price     *decimal.Decimal
	Price2    *decimal.Decimal
	Leverage  string
	Flags     []string // post, fcib, fciq, nompp, viqc
	UserRef   int64
	// Validate asks the exchange to check the order without placing it.
	Validate bool
}

func (r OrderRequest) params() (Params, error) {
	const op = "AddOrder"
	if err := checkRequired(op, "pair", r.Pair); err != nil {
		return Params{}, err
	}
	if err := checkString(op, "type", r.Side, Sides); err != nil {
		return Params{}, err
	}
	if err := checkString(op, "ordertype", r.OrderType, OrderTypes); err != nil {
		return Params{}, err
	}
	if !r.Volume.IsPositive() {
		return Params{}, validationError(op, "volume must be positive, got %s", r.Volume)
	}
	if r.OrderType != OrderTypeMarket && r.OrderType != OrderTypeSettlePosition && r.Price == nil {
		return Params{}, validationError(op, "price is required for %s orders", r.OrderType)
	}
	p := NewParams(
		"pair", r.Pair,
		"type", r.Side,
		"ordertype", r.OrderType,
		"volume", r.Volume,
		"price", r.Price,
		"price2", r.Price2,
	)
	if r.Leverage != "" {
		p.Set("leverage", r.Leverage)
	}
	p.Set("oflags", r.Flags)
	if r.UserRef != 0 {
		p.Set("userref", r.UserRef)
	}
	if r.Validate {
		p.Set("validate", true)
	}
	return p, nil
}

func (c *Client) AddOrder(ctx context.Context, r OrderRequest) (*AddOrderResult, error) {
	p, err := r.params()
	if err != nil {
		return nil, err
	}
	var res AddOrderResult
	if err := c.private(ctx, "AddOrder", p, &res); err != nil {
		return nil, err
	}
	return &res, nil
}

// CancelOrder cancels by txid or userref.
func (c *Client) CancelOrder(ctx context.Context, txid string) (r CancelOrderResult, err error) {
	if err = checkRequired("CancelOrder", "txid", txid); err != nil {
		return
	}
	err = c.private(ctx, "CancelOrder", NewParams("txid", txid), &r)
	return
}

func (c *Client) CancelAll(ctx context.Context) (r CancelOrderResult, err error) {
	err = c.private(ctx, "CancelAll", Params{}, &r)
	return
}

func (c *Client) DepositMethods(ctx context.Context, asset string) ([]DepositMethod, error) {
	if err := checkRequired("DepositMethods", "asset", asset); err != nil {
		return nil, err
	}
	var res []DepositMethod
	if err := c.private(ctx, "DepositMethods", NewParams("asset", asset), &res); err != nil {
		return nil, err
	}
	return res, nil
}

func (c *Client) DepositAddresses(ctx context.Context, asset, method string, generate bool) ([]DepositAddress, error) {
	if err := checkRequired("DepositAddresses", "asset", asset); err != nil {
		return nil, err
	}
	if err := checkRequired("DepositAddresses", "method", method); err != nil {
		return nil, err
	}
	p := NewParams("asset", asset, "method", method)
	if generate {
		p.Set("new", true)
	}
	var res []DepositAddress
	if err := c.private(ctx, "DepositAddresses", p, &res); err != nil {
		return nil, err
	}
	return res, nil
}

func (c *Client) DepositStatus(ctx context.Context, asset, method string) ([]TransferStatus, error) {
	if err := checkRequired("DepositStatus", "asset", asset); err != nil {
		return nil, err
	}
	p := NewParams("asset", asset)
	if method != "" {
		p.Set("method", method)
	}
	var res []TransferStatus
	if err := c.private(ctx, "DepositStatus", p, &res); err != nil {
		return nil, err
	}
	return res, nil
}

// WithdrawInfo quotes a withdrawal to the named key (a withdrawal address
// configured on the account).
func (c *Client) WithdrawInfo(ctx context.Context, asset, key string, amount decimal.Decimal) (w WithdrawInfo, err error) {
	if err = checkRequired("WithdrawInfo", "asset", asset); err != nil {
		return
	}
	if err = checkRequired("WithdrawInfo", "key", key); err != nil {
		return
	}
	err = c.private(ctx, "WithdrawInfo", NewParams("asset", asset, "key", key, "amount", amount), &w)
	return
}

func (c *Client) Withdraw(ctx context.Context, asset, key string, amount decimal.Decimal) (r WithdrawResult, err error) {
	if err = checkRequired("Withdraw", "asset", asset); err != nil {
		return
	}
	if err = checkRequired("Withdraw", "key", key); err != nil {
		return
	}
	if !amount.IsPositive() {
		err = validationError("Withdraw", "amount must be positive, got %s", amount)
		return
	}
	err = c.private(ctx, "Withdraw", NewParams("asset", asset, "key", key, "amount", amount), &r)
	return
}

func (c *Client) WithdrawStatus(ctx context.Context, asset, method string) ([]TransferStatus, error) {
	if err := checkRequired("WithdrawStatus", "asset", asset); err != nil {
		return nil, err
	}
	p := NewParams("asset", asset)
	if method != "" {
		p.Set("method", method)
	}
	var res []TransferStatus
	if err := c.private(ctx, "WithdrawStatus", p, &res); err != nil {
		return nil, err
	}
	return res, nil
}

func (c *Client) WithdrawCancel(ctx context.Context, asset, refid string) (ok bool, err error) {
	if err = checkRequired("WithdrawCancel", "asset", asset); err != nil {
		return
	}
	if err = checkRequired("WithdrawCancel", "refid", refid); err != nil {
		return
	}
	err = c.private(ctx, "WithdrawCancel", NewParams("asset", asset, "refid", refid), &ok)
	return
}

// GetWebSocketsToken returns a token for the authenticated websocket feeds.
func (c *Client) GetWebSocketsToken(ctx context.Context) (t WebSocketsToken, err error) {
	err = c.private(ctx, "GetWebSocketsToken", Params{}, &t)
	return
}
