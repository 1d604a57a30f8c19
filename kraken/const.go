package kraken

import "time"

const (
	DefaultHost    = "https://api.kraken.com"
	DefaultVersion = 0
	DefaultTimeout = 10 * time.Second

	DefaultUserAgent = "xyths-kraken/0.1"
)

const (
	publicRoot  = "public"
	privateRoot = "private"
)

const (
	headerKey         = "API-Key"
	headerSign        = "API-Sign"
	headerContentType = "Content-Type"
	headerUserAgent   = "User-Agent"

	contentTypeForm = "application/x-www-form-urlencoded"
)

const (
	POST = "POST"
)

// OHLC intervals in minutes
var Intervals = []int{1, 5, 15, 30, 60, 240, 1440, 10080, 21600}

// info levels accepted by AssetPairs
const (
	InfoAll      = "info"
	InfoLeverage = "leverage"
	InfoFees     = "fees"
	InfoMargin   = "margin"
)

var AssetPairInfos = []string{InfoAll, InfoLeverage, InfoFees, InfoMargin}

const (
	SideBuy  = "buy"
	SideSell = "sell"
)

var Sides = []string{SideBuy, SideSell}

const (
	OrderTypeMarket          = "market"
	OrderTypeLimit           = "limit"
	OrderTypeStopLoss        = "stop-loss"
	OrderTypeTakeProfit      = "take-profit"
	OrderTypeStopLossLimit   = "stop-loss-limit"
	OrderTypeTakeProfitLimit = "take-profit-limit"
	OrderTypeSettlePosition  = "settle-position"
)

var OrderTypes = []string{
	OrderTypeMarket,
	OrderTypeLimit,
	OrderTypeStopLoss,
	OrderTypeTakeProfit,
	OrderTypeStopLossLimit,
	OrderTypeTakeProfitLimit,
	OrderTypeSettlePosition,
}

// trade types accepted by TradesHistory
var TradeTypes = []string{"all", "any position", "closed position", "closing position", "no position"}

// ledger types accepted by Ledgers
var LedgerTypes = []string{"all", "deposit", "withdrawal", "trade", "margin", "rollover", "credit", "transfer", "settled", "staking", "sale"}

// close time accepted by ClosedOrders
var CloseTimes = []string{"open", "close", "both"}
