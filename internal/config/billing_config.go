package config

import "time"

const (
	// Messaging economics
	MessageCreditCost      = 10
	CorporateMessageFeeJPY = 500

	// Credit top-up packs: credits -> price in JPY.
	// Prices mirror the production price list.
	CreditPackSmallCredits   = 100
	CreditPackSmallPriceJPY  = 1000
	CreditPackMediumCredits  = 500
	CreditPackMediumPriceJPY = 4500
	CreditPackLargeCredits   = 1000
	CreditPackLargePriceJPY  = 8000

	// Quiet hours: immediate emails queued between these hours are held for
	// the morning flush instead.
	QuietHoursStart = 22
	QuietHoursEnd   = 8

	// Uploads
	MaxUploadBytes = 10 << 20

	// Checkout sessions are considered stale after this window; the
	// once-per-session crediting guard in Redis expires with it.
	CheckoutGuardTTL = 24 * time.Hour
)

// CreditPacks maps a pack name to (credits, price).
var CreditPacks = map[string]struct {
	Credits  int
	PriceJPY int64
}{
	"small":  {CreditPackSmallCredits, CreditPackSmallPriceJPY},
	"medium": {CreditPackMediumCredits, CreditPackMediumPriceJPY},
	"large":  {CreditPackLargeCredits, CreditPackLargePriceJPY},
}
