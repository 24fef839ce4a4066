package wallet

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"
)

// QRPayload composes the display-only wallet payload. The timestamp acts as a
// uniqueness token; the string carries no cryptographic guarantee and is only
// rendered for the wallet app to scan.
//
// Format: <METHOD_TAG>:PAY:<amount>:<millis>
func QRPayload(p Provider, amount decimal.Decimal, at time.Time) string {
	return fmt.Sprintf("%s:PAY:%s:%d", p.Tag(), amount.String(), at.UnixMilli())
}
