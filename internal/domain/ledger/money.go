package ledger

import "github.com/shopspring/decimal"

// MaxAmount is the exclusive upper bound for any single amount or principal.
// decimal(18,2) columns top out just below 10^16.
var MaxAmount = decimal.New(1, 15)
