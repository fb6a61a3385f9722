package types

import (
	"strconv"
	"time"

	"github.com/shopspring/decimal"
)

// OCC option symbols end with a fixed 15-character suffix: a YYMMDD
// expiration, a C/P type character and an 8-digit strike in thousandths of a
// dollar. AAPL240119C00175000 is the AAPL 2024-01-19 $175 call.
const occSuffixLen = 15

// OCCDetails holds the contract attributes recovered from an OCC symbol.
type OCCDetails struct {
	Root           string
	ExpirationDate time.Time
	ContractType   string
	StrikePrice    decimal.Decimal
}

// ParseOCCSymbol decodes an OCC-formatted option symbol. It reports false for
// symbols that are too short or whose suffix does not follow the format.
func ParseOCCSymbol(symbol string) (OCCDetails, bool) {
	if len(symbol) < occSuffixLen {
		return OCCDetails{}, false
	}

	contractType := ContractTypeFromSymbol(symbol)
	if contractType == "" {
		return OCCDetails{}, false
	}

	strike, err := strconv.ParseInt(symbol[len(symbol)-8:], 10, 64)
	if err != nil {
		return OCCDetails{}, false
	}

	expiration, err := time.Parse("060102", symbol[len(symbol)-occSuffixLen:len(symbol)-9])
	if err != nil {
		return OCCDetails{}, false
	}

	return OCCDetails{
		Root:           symbol[:len(symbol)-occSuffixLen],
		ExpirationDate: expiration,
		ContractType:   contractType,
		StrikePrice:    decimal.New(strike, -3),
	}, true
}

// ContractTypeFromSymbol reads just the call/put character out of an OCC
// symbol, returning "" when the symbol is not OCC-shaped.
func ContractTypeFromSymbol(symbol string) string {
	if len(symbol) < occSuffixLen {
		return ""
	}
	switch symbol[len(symbol)-9] {
	case 'C':
		return "call"
	case 'P':
		return "put"
	}
	return ""
}
