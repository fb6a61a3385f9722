package tools

import (
	"fmt"
	"strings"
)

// orderParams carries the numeric arguments the placement tools validate
// before touching the API. Nil means the caller did not supply the value.
type orderParams struct {
	qty        *float64
	limitPrice *float64
	stopPrice  *float64
	trailPrice *float64
}

// validateOrderParams returns a client-facing message for the first invalid
// parameter, or "" when everything checks out.
func validateOrderParams(p orderParams) string {
	if p.qty != nil && *p.qty <= 0 {
		return "Quantity must be greater than 0"
	}
	if p.limitPrice != nil && *p.limitPrice <= 0 {
		return "Limit price must be greater than 0"
	}
	if p.stopPrice != nil && *p.stopPrice <= 0 {
		return "Stop price must be greater than 0"
	}
	if p.trailPrice != nil && *p.trailPrice <= 0 {
		return "Trail price must be greater than 0"
	}
	return ""
}

// validateSide rejects anything but buy or sell.
func validateSide(side string) string {
	switch strings.ToLower(side) {
	case "buy", "sell":
		return ""
	}
	return fmt.Sprintf("Invalid side: %q. Must be 'buy' or 'sell'", side)
}

func ptr(v float64) *float64 {
	return &v
}
