package entity

import "time"

// Warning reports one failed balance-fetch operation. Warnings accompany the
// portfolio instead of aborting it.
type Warning struct {
	Message string `json:"message"`
	Reason  string `json:"reason"`
}

// ChainGroup holds all priced assets found on one chain, in the order they
// were encountered, with their subtotal as a decimal string.
type ChainGroup struct {
	ChainID    string  `json:"chainId"`
	ChainName  string  `json:"chainName"`
	TotalValue string  `json:"totalValue"`
	Assets     []Asset `json:"assets"`
}

// Portfolio is the aggregation result for one user. TotalValue is truncated
// to 2 decimal places for display. Chains appear in first-encounter order and
// Warnings in the original scheduling order of the failed operations.
type Portfolio struct {
	TotalValue  string       `json:"totalValue"`
	Currency    string       `json:"currency"`
	LastUpdated time.Time    `json:"lastUpdated"`
	Chains      []ChainGroup `json:"chains"`
	Warnings    []Warning    `json:"warnings"`
}
