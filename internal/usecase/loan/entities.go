package loan

import "github.com/shopspring/decimal"

type ApplyInput struct {
	UserID     string          `json:"user_id"`
	Principal  decimal.Decimal `json:"amount"`
	AnnualRate decimal.Decimal `json:"annual_rate"`
	Months     int             `json:"months"`
}

type PayEMIInput struct {
	UserID string          `json:"user_id"`
	LoanID string          `json:"loan_id"`
	Amount decimal.Decimal `json:"amount"`
}

// Quote is the EMI calculator's answer; nothing is persisted.
type Quote struct {
	Principal     decimal.Decimal `json:"amount"`
	AnnualRate    decimal.Decimal `json:"annual_rate"`
	Months        int             `json:"months"`
	EMI           decimal.Decimal `json:"emi"`
	TotalPayable  decimal.Decimal `json:"total_payable"`
	TotalInterest decimal.Decimal `json:"total_interest"`
}
