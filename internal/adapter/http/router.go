package http

import "github.com/labstack/echo/v4"

type Routes struct {
	Health       *Handler
	Accounts     *AccountHandler
	Transactions *TransactionHandler
	Loans        *LoanHandler
	Approvals    *ApprovalHandler
	Messages     *MessageHandler

	// Idempotency guards the money-moving POSTs; nil leaves them unguarded.
	Idempotency echo.MiddlewareFunc
}

func Register(e *echo.Echo, r Routes) {
	e.GET("/health", r.Health.Health)

	e.POST("/users", r.Accounts.RegisterUser)
	e.GET("/users/:user_id/accounts", r.Accounts.ListAccounts)
	e.POST("/accounts", r.Accounts.CreateAccount)
	e.GET("/accounts/:account_number", r.Accounts.GetAccount)
	e.DELETE("/accounts/:account_number", r.Accounts.CloseAccount)

	var guard []echo.MiddlewareFunc
	if r.Idempotency != nil {
		guard = append(guard, r.Idempotency)
	}
	tx := e.Group("/transactions")
	tx.POST("/deposit", r.Transactions.Deposit, guard...)
	tx.POST("/withdraw", r.Transactions.Withdraw, guard...)
	tx.POST("/transfer", r.Transactions.Transfer, guard...)
	tx.GET("/history/:user_id", r.Transactions.History)

	loans := e.Group("/loans")
	loans.POST("/emi-calc", r.Loans.QuoteEMI)
	loans.POST("/apply", r.Loans.Apply)
	loans.POST("/pay-emi", r.Loans.PayEMI)
	loans.GET("/my/:user_id", r.Loans.ListMine)
	loans.GET("/:loan_id", r.Loans.GetLoan)

	admin := e.Group("/admin")
	admin.POST("/loans/:loan_id/approve", r.Approvals.ApproveLoan)
	admin.POST("/loans/:loan_id/reject", r.Approvals.RejectLoan)

	e.GET("/messages/:user_id", r.Messages.List)
}
