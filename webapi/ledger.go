package webapi

import (
	"github.com/gofiber/fiber/v2"
	"github.com/shopspring/decimal"

	"github.com/mhgaber/branchbank/pkg/service/ledger"
)

type transferRequest struct {
	FromAccountID int64  `json:"from_account_id" validate:"required"`
	ToAccountID   int64  `json:"to_account_id" validate:"required"`
	Amount        string `json:"amount" validate:"required"`
}

type transferResponse struct {
	TransactionID int64 `json:"transaction_id"`
}

// LedgerRoutes registers the transfer and statement endpoints.
func LedgerRoutes(router fiber.Router, svc *ledger.Service) {
	router.Post("/transfers", TransferHandler(svc))
	router.Get("/accounts/:id/statement", StatementHandler(svc))
}

// TransferHandler executes a funds transfer on behalf of the logged-in
// employee.
func TransferHandler(svc *ledger.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		req, err := BindAndValidate[transferRequest](c)
		if err != nil {
			return nil
		}

		amount, err := decimal.NewFromString(req.Amount)
		if err != nil {
			return ErrorResponseJSON(c, fiber.StatusBadRequest, "Invalid amount", err.Error())
		}

		transactionID, err := svc.Transfer(
			c.UserContext(),
			req.FromAccountID,
			req.ToAccountID,
			amount,
			initiatorFromCtx(c),
		)
		if err != nil {
			return DomainErrorResponse(c, err)
		}
		return SuccessResponseJSON(c, fiber.StatusCreated, "Transfer completed",
			transferResponse{TransactionID: transactionID})
	}
}

// StatementHandler returns the account statement, newest entry first.
func StatementHandler(svc *ledger.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		accountID, err := c.ParamsInt("id")
		if err != nil {
			return ErrorResponseJSON(c, fiber.StatusBadRequest, "Invalid account ID", err.Error())
		}

		lines, err := svc.Statement(c.UserContext(), int64(accountID))
		if err != nil {
			return DomainErrorResponse(c, err)
		}
		return SuccessResponseJSON(c, fiber.StatusOK, "Statement generated", lines)
	}
}
