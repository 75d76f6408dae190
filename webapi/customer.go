package webapi

import (
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/mhgaber/branchbank/pkg/domain"
	"github.com/mhgaber/branchbank/pkg/service/audit"
	"github.com/mhgaber/branchbank/pkg/service/customer"
)

type customerRequest struct {
	FullName    string `json:"full_name" validate:"required,max=100"`
	DateOfBirth string `json:"date_of_birth" validate:"omitempty,datetime=2006-01-02"`
	Email       string `json:"email" validate:"required,email"`
	Phone       string `json:"phone" validate:"omitempty,max=20"`
	Address     string `json:"address" validate:"omitempty,max=255"`
}

func (r *customerRequest) toDomain(id int64) *domain.Customer {
	c := &domain.Customer{
		ID:       id,
		FullName: r.FullName,
		Email:    r.Email,
		Phone:    r.Phone,
		Address:  r.Address,
	}
	if r.DateOfBirth != "" {
		// Validated by the datetime tag above.
		c.DateOfBirth, _ = time.Parse("2006-01-02", r.DateOfBirth)
	}
	return c
}

// CustomerRoutes registers the customer management endpoints.
func CustomerRoutes(router fiber.Router, svc *customer.Service) {
	router.Post("/customers", createCustomerHandler(svc))
	router.Get("/customers", listCustomersHandler(svc))
	router.Get("/customers/:id", getCustomerHandler(svc))
	router.Put("/customers/:id", updateCustomerHandler(svc))
	router.Delete("/customers/:id", deleteCustomerHandler(svc))
	router.Get("/customers/:id/accounts", customerAccountsHandler(svc))
	router.Get("/customers/:id/assets", customerAssetsHandler(svc))
}

// AuditRoutes registers the audit trail endpoint.
func AuditRoutes(router fiber.Router, svc *audit.Service) {
	router.Get("/audit-logs", func(c *fiber.Ctx) error {
		entries, err := svc.List(c.UserContext())
		if err != nil {
			return DomainErrorResponse(c, err)
		}
		return SuccessResponseJSON(c, fiber.StatusOK, "Audit trail", entries)
	})
}

func createCustomerHandler(svc *customer.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		req, err := BindAndValidate[customerRequest](c)
		if err != nil {
			return nil
		}
		id, err := svc.Create(c.UserContext(), req.toDomain(0))
		if err != nil {
			return DomainErrorResponse(c, err)
		}
		return SuccessResponseJSON(c, fiber.StatusCreated, "Customer created",
			fiber.Map{"customer_id": id})
	}
}

func listCustomersHandler(svc *customer.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var (
			summaries []*domain.CustomerSummary
			err       error
		)
		if name := c.Query("name"); name != "" {
			summaries, err = svc.Search(c.UserContext(), name)
		} else {
			summaries, err = svc.Summaries(c.UserContext())
		}
		if err != nil {
			return DomainErrorResponse(c, err)
		}
		return SuccessResponseJSON(c, fiber.StatusOK, "Customers", summaries)
	}
}

func getCustomerHandler(svc *customer.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, err := c.ParamsInt("id")
		if err != nil {
			return ErrorResponseJSON(c, fiber.StatusBadRequest, "Invalid customer ID", err.Error())
		}
		found, err := svc.Get(c.UserContext(), int64(id))
		if err != nil {
			return DomainErrorResponse(c, err)
		}
		return SuccessResponseJSON(c, fiber.StatusOK, "Customer", found)
	}
}

func updateCustomerHandler(svc *customer.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, err := c.ParamsInt("id")
		if err != nil {
			return ErrorResponseJSON(c, fiber.StatusBadRequest, "Invalid customer ID", err.Error())
		}
		req, err := BindAndValidate[customerRequest](c)
		if err != nil {
			return nil
		}
		if err := svc.Update(c.UserContext(), req.toDomain(int64(id)), initiatorFromCtx(c)); err != nil {
			return DomainErrorResponse(c, err)
		}
		return SuccessResponseJSON(c, fiber.StatusOK, "Customer updated", nil)
	}
}

func deleteCustomerHandler(svc *customer.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, err := c.ParamsInt("id")
		if err != nil {
			return ErrorResponseJSON(c, fiber.StatusBadRequest, "Invalid customer ID", err.Error())
		}
		if err := svc.Delete(c.UserContext(), int64(id), initiatorFromCtx(c)); err != nil {
			return DomainErrorResponse(c, err)
		}
		return SuccessResponseJSON(c, fiber.StatusOK, "Customer deleted", nil)
	}
}

func customerAccountsHandler(svc *customer.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, err := c.ParamsInt("id")
		if err != nil {
			return ErrorResponseJSON(c, fiber.StatusBadRequest, "Invalid customer ID", err.Error())
		}
		accounts, err := svc.Accounts(c.UserContext(), int64(id))
		if err != nil {
			return DomainErrorResponse(c, err)
		}
		return SuccessResponseJSON(c, fiber.StatusOK, "Accounts", accounts)
	}
}

func customerAssetsHandler(svc *customer.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, err := c.ParamsInt("id")
		if err != nil {
			return ErrorResponseJSON(c, fiber.StatusBadRequest, "Invalid customer ID", err.Error())
		}
		total, err := svc.TotalAssets(c.UserContext(), int64(id))
		if err != nil {
			return DomainErrorResponse(c, err)
		}
		return SuccessResponseJSON(c, fiber.StatusOK, "Total assets",
			fiber.Map{"total_assets": total})
	}
}
