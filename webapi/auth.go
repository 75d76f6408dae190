package webapi

import (
	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"

	"github.com/mhgaber/branchbank/pkg/service/auth"
)

type loginRequest struct {
	EmployeeID int64  `json:"employee_id" validate:"required"`
	Password   string `json:"password" validate:"required"`
}

type loginResponse struct {
	Token string `json:"token"`
}

// LoginHandler authenticates an employee and returns a session token.
func LoginHandler(svc *auth.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		req, err := BindAndValidate[loginRequest](c)
		if err != nil {
			return nil
		}

		token, err := svc.Login(c.UserContext(), req.EmployeeID, req.Password)
		if err != nil {
			return DomainErrorResponse(c, err)
		}
		return SuccessResponseJSON(c, fiber.StatusOK, "Login successful", loginResponse{Token: token})
	}
}

// initiatorFromCtx derives the audit identity from the verified JWT: the
// employee's display name, falling back to the subject claim.
func initiatorFromCtx(c *fiber.Ctx) string {
	token, ok := c.Locals("user").(*jwt.Token)
	if !ok {
		return "unknown"
	}
	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return "unknown"
	}
	if name, ok := claims["name"].(string); ok && name != "" {
		return name
	}
	if sub, ok := claims["sub"].(string); ok && sub != "" {
		return "employee-" + sub
	}
	return "unknown"
}
