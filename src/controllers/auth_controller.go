package controllers

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"Backend-Formforge/src/models"
	"Backend-Formforge/src/services/auth"
	"Backend-Formforge/src/utils"
)

// Login godoc
// @Summary      Admin login
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body body models.LoginRequest true "Credentials"
// @Success      200  {object}  models.LoginResponse
// @Failure      401  {object}  models.ErrorResponse
// @Router       /auth/login [post]
func Login(c *fiber.Ctx) error {
	var req models.LoginRequest
	if err := c.BodyParser(&req); err != nil {
		return utils.HandleError(c, fiber.StatusBadRequest, "Invalid input: "+err.Error())
	}
	if err := validate.Struct(&req); err != nil {
		return utils.HandleError(c, fiber.StatusBadRequest, "Invalid input: "+err.Error())
	}

	resp, err := auth.Login(c.Context(), req.Email, req.Password)
	if err != nil {
		if errors.Is(err, auth.ErrInvalidCredentials) {
			return utils.HandleError(c, fiber.StatusUnauthorized, err.Error())
		}
		return utils.HandleError(c, fiber.StatusInternalServerError, err.Error())
	}
	return c.JSON(resp)
}

// Me godoc
// @Summary      Current admin identity from the bearer token
// @Tags         auth
// @Produce      json
// @Success      200  {object}  map[string]interface{}
// @Router       /admin/me [get]
func Me(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{
		"adminId": c.Locals("adminId"),
		"email":   c.Locals("email"),
	})
}
