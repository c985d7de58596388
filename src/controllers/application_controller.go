package controllers

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"Backend-Formforge/src/models"
	appSvc "Backend-Formforge/src/services/applications"
	"Backend-Formforge/src/services/audit"
	"Backend-Formforge/src/utils"
)

// CreateApplication godoc
// @Summary      Create a legacy application record
// @Tags         applications
// @Accept       json
// @Produce      json
// @Param        body body models.Application true "Application"
// @Success      201  {object}  models.Application
// @Router       /admin/applications [post]
func CreateApplication(c *fiber.Ctx) error {
	var app models.Application
	if err := c.BodyParser(&app); err != nil {
		return utils.HandleError(c, fiber.StatusBadRequest, "Invalid input: "+err.Error())
	}

	created, err := appSvc.CreateApplication(c.Context(), &app)
	if err != nil {
		return utils.HandleError(c, fiber.StatusInternalServerError, err.Error())
	}
	return c.Status(fiber.StatusCreated).JSON(created)
}

// GetApplications godoc
// @Summary      List applications
// @Tags         applications
// @Produce      json
// @Param        page    query  int     false  "Page"
// @Param        limit   query  int     false  "Limit"
// @Param        search  query  string  false  "Search by name or email"
// @Success      200  {object}  models.PaginatedResponse
// @Router       /admin/applications [get]
func GetApplications(c *fiber.Ctx) error {
	params := models.DefaultPagination()
	if err := c.QueryParser(&params); err != nil {
		return utils.HandleError(c, fiber.StatusBadRequest, "Invalid query: "+err.Error())
	}

	result, err := appSvc.GetApplications(c.Context(), params)
	if err != nil {
		return utils.HandleError(c, fiber.StatusInternalServerError, err.Error())
	}
	return c.JSON(result)
}

// GetApplication godoc
// @Summary      Get one application
// @Tags         applications
// @Produce      json
// @Param        id   path  string  true  "Application ID"
// @Success      200  {object}  models.Application
// @Failure      404  {object}  models.ErrorResponse
// @Router       /admin/applications/{id} [get]
func GetApplication(c *fiber.Ctx) error {
	id, err := primitive.ObjectIDFromHex(c.Params("id"))
	if err != nil {
		return utils.HandleError(c, fiber.StatusBadRequest, "Invalid ID format")
	}

	app, err := appSvc.GetApplicationByID(c.Context(), id)
	if err != nil {
		if errors.Is(err, appSvc.ErrApplicationNotFound) {
			return utils.HandleError(c, fiber.StatusNotFound, err.Error())
		}
		return utils.HandleError(c, fiber.StatusInternalServerError, err.Error())
	}
	return c.JSON(app)
}

// UpdateApplicationField godoc
// @Summary      Edit one field of an application (audit-trailed)
// @Tags         applications
// @Accept       json
// @Produce      json
// @Param        id    path  string                    true  "Application ID"
// @Param        body  body  models.UpdateFieldRequest true  "Field edit"
// @Success      200  {object}  models.UpdateFieldResult
// @Failure      400  {object}  models.ErrorResponse
// @Failure      404  {object}  models.ErrorResponse
// @Router       /admin/applications/{id}/fields [patch]
func UpdateApplicationField(c *fiber.Ctx) error {
	id, err := primitive.ObjectIDFromHex(c.Params("id"))
	if err != nil {
		return utils.HandleError(c, fiber.StatusBadRequest, "Invalid ID format")
	}

	var req models.UpdateFieldRequest
	if err := c.BodyParser(&req); err != nil {
		return utils.HandleError(c, fiber.StatusBadRequest, "Invalid input: "+err.Error())
	}
	if err := validate.Struct(&req); err != nil {
		return utils.HandleError(c, fiber.StatusBadRequest, "Invalid input: "+err.Error())
	}

	result, err := audit.UpdateApplicationField(c.Context(), id, req.Field, req.Value)
	if err != nil {
		switch {
		case errors.Is(err, audit.ErrEntityNotFound):
			return utils.HandleError(c, fiber.StatusNotFound, err.Error())
		case errors.Is(err, audit.ErrUnknownField):
			return utils.HandleError(c, fiber.StatusBadRequest, err.Error())
		default:
			return utils.HandleError(c, fiber.StatusInternalServerError, err.Error())
		}
	}
	return c.JSON(result)
}

// GetApplicationHistory godoc
// @Summary      Get an application's field edit history, newest first
// @Tags         applications
// @Produce      json
// @Param        id   path  string  true  "Application ID"
// @Success      200  {array}  models.ApplicationFieldHistory
// @Router       /admin/applications/{id}/history [get]
func GetApplicationHistory(c *fiber.Ctx) error {
	id, err := primitive.ObjectIDFromHex(c.Params("id"))
	if err != nil {
		return utils.HandleError(c, fiber.StatusBadRequest, "Invalid ID format")
	}

	records, err := audit.GetApplicationHistory(c.Context(), id)
	if err != nil {
		return utils.HandleError(c, fiber.StatusInternalServerError, err.Error())
	}
	return c.JSON(records)
}
