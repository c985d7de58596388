package controllers

import (
	"errors"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"Backend-Formforge/src/models"
	"Backend-Formforge/src/services/forms"
	"Backend-Formforge/src/utils"
)

var validate = validator.New()

// CreateForm godoc
// @Summary      Create a new form
// @Description  Create a draft form with an empty schema
// @Tags         forms
// @Accept       json
// @Produce      json
// @Param        body body models.CreateFormRequest true "Form metadata"
// @Success      201  {object}  models.Form
// @Failure      400  {object}  models.ErrorResponse
// @Failure      409  {object}  models.ErrorResponse
// @Router       /admin/forms [post]
func CreateForm(c *fiber.Ctx) error {
	var req models.CreateFormRequest
	if err := c.BodyParser(&req); err != nil {
		return utils.HandleError(c, fiber.StatusBadRequest, "Invalid input: "+err.Error())
	}
	if err := validate.Struct(&req); err != nil {
		return utils.HandleError(c, fiber.StatusBadRequest, "Invalid input: "+err.Error())
	}

	form, err := forms.CreateForm(c.Context(), &req)
	if err != nil {
		return formError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(form)
}

// GetForms godoc
// @Summary      List forms
// @Tags         forms
// @Produce      json
// @Param        page   query  int     false  "Page"
// @Param        limit  query  int     false  "Limit"
// @Param        search query  string  false  "Search by name"
// @Success      200  {object}  models.PaginatedResponse
// @Router       /admin/forms [get]
func GetForms(c *fiber.Ctx) error {
	params := models.DefaultPagination()
	if err := c.QueryParser(&params); err != nil {
		return utils.HandleError(c, fiber.StatusBadRequest, "Invalid query: "+err.Error())
	}

	result, err := forms.GetForms(c.Context(), params)
	if err != nil {
		return utils.HandleError(c, fiber.StatusInternalServerError, err.Error())
	}
	return c.JSON(result)
}

// GetFormByID godoc
// @Summary      Get a form with its draft schema
// @Tags         forms
// @Produce      json
// @Param        id   path  string  true  "Form ID"
// @Success      200  {object}  models.Form
// @Failure      404  {object}  models.ErrorResponse
// @Router       /admin/forms/{id} [get]
func GetFormByID(c *fiber.Ctx) error {
	id, err := primitive.ObjectIDFromHex(c.Params("id"))
	if err != nil {
		return utils.HandleError(c, fiber.StatusBadRequest, "Invalid ID format")
	}

	form, err := forms.GetFormByID(c.Context(), id)
	if err != nil {
		return formError(c, err)
	}
	return c.JSON(form)
}

// UpdateForm godoc
// @Summary      Update form metadata or draft schema
// @Description  Partial update; draft schema only needs to parse, structural checks wait for publish
// @Tags         forms
// @Accept       json
// @Produce      json
// @Param        id    path  string                    true  "Form ID"
// @Param        body  body  models.UpdateFormRequest  true  "Fields to update"
// @Success      200  {object}  models.Form
// @Failure      400  {object}  models.ErrorResponse
// @Failure      409  {object}  models.ErrorResponse
// @Router       /admin/forms/{id} [patch]
func UpdateForm(c *fiber.Ctx) error {
	id, err := primitive.ObjectIDFromHex(c.Params("id"))
	if err != nil {
		return utils.HandleError(c, fiber.StatusBadRequest, "Invalid ID format")
	}

	var req models.UpdateFormRequest
	if err := c.BodyParser(&req); err != nil {
		return utils.HandleError(c, fiber.StatusBadRequest, "Invalid input: "+err.Error())
	}

	form, err := forms.UpdateForm(c.Context(), id, &req)
	if err != nil {
		return formError(c, err)
	}
	return c.JSON(form)
}

// PublishForm godoc
// @Summary      Publish the draft schema as a new immutable version
// @Tags         forms
// @Produce      json
// @Param        id   path  string  true  "Form ID"
// @Success      201  {object}  models.FormVersion
// @Failure      404  {object}  models.ErrorResponse
// @Failure      422  {object}  models.ErrorResponse
// @Router       /admin/forms/{id}/publish [post]
func PublishForm(c *fiber.Ctx) error {
	id, err := primitive.ObjectIDFromHex(c.Params("id"))
	if err != nil {
		return utils.HandleError(c, fiber.StatusBadRequest, "Invalid ID format")
	}

	version, err := forms.PublishForm(c.Context(), id)
	if err != nil {
		return formError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(version)
}

// ArchiveForm godoc
// @Summary      Archive a form
// @Tags         forms
// @Produce      json
// @Param        id   path  string  true  "Form ID"
// @Success      200  {object}  models.Form
// @Failure      404  {object}  models.ErrorResponse
// @Router       /admin/forms/{id}/archive [post]
func ArchiveForm(c *fiber.Ctx) error {
	return setFormStatus(c, models.FormStatusArchived)
}

// UnarchiveForm godoc
// @Summary      Unarchive a form back to draft or published
// @Tags         forms
// @Accept       json
// @Produce      json
// @Param        id    path  string  true   "Form ID"
// @Param        body  body  object  false  "Optional {\"status\": \"draft\"|\"published\"}"
// @Success      200  {object}  models.Form
// @Failure      409  {object}  models.ErrorResponse
// @Router       /admin/forms/{id}/unarchive [post]
func UnarchiveForm(c *fiber.Ctx) error {
	var body struct {
		Status string `json:"status"`
	}
	// Body is optional; default to draft.
	_ = c.BodyParser(&body)
	if body.Status == "" {
		body.Status = models.FormStatusDraft
	}
	if body.Status != models.FormStatusDraft && body.Status != models.FormStatusPublished {
		return utils.HandleError(c, fiber.StatusBadRequest, "status must be draft or published")
	}
	return setFormStatus(c, body.Status)
}

func setFormStatus(c *fiber.Ctx, status string) error {
	id, err := primitive.ObjectIDFromHex(c.Params("id"))
	if err != nil {
		return utils.HandleError(c, fiber.StatusBadRequest, "Invalid ID format")
	}

	form, err := forms.SetStatus(c.Context(), id, status)
	if err != nil {
		return formError(c, err)
	}
	return c.JSON(form)
}

// DuplicateForm godoc
// @Summary      Duplicate a form as a fresh draft
// @Tags         forms
// @Produce      json
// @Param        id   path  string  true  "Form ID"
// @Success      201  {object}  models.Form
// @Failure      404  {object}  models.ErrorResponse
// @Router       /admin/forms/{id}/duplicate [post]
func DuplicateForm(c *fiber.Ctx) error {
	id, err := primitive.ObjectIDFromHex(c.Params("id"))
	if err != nil {
		return utils.HandleError(c, fiber.StatusBadRequest, "Invalid ID format")
	}

	form, err := forms.DuplicateForm(c.Context(), id)
	if err != nil {
		return formError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(form)
}

// GetFormVersions godoc
// @Summary      List a form's published versions (metadata only)
// @Tags         forms
// @Produce      json
// @Param        id   path  string  true  "Form ID"
// @Success      200  {array}  models.FormVersionSummary
// @Router       /admin/forms/{id}/versions [get]
func GetFormVersions(c *fiber.Ctx) error {
	id, err := primitive.ObjectIDFromHex(c.Params("id"))
	if err != nil {
		return utils.HandleError(c, fiber.StatusBadRequest, "Invalid ID format")
	}

	versions, err := forms.GetFormVersions(c.Context(), id)
	if err != nil {
		return utils.HandleError(c, fiber.StatusInternalServerError, err.Error())
	}
	return c.JSON(versions)
}

// GetFormVersion godoc
// @Summary      Get one immutable version snapshot
// @Tags         forms
// @Produce      json
// @Param        id       path  string  true  "Form ID"
// @Param        version  path  int     true  "Version number"
// @Success      200  {object}  models.FormVersion
// @Failure      404  {object}  models.ErrorResponse
// @Router       /admin/forms/{id}/versions/{version} [get]
func GetFormVersion(c *fiber.Ctx) error {
	id, err := primitive.ObjectIDFromHex(c.Params("id"))
	if err != nil {
		return utils.HandleError(c, fiber.StatusBadRequest, "Invalid ID format")
	}
	version, err := c.ParamsInt("version")
	if err != nil || version < 1 {
		return utils.HandleError(c, fiber.StatusBadRequest, "Invalid version number")
	}

	v, err := forms.GetFormVersion(c.Context(), id, version)
	if err != nil {
		return formError(c, err)
	}
	return c.JSON(v)
}

// GetPublicForm godoc
// @Summary      Get a published form by slug (public)
// @Description  Returns the current published version's schema; drafts are never exposed here
// @Tags         public
// @Produce      json
// @Param        slug  path  string  true  "Form slug"
// @Success      200  {object}  models.PublicForm
// @Failure      404  {object}  models.ErrorResponse
// @Router       /forms/{slug} [get]
func GetPublicForm(c *fiber.Ctx) error {
	form, err := forms.GetBySlug(c.Context(), c.Params("slug"))
	if err != nil {
		return formError(c, err)
	}
	return c.JSON(form)
}

// formError maps lifecycle errors onto the error taxonomy: not-found,
// conflict, and schema (state) errors each get their own status.
func formError(c *fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, forms.ErrFormNotFound), errors.Is(err, forms.ErrVersionNotFound):
		return utils.HandleError(c, fiber.StatusNotFound, err.Error())
	case errors.Is(err, forms.ErrSlugTaken), errors.Is(err, forms.ErrInvalidTransition), errors.Is(err, forms.ErrNotPublished):
		return utils.HandleError(c, fiber.StatusConflict, err.Error())
	case errors.Is(err, forms.ErrSlugEmpty), errors.Is(err, forms.ErrSlugReserved):
		return utils.HandleError(c, fiber.StatusBadRequest, err.Error())
	case errors.Is(err, forms.ErrInvalidSchema):
		return utils.HandleError(c, fiber.StatusUnprocessableEntity, err.Error())
	default:
		return utils.HandleError(c, fiber.StatusInternalServerError, err.Error())
	}
}
