package controllers

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"Backend-Formforge/src/models"
	"Backend-Formforge/src/services/audit"
	"Backend-Formforge/src/services/forms"
	submissionSvc "Backend-Formforge/src/services/submissions"
	"Backend-Formforge/src/utils"
)

// CreateSubmission godoc
// @Summary      Submit a form (public)
// @Description  Validates the payload against the referenced version's schema and stores it
// @Tags         public
// @Accept       json
// @Produce      json
// @Param        body body models.CreateSubmissionRequest true "Submission"
// @Success      201  {object}  models.Submission
// @Failure      404  {object}  models.ErrorResponse
// @Failure      409  {object}  models.ErrorResponse
// @Failure      422  {object}  models.ValidationErrorResponse
// @Router       /submissions [post]
func CreateSubmission(c *fiber.Ctx) error {
	var req models.CreateSubmissionRequest
	if err := c.BodyParser(&req); err != nil {
		return utils.HandleError(c, fiber.StatusBadRequest, "Invalid input: "+err.Error())
	}
	if err := validate.Struct(&req); err != nil {
		return utils.HandleError(c, fiber.StatusBadRequest, "Invalid input: "+err.Error())
	}

	versionID, err := primitive.ObjectIDFromHex(req.FormVersionID)
	if err != nil {
		return utils.HandleError(c, fiber.StatusBadRequest, "invalid formVersionId")
	}

	submission, err := submissionSvc.CreateSubmission(c.Context(), versionID, req.Data)
	if err != nil {
		var vErr *submissionSvc.ValidationFailedError
		if errors.As(err, &vErr) {
			return utils.HandleValidationError(c, vErr.Errors)
		}
		return submissionError(c, err)
	}

	return c.Status(fiber.StatusCreated).JSON(submission)
}

// GetSubmissions godoc
// @Summary      List submission summaries
// @Description  No data payloads in list views; filter by form and/or status
// @Tags         submissions
// @Produce      json
// @Param        formId  query  string  false  "Owning form ID"
// @Param        status  query  string  false  "Status filter"
// @Param        page    query  int     false  "Page"
// @Param        limit   query  int     false  "Limit"
// @Success      200  {object}  models.PaginatedResponse
// @Router       /admin/submissions [get]
func GetSubmissions(c *fiber.Ctx) error {
	var filters models.SubmissionFilters
	if err := c.QueryParser(&filters); err != nil {
		return utils.HandleError(c, fiber.StatusBadRequest, "Invalid query: "+err.Error())
	}
	params := models.DefaultPagination()
	if err := c.QueryParser(&params); err != nil {
		return utils.HandleError(c, fiber.StatusBadRequest, "Invalid query: "+err.Error())
	}

	result, err := submissionSvc.GetSubmissions(c.Context(), filters, params)
	if err != nil {
		return submissionError(c, err)
	}
	return c.JSON(result)
}

// GetSubmission godoc
// @Summary      Get one submission with full data
// @Tags         submissions
// @Produce      json
// @Param        id   path  string  true  "Submission ID"
// @Success      200  {object}  models.Submission
// @Failure      404  {object}  models.ErrorResponse
// @Router       /admin/submissions/{id} [get]
func GetSubmission(c *fiber.Ctx) error {
	id, err := primitive.ObjectIDFromHex(c.Params("id"))
	if err != nil {
		return utils.HandleError(c, fiber.StatusBadRequest, "Invalid ID format")
	}

	submission, err := submissionSvc.GetSubmissionByID(c.Context(), id)
	if err != nil {
		return submissionError(c, err)
	}
	return c.JSON(submission)
}

// UpdateSubmissionStatus godoc
// @Summary      Overwrite a submission's status
// @Tags         submissions
// @Accept       json
// @Produce      json
// @Param        id    path  string                                true  "Submission ID"
// @Param        body  body  models.UpdateSubmissionStatusRequest  true  "New status"
// @Success      200  {object}  models.Submission
// @Failure      400  {object}  models.ErrorResponse
// @Router       /admin/submissions/{id}/status [patch]
func UpdateSubmissionStatus(c *fiber.Ctx) error {
	id, err := primitive.ObjectIDFromHex(c.Params("id"))
	if err != nil {
		return utils.HandleError(c, fiber.StatusBadRequest, "Invalid ID format")
	}

	var req models.UpdateSubmissionStatusRequest
	if err := c.BodyParser(&req); err != nil {
		return utils.HandleError(c, fiber.StatusBadRequest, "Invalid input: "+err.Error())
	}

	submission, err := submissionSvc.UpdateStatus(c.Context(), id, req.Status)
	if err != nil {
		return submissionError(c, err)
	}
	return c.JSON(submission)
}

// UpdateSubmissionNotes godoc
// @Summary      Overwrite a submission's notes
// @Tags         submissions
// @Accept       json
// @Produce      json
// @Param        id    path  string                               true  "Submission ID"
// @Param        body  body  models.UpdateSubmissionNotesRequest  true  "Notes"
// @Success      200  {object}  models.Submission
// @Router       /admin/submissions/{id}/notes [patch]
func UpdateSubmissionNotes(c *fiber.Ctx) error {
	id, err := primitive.ObjectIDFromHex(c.Params("id"))
	if err != nil {
		return utils.HandleError(c, fiber.StatusBadRequest, "Invalid ID format")
	}

	var req models.UpdateSubmissionNotesRequest
	if err := c.BodyParser(&req); err != nil {
		return utils.HandleError(c, fiber.StatusBadRequest, "Invalid input: "+err.Error())
	}

	submission, err := submissionSvc.UpdateNotes(c.Context(), id, req.Notes)
	if err != nil {
		return submissionError(c, err)
	}
	return c.JSON(submission)
}

// UpdateSubmissionField godoc
// @Summary      Edit one field of a submission (audit-trailed)
// @Description  The only write path for field-level admin edits; no-op edits insert no history
// @Tags         submissions
// @Accept       json
// @Produce      json
// @Param        id    path  string                    true  "Submission ID"
// @Param        body  body  models.UpdateFieldRequest true  "Field edit"
// @Success      200  {object}  models.UpdateFieldResult
// @Failure      404  {object}  models.ErrorResponse
// @Router       /admin/submissions/{id}/fields [patch]
func UpdateSubmissionField(c *fiber.Ctx) error {
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

	result, err := audit.UpdateSubmissionField(c.Context(), id, req.Field, req.Value, req.FieldLabel)
	if err != nil {
		return submissionError(c, err)
	}
	return c.JSON(result)
}

// GetSubmissionHistory godoc
// @Summary      Get a submission's field edit history, newest first
// @Tags         submissions
// @Produce      json
// @Param        id   path  string  true  "Submission ID"
// @Success      200  {array}  models.SubmissionFieldHistory
// @Router       /admin/submissions/{id}/history [get]
func GetSubmissionHistory(c *fiber.Ctx) error {
	id, err := primitive.ObjectIDFromHex(c.Params("id"))
	if err != nil {
		return utils.HandleError(c, fiber.StatusBadRequest, "Invalid ID format")
	}

	records, err := audit.GetSubmissionHistory(c.Context(), id)
	if err != nil {
		return utils.HandleError(c, fiber.StatusInternalServerError, err.Error())
	}
	return c.JSON(records)
}

// ExportSubmissions godoc
// @Summary      Export submissions with their version's schema
// @Description  Caller is expected to pre-filter the ids to one form
// @Tags         submissions
// @Accept       json
// @Produce      json
// @Param        body body object true "{\"ids\": [\"...\"]}"
// @Success      200  {object}  models.SubmissionExport
// @Router       /admin/submissions/export [post]
func ExportSubmissions(c *fiber.Ctx) error {
	var body struct {
		IDs []string `json:"ids"`
	}
	if err := c.BodyParser(&body); err != nil {
		return utils.HandleError(c, fiber.StatusBadRequest, "Invalid input: "+err.Error())
	}
	if len(body.IDs) == 0 {
		return utils.HandleError(c, fiber.StatusBadRequest, "ids must not be empty")
	}

	ids := make([]primitive.ObjectID, 0, len(body.IDs))
	for _, raw := range body.IDs {
		id, err := primitive.ObjectIDFromHex(raw)
		if err != nil {
			return utils.HandleError(c, fiber.StatusBadRequest, "invalid submission id: "+raw)
		}
		ids = append(ids, id)
	}

	export, err := submissionSvc.ExportSubmissions(c.Context(), ids)
	if err != nil {
		return submissionError(c, err)
	}
	return c.JSON(export)
}

func submissionError(c *fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, submissionSvc.ErrSubmissionNotFound),
		errors.Is(err, audit.ErrEntityNotFound),
		errors.Is(err, forms.ErrFormNotFound),
		errors.Is(err, forms.ErrVersionNotFound):
		return utils.HandleError(c, fiber.StatusNotFound, err.Error())
	case errors.Is(err, submissionSvc.ErrFormArchived):
		return utils.HandleError(c, fiber.StatusConflict, err.Error())
	case errors.Is(err, submissionSvc.ErrInvalidStatus), errors.Is(err, audit.ErrUnknownField):
		return utils.HandleError(c, fiber.StatusBadRequest, err.Error())
	default:
		return utils.HandleError(c, fiber.StatusInternalServerError, err.Error())
	}
}
