package controllers

import (
	"errors"
	"log"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"Backend-Formforge/src/database"
	"Backend-Formforge/src/models"
	"Backend-Formforge/src/services/drafts"
	"Backend-Formforge/src/utils"
)

var draftRepo drafts.Repository

// draftCookieName holds the per-browser respondent id. Drafts are keyed by
// (respondent, slug), so visitors of the same form never see each other's
// answers.
const draftCookieName = "draft_session"

// InitDraftRepository picks the Redis-backed store when Redis is up, and
// falls back to the in-process store otherwise.
func InitDraftRepository() {
	if database.RedisClient != nil {
		draftRepo = drafts.NewRedisRepository(database.RedisClient)
		log.Println("✅ Draft repository backed by Redis")
		return
	}
	draftRepo = drafts.NewMemoryRepository()
	log.Println("⚠️ Draft repository running in-memory")
}

// draftRespondent returns the caller's respondent id, or "" when the cookie
// is missing or not one of ours.
func draftRespondent(c *fiber.Ctx) string {
	id := c.Cookies(draftCookieName)
	if _, err := uuid.Parse(id); err != nil {
		return ""
	}
	return id
}

func setDraftCookie(c *fiber.Ctx, respondentID string) {
	c.Cookie(&fiber.Cookie{
		Name:     draftCookieName,
		Value:    respondentID,
		Expires:  time.Now().Add(7 * 24 * time.Hour),
		HTTPOnly: true,
		SameSite: fiber.CookieSameSiteLaxMode,
	})
}

// GetDraft godoc
// @Summary      Get the caller's in-progress draft for a form (public)
// @Description  Returns 404 when no draft exists or the bound version is stale
// @Tags         drafts
// @Produce      json
// @Param        slug       path   string  true  "Form slug"
// @Param        versionId  query  string  true  "Current form version id"
// @Success      200  {object}  models.FormDraft
// @Failure      404  {object}  models.ErrorResponse
// @Router       /forms/{slug}/draft [get]
func GetDraft(c *fiber.Ctx) error {
	versionID := c.Query("versionId")
	if versionID == "" {
		return utils.HandleError(c, fiber.StatusBadRequest, "versionId is required")
	}

	respondentID := draftRespondent(c)
	if respondentID == "" {
		// No session cookie means this browser never started a draft.
		return utils.HandleError(c, fiber.StatusNotFound, drafts.ErrDraftNotFound.Error())
	}

	draft, err := draftRepo.Get(c.Context(), respondentID, c.Params("slug"), versionID)
	if err != nil {
		if errors.Is(err, drafts.ErrDraftNotFound) {
			return utils.HandleError(c, fiber.StatusNotFound, err.Error())
		}
		return utils.HandleError(c, fiber.StatusInternalServerError, err.Error())
	}
	return c.JSON(draft)
}

// InitDraft godoc
// @Summary      Start a fresh draft bound to a version (public)
// @Description  Issues the draft session cookie when the browser has none
// @Tags         drafts
// @Produce      json
// @Param        slug       path   string  true  "Form slug"
// @Param        versionId  query  string  true  "Current form version id"
// @Success      201  {object}  models.FormDraft
// @Router       /forms/{slug}/draft [post]
func InitDraft(c *fiber.Ctx) error {
	versionID := c.Query("versionId")
	if versionID == "" {
		return utils.HandleError(c, fiber.StatusBadRequest, "versionId is required")
	}

	respondentID := draftRespondent(c)
	if respondentID == "" {
		respondentID = uuid.NewString()
	}
	setDraftCookie(c, respondentID)

	draft, err := draftRepo.Init(c.Context(), respondentID, c.Params("slug"), versionID)
	if err != nil {
		return utils.HandleError(c, fiber.StatusInternalServerError, err.Error())
	}
	return c.Status(fiber.StatusCreated).JSON(draft)
}

// UpdateDraft godoc
// @Summary      Save the caller's draft progress (public)
// @Tags         drafts
// @Accept       json
// @Produce      json
// @Param        slug  path  string            true  "Form slug"
// @Param        body  body  models.FormDraft  true  "Draft state"
// @Success      200  {object}  models.FormDraft
// @Failure      400  {object}  models.ErrorResponse
// @Router       /forms/{slug}/draft [put]
func UpdateDraft(c *fiber.Ctx) error {
	var draft models.FormDraft
	if err := c.BodyParser(&draft); err != nil {
		return utils.HandleError(c, fiber.StatusBadRequest, "Invalid input: "+err.Error())
	}
	if draft.VersionID == "" {
		return utils.HandleError(c, fiber.StatusBadRequest, "versionId is required")
	}

	respondentID := draftRespondent(c)
	if respondentID == "" {
		return utils.HandleError(c, fiber.StatusBadRequest, "no draft session; start a draft first")
	}

	if err := draftRepo.Update(c.Context(), respondentID, c.Params("slug"), &draft); err != nil {
		return utils.HandleError(c, fiber.StatusInternalServerError, err.Error())
	}
	return c.JSON(draft)
}

// ClearDraft godoc
// @Summary      Discard the caller's draft (public)
// @Tags         drafts
// @Param        slug  path  string  true  "Form slug"
// @Success      204
// @Router       /forms/{slug}/draft [delete]
func ClearDraft(c *fiber.Ctx) error {
	respondentID := draftRespondent(c)
	if respondentID == "" {
		return c.SendStatus(fiber.StatusNoContent)
	}

	if err := draftRepo.Clear(c.Context(), respondentID, c.Params("slug")); err != nil {
		return utils.HandleError(c, fiber.StatusInternalServerError, err.Error())
	}
	return c.SendStatus(fiber.StatusNoContent)
}
