package controllers

import (
	"errors"
	"log"

	"github.com/gofiber/fiber/v2"

	"Backend-Formforge/src/services/uploads"
	"Backend-Formforge/src/utils"
)

var uploadStore *uploads.DiskStore

// InitUploadStore wires the blob store used by the upload endpoints.
func InitUploadStore() {
	store, err := uploads.NewDiskStore()
	if err != nil {
		log.Fatal("❌ Failed to init upload store:", err)
	}
	uploadStore = store
}

// GenerateUploadRef godoc
// @Summary      Generate an upload handle (public)
// @Tags         uploads
// @Produce      json
// @Success      201  {object}  map[string]string
// @Router       /uploads/ref [post]
func GenerateUploadRef(c *fiber.Ctx) error {
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"uploadHandle": uploadStore.GenerateUploadRef()})
}

// PutUpload godoc
// @Summary      Store bytes under a previously generated handle (public)
// @Tags         uploads
// @Accept       octet-stream
// @Produce      json
// @Param        handle  path  string  true  "Upload handle"
// @Success      201  {object}  map[string]string
// @Failure      400  {object}  models.ErrorResponse
// @Failure      409  {object}  models.ErrorResponse
// @Router       /uploads/{handle} [put]
func PutUpload(c *fiber.Ctx) error {
	body := c.Body()
	if len(body) == 0 {
		return utils.HandleError(c, fiber.StatusBadRequest, "empty upload body")
	}

	contentType := c.Get(fiber.HeaderContentType)
	if contentType == "" {
		contentType = "application/octet-stream"
	}

	storageID, err := uploadStore.Put(c.Context(), c.Params("handle"), body, contentType)
	if err != nil {
		if errors.Is(err, uploads.ErrUploadExists) {
			return utils.HandleError(c, fiber.StatusConflict, err.Error())
		}
		return utils.HandleError(c, fiber.StatusBadRequest, err.Error())
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"storageId": storageID})
}

// GetUpload godoc
// @Summary      Resolve a storage id to its URL and metadata
// @Tags         uploads
// @Produce      json
// @Param        id  path  string  true  "Storage ID"
// @Success      200  {object}  map[string]interface{}
// @Failure      404  {object}  models.ErrorResponse
// @Router       /uploads/{id} [get]
func GetUpload(c *fiber.Ctx) error {
	storageID := c.Params("id")

	meta, err := uploadStore.GetMetadata(c.Context(), storageID)
	if err != nil {
		if errors.Is(err, uploads.ErrUploadNotFound) {
			return utils.HandleError(c, fiber.StatusNotFound, err.Error())
		}
		return utils.HandleError(c, fiber.StatusInternalServerError, err.Error())
	}

	url, err := uploadStore.GetURL(c.Context(), storageID)
	if err != nil {
		return utils.HandleError(c, fiber.StatusInternalServerError, err.Error())
	}

	return c.JSON(fiber.Map{"url": url, "metadata": meta})
}

// ServeUploadFile streams the blob bytes.
func ServeUploadFile(c *fiber.Ctx) error {
	path, err := uploadStore.FilePath(c.Params("id"))
	if err != nil {
		return utils.HandleError(c, fiber.StatusNotFound, "upload not found")
	}
	return c.SendFile(path)
}
