package blob

import (
	"errors"
	"net/url"

	"storage-kit/core/logger"
	"storage-kit/core/storage"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/utils"
	"go.uber.org/zap"
)

// Handler handles HTTP requests for blobs.
type Handler struct {
	service *Service
}

// NewHandler creates a new HTTP handler.
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// RegisterRoutes registers the blob routes.
func (h *Handler) RegisterRoutes(app fiber.Router) {
	group := app.Group("/blob")
	// HEAD first: fiber's Get also answers HEAD.
	group.Head("/:container", h.HandleContainerExists)
	group.Head("/:container/*", h.HandleExists)
	group.Get("/:container", h.HandleList)
	group.Get("/:container/*", h.HandleGet)
	group.Put("/:container/*", h.HandlePut)
	group.Delete("/:container/*", h.HandleDelete)
}

// Strings handed out by fiber alias the request buffer, which is reused once the
// handler returns. Anything passed down to a driver is copied first.

func containerName(c *fiber.Ctx) string {
	return utils.CopyString(c.Params("container"))
}

func objectKey(c *fiber.Ctx) (string, error) {
	key, err := url.PathUnescape(c.Params("*"))
	if err != nil {
		return "", err
	}
	if key == "" {
		return "", errors.New("object key is required")
	}
	return utils.CopyString(key), nil
}

func (h *Handler) fail(c *fiber.Ctx, msg string, err error) error {
	status := fiber.StatusInternalServerError
	if errors.Is(err, storage.ErrNotFound) {
		status = fiber.StatusNotFound
	}
	l := logger.WithRayID(h.service.logger, c)
	if status >= fiber.StatusInternalServerError {
		l.Error(msg, zap.Error(err))
	} else {
		l.Debug(msg, zap.Error(err))
	}
	return c.Status(status).JSON(fiber.Map{"error": err.Error()})
}

func badRequest(c *fiber.Ctx, err error) error {
	return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
}

// HandlePut uploads the request body or changes the tier of an existing object.
// @Summary Upload Blob
// @Description Upload the request body to container/key. With only_tier=true only the tier is changed.
// @Tags blob
// @Accept octet-stream
// @Produce json
// @Param container path string true "Container name"
// @Param key path string true "Object key (may contain '/')"
// @Param tier query string false "hot, cool or archive"
// @Param overwrite query bool false "Delete the existing object first"
// @Param only_tier query bool false "Change the tier without uploading"
// @Success 201 {object} map[string]string "Uploaded"
// @Success 200 {object} map[string]string "Tier changed"
// @Failure 400 {object} map[string]string "Bad Request"
// @Failure 404 {object} map[string]string "Not Found"
// @Failure 500 {object} map[string]string "Internal Server Error"
// @Router /blob/{container}/{key} [put]
func (h *Handler) HandlePut(c *fiber.Ctx) error {
	container := containerName(c)
	key, err := objectKey(c)
	if err != nil {
		return badRequest(c, err)
	}
	tier, err := storage.ParseTier(c.Query("tier"))
	if err != nil {
		return badRequest(c, err)
	}

	if c.QueryBool("only_tier") {
		if err := h.service.SetTier(c.Context(), container, key, tier); err != nil {
			return h.fail(c, "Set tier failed", err)
		}
		return c.JSON(fiber.Map{"key": key, "tier": tier.String()})
	}

	opts := UploadOptions{
		Tier:           tier,
		DeleteExisting: c.QueryBool("overwrite"),
		ContentType:    utils.CopyString(c.Get(fiber.HeaderContentType)),
	}
	if err := h.service.UploadBytes(c.Context(), container, key, c.Body(), opts); err != nil {
		return h.fail(c, "Upload failed", err)
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"key": key, "tier": tier.String()})
}

// HandleGet downloads an object, or returns its properties when properties=true.
// @Summary Download Blob
// @Description Download container/key. With properties=true the object properties are returned instead.
// @Tags blob
// @Produce octet-stream
// @Param container path string true "Container name"
// @Param key path string true "Object key (may contain '/')"
// @Param properties query bool false "Return properties instead of content"
// @Success 200 {object} storage.Properties "Properties"
// @Failure 404 {object} map[string]string "Not Found"
// @Failure 500 {object} map[string]string "Internal Server Error"
// @Router /blob/{container}/{key} [get]
func (h *Handler) HandleGet(c *fiber.Ctx) error {
	container := containerName(c)
	key, err := objectKey(c)
	if err != nil {
		return badRequest(c, err)
	}

	if c.QueryBool("properties") {
		props, err := h.service.Properties(c.Context(), container, key)
		if err != nil {
			return h.fail(c, "Properties failed", err)
		}
		return c.JSON(props)
	}

	data, err := h.service.Download(c.Context(), container, key)
	if err != nil {
		return h.fail(c, "Download failed", err)
	}
	c.Set(fiber.HeaderContentType, fiber.MIMEOctetStream)
	return c.Send(data)
}

// HandleExists answers 200 when the object exists and 404 otherwise.
// @Summary Blob Exists
// @Tags blob
// @Param container path string true "Container name"
// @Param key path string true "Object key (may contain '/')"
// @Success 200
// @Failure 404
// @Router /blob/{container}/{key} [head]
func (h *Handler) HandleExists(c *fiber.Ctx) error {
	container := containerName(c)
	key, err := objectKey(c)
	if err != nil {
		return c.SendStatus(fiber.StatusBadRequest)
	}
	ok, err := h.service.Exists(c.Context(), container, key)
	if err != nil {
		logger.WithRayID(h.service.logger, c).Error("Exists check failed", zap.Error(err))
		return c.SendStatus(fiber.StatusInternalServerError)
	}
	if !ok {
		return c.SendStatus(fiber.StatusNotFound)
	}
	return c.SendStatus(fiber.StatusOK)
}

// HandleDelete removes an object if it exists.
// @Summary Delete Blob
// @Tags blob
// @Produce json
// @Param container path string true "Container name"
// @Param key path string true "Object key (may contain '/')"
// @Success 200 {object} map[string]bool "Deleted flag"
// @Failure 500 {object} map[string]string "Internal Server Error"
// @Router /blob/{container}/{key} [delete]
func (h *Handler) HandleDelete(c *fiber.Ctx) error {
	container := containerName(c)
	key, err := objectKey(c)
	if err != nil {
		return badRequest(c, err)
	}
	deleted, err := h.service.Delete(c.Context(), container, key)
	if err != nil {
		return h.fail(c, "Delete failed", err)
	}
	return c.JSON(fiber.Map{"deleted": deleted})
}

// HandleList lists the keys of a container under an optional prefix.
// @Summary List Blobs
// @Tags blob
// @Produce json
// @Param container path string true "Container name"
// @Param prefix query string false "Key prefix"
// @Success 200 {array} string "Keys"
// @Failure 500 {object} map[string]string "Internal Server Error"
// @Router /blob/{container} [get]
func (h *Handler) HandleList(c *fiber.Ctx) error {
	keys, err := h.service.List(c.Context(), containerName(c), utils.CopyString(c.Query("prefix")))
	if err != nil {
		return h.fail(c, "List failed", err)
	}
	return c.JSON(keys)
}

// HandleContainerExists answers 200 when the container exists and 404 otherwise.
// @Summary Container Exists
// @Tags blob
// @Param container path string true "Container name"
// @Success 200
// @Failure 404
// @Router /blob/{container} [head]
func (h *Handler) HandleContainerExists(c *fiber.Ctx) error {
	ok, err := h.service.ContainerExists(c.Context(), containerName(c))
	if err != nil {
		logger.WithRayID(h.service.logger, c).Error("Container check failed", zap.Error(err))
		return c.SendStatus(fiber.StatusInternalServerError)
	}
	if !ok {
		return c.SendStatus(fiber.StatusNotFound)
	}
	return c.SendStatus(fiber.StatusOK)
}
