package queue

import (
	"errors"
	"time"

	"storage-kit/core/logger"
	"storage-kit/core/queue"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/utils"
	"go.uber.org/zap"
)

// EnqueueRequest is the body of POST /queue/{name}.
type EnqueueRequest struct {
	Message string `json:"message"`
	// TTLSeconds of -1 never expires. Omitted uses the seven day default.
	TTLSeconds *int64 `json:"ttl_seconds,omitempty"`
	// DelaySeconds hides the message for that long.
	DelaySeconds *int64 `json:"delay_seconds,omitempty"`
}

// Handler handles HTTP requests for queues.
type Handler struct {
	service *Service
}

// NewHandler creates a new HTTP handler.
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// RegisterRoutes registers the queue routes.
func (h *Handler) RegisterRoutes(app fiber.Router) {
	group := app.Group("/queue")
	group.Post("/:name", h.HandleEnqueue)
}

func secondsPtr(v *int64) *time.Duration {
	if v == nil {
		return nil
	}
	d := time.Duration(*v) * time.Second
	return &d
}

// HandleEnqueue adds a message to a queue.
// @Summary Enqueue Message
// @Description Add a message to the queue, creating the queue if needed.
// @Tags queue
// @Accept json
// @Produce json
// @Param name path string true "Queue name"
// @Param request body EnqueueRequest true "Message"
// @Success 201 {object} queue.Receipt "Receipt"
// @Failure 400 {object} map[string]string "Bad Request"
// @Failure 500 {object} map[string]string "Internal Server Error"
// @Router /queue/{name} [post]
func (h *Handler) HandleEnqueue(c *fiber.Ctx) error {
	var req EnqueueRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid request body"})
	}

	// Params aliases the request buffer; the name may outlive the request in a driver.
	name := utils.CopyString(c.Params("name"))
	receipt, err := h.service.Enqueue(c.Context(), name, req.Message, EnqueueOptions{
		TTL:          secondsPtr(req.TTLSeconds),
		InitialDelay: secondsPtr(req.DelaySeconds),
	})
	if err != nil {
		if errors.Is(err, queue.ErrInvalidArgument) {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
		}
		logger.WithRayID(h.service.logger, c).Error("Enqueue failed", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}
	return c.Status(fiber.StatusCreated).JSON(receipt)
}
