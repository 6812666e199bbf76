package handlers

import (
	"bytes"
	"encoding/json"
	"io"
	"mime"
	"time"

	"github.com/gofiber/fiber/v2"

	"claim_relay/middleware"
	"claim_relay/models"
	"claim_relay/pkg/logging"
	"claim_relay/services"
)

type RelayHandler struct {
	relayService      *services.RelayService
	defaultWebhookURL string
}

func NewRelayHandler(relayService *services.RelayService, defaultWebhookURL string) *RelayHandler {
	return &RelayHandler{relayService: relayService, defaultWebhookURL: defaultWebhookURL}
}

// TriggerWorkflow starts an upstream workflow and wraps its reply in a TriggerEnvelope.
func (h *RelayHandler) TriggerWorkflow(c *fiber.Ctx) error {
	webhookURL := c.Query("webhookUrl", h.defaultWebhookURL)
	if webhookURL == "" {
		return c.Status(fiber.StatusBadRequest).JSON(models.ErrorResponse{
			Error: "webhookUrl query parameter is required",
		})
	}

	body := map[string]any{}
	if raw := bytes.TrimSpace(c.Body()); len(raw) > 0 {
		if err := json.Unmarshal(raw, &body); err != nil || body == nil {
			return c.Status(fiber.StatusBadRequest).JSON(models.ErrorResponse{
				Error: "request body must be a JSON object",
			})
		}
	}
	body["timestamp"] = time.Now().UTC().Format(time.RFC3339)
	body["source"] = models.SourceTag

	logging.Logger.Info("Triggering workflow",
		"requestID", middleware.GetRequestID(c),
		"webhookURL", webhookURL,
	)
	ctx := services.WithRequestID(c.UserContext(), middleware.GetRequestID(c))
	data, err := h.relayService.Trigger(ctx, webhookURL, body)
	if err != nil {
		logging.Logger.Error("fail TriggerWorkflow", "error", err)
		return c.Status(fiber.StatusInternalServerError).JSON(models.ErrorResponse{
			Error:   "Failed to trigger workflow",
			Details: err.Error(),
			Hint:    "Please try starting the claim again.",
		})
	}

	return c.JSON(models.TriggerEnvelope{
		Success: true,
		Message: "Workflow triggered",
		Data:    data,
	})
}

// ResumeWorkflow continues an upstream workflow at resumeUrl. Multipart bodies are
// streamed through untouched; anything else is treated as JSON.
func (h *RelayHandler) ResumeWorkflow(c *fiber.Ctx) error {
	resumeURL := c.Query("resumeUrl")
	if resumeURL == "" {
		return c.Status(fiber.StatusBadRequest).JSON(models.ErrorResponse{
			Error: "resumeUrl query parameter is required",
		})
	}

	contentType := c.Get(fiber.HeaderContentType)
	ctx := services.WithRequestID(c.UserContext(), middleware.GetRequestID(c))
	logging.Logger.Info("Resuming claim workflow",
		"requestID", middleware.GetRequestID(c),
		"resumeURL", resumeURL,
		"contentType", contentType,
	)

	var reply json.RawMessage
	var err error
	if isMultipart(contentType) {
		reply, err = h.relayService.ResumeStream(ctx, resumeURL, services.Stream{
			ContentType:   contentType,
			ContentLength: contentLength(c),
			Body:          requestBodyStream(c),
		})
	} else {
		body := bytes.TrimSpace(c.Body())
		if len(body) == 0 {
			body = []byte("{}")
		}
		if !json.Valid(body) {
			return c.Status(fiber.StatusBadRequest).JSON(models.ErrorResponse{
				Error: "request body must be valid JSON",
			})
		}
		reply, err = h.relayService.ResumeJSON(ctx, resumeURL, body)
	}
	if err != nil {
		logging.Logger.Error("fail ResumeWorkflow", "error", err)
		return c.Status(fiber.StatusInternalServerError).JSON(models.ErrorResponse{
			Error:   "Failed to resume claim workflow",
			Details: err.Error(),
			Note:    "The resume URL may have expired or already been used. Start a new claim if the problem persists.",
		})
	}

	c.Set(fiber.HeaderContentType, fiber.MIMEApplicationJSON)
	return c.Send(reply)
}

func isMultipart(contentType string) bool {
	mediaType, _, err := mime.ParseMediaType(contentType)
	return err == nil && mediaType == fiber.MIMEMultipartForm
}

// requestBodyStream returns the inbound body without buffering it when the
// server streams request bodies.
func requestBodyStream(c *fiber.Ctx) io.Reader {
	if stream := c.Context().RequestBodyStream(); stream != nil {
		return stream
	}
	return bytes.NewReader(c.Body())
}

// contentLength reports the inbound Content-Length, or -1 when unknown.
func contentLength(c *fiber.Ctx) int64 {
	n := c.Request().Header.ContentLength()
	if n < 0 {
		return -1
	}
	return int64(n)
}
