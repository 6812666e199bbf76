package handlers

import (
	"github.com/gofiber/fiber/v2"

	"claim_relay/models"
)

var Version = "v0.3.0"

func ServiceInfo(c *fiber.Ctx) error {
	return c.JSON(models.ServiceInfo{
		Name:    "claim-relay",
		Version: Version,
		Endpoints: []models.EndpointInfo{
			{
				Method:      fiber.MethodPost,
				Path:        "/api/trigger-workflow",
				Description: "Start a claim workflow; the JSON body is forwarded to the webhook.",
				Query:       []string{"webhookUrl (optional when WEBHOOK_URL is set)"},
			},
			{
				Method:      fiber.MethodPost,
				Path:        "/api/resume-workflow",
				Description: "Resume a waiting workflow with a JSON body or a multipart file upload.",
				Query:       []string{"resumeUrl (required)"},
			},
		},
	})
}
