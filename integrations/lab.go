package integrations

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/gofiber/fiber/v2"
)

func labURL() string {
	url := os.Getenv("LAB_API_URL")
	if url == "" {
		url = "http://localhost:5002/api/laboratory"
	}
	return url
}

// SendTestOrder forwards a test order to the laboratory service.
func SendTestOrder(payload interface{}) (map[string]interface{}, error) {
	agent := fiber.Post(labURL())
	agent.JSON(payload)

	status, body, errs := agent.Bytes()
	if len(errs) > 0 {
		return nil, fmt.Errorf("lab service unreachable: %w", errs[0])
	}
	if status != fiber.StatusOK && status != fiber.StatusCreated {
		return nil, fmt.Errorf("lab service returned status %d", status)
	}

	var result map[string]interface{}
	if err := json.Unmarshal(body, &result); err != nil {
		return nil, fmt.Errorf("invalid lab response: %w", err)
	}
	return result, nil
}
