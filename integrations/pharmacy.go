package integrations

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/gofiber/fiber/v2"
)

func pharmacyURL() string {
	url := os.Getenv("PHARMACY_API_URL")
	if url == "" {
		url = "http://localhost:5001/api"
	}
	return url
}

// SearchMedications queries the pharmacy service medication catalog.
func SearchMedications(term string) ([]map[string]interface{}, error) {
	agent := fiber.Get(pharmacyURL() + "/medications")
	if term != "" {
		agent.QueryString("search=" + term)
	}

	status, body, errs := agent.Bytes()
	if len(errs) > 0 {
		return nil, fmt.Errorf("pharmacy service unreachable: %w", errs[0])
	}
	if status != fiber.StatusOK {
		return nil, fmt.Errorf("pharmacy service returned status %d", status)
	}

	var medications []map[string]interface{}
	if err := json.Unmarshal(body, &medications); err != nil {
		return nil, fmt.Errorf("invalid pharmacy response: %w", err)
	}
	return medications, nil
}

// SendPrescription forwards a prescription payload to the pharmacy service.
func SendPrescription(payload interface{}) (map[string]interface{}, error) {
	agent := fiber.Post(pharmacyURL() + "/prescriptions")
	agent.JSON(payload)

	status, body, errs := agent.Bytes()
	if len(errs) > 0 {
		return nil, fmt.Errorf("pharmacy service unreachable: %w", errs[0])
	}
	if status != fiber.StatusOK && status != fiber.StatusCreated {
		return nil, fmt.Errorf("pharmacy service returned status %d", status)
	}

	var result map[string]interface{}
	if err := json.Unmarshal(body, &result); err != nil {
		return nil, fmt.Errorf("invalid pharmacy response: %w", err)
	}
	return result, nil
}
