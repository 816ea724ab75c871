package handlers

import (
	"encoding/json"
	"io"
	"net/http/httptest"
	"strings"
	"testing"

	"chamalink/internal/config"
	"chamalink/internal/core/services"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Calculate is a pure computation, so the service needs no repositories.
func newCalculateApp() *fiber.App {
	cfg := &config.Config{
		Loan: config.LoanConfig{
			MaxAmount:             50000,
			MonthlyInterestRate:   10,
			DefaultDurationMonths: 3,
		},
	}
	handler := NewLoanHandler(services.NewLoanService(nil, nil, nil, cfg, nil))

	app := fiber.New()
	app.Post("/calculate", handler.Calculate)
	return app
}

func postCalculate(t *testing.T, app *fiber.App, body string) (int, map[string]interface{}) {
	t.Helper()
	req := httptest.NewRequest("POST", "/calculate", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")

	resp, err := app.Test(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)

	var parsed map[string]interface{}
	require.NoError(t, json.Unmarshal(raw, &parsed))
	return resp.StatusCode, parsed
}

func TestCalculateRejectsAboveMaximum(t *testing.T) {
	app := newCalculateApp()

	status, body := postCalculate(t, app, `{"amount": 60000}`)

	assert.Equal(t, fiber.StatusBadRequest, status)
	assert.Contains(t, body["error"], "maximum loan amount")
}

func TestCalculateRejectsNonPositiveAmount(t *testing.T) {
	app := newCalculateApp()

	status, body := postCalculate(t, app, `{"amount": 0}`)

	assert.Equal(t, fiber.StatusBadRequest, status)
	assert.Contains(t, body["error"], "greater than 0")
	assert.Contains(t, body["error"], "maximum")
}

func TestCalculateReturnsSchedule(t *testing.T) {
	app := newCalculateApp()

	status, body := postCalculate(t, app, `{"amount": 9000, "duration_months": 3}`)

	require.Equal(t, fiber.StatusOK, status)
	data, ok := body["data"].(map[string]interface{})
	require.True(t, ok)
	assert.Equal(t, float64(10800), data["total_repayment"])
}
