package fiber

import (
	"encoding/json"
	"errors"
	"io"
	"net/http/httptest"
	"testing"

	gofiber "github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"

	"survey-dashboard/utils"
)

func TestErrorHandlerEnvelope(t *testing.T) {
	app := SetupFiber(nil)
	app.Get("/bad", func(c *gofiber.Ctx) error { return gofiber.NewError(400, "format tidak dikenal") })
	app.Get("/boom", func(c *gofiber.Ctx) error { return errors.New("kaput") })

	resp, err := app.Test(httptest.NewRequest("GET", "/bad", nil))
	require.NoError(t, err)
	assert.Equal(t, 400, resp.StatusCode)
	var body map[string]string
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.Equal(t, "format tidak dikenal", body["error"])

	resp, _ = app.Test(httptest.NewRequest("GET", "/boom", nil))
	assert.Equal(t, 500, resp.StatusCode)
}

func TestRequestLoggerSetsRequestID(t *testing.T) {
	core, logs := observer.New(zap.InfoLevel)
	app := SetupFiber(zap.New(core))
	app.Get("/ping", func(c *gofiber.Ctx) error { return c.SendString(utils.RequestIDFrom(c.UserContext())) })
	app.Get("/missing", func(c *gofiber.Ctx) error { return gofiber.ErrNotFound })

	req := httptest.NewRequest("GET", "/ping", nil)
	req.Header.Set(HeaderRequestID, "abc-123")
	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, "abc-123", resp.Header.Get(HeaderRequestID))
	body, _ := io.ReadAll(resp.Body)
	assert.Equal(t, "abc-123", string(body))

	resp, _ = app.Test(httptest.NewRequest("GET", "/missing", nil))
	assert.NotEmpty(t, resp.Header.Get(HeaderRequestID))
	assert.Equal(t, 404, resp.StatusCode)

	entries := logs.FilterMessage("request").All()
	require.Len(t, entries, 2)
	assert.Equal(t, "abc-123", entries[0].ContextMap()["request_id"])
	assert.EqualValues(t, 404, entries[1].ContextMap()["status"])
}
