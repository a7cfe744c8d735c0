package restapi

import (
	"bufio"
	"encoding/json"
	"fmt"
	"net"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/andreyxaxa/Photo-Gallery/internal/controller/restapi/v1/response"
	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func startApp(t *testing.T, app *fiber.App) string {
	t.Helper()

	ln, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)

	go func() { _ = app.Listener(ln) }()
	t.Cleanup(func() { _ = app.ShutdownWithTimeout(time.Second) })

	return ln.Addr().String()
}

func TestBodyOverLimitIsBadRequest(t *testing.T) {
	app := fiber.New(fiber.Config{
		BodyLimit:             1024,
		ErrorHandler:          ErrorHandler,
		DisableStartupMessage: true,
	})
	app.Post("/v1/upload", func(ctx *fiber.Ctx) error {
		t.Error("handler must not run for a body over the limit")

		return ctx.SendStatus(http.StatusOK)
	})

	addr := startApp(t, app)

	conn, err := net.DialTimeout("tcp", addr, time.Second)
	require.NoError(t, err)
	defer conn.Close()
	require.NoError(t, conn.SetDeadline(time.Now().Add(2*time.Second)))

	// заголовков достаточно: размер отклоняется по Content-Length до чтения тела
	_, err = fmt.Fprintf(conn, "POST /v1/upload HTTP/1.1\r\n"+
		"Host: %s\r\n"+
		"Content-Type: multipart/form-data; boundary=gallery\r\n"+
		"Content-Length: %d\r\n\r\n", addr, 10<<20)
	require.NoError(t, err)

	resp, err := http.ReadResponse(bufio.NewReader(conn), nil)
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

	var body response.Error
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.Equal(t, "File size too large (max 5MB)", body.Error)
}

func TestErrorHandlerKeepsFiberStatus(t *testing.T) {
	app := fiber.New(fiber.Config{ErrorHandler: ErrorHandler})
	app.Get("/boom", func(*fiber.Ctx) error { return fmt.Errorf("db down") })

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/missing", nil), -1)
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)

	resp, err = app.Test(httptest.NewRequest(http.MethodGet, "/boom", nil), -1)
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusInternalServerError, resp.StatusCode)

	var body response.Error
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.Equal(t, "Internal server error", body.Error)
}
