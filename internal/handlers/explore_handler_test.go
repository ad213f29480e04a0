package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/cropcareai/backend/internal/dto"
	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newExploreApp(chat Completer) *fiber.App {
	app := fiber.New()
	app.Post("/explore/chat", NewExploreHandler(chat).Chat)
	return app
}

func postJSON(t *testing.T, app *fiber.App, path, body string) *http.Response {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	resp, err := app.Test(req)
	require.NoError(t, err)
	return resp
}

func TestChatReturnsReply(t *testing.T) {
	app := newExploreApp(&fakeCompleter{reply: "Rotate your crops."})

	resp := postJSON(t, app, "/explore/chat", `{"query":"how do I avoid blight?"}`)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var out dto.ChatResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&out))
	assert.Equal(t, "Rotate your crops.", out.Reply)
}

func TestChatFallsBackOn200(t *testing.T) {
	app := newExploreApp(&fakeCompleter{err: errors.New("no api key")})

	resp := postJSON(t, app, "/explore/chat", `{"query":"anything"}`)
	require.Equal(t, http.StatusOK, resp.StatusCode, "chat failures must not surface as errors")

	var out dto.ChatResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&out))
	assert.Equal(t, chatFallback, out.Reply)
}

func TestChatRejectsEmptyQuery(t *testing.T) {
	app := newExploreApp(&fakeCompleter{reply: "unused"})

	resp := postJSON(t, app, "/explore/chat", `{"query":"   "}`)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}
