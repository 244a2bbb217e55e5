package fiberlog

import (
	"bytes"
	"encoding/json"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/require"
)

func newApp(buf *bytes.Buffer) *fiber.App {
	logger := logrus.New()
	logger.SetOutput(buf)
	logger.SetFormatter(&logrus.JSONFormatter{})
	app := fiber.New()
	app.Use(New(Config{
		Logger: logger,
		Tags:   []string{TagMethod, TagPath, TagStatus, TagBody},
	}))
	app.Post("/tasks", func(c *fiber.Ctx) error {
		return c.SendStatus(fiber.StatusCreated)
	})
	app.Post("/auth/login", func(c *fiber.Ctx) error {
		return c.SendStatus(fiber.StatusUnauthorized)
	})
	return app
}

func TestNew(t *testing.T) {
	t.Run(`fields check`, func(t *testing.T) {
		buf := &bytes.Buffer{}
		app := newApp(buf)
		req := httptest.NewRequest(fiber.MethodPost, "/tasks", strings.NewReader(`{"title":"Wash dishes"}`))
		_, err := app.Test(req)
		require.Nil(t, err)

		entry := map[string]interface{}{}
		require.Nil(t, json.Unmarshal(buf.Bytes(), &entry))
		require.Equal(t, "POST", entry[TagMethod])
		require.Equal(t, "/tasks", entry[TagPath])
		require.Equal(t, float64(fiber.StatusCreated), entry[TagStatus])
		require.Equal(t, `{"title":"Wash dishes"}`, entry[TagBody])
		require.Equal(t, "info", entry["level"])
	})

	t.Run(`secrets check`, func(t *testing.T) {
		buf := &bytes.Buffer{}
		app := newApp(buf)
		req := httptest.NewRequest(fiber.MethodPost, "/auth/login", strings.NewReader(`{"password":"secret1"}`))
		_, err := app.Test(req)
		require.Nil(t, err)

		entry := map[string]interface{}{}
		require.Nil(t, json.Unmarshal(buf.Bytes(), &entry))
		_, exist := entry[TagBody]
		require.False(t, exist)
		require.Equal(t, "warning", entry["level"])
	})
}
