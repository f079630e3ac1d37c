package middleware

import (
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/require"

	"crewing-backend/config"
	authutils "crewing-backend/lib/utils/auth-utils"
	"crewing-backend/models"
)

func setupAuthApp(t *testing.T) *fiber.App {
	t.Helper()
	conf := new(config.Configuration)
	conf.Auth.JWTSecret = "test-secret"
	conf.Auth.JWTExpireInSec = 3600
	config.Conf = conf

	app := fiber.New()
	app.Use(AuthorizationRequired())
	app.Get("/whoami", func(ctx *fiber.Ctx) error {
		return ctx.SendString(GetUserID(ctx) + ":" + string(GetUserRole(ctx)))
	})
	return app
}

func doRequest(t *testing.T, app *fiber.App, method, target, token string) *http.Response {
	t.Helper()
	req := httptest.NewRequest(method, target, nil)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	resp, err := app.Test(req)
	require.NoError(t, err)
	return resp
}

func TestAuthorization(t *testing.T) {
	app := setupAuthApp(t)

	t.Run("missing token is rejected", func(t *testing.T) {
		resp := doRequest(t, app, http.MethodGet, "/whoami", "")
		require.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	})

	t.Run("claims come from the token", func(t *testing.T) {
		token, err := authutils.GetToken("staff-7", "Anna Berg", models.StaffingRole)
		require.NoError(t, err)

		resp := doRequest(t, app, http.MethodGet, "/whoami", token)
		require.Equal(t, http.StatusOK, resp.StatusCode)
		body, err := io.ReadAll(resp.Body)
		require.NoError(t, err)
		require.Equal(t, "staff-7:STAFFING_ROLE", string(body))
	})

	t.Run("manager role round-trips", func(t *testing.T) {
		token, err := authutils.GetToken("manager-1", "Olav Dahl", models.ManagerRole)
		require.NoError(t, err)

		resp := doRequest(t, app, http.MethodGet, "/whoami", token)
		require.Equal(t, http.StatusOK, resp.StatusCode)
		body, err := io.ReadAll(resp.Body)
		require.NoError(t, err)
		require.Equal(t, "manager-1:MANAGER_ROLE", string(body))
	})
}
