package http

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/jhoicas/Ideas-api/internal/application/dto"
	"github.com/jhoicas/Ideas-api/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWriteError(t *testing.T) {
	cases := []struct {
		name   string
		err    error
		status int
		code   string
	}{
		{"validación", fmt.Errorf("%w: descripción requerida", domain.ErrValidation), 400, "VALIDATION"},
		{"usuario inexistente", fmt.Errorf("jdoe: %w", domain.ErrUserNotFound), 404, "USER_NOT_FOUND"},
		{"no encontrado", fmt.Errorf("idea x: %w", domain.ErrNotFound), 404, "NOT_FOUND"},
		{"cuenta desactivada", domain.ErrAccountDisabled, 403, "ACCOUNT_DISABLED"},
		{"último admin", domain.ErrLastAdminProtected, 409, "LAST_ADMIN_PROTECTED"},
		{"conflicto", domain.ErrConflict, 409, "CONFLICT"},
		{"directorio caído", fmt.Errorf("%w: timeout", domain.ErrDirectoryUnavailable), 503, "DIRECTORY_UNAVAILABLE"},
		{"persistencia", fmt.Errorf("insert: %w: %w", domain.ErrStore, errors.New("conn reset")), 500, "STORE_ERROR"},
		{"desconocido", errors.New("boom"), 500, "INTERNAL"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			app := fiber.New()
			app.Get("/", func(c *fiber.Ctx) error { return writeError(c, tc.err) })
			resp, err := app.Test(httptest.NewRequest("GET", "/", nil), -1)
			require.NoError(t, err)
			assert.Equal(t, tc.status, resp.StatusCode)

			raw, err := io.ReadAll(resp.Body)
			require.NoError(t, err)
			var body dto.ErrorResponse
			require.NoError(t, json.Unmarshal(raw, &body))
			assert.Equal(t, tc.code, body.Code)
			if tc.status == 500 {
				assert.Equal(t, msgInternal, body.Message, "no se filtran detalles internos")
			}
		})
	}
}

func TestErrorHandler_DevDetails(t *testing.T) {
	for _, dev := range []bool{true, false} {
		app := fiber.New(fiber.Config{ErrorHandler: ErrorHandler(dev)})
		app.Get("/", func(c *fiber.Ctx) error { return errors.New("falló algo") })
		resp, err := app.Test(httptest.NewRequest("GET", "/", nil), -1)
		require.NoError(t, err)
		assert.Equal(t, 500, resp.StatusCode)

		var body dto.ErrorResponse
		require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
		if dev {
			assert.Equal(t, "falló algo", body.Details["error"])
		} else {
			assert.Empty(t, body.Details)
		}
	}
}
