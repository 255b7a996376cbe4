package server

import (
	"errors"
	"net/http/httptest"
	"testing"

	"atelier/internal/models"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRespondError_StatusMapping(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name       string
		err        error
		wantStatus int
	}{
		{name: "auth required", err: models.NewAuthRequiredError("sign in"), wantStatus: fiber.StatusUnauthorized},
		{name: "permission denied", err: models.NewPermissionDeniedError("not yours"), wantStatus: fiber.StatusForbidden},
		{name: "not found", err: models.NewNotFoundError("Design", "d1"), wantStatus: fiber.StatusNotFound},
		{name: "validation", err: models.NewValidationError("bad input"), wantStatus: fiber.StatusBadRequest},
		{name: "empty prompt", err: models.NewEmptyPromptError(), wantStatus: fiber.StatusBadRequest},
		{name: "load error", err: models.NewLoadError(errors.New("db down")), wantStatus: fiber.StatusInternalServerError},
		{name: "upload failed", err: models.NewUploadFailedError(errors.New("disk full")), wantStatus: fiber.StatusInternalServerError},
		{name: "plain error", err: errors.New("boom"), wantStatus: fiber.StatusInternalServerError},
	}

	for _, tc := range tests {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			app := fiber.New()
			app.Get("/x", func(c *fiber.Ctx) error {
				return respondError(c, tc.err)
			})

			resp, err := app.Test(httptest.NewRequest("GET", "/x", nil))
			require.NoError(t, err)
			assert.Equal(t, tc.wantStatus, resp.StatusCode)
		})
	}
}

func TestParsePagination(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name       string
		query      string
		wantLimit  int
		wantOffset int
	}{
		{name: "defaults", query: "", wantLimit: 20, wantOffset: 0},
		{name: "explicit values", query: "?limit=5&offset=40", wantLimit: 5, wantOffset: 40},
		{name: "limit capped", query: "?limit=5000", wantLimit: maxPaginationLimit, wantOffset: 0},
		{name: "negative values fall back", query: "?limit=-1&offset=-2", wantLimit: 20, wantOffset: 0},
	}

	for _, tc := range tests {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			var got Pagination
			app := fiber.New()
			app.Get("/x", func(c *fiber.Ctx) error {
				got = parsePagination(c, 20)
				return c.SendStatus(fiber.StatusOK)
			})

			_, err := app.Test(httptest.NewRequest("GET", "/x"+tc.query, nil))
			require.NoError(t, err)
			assert.Equal(t, tc.wantLimit, got.Limit)
			assert.Equal(t, tc.wantOffset, got.Offset)
		})
	}
}

func TestValidateBody(t *testing.T) {
	t.Parallel()

	type payload struct {
		Email string `validate:"required,email"`
	}

	assert.NoError(t, validateBody(&payload{Email: "ann@example.com"}))

	err := validateBody(&payload{Email: "not-an-email"})
	require.Error(t, err)
	var appErr *models.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, models.CodeValidation, appErr.Code)
}
