package middleware

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
	"github.com/storefront/backend/internal/interfaces/http/dto"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSetupValidator(t *testing.T) {
	SetupValidator()

	v, ok := binding.Validator.Engine().(*validator.Validate)
	assert.True(t, ok)
	assert.NotNil(t, v)
}

func TestHandleValidationError(t *testing.T) {
	type productInput struct {
		Title     string `json:"title" binding:"required,max=255"`
		Inventory int    `json:"inventory" binding:"gte=0"`
	}

	SetupValidator()

	router := gin.New()
	router.Use(RequestID())
	router.POST("/test", func(c *gin.Context) {
		var in productInput
		if err := c.ShouldBindJSON(&in); err != nil {
			HandleValidationError(c, err)
			return
		}
		c.Status(http.StatusOK)
	})

	send := func(body string) *httptest.ResponseRecorder {
		req := httptest.NewRequest(http.MethodPost, "/test", strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
		req.Header.Set(RequestIDHeader, "req-1")
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)
		return w
	}

	t.Run("invalid input", func(t *testing.T) {
		w := send(`{"inventory": -1}`)
		require.Equal(t, http.StatusBadRequest, w.Code)

		var resp dto.Response
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		assert.False(t, resp.Success)
		require.NotNil(t, resp.Error)
		assert.Equal(t, "VALIDATION_ERROR", resp.Error.Code)
		assert.Equal(t, "Request validation failed", resp.Error.Message)
		assert.Equal(t, "req-1", resp.Error.RequestID)
		assert.ElementsMatch(t, []dto.ValidationDetail{
			{Field: "title", Message: "This field is required"},
			{Field: "inventory", Message: "Must be greater than or equal to 0"},
		}, resp.Error.Details)
	})

	t.Run("valid input", func(t *testing.T) {
		assert.Equal(t, http.StatusOK, send(`{"title": "Bread", "inventory": 3}`).Code)
	})

	t.Run("malformed json has no details", func(t *testing.T) {
		w := send(`{`)
		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.NotContains(t, w.Body.String(), "details")
	})
}

func TestValidationMessage(t *testing.T) {
	type sample struct {
		Required string   `validate:"required"`
		Email    string   `validate:"email"`
		Min      string   `validate:"min=5"`
		MinNum   int      `validate:"min=5"`
		MaxItems []string `validate:"max=1"`
		UUID     string   `validate:"uuid"`
		OneOf    string   `validate:"oneof=B S G"`
		GT       int      `validate:"gt=0"`
		Other    string   `validate:"alpha"`
	}

	err := validator.New().Struct(sample{
		Email: "x", Min: "ab", MaxItems: []string{"a", "b"}, UUID: "x", OneOf: "Z", Other: "1",
	})
	require.Error(t, err)

	got := map[string]string{}
	for _, e := range err.(validator.ValidationErrors) {
		got[e.Field()] = validationMessage(e)
	}

	assert.Equal(t, map[string]string{
		"Required": "This field is required",
		"Email":    "Invalid email format",
		"Min":      "Must be at least 5 characters",
		"MinNum":   "Must be at least 5",
		"MaxItems": "Must be at most 1",
		"UUID":     "Invalid UUID format",
		"OneOf":    "Must be one of: B S G",
		"GT":       "Must be greater than 0",
		"Other":    "Invalid value",
	}, got)
}

func TestSlugTag(t *testing.T) {
	SetupValidator()
	type input struct {
		Slug string `json:"slug" binding:"omitempty,slug"`
	}

	assert.NoError(t, binding.Validator.ValidateStruct(&input{Slug: "green-tea_2"}))
	assert.NoError(t, binding.Validator.ValidateStruct(&input{}))

	err := binding.Validator.ValidateStruct(&input{Slug: "Green Tea"})
	require.Error(t, err)
	resp := FormatValidationErrors(err, "")
	require.Len(t, resp.Error.Details, 1)
	assert.Equal(t, "slug", resp.Error.Details[0].Field)
}
