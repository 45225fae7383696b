package middleware

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type priceBody struct {
	Price string `json:"price" binding:"required,decimal"`
}

func setupValidationRouter() *gin.Engine {
	gin.SetMode(gin.TestMode)
	SetupValidator()

	router := gin.New()
	router.POST("/items", func(c *gin.Context) {
		var body priceBody
		if err := c.ShouldBindJSON(&body); err != nil {
			HandleValidationError(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"price": body.Price})
	})
	return router
}

func TestDecimalValidation(t *testing.T) {
	router := setupValidationRouter()

	tests := []struct {
		name       string
		body       string
		wantStatus int
	}{
		{"valid decimal", `{"price":"499.99"}`, http.StatusOK},
		{"integer string", `{"price":"500"}`, http.StatusOK},
		{"not a number", `{"price":"fifty"}`, http.StatusBadRequest},
		{"missing field", `{}`, http.StatusBadRequest},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := httptest.NewRecorder()
			req := httptest.NewRequest(http.MethodPost, "/items", strings.NewReader(tt.body))
			req.Header.Set("Content-Type", "application/json")
			router.ServeHTTP(w, req)
			assert.Equal(t, tt.wantStatus, w.Code)
		})
	}
}

func TestValidationErrorsUseJSONFieldNames(t *testing.T) {
	router := setupValidationRouter()

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/items", strings.NewReader(`{"price":"abc"}`))
	req.Header.Set("Content-Type", "application/json")
	router.ServeHTTP(w, req)

	require.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), `"field":"price"`)
	assert.Contains(t, w.Body.String(), "decimal")
}
