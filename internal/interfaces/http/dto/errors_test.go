package dto

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestGetHTTPStatus(t *testing.T) {
	tests := []struct {
		name string
		code string
		want int
	}{
		{"not found maps to 404", "NOT_FOUND", http.StatusNotFound},
		{"already exists maps to 409", "ALREADY_EXISTS", http.StatusConflict},
		{"concurrency conflict maps to 409", "CONCURRENCY_CONFLICT", http.StatusConflict},
		{"insufficient stock maps to 422", "INSUFFICIENT_STOCK", http.StatusUnprocessableEntity},
		{"empty cart maps to 422", "EMPTY_CART", http.StatusUnprocessableEntity},
		{"invalid state maps to 422", "INVALID_STATE", http.StatusUnprocessableEntity},
		{"invalid refund state maps to 422", "INVALID_REFUND_STATE", http.StatusUnprocessableEntity},
		{"not purchased maps to 422", "NOT_PURCHASED", http.StatusUnprocessableEntity},
		{"unauthorized maps to 401", "UNAUTHORIZED", http.StatusUnauthorized},
		{"forbidden maps to 403", "FORBIDDEN", http.StatusForbidden},
		{"rate limited maps to 429", "RATE_LIMITED", http.StatusTooManyRequests},
		{"gateway not configured maps to 503", "GATEWAY_NOT_CONFIGURED", http.StatusServiceUnavailable},
		{"invalid family defaults to 400", "INVALID_QUANTITY", http.StatusBadRequest},
		{"invalid amount defaults to 400", "INVALID_AMOUNT", http.StatusBadRequest},
		{"unknown code defaults to 500", "SOMETHING_ELSE", http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, GetHTTPStatus(tt.code))
		})
	}
}

func TestNewSuccessResponseWithMeta(t *testing.T) {
	t.Run("rounds total pages up", func(t *testing.T) {
		resp := NewSuccessResponseWithMeta([]string{"a"}, 41, 1, 20)
		assert.True(t, resp.Success)
		assert.Equal(t, 3, resp.Meta.TotalPages)
	})

	t.Run("exact division", func(t *testing.T) {
		resp := NewSuccessResponseWithMeta([]string{"a"}, 40, 2, 20)
		assert.Equal(t, 2, resp.Meta.TotalPages)
	})
}

func TestListRequest_WithDefaults(t *testing.T) {
	r := ListRequest{}.WithDefaults()
	assert.Equal(t, 1, r.Page)
	assert.Equal(t, 20, r.PageSize)

	r = ListRequest{Page: 3, PageSize: 50}.WithDefaults()
	assert.Equal(t, 3, r.Page)
	assert.Equal(t, 50, r.PageSize)
}
