package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAuth(t *testing.T) {
	tests := []struct {
		name       string
		header     string
		wantCode   int
		wantUserID int64
	}{
		{name: "valid user id", header: "42", wantCode: http.StatusOK, wantUserID: 42},
		{name: "missing header", header: "", wantCode: http.StatusUnauthorized},
		{name: "not a number", header: "abc", wantCode: http.StatusUnauthorized},
		{name: "zero", header: "0", wantCode: http.StatusUnauthorized},
		{name: "negative", header: "-1", wantCode: http.StatusUnauthorized},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var gotUserID int64
			var reached bool

			handler := Auth(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				reached = true
				id, ok := GetUserID(r.Context())
				require.True(t, ok)
				gotUserID = id
			}))

			req := httptest.NewRequest(http.MethodGet, "/bookings/1", nil)
			if tt.header != "" {
				req.Header.Set(UserIDHeader, tt.header)
			}

			rec := httptest.NewRecorder()
			handler.ServeHTTP(rec, req)

			assert.Equal(t, tt.wantCode, rec.Code)
			if tt.wantCode == http.StatusOK {
				assert.True(t, reached)
				assert.Equal(t, tt.wantUserID, gotUserID)
			} else {
				assert.False(t, reached)
			}
		})
	}
}

func TestGetUserID_MissingFromContext(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/", nil)

	_, ok := GetUserID(req.Context())
	assert.False(t, ok)
}
