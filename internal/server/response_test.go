package server

import (
	"bytes"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"go.uber.org/mock/gomock"

	mock_store "github.com/at-ishikawa/wordbook/internal/mocks/store"
)

func TestHandler_writeJSON(t *testing.T) {
	tests := []struct {
		name     string
		value    any
		wantBody string
		wantLog  string
	}{
		{
			name:     "encodes the value",
			value:    Result{Success: true, Message: "a & b"},
			wantBody: `{"success":true,"message":"a & b"}` + "\n",
		},
		{
			name:    "logs an unencodable value to the handler logger",
			value:   map[string]any{"c": make(chan int)},
			wantLog: `msg="Failed to encode response" path=/get_data`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			repo := mock_store.NewMockRepository(ctrl)

			var logs bytes.Buffer
			logger := slog.New(slog.NewTextHandler(&logs, nil))
			h := NewHandler(repo, newTestPages(t), logger)

			rec := httptest.NewRecorder()
			req := httptest.NewRequest(http.MethodGet, "/get_data", nil)
			h.writeJSON(rec, req, http.StatusOK, tt.value)

			assert.Equal(t, http.StatusOK, rec.Code)
			assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))
			if tt.wantBody != "" {
				assert.Equal(t, tt.wantBody, rec.Body.String())
			}
			if tt.wantLog == "" {
				assert.Empty(t, logs.String())
				return
			}
			assert.Contains(t, logs.String(), tt.wantLog)
			assert.Contains(t, logs.String(), "level=ERROR")
		})
	}
}
