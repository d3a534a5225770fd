package server

import (
	"bytes"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"go.uber.org/mock/gomock"

	"github.com/at-ishikawa/wordbook/internal/config"
	"github.com/at-ishikawa/wordbook/internal/dictionary"
	mock_store "github.com/at-ishikawa/wordbook/internal/mocks/store"
	"github.com/at-ishikawa/wordbook/internal/store"
)

func TestNewHTTPServer(t *testing.T) {
	tests := []struct {
		name           string
		method         string
		origin         string
		wantStatus     int
		wantAllowOrgin string
	}{
		{
			name:           "allowed origin",
			method:         http.MethodGet,
			origin:         "http://localhost:3000",
			wantStatus:     http.StatusOK,
			wantAllowOrgin: "http://localhost:3000",
		},
		{
			name:       "other origin",
			method:     http.MethodGet,
			origin:     "http://example.com",
			wantStatus: http.StatusOK,
		},
		{
			name:           "preflight",
			method:         http.MethodOptions,
			origin:         "http://localhost:3000",
			wantStatus:     http.StatusNoContent,
			wantAllowOrgin: "http://localhost:3000",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			repo := mock_store.NewMockRepository(ctrl)
			repo.EXPECT().Snapshot(gomock.Any()).Return(store.Snapshot{Dictionary: dictionary.New(nil)}, nil).AnyTimes()

			var logs bytes.Buffer
			logger := slog.New(slog.NewTextHandler(&logs, &slog.HandlerOptions{Level: slog.LevelDebug}))
			cfg := config.ServerConfig{Port: 5000, CORS: config.CORSConfig{AllowedOrigins: []string{"http://localhost:3000"}}}
			srv := NewHTTPServer(cfg, NewHandler(repo, newTestPages(t), logger), logger)
			assert.Equal(t, ":5000", srv.Addr)

			req := httptest.NewRequest(tt.method, "/get_data", nil)
			req.Header.Set("Origin", tt.origin)
			rec := httptest.NewRecorder()
			srv.Handler.ServeHTTP(rec, req)

			assert.Equal(t, tt.wantStatus, rec.Code)
			assert.Equal(t, tt.wantAllowOrgin, rec.Header().Get("Access-Control-Allow-Origin"))
			assert.Contains(t, logs.String(), "path=/get_data")
		})
	}
}
