package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/google/uuid"

	"smartblog/internal/models"
	"smartblog/internal/session"
)

func TestSessionFromCtx(t *testing.T) {
	if got := SessionFromCtx(context.Background()); got != nil {
		t.Errorf("empty context: got %v, want nil", got)
	}

	data := &session.Data{UserID: uuid.New(), Email: "x@example.com"}
	ctx := context.WithValue(context.Background(), SessionKey, data)
	if got := SessionFromCtx(ctx); got != data {
		t.Error("expected the stored session back")
	}
}

func TestViewerFromCtx(t *testing.T) {
	tests := []struct {
		name      string
		sess      *session.Data
		canManage bool
	}{
		{"anonymous", nil, false},
		{"reader", &session.Data{Role: models.RoleReader}, false},
		{"editor", &session.Data{Role: models.RoleEditor}, true},
		{"admin", &session.Data{Role: models.RoleAdmin}, true},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			ctx := context.Background()
			if tc.sess != nil {
				ctx = context.WithValue(ctx, SessionKey, tc.sess)
			}
			if got := ViewerFromCtx(ctx); got.CanManagePosts != tc.canManage {
				t.Errorf("CanManagePosts: got %v, want %v", got.CanManagePosts, tc.canManage)
			}
		})
	}
}

func TestRequireAuth(t *testing.T) {
	inner := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
	handler := RequireAuth(inner)

	t.Run("rejects anonymous request", func(t *testing.T) {
		rr := httptest.NewRecorder()
		handler.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/", nil))
		if rr.Code != http.StatusUnauthorized {
			t.Errorf("status: got %d, want 401", rr.Code)
		}
	})

	t.Run("passes authenticated request", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		ctx := context.WithValue(req.Context(), SessionKey, &session.Data{UserID: uuid.New()})
		rr := httptest.NewRecorder()
		handler.ServeHTTP(rr, req.WithContext(ctx))
		if rr.Code != http.StatusOK {
			t.Errorf("status: got %d, want 200", rr.Code)
		}
	})
}
