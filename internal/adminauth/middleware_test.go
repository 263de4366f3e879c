package adminauth_test

import (
	"context"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/y84-dev/API-FRIZZLY/internal/adminauth"
	"github.com/y84-dev/API-FRIZZLY/internal/domain/models"
	"github.com/y84-dev/API-FRIZZLY/internal/storage"
)

// fakeAdminRepo — фиктивное хранилище администраторов.
type fakeAdminRepo struct {
	admins map[string]*models.Admin // ключ — id (он же токен)
}

var _ storage.AdminStorage = (*fakeAdminRepo)(nil)

func (f *fakeAdminRepo) GetAdminByEmail(ctx context.Context, email string) (*models.Admin, error) {
	for _, a := range f.admins {
		if a.Email == email {
			return a, nil
		}
	}
	return nil, storage.ErrAdminNotFound
}

func (f *fakeAdminRepo) GetAdminByID(ctx context.Context, id string) (*models.Admin, error) {
	if a, ok := f.admins[id]; ok {
		return a, nil
	}
	return nil, storage.ErrAdminNotFound
}

func (f *fakeAdminRepo) ListAdminsWithTokens(ctx context.Context) ([]*models.Admin, error) {
	return nil, nil
}

func (f *fakeAdminRepo) SaveFCMToken(ctx context.Context, adminID, token string) error {
	return nil
}

func newTestHandler(repo storage.AdminStorage) http.Handler {
	logger := slog.New(slog.NewTextHandler(os.Stdout, nil))
	middleware := adminauth.NewMiddleware(logger, repo)
	return middleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		adminID, ok := adminauth.FromContext(r.Context())
		if !ok {
			http.Error(w, "adminID not found", http.StatusInternalServerError)
			return
		}
		w.Write([]byte(adminID))
	}))
}

func TestAdminMiddleware_MissingToken(t *testing.T) {
	handler := newTestHandler(&fakeAdminRepo{admins: map[string]*models.Admin{}})

	req := httptest.NewRequest("GET", "/", nil)
	rr := httptest.NewRecorder()
	handler.ServeHTTP(rr, req)

	assert.Equal(t, http.StatusUnauthorized, rr.Code, "Expected 401 when no token provided")
}

func TestAdminMiddleware_UnknownToken(t *testing.T) {
	// Токен не соответствует ни одной записи администратора — 403
	handler := newTestHandler(&fakeAdminRepo{admins: map[string]*models.Admin{}})

	req := httptest.NewRequest("GET", "/", nil)
	req.Header.Set("Authorization", "Bearer not-an-admin")
	rr := httptest.NewRecorder()
	handler.ServeHTTP(rr, req)

	assert.Equal(t, http.StatusForbidden, rr.Code, "Expected 403 for unknown admin token")
}

func TestAdminMiddleware_ValidToken(t *testing.T) {
	repo := &fakeAdminRepo{admins: map[string]*models.Admin{
		"admin-1": {ID: "admin-1", Email: "admin@frizzly.app"},
	}}
	handler := newTestHandler(repo)

	req := httptest.NewRequest("GET", "/", nil)
	req.Header.Set("Authorization", "Bearer admin-1")
	rr := httptest.NewRecorder()
	handler.ServeHTTP(rr, req)

	assert.Equal(t, http.StatusOK, rr.Code, "Expected OK for registered admin token")
	assert.Equal(t, "admin-1", rr.Body.String(), "Expected admin id from context")
}
