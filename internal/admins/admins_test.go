package admins

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"launchpad-api/internal/auth"
	"launchpad-api/internal/validation"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

type memoryRepo struct {
	mu      sync.Mutex
	byEmail map[string]Admin
	creates int
}

func newMemoryRepo() *memoryRepo {
	return &memoryRepo{byEmail: map[string]Admin{}}
}

func (m *memoryRepo) FindByEmail(ctx context.Context, email string) (Admin, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	a, ok := m.byEmail[email]
	if !ok {
		return Admin{}, mongo.ErrNoDocuments
	}
	return a, nil
}

func (m *memoryRepo) Create(ctx context.Context, admin Admin) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.creates++
	if _, ok := m.byEmail[admin.Email]; ok {
		return mongo.WriteException{WriteErrors: []mongo.WriteError{{Code: 11000, Message: "duplicate key"}}}
	}
	m.byEmail[admin.Email] = admin
	return nil
}

// racingRepo reports no admin on the first lookup, then loses the insert race.
type racingRepo struct {
	*memoryRepo
	lookups int
}

func (r *racingRepo) FindByEmail(ctx context.Context, email string) (Admin, error) {
	r.lookups++
	if r.lookups == 1 {
		return Admin{}, mongo.ErrNoDocuments
	}
	return r.memoryRepo.FindByEmail(ctx, email)
}

func testTokens() *auth.Manager {
	return &auth.Manager{Secret: []byte("test-secret"), TTL: time.Hour, Issuer: "launchpad-api"}
}

func TestEnsureDefaultAdminIsIdempotent(t *testing.T) {
	repo := newMemoryRepo()
	svc := NewService(repo, testTokens())
	ctx := context.Background()

	first, created, err := svc.EnsureDefaultAdmin(ctx, " Owner@Agency.test ", "s3cret-pass", "Super Admin")
	require.NoError(t, err)
	assert.True(t, created)
	assert.Equal(t, "owner@agency.test", first.Email)
	assert.Equal(t, auth.RoleAdmin, first.Role)
	assert.NotEqual(t, "s3cret-pass", first.Password)

	second, created, err := svc.EnsureDefaultAdmin(ctx, "owner@agency.test", "other-pass", "Someone")
	require.NoError(t, err)
	assert.False(t, created)
	assert.Equal(t, first.ID, second.ID)
	assert.Len(t, repo.byEmail, 1)
	assert.Equal(t, 1, repo.creates)
}

func TestEnsureDefaultAdminResolvesInsertRace(t *testing.T) {
	inner := newMemoryRepo()
	inner.byEmail["owner@agency.test"] = Admin{ID: "existing", Email: "owner@agency.test", Role: auth.RoleAdmin}
	svc := NewService(&racingRepo{memoryRepo: inner}, testTokens())

	admin, created, err := svc.EnsureDefaultAdmin(context.Background(), "owner@agency.test", "s3cret-pass", "")
	require.NoError(t, err)
	assert.False(t, created)
	assert.Equal(t, "existing", admin.ID)
}

func TestEnsureDefaultAdminRejectsBadInput(t *testing.T) {
	svc := NewService(newMemoryRepo(), testTokens())
	ctx := context.Background()

	_, _, err := svc.EnsureDefaultAdmin(ctx, "", "s3cret-pass", "")
	assert.ErrorIs(t, err, ErrSeedIncomplete)

	_, _, err = svc.EnsureDefaultAdmin(ctx, "owner@agency.test", "short", "")
	assert.ErrorIs(t, err, auth.ErrPasswordTooShort)
}

func newLoginHandler(t *testing.T) *Handler {
	t.Helper()
	svc := NewService(newMemoryRepo(), testTokens())
	_, _, err := svc.EnsureDefaultAdmin(context.Background(), "owner@agency.test", "s3cret-pass", "Super Admin")
	require.NoError(t, err)
	return NewHandler(svc, validation.New(), zap.NewNop())
}

func login(h *Handler, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, "/api/auth/login", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rr := httptest.NewRecorder()
	h.Login(rr, req)
	return rr
}

func TestLoginIssuesToken(t *testing.T) {
	h := newLoginHandler(t)

	rr := login(h, `{"email":"  OWNER@agency.test","password":"s3cret-pass"}`)
	require.Equal(t, http.StatusOK, rr.Code, rr.Body.String())

	var resp LoginResponse
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))
	assert.Equal(t, "owner@agency.test", resp.Admin.Email)
	assert.Equal(t, "Super Admin", resp.Admin.Name)
	assert.Equal(t, auth.RoleAdmin, resp.Admin.Role)
	assert.NotContains(t, rr.Body.String(), "password")

	id, err := testTokens().Parse(resp.Token)
	require.NoError(t, err)
	assert.Equal(t, resp.Admin.ID, id.Subject)
	assert.True(t, id.IsAdmin())
}

func TestLoginFailureIsUniform(t *testing.T) {
	h := newLoginHandler(t)

	unknown := login(h, `{"email":"nobody@agency.test","password":"s3cret-pass"}`)
	wrong := login(h, `{"email":"owner@agency.test","password":"not-the-password"}`)

	assert.Equal(t, http.StatusUnauthorized, unknown.Code)
	assert.Equal(t, http.StatusUnauthorized, wrong.Code)
	assert.JSONEq(t, `{"message":"Invalid credentials"}`, unknown.Body.String())
	assert.Equal(t, unknown.Body.String(), wrong.Body.String())
}

func TestLoginValidation(t *testing.T) {
	h := newLoginHandler(t)

	rr := login(h, `{"email":"not-an-email"}`)
	require.Equal(t, http.StatusBadRequest, rr.Code)

	var body struct {
		Message string                 `json:"message"`
		Details []validation.Violation `json:"details"`
	}
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &body))
	assert.Equal(t, validation.InvalidPayloadMessage, body.Message)
	assert.ElementsMatch(t, []validation.Violation{
		{Path: "body.email", Message: "Enter a valid email address"},
		{Path: "body.password", Message: "Password is required"},
	}, body.Details)
}
