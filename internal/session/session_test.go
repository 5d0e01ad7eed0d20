package session

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/folio/folio-go/internal/model"
)

var errRejected = errors.New("invalid credentials")

type fakeAuth struct {
	adminEmail, adminPassword string
	calls                     int
}

func (f *fakeAuth) UserAuth(ctx context.Context, email, password string) (model.Identity, error) {
	f.calls++
	if email == f.adminEmail && password == f.adminPassword {
		return model.Identity{}, errRejected
	}
	return model.Identity{Email: email, Role: model.RoleUser}, nil
}

func (f *fakeAuth) AdminAuth(ctx context.Context, email, password string) (model.Identity, error) {
	f.calls++
	if email != f.adminEmail || password != f.adminPassword {
		return model.Identity{}, errRejected
	}
	return model.Identity{Email: email, Role: model.RoleAdmin}, nil
}

func newAuth() *fakeAuth {
	return &fakeAuth{adminEmail: "admin@example.com", adminPassword: "s3cret"}
}

func TestBlobRoundTrip(t *testing.T) {
	id := model.Identity{Email: "ann@example.com", Role: model.RoleUser}
	blob, err := EncodeIdentity(id)
	require.NoError(t, err)
	assert.True(t, strings.HasSuffix(blob, "."), "blob should be unsigned")

	got, err := DecodeIdentity(blob)
	require.NoError(t, err)
	assert.Equal(t, id, got)
}

func TestDecodeIdentityRejectsGarbage(t *testing.T) {
	for _, blob := range []string{"", "not-a-jwt", "a.b.c", `{"email":"x"}`} {
		_, err := DecodeIdentity(blob)
		assert.ErrorIs(t, err, ErrInvalidBlob, blob)
	}
}

func TestDecodeIdentityRejectsUnknownRole(t *testing.T) {
	blob, err := EncodeIdentity(model.Identity{Email: "ann@example.com", Role: "root"})
	require.NoError(t, err)
	_, err = DecodeIdentity(blob)
	assert.ErrorIs(t, err, ErrInvalidBlob)
}

func TestStateTransitions(t *testing.T) {
	ctx := context.Background()
	s := New(NewMemoryStore(), newAuth())
	assert.Equal(t, Anonymous, s.State())
	assert.False(t, s.IsAuthenticated())

	_, err := s.LoginUser(ctx, "ann@example.com", "pw")
	require.NoError(t, err)
	assert.Equal(t, SignedInUser, s.State())
	assert.True(t, s.IsUser())
	assert.False(t, s.IsAdmin())

	_, err = s.LoginAdmin(ctx, "admin@example.com", "s3cret")
	require.NoError(t, err)
	assert.Equal(t, SignedInAdmin, s.State())
	assert.True(t, s.IsUser(), "user slot survives admin login")

	cur, ok := s.Current()
	require.True(t, ok)
	assert.Equal(t, model.RoleAdmin, cur.Role)

	require.NoError(t, s.LogoutAdmin())
	assert.Equal(t, SignedInUser, s.State())

	require.NoError(t, s.LogoutUser())
	assert.Equal(t, Anonymous, s.State())
}

func TestLogoutClearsBoth(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore()
	s := New(store, newAuth())
	_, err := s.LoginUser(ctx, "ann@example.com", "pw")
	require.NoError(t, err)
	_, err = s.LoginAdmin(ctx, "admin@example.com", "s3cret")
	require.NoError(t, err)

	require.NoError(t, s.Logout())
	assert.Equal(t, Anonymous, s.State())
	_, ok, _ := store.Get(userKey)
	assert.False(t, ok)
	_, ok, _ = store.Get(adminKey)
	assert.False(t, ok)
}

func TestFailedLoginLeavesStateUnchanged(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore()
	s := New(store, newAuth())

	_, err := s.LoginAdmin(ctx, "admin@example.com", "wrong")
	assert.ErrorIs(t, err, errRejected)
	_, err = s.LoginUser(ctx, "admin@example.com", "s3cret")
	assert.ErrorIs(t, err, errRejected)

	assert.Equal(t, Anonymous, s.State())
	_, ok, _ := store.Get(adminKey)
	assert.False(t, ok)
}

func TestRestore(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore()
	first := New(store, newAuth())
	_, err := first.LoginUser(ctx, "ann@example.com", "pw")
	require.NoError(t, err)

	second := New(store, newAuth())
	second.Restore()
	id, ok := second.User()
	require.True(t, ok)
	assert.Equal(t, "ann@example.com", id.Email)
	assert.False(t, second.IsAdmin())
}

func TestRestoreDiscardsCorruptSlots(t *testing.T) {
	store := NewMemoryStore()
	require.NoError(t, store.Set(userKey, "{not json"))

	userBlob, err := EncodeIdentity(model.Identity{Email: "ann@example.com", Role: model.RoleUser})
	require.NoError(t, err)
	require.NoError(t, store.Set(adminKey, userBlob))

	s := New(store, newAuth())
	s.Restore()

	assert.Equal(t, Anonymous, s.State())
	_, ok, _ := store.Get(userKey)
	assert.False(t, ok, "corrupt user slot should be deleted")
	_, ok, _ = store.Get(adminKey)
	assert.False(t, ok, "admin slot holding a user role should be deleted")
}

func TestRequireGates(t *testing.T) {
	ctx := context.Background()
	s := New(NewMemoryStore(), newAuth())
	assert.ErrorIs(t, s.RequireSignedIn(), ErrNotSignedIn)
	assert.ErrorIs(t, s.RequireAdmin(), ErrNotAdmin)

	_, err := s.LoginUser(ctx, "ann@example.com", "pw")
	require.NoError(t, err)
	assert.NoError(t, s.RequireSignedIn())
	assert.ErrorIs(t, s.RequireAdmin(), ErrNotAdmin)
}

func TestFileStore(t *testing.T) {
	path := filepath.Join(t.TempDir(), "folio", "session.json")
	store := NewFileStore(path)

	_, ok, err := store.Get(userKey)
	require.NoError(t, err)
	assert.False(t, ok)

	require.NoError(t, store.Set(userKey, "blob"))
	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0o600), info.Mode().Perm())

	v, ok, err := NewFileStore(path).Get(userKey)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "blob", v)

	require.NoError(t, store.Delete(userKey))
	_, ok, err = store.Get(userKey)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestFileStoreRecoversFromCorruptFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "session.json")
	require.NoError(t, os.WriteFile(path, []byte("garbage"), 0o600))

	s := New(NewFileStore(path), newAuth())
	s.Restore()
	assert.Equal(t, Anonymous, s.State())

	_, err := s.LoginUser(context.Background(), "ann@example.com", "pw")
	require.NoError(t, err)

	restored := New(NewFileStore(path), newAuth())
	restored.Restore()
	assert.Equal(t, SignedInUser, restored.State())
}
