package user

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wajeeh/souqadmin/internal/core/apierr"
)

func writeFixture(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "users.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoadFixture(t *testing.T) {
	path := writeFixture(t, `
users:
  - id: 1
    name: Sara Ahmed
    email: sara@example.com
    mobile: "+974 5551234"
    avatar: SA
    registrationDate: "Mar 2, 2026"
    status: active
    totalSpent: 1200
  - id: 2
    name: Layla Hassan
    email: layla@example.com
    mobile: "+974 5555678"
    avatar: LH
    registrationDate: "Feb 20, 2026"
    status: suspended
`)

	users, err := LoadFixture(path)
	require.NoError(t, err)
	require.Len(t, users, 2)
	assert.Equal(t, "Sara Ahmed", users[0].Name)
	assert.Equal(t, StatusSuspended, users[1].Status)
	assert.Equal(t, "Mar 2, 2026", users[0].RegistrationDate.String())
}

func TestLoadFixtureRejectsBadStatus(t *testing.T) {
	path := writeFixture(t, `
users:
  - id: 1
    name: Sara Ahmed
    email: sara@example.com
    mobile: "+974 5551234"
    registrationDate: "Mar 2, 2026"
    status: frozen
`)

	_, err := LoadFixture(path)
	assert.True(t, apierr.IsKind(err, apierr.KindInvalidArgument))
}

func TestLoadFixtureRejectsDuplicateIDs(t *testing.T) {
	path := writeFixture(t, `
users:
  - id: 1
    name: Sara Ahmed
    email: sara@example.com
    mobile: "+974 5551234"
    registrationDate: "Mar 2, 2026"
    status: active
  - id: 1
    name: Layla Hassan
    email: layla@example.com
    mobile: "+974 5555678"
    registrationDate: "Feb 20, 2026"
    status: active
`)

	_, err := LoadFixture(path)
	assert.True(t, apierr.IsKind(err, apierr.KindInvalidArgument))
}

func TestLoadFixtureMissingFile(t *testing.T) {
	_, err := LoadFixture(filepath.Join(t.TempDir(), "nope.yaml"))
	assert.Error(t, err)
}
