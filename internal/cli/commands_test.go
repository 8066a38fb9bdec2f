package cli

import (
	"errors"
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrijs2005/xpost/internal/common"
	"github.com/dmitrijs2005/xpost/internal/config"
)

const fieldInput = "cid\ncs\nak\naks\nbt\nat\nats\n"

func execute(t *testing.T, a *App, args ...string) error {
	t.Helper()
	root := NewRootCommand(a, "test", "none", "unknown")
	root.SetArgs(args)
	root.SetOut(io.Discard)
	root.SetErr(io.Discard)
	return root.Execute()
}

func vaultDir(t *testing.T) string {
	t.Helper()
	t.Setenv(config.EnvVaultDir, "")
	return filepath.Join(t.TempDir(), "vault")
}

func TestStoreThenShow_RoundTrip(t *testing.T) {
	dir := vaultDir(t)

	store, storeOut := newTestApp(t, fieldInput)
	stubPasswords(t, "pw", "pw")
	require.NoError(t, execute(t, store, "store", "alice", "--vault-dir", dir))
	assert.Contains(t, storeOut.String(), "stored successfully")
	assert.Contains(t, storeOut.String(), "alice.vault")

	show, showOut := newTestApp(t, "")
	stubPasswords(t, "pw")
	require.NoError(t, execute(t, show, "show", "alice", "--vault-dir", dir, "--reveal"))
	assert.Contains(t, showOut.String(), "CLIENT_ID=cid")
	assert.Contains(t, showOut.String(), "ACCESS_TOKEN_SECRET=ats")
}

func TestShow_MasksByDefault(t *testing.T) {
	dir := vaultDir(t)

	store, _ := newTestApp(t, "client-id-value\ncs\nak\naks\nbt\nat\nats\n")
	stubPasswords(t, "pw", "pw")
	require.NoError(t, execute(t, store, "store", "alice", "--vault-dir", dir))

	show, showOut := newTestApp(t, "")
	stubPasswords(t, "pw")
	require.NoError(t, execute(t, show, "show", "alice", "--vault-dir", dir))
	assert.NotContains(t, showOut.String(), "client-id-value")
	assert.Contains(t, showOut.String(), "CLIENT_ID=****alue")
	assert.Contains(t, showOut.String(), "values masked")
}

func TestShow_WrongPassword(t *testing.T) {
	dir := vaultDir(t)

	store, _ := newTestApp(t, fieldInput)
	stubPasswords(t, "pw", "pw")
	require.NoError(t, execute(t, store, "store", "alice", "--vault-dir", dir))

	show, _ := newTestApp(t, "")
	stubPasswords(t, "wrong")
	err := execute(t, show, "show", "alice", "--vault-dir", dir)
	require.Error(t, err)
	assert.True(t, errors.Is(err, common.ErrorInvalidPassword))
}

func TestShow_UnknownUser(t *testing.T) {
	dir := vaultDir(t)

	show, _ := newTestApp(t, "")
	stubPasswords(t, "pw")
	err := execute(t, show, "show", "never-stored", "--vault-dir", dir)
	require.Error(t, err)
	assert.True(t, errors.Is(err, common.ErrorNotFound))
}

func TestStoreWithKeyring_ShowWithoutPrompt(t *testing.T) {
	dir := vaultDir(t)

	store, storeOut := newTestApp(t, fieldInput)
	stubPasswords(t, "pw", "pw")
	require.NoError(t, execute(t, store, "store", "alice", "--vault-dir", dir, "--keyring"))
	assert.Contains(t, storeOut.String(), "keyring")

	// same keyring instance, no password stub: show must not prompt
	show, showOut := newTestApp(t, "")
	show.keyring = store.keyring
	stubPasswords(t) // any prompt would error the command
	require.NoError(t, execute(t, show, "show", "alice", "--vault-dir", dir, "--reveal"))
	assert.Contains(t, showOut.String(), "CLIENT_ID=cid")
}

func TestReset_User_Confirmed(t *testing.T) {
	dir := vaultDir(t)

	store, _ := newTestApp(t, fieldInput)
	stubPasswords(t, "pw", "pw")
	require.NoError(t, execute(t, store, "store", "alice", "--vault-dir", dir))

	reset, resetOut := newTestApp(t, "y\n")
	require.NoError(t, execute(t, reset, "reset", "alice", "--vault-dir", dir))
	assert.Contains(t, resetOut.String(), "successfully reset")

	_, err := os.Stat(filepath.Join(dir, "alice.vault"))
	assert.True(t, os.IsNotExist(err))
}

func TestReset_User_Cancelled(t *testing.T) {
	dir := vaultDir(t)

	store, _ := newTestApp(t, fieldInput)
	stubPasswords(t, "pw", "pw")
	require.NoError(t, execute(t, store, "store", "alice", "--vault-dir", dir))

	reset, resetOut := newTestApp(t, "n\n")
	require.NoError(t, execute(t, reset, "reset", "alice", "--vault-dir", dir))
	assert.Contains(t, resetOut.String(), "cancelled")

	_, err := os.Stat(filepath.Join(dir, "alice.vault"))
	assert.NoError(t, err, "vault file must survive a cancelled reset")
}

func TestReset_User_NothingStored(t *testing.T) {
	dir := vaultDir(t)

	reset, resetOut := newTestApp(t, "y\n")
	require.NoError(t, execute(t, reset, "reset", "alice", "--vault-dir", dir))
	assert.Contains(t, resetOut.String(), "Nothing to delete")
}

func TestReset_All_RemovesEveryUser(t *testing.T) {
	dir := vaultDir(t)

	for _, user := range []string{"alice", "bob"} {
		store, _ := newTestApp(t, fieldInput)
		stubPasswords(t, "pw", "pw")
		require.NoError(t, execute(t, store, "store", user, "--vault-dir", dir))
	}

	reset, resetOut := newTestApp(t, "y\ny\n")
	require.NoError(t, execute(t, reset, "reset", "--all", "--vault-dir", dir))
	assert.Contains(t, resetOut.String(), "successfully deleted")

	_, err := os.Stat(dir)
	assert.True(t, os.IsNotExist(err))
}

func TestReset_All_SecondConfirmationDeclined(t *testing.T) {
	dir := vaultDir(t)

	store, _ := newTestApp(t, fieldInput)
	stubPasswords(t, "pw", "pw")
	require.NoError(t, execute(t, store, "store", "alice", "--vault-dir", dir))

	reset, resetOut := newTestApp(t, "y\nn\n")
	require.NoError(t, execute(t, reset, "reset", "--all", "--vault-dir", dir))
	assert.Contains(t, resetOut.String(), "cancelled")

	_, err := os.Stat(filepath.Join(dir, "alice.vault"))
	assert.NoError(t, err)
}

func TestReset_AllAndUsernameConflict(t *testing.T) {
	dir := vaultDir(t)

	reset, _ := newTestApp(t, "")
	err := execute(t, reset, "reset", "alice", "--all", "--vault-dir", dir)
	require.Error(t, err)
	assert.True(t, errors.Is(err, common.ErrorValidation))
}

func TestReset_NoTargetGiven(t *testing.T) {
	dir := vaultDir(t)

	reset, _ := newTestApp(t, "")
	err := execute(t, reset, "reset", "--vault-dir", dir)
	require.Error(t, err)
	assert.True(t, errors.Is(err, common.ErrorValidation))
}

func TestReset_YesSkipsConfirmation(t *testing.T) {
	dir := vaultDir(t)

	store, _ := newTestApp(t, fieldInput)
	stubPasswords(t, "pw", "pw")
	require.NoError(t, execute(t, store, "store", "alice", "--vault-dir", dir))

	reset, _ := newTestApp(t, "") // no confirmation input available
	require.NoError(t, execute(t, reset, "reset", "alice", "--vault-dir", dir, "--yes"))

	_, err := os.Stat(filepath.Join(dir, "alice.vault"))
	assert.True(t, os.IsNotExist(err))
}

func TestStore_PasswordMismatchTwiceFails(t *testing.T) {
	dir := vaultDir(t)

	store, _ := newTestApp(t, fieldInput)
	stubPasswords(t, "pw", "typo", "pw", "typo2")
	err := execute(t, store, "store", "alice", "--vault-dir", dir)
	require.Error(t, err)
	assert.True(t, errors.Is(err, common.ErrorValidation))
}

func TestStore_InvalidUsername(t *testing.T) {
	dir := vaultDir(t)

	store, _ := newTestApp(t, fieldInput)
	stubPasswords(t, "pw", "pw")
	err := execute(t, store, "store", "../evil", "--vault-dir", dir)
	require.Error(t, err)
	assert.True(t, errors.Is(err, common.ErrorValidation))
}

func TestVersionCommand(t *testing.T) {
	a, out := newTestApp(t, "")
	require.NoError(t, execute(t, a, "version"))
	assert.Contains(t, out.String(), "xpost test")
}
