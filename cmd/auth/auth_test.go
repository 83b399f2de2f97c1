package auth_test

import (
	"bytes"
	"context"
	"testing"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"fjacquet/khoroch-khata/cmd/auth"
	"fjacquet/khoroch-khata/cmd/profile"
	"fjacquet/khoroch-khata/cmd/root"
	"fjacquet/khoroch-khata/internal/container"
	"fjacquet/khoroch-khata/internal/identity"
)

func init() {
	root.Init()
	root.Cmd.AddCommand(auth.Cmd, profile.Cmd)
}

func setup(t *testing.T) {
	t.Helper()
	root.ContainerOptions = []container.Option{
		container.WithFilesystem(afero.NewMemMapFs()),
		container.WithIDGenerator(identity.NewSequenceGenerator("id")),
	}
	t.Cleanup(func() { root.ContainerOptions = nil })
}

func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	err := root.Run(context.Background(), &out, append(args, "--log-level", "error"))
	return out.String(), err
}

func mustRun(t *testing.T, args ...string) string {
	t.Helper()
	out, err := run(t, args...)
	require.NoError(t, err, out)
	return out
}

func TestAuthCommand_Metadata(t *testing.T) {
	assert.Equal(t, "auth", auth.Cmd.Use)
	assert.Contains(t, auth.Cmd.Long, "not encrypted")
}

func TestSignupLoginRecover(t *testing.T) {
	setup(t)

	out := mustRun(t, "auth", "signup", "--email", "rahim@example.com", "--password", "secret1", "--name", "Rahim", "--avatar", "R")
	assert.Contains(t, out, "Logged in as Rahim (id-1)")

	mustRun(t, "profile", "add", "--name", "Guest")
	assert.Contains(t, mustRun(t, "profile", "list"), "* id-2")

	assert.Contains(t, mustRun(t, "auth", "login", "--email", "RAHIM@example.com", "--password", "secret1"), "Logged in as Rahim")
	assert.Contains(t, mustRun(t, "profile", "list"), "* id-1", "login switches the active profile")

	_, err := run(t, "auth", "login", "--email", "rahim@example.com", "--password", "wrong!!")
	assert.Error(t, err)

	out = mustRun(t, "auth", "recover", "--email", "rahim@example.com", "--password", "newpass", "--confirm", "newpass")
	assert.Contains(t, out, "Password updated")

	_, err = run(t, "auth", "login", "--email", "rahim@example.com", "--password", "secret1")
	assert.Error(t, err)
	mustRun(t, "auth", "login", "--email", "rahim@example.com", "--password", "newpass")
}

func TestAuthErrors(t *testing.T) {
	setup(t)
	mustRun(t, "auth", "signup", "--email", "rahim@example.com", "--password", "secret1", "--name", "Rahim")

	tests := []struct {
		name string
		args []string
	}{
		{"short password", []string{"auth", "signup", "--email", "karim@example.com", "--password", "123", "--name", "Karim"}},
		{"invalid email", []string{"auth", "signup", "--email", "karim", "--password", "secret1", "--name", "Karim"}},
		{"registered email", []string{"auth", "signup", "--email", "rahim@example.com", "--password", "secret1", "--name", "Rahim"}},
		{"unknown login", []string{"auth", "login", "--email", "nobody@example.com", "--password", "secret1"}},
		{"mismatched recovery", []string{"auth", "recover", "--email", "rahim@example.com", "--password", "abcdef", "--confirm", "abcdeg"}},
		{"unknown recovery", []string{"auth", "recover", "--email", "nobody@example.com", "--password", "abcdef", "--confirm", "abcdef"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := run(t, tt.args...)
			assert.Error(t, err)
		})
	}
}
