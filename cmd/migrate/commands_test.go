package main

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&out)
	rootCmd.SetArgs(args)
	t.Cleanup(func() {
		migrationsPath = ""
		confirmDrop = false
	})
	err := rootCmd.Execute()
	return out.String(), err
}

func TestCreateThenList(t *testing.T) {
	dir := t.TempDir()

	_, err := run(t, "--log-level", "error", "--path", dir, "create", "add product index")
	require.NoError(t, err)
	_, err = run(t, "--log-level", "error", "--path", dir, "create", "backfill slugs")
	require.NoError(t, err)

	out, err := run(t, "--log-level", "error", "--path", dir, "list")
	require.NoError(t, err)
	assert.Equal(t, "000001  add_product_index\n000002  backfill_slugs\n", out)
}

func TestArgumentValidation(t *testing.T) {
	tests := []struct {
		name string
		args []string
	}{
		{"steps without count", []string{"steps"}},
		{"steps not a number", []string{"steps", "two"}},
		{"goto negative", []string{"goto", "-3"}},
		{"force not a number", []string{"force", "x"}},
		{"drop without confirm", []string{"drop"}},
		{"create without name", []string{"create"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := run(t, append([]string{"--log-level", "error"}, tt.args...)...)
			assert.Error(t, err)
		})
	}
}
