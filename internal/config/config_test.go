package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, dir, content string) {
	t.Helper()
	require.NoError(t, os.WriteFile(filepath.Join(dir, FileName), []byte(content), 0644))
}

func TestLoad_MissingFileReturnsDefaults(t *testing.T) {
	cfg, err := Load(t.TempDir())
	require.NoError(t, err)

	assert.Equal(t, "conan", cfg.Conan)
	assert.Empty(t, cfg.Includes)
	assert.Empty(t, cfg.Defines)
	assert.Empty(t, cfg.ClangFormat)
}

func TestLoad_ParsesAllFields(t *testing.T) {
	dir := t.TempDir()
	writeConfig(t, dir, `
includes: [src, include]
defines: [LOCAL_DEV=1]
undefines: [NDEBUG]
clang_format: /usr/bin/clang-format
install_args: ["--build=missing"]
conan: conan2
`)

	cfg, err := Load(dir)
	require.NoError(t, err)

	assert.Equal(t, []string{"src", "include"}, cfg.Includes)
	assert.Equal(t, []string{"LOCAL_DEV=1"}, cfg.Defines)
	assert.Equal(t, []string{"NDEBUG"}, cfg.Undefines)
	assert.Equal(t, "/usr/bin/clang-format", cfg.ClangFormat)
	assert.Equal(t, []string{"--build=missing"}, cfg.InstallArgs)
	assert.Equal(t, "conan2", cfg.Conan)
}

func TestLoad_MalformedFileFails(t *testing.T) {
	dir := t.TempDir()
	writeConfig(t, dir, "defines: {not: [a, list")

	_, err := Load(dir)
	assert.Error(t, err)
}

func TestLoad_EmptyConanFallsBack(t *testing.T) {
	dir := t.TempDir()
	writeConfig(t, dir, `conan: ""`)

	cfg, err := Load(dir)
	require.NoError(t, err)
	assert.Equal(t, "conan", cfg.Conan)
}

func TestEnvOverrides(t *testing.T) {
	t.Run("conan binary", func(t *testing.T) {
		dir := t.TempDir()
		writeConfig(t, dir, "conan: from-file")
		t.Setenv("CONAN_VSCODE_CONAN", "from-env")

		cfg, err := Load(dir)
		require.NoError(t, err)
		assert.Equal(t, "from-env", cfg.Conan)
	})

	t.Run("clang-format path", func(t *testing.T) {
		dir := t.TempDir()
		writeConfig(t, dir, "clang_format: /file/clang-format")
		t.Setenv("CONAN_VSCODE_CLANG_FORMAT", "/env/clang-format")

		cfg, err := Load(dir)
		require.NoError(t, err)
		assert.Equal(t, "/env/clang-format", cfg.ClangFormat)
	})

	t.Run("applies without a config file", func(t *testing.T) {
		t.Setenv("CONAN_VSCODE_CONAN", "/opt/conan/conan")

		cfg, err := Load(t.TempDir())
		require.NoError(t, err)
		assert.Equal(t, "/opt/conan/conan", cfg.Conan)
	})
}
