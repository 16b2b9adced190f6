package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/openshelf/openshelf/pkg/csvstore"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew_RequiredFieldMissing(t *testing.T) {
	t.Setenv("DATA_DIR", "")
	t.Setenv("JWT_SECRET", "")
	t.Setenv("CONFIG_FILE", "/nonexistent/config.yaml")

	cfg, err := New()
	assert.Nil(t, cfg)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "missing required config")
	assert.Contains(t, err.Error(), "DATA_DIR")
	assert.Contains(t, err.Error(), "JWT_SECRET")
}

func TestNew_WithEnvVars(t *testing.T) {
	t.Setenv("DATA_DIR", "/tmp/data")
	t.Setenv("JWT_SECRET", "test-secret-key")
	t.Setenv("CONFIG_FILE", "/nonexistent/config.yaml")

	cfg, err := New()
	require.NoError(t, err)
	assert.Equal(t, "/tmp/data", cfg.DataDir)
	assert.Equal(t, DialectPlain, cfg.CatalogDialect)
	assert.Equal(t, csvstore.Plain, cfg.BookDialect())
}

func TestNew_WithConfigFile(t *testing.T) {
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "config.yaml")

	configContent := `
data_dir: /data/tables
jwt_secret: test-secret-from-file
catalog_dialect: bx
server_port: 8080
`
	err := os.WriteFile(configPath, []byte(configContent), 0o644)
	require.NoError(t, err)

	t.Setenv("CONFIG_FILE", configPath)
	t.Setenv("DATA_DIR", "")
	t.Setenv("JWT_SECRET", "")

	cfg, err := New()
	require.NoError(t, err)
	assert.Equal(t, "/data/tables", cfg.DataDir)
	assert.Equal(t, 8080, cfg.ServerPort)
	assert.Equal(t, csvstore.BX, cfg.BookDialect())
}

func TestNew_EnvVarOverridesConfigFile(t *testing.T) {
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "config.yaml")

	err := os.WriteFile(configPath, []byte("data_dir: /data/tables\njwt_secret: from-file\n"), 0o644)
	require.NoError(t, err)

	t.Setenv("CONFIG_FILE", configPath)
	t.Setenv("DATA_DIR", "/env/tables")
	t.Setenv("JWT_SECRET", "")

	cfg, err := New()
	require.NoError(t, err)
	assert.Equal(t, "/env/tables", cfg.DataDir)
	assert.Equal(t, "from-file", cfg.JWTSecret)
}

func TestNew_InvalidDialect(t *testing.T) {
	t.Setenv("DATA_DIR", "/tmp/data")
	t.Setenv("JWT_SECRET", "secret")
	t.Setenv("CONFIG_FILE", "/nonexistent/config.yaml")
	t.Setenv("CATALOG_DIALECT", "tsv")

	cfg, err := New()
	assert.Nil(t, cfg)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "catalog_dialect")
}
