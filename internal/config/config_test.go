package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yigit/studentsync/internal/pkg/apperrors"
)

func TestLoadConfig_Defaults(t *testing.T) {
	cfg, err := LoadConfig(filepath.Join(t.TempDir(), "missing.yaml"))
	require.NoError(t, err)

	assert.Equal(t, "DAFTAR SISWA KELAS 6 SDN TUGU 1.xlsx", cfg.Source.Path)
	assert.Equal(t, "NO", cfg.Source.NoHeaderMarker)
	assert.Equal(t, "NAMA", cfg.Source.NameHeaderMarker)
	assert.Equal(t, "students.pppl.id", cfg.Credentials.EmailDomain)
	assert.Equal(t, "FIREBASE_ADMIN_PRIVATE_KEY", cfg.Firebase.PrivateKeyEnv)
	assert.Equal(t, "student", cfg.Firebase.Role)
}

func TestLoadConfig_FileThenEnv(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	content := `
source:
  path: roster.xlsx
  sheet: Kelas6
credentials:
  email_domain: example.sch.id
database:
  max_open_conns: 3
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	t.Setenv("ROSTER_OUTPUT_PATH", "out/populate.js")
	t.Setenv("DB_MAX_OPEN_CONNS", "9")

	cfg, err := LoadConfig(path)
	require.NoError(t, err)

	assert.Equal(t, "roster.xlsx", cfg.Source.Path)
	assert.Equal(t, "Kelas6", cfg.Source.Sheet)
	assert.Equal(t, "example.sch.id", cfg.Credentials.EmailDomain)
	assert.Equal(t, "out/populate.js", cfg.Output.Path)
	assert.Equal(t, 9, cfg.Database.MaxOpenConns)
}

func TestLoadConfig_Invalid(t *testing.T) {
	tests := []struct {
		name    string
		content string
	}{
		{"empty domain", "credentials:\n  email_domain: \"\"\n"},
		{"domain with at", "credentials:\n  email_domain: \"@x.id\"\n"},
		{"bad env name", "firebase:\n  private_key_env: \"KEY');process.exit(0);//\"\n"},
		{"bad collection", "firebase:\n  collection: \"users/../x\"\n"},
		{"bad lifetime", "database:\n  conn_max_lifetime: forever\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "config.yaml")
			require.NoError(t, os.WriteFile(path, []byte(tt.content), 0o644))

			_, err := LoadConfig(path)
			require.Error(t, err)
			assert.True(t, errors.Is(err, apperrors.ErrInvalidConfig))
		})
	}
}

func TestLoadConfig_BadEnvValue(t *testing.T) {
	t.Setenv("DB_MAX_IDLE_CONNS", "many")

	_, err := LoadConfig("")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "DB_MAX_IDLE_CONNS")
}

func TestLoadDotEnv(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, ".env.local")
	require.NoError(t, os.WriteFile(path, []byte("ROSTER_EMAIL_DOMAIN=dotenv.sch.id\n"), 0o644))

	t.Setenv("ROSTER_EMAIL_DOMAIN", "")
	require.NoError(t, os.Unsetenv("ROSTER_EMAIL_DOMAIN"))

	require.NoError(t, LoadDotEnv(filepath.Join(dir, "absent.env"), path))
	assert.Equal(t, "dotenv.sch.id", os.Getenv("ROSTER_EMAIL_DOMAIN"))

	cfg, err := LoadConfig("")
	require.NoError(t, err)
	assert.Equal(t, "dotenv.sch.id", cfg.Credentials.EmailDomain)
}
