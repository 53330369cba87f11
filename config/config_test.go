package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testYAML = `
env:
  env: test
  serviceName: pharmanet
http:
  port: 8080
secretKey:
  access: test-secret
identity:
  provider: firebase
  apiKey: key
recordStore:
  provider: firestore
firebase:
  projectId: demo-project
blob:
  bucketUrl: mem://
  publicBaseUrl: https://cdn.example.com
`

func TestLoadWithEnv_EnvOverridesYAML(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "pharmanet.yaml"), []byte(testYAML), 0o600))
	t.Chdir(dir)
	t.Setenv("FIREBASE_PROJECTID", "override-project")

	cfg, err := LoadWithEnv[Config]("pharmanet")
	require.NoError(t, err)

	assert.Equal(t, 8080, cfg.HTTP.Port)
	assert.Equal(t, "override-project", cfg.Firebase.ProjectID)
	assert.Equal(t, IdentityProviderFirebase, cfg.Identity.Provider)
	assert.Equal(t, "https://cdn.example.com", cfg.Blob.PublicBaseURL)
}

func TestLoadWithEnv_MissingFile(t *testing.T) {
	t.Chdir(t.TempDir())

	_, err := LoadWithEnv[Config]("absent")
	assert.Error(t, err)
}

func TestApplyDefaults(t *testing.T) {
	cfg := &Config{}
	applyDefaults(cfg)

	assert.Equal(t, IdentityProviderLocal, cfg.Identity.Provider)
	assert.Equal(t, RecordStorePostgres, cfg.RecordStore.Provider)
	assert.Equal(t, int64(5<<20), cfg.Blob.MaxImageBytes)
	assert.Equal(t, 15*time.Minute, cfg.Auth.AccessTokenTTL)
	assert.Equal(t, "8MB", cfg.HTTP.MaxRequestBodySize)
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr bool
	}{
		{name: "firebase and firestore", mutate: func(*Config) {}},
		{name: "unknown identity provider", mutate: func(c *Config) { c.Identity.Provider = "ldap" }, wantErr: true},
		{name: "firebase without api key", mutate: func(c *Config) { c.Identity.APIKey = "" }, wantErr: true},
		{name: "postgres store without postgres", mutate: func(c *Config) { c.RecordStore.Provider = RecordStorePostgres }, wantErr: true},
		{name: "missing access secret", mutate: func(c *Config) { c.SecretKey.Access = "" }, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := &Config{
				Identity:    &IdentityConfig{Provider: IdentityProviderFirebase, APIKey: "key"},
				RecordStore: &RecordStoreConfig{Provider: RecordStoreFirestore},
				Firebase:    &FirebaseConfig{ProjectID: "demo"},
			}
			cfg.SecretKey.Access = "secret"
			tt.mutate(cfg)

			err := cfg.Validate()
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}
