package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func envOf(m map[string]string) func(string) string {
	return func(k string) string { return m[k] }
}

func baseEnv() map[string]string {
	return map[string]string{
		"APP_NAME":  "badge-sync",
		"APP_ENV":   "test",
		"HTTP_PORT": "8080",
	}
}

func TestFromLookup_Defaults(t *testing.T) {
	cfg, err := FromLookup(envOf(baseEnv()))
	require.NoError(t, err)

	assert.Equal(t, DatasetSourceCSV, cfg.Dataset.Source)
	assert.Equal(t, "skills.csv", cfg.Dataset.Path)
	assert.Equal(t, "Job Title", cfg.Dataset.TitleColumn)
	assert.Equal(t, "Skills_Required", cfg.Dataset.SkillsColumn)
	assert.Equal(t, 5, cfg.Recommend.DefaultN)
	assert.Equal(t, 100, cfg.Recommend.MaxN)
	assert.Equal(t, 1.0, cfg.Recommend.Alpha)
	assert.Equal(t, []string{"*"}, cfg.CORS.AllowOrigins)
	assert.False(t, cfg.Redis.Enabled)
	assert.Equal(t, 600*time.Second, cfg.Redis.TTL)
	assert.False(t, cfg.Database.Enabled())
}

func TestFromLookup_MissingRequired(t *testing.T) {
	env := baseEnv()
	delete(env, "HTTP_PORT")

	_, err := FromLookup(envOf(env))
	require.Error(t, err)
	assert.ErrorIs(t, err, errMissingRequiredEnv)
	assert.Contains(t, err.Error(), "HTTP_PORT")
}

func TestFromLookup_PostgresSourceNeedsDatabase(t *testing.T) {
	env := baseEnv()
	env["DATASET_SOURCE"] = "Postgres"

	_, err := FromLookup(envOf(env))
	assert.ErrorIs(t, err, errMissingRequiredEnv)

	env["DB_HOST"] = "localhost"
	env["DB_NAME"] = "badges"
	env["DB_USER"] = "postgres"
	cfg, err := FromLookup(envOf(env))
	require.NoError(t, err)
	assert.Equal(t, DatasetSourcePostgres, cfg.Dataset.Source)
	assert.True(t, cfg.Database.Enabled())
}

func TestFromLookup_InvalidValues(t *testing.T) {
	tests := []struct {
		key   string
		value string
	}{
		{key: "RECOMMEND_DEFAULT_N", value: "five"},
		{key: "RECOMMEND_MAX_N", value: "0"},
		{key: "RECOMMEND_ALPHA", value: "-1"},
		{key: "REDIS_ENABLED", value: "maybe"},
		{key: "REDIS_TTL", value: "-5"},
		{key: "DATASET_SOURCE", value: "s3"},
	}

	for _, tt := range tests {
		t.Run(tt.key, func(t *testing.T) {
			env := baseEnv()
			env[tt.key] = tt.value
			_, err := FromLookup(envOf(env))
			require.Error(t, err)
			assert.ErrorIs(t, err, errInvalidEnv)
			assert.Contains(t, err.Error(), tt.key)
		})
	}
}

func TestFromLookup_CORSOrigins(t *testing.T) {
	env := baseEnv()
	env["CORS_ALLOW_ORIGINS"] = "http://localhost:5173, https://badges.example.com,,"

	cfg, err := FromLookup(envOf(env))
	require.NoError(t, err)
	assert.Equal(t, []string{"http://localhost:5173", "https://badges.example.com"}, cfg.CORS.AllowOrigins)
}
