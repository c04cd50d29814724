package config

import (
	"bytes"
	"testing"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/require"
)

func TestBuild(t *testing.T) {
	t.Log("defaults are applied, trailing slash is trimmed")
	{
		t.Setenv("DATAVERSE_BASE_URL", "https://org.crm11.dynamics.com/api/data/v9.2/")
		t.Setenv("DATAVERSE_TOKEN", "token")

		cfg, err := Build()
		require.NoError(t, err, "no error must be raised")
		require.Equal(t, "https://org.crm11.dynamics.com/api/data/v9.2", cfg.DataverseCfg.BaseURL)
		require.Equal(t, "https://org.crm11.dynamics.com/api/data/v9.2", cfg.RepositoryConfig().BaseURL)
		require.Equal(t, 30*time.Second, cfg.DataverseCfg.Timeout)
		require.Equal(t, "info", cfg.LogCfg.Level)
		require.Equal(t, 168*time.Hour, cfg.TrackerCfg.TimeToLive)
		require.False(t, cfg.TrackerCfg.UseRedis())
		require.False(t, cfg.RunCfg.KeepEntities)
	}

	t.Log("overrides are parsed")
	{
		t.Setenv("DATAVERSE_TIMEOUT", "5s")
		t.Setenv("TRACKER_REDIS_ADDR", "localhost:6379")
		t.Setenv("TRACKER_REDIS_DB", "2")
		t.Setenv("RUN_KEEP_ENTITIES", "true")

		cfg, err := Build()
		require.NoError(t, err, "no error must be raised")
		require.Equal(t, 5*time.Second, cfg.DataverseCfg.Timeout)
		require.True(t, cfg.TrackerCfg.UseRedis())
		require.Equal(t, 2, cfg.TrackerCfg.RedisDB)
		require.True(t, cfg.RunCfg.KeepEntities)
	}

	t.Log("relative base url is rejected")
	{
		t.Setenv("DATAVERSE_BASE_URL", "api/data/v9.2")

		_, err := Build()
		require.Error(t, err, "base url must be absolute")
	}
}

func TestBuildRequiresToken(t *testing.T) {
	t.Setenv("DATAVERSE_BASE_URL", "https://org.crm11.dynamics.com/api/data/v9.2")
	t.Setenv("DATAVERSE_TOKEN", " ")

	_, err := Build()
	require.Error(t, err, "blank token must be rejected")
}

func TestLogCfgApply(t *testing.T) {
	logger := logrus.New()
	var buf bytes.Buffer
	logger.SetOutput(&buf)

	require.NoError(t, LogCfg{Level: "debug", Format: "json"}.Apply(logger))
	require.Equal(t, logrus.DebugLevel, logger.GetLevel())

	logger.Debug("configured")
	require.Contains(t, buf.String(), `"msg":"configured"`)

	require.Error(t, LogCfg{Level: "loud", Format: "text"}.Apply(logger))
	require.Error(t, LogCfg{Level: "info", Format: "xml"}.Apply(logger))
}
