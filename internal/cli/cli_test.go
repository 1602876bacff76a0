package cli

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParse_NoArgsPrintsUsage(t *testing.T) {
	var out bytes.Buffer
	cfg, shouldExit, err := Parse(nil, &out)
	require.NoError(t, err)
	assert.True(t, shouldExit)
	assert.Nil(t, cfg)
	assert.Contains(t, out.String(), "Usage:")
}

func TestParse_PositionalPath(t *testing.T) {
	var out bytes.Buffer
	cfg, shouldExit, err := Parse([]string{"pipeline.hcl"}, &out)
	require.NoError(t, err)
	require.False(t, shouldExit)
	assert.Equal(t, "pipeline.hcl", cfg.ConfigPath)
	assert.Equal(t, "json", cfg.Format)
	assert.Equal(t, "aws", cfg.Identity.Partition)
}

func TestParse_AllFlags(t *testing.T) {
	var out bytes.Buffer
	cfg, shouldExit, err := Parse([]string{
		"--config", "deploy/pipeline.hcl",
		"--format", "yaml",
		"--account", "123456789012",
		"--region", "eu-west-1",
		"--partition", "aws-cn",
		"--validate-only",
		"--log-format", "json",
		"--log-level", "debug",
	}, &out)
	require.NoError(t, err)
	require.False(t, shouldExit)

	assert.Equal(t, "deploy/pipeline.hcl", cfg.ConfigPath)
	assert.Equal(t, "yaml", cfg.Format)
	assert.Equal(t, "123456789012", cfg.Identity.AccountID)
	assert.Equal(t, "eu-west-1", cfg.Identity.Region)
	assert.Equal(t, "aws-cn", cfg.Identity.Partition)
	assert.True(t, cfg.ValidateOnly)
	assert.False(t, cfg.ResolveIdentity)
	assert.Equal(t, "json", cfg.LogFormat)
	assert.Equal(t, "debug", cfg.LogLevel)
}

func TestParse_InvalidValues(t *testing.T) {
	cases := []struct {
		name string
		args []string
		want string
	}{
		{"bad format", []string{"--format", "toml", "pipeline.hcl"}, "invalid format"},
		{"bad log format", []string{"--log-format", "xml", "pipeline.hcl"}, "invalid log-format"},
		{"bad log level", []string{"--log-level", "loud", "pipeline.hcl"}, "invalid log-level"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			var out bytes.Buffer
			_, _, err := Parse(tc.args, &out)
			require.Error(t, err)

			exitErr, ok := err.(*ExitError)
			require.True(t, ok)
			assert.Equal(t, 2, exitErr.Code)
			assert.Contains(t, exitErr.Message, tc.want)
		})
	}
}
