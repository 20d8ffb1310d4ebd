package env

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEnvService_Typed(t *testing.T) {
	t.Setenv("ARTICLE_TEST_BOOL", "false")
	t.Setenv("ARTICLE_TEST_FLOAT", "0.8")
	t.Setenv("ARTICLE_TEST_DURATION", "90s")
	t.Setenv("ARTICLE_TEST_BROKEN", "not-a-number")

	e := &EnvService{}

	assert.False(t, e.GetBool("ARTICLE_TEST_BOOL", true))
	assert.InDelta(t, 0.8, e.GetFloat("ARTICLE_TEST_FLOAT", 0), 1e-9)
	assert.Equal(t, 90*time.Second, e.GetDuration("ARTICLE_TEST_DURATION", time.Second))

	assert.InDelta(t, 0.5, e.GetFloat("ARTICLE_TEST_BROKEN", 0.5), 1e-9)
	assert.True(t, e.GetBool("ARTICLE_TEST_BROKEN", true))
	assert.Equal(t, time.Minute, e.GetDuration("ARTICLE_TEST_MISSING", time.Minute))
	assert.Equal(t, "fallback", e.GetWithDefault("ARTICLE_TEST_MISSING", "fallback"))
}

func TestNewEnvService_LoadsDotEnv(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, ".env"), []byte("ARTICLE_TEST_FROM_FILE=base\n"), 0o600))
	require.NoError(t, os.WriteFile(filepath.Join(dir, ".env.test"), []byte("ARTICLE_TEST_FROM_FILE=override\n"), 0o600))

	wd, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(dir))
	t.Cleanup(func() {
		_ = os.Chdir(wd)
		_ = os.Unsetenv("ARTICLE_TEST_FROM_FILE")
	})
	t.Setenv("APP_ENV", "test")

	e := NewEnvService()

	assert.Equal(t, "override", e.Get("ARTICLE_TEST_FROM_FILE"))
}
