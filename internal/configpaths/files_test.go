package configpaths

import (
	"path/filepath"
	"runtime"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultConfigDir(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Setenv("AppData", `C:\Users\me\AppData\Roaming`)
		dir, err := DefaultConfigDir()
		require.NoError(t, err)
		assert.Equal(t, filepath.Join(`C:\Users\me\AppData\Roaming`, "gefpad"), dir)
		return
	}

	t.Setenv("XDG_CONFIG_HOME", "/tmp/xdg")
	dir, err := DefaultConfigDir()
	require.NoError(t, err)
	assert.Equal(t, "/tmp/xdg/gefpad", dir)

	t.Setenv("XDG_CONFIG_HOME", "")
	t.Setenv("HOME", "/home/me")
	dir, err = DefaultConfigDir()
	require.NoError(t, err)
	assert.Equal(t, "/home/me/.config/gefpad", dir)

	p, err := DefaultConfigPath("yml")
	require.NoError(t, err)
	assert.Equal(t, "/home/me/.config/gefpad/config.yaml", p)
}

func TestConfigCandidatePathsUserFirst(t *testing.T) {
	type testCase struct {
		user  string
		check func(j, y, tm []string) []string
	}
	cases := []testCase{
		{"my.json", func(j, _, _ []string) []string { return j }},
		{"my.yml", func(_, y, _ []string) []string { return y }},
		{"my.toml", func(_, _, tm []string) []string { return tm }},
		{"my.conf", func(j, _, _ []string) []string { return j }},
	}
	for _, tc := range cases {
		j, y, tm := ConfigCandidatePaths(tc.user)
		paths := tc.check(j, y, tm)
		require.NotEmpty(t, paths, tc.user)
		assert.Equal(t, tc.user, paths[0])
	}

	j, _, _ := ConfigCandidatePaths("")
	for _, p := range j {
		assert.Equal(t, ".json", filepath.Ext(p))
	}
}

func TestEnsureDir(t *testing.T) {
	dir := t.TempDir()
	target := filepath.Join(dir, "a", "b", "config.toml")
	require.NoError(t, EnsureDir(target))
	assert.DirExists(t, filepath.Join(dir, "a", "b"))
}
