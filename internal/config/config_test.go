package config

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testKey = "e8135b91771671df0b9cc9a40137660a47b9babf7539b7c55756dd6816de5f4e"

func lookupFrom(env map[string]string) LookupFunc {
	return func(key string) (string, bool) {
		v, ok := env[key]
		return v, ok
	}
}

func baseEnv() map[string]string {
	return map[string]string{
		"MASTER_PRIVATE_KEY": testKey,
		"SLAVE_ADDRESS":      "TJ3VtXGnuGJQTBqNzqA7TPtvAC999bfTAX",
	}
}

func TestFromLookup_Defaults(t *testing.T) {
	cfg, err := FromLookup(lookupFrom(baseEnv()))
	require.NoError(t, err)

	assert.Equal(t, "mainnet", cfg.Network)
	assert.Equal(t, "info", cfg.LogLevel)
	assert.Equal(t, 5*time.Second, cfg.ConfirmDelay)
	assert.Empty(t, cfg.JournalPath)
	require.Len(t, cfg.Endpoints, 5)
	assert.Equal(t, "https://api.trongrid.io", cfg.Endpoints[0].URL)
	assert.Equal(t, "https://api.trongrid.io", cfg.Endpoints[2].URL)
	assert.Equal(t, "https://tron.mytokenpocket.vip", cfg.Endpoints[4].URL)
}

func TestFromLookup_TestnetSubstitutesOneEndpoint(t *testing.T) {
	env := baseEnv()
	env["NETWORK"] = "testnet"
	env["API_KEY"] = "k"

	cfg, err := FromLookup(lookupFrom(env))
	require.NoError(t, err)

	mainnet := DefaultEndpoints("mainnet", "k")
	require.Len(t, cfg.Endpoints, len(mainnet))
	diff := 0
	for i := range mainnet {
		if mainnet[i].URL != cfg.Endpoints[i].URL {
			diff++
			assert.Equal(t, "https://api.shasta.trongrid.io", cfg.Endpoints[i].URL)
		}
		assert.Equal(t, "k", cfg.Endpoints[i].APIKey)
	}
	assert.Equal(t, 1, diff)
}

func TestFromLookup_SlaveAddressVerbatim(t *testing.T) {
	env := baseEnv()
	env["SLAVE_ADDRESS"] = "not-base58-at-all"

	cfg, err := FromLookup(lookupFrom(env))
	require.NoError(t, err)
	assert.Equal(t, "not-base58-at-all", cfg.SlaveAddress)
}

func TestFromLookup_ConfigErrors(t *testing.T) {
	cases := []struct {
		name string
		edit func(map[string]string)
		want string
	}{
		{"missing key", func(e map[string]string) { delete(e, "MASTER_PRIVATE_KEY") }, "MASTER_PRIVATE_KEY"},
		{"missing slave", func(e map[string]string) { delete(e, "SLAVE_ADDRESS") }, "SLAVE_ADDRESS"},
		{"key length 63", func(e map[string]string) { e["MASTER_PRIVATE_KEY"] = testKey[:63] }, "MASTER_PRIVATE_KEY"},
		{"key length 65", func(e map[string]string) { e["MASTER_PRIVATE_KEY"] = testKey + "a" }, "MASTER_PRIVATE_KEY"},
		{"0x prefixed key", func(e map[string]string) { e["MASTER_PRIVATE_KEY"] = "0x" + testKey[2:] }, "MASTER_PRIVATE_KEY"},
		{"non-hex key", func(e map[string]string) { e["MASTER_PRIVATE_KEY"] = strings.Repeat("g", 64) }, "MASTER_PRIVATE_KEY"},
		{"bad network", func(e map[string]string) { e["NETWORK"] = "nile" }, "NETWORK"},
		{"bad delay", func(e map[string]string) { e["CONFIRM_DELAY"] = "soon" }, "CONFIRM_DELAY"},
		{"missing endpoints file", func(e map[string]string) { e["ENDPOINTS_FILE"] = "testdata/missing.yaml" }, "ENDPOINTS_FILE"},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			env := baseEnv()
			c.edit(env)

			_, err := FromLookup(lookupFrom(env))
			require.Error(t, err)

			var cfgErr *ConfigError
			require.True(t, errors.As(err, &cfgErr), "expected *ConfigError, got %T", err)
			assert.Equal(t, c.want, cfgErr.Var)
		})
	}
}

func TestFromLookup_EndpointsFile(t *testing.T) {
	env := baseEnv()
	env["ENDPOINTS_FILE"] = filepath.Join("testdata", "endpoints.yaml")
	env["API_KEY"] = "global"
	env["CONFIRM_DELAY"] = "250ms"

	cfg, err := FromLookup(lookupFrom(env))
	require.NoError(t, err)

	require.Len(t, cfg.Endpoints, 3)
	assert.Equal(t, "https://api.shasta.trongrid.io", cfg.Endpoints[0].URL)
	assert.Equal(t, "global", cfg.Endpoints[0].APIKey)
	assert.Equal(t, "nile-key", cfg.Endpoints[1].APIKey)
	assert.Equal(t, "https://tron-rpc.publicnode.com", cfg.Endpoints[2].URL)
	assert.Equal(t, 250*time.Millisecond, cfg.ConfirmDelay)
}

func TestLoadEndpoints_Empty(t *testing.T) {
	path := filepath.Join(t.TempDir(), "empty.yaml")
	require.NoError(t, os.WriteFile(path, []byte("endpoints: []\n"), 0o644))

	_, err := LoadEndpoints(path, "")
	assert.Error(t, err)
}
