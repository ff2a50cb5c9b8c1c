package main

import (
	"testing"
)

const testKey = "e8135b91771671df0b9cc9a40137660a47b9babf7539b7c55756dd6816de5f4e"

func TestRun_ConfigErrorsExitOne(t *testing.T) {
	cases := map[string]map[string]string{
		"short key": {
			"MASTER_PRIVATE_KEY": testKey[:63],
			"SLAVE_ADDRESS":      "TJ3VtXGnuGJQTBqNzqA7TPtvAC999bfTAX",
		},
		"missing slave": {
			"MASTER_PRIVATE_KEY": testKey,
			"SLAVE_ADDRESS":      "",
		},
		"zero key": {
			"MASTER_PRIVATE_KEY": "0000000000000000000000000000000000000000000000000000000000000000",
			"SLAVE_ADDRESS":      "TJ3VtXGnuGJQTBqNzqA7TPtvAC999bfTAX",
		},
	}
	for name, env := range cases {
		t.Run(name, func(t *testing.T) {
			for k, v := range env {
				t.Setenv(k, v)
			}
			// no endpoint is reachable from here; a config error returns before any is tried
			t.Setenv("ENDPOINTS_FILE", "")
			t.Setenv("NETWORK", "mainnet")
			if code := run(); code != 1 {
				t.Fatalf("run() = %d, want 1", code)
			}
		})
	}
}
