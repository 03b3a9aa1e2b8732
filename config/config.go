// Package config defines this repository's node configuration, adapted
// from the teacher's node.Config (node/config.go): the same
// flat-struct-plus-DefaultConfig-plus-ValidateConfig shape, with the
// peer-to-peer fields dropped since networking is an external
// collaborator this repository does not implement (§1), and a
// NetworkTag method added that resolves the Network name to a
// chainstate.NetworkTag, since genesis construction here is
// tag-parameterised.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"mutaset.dev/core/chainstate"
)

// Config is this node's full runtime configuration.
type Config struct {
	Network  string `json:"network"`
	DataDir  string `json:"data_dir"`
	LogLevel string `json:"log_level"`
}

var allowedLogLevels = map[string]struct{}{
	"debug": {},
	"info":  {},
	"warn":  {},
	"error": {},
}

var networkTags = map[string]chainstate.NetworkTag{
	"main":    chainstate.NetworkMain,
	"testnet": chainstate.NetworkTestnet,
	"regtest": chainstate.NetworkRegTest,
	"beta":    chainstate.NetworkBeta,
}

// DefaultDataDir mirrors the teacher's home-directory fallback.
func DefaultDataDir() string {
	home, err := os.UserHomeDir()
	if err != nil || home == "" {
		return ".mutaset"
	}
	return filepath.Join(home, ".mutaset")
}

// DefaultConfig returns the configuration a fresh node starts from.
func DefaultConfig() Config {
	return Config{
		Network:  "regtest",
		DataDir:  DefaultDataDir(),
		LogLevel: "info",
	}
}

// NetworkTag resolves cfg.Network to a chainstate.NetworkTag.
func (cfg Config) NetworkTag() (chainstate.NetworkTag, error) {
	tag, ok := networkTags[strings.ToLower(strings.TrimSpace(cfg.Network))]
	if !ok {
		return 0, fmt.Errorf("config: unknown network %q", cfg.Network)
	}
	return tag, nil
}

// ValidateConfig checks cfg for internal consistency before a node
// starts up on it.
func ValidateConfig(cfg Config) error {
	if strings.TrimSpace(cfg.DataDir) == "" {
		return errors.New("data_dir is required")
	}
	if _, err := cfg.NetworkTag(); err != nil {
		return err
	}
	logLevel := strings.ToLower(strings.TrimSpace(cfg.LogLevel))
	if _, ok := allowedLogLevels[logLevel]; !ok {
		return fmt.Errorf("invalid log_level %q", cfg.LogLevel)
	}
	return nil
}
