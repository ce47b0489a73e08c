// Copyright © 2023 Rak Laptudirm <rak@laptudirm.com>
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
// http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

// Package config loads optional startup configuration for headless or
// batch use of the engine (cmd/evalpgn, cmd/evaltrace), where no UCI
// client is present to set options interactively via setoption.
package config

import "github.com/BurntSushi/toml"

// Config mirrors the subset of UCI options that are useful to preset
// from a file instead of via setoption.
type Config struct {
	HashMB  int `toml:"hash_mb"`
	Threads int `toml:"threads"`

	// ScaleFactorOverride, if non-zero, replaces the evaluator's
	// computed endgame scale factor for every position, for
	// experimenting with scale-factor changes without rebuilding.
	ScaleFactorOverride int `toml:"scale_factor_override"`
}

// Default returns the configuration used when no file is found.
func Default() Config {
	return Config{HashMB: 16, Threads: 1}
}

// Load reads a Config from the TOML file at path, falling back to
// Default for any field the file doesn't set.
func Load(path string) (Config, error) {
	cfg := Default()
	_, err := toml.DecodeFile(path, &cfg)
	return cfg, err
}
