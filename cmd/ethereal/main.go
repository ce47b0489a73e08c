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

// Command ethereal is a UCI-speaking chess engine whose static
// evaluation is a hand-tuned classical evaluator in the style of
// Ethereal/Stockfish's predecessors.
package main

import (
	"bufio"
	"fmt"
	"os"

	"golang.org/x/term"

	"github.com/kennyfrc/Ethereal/internal/build"
	"github.com/kennyfrc/Ethereal/internal/config"
	"github.com/kennyfrc/Ethereal/internal/dashboard"
	"github.com/kennyfrc/Ethereal/internal/engine"
	"github.com/kennyfrc/Ethereal/pkg/board"
)

// configPath is the optional startup configuration file consulted for
// headless/batch use; a missing file is not an error.
const configPath = "ethereal.toml"

func main() {
	if err := run(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run() error {
	cfg := config.Default()
	if loaded, err := config.Load(configPath); err == nil {
		cfg = loaded
	}

	client := engine.NewClientWithHash(cfg.HashMB)

	fmt.Printf("Ethereal %s by the Ethereal authors\n", build.Version)

	args := os.Args[1:]

	if len(args) == 1 && args[0] == "-tui" {
		if !term.IsTerminal(int(os.Stdin.Fd())) {
			return fmt.Errorf("ethereal -tui: stdin is not a terminal")
		}
		return runDashboard()
	}

	switch {
	case len(args) == 0:
		// no command-line arguments: start repl
		return client.Start()

	default:
		// command-line arguments: evaluate them as a single UCI command
		return client.RunWith(args, false)
	}
}

// runDashboard starts the terminal dashboard, reading one FEN per line
// from stdin and re-rendering the board and its evaluation breakdown
// for each. An empty line or EOF exits.
func runDashboard() error {
	d, err := dashboard.New()
	if err != nil {
		return err
	}
	defer d.Close()

	d.Update(board.New(joinFEN(board.StartFEN)))

	scanner := bufio.NewScanner(os.Stdin)
	for scanner.Scan() {
		line := scanner.Text()
		if line == "" {
			return nil
		}
		d.Update(board.New(line))
	}

	return scanner.Err()
}

func joinFEN(fields []string) string {
	s := ""
	for i, f := range fields {
		if i > 0 {
			s += " "
		}
		s += f
	}
	return s
}
