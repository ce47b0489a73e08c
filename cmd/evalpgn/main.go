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

// Command evalpgn walks every position of every game in a PGN database,
// evaluates each one with this module's classical evaluator, and prints
// the number of positions and their mean evaluation. It uses
// github.com/notnil/chess, an independent rules/PGN implementation, to
// read the games; each position reaches this module's board as a FEN
// string, and the two implementations' positions are not compared.
package main

import (
	"fmt"
	"os"

	"github.com/notnil/chess"
	"github.com/schollz/progressbar/v3"

	"github.com/kennyfrc/Ethereal/internal/config"
	"github.com/kennyfrc/Ethereal/pkg/board"
	"github.com/kennyfrc/Ethereal/pkg/board/piece"
	"github.com/kennyfrc/Ethereal/pkg/search/eval/classical"
)

func main() {
	if len(os.Args) < 2 {
		fmt.Fprintln(os.Stderr, "usage: evalpgn <file.pgn>")
		os.Exit(1)
	}

	if err := run(os.Args[1]); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run(path string) error {
	f, err := os.Open(path)
	if err != nil {
		return err
	}
	defer f.Close()

	var games []*chess.Game

	scanner := chess.NewScanner(f)
	for scanner.Scan() {
		games = append(games, scanner.Next())
	}

	bar := progressbar.Default(int64(len(games)), "evaluating games")

	// one evaluator for the whole database, so the pawn-king and
	// whole-position caches persist across games
	evaluator := classical.EfficientlyUpdatable{}
	if cfg, err := config.Load("ethereal.toml"); err == nil {
		evaluator.ScaleFactorOverride = cfg.ScaleFactorOverride
	}

	var positions, sum int64
	for _, game := range games {
		for _, pos := range game.Positions() {
			b := board.New(pos.String())

			score := evaluate(&evaluator, b)
			positions++
			sum += int64(score)
		}

		_ = bar.Add(1)
	}

	fmt.Println()
	if positions == 0 {
		fmt.Println("no positions found")
		return nil
	}

	fmt.Printf("positions evaluated: %d\n", positions)
	fmt.Printf("mean evaluation (white pov, centipawns): %.2f\n", float64(sum)/float64(positions))
	return nil
}

// evaluate scores b from White's point of view regardless of whose turn
// it is to move, so scores across a game are directly comparable.
func evaluate(evaluator *classical.EfficientlyUpdatable, b *board.Board) int {
	evaluator.Board = b
	score := evaluator.Accumulate(piece.White)
	return int(score)
}
