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

package classical_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/kennyfrc/Ethereal/pkg/board"
	"github.com/kennyfrc/Ethereal/pkg/board/move"
	"github.com/kennyfrc/Ethereal/pkg/board/piece"
	"github.com/kennyfrc/Ethereal/pkg/search/eval/classical"
)

// testPositions is a spread of openings, middlegames, and endgames used
// by the property tests below.
var testPositions = []string{
	"rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR w KQkq - 0 1",
	"r1bqkb1r/pppp1ppp/2n2n2/4p3/2B1P3/5N2/PPPP1PPP/RNBQK2R w KQkq - 0 1",
	"r2q1rk1/pp2ppbp/2np1np1/8/3NP3/2N1BP2/PPPQ2PP/R3KB1R w KQ - 0 1",
	"8/8/8/8/4k3/8/4K3/8 w - - 0 1",
	"4k3/8/8/8/8/8/4P3/4K3 w - - 0 1",
	"4k3/8/8/3P4/8/8/8/4K3 w - - 0 1",
	"4k3/8/8/8/8/8/8/4K2R w K - 0 1",
	"8/2p5/3p4/KP5r/1R3p1k/8/4P1P1/8 w - - 0 1",
	"4rrk1/pp1n3p/3q2pQ/2p1pb2/2PP4/2P3N1/P2B2PP/4RRK1 b - - 0 1",
	"r4rk1/1pp1qppp/p1np1n2/2b1p1B1/2B1P1b1/P1NP1N2/1PP1QPPP/R4RK1 w - - 0 1",
	"8/2k5/4p3/1nb2p2/2K5/8/6B1/8 w - - 0 1",
	"6k1/6p1/7p/8/1p6/p1qp4/8/3QK3 w - - 0 1",
	"2b1k3/8/8/2P1P3/8/8/8/2B1K3 w - - 0 1",
	"8/6pk/8/6PK/8/8/7B/7b w - - 0 1",
	"rnbqkbnr/pp1ppppp/8/2pP4/8/8/PPP1PPPP/RNBQKBNR w KQkq c6 0 3",
	"rnbqkbnr/ppp1p1pp/8/3pPp2/8/8/PPPP1PPP/RNBQKBNR w KQkq f6 0 4",
}

// mirror flips a FEN's board field vertically and swaps the case of
// every piece letter, producing the position with colors swapped and
// ranks reflected. The side to move, castling rights, and en-passant
// target flip with it.
func mirror(fen string) string {
	fields := fields(fen)
	ranks := split(fields[0], '/')

	mirrored := make([]string, len(ranks))
	for i, r := range ranks {
		mirrored[len(ranks)-1-i] = swapCase(r)
	}

	fields[0] = join(mirrored, '/')

	switch fields[1] {
	case "w":
		fields[1] = "b"
	case "b":
		fields[1] = "w"
	}

	fields[2] = swapCase(fields[2])

	// the en-passant square keeps its file but flips rank (3 <-> 6)
	if fields[3] != "-" {
		ep := []byte(fields[3])
		ep[1] = '1' + ('8' - ep[1])
		fields[3] = string(ep)
	}

	return join(fields, ' ')
}

func swapCase(s string) string {
	b := []byte(s)
	for i, c := range b {
		switch {
		case c >= 'a' && c <= 'z':
			b[i] = c - 'a' + 'A'
		case c >= 'A' && c <= 'Z':
			b[i] = c - 'A' + 'a'
		}
	}
	return string(b)
}

func fields(s string) []string { return split(s, ' ') }

func split(s string, sep byte) []string {
	var out []string
	start := 0
	for i := 0; i < len(s); i++ {
		if s[i] == sep {
			out = append(out, s[start:i])
			start = i + 1
		}
	}
	out = append(out, s[start:])
	return out
}

func join(parts []string, sep byte) string {
	out := parts[0]
	for _, p := range parts[1:] {
		out += string(sep) + p
	}
	return out
}

func score(fen string) int {
	b := board.New(fen)
	evaluator := classical.EfficientlyUpdatable{Board: b}
	return int(evaluator.Accumulate(b.SideToMove))
}

// TestColorSymmetry verifies property P1: mirroring a position swaps
// the colors exactly, so evaluating the mirror from its own side to
// move must produce the same score the original got from its side to
// move.
func TestColorSymmetry(t *testing.T) {
	for _, fen := range testPositions {
		require.Equal(t, score(fen), score(mirror(fen)), "fen=%s", fen)
	}
}

// TestSideToMoveTempo verifies property P2: evaluating the same
// position for both sides to move differs only by the doubled tempo
// bonus.
func TestSideToMoveTempo(t *testing.T) {
	for _, fen := range testPositions {
		f := fields(fen)

		f[1] = "w"
		white := score(join(f, ' '))

		f[1] = "b"
		black := score(join(f, ' '))

		require.Equal(t, 2*int(classical.Tempo), white+black, "fen=%s", fen)
	}
}

// TestNullMoveIdentity verifies property P3: a null move changes
// nothing but the side to move, so eval(after) == -eval(before) +
// 2*Tempo. The second evaluation also runs through a pawn-king cache
// hit, since the pawn and king placement is unchanged.
func TestNullMoveIdentity(t *testing.T) {
	for _, fen := range testPositions {
		b := board.New(fen)
		evaluator := classical.EfficientlyUpdatable{Board: b}

		before := evaluator.Accumulate(b.SideToMove)

		b.MakeMove(move.Null)
		after := evaluator.Accumulate(b.SideToMove)
		b.UnmakeMove()

		require.Equal(t, -before+2*classical.Tempo, after, "fen=%s", fen)
	}
}

// TestCacheEquivalence verifies property P4: evaluating through warmed
// pawn-king and whole-position caches returns the same values as
// evaluating every position from scratch.
func TestCacheEquivalence(t *testing.T) {
	warm := classical.EfficientlyUpdatable{}

	// two rounds over every position: the second round hits the
	// whole-position cache, and positions sharing pawn structure hit
	// the pawn-king cache within the first
	for round := 0; round < 2; round++ {
		for _, fen := range testPositions {
			b := board.New(fen)
			warm.Board = b
			cached := warm.Accumulate(b.SideToMove)

			require.Equal(t, score(fen), int(cached), "round=%d fen=%s", round, fen)
		}
	}
}

// TestPhaseBounds verifies property P6: the normalized game phase stays
// within [0, MaxPhase], starting at 0 with all material on the board
// and reaching MaxPhase once only the kings remain.
func TestPhaseBounds(t *testing.T) {
	start := board.New("rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR w KQkq - 0 1")
	startEval := classical.EfficientlyUpdatable{Board: start}
	startEval.Accumulate(piece.White)
	require.Equal(t, 0, int(startEval.Phase))

	bareKings := board.New("8/8/8/8/4k3/8/4K3/8 w - - 0 1")
	bareEval := classical.EfficientlyUpdatable{Board: bareKings}
	bareEval.Accumulate(piece.White)
	require.Equal(t, classical.MaxPhase, bareEval.Phase)

	for _, fen := range testPositions {
		b := board.New(fen)
		evaluator := classical.EfficientlyUpdatable{Board: b}
		evaluator.Accumulate(b.SideToMove)

		require.GreaterOrEqual(t, int(evaluator.Phase), 0, "fen=%s", fen)
		require.LessOrEqual(t, int(evaluator.Phase), int(classical.MaxPhase), "fen=%s", fen)
	}
}

// TestBareKingsIsTempoOnly checks the bare-kings scenario from the
// testable-properties scenario table: every material, positional, and
// structural term cancels, leaving only the side-to-move bonus.
func TestBareKingsIsTempoOnly(t *testing.T) {
	require.Equal(t, int(classical.Tempo), score("8/8/8/8/4k3/8/4K3/8 w - - 0 1"))
	require.Equal(t, int(classical.Tempo), score("8/8/8/8/4k3/8/4K3/8 b - - 0 1"))
}

// TestAdvancedPasserScoresHigher verifies the scenario relationship
// from the testable-properties table: an advanced passed pawn must
// score strictly higher than an unadvanced one.
func TestAdvancedPasserScoresHigher(t *testing.T) {
	unadvanced := score("4k3/8/8/8/8/8/4P3/4K3 w - - 0 1")
	advanced := score("4k3/8/8/3P4/8/8/8/4K3 w - - 0 1")

	require.Greater(t, advanced, unadvanced)
	require.Greater(t, unadvanced, 0)
}

// TestDrawishMaterialIsScaledDown checks the endgame scale factor on
// the drawish material patterns from the scenario table: a lone minor
// against a bare king scales to nothing, while a lone rook keeps its
// full value.
func TestDrawishMaterialIsScaledDown(t *testing.T) {
	loneBishop := score("8/8/8/2k5/5K2/8/8/3b4 b - - 0 1")
	loneRook := score("4k3/8/8/8/8/8/8/4K2R w K - 0 1")

	// the lone bishop's winning chances vanish; only the tapered
	// middle game remnant of its material value survives the scaling
	require.Less(t, loneBishop, 60)
	require.Greater(t, loneRook, 300)
}
