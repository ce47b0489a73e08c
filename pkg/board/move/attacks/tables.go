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

package attacks

import (
	"github.com/kennyfrc/Ethereal/pkg/board/bitboard"
	"github.com/kennyfrc/Ethereal/pkg/board/move/attacks/magic"
	"github.com/kennyfrc/Ethereal/pkg/board/piece"
	"github.com/kennyfrc/Ethereal/pkg/board/square"
)

// King, Knight, and Pawn are lookup tables of the attack sets of
// non-sliding pieces, indexed by the piece's square (and, for pawns,
// color).
var (
	King   [square.N]bitboard.Board
	Knight [square.N]bitboard.Board
	Pawn   [piece.ColorN][square.N]bitboard.Board
)

// bishopTable and rookTable are magic hash tables used to probe the
// attack sets of sliding pieces in constant time.
var (
	bishopTable *magic.Table
	rookTable   *magic.Table
)

func init() {
	for s := square.A8; s <= square.H1; s++ {
		King[s] = kingAttacksFrom(s)
		Knight[s] = knightAttacksFrom(s)
		Pawn[piece.White][s] = whitePawnAttacksFrom(s)
		Pawn[piece.Black][s] = blackPawnAttacksFrom(s)
	}

	// magic number search is slow (seconds), but runs once at start-up
	// and needs no precomputed data file.
	rookTable = magic.NewTable(4096, rook)
	bishopTable = magic.NewTable(512, bishop)
}

func whitePawnAttacksFrom(s square.Square) bitboard.Board {
	pawnUp := bitboard.Squares[s].North()
	return pawnUp.East() | pawnUp.West()
}

func blackPawnAttacksFrom(s square.Square) bitboard.Board {
	pawnUp := bitboard.Squares[s].South()
	return pawnUp.East() | pawnUp.West()
}

// knightAttacksFrom generates an attack bitboard containing all the
// possible squares a knight can move to from the given square.
func knightAttacksFrom(from square.Square) bitboard.Board {
	knight := bitboard.Squares[from]

	knightNorth := knight.North().North()
	knightSouth := knight.South().South()

	knightEast := knight.East().East()
	knightWest := knight.West().West()

	knightAttacks := knightNorth.East() | knightNorth.West()
	knightAttacks |= knightSouth.East() | knightSouth.West()

	knightAttacks |= knightEast.North() | knightEast.South()
	knightAttacks |= knightWest.North() | knightWest.South()

	return knightAttacks
}

// kingAttacksFrom generates an attack bitboard containing all the
// possible squares a king can move to from the given square.
func kingAttacksFrom(from square.Square) bitboard.Board {
	king := bitboard.Squares[from]

	kingNorth := king.North()
	kingSouth := king.South()
	kingEast := king.East()
	kingWest := king.West()

	kingAttacks := kingNorth | kingSouth | kingEast | kingWest

	kingAttacks |= kingNorth.East() | kingNorth.West()
	kingAttacks |= kingSouth.East() | kingSouth.West()

	return kingAttacks
}

// bishop is the magic.MoveFunc used to build bishopTable.
func bishop(s square.Square, occ bitboard.Board, isMask bool) bitboard.Board {
	diagonalMask := bitboard.Diagonals[s.Diagonal()]
	diagonalAttack := bitboard.Hyperbola(s, occ, diagonalMask)

	antiDiagonalMask := bitboard.AntiDiagonals[s.AntiDiagonal()]
	antiDiagonalAttack := bitboard.Hyperbola(s, occ, antiDiagonalMask)

	attacks := diagonalAttack | antiDiagonalAttack
	if isMask {
		attacks &^= bitboard.Rank1 | bitboard.Rank8 | bitboard.FileA | bitboard.FileH
	}

	return attacks
}

// rook is the magic.MoveFunc used to build rookTable.
func rook(s square.Square, occ bitboard.Board, isMask bool) bitboard.Board {
	fileMask := bitboard.Files[s.File()]
	fileAttacks := bitboard.Hyperbola(s, occ, fileMask)

	rankMask := bitboard.Ranks[s.Rank()]
	rankAttacks := bitboard.Hyperbola(s, occ, rankMask)

	if isMask {
		fileAttacks &^= bitboard.Rank1 | bitboard.Rank8
		rankAttacks &^= bitboard.FileA | bitboard.FileH
	}

	return fileAttacks | rankAttacks
}
