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

package classical

import (
	"github.com/kennyfrc/Ethereal/pkg/board/bitboard"
	"github.com/kennyfrc/Ethereal/pkg/board/move/attacks"
	"github.com/kennyfrc/Ethereal/pkg/board/piece"
	"github.com/kennyfrc/Ethereal/pkg/board/square"
)

// masks and constants which are not already exported by the bitboard
// package, built once at init time the same way bitboard/areas.go
// builds its own derived masks.
var (
	longDiagonals bitboard.Board
	centerSquares bitboard.Board
	centerBig     bitboard.Board
	whiteSquares  bitboard.Board
	blackSquares  bitboard.Board
	leftFlank     bitboard.Board
	rightFlank    bitboard.Board
	edgeFiles     bitboard.Board

	// outpostRanks contains, for each color, the ranks on which a piece
	// sitting on an outpost square is considered advanced enough to
	// earn outpost-related bonuses.
	outpostRanks [piece.ColorN]bitboard.Board

	// outpostSquares contains, for each color and square, the set of
	// squares from which an enemy pawn could attack that square, now or
	// after advancing: the adjacent files, strictly ahead of the square.
	// A square free of enemy pawns on this mask is a safe outpost.
	outpostSquares [piece.ColorN][square.N]bitboard.Board

	// pawnConnected contains, for each color and square, the squares
	// whose pawns (of that color) make a pawn on that square connected:
	// its supporters one rank behind on adjacent files, plus its phalanx
	// neighbours on the same rank.
	pawnConnected [piece.ColorN][square.N]bitboard.Board
)

func init() {
	longDiagonals = bitboard.DiagonalH8A1 | bitboard.DiagonalA8H1

	centerSquares = bitboard.Squares[square.D4] | bitboard.Squares[square.E4] |
		bitboard.Squares[square.D5] | bitboard.Squares[square.E5]

	files := bitboard.Files[square.FileC] | bitboard.Files[square.FileD] |
		bitboard.Files[square.FileE] | bitboard.Files[square.FileF]
	ranks := bitboard.Ranks[square.Rank3] | bitboard.Ranks[square.Rank4] |
		bitboard.Ranks[square.Rank5] | bitboard.Ranks[square.Rank6]
	centerBig = files & ranks

	leftFlank = bitboard.Files[square.FileA] | bitboard.Files[square.FileB] |
		bitboard.Files[square.FileC] | bitboard.Files[square.FileD]
	rightFlank = bitboard.Files[square.FileE] | bitboard.Files[square.FileF] |
		bitboard.Files[square.FileG] | bitboard.Files[square.FileH]

	edgeFiles = bitboard.Files[square.FileA] | bitboard.Files[square.FileH]

	for s := square.A8; s <= square.H1; s++ {
		if (int(s.File())+int(s.Rank()))%2 == 0 {
			whiteSquares |= bitboard.Squares[s]
		} else {
			blackSquares |= bitboard.Squares[s]
		}
	}

	outpostRanks[piece.White] = bitboard.Rank4 | bitboard.Rank5 | bitboard.Rank6
	outpostRanks[piece.Black] = bitboard.Rank5 | bitboard.Rank4 | bitboard.Rank3

	for s := square.A8; s <= square.H1; s++ {
		outpostSquares[piece.White][s] = bitboard.PassedPawnMask[piece.White][s] &^
			bitboard.Files[s.File()]
		outpostSquares[piece.Black][s] = bitboard.PassedPawnMask[piece.Black][s] &^
			bitboard.Files[s.File()]

		phalanx := bitboard.Squares[s].East() | bitboard.Squares[s].West()
		pawnConnected[piece.White][s] = attacks.Pawn[piece.Black][s] | phalanx
		pawnConnected[piece.Black][s] = attacks.Pawn[piece.White][s] | phalanx
	}
}

// relativeRank converts a board rank into the rank number counting
// from the given color's own back rank (0-indexed), the convention
// the PSQT and king-shelter tables are written in.
func relativeRank(us piece.Color, r square.Rank) square.Rank {
	if us == piece.White {
		return square.Rank1 - r
	}
	return r
}

// relativeRankOf is a convenience wrapper taking a square directly.
func relativeRankOf(us piece.Color, s square.Square) square.Rank {
	return relativeRank(us, s.Rank())
}

// relativeSquareIndex maps a board square to the flat, rank-major
// index (row 0 = own back rank, row 7 = promotion rank, file
// unchanged) used to index the PSQT and king shelter/storm tables,
// which are always written from the mover's own point of view.
func relativeSquareIndex(us piece.Color, s square.Square) int {
	return int(relativeRank(us, s.Rank()))*8 + int(s.File())
}

// relativeSquare32Index folds the board in half horizontally (so that
// the a/h, b/g, c/f and d/e files share a column) before applying the
// same relative-rank indexing, producing a 32-entry index used by the
// connected pawn bonus table.
func relativeSquare32Index(us piece.Color, s square.Square) int {
	file := int(s.File())
	if file > 3 {
		file = 7 - file
	}
	return int(relativeRank(us, s.Rank()))*4 + file
}

// mirrorFile folds a file in half around the center of the board,
// used by the king storm table which is indexed relative to the
// king's own file rather than the absolute file.
func mirrorFile(f square.File) square.File {
	if f > 3 {
		return 7 - f
	}
	return f
}

// squaresOfMatchingColour returns whiteSquares or blackSquares,
// whichever contains s.
func squaresOfMatchingColour(s square.Square) bitboard.Board {
	if whiteSquares.IsSet(s) {
		return whiteSquares
	}
	return blackSquares
}

// openFileCount returns the number of files which contain no pawn
// from the given bitboard of all pawns on the board.
func openFileCount(pawns bitboard.Board) int {
	open := 0
	for file := square.FileA; file <= square.FileH; file++ {
		if pawns&bitboard.Files[file] == bitboard.Empty {
			open++
		}
	}
	return open
}

// kingPawnFileDistance returns the smallest file distance between the
// king's file and any file containing a pawn of either color, or 7 if
// the board has no pawns at all (the same sentinel used elsewhere for
// "no pawn found").
func kingPawnFileDistance(pawns bitboard.Board, king square.Square) int {
	if pawns == bitboard.Empty {
		return 7
	}

	kf := int(king.File())
	best := 7
	for file := square.FileA; file <= square.FileH; file++ {
		if pawns&bitboard.Files[file] == bitboard.Empty {
			continue
		}
		d := kf - int(file)
		if d < 0 {
			d = -d
		}
		if d < best {
			best = d
		}
	}
	return best
}

// backmost returns the square occupied by bb which lies closest to
// us's own back rank - i.e. the least advanced piece of that color in
// bb. bb must not be empty.
func backmost(us piece.Color, bb bitboard.Board) square.Square {
	best := bb.FirstOne()
	bestRank := relativeRank(us, best.Rank())

	rest := bb &^ bitboard.Squares[best]
	for rest != bitboard.Empty {
		s := rest.Pop()
		r := relativeRank(us, s.Rank())
		if r < bestRank {
			best, bestRank = s, r
		}
	}
	return best
}

// distance returns the Chebyshev (king-move) distance between two
// squares, used to scale the passed pawn bonus by how close each side's
// king stands to the pawn.
func distance(a, b square.Square) int {
	fd := int(a.File()) - int(b.File())
	if fd < 0 {
		fd = -fd
	}
	rd := int(a.Rank()) - int(b.Rank())
	if rd < 0 {
		rd = -rd
	}
	if fd > rd {
		return fd
	}
	return rd
}
