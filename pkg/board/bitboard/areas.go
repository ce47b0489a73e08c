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

package bitboard

import (
	"github.com/kennyfrc/Ethereal/pkg/board/piece"
	"github.com/kennyfrc/Ethereal/pkg/board/square"
)

// KingAreas contains, for each color and king square, the area of squares
// considered "near" the king for king-safety evaluation: the squares a
// king attacks from that square, plus the square itself, extended one
// rank further toward the enemy side (north for White, south for Black)
// and, for a king on the A or H file, one file further toward the centre.
var KingAreas [piece.ColorN][square.N]Board

// AdjacentFiles contains, for each file, the bitboard of the files
// immediately to its east and west.
var AdjacentFiles [square.FileN]Board

// ForwardRanksMask contains, for each color and rank, the bitboard of
// every rank from that rank onward in that color's direction of travel,
// inclusive.
var ForwardRanksMask [piece.ColorN][square.RankN]Board

// ForwardFileMask contains, for each color and square, that square and
// the part of its file which lies ahead of it from that color's perspective.
var ForwardFileMask [piece.ColorN][square.N]Board

// PassedPawnMask contains, for each color and square, the set of squares
// which must be free of enemy pawns for a pawn of that color on that
// square to be a passed pawn: its own file and the two adjacent files,
// strictly ahead of that square's rank.
var PassedPawnMask [piece.ColorN][square.N]Board

func init() {
	for s := square.A8; s <= square.H1; s++ {
		area := kingAttacksFrom(s) | Board(1)<<uint(s)

		KingAreas[piece.White][s] = area | area.North()
		KingAreas[piece.Black][s] = area | area.South()

		switch s.File() {
		case square.FileA:
			KingAreas[piece.White][s] |= KingAreas[piece.White][s].East()
			KingAreas[piece.Black][s] |= KingAreas[piece.Black][s].East()
		case square.FileH:
			KingAreas[piece.White][s] |= KingAreas[piece.White][s].West()
			KingAreas[piece.Black][s] |= KingAreas[piece.Black][s].West()
		}
	}

	for file := square.FileA; file <= square.FileH; file++ {
		bb := Files[file]
		AdjacentFiles[file] = bb.East() | bb.West()
	}

	for rank := square.Rank(0); rank < square.RankN; rank++ {
		for r := rank; r >= 0; r-- {
			ForwardRanksMask[piece.White][rank] |= Ranks[r]
		}

		for r := rank; r < square.RankN; r++ {
			ForwardRanksMask[piece.Black][rank] |= Ranks[r]
		}
	}

	for s := square.A8; s <= square.H1; s++ {
		span := AdjacentFiles[s.File()] | Files[s.File()]
		PassedPawnMask[piece.White][s] = ForwardRanksMask[piece.White][s.Rank()] &^
			Ranks[s.Rank()] & span
		PassedPawnMask[piece.Black][s] = ForwardRanksMask[piece.Black][s.Rank()] &^
			Ranks[s.Rank()] & span

		ForwardFileMask[piece.White][s] = Files[s.File()] & ForwardRanksMask[piece.White][s.Rank()]
		ForwardFileMask[piece.Black][s] = Files[s.File()] & ForwardRanksMask[piece.Black][s.Rank()]
	}
}

// kingAttacksFrom computes the squares a king standing on s attacks,
// duplicated from the move/attacks package (which cannot be imported here
// without introducing an import cycle, since it itself imports bitboard).
// It is computed directly rather than via Squares[s]: init() order across
// files in a package is unspecified, and Squares is populated by
// useful.go's own init().
func kingAttacksFrom(s square.Square) Board {
	king := Board(1) << uint(s)

	north := king.North()
	south := king.South()
	east := king.East()
	west := king.West()

	attacks := north | south | east | west
	attacks |= north.East() | north.West()
	attacks |= south.East() | south.West()

	return attacks
}
