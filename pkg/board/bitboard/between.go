// Copyright © 2022 Rak Laptudirm <rak@laptudirm.com>
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

import "github.com/kennyfrc/Ethereal/pkg/board/square"

// Between contains bitboards of the path of squares between any two given
// squares, exclusive of both endpoints. It is empty if the two squares do
// not share a file, rank, diagonal, or anti-diagonal.
var Between [square.N][square.N]Board

func init() {
	for s1 := square.A8; s1 <= square.H1; s1++ {
		for s2 := square.A8; s2 <= square.H1; s2++ {
			// computed directly rather than via Squares[]: init() order
			// across files in a package is unspecified, and Squares is
			// populated by useful.go's own init().
			sqs := Board(1)<<uint(s1) | Board(1)<<uint(s2)

			var mask Board
			switch {
			case s1.File() == s2.File():
				mask = Files[s1.File()]
			case s1.Rank() == s2.Rank():
				mask = Ranks[s1.Rank()]
			case s1.Diagonal() == s2.Diagonal():
				mask = Diagonals[s1.Diagonal()]
			case s1.AntiDiagonal() == s2.AntiDiagonal():
				mask = AntiDiagonals[s1.AntiDiagonal()]
			default:
				// the squares share none of the above, so the path
				// between them is Empty (the zero value).
				continue
			}

			Between[s1][s2] = Hyperbola(s1, sqs, mask) & Hyperbola(s2, sqs, mask)
		}
	}
}
