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
	"github.com/kennyfrc/Ethereal/pkg/board/piece"
	"github.com/kennyfrc/Ethereal/pkg/board/square"
)

// material values of every piece type, middle game and end game.
var (
	pawnValue   = S(100, 130)
	knightValue = S(330, 330)
	bishopValue = S(340, 500)
	rookValue   = S(540, 515)
	queenValue  = S(1000, 1000)
)

// pawnPSQT, knightPSQT, ... hold the raw, rank-major (row 0 = own back
// rank) piece-square tables. They are indexed through
// relativeSquareIndex, never directly by a square.Square.
var pawnPSQT = [64]Score{
	S(0, 0), S(0, 0), S(0, 0), S(0, 0), S(0, 0), S(0, 0), S(0, 0), S(0, 0),
	S(0, 0), S(0, 0), S(0, 0), S(0, 0), S(0, 0), S(0, 0), S(0, 0), S(0, 0),
	S(-10, 10), S(-10, 5), S(0, -5), S(10, -15), S(10, -15), S(0, -5), S(-10, 5), S(-10, 10),
	S(-10, 15), S(-10, 15), S(10, -10), S(20, -20), S(20, -20), S(10, -10), S(-10, 15), S(-10, 15),
	S(-10, 20), S(-10, 20), S(10, -10), S(5, -20), S(5, -20), S(10, -10), S(-10, 20), S(-10, 20),
	S(-20, 40), S(-10, 40), S(10, 0), S(30, -10), S(30, -10), S(10, 0), S(-10, 40), S(-20, 40),
	S(-30, 60), S(-30, 0), S(40, 0), S(50, -10), S(50, -10), S(40, 0), S(-30, 0), S(-30, 60),
	S(0, 0), S(0, 0), S(0, 0), S(0, 0), S(0, 0), S(0, 0), S(0, 0), S(0, 0),
}

var knightPSQT = [64]Score{
	S(-20, -20), S(-20, -20), S(-20, -20), S(-20, -20), S(-20, -20), S(-20, -20), S(-20, -20), S(-20, -20),
	S(-20, -20), S(0, 0), S(0, 0), S(0, 0), S(0, 0), S(0, 0), S(0, 0), S(-20, -20),
	S(-20, -20), S(5, 0), S(10, 5), S(15, 20), S(15, 20), S(10, 5), S(5, 0), S(-20, -20),
	S(-20, -20), S(15, 30), S(20, 40), S(20, 50), S(20, 50), S(20, 40), S(15, 20), S(-20, -20),
	S(-20, -20), S(20, 30), S(30, 50), S(30, 60), S(30, 60), S(30, 50), S(20, 30), S(-20, -20),
	S(-20, -20), S(10, 30), S(20, 50), S(20, 60), S(20, 60), S(20, 50), S(10, 30), S(-20, -20),
	S(-20, -20), S(5, 5), S(5, 5), S(5, 5), S(5, 5), S(5, 5), S(5, 5), S(-20, -20),
	S(-150, -20), S(-100, -20), S(-100, -20), S(-30, -20), S(-30, -20), S(-100, -20), S(-100, -20), S(-150, -20),
}

var bishopPSQT = [64]Score{
	S(-20, -20), S(-10, -10), S(-10, -10), S(-10, -10), S(-10, -10), S(-10, -10), S(-10, -10), S(-20, -20),
	S(-10, -10), S(0, 0), S(0, 0), S(0, 0), S(0, 0), S(0, 0), S(0, 0), S(-10, -10),
	S(-10, -10), S(5, 0), S(10, 5), S(15, 15), S(15, 15), S(10, 5), S(5, 0), S(-10, -10),
	S(-10, -10), S(15, 20), S(15, 30), S(30, 50), S(30, 50), S(15, 30), S(15, 15), S(-10, -10),
	S(-10, -10), S(15, 20), S(20, 30), S(30, 50), S(30, 50), S(20, 30), S(15, 20), S(-10, -10),
	S(-10, -10), S(10, 20), S(15, 30), S(15, 30), S(15, 30), S(15, 30), S(10, 20), S(-10, -10),
	S(-10, -10), S(5, 5), S(5, 5), S(5, 5), S(5, 5), S(5, 5), S(5, 5), S(-10, -10),
	S(-20, -20), S(-10, -10), S(-10, -10), S(-30, -10), S(-30, -10), S(-10, -10), S(-10, -10), S(-20, -20),
}

var rookPSQT = [64]Score{
	S(-20, 0), S(0, 0), S(0, 0), S(0, 0), S(0, 0), S(0, 0), S(0, 0), S(-20, 0),
	S(-70, 0), S(0, 0), S(0, 0), S(0, 0), S(0, 0), S(0, 0), S(0, 0), S(-70, 0),
	S(-30, 0), S(0, 10), S(0, 0), S(0, 0), S(0, 0), S(0, 0), S(0, 0), S(-30, 0),
	S(-30, 20), S(0, 30), S(0, 30), S(0, 20), S(0, 20), S(0, 30), S(0, 30), S(-30, 20),
	S(-20, 40), S(0, 30), S(0, 30), S(0, 30), S(0, 30), S(0, 30), S(0, 30), S(-20, 40),
	S(-30, 40), S(0, 40), S(0, 40), S(0, 30), S(0, 30), S(0, 30), S(0, 30), S(-20, 40),
	S(20, 50), S(20, 50), S(20, 50), S(20, 50), S(20, 50), S(20, 50), S(20, 50), S(20, 50),
	S(40, 50), S(40, 50), S(40, 50), S(40, 50), S(40, 50), S(40, 50), S(40, 50), S(30, 50),
}

var queenPSQT = [64]Score{
	S(-20, -20), S(-10, -10), S(-10, -10), S(-10, -10), S(-10, -10), S(-10, -10), S(-10, -10), S(-20, -20),
	S(-10, -10), S(20, 20), S(20, 20), S(20, 20), S(20, 20), S(20, 20), S(20, 20), S(-10, -10),
	S(-10, -10), S(20, 20), S(20, 20), S(20, 20), S(20, 20), S(20, 20), S(20, 20), S(-10, -10),
	S(-10, -10), S(0, 10), S(10, 30), S(30, 50), S(30, 50), S(10, 30), S(0, 10), S(-10, -10),
	S(-10, -10), S(0, 10), S(10, 30), S(30, 50), S(30, 50), S(10, 30), S(0, 10), S(-10, -10),
	S(-10, -10), S(0, 5), S(5, 5), S(5, 5), S(5, 5), S(5, 5), S(0, 5), S(-10, -10),
	S(-10, -10), S(0, 5), S(5, 5), S(5, 5), S(5, 5), S(5, 5), S(0, 5), S(-10, -10),
	S(-20, -20), S(-10, -10), S(-10, -10), S(-30, -10), S(-30, -10), S(-10, -10), S(-10, -10), S(-20, -20),
}

var kingPSQT = [64]Score{
	S(80, -80), S(60, -50), S(0, 0), S(-10, -20), S(-10, -20), S(0, 0), S(50, -50), S(70, -80),
	S(0, 0), S(-20, 0), S(-40, 10), S(-40, 20), S(-40, 20), S(-40, 10), S(-20, 0), S(0, 0),
	S(-40, -10), S(-40, -10), S(-40, 10), S(-40, 30), S(-40, 30), S(-40, 10), S(-40, -10), S(-40, -10),
	S(-40, -40), S(-40, -30), S(-40, 10), S(-40, 40), S(-40, 40), S(-40, 10), S(-40, -30), S(-40, -30),
	S(-40, -10), S(-40, -30), S(-40, 10), S(-40, 40), S(-40, 40), S(-40, 10), S(-40, -30), S(-40, -10),
	S(-40, -30), S(-40, -20), S(-40, 0), S(-40, 0), S(-40, 0), S(-40, 0), S(-40, -20), S(-40, -40),
	S(-40, -90), S(-40, -20), S(-40, -10), S(-40, -40), S(-40, -30), S(-40, -20), S(-40, -20), S(-40, -110),
	S(-40, -150), S(-40, -90), S(-40, -70), S(-40, -30), S(-40, -50), S(-40, -70), S(-40, -90), S(-40, -150),
}

// psqt is the fully assembled, per-piece, per-board-square table
// combining material value and positional value for every piece on
// every square, built once at package init from the value + raw-table
// pairs above, with the black entries negated.
var psqt [piece.N][square.N]Score

func init() {
	for s := square.A8; s <= square.H1; s++ {
		white := relativeSquareIndex(piece.White, s)
		black := relativeSquareIndex(piece.Black, s)

		psqt[piece.New(piece.Pawn, piece.White)][s] = pawnValue + pawnPSQT[white]
		psqt[piece.New(piece.Knight, piece.White)][s] = knightValue + knightPSQT[white]
		psqt[piece.New(piece.Bishop, piece.White)][s] = bishopValue + bishopPSQT[white]
		psqt[piece.New(piece.Rook, piece.White)][s] = rookValue + rookPSQT[white]
		psqt[piece.New(piece.Queen, piece.White)][s] = queenValue + queenPSQT[white]
		psqt[piece.New(piece.King, piece.White)][s] = kingPSQT[white]

		psqt[piece.New(piece.Pawn, piece.Black)][s] = -pawnValue - pawnPSQT[black]
		psqt[piece.New(piece.Knight, piece.Black)][s] = -knightValue - knightPSQT[black]
		psqt[piece.New(piece.Bishop, piece.Black)][s] = -bishopValue - bishopPSQT[black]
		psqt[piece.New(piece.Rook, piece.Black)][s] = -rookValue - rookPSQT[black]
		psqt[piece.New(piece.Queen, piece.Black)][s] = -queenValue - queenPSQT[black]
		psqt[piece.New(piece.King, piece.Black)][s] = -kingPSQT[black]
	}
}
