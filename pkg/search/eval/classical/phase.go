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
	"github.com/kennyfrc/Ethereal/internal/util"
	"github.com/kennyfrc/Ethereal/pkg/board/piece"
	"github.com/kennyfrc/Ethereal/pkg/search/eval"
)

// material phase weight of each piece type (the Fruit method): queens
// count four, rooks two, and minors one toward the opening side of the
// phase. Pawns and kings carry no phase weight.
const (
	knightPhaseWeight eval.Eval = 1
	bishopPhaseWeight eval.Eval = 1
	rookPhaseWeight   eval.Eval = 2
	queenPhaseWeight  eval.Eval = 4
)

// phaseWeight maps each piece type to its material phase weight.
var phaseWeight = [piece.TypeN]eval.Eval{
	piece.Knight: knightPhaseWeight,
	piece.Bishop: bishopPhaseWeight,
	piece.Rook:   rookPhaseWeight,
	piece.Queen:  queenPhaseWeight,
}

// materialPhaseTotal is the summed phase weight of the starting
// position's material: both sides' minors, rooks, and queens.
const materialPhaseTotal = 4*knightPhaseWeight + 4*bishopPhaseWeight +
	4*rookPhaseWeight + 2*queenPhaseWeight

// MaxPhase is the upper bound of the normalized game phase: 0 is the
// starting position with all material on the board, MaxPhase a bare
// king endgame.
const MaxPhase eval.Eval = 256

// normalizePhase converts a summed material phase weight into the
// normalized [0, MaxPhase] game phase used to taper the evaluation.
// Material beyond the starting position's (from promotions) clamps to
// the opening side of the scale.
func normalizePhase(material eval.Eval) eval.Eval {
	remaining := util.Max(materialPhaseTotal-material, 0)
	return (remaining*MaxPhase + 12) / materialPhaseTotal
}
