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

package search

import (
	"github.com/kennyfrc/Ethereal/internal/util"
	"github.com/kennyfrc/Ethereal/pkg/board/move"
	"github.com/kennyfrc/Ethereal/pkg/search/eval"
)

// killer and quiet-history ordering scores slot in below the capture
// range, so that the order is pv move, captures by MVV-LVA, killers,
// and finally quiets by history.
const (
	killerOneScore eval.Move = 90
	killerTwoScore eval.Move = 89
)

// orderMove builds the move ordering function for a node: the pv/tt
// move first, captures and promotions by MVV-LVA, the node's killer
// moves next, and remaining quiets by their history score.
func (search *Context) orderMove(plys int, pv move.Move) eval.MoveFunc {
	base := eval.OfMove(search.Board, pv)

	return func(m move.Move) eval.Move {
		if score := base(m); score != eval.DefaultMove {
			return score
		}

		switch m {
		case search.killers[plys][0]:
			return killerOneScore
		case search.killers[plys][1]:
			return killerTwoScore
		}

		// compress the history score below the killer scores
		return search.history[search.Board.SideToMove][m.Source()][m.Target()] >> 9
	}
}

// storeKiller tries to store the given move from the given depth as one
// of the two killer moves.
func (search *Context) storeKiller(plys int, killer move.Move) {
	if !killer.IsCapture() && killer != search.killers[plys][0] {
		// different move in killer 1
		// move it to killer 2 position
		search.killers[plys][1] = search.killers[plys][0]
		search.killers[plys][0] = killer // new killer 1
	}
}

// updateHistory updates the history score of the given move with the given
// bonus. It also verifies that the move is a quiet move.
func (search *Context) updateHistory(m move.Move, bonus eval.Move) {
	if !m.IsCapture() {
		entry := &search.history[search.Board.SideToMove][m.Source()][m.Target()]
		// computed in int, since the product of entry and bonus overflows uint16
		e, b := int(*entry), int(bonus)
		*entry = eval.Move(e + b - e*util.Abs(b)/32768)
	}
}

// depthBonus returns the the history bonus for a particular depth.
func depthBonus(depth int) eval.Move {
	return eval.Move(util.Min(2000, depth*155))
}

// seeMargins returns the see pruning thresholds for the given depth.
func seeMargins(depth int) (quiet, noisy eval.Eval) {
	quiet = eval.Eval(-64 * depth)
	noisy = eval.Eval(-19 * depth * depth)
	return quiet, noisy
}
