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

package search

import (
	"github.com/kennyfrc/Ethereal/internal/util"
	"github.com/kennyfrc/Ethereal/pkg/board/move"
	"github.com/kennyfrc/Ethereal/pkg/search/eval"
)

// quiescence search is a type of limited search which only evaluates
// 'quiet' positions, i.e. positions with no tactical moves like captures
// or promotions. This search is needed to avoid the horizon effect, where
// a search cut off in the middle of a tactical sequence misjudges the
// position.
// https://www.chessprogramming.org/Quiescence_Search
func (search *Context) quiescence(plys int, alpha, beta eval.Eval) eval.Eval {
	search.stats.Nodes++

	if search.Board.IsDraw() {
		return search.draw()
	}

	score := search.score() // standing pat
	alpha = util.Max(alpha, score)
	if alpha >= beta {
		return score
	}

	moves := search.Board.GenerateMoves()
	if len(moves) == 0 {
		if search.Board.IsInCheck(search.Board.SideToMove) {
			// prefer the longer lines if getting mated, and vice versa
			return eval.MatedIn(plys)
		}

		return eval.Draw // stalemate
	}

	list := move.ScoreMoves(moves, eval.OfMove(search.Board, move.Null))
	for i := 0; i < list.Length; i++ {
		m := list.PickMove(i)

		if !m.IsCapture() && !m.IsPromotion() {
			continue
		}

		// skip captures which lose material outright
		if m.IsCapture() && !eval.SEE(search.Board, m, 0) {
			continue
		}

		search.Board.MakeMove(m)
		curr := -search.quiescence(plys+1, -beta, -alpha)
		search.Board.UnmakeMove()

		score = util.Max(score, curr)
		alpha = util.Max(alpha, score)

		if alpha >= beta {
			break
		}
	}

	return score
}
