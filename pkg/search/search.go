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

// Package search implements various functions used to search a
// position for the best move.
package search

import (
	"errors"

	"github.com/kennyfrc/Ethereal/internal/util"
	"github.com/kennyfrc/Ethereal/pkg/board"
	"github.com/kennyfrc/Ethereal/pkg/board/move"
	"github.com/kennyfrc/Ethereal/pkg/board/piece"
	"github.com/kennyfrc/Ethereal/pkg/board/square"
	"github.com/kennyfrc/Ethereal/pkg/search/eval"
	"github.com/kennyfrc/Ethereal/pkg/search/eval/classical"
	"github.com/kennyfrc/Ethereal/pkg/search/time"
	"github.com/kennyfrc/Ethereal/pkg/search/tt"
)

// maximum depth to search to
const MaxDepth = 256

// NewContext creates a new Context with a transposition table of hashMB
// megabytes. report is called with a Report every time iterativeDeepening
// completes a depth, which the caller can use to print UCI info lines.
func NewContext(report func(Report), hashMB int) *Context {
	return &Context{
		tt:      tt.NewTable(hashMB),
		stopped: true,
		report:  report,
	}
}

// Context stores various options, state, and debug variables regarding a
// particular search. During multiple searches on the same position, the
// internal board (*Context).Board should be switched out, while a brand
// new Context should be used for different games.
type Context struct {
	// search state
	Board   *board.Board
	tt      *tt.Table
	depth   int
	stopped bool

	// static evaluation state: the evaluator owns the pawn-king and
	// whole-position evaluation caches, which persist across searches
	// on this context, and evalStack records the static evaluation at
	// each ply so a null move can reuse the previous ply's result
	evaluator classical.EfficientlyUpdatable
	evalStack [move.MaxN]eval.Eval

	// principal variation of the most recently completed iteration
	pv      move.Variation
	pvScore eval.Eval

	// move ordering heuristics
	killers [MaxDepth][2]move.Move
	history [piece.ColorN][square.N][square.N]eval.Move

	// stats
	stats Stats

	// search limits
	limits Limits
	time   time.Manager

	// report is called after every completed iterative deepening
	// iteration with a Report describing the search so far.
	report func(Report)
}

// ResizeTT resizes the context's transposition table to mbs megabytes.
func (search *Context) ResizeTT(mbs int) {
	search.tt.Resize(mbs)
}

// Search initializes the context for a new search and calls the main
// iterative deepening function. It checks if the position is illegal
// and cleans up the context after the search finishes.
func (search *Context) Search(limits Limits) (move.Variation, eval.Eval, error) {
	search.start(limits)
	defer search.Stop()

	// illegal position check; king can be captured
	if search.Board.IsInCheck(search.Board.SideToMove.Other()) {
		return move.Variation{}, eval.Inf, errors.New("search move: position is illegal")
	}

	pv, score := search.iterativeDeepening()
	return pv, score, nil
}

// InProgress reports whether a search is in progress on the given context.
func (search *Context) InProgress() bool {
	return !search.stopped
}

// Stop stops any ongoing search on the given context. The main search
// function will immediately return after this function is called.
func (search *Context) Stop() {
	search.stopped = true
}

// start initializes search variables during the start of a search.
func (search *Context) start(limits Limits) {
	// init limits
	limits.Depth = util.Min(limits.Depth, MaxDepth)
	search.UpdateLimits(limits)

	// reset counters
	search.stats = Stats{}
	search.killers = [MaxDepth][2]move.Move{}

	// start search
	search.stopped = false // search not stopped
}

// score returns the static evaluation of the current context's internal
// board, from the perspective of the side to move. Any changes to the
// evaluation function should be done here.
func (search *Context) score() eval.Eval {
	b := search.Board

	// a null move only passes the turn, so the previous ply's result
	// can be flipped instead of evaluating from scratch
	if b.Plys > 0 && b.History[b.Plys-1].Move == move.Null {
		score := -search.evalStack[b.Plys-1] + 2*classical.Tempo
		search.evalStack[b.Plys] = score
		return score
	}

	search.evaluator.Board = b
	score := search.evaluator.Accumulate(b.SideToMove)
	search.evalStack[b.Plys] = score
	return score
}

// draw returns a randomized draw score to prevent threefold-repetition
// blindness while searching.
func (search *Context) draw() eval.Eval {
	return eval.RandDraw(search.stats.Nodes)
}

// String renders the context's current position as ascii art, along
// with its fen string and zobrist key.
func (search *Context) String() string {
	return search.Board.String()
}
