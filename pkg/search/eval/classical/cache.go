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
	"math/bits"

	"github.com/kennyfrc/Ethereal/pkg/board"
	"github.com/kennyfrc/Ethereal/pkg/board/bitboard"
	"github.com/kennyfrc/Ethereal/pkg/board/piece"
	"github.com/kennyfrc/Ethereal/pkg/board/zobrist"
	"github.com/kennyfrc/Ethereal/pkg/search/eval"
)

// pawnKingHash computes a hash of a position's pawn and king placement
// only, by XORing the same per-piece-per-square zobrist keys the
// board's own hash is built from, filtered down to pawns and kings.
// The board package exposes no separate pawn hash, so it is derived
// here the same way the board computes its full Hash field.
func pawnKingHash(b *board.Board) zobrist.Key {
	var key zobrist.Key

	for _, c := range [piece.ColorN]piece.Color{piece.White, piece.Black} {
		pawns := b.PawnsBB(c)
		for pawns != bitboard.Empty {
			key ^= zobrist.PieceSquare[piece.New(piece.Pawn, c)][pawns.Pop()]
		}

		kingSq := b.KingBB(c).FirstOne()
		key ^= zobrist.PieceSquare[piece.New(piece.King, c)][kingSq]
	}

	return key
}

// pawnKingEntry is a cached summary of the structural, board-geometry
// pawn and king evaluation: everything evaluatePawns and
// evaluateKingsPawns compute that depends only on pawn and king
// placement, not on the other pieces.
type pawnKingEntry struct {
	hash    zobrist.Key
	valid   bool
	passed  bitboard.Board
	eval    Score // packed as White minus Black; pkeval[Black] is always 0 on a hit
	safetyW Score
	safetyB Score
}

// pawnKingCache is a small direct-mapped cache of pawnKingEntry, with
// the same fixed-size, hash-indexed layout as the search package's
// transposition table; unlike that table, a store always replaces the
// slot's previous entry.
type pawnKingCache struct {
	table []pawnKingEntry
}

func newPawnKingCache(entries int) *pawnKingCache {
	return &pawnKingCache{table: make([]pawnKingEntry, entries)}
}

func (c *pawnKingCache) index(hash zobrist.Key) uint {
	index, _ := bits.Mul(uint(hash), uint(len(c.table)))
	return index
}

func (c *pawnKingCache) probe(hash zobrist.Key) (*pawnKingEntry, bool) {
	entry := &c.table[c.index(hash)]
	return entry, entry.valid && entry.hash == hash
}

func (c *pawnKingCache) store(hash zobrist.Key, passed bitboard.Board, eval, safetyW, safetyB Score) {
	c.table[c.index(hash)] = pawnKingEntry{
		hash: hash, valid: true, passed: passed,
		eval: eval, safetyW: safetyW, safetyB: safetyB,
	}
}

// evalEntry is a cached final, White-POV evaluation for a full
// position, keyed by the board's own zobrist hash.
type evalEntry struct {
	hash  zobrist.Key
	valid bool
	value eval.Eval
}

// evalCache is the full-position counterpart of pawnKingCache.
type evalCache struct {
	table []evalEntry
}

func newEvalCache(entries int) *evalCache {
	return &evalCache{table: make([]evalEntry, entries)}
}

func (c *evalCache) index(hash zobrist.Key) uint {
	index, _ := bits.Mul(uint(hash), uint(len(c.table)))
	return index
}

func (c *evalCache) probe(hash zobrist.Key) (eval.Eval, bool) {
	entry := &c.table[c.index(hash)]
	return entry.value, entry.valid && entry.hash == hash
}

func (c *evalCache) store(hash zobrist.Key, value eval.Eval) {
	c.table[c.index(hash)] = evalEntry{hash: hash, valid: true, value: value}
}

// defaultCacheEntries sizes both caches; these are per-search-thread
// scratch structures, so a modest fixed size is used rather than an
// mb-configurable size like the search transposition table.
const defaultCacheEntries = 1 << 14

func newPawnKingCacheDefault() *pawnKingCache { return newPawnKingCache(defaultCacheEntries) }
func newEvalCacheDefault() *evalCache         { return newEvalCache(defaultCacheEntries) }
