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

// Package board implements a complete chess board along with valid move
// generation and other related utilities.
package board

import (
	"fmt"

	"github.com/kennyfrc/Ethereal/pkg/board/bitboard"
	"github.com/kennyfrc/Ethereal/pkg/board/mailbox"
	"github.com/kennyfrc/Ethereal/pkg/board/move"
	"github.com/kennyfrc/Ethereal/pkg/board/move/attacks"
	"github.com/kennyfrc/Ethereal/pkg/board/move/castling"
	"github.com/kennyfrc/Ethereal/pkg/board/piece"
	"github.com/kennyfrc/Ethereal/pkg/board/square"
	"github.com/kennyfrc/Ethereal/pkg/board/zobrist"
)

// Board represents the state of a chessboard at a given position.
type Board struct {
	// position data
	Hash     zobrist.Key
	Position mailbox.Board // 8x8 for fast lookup
	PieceBBs [piece.TypeN]bitboard.Board
	ColorBBs [piece.ColorN]bitboard.Board

	Kings [piece.ColorN]square.Square

	SideToMove      piece.Color
	EnPassantTarget square.Square
	CastlingRights  castling.Rights

	// move counters
	Plys      int
	FullMoves int
	DrawClock int

	// game data
	History [move.MaxN]Undo

	// scratch data recalculated by InitBitboards at the start of every
	// GenerateMoves/evaluation call; not incrementally maintained by
	// MakeMove/UnmakeMove.

	Friends bitboard.Board // pieces of the side to move
	Enemies bitboard.Board // pieces of the opponent

	// precalculated Friends | Enemies
	Occupied bitboard.Board

	// squares a non-king piece can legally move to: ^Friends & CheckMask
	Target bitboard.Board

	// check information, see CalculateCheckmask
	CheckN    int
	CheckMask bitboard.Board

	// pinned piece information, see CalculatePinmask
	PinnedD  bitboard.Board
	PinnedHV bitboard.Board

	// squares attacked by the side not to move
	SeenByEnemy bitboard.Board
}

// Undo stores the information necessary to unmake a move that cannot be
// trivially recalculated, allowing MakeMove/UnmakeMove to run without
// allocation.
type Undo struct {
	Move            move.Move
	CastlingRights  castling.Rights
	CapturedPiece   piece.Piece
	EnPassantTarget square.Square
	DrawClock       int
	Hash            zobrist.Key
}

// EfficientlyUpdatable is implemented by evaluation functions which
// maintain their own incrementally-updatable state alongside a Board by
// observing every piece placed and removed.
type EfficientlyUpdatable interface {
	FillSquare(square.Square, piece.Piece)
	ClearSquare(square.Square, piece.Piece)
}

// String converts a Board into a human readable string.
func (b Board) String() string {
	return fmt.Sprintf("%s\nFen: %s\nKey: %X\n", b.Position, b.FEN(), b.Hash)
}

// IsDraw reports whether the current position is a draw either by the
// 50-move rule or by repetition. Threefold repetition isn't distinguished
// from a single repetition, since both are scored as a draw during search.
func (b *Board) IsDraw() bool {
	return b.DrawClock >= 100 || b.IsRepetition()
}

// IsRepetition reports whether the current position has occurred earlier
// in the game, probing history back to the last irreversible move (a pawn
// push or capture), beyond which no repetition is possible.
func (b *Board) IsRepetition() bool {
	depth := b.Plys - b.DrawClock
	if depth < 0 {
		depth = 0
	}

	for i := b.Plys - 2; i >= depth; i -= 2 {
		if b.History[i].Hash == b.Hash {
			return true
		}
	}

	return false
}

// AllOccupied returns the bitboard of every occupied square, regardless of
// color. Unlike the Occupied field, which is only valid after InitBitboards,
// this is always safe to call.
func (b *Board) AllOccupied() bitboard.Board {
	return b.ColorBBs[piece.White] | b.ColorBBs[piece.Black]
}

// ClearSquare removes whatever piece occupies the given square from the
// Board, updating the bitboards, mailbox, and Zobrist hash.
func (b *Board) ClearSquare(s square.Square) {
	p := b.Position[s]

	b.ColorBBs[p.Color()].Unset(s)
	b.PieceBBs[p.Type()].Unset(s)
	b.Position[s] = piece.NoPiece
	b.Hash ^= zobrist.PieceSquare[p][s]
}

// FillSquare places the given piece on the given square of the Board,
// updating the bitboards, mailbox, and Zobrist hash.
func (b *Board) FillSquare(s square.Square, p piece.Piece) {
	c := p.Color()
	t := p.Type()

	b.ColorBBs[c].Set(s)

	if t == piece.King {
		b.Kings[c] = s
	}

	b.PieceBBs[t].Set(s)
	b.Position[s] = p
	b.Hash ^= zobrist.PieceSquare[p][s]
}

// IsInCheck reports whether the king of the given color is currently
// attacked.
func (b *Board) IsInCheck(c piece.Color) bool {
	return b.IsAttacked(b.Kings[c], c.Other())
}

// IsAttacked reports whether the given square is attacked by any piece of
// the given color.
func (b *Board) IsAttacked(s square.Square, them piece.Color) bool {
	occ := b.AllOccupied()

	if attacks.Pawn[them.Other()][s]&b.Pawns(them) != bitboard.Empty {
		return true
	}

	if attacks.Knight[s]&b.Knights(them) != bitboard.Empty {
		return true
	}

	if attacks.King[s]&b.King(them) != bitboard.Empty {
		return true
	}

	queens := b.Queens(them)

	if attacks.Bishop(s, occ)&(b.Bishops(them)|queens) != bitboard.Empty {
		return true
	}

	return attacks.Rook(s, occ)&(b.Rooks(them)|queens) != bitboard.Empty
}

// DiscoveredAttacks returns the enemy rooks and bishops which do not
// attack the given square directly but would if the piece blocking their
// ray were to move, exposing a discovered attack against it.
func (b *Board) DiscoveredAttacks(s square.Square, us piece.Color) bitboard.Board {
	them := us.Other()
	occ := b.AllOccupied()

	rAttacks := attacks.Rook(s, occ)
	bAttacks := attacks.Bishop(s, occ)

	rooks := b.Rooks(them) &^ rAttacks
	bishops := b.Bishops(them) &^ bAttacks

	return (rooks & attacks.Rook(s, occ&^rAttacks)) |
		(bishops & attacks.Bishop(s, occ&^bAttacks))
}

func (b *Board) Pawns(c piece.Color) bitboard.Board {
	return b.PieceBBs[piece.Pawn] & b.ColorBBs[c]
}

func (b *Board) Knights(c piece.Color) bitboard.Board {
	return b.PieceBBs[piece.Knight] & b.ColorBBs[c]
}

func (b *Board) Bishops(c piece.Color) bitboard.Board {
	return b.PieceBBs[piece.Bishop] & b.ColorBBs[c]
}

func (b *Board) Rooks(c piece.Color) bitboard.Board {
	return b.PieceBBs[piece.Rook] & b.ColorBBs[c]
}

func (b *Board) Queens(c piece.Color) bitboard.Board {
	return b.PieceBBs[piece.Queen] & b.ColorBBs[c]
}

func (b *Board) King(c piece.Color) bitboard.Board {
	return b.PieceBBs[piece.King] & b.ColorBBs[c]
}

// PawnsBB, KnightsBB, BishopsBB, RooksBB, QueensBB, and KingBB are the
// bitboard-suffixed spellings of the piece-type accessors, kept for
// evaluation code which reads many piece types side by side and favours
// the explicit suffix for clarity.
func (b *Board) PawnsBB(c piece.Color) bitboard.Board   { return b.Pawns(c) }
func (b *Board) KnightsBB(c piece.Color) bitboard.Board { return b.Knights(c) }
func (b *Board) BishopsBB(c piece.Color) bitboard.Board { return b.Bishops(c) }
func (b *Board) RooksBB(c piece.Color) bitboard.Board   { return b.Rooks(c) }
func (b *Board) QueensBB(c piece.Color) bitboard.Board  { return b.Queens(c) }
func (b *Board) KingBB(c piece.Color) bitboard.Board    { return b.King(c) }

// InitBitboards (re)calculates all of the scratch bitboards used by move
// generation and evaluation: occupancy, check-mask, pin-masks, and the
// squares seen by the side not to move. It must be called before
// GenerateMoves or any evaluation pass that reads the scratch fields.
func (b *Board) InitBitboards() {
	us := b.SideToMove
	them := us.Other()

	b.Friends = b.ColorBBs[us]
	b.Enemies = b.ColorBBs[them]
	b.Occupied = b.Friends | b.Enemies

	b.calculateCheckmask()
	b.calculatePinmask()

	b.SeenByEnemy = b.SeenSquares(them)

	b.Target = ^b.Friends & b.CheckMask
}

// calculateCheckmask calculates the check-mask of the current board state,
// along with the number of checkers.
//
// A checker is an enemy piece which is directly checking the king. The
// number of checkers can be a maximum of two (double check).
//
// The check-mask is defined as all the squares to which if a friendly
// piece is moved to will block all checks. This is defined as empty for
// double check, the checking piece and, if the checker is a sliding piece,
// the squares between the king and the checker. The bitboard is universe
// if the king is not in check.
func (b *Board) calculateCheckmask() {
	us := b.SideToMove
	them := us.Other()

	b.CheckN = 0
	b.CheckMask = bitboard.Empty

	kingSq := b.Kings[us]

	pawns := b.Pawns(them) & attacks.Pawn[us][kingSq]
	knights := b.Knights(them) & attacks.Knight[kingSq]
	bishops := (b.Bishops(them) | b.Queens(them)) & attacks.Bishop(kingSq, b.Occupied)
	rooks := (b.Rooks(them) | b.Queens(them)) & attacks.Rook(kingSq, b.Occupied)

	// a pawn and a knight cannot be checking the king at the same time as
	// they are not sliding pieces, so discovered attacks are impossible
	switch {
	case pawns != bitboard.Empty:
		b.CheckMask |= pawns
		b.CheckN++

	case knights != bitboard.Empty:
		b.CheckMask |= knights
		b.CheckN++
	}

	if bishops != bitboard.Empty {
		bishopSq := bishops.FirstOne()
		b.CheckMask |= bitboard.Between[kingSq][bishopSq] | bitboard.Squares[bishopSq]
		b.CheckN++
	}

	if b.CheckN < 2 && rooks != bitboard.Empty {
		if b.CheckN == 0 && rooks.Count() > 1 {
			// double check, don't set the check-mask
			b.CheckN = 2
		} else {
			rookSq := rooks.FirstOne()
			b.CheckMask |= bitboard.Between[kingSq][rookSq] | bitboard.Squares[rookSq]
			b.CheckN++
		}
	}

	if b.CheckN == 0 {
		b.CheckMask = bitboard.Universe
	}
}

// calculatePinmask calculates the horizontal/vertical and diagonal
// pin-masks. A pin-mask is the union of the ray between the king and a
// pinning piece (inclusive of the pinner) for every piece pinned in that
// direction.
func (b *Board) calculatePinmask() {
	us := b.SideToMove
	them := us.Other()

	kingSq := b.Kings[us]

	friends := b.ColorBBs[us]
	enemies := b.ColorBBs[them]

	b.PinnedD = bitboard.Empty
	b.PinnedHV = bitboard.Empty

	for rooks := (b.Rooks(them) | b.Queens(them)) & attacks.Rook(kingSq, enemies); rooks != bitboard.Empty; {
		rook := rooks.Pop()
		possiblePin := bitboard.Between[kingSq][rook] | bitboard.Squares[rook]

		if (possiblePin & friends).Count() == 1 {
			b.PinnedHV |= possiblePin
		}
	}

	for bishops := (b.Bishops(them) | b.Queens(them)) & attacks.Bishop(kingSq, enemies); bishops != bitboard.Empty; {
		bishopSq := bishops.Pop()
		possiblePin := bitboard.Between[kingSq][bishopSq] | bitboard.Squares[bishopSq]

		if (possiblePin & friends).Count() == 1 {
			b.PinnedD |= possiblePin
		}
	}
}

// SeenSquares returns a bitboard containing all the squares that are
// seen (attacked) by pieces of the given color. The enemy king is not
// considered as a sliding ray blocker since it has to move away from the
// attack, exposing the squares it blocked.
func (b *Board) SeenSquares(by piece.Color) bitboard.Board {
	pawns := b.Pawns(by)
	knights := b.Knights(by)
	bishops := b.Bishops(by)
	rooks := b.Rooks(by)
	queens := b.Queens(by)
	kingSq := b.Kings[by]

	blockers := b.AllOccupied() &^ b.King(by.Other())

	seen := attacks.PawnsLeft(pawns, by) | attacks.PawnsRight(pawns, by)

	for knights != bitboard.Empty {
		from := knights.Pop()
		seen |= attacks.Knight[from]
	}

	for bishops != bitboard.Empty {
		from := bishops.Pop()
		seen |= attacks.Bishop(from, blockers)
	}

	for rooks != bitboard.Empty {
		from := rooks.Pop()
		seen |= attacks.Rook(from, blockers)
	}

	for queens != bitboard.Empty {
		from := queens.Pop()
		seen |= attacks.Queen(from, blockers)
	}

	seen |= attacks.King[kingSq]

	return seen
}
