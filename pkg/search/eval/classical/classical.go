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
	"github.com/kennyfrc/Ethereal/pkg/board"
	"github.com/kennyfrc/Ethereal/pkg/board/bitboard"
	"github.com/kennyfrc/Ethereal/pkg/board/move/attacks"
	"github.com/kennyfrc/Ethereal/pkg/board/piece"
	"github.com/kennyfrc/Ethereal/pkg/board/square"
	"github.com/kennyfrc/Ethereal/pkg/board/zobrist"
	"github.com/kennyfrc/Ethereal/pkg/search/eval"
)

// EfficientlyUpdatable is a classical, hand-crafted static evaluation
// function built around material, piece-square tables, mobility, and
// king safety, in the style of the engines this tree is descended from.
// It recomputes its full evaluation on every Accumulate call rather than
// truly maintaining an incremental accumulator, relying instead on a
// pawn-king hash table and a whole-position evaluation cache to avoid
// repeating the more expensive structural work across calls.
type EfficientlyUpdatable struct {
	// the board to evaluate
	Board *board.Board

	// evaluation tracing
	ShouldTrace bool
	Trace       EvaluationTrace

	// ScaleFactorOverride, if non-zero, replaces the computed endgame
	// scale factor for every position. It must be set before the first
	// Accumulate call, since cached evaluations are not invalidated.
	ScaleFactorOverride int

	// Phase is the normalized game phase of the last accumulated
	// position: 0 at the starting position, MaxPhase with bare kings.
	Phase eval.Eval

	pawnKingCache *pawnKingCache
	evalCache     *evalCache
	pkentry       *pawnKingEntry
	pkhash        zobrist.Key

	// occupancy bitboards, including the x-ray variants which let
	// bishops see through friendly bishops and queens, and rooks
	// through friendly rooks and queens, for mobility
	occupied      bitboard.Board
	occupiedMinus [piece.ColorN][piece.TypeN]bitboard.Board

	// king attackers information
	kingSquare          [piece.ColorN]square.Square
	kingAreas           [piece.ColorN]bitboard.Board // area near the king
	kingAttacksCount    [piece.ColorN]int            // attacks in the king area
	kingAttackersCount  [piece.ColorN]int            // attackers to the king area
	kingAttackersWeight [piece.ColorN]Score          // weighted sum of attacker piece types

	// various pawn bitboards
	pawnAttacks    [piece.ColorN]bitboard.Board // squares attacked by pawns
	pawnAttacksBy2 [piece.ColorN]bitboard.Board // squares attacked by 2 pawns
	rammedPawns    [piece.ColorN]bitboard.Board // pawns blocked by an enemy pawn
	blockedPawns   [piece.ColorN]bitboard.Board // pawns blocked by any piece

	// areas in which the mobility of the pieces matter
	mobilityAreas [piece.ColorN]bitboard.Board

	// various attack bitboards
	attacked    [piece.ColorN]bitboard.Board // squares attacked
	attackedBy2 [piece.ColorN]bitboard.Board // squares attacked twice
	attackedBy  [piece.ColorN][piece.TypeN]bitboard.Board

	// pawn/king-hash-cacheable structural evaluation, recomputed only
	// on a pawn-king cache miss
	passedPawns bitboard.Board
	pkeval      [piece.ColorN]Score
	pksafety    [piece.ColorN]Score
}

// compile time check that EfficientlyUpdatable implements
// eval.EfficientlyUpdatable
var _ eval.EfficientlyUpdatable = (*EfficientlyUpdatable)(nil)

// FillSquare adds the given piece to the given square of a chessboard.
// This evaluator recomputes its state from scratch in Accumulate, so
// incremental updates are not tracked here.
func (e *EfficientlyUpdatable) FillSquare(s square.Square, p piece.Piece) {
}

// ClearSquare removes the given piece from the given square.
func (e *EfficientlyUpdatable) ClearSquare(s square.Square, p piece.Piece) {
}

// Accumulate accumulates the efficiently updated variables into the
// evaluation of the position from the perspective of the given side.
func (e *EfficientlyUpdatable) Accumulate(stm piece.Color) eval.Eval {
	if e.pawnKingCache == nil {
		e.pawnKingCache = newPawnKingCacheDefault()
	}
	if e.evalCache == nil {
		e.evalCache = newEvalCacheDefault()
	}

	if !e.ShouldTrace {
		if cached, ok := e.evalCache.probe(e.Board.Hash); ok {
			if stm == piece.White {
				return Tempo + cached
			}
			return Tempo - cached
		}
	}

	e.initEvalInfo()

	score := e.evaluatePawns(piece.White) - e.evaluatePawns(piece.Black)

	// needs to be done after the pawn evaluation populated the attack
	// maps, but before the king safety evaluation reads pksafety
	e.evaluateKingsPawns(piece.White)
	e.evaluateKingsPawns(piece.Black)

	score += e.evaluateKnights(piece.White) - e.evaluateKnights(piece.Black)
	score += e.evaluateBishops(piece.White) - e.evaluateBishops(piece.Black)
	score += e.evaluateRooks(piece.White) - e.evaluateRooks(piece.Black)
	score += e.evaluateQueens(piece.White) - e.evaluateQueens(piece.Black)
	score += e.evaluateKings(piece.White) - e.evaluateKings(piece.Black)
	score += e.evaluatePassed(piece.White) - e.evaluatePassed(piece.Black)
	score += e.evaluateThreats(piece.White) - e.evaluateThreats(piece.Black)
	score += e.evaluateSpace(piece.White) - e.evaluateSpace(piece.Black)

	pkeval := e.pkeval[piece.White] - e.pkeval[piece.Black]
	score += pkeval + e.materialPSQT()
	score += e.evaluateClosedness()
	score += e.evaluateComplexity(score)

	if e.ShouldTrace {
		e.Trace.Evaluation = score
	}

	factor := e.evaluateScaleFactor(score)
	if e.ScaleFactorOverride != 0 {
		factor = e.ScaleFactorOverride
	}

	mg, eg := score.MG(), score.EG()
	final := (mg*(MaxPhase-e.Phase) + eg*e.Phase*eval.Eval(factor)/scaleNormal) / MaxPhase

	if !e.ShouldTrace {
		e.evalCache.store(e.Board.Hash, final)

		// store a new pawn-king entry if we did not have one
		if e.pkentry == nil {
			e.pawnKingCache.store(e.pkhash, e.passedPawns, pkeval,
				e.pksafety[piece.White], e.pksafety[piece.Black])
		}
	}

	if stm == piece.White {
		return Tempo + final
	}
	return Tempo - final
}

// initEvalInfo resets all scratch state and probes the pawn-king cache.
func (e *EfficientlyUpdatable) initEvalInfo() {
	if e.ShouldTrace {
		e.Trace = EvaluationTrace{}
	}

	white := e.Board.ColorBBs[piece.White]
	black := e.Board.ColorBBs[piece.Black]
	e.occupied = white | black

	whitePawns := e.Board.PawnsBB(piece.White)
	blackPawns := e.Board.PawnsBB(piece.Black)

	e.pawnAttacks[piece.White] = attacks.Pawns(whitePawns, piece.White)
	e.pawnAttacks[piece.Black] = attacks.Pawns(blackPawns, piece.Black)

	whiteUp := whitePawns.Up(piece.White)
	blackUp := blackPawns.Up(piece.Black)
	e.pawnAttacksBy2[piece.White] = whiteUp.East() & whiteUp.West()
	e.pawnAttacksBy2[piece.Black] = blackUp.East() & blackUp.West()

	e.rammedPawns[piece.White] = blackPawns.Up(piece.Black) & whitePawns
	e.rammedPawns[piece.Black] = whitePawns.Up(piece.White) & blackPawns
	e.blockedPawns[piece.White] = e.occupied.Down(piece.White) & whitePawns
	e.blockedPawns[piece.Black] = e.occupied.Down(piece.Black) & blackPawns

	for _, c := range [piece.ColorN]piece.Color{piece.White, piece.Black} {
		king := e.Board.KingBB(c).FirstOne()
		e.kingSquare[c] = king
		e.kingAreas[c] = bitboard.KingAreas[c][king]
		e.kingAttackersCount[c] = 0
		e.kingAttacksCount[c] = 0
		e.kingAttackersWeight[c] = 0

		// king attacks are resolved here so that evaluatePawns can
		// start setting up the attackedBy2 table
		e.attackedBy[c][piece.King] = attacks.King[king]
		e.attacked[c] = e.attackedBy[c][piece.King]
		e.attackedBy2[c] = bitboard.Empty

		e.attackedBy[c][piece.Pawn] = bitboard.Empty
		e.attackedBy[c][piece.Knight] = bitboard.Empty
		e.attackedBy[c][piece.Bishop] = bitboard.Empty
		e.attackedBy[c][piece.Rook] = bitboard.Empty
		e.attackedBy[c][piece.Queen] = bitboard.Empty
	}

	// exclude squares attacked by enemy pawns, our blocked pawns, and
	// our own king from the mobility areas
	e.mobilityAreas[piece.White] = ^(e.pawnAttacks[piece.Black] |
		e.Board.KingBB(piece.White) | e.blockedPawns[piece.White])
	e.mobilityAreas[piece.Black] = ^(e.pawnAttacks[piece.White] |
		e.Board.KingBB(piece.Black) | e.blockedPawns[piece.Black])

	whiteDiagonal := e.Board.BishopsBB(piece.White) | e.Board.QueensBB(piece.White)
	blackDiagonal := e.Board.BishopsBB(piece.Black) | e.Board.QueensBB(piece.Black)
	e.occupiedMinus[piece.White][piece.Bishop] = e.occupied ^ whiteDiagonal
	e.occupiedMinus[piece.Black][piece.Bishop] = e.occupied ^ blackDiagonal

	whiteLinear := e.Board.RooksBB(piece.White) | e.Board.QueensBB(piece.White)
	blackLinear := e.Board.RooksBB(piece.Black) | e.Board.QueensBB(piece.Black)
	e.occupiedMinus[piece.White][piece.Rook] = e.occupied ^ whiteLinear
	e.occupiedMinus[piece.Black][piece.Rook] = e.occupied ^ blackLinear

	e.pkhash = pawnKingHash(e.Board)
	if entry, ok := e.pawnKingCache.probe(e.pkhash); ok {
		e.pkentry = entry
		e.passedPawns = entry.passed
		e.pkeval[piece.White] = entry.eval
		e.pkeval[piece.Black] = 0
		e.pksafety[piece.White] = entry.safetyW
		e.pksafety[piece.Black] = entry.safetyB
	} else {
		e.pkentry = nil
		e.passedPawns = bitboard.Empty
		e.pkeval[piece.White] = 0
		e.pkeval[piece.Black] = 0
		e.pksafety[piece.White] = 0
		e.pksafety[piece.Black] = 0
	}
}

// materialPSQT sums the material and piece-square value of every piece
// on the board in a single pass, tallying the Fruit-method game phase
// alongside it.
func (e *EfficientlyUpdatable) materialPSQT() Score {
	score := Score(0)
	material := eval.Eval(0)

	rest := e.occupied
	for rest != bitboard.Empty {
		sq := rest.Pop()
		pc := e.Board.Position[sq]
		score += psqt[pc][sq]
		material += phaseWeight[pc.Type()]
	}

	e.Phase = normalizePhase(material)
	return score
}

// evaluatePawns computes the structural pawn evaluation for us:
// isolation, stacking, backwardness, connectivity, candidate passers and
// weak squares. Passed pawn identification feeds evaluatePassed
// separately. The attack-bitboard bookkeeping at the top always runs;
// everything else accumulates into pkeval (never the returned score) and
// is skipped entirely on a pawn-king cache hit, since it depends only on
// pawn and king placement.
func (e *EfficientlyUpdatable) evaluatePawns(us piece.Color) Score {
	them := us.Other()

	// store off pawn attacks for king safety and threat computations
	e.attackedBy2[us] |= e.pawnAttacks[us] & e.attacked[us]
	e.attacked[us] |= e.pawnAttacks[us]
	e.attackedBy[us][piece.Pawn] = e.pawnAttacks[us]

	e.kingAttacksCount[them] += (e.pawnAttacks[us] & e.kingAreas[them]).Count()

	// the pawn-king cache holds the rest of the pawn evaluation
	if e.pkentry != nil {
		return 0
	}

	myPawns := e.Board.PawnsBB(us)
	enemyPawns := e.Board.PawnsBB(them)
	pkeval := Score(0)

	rest := myPawns
	for rest != bitboard.Empty {
		sq := rest.Pop()
		file := sq.File()
		rank := relativeRankOf(us, sq)

		neighbors := myPawns & bitboard.AdjacentFiles[file]
		backup := myPawns & bitboard.PassedPawnMask[them][sq]
		stoppers := enemyPawns & bitboard.PassedPawnMask[us][sq]
		threats := enemyPawns & attacks.Pawn[us][sq]
		support := myPawns & attacks.Pawn[them][sq]

		push := bitboard.Squares[sq].Up(us)
		pushThreats := enemyPawns & attacks.Pawns(push, us)
		pushSupport := myPawns & attacks.Pawns(push, them)

		leftovers := stoppers ^ threats ^ pushThreats

		switch {
		case stoppers == bitboard.Empty:
			// save passed pawn information for later evaluation
			e.passedPawns |= bitboard.Squares[sq]

		case leftovers == bitboard.Empty && pushSupport.Count() >= pushThreats.Count():
			// the pawn becomes a passer by advancing a square and
			// exchanging our supporters with the remaining stoppers
			flag := 0
			if support.Count() >= threats.Count() {
				flag = 1
			}
			pkeval += Terms.PawnCandidatePasser[flag][rank]
		}

		// pawns able to capture another pawn are not isolated, as they
		// may deisolate by capturing or be traded away
		if threats == bitboard.Empty && neighbors == bitboard.Empty {
			pkeval += Terms.PawnIsolated[file]
		}

		// adjust the stacked penalty for pawns which appear to be
		// candidates to unstack, by capture or by a free advance
		if (bitboard.Files[file] & myPawns).Several() {
			flag := 0
			if (stoppers != bitboard.Empty && (threats != bitboard.Empty || neighbors != bitboard.Empty)) ||
				stoppers&^bitboard.ForwardFileMask[us][sq] != bitboard.Empty {
				flag = 1
			}
			pkeval += Terms.PawnStacked[flag][file]
		}

		switch {
		case neighbors != bitboard.Empty && pushThreats != bitboard.Empty && backup == bitboard.Empty:
			// backward pawns are not given a connected bonus
			flag := 0
			if bitboard.Files[file]&enemyPawns == bitboard.Empty {
				flag = 1
			}
			pkeval += Terms.PawnBackwards[flag][rank]

		case pawnConnected[us][sq]&myPawns != bitboard.Empty:
			pkeval += Terms.PawnConnected32[relativeSquare32Index(us, sq)]
		}

		// weak square attack bonus
		if outpostSquares[us][sq]&enemyPawns == bitboard.Empty &&
			e.pawnAttacks[us] != bitboard.Empty {
			outside := 0
			if edgeFiles.IsSet(sq) {
				outside = 1
			}
			pkeval += Terms.WeakSquareAttackedByPawn[outside]
		}
	}

	e.pkeval[us] = pkeval // save eval for the pawn-king hash
	return 0
}

// evaluateKingsPawns computes the pawn-structure-dependent king terms:
// file proximity to the nearest pawn, and the pawn shelter and storm on
// the files around the king. Everything accumulates into pkeval and
// pksafety, so the whole pass is skipped on a pawn-king cache hit.
func (e *EfficientlyUpdatable) evaluateKingsPawns(us piece.Color) {
	if e.pkentry != nil {
		return
	}

	them := us.Other()
	myPawns := e.Board.PawnsBB(us)
	enemyPawns := e.Board.PawnsBB(them)

	king := e.kingSquare[us]
	kingFile, kingRank := king.File(), king.Rank()

	// if there is no pawn at all, both kings get the same distance,
	// keeping the term neutral
	dist := kingPawnFileDistance(e.Board.PieceBBs[piece.Pawn], king)
	e.pkeval[us] += Terms.KingPawnFileProximity[dist]

	// pawn distance 7 denotes a missing pawn, since a distance of 7 is
	// not otherwise possible for a pawn at or ahead of the king
	for file := util.Max(kingFile-1, square.FileA); file <= util.Min(kingFile+1, square.FileH); file++ {
		forward := bitboard.Files[file] & bitboard.ForwardRanksMask[us][kingRank]

		ourDist := 7
		if ours := myPawns & forward; ours != bitboard.Empty {
			ourDist = util.Abs(int(kingRank) - int(backmost(us, ours).Rank()))
		}

		theirDist := 7
		if theirs := enemyPawns & forward; theirs != bitboard.Empty {
			theirDist = util.Abs(int(kingRank) - int(backmost(us, theirs).Rank()))
		}

		onKingFile := 0
		if file == kingFile {
			onKingFile = 1
		}
		e.pkeval[us] += Terms.KingShelter[onKingFile][file][ourDist]
		e.pksafety[us] += Terms.SafetyShelter[onKingFile][ourDist]

		// an enemy storming pawn is blocked when one of ours stands
		// directly in its path
		blocked := 0
		if ourDist != 7 && ourDist == theirDist-1 {
			blocked = 1
		}
		e.pkeval[us] += Terms.KingStorm[blocked][mirrorFile(file)][theirDist]
		e.pksafety[us] += Terms.SafetyStorm[blocked][theirDist]
	}
}

// evaluateKnights evaluates mobility, outposts, weak square occupation,
// and king-safety contributions of our knights.
func (e *EfficientlyUpdatable) evaluateKnights(us piece.Color) Score {
	them := us.Other()
	score := Score(0)

	knights := e.Board.KnightsBB(us)
	enemyPawns := e.Board.PawnsBB(them)

	for knights != bitboard.Empty {
		sq := knights.Pop()
		att := attacks.Knight[sq]

		e.attackedBy2[us] |= att & e.attacked[us]
		e.attacked[us] |= att
		e.attackedBy[us][piece.Knight] |= att

		outside := 0
		if edgeFiles.IsSet(sq) {
			outside = 1
		}

		// outpost bonus when the knight cannot be attacked by an enemy
		// pawn, a smaller bonus when it merely sits on or attacks such
		// a weak square
		switch {
		case outpostRanks[us].IsSet(sq) && outpostSquares[us][sq]&enemyPawns == bitboard.Empty:
			defended := 0
			if e.pawnAttacks[us].IsSet(sq) {
				defended = 1
			}
			score += Terms.KnightOutpost[outside][defended]

		case outpostSquares[us][sq]&enemyPawns == bitboard.Empty && att != bitboard.Empty:
			score += Terms.WeakSquareAttackedByKnight[outside]

		case outpostSquares[us][sq]&enemyPawns == bitboard.Empty:
			score += Terms.AvailableWeakSquare[outside]
		}

		mob := (att & e.mobilityAreas[us]).Count()
		score += Terms.KnightMobility[mob]

		kingReach := att & e.kingAreas[them] &^ e.pawnAttacksBy2[them]
		if kingReach != bitboard.Empty {
			e.kingAttacksCount[them] += kingReach.Count()
			e.kingAttackersCount[them]++
			e.kingAttackersWeight[them] += Terms.SafetyKnightWeight
		}
	}

	return score
}

// evaluateBishops evaluates mobility, the bishop pair, rammed-pawn
// colour-complex penalties, weak square defence, the long-diagonal
// bonus, and king-safety contributions of our bishops.
func (e *EfficientlyUpdatable) evaluateBishops(us piece.Color) Score {
	them := us.Other()
	score := Score(0)

	bishops := e.Board.BishopsBB(us)
	enemyPawns := e.Board.PawnsBB(them)
	enemyBishops := e.Board.BishopsBB(them)

	// bonus for having bishops on both colour complexes
	if bishops&whiteSquares != bitboard.Empty && bishops&blackSquares != bitboard.Empty {
		score += Terms.BishopPair
	}

	// mobility is worth more when each side has a single bishop on
	// opposite colour complexes
	ocb := 0
	if bishops.OnlyOne() && enemyBishops.OnlyOne() &&
		squaresOfMatchingColour(bishops.FirstOne()) != squaresOfMatchingColour(enemyBishops.FirstOne()) {
		ocb = 1
	}

	rest := bishops
	for rest != bitboard.Empty {
		sq := rest.Pop()
		att := attacks.Bishop(sq, e.occupiedMinus[us][piece.Bishop])

		e.attackedBy2[us] |= att & e.attacked[us]
		e.attacked[us] |= att
		e.attackedBy[us][piece.Bishop] |= att

		// penalty per rammed pawn of ours on this bishop's colour
		sameColour := squaresOfMatchingColour(sq)
		score += Terms.BishopRammedPawns.Times((e.rammedPawns[us] & sameColour).Count())

		if outpostSquares[us][sq]&enemyPawns == bitboard.Empty && att != bitboard.Empty {
			outside := 0
			if edgeFiles.IsSet(sq) {
				outside = 1
			}
			score += Terms.WeakSquareAttackedByBishop[outside]
		}

		// bonus when controlling both central squares on a long diagonal
		if (longDiagonals &^ centerSquares).IsSet(sq) &&
			(attacks.Bishop(sq, e.Board.PieceBBs[piece.Pawn]) & centerSquares).Several() {
			score += Terms.BishopLongDiagonal
		}

		mob := (att & e.mobilityAreas[us]).Count()
		score += Terms.BishopMobility[ocb][mob]

		kingReach := att & e.kingAreas[them] &^ e.pawnAttacksBy2[them]
		if kingReach != bitboard.Empty {
			e.kingAttacksCount[them] += kingReach.Count()
			e.kingAttackersCount[them]++
			e.kingAttackersWeight[them] += Terms.SafetyBishopWeight
		}
	}

	return score
}

// evaluateRooks evaluates open/semi-open file bonuses, weak square
// defence, connected rooks, mobility, and king-safety contributions of
// our rooks.
func (e *EfficientlyUpdatable) evaluateRooks(us piece.Color) Score {
	them := us.Other()
	score := Score(0)

	rooks := e.Board.RooksBB(us)
	myPawns := e.Board.PawnsBB(us)
	enemyPawns := e.Board.PawnsBB(them)

	rest := rooks
	for rest != bitboard.Empty {
		sq := rest.Pop()
		att := attacks.Rook(sq, e.occupiedMinus[us][piece.Rook])

		e.attackedBy2[us] |= att & e.attacked[us]
		e.attacked[us] |= att
		e.attackedBy[us][piece.Rook] |= att

		if outpostSquares[us][sq]&enemyPawns == bitboard.Empty && att != bitboard.Empty {
			outside := 0
			if edgeFiles.IsSet(sq) {
				outside = 1
			}
			score += Terms.WeakSquareAttackedByRook[outside]
		}

		// semi-open file when no pawns of our colour are on it, open
		// when there are no pawns at all
		file := bitboard.Files[sq.File()]
		if myPawns&file == bitboard.Empty {
			open := 0
			if enemyPawns&file == bitboard.Empty {
				open = 1
			}
			score += Terms.RookFile[open]
		}

		mob := (att & e.mobilityAreas[us]).Count()
		score += Terms.RookMobility[mob]

		kingReach := att & e.kingAreas[them] &^ e.pawnAttacksBy2[them]
		if kingReach != bitboard.Empty {
			e.kingAttacksCount[them] += kingReach.Count()
			e.kingAttackersCount[them]++
			e.kingAttackersWeight[them] += Terms.SafetyRookWeight
		}
	}

	// bonus once per pair of rooks whose attack rays meet, counting
	// through friendly rooks and queens the same way mobility does
	outer := rooks
	for outer != bitboard.Empty {
		r1 := outer.Pop()
		att := attacks.Rook(r1, e.occupiedMinus[us][piece.Rook])

		others := outer
		for others != bitboard.Empty {
			if att.IsSet(others.Pop()) {
				score += Terms.ConnectedRooks
			}
		}
	}

	return score
}

// evaluateQueens evaluates mobility, weak square defence, relative pins,
// and king-safety contributions of our queens.
func (e *EfficientlyUpdatable) evaluateQueens(us piece.Color) Score {
	them := us.Other()
	score := Score(0)

	enemyPawns := e.Board.PawnsBB(them)

	queens := e.Board.QueensBB(us)
	for queens != bitboard.Empty {
		sq := queens.Pop()
		att := attacks.Queen(sq, e.occupied)

		e.attackedBy2[us] |= att & e.attacked[us]
		e.attacked[us] |= att
		e.attackedBy[us][piece.Queen] |= att

		if outpostSquares[us][sq]&enemyPawns == bitboard.Empty && att != bitboard.Empty {
			outside := 0
			if edgeFiles.IsSet(sq) {
				outside = 1
			}
			score += Terms.WeakSquareAttackedByQueen[outside]
		}

		// penalty if the queen is at risk of a discovered attack
		if e.Board.DiscoveredAttacks(sq, us) != bitboard.Empty {
			score += Terms.QueenRelativePin
		}

		mob := (att & e.mobilityAreas[us]).Count()
		score += Terms.QueenMobility[mob]

		kingReach := att & e.kingAreas[them] &^ e.pawnAttacksBy2[them]
		if kingReach != bitboard.Empty {
			e.kingAttacksCount[them] += kingReach.Count()
			e.kingAttackersCount[them]++
			e.kingAttackersWeight[them] += Terms.SafetyQueenWeight
		}
	}

	return score
}

// evaluateKings evaluates king defenders and the nonlinear king-safety
// penalty built up from the attacker counts the other evaluateX
// functions accumulated against us and the cached shelter/storm safety.
func (e *EfficientlyUpdatable) evaluateKings(us piece.Color) Score {
	them := us.Other()
	score := Score(0)

	enemyQueens := e.Board.QueensBB(them)

	defenders := (e.Board.PawnsBB(us) | e.Board.KnightsBB(us) | e.Board.BishopsBB(us)) &
		e.kingAreas[us]
	score += Terms.KingDefenders[defenders.Count()]

	// perform the full king safety evaluation when we have two
	// attackers, or one attacker with a potential queen attacker
	if e.kingAttackersCount[us] > 1-enemyQueens.Count() {
		king := e.kingSquare[us]

		// weak squares are attacked by the enemy, defended no more than
		// once, and only defended by our king or queens
		weak := e.attacked[them] &^ e.attackedBy2[us] &
			(^e.attacked[us] | e.attackedBy[us][piece.Queen] | e.attackedBy[us][piece.King])

		// scale attack counts up or down for king areas smaller or
		// larger than the usual nine squares
		scaledAttackCount := 9 * e.kingAttacksCount[us] / e.kingAreas[us].Count()

		// safe target squares are defended, or weak and attacked twice;
		// squares holding pieces we cannot capture are excluded
		safe := ^e.Board.ColorBBs[them] & (^e.attacked[us] | (weak & e.attackedBy2[them]))

		knightThreats := attacks.Knight[king]
		bishopThreats := attacks.Bishop(king, e.occupied)
		rookThreats := attacks.Rook(king, e.occupied)
		queenThreats := bishopThreats | rookThreats

		knightChecks := knightThreats & safe & e.attackedBy[them][piece.Knight]
		bishopChecks := bishopThreats & safe & e.attackedBy[them][piece.Bishop]
		rookChecks := rookThreats & safe & e.attackedBy[them][piece.Rook]
		queenChecks := queenThreats & safe & e.attackedBy[them][piece.Queen]

		safety := e.kingAttackersWeight[us]

		safety += Terms.SafetyAttackValue.Times(scaledAttackCount)
		safety += Terms.SafetyWeakSquares.Times((weak & e.kingAreas[us]).Count())
		safety += Terms.SafetySafeQueenCheck.Times(queenChecks.Count())
		safety += Terms.SafetySafeRookCheck.Times(rookChecks.Count())
		safety += Terms.SafetySafeBishopCheck.Times(bishopChecks.Count())
		safety += Terms.SafetySafeKnightCheck.Times(knightChecks.Count())

		if enemyQueens == bitboard.Empty {
			safety += Terms.SafetyNoEnemyQueens
		}

		safety += e.pksafety[us]
		safety += Terms.SafetyAdjustment

		if e.ShouldTrace {
			e.Trace.Safety[us] = safety
		}

		score += NonLinearSafety(safety)
	}

	return score
}

// NonLinearSafety converts an accumulated king-safety score into its
// final contribution via a quadratic middle game penalty and a capped
// end game penalty; a small safety total costs little, a large one
// disproportionately more.
func NonLinearSafety(safety Score) Score {
	mg, eg := safety.MG(), safety.EG()

	return S(
		-mg*util.Max(0, mg)/720,
		-util.Max(0, eg)/20,
	)
}

// evaluatePassed evaluates every passed pawn of ours identified by
// evaluatePawns: a rank/advance/safety-indexed bonus, plus a bonus or
// penalty scaled by how close each king stands to the pawn. Only the
// most advanced passer on a file receives the king distance terms.
func (e *EfficientlyUpdatable) evaluatePassed(us piece.Color) Score {
	them := us.Other()
	score := Score(0)

	myPassers := e.Board.ColorBBs[us] & e.passedPawns

	rest := myPassers
	for rest != bitboard.Empty {
		sq := rest.Pop()
		rank := relativeRankOf(us, sq)

		push := bitboard.Squares[sq].Up(us)

		canAdvance := 0
		if push&e.occupied == bitboard.Empty {
			canAdvance = 1
		}
		safeAdvance := 0
		if push&e.attacked[them] == bitboard.Empty {
			safeAdvance = 1
		}
		score += Terms.PassedPawn[canAdvance][safeAdvance][rank]

		// short-circuit the distance terms for additional passers on a file
		if (bitboard.ForwardFileMask[us][sq] & myPassers).Several() {
			continue
		}

		score += Terms.PassedFriendlyDistance[rank].Times(distance(sq, e.kingSquare[us]))
		score += Terms.PassedEnemyDistance[rank].Times(distance(sq, e.kingSquare[them]))
	}

	return score
}

// evaluateThreats evaluates the four threat terms this evaluator
// carries: weak pawns, minors attacked by pawns, rooks attacked by
// lesser pieces, and attacked queens.
func (e *EfficientlyUpdatable) evaluateThreats(us piece.Color) Score {
	them := us.Other()
	score := Score(0)

	pawns := e.Board.PawnsBB(us)
	knights := e.Board.KnightsBB(us)
	bishops := e.Board.BishopsBB(us)
	rooks := e.Board.RooksBB(us)
	queens := e.Board.QueensBB(us)

	attacksByPawns := e.attackedBy[them][piece.Pawn]
	attacksByMinors := e.attackedBy[them][piece.Knight] | e.attackedBy[them][piece.Bishop]

	// squares with more attackers, fewer defenders, and no pawn support
	poorlyDefended := (e.attacked[them] &^ e.attacked[us]) |
		(e.attackedBy2[them] &^ e.attackedBy2[us] &^ e.attackedBy[us][piece.Pawn])

	poorlySupportedPawns := pawns &^ attacksByPawns & poorlyDefended
	score += Terms.ThreatWeakPawn.Times(poorlySupportedPawns.Count())

	minorsAttackedByPawns := (knights | bishops) & attacksByPawns
	score += Terms.ThreatMinorAttackedByPawn.Times(minorsAttackedByPawns.Count())

	rooksAttackedByLesser := rooks & (attacksByPawns | attacksByMinors)
	score += Terms.ThreatRookAttackedByLesser.Times(rooksAttackedByLesser.Count())

	attackedQueens := queens & e.attacked[them]
	score += Terms.ThreatQueenAttackedByOne.Times(attackedQueens.Count())

	return score
}

// evaluateSpace penalizes our pieces and controlled squares which the
// opponent contests harder than we do, and rewards uncontested central
// squares while enough pieces remain for the middle game to matter.
func (e *EfficientlyUpdatable) evaluateSpace(us piece.Color) Score {
	them := us.Other()
	score := Score(0)

	// squares we attack that have more enemy attackers and no friendly
	// pawn support
	uncontrolled := e.attackedBy2[them] & e.attacked[us] &^
		e.attackedBy2[us] &^ e.attackedBy[us][piece.Pawn]

	score += Terms.SpaceRestrictPiece.Times((uncontrolled & e.occupied).Count())
	score += Terms.SpaceRestrictEmpty.Times((uncontrolled &^ e.occupied).Count())

	// uncontested central squares are mostly relevant in the opening
	// and early middle game, and misleading in endgames where a single
	// rook or queen controls many; skip below a material threshold
	minors := e.Board.PieceBBs[piece.Knight] | e.Board.PieceBBs[piece.Bishop]
	majors := e.Board.PieceBBs[piece.Rook] | e.Board.PieceBBs[piece.Queen]
	if minors.Count()+2*majors.Count() > 12 {
		count := (^e.attacked[them] & (e.attacked[us] | e.Board.ColorBBs[us]) & centerBig).Count()
		score += Terms.SpaceCenterControl.Times(count)
	}

	return score
}

// evaluateClosedness adjusts knight and rook values based on how closed
// the position is, scaled by the difference in piece counts, so it is
// computed once rather than per side.
func (e *EfficientlyUpdatable) evaluateClosedness() Score {
	pawns := e.Board.PieceBBs[piece.Pawn]

	closedness := 1*pawns.Count() +
		3*e.rammedPawns[piece.White].Count() -
		4*openFileCount(pawns)
	closedness = util.Max(0, util.Min(8, closedness/3))

	knightDiff := e.Board.KnightsBB(piece.White).Count() - e.Board.KnightsBB(piece.Black).Count()
	rookDiff := e.Board.RooksBB(piece.White).Count() - e.Board.RooksBB(piece.Black).Count()

	score := Terms.ClosednessKnightAdjustment[closedness].Times(knightDiff)
	score += Terms.ClosednessRookAdjustment[closedness].Times(rookDiff)

	return score
}

// evaluateComplexity shrinks the end game evaluation toward a draw in
// simple, pawn-light positions, and never flips which side the
// evaluation already favours - it only ever pulls the end game term
// closer to zero.
func (e *EfficientlyUpdatable) evaluateComplexity(score Score) Score {
	eg := int(score.EG())

	sign := 0
	switch {
	case eg > 0:
		sign = 1
	case eg < 0:
		sign = -1
	}

	pawns := e.Board.PieceBBs[piece.Pawn]

	bothFlanks := 0
	if pawns&leftFlank != bitboard.Empty && pawns&rightFlank != bitboard.Empty {
		bothFlanks = 1
	}

	nonPawnPieces := e.Board.PieceBBs[piece.Knight] | e.Board.PieceBBs[piece.Bishop] |
		e.Board.PieceBBs[piece.Rook] | e.Board.PieceBBs[piece.Queen]
	pawnEndgame := 0
	if nonPawnPieces == bitboard.Empty {
		pawnEndgame = 1
	}

	complexity := int(Terms.ComplexityTotalPawns.EG())*pawns.Count() +
		int(Terms.ComplexityPawnFlanks.EG())*bothFlanks +
		int(Terms.ComplexityPawnEndgame.EG())*pawnEndgame +
		int(Terms.ComplexityAdjustment.EG())

	v := sign * util.Max(complexity, -util.Abs(eg))
	return S(0, eval.Eval(v))
}

// evaluateScaleFactor shrinks the end game evaluation further in
// drawish material configurations: opposite-coloured bishop endings, a
// lone queen facing several pieces, or a lone minor up against a bare
// king - and scales it up for lone pieces with a large pawn advantage.
func (e *EfficientlyUpdatable) evaluateScaleFactor(score Score) int {
	pawns := e.Board.PieceBBs[piece.Pawn]
	knights := e.Board.PieceBBs[piece.Knight]
	bishops := e.Board.PieceBBs[piece.Bishop]
	rooks := e.Board.PieceBBs[piece.Rook]
	queens := e.Board.PieceBBs[piece.Queen]

	minors := knights | bishops
	pieces := knights | bishops | rooks

	white := e.Board.ColorBBs[piece.White]
	black := e.Board.ColorBBs[piece.Black]

	strong, weak := white, black
	if score.EG() < 0 {
		strong, weak = black, white
	}

	// check for opposite-coloured bishops
	if (white & bishops).OnlyOne() && (black & bishops).OnlyOne() &&
		(bishops & whiteSquares).OnlyOne() {

		switch {
		case rooks|queens == bitboard.Empty &&
			(white & knights).OnlyOne() && (black & knights).OnlyOne():
			return scaleOCBOneKnight

		case knights|queens == bitboard.Empty &&
			(white & rooks).OnlyOne() && (black & rooks).OnlyOne():
			return scaleOCBOneRook

		case knights|rooks|queens == bitboard.Empty:
			return scaleOCBBishops
		}
	}

	// lone queens are weak against multiple pieces
	if queens.OnlyOne() && pieces.Several() && pieces == weak&pieces {
		return scaleLoneQueen
	}

	// a lone minor against king and pawns should never be won
	if strong&minors != bitboard.Empty && strong.Count() == 2 {
		return scaleDraw
	}

	// scale up lone pieces with massive pawn advantages
	if queens == bitboard.Empty &&
		!(pieces & white).Several() && !(pieces & black).Several() &&
		(strong&pawns).Count()-(weak&pawns).Count() > 2 {
		return scaleLargePawnAdv
	}

	return scaleNormal
}
