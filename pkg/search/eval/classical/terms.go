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
	"github.com/kennyfrc/Ethereal/pkg/search/eval"
)

// EvaluationTerms groups every tunable evaluation term into a single
// generic structure, so that the same shape can describe both the
// live Score-valued parameter set (Terms, below) and, were a tuner
// ever added to this tree, a parallel structure of per-term usage
// counts. Only the Score instantiation is built today.
type EvaluationTerms[T any] struct {
	PawnCandidatePasser [2][8]T
	PawnIsolated        [8]T
	PawnStacked         [2][8]T
	PawnBackwards       [2][8]T
	PawnConnected32     [32]T

	// The rook and queen variants carry a zeroed second entry: the
	// edge-file index is computed for them the same way as for the
	// other piece types, but only the inside entry holds a value.
	WeakSquareAttackedByPawn   [2]T
	WeakSquareAttackedByKnight [2]T
	WeakSquareAttackedByBishop [2]T
	WeakSquareAttackedByRook   [2]T
	WeakSquareAttackedByQueen  [2]T
	AvailableWeakSquare        [2]T

	KnightOutpost  [2][2]T
	KnightMobility [9]T

	BishopPair         T
	BishopRammedPawns  T
	BishopLongDiagonal T
	BishopMobility     [2][14]T

	RookFile       [2]T
	RookMobility   [15]T
	ConnectedRooks T

	QueenRelativePin T
	QueenMobility    [28]T

	KingDefenders         [12]T
	KingPawnFileProximity [8]T
	KingShelter           [2][8][8]T
	KingStorm             [2][4][8]T

	SafetyKnightWeight    T
	SafetyBishopWeight    T
	SafetyRookWeight      T
	SafetyQueenWeight     T
	SafetyAttackValue     T
	SafetyWeakSquares     T
	SafetyNoEnemyQueens   T
	SafetySafeQueenCheck  T
	SafetySafeRookCheck   T
	SafetySafeBishopCheck T
	SafetySafeKnightCheck T
	SafetyAdjustment      T
	SafetyShelter         [2][8]T
	SafetyStorm           [2][8]T

	PassedPawn             [2][2][8]T
	PassedFriendlyDistance [8]T
	PassedEnemyDistance    [8]T

	// PassedSafePromotionPath and the threat terms below ThreatQueenAttackedByOne
	// carry tuned values but are not scored anywhere; they are kept so the
	// parameter set stays complete should their terms be re-enabled.
	PassedSafePromotionPath T

	ThreatWeakPawn             T
	ThreatMinorAttackedByPawn  T
	ThreatRookAttackedByLesser T
	ThreatQueenAttackedByOne   T
	ThreatMinorAttackedByMinor T
	ThreatMinorAttackedByMajor T
	ThreatMinorAttackedByKing  T
	ThreatRookAttackedByKing   T
	ThreatOverloadedPieces     T
	ThreatByPawnPush           T

	SpaceRestrictPiece T
	SpaceRestrictEmpty T
	SpaceCenterControl T

	ClosednessKnightAdjustment [9]T
	ClosednessRookAdjustment   [9]T

	ComplexityTotalPawns  T
	ComplexityPawnFlanks  T
	ComplexityPawnEndgame T
	ComplexityAdjustment  T
}

// Tempo is a flat bonus (not a packed Score: it is applied once, after
// middle/end game interpolation) given to the side to move, reflecting
// the fact that having a move to make is itself worth something.
const Tempo eval.Eval = 20

// scale factor constants used by evaluateScaleFactor to shrink the end
// game evaluation in drawish material configurations. scaleNormal is the
// neutral divisor, so a factor below it shrinks the end game term and
// one above it stretches it.
const (
	scaleNormal       = 128
	scaleDraw         = 0
	scaleOCBBishops   = 64
	scaleOCBOneKnight = 106
	scaleOCBOneRook   = 96
	scaleLargePawnAdv = 144
	scaleLoneQueen    = 88
)

// Terms holds every evaluation parameter used by this package.
var Terms = EvaluationTerms[Score]{
	PawnCandidatePasser: [2][8]Score{
		{S(0, 0), S(-10, -10), S(-10, 10), S(0, 20), S(20, 50), S(40, 70), S(50, 90), S(0, 0)},
		{S(0, 0), S(-10, -10), S(-10, 10), S(0, 20), S(20, 50), S(40, 70), S(50, 90), S(0, 0)},
	},
	PawnIsolated: [8]Score{
		S(-10, -20), S(-10, -15), S(-15, -20), S(-20, -30), S(-20, -30), S(-15, -20), S(-10, -15), S(-10, -20),
	},
	PawnStacked: [2][8]Score{
		{S(-10, -20), S(-10, -20), S(-15, -20), S(-20, -30), S(-20, -30), S(-15, -25), S(-10, -20), S(-10, -20)},
		{S(-10, -20), S(-10, -20), S(-15, -20), S(-20, -30), S(-20, -30), S(-15, -25), S(-10, -20), S(-10, -20)},
	},
	PawnBackwards: [2][8]Score{
		{S(0, 0), S(0, -10), S(-5, -20), S(-10, -30), S(-10, -30), S(-5, -20), S(0, -10), S(0, 0)},
		{S(0, 0), S(0, -10), S(-5, -20), S(-10, -30), S(-10, -30), S(-5, -20), S(0, -10), S(0, 0)},
	},
	PawnConnected32: [32]Score{
		S(0, 0), S(0, 0), S(0, 0), S(0, 0),
		S(0, 0), S(0, 0), S(0, 0), S(0, 0),
		S(0, 10), S(5, 5), S(10, 0), S(10, 0),
		S(0, 30), S(10, 20), S(20, 10), S(20, 10),
		S(10, 30), S(20, 30), S(30, 20), S(30, 20),
		S(50, 80), S(60, 70), S(70, 60), S(80, 50),
		S(70, 100), S(80, 90), S(90, 80), S(100, 70),
		S(0, 0), S(0, 0), S(0, 0), S(0, 0),
	},

	WeakSquareAttackedByPawn:   [2]Score{S(2, 2), S(0, 0)},
	WeakSquareAttackedByKnight: [2]Score{S(20, 10), S(0, 0)},
	WeakSquareAttackedByBishop: [2]Score{S(40, 20), S(0, 0)},
	WeakSquareAttackedByRook:   [2]Score{S(4, 4), S(0, 0)},
	WeakSquareAttackedByQueen:  [2]Score{S(4, 4), S(0, 0)},
	AvailableWeakSquare:        [2]Score{S(4, 2), S(0, 0)},

	KnightOutpost: [2][2]Score{
		{S(40, 20), S(40, 20)},
		{S(-10, -10), S(-10, -10)},
	},
	KnightMobility: [9]Score{
		S(-150, -150), S(-100, -100), S(-50, -50), S(0, 0), S(10, 10),
		S(30, 30), S(30, 30), S(30, 30), S(50, 50),
	},

	BishopPair:         S(30, 120),
	BishopRammedPawns:  S(-5, -20),
	BishopLongDiagonal: S(20, 0),
	BishopMobility: [2][14]Score{
		{
			S(-150, -150), S(-120, -120), S(-50, -50), S(-20, -20), S(0, 0),
			S(10, 10), S(30, 30), S(30, 30), S(40, 40), S(40, 40),
			S(40, 40), S(40, 40), S(50, 50), S(80, 80),
		},
		{
			S(-120, -120), S(-100, -100), S(-20, -20), S(-10, -10), S(10, 10),
			S(20, 20), S(50, 50), S(50, 50), S(60, 60), S(70, 70),
			S(80, 80), S(80, 80), S(90, 90), S(100, 100),
		},
	},

	RookFile: [2]Score{S(10, 10), S(10, 10)},
	RookMobility: [15]Score{
		S(-150, -150), S(-120, -120), S(-80, -80), S(-20, -20), S(0, 0),
		S(0, 20), S(0, 40), S(0, 40), S(0, 50), S(0, 50),
		S(10, 60), S(10, 60), S(10, 70), S(30, 70), S(90, 90),
	},
	ConnectedRooks: S(10, 20),

	QueenRelativePin: S(-20, -20),
	QueenMobility: [28]Score{
		S(-150, -150), S(-120, -120), S(-120, -220), S(-40, -200), S(-20, -170),
		S(0, -80), S(0, -30), S(0, 0), S(0, 0), S(10, 30),
		S(10, 30), S(10, 50), S(20, 50), S(20, 50), S(20, 50),
		S(20, 60), S(20, 60), S(10, 60), S(10, 60), S(10, 40),
		S(20, 30), S(30, 0), S(30, -10), S(20, -20), S(10, -40),
		S(0, -70), S(-40, -70), S(-40, -70),
	},

	KingDefenders: [12]Score{
		S(-30, -5), S(-10, 5), S(0, 5), S(10, 5),
		S(20, 5), S(30, 5), S(30, -15), S(10, -5),
		S(10, 5), S(10, 5), S(10, 5), S(10, 5),
	},
	KingPawnFileProximity: [8]Score{
		S(30, 40), S(20, 30), S(10, 10), S(0, -20),
		S(0, -60), S(0, -70), S(-10, -80), S(-10, -70),
	},
	KingShelter: [2][8][8]Score{
		{
			{S(0, 0), S(10, -30), S(20, 0), S(20, 0), S(0, 0), S(-10, 0), S(-10, -30), S(-50, 20)},
			{S(10, 0), S(0, -10), S(0, 0), S(0, 0), S(-10, 0), S(-50, 70), S(80, 80), S(-10, 0)},
			{S(30, 0), S(0, 0), S(-30, 0), S(-10, -10), S(0, 0), S(-20, 10), S(10, 70), S(-10, 0)},
			{S(10, 10), S(20, -10), S(0, -10), S(10, -20), S(20, -30), S(-40, 0), S(-140, 40), S(0, 0)},
			{S(-10, 10), S(0, 0), S(-40, 0), S(-20, 10), S(-20, 0), S(-30, 0), S(40, -20), S(-10, 0)},
			{S(50, -10), S(10, -10), S(-20, 0), S(-10, -20), S(10, -30), S(30, -20), S(40, -30), S(-20, 0)},
			{S(40, -10), S(0, -20), S(-30, 0), S(-20, 0), S(-30, 0), S(-20, 20), S(0, 40), S(-10, 0)},
			{S(10, -20), S(0, -20), S(10, 0), S(0, 10), S(-10, 20), S(-10, 40), S(-180, 80), S(-10, 10)},
		},
		{
			{S(0, 0), S(-10, -30), S(0, -20), S(-40, 10), S(-30, 0), S(0, 50), S(-160, 0), S(-50, 10)},
			{S(0, 0), S(10, -10), S(0, -10), S(-10, 0), S(0, -20), S(20, 70), S(-180, 0), S(-30, 10)},
			{S(0, 0), S(10, 0), S(0, -10), S(0, -20), S(20, 0), S(-90, 50), S(-80, -70), S(0, 0)},
			{S(0, 0), S(0, 0), S(0, 0), S(-30, 10), S(-40, 10), S(-90, 30), S(0, -40), S(-30, 0)},
			{S(0, 0), S(10, 0), S(10, -10), S(10, -10), S(0, -10), S(-30, 0), S(-100, -50), S(-10, 0)},
			{S(0, 0), S(0, 0), S(-20, 0), S(-10, 0), S(20, -20), S(-20, 10), S(50, 30), S(-10, 0)},
			{S(0, 0), S(30, -20), S(10, -10), S(0, 0), S(-20, 10), S(0, 20), S(-50, -30), S(-20, 10)},
			{S(0, 0), S(10, -50), S(10, -30), S(-10, 0), S(-30, 20), S(-10, 20), S(-220, -40), S(-30, 0)},
		},
	},
	KingStorm: [2][4][8]Score{
		{
			{S(0, 30), S(140, 0), S(-10, 20), S(0, 0), S(-10, 0), S(0, 0), S(-10, 0), S(-20, 0)},
			{S(-10, 60), S(60, 10), S(0, 20), S(0, 10), S(0, 0), S(0, 0), S(0, 0), S(-10, 0)},
			{S(0, 40), S(10, 30), S(-10, 20), S(-10, 10), S(0, 0), S(0, 0), S(0, 0), S(0, 0)},
			{S(0, 20), S(10, 20), S(-30, 10), S(-20, 0), S(-10, 0), S(10, -10), S(0, 0), S(-20, 0)},
		},
		{
			{S(0, 0), S(-10, -10), S(-10, 0), S(20, -20), S(10, 0), S(10, -20), S(0, 0), S(0, 30)},
			{S(0, 0), S(-10, -40), S(0, -10), S(50, -10), S(10, 0), S(20, -20), S(-10, -10), S(-30, 0)},
			{S(0, 0), S(-30, -60), S(-10, -10), S(0, 0), S(0, 0), S(0, -10), S(0, -20), S(0, 0)},
			{S(0, 0), S(0, -20), S(-20, -10), S(-20, 0), S(-10, 0), S(0, -30), S(60, -20), S(10, 20)},
		},
	},

	SafetyKnightWeight:    S(40, 40),
	SafetyBishopWeight:    S(20, 30),
	SafetyRookWeight:      S(30, 0),
	SafetyQueenWeight:     S(30, 0),
	SafetyAttackValue:     S(40, 30),
	SafetyWeakSquares:     S(40, 40),
	SafetyNoEnemyQueens:   S(-230, -250),
	SafetySafeQueenCheck:  S(90, 80),
	SafetySafeRookCheck:   S(90, 90),
	SafetySafeBishopCheck: S(50, 50),
	SafetySafeKnightCheck: S(110, 110),
	SafetyAdjustment:      S(-70, -20),
	SafetyShelter: [2][8]Score{
		{S(0, 0), S(0, 10), S(0, 0), S(0, 0), S(0, 0), S(0, 0), S(0, 0), S(0, -10)},
		{S(0, 0), S(0, 10), S(0, 0), S(0, 0), S(0, 0), S(0, 0), S(0, 0), S(0, 0)},
	},
	SafetyStorm: [2][8]Score{
		{S(0, 0), S(0, 0), S(0, 0), S(0, 0), S(0, 0), S(0, 20), S(0, 10), S(0, -10)},
		{S(0, 0), S(0, 0), S(0, 0), S(0, 0), S(0, 0), S(0, 0), S(0, 0), S(0, 0)},
	},

	PassedPawn: [2][2][8]Score{
		{
			{S(0, 0), S(-30, 0), S(-40, 20), S(-60, 20), S(0, 10), S(90, 0), S(160, 40), S(0, 0)},
			{S(0, 0), S(-20, 10), S(-40, 40), S(-50, 40), S(0, 50), S(110, 50), S(190, 90), S(0, 0)},
		},
		{
			{S(0, 0), S(-20, 20), S(-40, 30), S(-60, 50), S(0, 60), S(100, 70), S(250, 120), S(0, 0)},
			{S(0, 0), S(-20, 20), S(-40, 30), S(-50, 60), S(0, 80), S(90, 160), S(120, 290), S(0, 0)},
		},
	},
	PassedFriendlyDistance: [8]Score{
		S(0, 0), S(0, 0), S(0, 0), S(0, -10), S(0, -10), S(0, -10), S(0, 0), S(0, 0),
	},
	PassedEnemyDistance: [8]Score{
		S(0, 0), S(0, 0), S(0, 0), S(0, 10), S(0, 20), S(0, 30), S(10, 30), S(0, 0),
	},

	PassedSafePromotionPath: S(-40, 50),

	ThreatWeakPawn:             S(-10, -40),
	ThreatMinorAttackedByPawn:  S(-20, -40),
	ThreatRookAttackedByLesser: S(-20, -40),
	ThreatQueenAttackedByOne:   S(-20, -40),
	ThreatMinorAttackedByMinor: S(-20, -40),
	ThreatMinorAttackedByMajor: S(-30, -50),
	ThreatMinorAttackedByKing:  S(-40, -20),
	ThreatRookAttackedByKing:   S(-30, -10),
	ThreatOverloadedPieces:     S(0, -10),
	ThreatByPawnPush:           S(10, 30),

	SpaceRestrictPiece: S(-30, -50),
	SpaceRestrictEmpty: S(-10, -30),
	SpaceCenterControl: S(40, 0),

	ClosednessKnightAdjustment: [9]Score{
		S(0, 10), S(0, 20), S(0, 30), S(0, 30), S(0, 40), S(0, 30), S(0, 30), S(-10, 50), S(0, 30),
	},
	ClosednessRookAdjustment: [9]Score{
		S(40, 40), S(0, 80), S(0, 50), S(0, 40), S(0, 40), S(0, 20), S(0, 10), S(-10, 10), S(-30, -10),
	},

	ComplexityTotalPawns:  S(0, 0),
	ComplexityPawnFlanks:  S(0, 80),
	ComplexityPawnEndgame: S(0, 70),
	ComplexityAdjustment:  S(0, -150),
}

// EvaluationTrace records the subset of the evaluation's intermediate
// state actually consumed outside this package: the diagnostics
// dashboard and evaltrace command both only ever read the overall
// evaluation and the per-side king safety score, so a full per-term
// trace is not kept (this tree has no tuner to consume one).
type EvaluationTrace struct {
	Evaluation Score
	Safety     [piece.ColorN]Score
}
