package classical_test

import (
	"testing"

	"github.com/kennyfrc/Ethereal/pkg/board"
	"github.com/kennyfrc/Ethereal/pkg/board/piece"
	"github.com/kennyfrc/Ethereal/pkg/search/eval/classical"
)

func BenchmarkAccumulate(b *testing.B) {
	chessboard := board.NewBoard(board.StartFEN)

	// tracing bypasses the evaluation cache, so the full evaluation is
	// measured instead of a cache probe
	evaluator := classical.EfficientlyUpdatable{Board: chessboard, ShouldTrace: true}

	b.ResetTimer()

	for i := 0; i < b.N; i++ {
		evaluator.Accumulate(piece.White)
	}
}
