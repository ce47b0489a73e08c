package classical_test

import (
	"testing"

	"github.com/kennyfrc/Ethereal/pkg/search/eval"
	"github.com/kennyfrc/Ethereal/pkg/search/eval/classical"
)

// The packed Score stores its middle and end game halves as 16 bits
// each, and only guarantees a clean round-trip for values up to about
// ±20000. The fuzz inputs are therefore int16, so exploration stays
// inside the representation the packing is defined over.

func FuzzRecovery(f *testing.F) {
	f.Add(int16(1000), int16(-1000))
	f.Add(int16(2648), int16(7346))
	f.Add(int16(-3683), int16(-8374))

	f.Fuzz(func(t *testing.T, a, b int16) {
		mg, eg := eval.Eval(a), eval.Eval(b)
		s := classical.S(mg, eg)

		if s.MG() != mg || s.EG() != eg {
			t.Errorf("S(%d, %d) != S(%d, %d)", mg, eg, s.MG(), s.EG())
		}
	})
}

func FuzzAddition(f *testing.F) {
	f.Add(int16(1000), int16(-1000), int16(-1000), int16(1000))
	f.Add(int16(2648), int16(7346), int16(3683), int16(8374))
	f.Add(int16(-2648), int16(-7346), int16(-3683), int16(-8374))

	f.Fuzz(func(t *testing.T, a, b, c, d int16) {
		// halve the inputs so the component sums stay inside the
		// packed range
		mg1, eg1 := eval.Eval(a/2), eval.Eval(b/2)
		mg2, eg2 := eval.Eval(c/2), eval.Eval(d/2)

		s1 := classical.S(mg1, eg1)
		s2 := classical.S(mg2, eg2)

		if sum := s1 + s2; sum != classical.S(mg1+mg2, eg1+eg2) {
			t.Errorf("S(%d, %d) + S(%d, %d) -> S(%d, %d)", mg1, eg1, mg2, eg2, sum.MG(), sum.EG())
		}
	})
}

func FuzzMultiplication(f *testing.F) {
	f.Add(int16(1000), int16(-1000), int8(-10))
	f.Add(int16(2648), int16(7346), int8(3))
	f.Add(int16(-2648), int16(-7346), int8(-3))

	f.Fuzz(func(t *testing.T, a, b int16, c int8) {
		// a full evaluation never scales a term by more than a board's
		// worth of squares, so small coefficients on small halves keep
		// the products inside the packed range
		mg, eg, coeff := eval.Eval(a/256), eval.Eval(b/256), int(c)

		s := classical.S(mg, eg)

		actual := classical.S(mg*eval.Eval(coeff), eg*eval.Eval(coeff))

		if product := s.Times(coeff); product != actual {
			t.Errorf("%d x S(%d, %d) -> S(%d, %d)\nshould be S(%d, %d)", coeff, mg, eg, product.MG(), product.EG(), actual.MG(), actual.EG())
		}
	})
}
