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

import "github.com/kennyfrc/Ethereal/pkg/search/eval"

// S creates a new Score encapsulating the given mg and eg evaluations,
// packed into a single 32-bit word as two 16-bit halves.
func S(mg, eg eval.Eval) Score {
	return Score(uint32(int32(eg))<<16) + Score(int32(mg))
}

// Score packs a middle game and an end game evaluation into a single
// 32-bit value, so that adding two Scores adds their MG and EG terms
// independently in one integer addition.
type Score int32

// MG returns the given score's middle game evaluation.
func (score Score) MG() eval.Eval {
	return eval.Eval(int16(int32(score)))
}

// EG returns the given score's end game evaluation, rounding the
// addition carry from the MG half back out.
func (score Score) EG() eval.Eval {
	return eval.Eval(int16(uint16(uint32(score+0x8000) >> 16)))
}

// Times scales a Score by a plain integer count, multiplying its MG and
// EG halves independently. Raw int32 multiplication would corrupt the
// packed representation, so counts (number of attackers, weak squares,
// and the like) must go through this instead of Go's * operator.
func (score Score) Times(n int) Score {
	return S(score.MG()*eval.Eval(n), score.EG()*eval.Eval(n))
}
