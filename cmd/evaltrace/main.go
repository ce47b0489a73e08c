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

// Command evaltrace evaluates a single FEN position and renders an HTML
// bar chart of each side's king safety term (middle and end game), to
// help explain why the evaluator returned a given score.
package main

import (
	"fmt"
	"os"

	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/opts"

	"github.com/kennyfrc/Ethereal/pkg/board"
	"github.com/kennyfrc/Ethereal/pkg/board/piece"
	"github.com/kennyfrc/Ethereal/pkg/search/eval/classical"
)

func main() {
	fen := board.StartFEN
	out := "eval_trace.html"

	args := os.Args[1:]
	if len(args) >= 1 {
		out = args[0]
	}
	if len(args) >= 2 {
		fen = []string{args[1]}
		for _, f := range args[2:] {
			fen = append(fen, f)
		}
	}

	if err := run(fen, out); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run(fen []string, out string) error {
	b := board.NewBoard(fen)

	evaluator := classical.EfficientlyUpdatable{Board: b, ShouldTrace: true}
	score := evaluator.Accumulate(piece.White)

	fmt.Printf("fen: %s\n", b.FEN())
	fmt.Printf("evaluation (white pov): %d\n", score)

	bar := charts.NewBar()
	bar.SetGlobalOptions(
		charts.WithTitleOpts(opts.Title{
			Title:    "Evaluation term breakdown",
			Subtitle: b.FEN(),
		}),
	)

	trace := evaluator.Trace
	bar.SetXAxis([]string{"white", "black"}).
		AddSeries("king safety (mg)", []opts.BarData{
			{Value: int(trace.Safety[piece.White].MG())},
			{Value: int(trace.Safety[piece.Black].MG())},
		}).
		AddSeries("king safety (eg)", []opts.BarData{
			{Value: int(trace.Safety[piece.White].EG())},
			{Value: int(trace.Safety[piece.Black].EG())},
		})

	f, err := os.Create(out)
	if err != nil {
		return err
	}
	defer f.Close()

	if err := bar.Render(f); err != nil {
		return err
	}

	fmt.Printf("wrote %s\n", out)
	return nil
}
