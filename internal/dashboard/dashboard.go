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

// Package dashboard renders a terminal dashboard for the engine: the
// current board, its evaluation, and a bar chart of each side's king
// safety term, redrawn each time Update is given a position. It is an
// alternative to the plain UCI stdout protocol for interactive terminal
// use.
package dashboard

import (
	"fmt"
	"strings"

	ui "github.com/gizak/termui/v3"
	"github.com/gizak/termui/v3/widgets"
	"github.com/mattn/go-runewidth"
	"github.com/mitchellh/colorstring"
	"github.com/mitchellh/go-wordwrap"
	"github.com/rivo/uniseg"

	"github.com/kennyfrc/Ethereal/pkg/board"
	"github.com/kennyfrc/Ethereal/pkg/board/piece"
	"github.com/kennyfrc/Ethereal/pkg/search/eval/classical"
)

// Dashboard owns the termui widgets used to render a position, its
// evaluation, and its king safety terms.
type Dashboard struct {
	board *widgets.Paragraph
	eval  *widgets.Paragraph
	chart *widgets.BarChart
}

// New initializes termui and builds the dashboard's widget layout. The
// caller must call Close when done.
func New() (*Dashboard, error) {
	if err := ui.Init(); err != nil {
		return nil, fmt.Errorf("dashboard: %w", err)
	}

	d := &Dashboard{
		board: widgets.NewParagraph(),
		eval:  widgets.NewParagraph(),
		chart: widgets.NewBarChart(),
	}

	d.board.Title = "Position"
	d.board.SetRect(0, 0, 30, 12)

	d.eval.Title = "Evaluation"
	d.eval.SetRect(0, 12, 30, 18)

	d.chart.Title = "King safety (mg)"
	d.chart.SetRect(30, 0, 60, 18)
	d.chart.BarWidth = 6
	d.chart.Labels = []string{"white", "black"}

	return d, nil
}

// Close releases the terminal back to normal mode.
func (d *Dashboard) Close() {
	ui.Close()
}

// Update re-renders the dashboard for the given board, using the
// classical evaluator's trace to populate the king safety chart.
func (d *Dashboard) Update(b *board.Board) {
	d.board.Text = boardGlyphs(b)

	evaluator := classical.EfficientlyUpdatable{Board: b, ShouldTrace: true}
	score := evaluator.Accumulate(b.SideToMove)

	// score is relative to the side to move
	favored := b.SideToMove
	color := "[white]"
	if score < 0 {
		favored = favored.Other()
		color = "[red]"
	}

	sign := "white"
	if favored == piece.Black {
		sign = "black"
	}

	summary := wordwrap.WrapString(
		fmt.Sprintf("evaluation favors %s, %d centipawns (from %s's perspective)",
			sign, score, b.SideToMove), 28,
	)
	d.eval.Text = colorstring.Color(color + summary + "[reset]")

	d.chart.Data = []float64{
		float64(evaluator.Trace.Safety[piece.White].MG()),
		float64(evaluator.Trace.Safety[piece.Black].MG()),
	}

	ui.Render(d.board, d.eval, d.chart)
}

// boardGlyphs renders b as a grid of unicode piece glyphs, padding each
// cell to the glyph's display width so that wide characters (the piece
// glyphs are double-width in most terminal fonts) still line up.
func boardGlyphs(b *board.Board) string {
	var sb strings.Builder

	fen := strings.Fields(b.FEN())[0]
	rank := strings.Split(fen, "/")

	for _, row := range rank {
		for _, c := range row {
			switch {
			case c >= '1' && c <= '8':
				for i := 0; i < int(c-'0'); i++ {
					sb.WriteString(pad("."))
				}
			default:
				sb.WriteString(pad(pieceGlyph(c)))
			}
		}
		sb.WriteByte('\n')
	}

	return sb.String()
}

// pad right-pads s with spaces so that every cell occupies the same
// terminal column width regardless of the glyph's display width. The
// piece glyphs are always a single grapheme cluster, but the check
// guards against a future multi-rune cell (e.g. a glyph plus a
// combining check-mark) silently breaking alignment.
func pad(s string) string {
	const cellWidth = 2
	if uniseg.GraphemeClusterCount(s) != 1 {
		s = string([]rune(s)[:1])
	}
	w := runewidth.StringWidth(s)
	if w >= cellWidth {
		return s
	}
	return s + strings.Repeat(" ", cellWidth-w)
}

var pieceGlyphs = map[byte]string{
	'K': "♔", 'Q': "♕", 'R': "♖", 'B': "♗", 'N': "♘", 'P': "♙",
	'k': "♚", 'q': "♛", 'r': "♜", 'b': "♝", 'n': "♞", 'p': "♟",
}

func pieceGlyph(c rune) string {
	if g, ok := pieceGlyphs[byte(c)]; ok {
		return g
	}
	return string(c)
}
