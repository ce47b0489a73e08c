// Command regression evaluates a fixed table of positions with the
// classical evaluator and checks that every evaluation stays within
// bounds and is reproducible, then (optionally) diffs the results
// against a previously saved baseline so that an unintentional change
// in evaluation output is caught before it reaches a release.
//
// Run with -update to (re)write the baseline file from the current
// evaluator's output.
package main

import (
	"bufio"
	"flag"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/schollz/progressbar/v3"

	"github.com/kennyfrc/Ethereal/pkg/board"
	"github.com/kennyfrc/Ethereal/pkg/search/eval/classical"
)

// fens is a broad sample of positions: openings, middlegames, and
// endgames, spanning every phase of the game so that the regression
// suite exercises material, PSQT, pawn structure, king safety,
// mobility, and scaling terms alike.
var fens = []string{
	// starting position and early theory
	"rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR w KQkq - 0 1",
	"rnbqkbnr/pppp1ppp/8/4p3/4P3/8/PPPP1PPP/RNBQKBNR w KQkq - 0 2",
	"rnbqkbnr/pppp1ppp/8/4p3/4P3/5N2/PPPP1PPP/RNBQKB1R b KQkq - 1 2",
	"r1bqkbnr/pppp1ppp/2n5/4p3/4P3/5N2/PPPP1PPP/RNBQKB1R w KQkq - 2 3",
	"r1bqkbnr/pppp1ppp/2n5/4p3/2B1P3/5N2/PPPP1PPP/RNBQK2R b KQkq - 3 3",
	// Ruy Lopez
	"r1bqkbnr/1ppp1ppp/p1n5/4p3/B3P3/5N2/PPPP1PPP/RNBQK2R w KQkq - 0 4",
	"r1bqk1nr/1ppp1ppp/p1n5/4p3/B3P3/5N2/PPPP1PPP/RNBQ1RK1 b kq - 1 4",
	// Italian Game
	"r1bqk1nr/pppp1ppp/2n5/2b1p3/2B1P3/5N2/PPPP1PPP/RNBQ1RK1 b kq - 5 4",
	"r1bqk2r/pppp1ppp/2n2n2/2b1p3/2B1P3/3P1N2/PPP2PPP/RNBQ1RK1 w kq - 1 6",
	// Berlin endgame
	"r1b1kb1r/ppp2ppp/2p5/3P4/8/8/PPP2PPP/RNB1KB1R b KQkq - 0 7",
	// Sicilian Najdorf
	"rnbqkb1r/1p2pppp/p2p1n2/8/3NP3/2N5/PPP2PPP/R1BQKB1R w KQkq - 0 6",
	"rnbqkb1r/1p3ppp/p2ppn2/6B1/3NP3/2N5/PPP2PPP/R2QKB1R b KQkq - 1 7",
	// Sicilian Dragon
	"rnbqkb1r/pp2pp1p/3p1np1/8/3NP3/2N5/PPP2PPP/R1BQKB1R w KQkq - 0 6",
	// French Defense
	"rnbqkbnr/ppp2ppp/4p3/3p4/3PP3/8/PPP2PPP/RNBQKBNR w KQkq - 0 3",
	"rnbqkbnr/ppp2ppp/4p3/3pP3/3P4/8/PPP2PPP/RNBQKBNR b KQkq - 0 3",
	// Caro-Kann
	"rnbqkbnr/pp1ppppp/2p5/8/3PP3/8/PPP2PPP/RNBQKBNR b KQkq - 0 2",
	"rnbqkbnr/pp2pppp/2p5/3p4/3PP3/2N5/PPP2PPP/R1BQKBNR b KQkq - 1 3",
	// Scandinavian
	"rnbqkbnr/ppp1pppp/8/3p4/4P3/8/PPPP1PPP/RNBQKBNR w KQkq - 0 2",
	"rnbqkbnr/ppp1pppp/8/8/3pP3/8/PPP2PPP/RNBQKBNR w KQkq - 0 3",
	// Pirc / Modern
	"rnbqkb1r/ppp1pp1p/3p1np1/8/2PPP3/2N5/PP3PPP/R1BQKBNR w KQkq - 0 5",
	// Alekhine
	"rnbqkb1r/ppp1pppp/3p1n2/8/3PP3/8/PPP2PPP/RNBQKBNR w KQkq - 0 3",
	// Queen's Gambit Declined
	"rnbqkbnr/ppp2ppp/4p3/3p4/2PP4/8/PP2PPPP/RNBQKBNR w KQkq - 0 3",
	"rnbqkb1r/ppp2ppp/4pn2/3p4/2PP4/2N5/PP2PPPP/R1BQKBNR w KQkq - 2 4",
	// Queen's Gambit Accepted
	"rnbqkbnr/ppp1pppp/8/8/2pP4/8/PP2PPPP/RNBQKBNR w KQkq - 0 3",
	// Nimzo-Indian
	"rnbqk2r/pppp1ppp/4pn2/8/1bPP4/2N5/PP2PPPP/R1BQKBNR w KQkq - 2 4",
	// King's Indian Defense
	"rnbqkb1r/ppp1pp1p/5np1/3p4/2PP4/2N5/PP2PPPP/R1BQKBNR w KQkq - 2 4",
	"rnbqkb1r/ppp1pp1p/3p1np1/8/2PPP3/2N5/PP3PPP/R1BQKBNR b kq - 1 5",
	// Grunfeld
	"rnbqkb1r/ppp1pp1p/5np1/3p4/2PP4/2N5/PP2PPPP/R1BQKBNR b KQkq - 2 4",
	// English Opening
	"rnbqkbnr/pppppppp/8/8/2P5/8/PP1PPPPP/RNBQKBNR b KQkq - 0 1",
	"rnbqkb1r/pppp1ppp/5n2/4p3/2P5/2N5/PP1PPPPP/R1BQKBNR w KQkq - 2 3",
	// Catalan
	"rnbqkb1r/ppp1pppp/5n2/3p4/2PP4/6P1/PP2PP1P/RNBQKBNR b KQkq - 0 3",
	// Benoni
	"rnbqkb1r/pp1p1ppp/4pn2/2pP4/2P5/8/PP2PPPP/RNBQKBNR w KQkq c6 0 4",
	// London System
	"rnbqkb1r/ppp1pppp/5n2/3p4/3P1B2/8/PPP1PPPP/RN1QKBNR b KQkq - 3 2",
	// reversible late-middlegame structures
	"r2q1rk1/ppp1bppp/2n1bn2/3p4/3P4/2NBPN2/PPP2PPP/R1BQ1RK1 w - - 6 9",
	"r1bq1rk1/pp2bppp/2n1pn2/2pp4/3P4/2PBPN2/PP1N1PPP/R1BQ1RK1 w - - 0 9",
	"2rq1rk1/pb1nbppp/1p2pn2/2pp4/3P4/1PN1PN2/PB2BPPP/R2Q1RK1 w - - 4 12",
	"r1b2rk1/1p1nqppp/p2p1n2/3Pp3/1b2P3/2N1BN2/PPQ1BPPP/2KR3R w - - 4 12",
	// opposite-side castling attack structure
	"r1bq1rk1/pp1n1ppp/2pbpn2/3p4/2PP4/2N1PN2/PP2BPPP/R1BQ1RK1 w - - 6 8",
	"rn1qkb1r/pp3ppp/2p1pn2/3p4/3P1B2/2N1PN2/PPP2PPP/R2QKB1R w KQkq - 0 6",
	// rook endgames
	"8/5pk1/6p1/8/7P/6P1/5PK1/3r4 w - - 0 1",
	"8/8/4k3/8/8/4K3/R7/8 w - - 0 1",
	"8/8/8/3k4/8/3K4/3R4/8 b - - 0 1",
	"6k1/5ppp/8/8/8/8/5PPP/R5K1 w - - 0 1",
	"1r4k1/5ppp/8/8/8/8/5PPP/1R4K1 w - - 0 1",
	// minor piece endgames
	"8/8/4k3/8/3B4/4K3/8/8 w - - 0 1",
	"8/8/4k3/8/3N4/4K3/8/8 w - - 0 1",
	"8/8/4k3/4n3/4K3/8/8/8 w - - 0 1",
	"8/3b4/4k3/8/4K3/8/3B4/8 w - - 0 1",
	"8/2b5/4k3/8/4K3/8/2N5/8 w - - 0 1",
	// bare kings and tempo
	"8/8/8/8/4k3/8/4K3/8 w - - 0 1",
	"8/8/8/8/4k3/8/4K3/8 b - - 0 1",
	"4k3/8/8/8/8/8/8/4K3 w - - 0 1",
	"k7/8/8/8/8/8/8/7K w - - 0 1",
	// pawn endgames
	"8/8/8/8/k7/P7/K7/8 w - - 0 1",
	"8/8/8/8/8/k1K5/P7/8 w - - 0 1",
	"4k3/4p3/4K3/8/8/8/8/8 w - - 0 1",
	"8/p7/k7/8/8/7K/7P/8 w - - 0 1",
	"8/8/1k6/8/1K6/8/1P6/8 w - - 0 1",
	// passed pawns at varying advancement
	"4k3/8/8/8/8/8/4P3/4K3 w - - 0 1",
	"4k3/8/8/3P4/8/8/8/4K3 w - - 0 1",
	"4k3/8/3P4/8/8/8/8/4K3 w - - 0 1",
	"4k3/3P4/8/8/8/8/8/4K3 w - - 0 1",
	"4k3/8/8/8/8/8/3p4/4K3 b - - 0 1",
	"4k3/3p4/8/8/8/8/8/4K3 b - - 0 1",
	// connected/isolated/doubled pawn structures
	"4k3/8/8/8/8/8/PPP5/4K3 w - - 0 1",
	"4k3/8/8/8/8/8/P1P1P3/4K3 w - - 0 1",
	"4k3/8/8/8/8/P7/P7/4K3 w - - 0 1",
	"4k3/8/8/8/8/8/1PPP4/4K3 w - - 0 1",
	// king safety / open-file structures
	"r3k2r/8/8/8/8/8/8/R3K2R w KQkq - 0 1",
	"r3k2r/pppq1ppp/8/8/8/8/PPPQ1PPP/R3K2R w KQkq - 0 1",
	"2kr3r/ppp2ppp/8/8/8/8/PPP2PPP/2KR3R w - - 0 1",
	"6k1/5ppp/8/8/8/8/5PPP/6K1 w - - 0 1",
	"6k1/6pp/8/8/8/8/6PP/6K1 w - - 0 1",
	// material imbalances
	"4k3/8/8/8/8/8/8/2B1KB2 w - - 0 1",
	"4k3/8/8/8/8/8/8/2N1KN2 w - - 0 1",
	"4k3/8/8/8/8/8/8/R3K3 w - - 0 1",
	"4k3/8/8/8/8/8/8/Q3K3 w - - 0 1",
	"q3k3/8/8/8/8/8/8/4K3 b - - 0 1",
	"r3k3/8/8/8/8/8/8/4K3 b - - 0 1",
	// queens on the board, open position
	"r2q1rk1/pp3ppp/2p2n2/3p4/3P4/2P2N2/PP3PPP/R2Q1RK1 w - - 0 12",
	"r4rk1/1bq2ppp/p1n1pn2/1p1p4/3P4/1BP1PN2/PP1N1PPP/R2Q1RK1 w - - 4 13",
	// castling rights edge cases
	"r3k2r/8/8/8/8/8/8/R3K2R w Kq - 0 1",
	"r3k2r/8/8/8/8/8/8/R3K2R w Qk - 0 1",
	"r3k2r/8/8/8/8/8/8/R3K2R b - - 0 1",
	// en passant edge cases
	"rnbqkbnr/ppp1p1pp/8/3pPp2/8/8/PPPP1PPP/RNBQKBNR w KQkq f6 0 4",
	"rnbqkbnr/pp1ppppp/8/2pP4/8/8/PPP1PPPP/RNBQKBNR w KQkq c6 0 3",
	// bishop pair and opposite-colored bishops
	"4k3/8/8/3b4/8/8/8/3BK3 w - - 0 1",
	"4k3/8/2b5/8/8/8/5B2/4K3 w - - 0 1",
	"4k3/3b4/8/8/8/8/4B3/4K3 b - - 0 1",
	// knight outposts
	"r1bq1rk1/pp2bppp/2n1pn2/2pp4/3P4/2PBPN2/PP1N1PPP/R1BQ1RK1 w - - 0 9",
	"r1bq1rk1/pp3ppp/2n1pn2/2pp4/3P4/2PBPN2/PP1N1PPP/R1BQ1RK1 w - - 0 9",
	// heavy-piece middlegame
	"r2qr1k1/1b3ppp/p1n1pn2/1p6/3P4/1BP1PN2/PP1N1PPP/R2Q1RK1 w - - 2 14",
	"2rq1rk1/pb1n1ppp/1p2pn2/2pp4/3P4/1PN1PN2/PB3PPP/2RQ1RK1 w - - 2 13",
	// promotion-adjacent structures
	"8/4P3/8/8/8/8/4k3/4K3 w - - 0 1",
	"4k3/8/8/8/8/8/4p3/4K3 b - - 0 1",
	"8/1P6/8/8/8/8/1k6/1K6 w - - 0 1",
	// late endgame with scaling relevance
	"8/5k2/8/8/8/5B2/5K2/8 w - - 0 1",
	"8/5k2/8/8/3n4/5B2/5K2/8 w - - 0 1",
	"8/5k2/8/8/8/3N1B2/5K2/8 w - - 0 1",
	"8/3k4/8/8/8/3NB3/3K4/8 w - - 0 1",
}

func main() {
	update := flag.Bool("update", false, "rewrite the baseline file from the current evaluator output")
	baseline := flag.String("baseline", "testing/regression.baseline", "path to the saved baseline file")
	flag.Parse()

	bar := progressbar.Default(int64(len(fens)), "evaluating regression suite")

	scores := make([]int, len(fens))
	for i, fen := range fens {
		b := board.New(fen)
		evaluator := classical.EfficientlyUpdatable{Board: b}
		score := evaluator.Accumulate(b.SideToMove)

		// determinism: evaluating twice from scratch must agree
		again := classical.EfficientlyUpdatable{Board: board.New(fen)}
		if score2 := again.Accumulate(b.SideToMove); score2 != score {
			fmt.Fprintf(os.Stderr, "non-deterministic evaluation for %q: %d vs %d\n", fen, score, score2)
			os.Exit(1)
		}

		if evaluator.Phase < 0 || evaluator.Phase > classical.MaxPhase {
			fmt.Fprintf(os.Stderr, "phase out of bounds for %q: %d\n", fen, evaluator.Phase)
			os.Exit(1)
		}

		scores[i] = int(score)
		_ = bar.Add(1)
	}

	if *update {
		assert(writeBaseline(*baseline, fens, scores))
		fmt.Printf("wrote baseline with %d positions to %s\n", len(fens), *baseline)
		return
	}

	prev, err := readBaseline(*baseline)
	if err != nil {
		fmt.Printf("no baseline at %s yet; run with -update to create one\n", *baseline)
		return
	}

	mismatches := 0
	for i, fen := range fens {
		want, ok := prev[fen]
		if !ok {
			continue
		}
		if want != scores[i] {
			mismatches++
			fmt.Printf("regression: %q changed from %d to %d\n", fen, want, scores[i])
		}
	}

	if mismatches > 0 {
		fmt.Printf("%d/%d positions changed evaluation\n", mismatches, len(fens))
		os.Exit(1)
	}

	fmt.Printf("all %d positions match the saved baseline\n", len(fens))
}

func writeBaseline(path string, fens []string, scores []int) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	w := bufio.NewWriter(f)
	for i, fen := range fens {
		if _, err := fmt.Fprintf(w, "%s\t%d\n", fen, scores[i]); err != nil {
			return err
		}
	}
	return w.Flush()
}

func readBaseline(path string) (map[string]int, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	out := make(map[string]int)
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		line := scanner.Text()
		parts := strings.Split(line, "\t")
		if len(parts) != 2 {
			continue
		}
		score, err := strconv.Atoi(parts[1])
		if err != nil {
			continue
		}
		out[parts[0]] = score
	}
	return out, scanner.Err()
}

func assert(err error) {
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
