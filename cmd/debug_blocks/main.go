package main

import (
	"fmt"
	"log"
	"os"
	"path/filepath"

	"matchup-model/core/config"
	"matchup-model/core/diag"
	"matchup-model/core/model"
	"matchup-model/feature/cumulative"
)

func main() {
	if len(os.Args) < 2 {
		log.Fatal("usage: debug_blocks <cumulative.txt> [block index]")
	}

	cfg, err := config.LoadConfig(".")
	if err != nil {
		log.Fatal(err)
	}
	opts, err := cfg.Pipeline.Options()
	if err != nil {
		log.Fatal(err)
	}

	data, err := os.ReadFile(os.Args[1])
	if err != nil {
		log.Fatal(err)
	}
	doc := cumulative.NewDocument(filepath.Base(os.Args[1]), string(data))

	only := -1
	if len(os.Args) > 2 {
		fmt.Sscan(os.Args[2], &only)
	}

	ctx := opts.Noise.InferContext(doc, opts.YearStrategy)
	fmt.Printf("=== CONTEXT ===\ntournament=%q year=%q source=%q\n", ctx.Tournament, ctx.Year, ctx.Source)

	diags := diag.New()
	blocks := opts.Noise.Segment(doc, diags)
	fmt.Printf("blocks kept: %d\n", len(blocks))

	for _, b := range blocks {
		if only >= 0 && b.Index != only {
			continue
		}
		header, rounds := cumulative.RecoverHeader(b.Lines)
		fmt.Printf("\n=== BLOCK %d (%d lines) ===\n", b.Index, len(b.Lines))
		fmt.Printf("code=%q member1=%q member2=%q\n", header.Code(), header.Member1, header.Member2)
		for i, group := range cumulative.SplitRounds(rounds) {
			fmt.Printf("  group %d: %q\n", i+1, group)
		}
		for _, o := range cumulative.ParseBlock(b, ctx, diags) {
			fmt.Printf("  round %d: %s vs %s side=%s outcome=%s speakers=%v\n",
				o.Round, o.Team, o.Opponent(), o.Side(), o.Outcome(), o.Speakers())
			if o.Result.Kind() != model.KindRegular {
				fmt.Printf("    (%s)\n", o.Result.Kind())
			}
		}
	}

	fmt.Println("\n=== DIAGNOSTICS ===")
	for _, e := range diags.Entries() {
		fmt.Println(e.String())
	}
}
