package main

import (
	"fmt"
	"os"

	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/revengio/reveng/pkg/bitpoly"
	"github.com/revengio/reveng/pkg/model"
	"github.com/revengio/reveng/pkg/reveng"
	"github.com/revengio/reveng/pkg/wflags"
)

// cliReporter adapts pkg/reveng's Reporter to the CLI's found/progress/error
// callback contract from spec.md §6: every found model is printed
// immediately, progress is logged only under --verbose, and Error is fatal.
type cliReporter struct {
	verbose bool
	results []model.Model
}

func (r *cliReporter) Found(m model.Model) {
	r.results = append(r.results, m)
	fmt.Println(m.String())
}

func (r *cliReporter) Progress(p bitpoly.Poly, _ wflags.Flags, seq uint64) {
	if r.verbose && seq > 0 {
		log.Debugf("search: trying candidate #%d (%s)", seq, p.Hex())
	}
}

func (r *cliReporter) Error(msg string) { fatal("%s", msg) }

var searchCmd = &cobra.Command{
	Use:   "search [sample ...]",
	Short: "Search for model parameters consistent with message+CRC samples (-s).",
	Args:  cobra.MinimumNArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		guess, have, qpoly, err := resolveGuess(cmd)
		if err != nil {
			fatal("%v", err)
		}
		if guess.Width() == 0 {
			fatal("a width must be supplied via -w, -p, -k or -m")
		}

		samples := make([]bitpoly.Poly, 0, len(args))
		for _, arg := range args {
			p, err := readArg(cmd, arg, GetInt(cmd, "ibits"), guess.Flags)
			if err != nil {
				fatal("%v", err)
			}
			samples = append(samples, p)
		}

		rep := &cliReporter{verbose: GetFlag(cmd, "verbose")}
		results, err := reveng.Search(guess, qpoly, have, samples, rep)
		if err != nil {
			fatal("%v", err)
		}
		if len(results) == 0 {
			fmt.Fprintln(os.Stderr, "no models found")
			os.Exit(1)
		}
	},
}

func init() {
	registerParamFlags(searchCmd)
	rootCmd.AddCommand(searchCmd)
}
