package main

import (
	"fmt"
	"io"
	"os"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/common/expfmt"
	"github.com/spf13/cobra"
	"golang.org/x/term"
)

func newRunCmd(a *app) *cobra.Command {
	var dumpMetrics bool
	cmd := &cobra.Command{
		Use:   "run",
		Short: "Convert every configured array and print a summary",
		Example: "  arraybridge run\n" +
			"  arraybridge run --config arrays.yaml --metrics",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			s, err := a.open(ctx, a.log)
			if err != nil {
				return err
			}
			defer s.Close(ctx)

			results := s.builder.Run(s.conv, a.specs())
			defer func() {
				for i := range results {
					results[i].Release()
				}
			}()

			out := cmd.OutOrStdout()
			info := sessionInfo{device: s.dev.Name(), unified: s.unified}
			if isTerminal(out) {
				renderStyled(out, info, results)
			} else {
				renderPlain(out, info, results)
			}

			if dumpMetrics {
				fmt.Fprintln(out)
				if err := writeMetrics(out, s.reg); err != nil {
					return err
				}
			}

			failed := 0
			for _, r := range results {
				if !r.Verified {
					failed++
				}
			}
			if failed > 0 {
				return fmt.Errorf("%d of %d arrays failed", failed, len(results))
			}
			return nil
		},
	}
	cmd.Flags().BoolVar(&dumpMetrics, "metrics", false, "Print conversion metrics in the Prometheus text format")
	return cmd
}

func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	return ok && term.IsTerminal(int(f.Fd()))
}

// writeMetrics writes every family gathered from g in the text exposition format.
func writeMetrics(w io.Writer, g prometheus.Gatherer) error {
	families, err := g.Gather()
	if err != nil {
		return err
	}
	enc := expfmt.NewEncoder(w, expfmt.NewFormat(expfmt.TypeTextPlain))
	for _, mf := range families {
		if err := enc.Encode(mf); err != nil {
			return err
		}
	}
	return nil
}
