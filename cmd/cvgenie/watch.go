package main

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/jonathan/cv-genie/internal/watch"
)

func newWatchCmd(a *app) *cobra.Command {
	var (
		template string
		out      string
		debounce time.Duration
	)

	cmd := &cobra.Command{
		Use:   "watch",
		Short: "Re-render the CV whenever the record file changes",
		Long:  "Watch renders the record to --out on start and after every save. A failed render keeps the previous output.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			w, err := watch.New(watch.Options{
				RecordPath: a.recordPath,
				OutputPath: out,
				Template:   a.template(template),
				Registry:   a.registry,
				Logger:     a.logger,
				Debounce:   debounce,
				OnRender: func(res watch.Result) {
					if res.Err != nil {
						fmt.Fprintf(cmd.ErrOrStderr(), "%s render failed: %v\n", res.At.Format(time.TimeOnly), res.Err)
						return
					}
					fmt.Fprintf(cmd.OutOrStdout(), "%s rendered %s\n", res.At.Format(time.TimeOnly), out)
				},
			})
			if err != nil {
				return err
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			return w.Run(ctx)
		},
	}

	cmd.Flags().StringVarP(&template, "template", "t", "", "Template id (default from config)")
	cmd.Flags().StringVarP(&out, "out", "o", "", "Output file (.html or .md)")
	cmd.Flags().DurationVar(&debounce, "debounce", watch.DefaultDebounce, "Delay before re-rendering after a change")
	_ = cmd.MarkFlagRequired("out")
	return cmd
}
