package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/NateStaxx/FetchDeck/internal/config"
	"github.com/NateStaxx/FetchDeck/internal/panel"
	"github.com/NateStaxx/FetchDeck/internal/store"
)

// Runtime is everything the commands need, built once by main.
type Runtime struct {
	Config   *config.AppConfig
	Log      *zap.Logger
	Service  *panel.Service
	Statuses *store.MemoryStore
}

// New builds the root command. Running it without a subcommand serves the page.
func New(rt Runtime) *cobra.Command {
	root := &cobra.Command{
		Use:           "fetchdeck",
		Short:         "Serve a page of panels backed by public HTTP APIs",
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return serve(cmd.Context(), rt)
		},
	}

	root.AddCommand(
		&cobra.Command{
			Use:   "serve",
			Short: "Serve the page and the panel fragments over HTTP",
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, _ []string) error {
				return serve(cmd.Context(), rt)
			},
		},
		panelsCommand(rt),
		renderCommand(rt),
	)
	return root
}

func panelsCommand(rt Runtime) *cobra.Command {
	return &cobra.Command{
		Use:   "panels",
		Short: "List the available panels and their inputs",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			w := cmd.OutOrStdout()
			for _, m := range rt.Service.Panels() {
				fields := make([]string, 0, len(m.Fields))
				for _, f := range m.Fields {
					fields = append(fields, f.Name)
				}
				fmt.Fprintf(w, "%-10s\t%s", m.Name, m.Title)
				if len(fields) > 0 {
					fmt.Fprintf(w, "\t[%s]", strings.Join(fields, ", "))
				}
				fmt.Fprintln(w)
			}
			return nil
		},
	}
}

func renderCommand(rt Runtime) *cobra.Command {
	var sets []string

	cmd := &cobra.Command{
		Use:   "render <panel>",
		Short: "Run one panel and print its HTML fragment",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			in, err := parseSets(sets)
			if err != nil {
				return err
			}

			out, err := rt.Service.Render(cmd.Context(), args[0], in)
			if err != nil {
				return err
			}

			fmt.Fprintln(cmd.OutOrStdout(), string(out.Fragment))
			if !out.OK() {
				return fmt.Errorf("panel %s failed (%s)", out.Panel, panel.ReasonOf(out.Err))
			}
			return nil
		},
	}
	cmd.Flags().StringArrayVar(&sets, "set", nil, "panel input as key=value (repeatable)")
	return cmd
}

func parseSets(sets []string) (panel.Input, error) {
	in := make(panel.Input, len(sets))
	for _, s := range sets {
		key, value, ok := strings.Cut(s, "=")
		key = strings.TrimSpace(key)
		if !ok || key == "" {
			return nil, fmt.Errorf("invalid --set %q: want key=value", s)
		}
		in[key] = value
	}
	return in, nil
}
