package cmd

import (
	"encoding/json"
	"fmt"
	"text/tabwriter"

	"github.com/pkg/errors"
	"github.com/spf13/afero"
	"github.com/spf13/cobra"

	"github.com/wayneeseguin/debugkit/pkg/topics"
)

func newTopicsCmd(fs afero.Fs, opts *rootOptions) *cobra.Command {
	var format string

	topicsCmd := &cobra.Command{
		Use:   "topics",
		Short: "List the available debug topics",
		Long: `List the topics that --debug accepts, from --config or the built-in set.

Output formats:
  table - Human-readable table format (default)
  json  - The topic set as {"topics": [{"level": 0, "label": "info"}, ...]}`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(fs, opts.configPath)
			if err != nil {
				return err
			}
			reg, err := cfg.Registry()
			if err != nil {
				return err
			}

			switch format {
			case "table":
				w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
				fmt.Fprintln(w, "LEVEL\tLABEL\tCATCH-ALL")
				for _, t := range reg.Topics() {
					catchAll := ""
					if t.IsCatchAll() {
						catchAll = "yes"
					}
					fmt.Fprintf(w, "%d\t%s\t%s\n", t.Level(), t.Name(), catchAll)
				}
				return w.Flush()
			case "json":
				data, err := json.MarshalIndent(topics.SetFromSlice(reg.Topics()), "", "  ")
				if err != nil {
					return errors.Wrap(err, "encode topics")
				}
				_, err = fmt.Fprintln(cmd.OutOrStdout(), string(data))
				return err
			default:
				return errors.Errorf("invalid format %q: valid formats are table, json", format)
			}
		},
	}

	topicsCmd.Flags().StringVarP(&format, "format", "f", "table", "output format: table or json")
	return topicsCmd
}
