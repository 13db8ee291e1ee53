package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"text/tabwriter"

	"itrfiling/internal/service"
	"itrfiling/internal/taxengine"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

func newSchedulesCommand(v *viper.Viper) *cobra.Command {
	var asJSON bool
	cmd := &cobra.Command{
		Use:   "schedules",
		Short: "Print the slab schedules in effect",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			res := service.NewTaxService(taxengine.NewEngine(engineOptions(v))).Schedules(context.Background())
			if asJSON {
				enc := json.NewEncoder(cmd.OutOrStdout())
				enc.SetIndent("", "  ")
				return enc.Encode(res)
			}
			schedules := append([]taxengine.TaxRegimeSchedule{res.Old, res.New}, res.Senior...)
			for _, s := range schedules {
				if err := printSchedule(cmd.OutOrStdout(), s); err != nil {
					return err
				}
			}
			return nil
		},
	}
	cmd.Flags().BoolVar(&asJSON, "json", false, "print as JSON")
	return cmd
}

func printSchedule(out io.Writer, s taxengine.TaxRegimeSchedule) error {
	fmt.Fprintf(out, "%s (standard deduction %s, cess %s%%)\n",
		s.Name, s.StandardDeduction.StringFixed(0), s.CessRate.Shift(2).String())
	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	for _, slab := range s.Slabs {
		upper := "and above"
		if slab.UpperBound != nil {
			upper = "to " + slab.UpperBound.StringFixed(0)
		}
		fmt.Fprintf(w, "  %s\t%s\t%s%%\n", slab.LowerBound.StringFixed(0), upper, slab.Rate.Shift(2).String())
	}
	if err := w.Flush(); err != nil {
		return err
	}
	_, err := fmt.Fprintln(out)
	return err
}
