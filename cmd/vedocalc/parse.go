package main

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/piwi3910/VedoCalc/internal/model"
)

var parseCmd = &cobra.Command{
	Use:   "parse [identifier...]",
	Short: "Decode item identifiers and print their fields",
	Args:  cobra.MinimumNArgs(1),
	RunE:  runParse,
}

func runParse(cmd *cobra.Command, args []string) error {
	w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
	defer w.Flush()

	fmt.Fprintln(w, "IDENTIFIER\tNAME\tWIDTH\tLENGTH\tPROJECTION\tFORM")
	for _, id := range args {
		spec, err := model.ParseIdentifier(id)
		if err != nil {
			return err
		}
		fmt.Fprintf(w, "%s\t%s\t%d\t%d\t%d\t%d\n",
			id, spec.DisplayName(), spec.WidthMM, spec.LengthMM, spec.ProjectionMM, spec.FormType)
	}
	return nil
}
