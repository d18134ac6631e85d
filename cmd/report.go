package main

import (
	"fmt"
	"io"

	"academy-service/internal/config"
	"academy-service/internal/models"
	"academy-service/internal/service"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

var reportCmd = &cobra.Command{
	Use:   "report",
	Short: "Print Jedi with their padawan counts",
	RunE: func(cmd *cobra.Command, args []string) error {
		moreOne, _ := cmd.Flags().GetBool("more-one")
		page, _ := cmd.Flags().GetString("page")

		cfg := config.Load()
		store, err := openStore(cmd.Context(), cfg)
		if err != nil {
			return err
		}
		defer store.Close()

		reports := service.NewReportService(store, cfg.Academy.PageSize)
		var result *models.Page[models.JediSummary]
		if moreOne {
			result, err = reports.JediWithMoreThanOnePadawan(cmd.Context(), page)
		} else {
			result, err = reports.AllJedi(cmd.Context(), page)
		}
		if err != nil {
			return err
		}

		printReport(cmd.OutOrStdout(), result, cfg.Academy.PadawanLimit)
		return nil
	},
}

func init() {
	reportCmd.Flags().Bool("more-one", false, "Only Jedi with more than one padawan")
	reportCmd.Flags().String("page", "", `Page number or "last"`)
}

var (
	header = color.New(color.FgCyan, color.Bold)
	full   = color.New(color.FgRed)
	open   = color.New(color.FgGreen)
)

func printReport(w io.Writer, page *models.Page[models.JediSummary], limit int) {
	header.Fprintf(w, "%-24s %-16s %s\n", "JEDI", "PLANET", "PADAWANS")
	for _, s := range page.Items {
		c := open
		if s.PadawansCount >= limit {
			c = full
		}
		fmt.Fprintf(w, "%-24s %-16s ", s.Name, s.PlanetName)
		c.Fprintf(w, "%d/%d\n", s.PadawansCount, limit)
	}
	fmt.Fprintf(w, "page %d of %d, %d jedi\n", page.Number, page.NumPages, page.Total)
}
