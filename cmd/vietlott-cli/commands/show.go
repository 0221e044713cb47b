package commands

import (
	"fmt"
	"os"
	"vietlott-backend/services/lottery"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"
)

var showCount *int

func init() {
	showCount = showCmd.Flags().IntP("count", "n", 10, "Number of newest draws to print.")
	rootCmd.AddCommand(showCmd)
}

var showCmd = &cobra.Command{
	Use:   "show <product>",
	Short: "Prints the newest stored draws for a product.",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		records, err := lottery.LoadProduct(args[0])
		if err != nil {
			fmt.Fprintln(os.Stderr, err.Error())
			os.Exit(1)
		}

		if len(records) > *showCount {
			records = records[len(records)-*showCount:]
		}

		t := table.NewWriter()
		t.SetOutputMirror(os.Stdout)
		t.AppendHeader(table.Row{"Draw", "Date", "Result"})

		for _, r := range records {
			t.AppendRow(table.Row{r.ID, r.Date.String(), r.Result.String()})
		}

		t.SetStyle(table.StyleRounded)
		t.Render()
	},
}
