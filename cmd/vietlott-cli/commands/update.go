package commands

import (
	"log/slog"
	"os"
	"vietlott-backend/lib/configutil"
	"vietlott-backend/lib/products"
	"vietlott-backend/lib/serviceutil"
	"vietlott-backend/services/lottery"

	"github.com/spf13/cobra"
)

type Config struct {
	Products []string `json:"products"`
	Pages    int      `json:"pages"`
}

var updatePages *int

func init() {
	updatePages = updateCmd.Flags().Int("pages", 0, "Pages of history to fetch per product (10 draws each).")
	rootCmd.AddCommand(updateCmd)
}

var updateCmd = &cobra.Command{
	Use:   "update [product]...",
	Short: "Crawls the latest draws for the given products and merges them into their stores.",
	Run: func(cmd *cobra.Command, args []string) {
		cfg, err := configutil.ReadConfig[Config]("crawler.json5")
		if err != nil && !os.IsNotExist(err) {
			serviceutil.Fatal("failed to read config", err)
		}

		keys := products.DefaultUpdateOrder
		if len(cfg.Products) > 0 {
			keys = cfg.Products
		}
		if len(args) > 0 {
			keys = args
		}

		pages := 5
		if cfg.Pages > 0 {
			pages = cfg.Pages
		}
		if *updatePages > 0 {
			pages = *updatePages
		}

		for _, key := range keys {
			product, err := products.Get(key)
			if err != nil {
				slog.Error("skipping unknown product", "key", key, "err", err)
				continue
			}

			slog.Info("updating product", "product", product.Name)
			added, err := lottery.Update(cmd.Context(), product, pages)
			if err != nil {
				slog.Error("failed to update product", "product", product.Name, "err", err)
				continue
			}
			if added > 0 {
				slog.Info("added new records", "product", product.Name, "records", added)
			} else {
				slog.Info("already up to date", "product", product.Name)
			}
		}
	},
}
