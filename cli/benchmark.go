package cli

import (
	"context"

	"github.com/spf13/cobra"

	"airbnb-pricing/config"
	"airbnb-pricing/models"
	"airbnb-pricing/pricing"
	"airbnb-pricing/scraper/airbnb"
	"airbnb-pricing/services"
	"airbnb-pricing/utils"
)

// comparableSource fetches raw market listings for a city and property type.
type comparableSource interface {
	Scrape(ctx context.Context, city models.City, pt models.PropertyType) ([]*models.RawListing, error)
}

func airbnbSource(cfg *config.Config, logger *utils.Logger) comparableSource {
	return airbnb.New(cfg, logger)
}

func benchmarkCmd(a *app) *cobra.Command {
	var (
		pages   int
		listing *listingFlags
	)

	c := &cobra.Command{
		Use:   "benchmark",
		Short: "Compare an estimate with live Airbnb comparables (needs Chrome)",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			in, err := listing.input()
			if err != nil {
				return err
			}
			est, err := pricing.Estimate(in)
			if err != nil {
				return err
			}
			if pages > 0 {
				a.cfg.PagesToScrape = pages
			}

			raw, err := a.newSource(a.cfg, a.logger).Scrape(cmd.Context(), in.City, in.PropertyType)
			if err != nil {
				a.logger.Error("[benchmark] Scrape failed: %v", err)
			}

			comps := services.NewCleaner(a.logger).Clean(raw)
			bench := services.NewBenchmarkService(a.logger)
			report := bench.Generate(in.City, est, comps)
			_, werr := cmd.OutOrStdout().Write([]byte(bench.Render(report)))
			return werr
		},
	}

	listing = addListingFlags(c)
	c.Flags().IntVar(&pages, "pages", 0, "search pages to scrape (default PAGES_TO_SCRAPE)")
	return c
}
