package cli

import (
	"encoding/json"
	"errors"

	"github.com/spf13/cobra"

	"airbnb-pricing/pricing"
	"airbnb-pricing/storage"
)

func estimateCmd(a *app) *cobra.Command {
	var (
		asJSON, save bool
		listing      *listingFlags
	)

	c := &cobra.Command{
		Use:   "estimate",
		Short: "Estimate the nightly rate of one listing",
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

			rec := storage.NewRecord(in, est)
			if save {
				store, err := storage.Open(cmd.Context(), a.cfg)
				if err != nil {
					if errors.Is(err, storage.ErrNoStore) {
						a.logger.Warn("[estimate] --save ignored: STORE_DRIVER is none")
					} else {
						return err
					}
				} else {
					defer store.Close()
					if err := store.Save(cmd.Context(), rec); err != nil {
						return err
					}
					a.logger.Info("[estimate] Saved estimate %s", rec.ID)
				}
			}

			out := cmd.OutOrStdout()
			if asJSON {
				enc := json.NewEncoder(out)
				enc.SetIndent("", "  ")
				return enc.Encode(rec)
			}
			printEstimate(out, in, est)
			return nil
		},
	}

	listing = addListingFlags(c)
	c.Flags().BoolVar(&asJSON, "json", false, "print the estimate record as JSON")
	c.Flags().BoolVar(&save, "save", false, "persist the estimate to the configured store")
	return c
}
