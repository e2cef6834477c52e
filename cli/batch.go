package cli

import (
	"errors"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"airbnb-pricing/models"
	"airbnb-pricing/pricing"
	"airbnb-pricing/storage"
	"airbnb-pricing/utils"
)

func batchCmd(a *app) *cobra.Command {
	var (
		inPath, outPath string
		save            bool
	)

	c := &cobra.Command{
		Use:   "batch",
		Short: "Estimate every listing in a CSV or YAML file and export the results to CSV",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			start := time.Now()
			if outPath == "" {
				outPath = a.cfg.CSVOutputPath
			}

			inputs, err := storage.LoadInputs(inPath)
			if err != nil {
				return err
			}
			a.logger.Info("[batch] Loaded %d listings from %s", len(inputs), inPath)

			records, failed := estimateAll(cmd, a, inputs)
			if len(records) == 0 && len(inputs) > 0 {
				return fmt.Errorf("batch: all %d listings were rejected", len(inputs))
			}

			w, err := storage.NewCSVWriter(outPath)
			if err != nil {
				return err
			}
			if err := w.Write(records); err != nil {
				_ = w.Close()
				return err
			}
			if err := w.Close(); err != nil {
				return err
			}

			if save {
				if err := persist(cmd, a, records); err != nil {
					return err
				}
			}

			a.logger.Info("[batch] Done in %s", utils.Since(start))
			fmt.Fprintf(cmd.OutOrStdout(), "Estimated %d listings (%d rejected) → %s\n", len(records), failed, outPath)
			return nil
		},
	}

	c.Flags().StringVar(&inPath, "in", "", "input file (.csv, .yaml or .yml)")
	c.Flags().StringVar(&outPath, "out", "", "output CSV (default CSV_OUTPUT_PATH)")
	c.Flags().BoolVar(&save, "save", false, "persist results to the configured store")
	_ = c.MarkFlagRequired("in")
	return c
}

// estimateAll runs the estimator over a worker pool and returns the records
// in input order. Rejected listings are logged and counted.
func estimateAll(cmd *cobra.Command, a *app, inputs []models.ListingInput) ([]*storage.EstimateRecord, int) {
	results := make([]*storage.EstimateRecord, len(inputs))
	pool := utils.NewWorkerPool(a.cfg.MaxConcurrency, 0)

	for i, in := range inputs {
		i, in := i, in // per-iteration copies; go.mod targets Go 1.21 loop semantics
		err := pool.Submit(cmd.Context(), func() {
			if err := pricing.Validate(in); err != nil {
				a.logger.Warn("[batch] Listing %d rejected: %v", i+1, err)
				return
			}
			est, err := pricing.Estimate(in)
			if err != nil {
				a.logger.Warn("[batch] Listing %d rejected: %v", i+1, err)
				return
			}
			results[i] = storage.NewRecord(in, est)
		})
		if err != nil {
			a.logger.Warn("[batch] Stopped early: %v", err)
			break
		}
	}
	pool.Wait()

	records := make([]*storage.EstimateRecord, 0, len(results))
	for _, r := range results {
		if r != nil {
			records = append(records, r)
		}
	}
	return records, len(inputs) - len(records)
}

func persist(cmd *cobra.Command, a *app, records []*storage.EstimateRecord) error {
	store, err := storage.Open(cmd.Context(), a.cfg)
	if errors.Is(err, storage.ErrNoStore) {
		a.logger.Warn("[batch] --save ignored: STORE_DRIVER is none")
		return nil
	}
	if err != nil {
		return err
	}
	defer store.Close()

	if err := store.Save(cmd.Context(), records...); err != nil {
		return err
	}
	a.logger.Info("[batch] Stored %d estimates (%s)", len(records), a.cfg.StoreDriver)
	return nil
}
