package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/JonMunkholm/catalog-admin/internal/catalog"
	"github.com/JonMunkholm/catalog-admin/internal/export"
	"github.com/JonMunkholm/catalog-admin/internal/view"
)

// exportOptions select which products the export command writes.
type exportOptions struct {
	Search string
	Sort   string
	Desc   bool
	Out    string
}

var errDescWithoutSort = errors.New("--desc requires --sort")

// productLister fetches the full product list.
type productLister interface {
	List(ctx context.Context) ([]catalog.Product, error)
}

func newExportCmd() *cobra.Command {
	var opts exportOptions

	cmd := &cobra.Command{
		Use:   "export",
		Short: "Write the catalog as CSV, filtered and sorted like the panel",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return fmt.Errorf("load configuration: %w", err)
			}
			client := catalog.NewClient(cfg.Catalog.BaseURL, cfg.Catalog.Timeout)

			if opts.Out == "-" {
				return runExport(cmd.Context(), client, opts, cmd.OutOrStdout())
			}

			f, err := os.Create(opts.Out)
			if err != nil {
				return fmt.Errorf("create %s: %w", opts.Out, err)
			}
			if err := runExport(cmd.Context(), client, opts, f); err != nil {
				f.Close()
				os.Remove(opts.Out)
				return err
			}
			if err := f.Close(); err != nil {
				return fmt.Errorf("close %s: %w", opts.Out, err)
			}
			slog.Info("export written", "file", opts.Out)
			return nil
		},
	}

	cmd.Flags().StringVar(&opts.Search, "search", "", "keep products whose title contains this text")
	cmd.Flags().StringVar(&opts.Sort, "sort", "", "sort column: title or price")
	cmd.Flags().BoolVar(&opts.Desc, "desc", false, "sort descending")
	cmd.Flags().StringVarP(&opts.Out, "out", "o", export.Filename, `output file, "-" for stdout`)
	return cmd
}

// runExport fetches the catalog, applies the same view rules as the panel
// and writes every matching product to w.
func runExport(ctx context.Context, cat productLister, opts exportOptions, w io.Writer) error {
	if opts.Desc && opts.Sort == "" {
		return errDescWithoutSort
	}

	products, err := cat.List(ctx)
	if err != nil {
		return fmt.Errorf("fetch products: %w", err)
	}

	st := view.New(view.DefaultPageSize)
	st.SetFullSet(products)
	st.SetKeyword(opts.Search)

	if opts.Sort != "" {
		if err := st.SetSort(view.Column(opts.Sort)); err != nil {
			return fmt.Errorf("--sort %q: %w", opts.Sort, err)
		}
		if opts.Desc {
			if err := st.SetSort(view.Column(opts.Sort)); err != nil {
				return fmt.Errorf("--sort %q: %w", opts.Sort, err)
			}
		}
	}

	return export.Write(w, st.Filtered())
}
