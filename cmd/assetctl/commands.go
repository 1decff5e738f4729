package main

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"assetlib/internal/exporter"
	"assetlib/internal/services"
	"assetlib/pkg/contracts"
	"assetlib/pkg/contracts/domain"
)

func newSearchCmd(opts *rootOptions) *cobra.Command {
	var (
		tab          string
		includeAreas bool
		asJSON       bool
	)

	cmd := &cobra.Command{
		Use:   "search <query>",
		Short: "Search KPIs, layouts and storyboards by name or description",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			query := ""
			if len(args) == 1 {
				query = strings.TrimSpace(args[0])
			}

			lib, err := opts.open(cmd.Context(), cmd)
			if err != nil {
				return err
			}
			defer lib.Close()

			searchOpts := services.SearchOptions{IncludeAreas: includeAreas}
			var items []domain.AssetItem
			if tab == "" {
				items = lib.assets.SearchAcrossAll(cmd.Context(), query, searchOpts)
			} else {
				t := domain.Tab(strings.ToLower(tab))
				if !t.Valid() {
					return fmt.Errorf("%w: %q", services.ErrInvalidTab, tab)
				}
				items = lib.assets.SearchInTab(cmd.Context(), query, t, searchOpts).Items
			}

			if asJSON {
				return writeJSON(cmd.OutOrStdout(), items)
			}
			return writeItems(cmd.OutOrStdout(), items)
		},
	}

	cmd.Flags().StringVar(&tab, "tab", "", "limit results to a tab: featured, kpi, layouts or storyboards")
	cmd.Flags().BoolVar(&includeAreas, "areas", false, "also match KPI business areas")
	cmd.Flags().BoolVar(&asJSON, "json", false, "print JSON")
	return cmd
}

func newExportCmd(opts *rootOptions) *cobra.Command {
	var (
		format string
		output string
	)

	cmd := &cobra.Command{
		Use:   "export",
		Short: "Export the catalog as XLSX or CSV",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			f, err := exporter.ParseFormat(format)
			if err != nil {
				return err
			}

			lib, err := opts.open(cmd.Context(), cmd)
			if err != nil {
				return err
			}
			defer lib.Close()

			var buf bytes.Buffer
			if err := exporter.Export(&buf, f, lib.catalog.Snapshot()); err != nil {
				return fmt.Errorf("export catalog: %w", err)
			}

			if output == "" {
				output = f.Filename()
			}
			if output == "-" {
				_, err = buf.WriteTo(cmd.OutOrStdout())
				return err
			}
			if err := os.WriteFile(output, buf.Bytes(), 0644); err != nil {
				return fmt.Errorf("write %s: %w", output, err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Exported catalog to %s\n", output)
			return nil
		},
	}

	cmd.Flags().StringVarP(&format, "format", "f", string(exporter.FormatXLSX), "xlsx or csv")
	cmd.Flags().StringVarP(&output, "output", "o", "", "output file, - for stdout")
	return cmd
}

func newFavoritesCmd(opts *rootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "favorites",
		Short: "List or toggle favorites",
	}

	list := &cobra.Command{
		Use:   "list",
		Short: "List favorites in the order they were added",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			lib, err := opts.open(cmd.Context(), cmd)
			if err != nil {
				return err
			}
			defer lib.Close()

			items, err := lib.assets.GetFavorites(cmd.Context())
			if err != nil {
				return err
			}
			return writeItems(cmd.OutOrStdout(), items)
		},
	}

	toggle := &cobra.Command{
		Use:   "toggle <type> <id>",
		Short: "Add or remove a favorite",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			assetType, ok := domain.ParseAssetType(args[0])
			if !ok {
				return fmt.Errorf("%w: %q", services.ErrInvalidAssetType, args[0])
			}
			ref := domain.Asset{ID: args[1], Type: assetType}

			lib, err := opts.open(cmd.Context(), cmd)
			if err != nil {
				return err
			}
			defer lib.Close()

			if _, found := lib.assets.GetAssetDetails(cmd.Context(), ref); !found {
				return fmt.Errorf("%w: %s %s", services.ErrAssetNotFound, ref.Type, ref.ID)
			}
			if _, err := lib.assets.ToggleFavorite(cmd.Context(), ref); err != nil {
				return err
			}
			favorite, err := lib.assets.IsFavorite(cmd.Context(), ref)
			if err != nil {
				return err
			}

			verb := "Removed"
			if favorite {
				verb = "Added"
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s %s %s\n", verb, ref.Type, ref.ID)
			return nil
		},
	}

	cmd.AddCommand(list, toggle)
	return cmd
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintln(cmd.OutOrStdout(), contracts.GetFullVersionString())
		},
	}
}

func writeItems(w io.Writer, items []domain.AssetItem) error {
	if len(items) == 0 {
		_, err := fmt.Fprintln(w, "No items")
		return err
	}
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "TYPE\tID\tNAME")
	for _, item := range items {
		fmt.Fprintf(tw, "%s\t%s\t%s\n", item.Type, item.ID, item.Name)
	}
	return tw.Flush()
}

func writeJSON(w io.Writer, v interface{}) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
