package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

var seedFile string

var seedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Load the menu file into an empty catalog",
	Long: `Create the catalog tables and insert the products from the menu file.

A catalog that already has products is left untouched.`,
	RunE: runSeed,
}

func init() {
	seedCmd.Flags().StringVarP(&seedFile, "file", "f", "", "menu YAML file (default: catalog.seed_file)")
}

func runSeed(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	path := seedFile
	if path == "" {
		path = cfg.Catalog.SeedFile
	}
	if path == "" {
		return fmt.Errorf("no menu file given (use --file or catalog.seed_file)")
	}

	store, err := openCatalog(cmd.Context(), cfg)
	if err != nil {
		return err
	}
	defer store.Close()

	added, err := seedCatalog(cmd.Context(), store, path)
	if err != nil {
		return err
	}

	total, err := store.CountProducts(cmd.Context())
	if err != nil {
		return err
	}

	fmt.Fprintf(cmd.OutOrStdout(), "Added %d products from %s (catalog now has %d)\n", added, path, total)
	return nil
}
