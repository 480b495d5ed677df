// =============================================================================
// Invoice Automator - Customers Command
// =============================================================================
//
// This file defines the 'customers' command group for maintaining the
// customer name-to-code directory:
//
//   invoicectl customers import <file.xlsx>  - Merge-import a customer master spreadsheet
//   invoicectl customers list                - Print the directory
//   invoicectl customers add <name> <code>   - Add or update one entry
//   invoicectl customers remove <name>       - Remove one entry
//   invoicectl customers lookup <name>       - Resolve a name, suggesting the closest entry on a miss
//
// Import failures (missing name/code columns, unreadable file) leave the
// persisted directory untouched.
//
// =============================================================================

package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/nadungimhanalk/invoice2csv-automator-V2/internal/config"
	"github.com/nadungimhanalk/invoice2csv-automator-V2/internal/directory"
)

var customersCmd = &cobra.Command{
	Use:   "customers",
	Short: "Maintain the customer name-to-code directory",
}

var customersImportCmd = &cobra.Command{
	Use:   "import <file.xlsx>",
	Short: "Merge-import a customer master spreadsheet",
	Long: `Import reads the first sheet of an xlsx workbook, locating the name and
code columns by fuzzy header match ("Customer Name"/"Name",
"Customer Code"/"Code", case-insensitive). Imported entries merge into
the existing directory: matching names get their code overwritten, new
names are appended. Rows with an empty name or code are skipped.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return runCustomersImport(args[0])
	},
}

var customersListCmd = &cobra.Command{
	Use:   "list",
	Short: "Print the customer directory",
	RunE: func(cmd *cobra.Command, args []string) error {
		return withDirectory(func(dir *directory.Directory, _ *config.MainConfig) (bool, error) {
			entries := dir.Entries()
			if len(entries) == 0 {
				fmt.Println("Customer directory is empty.")
				return false, nil
			}
			for _, e := range entries {
				fmt.Printf("%-40s %s\n", e.CustomerName, e.CustomerCode)
			}
			return false, nil
		})
	},
}

var customersAddCmd = &cobra.Command{
	Use:   "add <name> <code>",
	Short: "Add or update a directory entry",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		return withDirectory(func(dir *directory.Directory, _ *config.MainConfig) (bool, error) {
			dir.Add(args[0], args[1])
			fmt.Printf("Saved %s -> %s\n", args[0], args[1])
			return true, nil
		})
	},
}

var customersRemoveCmd = &cobra.Command{
	Use:   "remove <name>",
	Short: "Remove a directory entry",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return withDirectory(func(dir *directory.Directory, _ *config.MainConfig) (bool, error) {
			if !dir.Remove(args[0]) {
				return false, fmt.Errorf("no entry found for %q", args[0])
			}
			fmt.Printf("Removed %s\n", args[0])
			return true, nil
		})
	},
}

var customersLookupCmd = &cobra.Command{
	Use:   "lookup <name>",
	Short: "Resolve a customer name to its code",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return withDirectory(func(dir *directory.Directory, _ *config.MainConfig) (bool, error) {
			if code, ok := dir.Lookup(args[0]); ok {
				fmt.Println(code)
				return false, nil
			}
			if suggestion := dir.Suggest(args[0]); suggestion != "" {
				fmt.Printf("No exact match for %q. Closest entry: %q\n", args[0], suggestion)
				return false, nil
			}
			fmt.Printf("No match for %q.\n", args[0])
			return false, nil
		})
	},
}

func init() {
	rootCmd.AddCommand(customersCmd)
	customersCmd.AddCommand(customersImportCmd)
	customersCmd.AddCommand(customersListCmd)
	customersCmd.AddCommand(customersAddCmd)
	customersCmd.AddCommand(customersRemoveCmd)
	customersCmd.AddCommand(customersLookupCmd)
}

// withDirectory loads the persisted directory, runs fn, and saves the
// directory back when fn reports a mutation.
func withDirectory(fn func(dir *directory.Directory, cfg *config.MainConfig) (save bool, err error)) error {
	cfg, err := config.Load(cfgFile)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	dir, err := directory.Load(cfg.CustomersPath())
	if err != nil {
		return fmt.Errorf("failed to load customer directory: %w", err)
	}

	save, err := fn(dir, cfg)
	if err != nil {
		return err
	}
	if save {
		if err := dir.Save(cfg.CustomersPath()); err != nil {
			return fmt.Errorf("failed to save customer directory: %w", err)
		}
	}
	return nil
}

func runCustomersImport(path string) error {
	return withDirectory(func(dir *directory.Directory, _ *config.MainConfig) (bool, error) {
		data, err := os.ReadFile(path)
		if err != nil {
			return false, fmt.Errorf("failed to read %s: %w", path, err)
		}

		// A schema error here means nothing was merged: the directory is
		// only saved after a successful parse.
		entries, err := directory.ParseWorkbook(data)
		if err != nil {
			return false, err
		}

		result := dir.MergeImport(entries)
		fmt.Printf("Imported %d entr(ies): %d added, %d updated, directory now has %d\n",
			len(entries), result.Added, result.Updated, dir.Len())
		return true, nil
	})
}
