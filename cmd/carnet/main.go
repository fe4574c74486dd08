package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/adigitale/carnet/pkg/config"
	"github.com/adigitale/carnet/pkg/ledger"
	"github.com/adigitale/carnet/pkg/store"
)

var (
	cfgFile    string
	listFilter filters
	logger     *log.Logger
)

var rootCmd = &cobra.Command{
	Use:   "carnet",
	Short: "Carnet de crédit — offline customer debt ledger",
	RunE: func(cmd *cobra.Command, _ []string) error {
		// Show help when no subcommand is provided
		return cmd.Help()
	},
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&cfgFile, "config", "c", "", "Config file (default is config.yaml)")
	rootCmd.PersistentFlags().String("data-dir", "", "Data directory (default ~/.carnet)")
	rootCmd.PersistentFlags().String("backend", "", "Storage backend: file or sqlite")
	rootCmd.PersistentFlags().String("lang", "", "Message language: fr or ar")

	// Filter flags for list
	listCmd.Flags().StringVar(&listFilter.status, "status", "ALL", "Status bucket: ALL, ACTIVE, CONTENTIOUS, PAID")
	listCmd.Flags().StringVar(&listFilter.search, "search", "", "Free-text search (name, phone, date, notes)")
	listCmd.Flags().StringVar(&listFilter.from, "from", "", "Opening date lower bound (YYYY-MM-DD)")
	listCmd.Flags().StringVar(&listFilter.to, "to", "", "Opening date upper bound (YYYY-MM-DD, inclusive)")
	listCmd.Flags().StringVar(&listFilter.sortBy, "sort", string(ledger.SortDateAsc), "Sort order: date-asc, date-desc, amount-desc, amount-asc, date-credit-asc, date-credit-desc")
	listCmd.Flags().Bool("csv", false, "Output as CSV")
	listCmd.Flags().Bool("dump", false, "Dump raw records (debugging)")

	addCmd.Flags().String("date", "", "Opening date (YYYY-MM-DD, default today)")
	addCmd.Flags().String("phone", "", "Customer phone number (required)")
	addCmd.Flags().String("note", "", "Note attached to the opening credit")
	addCmd.Flags().Float64("lat", 0, "Latitude of the customer location")
	addCmd.Flags().Float64("lng", 0, "Longitude of the customer location")

	payCmd.Flags().String("note", "", "Note attached to the payment")

	statsCmd.Flags().String("date", "", "Reference day (YYYY-MM-DD, default today)")

	remindCmd.Flags().String("tone", "soft", "Reminder tone: soft or firm")

	merchantSetCmd.Flags().String("file", "", "Merchant yaml file to load")
	merchantSetCmd.Flags().String("name", "", "Shop name")
	merchantSetCmd.Flags().String("phone", "", "Shop phone")
	merchantSetCmd.Flags().String("whatsapp", "", "Shop WhatsApp number")
	merchantSetCmd.Flags().String("address", "", "Shop address")
	merchantSetCmd.Flags().String("bankily", "", "Bankily payment number")
	merchantCmd.AddCommand(merchantShowCmd, merchantSetCmd)

	rootCmd.AddCommand(addCmd, payCmd, disputeCmd, deleteCmd, listCmd,
		statsCmd, remindCmd, receiptCmd, merchantCmd, backupCmd, restoreCmd)
}

// openLedger wires config, store and ledger for one command invocation.
// The caller must Close the returned store.
func openLedger(cmd *cobra.Command) (*ledger.Ledger, store.KV, *config.Config, error) {
	cfg, err := config.Build(cfgFile, cmd.Flags())
	if err != nil {
		return nil, nil, nil, err
	}

	var kv store.KV
	switch cfg.Backend {
	case config.BackendSQLite:
		kv, err = store.NewSQLiteStore(filepath.Join(cfg.DataDir, "carnet.db"))
	default:
		kv, err = store.NewFileStore(cfg.DataDir)
	}
	if err != nil {
		return nil, nil, nil, err
	}

	l := ledger.New(kv, logger)
	if err := l.Load(); err != nil {
		kv.Close()
		return nil, nil, nil, err
	}
	return l, kv, cfg, nil
}

func main() {
	logger = log.NewWithOptions(os.Stderr, log.Options{
		ReportTimestamp: true,
		Prefix:          "carnet",
	})

	if err := rootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}
