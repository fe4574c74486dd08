package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/adigitale/carnet/pkg/config"
	"github.com/adigitale/carnet/pkg/models"
)

var merchantCmd = &cobra.Command{
	Use:   "merchant",
	Short: "Show or update the shop's display configuration",
	RunE: func(cmd *cobra.Command, _ []string) error {
		return cmd.Help()
	},
}

var merchantShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Print the stored merchant configuration",
	RunE: func(cmd *cobra.Command, _ []string) error {
		l, kv, _, err := openLedger(cmd)
		if err != nil {
			return err
		}
		defer kv.Close()

		m, err := l.Merchant()
		if err != nil {
			return err
		}
		if m == (models.MerchantConfig{}) {
			fmt.Println("No merchant configuration set.")
			return nil
		}

		fmt.Printf("Name:     %s\n", m.Name)
		fmt.Printf("Phone:    %s\n", m.Phone)
		fmt.Printf("WhatsApp: %s\n", m.WhatsApp)
		if m.Address != "" {
			fmt.Printf("Address:  %s\n", m.Address)
		}
		if m.BankilyNumber != "" {
			fmt.Printf("Bankily:  %s\n", m.BankilyNumber)
		}
		return nil
	},
}

var merchantSetCmd = &cobra.Command{
	Use:   "set",
	Short: "Update the merchant configuration from a yaml file or flags",
	RunE: func(cmd *cobra.Command, _ []string) error {
		l, kv, _, err := openLedger(cmd)
		if err != nil {
			return err
		}
		defer kv.Close()

		var m models.MerchantConfig
		if file, _ := cmd.Flags().GetString("file"); file != "" {
			m, err = config.LoadMerchantFile(file)
			if err != nil {
				return err
			}
		} else {
			// Start from the stored config so unset flags keep their value.
			m, err = l.Merchant()
			if err != nil {
				return err
			}
			apply := func(flag string, dst *string) {
				if cmd.Flags().Changed(flag) {
					*dst, _ = cmd.Flags().GetString(flag)
				}
			}
			apply("name", &m.Name)
			apply("phone", &m.Phone)
			apply("whatsapp", &m.WhatsApp)
			apply("address", &m.Address)
			apply("bankily", &m.BankilyNumber)
		}

		if m.Name == "" {
			return fmt.Errorf("merchant name is required")
		}
		if err := l.SetMerchant(m); err != nil {
			return err
		}
		fmt.Println("Merchant configuration saved.")
		return nil
	},
}

var backupCmd = &cobra.Command{
	Use:   "backup <out.json>",
	Short: "Export the whole state (debts + merchant) to a JSON bundle",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		l, kv, _, err := openLedger(cmd)
		if err != nil {
			return err
		}
		defer kv.Close()

		data, err := l.ExportBundle()
		if err != nil {
			return err
		}
		if args[0] == "-" {
			fmt.Println(string(data))
			return nil
		}
		if err := os.WriteFile(args[0], data, 0600); err != nil {
			return fmt.Errorf("failed to write bundle: %w", err)
		}
		fmt.Printf("Backup written to %s\n", args[0])
		return nil
	},
}

var restoreCmd = &cobra.Command{
	Use:   "restore <in.json>",
	Short: "Replace the whole state from a JSON bundle (all-or-nothing)",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		data, err := os.ReadFile(args[0])
		if err != nil {
			return fmt.Errorf("failed to read bundle: %w", err)
		}

		l, kv, _, err := openLedger(cmd)
		if err != nil {
			return err
		}
		defer kv.Close()

		if err := l.ImportBundle(data); err != nil {
			return err
		}
		fmt.Println("State restored from bundle.")
		return nil
	},
}
