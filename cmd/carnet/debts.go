package main

import (
	"fmt"
	"strconv"
	"time"

	"github.com/spf13/cobra"

	"github.com/adigitale/carnet/pkg/ledger"
	"github.com/adigitale/carnet/pkg/models"
	"github.com/adigitale/carnet/pkg/reminder"
)

var addCmd = &cobra.Command{
	Use:   "add <name> <amount>",
	Short: "Open a new debt with its first credit",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		amount, err := strconv.ParseFloat(args[1], 64)
		if err != nil {
			return fmt.Errorf("invalid amount %q: %w", args[1], err)
		}

		openedAt := time.Now()
		if dateStr, _ := cmd.Flags().GetString("date"); dateStr != "" {
			openedAt, err = time.Parse("2006-01-02", dateStr)
			if err != nil {
				return fmt.Errorf("invalid --date %q: %w", dateStr, err)
			}
		}

		phone, _ := cmd.Flags().GetString("phone")
		note, _ := cmd.Flags().GetString("note")

		var loc *models.Location
		lat, _ := cmd.Flags().GetFloat64("lat")
		lng, _ := cmd.Flags().GetFloat64("lng")
		if cmd.Flags().Changed("lat") || cmd.Flags().Changed("lng") {
			loc = &models.Location{Lat: lat, Lng: lng}
		}

		l, kv, _, err := openLedger(cmd)
		if err != nil {
			return err
		}
		defer kv.Close()

		d, err := l.Create(ledger.CreateInput{
			Name:     args[0],
			Amount:   amount,
			OpenedAt: openedAt,
			Phone:    phone,
			Note:     note,
			Location: loc,
		})
		if err != nil {
			return err
		}

		fmt.Printf("Created debt %s: %s owes %s %s\n",
			d.ID, d.CustomerName, reminder.FormatAmount(d.Balance), reminder.Currency)
		return nil
	},
}

var payCmd = &cobra.Command{
	Use:   "pay <id> <amount>",
	Short: "Record a payment against a debt",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		amount, err := strconv.ParseFloat(args[1], 64)
		if err != nil {
			return fmt.Errorf("invalid amount %q: %w", args[1], err)
		}
		note, _ := cmd.Flags().GetString("note")

		l, kv, _, err := openLedger(cmd)
		if err != nil {
			return err
		}
		defer kv.Close()

		d, err := l.RecordPayment(args[0], amount, note)
		if err != nil {
			return err
		}

		if d.Status == models.StatusPaid {
			fmt.Printf("Debt settled. %s owes nothing.\n", d.CustomerName)
		} else {
			fmt.Printf("Payment recorded. %s still owes %s %s\n",
				d.CustomerName, reminder.FormatAmount(d.Balance), reminder.Currency)
		}
		return nil
	},
}

var disputeCmd = &cobra.Command{
	Use:   "dispute <id>",
	Short: "Toggle the contentious flag on a debt",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		l, kv, _, err := openLedger(cmd)
		if err != nil {
			return err
		}
		defer kv.Close()

		d, err := l.ToggleContentious(args[0])
		if err != nil {
			return err
		}
		fmt.Printf("%s is now %s\n", d.CustomerName, d.Status)
		return nil
	},
}

var deleteCmd = &cobra.Command{
	Use:   "delete <id>...",
	Short: "Delete one or more debts, including their history",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		l, kv, _, err := openLedger(cmd)
		if err != nil {
			return err
		}
		defer kv.Close()

		if err := l.DeleteMany(args); err != nil {
			return err
		}
		fmt.Printf("Deleted %d debt(s)\n", len(args))
		return nil
	},
}
