package main

import (
	"fmt"
	"time"

	"github.com/k0kubun/pp/v3"
	"github.com/spf13/cobra"

	"github.com/adigitale/carnet/pkg/export"
	"github.com/adigitale/carnet/pkg/models"
	"github.com/adigitale/carnet/pkg/reminder"
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List debts, filtered and sorted",
	RunE: func(cmd *cobra.Command, _ []string) error {
		filter, err := listFilter.toFilter()
		if err != nil {
			return err
		}

		l, kv, _, err := openLedger(cmd)
		if err != nil {
			return err
		}
		defer kv.Close()

		debts := l.Query(filter, listFilter.toSort())

		if dump, _ := cmd.Flags().GetBool("dump"); dump {
			pp.Println(debts)
			return nil
		}
		if asCSV, _ := cmd.Flags().GetBool("csv"); asCSV {
			out, err := export.Debts(debts)
			if err != nil {
				return err
			}
			fmt.Print(string(out))
			return nil
		}

		if len(debts) == 0 {
			fmt.Println("No debts match.")
			return nil
		}

		now := time.Now()
		fmt.Printf("%-36s  %-24s  %12s  %-10s  %5s  %-11s  %s\n",
			"ID", "CUSTOMER", "BALANCE", "OPENED", "DAYS", "URGENCY", "PHONE")
		for _, d := range debts {
			fmt.Printf("%-36s  %-24s  %12s  %-10s  %5d  %-11s  %s\n",
				d.ID,
				d.CustomerName,
				reminder.FormatAmount(d.Balance),
				d.OpenedAt.Format("2006-01-02"),
				d.DaysSince(now),
				models.AgingBucket(d, now),
				d.Phone)
		}

		total, count := l.Totals()
		fmt.Printf("\n%d outstanding, %s %s in total\n",
			count, reminder.FormatAmount(total), reminder.Currency)
		return nil
	},
}

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show one day's collected/credited totals and the outstanding sum",
	RunE: func(cmd *cobra.Command, _ []string) error {
		ref := time.Now()
		if dateStr, _ := cmd.Flags().GetString("date"); dateStr != "" {
			parsed, err := time.ParseInLocation("2006-01-02", dateStr, time.Local)
			if err != nil {
				return fmt.Errorf("invalid --date %q: %w", dateStr, err)
			}
			ref = parsed
		}

		l, kv, _, err := openLedger(cmd)
		if err != nil {
			return err
		}
		defer kv.Close()

		stats := l.DailyStats(ref)
		total, count := l.Totals()

		fmt.Printf("Day %s\n", ref.Format("2006-01-02"))
		fmt.Printf("  collected: %s %s\n", reminder.FormatAmount(stats.Collected), reminder.Currency)
		fmt.Printf("  credited:  %s %s\n", reminder.FormatAmount(stats.Credited), reminder.Currency)
		fmt.Printf("Outstanding: %s %s across %d debt(s)\n",
			reminder.FormatAmount(total), reminder.Currency, count)
		return nil
	},
}

var remindCmd = &cobra.Command{
	Use:   "remind <id>",
	Short: "Compose a payment reminder and its WhatsApp link",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		toneStr, _ := cmd.Flags().GetString("tone")
		tone := reminder.Tone(toneStr)
		if tone != reminder.ToneSoft && tone != reminder.ToneFirm {
			return fmt.Errorf("unknown tone %q (want soft or firm)", toneStr)
		}

		l, kv, cfg, err := openLedger(cmd)
		if err != nil {
			return err
		}
		defer kv.Close()

		d, err := l.Get(args[0])
		if err != nil {
			return err
		}

		msg := reminder.Message(d, tone, reminder.Lang(cfg.Language), time.Now())
		fmt.Println(msg)
		fmt.Println()
		fmt.Println(reminder.WhatsAppLink(d.Phone, msg))
		return nil
	},
}

var receiptCmd = &cobra.Command{
	Use:   "receipt <id>",
	Short: "Print a shareable situation receipt for a debt",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		l, kv, _, err := openLedger(cmd)
		if err != nil {
			return err
		}
		defer kv.Close()

		d, err := l.Get(args[0])
		if err != nil {
			return err
		}
		merchant, err := l.Merchant()
		if err != nil {
			return err
		}

		fmt.Println(reminder.Receipt(d, merchant, time.Now()))
		return nil
	},
}
