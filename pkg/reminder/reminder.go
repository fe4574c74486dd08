// Package reminder renders customer-facing text: payment reminder
// messages, WhatsApp links, and shareable situation receipts. It reads
// ledger data and never mutates it.
package reminder

import (
	"fmt"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/adigitale/carnet/pkg/models"
)

// Tone selects how insistent the reminder is.
type Tone string

const (
	ToneSoft Tone = "soft"
	ToneFirm Tone = "firm"
)

// Lang selects the message locale.
type Lang string

const (
	LangFR Lang = "fr"
	LangAR Lang = "ar"
)

// Currency is the display label for amounts (Mauritanian ouguiya).
const Currency = "MRU"

// templates carry {name}, {amount} and {days} placeholders.
var templates = map[Lang]map[Tone]string{
	LangFR: {
		ToneSoft: "Bonjour {name}, petit rappel amical : votre crédit de {amount} " + Currency +
			" est ouvert depuis {days} jours. Passez quand vous pouvez. Merci !",
		ToneFirm: "Bonjour {name}. Votre crédit de {amount} " + Currency +
			" est impayé depuis {days} jours. Merci de régulariser votre situation au plus vite.",
	},
	LangAR: {
		ToneSoft: "السلام عليكم {name}، تذكير ودي: لديكم دين بقيمة {amount} " + Currency +
			" منذ {days} يوما. نرجو المرور عند الإمكان. شكرا!",
		ToneFirm: "السلام عليكم {name}. دينكم البالغ {amount} " + Currency +
			" لم يسدد منذ {days} يوما. نرجو تسوية الوضعية في أقرب وقت.",
	},
}

// Message renders the reminder for a debt at ref. Unknown lang/tone fall
// back to the soft French template.
func Message(d *models.Debt, tone Tone, lang Lang, ref time.Time) string {
	byTone, ok := templates[lang]
	if !ok {
		byTone = templates[LangFR]
	}
	tmpl, ok := byTone[tone]
	if !ok {
		tmpl = byTone[ToneSoft]
	}

	r := strings.NewReplacer(
		"{name}", d.CustomerName,
		"{amount}", FormatAmount(d.Balance),
		"{days}", strconv.Itoa(d.DaysSince(ref)),
	)
	return r.Replace(tmpl)
}

// WhatsAppLink builds the pre-filled messaging link for a debt's phone.
func WhatsAppLink(phone, message string) string {
	return "https://wa.me/" + phone + "?text=" + url.QueryEscape(message)
}

// Receipt renders the shareable situation receipt: header, remaining
// balance, and the last five operations, newest first.
func Receipt(d *models.Debt, merchant models.MerchantConfig, ref time.Time) string {
	title := merchant.Name
	if title == "" {
		title = "Carnet de Crédit"
	}

	var b strings.Builder
	fmt.Fprintf(&b, "*🧾 REÇU DE SITUATION - %s*\n", title)
	b.WriteString("-------------------\n")
	fmt.Fprintf(&b, "👤 Client: %s\n", d.CustomerName)
	fmt.Fprintf(&b, "📅 Date: %s\n", ref.Format("02/01/2006"))
	fmt.Fprintf(&b, "💰 *Reste à payer: %s %s*\n", FormatAmount(d.Balance), Currency)
	b.WriteString("-------------------\n")
	b.WriteString("*Dernières opérations:*\n")

	shown := 0
	for i := len(d.Transactions) - 1; i >= 0 && shown < 5; i-- {
		tx := d.Transactions[i]
		label := "🟢 Paiement"
		if tx.Kind == models.KindCredit {
			label = "🔴 Crédit"
		}
		fmt.Fprintf(&b, "%s: %s %s (%s)\n", label, FormatAmount(tx.Amount), Currency,
			tx.OccurredAt.Format("02/01/2006"))
		shown++
	}

	b.WriteString("-------------------\n")
	b.WriteString("Merci de votre confiance.")
	if merchant.Phone != "" {
		fmt.Fprintf(&b, "\n📞 %s", merchant.Phone)
	}
	return b.String()
}

// FormatAmount renders an amount with space-grouped thousands, dropping
// the decimals when they are zero (the usual case for ouguiya prices).
func FormatAmount(amount float64) string {
	s := strconv.FormatFloat(amount, 'f', 2, 64)
	parts := strings.SplitN(s, ".", 2)
	intPart, frac := parts[0], parts[1]

	var grouped strings.Builder
	for i, r := range intPart {
		if i > 0 && (len(intPart)-i)%3 == 0 {
			grouped.WriteByte(' ')
		}
		grouped.WriteRune(r)
	}
	if frac == "00" {
		return grouped.String()
	}
	return grouped.String() + "." + frac
}
