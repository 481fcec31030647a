// Package receipt formats review summaries and receipts for display and
// printing. It only reads the records it is given.
package receipt

import (
	// Go Internal Packages
	"fmt"
	"io"
	"strings"
	"time"

	// Local Packages
	models "cash-kiosk/models"

	// External Packages
	"github.com/shopspring/decimal"
)

const (
	DateTimeLayout        = "Jan 2, 2006, 3:04 PM"
	DefaultCurrencySymbol = "₱"

	title = "Official Receipt"
)

var footer = []string{
	"Thank you for using our service.",
	"This is a system generated receipt.",
}

type Config struct {
	Location       *time.Location
	CurrencySymbol string
}

type Projector struct {
	location *time.Location
	symbol   string
}

// NewProjector falls back to UTC and the peso sign for unset fields.
func NewProjector(cfg Config) *Projector {
	p := &Projector{location: cfg.Location, symbol: cfg.CurrencySymbol}
	if p.location == nil {
		p.location = time.UTC
	}
	if p.symbol == "" {
		p.symbol = DefaultCurrencySymbol
	}
	return p
}

// Summary is what the operator sees on the review and verification steps.
type Summary struct {
	Provider      string
	Type          string
	AccountName   string
	AccountNumber string
	Amount        string
	Fee           string
	Total         string
}

type Receipt struct {
	Header          string
	Title           string
	DateTime        string
	TransactionID   string
	ReferenceNumber string
	Status          string
	Summary
	Footer []string
}

func (p *Projector) Summarize(req models.TransactionRequest) Summary {
	return Summary{
		Provider:      string(req.Provider),
		Type:          string(req.Kind),
		AccountName:   req.AccountName,
		AccountNumber: req.AccountNumber,
		Amount:        FormatMoney(p.symbol, req.Amount),
		Fee:           FormatMoney(p.symbol, req.Fee),
		Total:         FormatMoney(p.symbol, req.Total),
	}
}

func (p *Projector) Project(ft models.FinalizedTransaction) Receipt {
	return Receipt{
		Header:          fmt.Sprintf("%s Partner", ft.Provider),
		Title:           title,
		DateTime:        ft.Timestamp.In(p.location).Format(DateTimeLayout),
		TransactionID:   ft.ID,
		ReferenceNumber: ft.ReferenceNumber,
		Status:          StatusText(ft.Outcome),
		Summary:         p.Summarize(ft.TransactionRequest),
		Footer:          append([]string(nil), footer...),
	}
}

// StatusText tells the operator whether the record reached the record-keeping service.
func StatusText(o models.Outcome) string {
	switch o.Status {
	case models.OutcomeSucceeded:
		return "Recorded"
	case models.OutcomeFailed:
		return "Not synced, pending reconciliation"
	default:
		return "Not submitted"
	}
}

// FormatMoney renders d with two decimals and comma grouping, e.g. ₱2,520.00.
func FormatMoney(symbol string, d decimal.Decimal) string {
	s := d.StringFixed(2)
	sign := ""
	if strings.HasPrefix(s, "-") {
		sign, s = "-", s[1:]
	}
	intPart, frac, _ := strings.Cut(s, ".")

	var b strings.Builder
	for i, r := range intPart {
		if i > 0 && (len(intPart)-i)%3 == 0 {
			b.WriteByte(',')
		}
		b.WriteRune(r)
	}
	return sign + symbol + b.String() + "." + frac
}

// Render writes the summary as aligned label/value lines.
func (s Summary) Render(w io.Writer) error {
	rows := [][2]string{
		{"Provider:", s.Provider},
		{"Type:", s.Type},
		{"Account Name:", s.AccountName},
		{"Account No:", s.AccountNumber},
		{"Amount:", s.Amount},
		{"Service Fee:", s.Fee},
		{"TOTAL", s.Total},
	}
	return writeRows(w, rows)
}

// Render writes the printable receipt.
func (r Receipt) Render(w io.Writer) error {
	if _, err := fmt.Fprintf(w, "%s\n%s\n\n", r.Header, r.Title); err != nil {
		return err
	}
	rows := [][2]string{
		{"Date/Time:", r.DateTime},
		{"Transaction ID:", r.TransactionID},
		{"Ref No:", r.ReferenceNumber},
		{"Type:", r.Type},
		{"Account Name:", r.AccountName},
		{"Account No:", r.AccountNumber},
		{"Amount:", r.Amount},
		{"Service Fee:", r.Fee},
		{"TOTAL", r.Total},
		{"Status:", r.Status},
	}
	if err := writeRows(w, rows); err != nil {
		return err
	}
	_, err := fmt.Fprintf(w, "\n%s\n", strings.Join(r.Footer, "\n"))
	return err
}

func writeRows(w io.Writer, rows [][2]string) error {
	for _, row := range rows {
		if _, err := fmt.Fprintf(w, "%-16s%s\n", row[0], row[1]); err != nil {
			return err
		}
	}
	return nil
}
