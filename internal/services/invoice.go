package services

import (
	"bytes"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/diewo77/go-videoshop/internal/models"
	"github.com/jung-kurt/gofpdf"
	"github.com/shopspring/decimal"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// Currency printed after every amount.
const Currency = "DH"

// InvoiceItem is one cart line: what was bought, by whom, through which
// vendor.
type InvoiceItem struct {
	Client   models.Client
	Vendor   models.Vendor
	Product  models.Product
	Quantite int
}

type InvoiceLine struct {
	ProductID    uint
	Titre        string
	Vendeur      string
	PrixUnitaire decimal.Decimal
	Quantite     int
}

// Total is unit price times quantity.
func (l InvoiceLine) Total() decimal.Decimal {
	return l.PrixUnitaire.Mul(decimal.NewFromInt(int64(l.Quantite)))
}

type Invoice struct {
	Number string
	Date   time.Time
	Client models.Client
	Lines  []InvoiceLine
	Total  decimal.Decimal
}

// InvoiceNumber is "FAC-<yyyymmdd>-<client id>".
func InvoiceNumber(date time.Time, clientID uint) string {
	return fmt.Sprintf("FAC-%s-%d", date.Format("20060102"), clientID)
}

// InvoicesFromItems groups lines by client, in the order clients first
// appear.
func InvoicesFromItems(items []InvoiceItem, date time.Time) []Invoice {
	var out []Invoice
	index := map[uint]int{}
	for _, it := range items {
		i, ok := index[it.Client.ID]
		if !ok {
			i = len(out)
			index[it.Client.ID] = i
			out = append(out, Invoice{
				Number: InvoiceNumber(date, it.Client.ID),
				Date:   date,
				Client: it.Client,
				Total:  decimal.Zero,
			})
		}
		line := InvoiceLine{
			ProductID:    it.Product.ID,
			Titre:        it.Product.Titre,
			Vendeur:      it.Vendor.FullName(),
			PrixUnitaire: it.Product.Prix,
			Quantite:     it.Quantite,
		}
		out[i].Lines = append(out[i].Lines, line)
		out[i].Total = out[i].Total.Add(line.Total())
	}
	return out
}

var frPrinter = message.NewPrinter(language.French)

// core PDF fonts have no narrow no-break space
var plainSpaces = strings.NewReplacer("\u202f", " ", "\u00a0", " ")

// FormatAmount renders d the French way, e.g. "1 234,50 DH". Digits come
// from the decimal itself; the printer only groups them.
func FormatAmount(d decimal.Decimal) string {
	sign := ""
	if d.Round(2).IsNegative() {
		sign = "-"
	}
	whole, frac, _ := strings.Cut(d.Abs().StringFixed(2), ".")
	return sign + groupThousands(whole) + "," + frac + " " + Currency
}

func groupThousands(digits string) string {
	if n, err := strconv.ParseInt(digits, 10, 64); err == nil {
		return plainSpaces.Replace(frPrinter.Sprintf("%d", n))
	}
	var b strings.Builder
	for i, r := range digits {
		if i > 0 && (len(digits)-i)%3 == 0 {
			b.WriteByte(' ')
		}
		b.WriteRune(r)
	}
	return b.String()
}

// RenderPDF lays out an A4 invoice.
func RenderPDF(inv Invoice) ([]byte, error) {
	pdf := gofpdf.New("P", "mm", "A4", "")
	tr := pdf.UnicodeTranslatorFromDescriptor("")
	pdf.SetTitle(inv.Number, true)
	pdf.AddPage()

	pdf.SetFont("Arial", "B", 16)
	pdf.CellFormat(0, 10, tr("Facture "+inv.Number), "", 1, "C", false, 0, "")
	pdf.Ln(4)

	pdf.SetFont("Arial", "", 11)
	pdf.CellFormat(0, 6, tr("Date : "+inv.Date.Format("02/01/2006")), "", 1, "L", false, 0, "")
	pdf.CellFormat(0, 6, tr("Client : "+inv.Client.FullName()), "", 1, "L", false, 0, "")
	if inv.Client.Email != "" {
		pdf.CellFormat(0, 6, tr(inv.Client.Email), "", 1, "L", false, 0, "")
	}
	if addr := inv.Client.FullAddress(); addr != "" {
		pdf.MultiCell(0, 6, tr(addr), "", "L", false)
	}
	pdf.Ln(6)

	widths := []float64{70, 45, 25, 20, 30}
	pdf.SetFont("Arial", "B", 11)
	for i, h := range []string{"Film", "Vendeur", "Prix", "Qté", "Total"} {
		pdf.CellFormat(widths[i], 8, tr(h), "1", 0, "C", false, 0, "")
	}
	pdf.Ln(-1)

	pdf.SetFont("Arial", "", 10)
	for _, l := range inv.Lines {
		pdf.CellFormat(widths[0], 8, tr(l.Titre), "1", 0, "L", false, 0, "")
		pdf.CellFormat(widths[1], 8, tr(l.Vendeur), "1", 0, "L", false, 0, "")
		pdf.CellFormat(widths[2], 8, FormatAmount(l.PrixUnitaire), "1", 0, "R", false, 0, "")
		pdf.CellFormat(widths[3], 8, fmt.Sprintf("%d", l.Quantite), "1", 0, "C", false, 0, "")
		pdf.CellFormat(widths[4], 8, FormatAmount(l.Total()), "1", 1, "R", false, 0, "")
	}

	pdf.SetFont("Arial", "B", 11)
	pdf.CellFormat(widths[0]+widths[1]+widths[2]+widths[3], 8, "Total", "1", 0, "R", false, 0, "")
	pdf.CellFormat(widths[4], 8, FormatAmount(inv.Total), "1", 1, "R", false, 0, "")

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("render invoice %s: %w", inv.Number, err)
	}
	return buf.Bytes(), nil
}

// FileName is the name used when an invoice is saved to disk.
func (inv Invoice) FileName() string {
	return inv.Number + ".pdf"
}
