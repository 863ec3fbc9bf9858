package receipt

import (
	"bytes"
	"fmt"
	"html/template"
)

// htmlTemplate lays the receipt out for 80mm paper. The register opens it
// in the browser's print dialog; @page keeps the paper size honest.
const htmlTemplate = `<!DOCTYPE html>
<html lang="{{.Lang}}">
<head>
<meta charset="utf-8">
<title>{{.L.Receipt}} {{.ReceiptNo}}</title>
<style>
  @page { size: 80mm auto; margin: 0; }
  body {
    width: 72mm;
    margin: 0 auto;
    padding: 4mm 0;
    font-family: "Sarabun", "Tahoma", monospace;
    font-size: 12px;
    color: #000;
  }
  .center { text-align: center; }
  .shop-name { font-size: 15px; font-weight: bold; }
  .voided {
    font-size: 14px; font-weight: bold;
    border: 2px solid #000; padding: 2px; margin: 4px 0;
  }
  hr { border: none; border-top: 1px dashed #000; margin: 4px 0; }
  table { width: 100%; border-collapse: collapse; }
  td { padding: 1px 0; vertical-align: top; }
  .amount { text-align: right; white-space: nowrap; }
  .mode { color: #444; font-size: 11px; }
  .total td { font-size: 14px; font-weight: bold; }
  .footer { margin-top: 6px; }
</style>
</head>
<body>
  <div class="center shop-name">{{.ShopName}}</div>
  {{if .Address}}<div class="center">{{.Address}}</div>{{end}}
  {{if .Phone}}<div class="center">{{.Phone}}</div>{{end}}
  {{if .TaxID}}<div class="center">Tax ID {{.TaxID}}</div>{{end}}
  <hr>
  <div class="center">{{.L.Receipt}}</div>
  {{if .Voided}}<div class="center voided">{{.L.Voided}}</div>{{end}}
  <table>
    <tr><td>{{.L.ReceiptNo}}</td><td class="amount">{{.ReceiptNo}}</td></tr>
    <tr><td>{{.L.Date}}</td><td class="amount">{{.DateText}}</td></tr>
    {{if .Cashier}}<tr><td>{{.L.Cashier}}</td><td class="amount">{{.Cashier}}</td></tr>{{end}}
    {{if .Customer}}<tr><td>{{.L.Customer}}</td><td class="amount">{{.Customer}}</td></tr>{{end}}
  </table>
  <hr>
  <table>
    {{range .Lines}}
    <tr>
      <td>{{.QtyText}}x {{.Name}}{{if .Mode}} <span class="mode">({{.Mode}})</span>{{end}}</td>
      <td class="amount">{{.TotalText}}</td>
    </tr>
    {{if .DepositText}}
    <tr><td class="mode">&nbsp;&nbsp;{{$.L.Deposit}}</td><td class="amount mode">{{.DepositText}}</td></tr>
    {{end}}
    {{end}}
  </table>
  <hr>
  <table>
    <tr><td>{{.L.SubTotal}}</td><td class="amount">{{.SubTotalText}}</td></tr>
    {{if .DepositTotalText}}<tr><td>{{.L.Deposit}}</td><td class="amount">{{.DepositTotalText}}</td></tr>{{end}}
    {{if .DiscountText}}<tr><td>{{.L.Discount}}</td><td class="amount">-{{.DiscountText}}</td></tr>{{end}}
    {{if .PointsRedeemed}}<tr><td>{{.L.PointsRedeemed}}</td><td class="amount">-{{.PointsRedeemed}}</td></tr>{{end}}
    <tr class="total"><td>{{.L.GrandTotal}}</td><td class="amount">{{.GrandTotalText}}</td></tr>
  </table>
  <hr>
  <table>
    <tr><td>{{.PaymentMethod}}</td><td class="amount">{{.TenderedText}}</td></tr>
    {{if .ChangeText}}<tr><td>{{.L.Change}}</td><td class="amount">{{.ChangeText}}</td></tr>{{end}}
    {{if .PointsEarned}}<tr><td>{{.L.PointsEarned}}</td><td class="amount">{{.PointsEarned}}</td></tr>{{end}}
  </table>
  <hr>
  <div class="center footer">
    {{if .Footer}}{{.Footer}}<br>{{end}}
    {{.L.ThankYou}}
  </div>
</body>
</html>
`

var receiptTmpl = template.Must(template.New("receipt").Parse(htmlTemplate))

type htmlLine struct {
	Name        string
	Mode        string
	QtyText     string
	TotalText   string
	DepositText string
}

type htmlPayload struct {
	L                labels
	Lang             string
	ShopName         string
	Address          string
	Phone            string
	TaxID            string
	ReceiptNo        string
	DateText         string
	Cashier          string
	Customer         string
	Voided           bool
	Lines            []htmlLine
	SubTotalText     string
	DepositTotalText string
	DiscountText     string
	PointsRedeemed   int64
	GrandTotalText   string
	PaymentMethod    string
	TenderedText     string
	ChangeText       string
	PointsEarned     int64
	Footer           string
}

// RenderHTML renders the receipt as a printable HTML page.
func RenderHTML(data *Data) ([]byte, error) {
	lang := data.Language
	if lang == "" {
		lang = "th"
	}

	payload := htmlPayload{
		L:              labelsFor(data.Language),
		Lang:           lang,
		ShopName:       data.ShopName,
		Address:        data.Address,
		Phone:          data.Phone,
		TaxID:          data.TaxID,
		ReceiptNo:      data.ReceiptNo,
		DateText:       data.Date.Format("02/01/2006 15:04"),
		Cashier:        data.Cashier,
		Customer:       data.Customer,
		Voided:         data.Voided,
		SubTotalText:   data.money(data.SubTotal),
		GrandTotalText: data.money(data.GrandTotal),
		PointsRedeemed: data.PointsRedeemed,
		PaymentMethod:  data.PaymentMethod,
		TenderedText:   data.money(data.Tendered),
		PointsEarned:   data.PointsEarned,
		Footer:         data.Footer,
	}
	if data.DepositTotal > 0 {
		payload.DepositTotalText = data.money(data.DepositTotal)
	}
	if data.DiscountTotal > 0 {
		payload.DiscountText = data.money(data.DiscountTotal)
	}
	if data.Change > 0 {
		payload.ChangeText = data.money(data.Change)
	}

	for _, line := range data.Lines {
		hl := htmlLine{
			Name:      line.Name,
			Mode:      line.Mode,
			QtyText:   FormatQty(line.Quantity),
			TotalText: data.money(line.Total),
		}
		if line.Deposit > 0 {
			hl.DepositText = data.money(line.Deposit)
		}
		payload.Lines = append(payload.Lines, hl)
	}

	var buf bytes.Buffer
	if err := receiptTmpl.Execute(&buf, payload); err != nil {
		return nil, fmt.Errorf("failed to render receipt: %w", err)
	}
	return buf.Bytes(), nil
}
