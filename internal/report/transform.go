package report

import (
	"strings"

	"github.com/shopspring/decimal"
	"vatreport/pkg/models"
)

const (
	SupplierName = "Printful"
	GoodsService = "GOODS"
	Category     = "OTHER"

	// Departure country when shipments leave from several facilities
	MixedEULow  = "MIXED-1" // EU recipient, net at most 150
	MixedEUHigh = "MIXED-2" // EU recipient, net above 150
	MixedNonEU  = "MIXED-3" // recipient outside the EU

	// Departure country of an order without shipments
	UnknownCountry = "UNKNOWN"

	listSeparator = " and "
)

var mixedNetThreshold = decimal.NewFromInt(150)

// Transformer derives accounting records from Printful orders.
type Transformer struct {
	euCountries map[string]struct{}
}

// NewTransformer creates a transformer treating euCountries as EU members.
func NewTransformer(euCountries []string) *Transformer {
	set := make(map[string]struct{}, len(euCountries))
	for _, code := range euCountries {
		set[strings.ToUpper(code)] = struct{}{}
	}
	return &Transformer{euCountries: set}
}

// Transform maps one order to its record. It never fails: malformed
// amounts count as zero.
func (t *Transformer) Transform(order models.Order) models.AccountingRecord {
	total := order.Costs.Total.Decimal()
	vat := order.Costs.VAT.Decimal()
	tax := order.Costs.Tax.Decimal()

	net := total.Sub(vat).Sub(tax).Round(2)
	date := order.CreatedAt().Format("2006-01-02")

	return models.AccountingRecord{
		InvoiceNumber:    order.ID.String(),
		InvoiceDate:      date,
		PaymentDate:      date,
		SupplierName:     SupplierName,
		DepartureCountry: t.dispatchCountry(order, net),
		ArrivalCountry:   order.Recipient.CountryCode,
		GoodsService:     GoodsService,
		SKU:              joinSKUs(order.Items),
		ItemDescription:  joinNames(order.Items),
		Gross:            order.Costs.Total.String(),
		Net:              net.StringFixed(2),
		VAT:              order.Costs.VAT.String(),
		Currency:         order.Costs.Currency,
		VATRate:          vatRate(total, vat, tax),
		Category:         Category,
	}
}

// vatRate is vat / (total - tax - vat), or "0" when that is undefined.
func vatRate(total, vat, tax decimal.Decimal) string {
	if total.IsZero() && vat.IsZero() && tax.IsZero() {
		return "0"
	}
	base := total.Sub(tax).Sub(vat)
	if base.IsZero() {
		return "0"
	}
	return vat.Div(base).StringFixed(2)
}

func (t *Transformer) dispatchCountry(order models.Order, net decimal.Decimal) string {
	var locations []string
	seen := make(map[string]struct{}, len(order.Shipments))
	for _, s := range order.Shipments {
		if _, ok := seen[s.Location]; !ok {
			seen[s.Location] = struct{}{}
			locations = append(locations, s.Location)
		}
	}

	switch {
	case len(locations) == 0:
		return UnknownCountry
	case len(locations) == 1:
		return locations[0]
	case !t.isEU(order.Recipient.CountryCode):
		return MixedNonEU
	case net.GreaterThan(mixedNetThreshold):
		return MixedEUHigh
	default:
		return MixedEULow
	}
}

func (t *Transformer) isEU(countryCode string) bool {
	_, ok := t.euCountries[strings.ToUpper(countryCode)]
	return ok
}

func joinSKUs(items []models.Item) string {
	skus := make([]string, 0, len(items))
	for _, item := range items {
		if item.SKU != nil {
			skus = append(skus, *item.SKU)
		}
	}
	return strings.Join(skus, listSeparator)
}

func joinNames(items []models.Item) string {
	names := make([]string, len(items))
	for i, item := range items {
		names[i] = item.Name
	}
	return strings.Join(names, listSeparator)
}
