package models

// AccountingRecord is one row of the VAT accounting report
type AccountingRecord struct {
	// Document
	InvoiceNumber string // Printful order ID
	InvoiceDate   string // Order creation date, YYYY-MM-DD (UTC)
	PaymentDate   string // Same as InvoiceDate

	// Parties
	SupplierName      string // Always "Printful"
	SupplierVATNumber string
	DepartureCountry  string // Dispatch country or MIXED-1/2/3, UNKNOWN
	ArrivalCountry    string // Recipient country code
	CustomerVATNumber string

	// Classification
	ServiceType         string
	GoodsService        string // Always "GOODS"
	NatureOfTransaction string

	// Contents
	SKU             string // SKUs joined by " and "
	ItemDescription string // Item names joined by " and "

	// Amounts (decimal text)
	Gross    string // costs.total as received
	Net      string // total - vat - tax, 2 decimals
	VAT      string // costs.vat as received
	Currency string
	VATRate  string // vat / net, 2 decimals, "0" when undefined

	SupplierEstablished string
	Category            string // Always "OTHER"
	PurposeOfGoods      string
}

// RecordHeaders are the report column names, in output order
var RecordHeaders = []string{
	"INVOICE_CREDIT_NOTE_NUMBER",
	"INVOICE_CREDIT_NOTE_DATE",
	"PAYMENT_DATE",
	"SUPPLIER_NAME",
	"SUPPLIER_VAT_NUMBER",
	"DEPARTURE_COUNTRY",
	"ARRIVAL_COUNTRY",
	"CUSTOMER_VAT_NUMBER",
	"SERVICE_TYPE",
	"GOODS_SERVICE",
	"NATURE_OF_TRANSACTION",
	"SKU",
	"ITEM_DESCRIPTION",
	"GROSS",
	"NET",
	"VAT",
	"CURRENCY",
	"VAT_RATE_APPLIED",
	"SUPPLIER_ESTABLISHED",
	"CATEGORY",
	"PURPOSE_OF_GOODS",
}

// Values returns the record's fields in RecordHeaders order
func (r *AccountingRecord) Values() []string {
	return []string{
		r.InvoiceNumber,
		r.InvoiceDate,
		r.PaymentDate,
		r.SupplierName,
		r.SupplierVATNumber,
		r.DepartureCountry,
		r.ArrivalCountry,
		r.CustomerVATNumber,
		r.ServiceType,
		r.GoodsService,
		r.NatureOfTransaction,
		r.SKU,
		r.ItemDescription,
		r.Gross,
		r.Net,
		r.VAT,
		r.Currency,
		r.VATRate,
		r.SupplierEstablished,
		r.Category,
		r.PurposeOfGoods,
	}
}
