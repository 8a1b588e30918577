package models

import (
	"bytes"
	"encoding/json"
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// Order is a Printful order as returned by GET /orders
type Order struct {
	ID        json.Number `json:"id"`        // Printful order ID
	Created   int64       `json:"created"`   // Creation time, unix seconds
	Costs     Costs       `json:"costs"`     // Cost breakdown charged by Printful
	Recipient Recipient   `json:"recipient"` // Shipping recipient
	Items     []Item      `json:"items"`     // Line items, in order
	Shipments []Shipment  `json:"shipments"` // Shipments, possibly from several facilities
}

// Costs is the cost breakdown of an order. Amounts keep the text Printful sent.
type Costs struct {
	Currency string `json:"currency"`
	Total    Amount `json:"total"`
	VAT      Amount `json:"vat"`
	Tax      Amount `json:"tax"`
}

type Recipient struct {
	CountryCode string `json:"country_code"`
}

type Item struct {
	SKU  *string `json:"sku"` // nil when Printful sends null or omits it
	Name string  `json:"name"`
}

type Shipment struct {
	Location string `json:"location"` // Dispatch country code of the fulfillment facility
}

// UnmarshalJSON decodes an order. A created value sent as a numeric string is
// accepted; anything else that is not a number counts as 0.
func (o *Order) UnmarshalJSON(data []byte) error {
	type plain Order
	aux := struct {
		*plain
		Created json.RawMessage `json:"created"`
	}{plain: (*plain)(o)}

	if err := json.Unmarshal(data, &aux); err != nil {
		return err
	}
	o.Created = parseUnix(aux.Created)
	return nil
}

func parseUnix(raw json.RawMessage) int64 {
	raw = bytes.TrimSpace(raw)
	if len(raw) > 0 && raw[0] == '"' {
		var s string
		if err := json.Unmarshal(raw, &s); err != nil {
			return 0
		}
		raw = []byte(strings.TrimSpace(s))
	}
	if n, err := strconv.ParseInt(string(raw), 10, 64); err == nil {
		return n
	}
	if f, err := strconv.ParseFloat(string(raw), 64); err == nil && !math.IsNaN(f) && !math.IsInf(f, 0) {
		return int64(f)
	}
	return 0
}

// CreatedAt returns the creation timestamp in UTC
func (o *Order) CreatedAt() time.Time {
	return time.Unix(o.Created, 0).UTC()
}

// Amount is a monetary value kept verbatim as received. Printful sends costs
// as decimal strings; plain JSON numbers are accepted too.
type Amount string

// UnmarshalJSON keeps strings and numbers verbatim. Null and any other JSON
// type become the empty amount.
func (a *Amount) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	switch {
	case len(data) == 0:
		*a = ""
	case data[0] == '"':
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*a = Amount(s)
	case data[0] == '-' || (data[0] >= '0' && data[0] <= '9'):
		*a = Amount(data)
	default:
		*a = ""
	}
	return nil
}

// Decimal parses the amount. Missing or malformed values count as zero.
func (a Amount) Decimal() decimal.Decimal {
	d, err := decimal.NewFromString(string(a))
	if err != nil {
		return decimal.Zero
	}
	return d
}

func (a Amount) String() string {
	return string(a)
}
