package transform

// LineItem is one invoice line derived from a populated product slot.
type LineItem struct {
	ProductCode string  `json:"product_code" bson:"product_code"`
	Description string  `json:"description" bson:"description"`
	Quantity    float64 `json:"quantity" bson:"quantity"`
	UnitPrice   float64 `json:"unit_price" bson:"unit_price"`
	LineTotal   float64 `json:"line_total" bson:"line_total"`
}

// ERPInvoice is the transformed output for one CRM record.
type ERPInvoice struct {
	SalesRequestRef    string     `json:"sales_request_ref" bson:"sales_request_ref"`
	InvoiceDate        string     `json:"invoice_date" bson:"invoice_date"`
	SalesPerson        string     `json:"sales_person" bson:"sales_person"`
	CustomerContact    string     `json:"customer_contact" bson:"customer_contact"`
	TradingAddress     string     `json:"trading_address" bson:"trading_address"`
	DeliveryAddress    string     `json:"delivery_address" bson:"delivery_address"`
	DiscountPercent    float64    `json:"discount_percent" bson:"discount_percent"`
	CustomerName       string     `json:"customer_name" bson:"customer_name"`
	Country            string     `json:"country" bson:"country"`
	TaxRate            string     `json:"tax_rate" bson:"tax_rate"`
	TermsAndConditions string     `json:"terms_and_conditions" bson:"terms_and_conditions"`
	PaymentTerms       string     `json:"payment_terms" bson:"payment_terms"`
	PaymentMethod      string     `json:"payment_method" bson:"payment_method"`
	DeliveryDate       string     `json:"delivery_date" bson:"delivery_date"`
	CustomerReference  string     `json:"customer_reference" bson:"customer_reference"`
	PaymentReference   string     `json:"payment_reference" bson:"payment_reference"`
	LineItems          []LineItem `json:"line_items" bson:"line_items"`
	Subtotal           float64    `json:"subtotal" bson:"subtotal"`
	TaxAmount          float64    `json:"tax_amount" bson:"tax_amount"`
	Total              float64    `json:"total" bson:"total"`
}

// RecordFailure is one record the batch could not transform.
type RecordFailure struct {
	SalesRequestRef string `json:"sales_request_ref" bson:"sales_request_ref"`
	Error           string `json:"error" bson:"error"`
}

// BatchResult is one batch run: successful invoices plus collected
// per-record failures. A failure never aborts the rest of the batch.
// MissingRefs lists requested sales request refs with no stored record.
type BatchResult struct {
	Count       int             `json:"count" bson:"count"`
	MissingRefs []string        `json:"missing_sales_request_refs" bson:"missing_sales_request_refs"`
	Invoices    []ERPInvoice    `json:"invoices" bson:"invoices"`
	Failures    []RecordFailure `json:"failures,omitempty" bson:"failures,omitempty"`
}
