package models

// CRMRecord is one sales request as read from the CRM store. Records
// are immutable once read; the engine never writes them back.
type CRMRecord struct {
	SalesRequestRef      string `json:"sales_request_ref" bson:"sales_request_ref"`
	CRMSourceSystemID    string `json:"crm_source_system_id,omitempty" bson:"crm_source_system_id,omitempty"`
	DateRaised           string `json:"date_raised" bson:"date_raised"`
	SalesPerson          string `json:"sales_person" bson:"sales_person"`
	Status               string `json:"status" bson:"status"`
	CustomerCompany      string `json:"customer_company" bson:"customer_company"`
	CustomerContact      string `json:"customer_contact" bson:"customer_contact"`
	TradingAddress       string `json:"trading_address" bson:"trading_address"`
	DeliveryAddress      string `json:"delivery_address" bson:"delivery_address"`
	SalesDiscountPercent string `json:"sales_discount_percent" bson:"sales_discount_percent"`
	Product1             string `json:"product_1,omitempty" bson:"product_1,omitempty"`
	Product1Quantity     string `json:"product_1_quantity,omitempty" bson:"product_1_quantity,omitempty"`
	Product1PricePerUnit string `json:"product_1_price_per_unit,omitempty" bson:"product_1_price_per_unit,omitempty"`
	Product2             string `json:"product_2,omitempty" bson:"product_2,omitempty"`
	Product2Quantity     string `json:"product_2_quantity,omitempty" bson:"product_2_quantity,omitempty"`
	Product2PricePerUnit string `json:"product_2_price_per_unit,omitempty" bson:"product_2_price_per_unit,omitempty"`
	Product3             string `json:"product_3,omitempty" bson:"product_3,omitempty"`
	Product3Quantity     string `json:"product_3_quantity,omitempty" bson:"product_3_quantity,omitempty"`
	Product3PricePerUnit string `json:"product_3_price_per_unit,omitempty" bson:"product_3_price_per_unit,omitempty"`
}

// ProductSlot groups one of the record's three product triples.
type ProductSlot struct {
	Product      string
	Quantity     string
	PricePerUnit string
}

// ProductSlots returns the record's product triples in slot order,
// including empty ones; callers skip slots with an empty Product.
func (r CRMRecord) ProductSlots() []ProductSlot {
	return []ProductSlot{
		{Product: r.Product1, Quantity: r.Product1Quantity, PricePerUnit: r.Product1PricePerUnit},
		{Product: r.Product2, Quantity: r.Product2Quantity, PricePerUnit: r.Product2PricePerUnit},
		{Product: r.Product3, Quantity: r.Product3Quantity, PricePerUnit: r.Product3PricePerUnit},
	}
}

// Field resolves a snake_case CRM column name to the record's value.
// Reference rules name their source fields this way.
func (r CRMRecord) Field(name string) string {
	switch name {
	case "sales_request_ref":
		return r.SalesRequestRef
	case "crm_source_system_id":
		return r.CRMSourceSystemID
	case "date_raised":
		return r.DateRaised
	case "sales_person":
		return r.SalesPerson
	case "status":
		return r.Status
	case "customer_company":
		return r.CustomerCompany
	case "customer_contact":
		return r.CustomerContact
	case "trading_address":
		return r.TradingAddress
	case "delivery_address":
		return r.DeliveryAddress
	case "sales_discount_percent":
		return r.SalesDiscountPercent
	default:
		return ""
	}
}
