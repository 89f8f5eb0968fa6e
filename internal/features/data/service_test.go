package data

import (
	"strings"
	"testing"
)

func TestHeaderKey(t *testing.T) {
	cases := []struct {
		input string
		want  string
	}{
		{"Sales Request Ref", "salesrequestref"},
		{"sales_request_ref", "salesrequestref"},
		{"SalesRequestRef", "salesrequestref"},
		{"Sales Discount %", "salesdiscount"},
		{"Product 1 Price Per Unit", "product1priceperunit"},
	}
	for _, tc := range cases {
		if got := headerKey(tc.input); got != tc.want {
			t.Errorf("headerKey(%q) = %q, want %q", tc.input, got, tc.want)
		}
	}
}

func TestRowToRecord(t *testing.T) {
	headers := []string{
		"Sales Request Ref", "Date Raised", "Customer Company",
		"Sales Discount %", "Product 1", "Product 1 Quantity", "Product 1 Price Per Unit",
	}
	row := []string{"SR-0042", "15/03/2024", " ACME ", "10", "WID-1 - Widget", "2", "10.50"}

	record := rowToRecord(headers, row)

	if record.SalesRequestRef != "SR-0042" {
		t.Errorf("SalesRequestRef = %q", record.SalesRequestRef)
	}
	if record.CustomerCompany != "ACME" {
		t.Errorf("CustomerCompany = %q, expected trimmed value", record.CustomerCompany)
	}
	if record.SalesDiscountPercent != "10" {
		t.Errorf("SalesDiscountPercent = %q", record.SalesDiscountPercent)
	}
	if record.Product1Quantity != "2" || record.Product1PricePerUnit != "10.50" {
		t.Errorf("product slot 1 = %+v", record)
	}
	if record.Product2 != "" {
		t.Errorf("Product2 should be empty, got %q", record.Product2)
	}
}

func TestRowToRecordShortRow(t *testing.T) {
	headers := []string{"Sales Request Ref", "Date Raised", "Customer Company"}
	record := rowToRecord(headers, []string{"SR-0001"})

	if record.SalesRequestRef != "SR-0001" {
		t.Errorf("SalesRequestRef = %q", record.SalesRequestRef)
	}
	if record.DateRaised != "" || record.CustomerCompany != "" {
		t.Errorf("missing cells should stay empty: %+v", record)
	}
}

func TestParseCSV(t *testing.T) {
	input := "Sales Request Ref,Customer Company\nSR-0001,ACME\nSR-0002,Globex\n"
	headers, rows, err := parseCSV(strings.NewReader(input))
	if err != nil {
		t.Fatal(err)
	}
	if len(headers) != 2 || headers[0] != "Sales Request Ref" {
		t.Errorf("headers = %v", headers)
	}
	if len(rows) != 2 || rows[1][1] != "Globex" {
		t.Errorf("rows = %v", rows)
	}
}
