package schema

import (
	"context"
	"testing"

	"go-transformer/internal/config"
)

type memorySchemaRepo struct {
	store *SchemaStore
}

func (r *memorySchemaRepo) Get(ctx context.Context) (*SchemaStore, error) {
	return r.store, nil
}

func (r *memorySchemaRepo) Replace(ctx context.Context, store SchemaStore) error {
	r.store = &store
	return nil
}

func newTestService(repo *memorySchemaRepo) SchemaService {
	return NewSchemaService(repo, &config.Config{ERPSystem: "Odoo"}, nil)
}

func TestNormalizeColumnName(t *testing.T) {
	cases := []struct {
		name    string
		input   string
		want    string
		wantErr bool
	}{
		{"pascal case", "InvoiceDate", "invoice_date", false},
		{"spaces", "Invoice Date", "invoice_date", false},
		{"already snake", "invoice_date", "invoice_date", false},
		{"mixed symbols", "Customer  Ref-Number", "customer_ref_number", false},
		{"digits kept", "Line3Total", "line3_total", false},
		{"surrounding junk", "  __Total__  ", "total", false},
		{"empty", "   ", "", true},
		{"only symbols", "---", "", true},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got, err := normalizeColumnName(tc.input)
			if tc.wantErr {
				if err == nil {
					t.Fatalf("normalizeColumnName(%q) expected error, got %q", tc.input, got)
				}
				return
			}
			if err != nil {
				t.Fatalf("normalizeColumnName(%q) error: %v", tc.input, err)
			}
			if got != tc.want {
				t.Errorf("normalizeColumnName(%q) = %q, want %q", tc.input, got, tc.want)
			}
		})
	}
}

func TestNormalizeEmail(t *testing.T) {
	cases := []struct {
		name    string
		input   string
		want    string
		wantErr bool
	}{
		{"lowercased", "Ops@Example.COM", "ops@example.com", false},
		{"trimmed", "  ops@example.com ", "ops@example.com", false},
		{"missing at", "ops.example.com", "", true},
		{"missing domain dot", "ops@example", "", true},
		{"empty", "", "", true},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got, err := normalizeEmail(tc.input)
			if tc.wantErr {
				if err == nil {
					t.Fatalf("normalizeEmail(%q) expected error, got %q", tc.input, got)
				}
				return
			}
			if err != nil {
				t.Fatalf("normalizeEmail(%q) error: %v", tc.input, err)
			}
			if got != tc.want {
				t.Errorf("normalizeEmail(%q) = %q, want %q", tc.input, got, tc.want)
			}
		})
	}
}

func TestComputeStatus(t *testing.T) {
	column := ERPSchemaColumn{DataType: "string"}
	cases := []struct {
		name       string
		store      SchemaStore
		canUseChat bool
	}{
		{
			"empty store",
			SchemaStore{},
			false,
		},
		{
			"erp only",
			SchemaStore{ERPSchema: map[string]ERPSchemaColumn{"invoice_id": column}},
			false,
		},
		{
			"erp and crm only",
			SchemaStore{
				ERPSchema: map[string]ERPSchemaColumn{"invoice_id": column},
				Metadata:  Metadata{CRMColumns: []string{"customer_name"}},
			},
			false,
		},
		{
			"blank entries do not count",
			SchemaStore{
				ERPSchema: map[string]ERPSchemaColumn{"invoice_id": column},
				Metadata: Metadata{
					CRMColumns:         []string{"  ", ""},
					NotificationEmails: []string{" "},
				},
			},
			false,
		},
		{
			"fully configured",
			SchemaStore{
				ERPSchema: map[string]ERPSchemaColumn{"invoice_id": column},
				Metadata: Metadata{
					CRMColumns:         []string{"customer_name"},
					NotificationEmails: []string{"ops@example.com"},
				},
			},
			true,
		},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			status := ComputeStatus(tc.store)
			if status.CanUseChat != tc.canUseChat {
				t.Errorf("CanUseChat = %v, want %v", status.CanUseChat, tc.canUseChat)
			}
		})
	}
}

func TestStatusUnlocksAfterEdits(t *testing.T) {
	ctx := context.Background()
	repo := &memorySchemaRepo{}
	service := newTestService(repo)

	status, err := service.Status(ctx)
	if err != nil {
		t.Fatal(err)
	}
	if status.CanUseChat {
		t.Fatal("chat should be locked on a fresh store")
	}

	if _, err := service.UpsertERPColumn(ctx, "InvoiceID", ERPSchemaColumn{DataType: "string"}); err != nil {
		t.Fatal(err)
	}
	if _, err := service.AddCRMColumn(ctx, "Customer Name"); err != nil {
		t.Fatal(err)
	}

	status, err = service.Status(ctx)
	if err != nil {
		t.Fatal(err)
	}
	if status.CanUseChat {
		t.Fatal("chat should stay locked without a notification email")
	}

	if _, err := service.AddNotificationEmail(ctx, "Ops@Example.com"); err != nil {
		t.Fatal(err)
	}

	status, err = service.Status(ctx)
	if err != nil {
		t.Fatal(err)
	}
	if !status.CanUseChat {
		t.Fatal("chat should unlock once all three sections are populated")
	}
	if status.ERPColumnsCount != 1 || status.CRMColumnsCount != 1 || status.NotificationEmailsCount != 1 {
		t.Errorf("unexpected counts: %+v", status)
	}

	if _, err := service.DeleteNotificationEmail(ctx, "ops@example.com"); err != nil {
		t.Fatal(err)
	}
	status, err = service.Status(ctx)
	if err != nil {
		t.Fatal(err)
	}
	if status.CanUseChat {
		t.Fatal("chat should lock again after the email is removed")
	}
}

func TestSingleNotificationEmail(t *testing.T) {
	ctx := context.Background()
	service := newTestService(&memorySchemaRepo{})

	if _, err := service.AddNotificationEmail(ctx, "first@example.com"); err != nil {
		t.Fatal(err)
	}

	// Re-adding the same address is a no-op, a different one is rejected.
	if _, err := service.AddNotificationEmail(ctx, "First@Example.com"); err != nil {
		t.Fatalf("re-adding the same email should succeed: %v", err)
	}
	_, err := service.AddNotificationEmail(ctx, "second@example.com")
	if err == nil {
		t.Fatal("expected error when adding a second notification email")
	}
	if _, ok := err.(*ValidationError); !ok {
		t.Fatalf("expected ValidationError, got %T", err)
	}

	store, err := service.RenameNotificationEmail(ctx, "first@example.com", "second@example.com")
	if err != nil {
		t.Fatal(err)
	}
	if len(store.Metadata.NotificationEmails) != 1 || store.Metadata.NotificationEmails[0] != "second@example.com" {
		t.Errorf("unexpected emails after rename: %v", store.Metadata.NotificationEmails)
	}
}

func TestAddCRMColumnDedupes(t *testing.T) {
	ctx := context.Background()
	service := newTestService(&memorySchemaRepo{})

	if _, err := service.AddCRMColumn(ctx, "Customer Name"); err != nil {
		t.Fatal(err)
	}
	store, err := service.AddCRMColumn(ctx, "customer_name")
	if err != nil {
		t.Fatal(err)
	}
	if len(store.Metadata.CRMColumns) != 1 {
		t.Errorf("expected deduped columns, got %v", store.Metadata.CRMColumns)
	}
}
