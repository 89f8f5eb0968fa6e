package connectors

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"

	_ "github.com/lib/pq"
	"go.uber.org/zap"

	"go-transformer/internal/config"
	"go-transformer/internal/features/transform"
)

// ERPConnector writes finished invoices into the ERP's staging table
// over Postgres. Construction returns nil when ERP_DSN is unset, which
// the transform service treats as "no ERP connected".
type ERPConnector struct {
	db     *sql.DB
	logger *zap.Logger
}

func NewERPConnector(cfg *config.Config, logger *zap.Logger) (transform.InvoicePusher, error) {
	if cfg.ERPDSN == "" {
		return nil, nil
	}

	db, err := sql.Open("postgres", cfg.ERPDSN)
	if err != nil {
		return nil, fmt.Errorf("open ERP connection: %w", err)
	}
	return &ERPConnector{db: db, logger: logger}, nil
}

func (c *ERPConnector) Push(ctx context.Context, invoices []transform.ERPInvoice) error {
	tx, err := c.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin ERP transaction: %w", err)
	}
	defer tx.Rollback()

	stmt, err := tx.PrepareContext(ctx, `
		INSERT INTO invoice_staging (sales_request_ref, customer_reference, payment_reference, payload)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (sales_request_ref) DO UPDATE
		SET customer_reference = EXCLUDED.customer_reference,
		    payment_reference  = EXCLUDED.payment_reference,
		    payload            = EXCLUDED.payload`)
	if err != nil {
		return fmt.Errorf("prepare ERP insert: %w", err)
	}
	defer stmt.Close()

	for _, invoice := range invoices {
		payload, err := json.Marshal(invoice)
		if err != nil {
			return fmt.Errorf("encode invoice %s: %w", invoice.SalesRequestRef, err)
		}
		if _, err := stmt.ExecContext(ctx,
			invoice.SalesRequestRef,
			invoice.CustomerReference,
			invoice.PaymentReference,
			payload,
		); err != nil {
			return fmt.Errorf("stage invoice %s: %w", invoice.SalesRequestRef, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit ERP transaction: %w", err)
	}

	c.logger.Info("pushed invoices to ERP",
		zap.String("feature", "transform"),
		zap.Int("count", len(invoices)))
	return nil
}
