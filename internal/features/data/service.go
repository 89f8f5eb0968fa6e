package data

import (
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"sort"
	"strings"

	"github.com/xuri/excelize/v2"
	"go.uber.org/zap"

	"go-transformer/internal/common/models"
	"go-transformer/internal/features/audit"
)

// Page is one page of CRM records.
type Page struct {
	Items      []models.CRMRecord `json:"items"`
	Total      int64              `json:"total"`
	Page       int64              `json:"page"`
	Limit      int64              `json:"limit"`
	TotalPages int64              `json:"total_pages"`
}

// Stats summarizes the CRM store for the dashboard.
type Stats struct {
	TotalRecords          int64  `json:"total_records"`
	ActiveRecords         int    `json:"active_records"`
	CustomerCount         int    `json:"customer_count"`
	LatestSalesRequestRef string `json:"latest_sales_request_ref,omitempty"`
}

// ImportResult reports an upload: rows read, records inserted, and rows
// skipped for missing a sales request ref.
type ImportResult struct {
	RowsRead int `json:"rows_read"`
	Inserted int `json:"inserted"`
	Skipped  int `json:"skipped"`
}

type DataService interface {
	Paginated(ctx context.Context, page, limit int64, search string) (Page, error)
	Customers(ctx context.Context) ([]string, error)
	Stats(ctx context.Context) (Stats, error)
	ImportFile(ctx context.Context, filename string, file io.Reader) (ImportResult, error)

	// RecordSource for the transform engine.
	ListRecords(ctx context.Context) ([]models.CRMRecord, error)
	FindByRef(ctx context.Context, ref string) (*models.CRMRecord, error)
}

type DataServiceImpl struct {
	Repo         DataRepository
	AuditService audit.AuditService
	Logger       *zap.Logger
}

func NewDataService(repo DataRepository, auditService audit.AuditService, logger *zap.Logger) DataService {
	return &DataServiceImpl{
		Repo:         repo,
		AuditService: auditService,
		Logger:       logger,
	}
}

func (s *DataServiceImpl) Paginated(ctx context.Context, page, limit int64, search string) (Page, error) {
	if limit < 1 {
		limit = 10
	}
	if limit > 200 {
		limit = 200
	}

	total, err := s.Repo.Count(ctx, search)
	if err != nil {
		return Page{}, err
	}

	totalPages := (total + limit - 1) / limit
	if totalPages < 1 {
		totalPages = 1
	}
	if page < 1 {
		page = 1
	}
	if page > totalPages {
		page = totalPages
	}

	items, err := s.Repo.Find(ctx, search, (page-1)*limit, limit)
	if err != nil {
		return Page{}, err
	}

	return Page{
		Items:      items,
		Total:      total,
		Page:       page,
		Limit:      limit,
		TotalPages: totalPages,
	}, nil
}

func (s *DataServiceImpl) Customers(ctx context.Context) ([]string, error) {
	records, err := s.Repo.FindAll(ctx)
	if err != nil {
		return nil, err
	}

	seen := map[string]bool{}
	customers := []string{}
	for _, record := range records {
		name := strings.TrimSpace(record.CustomerCompany)
		if name != "" && !seen[name] {
			seen[name] = true
			customers = append(customers, name)
		}
	}
	sort.Strings(customers)
	return customers, nil
}

func (s *DataServiceImpl) Stats(ctx context.Context) (Stats, error) {
	records, err := s.Repo.FindAll(ctx)
	if err != nil {
		return Stats{}, err
	}

	active := 0
	seen := map[string]bool{}
	for _, record := range records {
		if strings.EqualFold(strings.TrimSpace(record.Status), "active") {
			active++
		}
		if name := strings.TrimSpace(record.CustomerCompany); name != "" {
			seen[name] = true
		}
	}

	stats := Stats{
		TotalRecords:  int64(len(records)),
		ActiveRecords: active,
		CustomerCount: len(seen),
	}
	if len(records) > 0 {
		stats.LatestSalesRequestRef = records[0].SalesRequestRef
	}
	return stats, nil
}

func (s *DataServiceImpl) ListRecords(ctx context.Context) ([]models.CRMRecord, error) {
	return s.Repo.FindAll(ctx)
}

func (s *DataServiceImpl) FindByRef(ctx context.Context, ref string) (*models.CRMRecord, error) {
	return s.Repo.FindByRef(ctx, ref)
}

func (s *DataServiceImpl) ImportFile(ctx context.Context, filename string, file io.Reader) (ImportResult, error) {
	var headers []string
	var rows [][]string
	var err error

	switch {
	case strings.HasSuffix(strings.ToLower(filename), ".csv"):
		headers, rows, err = parseCSV(file)
	case strings.HasSuffix(strings.ToLower(filename), ".xlsx"):
		headers, rows, err = parseExcel(file)
	default:
		return ImportResult{}, fmt.Errorf("unsupported file type: %s (use .csv or .xlsx)", filename)
	}
	if err != nil {
		return ImportResult{}, err
	}

	result := ImportResult{RowsRead: len(rows)}
	records := []models.CRMRecord{}
	for _, row := range rows {
		record := rowToRecord(headers, row)
		if strings.TrimSpace(record.SalesRequestRef) == "" {
			result.Skipped++
			continue
		}
		records = append(records, record)
	}

	inserted, err := s.Repo.InsertMany(ctx, records)
	if err != nil {
		return ImportResult{}, err
	}
	result.Inserted = inserted

	_ = s.AuditService.LogChange(ctx, models.AuditActionImport, filename, map[string]models.Change{
		"records": {Old: nil, New: inserted},
	})
	s.Logger.Info("CRM import complete",
		zap.String("feature", "data"),
		zap.String("file", filename),
		zap.Int("inserted", inserted),
		zap.Int("skipped", result.Skipped))

	return result, nil
}

func parseCSV(file io.Reader) ([]string, [][]string, error) {
	reader := csv.NewReader(file)
	reader.FieldsPerRecord = -1

	all, err := reader.ReadAll()
	if err != nil {
		return nil, nil, fmt.Errorf("failed to read CSV file: %w", err)
	}
	if len(all) == 0 {
		return nil, nil, fmt.Errorf("CSV file is empty")
	}
	return all[0], all[1:], nil
}

func parseExcel(file io.Reader) ([]string, [][]string, error) {
	f, err := excelize.OpenReader(file)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to open Excel file: %w", err)
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, nil, fmt.Errorf("no sheets found in Excel file")
	}

	rows, err := f.GetRows(sheets[0])
	if err != nil {
		return nil, nil, fmt.Errorf("failed to read Excel rows: %w", err)
	}
	if len(rows) == 0 {
		return nil, nil, fmt.Errorf("Excel file is empty")
	}
	return rows[0], rows[1:], nil
}

// headerKey flattens a header spelling so "Sales Request Ref",
// "sales_request_ref" and "SalesRequestRef" all meet.
func headerKey(header string) string {
	var b strings.Builder
	for _, r := range strings.ToLower(header) {
		if (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9') {
			b.WriteRune(r)
		}
	}
	return b.String()
}

func rowToRecord(headers []string, row []string) models.CRMRecord {
	values := map[string]string{}
	for i, header := range headers {
		if i < len(row) {
			values[headerKey(header)] = strings.TrimSpace(row[i])
		}
	}

	get := func(keys ...string) string {
		for _, key := range keys {
			if v, ok := values[key]; ok && v != "" {
				return v
			}
		}
		return ""
	}

	return models.CRMRecord{
		SalesRequestRef:      get("salesrequestref"),
		CRMSourceSystemID:    get("crmsourcesystemid"),
		DateRaised:           get("dateraised"),
		SalesPerson:          get("salesperson"),
		Status:               get("status"),
		CustomerCompany:      get("customercompany"),
		CustomerContact:      get("customercontact"),
		TradingAddress:       get("tradingaddress"),
		DeliveryAddress:      get("deliveryaddress"),
		SalesDiscountPercent: get("salesdiscountpercent", "salesdiscount"),
		Product1:             get("product1"),
		Product1Quantity:     get("product1quantity"),
		Product1PricePerUnit: get("product1priceperunit"),
		Product2:             get("product2"),
		Product2Quantity:     get("product2quantity"),
		Product2PricePerUnit: get("product2priceperunit"),
		Product3:             get("product3"),
		Product3Quantity:     get("product3quantity"),
		Product3PricePerUnit: get("product3priceperunit"),
	}
}
