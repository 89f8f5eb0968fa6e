package schema

import (
	"context"
	"regexp"
	"strings"
	"time"

	"go-transformer/internal/config"
)

// Notifier pushes schema change events to connected UIs.
type Notifier interface {
	NotifySchemaChanged()
}

type SchemaService interface {
	Get(ctx context.Context) (SchemaStore, error)
	Save(ctx context.Context, store SchemaStore) (SchemaStore, error)
	Status(ctx context.Context) (Status, error)

	UpsertERPColumn(ctx context.Context, name string, column ERPSchemaColumn) (SchemaStore, error)
	DeleteERPColumn(ctx context.Context, name string) (SchemaStore, error)

	AddCRMColumn(ctx context.Context, name string) (SchemaStore, error)
	RenameCRMColumn(ctx context.Context, name, newName string) (SchemaStore, error)
	DeleteCRMColumn(ctx context.Context, name string) (SchemaStore, error)

	AddNotificationEmail(ctx context.Context, email string) (SchemaStore, error)
	RenameNotificationEmail(ctx context.Context, email, newEmail string) (SchemaStore, error)
	DeleteNotificationEmail(ctx context.Context, email string) (SchemaStore, error)
}

type SchemaServiceImpl struct {
	Repo     SchemaRepository
	Config   *config.Config
	Notifier Notifier
}

func NewSchemaService(repo SchemaRepository, cfg *config.Config, notifier Notifier) SchemaService {
	return &SchemaServiceImpl{
		Repo:     repo,
		Config:   cfg,
		Notifier: notifier,
	}
}

var (
	wordBoundaryRe = regexp.MustCompile(`([a-z0-9])([A-Z])`)
	nonAlnumRe     = regexp.MustCompile(`[^A-Za-z0-9]+`)
	underscoresRe  = regexp.MustCompile(`_+`)
	emailRe        = regexp.MustCompile(`^[^@\s]+@[^@\s]+\.[^@\s]+$`)
)

// normalizeColumnName converts any spelling to unique snake_case so
// "InvoiceDate", "Invoice Date" and "invoice_date" are one column.
func normalizeColumnName(name string) (string, error) {
	cleaned := strings.TrimSpace(name)
	if cleaned == "" {
		return "", newValidationError("Column name cannot be empty")
	}

	snake := wordBoundaryRe.ReplaceAllString(cleaned, "${1}_${2}")
	snake = nonAlnumRe.ReplaceAllString(snake, "_")
	snake = underscoresRe.ReplaceAllString(snake, "_")
	snake = strings.ToLower(strings.Trim(snake, "_"))

	if snake == "" {
		return "", newValidationError("Column name cannot be empty")
	}
	return snake, nil
}

func normalizeEmail(email string) (string, error) {
	cleaned := strings.ToLower(strings.TrimSpace(email))
	if cleaned == "" {
		return "", newValidationError("Email cannot be empty")
	}
	if !emailRe.MatchString(cleaned) {
		return "", newValidationError("Invalid email address: %s", cleaned)
	}
	return cleaned, nil
}

func (s *SchemaServiceImpl) load(ctx context.Context) (SchemaStore, error) {
	store, err := s.Repo.Get(ctx)
	if err != nil {
		return SchemaStore{}, err
	}
	if store == nil {
		return defaultSchemaStore(s.Config.ERPSystem), nil
	}
	return *store, nil
}

func (s *SchemaServiceImpl) Get(ctx context.Context) (SchemaStore, error) {
	store, err := s.load(ctx)
	if err != nil {
		return SchemaStore{}, err
	}
	return normalizeStore(store)
}

func (s *SchemaServiceImpl) Save(ctx context.Context, store SchemaStore) (SchemaStore, error) {
	normalized, err := normalizeStore(store)
	if err != nil {
		return SchemaStore{}, err
	}
	normalized.Metadata.LastUpdated = time.Now().UTC().Format(time.RFC3339)

	if err := s.Repo.Replace(ctx, normalized); err != nil {
		return SchemaStore{}, err
	}
	if s.Notifier != nil {
		s.Notifier.NotifySchemaChanged()
	}
	return normalized, nil
}

// normalizeStore rewrites ERP column keys and CRM columns to snake_case
// and dedupes both sets; notification emails are lowercased and capped
// at one (current product rule).
func normalizeStore(store SchemaStore) (SchemaStore, error) {
	normalizedSchema := map[string]ERPSchemaColumn{}
	for key, column := range store.ERPSchema {
		name, err := normalizeColumnName(key)
		if err != nil {
			return SchemaStore{}, err
		}
		normalizedSchema[name] = column
	}
	store.ERPSchema = normalizedSchema

	seen := map[string]bool{}
	crmColumns := []string{}
	for _, item := range store.Metadata.CRMColumns {
		name, err := normalizeColumnName(item)
		if err != nil {
			return SchemaStore{}, err
		}
		if !seen[name] {
			seen[name] = true
			crmColumns = append(crmColumns, name)
		}
	}
	store.Metadata.CRMColumns = crmColumns

	seenEmails := map[string]bool{}
	emails := []string{}
	for _, item := range store.Metadata.NotificationEmails {
		email, err := normalizeEmail(item)
		if err != nil {
			return SchemaStore{}, err
		}
		if !seenEmails[email] {
			seenEmails[email] = true
			emails = append(emails, email)
		}
	}
	if len(emails) > 1 {
		emails = emails[:1]
	}
	store.Metadata.NotificationEmails = emails

	return store, nil
}

// Status is recomputed from the snapshot on every call; nothing is
// cached, so edits through any path are reflected immediately.
func (s *SchemaServiceImpl) Status(ctx context.Context) (Status, error) {
	store, err := s.Get(ctx)
	if err != nil {
		return Status{}, err
	}
	return ComputeStatus(store), nil
}

func ComputeStatus(store SchemaStore) Status {
	erpCount := len(store.ERPSchema)

	crmCount := 0
	for _, item := range store.Metadata.CRMColumns {
		if strings.TrimSpace(item) != "" {
			crmCount++
		}
	}

	emailCount := 0
	for _, item := range store.Metadata.NotificationEmails {
		if strings.TrimSpace(item) != "" {
			emailCount++
		}
	}

	return Status{
		ERPColumnsCount:         erpCount,
		CRMColumnsCount:         crmCount,
		NotificationEmailsCount: emailCount,
		HasERPColumns:           erpCount > 0,
		HasCRMColumns:           crmCount > 0,
		HasNotificationEmails:   emailCount > 0,
		CanUseChat:              erpCount > 0 && crmCount > 0 && emailCount > 0,
	}
}

func (s *SchemaServiceImpl) UpsertERPColumn(ctx context.Context, name string, column ERPSchemaColumn) (SchemaStore, error) {
	normalized, err := normalizeColumnName(name)
	if err != nil {
		return SchemaStore{}, err
	}

	store, err := s.load(ctx)
	if err != nil {
		return SchemaStore{}, err
	}
	if store.ERPSchema == nil {
		store.ERPSchema = map[string]ERPSchemaColumn{}
	}
	store.ERPSchema[normalized] = column
	return s.Save(ctx, store)
}

func (s *SchemaServiceImpl) DeleteERPColumn(ctx context.Context, name string) (SchemaStore, error) {
	normalized, err := normalizeColumnName(name)
	if err != nil {
		return SchemaStore{}, err
	}

	store, err := s.load(ctx)
	if err != nil {
		return SchemaStore{}, err
	}
	if _, ok := store.ERPSchema[normalized]; !ok {
		return SchemaStore{}, newNotFoundError("ERP column not found: %s", normalized)
	}
	delete(store.ERPSchema, normalized)
	return s.Save(ctx, store)
}

func (s *SchemaServiceImpl) AddCRMColumn(ctx context.Context, name string) (SchemaStore, error) {
	normalized, err := normalizeColumnName(name)
	if err != nil {
		return SchemaStore{}, err
	}

	store, err := s.load(ctx)
	if err != nil {
		return SchemaStore{}, err
	}

	exists := false
	for _, item := range store.Metadata.CRMColumns {
		if strings.EqualFold(strings.TrimSpace(item), normalized) {
			exists = true
			break
		}
	}
	if !exists {
		store.Metadata.CRMColumns = append(store.Metadata.CRMColumns, normalized)
	}
	return s.Save(ctx, store)
}

func (s *SchemaServiceImpl) RenameCRMColumn(ctx context.Context, name, newName string) (SchemaStore, error) {
	old, err := normalizeColumnName(name)
	if err != nil {
		return SchemaStore{}, err
	}
	updated, err := normalizeColumnName(newName)
	if err != nil {
		return SchemaStore{}, err
	}

	store, err := s.load(ctx)
	if err != nil {
		return SchemaStore{}, err
	}

	for index, item := range store.Metadata.CRMColumns {
		if item == old {
			store.Metadata.CRMColumns[index] = updated
			return s.Save(ctx, store)
		}
	}
	return SchemaStore{}, newNotFoundError("CRM column not found: %s", old)
}

func (s *SchemaServiceImpl) DeleteCRMColumn(ctx context.Context, name string) (SchemaStore, error) {
	normalized, err := normalizeColumnName(name)
	if err != nil {
		return SchemaStore{}, err
	}

	store, err := s.load(ctx)
	if err != nil {
		return SchemaStore{}, err
	}

	for index, item := range store.Metadata.CRMColumns {
		if item == normalized {
			store.Metadata.CRMColumns = append(store.Metadata.CRMColumns[:index], store.Metadata.CRMColumns[index+1:]...)
			return s.Save(ctx, store)
		}
	}
	return SchemaStore{}, newNotFoundError("CRM column not found: %s", normalized)
}

func (s *SchemaServiceImpl) AddNotificationEmail(ctx context.Context, email string) (SchemaStore, error) {
	normalized, err := normalizeEmail(email)
	if err != nil {
		return SchemaStore{}, err
	}

	store, err := s.load(ctx)
	if err != nil {
		return SchemaStore{}, err
	}

	existing := []string{}
	for _, item := range store.Metadata.NotificationEmails {
		if strings.TrimSpace(item) != "" {
			existing = append(existing, strings.ToLower(strings.TrimSpace(item)))
		}
	}
	if len(existing) > 0 && existing[0] != normalized {
		return SchemaStore{}, newValidationError(
			"Only one notification email is allowed. Edit or delete the existing email first.")
	}

	store.Metadata.NotificationEmails = []string{normalized}
	return s.Save(ctx, store)
}

func (s *SchemaServiceImpl) RenameNotificationEmail(ctx context.Context, email, newEmail string) (SchemaStore, error) {
	current, err := normalizeEmail(email)
	if err != nil {
		return SchemaStore{}, err
	}
	updated, err := normalizeEmail(newEmail)
	if err != nil {
		return SchemaStore{}, err
	}

	store, err := s.load(ctx)
	if err != nil {
		return SchemaStore{}, err
	}

	for index, item := range store.Metadata.NotificationEmails {
		if strings.ToLower(strings.TrimSpace(item)) == current {
			store.Metadata.NotificationEmails[index] = updated
			return s.Save(ctx, store)
		}
	}
	return SchemaStore{}, newNotFoundError("Notification email not found: %s", current)
}

func (s *SchemaServiceImpl) DeleteNotificationEmail(ctx context.Context, email string) (SchemaStore, error) {
	normalized, err := normalizeEmail(email)
	if err != nil {
		return SchemaStore{}, err
	}

	store, err := s.load(ctx)
	if err != nil {
		return SchemaStore{}, err
	}

	for index, item := range store.Metadata.NotificationEmails {
		if strings.ToLower(strings.TrimSpace(item)) == normalized {
			store.Metadata.NotificationEmails = append(
				store.Metadata.NotificationEmails[:index], store.Metadata.NotificationEmails[index+1:]...)
			return s.Save(ctx, store)
		}
	}
	return SchemaStore{}, newNotFoundError("Notification email not found: %s", normalized)
}
