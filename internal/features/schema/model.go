package schema

import "time"

// ERPSchemaColumn describes one target ERP column. The Rules sub-object
// is free-form UI metadata; the engine stores it untouched.
type ERPSchemaColumn struct {
	DefaultValue interface{}            `json:"default_value" bson:"default_value"`
	DataType     string                 `json:"data_type" bson:"data_type"`
	Description  string                 `json:"description" bson:"description"`
	Required     bool                   `json:"required" bson:"required"`
	Rules        map[string]interface{} `json:"rules" bson:"rules"`
}

// PostTransformationAction is executed after an invoice is built.
// Script actions run through the tengo executor; everything else is
// metadata for the downstream ERP automation.
type PostTransformationAction struct {
	Enabled        bool     `json:"enabled" bson:"enabled"`
	Action         string   `json:"action" bson:"action"`
	Target         string   `json:"target,omitempty" bson:"target,omitempty"`
	Section        string   `json:"section,omitempty" bson:"section,omitempty"`
	Content        string   `json:"content,omitempty" bson:"content,omitempty"`
	ActivityType   string   `json:"activity_type,omitempty" bson:"activity_type,omitempty"`
	Subject        string   `json:"subject,omitempty" bson:"subject,omitempty"`
	ButtonSequence []string `json:"button_sequence,omitempty" bson:"button_sequence,omitempty"`
}

type Metadata struct {
	CRMColumns         []string `json:"crm_columns" bson:"crm_columns"`
	NotificationEmails []string `json:"notification_emails" bson:"notification_emails"`
	ERPSystem          string   `json:"erp_system" bson:"erp_system"`
	Version            string   `json:"version" bson:"version"`
	LastUpdated        string   `json:"last_updated" bson:"last_updated"`
}

type SchemaStore struct {
	ERPSchema                 map[string]ERPSchemaColumn          `json:"erp_schema" bson:"erp_schema"`
	PostTransformationActions map[string]PostTransformationAction `json:"post_transformation_actions" bson:"post_transformation_actions"`
	Metadata                  Metadata                            `json:"metadata" bson:"metadata"`
}

// Status is the readiness projection: chat-driven rule editing unlocks
// only once the schema has at least one ERP column, one CRM column and
// one notification email.
type Status struct {
	ERPColumnsCount         int  `json:"erp_columns_count"`
	CRMColumnsCount         int  `json:"crm_columns_count"`
	NotificationEmailsCount int  `json:"notification_emails_count"`
	HasERPColumns           bool `json:"has_erp_columns"`
	HasCRMColumns           bool `json:"has_crm_columns"`
	HasNotificationEmails   bool `json:"has_notification_emails"`
	CanUseChat              bool `json:"can_use_chat"`
}

func defaultSchemaStore(erpSystem string) SchemaStore {
	return SchemaStore{
		ERPSchema: map[string]ERPSchemaColumn{},
		PostTransformationActions: map[string]PostTransformationAction{
			"log_note": {
				Enabled: true,
				Action:  "add_note",
				Target:  "invoice_record",
				Section: "Log Notes",
				Content: "AI Agent: This sales invoice record has been created through an autonomous process.",
			},
			"scheduled_activity": {
				Enabled:        true,
				Action:         "create_activity",
				ActivityType:   "To Do",
				Subject:        "Invoice Review: Please check and supervise this AI-generated invoice.",
				ButtonSequence: []string{"Activity", "Scheduled Activity", "To Do", "Save"},
			},
		},
		Metadata: Metadata{
			CRMColumns:         []string{},
			NotificationEmails: []string{},
			ERPSystem:          erpSystem,
			Version:            "1.0.0",
			LastUpdated:        time.Now().UTC().Format(time.RFC3339),
		},
	}
}
