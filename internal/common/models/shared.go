package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type AuditAction string

const (
	AuditActionRules     AuditAction = "RULES"
	AuditActionSchema    AuditAction = "SCHEMA"
	AuditActionTransform AuditAction = "TRANSFORM"
	AuditActionImport    AuditAction = "IMPORT"
	AuditActionAssist    AuditAction = "ASSIST"
)

type Change struct {
	Old interface{} `bson:"old" json:"old"`
	New interface{} `bson:"new" json:"new"`
}

type AuditLog struct {
	ID        primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Action    AuditAction        `bson:"action" json:"action"`
	Target    string             `bson:"target" json:"target"`
	Changes   map[string]Change  `bson:"changes,omitempty" json:"changes,omitempty"`
	Timestamp time.Time          `bson:"timestamp" json:"timestamp"`
}
