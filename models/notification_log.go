// models/notification_log.go
package models

import (
	"time"

	"github.com/google/uuid"
)

const (
	NotificationSent    = "sent"
	NotificationFailed  = "failed"
	NotificationSkipped = "skipped"
)

type NotificationLog struct {
	Base

	CustomerID   uuid.UUID `gorm:"type:char(36);index;not null" json:"customerId"`
	QuotationID  uuid.UUID `gorm:"type:char(36);index;not null" json:"quotationId"`
	Type         string    `gorm:"type:varchar(20)" json:"type"` // amc_visit
	VisitDate    time.Time `json:"visitDate"`
	Message      string    `gorm:"type:text" json:"message"`
	Status       string    `gorm:"type:varchar(20)" json:"status"` // sent, failed, skipped
	ErrorMessage string    `gorm:"type:text" json:"errorMessage"`
	Channel      string    `gorm:"type:varchar(20)" json:"channel"` // whatsapp, sms
	MessageSID   string    `gorm:"column:message_sid" json:"messageSid"`
	SentAt       time.Time `json:"sentAt"`
}
