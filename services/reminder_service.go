// services/reminder_service.go
package services

import (
	"errors"
	"fmt"
	"log"
	"time"

	"accel-erp-backend/config"
	"accel-erp-backend/models"
	"accel-erp-backend/utils"

	"github.com/robfig/cron/v3"
	"gorm.io/gorm"
)

// ReminderService runs the daily jobs: the overdue-invoice sweep with
// quotation expiry, and AMC visit reminders.
type ReminderService struct {
	db           *gorm.DB
	messenger    Messenger
	reminderDays int
	countryCode  string
}

func NewReminderService(db *gorm.DB, messenger Messenger, cfg config.Config) *ReminderService {
	return &ReminderService{
		db:           db,
		messenger:    messenger,
		reminderDays: cfg.AMCReminderDays,
		countryCode:  cfg.DefaultCountryCC,
	}
}

// StartScheduler registers both jobs and starts the cron runner. The caller
// owns the returned runner and should Stop it on shutdown.
func (s *ReminderService) StartScheduler(cfg config.Config) (*cron.Cron, error) {
	c := cron.New()

	if _, err := c.AddFunc(cfg.OverdueCron, func() {
		n, err := s.MarkOverdueInvoices(time.Now())
		if err != nil {
			log.Printf("[CRON] overdue sweep failed: %v", err)
			return
		}
		log.Printf("[CRON] overdue sweep marked %d invoices", n)

		n, err = s.ExpireQuotations(time.Now())
		if err != nil {
			log.Printf("[CRON] quotation expiry failed: %v", err)
			return
		}
		log.Printf("[CRON] expired %d quotations", n)
	}); err != nil {
		return nil, fmt.Errorf("schedule overdue sweep %q: %w", cfg.OverdueCron, err)
	}

	if _, err := c.AddFunc(cfg.AMCReminderCron, func() {
		if _, err := s.SendAMCVisitReminders(time.Now()); err != nil {
			log.Printf("[CRON] AMC reminders failed: %v", err)
		}
	}); err != nil {
		return nil, fmt.Errorf("schedule AMC reminders %q: %w", cfg.AMCReminderCron, err)
	}

	c.Start()
	log.Println("[CRON] scheduler started")
	return c, nil
}

// MarkOverdueInvoices moves Sent invoices whose due date has passed and
// which are not fully paid to Overdue.
func (s *ReminderService) MarkOverdueInvoices(now time.Time) (int64, error) {
	result := s.db.Model(&models.Invoice{}).
		Where("status = ? AND due_date IS NOT NULL AND due_date < ? AND payment_status <> ?",
			models.InvoiceStatusSent, utils.BeginningOfDay(now), models.PaymentStatusPaid).
		Update("status", models.InvoiceStatusOverdue)
	return result.RowsAffected, result.Error
}

// ExpireQuotations moves draft and sent quotations whose validity has lapsed
// to expired.
func (s *ReminderService) ExpireQuotations(now time.Time) (int64, error) {
	result := s.db.Model(&models.Quotation{}).
		Where("status IN ? AND valid_until IS NOT NULL AND valid_until < ?",
			[]string{models.QuotationStatusDraft, models.QuotationStatusSent}, utils.BeginningOfDay(now)).
		Update("status", models.QuotationStatusExpired)
	return result.RowsAffected, result.Error
}

// VisitSchedule spreads n visits over a contract, one in the middle of each
// of n equal slices. It returns nil when the contract has no length or n is
// not positive.
func VisitSchedule(start, end time.Time, n int) []time.Time {
	start = utils.BeginningOfDay(start)
	days := utils.DaysBetween(start, end)
	if n <= 0 || days <= 0 {
		return nil
	}
	visits := make([]time.Time, 0, n)
	for i := 0; i < n; i++ {
		visits = append(visits, start.AddDate(0, 0, days*(2*i+1)/(2*n)))
	}
	return visits
}

// VisitOn returns the scheduled visit falling on the same calendar day as
// day, if any.
func VisitOn(schedule []time.Time, day time.Time) (time.Time, bool) {
	for _, v := range schedule {
		if utils.DaysBetween(v, day) == 0 {
			return v, true
		}
	}
	return time.Time{}, false
}

// AMCVisitMessage renders the reminder text sent to the customer.
func AMCVisitMessage(q models.Quotation, visit time.Time) string {
	name := "Customer"
	if q.Customer != nil && q.Customer.Name != "" {
		name = q.Customer.Name
	}
	kind := q.AMCType
	if kind == "" {
		kind = models.AMCTypeAMC
	}
	msg := fmt.Sprintf("Dear %s, your %s service visit under contract %s is scheduled on %s.",
		name, kind, q.QuotationNumber, visit.Format("02 Jan 2006"))
	if q.Engineer != nil && q.Engineer.Name != "" {
		msg += fmt.Sprintf(" Our engineer %s will contact you.", q.Engineer.Name)
	}
	return msg
}

// SendAMCVisitReminders notifies customers whose AMC visit is reminderDays
// away. A visit is notified at most once. It returns how many reminders were
// logged.
func (s *ReminderService) SendAMCVisitReminders(now time.Time) (int, error) {
	log.Println("[AMC] starting visit reminder processing...")

	today := utils.BeginningOfDay(now)
	target := today.AddDate(0, 0, s.reminderDays)

	var contracts []models.Quotation
	if err := s.db.Preload("Customer").Preload("Engineer").
		Where("type = ? AND status = ? AND contract_start_date <= ? AND contract_end_date >= ?",
			models.QuotationTypeAMC, models.QuotationStatusAccepted, target, today).
		Find(&contracts).Error; err != nil {
		log.Printf("[AMC] failed to fetch contracts: %v", err)
		return 0, fmt.Errorf("fetch contracts: %w", err)
	}

	sent := 0
	for _, q := range contracts {
		if q.ContractStartDate == nil || q.ContractEndDate == nil || q.Customer == nil {
			continue
		}
		visit, ok := VisitOn(VisitSchedule(*q.ContractStartDate, *q.ContractEndDate, q.NumberOfVisits), target)
		if !ok {
			continue
		}
		logged, err := s.notifyVisit(q, visit)
		if err != nil {
			log.Printf("[AMC] quotation %s: %v", q.QuotationNumber, err)
			continue
		}
		if logged {
			sent++
		}
	}

	log.Printf("[AMC] visit reminder processing completed, %d processed", sent)
	return sent, nil
}

// notifyVisit sends and logs one reminder. It reports false when the visit
// was already logged.
func (s *ReminderService) notifyVisit(q models.Quotation, visit time.Time) (bool, error) {
	var existing models.NotificationLog
	err := s.db.Where("quotation_id = ? AND visit_date = ?", q.ID, visit).First(&existing).Error
	if err == nil {
		return false, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return false, fmt.Errorf("check notification log: %w", err)
	}

	message := AMCVisitMessage(q, visit)
	entry := models.NotificationLog{
		CustomerID:  q.CustomerID,
		QuotationID: q.ID,
		Type:        "amc_visit",
		VisitDate:   visit,
		Message:     message,
		SentAt:      time.Now(),
	}

	if s.messenger == nil {
		entry.Status = models.NotificationSkipped
		entry.ErrorMessage = "messaging not configured"
	} else {
		to := utils.NormalizePhone(q.Customer.Phone, s.countryCode)
		channel, sid, err := s.messenger.Send(to, message)
		entry.Channel = channel
		if err != nil {
			log.Printf("[AMC] failed to send message to %s: %v", to, err)
			entry.Status = models.NotificationFailed
			entry.ErrorMessage = err.Error()
		} else {
			log.Printf("[AMC] message sent to %s, SID: %s", to, sid)
			entry.Status = models.NotificationSent
			entry.MessageSID = sid
		}
	}

	if err := s.db.Create(&entry).Error; err != nil {
		return false, fmt.Errorf("log reminder: %w", err)
	}
	return true, nil
}
