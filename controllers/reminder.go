// controllers/reminder.go
package controllers

import (
	"net/http"
	"time"

	"accel-erp-backend/config"
	"accel-erp-backend/models"
	"accel-erp-backend/services"
	"accel-erp-backend/utils"

	"github.com/gin-gonic/gin"
)

// NotificationListQuery filters the AMC reminder log
type NotificationListQuery struct {
	Page        int    `form:"page" binding:"omitempty,min=1"`
	Limit       int    `form:"limit" binding:"omitempty,min=1,max=100"`
	Status      string `form:"status" binding:"omitempty,oneof=sent failed skipped"`
	CustomerID  string `form:"customerId" binding:"omitempty,uuid"`
	QuotationID string `form:"quotationId" binding:"omitempty,uuid"`
	DateFrom    string `form:"dateFrom" binding:"omitempty,datetime=2006-01-02"`
	DateTo      string `form:"dateTo" binding:"omitempty,datetime=2006-01-02"`
}

// RunRemindersInput picks the day the jobs run as
type RunRemindersInput struct {
	Date string `json:"date" binding:"omitempty,datetime=2006-01-02"`
}

// GetNotifications lists logged reminders, newest first
func GetNotifications(c *gin.Context) {
	var q NotificationListQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		utils.RespondWithBindError(c, err, &q)
		return
	}

	query := config.DB.Model(&models.NotificationLog{})
	if q.Status != "" {
		query = query.Where("status = ?", q.Status)
	}
	if q.CustomerID != "" {
		query = query.Where("customer_id = ?", q.CustomerID)
	}
	if q.QuotationID != "" {
		query = query.Where("quotation_id = ?", q.QuotationID)
	}
	if q.DateFrom != "" {
		from, _ := time.Parse("2006-01-02", q.DateFrom)
		query = query.Where("sent_at >= ?", from)
	}
	if q.DateTo != "" {
		to, _ := time.Parse("2006-01-02", q.DateTo)
		query = query.Where("sent_at <= ?", utils.EndOfDay(to))
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to count notifications")
		return
	}
	page := utils.NewPagination(q.Page, q.Limit, total)

	var logs []models.NotificationLog
	if err := query.Order("sent_at DESC").Offset(page.Offset()).Limit(page.Limit).
		Find(&logs).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to retrieve notifications")
		return
	}

	c.JSON(http.StatusOK, gin.H{"notifications": logs, "pagination": page})
}

// RunReminders runs the daily jobs on demand
func RunReminders(reminders *services.ReminderService) gin.HandlerFunc {
	return func(c *gin.Context) {
		var input RunRemindersInput
		if c.Request.ContentLength > 0 {
			if err := c.ShouldBindJSON(&input); err != nil {
				utils.RespondWithBindError(c, err, &input)
				return
			}
		}
		at := time.Now()
		if input.Date != "" {
			at, _ = time.ParseInLocation("2006-01-02", input.Date, time.Local)
		}

		overdue, err := reminders.MarkOverdueInvoices(at)
		if err != nil {
			utils.RespondWithError(c, http.StatusInternalServerError, "Failed to mark overdue invoices")
			return
		}
		expired, err := reminders.ExpireQuotations(at)
		if err != nil {
			utils.RespondWithError(c, http.StatusInternalServerError, "Failed to expire quotations")
			return
		}
		sent, err := reminders.SendAMCVisitReminders(at)
		if err != nil {
			utils.RespondWithError(c, http.StatusInternalServerError, "Failed to send AMC reminders")
			return
		}

		c.JSON(http.StatusOK, gin.H{
			"overdueInvoices":   overdue,
			"expiredQuotations": expired,
			"amcReminders":      sent,
		})
	}
}
