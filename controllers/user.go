package controllers

import (
	"errors"
	"net/http"
	"strings"

	"accel-erp-backend/config"
	"accel-erp-backend/models"
	"accel-erp-backend/utils"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

type CreateUserInput struct {
	Name        string `json:"name" binding:"required,max=100"`
	Email       string `json:"email" binding:"required,email"`
	Phone       string `json:"phone" binding:"omitempty,phone"`
	Role        string `json:"role" binding:"required,oneof=admin manager field_engineer viewer"`
	Designation string `json:"designation" binding:"max=100"`
}

type UpdateUserInput struct {
	Name        *string `json:"name" binding:"omitempty,min=1,max=100"`
	Email       *string `json:"email" binding:"omitempty,email"`
	Phone       *string `json:"phone" binding:"omitempty,phone"`
	Role        *string `json:"role" binding:"omitempty,oneof=admin manager field_engineer viewer"`
	Designation *string `json:"designation" binding:"omitempty,max=100"`
	IsActive    *bool   `json:"isActive"`
}

type UserListQuery struct {
	Role   string `form:"role" binding:"omitempty,oneof=admin manager field_engineer viewer"`
	Search string `form:"search" binding:"max=100"`
	Active *bool  `form:"active"`
}

func (UserListQuery) ValidationMessages() map[string]string {
	return map[string]string{"role.oneof": "Role must be one of: admin, manager, field_engineer, viewer"}
}

func emailTaken(db *gorm.DB, email, exceptID string) (bool, error) {
	var existing models.User
	query := db.Where("LOWER(email) = ?", strings.ToLower(email))
	if exceptID != "" {
		query = query.Where("id <> ?", exceptID)
	}
	err := query.First(&existing).Error
	if err == nil {
		return true, nil
	}
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return false, nil
	}
	return false, err
}

// GetUsers lists staff; ?role=field_engineer lists the engineers
func GetUsers(c *gin.Context) {
	var q UserListQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		utils.RespondWithBindError(c, err, &q)
		return
	}

	query := config.DB.Model(&models.User{})
	if q.Role != "" {
		query = query.Where("role = ?", q.Role)
	}
	if q.Active != nil {
		query = query.Where("is_active = ?", *q.Active)
	}
	if strings.TrimSpace(q.Search) != "" {
		pattern := likePattern(q.Search)
		query = query.Where("LOWER(name) LIKE ? OR LOWER(email) LIKE ?", pattern, pattern)
	}

	var users []models.User
	if err := query.Order("name").Find(&users).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to retrieve users")
		return
	}

	c.JSON(http.StatusOK, users)
}

func GetUser(c *gin.Context) {
	userID, ok := parseID(c, "user")
	if !ok {
		return
	}

	var user models.User
	if err := config.DB.Where("id = ?", userID).First(&user).Error; err != nil {
		respondLoadError(c, err, "User")
		return
	}

	c.JSON(http.StatusOK, user)
}

func CreateUser(c *gin.Context) {
	var input CreateUserInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithBindError(c, err, &input)
		return
	}

	taken, err := emailTaken(config.DB, input.Email, "")
	if err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Database error")
		return
	}
	if taken {
		utils.RespondWithError(c, http.StatusConflict, "User with this email already exists")
		return
	}

	user := models.User{
		Name:        strings.TrimSpace(input.Name),
		Email:       strings.ToLower(input.Email),
		Phone:       input.Phone,
		Role:        input.Role,
		Designation: input.Designation,
		IsActive:    true,
	}
	if err := config.DB.Create(&user).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to create user")
		return
	}

	c.JSON(http.StatusCreated, user)
}

func UpdateUser(c *gin.Context) {
	userID, ok := parseID(c, "user")
	if !ok {
		return
	}

	var input UpdateUserInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithBindError(c, err, &input)
		return
	}

	var user models.User
	if err := config.DB.Where("id = ?", userID).First(&user).Error; err != nil {
		respondLoadError(c, err, "User")
		return
	}

	if input.Email != nil && !strings.EqualFold(*input.Email, user.Email) {
		taken, err := emailTaken(config.DB, *input.Email, user.ID.String())
		if err != nil {
			utils.RespondWithError(c, http.StatusInternalServerError, "Database error")
			return
		}
		if taken {
			utils.RespondWithError(c, http.StatusConflict, "Another user with this email already exists")
			return
		}
		user.Email = strings.ToLower(*input.Email)
	}
	if input.Name != nil {
		user.Name = strings.TrimSpace(*input.Name)
	}
	if input.Phone != nil {
		user.Phone = *input.Phone
	}
	if input.Role != nil {
		user.Role = *input.Role
	}
	if input.Designation != nil {
		user.Designation = *input.Designation
	}
	if input.IsActive != nil {
		user.IsActive = *input.IsActive
	}

	if err := config.DB.Save(&user).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to update user")
		return
	}

	c.JSON(http.StatusOK, user)
}

// DeleteUser soft deletes a user and unassigns their open quotations
func DeleteUser(c *gin.Context) {
	userID, ok := parseID(c, "user")
	if !ok {
		return
	}

	tx := config.DB.Begin()
	defer func() {
		if r := recover(); r != nil {
			tx.Rollback()
		}
	}()

	var user models.User
	if err := tx.Where("id = ?", userID).First(&user).Error; err != nil {
		tx.Rollback()
		respondLoadError(c, err, "User")
		return
	}

	if err := tx.Model(&models.Quotation{}).
		Where("engineer_id = ? AND status IN ?", user.ID,
			[]string{models.QuotationStatusDraft, models.QuotationStatusSent}).
		Update("engineer_id", nil).Error; err != nil {
		tx.Rollback()
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to unassign quotations")
		return
	}
	if err := tx.Delete(&user).Error; err != nil {
		tx.Rollback()
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to delete user")
		return
	}

	if err := tx.Commit().Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to delete user")
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "User deleted successfully"})
}
