package services

import (
	"errors"
	"fmt"
	"strings"

	"github.com/miniblog-app/miniblog/pkg/internal/database"
	"github.com/miniblog-app/miniblog/pkg/internal/models"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

var (
	ErrDuplicateIdentity  = errors.New("username or email is already registered")
	ErrInvalidCredentials = errors.New("invalid username or password")
)

func GetAccountWithID(id uint) (models.Account, error) {
	var account models.Account
	if err := database.C.Where("id = ?", id).First(&account).Error; err != nil {
		return account, fmt.Errorf("unable to get account by id: %v", err)
	}
	return account, nil
}

func ListAccount() ([]models.Account, error) {
	var accounts []models.Account
	err := database.C.Order("name ASC").Find(&accounts).Error

	return accounts, err
}

// NewAccount registers an account. The password only ever touches the
// database as a bcrypt hash. Both the pre-check and the unique indexes
// guard the identity, so a race between two registrations still ends
// with a single row and a duplicate error for the loser.
func NewAccount(name, email, password string) (models.Account, error) {
	var account models.Account

	var count int64
	if err := database.C.Model(&models.Account{}).
		Where("name = ? OR email = ?", name, email).
		Count(&count).Error; err != nil {
		return account, err
	} else if count > 0 {
		return account, ErrDuplicateIdentity
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return account, err
	}

	account = models.Account{
		Name:     name,
		Email:    email,
		Password: string(hash),
	}

	if err := database.C.Create(&account).Error; err != nil {
		if isUniqueViolation(err) {
			return account, ErrDuplicateIdentity
		}
		return account, err
	}

	return account, nil
}

// AuthAccount never tells the caller which factor failed.
func AuthAccount(name, password string) (models.Account, error) {
	var account models.Account
	if err := database.C.Where("name = ?", name).First(&account).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return account, ErrInvalidCredentials
		}
		return account, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(account.Password), []byte(password)); err != nil {
		return account, ErrInvalidCredentials
	}

	return account, nil
}

func isUniqueViolation(err error) bool {
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	msg := strings.ToLower(err.Error())
	return strings.Contains(msg, "unique") || strings.Contains(msg, "duplicate")
}
