package sqlstore

import (
	"time"

	"github.com/99minutos/account-service/internal/core/domain"
)

type userRecord struct {
	ID           uint      `gorm:"primaryKey"`
	Username     string    `gorm:"size:80;not null;uniqueIndex"`
	PasswordHash string    `gorm:"size:255;not null"`
	Role         string    `gorm:"size:20;not null;default:client"`
	CreatedAt    time.Time `gorm:"not null"`
}

func (userRecord) TableName() string { return "users" }

func (r userRecord) toDomain() *domain.User {
	return &domain.User{
		ID:           r.ID,
		Username:     r.Username,
		PasswordHash: r.PasswordHash,
		Role:         r.Role,
		CreatedAt:    r.CreatedAt.UTC(),
	}
}

// accountRecord enforces (email, added_by) uniqueness with a composite index.
type accountRecord struct {
	ID            uint      `gorm:"primaryKey"`
	Name          string    `gorm:"size:100;not null;index"`
	Email         string    `gorm:"size:120;not null;uniqueIndex:idx_accounts_email_added_by,priority:1"`
	ContactNumber string    `gorm:"size:50;not null"`
	AddedBy       uint      `gorm:"not null;uniqueIndex:idx_accounts_email_added_by,priority:2"`
	CreatedAt     time.Time `gorm:"not null"`
}

func (accountRecord) TableName() string { return "accounts" }

func (r accountRecord) toDomain() *domain.Account {
	return &domain.Account{
		ID:            r.ID,
		Name:          r.Name,
		Email:         r.Email,
		ContactNumber: r.ContactNumber,
		AddedBy:       r.AddedBy,
		CreatedAt:     r.CreatedAt.UTC(),
	}
}
