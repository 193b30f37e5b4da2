package sqlstore

import (
	"context"
	"errors"
	"fmt"
	"math"
	"strings"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/99minutos/account-service/internal/core/domain"
	"github.com/99minutos/account-service/internal/core/ports"
)

// AccountRepository implements ports.AccountRepository.
type AccountRepository struct {
	db *gorm.DB
}

func NewAccountRepository(db *gorm.DB) *AccountRepository {
	return &AccountRepository{db: db}
}

// Create checks for an (email, added_by) duplicate and inserts in one
// transaction. The unique index covers the window between the two.
func (r *AccountRepository) Create(ctx context.Context, a *domain.Account) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var n int64
		if err := tx.Model(&accountRecord{}).
			Where("email = ? AND added_by = ?", a.Email, a.AddedBy).
			Count(&n).Error; err != nil {
			return fmt.Errorf("check account email: %w", err)
		}
		if n > 0 {
			return domain.ErrAccountConflict
		}

		rec := accountRecord{
			Name:          a.Name,
			Email:         a.Email,
			ContactNumber: a.ContactNumber,
			AddedBy:       a.AddedBy,
			CreatedAt:     a.CreatedAt,
		}
		if err := tx.Create(&rec).Error; err != nil {
			if isUniqueViolation(err) {
				return domain.ErrAccountConflict
			}
			return fmt.Errorf("insert account: %w", err)
		}

		a.ID = rec.ID
		a.CreatedAt = rec.CreatedAt.UTC()
		return nil
	})
}

func (r *AccountRepository) FindByID(ctx context.Context, id uint) (*domain.Account, error) {
	var rec accountRecord
	if err := r.db.WithContext(ctx).First(&rec, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrAccountNotFound
		}
		return nil, fmt.Errorf("find account: %w", err)
	}
	return rec.toDomain(), nil
}

// Update applies patch inside a transaction. A changed email is checked
// against every other account, not only those of the same owner.
func (r *AccountRepository) Update(ctx context.Context, id uint, patch domain.AccountPatch) (*domain.Account, error) {
	var updated *domain.Account

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var rec accountRecord
		if err := tx.First(&rec, id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return domain.ErrAccountNotFound
			}
			return fmt.Errorf("find account: %w", err)
		}

		if patch.Email != nil && *patch.Email != rec.Email {
			var n int64
			if err := tx.Model(&accountRecord{}).
				Where("email = ? AND id <> ?", *patch.Email, id).
				Count(&n).Error; err != nil {
				return fmt.Errorf("check account email: %w", err)
			}
			if n > 0 {
				return domain.ErrEmailTaken
			}
		}

		changes := map[string]interface{}{}
		if patch.Name != nil {
			changes["name"] = *patch.Name
		}
		if patch.Email != nil {
			changes["email"] = *patch.Email
		}
		if patch.ContactNumber != nil {
			changes["contact_number"] = *patch.ContactNumber
		}
		if len(changes) > 0 {
			if err := tx.Model(&accountRecord{}).Where("id = ?", id).Updates(changes).Error; err != nil {
				if isUniqueViolation(err) {
					return domain.ErrEmailTaken
				}
				return fmt.Errorf("update account: %w", err)
			}
		}

		updated = rec.toDomain()
		patch.Apply(updated)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return updated, nil
}

func (r *AccountRepository) Delete(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		res := tx.Delete(&accountRecord{}, id)
		if res.Error != nil {
			return fmt.Errorf("delete account: %w", res.Error)
		}
		if res.RowsAffected == 0 {
			return domain.ErrAccountNotFound
		}
		return nil
	})
}

// List filters with case-insensitive substring matches, orders by the
// requested column with id as tie-breaker, and paginates with offset/limit.
// A page past the last row, however large, yields no items.
func (r *AccountRepository) List(ctx context.Context, f ports.ListAccountsFilter) ([]*domain.Account, int64, error) {
	// SQLite's LOWER folds ASCII only; folding more on our side would stop
	// a term from matching the exact stored text.
	asciiFold := r.db.Dialector.Name() == "sqlite"
	scoped := func() *gorm.DB {
		q := r.db.WithContext(ctx).Model(&accountRecord{})
		if f.Email != "" {
			q = q.Where(`LOWER(email) LIKE ? ESCAPE '\'`, containsPattern(f.Email, asciiFold))
		}
		if f.Search != "" {
			q = q.Where(`LOWER(name) LIKE ? ESCAPE '\'`, containsPattern(f.Search, asciiFold))
		}
		return q
	}

	var total int64
	if err := scoped().Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("count accounts: %w", err)
	}

	offset, ok := pageOffset(f.Page, f.Limit)
	if !ok {
		return []*domain.Account{}, total, nil
	}

	column := "name"
	if f.SortBy == ports.SortByEmail {
		column = "email"
	}

	var recs []accountRecord
	err := scoped().
		Order(clause.OrderByColumn{Column: clause.Column{Name: column}, Desc: f.Desc}).
		Order(clause.OrderByColumn{Column: clause.Column{Name: "id"}}).
		Offset(offset).
		Limit(f.Limit).
		Find(&recs).Error
	if err != nil {
		return nil, 0, fmt.Errorf("list accounts: %w", err)
	}

	items := make([]*domain.Account, len(recs))
	for i, rec := range recs {
		items[i] = rec.toDomain()
	}
	return items, total, nil
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

// pageOffset returns the number of rows before page. It reports false when
// that number does not fit in an int, which puts the page past any table.
func pageOffset(page, limit int) (int, bool) {
	if page <= 1 || limit <= 0 {
		return 0, true
	}
	if page-1 > math.MaxInt/limit {
		return 0, false
	}
	return (page - 1) * limit, true
}

// containsPattern builds a lower-cased LIKE pattern matching s anywhere,
// with LIKE wildcards in s taken literally.
func containsPattern(s string, asciiOnly bool) string {
	if asciiOnly {
		s = asciiLower(s)
	} else {
		s = strings.ToLower(s)
	}
	return "%" + likeEscaper.Replace(s) + "%"
}

func asciiLower(s string) string {
	return strings.Map(func(r rune) rune {
		if r >= 'A' && r <= 'Z' {
			return r + ('a' - 'A')
		}
		return r
	}, s)
}
