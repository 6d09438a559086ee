package postgres

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/javajoker/mvshop-backend/internal/apperrors"
	"github.com/javajoker/mvshop-backend/internal/database"
	"github.com/javajoker/mvshop-backend/internal/models"
	"github.com/javajoker/mvshop-backend/internal/repository"
)

type AccountStore struct {
	db *gorm.DB
}

var _ repository.AccountStore = (*AccountStore)(nil)

func NewAccountStore(db *gorm.DB) *AccountStore {
	return &AccountStore{db: db}
}

func (r *AccountStore) CreateUser(ctx context.Context, user *models.User) error {
	return translate(r.db.WithContext(ctx).Create(user).Error, "email")
}

func (r *AccountStore) FindUserByID(ctx context.Context, id uuid.UUID) (*models.User, error) {
	var user models.User
	if err := r.db.WithContext(ctx).First(&user, "id = ?", id).Error; err != nil {
		return nil, translate(err, "user")
	}
	return &user, nil
}

func (r *AccountStore) FindUserByEmail(ctx context.Context, email string) (*models.User, error) {
	var user models.User
	if err := r.db.WithContext(ctx).Where("LOWER(email) = LOWER(?)", email).First(&user).Error; err != nil {
		return nil, translate(err, "user")
	}
	return &user, nil
}

func (r *AccountStore) UpdateUser(ctx context.Context, user *models.User) error {
	result := r.db.WithContext(ctx).Model(user).Select("*").Omit("created_at").Updates(user)
	if result.Error != nil {
		return translate(result.Error, "email")
	}
	if result.RowsAffected == 0 {
		return apperrors.NotFound("user")
	}
	return nil
}

func (r *AccountStore) CreateSellerAccount(ctx context.Context, user *models.User, seller *models.Seller) error {
	return database.WithTransaction(r.db.WithContext(ctx), func(tx *gorm.DB) error {
		if err := tx.Create(user).Error; err != nil {
			return translate(err, "email")
		}
		seller.UserID = user.ID
		if err := tx.Create(seller).Error; err != nil {
			return translate(err, "seller")
		}
		return nil
	})
}

func (r *AccountStore) FindSellerByID(ctx context.Context, id uuid.UUID) (*models.Seller, error) {
	var seller models.Seller
	if err := r.db.WithContext(ctx).First(&seller, "id = ?", id).Error; err != nil {
		return nil, translate(err, "seller")
	}
	return &seller, nil
}

func (r *AccountStore) FindSellerByUserID(ctx context.Context, userID uuid.UUID) (*models.Seller, error) {
	var seller models.Seller
	if err := r.db.WithContext(ctx).Where("user_id = ?", userID).First(&seller).Error; err != nil {
		return nil, translate(err, "seller")
	}
	return &seller, nil
}

func (r *AccountStore) ListSellers(ctx context.Context, approved *bool) ([]models.Seller, error) {
	query := r.db.WithContext(ctx).Model(&models.Seller{})
	if approved != nil {
		query = query.Where("is_approved = ?", *approved)
	}

	var sellers []models.Seller
	if err := query.Order("created_at ASC").Find(&sellers).Error; err != nil {
		return nil, translate(err, "seller")
	}
	return sellers, nil
}

func (r *AccountStore) UpdateSeller(ctx context.Context, seller *models.Seller) error {
	result := r.db.WithContext(ctx).Model(seller).Select("*").Omit("created_at").Updates(seller)
	if result.Error != nil {
		return translate(result.Error, "seller")
	}
	if result.RowsAffected == 0 {
		return apperrors.NotFound("seller")
	}
	return nil
}
