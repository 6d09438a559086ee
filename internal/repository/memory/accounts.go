package memory

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/javajoker/mvshop-backend/internal/apperrors"
	"github.com/javajoker/mvshop-backend/internal/models"
	"github.com/javajoker/mvshop-backend/internal/repository"
)

type AccountStore struct {
	mu      sync.RWMutex
	users   map[uuid.UUID]*models.User
	sellers map[uuid.UUID]*models.Seller
}

var _ repository.AccountStore = (*AccountStore)(nil)

func NewAccountStore() *AccountStore {
	return &AccountStore{
		users:   make(map[uuid.UUID]*models.User),
		sellers: make(map[uuid.UUID]*models.Seller),
	}
}

func (r *AccountStore) CreateUser(ctx context.Context, user *models.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.insertUser(user)
}

func (r *AccountStore) insertUser(user *models.User) error {
	for _, existing := range r.users {
		if strings.EqualFold(existing.Email, user.Email) {
			return apperrors.Conflict("email already registered")
		}
	}
	if user.ID == uuid.Nil {
		user.ID = uuid.New()
	}
	now := time.Now()
	user.CreatedAt, user.UpdatedAt = now, now

	copy := *user
	r.users[copy.ID] = &copy
	return nil
}

func (r *AccountStore) FindUserByID(ctx context.Context, id uuid.UUID) (*models.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	user, ok := r.users[id]
	if !ok {
		return nil, apperrors.NotFound("user")
	}
	copy := *user
	return &copy, nil
}

func (r *AccountStore) FindUserByEmail(ctx context.Context, email string) (*models.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, user := range r.users {
		if strings.EqualFold(user.Email, email) {
			copy := *user
			return &copy, nil
		}
	}
	return nil, apperrors.NotFound("user")
}

func (r *AccountStore) UpdateUser(ctx context.Context, user *models.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	stored, ok := r.users[user.ID]
	if !ok {
		return apperrors.NotFound("user")
	}
	user.CreatedAt = stored.CreatedAt
	user.UpdatedAt = time.Now()
	copy := *user
	r.users[user.ID] = &copy
	return nil
}

func (r *AccountStore) CreateSellerAccount(ctx context.Context, user *models.User, seller *models.Seller) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if err := r.insertUser(user); err != nil {
		return err
	}

	seller.UserID = user.ID
	if seller.ID == uuid.Nil {
		seller.ID = uuid.New()
	}
	seller.CreatedAt, seller.UpdatedAt = user.CreatedAt, user.UpdatedAt
	copy := *seller
	r.sellers[copy.ID] = &copy
	return nil
}

func (r *AccountStore) FindSellerByID(ctx context.Context, id uuid.UUID) (*models.Seller, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	seller, ok := r.sellers[id]
	if !ok {
		return nil, apperrors.NotFound("seller")
	}
	copy := *seller
	return &copy, nil
}

func (r *AccountStore) FindSellerByUserID(ctx context.Context, userID uuid.UUID) (*models.Seller, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, seller := range r.sellers {
		if seller.UserID == userID {
			copy := *seller
			return &copy, nil
		}
	}
	return nil, apperrors.NotFound("seller")
}

func (r *AccountStore) ListSellers(ctx context.Context, approved *bool) ([]models.Seller, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	result := make([]models.Seller, 0, len(r.sellers))
	for _, seller := range r.sellers {
		if approved == nil || seller.IsApproved == *approved {
			result = append(result, *seller)
		}
	}
	sort.Slice(result, func(i, j int) bool { return result[i].CreatedAt.Before(result[j].CreatedAt) })
	return result, nil
}

func (r *AccountStore) UpdateSeller(ctx context.Context, seller *models.Seller) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	stored, ok := r.sellers[seller.ID]
	if !ok {
		return apperrors.NotFound("seller")
	}
	seller.CreatedAt = stored.CreatedAt
	seller.UpdatedAt = time.Now()
	copy := *seller
	r.sellers[seller.ID] = &copy
	return nil
}
