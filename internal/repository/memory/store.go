package memory

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/javajoker/mvshop-backend/internal/models"
	"github.com/javajoker/mvshop-backend/internal/repository"
)

// OrderStore holds orders recorded through Add. Orders are written by the
// checkout service in production.
type OrderStore struct {
	mu     sync.RWMutex
	orders []models.Order
}

var _ repository.OrderStore = (*OrderStore)(nil)

func (r *OrderStore) Add(order models.Order) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if order.ID == uuid.Nil {
		order.ID = uuid.New()
	}
	if order.CreatedAt.IsZero() {
		order.CreatedAt = time.Now()
	}
	r.orders = append(r.orders, order)
}

func (r *OrderStore) ListBySeller(ctx context.Context, sellerID uuid.UUID) ([]models.Order, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var result []models.Order
	for _, order := range r.orders {
		if order.SellerID == sellerID {
			result = append(result, order)
		}
	}
	return result, nil
}

type AuditStore struct {
	mu      sync.Mutex
	entries []models.AuditLog
}

var _ repository.AuditStore = (*AuditStore)(nil)

func (r *AuditStore) Create(ctx context.Context, entry *models.AuditLog) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if entry.ID == uuid.Nil {
		entry.ID = uuid.New()
	}
	entry.CreatedAt = time.Now()
	r.entries = append(r.entries, *entry)
	return nil
}

func (r *AuditStore) Entries() []models.AuditLog {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]models.AuditLog(nil), r.entries...)
}

// NewStore returns an empty in-memory backend.
func NewStore() *repository.Store {
	return &repository.Store{
		Products:   NewProductStore(),
		Categories: NewCategoryStore(),
		Accounts:   NewAccountStore(),
		Orders:     &OrderStore{},
		Audit:      &AuditStore{},
	}
}
