// Package store holds the process-lifetime review and user collections. The
// store is an explicit object handed to the request layer at startup; state
// is wiped on restart by design.
package store

import (
	"strings"
	"sync"
	"time"
)

// User is a stored account record.
type User struct {
	ID       int    `json:"id"`
	Username string `json:"username"`
	Password string `json:"password"`
}

// UserInput carries the fields needed to create a user.
type UserInput struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
}

// Review pairs a product type with the submitted field values. ReviewData is
// opaque to the store: keys correspond to generated field names.
type Review struct {
	ID          int            `json:"id"`
	ProductType string         `json:"productType"`
	ReviewData  map[string]any `json:"reviewData"`
	CreatedAt   string         `json:"createdAt"`
}

// ReviewInput is the insertion payload. CreatedAt is assigned by the store
// when absent. Tags drive request validation at the endpoint layer.
type ReviewInput struct {
	ProductType string         `json:"productType" validate:"required"`
	ReviewData  map[string]any `json:"reviewData" validate:"required"`
	CreatedAt   string         `json:"createdAt,omitempty"`
}

// Store is the narrow persistence interface the request layer depends on.
type Store interface {
	CreateUser(input UserInput) (User, error)
	UserByID(id int) (User, bool)
	UserByUsername(username string) (User, bool)

	CreateReview(input ReviewInput) (Review, error)
	ReviewByID(id int) (Review, bool)
	ReviewsByProductType(productType string) []Review
}

// Memory is the in-memory Store implementation: keyed maps with sequential
// ids and a linear scan for product-type queries. No update or delete
// operations exist.
type Memory struct {
	mu           sync.RWMutex
	users        map[int]User
	reviews      map[int]Review
	nextUserID   int
	nextReviewID int
}

// NewMemory constructs an empty in-memory store.
func NewMemory() *Memory {
	return &Memory{
		users:        make(map[int]User),
		reviews:      make(map[int]Review),
		nextUserID:   1,
		nextReviewID: 1,
	}
}

// CreateUser assigns the next id and stores the user.
func (m *Memory) CreateUser(input UserInput) (User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	user := User{
		ID:       m.nextUserID,
		Username: input.Username,
		Password: input.Password,
	}
	m.nextUserID++
	m.users[user.ID] = user
	return user, nil
}

// UserByID looks up a user by id.
func (m *Memory) UserByID(id int) (User, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	user, ok := m.users[id]
	return user, ok
}

// UserByUsername scans for a user by exact username.
func (m *Memory) UserByUsername(username string) (User, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	for _, user := range m.users {
		if user.Username == username {
			return user, true
		}
	}
	return User{}, false
}

// CreateReview assigns the next sequential id, defaults CreatedAt to the
// current time, stores the review, and returns the stored value.
func (m *Memory) CreateReview(input ReviewInput) (Review, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	createdAt := input.CreatedAt
	if createdAt == "" {
		createdAt = time.Now().UTC().Format(time.RFC3339)
	}

	review := Review{
		ID:          m.nextReviewID,
		ProductType: input.ProductType,
		ReviewData:  input.ReviewData,
		CreatedAt:   createdAt,
	}
	m.nextReviewID++
	m.reviews[review.ID] = review
	return review, nil
}

// ReviewByID looks up a review by id.
func (m *Memory) ReviewByID(id int) (Review, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	review, ok := m.reviews[id]
	return review, ok
}

// ReviewsByProductType returns all reviews whose product type matches
// case-insensitively, ordered by id.
func (m *Memory) ReviewsByProductType(productType string) []Review {
	m.mu.RLock()
	defer m.mu.RUnlock()

	matches := make([]Review, 0)
	for id := 1; id < m.nextReviewID; id++ {
		review, ok := m.reviews[id]
		if !ok {
			continue
		}
		if strings.EqualFold(review.ProductType, productType) {
			matches = append(matches, review)
		}
	}
	return matches
}
