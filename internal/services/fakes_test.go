package services

import (
	"context"
	"sync"

	"imagify-backend/internal/models"
	apperrors "imagify-backend/pkg/errors"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type balanceUpdate struct {
	id      string
	balance int
}

type fakeUserRepo struct {
	mu        sync.Mutex
	users     map[string]*models.User
	findErr   error
	updateErr error
	updates   []balanceUpdate
}

func newFakeUserRepo(users ...*models.User) *fakeUserRepo {
	repo := &fakeUserRepo{users: map[string]*models.User{}}
	for _, u := range users {
		repo.users[u.ID] = u
	}
	return repo
}

func newUser(balance int) *models.User {
	return &models.User{
		ID:            primitive.NewObjectID().Hex(),
		Name:          "Ada",
		Email:         "ada@example.com",
		CreditBalance: balance,
	}
}

func (r *fakeUserRepo) Create(ctx context.Context, user *models.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, existing := range r.users {
		if user.Email != "" && existing.Email == user.Email {
			return apperrors.NewUserAlreadyExistsError()
		}
	}
	if user.ID == "" {
		user.ID = primitive.NewObjectID().Hex()
	}
	copied := *user
	r.users[user.ID] = &copied
	return nil
}

func (r *fakeUserRepo) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.findErr != nil {
		return nil, r.findErr
	}
	for _, user := range r.users {
		if email != "" && user.Email == email {
			copied := *user
			return &copied, nil
		}
	}
	return nil, apperrors.NewUserNotFoundError()
}

func (r *fakeUserRepo) FindByID(ctx context.Context, id string) (*models.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.findErr != nil {
		return nil, r.findErr
	}
	user, ok := r.users[id]
	if !ok {
		return nil, apperrors.NewUserNotFoundError()
	}
	copied := *user
	return &copied, nil
}

func (r *fakeUserRepo) UpdateCreditBalance(ctx context.Context, id string, balance int) (*models.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.updates = append(r.updates, balanceUpdate{id: id, balance: balance})
	if r.updateErr != nil {
		return nil, r.updateErr
	}
	user, ok := r.users[id]
	if !ok {
		return nil, apperrors.NewUserNotFoundError()
	}
	user.CreditBalance = balance
	copied := *user
	return &copied, nil
}

type fakeGenerator struct {
	data    []byte
	err     error
	calls   int
	prompts []string
	ctxErrs []error
}

func (g *fakeGenerator) Generate(ctx context.Context, prompt string) ([]byte, error) {
	g.calls++
	g.prompts = append(g.prompts, prompt)
	g.ctxErrs = append(g.ctxErrs, ctx.Err())
	if g.err != nil {
		return nil, g.err
	}
	return g.data, nil
}

type fakeUsageRepo struct {
	records []models.GenerationRecord
	err     error
	limit   int
}

func (r *fakeUsageRepo) CreateRecord(ctx context.Context, record *models.GenerationRecord) error {
	if r.err != nil {
		return r.err
	}
	r.records = append(r.records, *record)
	return nil
}

func (r *fakeUsageRepo) GetUserHistory(ctx context.Context, userID string, limit int) ([]models.GenerationRecord, error) {
	r.limit = limit
	if r.err != nil {
		return nil, r.err
	}
	var out []models.GenerationRecord
	for _, rec := range r.records {
		if rec.UserID == userID {
			out = append(out, rec)
		}
	}
	return out, nil
}

func firstColor(n int) int { return 0 }
