package service

import (
	"context"
	"errors"
	"sync"

	"medicamp_api/internal/common"
	"medicamp_api/internal/domain/model"
	"medicamp_api/internal/platform/payment"

	"go.mongodb.org/mongo-driver/v2/bson"
)

// --- in-memory camps ---

type fakeCampRepo struct {
	mu      sync.Mutex
	camps   map[bson.ObjectID]*model.Camp
	incErr  error
	listFn  func(ctx context.Context, q model.CampListQuery) ([]model.Camp, int64, error)
	beforeQ string
}

func newFakeCampRepo(camps ...*model.Camp) *fakeCampRepo {
	r := &fakeCampRepo{camps: map[bson.ObjectID]*model.Camp{}}
	for _, c := range camps {
		if c.ID.IsZero() {
			c.ID = bson.NewObjectID()
		}
		r.camps[c.ID] = c
	}
	return r
}

func (r *fakeCampRepo) count(id bson.ObjectID) int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.camps[id].ParticipantCount
}

func (r *fakeCampRepo) Create(_ context.Context, camp *model.Camp) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	camp.ID = bson.NewObjectID()
	r.camps[camp.ID] = camp
	return nil
}

func (r *fakeCampRepo) FindByID(_ context.Context, id bson.ObjectID) (*model.Camp, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	c, ok := r.camps[id]
	if !ok {
		return nil, common.ErrNotFound
	}
	return c, nil
}

func (r *fakeCampRepo) FindBySlug(_ context.Context, slug string) (*model.Camp, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, c := range r.camps {
		if c.Slug == slug {
			return c, nil
		}
	}
	return nil, common.ErrNotFound
}

func (r *fakeCampRepo) List(ctx context.Context, q model.CampListQuery) ([]model.Camp, int64, error) {
	if r.listFn != nil {
		return r.listFn(ctx, q)
	}
	return nil, 0, nil
}

func (r *fakeCampRepo) ListBefore(_ context.Context, day string, limit int) ([]model.Camp, error) {
	r.beforeQ = day
	return []model.Camp{}, nil
}

func (r *fakeCampRepo) Update(_ context.Context, id bson.ObjectID, update model.CampUpdate) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	c, ok := r.camps[id]
	if !ok {
		return common.ErrNotFound
	}
	if update.CampName != nil {
		c.CampName = *update.CampName
	}
	if update.Slug != nil {
		c.Slug = *update.Slug
	}
	if update.CampFees != nil {
		c.CampFees = *update.CampFees
	}
	return nil
}

func (r *fakeCampRepo) Delete(_ context.Context, id bson.ObjectID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.camps[id]; !ok {
		return common.ErrNotFound
	}
	delete(r.camps, id)
	return nil
}

func (r *fakeCampRepo) AddParticipants(_ context.Context, id bson.ObjectID, delta int) (bool, error) {
	if r.incErr != nil {
		return false, r.incErr
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	c, ok := r.camps[id]
	if !ok {
		return false, nil
	}
	c.ParticipantCount += delta
	return true, nil
}

// --- in-memory participants ---

type fakeParticipantRepo struct {
	mu           sync.Mutex
	participants map[bson.ObjectID]*model.Participant
	createErr    error
	listFn       func(ctx context.Context, q model.PageQuery) (*model.Page[model.ParticipantView], error)
}

func newFakeParticipantRepo() *fakeParticipantRepo {
	return &fakeParticipantRepo{participants: map[bson.ObjectID]*model.Participant{}}
}

func (r *fakeParticipantRepo) get(id bson.ObjectID) *model.Participant {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.participants[id]
}

func (r *fakeParticipantRepo) Create(_ context.Context, p *model.Participant) error {
	if r.createErr != nil {
		return r.createErr
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	p.ID = bson.NewObjectID()
	r.participants[p.ID] = p
	return nil
}

func (r *fakeParticipantRepo) Delete(_ context.Context, id bson.ObjectID) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.participants[id]; !ok {
		return false, nil
	}
	delete(r.participants, id)
	return true, nil
}

func (r *fakeParticipantRepo) SetPaymentStatus(_ context.Context, id bson.ObjectID, paid bool) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	p, ok := r.participants[id]
	if !ok {
		return false, nil
	}
	p.PaymentStatus = paid
	return true, nil
}

func (r *fakeParticipantRepo) SetConfirmationStatus(_ context.Context, id bson.ObjectID, confirmed bool) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	p, ok := r.participants[id]
	if !ok {
		return false, nil
	}
	p.ConfirmationStatus = confirmed
	return true, nil
}

func (r *fakeParticipantRepo) ListView(ctx context.Context, q model.PageQuery) (*model.Page[model.ParticipantView], error) {
	if r.listFn != nil {
		return r.listFn(ctx, q)
	}
	return &model.Page[model.ParticipantView]{Items: []model.ParticipantView{}}, nil
}

// --- payments ---

type fakePaymentRepo struct {
	mu       sync.Mutex
	payments []*model.Payment
	seenTx   map[string]bool
}

func newFakePaymentRepo() *fakePaymentRepo {
	return &fakePaymentRepo{seenTx: map[string]bool{}}
}

func (r *fakePaymentRepo) Create(_ context.Context, p *model.Payment) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.seenTx[p.TransactionID] {
		return common.ErrConflict
	}
	r.seenTx[p.TransactionID] = true
	p.ID = bson.NewObjectID()
	r.payments = append(r.payments, p)
	return nil
}

func (r *fakePaymentRepo) History(_ context.Context, q model.PageQuery) (*model.Page[model.PaymentView], error) {
	return &model.Page[model.PaymentView]{Items: []model.PaymentView{}}, nil
}

// --- users ---

type fakeUserRepo struct {
	mu        sync.Mutex
	users     map[string]*model.User
	createErr error
	// beforeCreate runs ahead of every insert, e.g. to land a competing signup.
	beforeCreate func(r *fakeUserRepo)
}

func newFakeUserRepo(users ...*model.User) *fakeUserRepo {
	r := &fakeUserRepo{users: map[string]*model.User{}}
	for _, u := range users {
		r.users[u.Email] = u
	}
	return r
}

func (r *fakeUserRepo) Create(_ context.Context, user *model.User) error {
	if r.beforeCreate != nil {
		r.beforeCreate(r)
	}
	if r.createErr != nil {
		return r.createErr
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.users[user.Email]; ok {
		return common.ErrConflict
	}
	user.ID = bson.NewObjectID()
	r.users[user.Email] = user
	return nil
}

func (r *fakeUserRepo) FindByEmail(_ context.Context, email string) (*model.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	u, ok := r.users[email]
	if !ok {
		return nil, common.ErrNotFound
	}
	return u, nil
}

func (r *fakeUserRepo) List(_ context.Context) ([]model.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]model.User, 0, len(r.users))
	for _, u := range r.users {
		out = append(out, *u)
	}
	return out, nil
}

func (r *fakeUserRepo) Update(_ context.Context, email string, update model.UserUpdate) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	u, ok := r.users[email]
	if !ok {
		return common.ErrNotFound
	}
	if update.Name != nil {
		u.Name = *update.Name
	}
	if update.Photo != nil {
		u.Photo = *update.Photo
	}
	return nil
}

// --- gateway ---

type fakeGateway struct {
	amount int64
	err    error
}

func (g *fakeGateway) CreateIntent(_ context.Context, amount int64) (*payment.Intent, error) {
	if g.err != nil {
		return nil, g.err
	}
	g.amount = amount
	return &payment.Intent{ID: "pi_1", ClientSecret: "pi_1_secret", Amount: amount, Currency: "usd"}, nil
}

// --- locker ---

type denyLocker struct{ err error }

func (l denyLocker) Acquire(context.Context, string) (func(), error) {
	return nil, l.err
}

var errStore = errors.New("store unavailable")

// keyedMutexLocker blocks until the key is free, like a lock that waits.
type keyedMutexLocker struct {
	mu   sync.Mutex
	keys map[string]*sync.Mutex
}

func (l *keyedMutexLocker) Acquire(_ context.Context, key string) (func(), error) {
	l.mu.Lock()
	if l.keys == nil {
		l.keys = map[string]*sync.Mutex{}
	}
	m, ok := l.keys[key]
	if !ok {
		m = &sync.Mutex{}
		l.keys[key] = m
	}
	l.mu.Unlock()

	m.Lock()
	return m.Unlock, nil
}
