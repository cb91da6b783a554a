package service

import (
	"context"
	"errors"
	"strings"
	"sync"
	"time"

	"dealerdesk/internal/entity"
	"dealerdesk/internal/guard"
	"dealerdesk/internal/queue"
	"dealerdesk/internal/repository"

	"github.com/google/uuid"
)

type fakeUserRepo struct {
	mutex   sync.Mutex
	byEmail map[string]*entity.User
	byID    map[uuid.UUID]*entity.User
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{
		byEmail: make(map[string]*entity.User),
		byID:    make(map[uuid.UUID]*entity.User),
	}
}

func (r *fakeUserRepo) Create(_ context.Context, user *entity.User) error {
	r.mutex.Lock()
	defer r.mutex.Unlock()
	if _, exists := r.byEmail[user.Email]; exists {
		return errors.New("duplicate key value violates unique constraint")
	}
	user.ID = uuid.New()
	user.CreatedAt = time.Now()
	r.byEmail[user.Email] = user
	r.byID[user.ID] = user
	return nil
}

func (r *fakeUserRepo) FindByID(_ context.Context, id uuid.UUID) (*entity.User, error) {
	r.mutex.Lock()
	defer r.mutex.Unlock()
	return r.byID[id], nil
}

func (r *fakeUserRepo) FindByEmail(_ context.Context, email string) (*entity.User, error) {
	r.mutex.Lock()
	defer r.mutex.Unlock()
	return r.byEmail[email], nil
}

func (r *fakeUserRepo) Update(_ context.Context, user *entity.User) error {
	r.mutex.Lock()
	defer r.mutex.Unlock()
	r.byEmail[user.Email] = user
	r.byID[user.ID] = user
	return nil
}

func (r *fakeUserRepo) MarkVerified(_ context.Context, userID uuid.UUID) error {
	r.mutex.Lock()
	defer r.mutex.Unlock()
	user, ok := r.byID[userID]
	if !ok {
		return errors.New("user not found")
	}
	user.EmailVerified = true
	user.Status = entity.UserStatusActive
	return nil
}

func (r *fakeUserRepo) UpdateRole(_ context.Context, userID uuid.UUID, role entity.UserRole) error {
	r.mutex.Lock()
	defer r.mutex.Unlock()
	user, ok := r.byID[userID]
	if !ok {
		return errors.New("user not found")
	}
	user.Role = role
	return nil
}

func (r *fakeUserRepo) List(_ context.Context, _, _ int) ([]entity.User, error) {
	r.mutex.Lock()
	defer r.mutex.Unlock()
	users := make([]entity.User, 0, len(r.byID))
	for _, user := range r.byID {
		users = append(users, *user)
	}
	return users, nil
}

type fakeVerificationRepo struct {
	mutex  sync.Mutex
	byHash map[string]*entity.EmailVerification
	byID   map[uuid.UUID]*entity.EmailVerification
}

func newFakeVerificationRepo() *fakeVerificationRepo {
	return &fakeVerificationRepo{
		byHash: make(map[string]*entity.EmailVerification),
		byID:   make(map[uuid.UUID]*entity.EmailVerification),
	}
}

func (r *fakeVerificationRepo) Create(_ context.Context, verification *entity.EmailVerification) error {
	r.mutex.Lock()
	defer r.mutex.Unlock()
	verification.ID = uuid.New()
	verification.CreatedAt = time.Now()
	r.byHash[verification.TokenHash] = verification
	r.byID[verification.ID] = verification
	return nil
}

func (r *fakeVerificationRepo) FindValid(_ context.Context, tokenHash string) (*entity.EmailVerification, error) {
	r.mutex.Lock()
	defer r.mutex.Unlock()
	verification, ok := r.byHash[tokenHash]
	if !ok || verification.ConsumedAt != nil {
		return nil, nil
	}
	return verification, nil
}

func (r *fakeVerificationRepo) Consume(_ context.Context, id uuid.UUID) (bool, error) {
	r.mutex.Lock()
	defer r.mutex.Unlock()
	verification, ok := r.byID[id]
	if !ok || verification.ConsumedAt != nil {
		return false, nil
	}
	now := time.Now()
	verification.ConsumedAt = &now
	return true, nil
}

type fakeAuditRepo struct {
	mutex   sync.Mutex
	entries []entity.AuditLog
}

func (r *fakeAuditRepo) Log(_ context.Context, log *entity.AuditLog) error {
	r.mutex.Lock()
	defer r.mutex.Unlock()
	r.entries = append(r.entries, *log)
	return nil
}

func (r *fakeAuditRepo) actions() []entity.AuditAction {
	r.mutex.Lock()
	defer r.mutex.Unlock()
	actions := make([]entity.AuditAction, 0, len(r.entries))
	for _, entry := range r.entries {
		actions = append(actions, entry.Action)
	}
	return actions
}

type fakeEmailSender struct {
	fail  bool
	sent  []string
	token string
}

func (s *fakeEmailSender) SendVerificationEmail(_ context.Context, email string, _ string, token string) error {
	if s.fail {
		return errors.New("smtp unreachable")
	}
	s.sent = append(s.sent, email)
	s.token = token
	return nil
}

// fakeHasher keeps register tests fast; the real bcrypt hasher has its own
// coverage via the login test.
type fakeHasher struct{}

func (fakeHasher) Hash(password string) (string, error) {
	return "hashed:" + password, nil
}

func (fakeHasher) Verify(hash string, password string) bool {
	return strings.TrimPrefix(hash, "hashed:") == password
}

type fakeTokenIssuer struct{}

func (fakeTokenIssuer) IssueAccessToken(_ string, _ string) (string, time.Duration, error) {
	return "access-token", 15 * time.Minute, nil
}

type fixedClock struct {
	at time.Time
}

func (c fixedClock) Now() time.Time {
	return c.at
}

type countingLimiter struct {
	calls   int
	allowed bool
	resetAt time.Time
}

func (l *countingLimiter) Allow(_ context.Context, _ string) (guard.Result, error) {
	l.calls++
	return guard.Result{Allowed: l.allowed, ResetAt: l.resetAt}, nil
}

type fakeVehicleRepo struct {
	mutex sync.Mutex
	byID  map[uuid.UUID]*entity.Vehicle
	byVIN map[string]*entity.Vehicle
}

func newFakeVehicleRepo() *fakeVehicleRepo {
	return &fakeVehicleRepo{
		byID:  make(map[uuid.UUID]*entity.Vehicle),
		byVIN: make(map[string]*entity.Vehicle),
	}
}

func (r *fakeVehicleRepo) Create(_ context.Context, vehicle *entity.Vehicle) error {
	r.mutex.Lock()
	defer r.mutex.Unlock()
	vehicle.ID = uuid.New()
	r.byID[vehicle.ID] = vehicle
	r.byVIN[vehicle.VIN] = vehicle
	return nil
}

func (r *fakeVehicleRepo) FindByID(_ context.Context, id uuid.UUID) (*entity.Vehicle, error) {
	r.mutex.Lock()
	defer r.mutex.Unlock()
	return r.byID[id], nil
}

func (r *fakeVehicleRepo) FindByVIN(_ context.Context, vin string) (*entity.Vehicle, error) {
	r.mutex.Lock()
	defer r.mutex.Unlock()
	return r.byVIN[vin], nil
}

func (r *fakeVehicleRepo) Update(_ context.Context, vehicle *entity.Vehicle) error {
	r.mutex.Lock()
	defer r.mutex.Unlock()
	r.byID[vehicle.ID] = vehicle
	r.byVIN[vehicle.VIN] = vehicle
	return nil
}

func (r *fakeVehicleRepo) Delete(_ context.Context, id uuid.UUID) error {
	r.mutex.Lock()
	defer r.mutex.Unlock()
	if vehicle, ok := r.byID[id]; ok {
		delete(r.byVIN, vehicle.VIN)
		delete(r.byID, id)
	}
	return nil
}

func (r *fakeVehicleRepo) List(_ context.Context, status *entity.VehicleStatus) ([]entity.Vehicle, error) {
	r.mutex.Lock()
	defer r.mutex.Unlock()
	vehicles := make([]entity.Vehicle, 0, len(r.byID))
	for _, vehicle := range r.byID {
		if status != nil && vehicle.Status != *status {
			continue
		}
		vehicles = append(vehicles, *vehicle)
	}
	return vehicles, nil
}

func (r *fakeVehicleRepo) CountByStatus(_ context.Context) (map[entity.VehicleStatus]int64, error) {
	r.mutex.Lock()
	defer r.mutex.Unlock()
	counts := make(map[entity.VehicleStatus]int64)
	for _, vehicle := range r.byID {
		counts[vehicle.Status]++
	}
	return counts, nil
}

func (r *fakeVehicleRepo) CountByBrand(_ context.Context, _ int) ([]repository.BrandCount, error) {
	return nil, nil
}

func (r *fakeVehicleRepo) CountByFuelType(_ context.Context) ([]repository.FuelTypeCount, error) {
	return nil, nil
}

// fakeSaleRepo mirrors the transactional contract of the real repository:
// the status check and flip happen atomically under one lock.
type fakeSaleRepo struct {
	mutex    sync.Mutex
	vehicles *fakeVehicleRepo
	sales    []entity.Sale
}

func (r *fakeSaleRepo) Create(_ context.Context, sale *entity.Sale) error {
	r.mutex.Lock()
	defer r.mutex.Unlock()
	r.vehicles.mutex.Lock()
	defer r.vehicles.mutex.Unlock()

	vehicle, ok := r.vehicles.byID[sale.VehicleID]
	if !ok {
		return repository.ErrVehicleNotFound
	}
	if vehicle.Status != entity.VehicleStatusAvailable {
		return repository.ErrVehicleNotAvailable
	}
	sale.ID = uuid.New()
	vehicle.Status = entity.VehicleStatusSold
	r.sales = append(r.sales, *sale)
	return nil
}

func (r *fakeSaleRepo) List(_ context.Context) ([]entity.Sale, error) {
	r.mutex.Lock()
	defer r.mutex.Unlock()
	return append([]entity.Sale(nil), r.sales...), nil
}

func (r *fakeSaleRepo) Count(_ context.Context) (int64, error) {
	r.mutex.Lock()
	defer r.mutex.Unlock()
	return int64(len(r.sales)), nil
}

func (r *fakeSaleRepo) TotalRevenue(_ context.Context) (float64, error) {
	r.mutex.Lock()
	defer r.mutex.Unlock()
	var revenue float64
	for _, sale := range r.sales {
		revenue += sale.SalePrice
	}
	return revenue, nil
}

func (r *fakeSaleRepo) MonthlyStats(_ context.Context) ([]repository.MonthlySales, error) {
	return nil, nil
}

func (r *fakeSaleRepo) CountByPaymentMethod(_ context.Context) ([]repository.PaymentMethodCount, error) {
	return nil, nil
}

type fakePublisher struct {
	events []queue.SaleRecordedEvent
	fail   bool
}

func (p *fakePublisher) PublishSaleRecorded(_ context.Context, event queue.SaleRecordedEvent) error {
	if p.fail {
		return errors.New("broker unreachable")
	}
	p.events = append(p.events, event)
	return nil
}
