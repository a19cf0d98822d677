// Package usecasetest содержит in-memory реализации репозиториев и хранилища
// фото для тестов use case. Семантика повторяет PostgreSQL-репозитории:
// уникальность (court, slot, date), ошибки NotFound и Duplicate.
package usecasetest

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/AryanshKukreja/court-status-service/internal/domain"
	bookingRepo "github.com/AryanshKukreja/court-status-service/internal/infra/storage/booking"
	courtRepo "github.com/AryanshKukreja/court-status-service/internal/infra/storage/court"
	"github.com/AryanshKukreja/court-status-service/internal/integrations/objectstorage"
)

// DB in-memory база с видами спорта, площадками, слотами и бронированиями
type DB struct {
	mu       sync.Mutex
	sports   map[string]*domain.Sport
	courts   map[int64]*domain.Court
	slots    map[int64]*domain.TimeSlot
	bookings map[int64]*domain.Booking
	nextID   int64

	// Хуки для моделирования гонок
	BeforeCreate func(key domain.BookingKey)
	BeforeDelete func(id int64)
}

// NewDB создает пустую базу
func NewDB() *DB {
	return &DB{
		sports:   map[string]*domain.Sport{},
		courts:   map[int64]*domain.Court{},
		slots:    map[int64]*domain.TimeSlot{},
		bookings: map[int64]*domain.Booking{},
	}
}

func (db *DB) id() int64 {
	db.nextID++
	return db.nextID
}

// AddSport добавляет вид спорта с n площадками и возвращает площадки
func (db *DB) AddSport(id, name string, n int) []*domain.Court {
	db.mu.Lock()
	defer db.mu.Unlock()

	db.sports[id] = &domain.Sport{ID: id, Name: name}
	courts := make([]*domain.Court, 0, n)
	for i := 1; i <= n; i++ {
		c := &domain.Court{ID: db.id(), SportID: id, Name: domain.CourtName(name, i)}
		db.courts[c.ID] = c
		courts = append(courts, c)
	}
	return courts
}

// AddSlots добавляет слоты для часов from..to включительно.
// ID выдаются в обратном порядке, чтобы позиция не совпадала с ID
func (db *DB) AddSlots(from, to int) {
	db.mu.Lock()
	defer db.mu.Unlock()

	for h := to; h >= from; h-- {
		s := &domain.TimeSlot{ID: db.id(), Hour: h}
		db.slots[s.ID] = s
	}
}

// Bookings возвращает копии всех строк
func (db *DB) Bookings() []domain.Booking {
	db.mu.Lock()
	defer db.mu.Unlock()

	result := make([]domain.Booking, 0, len(db.bookings))
	for _, b := range db.bookings {
		result = append(result, *b)
	}
	sort.Slice(result, func(i, j int) bool { return result[i].ID < result[j].ID })
	return result
}

// InsertBooking вставляет строку напрямую, минуя проверки
func (db *DB) InsertBooking(b domain.Booking) int64 {
	db.mu.Lock()
	defer db.mu.Unlock()

	b.ID = db.id()
	b.Date = domain.NormalizeDate(b.Date)
	db.bookings[b.ID] = &b
	return b.ID
}

// RemoveBooking удаляет строку напрямую
func (db *DB) RemoveBooking(id int64) {
	db.mu.Lock()
	defer db.mu.Unlock()
	delete(db.bookings, id)
}

// FindByKey см. booking.Repository
func (db *DB) FindByKey(_ context.Context, key domain.BookingKey) (*domain.Booking, error) {
	db.mu.Lock()
	defer db.mu.Unlock()

	if b := db.findLocked(key); b != nil {
		cp := *b
		return &cp, nil
	}
	return nil, bookingRepo.ErrBookingNotFound
}

func (db *DB) findLocked(key domain.BookingKey) *domain.Booking {
	for _, b := range db.bookings {
		if b.CourtID == key.CourtID && b.TimeSlotID == key.TimeSlotID && b.Date.Equal(key.Date) {
			return b
		}
	}
	return nil
}

// Create см. booking.Repository
func (db *DB) Create(_ context.Context, b *domain.Booking) (*domain.Booking, error) {
	if hook := db.BeforeCreate; hook != nil {
		hook(domain.BookingKey{CourtID: b.CourtID, TimeSlotID: b.TimeSlotID, Date: b.Date})
	}

	db.mu.Lock()
	defer db.mu.Unlock()

	if !b.Status.IsPersisted() {
		return nil, bookingRepo.ErrInvalidStatus
	}
	if db.findLocked(domain.BookingKey{CourtID: b.CourtID, TimeSlotID: b.TimeSlotID, Date: b.Date}) != nil {
		return nil, bookingRepo.ErrDuplicateBooking
	}

	cp := *b
	cp.ID = db.id()
	cp.CreatedAt = time.Now()
	cp.UpdatedAt = cp.CreatedAt
	db.bookings[cp.ID] = &cp

	b.ID = cp.ID
	return b, nil
}

// Update см. booking.Repository
func (db *DB) Update(_ context.Context, b *domain.Booking) error {
	db.mu.Lock()
	defer db.mu.Unlock()

	if !b.Status.IsPersisted() {
		return bookingRepo.ErrInvalidStatus
	}
	stored, ok := db.bookings[b.ID]
	if !ok {
		return bookingRepo.ErrBookingNotFound
	}

	stored.Status = b.Status
	stored.BookingBy = b.BookingBy
	stored.Attachment = b.Attachment
	stored.UserID = b.UserID
	stored.UserName = b.UserName
	stored.UpdatedAt = time.Now()
	return nil
}

// Delete см. booking.Repository
func (db *DB) Delete(_ context.Context, id int64) error {
	if hook := db.BeforeDelete; hook != nil {
		hook(id)
	}

	db.mu.Lock()
	defer db.mu.Unlock()

	if _, ok := db.bookings[id]; !ok {
		return bookingRepo.ErrBookingNotFound
	}
	delete(db.bookings, id)
	return nil
}

// GetBySportAndDate см. booking.Repository
func (db *DB) GetBySportAndDate(_ context.Context, sportID string, date time.Time) ([]*domain.Booking, error) {
	db.mu.Lock()
	defer db.mu.Unlock()

	result := make([]*domain.Booking, 0)
	for _, b := range db.bookings {
		c, ok := db.courts[b.CourtID]
		if !ok || c.SportID != sportID || !b.Date.Equal(date) {
			continue
		}
		cp := *b
		result = append(result, &cp)
	}
	sort.Slice(result, func(i, j int) bool { return result[i].ID < result[j].ID })
	return result, nil
}

// GetReferencedAttachmentKeys см. booking.Repository
func (db *DB) GetReferencedAttachmentKeys(_ context.Context, keys []string) (map[string]struct{}, error) {
	db.mu.Lock()
	defer db.mu.Unlock()

	wanted := make(map[string]struct{}, len(keys))
	for _, k := range keys {
		wanted[k] = struct{}{}
	}

	referenced := make(map[string]struct{})
	for _, b := range db.bookings {
		if _, ok := wanted[b.AttachmentKey()]; ok && b.HasAttachment() {
			referenced[b.AttachmentKey()] = struct{}{}
		}
	}
	return referenced, nil
}

// Slots адаптер репозитория слотов
func (db *DB) Slots() *SlotRepo { return &SlotRepo{db: db} }

// Courts адаптер репозитория площадок
func (db *DB) Courts() *CourtRepo { return &CourtRepo{db: db} }

// Sports адаптер репозитория видов спорта
func (db *DB) Sports() *SportRepo { return &SportRepo{db: db} }

// SlotRepo in-memory репозиторий слотов
type SlotRepo struct{ db *DB }

// List возвращает слоты по возрастанию часа
func (r *SlotRepo) List(_ context.Context) ([]*domain.TimeSlot, error) {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()

	result := make([]*domain.TimeSlot, 0, len(r.db.slots))
	for _, s := range r.db.slots {
		cp := *s
		result = append(result, &cp)
	}
	sort.Slice(result, func(i, j int) bool { return result[i].Hour < result[j].Hour })
	return result, nil
}

// CourtRepo in-memory репозиторий площадок
type CourtRepo struct{ db *DB }

// GetByID см. court.Repository
func (r *CourtRepo) GetByID(_ context.Context, id int64) (*domain.Court, error) {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()

	c, ok := r.db.courts[id]
	if !ok {
		return nil, courtRepo.ErrCourtNotFound
	}
	cp := *c
	return &cp, nil
}

// ListBySport см. court.Repository
func (r *CourtRepo) ListBySport(_ context.Context, sportID string) ([]*domain.Court, error) {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()

	result := make([]*domain.Court, 0)
	for _, c := range r.db.courts {
		if c.SportID == sportID {
			cp := *c
			result = append(result, &cp)
		}
	}
	sort.Slice(result, func(i, j int) bool { return result[i].ID < result[j].ID })
	return result, nil
}

// SportRepo in-memory репозиторий видов спорта
type SportRepo struct{ db *DB }

// List возвращает виды спорта по имени
func (r *SportRepo) List(_ context.Context) ([]*domain.Sport, error) {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()

	result := make([]*domain.Sport, 0, len(r.db.sports))
	for _, s := range r.db.sports {
		cp := *s
		result = append(result, &cp)
	}
	sort.Slice(result, func(i, j int) bool { return result[i].Name < result[j].Name })
	return result, nil
}

// ObjectStore in-memory хранилище фото. Delete отсутствующего ключа - ошибка
type ObjectStore struct {
	mu      sync.Mutex
	objects map[string]bool
	deletes map[string]int
	seq     int

	// FailDelete заставляет Delete возвращать ошибку
	FailDelete bool
}

// NewObjectStore создает пустое хранилище
func NewObjectStore() *ObjectStore {
	return &ObjectStore{objects: map[string]bool{}, deletes: map[string]int{}}
}

// Upload имитирует загрузку файла обработчиком до вызова движка
func (s *ObjectStore) Upload(name string) *domain.Attachment {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.seq++
	key := fmt.Sprintf("%s%d-%s", domain.ApprovalPhotoPrefix, s.seq, name)
	s.objects[key] = true
	return &domain.Attachment{Key: key, URL: "https://cdn.test/" + key, OriginalName: name}
}

// Delete см. objectstorage.Client
func (s *ObjectStore) Delete(_ context.Context, key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.FailDelete {
		return errors.New("object store unavailable")
	}
	if !s.objects[key] {
		return fmt.Errorf("%w: %s", objectstorage.ErrObjectNotFound, key)
	}
	delete(s.objects, key)
	s.deletes[key]++
	return nil
}

// Exists проверяет наличие объекта
func (s *ObjectStore) Exists(key string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.objects[key]
}

// DeleteCount сколько раз ключ был удален
func (s *ObjectStore) DeleteCount(key string) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.deletes[key]
}

// TxManager выполняет функцию без транзакции
type TxManager struct{}

func (TxManager) Do(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

// Metrics считает вызовы метрик
type Metrics struct {
	mu              sync.Mutex
	Actions         map[string]int
	CleanupFailures int
	Cache           map[string]int
}

// NewMetrics создает счетчики
func NewMetrics() *Metrics {
	return &Metrics{Actions: map[string]int{}, Cache: map[string]int{}}
}

func (m *Metrics) RecordBookingAction(action string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Actions[action]++
}

func (m *Metrics) RecordAttachmentCleanupFailure() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.CleanupFailures++
}

func (m *Metrics) RecordCache(result string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Cache[result]++
}

// Logger логгер, который ничего не пишет
type Logger struct{}

func (Logger) Info(string, ...interface{})  {}
func (Logger) Warn(string, ...interface{})  {}
func (Logger) Error(string, ...interface{}) {}
