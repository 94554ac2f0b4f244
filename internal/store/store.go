// Package store хранит бронирования в памяти: дата -> упорядоченный список.
// ID уникальны глобально, бронирования никогда не удаляются физически.
// Store не потокобезопасен: сериализация записей лежит на вызывающем слое.
package store

import (
	"fmt"

	"github.com/m04kA/SMC-HallBooking/internal/domain"
	"github.com/m04kA/SMC-HallBooking/pkg/types"
)

// Store авторитетная коллекция бронирований
type Store struct {
	buckets map[types.DateKey][]domain.Booking
	dates   []types.DateKey // порядок появления дат, только для стабильного перечисления
	index   map[int64]types.DateKey
	lastID  int64
	version uint64
}

// New создает пустое хранилище
func New() *Store {
	return &Store{
		buckets: make(map[types.DateKey][]domain.Booking),
		index:   make(map[int64]types.DateKey),
	}
}

// Load создает хранилище из уже сохраненных бронирований (например, загруженных из БД)
func Load(bookings []domain.Booking) (*Store, error) {
	s := New()
	for _, b := range bookings {
		if b.ID <= 0 {
			return nil, fmt.Errorf("%w: Load - booking without id on %s", ErrInvalidBooking, b.Date)
		}
		if err := s.put(b); err != nil {
			return nil, fmt.Errorf("Load: %w", err)
		}
	}
	s.version = 0
	return s, nil
}

// Insert добавляет новое бронирование. Если ID не задан, присваивает следующий свободный.
// Возвращает сохраненную копию.
func (s *Store) Insert(b domain.Booking) (domain.Booking, error) {
	if b.ID == 0 {
		b.ID = s.lastID + 1
	}
	if err := s.put(b); err != nil {
		return domain.Booking{}, err
	}
	return b, nil
}

// Get возвращает копию бронирования по (date, id)
func (s *Store) Get(date types.DateKey, id int64) (domain.Booking, error) {
	i, ok := s.locate(date, id)
	if !ok {
		return domain.Booking{}, fmt.Errorf("%w: date=%s id=%d", ErrNotFound, date, id)
	}
	return s.buckets[date][i], nil
}

// Find возвращает копию бронирования только по id
func (s *Store) Find(id int64) (domain.Booking, error) {
	date, ok := s.index[id]
	if !ok {
		return domain.Booking{}, fmt.Errorf("%w: id=%d", ErrNotFound, id)
	}
	return s.Get(date, id)
}

// Replace заменяет запись с тем же (Date, ID) на переданную версию
func (s *Store) Replace(b domain.Booking) error {
	i, ok := s.locate(b.Date, b.ID)
	if !ok {
		return fmt.Errorf("%w: date=%s id=%d", ErrNotFound, b.Date, b.ID)
	}
	s.buckets[b.Date][i] = b
	s.version++
	return nil
}

// Dates возвращает ключи дат, по которым есть бронирования
func (s *Store) Dates() []types.DateKey {
	out := make([]types.DateKey, len(s.dates))
	copy(out, s.dates)
	return out
}

// OnDate возвращает копии бронирований на дату в порядке вставки
func (s *Store) OnDate(date types.DateKey) []domain.Booking {
	bucket := s.buckets[date]
	out := make([]domain.Booking, len(bucket))
	copy(out, bucket)
	return out
}

// All перечисляет все бронирования. Каждая копия помечена ключом своей даты
func (s *Store) All() []domain.Booking {
	out := make([]domain.Booking, 0, len(s.index))
	for _, date := range s.dates {
		for _, b := range s.buckets[date] {
			b.Date = date
			out = append(out, b)
		}
	}
	return out
}

// Len количество бронирований
func (s *Store) Len() int {
	return len(s.index)
}

// Version увеличивается при каждой успешной мутации
func (s *Store) Version() uint64 {
	return s.version
}

// Clone возвращает независимую копию хранилища.
// Booking не содержит ссылочных полей, поэтому копирования значений достаточно.
func (s *Store) Clone() *Store {
	c := &Store{
		buckets: make(map[types.DateKey][]domain.Booking, len(s.buckets)),
		dates:   make([]types.DateKey, len(s.dates)),
		index:   make(map[int64]types.DateKey, len(s.index)),
		lastID:  s.lastID,
		version: s.version,
	}
	copy(c.dates, s.dates)
	for date, bucket := range s.buckets {
		cp := make([]domain.Booking, len(bucket))
		copy(cp, bucket)
		c.buckets[date] = cp
	}
	for id, date := range s.index {
		c.index[id] = date
	}
	return c
}

func (s *Store) put(b domain.Booking) error {
	if err := b.Date.Validate(); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidBooking, err)
	}
	if b.ID <= 0 {
		return fmt.Errorf("%w: id must be positive", ErrInvalidBooking)
	}
	if _, exists := s.index[b.ID]; exists {
		return fmt.Errorf("%w: id=%d", ErrDuplicateID, b.ID)
	}

	if _, ok := s.buckets[b.Date]; !ok {
		s.dates = append(s.dates, b.Date)
	}
	s.buckets[b.Date] = append(s.buckets[b.Date], b)
	s.index[b.ID] = b.Date
	if b.ID > s.lastID {
		s.lastID = b.ID
	}
	s.version++
	return nil
}

func (s *Store) locate(date types.DateKey, id int64) (int, bool) {
	if s.index[id] != date {
		return 0, false
	}
	for i, b := range s.buckets[date] {
		if b.ID == id {
			return i, true
		}
	}
	return 0, false
}
