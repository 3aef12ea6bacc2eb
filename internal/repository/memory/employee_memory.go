package memory

import (
	"context"
	"database/sql"
	"sync"

	"empapi/internal/model"
	"empapi/internal/repository"
)

// SampleEmployees returns the records a seeded store starts with.
func SampleEmployees() []model.Employee {
	return []model.Employee{
		{
			ID:          1,
			Name:        "Sree",
			MailID:      "sree@gmail.com",
			JobTitle:    model.JobTitleProjectLead,
			Mission:     model.MissionSCV,
			ProjectName: "XYZ",
			ReportsTo:   "Jack",
		},
		{
			ID:          2,
			Name:        "Karthik",
			MailID:      "karthik@gmail.com",
			JobTitle:    model.JobTitleProjectManager,
			Mission:     model.MissionD2T,
			ProjectName: "ABC",
			ReportsTo:   "Jill",
		},
	}
}

// EmployeeMemory keeps employees in process memory, ordered by ID.
// It is safe for concurrent use.
type EmployeeMemory struct {
	mu     sync.RWMutex
	items  []model.Employee
	nextID int
}

var _ repository.EmployeeRepository = (*EmployeeMemory)(nil)

// NewEmployeeMemory creates a store holding a copy of seed. IDs of new records
// continue after the highest seeded ID.
func NewEmployeeMemory(seed []model.Employee) *EmployeeMemory {
	m := &EmployeeMemory{
		items:  make([]model.Employee, 0, len(seed)),
		nextID: 1,
	}
	for _, e := range seed {
		m.items = append(m.items, e)
		if e.ID >= m.nextID {
			m.nextID = e.ID + 1
		}
	}
	return m
}

func (m *EmployeeMemory) indexOf(id int) int {
	for i := range m.items {
		if m.items[i].ID == id {
			return i
		}
	}
	return -1
}

func (m *EmployeeMemory) List(ctx context.Context) ([]model.Employee, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	m.mu.RLock()
	defer m.mu.RUnlock()

	out := make([]model.Employee, len(m.items))
	copy(out, m.items)
	return out, nil
}

func (m *EmployeeMemory) FindByID(ctx context.Context, id int) (*model.Employee, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	m.mu.RLock()
	defer m.mu.RUnlock()

	i := m.indexOf(id)
	if i < 0 {
		return nil, sql.ErrNoRows
	}
	e := m.items[i]
	return &e, nil
}

func (m *EmployeeMemory) Create(ctx context.Context, e *model.Employee) (*model.Employee, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	m.mu.Lock()
	defer m.mu.Unlock()

	stored := *e
	stored.ID = m.nextID
	m.nextID++
	m.items = append(m.items, stored)
	return &stored, nil
}

func (m *EmployeeMemory) Update(ctx context.Context, e *model.Employee) (*model.Employee, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	m.mu.Lock()
	defer m.mu.Unlock()

	i := m.indexOf(e.ID)
	if i < 0 {
		return nil, sql.ErrNoRows
	}
	m.items[i] = *e
	stored := m.items[i]
	return &stored, nil
}

func (m *EmployeeMemory) Delete(ctx context.Context, id int) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	m.mu.Lock()
	defer m.mu.Unlock()

	i := m.indexOf(id)
	if i < 0 {
		return sql.ErrNoRows
	}
	m.items = append(m.items[:i], m.items[i+1:]...)
	return nil
}
