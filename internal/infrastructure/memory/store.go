// Package memory implementa todos los puertos de persistencia en memoria de proceso.
// Se usa con STORAGE_DRIVER=memory y en las pruebas de casos de uso.
//
// Las escrituras se serializan con txMu; una transacción toma txMu completo y
// restaura una copia del estado si el callback falla. Las lecturas concurrentes
// con una transacción pueden ver sus cambios antes del commit.
package memory

import (
	"context"
	"sync"

	"github.com/jhoicas/Ideas-api/internal/application/ports"
	"github.com/jhoicas/Ideas-api/internal/domain/entity"
	"github.com/jhoicas/Ideas-api/internal/domain/repository"
)

var _ ports.TxRunner = (*Store)(nil)

// Store estado compartido de todos los repositorios en memoria.
type Store struct {
	txMu sync.Mutex
	mu   sync.RWMutex
	data *state
}

type state struct {
	users       map[string]*entity.User // sin Roles; se resuelven con memberships
	roles       map[string]*entity.Role
	memberships map[string]map[string]struct{} // userID → roleIDs
	employees   map[string]*entity.Employee
	ideas       map[string]*entity.Idea // sin History
	history     map[string][]entity.IdeaHistory
	catalog     map[string]*entity.CatalogItem
}

// NewStore crea un almacén vacío.
func NewStore() *Store {
	return &Store{data: newState()}
}

func newState() *state {
	return &state{
		users:       map[string]*entity.User{},
		roles:       map[string]*entity.Role{},
		memberships: map[string]map[string]struct{}{},
		employees:   map[string]*entity.Employee{},
		ideas:       map[string]*entity.Idea{},
		history:     map[string][]entity.IdeaHistory{},
		catalog:     map[string]*entity.CatalogItem{},
	}
}

func (d *state) clone() *state {
	c := newState()
	for k, v := range d.users {
		u := *v
		c.users[k] = &u
	}
	for k, v := range d.roles {
		r := *v
		c.roles[k] = &r
	}
	for k, set := range d.memberships {
		m := make(map[string]struct{}, len(set))
		for id := range set {
			m[id] = struct{}{}
		}
		c.memberships[k] = m
	}
	for k, v := range d.employees {
		e := *v
		c.employees[k] = &e
	}
	for k, v := range d.ideas {
		i := *v
		c.ideas[k] = &i
	}
	for k, v := range d.history {
		c.history[k] = append([]entity.IdeaHistory(nil), v...)
	}
	for k, v := range d.catalog {
		it := *v
		c.catalog[k] = &it
	}
	return c
}

// base acceso común de los repositorios al estado.
type base struct {
	s    *Store
	inTx bool // txMu ya está tomado por el runner
}

func (b base) write(fn func(d *state) error) error {
	if !b.inTx {
		b.s.txMu.Lock()
		defer b.s.txMu.Unlock()
	}
	b.s.mu.Lock()
	defer b.s.mu.Unlock()
	return fn(b.s.data)
}

func (b base) read(fn func(d *state) error) error {
	b.s.mu.RLock()
	defer b.s.mu.RUnlock()
	return fn(b.s.data)
}

func (s *Store) run(fn func(b base) error) error {
	s.txMu.Lock()
	defer s.txMu.Unlock()

	s.mu.RLock()
	snapshot := s.data.clone()
	s.mu.RUnlock()

	if err := fn(base{s: s, inTx: true}); err != nil {
		s.mu.Lock()
		s.data = snapshot
		s.mu.Unlock()
		return err
	}
	return nil
}

// RunIdentity ejecuta fn con repos de usuarios y roles en una sección exclusiva.
func (s *Store) RunIdentity(ctx context.Context, fn func(
	users repository.UserRepository,
	roles repository.RoleRepository,
) error) error {
	return s.run(func(b base) error {
		return fn(&UserRepo{b}, &RoleRepo{b})
	})
}

// RunIdeas ejecuta fn con repos de ideas, usuarios, roles y empleados en una sección exclusiva.
func (s *Store) RunIdeas(ctx context.Context, fn func(
	ideas repository.IdeaRepository,
	users repository.UserRepository,
	roles repository.RoleRepository,
	employees repository.EmployeeRepository,
) error) error {
	return s.run(func(b base) error {
		return fn(&IdeaRepo{b}, &UserRepo{b}, &RoleRepo{b}, &EmployeeRepo{b})
	})
}

// RunReport ejecuta fn con los escritores bloqueados; las lecturas ven una misma foto.
func (s *Store) RunReport(ctx context.Context, fn func(reports repository.ReportRepository) error) error {
	s.txMu.Lock()
	defer s.txMu.Unlock()
	return fn(&ReportRepo{base{s: s, inTx: true}})
}

// Users repositorio de usuarios fuera de transacción.
func (s *Store) Users() *UserRepo { return &UserRepo{base{s: s}} }

// Roles repositorio de roles fuera de transacción.
func (s *Store) Roles() *RoleRepo { return &RoleRepo{base{s: s}} }

// Employees repositorio de empleados.
func (s *Store) Employees() *EmployeeRepo { return &EmployeeRepo{base{s: s}} }

// Ideas repositorio de ideas.
func (s *Store) Ideas() *IdeaRepo { return &IdeaRepo{base{s: s}} }

// Catalogs repositorio de catálogos.
func (s *Store) Catalogs() *CatalogRepo { return &CatalogRepo{base{s: s}} }

// Reports consultas del tablero.
func (s *Store) Reports() *ReportRepo { return &ReportRepo{base{s: s}} }
