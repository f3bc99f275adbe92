package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/alexanderramin/timereport/internal/domain"
	"github.com/alexanderramin/timereport/internal/repository"
)

type employeeService struct {
	employees repository.EmployeeRepo
	items     repository.ItemRepo
}

func NewEmployeeService(employees repository.EmployeeRepo, items repository.ItemRepo) EmployeeService {
	return &employeeService{employees: employees, items: items}
}

func (s *employeeService) List(ctx context.Context) ([]*domain.Employee, error) {
	return s.employees.List(ctx)
}

func (s *employeeService) Add(ctx context.Context, name string) (int64, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return 0, fmt.Errorf("%w: employee name is empty", domain.ErrMissingValue)
	}
	return s.employees.EnsureByName(ctx, name)
}

func (s *employeeService) Rename(ctx context.Context, id int64, name string) error {
	e, err := s.employees.GetByID(ctx, id)
	if err != nil {
		return err
	}
	name = strings.TrimSpace(name)
	if name == "" {
		return fmt.Errorf("%w: employee name is empty", domain.ErrMissingValue)
	}
	e.Name = name
	return s.employees.Update(ctx, e)
}

func (s *employeeService) Delete(ctx context.Context, id int64) error {
	n, err := s.items.CountByEmployee(ctx, id)
	if err != nil {
		return err
	}
	if n > 0 {
		return fmt.Errorf("employee %d has %d items: %w", id, n, repository.ErrConflict)
	}
	return s.employees.Delete(ctx, id)
}
