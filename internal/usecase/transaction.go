package usecase

import (
	"context"
	"fmt"
)

// Transaction runs a list of named operations in order and stops at the first
// failure, running any registered compensations for the steps that already
// succeeded. Compensations are best-effort; a compensation failure is reported
// through the returned error but cannot be retried here.
type Transaction struct {
	operations    []operation
	compensations []operation
}

type operation struct {
	Name string
	Fn   func(context.Context) error
}

func NewTransaction() *Transaction {
	return &Transaction{}
}

func (t *Transaction) AddOperation(name string, fn func(context.Context) error) {
	t.operations = append(t.operations, operation{name, fn})
}

func (t *Transaction) AddCompensation(name string, fn func(context.Context) error) {
	t.compensations = append(t.compensations, operation{name, fn})
}

func (t *Transaction) Execute(ctx context.Context) error {
	for i, op := range t.operations {
		if err := op.Fn(ctx); err != nil {
			compErr := t.rollback(ctx, i)
			if compErr != nil {
				return fmt.Errorf("operation '%s' failed: %w (compensation also failed: %v)", op.Name, err, compErr)
			}
			return fmt.Errorf("operation '%s' failed: %w (rolled back %d operations)", op.Name, err, i)
		}
	}
	return nil
}

func (t *Transaction) rollback(ctx context.Context, failedAtIndex int) error {
	var firstErr error
	for i := failedAtIndex - 1; i >= 0; i-- {
		if i < len(t.compensations) {
			if err := t.compensations[i].Fn(ctx); err != nil && firstErr == nil {
				firstErr = fmt.Errorf("'%s': %w", t.compensations[i].Name, err)
			}
		}
	}
	return firstErr
}
