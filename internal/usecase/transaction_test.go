package usecase

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTransactionRunsInOrder(t *testing.T) {
	var order []string

	txn := NewTransaction()
	txn.AddOperation("first", func(ctx context.Context) error {
		order = append(order, "first")
		return nil
	})
	txn.AddOperation("second", func(ctx context.Context) error {
		order = append(order, "second")
		return nil
	})

	assert.NoError(t, txn.Execute(context.Background()))
	assert.Equal(t, []string{"first", "second"}, order)
}

func TestTransactionStopsAndCompensates(t *testing.T) {
	var compensated bool

	txn := NewTransaction()
	txn.AddOperation("create", func(ctx context.Context) error { return nil })
	txn.AddCompensation("undo_create", func(ctx context.Context) error {
		compensated = true
		return nil
	})
	txn.AddOperation("link", func(ctx context.Context) error {
		return errors.New("constraint violation")
	})

	var ranAfterFailure bool
	txn.AddOperation("notify", func(ctx context.Context) error {
		ranAfterFailure = true
		return nil
	})

	err := txn.Execute(context.Background())

	assert.Error(t, err)
	assert.Contains(t, err.Error(), "link")
	assert.True(t, compensated)
	assert.False(t, ranAfterFailure)
}

func TestTransactionReportsCompensationFailure(t *testing.T) {
	txn := NewTransaction()
	txn.AddOperation("create", func(ctx context.Context) error { return nil })
	txn.AddCompensation("undo_create", func(ctx context.Context) error {
		return errors.New("undo failed")
	})
	txn.AddOperation("link", func(ctx context.Context) error {
		return errors.New("constraint violation")
	})

	err := txn.Execute(context.Background())

	assert.Error(t, err)
	assert.Contains(t, err.Error(), "compensation also failed")
	assert.Contains(t, err.Error(), "undo_create")
}
