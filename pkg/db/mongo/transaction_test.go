package mongo

import (
	"context"
	"errors"
	"testing"
)

func TestDirectTransactionManager_RunsFn(t *testing.T) {
	tm := NewTransactionManagerFor(nil, true)

	called := false
	err := tm.ExecuteTransaction(context.Background(), func(ctx context.Context) error {
		called = true
		return nil
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !called {
		t.Errorf("fn was not executed")
	}
}

func TestDirectTransactionManager_PropagatesError(t *testing.T) {
	tm := NewDirectTransactionManager()
	want := errors.New("insert failed")

	err := tm.ExecuteTransaction(context.Background(), func(ctx context.Context) error {
		return want
	})
	if !errors.Is(err, want) {
		t.Errorf("expected %v, got %v", want, err)
	}
}
