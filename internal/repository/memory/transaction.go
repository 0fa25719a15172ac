package memory

import "context"

// TxManager implements database.Transactor without real transactions; the
// in-memory repositories are already serialized by their mutexes.
type TxManager struct{}

func NewTxManager() *TxManager {
	return &TxManager{}
}

func (TxManager) WithinTransaction(ctx context.Context, fn func(txCtx context.Context) error) error {
	return fn(ctx)
}
