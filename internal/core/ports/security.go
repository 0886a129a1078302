package ports

import (
	"context"
	"errors"
)

// PasswordHasher turns a plaintext secret into a one-way digest.
type PasswordHasher interface {
	Hash(ctx context.Context, plaintext string) (string, error)
}

// ErrLockHeld is returned by Locker.Lock when another holder owns the key.
var ErrLockHeld = errors.New("lock held by another operation")

// Locker serialises check-then-act sequences across processes.
type Locker interface {
	// Lock acquires key or returns ErrLockHeld. The returned release function
	// must be called once the guarded section is done.
	Lock(ctx context.Context, key string) (release func(context.Context) error, err error)
}
