package service

import "context"

// NoopLocker grants every lock immediately. It is used when Redis is disabled
// and the store's unique indexes are the only guard.
type NoopLocker struct{}

func (NoopLocker) Lock(context.Context, string) (func(context.Context) error, error) {
	return func(context.Context) error { return nil }, nil
}
