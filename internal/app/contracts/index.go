package contracts

import "context"

// IndexEnsurer is implemented by repositories that own collection indexes.
type IndexEnsurer interface {
	EnsureIndexes(ctx context.Context) error
}
