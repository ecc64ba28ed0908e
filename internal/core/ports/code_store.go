package ports

import (
	"context"
	"time"
)

// CodeStore keeps at most one live verification code per phone.
//
// Set overwrites any previous code. Take returns the code and removes it in
// one step; ok is false for an absent or expired code. Implementations must
// never log the code.
type CodeStore interface {
	Set(ctx context.Context, key, code string, ttl time.Duration) error
	Take(ctx context.Context, key string) (code string, ok bool, err error)
	Delete(ctx context.Context, key string) error
}
