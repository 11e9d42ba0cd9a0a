package out

import (
	"context"

	"kex/internal/modules/prefs/domain"
)

// Store persists preferences. Load fills unset values with defaults.
type Store interface {
	Load(ctx context.Context) (domain.Preferences, error)
	Save(ctx context.Context, p domain.Preferences) error
}
