package out

import (
	"context"

	"kex/internal/modules/prefs/domain"
	prefsout "kex/internal/modules/prefs/port/out"
	"kex/internal/platform/kv"
)

const (
	themeKey = "prefs-theme"
	levelKey = "prefs-level"
)

type KVStore struct {
	kv *kv.Store
}

func NewKVStore(store *kv.Store) *KVStore {
	return &KVStore{kv: store}
}

var _ prefsout.Store = (*KVStore)(nil)

func (s *KVStore) Load(_ context.Context) (domain.Preferences, error) {
	p := domain.Defaults()
	theme, ok, err := s.kv.Get(themeKey)
	if err != nil {
		return p, err
	}
	if ok {
		p.DarkMode = string(theme) != "light"
	}
	level, ok, err := s.kv.Get(levelKey)
	if err != nil {
		return p, err
	}
	if ok {
		if lvl, err := domain.NormalizeLevel(string(level)); err == nil {
			p.Level = lvl
		}
	}
	return p, nil
}

func (s *KVStore) Save(_ context.Context, p domain.Preferences) error {
	theme := "dark"
	if !p.DarkMode {
		theme = "light"
	}
	if err := s.kv.Put(themeKey, []byte(theme)); err != nil {
		return err
	}
	return s.kv.Put(levelKey, []byte(p.Level))
}
