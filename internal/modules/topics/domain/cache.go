package domain

type CacheKind string

const (
	CacheLearningPath CacheKind = "learning_path"
	CacheSummary      CacheKind = "summary"
)

type CacheKey struct {
	Kind  CacheKind
	Topic string
	Level Level
}

func (k CacheKey) String() string {
	return string(k.Kind) + ":" + k.Topic + ":" + string(k.Level)
}
