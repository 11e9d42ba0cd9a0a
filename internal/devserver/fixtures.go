package devserver

import (
	_ "embed"
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

//go:embed fixtures.yaml
var defaultFixtures []byte

// Fixtures is the content served by the dev backend.
type Fixtures struct {
	Topics []TopicFixture `yaml:"topics"`
	Users  []UserFixture  `yaml:"users"`
}

type TopicFixture struct {
	Name      string            `yaml:"name"`
	Aliases   []string          `yaml:"aliases"`
	Summaries map[string]string `yaml:"summaries"`
	Links     []string          `yaml:"links"`
}

type UserFixture struct {
	Username string `yaml:"username"`
	Email    string `yaml:"email"`
	Password string `yaml:"password"`
	Admin    bool   `yaml:"admin"`
}

// DefaultFixtures returns the built-in demo content.
func DefaultFixtures() (Fixtures, error) {
	return ParseFixtures(defaultFixtures)
}

func LoadFixtures(path string) (Fixtures, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return Fixtures{}, fmt.Errorf("read fixtures: %w", err)
	}
	return ParseFixtures(raw)
}

func ParseFixtures(raw []byte) (Fixtures, error) {
	var f Fixtures
	if err := yaml.Unmarshal(raw, &f); err != nil {
		return Fixtures{}, fmt.Errorf("parse fixtures: %w", err)
	}
	seen := map[string]struct{}{}
	for _, t := range f.Topics {
		name := strings.TrimSpace(t.Name)
		if name == "" {
			return Fixtures{}, fmt.Errorf("fixture topic without name")
		}
		if _, ok := seen[strings.ToLower(name)]; ok {
			return Fixtures{}, fmt.Errorf("duplicate fixture topic %q", name)
		}
		seen[strings.ToLower(name)] = struct{}{}
	}
	return f, nil
}

// catalog resolves user input to canonical topic names.
type catalog struct {
	byKey  map[string]*TopicFixture
	topics []TopicFixture
}

func newCatalog(topics []TopicFixture) *catalog {
	c := &catalog{byKey: map[string]*TopicFixture{}, topics: topics}
	for i := range c.topics {
		t := &c.topics[i]
		c.byKey[foldKey(t.Name)] = t
		for _, alias := range t.Aliases {
			c.byKey[foldKey(alias)] = t
		}
	}
	return c
}

func foldKey(s string) string {
	return strings.ToLower(strings.Join(strings.Fields(strings.ReplaceAll(s, "_", " ")), " "))
}

func (c *catalog) lookup(input string) (*TopicFixture, bool) {
	t, ok := c.byKey[foldKey(input)]
	return t, ok
}

// learningPath resolves the topic's links to canonical names, drops
// duplicates and the topic itself, then cuts the list to the level's size.
func (c *catalog) learningPath(t *TopicFixture, limit int) []string {
	seen := map[string]struct{}{t.Name: {}}
	out := make([]string, 0, limit)
	for _, link := range t.Links {
		name := strings.TrimSpace(link)
		if resolved, ok := c.lookup(name); ok {
			name = resolved.Name
		}
		if name == "" {
			continue
		}
		if _, dup := seen[name]; dup {
			continue
		}
		seen[name] = struct{}{}
		out = append(out, name)
		if len(out) == limit {
			break
		}
	}
	return out
}
