package domain

import "sort"

// Disclosure tracks which cards have their summary expanded.
type Disclosure map[string]bool

func (d Disclosure) Toggle(topic string) bool {
	d[topic] = !d[topic]
	return d[topic]
}

func (d Disclosure) Expanded(topic string) bool { return d[topic] }

func (d Disclosure) Clear() {
	for k := range d {
		delete(d, k)
	}
}

// Open lists the expanded topics in sorted order.
func (d Disclosure) Open() []string {
	var out []string
	for topic, expanded := range d {
		if expanded {
			out = append(out, topic)
		}
	}
	sort.Strings(out)
	return out
}
