// Package docs serves the built-in help topics shown by "todo docs".
// Topics are markdown files embedded at build time; the topic name is the
// file name without its .md suffix.
package docs

import (
	"embed"
	"sort"
	"strings"
)

//go:embed content/*.md
var contentFS embed.FS

// Topics returns the available topic names, sorted.
func Topics() []string {
	entries, err := contentFS.ReadDir("content")
	if err != nil {
		return nil
	}
	topics := make([]string, 0, len(entries))
	for _, e := range entries {
		name, ok := strings.CutSuffix(e.Name(), ".md")
		if !ok || name == "" {
			continue
		}
		topics = append(topics, name)
	}
	sort.Strings(topics)
	return topics
}

// Get returns the markdown body for a topic. Topic lookup is
// case-insensitive and tolerates surrounding whitespace.
func Get(topic string) (string, bool) {
	topic = strings.ToLower(strings.TrimSpace(topic))
	if topic == "" {
		return "", false
	}
	b, err := contentFS.ReadFile("content/" + topic + ".md")
	if err != nil {
		return "", false
	}
	return string(b), true
}
