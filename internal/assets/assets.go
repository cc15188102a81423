// Package assets serves the free-text prompt assets shipped next to the
// binary. Lookups never fail: a missing or unreadable file degrades to the
// empty string.
package assets

import (
	"os"
	"path/filepath"
	"strings"
)

type Library struct {
	root string
}

func NewLibrary(root string) *Library {
	return &Library{root: root}
}

// DifficultyPrompt returns the auxiliary instruction text for a difficulty
// name. Names are lowercased; path separators are rejected by cleaning the
// name down to its base element.
func (l *Library) DifficultyPrompt(name string) string {
	name = strings.ToLower(strings.TrimSpace(name))
	if name == "" {
		return ""
	}
	return l.read(filepath.Join("difficulty", filepath.Base(name)+".txt"))
}

// ReactionsPrompt returns the system prompt for the population-reactions
// pass.
func (l *Library) ReactionsPrompt() string {
	return l.read(filepath.Join("prompts", "reactions.txt"))
}

// ChatPrompt returns the persona instruction for diplomatic chat replies.
func (l *Library) ChatPrompt() string {
	return l.read(filepath.Join("prompts", "chat.txt"))
}

func (l *Library) read(rel string) string {
	b, err := os.ReadFile(filepath.Join(l.root, rel))
	if err != nil {
		return ""
	}
	return strings.TrimSpace(string(b))
}
