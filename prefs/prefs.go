// Package prefs persists the dashboard language preference to a small file.
package prefs

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
)

// DefaultLanguage is used when nothing valid is stored.
const DefaultLanguage = "en"

var supported = map[string]bool{
	"en": true,
	"az": true,
	"ru": true,
}

// Supported reports whether lang is a selectable interface language.
func Supported(lang string) bool {
	return supported[lang]
}

// Store is a file-backed language preference. A missing or invalid stored
// value reads as DefaultLanguage.
type Store struct {
	mu   sync.Mutex
	path string
}

func NewStore(path string) *Store {
	return &Store{path: path}
}

// Language returns the stored preference, degrading to the default on any
// read problem or unsupported value.
func (s *Store) Language() string {
	s.mu.Lock()
	defer s.mu.Unlock()

	data, err := os.ReadFile(s.path)
	if err != nil {
		return DefaultLanguage
	}
	lang := strings.ToLower(strings.TrimSpace(string(data)))
	if !supported[lang] {
		return DefaultLanguage
	}
	return lang
}

// SetLanguage validates and persists the preference.
func (s *Store) SetLanguage(lang string) error {
	lang = strings.ToLower(strings.TrimSpace(lang))
	if !supported[lang] {
		return fmt.Errorf("unsupported language %q", lang)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if dir := filepath.Dir(s.path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create preference dir: %w", err)
		}
	}
	if err := os.WriteFile(s.path, []byte(lang+"\n"), 0o644); err != nil {
		return fmt.Errorf("write preference: %w", err)
	}
	return nil
}
