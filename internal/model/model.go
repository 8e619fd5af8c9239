// Package model defines the data types shared across release-name packages.
package model

import (
	"errors"
	"fmt"
	"time"
)

// ErrInvalidKind is returned when a word kind token is not recognized.
var ErrInvalidKind = errors.New("invalid word kind")

// Kind is a word class in the dictionary.
type Kind int

const (
	Noun Kind = iota
	Adjective
	Adverb
)

// String returns the short label used in listings.
func (k Kind) String() string {
	switch k {
	case Noun:
		return "noun"
	case Adjective:
		return "adj"
	case Adverb:
		return "adv"
	}
	return fmt.Sprintf("Kind(%d)", int(k))
}

// Plural returns the long label, which is also the word list file stem.
func (k Kind) Plural() string {
	switch k {
	case Noun:
		return "nouns"
	case Adjective:
		return "adjectives"
	case Adverb:
		return "adverbs"
	}
	return k.String()
}

// ParseKind accepts both the long and the short label of a kind.
func ParseKind(s string) (Kind, error) {
	switch s {
	case "n", "noun", "nouns":
		return Noun, nil
	case "adj", "adjective", "adjectives":
		return Adjective, nil
	case "adv", "adverb", "adverbs":
		return Adverb, nil
	}
	return 0, fmt.Errorf("%w: %q", ErrInvalidKind, s)
}

func (k Kind) MarshalText() ([]byte, error) {
	return []byte(k.String()), nil
}

func (k *Kind) UnmarshalText(b []byte) error {
	v, err := ParseKind(string(b))
	if err != nil {
		return err
	}
	*k = v
	return nil
}

// Entry is one word of a dictionary together with its position.
type Entry struct {
	Kind  Kind   `json:"kind"`
	Word  string `json:"word"`
	Index int    `json:"index"`
}

// Name is a generated release name and the sha it came from.
type Name struct {
	Name string `json:"name"`
	SHA  string `json:"sha"`
}

// BulkNames maps each requested sha to its name, or null when the sha could
// not be resolved.
type BulkNames struct {
	Names map[string]*string `json:"names"`
}

// Response is the JSON envelope returned by the HTTP API.
type Response[T any] struct {
	Data T `json:"data"`
}

// Release is a release name recorded against a sha within a namespace.
type Release struct {
	ID         string     `json:"id"`
	NS         string     `json:"ns"`
	SHA        string     `json:"sha"`
	Name       string     `json:"name"`
	Case       string     `json:"case"`
	Version    int        `json:"version"`
	Supersedes string     `json:"supersedes,omitempty"`
	CreatedAt  time.Time  `json:"created_at"`
	DeletedAt  *time.Time `json:"deleted_at,omitempty"`
}
