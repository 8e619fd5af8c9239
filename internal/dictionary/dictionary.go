// Package dictionary holds the adverb, adjective and noun word lists that
// release names are drawn from.
package dictionary

import (
	"bufio"
	"embed"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path"
	"strings"
	"sync"

	"github.com/rcliao/git-release-name/internal/model"
)

var (
	// ErrEmptyDictionary is returned when a word class has no entries.
	ErrEmptyDictionary = errors.New("empty dictionary")
	// ErrDuplicateWord is returned when a word list repeats a word.
	ErrDuplicateWord = errors.New("duplicate word")
	// ErrBlankWord is returned when a list passed to New holds a blank entry.
	ErrBlankWord = errors.New("blank word")
)

//go:embed words/*.txt
var builtin embed.FS

// Dictionary is an immutable set of word lists. It is safe for concurrent use.
type Dictionary struct {
	adverbs    []string
	adjectives []string
	nouns      []string
}

// New validates the three lists and returns a Dictionary referencing copies
// of them. Words are trimmed. Each list must be non-empty and free of
// duplicates and blank entries, so index i always names the caller's i-th word.
func New(adverbs, adjectives, nouns []string) (*Dictionary, error) {
	d := &Dictionary{
		adverbs:    clean(adverbs),
		adjectives: clean(adjectives),
		nouns:      clean(nouns),
	}
	for _, k := range []model.Kind{model.Adverb, model.Adjective, model.Noun} {
		if err := validate(k, d.words(k)); err != nil {
			return nil, err
		}
	}
	return d, nil
}

var defaultDict = sync.OnceValue(func() *Dictionary {
	d, err := LoadFS(builtin, "words")
	if err != nil {
		panic(fmt.Sprintf("built-in dictionary: %v", err))
	}
	return d
})

// Default returns the built-in dictionary.
func Default() *Dictionary {
	return defaultDict()
}

// LoadDir reads adverbs.txt, adjectives.txt and nouns.txt from dir.
func LoadDir(dir string) (*Dictionary, error) {
	return LoadFS(os.DirFS(dir), ".")
}

// LoadFS reads the three word list files from dir within fsys.
func LoadFS(fsys fs.FS, dir string) (*Dictionary, error) {
	lists := make(map[model.Kind][]string, 3)
	for _, k := range []model.Kind{model.Adverb, model.Adjective, model.Noun} {
		name := path.Join(dir, k.Plural()+".txt")
		f, err := fsys.Open(name)
		if err != nil {
			return nil, fmt.Errorf("open %s: %w", name, err)
		}
		words, err := readWords(f)
		f.Close()
		if err != nil {
			return nil, fmt.Errorf("read %s: %w", name, err)
		}
		lists[k] = words
	}
	return New(lists[model.Adverb], lists[model.Adjective], lists[model.Noun])
}

// Resolve maps index onto words, wrapping with a modulus so any index is
// valid for a non-empty list. Distinct indexes may therefore share a word
// when the list is shorter than the index range.
func Resolve(index uint32, words []string) (string, error) {
	if len(words) == 0 {
		return "", ErrEmptyDictionary
	}
	return words[int(index%uint32(len(words)))], nil
}

// Word resolves index against the list for kind.
func (d *Dictionary) Word(kind model.Kind, index uint32) (string, error) {
	w, err := Resolve(index, d.words(kind))
	if err != nil {
		return "", fmt.Errorf("%s: %w", kind.Plural(), err)
	}
	return w, nil
}

// Len returns the number of words of the given kind.
func (d *Dictionary) Len(kind model.Kind) int {
	return len(d.words(kind))
}

// List enumerates the entries of the requested kinds in the order given.
// With no kinds it lists nouns, adverbs, then adjectives.
func (d *Dictionary) List(kinds ...model.Kind) []model.Entry {
	if len(kinds) == 0 {
		kinds = []model.Kind{model.Noun, model.Adverb, model.Adjective}
	}
	var entries []model.Entry
	for _, k := range kinds {
		for i, w := range d.words(k) {
			entries = append(entries, model.Entry{Kind: k, Word: w, Index: i})
		}
	}
	return entries
}

func (d *Dictionary) words(kind model.Kind) []string {
	if d == nil {
		return nil
	}
	switch kind {
	case model.Adverb:
		return d.adverbs
	case model.Adjective:
		return d.adjectives
	case model.Noun:
		return d.nouns
	}
	return nil
}

func validate(kind model.Kind, words []string) error {
	if len(words) == 0 {
		return fmt.Errorf("%s: %w", kind.Plural(), ErrEmptyDictionary)
	}
	seen := make(map[string]struct{}, len(words))
	for i, w := range words {
		if w == "" {
			return fmt.Errorf("%s: %w at index %d", kind.Plural(), ErrBlankWord, i)
		}
		if _, ok := seen[w]; ok {
			return fmt.Errorf("%s: %w: %q", kind.Plural(), ErrDuplicateWord, w)
		}
		seen[w] = struct{}{}
	}
	return nil
}

// clean copies words with surrounding whitespace trimmed.
func clean(words []string) []string {
	out := make([]string, len(words))
	for i, w := range words {
		out[i] = strings.TrimSpace(w)
	}
	return out
}

func readWords(r io.Reader) ([]string, error) {
	var words []string
	sc := bufio.NewScanner(r)
	for sc.Scan() {
		line := strings.TrimSpace(sc.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		words = append(words, line)
	}
	return words, sc.Err()
}
