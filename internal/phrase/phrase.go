// Package phrase builds adverb-adjective-noun release names from hex
// identifiers and renders them in a selectable case.
package phrase

import (
	"github.com/rcliao/git-release-name/internal/dictionary"
	"github.com/rcliao/git-release-name/internal/model"
	"github.com/rcliao/git-release-name/internal/sha"
)

// Phrase is a resolved adverb, adjective and noun plus the case used to
// render them. Phrase values are immutable; WithCase returns a copy.
type Phrase struct {
	adverb    string
	adjective string
	noun      string
	format    Case
}

// WithCase returns a copy of p rendered with c.
func (p Phrase) WithCase(c Case) Phrase {
	p.format = c
	return p
}

func (p Phrase) Adverb() string    { return p.adverb }
func (p Phrase) Adjective() string { return p.adjective }
func (p Phrase) Noun() string      { return p.noun }
func (p Phrase) Case() Case        { return p.format }

// Render formats the three words according to the phrase's case.
func (p Phrase) Render() string {
	return p.format.apply([]string{p.adverb, p.adjective, p.noun})
}

func (p Phrase) String() string {
	return p.Render()
}

// Resolver looks phrases up in a shared dictionary.
type Resolver struct {
	dict *dictionary.Dictionary
}

// NewResolver returns a Resolver over dict. The dictionary is referenced,
// not copied, and must not be modified afterwards.
func NewResolver(dict *dictionary.Dictionary) *Resolver {
	return &Resolver{dict: dict}
}

// Resolve parses input as a hex identifier and looks up its phrase. The
// phrase is rendered in Lower case until WithCase says otherwise.
func (r *Resolver) Resolve(input string) (Phrase, error) {
	key, err := sha.Parse(input)
	if err != nil {
		return Phrase{}, err
	}
	return r.ResolveKey(key)
}

// ResolveKey looks up the phrase for an already parsed key.
func (r *Resolver) ResolveKey(key sha.Key) (Phrase, error) {
	f := key.Fields()

	adv, err := r.dict.Word(model.Adverb, f.Adverb)
	if err != nil {
		return Phrase{}, err
	}
	adj, err := r.dict.Word(model.Adjective, f.Adjective)
	if err != nil {
		return Phrase{}, err
	}
	noun, err := r.dict.Word(model.Noun, f.Noun)
	if err != nil {
		return Phrase{}, err
	}

	return Phrase{adverb: adv, adjective: adj, noun: noun, format: Lower}, nil
}
