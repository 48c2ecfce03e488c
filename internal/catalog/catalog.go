// Package catalog loads quiz rounds from HCL files.
package catalog

import (
	_ "embed"
	"fmt"
	"os"
	"slices"
	"sync"

	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclparse"

	"github.com/playperu/arcade/internal/quiz"
)

//go:embed heroes.hcl
var heroesHCL []byte

// DefaultFilename names the embedded catalog in diagnostics.
const DefaultFilename = "heroes.hcl"

// fileRoot is the top-level shape of a catalog file.
type fileRoot struct {
	Rounds []*roundBlock `hcl:"round,block"`
}

type roundBlock struct {
	Subject string   `hcl:"subject,label"`
	Emoji   string   `hcl:"emoji,optional"`
	Clues   []string `hcl:"clues"`
	Options []string `hcl:"options"`
}

// Parse decodes src and validates every round. filename only labels
// diagnostics.
func Parse(filename string, src []byte) ([]quiz.Round, error) {
	parser := hclparse.NewParser()
	file, diags := parser.ParseHCL(src, filename)
	if diags.HasErrors() {
		return nil, fmt.Errorf("parsing catalog %s: %w", filename, diags)
	}

	var root fileRoot
	if diags := gohcl.DecodeBody(file.Body, nil, &root); diags.HasErrors() {
		return nil, fmt.Errorf("decoding catalog %s: %w", filename, diags)
	}
	if len(root.Rounds) == 0 {
		return nil, fmt.Errorf("catalog %s has no rounds", filename)
	}

	rounds := make([]quiz.Round, 0, len(root.Rounds))
	seen := make(map[string]struct{}, len(root.Rounds))
	for _, b := range root.Rounds {
		if _, dup := seen[b.Subject]; dup {
			return nil, fmt.Errorf("catalog %s: round %q defined twice", filename, b.Subject)
		}
		seen[b.Subject] = struct{}{}

		r := quiz.Round{Subject: b.Subject, Emoji: b.Emoji, Clues: b.Clues, Options: b.Options}
		if err := r.Validate(); err != nil {
			return nil, fmt.Errorf("catalog %s: %w", filename, err)
		}
		rounds = append(rounds, r)
	}
	return rounds, nil
}

// LoadFile parses the catalog at path.
func LoadFile(path string) ([]quiz.Round, []byte, error) {
	src, err := os.ReadFile(path)
	if err != nil {
		return nil, nil, fmt.Errorf("reading catalog: %w", err)
	}
	rounds, err := Parse(path, src)
	if err != nil {
		return nil, nil, err
	}
	return rounds, src, nil
}

// Default returns the embedded Bible Heroes rounds.
func Default() []quiz.Round {
	rounds, err := Parse(DefaultFilename, heroesHCL)
	if err != nil {
		panic(fmt.Sprintf("embedded catalog: %v", err))
	}
	return rounds
}

// DefaultSource is the raw embedded catalog.
func DefaultSource() []byte {
	return slices.Clone(heroesHCL)
}

// Catalog is the active round set, swapped atomically on upload.
type Catalog struct {
	mu     sync.RWMutex
	rounds []quiz.Round
	src    []byte
}

func New(rounds []quiz.Round, src []byte) *Catalog {
	return &Catalog{rounds: rounds, src: src}
}

// NewDefault wraps the embedded catalog.
func NewDefault() *Catalog {
	return New(Default(), DefaultSource())
}

// Rounds returns the current set. Callers must not modify it; quiz.New
// copies before shuffling.
func (c *Catalog) Rounds() []quiz.Round {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.rounds
}

func (c *Catalog) Source() []byte {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return slices.Clone(c.src)
}

func (c *Catalog) Replace(rounds []quiz.Round, src []byte) {
	c.mu.Lock()
	c.rounds = rounds
	c.src = slices.Clone(src)
	c.mu.Unlock()
}
