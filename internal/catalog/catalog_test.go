package catalog_test

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/playperu/arcade/internal/catalog"
)

func TestDefault(t *testing.T) {
	rounds := catalog.Default()
	if len(rounds) != 10 {
		t.Fatalf("expected 10 heroes, got %d", len(rounds))
	}
	if rounds[0].Subject != "Noah" || rounds[0].Emoji != "🚢" {
		t.Errorf("first round = %+v, want Noah 🚢", rounds[0])
	}
	if len(rounds[0].Clues) != 3 || rounds[0].Clues[2] != "I saw a rainbow in the sky." {
		t.Errorf("unexpected clues: %v", rounds[0].Clues)
	}
}

func TestParseErrors(t *testing.T) {
	tests := []struct {
		name    string
		src     string
		wantErr string
	}{
		{
			name:    "syntax",
			src:     `round "Noah" {`,
			wantErr: "parsing catalog",
		},
		{
			name:    "missing options",
			src:     `round "Noah" { clues = ["a", "b", "c"] }`,
			wantErr: "decoding catalog",
		},
		{
			name:    "empty",
			src:     ``,
			wantErr: "no rounds",
		},
		{
			name: "subject not offered",
			src: `round "Noah" {
  clues   = ["a", "b", "c"]
  options = ["Moses", "David", "Jonah", "Paul"]
}`,
			wantErr: "does not offer its own subject",
		},
		{
			name: "duplicate round",
			src: `round "Noah" {
  clues   = ["a", "b", "c"]
  options = ["Noah", "David", "Jonah", "Paul"]
}
round "Noah" {
  clues   = ["a", "b", "c"]
  options = ["Noah", "David", "Jonah", "Paul"]
}`,
			wantErr: "defined twice",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := catalog.Parse("test.hcl", []byte(tt.src))
			if err == nil {
				t.Fatal("expected an error")
			}
			if !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("error %q does not mention %q", err, tt.wantErr)
			}
		})
	}
}

func TestLoadFileAndReplace(t *testing.T) {
	src := `round "Ruth" {
  emoji   = "🌾"
  clues   = ["I gleaned in the fields.", "I stayed with Naomi.", "I married Boaz."]
  options = ["Ruth", "Esther", "Mary", "Sarah"]
}
`
	path := filepath.Join(t.TempDir(), "ruth.hcl")
	if err := os.WriteFile(path, []byte(src), 0o644); err != nil {
		t.Fatalf("writing catalog: %v", err)
	}

	rounds, raw, err := catalog.LoadFile(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}

	c := catalog.NewDefault()
	c.Replace(rounds, raw)

	if got := c.Rounds(); len(got) != 1 || got[0].Subject != "Ruth" {
		t.Errorf("rounds after replace = %+v", got)
	}
	if string(c.Source()) != src {
		t.Errorf("source not kept")
	}
}
