package identity

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"unicode"

	"github.com/goccy/go-yaml"
	"golang.org/x/text/cases"
	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// ErrInvalidConfig is returned for unusable normalization documents.
var ErrInvalidConfig = errors.New("invalid normalization config")

// Rule replaces From with To.
type Rule struct {
	From string `yaml:"from"`
	To   string `yaml:"to"`
}

// NormalizationConfig drives the name normalization stages. Each stage can be
// switched off independently.
type NormalizationConfig struct {
	CollapseWhitespace bool `yaml:"collapse_whitespace"`
	FoldCase           bool `yaml:"fold_case"`
	StripPunctuation   bool `yaml:"strip_punctuation"`
	Transliterate      bool `yaml:"transliterate"`
	CollapsePrefixes   bool `yaml:"collapse_prefixes"`

	// Punctuation lists the strings removed by punctuation stripping.
	Punctuation []string `yaml:"punctuation"`
	// Transliterations are applied before accents are decomposed and dropped.
	Transliterations []Rule `yaml:"transliterations"`
	// Prefixes map surname prefix token sequences to a fused token.
	Prefixes []Rule `yaml:"prefixes"`
}

// DefaultNormalizationConfig is used when no document is configured.
func DefaultNormalizationConfig() NormalizationConfig {
	return NormalizationConfig{
		CollapseWhitespace: true,
		FoldCase:           true,
		StripPunctuation:   true,
		Transliterate:      true,
		CollapsePrefixes:   true,
		Punctuation:        []string{"'", "’", ".", "-"},
		Transliterations: []Rule{
			{From: "ß", To: "ss"},
			{From: "æ", To: "ae"},
			{From: "œ", To: "oe"},
			{From: "ø", To: "o"},
			{From: "ł", To: "l"},
			{From: "đ", To: "d"},
			{From: "þ", To: "th"},
		},
		Prefixes: []Rule{
			{From: "de la", To: "dela"},
			{From: "van der", To: "vander"},
			{From: "mac", To: "mc"},
		},
	}
}

// LoadNormalizationConfig reads a YAML normalization document. Keys absent
// from the document keep their default values; a missing file or an empty
// path yields the defaults.
func LoadNormalizationConfig(path string) (NormalizationConfig, error) {
	cfg := DefaultNormalizationConfig()
	if path == "" {
		return cfg, nil
	}

	data, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return cfg, nil
	}
	if err != nil {
		return cfg, fmt.Errorf("failed to read %s: %w", path, err)
	}
	var doc normalizationDocument
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return cfg, fmt.Errorf("%w: %s: %v", ErrInvalidConfig, path, err)
	}
	cfg = doc.apply(cfg)
	return cfg, cfg.Validate()
}

// normalizationDocument is the on-disk form; nil fields keep the defaults.
type normalizationDocument struct {
	CollapseWhitespace *bool    `yaml:"collapse_whitespace"`
	FoldCase           *bool    `yaml:"fold_case"`
	StripPunctuation   *bool    `yaml:"strip_punctuation"`
	Transliterate      *bool    `yaml:"transliterate"`
	CollapsePrefixes   *bool    `yaml:"collapse_prefixes"`
	Punctuation        []string `yaml:"punctuation"`
	Transliterations   []Rule   `yaml:"transliterations"`
	Prefixes           []Rule   `yaml:"prefixes"`
}

func (d normalizationDocument) apply(cfg NormalizationConfig) NormalizationConfig {
	setBool := func(dst *bool, src *bool) {
		if src != nil {
			*dst = *src
		}
	}
	setBool(&cfg.CollapseWhitespace, d.CollapseWhitespace)
	setBool(&cfg.FoldCase, d.FoldCase)
	setBool(&cfg.StripPunctuation, d.StripPunctuation)
	setBool(&cfg.Transliterate, d.Transliterate)
	setBool(&cfg.CollapsePrefixes, d.CollapsePrefixes)
	if d.Punctuation != nil {
		cfg.Punctuation = d.Punctuation
	}
	if d.Transliterations != nil {
		cfg.Transliterations = d.Transliterations
	}
	if d.Prefixes != nil {
		cfg.Prefixes = d.Prefixes
	}
	return cfg
}

// Validate rejects rules that cannot be applied.
func (c NormalizationConfig) Validate() error {
	for _, p := range c.Punctuation {
		if p == "" {
			return fmt.Errorf("%w: empty punctuation entry", ErrInvalidConfig)
		}
	}
	for _, r := range c.Transliterations {
		if r.From == "" {
			return fmt.Errorf("%w: transliteration with empty source", ErrInvalidConfig)
		}
	}
	for _, r := range c.Prefixes {
		if len(strings.Fields(r.From)) == 0 || len(strings.Fields(r.To)) != 1 {
			return fmt.Errorf("%w: prefix %q -> %q must map tokens to one token", ErrInvalidConfig, r.From, r.To)
		}
	}
	return nil
}

type prefixRule struct {
	from []string
	to   string
}

// Normalizer canonicalizes person names. It is safe for concurrent use.
type Normalizer struct {
	cfg      NormalizationConfig
	punct    *strings.Replacer
	translit *strings.Replacer
	prefixes []prefixRule
}

// NewNormalizer validates cfg and prepares its tables.
func NewNormalizer(cfg NormalizationConfig) (*Normalizer, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	n := &Normalizer{cfg: cfg}

	pairs := make([]string, 0, 2*len(cfg.Punctuation))
	for _, p := range cfg.Punctuation {
		pairs = append(pairs, p, "")
	}
	n.punct = strings.NewReplacer(pairs...)

	pairs = make([]string, 0, 2*len(cfg.Transliterations))
	for _, r := range cfg.Transliterations {
		pairs = append(pairs, r.From, r.To)
	}
	n.translit = strings.NewReplacer(pairs...)

	for _, r := range cfg.Prefixes {
		n.prefixes = append(n.prefixes, prefixRule{from: strings.Fields(r.From), to: r.To})
	}
	return n, nil
}

// Normalize applies the enabled stages in order: whitespace collapse, case
// folding, punctuation stripping, transliteration to ASCII, and surname
// prefix collapse. Normalize(Normalize(x)) == Normalize(x).
func (n *Normalizer) Normalize(name string) string {
	s := strings.TrimSpace(name)
	if n.cfg.CollapseWhitespace {
		s = collapse(s)
	}
	if n.cfg.FoldCase {
		s = cases.Fold().String(s)
	}
	if n.cfg.StripPunctuation {
		s = n.punct.Replace(s)
	}
	if n.cfg.Transliterate {
		s = n.toASCII(s)
	}
	if n.cfg.CollapsePrefixes {
		s = n.collapsePrefixes(s)
	}
	if n.cfg.CollapseWhitespace {
		s = collapse(s)
	}
	return strings.TrimSpace(s)
}

func (n *Normalizer) toASCII(s string) string {
	s = n.translit.Replace(s)
	t := transform.Chain(
		norm.NFD,
		runes.Remove(runes.In(unicode.Mn)),
		runes.Remove(runes.Predicate(func(r rune) bool { return r > unicode.MaxASCII })),
	)
	out, _, err := transform.String(t, s)
	if err != nil {
		return s
	}
	return out
}

func (n *Normalizer) collapsePrefixes(s string) string {
	tokens := strings.Fields(s)
	if len(tokens) == 0 || len(n.prefixes) == 0 {
		return s
	}
	out := make([]string, 0, len(tokens))
	for i := 0; i < len(tokens); {
		matched := false
		for _, p := range n.prefixes {
			if hasTokens(tokens[i:], p.from) {
				out = append(out, p.to)
				i += len(p.from)
				matched = true
				break
			}
		}
		if !matched {
			out = append(out, tokens[i])
			i++
		}
	}
	return strings.Join(out, " ")
}

func hasTokens(tokens, prefix []string) bool {
	if len(tokens) < len(prefix) {
		return false
	}
	for i, p := range prefix {
		if tokens[i] != p {
			return false
		}
	}
	return true
}

func collapse(s string) string {
	return strings.Join(strings.Fields(s), " ")
}

// Variants returns the lookup spellings of a name: the trimmed original, the
// normalized form, the normalized form without spaces, first initial plus last
// name, and first name plus last initial. Empty and duplicate spellings are
// dropped; order is stable.
func (n *Normalizer) Variants(name string) []string {
	original := strings.TrimSpace(name)
	normalized := n.Normalize(original)

	set := newOrderedSet()
	set.add(original)
	set.add(normalized)
	set.add(strings.ReplaceAll(normalized, " ", ""))

	if parts := strings.Fields(normalized); len(parts) >= 2 {
		first, last := parts[0], parts[len(parts)-1]
		set.add(firstRune(first) + " " + last)
		set.add(first + " " + firstRune(last))
	}
	return set.items
}

// TeamKeys returns every member1/member2 variant pair joined by sep, in both
// name orders.
func (n *Normalizer) TeamKeys(member1, member2, sep string) []string {
	v1, v2 := n.Variants(member1), n.Variants(member2)
	set := newOrderedSet()
	for _, a := range v1 {
		for _, b := range v2 {
			set.add(a + sep + b)
			set.add(b + sep + a)
		}
	}
	return set.items
}

func firstRune(s string) string {
	for _, r := range s {
		return string(r)
	}
	return ""
}

type orderedSet struct {
	seen  map[string]struct{}
	items []string
}

func newOrderedSet() *orderedSet {
	return &orderedSet{seen: make(map[string]struct{})}
}

func (s *orderedSet) add(v string) {
	if v == "" {
		return
	}
	if _, ok := s.seen[v]; ok {
		return
	}
	s.seen[v] = struct{}{}
	s.items = append(s.items, v)
}
