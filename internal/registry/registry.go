// Package registry holds the declarative table of accounting concepts and
// detail breakdowns the parsers search for.
package registry

import (
	_ "embed"
	"fmt"
	"os"
	"regexp"
	"strings"

	"github.com/go-playground/validator/v10"
	"golang.org/x/text/unicode/norm"
	"gopkg.in/yaml.v3"
)

//go:embed mappings.yaml
var defaultMappings []byte

// DetailMode selects how a detail breakdown is scanned.
type DetailMode string

const (
	// ModeSection captures item rows between a parent row and a stop row.
	ModeSection DetailMode = "section"
	// ModeDirect captures every item row.
	ModeDirect DetailMode = "direct"
	// ModeCategories assigns rows to fixed labels.
	ModeCategories DetailMode = "categories"
)

// Concept is one P&L line item.
type Concept struct {
	Name     string   `yaml:"name" validate:"required"`
	Patterns []string `yaml:"patterns" validate:"required,min=1,dive,required"`
	Sign     int      `yaml:"sign" validate:"oneof=-1 1"`
	Required bool     `yaml:"required"`
	Default  float64  `yaml:"default"`

	compiled []*regexp.Regexp
}

// Match reports whether text names this concept.
func (c *Concept) Match(text string) bool {
	return MatchConcept(text, c.compiled)
}

// Category maps rows matching Pattern to a fixed Label.
type Category struct {
	Pattern string `yaml:"pattern" validate:"required"`
	Label   string `yaml:"label" validate:"required"`

	re *regexp.Regexp
}

// Match reports whether label falls in this category.
func (c *Category) Match(label string) bool {
	return c.re.MatchString(label)
}

// Detail is a sub-breakdown of a P&L concept, read from the concept column.
type Detail struct {
	Name       string     `yaml:"name" validate:"required"`
	Mode       DetailMode `yaml:"mode" validate:"oneof=section direct categories"`
	Parent     string     `yaml:"parent" validate:"required_if=Mode section"`
	Item       string     `yaml:"item" validate:"required_unless=Mode categories"`
	Stop       string     `yaml:"stop" validate:"required_if=Mode section"`
	Categories []Category `yaml:"categories" validate:"required_if=Mode categories,dive"`

	parent, item, stop *regexp.Regexp
}

// OpensSection reports whether label is the parent row of a section.
func (d *Detail) OpensSection(label string) bool {
	return d.parent != nil && d.parent.MatchString(norm.NFC.String(label))
}

// ClosesSection reports whether label ends an open section.
func (d *Detail) ClosesSection(label string) bool {
	return d.stop != nil && d.stop.MatchString(norm.NFC.String(label))
}

// ItemName returns the display name of an item row: the label without the
// matched item prefix, from the first space on. ok is false when label is
// not an item row.
func (d *Detail) ItemName(label string) (name string, ok bool) {
	if d.item == nil {
		return "", false
	}
	label = norm.NFC.String(strings.TrimSpace(label))
	loc := d.item.FindStringIndex(label)
	if loc == nil {
		return "", false
	}
	name = strings.TrimSpace(label[loc[1]:])
	if i := strings.IndexByte(name, ' '); i >= 0 {
		name = strings.TrimSpace(name[i+1:])
	}
	if name == "" {
		name = label
	}
	return name, true
}

// Category returns the label of the first category that matches, or "".
func (d *Detail) Category(label string) string {
	label = norm.NFC.String(label)
	for i := range d.Categories {
		if d.Categories[i].Match(label) {
			return d.Categories[i].Label
		}
	}
	return ""
}

// BalanceConcept assigns balance rows containing Marker to Name.
type BalanceConcept struct {
	Name      string   `yaml:"name" validate:"required"`
	Marker    string   `yaml:"marker" validate:"required"`
	Excludes  []string `yaml:"excludes"`
	KeepFirst bool     `yaml:"keep_first"`
}

// Match reports whether row text, already passed through Normalize, carries
// this concept.
func (c *BalanceConcept) Match(text string) bool {
	if !strings.Contains(text, c.Marker) {
		return false
	}
	for _, ex := range c.Excludes {
		if strings.Contains(text, ex) {
			return false
		}
	}
	return true
}

// Marker maps rows containing a fixed substring to a label.
type Marker struct {
	Marker string `yaml:"marker" validate:"required"`
	Label  string `yaml:"label" validate:"required"`
}

// BalanceDetail is a breakdown of balance rows by account code.
type BalanceDetail struct {
	Name       string   `yaml:"name" validate:"required"`
	Columns    []string `yaml:"columns" validate:"required,min=1"`
	FoldCase   bool     `yaml:"fold_case"`
	Categories []Marker `yaml:"categories" validate:"required,min=1,dive"`
}

// Category returns the label of the first marker found in text, or "".
func (d *BalanceDetail) Category(text string) string {
	text = norm.NFC.String(text)
	if d.FoldCase {
		text = strings.ToLower(text)
	}
	for _, m := range d.Categories {
		if strings.Contains(text, m.Marker) {
			return m.Label
		}
	}
	return ""
}

// Balance holds the balance sheet definitions.
type Balance struct {
	Columns  []string         `yaml:"columns" validate:"required,min=1"`
	Concepts []BalanceConcept `yaml:"concepts" validate:"required,min=1,unique=Name,dive"`
	Details  []BalanceDetail  `yaml:"details" validate:"unique=Name,dive"`
}

// Registry is the full, compiled definition table. It is read-only after
// Parse returns and safe for concurrent use.
type Registry struct {
	Concepts []Concept `yaml:"concepts" validate:"required,min=1,unique=Name,dive"`
	Details  []Detail  `yaml:"details" validate:"unique=Name,dive"`
	Balance  Balance   `yaml:"balance"`
}

// Concept returns the definition named name, or nil.
func (r *Registry) Concept(name string) *Concept {
	for i := range r.Concepts {
		if r.Concepts[i].Name == name {
			return &r.Concepts[i]
		}
	}
	return nil
}

// Default returns the registry embedded in the binary.
func Default() (*Registry, error) {
	return Parse(defaultMappings)
}

// Load reads a registry file, or returns the embedded one when path is "".
func Load(path string) (*Registry, error) {
	if path == "" {
		return Default()
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading registry %s: %w", path, err)
	}
	return Parse(data)
}

// Parse decodes, validates and compiles a YAML registry.
func Parse(data []byte) (*Registry, error) {
	var r Registry
	if err := yaml.Unmarshal(data, &r); err != nil {
		return nil, fmt.Errorf("decoding registry: %w", err)
	}
	if err := validator.New().Struct(&r); err != nil {
		return nil, fmt.Errorf("invalid registry: %w", err)
	}
	if err := r.compile(); err != nil {
		return nil, err
	}
	return &r, nil
}

func (r *Registry) compile() error {
	for i := range r.Concepts {
		c := &r.Concepts[i]
		for _, p := range c.Patterns {
			re, err := regexp.Compile("(?i)" + p)
			if err != nil {
				return fmt.Errorf("concept %s: pattern %q: %w", c.Name, p, err)
			}
			c.compiled = append(c.compiled, re)
		}
	}

	for i := range r.Details {
		d := &r.Details[i]
		var err error
		if d.parent, err = compileOptional(d.Parent); err != nil {
			return fmt.Errorf("detail %s: parent: %w", d.Name, err)
		}
		if d.item, err = compileOptional(d.Item); err != nil {
			return fmt.Errorf("detail %s: item: %w", d.Name, err)
		}
		if d.stop, err = compileOptional(d.Stop); err != nil {
			return fmt.Errorf("detail %s: stop: %w", d.Name, err)
		}
		for j := range d.Categories {
			c := &d.Categories[j]
			if c.re, err = regexp.Compile(c.Pattern); err != nil {
				return fmt.Errorf("detail %s: category %q: %w", d.Name, c.Label, err)
			}
		}
	}

	// Balance markers are compared against normalized text.
	for i := range r.Balance.Concepts {
		c := &r.Balance.Concepts[i]
		c.Marker = Normalize(c.Marker)
		for j, ex := range c.Excludes {
			c.Excludes[j] = Normalize(ex)
		}
	}
	for i := range r.Balance.Details {
		d := &r.Balance.Details[i]
		for j := range d.Categories {
			m := norm.NFC.String(d.Categories[j].Marker)
			if d.FoldCase {
				m = strings.ToLower(m)
			}
			d.Categories[j].Marker = m
		}
	}
	return nil
}

func compileOptional(pattern string) (*regexp.Regexp, error) {
	if pattern == "" {
		return nil, nil
	}
	return regexp.Compile(pattern)
}

// Normalize returns text in NFC form, trimmed and lower-cased, which is the
// form concept patterns and balance markers are matched against.
func Normalize(text string) string {
	return strings.ToLower(strings.TrimSpace(norm.NFC.String(text)))
}

// MatchConcept reports whether any of patterns matches anywhere in the
// normalized text.
func MatchConcept(text string, patterns []*regexp.Regexp) bool {
	text = Normalize(text)
	if text == "" {
		return false
	}
	for _, re := range patterns {
		if re.MatchString(text) {
			return true
		}
	}
	return false
}
