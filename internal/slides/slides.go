// Package slides loads the content shown on carousel cards.
package slides

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	toml "github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"
)

// ErrNoSlides is returned when a source holds no usable slide.
var ErrNoSlides = errors.New("no slides")

// Slide is one card of the carousel.
type Slide struct {
	Title string `yaml:"title" toml:"title"`
	Body  string `yaml:"body" toml:"body"`
}

// String returns the title, or the first body line when there is none.
func (s Slide) String() string {
	if s.Title != "" {
		return s.Title
	}
	line, _, _ := strings.Cut(s.Body, "\n")
	return line
}

type document struct {
	Slides []Slide `yaml:"slides" toml:"slides"`
}

// Load reads slides from path. The format follows the extension: .yaml and
// .yml for YAML, .toml for TOML, anything else is plain text.
func Load(path string) ([]Slide, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read slides: %w", err)
	}

	var out []Slide
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		out, err = parseYAML(data)
	case ".toml":
		out, err = parseTOML(data)
	default:
		out = ParseText(string(data))
	}
	if err != nil {
		return nil, fmt.Errorf("parse slides %s: %w", filepath.Base(path), err)
	}

	out = normalize(out)
	if len(out) == 0 {
		return nil, fmt.Errorf("%s: %w", filepath.Base(path), ErrNoSlides)
	}
	return out, nil
}

// FromArgs turns command-line arguments into slides. An argument may carry
// a body after the first "|" or newline.
func FromArgs(args []string) []Slide {
	out := make([]Slide, 0, len(args))
	for _, arg := range args {
		title, body, _ := strings.Cut(arg, "|")
		if !strings.Contains(arg, "|") {
			title, body, _ = strings.Cut(arg, "\n")
		}
		out = append(out, Slide{Title: title, Body: body})
	}
	return normalize(out)
}

// ParseText splits text into slides on blank lines. The first line of each
// paragraph is the title.
func ParseText(text string) []Slide {
	text = strings.ReplaceAll(text, "\r\n", "\n")
	var out []Slide
	var para []string
	flush := func() {
		if len(para) == 0 {
			return
		}
		out = append(out, Slide{Title: para[0], Body: strings.Join(para[1:], "\n")})
		para = nil
	}
	for _, line := range strings.Split(text, "\n") {
		if strings.TrimSpace(line) == "" {
			flush()
			continue
		}
		para = append(para, strings.TrimRight(line, " \t"))
	}
	flush()
	return normalize(out)
}

// parseYAML accepts a bare sequence of slides or a mapping with a slides key.
func parseYAML(data []byte) ([]Slide, error) {
	var node yaml.Node
	if err := yaml.Unmarshal(data, &node); err != nil {
		return nil, err
	}
	if len(node.Content) == 0 {
		return nil, nil
	}
	root := node.Content[0]
	if root.Kind == yaml.SequenceNode {
		var list []Slide
		if err := root.Decode(&list); err != nil {
			return nil, err
		}
		return list, nil
	}
	var doc document
	if err := root.Decode(&doc); err != nil {
		return nil, err
	}
	return doc.Slides, nil
}

func parseTOML(data []byte) ([]Slide, error) {
	var doc document
	if err := toml.Unmarshal(data, &doc); err != nil {
		return nil, err
	}
	return doc.Slides, nil
}

func normalize(in []Slide) []Slide {
	out := in[:0]
	for _, s := range in {
		s.Title = strings.TrimSpace(s.Title)
		s.Body = strings.TrimSpace(s.Body)
		if s.Title == "" && s.Body == "" {
			continue
		}
		out = append(out, s)
	}
	return out
}
