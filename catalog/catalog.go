// Package catalog loads the local services catalog and turns it into the
// system prompt used by the bot endpoint.
package catalog

import (
	_ "embed"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/fwojciec/locallink"
	"gopkg.in/yaml.v3"
)

// Intro opens every system prompt.
const Intro = "You are LocalLink, a helpful AI that connects users to local services."

//go:embed catalog.yaml
var defaultYAML string

type fileDTO struct {
	Services []serviceDTO `yaml:"services"`
	FAQs     []faqDTO     `yaml:"faqs"`
}

type serviceDTO struct {
	Name     string       `yaml:"name"`
	Packages []packageDTO `yaml:"packages"`
}

type packageDTO struct {
	Name        string `yaml:"name"`
	Description string `yaml:"description"`
}

type faqDTO struct {
	Topic  string `yaml:"topic"`
	Answer string `yaml:"answer"`
}

// Default returns the built-in catalog.
func Default() locallink.Catalog {
	cat, err := Parse(strings.NewReader(defaultYAML))
	if err != nil {
		panic(fmt.Sprintf("catalog: embedded catalog is invalid: %v", err))
	}
	return cat
}

// Load reads a catalog from a YAML file.
func Load(path string) (locallink.Catalog, error) {
	f, err := os.Open(path)
	if err != nil {
		return locallink.Catalog{}, fmt.Errorf("catalog: open: %w", err)
	}
	defer f.Close()
	return Parse(f)
}

// Parse decodes a catalog from YAML. Every service needs a name and at
// least one package, and every FAQ needs a topic and an answer.
func Parse(r io.Reader) (locallink.Catalog, error) {
	var dto fileDTO
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&dto); err != nil {
		if errors.Is(err, io.EOF) {
			return locallink.Catalog{}, errors.New("catalog: empty document")
		}
		return locallink.Catalog{}, fmt.Errorf("catalog: decode: %w", err)
	}

	var cat locallink.Catalog
	for i, s := range dto.Services {
		if strings.TrimSpace(s.Name) == "" {
			return locallink.Catalog{}, fmt.Errorf("catalog: service %d: missing name", i)
		}
		if len(s.Packages) == 0 {
			return locallink.Catalog{}, fmt.Errorf("catalog: service %q: no packages", s.Name)
		}
		svc := locallink.ServiceCategory{Name: s.Name}
		for j, p := range s.Packages {
			if strings.TrimSpace(p.Name) == "" {
				return locallink.Catalog{}, fmt.Errorf("catalog: service %q package %d: missing name", s.Name, j)
			}
			svc.Packages = append(svc.Packages, locallink.ServicePackage{Name: p.Name, Description: p.Description})
		}
		cat.Services = append(cat.Services, svc)
	}
	for i, f := range dto.FAQs {
		if strings.TrimSpace(f.Topic) == "" || strings.TrimSpace(f.Answer) == "" {
			return locallink.Catalog{}, fmt.Errorf("catalog: faq %d: topic and answer are required", i)
		}
		cat.FAQs = append(cat.FAQs, locallink.FAQ{Topic: f.Topic, Answer: f.Answer})
	}
	return cat, nil
}

// Prompt builds the system prompt for cat. An empty catalog yields Intro
// alone.
func Prompt(cat locallink.Catalog) string {
	var b strings.Builder
	b.WriteString(Intro)
	if len(cat.Services) > 0 {
		b.WriteString("\n\nAvailable services:\n")
		for _, s := range cat.Services {
			fmt.Fprintf(&b, "- %s:\n", s.Name)
			for _, p := range s.Packages {
				fmt.Fprintf(&b, "  - %s: %s\n", p.Name, p.Description)
			}
		}
	}
	if len(cat.FAQs) > 0 {
		b.WriteString("\nFrequently asked questions:\n")
		for _, f := range cat.FAQs {
			fmt.Fprintf(&b, "- %s: %s\n", f.Topic, f.Answer)
		}
	}
	return strings.TrimRight(b.String(), "\n")
}
