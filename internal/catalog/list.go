package catalog

import (
	"context"
	"fmt"

	"wfcatalog/internal/workflow"
)

// CompanionCheck records what was learned about a UI file's API companion.
// The companion's existence alone marks the entry as API; the check only
// tells whether its content was confirmed.
type CompanionCheck string

const (
	CompanionValidated CompanionCheck = "validated"
	CompanionTrusted   CompanionCheck = "trusted"
)

// Entry is the listing record of one workflow file.
type Entry struct {
	workflow.Metadata
	Filename       string         `json:"filename"`
	IsAPI          bool           `json:"is_api"`
	RawURL         string         `json:"raw_url"`
	TemplateURL    string         `json:"template_url"`
	Companion      string         `json:"companion,omitempty"`
	CompanionCheck CompanionCheck `json:"companion_check,omitempty"`
	Error          bool           `json:"error,omitempty"`
}

// List returns one entry per *.json file in the root, ordered by name.
// Unreadable or malformed files produce a degraded entry instead of an error.
func (c *Catalog) List(ctx context.Context) ([]Entry, error) {
	names, err := c.root.Glob("*.json")
	if err != nil {
		return nil, fmt.Errorf("list workflows: %w", err)
	}
	present := make(map[string]bool, len(names))
	for _, name := range names {
		present[name] = true
	}

	entries := make([]Entry, 0, len(names))
	for _, name := range names {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		entries = append(entries, c.entry(name, present))
	}
	return entries, nil
}

func (c *Catalog) entry(name string, present map[string]bool) Entry {
	doc, err := c.load(name)
	if err != nil {
		return c.degradedEntry(name, err)
	}

	e := Entry{
		Metadata:    workflow.MetadataFor(name, doc),
		Filename:    name,
		IsAPI:       workflow.IsAPIGraph(doc) || workflow.IsAPIName(name),
		RawURL:      c.WorkflowURL(name, FormatRaw),
		TemplateURL: c.WorkflowURL(name, FormatAPI),
	}
	if e.IsAPI {
		return e
	}
	companion := workflow.CompanionName(name)
	if !present[companion] {
		return e
	}
	e.IsAPI = true
	e.Companion = companion
	e.CompanionCheck = c.checkCompanion(companion)
	e.TemplateURL = c.WorkflowURL(companion, FormatAPI)
	return e
}

func (c *Catalog) checkCompanion(name string) CompanionCheck {
	doc, err := c.load(name)
	switch {
	case err != nil:
		logf("companion %s unreadable, trusting its name: %v", name, err)
		return CompanionTrusted
	case !workflow.IsAPIGraph(doc):
		logf("companion %s is not an API graph, trusting its name", name)
		return CompanionTrusted
	default:
		return CompanionValidated
	}
}

func (c *Catalog) degradedEntry(name string, err error) Entry {
	stem := workflow.Stem(name)
	return Entry{
		Metadata: workflow.Metadata{
			ID:          stem,
			Title:       stem,
			Description: fmt.Sprintf("Failed to parse: %v", err),
			Tags:        []string{},
		},
		Filename:    name,
		RawURL:      c.WorkflowURL(name, FormatRaw),
		TemplateURL: c.WorkflowURL(name, FormatAPI),
		Error:       true,
	}
}
