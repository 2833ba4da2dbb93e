package source

import (
	"context"
	"fmt"

	"github.com/tesso57/gazette/internal/domain/news"
)

// Binding resolves one section name to the adapter that produces it.
type Binding struct {
	Adapter Adapter
	Section string
}

// Registry maps section names to adapters. All lookups are resolved
// once at construction; misconfigured entries are collected rather
// than fatal so the reader can start with whatever remains valid.
type Registry struct {
	physical  []string
	bindings  map[string]Binding
	metas     map[string][]string
	metaNames []string
	errs      []*news.ConfigError
}

// Build wires adapters and meta-section definitions into a registry.
// Adapters are registered in the given order, so the default source
// should come first. metaOrder fixes the presentation order of metas.
func Build(adapters []Adapter, metas map[string][]string, metaOrder []string) *Registry {
	r := &Registry{
		bindings: make(map[string]Binding),
		metas:    make(map[string][]string),
	}
	for _, a := range adapters {
		for _, sec := range a.Sections() {
			if prev, dup := r.bindings[sec]; dup {
				r.errs = append(r.errs, &news.ConfigError{
					Name:   sec,
					Reason: fmt.Sprintf("section already provided by source %q", prev.Adapter.Name()),
				})
				continue
			}
			r.bindings[sec] = Binding{Adapter: a, Section: sec}
			r.physical = append(r.physical, sec)
		}
	}
	for _, name := range metaOrder {
		if prev, clash := r.bindings[name]; clash {
			r.errs = append(r.errs, &news.ConfigError{
				Name:   name,
				Reason: fmt.Sprintf("meta-section name collides with a %q section", prev.Adapter.Name()),
			})
			continue
		}
		valid := make([]string, 0, len(metas[name]))
		seen := make(map[string]bool, len(metas[name]))
		for _, constituent := range metas[name] {
			if seen[constituent] {
				continue
			}
			seen[constituent] = true
			if _, ok := r.bindings[constituent]; !ok {
				r.errs = append(r.errs, &news.ConfigError{
					Name:   name,
					Reason: fmt.Sprintf("unknown section %q", constituent),
				})
				continue
			}
			valid = append(valid, constituent)
		}
		if len(valid) == 0 {
			r.errs = append(r.errs, &news.ConfigError{
				Name:   name,
				Reason: "no valid sections remain",
			})
			continue
		}
		r.metas[name] = valid
		r.metaNames = append(r.metaNames, name)
	}
	return r
}

// Resolve returns the binding for a physical section.
func (r *Registry) Resolve(name string) (Binding, bool) {
	b, ok := r.bindings[name]
	return b, ok
}

// PhysicalSections lists the fetchable sections in presentation order.
func (r *Registry) PhysicalSections() []string {
	out := make([]string, len(r.physical))
	copy(out, r.physical)
	return out
}

// MetaSections lists the valid meta-section names in presentation order.
func (r *Registry) MetaSections() []string {
	out := make([]string, len(r.metaNames))
	copy(out, r.metaNames)
	return out
}

// Constituents returns the validated member sections of a meta-section.
func (r *Registry) Constituents(name string) ([]string, bool) {
	members, ok := r.metas[name]
	if !ok {
		return nil, false
	}
	out := make([]string, len(members))
	copy(out, members)
	return out, true
}

// IsMeta reports whether name is a valid meta-section.
func (r *Registry) IsMeta(name string) bool {
	_, ok := r.metas[name]
	return ok
}

// Expand maps a selection to the physical sections that must be
// fetched to satisfy it. Meta-sections expand to their constituents;
// unknown names are dropped. The result is deduplicated in order.
func (r *Registry) Expand(selection []string) []string {
	seen := make(map[string]bool, len(selection))
	out := make([]string, 0, len(selection))
	add := func(sec string) {
		if !seen[sec] {
			seen[sec] = true
			out = append(out, sec)
		}
	}
	for _, name := range selection {
		if members, ok := r.metas[name]; ok {
			for _, sec := range members {
				add(sec)
			}
			continue
		}
		if _, ok := r.bindings[name]; ok {
			add(name)
		}
	}
	return out
}

// Fetch dispatches a section fetch to its bound adapter and returns
// adapter failures already classified.
func (r *Registry) Fetch(ctx context.Context, section string) ([]news.Story, error) {
	b, ok := r.bindings[section]
	if !ok {
		return nil, &news.FetchError{
			Kind:    news.ErrParse,
			Section: section,
			Err:     fmt.Errorf("no source bound for section %q", section),
		}
	}
	stories, err := b.Adapter.Fetch(ctx, b.Section)
	if err != nil {
		return nil, Classify(section, err)
	}
	return stories, nil
}

// Content loads a story's full body through the adapter that owns the
// story's section.
func (r *Registry) Content(ctx context.Context, story news.Story) (string, error) {
	b, ok := r.bindings[story.Section]
	if !ok {
		return "", &news.FetchError{
			Kind:    news.ErrParse,
			Section: story.Section,
			Err:     fmt.Errorf("no source bound for section %q", story.Section),
		}
	}
	fetcher, ok := b.Adapter.(ContentFetcher)
	if !ok {
		return "", &news.FetchError{
			Kind:    news.ErrParse,
			Section: story.Section,
			Err:     fmt.Errorf("source %q cannot load story bodies", b.Adapter.Name()),
		}
	}
	content, err := fetcher.FetchContent(ctx, story)
	if err != nil {
		return "", Classify(story.Section, err)
	}
	return content, nil
}

// Errors returns the misconfigurations collected during Build. They
// are meant to be reported once at startup.
func (r *Registry) Errors() []*news.ConfigError {
	return r.errs
}
