/*
Copyright 2026 Chainguard, Inc.
SPDX-License-Identifier: Apache-2.0
*/

// Package promptbuilder assembles judge prompts from templates with
// {{name}} placeholders. Bindings are applied immutably, with structured
// values marshaled as XML or JSON so untrusted answer text stays delimited
// inside the prompt. Build fails on unbound placeholders, which keeps
// prompt/struct drift a construction-time error rather than a bad API call.
package promptbuilder

import (
	"encoding/json"
	"encoding/xml"
	"fmt"
	"maps"
	"regexp"
)

var placeholderPattern = regexp.MustCompile(`\{\{([a-zA-Z][a-zA-Z0-9_]*)\}\}`)

// Prompt is a template with named placeholders awaiting bindings.
type Prompt struct {
	template string
	bound    map[string]string
	names    map[string]struct{}
}

// Bindable is implemented by request types that know how to bind their
// fields into a prompt template.
type Bindable interface {
	Bind(prompt *Prompt) (*Prompt, error)
}

// NewPrompt parses a template and records its placeholder names.
func NewPrompt(template string) (*Prompt, error) {
	names := make(map[string]struct{})
	for _, m := range placeholderPattern.FindAllStringSubmatch(template, -1) {
		names[m[1]] = struct{}{}
	}
	if len(names) == 0 {
		return nil, fmt.Errorf("template has no placeholders")
	}
	return &Prompt{
		template: template,
		bound:    make(map[string]string),
		names:    names,
	}, nil
}

// MustNewPrompt is NewPrompt for package-level prompt variables.
func MustNewPrompt(template string) *Prompt {
	p, err := NewPrompt(template)
	if err != nil {
		panic(err)
	}
	return p
}

// BindText binds a plain string value to a placeholder.
func (p *Prompt) BindText(name, value string) (*Prompt, error) {
	return p.bind(name, value)
}

// BindXML marshals data as indented XML and binds it to a placeholder.
// XML framing keeps model-supplied text visibly delimited in the prompt.
func (p *Prompt) BindXML(name string, data any) (*Prompt, error) {
	b, err := xml.MarshalIndent(data, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshaling %q as XML: %w", name, err)
	}
	return p.bind(name, string(b))
}

// BindJSON marshals data as indented JSON and binds it to a placeholder.
func (p *Prompt) BindJSON(name string, data any) (*Prompt, error) {
	b, err := json.MarshalIndent(data, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshaling %q as JSON: %w", name, err)
	}
	return p.bind(name, string(b))
}

func (p *Prompt) bind(name, value string) (*Prompt, error) {
	if _, ok := p.names[name]; !ok {
		return nil, fmt.Errorf("unknown placeholder %q", name)
	}
	if _, ok := p.bound[name]; ok {
		return nil, fmt.Errorf("placeholder %q already bound", name)
	}
	next := &Prompt{
		template: p.template,
		bound:    maps.Clone(p.bound),
		names:    p.names,
	}
	next.bound[name] = value
	return next, nil
}

// Build substitutes all bindings and returns the final prompt text.
// Every placeholder must be bound.
func (p *Prompt) Build() (string, error) {
	for name := range p.names {
		if _, ok := p.bound[name]; !ok {
			return "", fmt.Errorf("unbound placeholder: %s", name)
		}
	}
	return placeholderPattern.ReplaceAllStringFunc(p.template, func(m string) string {
		name := placeholderPattern.FindStringSubmatch(m)[1]
		return p.bound[name]
	}), nil
}
