// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package tui

import (
	"fmt"
	"sort"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/MKhiriev/go-applicant-desk/internal/service"
)

// formField is one labelled input. key is the backend field name used to
// attach validation messages.
type formField struct {
	key   string
	label string
	input textinput.Model
}

func newField(key, label, placeholder string) formField {
	in := textinput.New()
	in.Placeholder = placeholder
	in.Width = 40
	in.CharLimit = 256
	return formField{key: key, label: label, input: in}
}

func newSecretField(key, label, placeholder string) formField {
	f := newField(key, label, placeholder)
	f.input.EchoMode = textinput.EchoPassword
	f.input.EchoCharacter = '*'
	return f
}

// form is a vertical list of inputs with per-field error messages.
type form struct {
	fields    []formField
	focus     int
	fieldErrs map[string][]string
}

func newForm(fields ...formField) form {
	f := form{fields: fields}
	if len(f.fields) > 0 {
		f.fields[0].input.Focus()
	}
	return f
}

func (f *form) index(key string) int {
	for i := range f.fields {
		if f.fields[i].key == key {
			return i
		}
	}
	return -1
}

func (f *form) value(key string) string {
	if i := f.index(key); i >= 0 {
		return f.fields[i].input.Value()
	}
	return ""
}

func (f *form) trimmed(key string) string {
	return strings.TrimSpace(f.value(key))
}

func (f *form) setValue(key, v string) {
	if i := f.index(key); i >= 0 {
		f.fields[i].input.SetValue(v)
	}
}

func (f *form) next() {
	f.fields[f.focus].input.Blur()
	f.focus = (f.focus + 1) % len(f.fields)
	f.fields[f.focus].input.Focus()
}

func (f *form) prev() {
	f.fields[f.focus].input.Blur()
	f.focus = (f.focus - 1 + len(f.fields)) % len(f.fields)
	f.fields[f.focus].input.Focus()
}

// reset clears every value and error and focuses the first input.
func (f *form) reset() {
	for i := range f.fields {
		f.fields[i].input.SetValue("")
		f.fields[i].input.Blur()
	}
	f.focus = 0
	f.fieldErrs = nil
	if len(f.fields) > 0 {
		f.fields[0].input.Focus()
	}
}

// setErrors keeps the field errors carried by err, if any.
func (f *form) setErrors(err error) {
	f.fieldErrs = service.FieldErrors(err)
}

func (f *form) update(msg tea.Msg) tea.Cmd {
	var cmd tea.Cmd
	f.fields[f.focus].input, cmd = f.fields[f.focus].input.Update(msg)
	return cmd
}

func (f *form) view() string {
	labelWidth := 0
	for _, field := range f.fields {
		if w := lipgloss.Width(field.label); w > labelWidth {
			labelWidth = w
		}
	}

	var b strings.Builder
	for _, field := range f.fields {
		b.WriteString(fmt.Sprintf("%-*s │ [%s]\n", labelWidth, field.label, field.input.View()))
		for _, msg := range f.fieldErrs[field.key] {
			b.WriteString(fmt.Sprintf("%-*s │ %s\n", labelWidth, "", fieldErrorStyle.Render(msg)))
		}
	}

	// Messages for keys without an input, such as non_field_errors.
	var other []string
	for key := range f.fieldErrs {
		if f.index(key) < 0 {
			other = append(other, key)
		}
	}
	sort.Strings(other)
	for _, key := range other {
		for _, msg := range f.fieldErrs[key] {
			b.WriteString(fieldErrorStyle.Render(key + ": " + msg))
			b.WriteString("\n")
		}
	}

	return strings.TrimRight(b.String(), "\n")
}
