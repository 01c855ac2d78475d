package settings

import (
	"fmt"
	"strconv"
)

// Kind tells a form how to edit a field.
type Kind int

const (
	Toggle Kind = iota
	Text
	Color
)

func (k Kind) String() string {
	switch k {
	case Toggle:
		return "toggle"
	case Text:
		return "text"
	case Color:
		return "color"
	}
	return "unknown"
}

// Field describes one user-editable setting.
type Field struct {
	Key         string
	Name        string
	Description string
	Kind        Kind
	// Placeholder is shown by text inputs when the value is empty.
	Placeholder string

	get func(*Settings) string
	set func(*Settings, string) error
}

// Get returns the field's current value formatted as a string.
func (f Field) Get(s *Settings) string {
	return f.get(s)
}

// Set stores raw into the field. Toggles accept anything strconv.ParseBool
// does; text and color values are stored verbatim.
func (f Field) Set(s *Settings, raw string) error {
	return f.set(s, raw)
}

func toggleField(key, name, desc string, p func(*Settings) *bool) Field {
	return Field{
		Key:         key,
		Name:        name,
		Description: desc,
		Kind:        Toggle,
		get:         func(s *Settings) string { return strconv.FormatBool(*p(s)) },
		set: func(s *Settings, raw string) error {
			v, err := strconv.ParseBool(raw)
			if err != nil {
				return fmt.Errorf("settings: %s expects true or false, got %q", key, raw)
			}
			*p(s) = v
			return nil
		},
	}
}

func textField(key, name, desc string, kind Kind, placeholder string, p func(*Settings) *string) Field {
	return Field{
		Key:         key,
		Name:        name,
		Description: desc,
		Kind:        kind,
		Placeholder: placeholder,
		get:         func(s *Settings) string { return *p(s) },
		set: func(s *Settings, raw string) error {
			*p(s) = raw
			return nil
		},
	}
}

// Fields returns the editable settings in display order.
func Fields() []Field {
	d := Defaults()
	fields := []Field{
		toggleField("printTitle", "Print note title",
			"Include the note title in the printout.",
			func(s *Settings) *bool { return &s.PrintTitle }),
		textField("fontSize", "Font size",
			"Set the font size for the printed note.", Text, d.FontSize,
			func(s *Settings) *string { return &s.FontSize }),
	}
	for level := 1; level <= Levels; level++ {
		fields = append(fields, textField(
			fmt.Sprintf("h%dSize", level),
			fmt.Sprintf("Heading %d size", level),
			fmt.Sprintf("Set the size for <h%d> elements.", level),
			Text, d.HeadingSize(level),
			func(s *Settings) *string { return s.sizeField(level) }))
	}
	for level := 1; level <= Levels; level++ {
		fields = append(fields, textField(
			fmt.Sprintf("h%dColor", level),
			fmt.Sprintf("Heading %d color", level),
			fmt.Sprintf("Set the color for <h%d> elements.", level),
			Color, d.HeadingColor(level),
			func(s *Settings) *string { return s.colorField(level) }))
	}
	fields = append(fields,
		toggleField("combineFolderNotes", "Combine folder notes",
			"When printing a folder, combine all notes into a single document. If disabled, each note will start on a new page.",
			func(s *Settings) *bool { return &s.CombineFolderNotes }),
		toggleField("hrPageBreaks", "Treat horizontal lines as page breaks",
			"Interpret horizontal lines (---) as page breaks.",
			func(s *Settings) *bool { return &s.HRPageBreaks }),
	)
	return fields
}

// Lookup returns the field with the given key.
func Lookup(key string) (Field, bool) {
	for _, f := range Fields() {
		if f.Key == key {
			return f, true
		}
	}
	return Field{}, false
}

// Set assigns raw to the setting named key.
func (s *Settings) Set(key, raw string) error {
	f, ok := Lookup(key)
	if !ok {
		return fmt.Errorf("settings: unknown key %q", key)
	}
	return f.Set(s, raw)
}

// Get returns the string form of the setting named key.
func (s *Settings) Get(key string) (string, error) {
	f, ok := Lookup(key)
	if !ok {
		return "", fmt.Errorf("settings: unknown key %q", key)
	}
	return f.Get(s), nil
}
