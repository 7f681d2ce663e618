package engine

import (
	"fmt"
	"strings"
)

// Metadata carries the authorship and licensing annotations of a module.
// The host only displays it.
type Metadata struct {
	Name         string       `json:"name"`
	Description  string       `json:"description"`
	Author       string       `json:"author"`
	Email        string       `json:"email,omitempty"`
	Address      string       `json:"address,omitempty"`
	Copyright    string       `json:"copyright,omitempty"`
	MainURL      string       `json:"main_url,omitempty"`
	SupportURL   string       `json:"support_url,omitempty"`
	OtherURL     string       `json:"other_url,omitempty"`
	License      string       `json:"license,omitempty"`
	Distribution string       `json:"distribution,omitempty"`
	Restrictions string       `json:"restrictions,omitempty"`
	Mapping      VideoMapping `json:"mapping"`
}

// String renders the metadata as "key: value" lines, skipping empty values.
func (m Metadata) String() string {
	var b strings.Builder
	line := func(k, v string) {
		if v != "" {
			fmt.Fprintf(&b, "%s: %s\n", k, v)
		}
	}
	line("Module", m.Name)
	line("Description", m.Description)
	if m.Mapping.Module != "" {
		line("Video mapping", m.Mapping.String())
	}
	line("Author", m.Author)
	line("Email", m.Email)
	line("Address", m.Address)
	line("Copyright", m.Copyright)
	line("Main URL", m.MainURL)
	line("Support URL", m.SupportURL)
	line("Other URL", m.OtherURL)
	line("License", m.License)
	line("Distribution", m.Distribution)
	line("Restrictions", m.Restrictions)
	return strings.TrimRight(b.String(), "\n")
}
