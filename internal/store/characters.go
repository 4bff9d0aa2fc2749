package store

import (
	"encoding/json"
	"slices"
	"strings"
)

// NotAvailable is reported in place of a character list when a role has none.
const NotAvailable = "N/A"

// Characters is the parsed form of a roles.characters column. The zero value
// means no character data and marshals to "N/A".
type Characters struct {
	Names []string
}

// Available reports whether any character names are present.
func (c Characters) Available() bool {
	return len(c.Names) > 0
}

// String joins the names for console output.
func (c Characters) String() string {
	if !c.Available() {
		return NotAvailable
	}
	return strings.Join(c.Names, ", ")
}

// MarshalJSON writes the names as an array, or the N/A sentinel.
func (c Characters) MarshalJSON() ([]byte, error) {
	if !c.Available() {
		return json.Marshal(NotAvailable)
	}
	return json.Marshal(c.Names)
}

// ParseCharacters decodes the legacy serialized list stored in
// roles.characters, e.g. `['Bane', 'Ivan']`. Anything it cannot make sense of
// degrades to the N/A sentinel; it never fails.
func ParseCharacters(raw string) Characters {
	s := strings.NewReplacer(`'`, "", `"`, "").Replace(raw)
	s = strings.TrimSpace(s)
	s = strings.TrimPrefix(s, "[")
	s = strings.TrimSuffix(s, "]")

	var names []string
	for _, part := range strings.Split(s, ",") {
		name := strings.TrimSpace(part)
		if name == "" {
			continue
		}
		names = append(names, name)
	}
	return Characters{Names: names}
}

// CharacterCredit pairs a title with the characters played in it.
type CharacterCredit struct {
	Title      string     `json:"title"`
	Characters Characters `json:"characters"`
}

// MergeByTitle collapses credits into one entry per title. Rows sharing a
// title are merged in order with exact duplicates dropped; N/A only survives
// when no row for that title carries names.
func MergeByTitle(credits []CharacterCredit) map[string]Characters {
	out := make(map[string]Characters, len(credits))
	for _, cr := range credits {
		cur := out[cr.Title]
		for _, name := range cr.Characters.Names {
			if !slices.Contains(cur.Names, name) {
				cur.Names = append(cur.Names, name)
			}
		}
		out[cr.Title] = cur
	}
	return out
}
