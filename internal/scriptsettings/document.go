package scriptsettings

import (
	"encoding/xml"
	"strconv"
	"strings"
)

// suppressOptionName is the wire name of the suppress-definitions-check
// flag. Flag options default to false and are omitted when false.
const suppressOptionName = "suppressDefinitionsCheck"

// Document is the tree form of the store, as persisted in
// .sctl/scripting.xml. The schema is declared statically through struct
// tags so the on-disk format does not depend on Go field names. Child
// values are carried as strings: restoring a malformed document degrades
// field by field to defaults instead of failing to decode.
type Document struct {
	XMLName     xml.Name            `xml:"ScriptingSettings"`
	Options     []OptionElement     `xml:"option"`
	Definitions []DefinitionElement `xml:"scriptDefinition"`
}

// OptionElement records one named boolean flag.
type OptionElement struct {
	Name  string `xml:"name,attr"`
	Value string `xml:"value,attr"`
}

// DefinitionElement is the persisted form of one definition entry. The
// isEnabled child is present only when false and the
// autoReloadConfigurations child only when true; omission means the
// default.
type DefinitionElement struct {
	ClassName      string `xml:"className,attr"`
	DefinitionName string `xml:"definitionName,attr"`
	Order          string `xml:"order,omitempty"`
	IsEnabled      string `xml:"isEnabled,omitempty"`
	AutoReload     string `xml:"autoReloadConfigurations,omitempty"`
}

// CaptureState snapshots the store into a Document. Default-valued fields
// are omitted: the option element appears only when the suppress flag is
// set, isEnabled only when false, autoReloadConfigurations only when true.
// The snapshot has no side effects; capturing twice without intervening
// mutation yields identical documents.
func (s *Store) CaptureState() *Document {
	s.mu.RLock()
	defer s.mu.RUnlock()

	doc := &Document{}
	if s.suppress {
		doc.Options = append(doc.Options, OptionElement{
			Name:  suppressOptionName,
			Value: "true",
		})
	}
	for _, key := range s.keys {
		entry := s.entries[key]
		el := DefinitionElement{
			ClassName:      key.ClassName,
			DefinitionName: key.DefinitionName,
			Order:          strconv.Itoa(entry.Order),
		}
		if !entry.Enabled {
			el.IsEnabled = "false"
		}
		if entry.AutoReload {
			el.AutoReload = "true"
		}
		doc.Definitions = append(doc.Definitions, el)
	}
	return doc
}

// RestoreState merges doc into the store. Entries in doc overwrite stored
// entries with the same key; stored entries absent from doc are left
// alone, and the suppress flag only changes when the option is present and
// parseable. Missing or unparsable fields fall back to their defaults
// (order DefaultOrder, enabled, no auto-reload); restoring never fails.
func (s *Store) RestoreState(doc *Document) {
	if doc == nil {
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	for _, opt := range doc.Options {
		if opt.Name != suppressOptionName {
			continue
		}
		if v, err := strconv.ParseBool(strings.TrimSpace(opt.Value)); err == nil {
			s.suppress = v
		}
	}

	for _, el := range doc.Definitions {
		key := DefinitionKey{
			DefinitionName: el.DefinitionName,
			ClassName:      el.ClassName,
		}
		entry := defaultSettings()
		if n, err := strconv.Atoi(strings.TrimSpace(el.Order)); err == nil {
			entry.Order = n
		}
		if v, err := strconv.ParseBool(strings.TrimSpace(el.IsEnabled)); err == nil {
			entry.Enabled = v
		}
		if v, err := strconv.ParseBool(strings.TrimSpace(el.AutoReload)); err == nil {
			entry.AutoReload = v
		}
		if _, ok := s.entries[key]; !ok {
			s.keys = append(s.keys, key)
		}
		s.entries[key] = entry
	}
}
