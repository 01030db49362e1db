package scriptsettings

import (
	"reflect"
	"strconv"
	"testing"
)

func TestCaptureState_EmptyStore(t *testing.T) {
	doc := NewStore().CaptureState()

	if len(doc.Options) != 0 {
		t.Errorf("empty store captured %d option elements, want 0", len(doc.Options))
	}
	if len(doc.Definitions) != 0 {
		t.Errorf("empty store captured %d scriptDefinition elements, want 0", len(doc.Definitions))
	}
}

func TestCaptureState_DefaultOmission(t *testing.T) {
	s := NewStore()
	s.SetEnabled(5, defA, true) // re-affirming the default
	s.SetEnabled(6, defB, false)

	doc := s.CaptureState()
	if len(doc.Definitions) != 2 {
		t.Fatalf("captured %d definitions, want 2", len(doc.Definitions))
	}

	if got := doc.Definitions[0].IsEnabled; got != "" {
		t.Errorf("isEnabled = %q for enabled definition, want omitted", got)
	}
	if got := doc.Definitions[1].IsEnabled; got != "false" {
		t.Errorf("isEnabled = %q for disabled definition, want \"false\"", got)
	}

	// autoReloadConfigurations is symmetric: omitted when false, present when true.
	for _, el := range doc.Definitions {
		if el.AutoReload != "" {
			t.Errorf("autoReloadConfigurations = %q, want omitted when false", el.AutoReload)
		}
	}
	s.SetAutoReload(5, defA, true)
	doc = s.CaptureState()
	if got := doc.Definitions[0].AutoReload; got != "true" {
		t.Errorf("autoReloadConfigurations = %q, want \"true\"", got)
	}
}

func TestCaptureState_SuppressFlagOmittedWhenFalse(t *testing.T) {
	s := NewStore()
	s.SetOrder(defA, 1)

	if doc := s.CaptureState(); len(doc.Options) != 0 {
		t.Errorf("captured %d option elements with flag unset, want 0", len(doc.Options))
	}

	s.SetSuppressDefinitionsCheck(true)
	doc := s.CaptureState()
	if len(doc.Options) != 1 {
		t.Fatalf("captured %d option elements with flag set, want 1", len(doc.Options))
	}
	if doc.Options[0].Name != "suppressDefinitionsCheck" || doc.Options[0].Value != "true" {
		t.Errorf("option = %+v", doc.Options[0])
	}
}

func TestCaptureState_Idempotent(t *testing.T) {
	s := NewStore()
	s.SetEnabled(5, defA, false)
	s.SetAutoReload(2, defB, true)
	s.SetSuppressDefinitionsCheck(true)

	first := s.CaptureState()
	second := s.CaptureState()
	if !reflect.DeepEqual(first, second) {
		t.Errorf("capturing twice produced different documents:\n%+v\n%+v", first, second)
	}
}

func TestRestoreState_RoundTrip(t *testing.T) {
	s := NewStore()
	s.SetOrder(defA, 1)
	s.SetEnabled(2, defB, false)
	s.SetAutoReload(2, defB, true)
	s.SetSuppressDefinitionsCheck(true)

	fresh := NewStore()
	fresh.RestoreState(s.CaptureState())

	for _, def := range []DefinitionKey{defA, defB} {
		if got, want := fresh.Settings(def), s.Settings(def); got != want {
			t.Errorf("Settings(%v) = %+v after round trip, want %+v", def, got, want)
		}
	}
	if !fresh.SuppressDefinitionsCheck() {
		t.Error("suppress flag lost in round trip")
	}
	if !reflect.DeepEqual(fresh.Keys(), s.Keys()) {
		t.Errorf("Keys() = %v after round trip, want %v", fresh.Keys(), s.Keys())
	}
}

func TestRestoreState_Additive(t *testing.T) {
	s := NewStore()
	s.SetOrder(defA, 1)

	doc := &Document{
		Definitions: []DefinitionElement{
			{ClassName: defB.ClassName, DefinitionName: defB.DefinitionName, Order: "2"},
		},
	}
	s.RestoreState(doc)

	// Pre-existing entry not present in the document survives.
	if order, ok := s.Order(defA); !ok || order != 1 {
		t.Errorf("Order(defA) = %d, %v after restore, want 1, true", order, ok)
	}
	if order, ok := s.Order(defB); !ok || order != 2 {
		t.Errorf("Order(defB) = %d, %v after restore, want 2, true", order, ok)
	}
}

func TestRestoreState_OverwritesMatchingKey(t *testing.T) {
	s := NewStore()
	s.SetEnabled(1, defA, false)

	doc := &Document{
		Definitions: []DefinitionElement{
			{ClassName: defA.ClassName, DefinitionName: defA.DefinitionName, Order: "9"},
		},
	}
	s.RestoreState(doc)

	// The document entry replaces the stored record wholesale; its missing
	// isEnabled child means enabled.
	if !s.Enabled(defA) {
		t.Error("Enabled(defA) = false after restoring entry without isEnabled, want true")
	}
	if order, _ := s.Order(defA); order != 9 {
		t.Errorf("Order(defA) = %d, want 9", order)
	}
}

func TestRestoreState_MalformedFieldsFallBackToDefaults(t *testing.T) {
	tests := []struct {
		name string
		el   DefinitionElement
		want DefinitionSettings
	}{
		{
			name: "missing everything",
			el:   DefinitionElement{ClassName: "c", DefinitionName: "n"},
			want: DefinitionSettings{Order: DefaultOrder, Enabled: true},
		},
		{
			name: "garbage order",
			el:   DefinitionElement{ClassName: "c", DefinitionName: "n", Order: "not-a-number"},
			want: DefinitionSettings{Order: DefaultOrder, Enabled: true},
		},
		{
			name: "garbage booleans",
			el:   DefinitionElement{ClassName: "c", DefinitionName: "n", Order: "4", IsEnabled: "maybe", AutoReload: "yes?"},
			want: DefinitionSettings{Order: 4, Enabled: true},
		},
		{
			name: "whitespace-padded values",
			el:   DefinitionElement{ClassName: "c", DefinitionName: "n", Order: "\n  12\n", IsEnabled: " false "},
			want: DefinitionSettings{Order: 12, Enabled: false},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := NewStore()
			s.RestoreState(&Document{Definitions: []DefinitionElement{tt.el}})
			key := DefinitionKey{DefinitionName: tt.el.DefinitionName, ClassName: tt.el.ClassName}
			if got := s.Settings(key); got != tt.want {
				t.Errorf("Settings() = %+v, want %+v", got, tt.want)
			}
		})
	}
}

func TestRestoreState_SuppressFlag(t *testing.T) {
	s := NewStore()
	s.RestoreState(&Document{Options: []OptionElement{{Name: "suppressDefinitionsCheck", Value: "true"}}})
	if !s.SuppressDefinitionsCheck() {
		t.Error("suppress flag not restored from option element")
	}

	// Unparseable value leaves the current state unchanged.
	s.RestoreState(&Document{Options: []OptionElement{{Name: "suppressDefinitionsCheck", Value: "banana"}}})
	if !s.SuppressDefinitionsCheck() {
		t.Error("unparseable option value changed the suppress flag")
	}

	// Unrelated options are ignored.
	s.RestoreState(&Document{Options: []OptionElement{{Name: "somethingElse", Value: "false"}}})
	if !s.SuppressDefinitionsCheck() {
		t.Error("unrelated option changed the suppress flag")
	}
}

func TestRestoreState_NilDocument(t *testing.T) {
	s := NewStore()
	s.SetOrder(defA, 1)
	s.RestoreState(nil)
	if order, ok := s.Order(defA); !ok || order != 1 {
		t.Errorf("Order(defA) = %d, %v after nil restore, want 1, true", order, ok)
	}
}

func TestScenario_DisableCaptureRestore(t *testing.T) {
	s := NewStore()
	s.SetEnabled(5, defA, false)

	doc := s.CaptureState()
	if len(doc.Definitions) != 1 {
		t.Fatalf("captured %d definitions, want 1", len(doc.Definitions))
	}
	el := doc.Definitions[0]
	if el.Order != strconv.Itoa(5) {
		t.Errorf("order = %q, want \"5\"", el.Order)
	}
	if el.IsEnabled != "false" {
		t.Errorf("isEnabled = %q, want \"false\"", el.IsEnabled)
	}
	if el.AutoReload != "" {
		t.Errorf("autoReloadConfigurations = %q, want omitted", el.AutoReload)
	}

	fresh := NewStore()
	fresh.RestoreState(doc)
	if fresh.Enabled(defA) {
		t.Error("Enabled(defA) = true after restore, want false")
	}
	if order, ok := fresh.Order(defA); !ok || order != 5 {
		t.Errorf("Order(defA) = %d, %v after restore, want 5, true", order, ok)
	}
}
