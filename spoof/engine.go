package spoof

import (
	"log/slog"

	"github.com/ruteri/pixelprops/interfaces"
	"github.com/ruteri/pixelprops/profiles"
)

// Engine applies profile overrides to an attribute store.
type Engine struct {
	store interfaces.AttributeStore
	state *State
	table *profiles.Table
	log   *slog.Logger
}

// NewEngine creates an engine writing to store. A nil table selects
// profiles.Default().
func NewEngine(store interfaces.AttributeStore, state *State, table *profiles.Table, log *slog.Logger) *Engine {
	if table == nil {
		table = profiles.Default()
	}
	return &Engine{
		store: store,
		state: state,
		table: table,
		log:   log,
	}
}

// Table returns the profile table the engine selects from.
func (e *Engine) Table() *profiles.Table {
	return e.table
}

// State returns the latch shared with guards.
func (e *Engine) State() *State {
	return e.state
}

// ApplyOverridesForPackage writes the overrides selected for packageName.
// An empty name is a no-op. Failures are logged, never returned.
func (e *Engine) ApplyOverridesForPackage(packageName string) {
	if packageName == "" {
		return
	}
	e.log.Debug("Package = "+packageName, "package", packageName)

	switch {
	case e.table.ModernPackages.Contains(packageName):
		e.applySet(e.table.Common)
		for _, attr := range e.table.Modern.Attributes.Attributes() {
			if attr.Name == "MODEL" && packageName == profiles.PackageGMS {
				if e.state.Set() {
					e.log.Info("Attestation service impersonation latched", "package", packageName)
				}
				continue
			}
			e.setField(attr.Name, attr.Value)
		}
	case e.table.LegacyPackages.Contains(packageName):
		e.applySet(e.table.Common)
		e.applySet(e.table.Legacy.Attributes)
	}

	// Set proper indexing fingerprint
	if packageName == profiles.PackageSettingsIntelligence {
		e.setField("FINGERPRINT", interfaces.String(e.store.BuildDate()))
	}
}

func (e *Engine) applySet(set profiles.AttributeSet) {
	for _, attr := range set.Attributes() {
		e.setField(attr.Name, attr.Value)
	}
}

func (e *Engine) setField(name string, value interfaces.Value) {
	e.log.Debug("Setting prop "+name+" to "+value.Str(), "key", name, "value", value.Str())
	if err := e.store.SetByName(name, value); err != nil {
		e.log.Error("Failed to set prop "+name, "key", name, "err", err)
	}
}
