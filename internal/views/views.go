// Package views maps the active sidebar section to a dashboard panel.
package views

// Section names a dashboard panel.
type Section string

const (
	Dashboard Section = "dashboard"
	Scan      Section = "scan"
	Evidence  Section = "evidence"
	Network   Section = "network"
)

// Default is shown for unknown section names.
const Default = Dashboard

// MenuItem is a sidebar entry.
type MenuItem struct {
	ID    Section `json:"id"`
	Label string  `json:"label"`
}

var menu = []MenuItem{
	{ID: Dashboard, Label: "Command Center"},
	{ID: Scan, Label: "Threat Detection"},
	{ID: Evidence, Label: "Evidence Ledger"},
	{ID: Network, Label: "Botnet Graph"},
}

// MenuItems returns the sidebar entries in display order.
func MenuItems() []MenuItem {
	return append([]MenuItem(nil), menu...)
}

// Resolve maps a section name to the panel that renders it. Matching is
// exact; anything unknown falls back to the dashboard.
func Resolve(name string) MenuItem {
	for _, item := range menu {
		if string(item.ID) == name {
			return item
		}
	}
	return menu[0]
}

// IsKnown reports whether name is one of the four sections.
func IsKnown(name string) bool {
	for _, item := range menu {
		if string(item.ID) == name {
			return true
		}
	}
	return false
}
