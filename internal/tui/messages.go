package tui

import (
	"github.com/MKhiriev/zonesync/internal/service"
	"github.com/MKhiriev/zonesync/models"
	tea "github.com/charmbracelet/bubbletea"
)

// NavigateTo switches the root router to another page. An optional Payload
// message is delivered to the target page right after the switch.
type NavigateTo struct {
	Page    string
	Payload tea.Msg
}

// AuthResult finishes the login flow. Produced by both the login and the
// register pages; a nil Err carries an opened session.
type AuthResult struct {
	Session models.Session
	Err     error
}

type zonesLoadedMsg struct {
	zones []models.Zone
	err   error
}

type recordsLoadedMsg struct {
	zone    string
	records []models.Record
	err     error
}

type recordSavedMsg struct {
	err error
}

type recordDeletedMsg struct {
	err error
}

type zoneCreatedMsg struct {
	zone models.Zone
	err  error
}

type zoneDeletedMsg struct {
	err error
}

type syncDoneMsg struct {
	zone string
	err  error
}

type syncStatusMsg struct {
	status service.SyncStatus
}

type copiedMsg struct {
	err error
}
