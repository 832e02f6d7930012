package tui

type view int

const (
	viewDocuments view = iota
	viewOutline
	viewHelp
)

type modalKind int

const (
	modalNone modalKind = iota
	modalNewDocument
	modalConfirmDeleteDocument
)

type flashDoneMsg struct{ seq int }
