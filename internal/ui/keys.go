package ui

import "github.com/charmbracelet/bubbles/key"

// keyMap defines all keyboard bindings for the application.
type keyMap struct {
	// Global
	Quit       key.Binding
	Help       key.Binding
	CycleTheme key.Binding
	Address    key.Binding
	Escape     key.Binding

	// Page switching
	GoHome     key.Binding
	GoLogin    key.Binding
	GoRegister key.Binding
	GoLk       key.Binding

	// Lk tabs
	NextTab key.Binding
	PrevTab key.Binding

	// Navigation
	Up           key.Binding
	Down         key.Binding
	Left         key.Binding
	Right        key.Binding
	Top          key.Binding
	Bottom       key.Binding
	HalfPageUp   key.Binding
	HalfPageDown key.Binding

	// Forms
	NextField key.Binding
	PrevField key.Binding
	Submit    key.Binding

	// Lk actions
	Edit        key.Binding
	New         key.Binding
	Delete      key.Binding
	Answer      key.Binding
	CyclePeriod key.Binding
	MarkRead    key.Binding
	Refresh     key.Binding
	Logout      key.Binding

	// Log tab
	ToggleFollow key.Binding
	CycleLevel   key.Binding
}

// DefaultKeyMap returns the default key bindings.
func DefaultKeyMap() keyMap {
	return keyMap{
		Quit: key.NewBinding(
			key.WithKeys("ctrl+c"),
			key.WithHelp("ctrl+c", "Quit"),
		),
		Help: key.NewBinding(
			key.WithKeys("?"),
			key.WithHelp("?", "Toggle help"),
		),
		CycleTheme: key.NewBinding(
			key.WithKeys("T"),
			key.WithHelp("T", "Cycle theme"),
		),
		Address: key.NewBinding(
			key.WithKeys(":"),
			key.WithHelp(":", "Go to path"),
		),
		Escape: key.NewBinding(
			key.WithKeys("esc"),
			key.WithHelp("esc", "Leave input / close"),
		),

		GoHome: key.NewBinding(
			key.WithKeys("H"),
			key.WithHelp("H", "Home"),
		),
		GoLogin: key.NewBinding(
			key.WithKeys("L"),
			key.WithHelp("L", "Login"),
		),
		GoRegister: key.NewBinding(
			key.WithKeys("R"),
			key.WithHelp("R", "Register"),
		),
		GoLk: key.NewBinding(
			key.WithKeys("K"),
			key.WithHelp("K", "Cabinet"),
		),

		NextTab: key.NewBinding(
			key.WithKeys("tab", "]"),
			key.WithHelp("tab/]", "Next tab"),
		),
		PrevTab: key.NewBinding(
			key.WithKeys("shift+tab", "["),
			key.WithHelp("shift+tab/[", "Previous tab"),
		),

		Up: key.NewBinding(
			key.WithKeys("k", "up"),
			key.WithHelp("k/up", "Move up"),
		),
		Down: key.NewBinding(
			key.WithKeys("j", "down"),
			key.WithHelp("j/down", "Move down"),
		),
		Left: key.NewBinding(
			key.WithKeys("h", "left"),
			key.WithHelp("h/left", "Previous choice"),
		),
		Right: key.NewBinding(
			key.WithKeys("l", "right"),
			key.WithHelp("l/right", "Next choice"),
		),
		Top: key.NewBinding(
			key.WithKeys("g", "home"),
			key.WithHelp("g", "Go to top"),
		),
		Bottom: key.NewBinding(
			key.WithKeys("G", "end"),
			key.WithHelp("G", "Go to bottom"),
		),
		HalfPageUp: key.NewBinding(
			key.WithKeys("ctrl+u"),
			key.WithHelp("ctrl+u", "Half page up"),
		),
		HalfPageDown: key.NewBinding(
			key.WithKeys("ctrl+d"),
			key.WithHelp("ctrl+d", "Half page down"),
		),

		NextField: key.NewBinding(
			key.WithKeys("tab", "down"),
			key.WithHelp("tab", "Next field"),
		),
		PrevField: key.NewBinding(
			key.WithKeys("shift+tab", "up"),
			key.WithHelp("shift+tab", "Previous field"),
		),
		Submit: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("enter", "Submit"),
		),

		Edit: key.NewBinding(
			key.WithKeys("e"),
			key.WithHelp("e", "Edit"),
		),
		New: key.NewBinding(
			key.WithKeys("n"),
			key.WithHelp("n", "New"),
		),
		Delete: key.NewBinding(
			key.WithKeys("x"),
			key.WithHelp("x", "Delete"),
		),
		Answer: key.NewBinding(
			key.WithKeys("a"),
			key.WithHelp("a", "Answer question"),
		),
		CyclePeriod: key.NewBinding(
			key.WithKeys("p"),
			key.WithHelp("p", "Cycle period"),
		),
		MarkRead: key.NewBinding(
			key.WithKeys("m"),
			key.WithHelp("m", "Mark read"),
		),
		Refresh: key.NewBinding(
			key.WithKeys("r"),
			key.WithHelp("r", "Refresh"),
		),
		Logout: key.NewBinding(
			key.WithKeys("O"),
			key.WithHelp("O", "Sign out"),
		),

		ToggleFollow: key.NewBinding(
			key.WithKeys(" "),
			key.WithHelp("Space", "Toggle follow mode"),
		),
		CycleLevel: key.NewBinding(
			key.WithKeys("f"),
			key.WithHelp("f", "Cycle level filter"),
		),
	}
}

// ShortHelp returns key bindings for the short help view.
func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Help, k.Quit}
}

// FullHelp returns key bindings for the full help view.
func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.GoHome, k.GoLogin, k.GoRegister, k.GoLk, k.Address},
		{k.NextTab, k.PrevTab, k.Up, k.Down, k.Left, k.Right, k.Top, k.Bottom},
		{k.NextField, k.Submit, k.Escape},
		{k.Edit, k.New, k.Delete, k.Answer, k.CyclePeriod, k.MarkRead, k.Refresh, k.Logout},
		{k.ToggleFollow, k.CycleLevel, k.HalfPageDown, k.HalfPageUp},
		{k.CycleTheme, k.Help, k.Quit},
	}
}
