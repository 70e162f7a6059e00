// Package ui is the terminal front end: a sidebar tree of collections and a
// response pane, driven by a single bubbletea event loop.
package ui

import (
	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/haim4shekel213/apiforge/internal/history"
	"github.com/haim4shekel213/apiforge/internal/httpclient"
	"github.com/haim4shekel213/apiforge/internal/workspace"
)

var _ tea.Model = Model{}

type paneFocus int

const (
	focusTree paneFocus = iota
	focusResponse
)

type promptMode int

const (
	promptNone promptMode = iota
	promptNewCollection
	promptNewRequest
	promptNewFolder
)

type Config struct {
	Workspace *workspace.Workspace
	Client    *httpclient.Client
	Options   httpclient.Options
	History   *history.Store
}

type Model struct {
	ws      *workspace.Workspace
	client  *httpclient.Client
	opts    httpclient.Options
	history *history.Store

	seq httpclient.Sequencer

	tree     list.Model
	respView viewport.Model
	prompt   textinput.Model

	theme      Theme
	focus      paneFocus
	promptMode promptMode
	status     statusMsg

	last *httpclient.Response

	width  int
	height int
	ready  bool
}

func New(cfg Config) Model {
	delegate := list.NewDefaultDelegate()
	delegate.ShowDescription = true

	tree := list.New(flattenCollections(cfg.Workspace.Collections()), delegate, 0, 0)
	tree.Title = "Collections"
	tree.SetShowStatusBar(false)
	tree.SetShowHelp(false)

	prompt := textinput.New()
	prompt.CharLimit = 120

	return Model{
		ws:       cfg.Workspace,
		client:   cfg.Client,
		opts:     cfg.Options,
		history:  cfg.History,
		tree:     tree,
		respView: viewport.New(0, 0),
		prompt:   prompt,
		theme:    DefaultTheme(),
	}
}

func (m Model) selectedEntry() (treeEntry, bool) {
	entry, ok := m.tree.SelectedItem().(treeEntry)
	return entry, ok
}

func (m *Model) refreshTree() {
	m.tree.SetItems(flattenCollections(m.ws.Collections()))
}

func (m *Model) setStatus(text string, level statusLevel) {
	m.status = statusMsg{text: text, level: level}
}
