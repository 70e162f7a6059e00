package ui

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/atotto/clipboard"
	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/haim4shekel213/apiforge/internal/collection"
	"github.com/haim4shekel213/apiforge/internal/history"
	"github.com/haim4shekel213/apiforge/internal/httpclient"
)

const sendTimeoutSlack = 5 * time.Second

func (m Model) Init() tea.Cmd {
	return nil
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd

	switch typed := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = typed.Width
		m.height = typed.Height
		m.ready = true
		m.applyLayout()

	case tea.KeyMsg:
		if m.promptMode != promptNone {
			return m.handlePromptKey(typed)
		}
		return m.handleKey(typed)

	case responseMsg:
		if !m.seq.Observe(typed.response) {
			return m, nil
		}
		m.last = typed.response
		m.respView.SetContent(m.renderResponse(typed.response))
		m.respView.GotoTop()
		if typed.response.Failed() {
			m.setStatus(httpclient.NetworkErrorText, statusError)
		} else {
			m.setStatus(fmt.Sprintf("%s · %s · %s",
				typed.response.StatusText,
				typed.response.Duration.Round(time.Millisecond),
				formatSize(typed.response.Size)), statusSuccess)
		}
		if m.history != nil {
			cmds = append(cmds, m.appendHistoryCmd(typed))
		}

	case statusMsg:
		m.status = typed

	case historyWrittenMsg:
		if typed.err != nil {
			m.setStatus("history not recorded: "+typed.err.Error(), statusWarn)
		}
	}

	return m, tea.Batch(cmds...)
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.tree.FilterState() == list.Filtering {
		var cmd tea.Cmd
		m.tree, cmd = m.tree.Update(msg)
		return m, cmd
	}

	switch msg.String() {
	case "ctrl+c", "q":
		return m, tea.Quit
	case "tab":
		if m.focus == focusTree {
			m.focus = focusResponse
		} else {
			m.focus = focusTree
		}
		return m, nil
	case "enter", "ctrl+s":
		if m.focus == focusTree {
			return m.executeSelected()
		}
	case "n":
		return m.openPrompt(promptNewCollection, "Collection name")
	case "a":
		if _, ok := m.selectedEntry(); ok {
			return m.openPrompt(promptNewRequest, "Request name")
		}
		m.setStatus("select a collection first", statusWarn)
		return m, nil
	case "f":
		if _, ok := m.selectedEntry(); ok {
			return m.openPrompt(promptNewFolder, "Folder name")
		}
		m.setStatus("select a collection first", statusWarn)
		return m, nil
	case "d":
		return m.deleteSelectedCollection()
	case "y":
		return m.copyResponseBody()
	case "e":
		return m.exportSelectedCollection()
	}

	var cmd tea.Cmd
	if m.focus == focusResponse {
		m.respView, cmd = m.respView.Update(msg)
	} else {
		m.tree, cmd = m.tree.Update(msg)
	}
	return m, cmd
}

func (m Model) handlePromptKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		m.promptMode = promptNone
		m.prompt.Blur()
		return m, nil
	case "enter":
		return m.commitPrompt()
	}
	var cmd tea.Cmd
	m.prompt, cmd = m.prompt.Update(msg)
	return m, cmd
}

func (m Model) openPrompt(mode promptMode, placeholder string) (tea.Model, tea.Cmd) {
	m.promptMode = mode
	m.prompt.Placeholder = placeholder
	m.prompt.SetValue("")
	return m, m.prompt.Focus()
}

func (m Model) commitPrompt() (tea.Model, tea.Cmd) {
	name := strings.TrimSpace(m.prompt.Value())
	mode := m.promptMode
	m.promptMode = promptNone
	m.prompt.Blur()
	if name == "" {
		return m, nil
	}

	switch mode {
	case promptNewCollection:
		if _, err := m.ws.AddCollection(name); err != nil {
			m.setStatus("create collection: "+err.Error(), statusError)
			return m, nil
		}
	case promptNewRequest, promptNewFolder:
		entry, ok := m.selectedEntry()
		if !ok {
			return m, nil
		}
		item := collection.NewRequest(name)
		if mode == promptNewFolder {
			item = collection.NewFolder(name)
		}
		if err := m.ws.AddItem(entry.col.Info.ID, entry.containerPath(), item); err != nil {
			m.setStatus("add item: "+err.Error(), statusError)
			return m, nil
		}
	}

	m.refreshTree()
	m.setStatus("created "+name, statusSuccess)
	return m, nil
}

// executeSelected sends the selected request in the background. Each send
// carries the executor's sequence number; completions that lose the race to
// a newer send are dropped in Update.
func (m Model) executeSelected() (tea.Model, tea.Cmd) {
	entry, ok := m.selectedEntry()
	if !ok || !entry.isRequest() {
		m.setStatus("select a request to send", statusWarn)
		return m, nil
	}

	req := entry.item.Request
	info := httpclient.ExecuteInfo{
		RequestName:  entry.item.Name,
		CollectionID: entry.col.Info.ID,
	}
	client := m.client
	opts := m.opts
	path := entry.path
	colID := entry.col.Info.ID

	m.setStatus("sending "+entry.item.Name, statusInfo)

	return m, func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), opts.Timeout+sendTimeoutSlack)
		defer cancel()

		resp := client.Execute(ctx, req, info, opts)
		return responseMsg{
			collectionID: colID,
			path:         path,
			method:       req.Method,
			url:          req.URL.String(),
			response:     resp,
		}
	}
}

func (m Model) appendHistoryCmd(msg responseMsg) tea.Cmd {
	store := m.history
	entry := history.NewEntry(msg.collectionID, msg.path, msg.method, msg.url, msg.response)
	return func() tea.Msg {
		return historyWrittenMsg{err: store.Append(entry)}
	}
}

func (m Model) deleteSelectedCollection() (tea.Model, tea.Cmd) {
	entry, ok := m.selectedEntry()
	if !ok || !entry.isCollection() {
		m.setStatus("select a collection row to delete", statusWarn)
		return m, nil
	}
	if err := m.ws.RemoveCollection(entry.col.Info.ID); err != nil {
		m.setStatus("delete: "+err.Error(), statusError)
		return m, nil
	}
	m.refreshTree()
	m.setStatus("deleted "+entry.col.Info.Name, statusSuccess)
	return m, nil
}

func (m Model) copyResponseBody() (tea.Model, tea.Cmd) {
	if m.last == nil {
		m.setStatus("no response to copy", statusWarn)
		return m, nil
	}
	if err := clipboard.WriteAll(string(m.last.Raw)); err != nil {
		m.setStatus("clipboard: "+err.Error(), statusError)
		return m, nil
	}
	m.setStatus("response body copied", statusSuccess)
	return m, nil
}

func (m Model) exportSelectedCollection() (tea.Model, tea.Cmd) {
	entry, ok := m.selectedEntry()
	if !ok || !entry.isCollection() {
		m.setStatus("select a collection row to export", statusWarn)
		return m, nil
	}
	path, err := m.ws.Export(".", entry.col.Info.ID)
	if err != nil {
		m.setStatus("export: "+err.Error(), statusError)
		return m, nil
	}
	m.setStatus("exported to "+path, statusSuccess)
	return m, nil
}
