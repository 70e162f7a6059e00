package ui

import (
	"encoding/json"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/alecthomas/chroma/quick"
	"github.com/charmbracelet/lipgloss"

	"github.com/haim4shekel213/apiforge/internal/httpclient"
)

const minSidebarWidth = 28

func (m *Model) applyLayout() {
	sidebarWidth := m.width / 3
	if sidebarWidth < minSidebarWidth {
		sidebarWidth = minSidebarWidth
	}
	responseWidth := m.width - sidebarWidth
	contentHeight := m.height - 2 // status bar + prompt line

	// each pane loses two cells to its border
	m.tree.SetSize(sidebarWidth-2, contentHeight-2)
	m.respView.Width = responseWidth - 2
	m.respView.Height = contentHeight - 2
	m.prompt.Width = m.width - 4
}

func (m Model) View() string {
	if !m.ready {
		return "loading…"
	}

	sidebarStyle := m.theme.Sidebar
	responseStyle := m.theme.Response
	if m.focus == focusTree {
		sidebarStyle = m.theme.SidebarFocused
	} else {
		responseStyle = m.theme.ResponseFocus
	}

	panes := lipgloss.JoinHorizontal(
		lipgloss.Top,
		sidebarStyle.Render(m.tree.View()),
		responseStyle.Render(m.respView.View()),
	)

	return lipgloss.JoinVertical(lipgloss.Left, panes, m.promptLine(), m.statusLine())
}

func (m Model) promptLine() string {
	if m.promptMode == promptNone {
		return ""
	}
	var label string
	switch m.promptMode {
	case promptNewCollection:
		label = "new collection"
	case promptNewRequest:
		label = "new request"
	case promptNewFolder:
		label = "new folder"
	}
	return m.theme.PromptLabel.Render(label+": ") + m.prompt.View()
}

func (m Model) statusLine() string {
	text := m.status.text
	if text == "" {
		text = "enter send · n new collection · a new request · f new folder · d delete · y copy · e export · q quit"
	}
	style := m.theme.StatusInfo
	switch m.status.level {
	case statusWarn:
		style = m.theme.StatusWarn
	case statusError:
		style = m.theme.StatusError
	case statusSuccess:
		style = m.theme.StatusSuccess
	}
	return m.theme.StatusBar.Render(style.Render(text))
}

func (m Model) renderResponse(resp *httpclient.Response) string {
	var b strings.Builder

	if resp.Failed() {
		b.WriteString(m.theme.StatusError.Render(resp.StatusText))
	} else {
		b.WriteString(fmt.Sprintf("%d %s", resp.StatusCode, strings.TrimSpace(resp.StatusText)))
	}
	b.WriteString("\n")
	b.WriteString(m.theme.ResponseMeta.Render(
		fmt.Sprintf("%s · %s", resp.Duration.Round(time.Millisecond), formatSize(resp.Size))))
	b.WriteString("\n\n")

	if len(resp.Headers) > 0 {
		keys := make([]string, 0, len(resp.Headers))
		for k := range resp.Headers {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		for _, k := range keys {
			b.WriteString(m.theme.HeaderKey.Render(k) + ": " + resp.Headers[k] + "\n")
		}
		b.WriteString("\n")
	}

	b.WriteString(renderBody(resp))
	return b.String()
}

// renderBody pretty prints and highlights JSON payloads; anything that did
// not parse is shown as received.
func renderBody(resp *httpclient.Response) string {
	if _, ok := resp.Data.(string); ok || resp.Data == nil {
		return string(resp.Raw)
	}

	pretty, err := json.MarshalIndent(resp.Data, "", "  ")
	if err != nil {
		return string(resp.Raw)
	}

	var highlighted strings.Builder
	if err := quick.Highlight(&highlighted, string(pretty), "json", "terminal256", "monokai"); err != nil {
		return string(pretty)
	}
	return highlighted.String()
}

func formatSize(size int64) string {
	switch {
	case size >= 1<<20:
		return fmt.Sprintf("%.1f MB", float64(size)/float64(1<<20))
	case size >= 1<<10:
		return fmt.Sprintf("%.1f KB", float64(size)/float64(1<<10))
	default:
		return fmt.Sprintf("%d B", size)
	}
}
