package ui

import (
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/haim4shekel213/apiforge/internal/collection"
	"github.com/haim4shekel213/apiforge/internal/httpclient"
	"github.com/haim4shekel213/apiforge/internal/workspace"
)

type memStore struct {
	cols []*collection.Collection
}

func (s *memStore) List() ([]*collection.Collection, error) { return s.cols, nil }

func (s *memStore) Save(col *collection.Collection) error {
	for i, existing := range s.cols {
		if existing.Info.ID == col.Info.ID {
			s.cols[i] = col
			return nil
		}
	}
	s.cols = append(s.cols, col)
	return nil
}

func (s *memStore) Delete(name string) error {
	for i, existing := range s.cols {
		if existing.Info.Name == name {
			s.cols = append(s.cols[:i], s.cols[i+1:]...)
			return nil
		}
	}
	return nil
}

func (s *memStore) Import(data []byte) (*collection.Collection, error) {
	col, err := collection.Unmarshal(data)
	if err != nil {
		return nil, err
	}
	return col, s.Save(col)
}

func testModel(t *testing.T) Model {
	t.Helper()
	ws := workspace.New(&memStore{})
	if err := ws.Load(); err != nil {
		t.Fatalf("load workspace: %v", err)
	}
	m := New(Config{
		Workspace: ws,
		Client:    httpclient.NewClient(),
		Options:   httpclient.Options{Timeout: time.Second},
	})
	m.width = 120
	m.height = 40
	m.ready = true
	m.applyLayout()
	return m
}

func okResponse(seq uint64, status int) *httpclient.Response {
	return &httpclient.Response{
		Seq:        seq,
		StatusCode: status,
		StatusText: "200 OK",
		Raw:        []byte("{}"),
		Duration:   time.Millisecond,
	}
}

func TestStaleResponseIsDiscarded(t *testing.T) {
	m := testModel(t)

	next, _ := m.Update(responseMsg{response: okResponse(2, 200)})
	m = next.(Model)
	if m.last == nil || m.last.Seq != 2 {
		t.Fatalf("fresh response must be applied")
	}

	next, _ = m.Update(responseMsg{response: okResponse(1, 500)})
	m = next.(Model)
	if m.last.Seq != 2 {
		t.Fatalf("stale response overwrote the newer one")
	}
}

func TestDuplicateSequenceIsDiscarded(t *testing.T) {
	m := testModel(t)

	next, _ := m.Update(responseMsg{response: okResponse(3, 200)})
	m = next.(Model)
	replay := okResponse(3, 404)
	next, _ = m.Update(responseMsg{response: replay})
	m = next.(Model)

	if m.last.StatusCode != 200 {
		t.Fatalf("replayed sequence must not be applied")
	}
}

func TestNilResponseIsIgnored(t *testing.T) {
	m := testModel(t)
	next, _ := m.Update(responseMsg{response: okResponse(1, 200)})
	m = next.(Model)

	next, _ = m.Update(responseMsg{})
	m = next.(Model)
	if m.last == nil || m.last.Seq != 1 {
		t.Fatalf("a message without a response must not clear the pane")
	}
}

func TestFailedResponseSetsErrorStatus(t *testing.T) {
	m := testModel(t)

	resp := &httpclient.Response{Seq: 5, StatusText: httpclient.NetworkErrorText}
	next, _ := m.Update(responseMsg{response: resp})
	m = next.(Model)

	if m.status.level != statusError || m.status.text != httpclient.NetworkErrorText {
		t.Fatalf("unexpected status %#v", m.status)
	}
}

func TestPromptCreatesCollection(t *testing.T) {
	m := testModel(t)
	before := len(m.ws.Collections())

	next, _ := m.handleKey(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("n")})
	m = next.(Model)
	if m.promptMode != promptNewCollection {
		t.Fatalf("expected collection prompt, got %v", m.promptMode)
	}

	m.prompt.SetValue("Payments")
	next, _ = m.handlePromptKey(tea.KeyMsg{Type: tea.KeyEnter})
	m = next.(Model)

	if len(m.ws.Collections()) != before+1 {
		t.Fatalf("collection not created")
	}
	if m.promptMode != promptNone {
		t.Fatalf("prompt must close after commit")
	}
}

func TestPromptEscapeCancels(t *testing.T) {
	m := testModel(t)
	next, _ := m.openPrompt(promptNewCollection, "Collection name")
	m = next.(Model)
	next, _ = m.handlePromptKey(tea.KeyMsg{Type: tea.KeyEsc})
	m = next.(Model)
	if m.promptMode != promptNone {
		t.Fatalf("escape must cancel the prompt")
	}
}

func TestWindowSizeMarksReady(t *testing.T) {
	ws := workspace.New(&memStore{})
	_ = ws.Load()
	m := New(Config{Workspace: ws, Client: httpclient.NewClient()})

	next, _ := m.Update(tea.WindowSizeMsg{Width: 100, Height: 30})
	m = next.(Model)
	if !m.ready || m.width != 100 {
		t.Fatalf("window size not applied")
	}
}
