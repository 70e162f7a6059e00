package ui

import "github.com/haim4shekel213/apiforge/internal/httpclient"

type statusLevel int

const (
	statusInfo statusLevel = iota
	statusWarn
	statusError
	statusSuccess
)

type statusMsg struct {
	text  string
	level statusLevel
}

// responseMsg carries a completed execution back into the event loop. The
// response's sequence number lets the loop discard completions that arrive
// after a newer request has already been issued.
type responseMsg struct {
	collectionID string
	path         []string
	method       string
	url          string
	response     *httpclient.Response
}

type historyWrittenMsg struct {
	err error
}
