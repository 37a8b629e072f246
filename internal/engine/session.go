// File: session.go
// Title: Interpreter Session
// Description: High-level entry point used by the CLI, REPL and watcher.
//              A Session owns one interpreter state, feeds submissions
//              through the parser, reports what each submission added and
//              optionally records every submission to the history store.
// Author: msto63
// Version: v0.1.0
// Created: 2026-10-14
// Modified: 2026-10-14
//
// Change History:
// - 2026-10-14 v0.1.0: Initial session engine

package engine

import (
	"context"
	"fmt"
	"strings"
	"sync"

	mdwlog "github.com/msto63/mlogo/foundation/core/log"
	"github.com/msto63/mlogo/foundation/turtle/language"
	mdwparser "github.com/msto63/mlogo/foundation/turtle/parser"
	mdwregistry "github.com/msto63/mlogo/foundation/turtle/registry"
	mdwstringx "github.com/msto63/mlogo/foundation/utils/stringx"
	"github.com/msto63/mlogo/internal/history"
)

// Options configures a session
type Options struct {
	Logger   *mdwlog.Logger
	Registry *mdwregistry.Registry
	Parser   *mdwparser.Parser

	// Store records submissions when set
	Store       history.Store
	SessionName string

	// Start is the turtle a fresh or reset state begins with
	Start language.Turtle
	// PenUp starts with the pen lifted
	PenUp bool
}

// Result describes the effect of one submission
type Result struct {
	State language.State

	// DrawCommands are the commands this submission appended
	DrawCommands []language.DrawCommand

	// Complete is false when the text ended mid-statement; the state was
	// left unchanged and the caller may resubmit a longer text
	Complete bool

	Error *language.ErrorInfo

	// Suggestion is a close registered name for an unknown function
	Suggestion string
}

// Failed reports whether the submission produced a script error
func (r *Result) Failed() bool {
	return r.Error != nil
}

// Session is a concurrency-safe interpreter session
type Session struct {
	registry *mdwregistry.Registry
	parser   *mdwparser.Parser
	store    history.Store
	logger   *mdwlog.Logger
	options  Options

	mu        sync.Mutex
	state     language.State
	sessionID string
}

// New creates a session. When a store is configured a history session is
// opened immediately.
func New(ctx context.Context, opts Options) (*Session, error) {
	// Set defaults
	if opts.Logger == nil {
		opts.Logger = mdwlog.GetDefault()
	}
	if opts.SessionName == "" {
		opts.SessionName = "session"
	}

	logger := opts.Logger.WithField("component", "turtle-engine")

	if opts.Registry == nil {
		reg, err := mdwregistry.New(mdwregistry.Options{Logger: logger})
		if err != nil {
			return nil, fmt.Errorf("failed to initialize turtle registry: %w", err)
		}
		opts.Registry = reg
	}
	if opts.Parser == nil {
		opts.Parser = mdwparser.New(mdwparser.Options{Logger: logger})
	}

	s := &Session{
		registry: opts.Registry,
		parser:   opts.Parser,
		store:    opts.Store,
		logger:   logger,
		options:  opts,
	}
	s.state = s.initialState()

	if s.store != nil {
		session, err := s.store.CreateSession(ctx, opts.SessionName)
		if err != nil {
			return nil, fmt.Errorf("failed to open history session: %w", err)
		}
		s.sessionID = session.ID
	}

	logger.Debug("Turtle session initialized", mdwlog.Fields{
		"functions":  len(s.state.AllFunctions),
		"history":    s.store != nil,
		"session_id": s.sessionID,
	})

	return s, nil
}

func (s *Session) initialState() language.State {
	state := s.registry.NewState()
	state.Turtle = s.options.Start
	state.Pen.Down = !s.options.PenUp
	return state
}

// Submit parses and performs one submission against the current state
func (s *Session) Submit(ctx context.Context, text string) *Result {
	s.mu.Lock()
	defer s.mu.Unlock()

	before := s.state
	after, complete := s.parser.Parse(text, before)
	if complete {
		s.state = after
	}

	result := &Result{
		State:    s.state,
		Complete: complete,
	}
	if complete {
		result.Error = after.Error
		result.DrawCommands = after.DrawCommands[len(before.DrawCommands):]
	}
	if result.Error != nil {
		result.Suggestion = s.suggest(result.Error)
	}

	s.record(ctx, text, result)
	return result
}

// suggest proposes a registered name for an unknown function word
func (s *Session) suggest(info *language.ErrorInfo) string {
	if !strings.HasPrefix(info.Description, "Unknown function: ") || mdwstringx.IsBlank(info.Token) {
		return ""
	}
	name, _ := s.registry.Suggest(info.Token)
	return name
}

func (s *Session) record(ctx context.Context, text string, result *Result) {
	if s.store == nil {
		return
	}

	sub := &history.Submission{
		SessionID:    s.sessionID,
		Script:       text,
		Outcome:      history.OutcomeOK,
		DrawCommands: result.DrawCommands,
		Error:        result.Error,
	}
	switch {
	case result.Error != nil:
		sub.Outcome = history.OutcomeError
	case !result.Complete:
		sub.Outcome = history.OutcomeIncomplete
	}

	if err := s.store.RecordSubmission(ctx, sub); err != nil {
		s.logger.WarnWithErr("Failed to record submission", err, mdwlog.Fields{
			"session_id": s.sessionID,
		})
	}
}

// Replay resubmits the successful submissions of a recorded session, in
// order, into this session's current state
func (s *Session) Replay(ctx context.Context, sessionID string) (*Result, error) {
	return s.ReplayFrom(ctx, s.store, sessionID)
}

// ReplayFrom is Replay reading from source, which may differ from the store
// this session records to
func (s *Session) ReplayFrom(ctx context.Context, source history.Store, sessionID string) (*Result, error) {
	if source == nil {
		return nil, fmt.Errorf("replay needs a history store")
	}

	submissions, err := source.Submissions(ctx, sessionID)
	if err != nil {
		return nil, err
	}

	start := len(s.State().DrawCommands)
	last := &Result{State: s.State(), Complete: true}
	for _, sub := range submissions {
		// Failed submissions still committed the statements before the error
		if sub.Outcome == history.OutcomeIncomplete {
			continue
		}
		last = s.Submit(ctx, sub.Script)
	}

	last.DrawCommands = last.State.DrawCommands[min(start, len(last.State.DrawCommands)):]
	s.logger.Info("Session replayed", mdwlog.Fields{
		"source_session": sessionID,
		"submissions":    len(submissions),
	})
	return last, nil
}

// Reset discards everything parsed so far
func (s *Session) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.state = s.initialState()
}

// State returns a snapshot of the current state
func (s *Session) State() language.State {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.state
}

// ID returns the history session id, empty without a store
func (s *Session) ID() string {
	return s.sessionID
}

// Registry returns the function registry the session was built with
func (s *Session) Registry() *mdwregistry.Registry {
	return s.registry
}
