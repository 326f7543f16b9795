// Package editor is the entry point of the file-mutation engine. It sequences
// whitelist verification, payload parsing, patch application, the filesystem
// write, the advisory syntax check and the whitelist update, and it is the
// only component that touches both the filesystem and the whitelist store.
//
// Failure ordering is strict: everything except the write itself is checked
// before any byte lands on disk, and the whitelist entry is refreshed only
// after the write reports success, so an I/O failure leaves the entry at its
// pre-edit value and the next attempt re-validates against current disk state.
package editor

import (
	"context"
	"errors"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/hamzaessahbaoui/editkit/pkg/fingerprint"
	"github.com/hamzaessahbaoui/editkit/pkg/patch"
	"github.com/hamzaessahbaoui/editkit/pkg/syntax"
	"github.com/hamzaessahbaoui/editkit/pkg/whitelist"
)

// EditRequest is one FileWriteOrEdit invocation.
type EditRequest struct {
	SessionID string
	Path      string
	// ChangePercent is the caller-declared magnitude of the change, 0-100.
	// At or above the configured threshold the payload is the full new
	// content; below it, the payload holds search/replace blocks.
	ChangePercent int
	Payload       string
}

// EditResult reports a successful write or edit.
type EditResult struct {
	Path        string
	Summary     Summary
	Warnings    []string
	Fingerprint fingerprint.Fingerprint
}

// ReadResult is the outcome of reading one file.
type ReadResult struct {
	Path        string
	Content     string
	Fingerprint fingerprint.Fingerprint
}

// Editor orchestrates edits against one shared filesystem on behalf of many
// sessions. Operations on the same (session, path) key are serialized;
// everything else may run concurrently.
type Editor struct {
	store *whitelist.Store
	cfg   Config

	mu    sync.Mutex
	locks map[string]*sync.Mutex
}

// New returns an Editor gated by store. Zero-valued Config fields fall back
// to DefaultConfig values.
func New(store *whitelist.Store, cfg Config) *Editor {
	return &Editor{
		store: store,
		cfg:   cfg.normalized(),
		locks: make(map[string]*sync.Mutex),
	}
}

// Store exposes the whitelist store the editor was built with, for session
// lifecycle owners that need RemoveSession on teardown.
func (e *Editor) Store() *whitelist.Store { return e.store }

// Config returns the effective configuration.
func (e *Editor) Config() Config { return e.cfg }

// WriteOrEdit applies an EditRequest to disk. For existing files the session
// must hold a fresh whitelist entry; the very first write to a path that does
// not exist yet is always allowed and creates both the file and the entry.
func (e *Editor) WriteOrEdit(ctx context.Context, req EditRequest) (EditResult, error) {
	path, err := canonicalPath(req.Path)
	if err != nil {
		return EditResult{}, ioErr(err)
	}

	unlock := e.lockKey(req.SessionID + "\x00" + path)
	defer unlock()

	// Verify against the whitelist before anything else. A missing file is
	// implicitly fresh: creation is always allowed.
	current, exists, err := e.readTarget(path)
	if err != nil {
		return EditResult{}, err
	}
	if exists {
		verdict := e.store.Verify(req.SessionID, path, e.cfg.Fingerprint([]byte(current)))
		if verdict != whitelist.Fresh {
			return EditResult{}, &Error{
				Code: CodeWhitelistViolation,
				Message: fmt.Sprintf(
					"file %s is %s for session %s: read it first so edits run against its current content",
					path, verdict, req.SessionID),
			}
		}
	}

	instructions, err := patch.Parse(req.Payload, req.ChangePercent, e.cfg.FullRewriteThreshold)
	if err != nil {
		return EditResult{}, &Error{Code: CodeParseError, Message: err.Error(), Err: err}
	}

	if !exists && instructions[0].Kind == patch.SearchReplace {
		return EditResult{}, ioErr(fmt.Errorf(
			"cannot apply search/replace blocks to %s: %w (declare percentage_to_change >= %d to create it)",
			path, os.ErrNotExist, e.cfg.FullRewriteThreshold))
	}

	// Apply runs against a re-read of the disk content, not the snapshot
	// used for verification, to keep the race window minimal.
	if exists && instructions[0].Kind == patch.SearchReplace {
		current, _, err = e.readTarget(path)
		if err != nil {
			return EditResult{}, err
		}
	}

	newContent, err := patch.Apply(current, instructions)
	if err != nil {
		return EditResult{}, applyError(err)
	}

	// Nothing to do when the result is identical; refresh the entry so the
	// session stays fresh and report it unchanged.
	if exists && newContent == current {
		fp := e.cfg.Fingerprint([]byte(current))
		e.store.Record(req.SessionID, path, fp)
		log.Printf("editor: %s unchanged by edit (session %s)", path, req.SessionID)
		return EditResult{
			Path:        path,
			Summary:     summarize(path, current, newContent, false, e.cfg.DiffContext),
			Fingerprint: fp,
		}, nil
	}

	if err := writeFile(path, newContent); err != nil {
		// The whitelist keeps its pre-edit value: the next attempt is
		// re-validated against whatever actually reached the disk.
		return EditResult{}, ioErr(err)
	}

	warnings := syntax.Check(path, newContent)

	fp := e.cfg.Fingerprint([]byte(newContent))
	e.store.Record(req.SessionID, path, fp)

	log.Printf("editor: wrote %s (%d bytes, session %s, %d warnings)",
		path, len(newContent), req.SessionID, len(warnings))

	return EditResult{
		Path:        path,
		Summary:     summarize(path, current, newContent, !exists, e.cfg.DiffContext),
		Warnings:    warnings,
		Fingerprint: fp,
	}, nil
}

// ReadFile returns the content of path and records a fresh whitelist entry
// for the session, which authorizes subsequent edits.
func (e *Editor) ReadFile(ctx context.Context, session, path string) (ReadResult, error) {
	canonical, err := canonicalPath(path)
	if err != nil {
		return ReadResult{}, ioErr(err)
	}

	unlock := e.lockKey(session + "\x00" + canonical)
	defer unlock()

	content, exists, err := e.readTarget(canonical)
	if err != nil {
		return ReadResult{}, err
	}
	if !exists {
		return ReadResult{}, ioErr(fmt.Errorf("read %s: %w", canonical, os.ErrNotExist))
	}

	fp := e.cfg.Fingerprint([]byte(content))
	e.store.Record(session, canonical, fp)

	return ReadResult{Path: canonical, Content: content, Fingerprint: fp}, nil
}

// readTarget loads the file at path, enforcing the size guard. A missing
// file is not an error here; exists reports it.
func (e *Editor) readTarget(path string) (content string, exists bool, err error) {
	info, err := os.Stat(path)
	if errors.Is(err, os.ErrNotExist) {
		return "", false, nil
	}
	if err != nil {
		return "", false, ioErr(err)
	}
	if info.IsDir() {
		return "", false, ioErr(fmt.Errorf("%s is a directory", path))
	}
	if info.Size() > e.cfg.MaxFileSize {
		return "", false, &Error{
			Code:    CodeFileTooLarge,
			Message: fmt.Sprintf("%s is %d bytes, limit is %d", path, info.Size(), e.cfg.MaxFileSize),
		}
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return "", false, ioErr(err)
	}
	return string(data), true, nil
}

// lockKey serializes operations on one (session, path) key and returns the
// unlock function.
func (e *Editor) lockKey(key string) func() {
	e.mu.Lock()
	l, ok := e.locks[key]
	if !ok {
		l = &sync.Mutex{}
		e.locks[key] = l
	}
	e.mu.Unlock()

	l.Lock()
	return l.Unlock
}

func applyError(err error) *Error {
	var notFound *patch.NotFoundError
	if errors.As(err, &notFound) {
		return &Error{Code: CodeApplyNotFound, Message: err.Error(), Err: err}
	}
	var overlap *patch.OverlapError
	if errors.As(err, &overlap) {
		return &Error{Code: CodeApplyOverlap, Message: err.Error(), Err: err}
	}
	return &Error{Code: CodeParseError, Message: err.Error(), Err: err}
}

// canonicalPath expands a leading ~ and resolves the path to an absolute,
// cleaned form. Whitelist keys must be canonical so a read and a later write
// of the same file agree on the key.
func canonicalPath(path string) (string, error) {
	if path == "" {
		return "", errors.New("file path is empty")
	}
	if path == "~" || strings.HasPrefix(path, "~/") {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", err
		}
		path = filepath.Join(home, strings.TrimPrefix(path, "~"))
	}
	return filepath.Abs(path)
}

// writeFile persists content, creating parent directories for new paths.
func writeFile(path, content string) error {
	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return err
		}
	}
	return os.WriteFile(path, []byte(content), 0644)
}
