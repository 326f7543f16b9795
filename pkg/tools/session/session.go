// Package session manages session lifecycles for the whitelist store:
// initialize hands out session identifiers, reset discards every freshness
// record a session holds.
package session

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"log"

	"github.com/hamzaessahbaoui/editkit/pkg/whitelist"
	"github.com/hamzaessahbaoui/editkit/toolkit"
)

// ParentName is the toolkit parent the session children register under.
const ParentName = "session"

// Service binds the session handlers to the whitelist store shared with the
// editor.
type Service struct {
	store *whitelist.Store
}

// NewService returns a Service backed by store.
func NewService(store *whitelist.Store) *Service {
	return &Service{store: store}
}

// Parent assembles the session parent with both children attached.
func (s *Service) Parent() toolkit.Parent {
	return toolkit.NewParent(
		ParentName,
		"Start or reset editing sessions. Every file tool call must carry a session id obtained here.",
		toolkit.NewChild("initialize",
			"Start a session and return its id. Pass an existing id to keep using it.",
			s.Initialize),
		toolkit.NewChild("reset",
			"Discard all freshness records of a session. Files must be re-read before they can be edited again.",
			s.Reset),
	)
}

// Initialize returns a session id, generating one when the caller did not
// supply it. The store needs no registration step; entries appear lazily as
// the session reads files.
func (s *Service) Initialize(ctx context.Context, args InitializeArgs) (interface{}, error) {
	id := args.SessionID
	if id == "" {
		var err error
		id, err = newSessionID()
		if err != nil {
			return nil, toolkit.NewError("session_id_generation", err.Error())
		}
	}
	log.Printf("session: initialized %s", id)
	return InitializeResponse{Success: true, SessionID: id}, nil
}

// Reset drops every freshness record the session holds.
func (s *Service) Reset(ctx context.Context, args ResetArgs) (interface{}, error) {
	dropped := s.store.RemoveSession(args.SessionID)
	log.Printf("session: reset %s, dropped %d records", args.SessionID, dropped)
	return ResetResponse{Success: true, Dropped: dropped}, nil
}

func newSessionID() (string, error) {
	buf := make([]byte, 8)
	if _, err := rand.Read(buf); err != nil {
		return "", fmt.Errorf("generate session id: %w", err)
	}
	return hex.EncodeToString(buf), nil
}
