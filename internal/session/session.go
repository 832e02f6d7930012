// Package session binds one open document's forest to the persistence
// gateway. Every structural operation mutates the forest, persists the
// snapshot synchronously, appends an event, then signals the presentation
// layer to re-render and (once the new view exists) to move focus.
package session

import (
	"context"
	"fmt"
	"strings"

	"twig-cli/internal/forest"
	"twig-cli/internal/model"
	"twig-cli/internal/store"
)

type NotFoundError struct {
	Kind string
	Ref  string
}

func (e NotFoundError) Error() string {
	return fmt.Sprintf("%s not found: %s", e.Kind, e.Ref)
}

// Session is the single mutator of one document. Operations run to
// completion synchronously; there is no background work and no locking.
type Session struct {
	store store.Store
	doc   *model.Document
	f     *forest.Forest

	// onRender re-renders the view from current forest state; onFocus is the
	// deferred focus continuation, invoked only after onRender returned so
	// the target's view node exists. Both are supplied by the presentation
	// layer and may be nil (scripted use).
	onRender func()
	onFocus  func(id string)
}

// Open loads an existing document by id or name.
func Open(st store.Store, ref string) (*Session, error) {
	doc, ok, err := st.FindDocumentByName(context.Background(), ref)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, NotFoundError{Kind: "document", Ref: ref}
	}
	return &Session{store: st, doc: doc, f: forest.New(doc.Roots)}, nil
}

// OpenCurrent opens the workspace's current document, falling back to the
// most recently updated one, creating a first document when the workspace is
// empty.
func OpenCurrent(st store.Store) (*Session, error) {
	ctx := context.Background()
	if id, err := st.CurrentDocumentID(ctx); err == nil && id != "" {
		if doc, ok, err := st.LoadDocument(ctx, id); err == nil && ok {
			return &Session{store: st, doc: doc, f: forest.New(doc.Roots)}, nil
		}
	}
	docs, err := st.ListDocuments(ctx)
	if err != nil {
		return nil, err
	}
	if len(docs) > 0 {
		return Open(st, docs[0].ID)
	}
	return Create(st, "notes")
}

// Create makes a new document with a single empty root and persists it.
func Create(st store.Store, name string) (*Session, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, fmt.Errorf("document name is empty")
	}
	id, err := store.NewDocumentID()
	if err != nil {
		return nil, err
	}
	f := forest.New(nil)
	doc := &model.Document{ID: id, Name: name, Roots: f.Roots()}
	s := &Session{store: st, doc: doc, f: f}
	if err := s.persist(); err != nil {
		return nil, err
	}
	_ = st.AppendEvent(context.Background(), "document.create", id, map[string]any{"name": name})
	if err := st.SetCurrentDocumentID(context.Background(), id); err != nil {
		return nil, err
	}
	return s, nil
}

// SetHooks installs the presentation layer's re-render signal and focus
// continuation.
func (s *Session) SetHooks(onRender func(), onFocus func(id string)) {
	s.onRender = onRender
	s.onFocus = onFocus
}

func (s *Session) Forest() *forest.Forest { return s.f }

// Document returns the open document's metadata (roots reflect current
// forest state).
func (s *Session) Document() *model.Document {
	s.doc.Roots = s.f.Roots()
	return s.doc
}

// UpdateContent commits edited text for a node. Unknown ids are silent
// no-ops and do not persist.
func (s *Session) UpdateContent(id, text string) error {
	if !s.f.UpdateContent(id, text) {
		return nil
	}
	if err := s.persist(); err != nil {
		return err
	}
	_ = s.store.AppendEvent(context.Background(), "node.update", id, map[string]any{"doc": s.doc.ID})
	return nil
}

// InsertSiblingAfter creates an empty sibling after id and transfers focus
// to it. Returns the new node's id ("" on no-op).
func (s *Session) InsertSiblingAfter(id string) (string, error) {
	n, ok := s.f.InsertSiblingAfter(id)
	if !ok {
		return "", nil
	}
	if err := s.persist(); err != nil {
		return "", err
	}
	_ = s.store.AppendEvent(context.Background(), "node.insert", n.ID, map[string]any{"doc": s.doc.ID, "after": id})
	s.signal(n.ID)
	return n.ID, nil
}

// Indent moves id under its previous sibling and refocuses it. The caller
// (presentation layer) checks the depth bound before invoking.
func (s *Session) Indent(id string) error {
	if !s.f.Indent(id) {
		return nil
	}
	if err := s.persist(); err != nil {
		return err
	}
	_ = s.store.AppendEvent(context.Background(), "node.indent", id, map[string]any{"doc": s.doc.ID})
	s.signal(id)
	return nil
}

// Outdent moves id one level shallower (or deletes a root) and focuses the
// operation's focus target.
func (s *Session) Outdent(id string) error {
	focus, ok := s.f.Outdent(id)
	if !ok {
		return nil
	}
	if err := s.persist(); err != nil {
		return err
	}
	_ = s.store.AppendEvent(context.Background(), "node.outdent", id, map[string]any{"doc": s.doc.ID})
	s.signal(focus)
	return nil
}

// Delete removes id (reparenting its children) and focuses the node that
// shifted into its slot.
func (s *Session) Delete(id string) error {
	focus, ok := s.f.Delete(id)
	if !ok {
		return nil
	}
	if err := s.persist(); err != nil {
		return err
	}
	_ = s.store.AppendEvent(context.Background(), "node.delete", id, map[string]any{"doc": s.doc.ID})
	s.signal(focus)
	return nil
}

// ImportText replaces the document's entire forest with the parsed text and
// persists immediately.
func (s *Session) ImportText(text string) error {
	s.f = forest.ImportText(text)
	if err := s.persist(); err != nil {
		return err
	}
	_ = s.store.AppendEvent(context.Background(), "document.import", s.doc.ID, map[string]any{"nodes": s.f.Len()})
	s.signal("")
	return nil
}

// ExportText renders the document as tab-indented text.
func (s *Session) ExportText() string { return s.f.ExportText() }

func (s *Session) persist() error {
	s.doc.Roots = s.f.Roots()
	return s.store.SaveDocument(context.Background(), s.doc)
}

// signal re-renders, then transfers focus once the new view exists.
func (s *Session) signal(focusID string) {
	if s.onRender != nil {
		s.onRender()
	}
	if s.onFocus != nil {
		s.onFocus(focusID)
	}
}
