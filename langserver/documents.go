package langserver

import (
	"sort"
	"sync"

	protocol "github.com/tliron/glsp/protocol_3_16"
)

// Document is a snapshot of an open file. Generation increases with every
// open or update across the whole store, so it identifies the exact text
// an analysis ran against.
type Document struct {
	URI        string
	Version    protocol.Integer
	Text       string
	Generation uint64
}

// DocumentStore holds the current full text of every open document.
type DocumentStore struct {
	mu         sync.RWMutex
	docs       map[string]*Document
	generation uint64
}

func NewDocumentStore() *DocumentStore {
	return &DocumentStore{
		docs: make(map[string]*Document),
	}
}

// Open adds or replaces a document and returns a snapshot of it.
func (s *DocumentStore) Open(uri string, version protocol.Integer, text string) Document {
	return s.put(uri, version, text)
}

// Update replaces the whole text of a document. Updating a document that
// was never opened adds it.
func (s *DocumentStore) Update(uri string, version protocol.Integer, text string) Document {
	return s.put(uri, version, text)
}

func (s *DocumentStore) put(uri string, version protocol.Integer, text string) Document {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.generation++
	doc := &Document{
		URI:        uri,
		Version:    version,
		Text:       text,
		Generation: s.generation,
	}
	s.docs[uri] = doc
	return *doc
}

// Close removes a document and reports whether it was open.
func (s *DocumentStore) Close(uri string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	_, ok := s.docs[uri]
	delete(s.docs, uri)
	return ok
}

func (s *DocumentStore) Get(uri string) (Document, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	doc, ok := s.docs[uri]
	if !ok {
		return Document{}, false
	}
	return *doc, true
}

// URIs returns the open document URIs in sorted order.
func (s *DocumentStore) URIs() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	uris := make([]string, 0, len(s.docs))
	for uri := range s.docs {
		uris = append(uris, uri)
	}
	sort.Strings(uris)
	return uris
}

// PublishIfCurrent calls publish only if uri is still open at the given
// generation, and reports whether it did. publish runs under the read lock,
// so no update can land between the check and the publish.
func (s *DocumentStore) PublishIfCurrent(uri string, generation uint64, publish func()) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	doc, ok := s.docs[uri]
	if !ok || doc.Generation != generation {
		return false
	}
	publish()
	return true
}
