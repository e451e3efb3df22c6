package annotation

import (
	"errors"
	"fmt"
	"sort"

	"github.com/google/uuid"

	"github.com/iw2rmb/mention/internal/log"
	"github.com/iw2rmb/mention/vocab"
)

var (
	// ErrOverlappingFinalizedSpan is returned when a new finalized span would
	// share text with an existing one in the same block.
	ErrOverlappingFinalizedSpan = errors.New("span overlaps a finalized annotation")
	// ErrInvalidSpan is returned for negative, inverted or empty spans.
	ErrInvalidSpan = errors.New("invalid span")
	// ErrNotFound is returned when an ID names no stored annotation.
	ErrNotFound = errors.New("annotation not found")
)

// ID identifies one annotation for its whole lifetime.
type ID string

// State distinguishes a live trigger from a committed token.
type State uint8

const (
	InProgress State = iota
	Finalized
)

func (s State) String() string {
	switch s {
	case InProgress:
		return "in-progress"
	case Finalized:
		return "finalized"
	default:
		return fmt.Sprintf("state(%d)", uint8(s))
	}
}

// Annotation marks a span of one block as a token of some class.
type Annotation struct {
	ID    ID
	Block int
	Span  Span
	Class vocab.Class
	State State
}

// Option configures a Store.
type Option func(*Store)

// WithIDGenerator replaces the default UUID generator.
func WithIDGenerator(next func() ID) Option {
	return func(s *Store) {
		if next != nil {
			s.nextID = next
		}
	}
}

// Store maps text ranges to annotation state for one document. It is not
// safe for concurrent use; callers apply mutations in edit order.
type Store struct {
	finalized  map[ID]*Annotation
	inProgress *Annotation
	nextID     func() ID
}

// NewStore returns an empty store.
func NewStore(opts ...Option) *Store {
	s := &Store{
		finalized: make(map[ID]*Annotation),
		nextID:    func() ID { return ID(uuid.NewString()) },
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// UpsertInProgress records the live trigger. Any previous in-progress
// annotation, of any class, is replaced; its ID is kept when the class is
// unchanged so renderers can track one token across keystrokes.
func (s *Store) UpsertInProgress(block int, span Span, class vocab.Class) ID {
	var id ID
	if cur := s.inProgress; cur != nil && cur.Class == class {
		id = cur.ID
	} else {
		id = s.nextID()
	}
	s.inProgress = &Annotation{ID: id, Block: block, Span: span, Class: class, State: InProgress}
	return id
}

// ClearInProgress drops the live trigger, if any.
func (s *Store) ClearInProgress() {
	s.inProgress = nil
}

// InProgress returns the live trigger annotation.
func (s *Store) InProgress() (Annotation, bool) {
	if s.inProgress == nil {
		return Annotation{}, false
	}
	return *s.inProgress, true
}

// Finalize records a committed token and clears the in-progress annotation.
// When the in-progress annotation is the trigger being committed (same block
// and class, touching span) its ID carries over, so a token keeps one ID for
// its whole lifetime.
func (s *Store) Finalize(block int, span Span, class vocab.Class) (ID, error) {
	if block < 0 || !span.Valid() || span.IsEmpty() {
		return "", fmt.Errorf("finalize %s in block %d: %w", span, block, ErrInvalidSpan)
	}
	for _, a := range s.finalized {
		if a.Block == block && a.Span.Overlaps(span) {
			log.Warn(log.CatStore, "finalize rejected", "block", block, "span", span, "existing", a.ID)
			return "", fmt.Errorf("finalize %s in block %d: %w (%s)", span, block, ErrOverlappingFinalizedSpan, a.ID)
		}
	}
	var id ID
	if cur := s.inProgress; cur != nil && cur.Block == block && cur.Class == class &&
		cur.Span.Start <= span.End && span.Start <= cur.Span.End {
		id = cur.ID
	} else {
		id = s.nextID()
	}
	s.finalized[id] = &Annotation{ID: id, Block: block, Span: span, Class: class, State: Finalized}
	s.inProgress = nil
	log.Debug(log.CatStore, "finalized", "id", id, "block", block, "span", span, "class", class)
	return id, nil
}

// ShiftAfterEdit adjusts spans of block after delta graphemes were inserted
// at editPos (delta > 0) or the range [editPos, editPos-delta) was deleted
// (delta < 0). Spans starting at or after editPos move by delta; a span
// straddling editPos only has its end moved. Boundaries inside a deleted
// range collapse to editPos, and spans collapsed to nothing are dropped.
func (s *Store) ShiftAfterEdit(block, editPos, delta int) {
	if delta == 0 {
		return
	}
	m := mapping{
		start: Position{Block: block, Offset: editPos},
		end:   Position{Block: block, Offset: editPos},
	}
	if delta > 0 {
		m.tail = delta
	} else {
		m.end.Offset = editPos - delta
	}
	s.remap(m, false)
}

// ApplyEdit maps every stored span through e. Finalized annotations whose
// interior text the edit modified are detached: their records are removed
// while the text stays. The IDs of all removed finalized annotations are
// returned in document order.
func (s *Store) ApplyEdit(e Edit) []ID {
	return s.remap(mappingFor(e), true)
}

func (s *Store) remap(m mapping, detach bool) []ID {
	var removed []*Annotation
	for id, a := range s.finalized {
		if detach && m.touchesInterior(a.Block, a.Span) {
			removed = append(removed, a)
			delete(s.finalized, id)
			continue
		}
		if !s.move(a, m) {
			removed = append(removed, a)
			delete(s.finalized, id)
		}
	}
	if s.inProgress != nil && !s.move(s.inProgress, m) {
		s.inProgress = nil
	}

	sortAnnotations(removed)
	ids := make([]ID, len(removed))
	for i, a := range removed {
		ids[i] = a.ID
		log.Debug(log.CatStore, "detached", "id", a.ID, "block", a.Block, "span", a.Span)
	}
	return ids
}

// move maps a in place and reports whether it still covers any text.
func (s *Store) move(a *Annotation, m mapping) bool {
	start := m.mapStart(Position{Block: a.Block, Offset: a.Span.Start})
	end := m.mapEnd(Position{Block: a.Block, Offset: a.Span.End})
	if start.Block != end.Block || end.Offset <= start.Offset {
		return false
	}
	a.Block = start.Block
	a.Span = Span{Start: start.Offset, End: end.Offset}
	return true
}

// Remove deletes a finalized annotation record. The caller deletes the text.
func (s *Store) Remove(id ID) bool {
	if _, ok := s.finalized[id]; !ok {
		return false
	}
	delete(s.finalized, id)
	log.Debug(log.CatStore, "removed", "id", id)
	return true
}

// Get returns the annotation with id, finalized or in-progress.
func (s *Store) Get(id ID) (Annotation, error) {
	if a, ok := s.finalized[id]; ok {
		return *a, nil
	}
	if s.inProgress != nil && s.inProgress.ID == id {
		return *s.inProgress, nil
	}
	return Annotation{}, fmt.Errorf("get %q: %w", id, ErrNotFound)
}

// Finalized returns the finalized annotations of block ordered by start.
func (s *Store) Finalized(block int) []Annotation {
	var out []Annotation
	for _, a := range s.finalized {
		if a.Block == block {
			out = append(out, *a)
		}
	}
	sortValues(out)
	return out
}

// FinalizedSpans returns the spans of Finalized(block).
func (s *Store) FinalizedSpans(block int) []Span {
	list := s.Finalized(block)
	if len(list) == 0 {
		return nil
	}
	spans := make([]Span, len(list))
	for i, a := range list {
		spans[i] = a.Span
	}
	return spans
}

// All returns every annotation ordered by block then start.
func (s *Store) All() []Annotation {
	out := make([]Annotation, 0, len(s.finalized)+1)
	for _, a := range s.finalized {
		out = append(out, *a)
	}
	if s.inProgress != nil {
		out = append(out, *s.inProgress)
	}
	sortValues(out)
	return out
}

// Len returns the number of finalized annotations.
func (s *Store) Len() int { return len(s.finalized) }

func less(a, b *Annotation) bool {
	if a.Block != b.Block {
		return a.Block < b.Block
	}
	if a.Span.Start != b.Span.Start {
		return a.Span.Start < b.Span.Start
	}
	return a.State > b.State
}

func sortAnnotations(list []*Annotation) {
	sort.Slice(list, func(i, j int) bool { return less(list[i], list[j]) })
}

func sortValues(list []Annotation) {
	sort.Slice(list, func(i, j int) bool { return less(&list[i], &list[j]) })
}
