package repository

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"formsmith/internal/model"
)

// In-memory stores for tests and the CLI. Values are copied in and out so
// callers never share state with the store.

type memoryFormStore struct {
	mu    sync.RWMutex
	forms map[string]model.Form
}

func NewMemoryFormStore() FormStore {
	return &memoryFormStore{forms: make(map[string]model.Form)}
}

func (s *memoryFormStore) Put(ctx context.Context, form *model.Form) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := time.Now()
	if form.ID == "" {
		form.ID = "f_" + uuid.New().String()
		form.CreatedAt = now
	}
	form.UpdatedAt = now
	s.forms[form.ID] = cloneForm(form)
	return form.ID, nil
}

func (s *memoryFormStore) Get(ctx context.Context, id string) (*model.Form, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	form, ok := s.forms[id]
	if !ok {
		return nil, nil
	}
	out := cloneForm(&form)
	return &out, nil
}

func (s *memoryFormStore) ListByOwner(ctx context.Context, ownerID string) ([]*model.Form, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := []*model.Form{}
	for _, f := range s.forms {
		if f.OwnerID == ownerID {
			c := cloneForm(&f)
			out = append(out, &c)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].UpdatedAt.After(out[j].UpdatedAt) })
	return out, nil
}

func cloneForm(f *model.Form) model.Form {
	c := *f
	c.Questions = make([]model.Question, len(f.Questions))
	for i, q := range f.Questions {
		q.Options = cloneStrings(q.Options)
		q.Rows = cloneStrings(q.Rows)
		q.Columns = cloneStrings(q.Columns)
		c.Questions[i] = q
	}
	return c
}

func cloneStrings(s []string) []string {
	if s == nil {
		return nil
	}
	return append([]string{}, s...)
}

type memoryResponseStore struct {
	mu        sync.RWMutex
	responses map[string][]model.FormResponse
}

func NewMemoryResponseStore() ResponseStore {
	return &memoryResponseStore{responses: make(map[string][]model.FormResponse)}
}

func (s *memoryResponseStore) Add(ctx context.Context, resp *model.FormResponse) error {
	prepareResponse(resp)

	c := *resp
	c.Answers = make(map[string]string, len(resp.Answers))
	for k, v := range resp.Answers {
		c.Answers[k] = v
	}

	s.mu.Lock()
	s.responses[resp.FormID] = append(s.responses[resp.FormID], c)
	s.mu.Unlock()
	return nil
}

func (s *memoryResponseStore) ListByForm(ctx context.Context, formID string) ([]*model.FormResponse, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]*model.FormResponse, 0, len(s.responses[formID]))
	for _, r := range s.responses[formID] {
		r := r
		out = append(out, &r)
	}
	return out, nil
}

type memoryPublicationStore struct {
	mu   sync.RWMutex
	pubs map[string][]model.Publication
}

func NewMemoryPublicationStore() PublicationStore {
	return &memoryPublicationStore{pubs: make(map[string][]model.Publication)}
}

func (s *memoryPublicationStore) Save(ctx context.Context, pub *model.Publication) error {
	preparePublication(pub)

	c := *pub
	c.Items = append([]model.ItemOutcome(nil), pub.Items...)

	s.mu.Lock()
	s.pubs[pub.FormID] = append(s.pubs[pub.FormID], c)
	s.mu.Unlock()
	return nil
}

// ListByForm returns newest first, matching the MongoDB store
func (s *memoryPublicationStore) ListByForm(ctx context.Context, formID string) ([]*model.Publication, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	list := s.pubs[formID]
	out := make([]*model.Publication, 0, len(list))
	for i := len(list) - 1; i >= 0; i-- {
		p := list[i]
		out = append(out, &p)
	}
	return out, nil
}
