package occurrence

import (
	"context"
	"errors"
	"sort"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"carometro/internal/auth"
)

type fakeStore struct {
	records   map[string]Occurrence
	nextID    int
	insertErr error
	deleteErr error
}

func newFakeStore(records ...Occurrence) *fakeStore {
	s := &fakeStore{records: make(map[string]Occurrence)}
	for _, o := range records {
		s.records[o.ID] = o
	}
	return s
}

func (s *fakeStore) List(ctx context.Context, f Filter) ([]Occurrence, error) {
	var out []Occurrence
	for _, o := range s.records {
		if f.StudentID != "" && o.StudentID != f.StudentID {
			continue
		}
		out = append(out, o)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (s *fakeStore) Get(ctx context.Context, id string) (Occurrence, error) {
	o, ok := s.records[id]
	if !ok {
		return Occurrence{}, ErrNotFound
	}
	return o, nil
}

func (s *fakeStore) ListByGroup(ctx context.Context, groupID, excludeID string) ([]Occurrence, error) {
	if groupID == "" {
		return nil, nil
	}
	var out []Occurrence
	for _, o := range s.records {
		if o.GroupID == groupID && o.ID != excludeID {
			out = append(out, o)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (s *fakeStore) Insert(ctx context.Context, o Occurrence) (Occurrence, error) {
	if s.insertErr != nil {
		return Occurrence{}, s.insertErr
	}
	if o.ID == "" {
		s.nextID++
		o.ID = string(rune('a' + s.nextID))
	}
	s.records[o.ID] = o
	return o, nil
}

func (s *fakeStore) Update(ctx context.Context, o Occurrence) error {
	if _, ok := s.records[o.ID]; !ok {
		return ErrNotFound
	}
	s.records[o.ID] = o
	return nil
}

func (s *fakeStore) Delete(ctx context.Context, id string) error {
	if s.deleteErr != nil {
		return s.deleteErr
	}
	delete(s.records, id)
	return nil
}

type recordedEntry struct {
	User, Action, Details string
}

type fakeRecorder struct {
	entries []recordedEntry
}

func (r *fakeRecorder) Record(ctx context.Context, user, action, details string) {
	r.entries = append(r.entries, recordedEntry{user, action, details})
}

type fakeNames map[string]string

func (n fakeNames) StudentName(ctx context.Context, id string) (string, error) {
	name, ok := n[id]
	if !ok {
		return "", errors.New("unknown student")
	}
	return name, nil
}

var maria = auth.User{Name: "Maria", Role: auth.RoleEditor}

func TestService_CreateCollective(t *testing.T) {
	store := newFakeStore()
	rec := &fakeRecorder{}
	svc := NewService(store, fakeNames{"100": "Ana", "200": "Bruno"}, rec)

	created, err := svc.Create(context.Background(), maria, briga(), []string{"100", "200"})
	require.NoError(t, err)
	require.Len(t, created, 2)

	assert.NotEmpty(t, created[0].GroupID)
	assert.Equal(t, created[0].GroupID, created[1].GroupID)
	assert.Equal(t, "Maria", created[0].RegisteredBy)

	require.Len(t, rec.entries, 2)
	assert.Equal(t, "Registro de Ocorrência", rec.entries[0].Action)
	assert.Contains(t, rec.entries[0].Details, "Ana")
	assert.Contains(t, rec.entries[1].Details, "Bruno")
}

func TestService_CreateSingleHasNoGroup(t *testing.T) {
	store := newFakeStore()
	svc := NewService(store, nil, &fakeRecorder{})

	created, err := svc.Create(context.Background(), maria, briga(), []string{"100"})
	require.NoError(t, err)
	require.Len(t, created, 1)
	assert.Empty(t, created[0].GroupID)
}

func TestService_CreateValidation(t *testing.T) {
	svc := NewService(newFakeStore(), nil, &fakeRecorder{})

	_, err := svc.Create(context.Background(), maria, briga(), nil)
	assert.ErrorIs(t, err, ErrInvalid, "no students")

	bad := briga()
	bad.Category = "Inexistente"
	_, err = svc.Create(context.Background(), maria, bad, []string{"100"})
	assert.ErrorIs(t, err, ErrInvalid, "unknown category")

	bad = briga()
	bad.Title = ""
	_, err = svc.Create(context.Background(), maria, bad, []string{"100"})
	assert.ErrorIs(t, err, ErrInvalid, "missing title")
}

func TestService_CreateStoreFailureIsNotValidation(t *testing.T) {
	store := newFakeStore()
	store.insertErr = errors.New("db down")
	svc := NewService(store, nil, &fakeRecorder{})

	created, err := svc.Create(context.Background(), maria, briga(), []string{"100"})
	require.Error(t, err)
	assert.Empty(t, created)
	assert.NotErrorIs(t, err, ErrInvalid)
}

func TestService_EditAppliesWholePlan(t *testing.T) {
	store := newFakeStore(
		Occurrence{ID: "occ-1", StudentID: "100", GroupID: "g-1", Date: "2026-03-10", Title: "Antigo", Description: "x", Category: CategoryBehavioral},
		Occurrence{ID: "occ-2", StudentID: "200", GroupID: "g-1", Date: "2026-03-10", Title: "Antigo", Description: "x", Category: CategoryBehavioral, RegisteredBy: "Prof. Carlos"},
		Occurrence{ID: "occ-3", StudentID: "300", GroupID: "g-1", Date: "2026-03-10", Title: "Antigo", Description: "x", Category: CategoryBehavioral},
	)
	rec := &fakeRecorder{}
	svc := NewService(store, nil, rec)

	// Keep 200, drop 300, add 400.
	content := briga()
	updated, err := svc.Edit(context.Background(), maria, "occ-1", content, []string{"200", "400"})
	require.NoError(t, err)
	assert.Equal(t, "g-1", updated.GroupID)
	assert.Equal(t, "Briga no pátio", updated.Title)

	_, hasRemoved := store.records["occ-3"]
	assert.False(t, hasRemoved, "removed member's record is deleted")

	peer := store.records["occ-2"]
	assert.Equal(t, "Briga no pátio", peer.Title, "surviving peer content is synced")
	assert.Equal(t, "Prof. Carlos", peer.RegisteredBy)

	var added *Occurrence
	for _, o := range store.records {
		if o.StudentID == "400" {
			o := o
			added = &o
		}
	}
	require.NotNil(t, added, "new member record inserted")
	assert.Equal(t, "g-1", added.GroupID)
	assert.Equal(t, "Maria", added.RegisteredBy)

	require.Len(t, rec.entries, 1)
	assert.Equal(t, "Edição de Ocorrência", rec.entries[0].Action)
	assert.Contains(t, rec.entries[0].Details, `• Título: "Antigo" → "Briga no pátio"`)
	assert.Contains(t, rec.entries[0].Details, "1 aluno(s) adicionado(s)")
	assert.Contains(t, rec.entries[0].Details, "1 aluno(s) removido(s)")
}

func TestService_EditAbortsOnDeleteFailure(t *testing.T) {
	store := newFakeStore(
		Occurrence{ID: "occ-1", StudentID: "100", GroupID: "g-1", Date: "2026-03-10", Title: "Antigo", Description: "x", Category: CategoryBehavioral},
		Occurrence{ID: "occ-2", StudentID: "200", GroupID: "g-1", Date: "2026-03-10", Title: "Antigo", Description: "x", Category: CategoryBehavioral},
	)
	store.deleteErr = errors.New("db down")
	svc := NewService(store, nil, &fakeRecorder{})

	_, err := svc.Edit(context.Background(), maria, "occ-1", briga(), nil)
	require.Error(t, err)

	// The self update landed before the failing delete; no rollback.
	assert.Equal(t, "Briga no pátio", store.records["occ-1"].Title)
	_, stillThere := store.records["occ-2"]
	assert.True(t, stillThere)
}

func TestService_ConfidentialVisibility(t *testing.T) {
	confidential := Occurrence{ID: "occ-1", StudentID: "100", Date: "2026-03-10", Title: "Sigilosa", Description: "x", Category: CategoryMedical, RegisteredBy: "Prof. Carlos", Confidential: true}
	store := newFakeStore(confidential)
	svc := NewService(store, nil, &fakeRecorder{})

	outsider := auth.User{Name: "Outro", Role: auth.RoleEditor}
	author := auth.User{Name: "Prof. Carlos", Role: auth.RoleUser}
	manager := auth.User{Name: "Direção", Role: auth.RoleManager}

	list, err := svc.List(context.Background(), outsider, Filter{})
	require.NoError(t, err)
	assert.Empty(t, list, "non-author below manager cannot see confidential records")

	_, err = svc.Get(context.Background(), outsider, "occ-1")
	assert.ErrorIs(t, err, ErrNotFound)

	list, err = svc.List(context.Background(), author, Filter{})
	require.NoError(t, err)
	assert.Len(t, list, 1, "author always sees their record")

	got, err := svc.Get(context.Background(), manager, "occ-1")
	require.NoError(t, err)
	assert.Equal(t, "Sigilosa", got.Title)
}

func TestService_DeleteAudits(t *testing.T) {
	store := newFakeStore(Occurrence{ID: "occ-1", StudentID: "100", Title: "Briga no pátio"})
	rec := &fakeRecorder{}
	svc := NewService(store, fakeNames{"100": "Ana"}, rec)

	err := svc.Delete(context.Background(), maria, "occ-1")
	require.NoError(t, err)
	assert.Empty(t, store.records)

	require.Len(t, rec.entries, 1)
	assert.Equal(t, "Exclusão de Ocorrência", rec.entries[0].Action)
	assert.Contains(t, rec.entries[0].Details, "Ana")
	assert.Contains(t, rec.entries[0].Details, "Maria")
}
