package student

import (
	"context"
	"errors"
	"fmt"

	"carometro/internal/audit"
	"carometro/internal/auth"
	"carometro/internal/metrics"
)

// Store is the persistence boundary the service talks to.
type Store interface {
	List(ctx context.Context) ([]Student, error)
	Get(ctx context.Context, id string) (Student, error)
	Create(ctx context.Context, st Student) error
	Update(ctx context.Context, st Student) error
}

// Service owns roster reads and mutations. Every successful mutation emits
// one audit entry and invalidates the roster cache.
type Service struct {
	store Store
	cache *RosterCache
	audit audit.Recorder
}

// NewService wires the service. cache may be nil.
func NewService(store Store, cache *RosterCache, recorder audit.Recorder) *Service {
	return &Service{store: store, cache: cache, audit: recorder}
}

// List returns the filtered roster sorted by name.
func (s *Service) List(ctx context.Context, f Filter) ([]Student, error) {
	students, ok := s.cache.Get(ctx)
	if !ok {
		var err error
		students, err = s.store.List(ctx)
		if err != nil {
			return nil, err
		}
		s.cache.Set(ctx, students)
	}
	out := f.Apply(students)
	SortByName(out)
	return out, nil
}

// Get returns one student.
func (s *Service) Get(ctx context.Context, id string) (Student, error) {
	return s.store.Get(ctx, id)
}

// Create registers a new student.
func (s *Service) Create(ctx context.Context, actor auth.User, st Student) error {
	if err := validate(st); err != nil {
		return err
	}
	if err := s.store.Create(ctx, st); err != nil {
		return err
	}
	s.cache.Invalidate(ctx)
	metrics.Mutations.WithLabelValues("student", "create").Inc()
	s.audit.Record(ctx, actor.Name, "Cadastro de Aluno",
		fmt.Sprintf("Aluno %s (RA: %s) cadastrado na turma %s por %s.",
			st.Name, st.RegistrationNumber, st.Grade, actor.Name))
	return nil
}

// Update persists an edited record and logs the field-level diff.
func (s *Service) Update(ctx context.Context, actor auth.User, updated Student) error {
	if err := validate(updated); err != nil {
		return err
	}
	old, err := s.store.Get(ctx, updated.ID)
	if err != nil {
		return err
	}
	if err := s.store.Update(ctx, updated); err != nil {
		return err
	}
	s.cache.Invalidate(ctx)
	metrics.Mutations.WithLabelValues("student", "update").Inc()

	changes := audit.Detect(old.Snapshot(), updated.Snapshot(), FieldSpecs)
	details := fmt.Sprintf("O perfil de %s (RA: %s) foi atualizado por %s.\n\n%s",
		updated.Name, updated.RegistrationNumber, actor.Name, audit.FormatChanges(changes))
	s.audit.Record(ctx, actor.Name, "Edição de Aluno", details)
	return nil
}

// SetPhoto stores a freshly uploaded photo URL and audits it without echoing
// the URL into the log.
func (s *Service) SetPhoto(ctx context.Context, actor auth.User, id, photoURL string) error {
	st, err := s.store.Get(ctx, id)
	if err != nil {
		return err
	}
	st.PhotoURL = photoURL
	if err := s.store.Update(ctx, st); err != nil {
		return err
	}
	s.cache.Invalidate(ctx)
	metrics.Mutations.WithLabelValues("student", "photo").Inc()
	s.audit.Record(ctx, actor.Name, "Edição de Aluno",
		fmt.Sprintf("Foto de perfil de %s (RA: %s) atualizada por %s.",
			st.Name, st.RegistrationNumber, actor.Name))
	return nil
}

func validate(st Student) error {
	if st.ID == "" {
		return errors.New("student id required")
	}
	if st.Name == "" {
		return errors.New("student name required")
	}
	return nil
}
