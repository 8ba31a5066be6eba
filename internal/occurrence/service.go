package occurrence

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"carometro/internal/audit"
	"carometro/internal/auth"
	"carometro/internal/metrics"
)

// ErrInvalid tags validation failures so the HTTP layer answers 400 instead
// of treating them like backend faults.
var ErrInvalid = errors.New("invalid occurrence")

// Store is the persistence boundary the service talks to.
type Store interface {
	List(ctx context.Context, f Filter) ([]Occurrence, error)
	Get(ctx context.Context, id string) (Occurrence, error)
	ListByGroup(ctx context.Context, groupID, excludeID string) ([]Occurrence, error)
	Insert(ctx context.Context, o Occurrence) (Occurrence, error)
	Update(ctx context.Context, o Occurrence) error
	Delete(ctx context.Context, id string) error
}

// StudentNames resolves student display names for audit text.
type StudentNames interface {
	StudentName(ctx context.Context, id string) (string, error)
}

// Service owns occurrence reads and the group fan-out writes. Group batches
// are applied step by step with no rollback: a mid-batch failure aborts the
// remaining steps and surfaces the error, leaving earlier steps applied.
type Service struct {
	store Store
	names StudentNames
	audit audit.Recorder
}

// NewService wires the service.
func NewService(store Store, names StudentNames, recorder audit.Recorder) *Service {
	return &Service{store: store, names: names, audit: recorder}
}

// List returns occurrences the viewer may see, newest first.
func (s *Service) List(ctx context.Context, viewer auth.User, f Filter) ([]Occurrence, error) {
	all, err := s.store.List(ctx, f)
	if err != nil {
		return nil, err
	}
	visible := make([]Occurrence, 0, len(all))
	for _, o := range all {
		if o.Confidential && !auth.CanSeeConfidential(viewer, o.RegisteredBy) {
			continue
		}
		visible = append(visible, o)
	}
	return visible, nil
}

// Get returns one occurrence; confidential records are not found for viewers
// outside the visibility rule.
func (s *Service) Get(ctx context.Context, viewer auth.User, id string) (Occurrence, error) {
	o, err := s.store.Get(ctx, id)
	if err != nil {
		return Occurrence{}, err
	}
	if o.Confidential && !auth.CanSeeConfidential(viewer, o.RegisteredBy) {
		return Occurrence{}, ErrNotFound
	}
	return o, nil
}

// GroupMembers returns the other records of an occurrence's group.
func (s *Service) GroupMembers(ctx context.Context, o Occurrence) ([]Occurrence, error) {
	return s.store.ListByGroup(ctx, o.GroupID, o.ID)
}

// Create registers the incident for every selected student. More than one
// student makes it a collective occurrence under a freshly minted group ID.
// One record is inserted per student; an insert failure aborts the rest.
func (s *Service) Create(ctx context.Context, actor auth.User, content Content, studentIDs []string) ([]Occurrence, error) {
	if err := validateContent(content); err != nil {
		return nil, err
	}
	if len(studentIDs) == 0 {
		return nil, fmt.Errorf("%w: at least one student required", ErrInvalid)
	}

	groupID := ""
	if len(studentIDs) > 1 {
		groupID = uuid.NewString()
	}

	created := make([]Occurrence, 0, len(studentIDs))
	for _, studentID := range studentIDs {
		o := Occurrence{
			StudentID:    studentID,
			GroupID:      groupID,
			Date:         content.Date,
			Title:        content.Title,
			Description:  content.Description,
			Category:     content.Category,
			Confidential: content.Confidential,
			RegisteredBy: actor.Name,
		}
		inserted, err := s.store.Insert(ctx, o)
		if err != nil {
			return created, fmt.Errorf("insert occurrence for student %s: %w", studentID, err)
		}
		created = append(created, inserted)
		metrics.Mutations.WithLabelValues("occurrence", "create").Inc()
		s.audit.Record(ctx, actor.Name, "Registro de Ocorrência",
			fmt.Sprintf("Nova ocorrência registrada para %s.\n\nTítulo: %s\nCategoria: %s\nDescrição: %s",
				s.studentName(ctx, studentID), content.Title, content.Category, content.Description))
	}
	return created, nil
}

// Edit reconciles an edit submission against the record's group: content is
// synced to surviving members, removed members are deleted, added students
// get fresh records stamped with the acting user. Steps run in plan order
// and stop at the first failure.
func (s *Service) Edit(ctx context.Context, actor auth.User, id string, content Content, newStudentIDs []string) (Occurrence, error) {
	if err := validateContent(content); err != nil {
		return Occurrence{}, err
	}
	prior, err := s.store.Get(ctx, id)
	if err != nil {
		return Occurrence{}, err
	}
	peers, err := s.store.ListByGroup(ctx, prior.GroupID, prior.ID)
	if err != nil {
		return Occurrence{}, err
	}

	plan := PlanGroupEdit(prior, peers, content, newStudentIDs, actor.Name)

	if err := s.store.Update(ctx, plan.Update); err != nil {
		return Occurrence{}, fmt.Errorf("update occurrence: %w", err)
	}
	for _, deleteID := range plan.Deletes {
		if err := s.store.Delete(ctx, deleteID); err != nil {
			return plan.Update, fmt.Errorf("remove group member %s: %w", deleteID, err)
		}
	}
	for _, ins := range plan.Inserts {
		if _, err := s.store.Insert(ctx, ins); err != nil {
			return plan.Update, fmt.Errorf("add group member for student %s: %w", ins.StudentID, err)
		}
	}
	for _, peer := range plan.PeerUpdates {
		if err := s.store.Update(ctx, peer); err != nil {
			return plan.Update, fmt.Errorf("sync group member %s: %w", peer.ID, err)
		}
	}

	metrics.Mutations.WithLabelValues("occurrence", "update").Inc()

	changes := audit.Detect(prior.Snapshot(), plan.Update.Snapshot(), FieldSpecs)
	details := fmt.Sprintf("A ocorrência %q foi editada por %s.\n\n%s",
		plan.Update.Title, actor.Name, audit.FormatChanges(changes))
	if n := len(plan.Inserts); n > 0 {
		details += fmt.Sprintf("\n%d aluno(s) adicionado(s) à ocorrência coletiva.", n)
	}
	if n := len(plan.Deletes); n > 0 {
		details += fmt.Sprintf("\n%d aluno(s) removido(s) da ocorrência coletiva.", n)
	}
	s.audit.Record(ctx, actor.Name, "Edição de Ocorrência", details)

	return plan.Update, nil
}

// Delete removes a single record. Group peers are untouched; removing a
// member from a collective occurrence goes through Edit.
func (s *Service) Delete(ctx context.Context, actor auth.User, id string) error {
	o, err := s.store.Get(ctx, id)
	if err != nil {
		return err
	}
	if err := s.store.Delete(ctx, id); err != nil {
		return err
	}
	metrics.Mutations.WithLabelValues("occurrence", "delete").Inc()
	s.audit.Record(ctx, actor.Name, "Exclusão de Ocorrência",
		fmt.Sprintf("A ocorrência %q (ID: %s) do aluno %s foi excluída permanentemente por %s.",
			o.Title, o.ID, s.studentName(ctx, o.StudentID), actor.Name))
	return nil
}

func (s *Service) studentName(ctx context.Context, id string) string {
	if s.names == nil {
		return "Aluno"
	}
	name, err := s.names.StudentName(ctx, id)
	if err != nil || name == "" {
		return "Aluno"
	}
	return name
}

func validateContent(c Content) error {
	if c.Title == "" {
		return fmt.Errorf("%w: title required", ErrInvalid)
	}
	if c.Description == "" {
		return fmt.Errorf("%w: description required", ErrInvalid)
	}
	if c.Date == "" {
		return fmt.Errorf("%w: date required", ErrInvalid)
	}
	if !c.Category.IsValid() {
		return fmt.Errorf("%w: unknown category %q", ErrInvalid, c.Category)
	}
	return nil
}
