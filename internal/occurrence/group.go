package occurrence

import "github.com/google/uuid"

// Plan is the reconciliation outcome for one group edit: the edited record
// itself, peers to delete, new members to insert and surviving peers to sync.
// It is applied strictly in that order; a failed step aborts the rest.
type Plan struct {
	Update      Occurrence
	Deletes     []string
	Inserts     []Occurrence
	PeerUpdates []Occurrence
}

// GroupID returns the group identifier the plan resolved for the edited
// record; empty means the record is (or reverted to) standalone.
func (p Plan) GroupID() string {
	return p.Update.GroupID
}

// PlanGroupEdit reconciles an edit of prior against the user's new choice of
// fellow subject students. peers are the current group members other than
// the edited record itself; newStudentIDs is the desired set of other
// students sharing the incident (the edited record's own student is implied
// and ignored if present).
//
// The planner is pure; mintGroupID in the returned plan is the only
// non-deterministic piece and happens here so callers apply the plan as-is.
func PlanGroupEdit(prior Occurrence, peers []Occurrence, content Content, newStudentIDs []string, actor string) Plan {
	desired := make(map[string]bool, len(newStudentIDs))
	var ordered []string
	for _, id := range newStudentIDs {
		if id == "" || id == prior.StudentID || desired[id] {
			continue
		}
		desired[id] = true
		ordered = append(ordered, id)
	}

	existing := make(map[string]bool, len(peers))
	for _, p := range peers {
		existing[p.StudentID] = true
	}

	groupID := prior.GroupID
	switch {
	case groupID != "" && len(ordered) == 0 && len(peers) > 0:
		// Every other member was removed; the record reverts to standalone.
		groupID = ""
	case groupID == "" && len(ordered) > 0:
		groupID = uuid.NewString()
	}

	updated := prior.withContent(content)
	updated.GroupID = groupID
	plan := Plan{Update: updated}

	for _, p := range peers {
		if !desired[p.StudentID] {
			plan.Deletes = append(plan.Deletes, p.ID)
			continue
		}
		synced := p.withContent(content)
		synced.GroupID = groupID
		plan.PeerUpdates = append(plan.PeerUpdates, synced)
	}

	for _, id := range ordered {
		if existing[id] {
			continue
		}
		plan.Inserts = append(plan.Inserts, Occurrence{
			ID:           uuid.NewString(),
			StudentID:    id,
			GroupID:      groupID,
			Date:         content.Date,
			Title:        content.Title,
			Description:  content.Description,
			Category:     content.Category,
			Confidential: content.Confidential,
			RegisteredBy: actor,
		})
	}

	return plan
}
