package occurrence

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func briga() Content {
	return Content{
		Date:        "2026-03-10",
		Title:       "Briga no pátio",
		Description: "Discussão durante o recreio.",
		Category:    CategoryBehavioral,
	}
}

func TestPlanGroupEdit_StandaloneBecomesGroup(t *testing.T) {
	prior := Occurrence{ID: "occ-1", StudentID: "100", RegisteredBy: "Prof. Carlos"}
	content := briga()

	plan := PlanGroupEdit(prior, nil, content, []string{"200", "300"}, "Maria")

	require.NotEmpty(t, plan.GroupID(), "a group ID must be minted")
	assert.Equal(t, plan.GroupID(), plan.Update.GroupID)
	assert.Empty(t, plan.Deletes)
	assert.Empty(t, plan.PeerUpdates)

	require.Len(t, plan.Inserts, 2)
	for _, ins := range plan.Inserts {
		assert.Equal(t, plan.GroupID(), ins.GroupID)
		assert.Equal(t, content.Title, ins.Title)
		assert.Equal(t, content.Description, ins.Description)
		assert.Equal(t, content.Date, ins.Date)
		assert.Equal(t, "Maria", ins.RegisteredBy, "new members are stamped with the acting user")
		assert.NotEmpty(t, ins.ID)
	}
	assert.Equal(t, "200", plan.Inserts[0].StudentID)
	assert.Equal(t, "300", plan.Inserts[1].StudentID)

	// The edited record keeps its own author.
	assert.Equal(t, "Prof. Carlos", plan.Update.RegisteredBy)
}

func TestPlanGroupEdit_RemoveOneMember(t *testing.T) {
	prior := Occurrence{ID: "occ-1", StudentID: "100", GroupID: "g-1"}
	peers := []Occurrence{
		{ID: "occ-2", StudentID: "200", GroupID: "g-1", RegisteredBy: "Prof. Carlos"},
		{ID: "occ-3", StudentID: "300", GroupID: "g-1"},
	}

	plan := PlanGroupEdit(prior, peers, briga(), []string{"200"}, "Maria")

	assert.Equal(t, "g-1", plan.GroupID(), "group ID survives while members remain")
	assert.Equal(t, []string{"occ-3"}, plan.Deletes)
	assert.Empty(t, plan.Inserts)

	require.Len(t, plan.PeerUpdates, 1)
	assert.Equal(t, "occ-2", plan.PeerUpdates[0].ID)
	assert.Equal(t, "200", plan.PeerUpdates[0].StudentID)
	assert.Equal(t, "Briga no pátio", plan.PeerUpdates[0].Title)
	assert.Equal(t, "Prof. Carlos", plan.PeerUpdates[0].RegisteredBy, "peer authorship is preserved")
}

func TestPlanGroupEdit_RemoveLastPeerClearsGroup(t *testing.T) {
	prior := Occurrence{ID: "occ-1", StudentID: "100", GroupID: "g-1"}
	peers := []Occurrence{{ID: "occ-2", StudentID: "200", GroupID: "g-1"}}

	plan := PlanGroupEdit(prior, peers, briga(), nil, "Maria")

	assert.Empty(t, plan.GroupID(), "record reverts to standalone")
	assert.Equal(t, []string{"occ-2"}, plan.Deletes)
	assert.Empty(t, plan.Inserts)
	assert.Empty(t, plan.PeerUpdates)
}

func TestPlanGroupEdit_AddAndRemoveInOneEdit(t *testing.T) {
	prior := Occurrence{ID: "occ-1", StudentID: "100", GroupID: "g-1"}
	peers := []Occurrence{{ID: "occ-2", StudentID: "200", GroupID: "g-1"}}

	plan := PlanGroupEdit(prior, peers, briga(), []string{"300"}, "Maria")

	assert.Equal(t, "g-1", plan.GroupID())
	assert.Equal(t, []string{"occ-2"}, plan.Deletes)
	require.Len(t, plan.Inserts, 1)
	assert.Equal(t, "300", plan.Inserts[0].StudentID)
	assert.Equal(t, "g-1", plan.Inserts[0].GroupID)
}

func TestPlanGroupEdit_IgnoresSelfAndDuplicates(t *testing.T) {
	prior := Occurrence{ID: "occ-1", StudentID: "100"}

	plan := PlanGroupEdit(prior, nil, briga(), []string{"100", "200", "200", ""}, "Maria")

	require.Len(t, plan.Inserts, 1)
	assert.Equal(t, "200", plan.Inserts[0].StudentID)
}

func TestPlanGroupEdit_ContentSyncedEverywhere(t *testing.T) {
	prior := Occurrence{ID: "occ-1", StudentID: "100", GroupID: "g-1", Title: "Antigo", Confidential: false}
	peers := []Occurrence{{ID: "occ-2", StudentID: "200", GroupID: "g-1", Title: "Antigo"}}

	content := briga()
	content.Confidential = true
	plan := PlanGroupEdit(prior, peers, content, []string{"200", "300"}, "Maria")

	assert.True(t, plan.Update.Confidential)
	require.Len(t, plan.PeerUpdates, 1)
	assert.True(t, plan.PeerUpdates[0].Confidential)
	assert.Equal(t, content.Title, plan.PeerUpdates[0].Title)
	require.Len(t, plan.Inserts, 1)
	assert.True(t, plan.Inserts[0].Confidential)
}

func TestPlanGroupEdit_NoGroupChangesWithoutMembers(t *testing.T) {
	prior := Occurrence{ID: "occ-1", StudentID: "100"}

	plan := PlanGroupEdit(prior, nil, briga(), nil, "Maria")

	assert.Empty(t, plan.GroupID())
	assert.Empty(t, plan.Deletes)
	assert.Empty(t, plan.Inserts)
	assert.Empty(t, plan.PeerUpdates)
	assert.Equal(t, "Briga no pátio", plan.Update.Title)
}
