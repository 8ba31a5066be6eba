package auth

// Action names a capability-gated operation. Every permission check in the
// system goes through Allowed so the matrix lives in exactly one place.
type Action string

const (
	ActionStudentView      Action = "student.view"
	ActionStudentCreate    Action = "student.create"
	ActionStudentEdit      Action = "student.edit"
	ActionPhotoUpload      Action = "photo.upload"
	ActionOccurrenceView   Action = "occurrence.view"
	ActionOccurrenceCreate Action = "occurrence.create"
	// ActionOccurrenceModerate lets a role edit or delete occurrences it did
	// not author, and see confidential ones.
	ActionOccurrenceModerate Action = "occurrence.moderate"
	ActionLogsView           Action = "logs.view"
)

// minRole is the permission matrix: the lowest role allowed per action.
var minRole = map[Action]Role{
	ActionStudentView:        RoleUser,
	ActionStudentCreate:      RoleManager,
	ActionStudentEdit:        RoleEditor,
	ActionPhotoUpload:        RoleEditor,
	ActionOccurrenceView:     RoleUser,
	ActionOccurrenceCreate:   RoleUser,
	ActionOccurrenceModerate: RoleManager,
	ActionLogsView:           RoleManager,
}

// Allowed reports whether a role may perform an action. Unknown actions are
// denied.
func Allowed(role Role, action Action) bool {
	min, ok := minRole[action]
	if !ok {
		return false
	}
	return level(role) >= level(min)
}

// CanModifyOccurrence applies the author-override rule: moderators may act on
// any occurrence, everyone else only on records they registered themselves.
func CanModifyOccurrence(u User, registeredBy string) bool {
	if Allowed(u.Role, ActionOccurrenceModerate) {
		return true
	}
	return registeredBy != "" && registeredBy == u.Name
}

// CanSeeConfidential mirrors the visibility rule for confidential
// occurrences: moderators and the original author.
func CanSeeConfidential(u User, registeredBy string) bool {
	return CanModifyOccurrence(u, registeredBy)
}
