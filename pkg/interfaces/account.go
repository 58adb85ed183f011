package interfaces

// Account is the viewer a render or mutation is performed for. Permission
// evaluation itself belongs to the host; this package only asks questions.
type Account interface {
	ID() string
	HasPermission(permission string) bool
}
