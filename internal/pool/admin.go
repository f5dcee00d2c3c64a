package pool

// AdminContext is the capability admin-only operations require. The zero value grants nothing.
type AdminContext struct {
	granted bool
}

// GrantAdmin should only be called once the shared admin key has been checked.
func GrantAdmin() AdminContext {
	return AdminContext{granted: true}
}

func (a AdminContext) Granted() bool {
	return a.granted
}
