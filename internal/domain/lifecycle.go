package domain

// Lifecycle is the two-state soft-delete status of users and todos.
// Active -> Inactive is the only transition and it is terminal.
type Lifecycle int

const (
	// Active records are visible through default queries.
	Active Lifecycle = iota
	// Inactive records are kept in the store but hidden from default queries.
	Inactive
)

// LifecycleFromFlag converts a stored boolean flag into a Lifecycle.
func LifecycleFromFlag(active bool) Lifecycle {
	if active {
		return Active
	}
	return Inactive
}

// Flag returns the boolean column value for the lifecycle.
func (l Lifecycle) Flag() bool {
	return l == Active
}

// String returns a human-readable name.
func (l Lifecycle) String() string {
	if l == Active {
		return "active"
	}
	return "inactive"
}

// Visibility selects which lifecycle states a query may return.
// Every store read takes one explicitly.
type Visibility int

const (
	// VisibleActive restricts results to Active records.
	VisibleActive Visibility = iota
	// VisibleAll returns records regardless of lifecycle.
	VisibleAll
)

// String returns a human-readable name.
func (v Visibility) String() string {
	if v == VisibleAll {
		return "all"
	}
	return "active"
}
