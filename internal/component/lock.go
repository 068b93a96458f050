package component

// Lock is the variant payload of a smart door lock.
type Lock struct {
	IsLocked bool
}

// NewLock returns a lock in the locked position.
func NewLock() *Lock {
	return &Lock{IsLocked: true}
}

// Engage locks the lock.
func (l *Lock) Engage() {
	l.IsLocked = true
}

// Release unlocks the lock.
func (l *Lock) Release() {
	l.IsLocked = false
}

func (l *Lock) actions() []ActionDescriptor {
	return []ActionDescriptor{
		button("lock", "Lock"),
		button("unlock", "Unlock"),
	}
}
