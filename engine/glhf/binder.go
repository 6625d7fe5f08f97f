package glhf

// binder binds an object to a target and later restores whatever was bound before.
type binder struct {
	backend Backend
	target  BindTarget
	obj     uint32
	prev    []uint32
}

func (b *binder) bind() *binder {
	prev := b.backend.CurrentBinding(b.target)
	b.prev = append(b.prev, prev)
	if prev != b.obj {
		b.backend.Bind(b.target, b.obj)
	}
	return b
}

func (b *binder) restore() *binder {
	if len(b.prev) == 0 {
		return b
	}
	prev := b.prev[len(b.prev)-1]
	if prev != b.obj {
		b.backend.Bind(b.target, prev)
	}
	b.prev = b.prev[:len(b.prev)-1]
	return b
}
