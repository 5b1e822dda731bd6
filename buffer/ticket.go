package buffer

// ReleaseFunc frees the memory behind a transferred region.
type ReleaseFunc func()

// Ticket is the result of a one-shot ownership transfer.
// Implementations are *Owned and *Borrowed.
type Ticket interface {
	// Bytes returns the transferred region.
	Bytes() []byte
	// Size returns the region size in bytes.
	Size() int
	isTicket()
}

// Owned is a self-owned region: Data is exactly its own allocation.
type Owned struct {
	Data    []byte
	Release ReleaseFunc
}

func (o *Owned) Bytes() []byte { return o.Data }
func (o *Owned) Size() int     { return len(o.Data) }
func (*Owned) isTicket()       {}

// Borrowed is a foreign-owned region: Data points into Container and cannot
// be freed on its own. Release frees the container.
type Borrowed struct {
	Container any
	Release   ReleaseFunc
	Data      []byte
}

func (b *Borrowed) Bytes() []byte { return b.Data }
func (b *Borrowed) Size() int     { return len(b.Data) }
func (*Borrowed) isTicket()       {}

// Free runs the ticket's release callback, if any.
func Free(t Ticket) {
	switch v := t.(type) {
	case *Owned:
		if v.Release != nil {
			v.Release()
		}
	case *Borrowed:
		if v.Release != nil {
			v.Release()
		}
	}
}
