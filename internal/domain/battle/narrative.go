package battle

const (
	// NarrativeCapacity is how many entries the log keeps before evicting the oldest
	NarrativeCapacity = 5

	// NarrativeVisible is how many of the newest entries are shown to players
	NarrativeVisible = 3
)

// Narrative is a fixed size ring of human readable battle events
type Narrative struct {
	entries [NarrativeCapacity]string
	start   int
	size    int
}

// NewNarrative creates an empty log
func NewNarrative() *Narrative {
	return &Narrative{}
}

// Add appends an entry, evicting the oldest when full
func (n *Narrative) Add(entry string) {
	if n.size < NarrativeCapacity {
		n.entries[(n.start+n.size)%NarrativeCapacity] = entry
		n.size++
		return
	}

	n.entries[n.start] = entry
	n.start = (n.start + 1) % NarrativeCapacity
}

// Len returns the number of stored entries
func (n *Narrative) Len() int {
	return n.size
}

// Empty reports whether nothing has been logged yet
func (n *Narrative) Empty() bool {
	return n.size == 0
}

// All returns every stored entry, oldest first
func (n *Narrative) All() []string {
	out := make([]string, 0, n.size)
	for i := 0; i < n.size; i++ {
		out = append(out, n.entries[(n.start+i)%NarrativeCapacity])
	}
	return out
}

// Recent returns up to the three newest entries, oldest first
func (n *Narrative) Recent() []string {
	all := n.All()
	if len(all) > NarrativeVisible {
		return all[len(all)-NarrativeVisible:]
	}
	return all
}
