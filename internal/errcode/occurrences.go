package errcode

// Occurrences counts how many times each message template has been seen in
// one compilation unit. A new unit gets a new Occurrences; it is never
// shared between goroutines.
type Occurrences struct {
	counts map[string]int
}

func NewOccurrences() *Occurrences {
	return &Occurrences{counts: make(map[string]int)}
}

// Next bumps the counter of template and returns it: 1 on the first call,
// then 2, 3, ... Templates are compared as exact strings.
func (o *Occurrences) Next(template string) int {
	o.counts[template]++
	return o.counts[template]
}

// Len returns the number of distinct templates seen.
func (o *Occurrences) Len() int {
	return len(o.counts)
}
