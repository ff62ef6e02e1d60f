package sheeter

// arrayCell folds the elements of an array written under one field into a
// single delimited text cell.
type arrayCell struct {
	active bool
	col    Column
	sep    string
	buf    []byte
	n      int
}

func (a *arrayCell) start(col Column, sep string) {
	a.active = true
	a.col = col
	a.sep = sep
	a.buf = a.buf[:0]
	a.n = 0
}

// add appends one element. Empty elements still take a separator slot.
func (a *arrayCell) add(s string) {
	if a.n > 0 {
		a.buf = append(a.buf, a.sep...)
	}
	a.n++
	a.buf = append(a.buf, s...)
}

func (a *arrayCell) finish() string {
	a.active = false
	return string(a.buf)
}
