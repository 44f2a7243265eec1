package styling

// Reconcile checks the set against a text of textLen runes. If any range no
// longer fits, the whole set is dropped, including ranges that still fit.
func Reconcile(set RangeSet, textLen int) RangeSet {
	for _, r := range set {
		if r.Start > textLen || r.End > textLen {
			return Clear()
		}
	}
	return set
}
