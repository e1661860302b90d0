package agent

type multiJournal []Journal

func (m multiJournal) RecordDecision(d Decision) {
	for _, j := range m {
		j.RecordDecision(d)
	}
}

// MultiJournal fans a decision out to every non-nil journal.
func MultiJournal(js ...Journal) Journal {
	out := make(multiJournal, 0, len(js))
	for _, j := range js {
		if j != nil {
			out = append(out, j)
		}
	}
	return out
}
