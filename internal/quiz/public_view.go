package quiz

// PublicView returns a deep copy of the quiz with every answer key, every
// option correctness flag and every explanation removed. Anything served to a
// non-owner must pass through here; grading must never be fed its output.
func PublicView(qz Quiz) Quiz {
	out := qz
	out.Questions = make([]Question, len(qz.Questions))
	for i, q := range qz.Questions {
		pq := q
		pq.Key = nil
		pq.Explanation = ""
		pq.ExplanationLatex = ""
		if len(q.Options) > 0 {
			pq.Options = make([]Option, len(q.Options))
			for j, o := range q.Options {
				o.Correct = false
				pq.Options[j] = o
			}
		}
		out.Questions[i] = pq
	}
	return out
}
