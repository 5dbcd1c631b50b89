package bank

import "fmt"

// Validate checks the bank invariants at load time: unique ids, positive
// points, a resolvable correct option for every MCQ, at least one answer
// variant for written-single, and a usable item list with a show ratio in
// (0,1] for written-list. A bank that fails here must not be served.
func Validate(qs []Question) error {
	if len(qs) == 0 {
		return fmt.Errorf("bank: empty")
	}
	seen := make(map[int]struct{}, len(qs))
	for _, q := range qs {
		c := q.Base()
		if _, dup := seen[c.ID]; dup {
			return fmt.Errorf("bank: duplicate question id %d", c.ID)
		}
		seen[c.ID] = struct{}{}
		if c.Points <= 0 {
			return fmt.Errorf("bank: question %d: points must be > 0", c.ID)
		}
		switch t := q.(type) {
		case *MultipleChoice:
			if len(t.Options) == 0 {
				return fmt.Errorf("bank: question %d: mcq without options", c.ID)
			}
			matches := 0
			optIDs := make(map[string]struct{}, len(t.Options))
			for _, o := range t.Options {
				if _, dup := optIDs[o.ID]; dup {
					return fmt.Errorf("bank: question %d: duplicate option id %q", c.ID, o.ID)
				}
				optIDs[o.ID] = struct{}{}
				if o.ID == t.Correct {
					matches++
				}
			}
			if matches != 1 {
				return fmt.Errorf("bank: question %d: correct option %q not present exactly once", c.ID, t.Correct)
			}
		case *WrittenSingle:
			if len(t.Variants) == 0 {
				return fmt.Errorf("bank: question %d: no answer variants", c.ID)
			}
		case *WrittenList:
			if len(t.Items) == 0 {
				return fmt.Errorf("bank: question %d: empty item list", c.ID)
			}
			for i, it := range t.Items {
				if it.Value == "" {
					return fmt.Errorf("bank: question %d: item %d has empty value", c.ID, i)
				}
			}
			if t.ShowRatio < 0 || t.ShowRatio > 1 {
				return fmt.Errorf("bank: question %d: show ratio %v outside [0,1]", c.ID, t.ShowRatio)
			}
		}
	}
	return nil
}
