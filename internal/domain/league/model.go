package league

import "fmt"

// League is a directory entry for a competition.
type League struct {
	ID      int64
	Name    string
	Country string
}

func (l League) Validate() error {
	if l.ID <= 0 {
		return fmt.Errorf("league id is required")
	}
	if l.Name == "" {
		return fmt.Errorf("league %d name is required", l.ID)
	}

	return nil
}

func Index(items []League) map[int64]League {
	out := make(map[int64]League, len(items))
	for _, item := range items {
		if _, exists := out[item.ID]; exists {
			continue
		}
		out[item.ID] = item
	}
	return out
}
