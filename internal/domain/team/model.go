package team

import "fmt"

// Team is a directory entry for a club.
type Team struct {
	ID   int64
	Name string
}

func (t Team) Validate() error {
	if t.ID <= 0 {
		return fmt.Errorf("team id is required")
	}
	if t.Name == "" {
		return fmt.Errorf("team %d name is required", t.ID)
	}

	return nil
}

// Index maps directory entries by id. Later duplicates do not replace earlier ones.
func Index(items []Team) map[int64]Team {
	out := make(map[int64]Team, len(items))
	for _, item := range items {
		if _, exists := out[item.ID]; exists {
			continue
		}
		out[item.ID] = item
	}
	return out
}
