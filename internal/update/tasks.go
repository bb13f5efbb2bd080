package update

import (
	"encoding/json"
	"fmt"
	"os"
	"sort"

	"minderd/internal/model"
)

// LoadTasksFor reads the task store's JSON export and keeps the given day's
// tasks, ordered by start time. An empty path yields an empty day.
func LoadTasksFor(path, date string) ([]model.Task, error) {
	if path == "" {
		return nil, nil
	}
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read tasks: %w", err)
	}
	var all []model.Task
	if err := json.Unmarshal(raw, &all); err != nil {
		return nil, fmt.Errorf("decode tasks: %w", err)
	}
	out := make([]model.Task, 0, len(all))
	for _, task := range all {
		if task.Date == date {
			out = append(out, task)
		}
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].StartTime < out[j].StartTime })
	return out, nil
}
