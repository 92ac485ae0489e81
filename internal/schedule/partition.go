package schedule

import (
	"math"
	"sort"

	"pawhub/internal/models"
)

// PartitionByDay groups tasks by weekday, each group sorted ascending by
// order. All seven days are present even when empty. The input is not
// mutated; ties in order keep their input positions.
func PartitionByDay(tasks []models.Task) map[models.DayOfWeek][]models.Task {
	byDay := make(map[models.DayOfWeek][]models.Task, len(models.Days))
	for _, day := range models.Days {
		byDay[day] = []models.Task{}
	}
	for _, t := range tasks {
		byDay[t.Day] = append(byDay[t.Day], t)
	}
	for _, list := range byDay {
		sort.SliceStable(list, func(i, j int) bool {
			return list[i].Order < list[j].Order
		})
	}
	return byDay
}

// CompletionPercent returns the share of completed tasks on the given day,
// rounded to a whole percent. A day with no tasks reads as 0.
func CompletionPercent(day models.DayOfWeek, tasks []models.Task) int {
	total := 0
	completed := 0
	for _, t := range tasks {
		if t.Day != day {
			continue
		}
		total++
		if t.Completed {
			completed++
		}
	}
	if total == 0 {
		return 0
	}
	return int(math.Round(100 * float64(completed) / float64(total)))
}
