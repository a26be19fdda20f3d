package domain

import "sort"

// SortTasks orders tasks by priority rank, newest first within a rank.
func SortTasks(tasks []Task) {
	sort.SliceStable(tasks, func(i, j int) bool {
		ri, rj := tasks[i].Priority.Rank(), tasks[j].Priority.Rank()
		if ri != rj {
			return ri < rj
		}
		return tasks[i].CreatedAt.After(tasks[j].CreatedAt)
	})
}
