package tracker

import (
	"fmt"

	"clementus360/daily-tracker/types"
)

type TaskMonthStats struct {
	Key       string  `json:"key"`
	Label     string  `json:"label"`
	Completed int     `json:"completed"`
	Rate      float64 `json:"rate"`
}

// MonthSummary aggregates one calendar month over the visible tasks.
type MonthSummary struct {
	Year         int              `json:"year"`
	Month        int              `json:"month"`
	Days         int              `json:"days"`
	FirstWeekday int              `json:"first_weekday"`
	Daily        []float64        `json:"daily"`
	PerfectDays  []int            `json:"perfect_days"`
	Tasks        []TaskMonthStats `json:"tasks"`
	// Average is taken over the days that have already started.
	Average float64 `json:"average"`
}

// CompletedTasksForDay lists the visible tasks done on date in display order.
func (t *Tracker) CompletedTasksForDay(date types.Date) []types.Task {
	t.mu.Lock()
	defer t.mu.Unlock()
	var out []types.Task
	for _, task := range t.cur.visibleTasks() {
		if t.cur.data.IsDone(task.Key, date.MonthKey(), date.Day) {
			out = append(out, task)
		}
	}
	return out
}

// CompletionPercentage is the share of visible tasks done on date, 0..100.
func (t *Tracker) CompletionPercentage(date types.Date) float64 {
	t.mu.Lock()
	defer t.mu.Unlock()
	return percentage(t.cur, t.cur.visibleTasks(), date)
}

func percentage(s state, tasks []types.Task, date types.Date) float64 {
	if len(tasks) == 0 {
		return 0
	}
	done := 0
	for _, task := range tasks {
		if s.data.IsDone(task.Key, date.MonthKey(), date.Day) {
			done++
		}
	}
	return float64(done) / float64(len(tasks)) * 100
}

func (t *Tracker) MonthSummary(year, month int) (MonthSummary, error) {
	if month < 0 || month > 11 || year <= 0 {
		return MonthSummary{}, fmt.Errorf("month %d of %d: %w", month, year, types.ErrInvalidDate)
	}
	today := types.DateOf(t.now())

	t.mu.Lock()
	defer t.mu.Unlock()

	tasks := t.cur.visibleTasks()
	days := types.DaysInMonth(year, month)
	sum := MonthSummary{
		Year:         year,
		Month:        month,
		Days:         days,
		FirstWeekday: types.FirstWeekday(year, month),
		Daily:        make([]float64, days),
		PerfectDays:  []int{},
		Tasks:        make([]TaskMonthStats, 0, len(tasks)),
	}

	elapsed := elapsedDays(year, month, days, today)
	var total float64
	for day := 1; day <= days; day++ {
		p := percentage(t.cur, tasks, types.Date{Year: year, Month: month, Day: day})
		sum.Daily[day-1] = p
		if len(tasks) > 0 && p == 100 {
			sum.PerfectDays = append(sum.PerfectDays, day)
		}
		if day <= elapsed {
			total += p
		}
	}
	if elapsed > 0 {
		sum.Average = total / float64(elapsed)
	}

	mk := types.MonthKey(year, month)
	for _, task := range tasks {
		n := 0
		for day := range t.cur.data[task.Key][mk] {
			if day >= 1 && day <= days && t.cur.data.IsDone(task.Key, mk, day) {
				n++
			}
		}
		stats := TaskMonthStats{Key: task.Key, Label: task.Label, Completed: n}
		if elapsed > 0 {
			stats.Rate = float64(n) / float64(elapsed) * 100
		}
		sum.Tasks = append(sum.Tasks, stats)
	}
	return sum, nil
}

// elapsedDays counts the days of the month that have started as of today.
func elapsedDays(year, month, days int, today types.Date) int {
	switch {
	case year < today.Year || (year == today.Year && month < today.Month):
		return days
	case year == today.Year && month == today.Month:
		return today.Day
	}
	return 0
}

// Streak counts consecutive completed days ending at asOf. When asOf itself
// is not done yet the run ending the day before still counts.
func (t *Tracker) Streak(taskKey string, asOf types.Date) (int, error) {
	if err := asOf.Validate(); err != nil {
		return 0, err
	}
	t.mu.Lock()
	defer t.mu.Unlock()

	if !t.cur.tasks().Has(taskKey) {
		return 0, fmt.Errorf("task %q: %w", taskKey, types.ErrTaskNotFound)
	}
	d := asOf
	if !t.cur.data.IsDone(taskKey, d.MonthKey(), d.Day) {
		d = d.AddDays(-1)
	}
	n := 0
	for t.cur.data.IsDone(taskKey, d.MonthKey(), d.Day) {
		n++
		d = d.AddDays(-1)
	}
	return n, nil
}
