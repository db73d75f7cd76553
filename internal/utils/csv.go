package utils

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"time"

	"checkmate-bot/internal/models"
)

// WeeklyReportRow is one mate's aggregated week for the CSV export.
type WeeklyReportRow struct {
	MateName    string
	CallCount   int
	HabitCounts []int
}

// GenerateWeeklyCSV creates a CSV report for one Monday-anchored week:
// per mate, the mate-call count against the main goal and every habit
// column against its own weekly goal.
func GenerateWeeklyCSV(weekStart string, labels []string, goals []int, mainGoal int, rows []WeeklyReportRow, writer io.Writer) error {
	csvWriter := csv.NewWriter(writer)
	defer csvWriter.Flush()

	header := [][]string{
		{"Weekly Checkmate Report"},
		{"Week of", weekStart},
		{"Generated", time.Now().Format("2006-01-02 15:04:05")},
		{}, // Empty row
	}
	for _, row := range header {
		if err := csvWriter.Write(row); err != nil {
			return fmt.Errorf("failed to write header: %w", err)
		}
	}

	columns := []string{"Mate", fmt.Sprintf("Mate Call (goal %d)", mainGoal)}
	for i, label := range labels {
		goal := 7
		if i < len(goals) {
			goal = goals[i]
		}
		columns = append(columns, fmt.Sprintf("%s (goal %d)", label, goal))
	}
	if err := csvWriter.Write(columns); err != nil {
		return err
	}

	for _, row := range rows {
		record := []string{row.MateName, markCount(row.CallCount, mainGoal)}
		for i, count := range row.HabitCounts {
			goal := 7
			if i < len(goals) {
				goal = goals[i]
			}
			record = append(record, markCount(count, goal))
		}
		if err := csvWriter.Write(record); err != nil {
			return err
		}
	}

	return nil
}

// markCount renders a weekly count with its met/missed classification.
func markCount(count, goal int) string {
	status := "missed"
	if count >= goal {
		status = "met"
	}
	return fmt.Sprintf("%d (%s)", count, status)
}

// GenerateFineCSV creates a CSV export of the fine log plus per-mate
// totals.
func GenerateFineCSV(records []models.FineRecord, writer io.Writer) error {
	csvWriter := csv.NewWriter(writer)
	defer csvWriter.Flush()

	total := 0.0
	perName := make(map[string]float64)
	var order []string
	for _, r := range records {
		total += r.Amount
		if _, seen := perName[r.Name]; !seen {
			order = append(order, r.Name)
		}
		perName[r.Name] += r.Amount
	}

	header := [][]string{
		{"Fine Log"},
		{"Generated", time.Now().Format("2006-01-02 15:04:05")},
		{"Total", fmt.Sprintf("%.0f", total)},
		{"Entries", strconv.Itoa(len(records))},
		{}, // Empty row
		{"PER MATE"},
		{"Name", "Amount"},
	}
	for _, row := range header {
		if err := csvWriter.Write(row); err != nil {
			return fmt.Errorf("failed to write header: %w", err)
		}
	}
	for _, name := range order {
		if err := csvWriter.Write([]string{name, fmt.Sprintf("%.0f", perName[name])}); err != nil {
			return err
		}
	}

	if len(records) > 0 {
		if err := csvWriter.Write([]string{}); err != nil {
			return err
		}
		if err := csvWriter.Write([]string{"DETAILED ENTRIES"}); err != nil {
			return err
		}
		if err := csvWriter.Write([]string{"Date", "Amount", "Name", "Note"}); err != nil {
			return err
		}
		for _, r := range records {
			row := []string{r.Date, fmt.Sprintf("%.0f", r.Amount), r.Name, r.Note}
			if err := csvWriter.Write(row); err != nil {
				return err
			}
		}
	}

	return nil
}
