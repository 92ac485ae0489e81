package server

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"pawhub/internal/models"
	"pawhub/internal/schedule"
)

// dayPlan is one weekday column of the plan view: its calendar date, its
// order-sorted tasks and the completion progress.
type dayPlan struct {
	Day               models.DayOfWeek `json:"day_of_week"`
	Date              string           `json:"date"`
	Tasks             []models.Task    `json:"tasks"`
	CompletionPercent int              `json:"completion_percent"`
}

// handleWeekPlan returns the seven-day plan for a pet. The week query
// parameter shifts the displayed week by whole weeks relative to the
// current one.
func (s *Server) handleWeekPlan(c *gin.Context) {
	petID, ok := parseID(c, "id")
	if !ok {
		return
	}

	offset := 0
	if raw := c.Query("week"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid week offset"})
			return
		}
		offset = n
	}

	store, ok := s.loadedStore(c, petID)
	if !ok {
		return
	}

	tasks := store.Tasks()
	byDay := schedule.PartitionByDay(tasks)
	week := schedule.WeekOf(time.Now()).Offset(offset)
	dates := week.Dates()

	days := make([]dayPlan, 0, len(models.Days))
	for i, day := range models.Days {
		days = append(days, dayPlan{
			Day:               day,
			Date:              dates[i].Format("2006-01-02"),
			Tasks:             byDay[day],
			CompletionPercent: schedule.CompletionPercent(day, tasks),
		})
	}

	respondSuccess(c, http.StatusOK, gin.H{
		"week_start": week.Start().Format("2006-01-02"),
		"days":       days,
	})
}
