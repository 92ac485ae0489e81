package schedule

import (
	"strconv"
	"strings"
	"time"

	"pawhub/internal/models"
)

// FormInput is the raw, untrusted task form as submitted. All values are
// strings so the validator owns every parse.
type FormInput struct {
	Title       string
	Category    string
	Time        string
	Duration    string
	Day         string
	Description string
}

// Fields is a validated, normalized task field set ready for the store.
type Fields struct {
	Title           string
	Category        models.Category
	Time            string
	DurationMinutes int
	Day             models.DayOfWeek
	Description     string
}

// ParseForm validates and shapes raw form input. selectedDay supplies the
// default weekday when the form leaves it blank. On failure it returns a
// ValidationError with one message per offending field and no backend call
// is made.
func ParseForm(in FormInput, selectedDay models.DayOfWeek) (Fields, error) {
	problems := map[string]string{}
	var out Fields

	out.Title = strings.TrimSpace(in.Title)
	if out.Title == "" {
		problems["title"] = "title must not be empty"
	}

	timeStr := strings.TrimSpace(in.Time)
	if timeStr == "" {
		problems["time"] = "time is required"
	} else if _, err := time.Parse("15:04", timeStr); err != nil {
		problems["time"] = "time must be HH:MM"
	} else {
		out.Time = timeStr
	}

	switch n, err := strconv.Atoi(strings.TrimSpace(in.Duration)); {
	case strings.TrimSpace(in.Duration) == "":
		problems["duration_minutes"] = "duration is required"
	case err != nil:
		problems["duration_minutes"] = "duration must be a whole number of minutes"
	case n <= 0:
		problems["duration_minutes"] = "duration must be positive"
	default:
		out.DurationMinutes = n
	}

	if cat, err := models.ParseCategory(in.Category); err != nil {
		problems["category"] = "unknown category"
	} else {
		out.Category = cat
	}

	if strings.TrimSpace(in.Day) == "" {
		if selectedDay.Valid() {
			out.Day = selectedDay
		} else {
			problems["day_of_week"] = "day of week is required"
		}
	} else if day, err := models.ParseDay(in.Day); err != nil {
		problems["day_of_week"] = "unknown day of week"
	} else {
		out.Day = day
	}

	out.Description = strings.TrimSpace(in.Description)

	if len(problems) > 0 {
		return Fields{}, &ValidationError{Fields: problems}
	}
	return out, nil
}
