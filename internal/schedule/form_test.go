package schedule

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"pawhub/internal/models"
)

func validInput() FormInput {
	return FormInput{
		Title:    "Sit",
		Category: "obedience",
		Time:     "09:00",
		Duration: "30",
		Day:      "Mo",
	}
}

func TestParseFormAccepts(t *testing.T) {
	in := validInput()
	in.Description = "  practice in the garden  "

	fields, err := ParseForm(in, models.Monday)
	require.NoError(t, err)

	assert.Equal(t, "Sit", fields.Title)
	assert.Equal(t, models.Obedience, fields.Category)
	assert.Equal(t, "09:00", fields.Time)
	assert.Equal(t, 30, fields.DurationMinutes)
	assert.Equal(t, models.Monday, fields.Day)
	assert.Equal(t, "practice in the garden", fields.Description)
}

func TestParseFormRejectsEmptyTitle(t *testing.T) {
	in := validInput()
	in.Title = "   "

	_, err := ParseForm(in, models.Monday)

	var verr *ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Contains(t, verr.Fields, "title")
	assert.NotContains(t, verr.Fields, "time")
}

func TestParseFormRejectsBadDuration(t *testing.T) {
	cases := map[string]string{
		"zero":        "0",
		"negative":    "-5",
		"non numeric": "soon",
		"empty":       "",
	}

	for name, duration := range cases {
		t.Run(name, func(t *testing.T) {
			in := validInput()
			in.Duration = duration

			_, err := ParseForm(in, models.Monday)

			var verr *ValidationError
			require.ErrorAs(t, err, &verr)
			assert.Contains(t, verr.Fields, "duration_minutes")
		})
	}
}

func TestParseFormRejectsBadTime(t *testing.T) {
	for _, bad := range []string{"", "25:00", "9 am", "09:61"} {
		in := validInput()
		in.Time = bad

		_, err := ParseForm(in, models.Monday)

		var verr *ValidationError
		require.ErrorAs(t, err, &verr, "time %q", bad)
		assert.Contains(t, verr.Fields, "time")
	}
}

func TestParseFormDefaults(t *testing.T) {
	in := validInput()
	in.Category = ""
	in.Day = ""

	fields, err := ParseForm(in, models.Thursday)
	require.NoError(t, err)

	assert.Equal(t, models.Categories[0], fields.Category)
	assert.Equal(t, models.Thursday, fields.Day)
	assert.Equal(t, "", fields.Description)
}

func TestParseFormRejectsUnknownEnumValues(t *testing.T) {
	in := validInput()
	in.Category = "fetching"
	in.Day = "Caturday"

	_, err := ParseForm(in, models.Monday)

	var verr *ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Contains(t, verr.Fields, "category")
	assert.Contains(t, verr.Fields, "day_of_week")
}

func TestParseFormRequiresDayWithoutSelection(t *testing.T) {
	in := validInput()
	in.Day = ""

	_, err := ParseForm(in, "")

	var verr *ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Contains(t, verr.Fields, "day_of_week")
}
