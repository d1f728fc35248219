package attendance_test

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/attendance-report/pkg/attendance"
)

func person(cn, en string, reasons ...attendance.Reason) attendance.Person {
	var set attendance.ReasonSet
	for _, r := range reasons {
		set = set.With(r, true)
	}
	return attendance.Person{ChineseName: cn, EnglishName: en, Reasons: set}
}

func TestAggregate_WorkPolicy(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		reasons []attendance.Reason
		working bool
	}{
		{"no reasons", nil, true},
		{"morning leave", []attendance.Reason{attendance.MorningLeave}, true},
		{"afternoon leave", []attendance.Reason{attendance.AfternoonLeave}, true},
		{"morning and afternoon leave", []attendance.Reason{attendance.MorningLeave, attendance.AfternoonLeave}, true},
		{"sick", []attendance.Reason{attendance.Sick}, false},
		{"full day leave", []attendance.Reason{attendance.Leave}, false},
		{"remote work", []attendance.Reason{attendance.RemoteWork}, false},
		{"morning leave and night shift", []attendance.Reason{attendance.MorningLeave, attendance.NightShift}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			snap := attendance.Aggregate([]attendance.Person{person("甲", "A", tt.reasons...)})
			if tt.working {
				assert.Equal(t, []string{"A"}, snap.Work)
			} else {
				assert.Empty(t, snap.Work)
			}
			for _, r := range tt.reasons {
				assert.Equal(t, []string{"A"}, snap.Names(r))
			}
		})
	}
}

func TestAggregate_AllFollowsRosterOrder(t *testing.T) {
	t.Parallel()

	people := []attendance.Person{
		person("丙", "C", attendance.Sick),
		person("甲", "A"),
		person("乙", "B", attendance.Sick, attendance.BusinessTrip),
		person("丁", "D", attendance.MorningLeave),
	}

	snap := attendance.Aggregate(people)
	assert.Equal(t, []string{"C", "A", "B", "D"}, snap.All)
	assert.Equal(t, []string{"A", "D"}, snap.Work)
	assert.Equal(t, []string{"C", "B"}, snap.Names(attendance.Sick))
	assert.Equal(t, []string{"B"}, snap.Names(attendance.BusinessTrip))
	assert.Empty(t, snap.Names(attendance.NightShift))
}

func TestAggregate_Empty(t *testing.T) {
	t.Parallel()

	snap := attendance.Aggregate(nil)
	assert.Empty(t, snap.All)
	assert.Empty(t, snap.Work)

	data, err := json.Marshal(snap)
	require.NoError(t, err)
	assert.JSONEq(t, `{
		"all": [], "work": [], "leave": [], "morning_leave": [], "afternoon_leave": [],
		"sick": [], "business": [], "home": [], "night": []
	}`, string(data))
}

func TestFormatDate(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "2026年1月5日", attendance.FormatDate(time.Date(2026, time.January, 5, 9, 0, 0, 0, time.UTC)))
	assert.Equal(t, "2026年10月16日", attendance.FormatDate(time.Date(2026, time.October, 16, 0, 0, 0, 0, time.UTC)))
}

func TestFormatReport(t *testing.T) {
	t.Parallel()

	date := time.Date(2026, time.October, 16, 8, 30, 0, 0, time.Local)

	t.Run("end to end scenario", func(t *testing.T) {
		t.Parallel()

		r := attendance.NewRoster()
		require.NoError(t, r.Add("張三", "Zhang"))
		require.NoError(t, r.Add("李四", "Li"))
		require.NoError(t, r.SetReason("張三", attendance.Sick, true))

		report := attendance.FormatReport(r.Snapshot(), date)
		assert.Contains(t, report, "病假：Zhang")
		assert.Equal(t, "2026年10月16日\r\n病假：Zhang\r\n同仁共2名：1名病假，上班同仁1名", report)
	})

	t.Run("reasons in fixed order with summary", func(t *testing.T) {
		t.Parallel()

		snap := attendance.Aggregate([]attendance.Person{
			person("甲", "A", attendance.NightShift),
			person("乙", "B", attendance.Leave),
			person("丙", "C", attendance.MorningLeave, attendance.AfternoonLeave),
			person("丁", "D", attendance.Leave),
			person("戊", "E"),
		})

		want := "2026年10月16日\r\n" +
			"休假：B, D\r\n" +
			"上午休假：C\r\n" +
			"下午休假：C\r\n" +
			"夜班：A\r\n" +
			"同仁共5名：2名休假，1名上午休假，1名下午休假，1名夜班，上班同仁2名"
		assert.Equal(t, want, attendance.FormatReport(snap, date))
	})

	t.Run("empty roster", func(t *testing.T) {
		t.Parallel()

		assert.Equal(t, "2026年10月16日\r\n同仁共0名：上班同仁0名",
			attendance.FormatReport(attendance.Aggregate(nil), date))
	})

	t.Run("deterministic", func(t *testing.T) {
		t.Parallel()

		snap := attendance.Aggregate([]attendance.Person{
			person("甲", "A", attendance.Sick),
			person("乙", "B", attendance.RemoteWork),
		})
		assert.Equal(t, attendance.FormatReport(snap, date), attendance.FormatReport(snap, date))
	})
}
