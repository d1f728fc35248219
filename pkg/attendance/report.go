package attendance

import (
	"strconv"
	"strings"
	"time"
)

const lineBreak = "\r\n"

// FormatDate renders a date as "2026年1月5日" with no zero padding.
func FormatDate(date time.Time) string {
	var b strings.Builder
	b.WriteString(strconv.Itoa(date.Year()))
	b.WriteString("年")
	b.WriteString(strconv.Itoa(int(date.Month())))
	b.WriteString("月")
	b.WriteString(strconv.Itoa(date.Day()))
	b.WriteString("日")
	return b.String()
}

// FormatReport renders the daily report text:
//
//	2026年10月16日\r\n
//	病假：Zhang, Wang\r\n
//	同仁共5名：2名病假，上班同仁3名
//
// Reasons nobody holds are left out of both the lines and the summary.
func FormatReport(snap Snapshot, date time.Time) string {
	var rows, summary strings.Builder

	rows.WriteString(FormatDate(date))
	rows.WriteString(lineBreak)

	summary.WriteString("同仁共")
	summary.WriteString(strconv.Itoa(len(snap.All)))
	summary.WriteString("名：")

	for _, r := range allReasons {
		names := snap.ByReason[r]
		if len(names) == 0 {
			continue
		}
		rows.WriteString(r.Label())
		rows.WriteString("：")
		rows.WriteString(strings.Join(names, ", "))
		rows.WriteString(lineBreak)

		summary.WriteString(strconv.Itoa(len(names)))
		summary.WriteString("名")
		summary.WriteString(r.Label())
		summary.WriteString("，")
	}

	summary.WriteString("上班同仁")
	summary.WriteString(strconv.Itoa(len(snap.Work)))
	summary.WriteString("名")

	return rows.String() + summary.String()
}
