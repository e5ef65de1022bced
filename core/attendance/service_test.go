package attendance_test

import (
	"testing"
	"time"

	"github.com/elimusoft/elimu/core/attendance"
	inmemdb "github.com/elimusoft/elimu/storage/database/inmem"
)

func TestSummarize(t *testing.T) {
	db := inmemdb.Open()
	svc := attendance.NewService(inmemdb.NewAttendanceRepository(db))

	day := time.Date(2026, 3, 9, 0, 0, 0, 0, time.UTC)
	records := []attendance.NewAttendance{
		{StudentID: 1, ClassID: 1, Date: day.Add(8 * time.Hour), Status: attendance.StatusPresent},
		{StudentID: 2, ClassID: 1, Date: day.Add(8 * time.Hour), Status: attendance.StatusPresent},
		{StudentID: 3, ClassID: 1, Date: day.Add(8 * time.Hour), Status: attendance.StatusAbsent},
		{StudentID: 4, ClassID: 1, Date: day.Add(9 * time.Hour), Status: attendance.StatusLate},
		// different day, same class: excluded
		{StudentID: 1, ClassID: 1, Date: day.AddDate(0, 0, 1), Status: attendance.StatusAbsent},
		// same day, different class: excluded
		{StudentID: 1, ClassID: 2, Date: day.Add(10 * time.Hour), Status: attendance.StatusPresent},
	}
	for _, rec := range records {
		if _, err := svc.Create(rec); err != nil {
			t.Fatalf("Create failed: %v", err)
		}
	}

	sum, err := svc.Summarize(1, day)
	if err != nil {
		t.Fatalf("Summarize failed: %v", err)
	}
	if sum.Present != 2 || sum.Absent != 1 || sum.Late != 1 || sum.Total != 4 {
		t.Errorf("summary = %+v; want 2 present, 1 absent, 1 late, 4 total", sum)
	}
	if sum.Rate != 50 {
		t.Errorf("rate = %d; want 50", sum.Rate)
	}
}

func TestSummarizeRounding(t *testing.T) {
	db := inmemdb.Open()
	svc := attendance.NewService(inmemdb.NewAttendanceRepository(db))

	day := time.Date(2026, 3, 9, 8, 0, 0, 0, time.UTC)
	for i, status := range []string{attendance.StatusPresent, attendance.StatusPresent, attendance.StatusAbsent} {
		if _, err := svc.Create(attendance.NewAttendance{StudentID: i + 1, ClassID: 1, Date: day, Status: status}); err != nil {
			t.Fatalf("Create failed: %v", err)
		}
	}

	sum, err := svc.Summarize(1, day)
	if err != nil {
		t.Fatalf("Summarize failed: %v", err)
	}
	if sum.Rate != 67 { // 2/3 rounds to 67, not truncates to 66
		t.Errorf("rate = %d; want 67", sum.Rate)
	}
}

func TestSummarizeEmptyClass(t *testing.T) {
	db := inmemdb.Open()
	svc := attendance.NewService(inmemdb.NewAttendanceRepository(db))

	sum, err := svc.Summarize(1, time.Now().UTC())
	if err != nil {
		t.Fatalf("Summarize failed: %v", err)
	}
	if sum.Total != 0 || sum.Rate != 0 {
		t.Errorf("summary = %+v; want all-zero for a class with no records", sum)
	}
}

func TestDefaultStatus(t *testing.T) {
	db := inmemdb.Open()
	svc := attendance.NewService(inmemdb.NewAttendanceRepository(db))

	rec, err := svc.Create(attendance.NewAttendance{StudentID: 1, ClassID: 1, Date: time.Now().UTC()})
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}
	if rec.Status != attendance.StatusPresent {
		t.Errorf("status = %q; want default %q", rec.Status, attendance.StatusPresent)
	}
}
