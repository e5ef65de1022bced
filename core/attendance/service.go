package attendance

import (
	"errors"
	"math"
	"time"

	"github.com/elimusoft/elimu/core"
)

var ErrNotFound = errors.New("attendance record not found")

type (
	Repository interface {
		CreateAttendance(na NewAttendance) (Attendance, error)
		GetAttendanceByID(id int) (Attendance, error)
		FilterAttendanceByStudent(studentID int) ([]Attendance, error)
		FilterAttendanceByClass(classID int) ([]Attendance, error)
		// FilterAttendanceByDate matches on the calendar day only;
		// time-of-day on either side is ignored.
		FilterAttendanceByDate(date time.Time) ([]Attendance, error)
		UpdateAttendance(id int, up UpdateAttendance) (Attendance, error)
	}

	Service struct {
		repo Repository
	}
)

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

func (svc *Service) Create(na NewAttendance) (Attendance, error) {
	return svc.repo.CreateAttendance(na)
}

func (svc *Service) GetByID(id int) (Attendance, error) {
	return svc.repo.GetAttendanceByID(id)
}

func (svc *Service) ByStudent(studentID int) ([]Attendance, error) {
	return svc.repo.FilterAttendanceByStudent(studentID)
}

func (svc *Service) ByClass(classID int) ([]Attendance, error) {
	return svc.repo.FilterAttendanceByClass(classID)
}

func (svc *Service) ByDate(date time.Time) ([]Attendance, error) {
	return svc.repo.FilterAttendanceByDate(date)
}

func (svc *Service) Update(id int, up UpdateAttendance) (Attendance, error) {
	return svc.repo.UpdateAttendance(id, up)
}

// Summarize aggregates a class's records for one calendar day.
func (svc *Service) Summarize(classID int, date time.Time) (Summary, error) {
	records, err := svc.repo.FilterAttendanceByClass(classID)
	if err != nil {
		return Summary{}, err
	}

	sum := Summary{ClassID: classID, Date: date}
	for _, rec := range records {
		if !core.SameDay(rec.Date, date) {
			continue
		}
		sum.Total++
		switch rec.Status {
		case StatusPresent:
			sum.Present++
		case StatusAbsent:
			sum.Absent++
		case StatusLate:
			sum.Late++
		}
	}
	if sum.Total > 0 {
		sum.Rate = int(math.Round(float64(sum.Present) / float64(sum.Total) * 100))
	}
	return sum, nil
}
