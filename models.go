package main

import (
	"fmt"
	"time"
)

/**************************
 ******* Patients *********
 **************************/

// Patient is the persisted record. The view pipeline only reads it;
// derived values live on ComputedPatient.
type Patient struct {
	Id           string `json:"id"`
	Name         string `json:"name"`
	GuardianName string `json:"guardianName"`
	Phone        string `json:"phone"`
	BirthDate    Date   `json:"birthDate"`
	LastCheckIn  *Date  `json:"lastCheckIn,omitempty"`
}

// ComputedPatient is rebuilt on every view refresh and never persisted.
type ComputedPatient struct {
	Patient
	AgeMonths           int    `json:"ageMonths"`
	AgeText             string `json:"ageText"`
	NextDueDate         Date   `json:"nextDueDate"`
	Rule                string `json:"rule"`
	Status              string `json:"status"`
	CheckedInThisPeriod bool   `json:"checkedInThisPeriod"`
	MilestoneVisit      bool   `json:"milestoneVisit"`
}

// Cadence labels
const (
	RuleMonthly   = "Monthly"
	RuleQuarterly = "Quarterly"
)

// Urgency buckets
const (
	StatusLate     = "late"
	StatusUpcoming = "upcoming"
	StatusCurrent  = "current"
	StatusFuture   = "future"
)

// View filters
const (
	FilterAll         = "all"
	FilterUnderTwelve = "0-12"
	FilterTwelvePlus  = "12+"
	FilterLate        = "late"
	FilterMilestone   = "milestone"
)

/*********************************
 ****** Request/Response *********
 *********************************/

type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type NewPatientRequest struct {
	Name         string `json:"name"`
	GuardianName string `json:"guardianName"`
	Phone        string `json:"phone"`
	BirthDate    string `json:"birthDate"`
}

type CheckInRequest struct {
	Date string `json:"date"`
}

// ImportSummary reports row-level outcomes of a single import call.
type ImportSummary struct {
	Imported int `json:"imported"`
	Rejected int `json:"rejected"`
}

/********************************
 ********** App Config **********
 ********************************/

type Config struct {
	ReferenceDate string        `json:"referenceDate"`
	Credentials   Credentials   `json:"credentials"`
	ImportColumns ImportColumns `json:"importColumns"`
	Redis         RedisConfig   `json:"redis"`
	PatientsKey   string        `json:"patientsKey"`
}

type Credentials struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// ImportColumns holds the header keyword sets used to locate columns in
// imported files. Keywords are configuration, not logic, so deployments
// can match their own locale.
type ImportColumns struct {
	Name      []string `json:"name"`
	BirthDate []string `json:"birthDate"`
	Phone     []string `json:"phone"`
	Guardian  []string `json:"guardian"`
}

type RedisConfig struct {
	Addr     string `json:"addr"`
	Password string `json:"password"`
	DB       int    `json:"db"`
}

/*******************************
 ********* Date type ***********
 *******************************/

// Date wraps time.Time to marshal as a plain calendar date.
type Date struct {
	time.Time
}

const dateLayout = "2006-01-02"

// Custom UnmarshalJSON for Date type
func (d *Date) UnmarshalJSON(data []byte) error {

	// Remove quotes around the date string
	dateStr := string(data)
	if dateStr == "null" || dateStr == `""` {
		return nil
	}
	dateStr = dateStr[1 : len(dateStr)-1]

	// Parse string
	parsedTime, err := parseDate(dateStr)
	if err != nil {
		return fmt.Errorf("error parsing date: %v", err)
	}

	// Set parsed time to Date struct
	d.Time = parsedTime
	return nil
}

func (d Date) MarshalJSON() ([]byte, error) {
	return []byte(`"` + d.Format(dateLayout) + `"`), nil
}
