package main

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"go.uber.org/zap"
)

// computePatient derives the full per-patient view for one reference
// date. All outputs are reproducible from (patient, ref) alone.
func computePatient(p Patient, ref time.Time) (ComputedPatient, error) {
	if p.BirthDate.IsZero() {
		return ComputedPatient{}, fmt.Errorf("patient %s has no birth date", p.Id)
	}

	months, text := ageOf(p.BirthDate.Time, ref)

	due, rule, err := nextVisit(p.BirthDate.Time, ref)
	if err != nil {
		return ComputedPatient{}, err
	}

	return ComputedPatient{
		Patient:             p,
		AgeMonths:           months,
		AgeText:             text,
		NextDueDate:         Date{due},
		Rule:                rule,
		Status:              classifyStatus(due, ref),
		CheckedInThisPeriod: checkedInThisPeriod(p.LastCheckIn, ref),
		MilestoneVisit:      isMilestoneVisit(p.BirthDate.Time, due),
	}, nil
}

// composeView runs the per-patient pipeline over the collection, applies
// the text search and category filter, and sorts the result. Patients
// whose schedule cannot be computed are skipped rather than failing the
// whole view.
func composeView(patients []Patient, search, filter string, ref time.Time) []ComputedPatient {
	computed := make([]ComputedPatient, 0, len(patients))

	for _, p := range patients {
		cp, err := computePatient(p, ref)
		if err != nil {
			zapLogger.Error("skipping patient in view", zap.String("patient", p.Id), zap.Error(err))
			continue
		}
		if !matchesSearch(cp, search) || !matchesFilter(cp, filter) {
			continue
		}
		computed = append(computed, cp)
	}

	// Checked-in patients sink to the bottom; within each group the
	// soonest due date comes first. Stable so equal keys keep insertion
	// order.
	sort.SliceStable(computed, func(i, j int) bool {
		if computed[i].CheckedInThisPeriod != computed[j].CheckedInThisPeriod {
			return !computed[i].CheckedInThisPeriod
		}
		return computed[i].NextDueDate.Before(computed[j].NextDueDate.Time)
	})

	return computed
}

// matchesSearch performs a case-insensitive substring match against the
// patient name or guardian name. An empty term passes everything.
func matchesSearch(cp ComputedPatient, term string) bool {
	if term == "" {
		return true
	}
	term = strings.ToLower(term)
	return strings.Contains(strings.ToLower(cp.Name), term) ||
		strings.Contains(strings.ToLower(cp.GuardianName), term)
}

func matchesFilter(cp ComputedPatient, filter string) bool {
	switch filter {
	case FilterUnderTwelve:
		return cp.AgeMonths < 12
	case FilterTwelvePlus:
		return cp.AgeMonths >= 12
	case FilterLate:
		return cp.Status == StatusLate && !cp.CheckedInThisPeriod
	case FilterMilestone:
		return cp.MilestoneVisit && !cp.CheckedInThisPeriod
	default:
		return true
	}
}
