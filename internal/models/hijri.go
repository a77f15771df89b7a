package models

import "time"

// HijriInfo holds display labels for today's Hijri and Gregorian dates
type HijriInfo struct {
	HijriLabel     string `json:"hijriLabel"`
	GregorianLabel string `json:"gregorianLabel"`
}

// CalendarDay pairs a Gregorian date with its Hijri equivalent
type CalendarDay struct {
	Gregorian  time.Time `json:"gregorian"`
	HijriDay   int       `json:"hijriDay"`
	HijriMonth int       `json:"hijriMonth"`
	HijriYear  int       `json:"hijriYear"`
	MonthName  string    `json:"monthName"`
}

// Milestone is an upcoming notable date in the Hijri calendar
type Milestone struct {
	Title     string    `json:"title"`
	Slug      string    `json:"slug"`
	Date      time.Time `json:"date"`
	DateLabel string    `json:"dateLabel"`
	InDays    int       `json:"inDays"`
}
