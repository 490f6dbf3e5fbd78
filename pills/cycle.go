package pills

import "time"

// Pack types accepted by the cycle endpoint.
const (
	Pack21_7        = "combined_21_7"
	Pack24_4        = "combined_24_4"
	PackContinuous  = "continuous_28"
	PackProgestin   = "progestin_only"
	packCycleLength = 28
)

// PackSchedule describes the active/inactive day split of a pack type.
type PackSchedule struct {
	Active   int `json:"active"`
	Inactive int `json:"inactive"`
	Length   int `json:"length"`
}

var schedules = map[string]PackSchedule{
	Pack21_7:       {Active: 21, Inactive: 7, Length: packCycleLength},
	Pack24_4:       {Active: 24, Inactive: 4, Length: packCycleLength},
	PackContinuous: {Active: 28, Inactive: 0, Length: packCycleLength},
	PackProgestin:  {Active: 28, Inactive: 0, Length: packCycleLength},
}

// ScheduleFor returns the pack schedule, defaulting to combined 24/4.
func ScheduleFor(packType string) PackSchedule {
	if s, ok := schedules[packType]; ok {
		return s
	}
	return schedules[Pack24_4]
}

// KnownPackType reports whether the pack type is valid.
func KnownPackType(packType string) bool {
	_, ok := schedules[packType]
	return ok
}

// PackDay returns the 1..28 day within the current pack for a start date.
// A start date in the future still yields a valid day via safe modulo.
func PackDay(start, now time.Time) int {
	startDay := start.Truncate(24 * time.Hour)
	nowDay := now.Truncate(24 * time.Hour)
	diff := int(nowDay.Sub(startDay).Hours() / 24)
	mod := ((diff % packCycleLength) + packCycleLength) % packCycleLength
	return mod + 1
}

// CycleInfo summarizes where in the pack the user is today.
type CycleInfo struct {
	PackDay      int    `json:"packDay"`
	IsActivePill bool   `json:"isActivePill"`
	Suppression  string `json:"suppression"`
	PhaseLabel   string `json:"phaseLabel"`
	ActiveDays   int    `json:"activeDays"`
}

// Info computes the cycle info for a pack type and start date.
func Info(packType string, start, now time.Time) CycleInfo {
	schedule := ScheduleFor(packType)
	day := PackDay(start, now)
	active := day <= schedule.Active

	suppression := "strong"
	switch {
	case !active && schedule.Inactive > 0:
		suppression = "lower"
	case packType == PackProgestin:
		suppression = "moderate"
	}

	phase := "Active hormones"
	if !active {
		if schedule.Inactive > 0 {
			phase = "Placebo/Break"
		} else {
			phase = "Continuous active"
		}
	}

	return CycleInfo{
		PackDay:      day,
		IsActivePill: active,
		Suppression:  suppression,
		PhaseLabel:   phase,
		ActiveDays:   schedule.Active,
	}
}
