package pills

import (
	"testing"
	"time"
)

func TestPackDay(t *testing.T) {
	start := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)

	tests := []struct {
		name string
		now  time.Time
		want int
	}{
		{"start day is day 1", start, 1},
		{"next day is day 2", start.AddDate(0, 0, 1), 2},
		{"last day of pack", start.AddDate(0, 0, 27), 28},
		{"wraps to day 1", start.AddDate(0, 0, 28), 1},
		{"second pack midway", start.AddDate(0, 0, 35), 8},
		{"future start date still valid", start.AddDate(0, 0, -3), 26},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := PackDay(start, tt.now); got != tt.want {
				t.Errorf("PackDay = %d, want %d", got, tt.want)
			}
		})
	}
}

func TestScheduleFor(t *testing.T) {
	if s := ScheduleFor(Pack21_7); s.Active != 21 || s.Inactive != 7 {
		t.Errorf("21/7 schedule = %+v", s)
	}
	if s := ScheduleFor(PackContinuous); s.Active != 28 || s.Inactive != 0 {
		t.Errorf("continuous schedule = %+v", s)
	}
	// unknown types default to 24/4
	if s := ScheduleFor("bogus"); s.Active != 24 || s.Inactive != 4 {
		t.Errorf("default schedule = %+v", s)
	}
}

func TestKnownPackType(t *testing.T) {
	for _, pt := range []string{Pack21_7, Pack24_4, PackContinuous, PackProgestin} {
		if !KnownPackType(pt) {
			t.Errorf("KnownPackType(%q) = false", pt)
		}
	}
	if KnownPackType("patch") {
		t.Error("KnownPackType(patch) = true")
	}
}

func TestInfo(t *testing.T) {
	start := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)

	// day 10 of a 21/7 pack: active hormones
	info := Info(Pack21_7, start, start.AddDate(0, 0, 9))
	if info.PackDay != 10 || !info.IsActivePill {
		t.Errorf("day 10 info = %+v", info)
	}
	if info.Suppression != "strong" || info.PhaseLabel != "Active hormones" {
		t.Errorf("day 10 info = %+v", info)
	}

	// day 25 of a 21/7 pack: placebo week
	info = Info(Pack21_7, start, start.AddDate(0, 0, 24))
	if info.IsActivePill {
		t.Errorf("day 25 should be inactive: %+v", info)
	}
	if info.Suppression != "lower" || info.PhaseLabel != "Placebo/Break" {
		t.Errorf("day 25 info = %+v", info)
	}

	// progestin-only packs have no placebo week
	info = Info(PackProgestin, start, start.AddDate(0, 0, 26))
	if !info.IsActivePill || info.Suppression != "moderate" {
		t.Errorf("progestin info = %+v", info)
	}
}

func TestSideEffectsFor(t *testing.T) {
	combined := SideEffectsFor(Combined)
	if len(combined["common"]) == 0 || len(combined["placebo_week"]) == 0 {
		t.Errorf("combined side effects = %v", combined)
	}

	prog := SideEffectsFor(ProgestinOnly)
	if len(prog["common"]) == 0 {
		t.Errorf("progestin side effects = %v", prog)
	}
	if _, ok := prog["placebo_week"]; ok {
		t.Error("progestin-only packs have no placebo week")
	}

	// unknown kinds default to combined
	if len(SideEffectsFor("bogus")["common"]) == 0 {
		t.Error("default side effects missing")
	}
}
