package schedule

import (
	"testing"
	"time"

	"ridegen/internal/config"
)

func TestBuildGrid(t *testing.T) {
	ref := time.Date(2025, 3, 14, 13, 37, 55, 123, time.UTC)
	sched := config.ScheduleConfig{StartHour: 5, HoursPerDay: 19, MinuteResolution: 1}

	grid := BuildGrid(ref, sched)

	wantStart := time.Date(2025, 3, 14, 5, 0, 0, 0, time.UTC)
	if !grid.Start.Equal(wantStart) {
		t.Errorf("start = %v, want %v", grid.Start, wantStart)
	}
	if len(grid.Times) != 19*60 {
		t.Errorf("got %d timestamps, want %d", len(grid.Times), 19*60)
	}
	if !grid.Times[0].Equal(wantStart) {
		t.Errorf("first timestamp = %v, want %v", grid.Times[0], wantStart)
	}
	// Half-open: the end instant itself is excluded.
	last := grid.Times[len(grid.Times)-1]
	wantLast := wantStart.Add(19*time.Hour - time.Minute)
	if !last.Equal(wantLast) {
		t.Errorf("last timestamp = %v, want %v", last, wantLast)
	}
	for i := 1; i < len(grid.Times); i++ {
		if got := grid.Times[i].Sub(grid.Times[i-1]); got != time.Minute {
			t.Fatalf("spacing at %d = %v, want 1m", i, got)
		}
	}
}

func TestBuildGrid_CoarseResolution(t *testing.T) {
	ref := time.Date(2025, 3, 14, 23, 0, 0, 0, time.UTC)
	grid := BuildGrid(ref, config.ScheduleConfig{StartHour: 6, HoursPerDay: 1, MinuteResolution: 30})

	if len(grid.Times) != 2 {
		t.Fatalf("got %d timestamps, want 2", len(grid.Times))
	}
	if grid.Times[0].Hour() != 6 || grid.Times[0].Minute() != 0 {
		t.Errorf("first = %v, want 06:00", grid.Times[0])
	}
	if grid.Times[1].Hour() != 6 || grid.Times[1].Minute() != 30 {
		t.Errorf("second = %v, want 06:30", grid.Times[1])
	}
}

func TestBuildGrid_UnevenStep(t *testing.T) {
	ref := time.Date(2025, 3, 14, 0, 0, 0, 0, time.UTC)
	grid := BuildGrid(ref, config.ScheduleConfig{StartHour: 8, HoursPerDay: 1, MinuteResolution: 45})

	// 08:00 and 08:45 fit before 09:00; the step past the end is dropped.
	if len(grid.Times) != 2 {
		t.Fatalf("got %d timestamps, want 2", len(grid.Times))
	}
}

func TestDayStamp(t *testing.T) {
	ref := time.Date(2025, 1, 7, 12, 0, 0, 0, time.UTC)
	grid := BuildGrid(ref, config.ScheduleConfig{StartHour: 5, HoursPerDay: 2, MinuteResolution: 10})
	if got := grid.DayStamp(); got != "20250107" {
		t.Errorf("DayStamp = %q, want 20250107", got)
	}
}

func TestClockMinutes(t *testing.T) {
	tests := []struct {
		name    string
		in      string
		want    int
		wantErr bool
	}{
		{"midnight", "00:00", 0, false},
		{"morning", "07:00", 420, false},
		{"single digit hour", "7:30", 450, false},
		{"end of day", "23:59", 1439, false},
		{"hour out of range", "24:00", 0, true},
		{"minute out of range", "12:60", 0, true},
		{"garbage", "noon", 0, true},
		{"empty", "", 0, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ClockMinutes(tt.in)
			if tt.wantErr {
				if err == nil {
					t.Errorf("ClockMinutes(%q) should fail", tt.in)
				}
				return
			}
			if err != nil {
				t.Fatalf("ClockMinutes(%q): %v", tt.in, err)
			}
			if got != tt.want {
				t.Errorf("ClockMinutes(%q) = %d, want %d", tt.in, got, tt.want)
			}
		})
	}
}

func TestParseWindow(t *testing.T) {
	w, err := ParseWindow("07:00", "09:30")
	if err != nil {
		t.Fatalf("ParseWindow: %v", err)
	}
	if w.StartMin != 420 || w.EndMin != 570 {
		t.Errorf("window = %+v, want {420 570}", w)
	}

	if _, err := ParseWindow("07:00", "9am"); err == nil {
		t.Error("bad end bound should fail")
	}
	if _, err := ParseWindow("late", "09:30"); err == nil {
		t.Error("bad start bound should fail")
	}
}

func TestInWindows(t *testing.T) {
	windows := []Window{
		{StartMin: 420, EndMin: 570},  // 07:00-09:30
		{StartMin: 990, EndMin: 1140}, // 16:30-19:00
	}
	at := func(h, m int) time.Time {
		return time.Date(2025, 3, 14, h, m, 0, 0, time.UTC)
	}

	tests := []struct {
		name string
		ts   time.Time
		want bool
	}{
		{"before first window", at(6, 59), false},
		{"start bound is inclusive", at(7, 0), true},
		{"inside first window", at(8, 15), true},
		{"end bound is inclusive", at(9, 30), true},
		{"between windows", at(12, 0), false},
		{"inside second window", at(17, 0), true},
		{"after last window", at(19, 1), false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := InWindows(tt.ts, windows); got != tt.want {
				t.Errorf("InWindows(%s) = %v, want %v", tt.ts.Format("15:04"), got, tt.want)
			}
		})
	}
}

func TestInWindows_EmptyList(t *testing.T) {
	ts := time.Date(2025, 3, 14, 8, 0, 0, 0, time.UTC)
	if InWindows(ts, nil) {
		t.Error("no windows should never classify as peak")
	}
}

func TestInWindows_DateIgnored(t *testing.T) {
	windows := []Window{{StartMin: 420, EndMin: 570}}
	a := time.Date(2001, 1, 1, 8, 0, 0, 0, time.UTC)
	b := time.Date(2099, 12, 31, 8, 0, 0, 0, time.UTC)
	if !InWindows(a, windows) || !InWindows(b, windows) {
		t.Error("classification should depend on time of day only")
	}
}

func TestCyclicalPick(t *testing.T) {
	seq := []float64{3, 4, 3, 5}
	want := []float64{3, 4, 3, 5, 3, 4, 3, 5, 3}
	for i, w := range want {
		if got := CyclicalPick(seq, i); got != w {
			t.Errorf("CyclicalPick(seq, %d) = %v, want %v", i, got, w)
		}
	}
}

func TestCyclicalPick_Periodic(t *testing.T) {
	seq := []float64{8, 10, 12}
	for i := 0; i < 50; i++ {
		if CyclicalPick(seq, i) != CyclicalPick(seq, i+len(seq)) {
			t.Fatalf("pick not periodic at i=%d", i)
		}
	}
}

func TestCyclicalPick_SingleElement(t *testing.T) {
	seq := []float64{10}
	for i := 0; i < 5; i++ {
		if got := CyclicalPick(seq, i); got != 10 {
			t.Errorf("CyclicalPick(seq, %d) = %v, want 10", i, got)
		}
	}
}
