package utils

import (
	"reflect"
	"testing"
)

func TestClockToMinutes(t *testing.T) {
	cases := []struct {
		in   string
		want int
	}{
		{"00:00", 0},
		{"08:00", 480},
		{"10:30", 630},
		{"23:59", 1439},
		{"24:00", 1440}, // midnight close time
		{"12:00 AM", 0},
		{"12:00 PM", 720},
		{"2:00 PM", 840},
		{"11:30 pm", 1410},
		{" 9:15 AM ", 555},
	}
	for _, tc := range cases {
		got, err := ClockToMinutes(tc.in)
		if err != nil {
			t.Errorf("ClockToMinutes(%q) failed: %v", tc.in, err)
			continue
		}
		if got != tc.want {
			t.Errorf("ClockToMinutes(%q) = %d, want %d", tc.in, got, tc.want)
		}
	}
}

func TestClockToMinutesInvalid(t *testing.T) {
	for _, in := range []string{"", "10", "25:00", "10:75", "24:30", "ten o'clock", "10:00:00"} {
		if _, err := ClockToMinutes(in); err == nil {
			t.Errorf("ClockToMinutes(%q) should fail", in)
		}
	}
}

func TestHourLabel(t *testing.T) {
	cases := []struct {
		hour int
		want string
	}{
		{0, "12:00 AM"},
		{8, "8:00 AM"},
		{12, "12:00 PM"},
		{14, "2:00 PM"},
		{23, "11:00 PM"},
	}
	for _, tc := range cases {
		if got := HourLabel(tc.hour); got != tc.want {
			t.Errorf("HourLabel(%d) = %q, want %q", tc.hour, got, tc.want)
		}
	}
}

func TestHourRange(t *testing.T) {
	cases := []struct {
		start, end string
		want       []int
	}{
		{"10:00", "12:00", []int{10, 11}},
		{"10:30", "11:30", []int{10, 11}}, // partial hours widen
		{"10:00", "10:30", []int{10}},
		{"22:00", "24:00", []int{22, 23}},
	}
	for _, tc := range cases {
		got, err := HourRange(tc.start, tc.end)
		if err != nil {
			t.Errorf("HourRange(%q, %q) failed: %v", tc.start, tc.end, err)
			continue
		}
		if !reflect.DeepEqual(got, tc.want) {
			t.Errorf("HourRange(%q, %q) = %v, want %v", tc.start, tc.end, got, tc.want)
		}
	}
}
