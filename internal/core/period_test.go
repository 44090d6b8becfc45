package core

import "testing"

func TestPeriodsElapsed(t *testing.T) {
	tests := []struct {
		name  string
		start [3]int
		asOf  [3]int
		freq  Frequency
		want  int
	}{
		{"three full months", [3]int{2024, 6, 1}, [3]int{2024, 9, 1}, Monthly, 3},
		{"day not reached yet", [3]int{2024, 6, 15}, [3]int{2024, 9, 14}, Monthly, 2},
		{"empty frequency is monthly", [3]int{2024, 6, 1}, [3]int{2024, 9, 1}, "", 3},
		{"month-end clamping", [3]int{2024, 1, 31}, [3]int{2024, 2, 29}, Monthly, 1},
		{"start in future", [3]int{2024, 10, 1}, [3]int{2024, 9, 1}, Monthly, 0},
		{"same day", [3]int{2024, 9, 1}, [3]int{2024, 9, 1}, Monthly, 0},
		{"weekly", [3]int{2024, 9, 1}, [3]int{2024, 9, 22}, Weekly, 3},
		{"weekly partial", [3]int{2024, 9, 1}, [3]int{2024, 9, 21}, Weekly, 2},
		{"quarterly", [3]int{2024, 1, 10}, [3]int{2024, 12, 31}, Quarterly, 3},
		{"yearly", [3]int{2020, 3, 1}, [3]int{2024, 2, 28}, Yearly, 3},
		{"unknown frequency", [3]int{2020, 3, 1}, [3]int{2024, 2, 28}, "hourly", 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			start := date(tt.start[0], tt.start[1], tt.start[2])
			asOf := date(tt.asOf[0], tt.asOf[1], tt.asOf[2])
			if got := PeriodsElapsed(start, asOf, tt.freq); got != tt.want {
				t.Errorf("PeriodsElapsed() = %d, want %d", got, tt.want)
			}
		})
	}
}
