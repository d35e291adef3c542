package user

import "testing"

func TestUnlockedBadges(t *testing.T) {
	cases := []struct {
		points int
		want   int
	}{
		{0, 0},
		{20, 0},
		{29, 0},
		{30, 1},
		{40, 2},
		{70, 3},
		{100, 4},
		{110, 5},
		{500, 5},
	}

	for _, tc := range cases {
		if got := len(UnlockedBadges(tc.points)); got != tc.want {
			t.Errorf("UnlockedBadges(%d): expected %d badges, got %d", tc.points, tc.want, got)
		}
	}
}

func TestUnlockedBadges_ThresholdIsInclusive(t *testing.T) {
	badges := UnlockedBadges(30)
	if len(badges) != 1 || badges[0].Name != "Conversationalist" {
		t.Fatalf("expected Conversationalist at exactly 30 points, got %v", badges)
	}
}
