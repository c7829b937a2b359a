package weather

import "testing"

func TestIconForIDRanges(t *testing.T) {
	tests := []struct {
		name string
		id   int
		want string
	}{
		{"thunderstorm", 211, "fa-bolt"},
		{"drizzle", 300, "fa-cloud-rain"},
		{"rain", 502, "fa-cloud-showers-heavy"},
		{"freezing rain", 511, "fa-snowflake"},
		{"shower rain", 521, "fa-cloud-rain"},
		{"snow", 600, "fa-snowflake"},
		{"mist", 701, "fa-smog"},
		{"clear", 800, "fa-sun"},
		{"few clouds", 801, "fa-cloud-sun"},
		{"scattered clouds", 802, "fa-cloud"},
		{"overcast", 804, "fa-cloud-meatball"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := IconFor(tt.id, "", ""); got != tt.want {
				t.Fatalf("IconFor(%d) = %q, want %q", tt.id, got, tt.want)
			}
		})
	}
}

func TestIconForFallbacks(t *testing.T) {
	if got := IconFor(0, "Rain", ""); got != "fa-cloud-showers-heavy" {
		t.Fatalf("main-group fallback = %q", got)
	}
	if got := IconFor(0, "", "patchy fog nearby"); got != "fa-smog" {
		t.Fatalf("description fallback = %q", got)
	}
	if got := IconFor(0, "", "violent squall expected"); got != "fa-wind" {
		t.Fatalf("squall fallback = %q", got)
	}
	if got := IconFor(0, "", ""); got != "fa-question-circle" {
		t.Fatalf("unknown condition = %q", got)
	}
}
