package tools

import "testing"

func TestParseTimestamp(t *testing.T) {
	// 2024-01-02T15:04:05Z = 1704207845 s
	const want = int64(1704207845000)

	cases := []string{
		"2024-01-02T15:04:05Z",
		"2024-01-02 15:04:05",
		"1704207845000",
	}
	for _, s := range cases {
		got, err := ParseTimestamp(s)
		if err != nil {
			t.Errorf("ParseTimestamp(%q): %v", s, err)
			continue
		}
		if got != want {
			t.Errorf("ParseTimestamp(%q): got %d, want %d", s, got, want)
		}
	}
}

func TestParseTimestampDateOnly(t *testing.T) {
	// 2024-01-02T00:00:00Z = 1704153600 s
	got, err := ParseTimestamp("2024-01-02")
	if err != nil {
		t.Fatal(err)
	}
	if got != 1704153600000 {
		t.Errorf("got %d, want 1704153600000", got)
	}
}

func TestParseTimestampInvalid(t *testing.T) {
	if _, err := ParseTimestamp("not a time"); err == nil {
		t.Error("expected error for unparseable input")
	}
}

func TestTimestampToString(t *testing.T) {
	got := TimestampToString(1704207845000)
	if got != "2024-01-02T15:04:05Z" {
		t.Errorf("got %q, want 2024-01-02T15:04:05Z", got)
	}
}

func TestTimestampRoundTrip(t *testing.T) {
	const ts = int64(1700000000000)
	back, err := ParseTimestamp(TimestampToString(ts))
	if err != nil {
		t.Fatal(err)
	}
	if back != ts {
		t.Errorf("round trip: got %d, want %d", back, ts)
	}
}
