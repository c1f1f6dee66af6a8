package datetime

import "time"

// Stamp is the wire format for timestamps: ISO 8601 string, unix seconds,
// and the UTC offset. Everything is normalized to UTC before rendering.
type Stamp struct {
	ISO       string  `json:"iso"`
	Timestamp float64 `json:"timestamp"`
	Timezone  string  `json:"timezone"`
}

func Format(t time.Time) Stamp {
	t = t.UTC()
	return Stamp{
		ISO:       t.Format(time.RFC3339Nano),
		Timestamp: float64(t.UnixNano()) / float64(time.Second),
		Timezone:  "+00:00",
	}
}
