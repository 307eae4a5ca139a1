package models

// DateWindowSize is the number of days looked back from the query moment.
const DateWindowSize = 5

// DateWindow holds the look-back dates, newest ("yesterday") first, as
// YYYY-MM-DD strings.
type DateWindow struct {
	dates [DateWindowSize]string
}

func NewDateWindow(newestFirst [DateWindowSize]string) DateWindow {
	return DateWindow{dates: newestFirst}
}

// Start is the oldest date, used as the archive start bound.
func (w DateWindow) Start() string {
	return w.dates[DateWindowSize-1]
}

// End is the newest date, used as the archive end bound.
func (w DateWindow) End() string {
	return w.dates[0]
}

func (w DateWindow) Dates() []string {
	out := make([]string, DateWindowSize)
	copy(out, w.dates[:])
	return out
}

// Ascending returns the dates oldest first.
func (w DateWindow) Ascending() []string {
	out := make([]string, 0, DateWindowSize)
	for i := DateWindowSize - 1; i >= 0; i-- {
		out = append(out, w.dates[i])
	}
	return out
}
