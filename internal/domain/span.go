package domain

// Span is an inclusive calendar date range over ISO YYYY-MM-DD
// strings. A nil bound leaves that side open. ISO dates compare
// correctly as plain strings, so no time parsing happens here.
type Span struct {
	Start *string
	End   *string
}

func NewSpan(start, end *string) Span {
	return Span{Start: start, End: end}
}

// Day returns a span covering exactly one date.
func Day(date string) Span {
	return Span{Start: &date, End: &date}
}

func (s Span) Contains(date string) bool {
	if s.Start != nil && date < *s.Start {
		return false
	}
	if s.End != nil && date > *s.End {
		return false
	}
	return true
}
