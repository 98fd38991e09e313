package domain

import "time"

// Instrument is a tradable security. The stored LastTradedPrice doubles as
// the fallback execution price when no live quote is available.
type Instrument struct {
	Symbol          string
	Exchange        string
	InstrumentType  string
	LastTradedPrice int64 // paise
	CreatedAt       time.Time
}

// Quote is a point-in-time market snapshot from a quote source.
type Quote struct {
	Symbol          string
	Exchange        string
	LastTradedPrice int64 // paise
	Change          int64 // paise
	ChangePercent   float64
	Volume          int64
	High            int64 // paise
	Low             int64 // paise
	Open            int64 // paise
}
