package mocks

import "time"

// FixedClock é um clock.Clock congelado em um instante conhecido
type FixedClock struct {
	Instant time.Time
}

func (c *FixedClock) Now() time.Time {
	return c.Instant
}

func (c *FixedClock) Today() time.Time {
	return time.Date(c.Instant.Year(), c.Instant.Month(), c.Instant.Day(),
		0, 0, 0, 0, c.Instant.Location())
}
