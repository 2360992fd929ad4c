package domain

import "time"

// Precision is the timestamp resolution the stores persist.
const Precision = time.Millisecond

// Now returns the current UTC time truncated to Precision.
func Now() time.Time { return time.Now().UTC().Truncate(Precision) }
