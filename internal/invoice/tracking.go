package invoice

import (
	"crypto/rand"
	"math/big"
	"time"
)

// trackingSpace keeps generated numbers inside 15 digits, which every bank
// reference field we talk to accepts.
const trackingSpace = 1_000_000

// GenerateTrackingNumber returns a positive, time-prefixed tracking number:
// unix seconds followed by six random digits.
func GenerateTrackingNumber() int64 {
	now := time.Now().UTC()

	n, err := rand.Int(rand.Reader, big.NewInt(trackingSpace-1))
	if err != nil {
		// fallback: time-based entropy
		n = big.NewInt(int64(now.Nanosecond()) % (trackingSpace - 1))
	}

	return now.Unix()%1_000_000_000*trackingSpace + n.Int64() + 1
}
