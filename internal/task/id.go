package task

import (
	"crypto/sha256"
	"fmt"
	"math/big"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/taskdeck/taskdeck/internal/calendar"
)

const (
	minIDLength = 3
	maxIDLength = 8
	idBase      = 36
	idSparsity  = 64 // ID space kept at least this many times larger than the task count
)

// GenerateID derives a short base36 ID from the task's deadline, title and
// creation time. The starting length grows with the number of existing IDs,
// and a taken candidate is extended one character at a time.
func GenerateID(title string, deadline calendar.Date, createdAt time.Time, existing map[string]bool) string {
	nonce := uuid.New()
	return generateID(title, deadline, createdAt, existing, nonce[:])
}

func generateID(title string, deadline calendar.Date, createdAt time.Time, existing map[string]bool, nonce []byte) string {
	h := sha256.New()
	fmt.Fprintf(h, "%s\x00%s\x00%s\x00", deadline, title, createdAt.Format(time.RFC3339Nano))
	h.Write(nonce)
	digits := base36Digits(h.Sum(nil))

	for length := minLengthFor(len(existing)); length <= maxIDLength; length++ {
		if !existing[digits[:length]] {
			return digits[:length]
		}
	}
	return digits[:maxIDLength]
}

// minLengthFor returns the shortest length whose ID space stays sparse for count tasks.
func minLengthFor(count int) int {
	length := minIDLength
	space := idBase * idBase * idBase
	for length < maxIDLength && space < count*idSparsity {
		space *= idBase
		length++
	}
	return length
}

// base36Digits renders sum as a base36 number, left-padded to at least maxIDLength digits.
func base36Digits(sum []byte) string {
	s := new(big.Int).SetBytes(sum).Text(idBase)
	if len(s) < maxIDLength {
		s = strings.Repeat("0", maxIDLength-len(s)) + s
	}
	return s
}
