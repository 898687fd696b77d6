package sim

import (
	"fmt"
	"math/rand"
)

const registrationLetters = "ABCDEFGHIJKLMNOPQRSTUVWXYZ"

// Purchased airframes register as N-XX99; the starter gift carries the
// 666 prefix.
const (
	purchasePrefix = "N"
	starterPrefix  = "666"
)

func newRegistration(prefix string) string {
	return fmt.Sprintf("%s-%c%c%d%d",
		prefix,
		registrationLetters[rand.Intn(len(registrationLetters))],
		registrationLetters[rand.Intn(len(registrationLetters))],
		rand.Intn(10),
		rand.Intn(10),
	)
}
