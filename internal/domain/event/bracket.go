package event

import "math/rand"

// Pairing is one first-round match. Away is empty for a bye.
type Pairing struct {
	Home string `json:"home"`
	Away string `json:"away,omitempty"`
	Bye  bool   `json:"bye,omitempty"`
}

// GenerateBracket shuffles the participants (Fisher-Yates over a seeded
// source, so a fixed seed reproduces the draw) and pairs them sequentially.
// An odd participant count gives the last entrant a bye. The bracket is
// rendered only, never persisted.
func GenerateBracket(participants []string, seed int64) []Pairing {
	if len(participants) == 0 {
		return []Pairing{}
	}

	shuffled := make([]string, len(participants))
	copy(shuffled, participants)

	rng := rand.New(rand.NewSource(seed))
	for i := len(shuffled) - 1; i > 0; i-- {
		j := rng.Intn(i + 1)
		shuffled[i], shuffled[j] = shuffled[j], shuffled[i]
	}

	pairings := make([]Pairing, 0, (len(shuffled)+1)/2)
	for i := 0; i+1 < len(shuffled); i += 2 {
		pairings = append(pairings, Pairing{Home: shuffled[i], Away: shuffled[i+1]})
	}
	if len(shuffled)%2 == 1 {
		pairings = append(pairings, Pairing{Home: shuffled[len(shuffled)-1], Bye: true})
	}
	return pairings
}
