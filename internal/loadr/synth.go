package loadr

import (
	"time"

	"github.com/brianvoe/gofakeit/v7"
)

// Synthesizer produces plausible values for fixture rows.
type Synthesizer interface {
	Name() string
	Address() string
	Sex() string // "M" or "F"
	Birthday() time.Time
	Phone() string
	Sentence(words int) string
	// Number returns a uniform integer in [min, max].
	Number(min, max int) int
}

// FakeSynthesizer is a Synthesizer backed by gofakeit.
type FakeSynthesizer struct {
	f   *gofakeit.Faker
	now func() time.Time
}

// NewFakeSynthesizer returns a synthesizer seeded with seed.
// A zero seed picks a random one.
func NewFakeSynthesizer(seed uint64) *FakeSynthesizer {
	return &FakeSynthesizer{f: gofakeit.New(seed), now: time.Now}
}

func (s *FakeSynthesizer) Name() string { return s.f.Name() }

func (s *FakeSynthesizer) Address() string { return s.f.Address().Address }

func (s *FakeSynthesizer) Sex() string {
	if s.f.Gender() == "male" {
		return "M"
	}
	return "F"
}

// Birthday returns a date between 0 and 115 years ago.
func (s *FakeSynthesizer) Birthday() time.Time {
	now := s.now()
	return s.f.DateRange(now.AddDate(-115, 0, 0), now)
}

func (s *FakeSynthesizer) Phone() string { return s.f.PhoneFormatted() }

func (s *FakeSynthesizer) Sentence(words int) string { return s.f.Sentence(words) }

func (s *FakeSynthesizer) Number(min, max int) int { return s.f.Number(min, max) }

// pick returns a uniformly chosen element of list.
func pick[T any](s Synthesizer, list []T) T {
	return list[s.Number(0, len(list)-1)]
}
