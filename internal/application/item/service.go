package item

import (
	"time"
)

const (
	// DefaultRadiusKm is the search radius sent to the provider.
	DefaultRadiusKm = 50

	defaultTTLItem = 10 * time.Minute
)

// Deps are the explicit handles the service works through. Cache and Publisher are optional.
type Deps struct {
	Items     ItemStore
	History   HistoryStore
	Users     UserStore
	Passwords PasswordChecker
	Provider  Provider
	Clock     Clock
	Cache     Cache
	Publisher EventPublisher
}

type Service struct {
	items     ItemStore
	history   HistoryStore
	users     UserStore
	passwords PasswordChecker
	provider  Provider
	clock     Clock
	cache     Cache
	pub       EventPublisher

	radiusKm int
	ttlItem  time.Duration
}

func New(d Deps, radiusKm int, ttlItem time.Duration) *Service {
	if radiusKm <= 0 {
		radiusKm = DefaultRadiusKm
	}
	if ttlItem == 0 {
		ttlItem = defaultTTLItem
	}
	pub := d.Publisher
	if pub == nil {
		pub = NoopPublisher{}
	}

	return &Service{
		items:     d.Items,
		history:   d.History,
		users:     d.Users,
		passwords: d.Passwords,
		provider:  d.Provider,
		clock:     d.Clock,
		cache:     d.Cache,
		pub:       pub,
		radiusKm:  radiusKm,
		ttlItem:   ttlItem,
	}
}
