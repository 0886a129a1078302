package ports

import "github.com/SoftGuar/Account-Management-Service/internal/core/domain"

// Stores is the full set of persistence adapters a backend provides.
// Accounts holds every kind, including KindUser, which is also Users.
type Stores struct {
	Accounts        map[domain.Kind]AccountStore
	Users           UserStore
	Recommendations RecommendationStore
	Actions         UserActionStore
}
