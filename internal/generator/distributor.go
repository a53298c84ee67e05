package generator

import "github.com/jonesrussell/north-cloud/social-planner/internal/domain"

// DistributeTypes expands frequency into post types by cycling through
// preferred in order. An empty preferred list uses the default types.
func DistributeTypes(frequency int, preferred []domain.PostType) []domain.PostType {
	if len(preferred) == 0 {
		preferred = domain.DefaultPostTypes
	}
	if frequency < 0 {
		frequency = 0
	}

	types := make([]domain.PostType, frequency)
	for i := range types {
		types[i] = preferred[i%len(preferred)]
	}
	return types
}
