// README: Feature flag registry (§6.5). Flags seed from FEATURE_<NAME> env
// vars at boot, same envOrDefault convention as ark's config package, but
// stay mutable afterward via Set so an operator can roll a stage back
// without a redeploy.
package flags

import (
	"os"
	"strings"
	"sync"
)

// Name enumerates the 22 flags controlling individual pipeline stages.
type Name string

const (
	Normalization         Name = "NORMALIZATION"
	EmojiSlang            Name = "EMOJI_SLANG"
	SemanticExpansion     Name = "SEMANTIC_EXPANSION"
	EntityExtraction      Name = "ENTITY_EXTRACTION"
	SubIntentDetection    Name = "SUB_INTENT_DETECTION"
	MicroCategories       Name = "MICRO_CATEGORIES"
	MultiLabelClassify    Name = "MULTI_LABEL_CLASSIFICATION"
	HyperlocalBoosts      Name = "HYPERLOCAL_BOOSTS"
	SmallVenueBoost       Name = "SMALL_VENUE_BOOST"
	IndependenceBoost     Name = "INDEPENDENCE_BOOST"
	MomentumBoost         Name = "MOMENTUM_BOOST"
	ClusterVibrancy       Name = "CLUSTER_VIBRANCY"
	NeighborhoodContext   Name = "NEIGHBORHOOD_CONTEXT"
	AdaptiveRanking       Name = "ADAPTIVE_RANKING"
	Deduplication         Name = "DEDUPLICATION"
	CircuitBreaker        Name = "CIRCUIT_BREAKER"
	CostOptimization      Name = "COST_OPTIMIZATION"
	DistributedCache      Name = "DISTRIBUTED_CACHE"
	RequestCancellation   Name = "REQUEST_CANCELLATION"
	SmartFallbacks        Name = "SMART_FALLBACKS"
	UXFeedback            Name = "UX_FEEDBACK"
	Metrics               Name = "METRICS"
)

// defaults are the compiled-in values when no FEATURE_<NAME> env var and no
// runtime override are present. Everything defaults on except
// DISTRIBUTED_CACHE, which needs a Redis instance.
var defaults = map[Name]bool{
	Normalization:       true,
	EmojiSlang:          true,
	SemanticExpansion:   true,
	EntityExtraction:    true,
	SubIntentDetection:  true,
	MicroCategories:     true,
	MultiLabelClassify:  true,
	HyperlocalBoosts:    true,
	SmallVenueBoost:     true,
	IndependenceBoost:   true,
	MomentumBoost:       true,
	ClusterVibrancy:     true,
	NeighborhoodContext: true,
	AdaptiveRanking:     true,
	Deduplication:       true,
	CircuitBreaker:      true,
	CostOptimization:    true,
	DistributedCache:    false,
	RequestCancellation: true,
	SmartFallbacks:      true,
	UXFeedback:          true,
	Metrics:             true,
}

// Registry holds the current, mutable value of every flag.
type Registry struct {
	mu     sync.RWMutex
	values map[Name]bool
}

// NewRegistry seeds a Registry from the compiled-in defaults, overridden by
// any FEATURE_<NAME>=true|false environment variables present at boot.
func NewRegistry() *Registry {
	values := make(map[Name]bool, len(defaults))
	for name, def := range defaults {
		values[name] = envOverride(name, def)
	}
	return &Registry{values: values}
}

func envOverride(name Name, def bool) bool {
	v := os.Getenv("FEATURE_" + string(name))
	if v == "" {
		return def
	}
	switch strings.ToLower(v) {
	case "true", "1", "yes", "on":
		return true
	case "false", "0", "no", "off":
		return false
	default:
		return def
	}
}

// Enabled reports the current value of a flag. Unknown flags read as false.
func (r *Registry) Enabled(name Name) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.values[name]
}

// Set overrides a flag at runtime, for operator rollback without redeploy.
func (r *Registry) Set(name Name, enabled bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.values[name] = enabled
}

// Snapshot returns a copy of all current flag values, used by the
// diagnostics endpoint (§6.4).
func (r *Registry) Snapshot() map[Name]bool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make(map[Name]bool, len(r.values))
	for k, v := range r.values {
		out[k] = v
	}
	return out
}
