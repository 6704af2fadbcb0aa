// README: SearchIntent and UserContext — the request-scoped structs that
// flow through the pipeline from normalization to ranking (§3). Immutable
// after creation; no back-references to later pipeline stages.
package searchintent

import "time"

// Kind is the tri-valued tag for what a query wants.
type Kind string

const (
	KindPlace Kind = "place"
	KindEvent Kind = "event"
	KindBoth  Kind = "both"
)

// TimeLabel is the coarse time context detected in a query.
type TimeLabel string

const (
	TimeNone     TimeLabel = ""
	TimeNow      TimeLabel = "now"
	TimeToday    TimeLabel = "today"
	TimeTonight  TimeLabel = "tonight"
	TimeWeekend  TimeLabel = "weekend"
	TimeSpecific TimeLabel = "specific"
)

// LocationKind tags which shape of location hint a query carried.
type LocationKind string

const (
	LocationUnknown LocationKind = "unknown"
	LocationNearMe  LocationKind = "near_me"
	LocationCity    LocationKind = "city"
	LocationZip     LocationKind = "zip"
)

// LocationHint is a tagged value: at most one of City/Zip is populated,
// consistent with Kind.
type LocationHint struct {
	Kind LocationKind
	City string
	Zip  string
}

// BudgetLevel is the closed sub-intent budget taxonomy.
type BudgetLevel string

const (
	BudgetNone     BudgetLevel = ""
	BudgetFree     BudgetLevel = "free"
	BudgetBudget   BudgetLevel = "budget"
	BudgetModerate BudgetLevel = "moderate"
	BudgetUpscale  BudgetLevel = "upscale"
)

// GroupSize is the closed sub-intent group-size taxonomy.
type GroupSize string

const (
	GroupNone       GroupSize = ""
	GroupSolo       GroupSize = "solo"
	GroupDate       GroupSize = "date"
	GroupSmall      GroupSize = "small_group"
	GroupLarge      GroupSize = "large_group"
)

// Urgency is the closed sub-intent urgency taxonomy.
type Urgency string

const (
	UrgencyNone       Urgency = ""
	UrgencyImmediate  Urgency = "immediate"
	UrgencyNearFuture Urgency = "near_future"
	UrgencyPlanning   Urgency = "planning"
)

// SubIntents carries the optional finer-grained signals §3 describes.
type SubIntents struct {
	Mood      string
	Budget    BudgetLevel
	Group     GroupSize
	Urgency   Urgency
}

// Source tags where the final SearchIntent's categories/keywords came from.
type Source string

const (
	SourceRuleBased         Source = "rule-based"
	SourceModel             Source = "model"
	SourceRuleBasedFallback Source = "rule-based-fallback"
)

// SearchIntent is the structured interpretation of a raw query (§3).
// Immutable after creation.
type SearchIntent struct {
	Kind        Kind
	Keywords    []string
	VibeTags    []string
	Categories  []string // subset of the closed macro set, kept as strings for easy JSON round-trip
	TimeLabel   TimeLabel
	Weekday     string // populated only when TimeLabel == TimeSpecific
	Location    LocationHint
	Confidence  float64
	Sub         SubIntents
	Source      Source
	ModelUsed   bool
	RawQuery    string
	Normalized  string
}

// UserContext is the immutable per-request caller context (§3).
type UserContext struct {
	HasLocation bool
	Lat         float64
	Lng         float64
	Timezone    string // IANA name
	Now         time.Time
}
