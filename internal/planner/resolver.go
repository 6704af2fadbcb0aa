// README: Plan Resolver (§4.6) — resolves a ProviderPlan's location and,
// for time-sensitive event queries, an absolute UTC time window. Never
// fails; emits resolution notes instead. Grounded on location.Service's
// context-taking resolution methods, recombined with geocode.Resolver.
package planner

import (
	"context"
	"strings"
	"time"

	"ark/internal/geocode"
	"ark/internal/searchintent"
)

// Resolve fills in concrete coordinates and, if applicable, a time
// window for plan given the original intent and caller context.
func Resolve(ctx context.Context, plan ProviderPlan, intent searchintent.SearchIntent, userCtx searchintent.UserContext, resolver geocode.Resolver) ResolvedPlan {
	resolved := ResolvedPlan{ProviderPlan: plan}

	lat, lng, ok, note := resolveLocation(ctx, intent, userCtx, resolver)
	resolved.Lat, resolved.Lng = lat, lng
	resolved.Resolved = ok
	if note != "" {
		resolved.Notes = append(resolved.Notes, note)
	}

	if plan.Events.Enabled && intent.TimeLabel != searchintent.TimeNone {
		start, end, ok := resolveTimeWindow(intent, userCtx)
		if ok {
			resolved.WindowStart, resolved.WindowEnd, resolved.HasWindow = start, end, true
		}
	}

	return resolved
}

func resolveLocation(ctx context.Context, intent searchintent.SearchIntent, userCtx searchintent.UserContext, resolver geocode.Resolver) (lat, lng float64, ok bool, note string) {
	switch intent.Location.Kind {
	case searchintent.LocationNearMe:
		if userCtx.HasLocation {
			return userCtx.Lat, userCtx.Lng, true, ""
		}
		return fallbackOrSentinel(userCtx)

	case searchintent.LocationZip:
		if resolver != nil {
			if lat, lng, found, err := resolver.ResolveZip(ctx, intent.Location.Zip); err == nil && found {
				return lat, lng, true, ""
			}
		}
		return fallbackOrSentinel(userCtx)

	case searchintent.LocationCity:
		if resolver != nil {
			if lat, lng, found, err := resolver.ResolveCity(ctx, intent.Location.City); err == nil && found {
				return lat, lng, true, ""
			}
		}
		return fallbackOrSentinel(userCtx)

	default:
		return fallbackOrSentinel(userCtx)
	}
}

func fallbackOrSentinel(userCtx searchintent.UserContext) (float64, float64, bool, string) {
	if userCtx.HasLocation {
		return userCtx.Lat, userCtx.Lng, true, "fell back to caller location"
	}
	return 0, 0, false, "location unresolved, returning sentinel"
}

// resolveTimeWindow computes the absolute UTC [start, end) window per
// the §4.6 rules, using the iterative fixed-point offset technique to
// stay correct across DST boundaries.
func resolveTimeWindow(intent searchintent.SearchIntent, userCtx searchintent.UserContext) (time.Time, time.Time, bool) {
	loc, err := time.LoadLocation(userCtx.Timezone)
	if err != nil || userCtx.Timezone == "" {
		loc = time.UTC
	}
	now := userCtx.Now
	if now.IsZero() {
		return time.Time{}, time.Time{}, false
	}
	nowLocal := resolveOffset(now, loc)

	switch intent.TimeLabel {
	case searchintent.TimeNow:
		return nowLocal.UTC(), nowLocal.Add(6 * time.Hour).UTC(), true

	case searchintent.TimeTonight:
		return nowLocal.UTC(), endOfDay(nowLocal).UTC(), true

	case searchintent.TimeToday:
		return startOfDay(nowLocal).UTC(), endOfDay(nowLocal).UTC(), true

	case searchintent.TimeWeekend:
		sat := nextWeekday(nowLocal, time.Saturday)
		sun := sat.AddDate(0, 0, 1)
		return startOfDay(sat).UTC(), endOfDayAt(sun, 23, 59).UTC(), true

	case searchintent.TimeSpecific:
		target := nextNamedWeekday(nowLocal, intent.Weekday)
		start, end := startOfDay(target), endOfDay(target)
		if containsWordNight(intent.RawQuery) {
			start = atHourMinute(target, 18, 0)
			end = atHourMinute(target, 23, 59)
		}
		return start.UTC(), end.UTC(), true
	}

	return time.Time{}, time.Time{}, false
}

// resolveOffset computes a loc-local wall-clock time for the instant now
// by iterating the "interpret wall-clock as target zone, recompute
// offset" fixed point three times, matching §4.6's convergence rule.
func resolveOffset(now time.Time, loc *time.Location) time.Time {
	wall := now.UTC()
	for i := 0; i < 3; i++ {
		trial := time.Date(wall.Year(), wall.Month(), wall.Day(), wall.Hour(), wall.Minute(), wall.Second(), wall.Nanosecond(), loc)
		_, offset := trial.Zone()
		wall = now.Add(time.Duration(offset) * time.Second).UTC()
	}
	return time.Date(wall.Year(), wall.Month(), wall.Day(), wall.Hour(), wall.Minute(), wall.Second(), wall.Nanosecond(), loc)
}

func startOfDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

func endOfDay(t time.Time) time.Time {
	return endOfDayAt(t, 23, 59)
}

func endOfDayAt(t time.Time, hour, minute int) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), hour, minute, 59, 0, t.Location())
}

func atHourMinute(t time.Time, hour, minute int) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), hour, minute, 0, 0, t.Location())
}

func nextWeekday(from time.Time, target time.Weekday) time.Time {
	daysAhead := (int(target) - int(from.Weekday()) + 7) % 7
	if daysAhead == 0 {
		daysAhead = 7
	}
	return from.AddDate(0, 0, daysAhead)
}

var weekdayByName = map[string]time.Weekday{
	"sunday": time.Sunday, "monday": time.Monday, "tuesday": time.Tuesday,
	"wednesday": time.Wednesday, "thursday": time.Thursday, "friday": time.Friday,
	"saturday": time.Saturday,
}

func nextNamedWeekday(from time.Time, name string) time.Time {
	target, ok := weekdayByName[name]
	if !ok {
		return from
	}
	return nextWeekday(from, target)
}

func containsWordNight(raw string) bool {
	return strings.Contains(strings.ToLower(raw), "night")
}
