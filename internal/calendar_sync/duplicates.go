package calendarsync

import (
	"fmt"
	"sort"
	"strings"
	"unicode"

	"github.com/famboard/famboard/internal/event"
	util "github.com/famboard/famboard/internal/utils"
)

// undatedKey buckets events without a start date away from dated ones, so
// they can only cluster among themselves.
const undatedKey = "undated"

// NormalizeTitle lowercases, strips punctuation and collapses whitespace.
// Shared by duplicate grouping and canonical title comparison.
func NormalizeTitle(s string) string {
	var b strings.Builder
	for _, r := range strings.ToLower(s) {
		switch {
		case unicode.IsLetter(r) || unicode.IsDigit(r):
			b.WriteRune(r)
		case unicode.IsSpace(r):
			b.WriteRune(' ')
		}
	}
	return strings.Join(strings.Fields(b.String()), " ")
}

func dayBucket(e *event.CalendarEvent) string {
	if e.StartDate == nil {
		return undatedKey
	}
	return util.DayKey(*e.StartDate)
}

// DetectDuplicates groups events by normalized title and calendar day and
// returns every cluster with more than one member. The output is sorted, so
// it does not depend on input ordering.
func DetectDuplicates(events []*event.CalendarEvent) []DuplicateGroup {
	type bucketKey struct {
		title string
		day   string
	}

	buckets := make(map[bucketKey][]*event.CalendarEvent)
	for _, e := range events {
		title := NormalizeTitle(e.Title)
		if title == "" {
			continue
		}
		k := bucketKey{title: title, day: dayBucket(e)}
		buckets[k] = append(buckets[k], e)
	}

	keys := make([]bucketKey, 0, len(buckets))
	for k, members := range buckets {
		if len(members) > 1 {
			keys = append(keys, k)
		}
	}
	sort.Slice(keys, func(i, j int) bool {
		if keys[i].title != keys[j].title {
			return keys[i].title < keys[j].title
		}
		return keys[i].day < keys[j].day
	})

	groups := make([]DuplicateGroup, 0, len(keys))
	for _, k := range keys {
		members := buckets[k]
		sort.Slice(members, func(i, j int) bool {
			return members[i].ID.String() < members[j].ID.String()
		})

		entries := make([]DuplicateEntry, 0, len(members))
		for _, m := range members {
			entries = append(entries, DuplicateEntry{
				ID:    m.ID.String(),
				Title: m.Title,
				Date:  k.day,
			})
		}

		reason := fmt.Sprintf("%d events titled %q on %s", len(members), k.title, k.day)
		if k.day == undatedKey {
			reason = fmt.Sprintf("%d undated events titled %q", len(members), k.title)
		}
		groups = append(groups, DuplicateGroup{Events: entries, Reason: reason})
	}
	return groups
}
