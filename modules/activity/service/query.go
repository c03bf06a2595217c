package service

import (
	"sort"

	"outings-api/core/constants"
	"outings-api/core/utils"
	"outings-api/modules/activity/entity"
)

// FilterActivities keeps activities whose title or location contains searchTerm
// (case-insensitive) and whose type matches typeFilter. An empty term matches
// everything; "all" or an empty typeFilter disables the type check. Order is preserved.
func FilterActivities(activities []entity.Activity, searchTerm, typeFilter string) []entity.Activity {
	folder := utils.NewFolder()
	out := make([]entity.Activity, 0, len(activities))
	for _, a := range activities {
		if !matchesType(a, typeFilter) {
			continue
		}
		if folder.Contains(a.Title, searchTerm) || folder.Contains(a.Location, searchTerm) {
			out = append(out, a)
		}
	}
	return out
}

func matchesType(a entity.Activity, typeFilter string) bool {
	if typeFilter == "" || typeFilter == constants.AllTypes {
		return true
	}
	return string(a.Type) == typeFilter
}

// DistinctTypes returns "all" followed by the types present, in first-seen order.
func DistinctTypes(activities []entity.Activity) []string {
	seen := make(map[entity.ActivityType]struct{})
	out := []string{constants.AllTypes}
	for _, a := range activities {
		if _, ok := seen[a.Type]; ok {
			continue
		}
		seen[a.Type] = struct{}{}
		out = append(out, string(a.Type))
	}
	return out
}

// SortByDatetimeDescending returns a copy sorted newest first. Ties keep input order.
func SortByDatetimeDescending(activities []entity.Activity) []entity.Activity {
	out := append([]entity.Activity(nil), activities...)
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Datetime.After(out[j].Datetime)
	})
	return out
}

// SortByDatetimeAscending returns a copy sorted oldest first. Ties keep input order.
func SortByDatetimeAscending(activities []entity.Activity) []entity.Activity {
	out := append([]entity.Activity(nil), activities...)
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Datetime.Before(out[j].Datetime)
	})
	return out
}
