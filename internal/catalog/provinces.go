// Package catalog holds the closed province/city catalog used by
// registration and school management.
package catalog

import "sort"

var provinces = map[string][]string{
	"تهران": {"تهران", "شهریار", "اسلامشهر", "قدس", "ملارد", "ورامین", "پاکدشت", "قرچک"},
	"البرز": {"کرج", "فردیس", "نظرآباد", "هشتگرد", "محمدشهر", "کمال‌شهر", "اشتهارد"},
}

func Provinces() []string {
	names := make([]string, 0, len(provinces))
	for name := range provinces {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Cities returns the province's cities sorted lexicographically, and
// whether the province exists.
func Cities(province string) ([]string, bool) {
	cities, ok := provinces[province]
	if !ok {
		return nil, false
	}
	sorted := make([]string, len(cities))
	copy(sorted, cities)
	sort.Strings(sorted)
	return sorted, true
}

func HasProvince(province string) bool {
	_, ok := provinces[province]
	return ok
}

func HasCity(province, city string) bool {
	cities, ok := provinces[province]
	if !ok {
		return false
	}
	for _, c := range cities {
		if c == city {
			return true
		}
	}
	return false
}
