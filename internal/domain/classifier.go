package domain

import "strings"

// meatTokens are substrings that mark an item name as meat when no explicit
// category is stored. Legacy records created before the category field have
// free-text names only, mostly Thai.
var meatTokens = []string{
	"หมู",     // pork
	"ไก่",     // chicken
	"เนื้อ",   // beef / meat
	"กุ้ง",    // shrimp
	"ปลา",     // fish
	"เป็ด",    // duck
	"ทะเล",    // seafood
	"pork",
	"chicken",
	"beef",
	"meat",
	"shrimp",
	"fish",
	"duck",
}

// Classify resolves a line item to a category. An explicit category wins.
// Without one it falls back to substring matching on the lower-cased name:
// meat if any meat token appears, vegetable otherwise. The fallback has no
// notion of "unknown": every uncategorized item lands in exactly one of
// the two buckets.
func Classify(item OrderLineItem) string {
	if item.Category != "" {
		return item.Category
	}

	name := strings.ToLower(item.Name)
	for _, token := range meatTokens {
		if strings.Contains(name, token) {
			return CategoryMeat
		}
	}
	return CategoryVeg
}
