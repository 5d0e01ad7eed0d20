package repository

import "strings"

// JoinTags encodes tags for the single tags column. A tag containing a
// comma will not survive SplitTags.
func JoinTags(tags []string) string {
	return strings.Join(tags, ",")
}

// SplitTags decodes the tags column, trimming entries and dropping blanks.
// It never returns nil.
func SplitTags(s string) []string {
	tags := []string{}
	for _, t := range strings.Split(s, ",") {
		if t = strings.TrimSpace(t); t != "" {
			tags = append(tags, t)
		}
	}
	return tags
}
