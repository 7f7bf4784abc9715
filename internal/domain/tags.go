package domain

import "strings"

// AddTag appends a trimmed tag, rejecting blanks and exact duplicates.
// The input slice is never modified.
func AddTag(tags []string, tag string) ([]string, error) {
	tag = strings.TrimSpace(tag)
	if tag == "" {
		return tags, &ValidationError{Field: "tags", Err: ErrBlankTag}
	}
	for _, existing := range tags {
		if existing == tag {
			return tags, &ValidationError{Field: "tags", Value: tag, Err: ErrDuplicateTag}
		}
	}

	result := make([]string, len(tags), len(tags)+1)
	copy(result, tags)
	return append(result, tag), nil
}

// RemoveTag returns tags without the given tag
func RemoveTag(tags []string, tag string) []string {
	result := make([]string, 0, len(tags))
	for _, existing := range tags {
		if existing != tag {
			result = append(result, existing)
		}
	}
	return result
}

// NormalizeTags trims every tag and drops blanks and repeats, keeping first-seen order
func NormalizeTags(tags []string) []string {
	result := make([]string, 0, len(tags))
	for _, tag := range tags {
		next, err := AddTag(result, tag)
		if err != nil {
			continue
		}
		result = next
	}
	return result
}
