package review

import "slices"

// FileComments maps a file path to its comments in display order.
type FileComments map[string][]Comment

// GroupByFile partitions comments by their path, compared verbatim.
//
// Each group is sorted by line ascending with file-level comments (line 0)
// last, then by ID ascending. The hosting API assigns increasing IDs, so a
// reply always sorts after the comment it answers.
func GroupByFile(comments []Comment) FileComments {
	grouped := make(FileComments)
	for _, c := range comments {
		grouped[c.Path] = append(grouped[c.Path], c)
	}

	for _, group := range grouped {
		slices.SortStableFunc(group, compareComments)
	}

	return grouped
}

func compareComments(a, b Comment) int {
	switch {
	case a.IsFileLevel() && !b.IsFileLevel():
		return 1
	case !a.IsFileLevel() && b.IsFileLevel():
		return -1
	case a.Line != b.Line:
		return a.Line - b.Line
	case a.ID < b.ID:
		return -1
	case a.ID > b.ID:
		return 1
	default:
		return 0
	}
}

// ForCommit returns the comments originally written against sha.
func ForCommit(comments []Comment, sha string) []Comment {
	var out []Comment
	for _, c := range comments {
		if c.OriginalCommitSHA == sha {
			out = append(out, c)
		}
	}
	return out
}

// Count returns the total number of grouped comments.
func (fc FileComments) Count() int {
	n := 0
	for _, group := range fc {
		n += len(group)
	}
	return n
}
