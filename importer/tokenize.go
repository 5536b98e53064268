package importer

import "strings"

// SplitLine splits one line into fields on delimiter, honoring quote as a
// field-quoting character. Inside quotes the delimiter is inert and a
// doubled quote is un-escaped to one literal quote. An unterminated
// trailing quote is tolerated: the rest of the line is taken literally.
func SplitLine(line string, delimiter, quote rune) []string {
	fields := make([]string, 0, 8)
	var field strings.Builder
	inQuotes := false

	runes := []rune(line)
	for i := 0; i < len(runes); i++ {
		r := runes[i]
		switch {
		case inQuotes:
			if r != quote {
				field.WriteRune(r)
				continue
			}
			if i+1 < len(runes) && runes[i+1] == quote {
				field.WriteRune(quote)
				i++
				continue
			}
			inQuotes = false
		case r == quote:
			inQuotes = true
		case r == delimiter:
			fields = append(fields, field.String())
			field.Reset()
		default:
			field.WriteRune(r)
		}
	}

	fields = append(fields, field.String())
	return fields
}
