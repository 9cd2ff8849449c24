package textsplit

// Split breaks text into overlapping chunks of roughly chunkSize characters.
// When a period or newline sits within the last 100 characters of a chunk the
// split moves there so sentences survive the boundary.
func Split(text string, chunkSize int, overlap int) []string {
	runes := []rune(text)
	totalLen := len(runes)

	if totalLen <= chunkSize {
		return []string{text}
	}

	if overlap >= chunkSize {
		overlap = 0 // fallback if overlap >= chunkSize
	}

	var chunks []string
	start := 0
	for start < totalLen {
		end := start + chunkSize
		if end > totalLen {
			end = totalLen
		}

		if end < totalLen {
			lookback := end - 100
			if lookback < start {
				lookback = start
			}
			for i := end; i > lookback; i-- {
				if runes[i-1] == '.' || runes[i-1] == '\n' {
					end = i
					break
				}
			}
		}

		chunks = append(chunks, string(runes[start:end]))

		if end == totalLen {
			break
		}
		// A boundary move can shrink the chunk below the overlap; always
		// advance to avoid re-emitting the same window.
		next := end - overlap
		if next <= start {
			next = end
		}
		start = next
	}

	return chunks
}
