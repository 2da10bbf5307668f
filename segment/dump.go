package segment

import "strings"

// Dump draws patterns left to right as five lines of ASCII art, six
// columns per digit with the dot in the bottom right corner.
func Dump(patterns []Pattern) string {
	var rows [5]strings.Builder

	for _, p := range patterns {
		rows[0].WriteString(bar(p[A]))
		rows[1].WriteString(sides(p[F], p[B]))
		rows[2].WriteString(bar(p[G]))
		rows[3].WriteString(sides(p[E], p[C]))
		if p[D] {
			rows[4].WriteString("  -  ")
		} else {
			rows[4].WriteString("     ")
		}
		if p[H] {
			rows[4].WriteString(".")
		} else {
			rows[4].WriteString(" ")
		}
	}

	lines := make([]string, len(rows))
	for i := range rows {
		lines[i] = rows[i].String()
	}
	return strings.Join(lines, "\n")
}

func bar(on bool) string {
	if on {
		return "  -   "
	}
	return "      "
}

func sides(left, right bool) string {
	line := "  "
	if left {
		line = " |"
	}
	if right {
		return line + " |  "
	}
	return line + "    "
}
