package trivia

import (
	"fmt"
	"strings"
)

// Format renders q the way it is shown to the player on the console.
func Format(q Question) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "--- %s (%s) ---\n", strings.ToUpper(q.Category), q.Difficulty)
	sb.WriteString(q.Prompt)
	sb.WriteString("\n")

	switch b := q.Body.(type) {
	case MultipleChoice:
		for i, choice := range b.Choices {
			fmt.Fprintf(&sb, "%c) %s\n", 'A'+i, choice)
		}
	case TrueFalse:
		sb.WriteString("(T)rue or (F)alse\n")
	case Numeric:
		sb.WriteString("[Answer with a number]\n")
	case OpenEnded:
		sb.WriteString("Type an answer\n")
	case Ordering:
		for i, choice := range b.Choices {
			fmt.Fprintf(&sb, "%d) %s\n", i+1, choice)
		}
		sb.WriteString("Enter the correct order (example: 2 1 3 or 1;2;3)\n")
	}
	return sb.String()
}
