package output

import (
	"fmt"
	"strings"

	"orwatch/internal/model"
)

// TestMessage is the webhook ping sent in test mode.
const TestMessage = "🧪 **Test Message:** Discord webhook is working!"

// ChangeLine renders one detected change as a Discord markdown line.
func ChangeLine(c model.Change) string {
	name := c.ModelName
	if name == "" {
		name = c.ModelID
	}

	switch c.Kind {
	case model.ChangeNewModel:
		return fmt.Sprintf("🆕 **%s** added", name)
	case model.ChangeWentFree:
		return fmt.Sprintf("🎉 **%s** went free!", name)
	case model.ChangePriceDropped:
		return fmt.Sprintf("💸 **%s** price dropped ($%s → $%s)", name, c.Old, c.New)
	case model.ChangePriceChanged:
		return fmt.Sprintf("🔁 **%s** %s price changed ($%s → $%s)", name, c.Field, c.Old, c.New)
	default:
		return fmt.Sprintf("**%s** changed", name)
	}
}

// UpdatesMessage joins change lines under the updates header. No
// changes means no message.
func UpdatesMessage(changes []model.Change) string {
	if len(changes) == 0 {
		return ""
	}

	lines := make([]string, len(changes))
	for i, c := range changes {
		lines[i] = ChangeLine(c)
	}
	return "🔔 **OpenRouter Updates:**\n" + strings.Join(lines, "\n")
}

// FreeModelsMessage lists the currently free models. The context
// length clause is dropped for models that do not report one.
func FreeModelsMessage(free []model.Record) string {
	if len(free) == 0 {
		return ""
	}

	lines := make([]string, len(free))
	for i, r := range free {
		if r.ContextLength != nil {
			lines[i] = fmt.Sprintf("- %s (free) - %s ctx", r.DisplayName(), FormatNumber(*r.ContextLength))
		} else {
			lines[i] = fmt.Sprintf("- %s (free)", r.DisplayName())
		}
	}
	return "💰 **Free Models:**\n" + strings.Join(lines, "\n")
}

// FormatNumber formats a number with thousand separators
func FormatNumber(n int64) string {
	if n == 0 {
		return "0"
	}

	str := fmt.Sprintf("%d", n)
	negative := n < 0
	if negative {
		str = str[1:]
	}

	result := ""
	for i, c := range str {
		if i > 0 && (len(str)-i)%3 == 0 {
			result += ","
		}
		result += string(c)
	}

	if negative {
		return "-" + result
	}
	return result
}
