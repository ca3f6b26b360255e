package reporter

import (
	"fmt"
	"html/template"
	"strconv"

	"github.com/aleister1102/jsmon/internal/models"
)

// diffTemplateFunctions returns the functions available to the diff template
func diffTemplateFunctions() template.FuncMap {
	return template.FuncMap{
		"opClass": func(op models.DiffOperation) string {
			switch op {
			case models.DiffInsert:
				return "insert"
			case models.DiffDelete:
				return "delete"
			default:
				return "equal"
			}
		},
		"opSign": func(op models.DiffOperation) string {
			switch op {
			case models.DiffInsert:
				return "+"
			case models.DiffDelete:
				return "-"
			default:
				return " "
			}
		},
		"lineNo": func(n int) string {
			if n <= 0 {
				return ""
			}
			return strconv.Itoa(n)
		},
		"formatBytes": FormatBytes,
	}
}

// FormatBytes renders a byte count with a binary unit suffix.
func FormatBytes(n int64) string {
	const unit = 1024
	if n < unit {
		return fmt.Sprintf("%d B", n)
	}
	div, exp := int64(unit), 0
	for m := n / unit; m >= unit; m /= unit {
		div *= unit
		exp++
	}
	return fmt.Sprintf("%.1f %ciB", float64(n)/float64(div), "KMGTPE"[exp])
}
