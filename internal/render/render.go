// Package render produces Markdown and JSON output for a decoded Style Code.
package render

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/anfive/servizio-cli/internal/stylecode"
)

// Result is the JSON shape of a decoded code.
type Result struct {
	Code   string           `json:"code"`
	Format string           `json:"format"`
	Score  float64          `json:"score"`
	Points int              `json:"points"`
	Vector stylecode.Vector `json:"vector"`
}

// NewResult assembles the JSON shape for a decoded code.
func NewResult(code string, v stylecode.Vector) Result {
	return Result{
		Code:   code,
		Format: stylecode.FormatOf(v).String(),
		Score:  v.Score(),
		Points: v.Points(),
		Vector: v,
	}
}

// JSON renders a decoded code as indented JSON with a trailing newline.
func JSON(code string, v stylecode.Vector) ([]byte, error) {
	data, err := json.MarshalIndent(NewResult(code, v), "", "  ")
	if err != nil {
		return nil, fmt.Errorf("render.JSON: %w", err)
	}
	return append(data, '\n'), nil
}

// Markdown renders a decoded code as a Markdown report.
func Markdown(code string, v stylecode.Vector) string {
	var b strings.Builder

	fmt.Fprintf(&b, "# Style Code `%s`\n\n", code)
	fmt.Fprintf(&b, "**Score:** %s\n", stylecode.FormatScore(v.Score()))
	fmt.Fprintf(&b, "**Points:** %d\n", v.Points())
	fmt.Fprintf(&b, "**Format:** %s\n\n", stylecode.FormatOf(v))

	b.WriteString("| Field | Value |\n")
	b.WriteString("|-------|-------|\n")
	for _, f := range stylecode.Fields[1:] {
		fmt.Fprintf(&b, "| %s | %s |\n", f.Label(), v.Value(f))
	}
	b.WriteString("\n")

	if v.Pen > 0 {
		fmt.Fprintf(&b, "Penalties deduct %s from the score.\n\n", stylecode.FormatScore(float64(5*v.Pen)/10))
	}
	return b.String()
}
