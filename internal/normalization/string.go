package normalization

import (
  "strings"
)

func ParseInputString(input string) string {
  normalized := strings.ToLower(strings.TrimSpace(input))
  return normalized
}

// TrimInputString trims whitespace but keeps the caller's casing. Purchase
// details and client names are display text, lowering them loses information.
func TrimInputString(input string) string {
  return strings.TrimSpace(input)
}
