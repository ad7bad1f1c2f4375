// Package invite handles the short shareable codes that map to a server.
// Codes travel either as bare text or inside a URL fragment of the form
// #invite=<code>, optionally followed by &-separated extras.
package invite

import (
	"math/rand"
	"strings"
)

const (
	FragmentMarker = "#invite="

	codeLength  = 6
	codeCharset = "0123456789abcdefghijklmnopqrstuvwxyz"
)

// GenerateCode returns a 6 character base-36 code. Uniqueness against
// existing servers is the caller's job, see store.CreateServer.
func GenerateCode() string {
	code := make([]byte, codeLength)
	for i := range code {
		code[i] = codeCharset[rand.Intn(len(codeCharset))]
	}
	return string(code)
}

// ExtractCode pulls the code out of free-form input. Input containing the
// fragment marker is treated as an invite URL and the code runs up to the
// next & or end of string; anything else is the code itself, trimmed.
func ExtractCode(input string) string {
	trimmed := strings.TrimSpace(input)

	_, after, found := strings.Cut(trimmed, FragmentMarker)
	if !found {
		return trimmed
	}

	code, _, _ := strings.Cut(after, "&")
	return code
}
